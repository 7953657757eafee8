// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// The package offers configurable time formatting, caller information,
// and output formats that are applied at logger creation time using
// functional options.
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("compiled", slog.String("source", path))
//	logger.Error("open failed", slog.Any("error", err))
//
// Diagnostics default to standard error: standard output belongs to the
// rendered program output.
//
// # Configuration
//
// Configure a logger using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("RFC3339Nano"),
//		log.WithCaller(true))
//
// The package-level functions ([Debug], [Info], [Warn], [Error]) use a
// shared default logger which is reconfigured with [Config]:
//
//	log.Config(log.WithLevel(log.LevelDebug))
//
// # Adding Attributes
//
// Attributes can be added to a logger to be included in all subsequent
// log messages using the [Logger.With] method:
//
//	logger = logger.With(slog.String("component", "engine"))
//
// # Context-Aware Logging
//
// Each logging level has both a context-aware and context-unaware
// variant. Context-unaware methods internally call their context-aware
// counterparts using [DefaultContextProvider], which returns
// [context.TODO] by default.
//
// # Supported Levels
//
// The package supports four log levels: [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Messages below the configured level
// are discarded.
//
// # Output Formats
//
// Two output formats are supported: [FormatText] (default) and
// [FormatJSON]. Text output on a terminal is colorized unless pretty
// printing is disabled with [WithPretty].
package log
