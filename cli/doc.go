// Package cli contains the command line interface for runic.
//
// # Usage
//
// The command is invoked flat, with exec as the implicit default command:
//
//	runic [flags] [script]
//
// Program source comes from exactly one of -i PATH (or '-' for stdin),
// -s TEXT, or a trailing positional path. JSON configuration is merged
// with -e and -E, optionally under a namespace prefix.
//
// # Logging Options
//
//   - --log-level: Set minimum log level (debug, info, warn, error)
//   - --log-format: Set log output format (json, text)
//   - --log-time-layout: Set timestamp format (RFC3339, stamp, none, ...)
//   - --log-caller: Include caller information in log output
//   - --log-pretty: Colorize text log output
//
// When standard error is a terminal, the defaults are colorized text;
// otherwise JSON.
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag:
//
//	go build -tags pprof
//
//   - --pprof-mode: Enable profiling (allocs, block, clock, cpu, goroutine,
//     heap, mem, mutex, thread, trace)
//   - --pprof-dir: Set profile output directory
package cli
