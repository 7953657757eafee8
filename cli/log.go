package cli

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/ardnew/runic/log"
)

// logFormat is a custom type that configures the logger format as a side
// effect of parsing via encoding.TextUnmarshaler.
type logFormat string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-format flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (f *logFormat) UnmarshalText(text []byte) error {
	*f = logFormat(text)
	log.Config(log.WithFormat(log.ParseFormat(string(*f))))

	return nil
}

// logLevel is a custom type that configures the logger level as a side
// effect of parsing via encoding.TextUnmarshaler.
type logLevel string

// UnmarshalText implements encoding.TextUnmarshaler.
// As Kong parses the --log-level flag, this method is called, allowing us
// to configure the logger early enough to affect error messages during parsing.
func (l *logLevel) UnmarshalText(text []byte) error {
	*l = logLevel(text)
	log.Config(log.WithLevel(log.ParseLevel(string(*l))))

	return nil
}

type logConfig struct {
	Level      logLevel  `default:"info"         enum:"debug,info,warn,error" help:"Set log level."`
	Format     logFormat `default:"${logFormat}" enum:"json,text"             help:"Set log format."`
	TimeLayout string    `default:"stamp"                                     help:"Set timestamp format."`
	Caller     bool      `default:"false"                                     help:"Include caller information."  negatable:""`
	Pretty     bool      `default:"${logPretty}"                              help:"Colorize text log output."    negatable:""`
}

// stderrIsTTY reports whether diagnostics are going to a terminal, which
// selects colorized text output by default. Pipes and files get JSON.
func stderrIsTTY() bool {
	fd := os.Stderr.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func (*logConfig) vars() kong.Vars {
	format, pretty := "json", false
	if stderrIsTTY() {
		format, pretty = "text", true
	}

	return kong.Vars{
		"logFormat": format,
		"logPretty": strconv.FormatBool(pretty),
	}
}

func (*logConfig) group() kong.Group {
	var group kong.Group

	group.Key = "log"
	group.Title = "Logging options"

	return group
}

func (f *logConfig) start(ctx context.Context) {
	log.Config(
		log.WithLevel(log.ParseLevel(string(f.Level))),
		log.WithFormat(log.ParseFormat(string(f.Format))),
		log.WithTimeLayout(f.TimeLayout),
		log.WithCaller(f.Caller),
		log.WithPretty(f.Pretty),
	)

	log.DebugContext(ctx, "logger initialized",
		slog.String("level", string(f.Level)),
		slog.String("format", string(f.Format)),
		slog.String("time", f.TimeLayout),
		slog.Bool("caller", f.Caller),
		slog.Bool("pretty", f.Pretty),
	)
}

// scan performs an early pass over command-line arguments to extract and
// apply logger configuration before Kong begins parsing. This ensures the
// logger is configured properly regardless of flag position on the command
// line.
//
// While logFormat and logLevel types implement encoding.TextUnmarshaler to
// configure the logger as flags are encountered during parsing, boolean flags
// like Pretty don't go through that interface. This pre-scan ensures all logger
// flags are applied early.
func (f *logConfig) scan(args []string) {
	// Defaults mirror the kong tag defaults resolved in vars().
	if f.Pretty = stderrIsTTY(); f.Pretty {
		log.Config(log.WithFormat(log.FormatText), log.WithPretty(true))
	} else {
		log.Config(log.WithFormat(log.FormatJSON))
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]

		const (
			logPrefix   = "--log-"
			noLogPrefix = "--no-log-"
		)

		var name, value string

		var assigned bool

		switch {
		case len(arg) >= len(logPrefix) && arg[:len(logPrefix)] == logPrefix,
			len(arg) >= len(noLogPrefix) && arg[:len(noLogPrefix)] == noLogPrefix:
			name = arg

			for j := range arg {
				if arg[j] == '=' {
					name, value = arg[:j], arg[j+1:]
					assigned = true

					break
				}
			}

		default:
			continue
		}

		// Apply configuration
		switch name {
		case "--log-level":
			// Non-boolean flag: consume next arg as value if not assigned
			if !assigned && i+1 < len(args) && len(args[i+1]) > 0 &&
				args[i+1][0] != '-' {
				value = args[i+1]
				i++
			}

			_ = f.Level.UnmarshalText([]byte(value))

		case "--log-format":
			// Non-boolean flag: consume next arg as value if not assigned
			if !assigned && i+1 < len(args) && len(args[i+1]) > 0 &&
				args[i+1][0] != '-' {
				value = args[i+1]
				i++
			}

			_ = f.Format.UnmarshalText([]byte(value))

		case "--log-pretty", "--no-log-pretty":
			enable := name == "--log-pretty"

			// Boolean flag: only parse value if explicitly assigned with =
			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				enable = enable == v
			}

			f.Pretty = enable

			log.Config(log.WithPretty(enable))

		case "--log-caller", "--no-log-caller":
			enable := name == "--log-caller"

			// Boolean flag: only parse value if explicitly assigned with =
			if assigned {
				v, err := strconv.ParseBool(value)
				if err != nil {
					continue
				}

				enable = enable == v
			}

			f.Caller = enable

			log.Config(log.WithCaller(enable))
		}
	}
}
