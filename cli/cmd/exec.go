package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/runic/config"
	"github.com/ardnew/runic/engine"
	"github.com/ardnew/runic/log"
	"github.com/ardnew/runic/scope"
	"github.com/ardnew/runic/source"
	"github.com/ardnew/runic/stdlib"
)

// Module search path configuration.
// The environment variable holds a colon-delimited directory list.
const (
	searchPathKey     = "MODULE_SEARCH_PATH"
	searchPathEnv     = "RUNIC_MODULE_PATH"
	defaultSearchPath = "/usr/share/runic:."
)

// globalKey is the self-referential binding through which executed
// programs reach the outer scope explicitly.
const globalKey = "global"

// Exec compiles and executes a program.
type Exec struct {
	File    string   `help:"Execute the program in the given file ('-' for stdin)."      placeholder:"PATH"          short:"i"`
	Source  string   `help:"Execute the given program text."                             placeholder:"TEXT"          short:"s"`
	Env     []string `help:"Merge the given JSON object into the global scope."          placeholder:"[PREFIX=]JSON" short:"e"`
	EnvFile []string `help:"Merge the JSON object in the given file ('-' for stdin)."    placeholder:"[PREFIX=]PATH" short:"E"`
	Module  []string `help:"Preload the named module."                                   placeholder:"NAME"          short:"m"`

	Dump     bool `help:"Dump the compiled program instead of executing it."             short:"d"`
	NoLstrip bool `help:"Keep whitespace preceding expression blocks."                   short:"l"`
	NoTrim   bool `help:"Keep the newline following expression blocks."                  short:"r"`
	Strict   bool `help:"Reject references to undeclared variables at compile time."    short:"S"`

	Script string `arg:"" help:"Program file to execute." optional:"" name:"script"`
}

// Run executes the program resolved from the command line.
func (e *Exec) Run(ctx context.Context) error {
	out := io.Writer(os.Stdout)
	if ktx := kongContextFrom(ctx); ktx != nil {
		out = ktx.Stdout
	}

	return e.run(ctx, out)
}

// run is the bootstrap state machine: resolve the source, merge the
// configuration, compile, build the scope chain, and execute.
func (e *Exec) run(ctx context.Context, w io.Writer) error {
	stdin := stdinFrom(ctx)
	if stdin == nil {
		stdin = source.NewCapture(os.Stdin)
	}

	cfg := config.Object{}

	var src *source.Source
	defer func() {
		if src != nil {
			src.Close()
		}
	}()

	// Source and configuration directives apply in command-line order:
	// any occurrence may claim standard input, and later merges overwrite
	// earlier keys.
	for _, d := range directivesFrom(ctx) {
		switch d.Option {
		case 'i':
			next, err := acquire(stdin, d.Value)
			if err != nil {
				return ErrSourceOpen.Wrap(err).
					With(
						slog.String("option", "i"),
						slog.String("path", d.Value),
					)
			}

			src = replaceSource(ctx, src, next)

		case 's':
			src = replaceSource(ctx, src, source.FromText(source.TextLabel, d.Value))

		case 'e':
			prefix, payload := config.SplitPrefix(d.Value)

			obj, err := config.Decode(strings.NewReader(payload))
			if err != nil {
				return ErrInvalidConfig.Wrap(err).
					With(slog.String("option", "e"))
			}

			cfg.Merge(prefix, obj)

		case 'E':
			prefix, path := config.SplitPrefix(d.Value)

			obj, err := decodeFile(stdin, path)
			if err != nil {
				return ErrInvalidConfig.Wrap(err).
					With(
						slog.String("option", "E"),
						slog.String("path", path),
					)
			}

			cfg.Merge(prefix, obj)
		}
	}

	// A bare positional path is the fallback source, and the only one
	// eligible for shebang skipping.
	if src == nil && e.Script != "" {
		file, err := source.Open(e.Script)
		if err != nil {
			return ErrSourceOpen.Wrap(err).
				With(slog.String("path", e.Script))
		}

		if err := file.SkipShebang(); err != nil {
			file.Close()

			return ErrSourceRead.Wrap(err).
				With(slog.String("path", e.Script))
		}

		src = file
	}

	if src == nil {
		return ErrNoSource
	}

	conf := engine.Config{
		LstripBlocks:       !e.NoLstrip,
		TrimBlocks:         !e.NoTrim,
		StrictDeclarations: e.Strict,
	}
	if e.Strict {
		conf.Declared = e.declared(cfg)
	}

	prog, err := engine.Compile(src, conf)
	if err != nil {
		return Exit(ExitCompile, err)
	}

	if e.Dump {
		prog.Dump(w)

		return nil
	}

	globals, root := buildScopes(cfg)
	defer globals.Release()
	defer root.Release()

	if err := engine.Execute(w, prog, root, e.Module); err != nil {
		return Exit(ExitFailure, err)
	}

	return nil
}

// declared computes the complete set of names visible to a strict
// compilation: library bindings, the search path, sanitized configuration
// keys, requested modules, and the global self-reference.
func (e *Exec) declared(cfg config.Object) []string {
	names := append(stdlib.Keys(), searchPathKey, globalKey)

	for key := range cfg {
		names = append(names, scope.Sanitize(key))
	}

	return append(names, e.Module...)
}

// buildScopes constructs the globals and root scope objects.
// Configuration keys are installed before the library so that
// configuration overrides library defaults.
func buildScopes(cfg config.Object) (globals, root *scope.Scope) {
	globals = scope.New(nil)

	globals.Define(searchPathKey, searchPath())

	for key, value := range cfg {
		globals.Define(scope.Sanitize(key), value)
	}

	stdlib.Install(globals)

	root = scope.New(globals)
	root.Define(globalKey, globals.Bindings())

	return globals, root
}

// searchPath returns the module search path segments, preserving empty
// segments the way PATH-style lists do.
func searchPath() []string {
	path := os.Getenv(searchPathEnv)
	if path == "" {
		path = defaultSearchPath
	}

	return strings.Split(path, ":")
}

// acquire resolves a -i argument to a source, routing "-" through the
// standard-input claim ticket.
func acquire(stdin *source.Capture, path string) (*source.Source, error) {
	if path == source.StdinPath {
		return stdin.Acquire()
	}

	return source.Open(path)
}

// replaceSource installs next as the program source. A previously
// resolved source is a diagnosed conflict: the later flag wins and the
// earlier source is released.
func replaceSource(ctx context.Context, prev, next *source.Source) *source.Source {
	if prev != nil {
		log.WarnContext(ctx, "conflicting source options",
			slog.String("using", next.Label()),
			slog.String("ignored", prev.Label()),
		)
		prev.Close()
	}

	return next
}

// decodeFile parses the JSON object in the named file, routing "-"
// through the standard-input claim ticket.
func decodeFile(stdin *source.Capture, path string) (config.Object, error) {
	if path == source.StdinPath {
		src, err := stdin.Acquire()
		if err != nil {
			return nil, err
		}

		return config.Decode(src)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return config.Decode(file)
}
