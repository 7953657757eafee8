package engine

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/expr-lang/expr/vm"
	jsoniter "github.com/json-iterator/go"

	"github.com/ardnew/runic/scope"
	"github.com/ardnew/runic/stdlib"
)

//nolint:gochecknoglobals
var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Execute runs the program against the given root scope, writing rendered
// output to w. Modules requested for preload are installed into the globals
// scope (the root's parent) in request order before the first block runs.
//
// The engine borrows the scope chain for the duration of one run; the
// caller retains ownership and releases it afterward.
func Execute(
	w io.Writer,
	p *Program,
	root *scope.Scope,
	modules []string,
) error {
	globals := root
	if parent := root.Parent(); parent != nil {
		globals = parent
	}

	for _, name := range modules {
		mod, ok := stdlib.Module(name)
		if !ok {
			return ErrUnknownModule.With(
				slog.String("module", name),
				slog.String("source", p.label),
			)
		}

		globals.Define(name, mod)
	}

	env := root.Flatten()

	var machine vm.VM

	for _, seg := range p.segments {
		if seg.prog == nil {
			if _, err := io.WriteString(w, seg.text); err != nil {
				return ErrExecute.Wrap(err)
			}

			continue
		}

		out, err := machine.Run(seg.prog, env)
		if err != nil {
			return ErrExecute.Wrap(err).With(
				slog.String("source", p.label),
				slog.String("expr", seg.expr),
				slog.Int("line", seg.line),
			)
		}

		if _, err := io.WriteString(w, render(out)); err != nil {
			return ErrExecute.Wrap(err)
		}
	}

	return nil
}

// render formats one block result for output: strings verbatim, nil empty,
// and everything else as JSON.
func render(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	default:
		s, err := json.MarshalToString(v)
		if err != nil {
			return fmt.Sprint(v)
		}

		return s
	}
}

// Dump writes a plain-text listing of the compiled program to w: literal
// segments quoted, expression blocks with their position and expr bytecode
// disassembly. Used by the -d flag in place of execution.
func (p *Program) Dump(w io.Writer) {
	fmt.Fprintf(w, "program %s\n", p.label)

	for i, seg := range p.segments {
		if seg.prog == nil {
			fmt.Fprintf(w, "%4d text %q\n", i, seg.text)

			continue
		}

		fmt.Fprintf(w, "%4d expr line %d: %s\n", i, seg.line, seg.expr)

		for line := range strings.Lines(seg.prog.Disassemble()) {
			fmt.Fprintf(w, "\t%s", line)
		}
	}
}
