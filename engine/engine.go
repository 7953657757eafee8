// Package engine is the compile and execute boundary of the runic front
// end.
//
// Program source is a template: literal text interleaved with
// "{{ expression }}" blocks. Compilation scans the template, applies the
// configured block whitespace handling, and delegates every expression to
// expr-lang. Execution runs each compiled block on an expr virtual machine
// against the environment flattened from the root scope, rendering results
// to an output writer.
//
// The compiler and VM semantics beyond this surface belong to expr-lang;
// this package only adapts them to runic sources, scopes, and diagnostics.
package engine

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/vm"
	"github.com/zeebo/xxh3"

	"github.com/ardnew/runic/source"
)

// Block delimiters recognized by the template scanner.
const (
	openDelim  = "{{"
	closeDelim = "}}"
)

// Config carries the parse options threaded from the command line.
type Config struct {
	// LstripBlocks strips whitespace between the start of a line and an
	// expression block opening on that line.
	LstripBlocks bool
	// TrimBlocks drops a single newline immediately following an
	// expression block.
	TrimBlocks bool
	// StrictDeclarations makes references to undeclared variables
	// compile errors instead of runtime nils.
	StrictDeclarations bool
	// Declared lists the names visible to strict compilation.
	Declared []string
}

// DefaultConfig returns the parse configuration used when no flags disable
// block whitespace handling.
func DefaultConfig() Config {
	return Config{
		LstripBlocks: true,
		TrimBlocks:   true,
	}
}

// segment is one compiled unit of a program: either literal text
// (prog == nil) or an expression block.
type segment struct {
	text string // literal text
	expr string // expression block source
	line int    // 1-based line of the block in the original file
	prog *vm.Program
}

// Program is the compiled representation of one source.
type Program struct {
	label    string
	segments []segment
}

// blockCache stores non-strict compiled blocks keyed by content hash, so
// identical expressions across segments compile once per process.
//
//nolint:gochecknoglobals
var blockCache sync.Map

// Compile consumes the remaining bytes of src and compiles them into a
// Program. Block positions are reported relative to the original file,
// including any lines discarded by shebang skipping.
func Compile(src *source.Source, cfg Config) (*Program, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, ErrCompile.Wrap(err).
			With(slog.String("source", src.Label()))
	}

	p := &Program{label: src.Label()}

	text := string(data)
	base := 1 + src.Lines()
	pos := 0
	bol := true

	for pos < len(text) {
		open := strings.Index(text[pos:], openDelim)
		if open < 0 {
			p.literal(text[pos:], bol, false, cfg)

			break
		}

		open += pos
		bol = p.literal(text[pos:open], bol, true, cfg)

		rel := strings.Index(text[open+len(openDelim):], closeDelim)
		if rel < 0 {
			return nil, ErrUnterminated.With(
				slog.String("source", src.Label()),
				slog.Int("line", base+strings.Count(text[:open], "\n")),
			)
		}

		end := open + len(openDelim) + rel
		block := strings.TrimSpace(text[open+len(openDelim) : end])
		line := base + strings.Count(text[:open], "\n")

		if block != "" {
			prog, err := compileBlock(block, cfg)
			if err != nil {
				return nil, compileError(err, src.Label(), block, line)
			}

			p.segments = append(p.segments, segment{
				expr: block,
				line: line,
				prog: prog,
			})
		}

		pos = end + len(closeDelim)
		bol = false

		if cfg.TrimBlocks && pos < len(text) && text[pos] == '\n' {
			pos++
			bol = true
		}
	}

	return p, nil
}

// literal appends a literal text segment and reports whether the consumed
// source left the cursor at the beginning of a line. Lstrip handling applies
// only when a block immediately follows the segment.
func (p *Program) literal(text string, bol, beforeBlock bool, cfg Config) bool {
	if cfg.LstripBlocks && beforeBlock {
		if i := strings.LastIndexByte(text, '\n'); i >= 0 {
			if isBlank(text[i+1:]) {
				text = text[:i+1]
			}
		} else if bol && isBlank(text) {
			text = ""
		}
	}

	if text != "" {
		p.segments = append(p.segments, segment{text: text})

		return strings.HasSuffix(text, "\n")
	}

	return bol
}

func isBlank(s string) bool {
	return strings.TrimRight(s, " \t") == ""
}

// compileBlock compiles one expression block. Non-strict blocks are cached
// process-wide by content hash; strict blocks depend on the declared name
// set and always compile fresh.
func compileBlock(block string, cfg Config) (*vm.Program, error) {
	if cfg.StrictDeclarations {
		env := make(map[string]any, len(cfg.Declared))
		for _, name := range cfg.Declared {
			env[name] = any(nil)
		}

		return expr.Compile(block, expr.Env(env))
	}

	key := xxh3.HashString(block)
	if cached, ok := blockCache.Load(key); ok {
		return cached.(*vm.Program), nil
	}

	prog, err := expr.Compile(block,
		expr.Env(map[string]any{}),
		expr.AllowUndefinedVariables(),
	)
	if err != nil {
		return nil, err
	}

	blockCache.Store(key, prog)

	return prog, nil
}

// compileError attaches source label and absolute position attributes to an
// expr compile failure.
func compileError(err error, label, block string, line int) error {
	column := 0

	// expr positions are relative to the block source.
	var fe *file.Error
	if errors.As(err, &fe) {
		line += fe.Line - 1
		column = fe.Column
	}

	return ErrCompile.Wrap(err).With(
		slog.String("source", label),
		slog.String("expr", block),
		slog.Int("line", line),
		slog.Int("column", column),
	)
}
