package engine

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/ardnew/runic/scope"
	"github.com/ardnew/runic/source"
)

func compileText(t *testing.T, text string, cfg Config) *Program {
	t.Helper()

	p, err := Compile(source.FromText("[test]", text), cfg)
	if err != nil {
		t.Fatalf("Compile(%q): %v", text, err)
	}

	return p
}

func run(t *testing.T, p *Program, root *scope.Scope, modules []string) string {
	t.Helper()

	var buf bytes.Buffer
	if err := Execute(&buf, p, root, modules); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	return buf.String()
}

func TestExecuteLiteralOnly(t *testing.T) {
	p := compileText(t, "plain text, no blocks\n", DefaultConfig())

	got := run(t, p, scope.New(nil), nil)
	if got != "plain text, no blocks\n" {
		t.Errorf("got %q", got)
	}
}

func TestExecuteExpressionBlocks(t *testing.T) {
	globals := scope.New(nil)
	globals.Define("name", "world")
	globals.Define("n", 2)

	root := scope.New(globals)

	p := compileText(t, "hello {{ name }}: {{ n + 1 }}", DefaultConfig())

	got := run(t, p, root, nil)
	if got != "hello world: 3" {
		t.Errorf("got %q", got)
	}
}

func TestExecuteRendersValues(t *testing.T) {
	globals := scope.New(nil)
	globals.Define("m", map[string]any{"k": "v"})
	globals.Define("b", true)
	globals.Define("nothing", nil)

	tests := []struct {
		text string
		want string
	}{
		{"{{ m }}", `{"k":"v"}`},
		{"{{ b }}", "true"},
		{"{{ nothing }}", ""},
		{"{{ [1, 2] }}", "[1,2]"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			p := compileText(t, tt.text, DefaultConfig())

			if got := run(t, p, globals, nil); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLstripBlocks(t *testing.T) {
	globals := scope.New(nil)
	globals.Define("x", "X")

	text := "a\n   {{ x }}\nb\n"

	cfg := Config{LstripBlocks: true, TrimBlocks: false}

	if got := run(t, compileText(t, text, cfg), globals, nil); got != "a\nX\nb\n" {
		t.Errorf("lstrip enabled: got %q", got)
	}

	cfg.LstripBlocks = false

	want := "a\n   X\nb\n"
	if got := run(t, compileText(t, text, cfg), globals, nil); got != want {
		t.Errorf("lstrip disabled: got %q, want %q", got, want)
	}

	// With both defaults on, trim also drops the newline after the block.
	if got := run(t, compileText(t, text, DefaultConfig()), globals, nil); got != "a\nXb\n" {
		t.Errorf("defaults: got %q", got)
	}
}

func TestTrimBlocks(t *testing.T) {
	globals := scope.New(nil)
	globals.Define("x", "X")

	text := "{{ x }}\ntail"

	cfg := DefaultConfig()
	cfg.LstripBlocks = false

	if got := run(t, compileText(t, text, cfg), globals, nil); got != "Xtail" {
		t.Errorf("trim enabled: got %q", got)
	}

	cfg.TrimBlocks = false

	if got := run(t, compileText(t, text, cfg), globals, nil); got != "X\ntail" {
		t.Errorf("trim disabled: got %q", got)
	}
}

func TestCompileUnterminatedBlock(t *testing.T) {
	_, err := Compile(source.FromText("[test]", "a\nb {{ x"), DefaultConfig())
	if !errors.Is(err, ErrUnterminated) {
		t.Fatalf("expected ErrUnterminated, got %v", err)
	}
}

func TestCompileInvalidExpression(t *testing.T) {
	_, err := Compile(source.FromText("[test]", "{{ 1 + }}"), DefaultConfig())
	if !errors.Is(err, ErrCompile) {
		t.Fatalf("expected ErrCompile, got %v", err)
	}
}

func TestStrictDeclarations(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StrictDeclarations = true
	cfg.Declared = []string{"known"}

	if _, err := Compile(source.FromText("[test]", "{{ known }}"), cfg); err != nil {
		t.Fatalf("declared name rejected: %v", err)
	}

	_, err := Compile(source.FromText("[test]", "{{ unknown }}"), cfg)
	if !errors.Is(err, ErrCompile) {
		t.Fatalf("undeclared name accepted: %v", err)
	}
}

func TestNonStrictUndefinedIsNil(t *testing.T) {
	p := compileText(t, "[{{ undefined_name }}]", DefaultConfig())

	if got := run(t, p, scope.New(nil), nil); got != "[]" {
		t.Errorf("got %q, want %q", got, "[]")
	}
}

func TestExecutePreloadsModules(t *testing.T) {
	globals := scope.New(nil)
	root := scope.New(globals)

	p := compileText(t, `{{ path.cat("a", "b") }}`, DefaultConfig())

	if got := run(t, p, root, []string{"path"}); got != "a/b" {
		t.Errorf("got %q", got)
	}

	// Preload installs into globals, not the root scope.
	if _, ok := globals.Lookup("path"); !ok {
		t.Error("module bindings missing from globals")
	}
}

func TestExecuteUnknownModule(t *testing.T) {
	p := compileText(t, "x", DefaultConfig())

	err := Execute(new(bytes.Buffer), p, scope.New(nil), []string{"nope"})
	if !errors.Is(err, ErrUnknownModule) {
		t.Fatalf("expected ErrUnknownModule, got %v", err)
	}
}

func TestShebangOffsetsBlockLines(t *testing.T) {
	src := source.FromText("[test]", "#!/usr/bin/env runic\n{{ 1 + }}")
	if err := src.SkipShebang(); err != nil {
		t.Fatal(err)
	}

	_, err := Compile(src, DefaultConfig())
	if err == nil {
		t.Fatal("expected compile error")
	}

	// The block sits on line 2 of the original file.
	var ee *Error
	if !errors.As(err, &ee) {
		t.Fatalf("unexpected error type %T", err)
	}

	if !strings.Contains(err.Error(), "compile error") {
		t.Errorf("error text %q lacks compile diagnostic", err)
	}
}

func TestDumpListsSegments(t *testing.T) {
	p := compileText(t, "lit {{ 1 + 1 }}", DefaultConfig())

	var buf bytes.Buffer

	p.Dump(&buf)

	out := buf.String()
	for _, want := range []string{"program", "text", "expr line 1: 1 + 1"} {
		if !strings.Contains(out, want) {
			t.Errorf("dump output %q missing %q", out, want)
		}
	}
}
