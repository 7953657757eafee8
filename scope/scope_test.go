package scope

import (
	"reflect"
	"testing"
)

func TestLookupChain(t *testing.T) {
	globals := New(nil)
	globals.Define("outer", 1)
	globals.Define("shadowed", "from globals")

	root := New(globals)
	root.Define("shadowed", "from root")
	root.Define("local", 2)

	tests := []struct {
		name string
		want any
		ok   bool
	}{
		{"outer", 1, true},
		{"shadowed", "from root", true},
		{"local", 2, true},
		{"missing", nil, false},
	}

	for _, tt := range tests {
		v, ok := root.Lookup(tt.name)
		if ok != tt.ok || v != tt.want {
			t.Errorf("Lookup(%q) = (%v, %v), want (%v, %v)",
				tt.name, v, ok, tt.want, tt.ok)
		}
	}

	// Lookup on the parent never sees child bindings.
	if _, ok := globals.Lookup("local"); ok {
		t.Error("parent scope resolved a child binding")
	}
}

func TestDefaultDoesNotOverwrite(t *testing.T) {
	s := New(nil)
	s.Define("key", "configured")
	s.Default("key", "builtin")
	s.Default("other", "builtin")

	if v, _ := s.Lookup("key"); v != "configured" {
		t.Errorf("Default overwrote existing binding: got %v", v)
	}

	if v, _ := s.Lookup("other"); v != "builtin" {
		t.Errorf("Default failed to install missing binding: got %v", v)
	}
}

func TestFlattenPrecedence(t *testing.T) {
	globals := New(nil)
	globals.Define("a", 1)
	globals.Define("b", 2)

	root := New(globals)
	root.Define("b", 20)
	root.Define("c", 30)

	want := map[string]any{"a": 1, "b": 20, "c": 30}
	if got := root.Flatten(); !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten() = %#v, want %#v", got, want)
	}
}

func TestBindingsAreLive(t *testing.T) {
	globals := New(nil)

	view := globals.Bindings()
	globals.Define("late", true)

	if view["late"] != true {
		t.Error("Bindings() snapshot is not live")
	}
}

func TestRelease(t *testing.T) {
	globals := New(nil)
	globals.Define("x", 1)

	root := New(globals)
	root.Release()

	if _, ok := root.Lookup("x"); ok {
		t.Error("released scope still resolves parent bindings")
	}

	if root.Len() != 0 {
		t.Errorf("released scope retains %d bindings", root.Len())
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain_key", "plain_key"},
		{"1-bad", "1_bad"},
		{"dotted.name", "dotted_name"},
		{"spaced out", "spaced_out"},
		{"UPPER9", "UPPER9"},
		{"a!b@c", "a_b_c"},
	}

	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
