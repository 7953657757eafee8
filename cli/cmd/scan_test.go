package cmd

import (
	"slices"
	"testing"
)

func TestScanDirectives(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected []Directive
	}{
		{
			name: "short separate values",
			args: []string{"-i", "prog.tpl", "-e", `{"x":1}`},
			expected: []Directive{
				{'i', "prog.tpl"},
				{'e', `{"x":1}`},
			},
		},
		{
			name: "short attached values",
			args: []string{"-iprog.tpl", "-shello"},
			expected: []Directive{
				{'i', "prog.tpl"},
				{'s', "hello"},
			},
		},
		{
			name: "long flags assigned and separate",
			args: []string{"--env=ns={}", "--file", "prog.tpl", "--env-file", "cfg.json"},
			expected: []Directive{
				{'e', "ns={}"},
				{'i', "prog.tpl"},
				{'E', "cfg.json"},
			},
		},
		{
			name: "interleaving preserved",
			args: []string{"-e", `{"a":1}`, "-i", "-", "-E", "-"},
			expected: []Directive{
				{'e', `{"a":1}`},
				{'i', "-"},
				{'E', "-"},
			},
		},
		{
			name: "boolean cluster with trailing value short",
			args: []string{"-dSrs", "text"},
			expected: []Directive{
				{'s', "text"},
			},
		},
		{
			name: "boolean cluster attached value",
			args: []string{"-dle{}"},
			expected: []Directive{
				{'e', "{}"},
			},
		},
		{
			name:     "module flag is not a directive but consumes its value",
			args:     []string{"-m", "-i", "-s", "text"},
			expected: []Directive{{'s', "text"}},
		},
		{
			name:     "terminator stops scanning",
			args:     []string{"-s", "text", "--", "-e", "{}"},
			expected: []Directive{{'s', "text"}},
		},
		{
			name: "value flags between directives are skipped",
			args: []string{
				"--log-level", "debug", "-s", "text", "--pprof-mode", "cpu",
			},
			expected: []Directive{{'s', "text"}},
		},
		{
			name:     "positional only",
			args:     []string{"prog.tpl"},
			expected: nil,
		},
		{
			name:     "lone dash is positional",
			args:     []string{"-"},
			expected: nil,
		},
		{
			name:     "empty",
			args:     nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScanDirectives(tt.args)

			if !slices.Equal(got, tt.expected) {
				t.Errorf("ScanDirectives(%q) = %v, want %v",
					tt.args, got, tt.expected)
			}
		})
	}
}
