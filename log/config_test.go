package log

import (
	"slices"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Level
	}{
		{"debug", "debug", LevelDebug},
		{"info upper", "INFO", LevelInfo},
		{"warn mixed", "Warn", LevelWarn},
		{"error", "error", LevelError},
		{"offset", "ERROR+4", LevelError + 4},
		{"invalid falls back", "loud", DefaultLevel},
		{"empty falls back", "", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected Format
	}{
		{"json", "json", FormatJSON},
		{"json upper", "JSON", FormatJSON},
		{"json padded", "  json\t", FormatJSON},
		{"text", "text", FormatText},
		{"invalid falls back", "xml", DefaultFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevels_EnumeratesAll(t *testing.T) {
	got := slices.Collect(Levels())
	want := []string{"debug", "info", "warn", "error"}

	if !slices.Equal(got, want) {
		t.Errorf("Levels() = %v, want %v", got, want)
	}
}

func TestFormats_EnumeratesAll(t *testing.T) {
	got := slices.Collect(Formats())
	want := []string{"text", "json"}

	if !slices.Equal(got, want) {
		t.Errorf("Formats() = %v, want %v", got, want)
	}
}

func TestOptions_SetFields(t *testing.T) {
	c := apply(config{},
		WithLevel(LevelDebug),
		WithFormat(FormatJSON),
		WithCaller(true),
		WithPretty(true),
	)

	if c.level != LevelDebug {
		t.Errorf("expected level %v, got %v", LevelDebug, c.level)
	}

	if c.format != FormatJSON {
		t.Errorf("expected format %v, got %v", FormatJSON, c.format)
	}

	if !c.caller {
		t.Error("expected caller enabled")
	}

	if !c.pretty {
		t.Error("expected pretty enabled")
	}
}

func TestOptions_DoNotMutateReceiver(t *testing.T) {
	base := makeConfig(nil)
	_ = apply(base, WithLevel(LevelError), WithFormat(FormatJSON))

	if base.level != DefaultLevel {
		t.Errorf("base level changed to %v", base.level)
	}

	if base.format != DefaultFormat {
		t.Errorf("base format changed to %v", base.format)
	}
}

func TestFormatTime_Layouts(t *testing.T) {
	now := time.Date(2023, 10, 15, 14, 30, 45, 123456789, time.UTC)

	tests := []struct {
		name     string
		layout   string
		contains []string
	}{
		{
			name:     "rfc3339 named layout",
			layout:   "RFC3339",
			contains: []string{"2023-10-15T14:30:45Z"},
		},
		{
			name:     "rfc3339 nano named layout",
			layout:   "RFC3339Nano",
			contains: []string{"2023-10-15T14:30:45.123456789Z"},
		},
		{
			name:     "millisecond alias",
			layout:   "ms",
			contains: []string{"14:30:45.123"},
		},
		{
			name:     "custom layout used verbatim",
			layout:   "2006-01-02 15:04:05",
			contains: []string{"2023-10-15 14:30:45"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := WithTimeLayout(tt.layout)(config{})
			result := c.formatTime(now)

			for _, s := range tt.contains {
				if !strings.Contains(result, s) {
					t.Errorf("expected %q to contain %q", result, s)
				}
			}
		})
	}
}

func TestFormatTime_EmptyLayout_DisablesTimestamp(t *testing.T) {
	now := time.Date(2023, 10, 15, 14, 30, 45, 123456789, time.UTC)

	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"whitespace only", "   \t  "},
		{"none alias", "none"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := WithTimeLayout(tt.value)(config{})

			if result := c.formatTime(now); result != "" {
				t.Errorf(
					"expected empty timestamp when layout is %q, got %q",
					tt.value,
					result,
				)
			}
		})
	}
}
