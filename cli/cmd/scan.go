package cmd

import "strings"

// Directive is one ordered occurrence of a source or configuration flag.
// Option is the short option letter ('i', 's', 'e', or 'E') and Value is
// the argument it was given.
type Directive struct {
	Option byte
	Value  string
}

// Short option letters that consume an argument.
// Letters absent from this set are boolean and may appear clustered.
const valueShorts = "iseEm"

// directiveLongs maps long flag names to the short option letter whose
// relative order is semantic.
var directiveLongs = map[string]byte{
	"file":     'i',
	"source":   's',
	"env":      'e',
	"env-file": 'E',
}

// valueLongs is the set of long flag names that consume a separate
// argument when not assigned with '='.
var valueLongs = map[string]bool{
	"file":            true,
	"source":          true,
	"env":             true,
	"env-file":        true,
	"module":          true,
	"log-level":       true,
	"log-format":      true,
	"log-time-layout": true,
	"pprof-mode":      true,
	"pprof-dir":       true,
}

// ScanDirectives extracts the ordered list of source ('i', 's') and
// configuration ('e', 'E') directives from a raw argument vector.
//
// Flag parsing proper belongs to kong, but kong collects repeated flags
// per-flag and discards the relative order of distinct flags. The order
// in which these four flags appear is semantic: later sources replace
// earlier ones, configuration merges apply in command-line order, and
// any occurrence may claim standard input. This scan recovers that order
// while kong remains authoritative for validation and help.
//
// It recognizes "--name=value", "--name value", "-fvalue", "-f value",
// clustered boolean shorts with a trailing value short (e.g. "-dSe{}"),
// and stops at the "--" terminator.
func ScanDirectives(args []string) []Directive {
	var dirs []Directive

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "--":
			return dirs

		case strings.HasPrefix(arg, "--"):
			name, value, assigned := strings.Cut(arg[2:], "=")

			if !assigned && valueLongs[name] && i+1 < len(args) {
				value = args[i+1]
				i++
			}

			if opt, ok := directiveLongs[name]; ok {
				dirs = append(dirs, Directive{Option: opt, Value: value})
			}

		case len(arg) > 1 && arg[0] == '-':
			for j := 1; j < len(arg); j++ {
				opt := arg[j]
				if strings.IndexByte(valueShorts, opt) < 0 {
					// Boolean short: continue through the cluster.
					continue
				}

				var value string

				switch {
				case j+1 < len(arg):
					value = arg[j+1:]
				case i+1 < len(args):
					value = args[i+1]
					i++
				}

				if opt != 'm' {
					dirs = append(dirs, Directive{Option: opt, Value: value})
				}

				break
			}
		}
	}

	return dirs
}
