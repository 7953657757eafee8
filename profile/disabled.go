//go:build !pprof

package profile

// Modes returns no profiling modes when built without the pprof build tag.
func Modes() []string { return nil }

func start(string, string, bool) interface{ Stop() } {
	return ignore{}
}
