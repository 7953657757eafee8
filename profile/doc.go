// Package profile provides optional runtime profiling for the runic
// command.
//
// This package integrates [github.com/pkg/profile] behind the "pprof"
// build tag. When the tag is absent (the default), all operations are
// no-ops with zero runtime overhead.
//
// # Available Profiling Modes
//
// The following modes are supported when built with the pprof tag:
//
//   - allocs:    Memory allocation profiling (all allocations)
//   - block:     Block (synchronization) profiling
//   - clock:     Wall-clock profiling
//   - cpu:       CPU profiling
//   - goroutine: Goroutine profiling
//   - heap:      Heap memory profiling (live allocations)
//   - mem:       General memory profiling
//   - mutex:     Mutex contention profiling
//   - thread:    Thread creation profiling
//   - trace:     Execution trace profiling
//
// Use [Modes] to retrieve the list of supported modes programmatically.
//
// # Usage
//
// A [Config] yields the mode, output path, and quiet flag. Start the
// profiler and stop it when finished:
//
//	var cfg profile.Config = func() (string, string, bool) {
//		return "cpu", "/tmp/profiles", false
//	}
//	ctrl := cfg.Start()
//	defer ctrl.Stop()
//
// Profile files are written to the configured directory with names
// matching the profiling mode (e.g., cpu.pprof, mem.pprof).
//
// The runic command exposes profiling through the -pprof-mode and
// -pprof-dir flags when built with the pprof tag:
//
//	go build -tags pprof
//	./runic -pprof-mode cpu script.tpl
//
// Analyze the resulting profile with the standard tooling:
//
//	go tool pprof ./runic /path/to/cpu.pprof
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
