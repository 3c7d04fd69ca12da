// Package profile provides optional runtime profiling for vcfg.
//
// Profiling is backed by [github.com/pkg/profile] and is only compiled in
// with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op
// stopper, so callers never need to check the build configuration.
//
// # Modes
//
// With the tag, the supported modes are allocs, block, clock, cpu,
// goroutine, heap, mem, mutex, thread, and trace.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/vcfg-pprof", Quiet: true}
//	defer p.Start().Stop()
//
// Profile data is written to Path with a name matching the mode (cpu.pprof,
// mem.pprof, ...). Analyze it with:
//
//	go tool pprof -http=: /tmp/vcfg-pprof/cpu.pprof
//
// Resolving large or deeply chained documents is the usual reason to reach
// for the cpu and allocs modes.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
