// Package profile provides optional runtime profiling for sci.
//
// Profiling is compiled in only with the "pprof" build tag ([Tag]). Without
// it, [Modes] is empty and [Profiler.Start] returns a no-op stopper, so
// callers never need to guard their use of this package.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/sci"}
//	defer p.Start().Stop()
//
// Profiles are written by [github.com/pkg/profile] into Path using the name
// of the mode (cpu.pprof, mem.pprof, ...). Inspect them with:
//
//	go tool pprof -http=: /tmp/sci/cpu.pprof
//
// A useful target when tuning the evaluator is the batch command, which
// exercises parsing, rewriting and evaluation without a terminal:
//
//	go build -tags pprof -o sci .
//	./sci --pprof-mode cpu eval big.txt
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
