// Package profile provides optional runtime profiling built on
// [github.com/pkg/profile].
//
// Profiling support is compiled in only when the binary is built with the
// pprof build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Config.Start] returns a no-op controller, so callers
// never need their own conditional compilation.
//
// Profiles are written to the configured directory with names matching the
// mode (cpu.pprof, heap.pprof, ...) and analyzed with go tool pprof.
package profile

// Tag is the build tag required to enable profiling.
const Tag = `pprof`
