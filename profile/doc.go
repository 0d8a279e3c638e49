// Package profile provides optional runtime profiling for menugen.
//
// Profiling is backed by [github.com/pkg/profile] and is only compiled in
// with the "pprof" build tag:
//
//	go build -tags pprof .
//
// Without the tag, [Modes] is empty and [Profiler.Start] returns a no-op
// [Stopper].
//
// With the tag, the CLI exposes the profiler through the --pprof-mode and
// --pprof-dir flags:
//
//	menugen --pprof-mode cpu gen menu.json
//
// Profile data is written under the cache directory by default
// ($XDG_CACHE_HOME/menugen/pprof on Linux) and can be inspected with:
//
//	go tool pprof -http=:8080 ~/.cache/menugen/pprof/cpu.pprof
package profile
