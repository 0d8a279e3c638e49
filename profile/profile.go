package profile

// Tag is the build tag that enables profiling. It also names the profile
// output directory and the CLI flag group.
const Tag = "pprof"

// Stopper ends a profiling session and flushes its output.
type Stopper interface{ Stop() }

// Profiler describes a profiling session.
type Profiler struct {
	Mode  string // one of [Modes]; empty disables profiling
	Path  string // output directory; empty uses the working directory
	Quiet bool   // suppress the profiler's own log output
}

// Option configures a [Profiler].
type Option func(*Profiler)

// New returns a Profiler configured by opts.
func New(opts ...Option) Profiler {
	var p Profiler

	for _, opt := range opts {
		opt(&p)
	}

	return p
}

// WithMode sets the profiling mode.
func WithMode(mode string) Option { return func(p *Profiler) { p.Mode = mode } }

// WithPath sets the output directory.
func WithPath(path string) Option { return func(p *Profiler) { p.Path = path } }

// WithQuiet suppresses the profiler's log output.
func WithQuiet(quiet bool) Option { return func(p *Profiler) { p.Quiet = quiet } }

// Start begins profiling. An empty or unsupported mode, or a build without
// the pprof tag, yields a no-op Stopper. Stop is always safe to call.
func (p Profiler) Start() Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	return start(p)
}

type ignore struct{}

func (ignore) Stop() {}
