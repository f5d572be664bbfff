package domain

// CompilerKind names a supported compiler family (spec.md §3).
type CompilerKind string

const (
	CompilerAuto  CompilerKind = "auto"
	CompilerGCC   CompilerKind = "gcc"
	CompilerClang CompilerKind = "clang"
	CompilerMSVC  CompilerKind = "msvc"
)

// BuildConfig is the resolved set of options driving one build, merging CLI
// flags over project defaults (spec.md §3, SPEC_FULL.md §4.14).
type BuildConfig struct {
	Compiler     CompilerKind
	CompilerPath string

	CFlags        []string
	LDFlags       []string
	IncludePaths  []string
	LibraryPaths  []string
	Libraries     []string
	Excludes      []string

	SourceDir     string
	OutputDir     string
	OutputBinary  string

	Verbose     bool
	Debug       bool
	Optimize    bool
	ParallelJobs int

	Clean bool
	// Graph, when true, prints the resolved build order and detected entry
	// point and exits without compiling (SPEC_FULL.md's supplemented
	// --graph diagnostic flag).
	Graph bool
}

// DefaultCFlags returns the baseline compiler flags implied by cfg, before
// any user-supplied cflags are appended (spec.md §6: "-Wall"; "-O2 added
// when optimize is on").
func (cfg *BuildConfig) DefaultCFlags() []string {
	flags := []string{"-Wall"}
	if cfg.Debug {
		flags = append(flags, "-g")
	}
	if cfg.Optimize {
		flags = append(flags, "-O2")
	}
	return flags
}
