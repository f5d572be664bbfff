package domain

import "time"

// BuildReport summarizes one build invocation for the CLI to print and
// for tests to assert against.
type BuildReport struct {
	EntryPoint      string
	OutputBinary    string
	TotalFiles      int
	CompiledFiles   int
	CachedFiles     int
	FailedFiles     int
	CompilationTime time.Duration
	TotalTime       time.Duration
	CacheHitRate    float64
	CacheSizeBytes  int
}
