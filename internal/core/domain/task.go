package domain

// TaskKind distinguishes a compile task from the final link task.
type TaskKind string

const (
	TaskCompile TaskKind = "compile"
	TaskLink    TaskKind = "link"
)

// CompilePayload is a compile task's data: the source to compile and the
// config governing how.
type CompilePayload struct {
	Source *SourceNode
	Config *BuildConfig
}

// LinkPayload is the final link task's data: every object file produced by
// a successful compile task, in build order.
type LinkPayload struct {
	ObjectPaths []string
	Config      *BuildConfig
}
