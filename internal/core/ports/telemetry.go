package ports

import (
	"context"
	"io"
)

// LogLevel classifies a Vertex.Log message.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "debug"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	default:
		return "info"
	}
}

// Vertex is one unit of visible progress — one compile, one link — with
// its own output streams and a terminal Complete/Cached state.
type Vertex interface {
	Stdout() io.Writer
	Stderr() io.Writer
	Log(level LogLevel, msg string)
	// Cached marks the vertex as satisfied from cache rather than run.
	Cached()
	// Complete marks the vertex finished, recording err if it failed.
	Complete(err error)
}

// Telemetry records the progress of a build as a sequence of vertices so
// a terminal UI can render what is currently running, cached, or failed.
//
//go:generate go run go.uber.org/mock/mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks
type Telemetry interface {
	// Record starts a new vertex named name, returning a context for the
	// work it covers alongside the vertex handle. The context does not
	// carry the vertex; the progrock adapter returns ctx unchanged.
	Record(ctx context.Context, name string) (context.Context, Vertex)
	Close() error
}
