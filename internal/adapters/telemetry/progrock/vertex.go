package progrock

import (
	"fmt"
	"io"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
	"github.com/vito/progrock"
)

var _ ports.Vertex = (*Vertex)(nil)

// Vertex implements ports.Vertex wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder
}

// Stdout implements ports.Vertex.
func (v *Vertex) Stdout() io.Writer {
	return v.vertex.Stdout()
}

// Stderr implements ports.Vertex.
func (v *Vertex) Stderr() io.Writer {
	return v.vertex.Stderr()
}

// Log implements ports.Vertex.
func (v *Vertex) Log(level ports.LogLevel, msg string) {
	_, _ = fmt.Fprintf(v.vertex.Stdout(), "[%s] %s\n", level.String(), msg)
}

// Complete implements ports.Vertex.
func (v *Vertex) Complete(err error) {
	v.vertex.Done(err)
}

// Cached implements ports.Vertex.
func (v *Vertex) Cached() {
	v.vertex.Cached()
}
