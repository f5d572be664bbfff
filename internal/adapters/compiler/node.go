package compiler

import (
	"context"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
	"github.com/grindlemire/graft"
)

const NodeID graft.ID = "adapter.compiler"

func init() {
	graft.Register(graft.Node[ports.CompilerDriver]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CompilerDriver, error) {
			return NewDriver(), nil
		},
	})
}
