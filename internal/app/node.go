package app

import (
	"context"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/adapters/config" //nolint:depguard // wired here
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/engine/orchestrator" //nolint:depguard // wired here
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the App Graft node.
const NodeID graft.ID = "app"

func init() {
	graft.Register(graft.Node[*App]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, orchestrator.NodeID},
		Run: func(ctx context.Context) (*App, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			orch, err := graft.Dep[*orchestrator.Orchestrator](ctx)
			if err != nil {
				return nil, err
			}
			return New(loader, orch), nil
		},
	})
}
