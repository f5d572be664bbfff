package orchestrator

import (
	"context"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/adapters/cache"    //nolint:depguard // wired in engine wiring
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/adapters/compiler" //nolint:depguard // wired in engine wiring
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/adapters/fs"       //nolint:depguard // wired in engine wiring
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/adapters/logger"   //nolint:depguard // wired in engine wiring
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/adapters/telemetry/progrock"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
	"github.com/grindlemire/graft"
)

// NodeID is the unique identifier for the orchestrator Graft node.
const NodeID graft.ID = "engine.orchestrator"

func init() {
	graft.Register(graft.Node[*Orchestrator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.ScannerNodeID,
			fs.IncludeParserNodeID,
			fs.ResolverNodeID,
			fs.EntryDetectorNodeID,
			fs.HasherNodeID,
			fs.FileCheckerNodeID,
			cache.NodeID,
			compiler.NodeID,
			logger.NodeID,
			progrock.NodeID,
		},
		Run: func(ctx context.Context) (*Orchestrator, error) {
			scanner, err := graft.Dep[ports.SourceScanner](ctx)
			if err != nil {
				return nil, err
			}
			includeParser, err := graft.Dep[ports.IncludeParser](ctx)
			if err != nil {
				return nil, err
			}
			resolver, err := graft.Dep[ports.IncludeResolver](ctx)
			if err != nil {
				return nil, err
			}
			entryDetector, err := graft.Dep[ports.EntryDetector](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			files, err := graft.Dep[ports.FileChecker](ctx)
			if err != nil {
				return nil, err
			}
			cacheStore, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}
			compilerDriver, err := graft.Dep[ports.CompilerDriver](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			telemetry, err := graft.Dep[ports.Telemetry](ctx)
			if err != nil {
				return nil, err
			}

			return New(scanner, includeParser, resolver, entryDetector, hasher, files, cacheStore, compilerDriver, log, telemetry), nil
		},
	})
}
