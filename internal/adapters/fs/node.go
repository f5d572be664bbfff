package fs

import (
	"context"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
	"github.com/grindlemire/graft"
)

const (
	ScannerNodeID       graft.ID = "adapter.fs.scanner"
	IncludeParserNodeID graft.ID = "adapter.fs.include_parser"
	ResolverNodeID      graft.ID = "adapter.fs.resolver"
	HasherNodeID        graft.ID = "adapter.fs.hasher"
	EntryDetectorNodeID graft.ID = "adapter.fs.entry_detector"
	FileCheckerNodeID   graft.ID = "adapter.fs.file_checker"
)

func init() {
	graft.Register(graft.Node[ports.SourceScanner]{
		ID:        ScannerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SourceScanner, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.IncludeParser]{
		ID:        IncludeParserNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.IncludeParser, error) {
			return NewIncludeScanner(), nil
		},
	})

	graft.Register(graft.Node[ports.IncludeResolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.IncludeResolver, error) {
			return NewIncludeResolver(), nil
		},
	})

	graft.Register(graft.Node[ports.Hasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Hasher, error) {
			return NewHasher(), nil
		},
	})

	graft.Register(graft.Node[ports.EntryDetector]{
		ID:        EntryDetectorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.EntryDetector, error) {
			return NewMainDetector(), nil
		},
	})

	graft.Register(graft.Node[ports.FileChecker]{
		ID:        FileCheckerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.FileChecker, error) {
			return NewChecker(), nil
		},
	})
}
