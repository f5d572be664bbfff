package pipeline

import (
	"context"
	"time"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/domain"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
)

// objectPathContextPrefix namespaces the per-source object path entries
// the cache middleware leaves in the event Context on a cache hit. The
// link step does not read them; the orchestrator collects object paths
// from its own compile loop.
const objectPathContextPrefix = "object:"

// NewCacheMiddleware implements the persistent-cache skip/recompile
// decision. It is the only middleware that can short-circuit the chain
// entirely: on a true cache hit (content unchanged AND the object file
// still exists on disk) it never calls next.
func NewCacheMiddleware(cache *domain.BuildCache, hasher ports.Hasher, files ports.FileChecker) Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, event *Event, ectx *Context) *Result {
			if event.Kind != EventCompile || event.Compile == nil {
				return next(ctx, event, ectx)
			}

			source := event.Compile.Source
			if source.IsHeader {
				return &Result{Success: true, CacheHit: true}
			}
			sourcePath := source.Path.String()
			objectPath := event.ObjectPath

			if cache != nil && !needsRecompilation(cache, hasher, sourcePath) && files.Exists(objectPath) {
				ectx.Set(objectPathContextPrefix+sourcePath, objectPath)
				cache.Hits++
				return &Result{Success: true, CacheHit: true, ObjectPath: objectPath}
			}
			cache.Misses++

			result := next(ctx, event, ectx)
			if result.Success && cache != nil {
				updateCache(cache, hasher, source, objectPath)
			}
			return result
		}
	}
}

// needsRecompilation decides freshness purely from content hashes,
// leaving the object-file existence check to the caller — persistence
// across a deleted build directory depends on that separation.
func needsRecompilation(cache *domain.BuildCache, hasher ports.Hasher, sourcePath string) bool {
	entry := cache.Find(sourcePath)
	if entry == nil || !entry.Valid {
		return true
	}

	currentHash := hasher.HashFile(sourcePath)
	if currentHash == 0 || currentHash != entry.SourceHash {
		return true
	}

	for _, dep := range entry.Dependencies {
		depHash := hasher.HashFile(dep.Path.String())
		if depHash == 0 {
			continue // dependency absent on disk; can't compare, so don't fault it
		}
		if depHash != dep.Hash {
			return true
		}
	}
	return false
}

func updateCache(cache *domain.BuildCache, hasher ports.Hasher, source *domain.SourceNode, objectPath string) {
	sourcePath := source.Path.String()
	sourceHash := hasher.HashFile(sourcePath)

	depPaths := make([]string, len(source.Includes))
	for i, inc := range source.Includes {
		depPaths[i] = inc.String()
	}
	hashes := hasher.HashDependencies(depPaths)

	deps := make([]domain.DependencyHash, len(depPaths))
	for i, p := range depPaths {
		deps[i] = domain.DependencyHash{Path: domain.NewInternedString(p), Hash: hashes[p]}
	}

	cache.Upsert(sourcePath, objectPath, sourceHash, deps, time.Now())
}
