package domain

import "time"

// CacheVersion is the on-disk cache format tag (spec.md §4.6). A mismatch
// on load forces a clean cache rather than an error.
const CacheVersion uint32 = 1

// DependencyHash pairs a direct dependency's path with the content hash it
// had at the moment of the owning entry's last successful compile.
type DependencyHash struct {
	Path InternedString
	Hash uint64
}

// CacheEntry is the persisted metadata for one compiled source file
// (spec.md §3).
type CacheEntry struct {
	SourcePath   InternedString
	ObjectPath   InternedString
	SourceHash   uint64
	SourceMtime  time.Time
	LastCompiled time.Time
	Dependencies []DependencyHash
	Valid        bool
}

// BuildCache is the complete persistent cache for a project (spec.md §3).
// It holds only data and the pure bookkeeping operations that don't require
// touching a filesystem; the staleness *decision* needs fresh hashes from
// disk and therefore lives in the cache middleware (internal/engine/pipeline),
// which owns a ports.Hasher.
type BuildCache struct {
	Version    uint32
	ProjectDir string
	CacheDir   string
	Entries    map[string]*CacheEntry

	Hits          uint64
	Misses        uint64
	Invalidations uint64
}

// NewBuildCache creates an empty, current-version cache rooted at projectDir.
func NewBuildCache(projectDir, cacheDir string) *BuildCache {
	return &BuildCache{
		Version:    CacheVersion,
		ProjectDir: projectDir,
		CacheDir:   cacheDir,
		Entries:    make(map[string]*CacheEntry),
	}
}

// Find returns the entry for sourcePath, or nil if none exists.
func (c *BuildCache) Find(sourcePath string) *CacheEntry {
	return c.Entries[sourcePath]
}

// Upsert stores (or replaces) the entry for sourcePath, bounding the
// dependency list to MaxDependenciesPerEntry (spec.md §3).
func (c *BuildCache) Upsert(sourcePath, objectPath string, sourceHash uint64, deps []DependencyHash, now time.Time) {
	if len(deps) > MaxDependenciesPerEntry {
		deps = deps[:MaxDependenciesPerEntry]
	}
	entry := c.Entries[sourcePath]
	if entry == nil {
		entry = &CacheEntry{SourcePath: NewInternedString(sourcePath)}
		c.Entries[sourcePath] = entry
	}
	entry.ObjectPath = NewInternedString(objectPath)
	entry.SourceHash = sourceHash
	entry.SourceMtime = now
	entry.LastCompiled = now
	entry.Dependencies = deps
	entry.Valid = true
}

// Invalidate clears the valid bit for sourcePath without removing the entry
// (spec.md §4.6: "invalidation without deletion").
func (c *BuildCache) Invalidate(sourcePath string) {
	if entry := c.Entries[sourcePath]; entry != nil {
		entry.Valid = false
		c.Invalidations++
	}
}

// InvalidateDependents clears validity on every entry that lists changed as
// a direct dependency. Deeper invalidation happens implicitly: each
// dependent's own hash changes as a result, propagating further on its own
// next check (spec.md §4.6 and §9's documented direct-only limitation).
func (c *BuildCache) InvalidateDependents(changed string) {
	for _, entry := range c.Entries {
		for _, dep := range entry.Dependencies {
			if dep.Path.String() == changed {
				entry.Valid = false
				c.Invalidations++
				break
			}
		}
	}
}

// HitRate returns the fraction of checks that were cache hits, or 0 if no
// checks have happened yet.
func (c *BuildCache) HitRate() float64 {
	total := c.Hits + c.Misses
	if total == 0 {
		return 0
	}
	return float64(c.Hits) / float64(total)
}

// SizeBytes estimates the in-memory footprint of the cache's entries, used
// for the reporting the original implementation's build_cache_size_bytes
// provides (see SPEC_FULL.md's supplemented features).
func (c *BuildCache) SizeBytes() int {
	const perEntryOverhead = 64
	const perDepOverhead = 16
	size := 0
	for _, entry := range c.Entries {
		size += perEntryOverhead + len(entry.SourcePath.String()) + len(entry.ObjectPath.String())
		size += len(entry.Dependencies) * perDepOverhead
	}
	return size
}
