package ports

// Hasher computes the FNV-1a content hash used to detect changed sources.
// A return value of 0 means "could not read" — callers must treat it as a
// never-matches sentinel, not a valid hash.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashFile returns the FNV-1a 64-bit hash of path's bytes, or 0 if the
	// file could not be read.
	HashFile(path string) uint64

	// HashDependencies hashes every path in paths and returns a map from
	// path to hash. Independent reads are fanned out with a bounded
	// worker pool; the result map makes the concurrency invisible to the
	// caller.
	HashDependencies(paths []string) map[string]uint64
}
