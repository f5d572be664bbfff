package fs

import (
	"hash/fnv"
	"io"
	"os"
	"sync"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
	"golang.org/x/sync/errgroup"
)

var _ ports.Hasher = (*Hasher)(nil)

// maxConcurrentHashes bounds how many files Hasher.HashDependencies reads
// at once. Hashing is I/O-bound and the file count is usually small, so a
// modest fan-out is plenty; this is not task-level build parallelism.
const maxConcurrentHashes = 8

// Hasher computes FNV-1a 64-bit content hashes using the stdlib's
// hash/fnv, which already implements the exact offset basis and prime the
// cache format is defined against.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// HashFile implements ports.Hasher.
func (h *Hasher) HashFile(path string) uint64 {
	f, err := os.Open(path) //nolint:gosec // path comes from the graph, not user input
	if err != nil {
		return 0
	}
	defer f.Close() //nolint:errcheck

	sum := fnv.New64a()
	if _, err := io.Copy(sum, f); err != nil {
		return 0
	}
	return sum.Sum64()
}

// HashDependencies implements ports.Hasher, fanning reads out across a
// bounded worker pool.
func (h *Hasher) HashDependencies(paths []string) map[string]uint64 {
	out := make(map[string]uint64, len(paths))
	var mu sync.Mutex

	g := new(errgroup.Group)
	g.SetLimit(maxConcurrentHashes)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			hash := h.HashFile(path)
			mu.Lock()
			out[path] = hash
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // HashFile never returns an error; it reports 0 instead
	return out
}
