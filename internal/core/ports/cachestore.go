package ports

import "github.com/RPDevJesco/EventChains-BuildSystem/internal/core/domain"

// CacheStore persists a BuildCache to durable storage across invocations,
// independent of whatever build directory holds the object files it
// describes.
//
//go:generate go run go.uber.org/mock/mockgen -source=cachestore.go -destination=mocks/mock_cachestore.go -package=mocks
type CacheStore interface {
	// Load reads the persisted cache for projectDir, returning a fresh
	// empty cache (not an error) if none exists yet.
	Load(projectDir, cacheDir string) (*domain.BuildCache, error)

	// Save atomically persists cache, surviving a crash mid-write.
	Save(cache *domain.BuildCache) error

	// Clear removes the persisted cache file entirely.
	Clear(projectDir, cacheDir string) error
}
