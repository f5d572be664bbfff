package ports

import "github.com/RPDevJesco/EventChains-BuildSystem/internal/core/domain"

// ConfigLoader merges an optional project defaults file into a
// BuildConfig before CLI flags are applied over the top.
//
//go:generate go run go.uber.org/mock/mockgen -source=config.go -destination=mocks/mock_config.go -package=mocks
type ConfigLoader interface {
	// Load reads the defaults file at path, if it exists, and returns the
	// partial config it describes. A missing file is not an error.
	Load(path string) (domain.BuildConfig, error)
}
