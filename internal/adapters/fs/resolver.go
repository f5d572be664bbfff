package fs

import (
	"os"
	"path/filepath"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
)

var _ ports.IncludeResolver = (*IncludeResolver)(nil)

// IncludeResolver resolves an #include spelling to an on-disk path,
// trying the referrer's own directory first (quoted includes only), then
// every configured search path, then the process's working directory.
// Failing all three is not an error: unresolved includes are assumed to
// be system headers outside the project.
type IncludeResolver struct{}

// NewIncludeResolver creates a new IncludeResolver.
func NewIncludeResolver() *IncludeResolver {
	return &IncludeResolver{}
}

// Resolve implements ports.IncludeResolver.
func (r *IncludeResolver) Resolve(ref ports.IncludeRef, referrer string, searchPaths []string) (string, bool) {
	if !ref.Angle {
		candidate := filepath.Join(filepath.Dir(referrer), ref.Spelling)
		if fileExists(candidate) {
			return candidate, true
		}
	}

	for _, dir := range searchPaths {
		candidate := filepath.Join(dir, ref.Spelling)
		if fileExists(candidate) {
			return candidate, true
		}
	}

	if fileExists(ref.Spelling) {
		if abs, err := filepath.Abs(ref.Spelling); err == nil {
			return abs, true
		}
		return ref.Spelling, true
	}

	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
