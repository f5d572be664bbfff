// Package fs provides filesystem adapters: source discovery, include
// parsing and resolution, and content hashing.
package fs

import (
	"io/fs"
	"path/filepath"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/domain"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
)

var _ ports.SourceScanner = (*Walker)(nil)

// defaultExcludes are directory basenames a scan never descends into,
// independent of any caller-supplied exclusion list (spec.md §4.1).
var defaultExcludes = []string{
	"build", "builds", ".git", ".svn", ".hg", "node_modules", "vendor",
	"__pycache__", ".eventchains", "CMakeFiles", ".vs", ".vscode", ".idea",
}

// Walker discovers candidate source files under a project root.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// Scan walks root recursively, returning every .c/.cpp/.cc/.h/.hpp file
// found in a deterministic order, skipping directories named in
// defaultExcludes or extraExcludes. A failure to descend into a
// subdirectory (permission denied, typically) is swallowed and that
// subtree is skipped silently; only a failure on root itself is surfaced
// (spec.md §9: "scanning a subdirectory fails ... the source continues
// silently").
func (w *Walker) Scan(root string, extraExcludes []string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && shouldSkipDir(d.Name(), extraExcludes) {
				return filepath.SkipDir
			}
			return nil
		}
		if domain.IsSourceFile(path) {
			found = append(found, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return found, nil
}

func shouldSkipDir(name string, extraExcludes []string) bool {
	for _, ex := range defaultExcludes {
		if name == ex {
			return true
		}
	}
	for _, ex := range extraExcludes {
		if matched, _ := filepath.Match(ex, name); matched {
			return true
		}
	}
	return false
}
