package fs

import "github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"

var _ ports.FileChecker = (*Checker)(nil)

// Checker implements ports.FileChecker with a plain os.Stat.
type Checker struct{}

// NewChecker creates a new Checker.
func NewChecker() *Checker {
	return &Checker{}
}

// Exists implements ports.FileChecker.
func (c *Checker) Exists(path string) bool {
	return fileExists(path)
}
