package fs

import (
	"bufio"
	"os"
	"strings"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
)

var _ ports.EntryDetector = (*MainDetector)(nil)

// MainDetector implements ports.EntryDetector with a textual heuristic:
// no preprocessing, no parsing, just a substring search.
type MainDetector struct{}

// NewMainDetector creates a new MainDetector.
func NewMainDetector() *MainDetector {
	return &MainDetector{}
}

// HasMain implements ports.EntryDetector.
func (d *MainDetector) HasMain(path string) bool {
	return HasMainFunction(path)
}

// hasMainMarkers are the textual patterns the original resolver looks for
// to flag a translation unit as a program entry point: a heuristic, not a
// parse — "int main" inside a comment or string still counts.
var hasMainMarkers = []string{"int main", "void main"}

// HasMainFunction scans path for a textual main() entry point.
func HasMainFunction(path string) bool {
	f, err := os.Open(path) //nolint:gosec // path comes from a prior scan, not user input
	if err != nil {
		return false
	}
	defer f.Close() //nolint:errcheck

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1024), 64*1024)
	for sc.Scan() {
		line := sc.Text()
		for _, marker := range hasMainMarkers {
			if strings.Contains(line, marker) {
				return true
			}
		}
	}
	return false
}
