package fs

import (
	"bufio"
	"os"
	"strings"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/domain"
	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.IncludeParser = (*IncludeScanner)(nil)

// IncludeScanner extracts #include directives with a line-oriented scan,
// same as a C preprocessor's first pass: no comment stripping, no macro
// expansion, just leading whitespace then '#' then "include".
type IncludeScanner struct{}

// NewIncludeScanner creates a new IncludeScanner.
func NewIncludeScanner() *IncludeScanner {
	return &IncludeScanner{}
}

// Parse reads path line by line and returns every #include directive found.
func (s *IncludeScanner) Parse(path string) ([]ports.IncludeRef, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from a prior scan, not user input
	if err != nil {
		return nil, domain.WithKind(zerr.With(zerr.Wrap(err, "open source file"), "path", path), domain.ErrKindFileNotFound)
	}
	defer f.Close() //nolint:errcheck

	var refs []ports.IncludeRef
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 1024), 64*1024)
	for sc.Scan() {
		if ref, ok := parseIncludeLine(sc.Text()); ok {
			refs = append(refs, ref)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, domain.WithKind(zerr.With(zerr.Wrap(err, "read source file"), "path", path), domain.ErrKindParseFailed)
	}
	return refs, nil
}

func parseIncludeLine(line string) (ports.IncludeRef, bool) {
	p := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(p, "#") {
		return ports.IncludeRef{}, false
	}
	p = strings.TrimLeft(p[1:], " \t")
	if !strings.HasPrefix(p, "include") {
		return ports.IncludeRef{}, false
	}
	p = strings.TrimLeft(p[len("include"):], " \t")
	if p == "" {
		return ports.IncludeRef{}, false
	}

	open := p[0]
	var close byte
	var angle bool
	switch open {
	case '"':
		close = '"'
	case '<':
		close = '>'
		angle = true
	default:
		return ports.IncludeRef{}, false
	}

	end := strings.IndexByte(p[1:], close)
	if end < 0 {
		return ports.IncludeRef{}, false
	}
	return ports.IncludeRef{Spelling: p[1 : 1+end], Angle: angle}, true
}
