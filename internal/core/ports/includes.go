package ports

// IncludeRef is one #include directive extracted from a source file.
type IncludeRef struct {
	Spelling string // the text between the delimiters
	Angle    bool   // true for <...>, false for "..."
}

// IncludeParser extracts #include directives from a file's lines.
//
//go:generate go run go.uber.org/mock/mockgen -source=includes.go -destination=mocks/mock_includes.go -package=mocks
type IncludeParser interface {
	// Parse reads path and returns every textually-matched #include
	// directive, in file order.
	Parse(path string) ([]IncludeRef, error)
}

// IncludeResolver resolves an include spelling to an absolute on-disk path.
type IncludeResolver interface {
	// Resolve attempts, in order: next to referrer (quoted only), each
	// search path, then the process working directory. It reports
	// ok=false rather than an error when nothing resolves — unresolved
	// includes are a documented, non-fatal case (system headers).
	Resolve(ref IncludeRef, referrer string, searchPaths []string) (resolved string, ok bool)
}
