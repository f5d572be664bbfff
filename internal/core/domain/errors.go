package domain

import "go.trai.ch/zerr"

// ErrKind classifies a failure the way spec.md §7 enumerates them, so
// callers above the domain layer can branch on failure category without
// string-matching error messages.
type ErrKind string

const (
	ErrKindNullInput           ErrKind = "null_input"
	ErrKindFileNotFound        ErrKind = "file_not_found"
	ErrKindParseFailed         ErrKind = "parse_failed"
	ErrKindCircularDependency  ErrKind = "circular_dependency"
	ErrKindTooManyFiles        ErrKind = "too_many_files"
	ErrKindTooManyIncludes     ErrKind = "too_many_includes"
	ErrKindTooManySearchPaths  ErrKind = "too_many_search_paths"
	ErrKindOutOfMemory         ErrKind = "out_of_memory"
	ErrKindInvalidPath         ErrKind = "invalid_path"
	ErrKindSortFailed          ErrKind = "sort_failed"
	ErrKindCompilerNotFound    ErrKind = "compiler_not_found"
	ErrKindCompilationFailed   ErrKind = "compilation_failed"
	ErrKindLinkFailed          ErrKind = "link_failed"
	ErrKindCacheCorrupt        ErrKind = "cache_corrupt"
	ErrKindCacheIOFailed       ErrKind = "cache_io_failed"
	ErrKindNoTranslationUnits  ErrKind = "no_translation_units"
)

var (
	// ErrFileNotFound is returned when a referenced source file does not exist.
	ErrFileNotFound = zerr.New("file not found")

	// ErrTooManyFiles is returned when a graph would exceed MaxFiles.
	ErrTooManyFiles = zerr.New("too many files")

	// ErrTooManyIncludes is returned when a node would exceed MaxIncludesPerFile.
	ErrTooManyIncludes = zerr.New("too many includes")

	// ErrTooManySearchPaths is returned when a graph would exceed MaxSearchPaths.
	ErrTooManySearchPaths = zerr.New("too many search paths")

	// ErrCircularDependency is returned when the include graph contains a cycle.
	ErrCircularDependency = zerr.New("circular dependency")

	// ErrSortFailed wraps a topological sort failure that is not a cycle.
	ErrSortFailed = zerr.New("topological sort failed")

	// ErrInvalidPath is returned for a source path that fails basic validation.
	ErrInvalidPath = zerr.New("invalid path")

	// ErrCompilerNotFound is returned when no supported compiler can be located.
	ErrCompilerNotFound = zerr.New("no compiler found")

	// ErrCompilationFailed is returned when a compiler subprocess exits non-zero.
	ErrCompilationFailed = zerr.New("compilation failed")

	// ErrLinkFailed is returned when the linker subprocess exits non-zero.
	ErrLinkFailed = zerr.New("link failed")

	// ErrCacheCorrupt is returned (informationally) when the on-disk cache fails to parse.
	ErrCacheCorrupt = zerr.New("cache corrupt")

	// ErrCacheIOFailed is returned (informationally) when the cache cannot be read or written.
	ErrCacheIOFailed = zerr.New("cache io failed")

	// ErrNoTranslationUnits is returned when a graph contains no compilable sources.
	ErrNoTranslationUnits = zerr.New("no translation units found")
)

// WithKind attaches an ErrKind to err as zerr metadata.
func WithKind(err error, kind ErrKind) error {
	return zerr.With(err, "kind", string(kind))
}
