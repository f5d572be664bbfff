package domain

import "strings"

// Limits bound the graph's memory footprint and give an explicit, reportable
// failure instead of unbounded growth.
const (
	MaxFiles            = 1024
	MaxIncludesPerFile  = 256
	MaxSearchPaths      = 64
	MaxDependenciesPerEntry = 128
)

// translationUnitExts and headerExts classify a file by extension alone.
var (
	translationUnitExts = map[string]bool{".c": true, ".cpp": true, ".cc": true}
	headerExts          = map[string]bool{".h": true, ".hpp": true}
)

// IsTranslationUnit reports whether path's extension marks it as a
// compilable source file.
func IsTranslationUnit(path string) bool {
	return translationUnitExts[extOf(path)]
}

// IsHeaderFile reports whether path's extension marks it as a header.
func IsHeaderFile(path string) bool {
	return headerExts[extOf(path)]
}

// IsSourceFile reports whether path is either a translation unit or a header.
func IsSourceFile(path string) bool {
	return IsTranslationUnit(path) || IsHeaderFile(path)
}

func extOf(path string) string {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return ""
	}
	slash := strings.LastIndexAny(path, "/\\")
	if slash > i {
		return ""
	}
	return strings.ToLower(path[i:])
}

// SourceNode is one discovered file. It is plain data: visited/on-stack/
// order-index traversal flags are deliberately absent here — they live in
// per-traversal maps inside the graph, keyed by path, so a node never
// carries state left over from a previous sort.
type SourceNode struct {
	// Path is the absolute, separator-normalized path to the file.
	Path InternedString

	// IsHeader is true for .h/.hpp files, false for .c/.cpp/.cc files.
	IsHeader bool

	// Includes holds the resolved, absolute paths of every #include this
	// file names that was found on disk. Unresolved includes (system
	// headers, typically) are never stored here. A resolved include that
	// was not among the scanned files (one found through a search path
	// outside the source tree, or inside an excluded directory) is stored
	// but has no node of its own; traversals skip such entries.
	Includes []InternedString

	// HasMain is set by entry-point detection for translation units only;
	// always false for headers.
	HasMain bool
}
