// Package domain contains the core types and pure business logic of the
// build driver: the dependency graph, cache data model, task model, and
// error vocabulary. Nothing in this package touches a filesystem or spawns
// a process — that belongs to internal/adapters; domain only decides.
package domain

import (
	"iter"

	"go.trai.ch/zerr"
)

// DependencyGraph is the in-memory include graph described in spec.md §3.
// Nodes are keyed by normalized path; iteration order follows insertion
// order so that builds stay deterministic (spec.md: "iteration order =
// insertion order for deterministic builds").
type DependencyGraph struct {
	nodes       map[InternedString]*SourceNode
	order       []InternedString
	searchPaths []InternedString
}

// NewGraph creates an empty DependencyGraph.
func NewGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[InternedString]*SourceNode),
	}
}

// AddSearchPath appends a search directory consulted by include resolution.
// It enforces MaxSearchPaths, surfacing the overflow explicitly rather than
// growing without bound (spec.md §3).
func (g *DependencyGraph) AddSearchPath(dir string) error {
	if len(g.searchPaths) >= MaxSearchPaths {
		return WithKind(zerr.With(ErrTooManySearchPaths, "path", dir), ErrKindTooManySearchPaths)
	}
	g.searchPaths = append(g.searchPaths, NewInternedString(dir))
	return nil
}

// SearchPaths returns the configured search directories in registration order.
func (g *DependencyGraph) SearchPaths() []string {
	out := make([]string, len(g.searchPaths))
	for i, p := range g.searchPaths {
		out[i] = p.String()
	}
	return out
}

// AddNode inserts a new node for path, classified by extension. Insertion
// is idempotent on path equality: calling AddNode twice for the same path
// returns the existing node and created=false, never an error — this is
// what makes DependencyGraph.AddFile-style recursion safe on diamond
// dependencies (spec.md §8: "add_file is idempotent").
func (g *DependencyGraph) AddNode(path string) (node *SourceNode, created bool, err error) {
	key := NewInternedString(path)
	if existing, ok := g.nodes[key]; ok {
		return existing, false, nil
	}
	if len(g.nodes) >= MaxFiles {
		return nil, false, WithKind(zerr.With(ErrTooManyFiles, "path", path), ErrKindTooManyFiles)
	}

	node = &SourceNode{Path: key, IsHeader: IsHeaderFile(path)}
	g.nodes[key] = node
	g.order = append(g.order, key)
	return node, true, nil
}

// SetIncludes records the resolved, on-disk includes of the node at path.
// It enforces MaxIncludesPerFile.
func (g *DependencyGraph) SetIncludes(path string, includes []string) error {
	key := NewInternedString(path)
	node, ok := g.nodes[key]
	if !ok {
		return WithKind(zerr.With(ErrFileNotFound, "path", path), ErrKindFileNotFound)
	}
	if len(includes) > MaxIncludesPerFile {
		return WithKind(zerr.With(ErrTooManyIncludes, "path", path), ErrKindTooManyIncludes)
	}
	node.Includes = NewInternedStrings(includes)
	return nil
}

// SetHasMain records whether path's translation unit contains a textual
// program entry point (spec.md §4.4).
func (g *DependencyGraph) SetHasMain(path string, hasMain bool) {
	if node, ok := g.nodes[NewInternedString(path)]; ok {
		node.HasMain = hasMain
	}
}

// Find looks up the node for path.
func (g *DependencyGraph) Find(path string) (*SourceNode, bool) {
	node, ok := g.nodes[NewInternedString(path)]
	return node, ok
}

// Len returns the number of nodes in the graph.
func (g *DependencyGraph) Len() int {
	return len(g.nodes)
}

// Nodes iterates every node in insertion order.
func (g *DependencyGraph) Nodes() iter.Seq[*SourceNode] {
	return func(yield func(*SourceNode) bool) {
		for _, path := range g.order {
			if !yield(g.nodes[path]) {
				return
			}
		}
	}
}

// TranslationUnits iterates every non-header node in insertion order.
func (g *DependencyGraph) TranslationUnits() iter.Seq[*SourceNode] {
	return func(yield func(*SourceNode) bool) {
		for _, path := range g.order {
			node := g.nodes[path]
			if !node.IsHeader {
				if !yield(node) {
					return
				}
			}
		}
	}
}

// FindMain returns the path of the first translation unit (in insertion
// order) whose HasMain flag is set, matching spec.md §4.4: "First match
// wins."
func (g *DependencyGraph) FindMain() (string, bool) {
	for node := range g.TranslationUnits() {
		if node.HasMain {
			return node.Path.String(), true
		}
	}
	return "", false
}

// LibrarySources returns every non-header file whose HasMain flag is not
// set, per spec.md §4.4's library classification rule.
func (g *DependencyGraph) LibrarySources() []string {
	var out []string
	for node := range g.TranslationUnits() {
		if !node.HasMain {
			out = append(out, node.Path.String())
		}
	}
	return out
}
