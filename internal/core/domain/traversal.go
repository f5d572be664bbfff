package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// visitMark tracks DFS state for a single traversal. It is always a
// function-local map, recreated fresh for every call — the redesign note
// in spec.md §9 asks that traversal state never live on the node itself so
// that two traversals can never alias each other's progress; a fresh map
// per call gives that property without needing an explicit NodeIndex arena.
type visitMark int

const (
	unvisited visitMark = 0
	visiting  visitMark = 1
	done      visitMark = 2
)

// TopoSort produces a build order for g: a linear ordering of every node
// such that each file appears after every file it includes. Traversal is
// depth-first, post-order, run in two passes — all headers first, then all
// translation units — so headers are always ordered before the units that
// include them, per spec.md §4.4.
func (g *DependencyGraph) TopoSort() ([]string, error) {
	marks := make(map[InternedString]visitMark, len(g.nodes))
	var stack []InternedString
	var order []InternedString

	var visit func(key InternedString) error
	visit = func(key InternedString) error {
		marks[key] = visiting
		stack = append(stack, key)

		node := g.nodes[key]
		for _, dep := range node.Includes {
			switch marks[dep] {
			case visiting:
				return g.cycleErr(stack, dep)
			case unvisited:
				if _, ok := g.nodes[dep]; ok {
					if err := visit(dep); err != nil {
						return err
					}
				}
			}
		}

		marks[key] = done
		stack = stack[:len(stack)-1]
		order = append(order, key)
		return nil
	}

	for _, key := range g.order {
		if !g.nodes[key].IsHeader && marks[key] == unvisited {
			continue // translation units wait for the second pass
		}
		if marks[key] == unvisited {
			if err := visit(key); err != nil {
				return nil, err
			}
		}
	}
	for _, key := range g.order {
		if marks[key] == unvisited {
			if err := visit(key); err != nil {
				return nil, err
			}
		}
	}

	out := make([]string, len(order))
	for i, key := range order {
		out[i] = key.String()
	}
	return out, nil
}

// HasCycle reports whether g's include edges contain a cycle, returning a
// two-node witness ("A -> B") on the first back-edge found. It performs the
// same DFS as TopoSort but without the header/translation-unit split, since
// cycle presence doesn't depend on traversal order.
func (g *DependencyGraph) HasCycle() (bool, string) {
	marks := make(map[InternedString]visitMark, len(g.nodes))
	var stack []InternedString
	var witness string

	var visit func(key InternedString) bool
	visit = func(key InternedString) bool {
		marks[key] = visiting
		stack = append(stack, key)

		node := g.nodes[key]
		for _, dep := range node.Includes {
			if marks[dep] == visiting {
				witness = fmt.Sprintf("%s -> %s", key.String(), dep.String())
				return true
			}
			if _, ok := g.nodes[dep]; ok && marks[dep] == unvisited {
				if visit(dep) {
					return true
				}
			}
		}

		marks[key] = done
		stack = stack[:len(stack)-1]
		return false
	}

	for _, key := range g.order {
		if marks[key] == unvisited {
			if visit(key) {
				return true, witness
			}
		}
	}
	return false, ""
}

func (g *DependencyGraph) cycleErr(stack []InternedString, back InternedString) error {
	witness := fmt.Sprintf("%s -> %s", stack[len(stack)-1].String(), back.String())
	return WithKind(zerr.With(ErrCircularDependency, "cycle", witness), ErrKindCircularDependency)
}

// TransitiveClosure returns every node reachable from start's includes,
// each exactly once, bounded by max entries. It does not include start
// itself.
func (g *DependencyGraph) TransitiveClosure(start string, max int) ([]string, error) {
	startKey := NewInternedString(start)
	if _, ok := g.nodes[startKey]; !ok {
		return nil, WithKind(zerr.With(ErrFileNotFound, "path", start), ErrKindFileNotFound)
	}

	seen := make(map[InternedString]bool)
	var out []string

	var walk func(key InternedString) error
	walk = func(key InternedString) error {
		node, ok := g.nodes[key]
		if !ok {
			return nil
		}
		for _, dep := range node.Includes {
			if seen[dep] {
				continue
			}
			seen[dep] = true
			if len(out) >= max {
				return WithKind(zerr.With(ErrTooManyFiles, "path", dep.String()), ErrKindTooManyFiles)
			}
			out = append(out, dep.String())
			if err := walk(dep); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(startKey); err != nil {
		return nil, err
	}
	return out, nil
}
