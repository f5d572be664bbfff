package domain_test

import (
	"strings"
	"testing"

	"github.com/RPDevJesco/EventChains-BuildSystem/internal/core/domain"
)

func mustAddNode(t *testing.T, g *domain.DependencyGraph, path string) *domain.SourceNode {
	t.Helper()
	node, _, err := g.AddNode(path)
	if err != nil {
		t.Fatalf("AddNode(%q): %v", path, err)
	}
	return node
}

// linearChain builds a.h (no includes) <- b.h (#include a.h) <- m.c
// (#include b.h), the literal scenario from spec.md §8.1.
func linearChain(t *testing.T) *domain.DependencyGraph {
	t.Helper()
	g := domain.NewGraph()
	mustAddNode(t, g, "a.h")
	mustAddNode(t, g, "b.h")
	m := mustAddNode(t, g, "m.c")
	m.HasMain = true

	if err := g.SetIncludes("b.h", []string{"a.h"}); err != nil {
		t.Fatal(err)
	}
	if err := g.SetIncludes("m.c", []string{"b.h"}); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestTopoSort_LinearChain(t *testing.T) {
	g := linearChain(t)

	order, err := g.TopoSort()
	if err != nil {
		t.Fatalf("TopoSort: %v", err)
	}

	want := []string{"a.h", "b.h", "m.c"}
	if len(order) != len(want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
	for i, p := range want {
		if order[i] != p {
			t.Errorf("order[%d] = %q, want %q (full order %v)", i, order[i], p, order)
		}
	}
}

func TestTopoSort_EveryEdgePointsForward(t *testing.T) {
	g := domain.NewGraph()
	mustAddNode(t, g, "a.h")
	mustAddNode(t, g, "b.h")
	mustAddNode(t, g, "c.h")
	if err := g.SetIncludes("b.h", []string{"a.h"}); err != nil {
		t.Fatal(err)
	}
	if err := g.SetIncludes("c.h", []string{"a.h", "b.h"}); err != nil {
		t.Fatal(err)
	}

	order, err := g.TopoSort()
	if err != nil {
		t.Fatalf("TopoSort: %v", err)
	}

	index := make(map[string]int, len(order))
	for i, p := range order {
		index[p] = i
	}

	g2 := domain.NewGraph()
	mustAddNode(t, g2, "a.h")
	mustAddNode(t, g2, "b.h")
	mustAddNode(t, g2, "c.h")
	_ = g2.SetIncludes("b.h", []string{"a.h"})
	_ = g2.SetIncludes("c.h", []string{"a.h", "b.h"})

	for node := range g2.Nodes() {
		for _, dep := range node.Includes {
			if index[dep.String()] >= index[node.Path.String()] {
				t.Errorf("edge %s -> %s does not point forward in order %v", node.Path.String(), dep.String(), order)
			}
		}
	}
}

func TestHasCycle_DetectsCircularDependency(t *testing.T) {
	g := domain.NewGraph()
	mustAddNode(t, g, "a.h")
	mustAddNode(t, g, "b.h")
	if err := g.SetIncludes("a.h", []string{"b.h"}); err != nil {
		t.Fatal(err)
	}
	if err := g.SetIncludes("b.h", []string{"a.h"}); err != nil {
		t.Fatal(err)
	}

	hasCycle, witness := g.HasCycle()
	if !hasCycle {
		t.Fatal("HasCycle() = false, want true")
	}
	if witness == "" || !strings.Contains(witness, "->") {
		t.Errorf("witness = %q, want an A -> B style witness", witness)
	}
}

func TestTopoSort_ReturnsCircularDependencyError(t *testing.T) {
	g := domain.NewGraph()
	mustAddNode(t, g, "a.h")
	mustAddNode(t, g, "b.h")
	_ = g.SetIncludes("a.h", []string{"b.h"})
	_ = g.SetIncludes("b.h", []string{"a.h"})

	_, err := g.TopoSort()
	if err == nil {
		t.Fatal("TopoSort() error = nil, want CircularDependency")
	}
}

func TestHasCycle_AcyclicGraphReportsFalse(t *testing.T) {
	g := linearChain(t)
	hasCycle, witness := g.HasCycle()
	if hasCycle {
		t.Errorf("HasCycle() = true, witness %q, want false on an acyclic graph", witness)
	}
}

func TestAddNode_IsIdempotent(t *testing.T) {
	g := domain.NewGraph()
	node1, created1, err := g.AddNode("m.c")
	if err != nil {
		t.Fatal(err)
	}
	if !created1 {
		t.Fatal("first AddNode should report created=true")
	}

	node2, created2, err := g.AddNode("m.c")
	if err != nil {
		t.Fatal(err)
	}
	if created2 {
		t.Error("second AddNode should report created=false")
	}
	if node1 != node2 {
		t.Error("AddNode should return the same node pointer for an existing path")
	}
	if g.Len() != 1 {
		t.Errorf("graph has %d nodes, want 1", g.Len())
	}
}

func TestFindMain_FirstMatchWins(t *testing.T) {
	g := domain.NewGraph()
	lib := mustAddNode(t, g, "lib.c")
	lib.HasMain = false
	m := mustAddNode(t, g, "m.c")
	m.HasMain = true
	later := mustAddNode(t, g, "z.c")
	later.HasMain = true

	entry, ok := g.FindMain()
	if !ok {
		t.Fatal("FindMain() ok = false, want true")
	}
	if entry != "m.c" {
		t.Errorf("FindMain() = %q, want %q", entry, "m.c")
	}
}

func TestLibrarySources_ExcludesEntryPoint(t *testing.T) {
	g := domain.NewGraph()
	mustAddNode(t, g, "lib.c")
	m := mustAddNode(t, g, "m.c")
	m.HasMain = true

	libs := g.LibrarySources()
	if len(libs) != 1 || libs[0] != "lib.c" {
		t.Errorf("LibrarySources() = %v, want [lib.c]", libs)
	}
}

func TestTransitiveClosure_LinearChain(t *testing.T) {
	g := linearChain(t)

	closure, err := g.TransitiveClosure("m.c", 16)
	if err != nil {
		t.Fatalf("TransitiveClosure: %v", err)
	}

	want := map[string]bool{"a.h": true, "b.h": true}
	if len(closure) != len(want) {
		t.Fatalf("closure = %v, want exactly {a.h, b.h}", closure)
	}
	for _, p := range closure {
		if !want[p] {
			t.Errorf("closure contains unexpected %q", p)
		}
	}
}

func TestAddNode_TooManyFiles(t *testing.T) {
	g := domain.NewGraph()
	for i := 0; i < domain.MaxFiles; i++ {
		if _, _, err := g.AddNode(strings.Repeat("x", i+1) + ".c"); err != nil {
			t.Fatalf("AddNode #%d: %v", i, err)
		}
	}
	if _, _, err := g.AddNode("one-too-many.c"); err == nil {
		t.Fatal("AddNode past MaxFiles should fail")
	}
}

func TestSetIncludes_TooManyIncludes(t *testing.T) {
	g := domain.NewGraph()
	mustAddNode(t, g, "m.c")
	includes := make([]string, domain.MaxIncludesPerFile+1)
	for i := range includes {
		includes[i] = "h.h"
	}
	if err := g.SetIncludes("m.c", includes); err == nil {
		t.Fatal("SetIncludes past MaxIncludesPerFile should fail")
	}
}
