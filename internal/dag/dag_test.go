package dag

import (
	"testing"
)

func TestGraph_AddNodeAndEdge(t *testing.T) {
	g := NewGraph()

	g.AddNode("docs")
	g.AddNode("lint")
	g.AddNode("all")

	if g.NodeCount() != 3 {
		t.Errorf("expected 3 nodes, got %d", g.NodeCount())
	}

	// all includes docs and lint
	if err := g.AddEdge("docs", "all"); err != nil {
		t.Errorf("failed to add edge: %v", err)
	}
	if err := g.AddEdge("lint", "all"); err != nil {
		t.Errorf("failed to add edge: %v", err)
	}

	if g.EdgeCount() != 2 {
		t.Errorf("expected 2 edges, got %d", g.EdgeCount())
	}
}

func TestGraph_AddEdge_InvalidNodes(t *testing.T) {
	g := NewGraph()
	g.AddNode("docs")

	if err := g.AddEdge("docs", "nonexistent"); err == nil {
		t.Error("expected error for unknown including group")
	}
	if err := g.AddEdge("nonexistent", "docs"); err == nil {
		t.Error("expected error for unknown included group")
	}
}

func TestGraph_AddEdge_SelfLoop(t *testing.T) {
	g := NewGraph()
	g.AddNode("all")

	if err := g.AddEdge("all", "all"); err == nil {
		t.Error("expected error for group including itself")
	}
}

func TestGraph_GetParentsAndChildren(t *testing.T) {
	g := NewGraph()
	g.AddNode("docs")
	g.AddNode("lint")
	g.AddNode("all")

	g.AddEdge("docs", "lint")
	g.AddEdge("docs", "all")
	g.AddEdge("lint", "all")

	parents := g.GetParents("all")
	if len(parents) != 2 {
		t.Errorf("expected all to include 2 groups, got %d", len(parents))
	}

	children := g.GetChildren("docs")
	if len(children) != 2 {
		t.Errorf("expected docs to be included by 2 groups, got %d", len(children))
	}
}

func TestGraph_HasCycle_NoCycle(t *testing.T) {
	g := NewGraph()
	g.AddNode("docs")
	g.AddNode("lint")
	g.AddNode("all")

	g.AddEdge("docs", "lint")
	g.AddEdge("lint", "all")

	hasCycle, path := g.HasCycle()
	if hasCycle {
		t.Errorf("expected no cycle, but found: %v", path)
	}
}

func TestGraph_HasCycle_WithCycle(t *testing.T) {
	g := NewGraph()
	g.AddNode("a")
	g.AddNode("b")
	g.AddNode("c")

	g.AddEdge("a", "b")
	g.AddEdge("b", "c")
	g.AddEdge("c", "a") // Creates cycle

	hasCycle, path := g.HasCycle()
	if !hasCycle {
		t.Error("expected cycle to be detected")
	}
	if len(path) == 0 {
		t.Error("expected cycle path to be non-empty")
	}
}

func TestGraph_TopologicalSort_Simple(t *testing.T) {
	g := NewGraph()
	g.AddNode("docs")
	g.AddNode("lint")
	g.AddNode("all")

	// lint includes docs, all includes lint
	g.AddEdge("docs", "lint")
	g.AddEdge("lint", "all")

	sorted, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("failed to sort: %v", err)
	}

	if len(sorted) != 3 {
		t.Fatalf("expected 3 nodes, got %d", len(sorted))
	}

	positions := make(map[string]int)
	for i, id := range sorted {
		positions[id] = i
	}

	if positions["docs"] >= positions["lint"] {
		t.Error("docs should come before lint")
	}
	if positions["lint"] >= positions["all"] {
		t.Error("lint should come before all")
	}
}

func TestGraph_TopologicalSort_Diamond(t *testing.T) {
	// base is included by docs and test, all includes both
	g := NewGraph()
	g.AddNode("base")
	g.AddNode("docs")
	g.AddNode("test")
	g.AddNode("all")

	g.AddEdge("base", "docs")
	g.AddEdge("base", "test")
	g.AddEdge("docs", "all")
	g.AddEdge("test", "all")

	sorted, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("failed to sort: %v", err)
	}

	positions := make(map[string]int)
	for i, id := range sorted {
		positions[id] = i
	}

	if positions["base"] != 0 {
		t.Error("base should be first")
	}
	if positions["all"] != 3 {
		t.Error("all should be last")
	}
	if positions["docs"] <= positions["base"] || positions["docs"] >= positions["all"] {
		t.Error("docs should be between base and all")
	}
	if positions["test"] <= positions["base"] || positions["test"] >= positions["all"] {
		t.Error("test should be between base and all")
	}
}

func TestGraph_TopologicalSort_WithCycle(t *testing.T) {
	g := NewGraph()
	g.AddNode("a")
	g.AddNode("b")

	g.AddEdge("a", "b")
	g.AddEdge("b", "a") // Cycle

	_, err := g.TopologicalSort()
	if err == nil {
		t.Error("expected error for cyclic graph")
	}
}

func TestGraph_Reachable(t *testing.T) {
	g := NewGraph()
	g.AddNode("docs")
	g.AddNode("lint")
	g.AddNode("test")
	g.AddNode("all")

	// all includes docs, lint, test; lint includes docs
	g.AddEdge("docs", "lint")
	g.AddEdge("docs", "all")
	g.AddEdge("lint", "all")
	g.AddEdge("test", "all")

	reachable := g.Reachable("all")
	if len(reachable) != 3 {
		t.Fatalf("expected 3 reachable groups, got %d: %v", len(reachable), reachable)
	}
	want := []string{"docs", "lint", "test"}
	for i, id := range want {
		if reachable[i] != id {
			t.Errorf("reachable[%d] = %q, want %q", i, reachable[i], id)
		}
	}

	if got := g.Reachable("docs"); len(got) != 0 {
		t.Errorf("expected docs to reach nothing, got %v", got)
	}
}

func TestGraph_Roots(t *testing.T) {
	g := NewGraph()
	g.AddNode("docs")
	g.AddNode("lint")
	g.AddNode("all")

	g.AddEdge("docs", "all")
	g.AddEdge("lint", "all")

	roots := g.Roots()
	if len(roots) != 2 {
		t.Errorf("expected 2 roots, got %d", len(roots))
	}
}

func TestGraph_DisconnectedComponents(t *testing.T) {
	g := NewGraph()
	// Two independent inclusion chains
	g.AddNode("docs")
	g.AddNode("docs-full")
	g.AddNode("test")
	g.AddNode("test-full")

	g.AddEdge("docs", "docs-full")
	g.AddEdge("test", "test-full")

	sorted, err := g.TopologicalSort()
	if err != nil {
		t.Fatalf("failed to sort: %v", err)
	}

	if len(sorted) != 4 {
		t.Errorf("expected 4 nodes, got %d", len(sorted))
	}

	positions := make(map[string]int)
	for i, id := range sorted {
		positions[id] = i
	}

	if positions["docs"] >= positions["docs-full"] {
		t.Error("docs should come before docs-full")
	}
	if positions["test"] >= positions["test-full"] {
		t.Error("test should come before test-full")
	}
}

func TestGraph_DuplicateEdges(t *testing.T) {
	g := NewGraph()
	g.AddNode("docs")
	g.AddNode("all")

	g.AddEdge("docs", "all")
	g.AddEdge("docs", "all")

	if g.EdgeCount() != 1 {
		t.Errorf("expected 1 edge (no duplicates), got %d", g.EdgeCount())
	}
}
