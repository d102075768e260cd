// Package dag provides directed acyclic graph operations for dependency
// groups. It supports cycle detection and topological ordering so that
// group composition (a group pulling in the project's own extras) can be
// expanded safely.
package dag

import (
	"fmt"
	"sort"
)

// Graph is a directed graph keyed by group name. Edges point from an
// included group to the groups that include it.
type Graph struct {
	nodes   map[string]bool
	edges   map[string][]string // included group -> including groups
	parents map[string][]string // including group -> included groups
}

// NewGraph creates a new empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:   make(map[string]bool),
		edges:   make(map[string][]string),
		parents: make(map[string][]string),
	}
}

// AddNode adds a node to the graph.
func (g *Graph) AddNode(id string) {
	if !g.nodes[id] {
		g.nodes[id] = true
		g.edges[id] = []string{}
		g.parents[id] = []string{}
	}
}

// AddEdge records that childID includes parentID's requirements.
func (g *Graph) AddEdge(parentID, childID string) error {
	if !g.nodes[parentID] {
		return fmt.Errorf("unknown group %q", parentID)
	}
	if !g.nodes[childID] {
		return fmt.Errorf("unknown group %q", childID)
	}
	if parentID == childID {
		return fmt.Errorf("group %q includes itself", parentID)
	}

	if !contains(g.edges[parentID], childID) {
		g.edges[parentID] = append(g.edges[parentID], childID)
	}
	if !contains(g.parents[childID], parentID) {
		g.parents[childID] = append(g.parents[childID], parentID)
	}

	return nil
}

// HasNode reports whether the graph contains a node.
func (g *Graph) HasNode(id string) bool {
	return g.nodes[id]
}

// GetParents returns the groups a node includes directly.
func (g *Graph) GetParents(id string) []string {
	return g.parents[id]
}

// GetChildren returns the groups that include a node directly.
func (g *Graph) GetChildren(id string) []string {
	return g.edges[id]
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int {
	count := 0
	for _, children := range g.edges {
		count += len(children)
	}
	return count
}

// HasCycle returns true if the graph contains a cycle, along with the
// cycle path for error reporting.
func (g *Graph) HasCycle() (bool, []string) {
	visited := make(map[string]bool)
	recStack := make(map[string]bool)
	path := make(map[string]string)

	var cyclePath []string

	var dfs func(id string) bool
	dfs = func(id string) bool {
		visited[id] = true
		recStack[id] = true

		for _, childID := range g.edges[id] {
			if !visited[childID] {
				path[childID] = id
				if dfs(childID) {
					return true
				}
			} else if recStack[childID] {
				// Found cycle, reconstruct path
				cyclePath = []string{childID}
				for curr := id; curr != childID; curr = path[curr] {
					cyclePath = append([]string{curr}, cyclePath...)
				}
				cyclePath = append([]string{childID}, cyclePath...)
				return true
			}
		}

		recStack[id] = false
		return false
	}

	for _, id := range sortedIDs(g.nodes) {
		if !visited[id] {
			if dfs(id) {
				return true, cyclePath
			}
		}
	}

	return false, nil
}

// TopologicalSort returns node IDs with included groups ordered before
// the groups that include them. Returns an error if the graph contains
// a cycle.
func (g *Graph) TopologicalSort() ([]string, error) {
	if hasCycle, cyclePath := g.HasCycle(); hasCycle {
		return nil, fmt.Errorf("cycle detected: %v", cyclePath)
	}

	visited := make(map[string]bool)
	var result []string

	var visit func(id string)
	visit = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true

		for _, parentID := range g.parents[id] {
			visit(parentID)
		}

		result = append(result, id)
	}

	for _, id := range sortedIDs(g.nodes) {
		visit(id)
	}

	return result, nil
}

// Reachable returns every group transitively included by id, not
// counting id itself.
func (g *Graph) Reachable(id string) []string {
	seen := make(map[string]bool)

	var visit func(nodeID string)
	visit = func(nodeID string) {
		for _, parentID := range g.parents[nodeID] {
			if !seen[parentID] {
				seen[parentID] = true
				visit(parentID)
			}
		}
	}
	visit(id)

	return sortedIDs(seen)
}

// Roots returns groups that include nothing.
func (g *Graph) Roots() []string {
	var roots []string
	for id := range g.nodes {
		if len(g.parents[id]) == 0 {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)
	return roots
}

func sortedIDs(set map[string]bool) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func contains(slice []string, str string) bool {
	for _, s := range slice {
		if s == str {
			return true
		}
	}
	return false
}
