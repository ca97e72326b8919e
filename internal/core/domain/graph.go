// Package domain contains the core domain models for the build engine: the
// rule/task/vertex records, the dependency graph built from them, and the
// stable error vocabulary every other package reports through.
package domain

import (
	"fmt"

	"go.trai.ch/zerr"
)

// Graph is an acyclic directed graph of Vertex records. An edge u -> v
// means "producing u's outputs requires v's outputs first"; v is said to be
// a dependency of u, and u a dependent of v.
//
// Graph is not safe for concurrent use; callers serialize access (the
// Worker driver owns the graph for the duration of one build).
type Graph struct {
	vertices map[InternedString]*Vertex
	order    []InternedString // insertion order, for deterministic enumeration
	out      map[InternedString]map[InternedString]struct{}
	in       map[InternedString]map[InternedString]struct{}
}

// NewGraph creates a new, empty Graph.
func NewGraph() *Graph {
	return &Graph{
		vertices: make(map[InternedString]*Vertex),
		out:      make(map[InternedString]map[InternedString]struct{}),
		in:       make(map[InternedString]map[InternedString]struct{}),
	}
}

// AddVertex inserts a vertex. It fails if a vertex with the same ID already
// exists — callers are expected to have already run the uniqueness pass of
// the graph builder, so this is a defensive guard rather than the primary
// diagnostic path.
func (g *Graph) AddVertex(v Vertex) error {
	if _, exists := g.vertices[v.ID]; exists {
		return zerr.With(zerr.Wrap(ErrTargetAlreadyExists, v.ID.String()), "name", v.ID.String())
	}
	stored := v
	g.vertices[v.ID] = &stored
	g.order = append(g.order, v.ID)
	g.out[v.ID] = make(map[InternedString]struct{})
	g.in[v.ID] = make(map[InternedString]struct{})
	return nil
}

// Get returns the vertex with the given ID.
func (g *Graph) Get(id InternedString) (*Vertex, bool) {
	v, ok := g.vertices[id]
	return v, ok
}

// Len returns the number of vertices currently in the graph.
func (g *Graph) Len() int {
	return len(g.vertices)
}

// AddEdge records that u depends on v (v must be produced first). It
// rejects the edge before committing if v can already reach u, which would
// close a cycle.
func (g *Graph) AddEdge(u, v InternedString) error {
	if _, ok := g.vertices[u]; !ok {
		return zerr.With(zerr.Wrap(ErrVertexNotFound, u.String()), "vertex", u.String())
	}
	if _, ok := g.vertices[v]; !ok {
		return zerr.With(zerr.Wrap(ErrVertexNotFound, v.String()), "vertex", v.String())
	}
	if u == v || g.reaches(v, u) {
		cycle := fmt.Sprintf("%s -> %s", u.String(), v.String())
		return zerr.With(zerr.Wrap(ErrCycleDetected, cycle), "cycle", cycle)
	}
	g.out[u][v] = struct{}{}
	g.in[v][u] = struct{}{}
	return nil
}

// reaches reports whether a path from -> to exists following dependency
// (out) edges.
func (g *Graph) reaches(from, to InternedString) bool {
	if from == to {
		return true
	}
	visited := map[InternedString]bool{from: true}
	stack := []InternedString{from}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for next := range g.out[n] {
			if next == to {
				return true
			}
			if !visited[next] {
				visited[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// OutDegree returns the number of unresolved dependencies of id — the
// number of vertices that must complete before id can run.
func (g *Graph) OutDegree(id InternedString) int {
	return len(g.out[id])
}

// Dependents returns the vertices that depend directly on id, i.e. the
// vertices with an edge into id.
func (g *Graph) Dependents(id InternedString) []InternedString {
	deps := make([]InternedString, 0, len(g.in[id]))
	for _, name := range g.order {
		if _, ok := g.in[id][name]; ok {
			deps = append(deps, name)
		}
	}
	return deps
}

// Dependencies returns the vertices id depends on directly.
func (g *Graph) Dependencies(id InternedString) []InternedString {
	deps := make([]InternedString, 0, len(g.out[id]))
	for _, name := range g.order {
		if _, ok := g.out[id][name]; ok {
			deps = append(deps, name)
		}
	}
	return deps
}

// Leaves returns the pending vertices with no unresolved dependencies, in
// deterministic insertion order.
func (g *Graph) Leaves() []InternedString {
	var leaves []InternedString
	for _, id := range g.order {
		v := g.vertices[id]
		if v == nil {
			continue
		}
		if v.Status == VertexStatusPending && g.OutDegree(id) == 0 {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// SetStatus updates a vertex's processing status.
func (g *Graph) SetStatus(id InternedString, status VertexStatus) {
	if v, ok := g.vertices[id]; ok {
		v.Status = status
	}
}

// Remove deletes a vertex and every edge touching it, reducing the
// out-degree of its dependents.
func (g *Graph) Remove(id InternedString) {
	for dep := range g.out[id] {
		delete(g.in[dep], id)
	}
	for dependent := range g.in[id] {
		delete(g.out[dependent], id)
	}
	delete(g.out, id)
	delete(g.in, id)
	delete(g.vertices, id)
	for i, name := range g.order {
		if name == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
}

// Empty reports whether the graph has no vertices left.
func (g *Graph) Empty() bool {
	return len(g.vertices) == 0
}

// Order returns every vertex ID in deterministic insertion order.
func (g *Graph) Order() []InternedString {
	out := make([]InternedString, len(g.order))
	copy(out, g.order)
	return out
}

// Prune returns a new Graph containing only the vertices reachable from
// target (target included) by following dependency edges, with vertex
// status reset to Pending. It fails if target is not a vertex in g.
func (g *Graph) Prune(target InternedString) (*Graph, error) {
	if _, ok := g.vertices[target]; !ok {
		return nil, zerr.With(zerr.Wrap(ErrVertexNotFound, target.String()), "target", target.String())
	}

	reachable := map[InternedString]bool{}
	stack := []InternedString{target}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if reachable[n] {
			continue
		}
		reachable[n] = true
		for next := range g.out[n] {
			stack = append(stack, next)
		}
	}

	sub := NewGraph()
	for _, id := range g.order {
		if !reachable[id] {
			continue
		}
		v := *g.vertices[id]
		v.Status = VertexStatusPending
		_ = sub.AddVertex(v)
	}
	for _, id := range g.order {
		if !reachable[id] {
			continue
		}
		for dep := range g.out[id] {
			_ = sub.AddEdge(id, dep)
		}
	}
	return sub, nil
}

// Clone returns a deep copy of the graph, preserving vertex status.
func (g *Graph) Clone() *Graph {
	out := NewGraph()
	for _, id := range g.order {
		_ = out.AddVertex(*g.vertices[id])
	}
	for _, id := range g.order {
		for dep := range g.out[id] {
			_ = out.AddEdge(id, dep)
		}
	}
	return out
}
