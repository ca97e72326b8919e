package domain_test

import (
	"errors"
	"testing"

	"go.trai.ch/exmake/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestGraph_AddVertex_Duplicate(t *testing.T) {
	g := domain.NewGraph()
	v := domain.Vertex{ID: domain.NewInternedString("a"), Kind: domain.VertexKindTask}

	if err := g.AddVertex(v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := g.AddVertex(v)
	if err == nil {
		t.Fatal("expected error when adding duplicate vertex, got nil")
	}
	if !errors.Is(err, domain.ErrTargetAlreadyExists) {
		t.Errorf("expected ErrTargetAlreadyExists, got %v", err)
	}
	zErr, ok := err.(*zerr.Error)
	if ok {
		if name, _ := zErr.Metadata()["name"].(string); name != "a" {
			t.Errorf("expected metadata name=a, got %v", zErr.Metadata()["name"])
		}
	}
}

func TestGraph_AddEdge_DetectsCycle(t *testing.T) {
	g := domain.NewGraph()
	a := domain.NewInternedString("a")
	b := domain.NewInternedString("b")
	_ = g.AddVertex(domain.Vertex{ID: a, Kind: domain.VertexKindTask})
	_ = g.AddVertex(domain.Vertex{ID: b, Kind: domain.VertexKindTask})

	if err := g.AddEdge(a, b); err != nil {
		t.Fatalf("unexpected error adding a->b: %v", err)
	}
	if err := g.AddEdge(b, a); !errors.Is(err, domain.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected adding b->a, got %v", err)
	}
}

func TestGraph_AddEdge_SelfLoop(t *testing.T) {
	g := domain.NewGraph()
	a := domain.NewInternedString("a")
	_ = g.AddVertex(domain.Vertex{ID: a, Kind: domain.VertexKindTask})

	if err := g.AddEdge(a, a); !errors.Is(err, domain.ErrCycleDetected) {
		t.Fatalf("expected ErrCycleDetected for self-loop, got %v", err)
	}
}

func TestGraph_LeavesAndRemove(t *testing.T) {
	g := domain.NewGraph()
	a, b, c := domain.NewInternedString("a"), domain.NewInternedString("b"), domain.NewInternedString("c")
	_ = g.AddVertex(domain.Vertex{ID: a, Kind: domain.VertexKindTask, Status: domain.VertexStatusPending})
	_ = g.AddVertex(domain.Vertex{ID: b, Kind: domain.VertexKindTask, Status: domain.VertexStatusPending})
	_ = g.AddVertex(domain.Vertex{ID: c, Kind: domain.VertexKindTask, Status: domain.VertexStatusPending})
	_ = g.AddEdge(a, b) // a depends on b
	_ = g.AddEdge(b, c) // b depends on c

	leaves := g.Leaves()
	if len(leaves) != 1 || leaves[0] != c {
		t.Fatalf("expected only c as leaf, got %v", leaves)
	}

	g.Remove(c)
	leaves = g.Leaves()
	if len(leaves) != 1 || leaves[0] != b {
		t.Fatalf("expected only b as leaf after removing c, got %v", leaves)
	}
	if g.OutDegree(a) != 1 {
		t.Fatalf("expected a's out-degree to remain 1, got %d", g.OutDegree(a))
	}
}

func TestGraph_Prune(t *testing.T) {
	g := domain.NewGraph()
	a, b, c, d := domain.NewInternedString("a"), domain.NewInternedString("b"), domain.NewInternedString("c"), domain.NewInternedString("d")
	for _, id := range []domain.InternedString{a, b, c, d} {
		_ = g.AddVertex(domain.Vertex{ID: id, Kind: domain.VertexKindTask})
	}
	_ = g.AddEdge(a, b)
	_ = g.AddEdge(b, c)
	// d is disconnected.

	sub, err := g.Prune(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sub.Len() != 3 {
		t.Fatalf("expected 3 reachable vertices, got %d", sub.Len())
	}
	if _, ok := sub.Get(d); ok {
		t.Fatal("did not expect disconnected vertex d in pruned sub-graph")
	}
}

func TestGraph_Prune_MissingTarget(t *testing.T) {
	g := domain.NewGraph()
	_, err := g.Prune(domain.NewInternedString("missing"))
	if !errors.Is(err, domain.ErrVertexNotFound) {
		t.Fatalf("expected ErrVertexNotFound, got %v", err)
	}
}
