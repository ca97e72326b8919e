// Package graphbuild implements the graph builder: it normalizes rule and
// task declarations collected by the Loader façade into paths anchored to
// their script's directory, validates uniqueness, and assembles them into
// an acyclic domain.Graph.
package graphbuild

import (
	"context"
	"errors"
	"fmt"
	"path"

	"go.trai.ch/exmake/internal/core/domain"
	"go.trai.ch/exmake/internal/core/ports"
	"go.trai.ch/zerr"
)

// anchoredRule and anchoredTask are declarations after pass 2 (anchoring)
// but before pass 5 (vertex/edge construction).
type anchoredRule struct {
	targets []string
	sources []string
	recipe  domain.RecipeRef
	dir     string
}

type anchoredTask struct {
	name     string
	sources  []string
	recipe   domain.RecipeRef
	dir      string
	fallback bool
}

// Build runs the five-pass algorithm over every script's declarations and
// returns the resulting acyclic graph. Fallback tasks are returned
// separately since they are never inserted as graph vertices — the Worker
// driver only runs them when a requested target cannot be resolved. Each
// pass opens and closes its own tracer span, so a --time session sees
// validate/anchor/uniqueness/vertex/edge as five distinct vertices.
func Build(ctx context.Context, tracer ports.Tracer, scripts []domain.ScriptMetadata) (*domain.Graph, []domain.Task, error) {
	_, validateSpan := tracer.Start(ctx, "graph-validate")
	err := validate(scripts)
	validateSpan.End()
	if err != nil {
		return nil, nil, err
	}

	_, anchorSpan := tracer.Start(ctx, "graph-anchor")
	rules, tasks, fallbacks := anchorDecls(scripts)
	anchorSpan.End()

	_, uniqSpan := tracer.Start(ctx, "graph-uniqueness")
	_, taskNames, err := checkUniqueness(rules, tasks)
	uniqSpan.End()
	if err != nil {
		return nil, nil, err
	}

	g := domain.NewGraph()

	_, vertexSpan := tracer.Start(ctx, "graph-vertex")
	vertexOf, err := addVertices(g, rules, tasks, taskNames)
	vertexSpan.End()
	if err != nil {
		return nil, nil, err
	}

	_, edgeSpan := tracer.Start(ctx, "graph-edge")
	err = addEdges(g, rules, tasks, vertexOf)
	edgeSpan.End()
	if err != nil {
		return nil, nil, err
	}

	fallbackTasks := make([]domain.Task, 0, len(fallbacks))
	for _, f := range fallbacks {
		fallbackTasks = append(fallbackTasks, domain.Task{
			Name:      domain.NewInternedString(f.name),
			Recipe:    f.recipe,
			Directory: domain.NewInternedString(f.dir),
			Fallback:  true,
		})
	}

	return g, fallbackTasks, nil
}

// addVertices runs pass 4: it inserts one vertex per rule and task and
// returns the path-or-name -> vertex ID index pass 5 resolves sources
// against.
func addVertices(g *domain.Graph, rules []anchoredRule, tasks []anchoredTask, taskNames map[string]bool) (map[string]domain.InternedString, error) {
	vertexOf := make(map[string]domain.InternedString, len(rules)+len(tasks))

	for _, r := range rules {
		id := domain.NewInternedString(r.targets[0])
		v := domain.Vertex{
			ID:   id,
			Kind: domain.VertexKindRule,
			Rule: domain.Rule{
				Targets:   internAll(r.targets),
				Sources:   internAll(r.sources),
				Recipe:    r.recipe,
				Directory: domain.NewInternedString(r.dir),
			},
			Status: domain.VertexStatusPending,
		}
		if err := g.AddVertex(v); err != nil {
			return nil, zerr.Wrap(domain.ErrScript, err.Error())
		}
		for _, t := range r.targets {
			vertexOf[t] = id
		}
	}

	for _, tk := range tasks {
		realSources := realSourcesOf(tk.sources, taskNames)
		task := domain.Task{
			Name:        domain.NewInternedString(tk.name),
			Sources:     internAll(tk.sources),
			RealSources: internAll(realSources),
			Recipe:      tk.recipe,
			Directory:   domain.NewInternedString(tk.dir),
		}

		id := domain.NewInternedString(tk.name)
		v := domain.Vertex{
			ID:     id,
			Kind:   domain.VertexKindTask,
			Task:   task,
			Status: domain.VertexStatusPending,
		}
		if err := g.AddVertex(v); err != nil {
			return nil, zerr.Wrap(domain.ErrScript, err.Error())
		}
		vertexOf[tk.name] = id
	}

	return vertexOf, nil
}

// addEdges runs pass 5: it resolves every rule's and task's sources against
// vertexOf and inserts the corresponding dependency edges.
func addEdges(g *domain.Graph, rules []anchoredRule, tasks []anchoredTask, vertexOf map[string]domain.InternedString) error {
	for _, r := range rules {
		id := vertexOf[r.targets[0]]
		for _, src := range r.sources {
			depID, ok := vertexOf[src]
			if !ok {
				continue
			}
			if dep, ok := g.Get(depID); ok && dep.Kind == domain.VertexKindTask {
				return zerr.With(
					zerr.With(zerr.Wrap(domain.ErrScript, "rule depends on task '"+src+"'"), "rule", r.targets[0]),
					"task", src,
				)
			}
			if err := g.AddEdge(id, depID); err != nil {
				return cycleError(r.targets[0], src, err)
			}
		}
	}

	for _, tk := range tasks {
		id := vertexOf[tk.name]
		for _, src := range tk.sources {
			depID, ok := vertexOf[src]
			if !ok {
				continue
			}
			if err := g.AddEdge(id, depID); err != nil {
				return cycleError(tk.name, src, err)
			}
		}
	}
	return nil
}

func cycleError(from, to string, cause error) error {
	if !errors.Is(cause, domain.ErrCycleDetected) {
		return zerr.Wrap(domain.ErrScript, cause.Error())
	}
	return zerr.With(
		zerr.With(zerr.Wrap(domain.ErrScript, fmt.Sprintf("cyclic dependency detected between '%s' and '%s'", from, to)), "from", from),
		"to", to,
	)
}

// validate runs pass 1: it rejects a rule with no targets or a task with no
// name before any path gets anchored.
func validate(scripts []domain.ScriptMetadata) error {
	for _, s := range scripts {
		for _, r := range s.Rules {
			if len(r.Targets) == 0 {
				return zerr.With(zerr.Wrap(domain.ErrScript, "rule declares no targets"), "file", s.FileName)
			}
		}
		for _, t := range s.Tasks {
			if t.Name == "" {
				return zerr.With(zerr.Wrap(domain.ErrScript, "task declares no name"), "file", s.FileName)
			}
		}
	}
	return nil
}

// anchorDecls runs pass 2: it prefixes every rule, task, and fallback path
// with its defining script's directory. Callers must run validate first —
// anchorDecls assumes every rule has targets and every task has a name.
func anchorDecls(scripts []domain.ScriptMetadata) (rules []anchoredRule, tasks, fallbacks []anchoredTask) {
	for _, s := range scripts {
		for _, r := range s.Rules {
			rules = append(rules, anchoredRule{
				targets: anchorPaths(s.Directory, r.Targets),
				sources: anchorPaths(s.Directory, r.Sources),
				recipe:  r.Recipe,
				dir:     s.Directory,
			})
		}
		for _, t := range s.Tasks {
			tasks = append(tasks, anchoredTask{
				name:    anchorPath(s.Directory, t.Name),
				sources: anchorPaths(s.Directory, t.Sources),
				recipe:  t.Recipe,
				dir:     s.Directory,
			})
		}
		for _, f := range s.Fallbacks {
			fallbacks = append(fallbacks, anchoredTask{
				name:     anchorPath(s.Directory, f.Name),
				recipe:   f.Recipe,
				dir:      s.Directory,
				fallback: true,
			})
		}
	}
	return rules, tasks, fallbacks
}

func checkUniqueness(rules []anchoredRule, tasks []anchoredTask) (map[string]string, map[string]bool, error) {
	targetOwner := make(map[string]string)
	ownerRule := make(map[string]int)
	for i, r := range rules {
		for _, t := range r.targets {
			if j, exists := ownerRule[t]; exists && j != i {
				return nil, nil, zerr.With(zerr.Wrap(domain.ErrScript, "multiple rules mention target '"+t+"'"), "target", t)
			}
			ownerRule[t] = i
			targetOwner[t] = r.targets[0]
		}
	}

	taskNames := make(map[string]bool, len(tasks))
	for _, tk := range tasks {
		if _, exists := targetOwner[tk.name]; exists {
			return nil, nil, zerr.With(zerr.Wrap(domain.ErrScript, "task name '"+tk.name+"' conflicts with a rule"), "name", tk.name)
		}
		if taskNames[tk.name] {
			return nil, nil, zerr.With(zerr.Wrap(domain.ErrScript, "task name '"+tk.name+"' conflicts with a rule"), "name", tk.name)
		}
		taskNames[tk.name] = true
	}
	return targetOwner, taskNames, nil
}

func realSourcesOf(sources []string, taskNames map[string]bool) []string {
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		if !taskNames[s] {
			out = append(out, s)
		}
	}
	return out
}

func anchorPaths(dir string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = anchorPath(dir, p)
	}
	return out
}

func anchorPath(dir, p string) string {
	if path.IsAbs(p) {
		return p
	}
	return path.Join(dir, p)
}

func internAll(ss []string) []domain.InternedString {
	out := make([]domain.InternedString, len(ss))
	for i, s := range ss {
		out[i] = domain.NewInternedString(s)
	}
	return out
}
