package ports

import "go.trai.ch/exmake/internal/core/domain"

// ScriptEvaluator is the external collaborator that loads one script file
// in the context of a directory and surfaces its declared rules, tasks,
// fallbacks, sub-script inclusions, manifest entries, and libraries as a
// uniform domain.ScriptMetadata record. The engine's Loader façade (§4.3)
// is the only caller; it owns the one-module-ending-in-".Exmakefile"
// invariant and the sub-directory recursion, treating the evaluator itself
// as an opaque, swappable backend.
//
//go:generate go run go.uber.org/mock/mockgen -source=evaluator.go -destination=mocks/mock_evaluator.go -package=mocks
type ScriptEvaluator interface {
	// Load evaluates file in the context of directory dir and returns one
	// metadata record per module the script defines.
	Load(dir, file string) ([]domain.ScriptMetadata, error)
}
