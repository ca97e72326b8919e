// Package scriptio implements the bundled default script backend: a YAML
// ScriptEvaluator and a companion RecipeRegistry that invokes shell
// commands read from the same document, grounded in the teacher's
// config.Loader/Bobfile YAML reader.
package scriptio

import (
	"encoding/json"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"go.trai.ch/exmake/internal/core/domain"
	"go.trai.ch/zerr"
)

// artifactPayload is what Evaluator compiles a document's recipes: map
// into, carried through the cache as ScriptMetadata.CompiledArtifact and
// decoded back by Registry.LoadModules.
type artifactPayload struct {
	Recipes map[string][]string `json:"recipes"`
}

// Evaluator implements ports.ScriptEvaluator by reading one YAML document
// per script file.
type Evaluator struct{}

// New creates a YAML Evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

// Load reads the YAML document at filepath.Join(dir, file) and returns the
// single ScriptMetadata record the Loader façade's one-module invariant
// expects.
func (e *Evaluator) Load(dir, file string) ([]domain.ScriptMetadata, error) {
	path := filepath.Join(dir, file)
	//nolint:gosec // path is composed from loader-validated components
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrLoad, err.Error())
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, zerr.Wrap(domain.ErrLoad, err.Error())
	}

	artifact, err := json.Marshal(artifactPayload{Recipes: doc.Recipes})
	if err != nil {
		return nil, zerr.Wrap(domain.ErrLoad, err.Error())
	}

	moduleID := moduleIdentifier(dir)

	meta := domain.ScriptMetadata{
		Directory:        dir,
		FileName:         file,
		ModuleIdentifier: moduleID,
		CompiledArtifact: artifact,
		ManifestEntries:  doc.Manifest,
	}

	for _, r := range doc.Rules {
		arity := domain.RecipeArityRule
		if r.WithDir {
			arity = domain.RecipeArityRuleDir
		}
		meta.Rules = append(meta.Rules, domain.RuleDecl{
			Targets: r.Targets,
			Sources: r.Sources,
			Recipe:  domain.RecipeRef{ModuleID: moduleID, Name: r.Recipe, Arity: arity},
		})
	}

	for _, t := range doc.Tasks {
		meta.Tasks = append(meta.Tasks, domain.TaskDecl{
			Name:    t.Name,
			Sources: t.Sources,
			Recipe:  domain.RecipeRef{ModuleID: moduleID, Name: t.Recipe, Arity: domain.RecipeArityTask},
		})
	}

	for _, f := range doc.Fallback {
		meta.Fallbacks = append(meta.Fallbacks, domain.TaskDecl{
			Name:     f.Name,
			Recipe:   domain.RecipeRef{ModuleID: moduleID, Name: f.Recipe, Arity: domain.RecipeArityFallback},
			Fallback: true,
		})
	}

	for _, r := range doc.Recurse {
		meta.SubScripts = append(meta.SubScripts, domain.SubScriptDecl{Dir: r.Dir, File: r.File})
	}

	for _, ll := range doc.LoadLib {
		meta.LoadLibs = append(meta.LoadLibs, domain.LoadLibDecl{
			ID:        ll.ID,
			Args:      ll.Args,
			Qualified: ll.Qualified,
		})
	}

	if doc.Library != nil {
		var onLoad domain.RecipeRef
		if doc.Library.OnLoad != "" {
			onLoad = domain.RecipeRef{ModuleID: moduleID, Name: doc.Library.OnLoad, Arity: domain.RecipeArityLibrary}
		}
		meta.Libraries = append(meta.Libraries, domain.LibraryManifest{
			ID:          doc.Library.ID,
			Description: doc.Library.Description,
			License:     doc.Library.License,
			Version:     doc.Library.Version,
			URL:         doc.Library.URL,
			Author:      doc.Library.Author,
			Precious:    doc.Library.Precious,
			Directory:   dir,
			OnLoad:      onLoad,
		})
	}

	return []domain.ScriptMetadata{meta}, nil
}

// moduleIdentifier derives the "<base>.Exmakefile" module name the Loader
// façade's one-module invariant looks for, from the script's directory.
func moduleIdentifier(dir string) string {
	base := filepath.Base(dir)
	if base == "." || base == "" || base == string(filepath.Separator) {
		base = "root"
	}
	return base + ".Exmakefile"
}
