// Package loader implements the Loader façade: it drives a
// ports.ScriptEvaluator over an entry script and its sub-directory
// recursions, enforcing the one-module-per-script invariant and flattening
// every loaded script into a single list of domain.ScriptMetadata records.
package loader

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.trai.ch/exmake/internal/core/domain"
	"go.trai.ch/exmake/internal/core/ports"
	"go.trai.ch/zerr"
)

// moduleSuffix is the case-sensitive suffix identifying a script's entry
// module among the modules one evaluator call may return.
const moduleSuffix = ".Exmakefile"

// Loader drives a ports.ScriptEvaluator over a directory tree of scripts.
type Loader struct {
	evaluator ports.ScriptEvaluator
}

// New creates a Loader backed by evaluator.
func New(evaluator ports.ScriptEvaluator) *Loader {
	return &Loader{evaluator: evaluator}
}

// Load loads file in the context of directory dir, recurses through every
// sub-script the entry module declares, and returns the flattened list of
// metadata records for every script visited, entry script first.
func (l *Loader) Load(dir, file string) ([]domain.ScriptMetadata, error) {
	if err := validateFileName(file); err != nil {
		return nil, err
	}

	records, err := l.evaluator.Load(dir, file)
	if err != nil {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrLoad, err.Error()), "file", file), "directory", dir)
	}

	entry, err := entryModule(records, dir, file)
	if err != nil {
		return nil, err
	}

	out := append([]domain.ScriptMetadata(nil), records...)

	for _, sub := range entry.SubScripts {
		subFile := sub.File
		if subFile == "" {
			subFile = domain.DefaultFile
		}
		if err := validatePathComponent(sub.Dir); err != nil {
			return nil, err
		}
		if err := validateFileName(subFile); err != nil {
			return nil, err
		}

		subDir := filepath.Join(dir, sub.Dir)
		nested, err := l.Load(subDir, subFile)
		if err != nil {
			return nil, err
		}
		out = append(out, nested...)
	}

	return out, nil
}

func entryModule(records []domain.ScriptMetadata, dir, file string) (domain.ScriptMetadata, error) {
	var matches []domain.ScriptMetadata
	for _, r := range records {
		if strings.HasSuffix(r.ModuleIdentifier, moduleSuffix) {
			matches = append(matches, r)
		}
	}

	switch len(matches) {
	case 0:
		return domain.ScriptMetadata{}, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrLoad, fmt.Sprintf("No module ending in '%s' defined", moduleSuffix)), "file", file),
			"directory", dir,
		)
	case 1:
		return matches[0], nil
	default:
		return domain.ScriptMetadata{}, zerr.With(
			zerr.With(zerr.Wrap(domain.ErrLoad, fmt.Sprintf("%d modules ending in '%s' defined", len(matches), moduleSuffix)), "file", file),
			"directory", dir,
		)
	}
}

func validateFileName(file string) error {
	return validatePathComponent(file)
}

func validatePathComponent(s string) error {
	if s == "" {
		return nil
	}
	if strings.ContainsRune(s, filepath.Separator) || strings.Contains(s, "/") {
		return zerr.Wrap(domain.ErrUsage, "'"+s+"' must not contain path separators")
	}
	return nil
}
