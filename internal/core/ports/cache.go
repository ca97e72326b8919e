package ports

import "go.trai.ch/exmake/internal/core/domain"

// CacheStore defines the persistence contract of §4.2: the graph, the
// script-provided environment table, the compiled script artifacts, the
// invalidation manifest, and the precious-variable/tail-argument snapshot.
//
//go:generate go run go.uber.org/mock/mockgen -source=cache.go -destination=mocks/mock_cache.go -package=mocks
type CacheStore interface {
	SaveGraph(g *domain.Graph) error
	LoadGraph() (*domain.Graph, error)

	SaveEnv(entries map[string]domain.EnvSlot) error
	LoadEnv() (map[string]domain.EnvSlot, error)

	SaveMods(mods []domain.ScriptMetadata) error
	LoadMods() ([]domain.ScriptMetadata, error)

	SaveFallbacks(fallbacks []domain.Task) error
	LoadFallbacks() ([]domain.Task, error)

	AppendManifest(paths []string) error
	ManifestList() ([]string, error)

	SaveConfig(args []string, precious map[string]string) error
	LoadConfig() (args []string, precious map[string]string, err error)

	// Stale reports true iff the manifest is empty, or the newest manifest
	// entry's mtime is newer than the oldest cache file's mtime. Missing
	// files are treated as epoch-old.
	Stale() (bool, error)

	// Clear removes every cache file and compiled artifact.
	Clear() error
}
