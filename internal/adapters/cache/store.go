// Package cache implements the on-disk cache store: the graph, the
// script-provided environment table, compiled script artifacts, the
// invalidation manifest, and the precious-variable/tail-argument snapshot,
// all under one cache directory.
package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/exmake/internal/core/domain"
	"go.trai.ch/zerr"
)

const (
	verticesFile   = "vertices.dag"
	edgesFile      = "edges.dag"
	neighborsFile  = "neighbors.dag"
	fallbacksFile  = "fallbacks.dag"
	envFile        = "table.env"
	manifestFile   = "manifest.lst"
	configEnvFile  = "config.env"
	configArgFile  = "config.arg"
	artifactSuffix = ".artifact"
)

// Store implements ports.CacheStore using flat files under one directory,
// guarded by a single sync.RWMutex, grounded in the teacher's cas.Store
// (os.MkdirAll + os.WriteFile, no partial-write atomicity beyond that).
type Store struct {
	dir string
	mu  sync.RWMutex
}

// NewStore creates a Store rooted at dir, creating it on first write.
func NewStore(dir string) *Store {
	return &Store{dir: filepath.Clean(dir)}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// edgeDTO is one persisted dependency edge: from depends on to.
type edgeDTO struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// writeChecked marshals v to JSON and writes it to name, followed by a
// trailing xxhash-64 checksum line covering exactly the JSON bytes.
func (s *Store) writeChecked(name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return zerr.Wrap(domain.ErrCache, err.Error())
	}
	sum := xxhash.Sum64(data)
	var out strings.Builder
	out.Write(data) //nolint:errcheck // strings.Builder.Write never fails
	out.WriteByte('\n')
	out.WriteString("# xxhash64:")
	out.WriteString(strconv.FormatUint(sum, 16))
	out.WriteByte('\n')
	return s.writeFile(name, []byte(out.String()))
}

// readChecked reads name, verifies its trailing checksum line, and
// unmarshals the JSON payload preceding it into v.
func (s *Store) readChecked(name string, v any) error {
	raw, err := s.readFile(name)
	if err != nil {
		return err
	}
	trimmed := strings.TrimRight(string(raw), "\n")
	idx := strings.LastIndex(trimmed, "\n")
	if idx < 0 {
		return zerr.With(zerr.Wrap(domain.ErrCache, "corrupt cache file: missing checksum line"), "kind", "corrupt")
	}
	payload := trimmed[:idx]
	checksumLine := trimmed[idx+1:]
	wantHex := strings.TrimPrefix(checksumLine, "# xxhash64:")
	if wantHex == checksumLine {
		return zerr.With(zerr.Wrap(domain.ErrCache, "corrupt cache file: malformed checksum line"), "kind", "corrupt")
	}
	want, err := strconv.ParseUint(wantHex, 16, 64)
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCache, "corrupt cache file: malformed checksum line"), "kind", "corrupt")
	}
	if xxhash.Sum64([]byte(payload)) != want {
		return zerr.With(zerr.Wrap(domain.ErrCache, "corrupt cache file: checksum mismatch"), "kind", "corrupt")
	}
	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return zerr.Wrap(domain.ErrCache, err.Error())
	}
	return nil
}

func (s *Store) writeFile(name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return zerr.Wrap(domain.ErrCache, err.Error())
	}
	//nolint:gosec // path is joined from a trusted cache-directory root
	if err := os.WriteFile(s.path(name), data, 0o644); err != nil {
		return zerr.Wrap(domain.ErrCache, err.Error())
	}
	return nil
}

func (s *Store) readFile(name string) ([]byte, error) {
	//nolint:gosec // path is joined from a trusted cache-directory root
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, zerr.With(zerr.Wrap(domain.ErrCache, "cache file not found"), "kind", "missing")
		}
		return nil, zerr.Wrap(domain.ErrCache, err.Error())
	}
	return data, nil
}

// SaveGraph persists the graph's vertices, its out-edges (dependencies),
// and its in-edges (dependents) as three checked files.
func (s *Store) SaveGraph(g *domain.Graph) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	order := g.Order()
	vertices := make([]domain.Vertex, 0, len(order))
	var outEdges, inEdges []edgeDTO
	for _, id := range order {
		v, ok := g.Get(id)
		if !ok {
			continue
		}
		vertices = append(vertices, *v)
		for _, dep := range g.Dependencies(id) {
			outEdges = append(outEdges, edgeDTO{From: id.String(), To: dep.String()})
		}
		for _, dependent := range g.Dependents(id) {
			inEdges = append(inEdges, edgeDTO{From: id.String(), To: dependent.String()})
		}
	}

	if err := s.writeChecked(verticesFile, vertices); err != nil {
		return err
	}
	if err := s.writeChecked(edgesFile, outEdges); err != nil {
		return err
	}
	return s.writeChecked(neighborsFile, inEdges)
}

// LoadGraph rebuilds a Graph from the persisted vertex and edge files.
// neighbors.dag is read back only to verify its checksum; the graph's
// reverse index is rebuilt from edges.dag by domain.Graph itself.
func (s *Store) LoadGraph() (*domain.Graph, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var vertices []domain.Vertex
	if err := s.readChecked(verticesFile, &vertices); err != nil {
		return nil, err
	}
	var outEdges []edgeDTO
	if err := s.readChecked(edgesFile, &outEdges); err != nil {
		return nil, err
	}
	var inEdges []edgeDTO
	if err := s.readChecked(neighborsFile, &inEdges); err != nil {
		return nil, err
	}

	g := domain.NewGraph()
	for _, v := range vertices {
		v.Status = domain.VertexStatusPending
		if err := g.AddVertex(v); err != nil {
			return nil, zerr.Wrap(domain.ErrCache, err.Error())
		}
	}
	for _, e := range outEdges {
		if err := g.AddEdge(domain.NewInternedString(e.From), domain.NewInternedString(e.To)); err != nil {
			return nil, zerr.Wrap(domain.ErrCache, err.Error())
		}
	}
	return g, nil
}

// SaveEnv persists the environment table snapshot.
func (s *Store) SaveEnv(entries map[string]domain.EnvSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeChecked(envFile, entries)
}

// LoadEnv restores the environment table snapshot.
func (s *Store) LoadEnv() (map[string]domain.EnvSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make(map[string]domain.EnvSlot)
	if err := s.readChecked(envFile, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// SaveMods persists one checked <ModuleIdentifier>.artifact file per
// loaded script module. Stale artifacts from a previous build that is no
// longer part of the loaded set are left in place; Clear removes them.
func (s *Store) SaveMods(mods []domain.ScriptMetadata) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range mods {
		name := sanitizeModuleName(m.ModuleIdentifier) + artifactSuffix
		if err := s.writeChecked(name, m); err != nil {
			return err
		}
	}
	return nil
}

// LoadMods restores every currently-present *.artifact file.
func (s *Store) LoadMods() ([]domain.ScriptMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names, err := s.artifactNamesLocked()
	if err != nil {
		return nil, err
	}

	var mods []domain.ScriptMetadata
	for _, name := range names {
		var m domain.ScriptMetadata
		if err := s.readChecked(name, &m); err != nil {
			return nil, err
		}
		mods = append(mods, m)
	}
	return mods, nil
}

// artifactNamesLocked lists every currently-present *.artifact file name,
// relative to the cache directory. Caller must hold s.mu.
func (s *Store) artifactNamesLocked() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(domain.ErrCache, err.Error())
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), artifactSuffix) {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

// SaveFallbacks persists the entry script's fallback tasks.
func (s *Store) SaveFallbacks(fallbacks []domain.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeChecked(fallbacksFile, fallbacks)
}

// LoadFallbacks restores the entry script's fallback tasks.
func (s *Store) LoadFallbacks() ([]domain.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var fallbacks []domain.Task
	if err := s.readChecked(fallbacksFile, &fallbacks); err != nil {
		return nil, err
	}
	return fallbacks, nil
}

// AppendManifest appends paths to the invalidation manifest, one per line,
// without disturbing previously recorded entries.
func (s *Store) AppendManifest(paths []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return zerr.Wrap(domain.ErrCache, err.Error())
	}
	//nolint:gosec // path is joined from a trusted cache-directory root
	f, err := os.OpenFile(s.path(manifestFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zerr.Wrap(domain.ErrCache, err.Error())
	}
	defer f.Close()

	for _, p := range paths {
		if _, err := f.WriteString(p + "\n"); err != nil {
			return zerr.Wrap(domain.ErrCache, err.Error())
		}
	}
	return nil
}

// ManifestList returns every path recorded in the invalidation manifest.
func (s *Store) ManifestList() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.manifestListLocked()
}

// SaveConfig persists the tail arguments and precious environment-variable
// snapshot taken at save time.
func (s *Store) SaveConfig(args []string, precious map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	argData, err := json.Marshal(args)
	if err != nil {
		return zerr.Wrap(domain.ErrCache, err.Error())
	}
	if err := s.writeFile(configArgFile, argData); err != nil {
		return err
	}

	envData, err := json.Marshal(precious)
	if err != nil {
		return zerr.Wrap(domain.ErrCache, err.Error())
	}
	return s.writeFile(configEnvFile, envData)
}

// LoadConfig restores the tail arguments and precious environment-variable
// snapshot.
func (s *Store) LoadConfig() ([]string, map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	argData, err := s.readFile(configArgFile)
	if err != nil {
		return nil, nil, err
	}
	var args []string
	if err := json.Unmarshal(argData, &args); err != nil {
		return nil, nil, zerr.Wrap(domain.ErrCache, err.Error())
	}

	envData, err := s.readFile(configEnvFile)
	if err != nil {
		return nil, nil, err
	}
	precious := make(map[string]string)
	if err := json.Unmarshal(envData, &precious); err != nil {
		return nil, nil, zerr.Wrap(domain.ErrCache, err.Error())
	}
	return args, precious, nil
}

// Stale reports true iff the manifest is empty, or the newest manifest
// entry's mtime is newer than the oldest cache file's mtime, where "cache
// file" includes every per-module *.artifact file alongside the fixed set
// of graph/env/config files. Missing files — on either side — are treated
// as epoch-old, which forces a stale report whenever the cache has not
// been populated yet.
func (s *Store) Stale() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	manifest, err := s.manifestListLocked()
	if err != nil {
		return false, err
	}
	if len(manifest) == 0 {
		return true, nil
	}

	newestManifest := epoch()
	for _, p := range manifest {
		if t := mtime(p); t.After(newestManifest) {
			newestManifest = t
		}
	}

	artifacts, err := s.artifactNamesLocked()
	if err != nil {
		return false, err
	}

	oldestCache := time.Now()
	for _, name := range append([]string{verticesFile, edgesFile, neighborsFile, envFile, configEnvFile, configArgFile}, artifacts...) {
		t := mtime(s.path(name))
		if t.Before(oldestCache) {
			oldestCache = t
		}
	}

	return newestManifest.After(oldestCache), nil
}

func (s *Store) manifestListLocked() ([]string, error) {
	//nolint:gosec // path is joined from a trusted cache-directory root
	data, err := os.ReadFile(s.path(manifestFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.Wrap(domain.ErrCache, err.Error())
	}
	text := strings.TrimRight(string(data), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}

// Clear removes every cache file and compiled artifact under the cache
// directory.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.RemoveAll(s.dir); err != nil {
		return zerr.Wrap(domain.ErrCache, err.Error())
	}
	return nil
}

func sanitizeModuleName(id string) string {
	replacer := strings.NewReplacer("/", "_", string(filepath.Separator), "_")
	return replacer.Replace(id)
}

func mtime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return epoch()
	}
	return info.ModTime()
}

func epoch() time.Time {
	return time.Unix(0, 0)
}
