// Package worker implements the Worker driver: the single top-level
// orchestration routine that decides cache freshness, loads or restores the
// graph, drives the leaf-processing loop per requested target, and returns
// a process exit code.
package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"go.trai.ch/exmake/internal/core/domain"
	"go.trai.ch/exmake/internal/core/ports"
	"go.trai.ch/exmake/internal/engine/coordinator"
	"go.trai.ch/exmake/internal/engine/environment"
	"go.trai.ch/exmake/internal/engine/graphbuild"
	"go.trai.ch/exmake/internal/engine/loader"
	"go.trai.ch/exmake/internal/engine/runner"
	"go.trai.ch/zerr"
)

// ExitOK, ExitError, and ExitUsage are the three process exit codes the
// Worker driver can return, per the command-line surface's contract.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// Driver orchestrates one build from a parsed Config to an exit code.
type Driver struct {
	Cache    ports.CacheStore
	Loader   *loader.Loader
	Runner   *runner.Runner
	Tracer   ports.Tracer
	Logger   ports.Logger
	Env      *environment.Table
	// Recipes, when set, is fed every loaded module's compiled artifact on
	// both the stale and fresh cache paths before any vertex runs. It is
	// nil in tests that drive the Runner against a hand-rolled registry
	// with no artifact-decoding step of its own.
	Recipes ports.RecipeLoader
	// Registry, when set, invokes a library's on_load hook the first time
	// load_lib/load_lib_qual names it in a stale build. Shares the same
	// underlying adapter as Recipes in production; kept separate because
	// RecipeLoader and RecipeRegistry are distinct ports.
	Registry ports.RecipeRegistry
	// Status renders --loud status lines; nil is treated as a silent
	// no-op printer rather than requiring every caller to supply one.
	Status   ports.StatusPrinter
	NewCoord func(cfg domain.Config, r *runner.Runner, tracer ports.Tracer) *coordinator.Coordinator
}

// New creates a Driver wired from its collaborators. Env is the
// process-wide environment table recipes expand ${NAME} references
// against; it lives for the whole process, outliving any single Run call.
func New(cache ports.CacheStore, l *loader.Loader, r *runner.Runner, tracer ports.Tracer, log ports.Logger, env *environment.Table) *Driver {
	return &Driver{
		Cache:    cache,
		Loader:   l,
		Runner:   r,
		Tracer:   tracer,
		Logger:   log,
		Env:      env,
		NewCoord: coordinator.New,
	}
}

// Run executes one build for cfg and returns the process exit code.
func (d *Driver) Run(ctx context.Context, cfg domain.Config) int {
	if cfg.Options.Help || cfg.Options.Version {
		return ExitUsage
	}

	coord := d.NewCoord(cfg, d.Runner, d.Tracer)
	defer coord.Close()
	coord.ClearLibs()
	coord.SetConfig(cfg)

	file := cfg.Options.File
	if file == "" {
		file = domain.DefaultFile
	}
	dir := filepath.Dir(file)
	name := filepath.Base(file)
	if dir != "." {
		if err := os.Chdir(dir); err != nil {
			d.report(zerr.Wrap(domain.ErrUsage, err.Error()))
			return ExitError
		}
	}

	stale, err := d.decideStale(cfg)
	if err != nil {
		d.report(err)
		return ExitError
	}

	var g *domain.Graph
	var fallbacks []domain.Task

	if stale {
		g, fallbacks, err = d.buildFresh(ctx, coord, name, cfg)
	} else {
		g, fallbacks, err = d.loadCached()
	}
	if err != nil {
		d.report(err)
		return ExitError
	}

	d.Tracer.EmitPlan(ctx, cfg.TargetsOrDefault())

	for _, target := range cfg.TargetsOrDefault() {
		id := domain.NewInternedString(target)
		if _, ok := g.Get(id); !ok {
			if ferr := d.runFallbacks(ctx, coord, fallbacks); ferr != nil {
				d.report(ferr)
				return ExitError
			}
			d.report(zerr.With(zerr.Wrap(domain.ErrUsage, "Target '"+target+"' not found"), "target", target))
			return ExitError
		}

		sub, err := g.Prune(id)
		if err != nil {
			d.report(err)
			return ExitError
		}

		if cfg.Options.Question {
			if staleErr := d.checkQuestion(sub); staleErr != nil {
				return ExitError
			}
			continue
		}

		if err := d.processSubGraph(ctx, coord, sub); err != nil {
			d.report(err)
			return ExitError
		}
	}

	return ExitOK
}

func (d *Driver) report(err error) {
	if errors.Is(err, domain.ErrStale) {
		return
	}
	d.Logger.Error(err)
}

// status calls d.Status.Status if a printer was configured, and is a
// no-op otherwise.
func (d *Driver) status(verb, target string) {
	if d.Status != nil {
		d.Status.Status(verb, target)
	}
}

func (d *Driver) decideStale(cfg domain.Config) (bool, error) {
	if cfg.Options.Clear {
		if err := d.Cache.Clear(); err != nil {
			return false, zerr.Wrap(domain.ErrCache, err.Error())
		}
		return true, nil
	}
	stale, err := d.Cache.Stale()
	if err != nil {
		return false, zerr.Wrap(domain.ErrCache, err.Error())
	}
	return stale, nil
}

// buildFresh implements the stale path of §4.7 step 5. It rebuilds
// d.Env from scratch rather than handing back a fresh table, since
// recipes invoked later in the same process share the one table held by
// the Driver.
func (d *Driver) buildFresh(ctx context.Context, coord *coordinator.Coordinator, entryFile string, cfg domain.Config) (*domain.Graph, []domain.Task, error) {
	_, loadSpan := d.Tracer.Start(ctx, "load")
	if args, precious, err := d.Cache.LoadConfig(); err == nil {
		restorePreciousEnv(precious)
		_ = args
	}

	scripts, err := d.Loader.Load(".", entryFile)
	loadSpan.End()
	if err != nil {
		return nil, nil, err
	}

	if err := d.Cache.SaveMods(scripts); err != nil {
		return nil, nil, zerr.Wrap(domain.ErrCache, err.Error())
	}
	if d.Recipes != nil {
		if err := d.Recipes.LoadModules(scripts); err != nil {
			return nil, nil, err
		}
	}

	if err := d.loadLibraries(ctx, coord, scripts, cfg); err != nil {
		return nil, nil, err
	}

	d.Env.Reset()
	d.Env.Put("EXMAKE_STAMP", time.Now().Format(time.RFC3339Nano))
	if err := d.Cache.SaveEnv(d.Env.Snapshot()); err != nil {
		return nil, nil, zerr.Wrap(domain.ErrCache, err.Error())
	}

	g, fallbacks, err := graphbuild.Build(ctx, d.Tracer, scripts)
	if err != nil {
		return nil, nil, err
	}

	if err := d.Cache.SaveGraph(g); err != nil {
		return nil, nil, zerr.Wrap(domain.ErrCache, err.Error())
	}
	if err := d.Cache.SaveFallbacks(fallbacks); err != nil {
		return nil, nil, zerr.Wrap(domain.ErrCache, err.Error())
	}

	manifest := manifestOf(scripts)
	if err := d.Cache.AppendManifest(manifest); err != nil {
		return nil, nil, zerr.Wrap(domain.ErrCache, err.Error())
	}

	if err := d.Cache.SaveConfig(cfg.Args, preciousSnapshot(scripts)); err != nil {
		return nil, nil, zerr.Wrap(domain.ErrCache, err.Error())
	}

	return g, fallbacks, nil
}

// loadLibraries resolves every load_lib/load_lib_qual declaration across
// scripts against the library manifests the same load pass collected, runs
// each newly-loaded library's on_load hook exactly once, and errors on a
// load_lib naming a library no loaded script defines. Library resolution is
// limited to the already-loaded script tree; EXMAKE_PATH-based search of
// libraries outside that tree is not implemented.
func (d *Driver) loadLibraries(ctx context.Context, coord *coordinator.Coordinator, scripts []domain.ScriptMetadata, cfg domain.Config) error {
	libs := make(map[string]domain.LibraryManifest)
	for _, s := range scripts {
		for _, lib := range s.Libraries {
			libs[lib.ID] = lib
		}
	}

	for _, s := range scripts {
		for _, decl := range s.LoadLibs {
			lib, ok := libs[decl.ID]
			if !ok {
				return zerr.With(zerr.Wrap(domain.ErrUsage, "load_lib names an unknown library"), "library", decl.ID)
			}
			if !coord.AddLib(lib.ID) {
				continue
			}
			if lib.OnLoad.IsZero() || d.Registry == nil {
				continue
			}
			inv := domain.RecipeInvocation{LibArgs: decl.Args, TailArgs: cfg.Args, Directory: lib.Directory}
			if err := d.Registry.Invoke(ctx, lib.OnLoad, inv); err != nil {
				return err
			}
		}
	}
	return nil
}

// loadCached implements the fresh path of §4.7 step 6, restoring d.Env in
// place from the persisted snapshot.
func (d *Driver) loadCached() (*domain.Graph, []domain.Task, error) {
	g, err := d.Cache.LoadGraph()
	if err != nil {
		return nil, nil, zerr.Wrap(domain.ErrCache, err.Error())
	}
	envEntries, err := d.Cache.LoadEnv()
	if err != nil {
		return nil, nil, zerr.Wrap(domain.ErrCache, err.Error())
	}
	d.Env.LoadSnapshot(envEntries)
	fallbacks, err := d.Cache.LoadFallbacks()
	if err != nil {
		return nil, nil, zerr.Wrap(domain.ErrCache, err.Error())
	}
	mods, err := d.Cache.LoadMods()
	if err != nil {
		return nil, nil, zerr.Wrap(domain.ErrCache, err.Error())
	}
	if d.Recipes != nil {
		if err := d.Recipes.LoadModules(mods); err != nil {
			return nil, nil, err
		}
	}
	return g, fallbacks, nil
}

// checkQuestion implements --question: it never invokes a recipe, and
// fails with ErrStale as soon as any leaf in the pruned sub-graph is stale.
func (d *Driver) checkQuestion(sub *domain.Graph) error {
	for !sub.Empty() {
		leaves := sub.Leaves()
		if len(leaves) == 0 {
			break
		}
		for _, id := range leaves {
			v, _ := sub.Get(id)
			stale := v.Kind == domain.VertexKindTask || runner.IsRuleStale(v.Rule)
			if stale {
				return domain.ErrStale
			}
			sub.Remove(id)
		}
	}
	return nil
}

// processSubGraph drives the leaf-processing loop of §4.7 step 8 for a
// non-question build: enqueue every pending leaf, await completions one at
// a time, delete finished vertices, repeat until the sub-graph is empty. On
// the first failure it drains every job already in flight — it knows the
// exact count — before returning, rather than leaving them running past the
// build's own lifetime.
func (d *Driver) processSubGraph(ctx context.Context, coord *coordinator.Coordinator, sub *domain.Graph) error {
	owner := make(chan coordinator.Done)
	pending := 0

	for !sub.Empty() || pending > 0 {
		for _, id := range sub.Leaves() {
			v, _ := sub.Get(id)
			sub.SetStatus(id, domain.VertexStatusProcessing)
			pending++
			d.status("run", id.String())
			coord.Enqueue(ctx, v, owner)
		}

		if pending == 0 {
			break
		}

		done := <-owner
		pending--
		if done.Err != nil {
			d.status("fail", done.VertexID.String())
			drainInFlight(owner, pending)
			return zerr.With(zerr.Wrap(domain.ErrThrow, done.Err.Error()), "vertex", done.VertexID.String())
		}
		d.status("ok", done.VertexID.String())
		sub.Remove(done.VertexID)
	}
	return nil
}

// drainInFlight waits for exactly n already-enqueued jobs to report
// completion, concurrently, discarding their results — the build has
// already aborted on the first failure, so nothing further to schedule.
func drainInFlight(owner <-chan coordinator.Done, n int) {
	var g errgroup.Group
	for i := 0; i < n; i++ {
		g.Go(func() error {
			<-owner
			return nil
		})
	}
	_ = g.Wait()
}

// runFallbacks runs every stored fallback task serially, enqueuing and
// waiting for each one before starting the next.
func (d *Driver) runFallbacks(ctx context.Context, coord *coordinator.Coordinator, fallbacks []domain.Task) error {
	for _, fb := range fallbacks {
		owner := make(chan coordinator.Done, 1)
		v := &domain.Vertex{ID: fb.Name, Kind: domain.VertexKindTask, Task: fb}
		coord.Enqueue(ctx, v, owner)
		done := <-owner
		if done.Err != nil {
			return zerr.With(zerr.Wrap(domain.ErrThrow, done.Err.Error()), "fallback", fb.Name.String())
		}
	}
	return nil
}

func manifestOf(scripts []domain.ScriptMetadata) []string {
	var out []string
	for _, s := range scripts {
		out = append(out, filepath.Join(s.Directory, s.FileName))
		out = append(out, s.ManifestEntries...)
	}
	return out
}

func preciousSnapshot(scripts []domain.ScriptMetadata) map[string]string {
	out := make(map[string]string)
	for _, s := range scripts {
		for _, lib := range s.Libraries {
			for _, name := range lib.Precious {
				if v, ok := os.LookupEnv(name); ok {
					out[name] = v
				}
			}
		}
	}
	return out
}

func restorePreciousEnv(precious map[string]string) {
	for name, value := range precious {
		if _, set := os.LookupEnv(name); !set {
			_ = os.Setenv(name, value)
		}
	}
}

