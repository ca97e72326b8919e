package domain

// Rule binds a non-empty, ordered set of target file paths to the (possibly
// empty) ordered set of source file paths they are produced from, plus the
// recipe that performs the work.
type Rule struct {
	// Targets is the ordered, non-empty set of output file paths. Unique
	// across every rule in the build.
	Targets []InternedString
	// Sources is the ordered set of input file paths, possibly empty.
	Sources []InternedString
	// Recipe is the recipe invoked to produce Targets from Sources.
	Recipe RecipeRef
	// Directory anchors Targets and Sources and is passed to three-argument
	// recipes.
	Directory InternedString
}

// Task is a rule whose output is a symbolic name rather than files. Tasks
// are always considered stale and always re-run.
type Task struct {
	// Name is the path-qualified, globally unique symbolic name.
	Name InternedString
	// Sources is the ordered set of dependencies, which may name either
	// files on disk or other tasks.
	Sources []InternedString
	// RealSources is the subset of Sources that do not name another task —
	// i.e. must exist as files on disk before the task runs.
	RealSources []InternedString
	// Recipe is the recipe invoked for this task. A fallback task's recipe
	// has RecipeArityFallback and Sources/RealSources are always empty.
	Recipe RecipeRef
	// Directory anchors Sources and is passed to the recipe.
	Directory InternedString
	// Fallback marks a task that is only ever run by the Worker driver when
	// a requested target cannot be resolved in the graph.
	Fallback bool
}
