package domain

import "go.trai.ch/zerr"

// The eight error kinds of the error-handling design. Each is a zerr
// sentinel; call sites attach per-occurrence metadata with zerr.With and
// compare kinds with errors.Is against these values.
var (
	// ErrUsage signals bad CLI arguments or a missing source file discovered
	// at build time.
	ErrUsage = zerr.New("UsageError")

	// ErrLoad signals a script file that is absent, unreadable, or violates
	// the one-module-per-script contract.
	ErrLoad = zerr.New("LoadError")

	// ErrScript signals a malformed rule/task declaration, a duplicate
	// target, a task/rule name collision, a cyclic dependency, or a recipe
	// contract violation.
	ErrScript = zerr.New("ScriptError")

	// ErrCache signals an I/O failure persisting or restoring a cache file.
	ErrCache = zerr.New("CacheError")

	// ErrShell signals a recipe subprocess that returned a non-zero exit
	// code.
	ErrShell = zerr.New("ShellError")

	// ErrEnv signals a mismatched string/list operation on an environment
	// table entry.
	ErrEnv = zerr.New("EnvError")

	// ErrStale signals, only under --question, that some rule in the
	// pruned sub-graph is stale.
	ErrStale = zerr.New("StaleError")

	// ErrThrow wraps a non-exception value thrown inside a recipe so
	// callers can handle every recipe failure uniformly.
	ErrThrow = zerr.New("ThrowError")
)

// Legacy aliases kept for the graph's own invariants, which are reported as
// ScriptError per spec but benefit from distinguishable sentinels inside
// package domain itself.
var (
	// ErrTargetAlreadyExists is returned when two rules claim the same target.
	ErrTargetAlreadyExists = zerr.New("multiple rules mention target")

	// ErrNameConflict is returned when a task name collides with a target or
	// another task name.
	ErrNameConflict = zerr.New("task name conflicts with a rule")

	// ErrMissingDependency is returned when a vertex's source does not
	// resolve to any vertex in the graph.
	ErrMissingDependency = zerr.New("missing dependency")

	// ErrCycleDetected is returned when adding an edge would create a cycle.
	ErrCycleDetected = zerr.New("cyclic dependency detected")

	// ErrRuleDependsOnTask is returned when a file rule names a task among
	// its sources.
	ErrRuleDependsOnTask = zerr.New("rule depends on task")

	// ErrVertexNotFound is returned when a requested target or task name is
	// not present in the graph.
	ErrVertexNotFound = zerr.New("vertex not found")
)
