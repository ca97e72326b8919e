package ports

import "context"

// Executor runs a shell command on behalf of a recipe. It is the
// collaborator the bundled recipes (internal/adapters/scriptio) and any
// user recipe issuing shell commands invoke; it is distinct from the
// Runner, which enforces the recipe contract around one whole rule/task.
//
//go:generate go run go.uber.org/mock/mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Run executes name with args in dir, with env appended ("KEY=VALUE"
	// entries) on top of the process environment, streaming stdout/stderr
	// to the configured Logger. It returns an error wrapping
	// domain.ErrShell (via zerr) on a non-zero exit.
	Run(ctx context.Context, dir string, env []string, name string, args ...string) error
}
