package scriptio_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/exmake/internal/adapters/scriptio"
	"go.trai.ch/exmake/internal/core/domain"
	"go.trai.ch/exmake/internal/engine/environment"
)

type recordingExecutor struct {
	mu    sync.Mutex
	calls []execCall
	fail  bool
}

type execCall struct {
	dir  string
	env  []string
	name string
	args []string
}

func (e *recordingExecutor) Run(_ context.Context, dir string, env []string, name string, args ...string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls = append(e.calls, execCall{dir: dir, env: env, name: name, args: args})
	if e.fail {
		return assert.AnError
	}
	return nil
}

func modWithRecipes(moduleID string, recipes map[string][]string) domain.ScriptMetadata {
	data, _ := json.Marshal(struct {
		Recipes map[string][]string `json:"recipes"`
	}{Recipes: recipes})
	return domain.ScriptMetadata{ModuleIdentifier: moduleID, CompiledArtifact: data}
}

func TestRegistry_Invoke_RunsEachCommandLineInOrder(t *testing.T) {
	env := environment.New()
	env.Put("GREETING", "hi")
	exec := &recordingExecutor{}
	reg := scriptio.NewRegistry(env, exec)

	mod := modWithRecipes("root.Exmakefile", map[string][]string{
		"build": {"echo ${GREETING} one", "echo two"},
	})
	require.NoError(t, reg.LoadModules([]domain.ScriptMetadata{mod}))

	ref := domain.RecipeRef{ModuleID: "root.Exmakefile", Name: "build", Arity: domain.RecipeArityRule}
	inv := domain.RecipeInvocation{Sources: []string{"a.go"}, Targets: []string{"a.out"}, Directory: "."}

	err := reg.Invoke(context.Background(), ref, inv)
	require.NoError(t, err)
	require.Len(t, exec.calls, 2)
	assert.Equal(t, "echo hi one", exec.calls[0].args[1])
	assert.Equal(t, "echo two", exec.calls[1].args[1])
}

func TestRegistry_Invoke_StopsAtFirstError(t *testing.T) {
	env := environment.New()
	exec := &recordingExecutor{fail: true}
	reg := scriptio.NewRegistry(env, exec)

	mod := modWithRecipes("root.Exmakefile", map[string][]string{
		"build": {"false", "echo unreached"},
	})
	require.NoError(t, reg.LoadModules([]domain.ScriptMetadata{mod}))

	ref := domain.RecipeRef{ModuleID: "root.Exmakefile", Name: "build", Arity: domain.RecipeArityRule}
	err := reg.Invoke(context.Background(), ref, domain.RecipeInvocation{Directory: "."})
	require.Error(t, err)
	assert.Len(t, exec.calls, 1)
}

func TestRegistry_Invoke_LibraryArityExposesArgsAndTailArgs(t *testing.T) {
	env := environment.New()
	exec := &recordingExecutor{}
	reg := scriptio.NewRegistry(env, exec)

	mod := modWithRecipes("root.Exmakefile", map[string][]string{
		"setup": {"true"},
	})
	require.NoError(t, reg.LoadModules([]domain.ScriptMetadata{mod}))

	ref := domain.RecipeRef{ModuleID: "root.Exmakefile", Name: "setup", Arity: domain.RecipeArityLibrary}
	inv := domain.RecipeInvocation{LibArgs: []string{"x"}, TailArgs: []string{"y", "z"}, Directory: "libdir"}

	err := reg.Invoke(context.Background(), ref, inv)
	require.NoError(t, err)
	require.Len(t, exec.calls, 1)
	assert.Contains(t, exec.calls[0].env, "ARGS=x")
	assert.Contains(t, exec.calls[0].env, "TAIL_ARGS=y z")
	assert.Equal(t, "libdir", exec.calls[0].dir)
}

func TestRegistry_Invoke_UnknownModuleFails(t *testing.T) {
	reg := scriptio.NewRegistry(environment.New(), &recordingExecutor{})
	ref := domain.RecipeRef{ModuleID: "nope", Name: "x"}
	err := reg.Invoke(context.Background(), ref, domain.RecipeInvocation{})
	assert.Error(t, err)
}

func TestRegistry_Invoke_UnknownRecipeFails(t *testing.T) {
	env := environment.New()
	reg := scriptio.NewRegistry(env, &recordingExecutor{})
	mod := modWithRecipes("root.Exmakefile", map[string][]string{"build": {"true"}})
	require.NoError(t, reg.LoadModules([]domain.ScriptMetadata{mod}))

	ref := domain.RecipeRef{ModuleID: "root.Exmakefile", Name: "missing"}
	err := reg.Invoke(context.Background(), ref, domain.RecipeInvocation{})
	assert.Error(t, err)
}

func TestRegistry_LoadModules_SkipsEmptyArtifacts(t *testing.T) {
	reg := scriptio.NewRegistry(environment.New(), &recordingExecutor{})
	err := reg.LoadModules([]domain.ScriptMetadata{{ModuleIdentifier: "empty.Exmakefile"}})
	require.NoError(t, err)

	ref := domain.RecipeRef{ModuleID: "empty.Exmakefile", Name: "x"}
	err = reg.Invoke(context.Background(), ref, domain.RecipeInvocation{})
	assert.Error(t, err)
}
