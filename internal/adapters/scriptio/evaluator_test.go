package scriptio_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/exmake/internal/adapters/scriptio"
	"go.trai.ch/exmake/internal/core/domain"
)

func writeScript(t *testing.T, dir, content string) {
	t.Helper()
	path := filepath.Join(dir, "Exmakefile")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestEvaluator_Load_ParsesRulesTasksAndFallbacks(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, `
rules:
  - targets: ["out.bin"]
    sources: ["src.go"]
    recipe: build

tasks:
  - name: all
    sources: ["out.bin"]
    recipe: noop

fallback:
  - name: missing
    recipe: warn

manifest:
  - extra.txt

recipes:
  build:
    - "go build -o ${TARGETS} ${SOURCES}"
  noop:
    - "true"
  warn:
    - "echo missing"
`)

	e := scriptio.New()
	mods, err := e.Load(dir, "Exmakefile")
	require.NoError(t, err)
	require.Len(t, mods, 1)

	mod := mods[0]
	assert.Equal(t, filepath.Base(dir)+".Exmakefile", mod.ModuleIdentifier)
	assert.Equal(t, []string{"extra.txt"}, mod.ManifestEntries)

	require.Len(t, mod.Rules, 1)
	assert.Equal(t, []string{"out.bin"}, mod.Rules[0].Targets)
	assert.Equal(t, []string{"src.go"}, mod.Rules[0].Sources)
	assert.Equal(t, "build", mod.Rules[0].Recipe.Name)
	assert.Equal(t, domain.RecipeArityRule, mod.Rules[0].Recipe.Arity)

	require.Len(t, mod.Tasks, 1)
	assert.Equal(t, "all", mod.Tasks[0].Name)
	assert.Equal(t, domain.RecipeArityTask, mod.Tasks[0].Recipe.Arity)

	require.Len(t, mod.Fallbacks, 1)
	assert.Equal(t, "missing", mod.Fallbacks[0].Name)
	assert.True(t, mod.Fallbacks[0].Fallback)
	assert.Equal(t, domain.RecipeArityFallback, mod.Fallbacks[0].Recipe.Arity)

	assert.NotEmpty(t, mod.CompiledArtifact)
}

func TestEvaluator_Load_WithDirSelectsThreeArgumentArity(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, `
rules:
  - targets: ["out.bin"]
    sources: ["src.go"]
    recipe: build
    with_dir: true

recipes:
  build:
    - "true"
`)

	e := scriptio.New()
	mods, err := e.Load(dir, "Exmakefile")
	require.NoError(t, err)
	assert.Equal(t, domain.RecipeArityRuleDir, mods[0].Rules[0].Recipe.Arity)
}

func TestEvaluator_Load_RootDirectoryUsesRootModuleIdentifier(t *testing.T) {
	orig, err := os.Getwd()
	require.NoError(t, err)
	defer func() { _ = os.Chdir(orig) }()

	dir := t.TempDir()
	require.NoError(t, os.Chdir(dir))
	writeScript(t, ".", "tasks: []\n")

	e := scriptio.New()
	mods, loadErr := e.Load(".", "Exmakefile")
	require.NoError(t, loadErr)
	assert.Equal(t, "root.Exmakefile", mods[0].ModuleIdentifier)
}

func TestEvaluator_Load_MissingFileFails(t *testing.T) {
	e := scriptio.New()
	_, err := e.Load(t.TempDir(), "Exmakefile")
	assert.Error(t, err)
}

func TestEvaluator_Load_ParsesLoadLibAndLibraryOnLoad(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, `
load_lib:
  - id: mylib
    args: ["x"]
  - id: otherlib
    qualified: true

library:
  id: mylib
  description: a test library
  on_load: setup

recipes:
  setup:
    - "true"
`)

	e := scriptio.New()
	mods, err := e.Load(dir, "Exmakefile")
	require.NoError(t, err)
	mod := mods[0]

	require.Len(t, mod.LoadLibs, 2)
	assert.Equal(t, "mylib", mod.LoadLibs[0].ID)
	assert.Equal(t, []string{"x"}, mod.LoadLibs[0].Args)
	assert.False(t, mod.LoadLibs[0].Qualified)
	assert.Equal(t, "otherlib", mod.LoadLibs[1].ID)
	assert.True(t, mod.LoadLibs[1].Qualified)

	require.Len(t, mod.Libraries, 1)
	lib := mod.Libraries[0]
	assert.Equal(t, "mylib", lib.ID)
	assert.Equal(t, dir, lib.Directory)
	assert.False(t, lib.OnLoad.IsZero())
	assert.Equal(t, "setup", lib.OnLoad.Name)
	assert.Equal(t, domain.RecipeArityLibrary, lib.OnLoad.Arity)
}

func TestEvaluator_Load_LibraryWithoutOnLoadHasZeroRecipeRef(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, `
library:
  id: mylib
`)

	e := scriptio.New()
	mods, err := e.Load(dir, "Exmakefile")
	require.NoError(t, err)
	assert.True(t, mods[0].Libraries[0].OnLoad.IsZero())
}

func TestEvaluator_Load_InvalidYAMLFails(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "rules: [this is not valid\n")

	e := scriptio.New()
	_, err := e.Load(dir, "Exmakefile")
	assert.Error(t, err)
}
