package loader_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/exmake/internal/core/domain"
	"go.trai.ch/exmake/internal/engine/loader"
)

type fakeEvaluator struct {
	byKey map[string][]domain.ScriptMetadata
	err   map[string]error
}

func key(dir, file string) string { return dir + "/" + file }

func (f *fakeEvaluator) Load(dir, file string) ([]domain.ScriptMetadata, error) {
	k := key(dir, file)
	if err, ok := f.err[k]; ok {
		return nil, err
	}
	return f.byKey[k], nil
}

func TestLoader_Load_SingleModule(t *testing.T) {
	fe := &fakeEvaluator{byKey: map[string][]domain.ScriptMetadata{
		"./Exmakefile": {
			{Directory: ".", FileName: "Exmakefile", ModuleIdentifier: "Build.Exmakefile"},
		},
	}}

	got, err := loader.New(fe).Load(".", "Exmakefile")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "Build.Exmakefile", got[0].ModuleIdentifier)
}

func TestLoader_Load_NoModule(t *testing.T) {
	fe := &fakeEvaluator{byKey: map[string][]domain.ScriptMetadata{
		"./Exmakefile": {},
	}}

	_, err := loader.New(fe).Load(".", "Exmakefile")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLoad)
	assert.Contains(t, err.Error(), "No module ending in '.Exmakefile' defined")
}

func TestLoader_Load_TooManyModules(t *testing.T) {
	fe := &fakeEvaluator{byKey: map[string][]domain.ScriptMetadata{
		"./Exmakefile": {
			{ModuleIdentifier: "TooManyModules1.Exmakefile"},
			{ModuleIdentifier: "TooManyModules2.Exmakefile"},
		},
	}}

	_, err := loader.New(fe).Load(".", "Exmakefile")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLoad)
	assert.Contains(t, err.Error(), "2 modules ending in '.Exmakefile' defined")
}

func TestLoader_Load_EvaluatorFailureWrapped(t *testing.T) {
	fe := &fakeEvaluator{err: map[string]error{
		"./Exmakefile": errors.New("syntax error at line 3"),
	}}

	_, err := loader.New(fe).Load(".", "Exmakefile")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLoad)
	assert.Contains(t, err.Error(), "syntax error at line 3")
}

func TestLoader_Load_FileNameWithSeparator(t *testing.T) {
	fe := &fakeEvaluator{}

	_, err := loader.New(fe).Load(".", "sub/Exmakefile")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUsage)
}

func TestLoader_Load_RecursesSubScripts(t *testing.T) {
	fe := &fakeEvaluator{byKey: map[string][]domain.ScriptMetadata{
		"./Exmakefile": {
			{
				ModuleIdentifier: "Root.Exmakefile",
				SubScripts:       []domain.SubScriptDecl{{Dir: "lib"}},
			},
		},
		"lib/Exmakefile": {
			{ModuleIdentifier: "Lib.Exmakefile"},
		},
	}}

	got, err := loader.New(fe).Load(".", "Exmakefile")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Root.Exmakefile", got[0].ModuleIdentifier)
	assert.Equal(t, "Lib.Exmakefile", got[1].ModuleIdentifier)
}

func TestLoader_Load_SubScriptDirWithSeparator(t *testing.T) {
	fe := &fakeEvaluator{byKey: map[string][]domain.ScriptMetadata{
		"./Exmakefile": {
			{
				ModuleIdentifier: "Root.Exmakefile",
				SubScripts:       []domain.SubScriptDecl{{Dir: "a/b"}},
			},
		},
	}}

	_, err := loader.New(fe).Load(".", "Exmakefile")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUsage)
}
