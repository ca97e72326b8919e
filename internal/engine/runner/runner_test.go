package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/exmake/internal/core/domain"
	"go.trai.ch/exmake/internal/engine/runner"
)

type nopLogger struct{}

func (nopLogger) Debug(string) {}
func (nopLogger) Info(string)  {}
func (nopLogger) Warn(string)  {}
func (nopLogger) Error(error)  {}

type fakeRegistry struct {
	invoke func(ctx context.Context, ref domain.RecipeRef, inv domain.RecipeInvocation) error
	calls  int
}

func (f *fakeRegistry) Invoke(ctx context.Context, ref domain.RecipeRef, inv domain.RecipeInvocation) error {
	f.calls++
	if f.invoke != nil {
		return f.invoke(ctx, ref, inv)
	}
	return nil
}

func touch(t *testing.T, path string, at time.Time) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chtimes(path, at, at))
}

func TestRunner_Run_UpToDateRuleSkipsRecipe(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.c")
	out := filepath.Join(dir, "out.o")
	now := time.Now()
	touch(t, src, now.Add(-time.Hour))
	touch(t, out, now)

	reg := &fakeRegistry{}
	r := runner.New(reg, nopLogger{})

	v := &domain.Vertex{
		Kind: domain.VertexKindRule,
		ID:   domain.NewInternedString(out),
		Rule: domain.Rule{
			Targets: []domain.InternedString{domain.NewInternedString(out)},
			Sources: []domain.InternedString{domain.NewInternedString(src)},
		},
	}

	res := r.Run(context.Background(), v)
	require.NoError(t, res.Err)
	assert.Zero(t, reg.calls)
}

func TestRunner_Run_StaleRuleInvokesRecipe(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.c")
	out := filepath.Join(dir, "out.o")
	now := time.Now()
	touch(t, src, now)
	touch(t, out, now.Add(-time.Hour))

	reg := &fakeRegistry{invoke: func(ctx context.Context, ref domain.RecipeRef, inv domain.RecipeInvocation) error {
		return os.Chtimes(out, time.Now(), time.Now())
	}}
	r := runner.New(reg, nopLogger{})

	v := &domain.Vertex{
		Kind: domain.VertexKindRule,
		ID:   domain.NewInternedString(out),
		Rule: domain.Rule{
			Targets: []domain.InternedString{domain.NewInternedString(out)},
			Sources: []domain.InternedString{domain.NewInternedString(src)},
		},
	}

	res := r.Run(context.Background(), v)
	require.NoError(t, res.Err)
	assert.Equal(t, 1, reg.calls)
}

func TestRunner_Run_MissingSourceFailsExistenceCheck(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.o")

	reg := &fakeRegistry{}
	r := runner.New(reg, nopLogger{})

	v := &domain.Vertex{
		Kind: domain.VertexKindRule,
		ID:   domain.NewInternedString(out),
		Rule: domain.Rule{
			Targets: []domain.InternedString{domain.NewInternedString(out)},
			Sources: []domain.InternedString{domain.NewInternedString(filepath.Join(dir, "missing.c"))},
		},
	}

	res := r.Run(context.Background(), v)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, domain.ErrUsage)
	assert.Zero(t, reg.calls)
}

func TestRunner_Run_MissingOutputCleansUpAndFails(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.c")
	out := filepath.Join(dir, "out.o")
	touch(t, src, time.Now())

	reg := &fakeRegistry{invoke: func(ctx context.Context, ref domain.RecipeRef, inv domain.RecipeInvocation) error {
		return nil // recipe claims success without producing the target
	}}
	r := runner.New(reg, nopLogger{})

	v := &domain.Vertex{
		Kind: domain.VertexKindRule,
		ID:   domain.NewInternedString(out),
		Rule: domain.Rule{
			Targets: []domain.InternedString{domain.NewInternedString(out)},
			Sources: []domain.InternedString{domain.NewInternedString(src)},
		},
	}

	res := r.Run(context.Background(), v)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, domain.ErrScript)
	assert.Contains(t, res.Err.Error(), "did not produce")
}

func TestRunner_Run_RecipeErrorWrappedAsThrow(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.c")
	out := filepath.Join(dir, "out.o")
	touch(t, src, time.Now())

	reg := &fakeRegistry{invoke: func(ctx context.Context, ref domain.RecipeRef, inv domain.RecipeInvocation) error {
		return assert.AnError
	}}
	r := runner.New(reg, nopLogger{})

	v := &domain.Vertex{
		Kind: domain.VertexKindRule,
		ID:   domain.NewInternedString(out),
		Rule: domain.Rule{
			Targets: []domain.InternedString{domain.NewInternedString(out)},
			Sources: []domain.InternedString{domain.NewInternedString(src)},
		},
	}

	res := r.Run(context.Background(), v)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, domain.ErrThrow)
}

func TestRunner_Run_TaskAlwaysInvokesRecipe(t *testing.T) {
	reg := &fakeRegistry{}
	r := runner.New(reg, nopLogger{})

	v := &domain.Vertex{
		Kind: domain.VertexKindTask,
		ID:   domain.NewInternedString("all"),
		Task: domain.Task{Name: domain.NewInternedString("all")},
	}

	res := r.Run(context.Background(), v)
	require.NoError(t, res.Err)
	assert.Equal(t, 1, reg.calls)
}

func TestIsRuleStale_MissingTargetForcesBuild(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.c")
	touch(t, src, time.Now())

	rule := domain.Rule{
		Targets: []domain.InternedString{domain.NewInternedString(filepath.Join(dir, "missing.o"))},
		Sources: []domain.InternedString{domain.NewInternedString(src)},
	}
	assert.True(t, runner.IsRuleStale(rule))
}
