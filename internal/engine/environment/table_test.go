package environment_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/exmake/internal/core/domain"
	"go.trai.ch/exmake/internal/engine/environment"
)

func TestTable_PutGet(t *testing.T) {
	tbl := environment.New()
	tbl.Put("NAME", "exmake")

	v, err := tbl.Get("NAME")
	require.NoError(t, err)
	assert.Equal(t, "exmake", v)
}

func TestTable_Get_Unset(t *testing.T) {
	tbl := environment.New()
	_, err := tbl.Get("MISSING")
	assert.ErrorIs(t, err, domain.ErrEnv)
}

func TestTable_Get_WrongKind(t *testing.T) {
	tbl := environment.New()
	require.NoError(t, tbl.ListAppend("FLAGS", "-O2"))

	_, err := tbl.Get("FLAGS")
	assert.ErrorIs(t, err, domain.ErrEnv)
}

func TestTable_ListAppendPrependGet(t *testing.T) {
	tbl := environment.New()
	require.NoError(t, tbl.ListAppend("FLAGS", "-O2"))
	require.NoError(t, tbl.ListAppend("FLAGS", "-Wall"))
	require.NoError(t, tbl.ListPrepend("FLAGS", "-g"))

	got, err := tbl.ListGet("FLAGS")
	require.NoError(t, err)
	assert.Equal(t, []string{"-g", "-O2", "-Wall"}, got)
}

func TestTable_ListAppend_WrongKind(t *testing.T) {
	tbl := environment.New()
	tbl.Put("NAME", "exmake")

	err := tbl.ListAppend("NAME", "x")
	assert.ErrorIs(t, err, domain.ErrEnv)
}

func TestTable_ListDelete_ExactAndRegex(t *testing.T) {
	tbl := environment.New()
	require.NoError(t, tbl.ListAppend("FLAGS", "-O2"))
	require.NoError(t, tbl.ListAppend("FLAGS", "-Wall"))
	require.NoError(t, tbl.ListAppend("FLAGS", "-Wextra"))

	require.NoError(t, tbl.ListDelete("FLAGS", "-O2"))
	require.NoError(t, tbl.ListDelete("FLAGS", "^-W.*"))

	got, err := tbl.ListGet("FLAGS")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestTable_Delete(t *testing.T) {
	tbl := environment.New()
	tbl.Put("NAME", "exmake")
	tbl.Delete("NAME")

	_, err := tbl.Get("NAME")
	assert.ErrorIs(t, err, domain.ErrEnv)
}

func TestTable_Reduce_StringAndList(t *testing.T) {
	tbl := environment.New()
	tbl.Put("NAME", "exmake")
	require.NoError(t, tbl.ListAppend("FLAGS", "-O2"))
	require.NoError(t, tbl.ListAppend("FLAGS", "-Wall"))

	got := tbl.Reduce("cc ${FLAGS} -o ${NAME}")
	assert.Equal(t, "cc -O2 -Wall -o exmake", got)
}

func TestTable_Reduce_UnknownKeyLeftVerbatim(t *testing.T) {
	tbl := environment.New()
	got := tbl.Reduce("${UNSET}")
	assert.Equal(t, "${UNSET}", got)
}

func TestTable_Reduce_NotRecursive(t *testing.T) {
	tbl := environment.New()
	tbl.Put("A", "${B}")
	tbl.Put("B", "should-not-appear")

	got := tbl.Reduce("${A}")
	assert.Equal(t, "${B}", got)
}

func TestTable_SnapshotAndFrom(t *testing.T) {
	tbl := environment.New()
	tbl.Put("NAME", "exmake")
	require.NoError(t, tbl.ListAppend("FLAGS", "-O2"))

	snap := tbl.Snapshot()
	restored := environment.NewFrom(snap)

	v, err := restored.Get("NAME")
	require.NoError(t, err)
	assert.Equal(t, "exmake", v)

	l, err := restored.ListGet("FLAGS")
	require.NoError(t, err)
	assert.Equal(t, []string{"-O2"}, l)
}
