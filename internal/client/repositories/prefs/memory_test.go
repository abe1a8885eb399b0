package prefs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gamevault-app/gamevault/internal/common"
)

func TestMemory_GetSetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	_, err := m.Get(ctx, "missing")
	require.ErrorIs(t, err, common.ErrNotFound)

	require.NoError(t, m.Set(ctx, "k", "v1"))
	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v1", got)

	// Overwrite.
	require.NoError(t, m.Set(ctx, "k", "v2"))
	got, err = m.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "v2", got)

	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Get(ctx, "k")
	require.ErrorIs(t, err, common.ErrNotFound)

	// Delete of an absent key is idempotent.
	require.NoError(t, m.Delete(ctx, "k"))
}

func TestMemory_AllReturnsSnapshot(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Set(ctx, "a", "1"))
	require.NoError(t, m.Set(ctx, "b", "2"))

	all, err := m.All(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"a": "1", "b": "2"}, all)

	// Mutating the snapshot must not touch the store.
	all["a"] = "changed"
	got, err := m.Get(ctx, "a")
	require.NoError(t, err)
	require.Equal(t, "1", got)
}
