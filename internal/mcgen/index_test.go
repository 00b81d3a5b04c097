package mcgen

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestIndex(t *testing.T) *Index {
	t.Helper()
	ix, err := OpenIndex(filepath.Join(t.TempDir(), "state", "index.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = ix.Close() })
	return ix
}

func TestIndexPutLookup(t *testing.T) {
	ctx := context.Background()
	ix := openTestIndex(t)

	_, ok, err := ix.Lookup(ctx, "ChairBB.java")
	require.NoError(t, err)
	assert.False(t, ok)

	stamp := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	want := IndexEntry{
		Target:    "ChairBB.java",
		BlockIDs:  []string{"chair", "stool"},
		Hash:      0xfedcba9876543210,
		Fields:    4,
		Boxes:     9,
		UpdatedAt: stamp,
	}
	require.NoError(t, ix.Put(ctx, want))

	got, ok, err := ix.Lookup(ctx, "ChairBB.java")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, stamp.Equal(got.UpdatedAt))
	got.UpdatedAt = stamp
	assert.Equal(t, want, got)

	want.Hash = 1
	want.BlockIDs = []string{"chair"}
	require.NoError(t, ix.Put(ctx, want))
	got, _, err = ix.Lookup(ctx, "ChairBB.java")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.Hash)
	assert.Equal(t, []string{"chair"}, got.BlockIDs)
}

func TestIndexUnchanged(t *testing.T) {
	ctx := context.Background()
	ix := openTestIndex(t)
	target := filepath.Join(t.TempDir(), "ChairBB.java")

	require.NoError(t, ix.Put(ctx, IndexEntry{Target: target, Hash: 42}))

	unchanged, err := ix.Unchanged(ctx, target, 42)
	require.NoError(t, err)
	assert.False(t, unchanged, "target missing on disk")

	writeFile(t, target, "class ChairBB {}")
	unchanged, err = ix.Unchanged(ctx, target, 42)
	require.NoError(t, err)
	assert.True(t, unchanged)

	unchanged, err = ix.Unchanged(ctx, target, 43)
	require.NoError(t, err)
	assert.False(t, unchanged)

	unchanged, err = ix.Unchanged(ctx, "other", 42)
	require.NoError(t, err)
	assert.False(t, unchanged)
}

func TestIndexEntriesSorted(t *testing.T) {
	ctx := context.Background()
	ix := openTestIndex(t)
	for _, target := range []string{"b", "c", "a"} {
		require.NoError(t, ix.Put(ctx, IndexEntry{Target: target}))
	}

	entries, err := ix.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a", entries[0].Target)
	assert.Equal(t, "c", entries[2].Target)
	assert.Empty(t, entries[0].BlockIDs)
	assert.False(t, entries[0].UpdatedAt.IsZero())
}

func TestOpenIndexEmptyPath(t *testing.T) {
	_, err := OpenIndex("")
	assert.Error(t, err)
}

func TestInputHash(t *testing.T) {
	sum := func(parts ...string) uint64 {
		ih := newInputHash()
		ih.add(parts...)
		return ih.Sum64()
	}

	assert.Equal(t, sum("a", "bc"), sum("a", "bc"))
	assert.NotEqual(t, sum("a", "bc"), sum("ab", "c"))
	assert.NotEqual(t, sum("a"), sum("b"))

	ih := newInputHash()
	ih.addBytes([]byte("ab"))
	assert.Equal(t, sum("ab"), ih.Sum64())
}
