package database

import (
	"context"
	"testing"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadEmptyDefaults(t *testing.T) {
	t.Parallel()
	store := NewStore(setupTestDB(t))

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Board.Stages, len(models.StageOrder()))
	assert.Empty(t, snap.Archive)
	assert.Zero(t, snap.BoardVersion)
}

func TestStore_SaveAndReloadAcrossRestart(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := setupTestDBFile(t)

	db, err := InitDB(ctx, path)
	require.NoError(t, err)
	store := NewStore(db)

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	it, err := snap.Board.CreateItem(types.StageScripting, "Morning routine", time.Now())
	require.NoError(t, err)
	archivedAt := time.Now().UTC()
	snap.Archive = append(snap.Archive, models.Item{ID: "old-archived-1", Title: "Old", ArchivedAt: &archivedAt})

	saved, err := store.Save(ctx, snap)
	require.NoError(t, err)
	assert.Equal(t, int64(1), saved.BoardVersion)
	assert.Equal(t, int64(1), saved.ArchiveVersion)
	require.NoError(t, db.Close())

	db, err = InitDB(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	loaded, err := NewStore(db).Load(ctx)
	require.NoError(t, err)
	got, stage, _, ok := loaded.Board.FindItem(it.ID)
	require.True(t, ok)
	assert.Equal(t, types.StageScripting, stage)
	assert.Equal(t, "Morning routine", got.Title)
	require.Len(t, loaded.Archive, 1)
	assert.NotNil(t, loaded.Archive[0].ArchivedAt)
}

func TestStore_StaleSaveWritesNothing(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := NewStore(setupTestDB(t))

	first, err := store.Load(ctx)
	require.NoError(t, err)
	second, err := store.Load(ctx)
	require.NoError(t, err)

	_, err = first.Board.CreateItem(types.StageIdeation, "first writer", time.Now())
	require.NoError(t, err)
	_, err = store.Save(ctx, first)
	require.NoError(t, err)

	_, err = second.Board.CreateItem(types.StageIdeation, "second writer", time.Now())
	require.NoError(t, err)
	_, err = store.Save(ctx, second)
	assert.ErrorIs(t, err, ErrVersionConflict)

	reloaded, err := store.Load(ctx)
	require.NoError(t, err)
	items, _ := reloaded.Board.ItemsInStage(types.StageIdeation)
	require.Len(t, items, 1)
	assert.Equal(t, "first writer", items[0].Title)
}

func TestStore_CorruptBoardFallsBackToEmpty(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := setupTestDB(t)
	store := NewStore(db)

	_, err := NewKVRepo(db).Put(ctx, BoardKey, []byte(`{not json`), 0)
	require.NoError(t, err)

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Zero(t, snap.Board.Count())
	assert.Equal(t, int64(1), snap.BoardVersion)

	// The next save replaces the corrupt row.
	_, err = store.Save(ctx, snap)
	require.NoError(t, err)
}
