package database

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVRepo_PutGet(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewKVRepo(db)
	ctx := context.Background()

	_, err := repo.Get(ctx, "board")
	assert.ErrorIs(t, err, ErrNotFound)

	v, err := repo.Put(ctx, "board", []byte(`[]`), 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	rec, err := repo.Get(ctx, "board")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(rec.Value))
	assert.Equal(t, int64(1), rec.Version)

	v, err = repo.Put(ctx, "board", []byte(`[1]`), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), v)
}

func TestKVRepo_StaleWriteDetected(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewKVRepo(db)
	ctx := context.Background()

	_, err := repo.Put(ctx, "board", []byte(`"a"`), 0)
	require.NoError(t, err)

	// Two writers both read version 1; the second must not overwrite.
	_, err = repo.Put(ctx, "board", []byte(`"b"`), 1)
	require.NoError(t, err)
	_, err = repo.Put(ctx, "board", []byte(`"c"`), 1)
	assert.ErrorIs(t, err, ErrVersionConflict)

	// Creating an existing key is also stale.
	_, err = repo.Put(ctx, "board", []byte(`"d"`), 0)
	assert.ErrorIs(t, err, ErrVersionConflict)

	rec, err := repo.Get(ctx, "board")
	require.NoError(t, err)
	assert.Equal(t, `"b"`, string(rec.Value))
	assert.Equal(t, int64(2), rec.Version)
}

func TestKVRepo_Delete(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewKVRepo(db)
	ctx := context.Background()

	_, err := repo.Put(ctx, "k", []byte(`1`), 0)
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, "k"))
	require.NoError(t, repo.Delete(ctx, "k"))

	_, err = repo.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	uow := NewUnitOfWork(db)
	ctx := context.Background()
	boom := errors.New("boom")

	err := uow.WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
		if _, err := NewKVRepo(tx).Put(ctx, "k", []byte(`1`), 0); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = NewKVRepo(db).Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	uow := NewUnitOfWork(db)
	ctx := context.Background()

	assert.Panics(t, func() {
		_ = uow.WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
			_, _ = NewKVRepo(tx).Put(ctx, "k", []byte(`1`), 0)
			panic("boom")
		})
	})

	_, err := NewKVRepo(db).Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}
