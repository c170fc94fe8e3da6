package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
)

// Keys of the persisted documents
const (
	BoardKey   = "board"
	ArchiveKey = "archive"
)

// Snapshot is the full persisted state plus the versions it was read at
type Snapshot struct {
	Board          *models.Board
	Archive        []models.Item
	BoardVersion   int64
	ArchiveVersion int64
}

// DataStore loads and saves the board and archive documents
type DataStore interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) (Snapshot, error)
}

// Store persists the board and archive as JSON documents in kv_store
type Store struct {
	db  *sql.DB
	uow UnitOfWork
}

// NewStore creates a Store over an initialized database
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, uow: NewUnitOfWork(db)}
}

var _ DataStore = (*Store)(nil)

// Load reads both documents. A missing document yields an empty default; a
// corrupt document is logged and replaced by the empty default while keeping
// its version, so the next save overwrites it instead of conflicting.
func (s *Store) Load(ctx context.Context) (Snapshot, error) {
	repo := NewKVRepo(s.db)
	snap := Snapshot{Board: models.NewBoard(), Archive: []models.Item{}}

	rec, err := repo.Get(ctx, BoardKey)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return snap, err
	default:
		snap.BoardVersion = rec.Version
		var board models.Board
		if err := json.Unmarshal(rec.Value, &board); err != nil {
			slog.Warn("stored board unreadable, starting empty", "version", rec.Version, "error", err)
		} else {
			snap.Board = &board
		}
	}

	rec, err = repo.Get(ctx, ArchiveKey)
	switch {
	case errors.Is(err, ErrNotFound):
	case err != nil:
		return snap, err
	default:
		snap.ArchiveVersion = rec.Version
		var archive []models.Item
		if err := json.Unmarshal(rec.Value, &archive); err != nil {
			slog.Warn("stored archive unreadable, starting empty", "version", rec.Version, "error", err)
		} else if archive != nil {
			snap.Archive = archive
		}
	}

	return snap, nil
}

// Save writes both documents in one transaction. The snapshot's versions are
// the ones the caller read; if either moved, nothing is written and
// ErrVersionConflict is returned. The returned snapshot carries the new
// versions.
func (s *Store) Save(ctx context.Context, snap Snapshot) (Snapshot, error) {
	boardJSON, err := json.Marshal(snap.Board)
	if err != nil {
		return snap, fmt.Errorf("failed to encode board: %w", err)
	}
	archive := snap.Archive
	if archive == nil {
		archive = []models.Item{}
	}
	archiveJSON, err := json.Marshal(archive)
	if err != nil {
		return snap, fmt.Errorf("failed to encode archive: %w", err)
	}

	out := snap
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx DBTX) error {
		repo := NewKVRepo(tx)
		v, err := repo.Put(ctx, BoardKey, boardJSON, snap.BoardVersion)
		if err != nil {
			return fmt.Errorf("board: %w", err)
		}
		out.BoardVersion = v

		v, err = repo.Put(ctx, ArchiveKey, archiveJSON, snap.ArchiveVersion)
		if err != nil {
			return fmt.Errorf("archive: %w", err)
		}
		out.ArchiveVersion = v
		return nil
	})
	if err != nil {
		return snap, err
	}
	return out, nil
}
