package testutil

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pattyalex/brand-journey-tracker/internal/database"
	"github.com/stretchr/testify/require"
)

// SetupTestDB creates an in-memory database with full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), database.MemoryPath)
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SetupTestStore creates a board store over a fresh in-memory database
func SetupTestStore(t *testing.T) *database.Store {
	t.Helper()
	return database.NewStore(SetupTestDB(t))
}
