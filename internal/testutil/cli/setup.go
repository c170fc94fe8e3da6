package cli

import (
	"context"
	"testing"

	"github.com/pattyalex/brand-journey-tracker/internal/app"
	"github.com/pattyalex/brand-journey-tracker/internal/config"
	"github.com/pattyalex/brand-journey-tracker/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns an App wired to it.
// Config defaults are used with the data dir pointed at a temp dir.
func SetupCLITest(t *testing.T) *app.App {
	t.Helper()

	cfg := config.Default()
	cfg.DataDir = t.TempDir()

	a := app.New(context.Background(), cfg, testutil.SetupTestDB(t), app.WithSource("cli-test"))
	t.Cleanup(func() { _ = a.Close() })
	return a
}
