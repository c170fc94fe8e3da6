package board

import (
	"context"
	"testing"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/app"
	"github.com/pattyalex/brand-journey-tracker/internal/config"
	boardservice "github.com/pattyalex/brand-journey-tracker/internal/services/board"
	clitest "github.com/pattyalex/brand-journey-tracker/internal/testutil/cli"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openView opens an App over the shared data dir, as a separate process would
func openView(t *testing.T, cfg *config.Config, source string) *app.App {
	t.Helper()
	a, err := app.Open(context.Background(), cfg, app.WithSource(source))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })
	return a
}

func TestWatch_FollowsOtherCommands(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Events.PollIntervalMs = 10

	view := openView(t, cfg, "watch")
	other := openView(t, cfg, "other")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type outcome struct {
		res clitest.Result
		err error
	}
	done := make(chan outcome, 1)
	go func() {
		res, err := clitest.ExecuteCLICommandWithContext(t, ctx, view, WatchCmd(), []string{"--stacked"})
		done <- outcome{res, err}
	}()
	time.Sleep(100 * time.Millisecond)

	bg := context.Background()
	it, err := other.BoardService.CreateItem(bg, boardservice.CreateItemRequest{Title: "Crosspost", StageID: types.StageIdeation})
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		_, err := view.BoardService.FindItem(bg, it.ID)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond, "watching view reloads after another process writes")

	_, err = other.ArchiveService.Archive(bg, it.ID)
	require.NoError(t, err)
	other.ArchiveService.RequestOpenPanel(bg)
	time.Sleep(300 * time.Millisecond)

	cancel()
	var got outcome
	select {
	case got = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}

	require.NoError(t, got.err)
	assert.Contains(t, got.res.Stdout, "Watching board")
	assert.Contains(t, got.res.Stdout, "Crosspost")
	assert.Contains(t, got.res.Stdout, "Archive (1)")
}

func TestWatch_JSONRendersEachUpdate(t *testing.T) {
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	cfg.Events.PollIntervalMs = 10

	view := openView(t, cfg, "watch")
	other := openView(t, cfg, "other")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan clitest.Result, 1)
	go func() {
		res, _ := clitest.ExecuteCLICommandWithContext(t, ctx, view, WatchCmd(), []string{"--json"})
		done <- res
	}()
	time.Sleep(100 * time.Millisecond)

	_, err := other.BoardService.CreateItem(context.Background(), boardservice.CreateItemRequest{Title: "Live", StageID: types.StageIdeation})
	require.NoError(t, err)
	time.Sleep(300 * time.Millisecond)
	cancel()

	var res clitest.Result
	select {
	case res = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}

	lines := nonEmptyLines(res.Stdout)
	require.GreaterOrEqual(t, len(lines), 2, "initial render plus one per update")
	assert.NotContains(t, lines[0], "Live")
	assert.Contains(t, lines[len(lines)-1], `"Live"`)
}
