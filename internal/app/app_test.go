package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/config"
	"github.com/pattyalex/brand-journey-tracker/internal/events"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	boardservice "github.com/pattyalex/brand-journey-tracker/internal/services/board"
	"github.com/pattyalex/brand-journey-tracker/internal/testutil"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.DataDir = t.TempDir()
	return cfg
}

func TestNew(t *testing.T) {
	db := testutil.SetupTestDB(t)
	app := New(context.Background(), testConfig(t), db, WithSource("view-a"))

	assert.NotNil(t, app.BoardService)
	assert.NotNil(t, app.ScheduleService)
	assert.NotNil(t, app.ArchiveService)
	assert.NotNil(t, app.Wizard)
	assert.NotNil(t, app.Drag)
	assert.Equal(t, "view-a", app.Session.Source())
}

func TestPolicy_FollowsWorkflowConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Workflow.DefaultStartTime = "07:00"
	cfg.Workflow.SlotMinutes = 30
	cfg.Workflow.DefaultProductionStatus = models.ProductionFilming

	p := Policy(cfg)
	assert.Equal(t, "07:00", p.DefaultStartTime)
	assert.Equal(t, 30*time.Minute, p.Slot)
	assert.Equal(t, models.ProductionFilming, p.DefaultProductionStatus)
}

func TestOpen_PersistsAcrossRestart(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	first, err := Open(ctx, cfg)
	require.NoError(t, err)
	it, err := first.BoardService.CreateItem(ctx, boardservice.CreateItemRequest{Title: "Studio tour", StageID: types.StageIdeation})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := Open(ctx, cfg)
	require.NoError(t, err)
	defer func() { _ = second.Close() }()

	loc, err := second.BoardService.FindItem(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, "Studio tour", loc.Item.Title)
}

func TestRun_ViewsSeeEachOthersUpdates(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cfg := testConfig(t)

	bus := events.NewBus(16)
	defer func() { _ = bus.Close() }()

	writer, err := Open(ctx, cfg, WithEventPublisher(bus), WithSource("writer"))
	require.NoError(t, err)
	defer func() { _ = writer.Close() }()
	reader, err := Open(ctx, cfg, WithEventPublisher(bus), WithSource("reader"))
	require.NoError(t, err)
	defer func() { _ = reader.Close() }()

	var reloads atomic.Int32
	done := make(chan error, 1)
	go func() { done <- reader.Run(ctx, func() { reloads.Add(1) }) }()
	time.Sleep(20 * time.Millisecond)

	it, err := writer.BoardService.CreateItem(ctx, boardservice.CreateItemRequest{Title: "Shared", StageID: types.StageIdeation})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := reader.BoardService.FindItem(ctx, it.ID)
		return err == nil
	}, time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, reloads.Load(), int32(1))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestRun_FollowsOtherProcesses(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	cfg := testConfig(t)
	cfg.Events.PollIntervalMs = 10

	// Each App builds its own bus, as separate processes do
	writer, err := Open(ctx, cfg, WithSource("writer"))
	require.NoError(t, err)
	defer func() { _ = writer.Close() }()
	watcher, err := Open(ctx, cfg, WithSource("watcher"))
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	panel, err := watcher.Session.Events(ctx)
	require.NoError(t, err)

	var reloads atomic.Int32
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx, func() { reloads.Add(1) }) }()
	time.Sleep(50 * time.Millisecond)

	it, err := writer.BoardService.CreateItem(ctx, boardservice.CreateItemRequest{Title: "Across processes", StageID: types.StageIdeation})
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := watcher.BoardService.FindItem(ctx, it.ID)
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	assert.GreaterOrEqual(t, reloads.Load(), int32(1))

	writer.ArchiveService.RequestOpenPanel(ctx)
	assert.Eventually(t, func() bool {
		for {
			select {
			case ev, ok := <-panel:
				if !ok {
					return false
				}
				if ev.Type == events.EventOpenArchive && ev.Source == "writer" {
					return true
				}
			default:
				return false
			}
		}
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestClose(t *testing.T) {
	app := New(context.Background(), testConfig(t), testutil.SetupTestDB(t))
	assert.NoError(t, app.Close())
}
