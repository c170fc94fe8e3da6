package archive

import (
	"context"
	"testing"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/events"
	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/pattyalex/brand-journey-tracker/internal/session"
	"github.com/pattyalex/brand-journey-tracker/internal/testutil"
	"github.com/pattyalex/brand-journey-tracker/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

func setupService(t *testing.T) (Service, *session.Session, *events.Bus) {
	t.Helper()
	bus := events.NewBus(16)
	t.Cleanup(func() { _ = bus.Close() })
	sess := session.New(context.Background(), testutil.SetupTestStore(t), bus, "test-view", 1)
	return NewService(sess), sess, bus
}

// seedRichItem creates an item with content, progress and a firm schedule
func seedRichItem(t *testing.T, sess *session.Session, stage types.StageID) models.Item {
	t.Helper()
	var it models.Item
	require.NoError(t, sess.Update(context.Background(), func(w *session.Workspace) error {
		var err error
		it, err = w.Board.CreateItem(stage, "Kitchen tour", time.Now())
		if err != nil {
			return err
		}
		it.Hook = "You won't believe the pantry"
		it.Script = "Walk in, pan left"
		it.Platforms = []string{"tiktok", "reels"}
		it.Shots = []models.Shot{{ID: "s1", Description: "wide", Done: true}}
		it.EditChecklist = []models.ChecklistItem{{ID: "c1", Text: "captions", Checked: true}}
		it.ProductionStatus = models.ProductionFilmed
		if err := it.SetSchedule(time.Date(2025, 3, 1, 0, 0, 0, 0, time.Local), "09:00", "", time.Hour); err != nil {
			return err
		}
		return w.Board.Replace(it)
	}))
	found, _, _, _ := sess.Board().FindItem(it.ID)
	return found
}

func onBoard(sess *session.Session, id types.ItemID) bool {
	_, _, _, ok := sess.Board().FindItem(id)
	return ok
}

// ============================================================================
// ARCHIVE
// ============================================================================

func TestArchive_CopyLeavesOriginal(t *testing.T) {
	svc, sess, _ := setupService(t)
	ctx := context.Background()
	it := seedRichItem(t, sess, types.StageEditing)

	entry, err := svc.Archive(ctx, it.ID)
	require.NoError(t, err)
	assert.Contains(t, string(entry.ID), string(it.ID)+"-archived-")
	require.NotNil(t, entry.ArchivedAt)
	assert.True(t, onBoard(sess, it.ID))

	// A second copy in the same instant still gets its own id
	again, err := svc.Archive(ctx, it.ID)
	require.NoError(t, err)
	assert.NotEqual(t, entry.ID, again.ID)
	assert.Len(t, svc.List(ctx), 2)
}

func TestArchiveAndRemove(t *testing.T) {
	svc, sess, _ := setupService(t)
	ctx := context.Background()
	it := seedRichItem(t, sess, types.StageEditing)

	entry, err := svc.ArchiveAndRemove(ctx, it.ID)
	require.NoError(t, err)
	assert.False(t, onBoard(sess, it.ID))

	got, err := svc.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, "Kitchen tour", got.Title)

	_, err = svc.ArchiveAndRemove(ctx, it.ID)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestDelete_RequiresConfirmation(t *testing.T) {
	svc, sess, _ := setupService(t)
	ctx := context.Background()
	it := seedRichItem(t, sess, types.StageShooting)

	err := svc.Delete(ctx, DeleteRequest{ItemID: it.ID})
	assert.ErrorIs(t, err, ErrConfirmationRequired)
	assert.True(t, onBoard(sess, it.ID))

	require.NoError(t, svc.Delete(ctx, DeleteRequest{ItemID: it.ID, Confirm: true}))
	assert.False(t, onBoard(sess, it.ID))
	assert.Empty(t, svc.List(ctx), "permanent delete leaves no entry")
}

// ============================================================================
// RESTORE / REPURPOSE
// ============================================================================

func TestRestore_RoundTrip(t *testing.T) {
	svc, sess, _ := setupService(t)
	ctx := context.Background()
	it := seedRichItem(t, sess, types.StageScheduling)
	require.NoError(t, sess.Update(ctx, func(w *session.Workspace) error {
		_, err := w.Board.CreateItem(types.StageEditing, "already here", time.Now())
		return err
	}))

	entry, err := svc.ArchiveAndRemove(ctx, it.ID)
	require.NoError(t, err)

	restored, err := svc.Restore(ctx, RestoreRequest{EntryID: entry.ID, StageID: types.StageEditing})
	require.NoError(t, err)

	assert.NotEqual(t, it.ID, restored.ID)
	assert.NotEqual(t, entry.ID, restored.ID)
	assert.Nil(t, restored.ArchivedAt)
	assert.Nil(t, restored.ScheduledDate)
	assert.Equal(t, models.SchedulingToSchedule, restored.SchedulingStatus)
	assert.Equal(t, it.Title, restored.Title)
	assert.Equal(t, it.Script, restored.Script)
	assert.Equal(t, it.Shots, restored.Shots)
	assert.Equal(t, it.Platforms, restored.Platforms)

	items, _ := sess.Board().ItemsInStage(types.StageEditing)
	require.Len(t, items, 2)
	assert.Equal(t, restored.ID, items[0].ID, "restored at the head of the stage")
	assert.Empty(t, svc.List(ctx), "entry leaves the archive")
}

func TestRestore_StageRules(t *testing.T) {
	svc, sess, _ := setupService(t)
	ctx := context.Background()
	it := seedRichItem(t, sess, types.StageEditing)
	entry, err := svc.ArchiveAndRemove(ctx, it.ID)
	require.NoError(t, err)

	_, err = svc.Restore(ctx, RestoreRequest{EntryID: entry.ID, StageID: types.StagePosted})
	assert.ErrorIs(t, err, ErrTerminalStage)
	_, err = svc.Restore(ctx, RestoreRequest{EntryID: "nope", StageID: types.StageEditing})
	assert.ErrorIs(t, err, ErrEntryNotFound)
	assert.Len(t, svc.List(ctx), 1, "failed restores keep the entry")

	restored, err := svc.Restore(ctx, RestoreRequest{EntryID: entry.ID})
	require.NoError(t, err)
	assert.Equal(t, types.StageIdeation, restored.StageID)
}

func TestRepurpose(t *testing.T) {
	svc, sess, _ := setupService(t)
	ctx := context.Background()
	it := seedRichItem(t, sess, types.StageScheduling)
	entry, err := svc.ArchiveAndRemove(ctx, it.ID)
	require.NoError(t, err)

	fresh, err := svc.Repurpose(ctx, entry.ID)
	require.NoError(t, err)

	assert.Equal(t, types.StageIdeation, fresh.StageID)
	assert.NotEqual(t, it.ID, fresh.ID)
	assert.Equal(t, it.Title, fresh.Title)
	assert.Equal(t, it.Hook, fresh.Hook)
	assert.Equal(t, it.Script, fresh.Script)
	assert.Nil(t, fresh.ScheduledDate)
	assert.Nil(t, fresh.PlannedDate)
	assert.Empty(t, fresh.StartTime)
	assert.Equal(t, models.SchedulingNotScheduled, fresh.SchedulingStatus)
	assert.Empty(t, fresh.ProductionStatus)
	require.Len(t, fresh.Shots, 1)
	assert.False(t, fresh.Shots[0].Done)

	// The entry itself is untouched
	got, err := svc.Get(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, entry, got)
	assert.True(t, got.Shots[0].Done)
}

// ============================================================================
// EVENTS
// ============================================================================

func TestHandleEvent_ArchiveItem(t *testing.T) {
	svc, sess, _ := setupService(t)
	ctx := context.Background()
	it := seedRichItem(t, sess, types.StageEditing)

	require.NoError(t, svc.HandleEvent(ctx, events.Event{Type: events.EventArchiveItem, Item: &it}))
	assert.False(t, onBoard(sess, it.ID))
	assert.Len(t, svc.List(ctx), 1)

	// An item already off the board is still recorded
	require.NoError(t, svc.HandleEvent(ctx, events.Event{Type: events.EventArchiveItem, Item: &it}))
	assert.Len(t, svc.List(ctx), 2)

	assert.ErrorIs(t, svc.HandleEvent(ctx, events.Event{Type: events.EventArchiveItem}), ErrMissingPayload)
	assert.NoError(t, svc.HandleEvent(ctx, events.Event{Type: events.EventBoardUpdated}))
}

func TestRun_ServesBusEvents(t *testing.T) {
	svc, sess, bus := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	it := seedRichItem(t, sess, types.StageEditing)

	go func() { _ = svc.Run(ctx) }()
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, bus.SendEvent(events.Event{Type: events.EventArchiveItem, Item: &it}))

	assert.Eventually(t, func() bool { return !onBoard(sess, it.ID) }, time.Second, 10*time.Millisecond)
}

func TestRun_IgnoresOtherViewsRequests(t *testing.T) {
	svc, sess, bus := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	foreign := seedRichItem(t, sess, types.StageEditing)
	own := seedRichItem(t, sess, types.StageEditing)

	go func() { _ = svc.Run(ctx) }()
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, bus.SendEvent(events.Event{Type: events.EventArchiveItem, Source: "other-view", Item: &foreign}))
	require.NoError(t, bus.SendEvent(events.Event{Type: events.EventArchiveItem, Source: sess.Source(), Item: &own}))

	assert.Eventually(t, func() bool { return !onBoard(sess, own.ID) }, time.Second, 10*time.Millisecond)
	assert.True(t, onBoard(sess, foreign.ID))
}

func TestRequestOpenPanel(t *testing.T) {
	svc, _, bus := setupService(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Listen(ctx)
	require.NoError(t, err)
	svc.RequestOpenPanel(ctx)

	select {
	case ev := <-ch:
		assert.Equal(t, events.EventOpenArchive, ev.Type)
		assert.Equal(t, "test-view", ev.Source)
	case <-time.After(time.Second):
		t.Fatal("no open_archive event")
	}
}
