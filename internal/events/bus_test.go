package events

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/pattyalex/brand-journey-tracker/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch <-chan Event) Event {
	t.Helper()
	select {
	case ev, ok := <-ch:
		require.True(t, ok, "channel closed")
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestBus_FansOutToEveryListener(t *testing.T) {
	bus := NewBus(4)
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := bus.Listen(ctx)
	require.NoError(t, err)
	b, err := bus.Listen(ctx)
	require.NoError(t, err)

	item := models.Item{ID: "x", Title: "X"}
	require.NoError(t, bus.SendEvent(Event{Type: EventBoardUpdated, Source: "s1"}))
	require.NoError(t, bus.SendEvent(Event{Type: EventArchiveItem, Item: &item}))

	for _, ch := range []<-chan Event{a, b} {
		first := receive(t, ch)
		assert.Equal(t, EventBoardUpdated, first.Type)
		assert.Equal(t, "s1", first.Source)
		assert.False(t, first.Timestamp.IsZero())

		second := receive(t, ch)
		assert.Equal(t, EventArchiveItem, second.Type)
		require.NotNil(t, second.Item)
		assert.Greater(t, second.SequenceID, first.SequenceID)
	}
}

func TestBus_FullListenerDoesNotBlockSender(t *testing.T) {
	bus := NewBus(1)
	defer bus.Close()

	ch, err := bus.Listen(context.Background())
	require.NoError(t, err)

	require.NoError(t, bus.SendEvent(Event{Type: EventBoardUpdated}))
	require.NoError(t, bus.SendEvent(Event{Type: EventOpenArchive}))

	ev := receive(t, ch)
	assert.Equal(t, EventBoardUpdated, ev.Type)
}

func TestBus_ListenEndsWithContext(t *testing.T) {
	bus := NewBus(1)
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())

	ch, err := bus.Listen(ctx)
	require.NoError(t, err)
	cancel()

	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("listener channel was not closed")
	}
}

func TestBus_Close(t *testing.T) {
	bus := NewBus(1)
	ch, err := bus.Listen(context.Background())
	require.NoError(t, err)

	require.NoError(t, bus.Close())
	require.NoError(t, bus.Close())

	_, ok := <-ch
	assert.False(t, ok)
	assert.ErrorIs(t, bus.SendEvent(Event{Type: EventBoardUpdated}), ErrBusClosed)
	_, err = bus.Listen(context.Background())
	assert.ErrorIs(t, err, ErrBusClosed)
}

func TestBus_CloseReleasesListenerWatchers(t *testing.T) {
	baseline := runtime.NumGoroutine()

	bus := NewBus(1)
	for i := 0; i < 5; i++ {
		_, err := bus.Listen(context.Background())
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, runtime.NumGoroutine(), baseline+5)

	require.NoError(t, bus.Close())
	assert.True(t, bus.Closed())
	assert.Eventually(t, func() bool {
		return runtime.NumGoroutine() <= baseline
	}, time.Second, 10*time.Millisecond)
}
