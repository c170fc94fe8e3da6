package events

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRetryPublisher fails the first failUntil sends
type mockRetryPublisher struct {
	sendAttempts int
	failUntil    int
	err          error
	lastEvent    Event
}

func (m *mockRetryPublisher) SendEvent(event Event) error {
	m.lastEvent = event
	currentAttempt := m.sendAttempts
	m.sendAttempts++

	if currentAttempt < m.failUntil {
		if m.err != nil {
			return m.err
		}
		return fmt.Errorf("%w: simulated busy database", ErrJournalWrite)
	}
	return nil
}

// Unused interface methods
func (m *mockRetryPublisher) Listen(ctx context.Context) (<-chan Event, error) { return nil, nil }
func (m *mockRetryPublisher) Close() error                                     { return nil }

func TestPublishWithRetry_Success(t *testing.T) {
	mock := &mockRetryPublisher{}
	err := PublishWithRetry(mock, Event{Type: EventBoardUpdated, Source: "view-a"}, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, mock.sendAttempts)
	assert.Equal(t, "view-a", mock.lastEvent.Source)
}

func TestPublishWithRetry_SuccessAfterRetries(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 2}
	err := PublishWithRetry(mock, Event{Type: EventBoardUpdated}, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, mock.sendAttempts)
}

func TestPublishWithRetry_FailureAfterAllRetries(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999}
	err := PublishWithRetry(mock, Event{Type: EventBoardUpdated}, 3)
	require.Error(t, err)
	assert.Equal(t, 3, mock.sendAttempts)
	assert.ErrorIs(t, err, ErrJournalWrite)
}

func TestPublishWithRetry_ClosedBusStopsEarly(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999, err: ErrBusClosed}
	err := PublishWithRetry(mock, Event{Type: EventBoardUpdated}, 3)
	assert.ErrorIs(t, err, ErrBusClosed)
	assert.Equal(t, 1, mock.sendAttempts)
}

func TestPublishWithRetry_NilClient(t *testing.T) {
	assert.NoError(t, PublishWithRetry(nil, Event{Type: EventBoardUpdated}, 3))
}

func TestPublishWithRetry_ExponentialBackoff(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 2}

	start := time.Now()
	require.NoError(t, PublishWithRetry(mock, Event{Type: EventBoardUpdated}, 3))

	// 50ms + 100ms of backoff before the third attempt
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestPublishWithRetry_OtherErrorsAreNotRetried(t *testing.T) {
	mock := &mockRetryPublisher{failUntil: 999, err: errors.New("failed to encode event")}
	err := PublishWithRetry(mock, Event{Type: EventBoardUpdated}, 3)
	require.Error(t, err)
	assert.Equal(t, 1, mock.sendAttempts)
}
