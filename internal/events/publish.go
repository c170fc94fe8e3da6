package events

import (
	"errors"
	"log/slog"
	"time"
)

// retryBaseDelay is the first backoff step; each retry doubles it
const retryBaseDelay = 50 * time.Millisecond

// PublishWithRetry sends event, retrying a failed journal write up to
// attempts times in total with exponential backoff. Any other failure ends
// the loop at once. The board write that triggered the event has already
// committed, so a final failure is logged and returned but never undone.
func PublishWithRetry(client EventPublisher, event Event, attempts int) error {
	if client == nil {
		return nil
	}
	if attempts < 1 {
		attempts = 1
	}

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err = client.SendEvent(event); err == nil {
			if attempt > 1 {
				slog.Debug("event journaled after retry", "attempt", attempt, "event_type", event.Type)
			}
			return nil
		}
		if !errors.Is(err, ErrJournalWrite) || attempt == attempts {
			break
		}

		delay := retryBaseDelay << (attempt - 1)
		slog.Debug("event journal busy, backing off",
			"attempt", attempt,
			"retry_delay", delay,
			"event_type", event.Type,
			"error", err)
		time.Sleep(delay)
	}

	slog.Warn("event not published",
		"event_type", event.Type,
		"source", event.Source,
		"error", err)
	return err
}
