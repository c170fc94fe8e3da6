package events

import "errors"

var (
	// ErrBusClosed indicates a send or listen after Close
	ErrBusClosed = errors.New("event bus closed")
	// ErrJournalWrite indicates the event could not be journaled for other
	// processes; nothing was delivered and the send may be retried
	ErrJournalWrite = errors.New("failed to journal event")
)
