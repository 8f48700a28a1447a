// Package runlog records schedule executions as append-only event
// streams, one stream per run, with optimistic concurrency on append.
package runlog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common store errors.
var (
	ErrEmptyStream         = errors.New("runlog: stream id may not be empty")
	ErrEmptyType           = errors.New("runlog: event type may not be empty")
	ErrConcurrencyConflict = errors.New("runlog: concurrency conflict")
	ErrStreamNotFound      = errors.New("runlog: stream not found")
)

// Event is one immutable record in a run's stream. Version is assigned
// by the store on append, starting at 0.
type Event struct {
	ID      string            `json:"id"`
	Stream  string            `json:"stream"`
	Type    string            `json:"type"`
	Version int               `json:"version"`
	Data    map[string]string `json:"data,omitempty"`
	Created time.Time         `json:"created"`
}

// NewEvent creates an event with a fresh unique ID. Version is left for
// the store to assign.
func NewEvent(stream, eventType string, data map[string]string) (*Event, error) {
	if stream == "" {
		return nil, ErrEmptyStream
	}
	if eventType == "" {
		return nil, ErrEmptyType
	}
	return &Event{
		ID:      uuid.NewString(),
		Stream:  stream,
		Type:    eventType,
		Data:    data,
		Created: time.Now().UTC(),
	}, nil
}
