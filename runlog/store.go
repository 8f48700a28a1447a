package runlog

import (
	"context"
	"sync"
)

// Store persists event streams. Append takes the version the caller
// last observed (-1 for a new stream) and fails with
// ErrConcurrencyConflict when the stream moved underneath it.
type Store interface {
	// Append adds events to a stream and returns the new version.
	// Each appended event gets its Stream and Version stamped in place
	// so callers see the versions the store assigned.
	Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error)

	// Read returns events of a stream from the given version onward.
	Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error)

	// StreamVersion returns the stream's current version, -1 if the
	// stream does not exist.
	StreamVersion(ctx context.Context, stream string) (int, error)

	// DeleteStream removes a stream and all its events.
	DeleteStream(ctx context.Context, stream string) error

	// Close releases store resources.
	Close() error
}

// MemoryStore is an in-memory Store for tests and short-lived runs.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{streams: make(map[string][]*Event)}
}

func (s *MemoryStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	if stream == "" {
		return -1, ErrEmptyStream
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.streams[stream]
	current := len(existing) - 1
	if expectedVersion != current {
		return current, ErrConcurrencyConflict
	}

	for _, ev := range events {
		ev.Stream = stream
		ev.Version = len(existing)
		copied := *ev
		existing = append(existing, &copied)
	}
	s.streams[stream] = existing
	return len(existing) - 1, nil
}

func (s *MemoryStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	existing, ok := s.streams[stream]
	if !ok {
		return nil, ErrStreamNotFound
	}
	if fromVersion < 0 {
		fromVersion = 0
	}
	if fromVersion >= len(existing) {
		return nil, nil
	}
	out := make([]*Event, len(existing)-fromVersion)
	copy(out, existing[fromVersion:])
	return out, nil
}

func (s *MemoryStore) StreamVersion(ctx context.Context, stream string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.streams[stream]) - 1, nil
}

func (s *MemoryStore) DeleteStream(ctx context.Context, stream string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.streams, stream)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
