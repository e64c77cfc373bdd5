package eventstream

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// ErrConcurrencyConflict is returned by Append when the expected version
// does not match the stream's current version.
var ErrConcurrencyConflict = errors.New("eventstream: concurrency conflict")

// Filter selects events for ReadAll. Zero-value fields match everything.
type Filter struct {
	// Stream restricts results to a single stream.
	Stream string

	// Types restricts results to the given event types.
	Types []string
}

func (f Filter) matches(e *Event) bool {
	if f.Stream != "" && e.Stream != f.Stream {
		return false
	}
	if len(f.Types) > 0 {
		ok := false
		for _, t := range f.Types {
			if e.Type == t {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	return true
}

// Store persists ordered event streams.
type Store interface {
	// Append adds events to a stream. expectedVersion is the current
	// last version of the stream (-1 for a new stream); on mismatch
	// Append fails with ErrConcurrencyConflict. Returns the new last
	// version.
	Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error)

	// Read returns the events of a stream starting at fromVersion, in
	// version order.
	Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error)

	// ReadAll returns all events matching the filter, in append order
	// across streams.
	ReadAll(ctx context.Context, filter Filter) ([]*Event, error)

	// StreamVersion returns the last version of a stream, or -1 if the
	// stream does not exist.
	StreamVersion(ctx context.Context, stream string) (int, error)

	// Close releases store resources.
	Close() error
}

// MemoryStore is an in-memory Store, suitable for tests and ephemeral
// runs.
type MemoryStore struct {
	mu      sync.RWMutex
	streams map[string][]*Event
	all     []*Event
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{streams: make(map[string][]*Event)}
}

// Append adds events to a stream with an optimistic version check.
func (s *MemoryStore) Append(ctx context.Context, stream string, expectedVersion int, events []*Event) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.streams[stream]
	current := len(existing) - 1
	if current != expectedVersion {
		return 0, ErrConcurrencyConflict
	}

	for i, e := range events {
		e.Stream = stream
		e.Version = current + 1 + i
		existing = append(existing, e)
		s.all = append(s.all, e)
	}
	s.streams[stream] = existing
	return len(existing) - 1, nil
}

// Read returns the events of a stream from fromVersion on. Events are
// copied, so callers cannot mutate store state.
func (s *MemoryStore) Read(ctx context.Context, stream string, fromVersion int) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Event
	for _, e := range s.streams[stream] {
		if e.Version >= fromVersion {
			out = append(out, copyEvent(e))
		}
	}
	return out, nil
}

// ReadAll returns all events matching the filter in append order.
// Events are copied, so callers cannot mutate store state.
func (s *MemoryStore) ReadAll(ctx context.Context, filter Filter) ([]*Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*Event
	for _, e := range s.all {
		if filter.matches(e) {
			out = append(out, copyEvent(e))
		}
	}
	return out, nil
}

func copyEvent(e *Event) *Event {
	c := *e
	if e.Data != nil {
		c.Data = append(json.RawMessage(nil), e.Data...)
	}
	return &c
}

// StreamVersion returns the last version of a stream, or -1.
func (s *MemoryStore) StreamVersion(ctx context.Context, stream string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.streams[stream]) - 1, nil
}

// Close is a no-op for the memory store.
func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
