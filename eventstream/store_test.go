package eventstream_test

import (
	"context"
	"testing"

	"github.com/orbit-xyz/go-orbit/eventstream"
)

func TestMemoryStore(t *testing.T) {
	runStoreTests(t, func() eventstream.Store {
		return eventstream.NewMemoryStore()
	})
}

func TestSQLiteStore(t *testing.T) {
	runStoreTests(t, func() eventstream.Store {
		store, err := eventstream.NewSQLiteStore(":memory:")
		if err != nil {
			t.Fatalf("failed to create sqlite store: %v", err)
		}
		return store
	})
}

func runStoreTests(t *testing.T, newStore func() eventstream.Store) {
	t.Run("AppendAndRead", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event1, _ := eventstream.NewEvent("orbit", "Transfer", map[string]string{"to": "alice"})
		event2, _ := eventstream.NewEvent("orbit", "Approval", map[string]string{"spender": "bob"})

		version, err := store.Append(ctx, "orbit", -1, []*eventstream.Event{event1})
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if version != 0 {
			t.Errorf("expected version 0, got %d", version)
		}

		version, err = store.Append(ctx, "orbit", 0, []*eventstream.Event{event2})
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if version != 1 {
			t.Errorf("expected version 1, got %d", version)
		}

		events, err := store.Read(ctx, "orbit", 0)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].Type != "Transfer" {
			t.Errorf("expected type Transfer, got %s", events[0].Type)
		}
		if events[1].Type != "Approval" {
			t.Errorf("expected type Approval, got %s", events[1].Type)
		}

		var payload map[string]string
		if err := events[0].Decode(&payload); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if payload["to"] != "alice" {
			t.Errorf("payload round trip failed: %v", payload)
		}
	})

	t.Run("ConcurrencyConflict", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event1, _ := eventstream.NewEvent("orbit", "Transfer", nil)
		event2, _ := eventstream.NewEvent("orbit", "Transfer", nil)

		if _, err := store.Append(ctx, "orbit", -1, []*eventstream.Event{event1}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		_, err := store.Append(ctx, "orbit", 5, []*eventstream.Event{event2})
		if err != eventstream.ErrConcurrencyConflict {
			t.Errorf("expected concurrency conflict, got: %v", err)
		}

		if _, err := store.Append(ctx, "orbit", 0, []*eventstream.Event{event2}); err != nil {
			t.Errorf("append with correct version failed: %v", err)
		}
	})

	t.Run("StreamVersion", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		version, err := store.StreamVersion(ctx, "orbit")
		if err != nil {
			t.Fatalf("stream version failed: %v", err)
		}
		if version != -1 {
			t.Errorf("expected version -1 for non-existent stream, got %d", version)
		}

		event, _ := eventstream.NewEvent("orbit", "Transfer", nil)
		if _, err := store.Append(ctx, "orbit", -1, []*eventstream.Event{event}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		version, err = store.StreamVersion(ctx, "orbit")
		if err != nil {
			t.Fatalf("stream version failed: %v", err)
		}
		if version != 0 {
			t.Errorf("expected version 0, got %d", version)
		}
	})

	t.Run("ReadFromVersion", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		for i := 0; i < 3; i++ {
			event, _ := eventstream.NewEvent("orbit", "Transfer", i)
			if _, err := store.Append(ctx, "orbit", i-1, []*eventstream.Event{event}); err != nil {
				t.Fatalf("append failed: %v", err)
			}
		}

		events, err := store.Read(ctx, "orbit", 1)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if len(events) != 2 {
			t.Fatalf("expected 2 events, got %d", len(events))
		}
		if events[0].Version != 1 {
			t.Errorf("expected first event version 1, got %d", events[0].Version)
		}
	})

	t.Run("ReadAllWithFilter", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event1, _ := eventstream.NewEvent("orbit", "Transfer", nil)
		event2, _ := eventstream.NewEvent("orbit", "Approval", nil)
		event3, _ := eventstream.NewEvent("other", "Transfer", nil)

		if _, err := store.Append(ctx, "orbit", -1, []*eventstream.Event{event1, event2}); err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if _, err := store.Append(ctx, "other", -1, []*eventstream.Event{event3}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		events, err := store.ReadAll(ctx, eventstream.Filter{Types: []string{"Transfer"}})
		if err != nil {
			t.Fatalf("read all failed: %v", err)
		}
		if len(events) != 2 {
			t.Errorf("expected 2 Transfer events, got %d", len(events))
		}

		events, err = store.ReadAll(ctx, eventstream.Filter{Stream: "orbit"})
		if err != nil {
			t.Fatalf("read all failed: %v", err)
		}
		if len(events) != 2 {
			t.Errorf("expected 2 events in stream orbit, got %d", len(events))
		}
	})

	t.Run("ReadReturnsCopies", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event, _ := eventstream.NewEvent("orbit", "Transfer", map[string]string{"to": "alice"})
		if _, err := store.Append(ctx, "orbit", -1, []*eventstream.Event{event}); err != nil {
			t.Fatalf("append failed: %v", err)
		}

		first, err := store.Read(ctx, "orbit", 0)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		first[0].Type = "Tampered"
		copy(first[0].Data, []byte(`{"to":"mallo`))

		again, err := store.Read(ctx, "orbit", 0)
		if err != nil {
			t.Fatalf("read failed: %v", err)
		}
		if again[0].Type != "Transfer" {
			t.Errorf("mutating a read result changed the stored type to %s", again[0].Type)
		}
		var payload map[string]string
		if err := again[0].Decode(&payload); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if payload["to"] != "alice" {
			t.Errorf("mutating a read result changed the stored payload: %v", payload)
		}
	})

	t.Run("MultiEventAppend", func(t *testing.T) {
		store := newStore()
		defer store.Close()
		ctx := context.Background()

		event1, _ := eventstream.NewEvent("orbit", "Transfer", nil)
		event2, _ := eventstream.NewEvent("orbit", "IgnitionBurn", nil)

		version, err := store.Append(ctx, "orbit", -1, []*eventstream.Event{event1, event2})
		if err != nil {
			t.Fatalf("append failed: %v", err)
		}
		if version != 1 {
			t.Errorf("expected version 1 after two events, got %d", version)
		}
		if event1.Version != 0 || event2.Version != 1 {
			t.Errorf("events got versions %d and %d, want 0 and 1", event1.Version, event2.Version)
		}
	})
}
