// Package journal connects the token ledger to its durable notification
// stream: it persists drained ledger events as stream records and
// rebuilds a ledger by replaying a stream from the beginning.
package journal

import (
	"context"
	"fmt"

	"github.com/orbit-xyz/go-orbit/eventstream"
	"github.com/orbit-xyz/go-orbit/token"
)

// Encode converts drained ledger events to stream records.
func Encode(stream string, events []token.Event) ([]*eventstream.Event, error) {
	out := make([]*eventstream.Event, 0, len(events))
	for _, ev := range events {
		e, err := eventstream.NewEvent(stream, ev.Kind(), ev)
		if err != nil {
			return nil, fmt.Errorf("encode %s event: %w", ev.Kind(), err)
		}
		out = append(out, e)
	}
	return out, nil
}

// Decode converts a stream record back to a typed ledger event.
func Decode(e *eventstream.Event) (token.Event, error) {
	switch e.Type {
	case token.KindTransfer:
		var ev token.TransferEvent
		return ev, e.Decode(&ev)
	case token.KindApproval:
		var ev token.ApprovalEvent
		return ev, e.Decode(&ev)
	case token.KindTrajectoryCommitted:
		var ev token.TrajectoryCommittedEvent
		return ev, e.Decode(&ev)
	case token.KindFuelAllocated:
		var ev token.FuelAllocatedEvent
		return ev, e.Decode(&ev)
	case token.KindIgnitionBurn:
		var ev token.IgnitionBurnEvent
		return ev, e.Decode(&ev)
	case token.KindVestingScheduled:
		var ev token.VestingScheduledEvent
		return ev, e.Decode(&ev)
	case token.KindVestingClaimed:
		var ev token.VestingClaimedEvent
		return ev, e.Decode(&ev)
	case token.KindMissionLogged:
		var ev token.MissionLoggedEvent
		return ev, e.Decode(&ev)
	default:
		return nil, fmt.Errorf("journal: unknown event type %q", e.Type)
	}
}

// Persist appends drained ledger events to the end of a stream. Returns
// the stream's new last version.
func Persist(ctx context.Context, store eventstream.Store, stream string, events []token.Event) (int, error) {
	if len(events) == 0 {
		return store.StreamVersion(ctx, stream)
	}
	encoded, err := Encode(stream, events)
	if err != nil {
		return 0, err
	}
	current, err := store.StreamVersion(ctx, stream)
	if err != nil {
		return 0, err
	}
	return store.Append(ctx, stream, current, encoded)
}

// Load rebuilds a ledger from a stream: constructs a fresh token from
// cfg and replays every recorded event in order. The construction-time
// mint record is skipped by token.Apply.
func Load(ctx context.Context, store eventstream.Store, stream string, cfg token.Config) (*token.Token, error) {
	tok, err := token.New(cfg)
	if err != nil {
		return nil, err
	}
	tok.DrainEvents() // the mint is already recorded on the stream

	records, err := store.Read(ctx, stream, 0)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		ev, err := Decode(rec)
		if err != nil {
			return nil, err
		}
		if err := tok.Apply(ev); err != nil {
			return nil, fmt.Errorf("replay %s at version %d: %w", rec.Type, rec.Version, err)
		}
	}
	return tok, nil
}
