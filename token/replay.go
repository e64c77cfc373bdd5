package token

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Apply re-applies a previously recorded event without gating. Used to
// rebuild a ledger from its notification stream: construct with New
// (which mints the supply), then apply every recorded event in order.
//
// A Transfer from the null address is the construction-time mint and is
// skipped, since New has already credited the authority.
func (t *Token) Apply(ev Event) error {
	switch e := ev.(type) {
	case TransferEvent:
		if e.From.IsNull() {
			return nil
		}
		return t.applyMove(e.From, e.To, e.Amount)

	case ApprovalEvent:
		m, ok := t.allowances[e.Owner]
		if !ok {
			m = make(map[Address]*uint256.Int)
			t.allowances[e.Owner] = m
		}
		m[e.Spender] = e.Amount.Clone()
		return nil

	case TrajectoryCommittedEvent:
		t.committed = true
		t.phase = FuelAllocated
		return nil

	case FuelAllocatedEvent:
		return nil

	case IgnitionBurnEvent:
		t.totalBurned.Set(e.TotalBurned)
		return nil

	case VestingScheduledEvent:
		g, ok := t.grants[e.Beneficiary]
		if !ok {
			g = &Grant{Total: new(uint256.Int), Claimed: new(uint256.Int)}
			t.grants[e.Beneficiary] = g
		}
		g.Total.Set(e.TotalGranted)
		return nil

	case VestingClaimedEvent:
		g, ok := t.grants[e.Beneficiary]
		if !ok {
			return fmt.Errorf("token: claim replayed for unknown grant %q", e.Beneficiary)
		}
		g.Claimed.Set(e.TotalClaimed)
		return nil

	case MissionLoggedEvent:
		if e.Index != len(t.log) {
			return fmt.Errorf("token: mission log replay out of order: index %d, length %d", e.Index, len(t.log))
		}
		t.log = append(t.log, MissionEntry{Height: e.Height, Value: e.Value.Clone(), Tag: e.Tag})
		return nil

	default:
		return fmt.Errorf("token: unknown event kind %q", ev.Kind())
	}
}

// applyMove moves funds during replay. The original run already
// validated the movement, so only structural failures are reported.
func (t *Token) applyMove(from, to Address, amount *uint256.Int) error {
	src := t.balances[from]
	if src == nil {
		src = new(uint256.Int)
		t.balances[from] = src
	}
	if src.Lt(amount) {
		return fmt.Errorf("token: replayed transfer exceeds balance of %q", from)
	}
	if from != to {
		dst := t.balances[to]
		if dst == nil {
			dst = new(uint256.Int)
			t.balances[to] = dst
		}
		src.Sub(src, amount)
		dst.Add(dst, amount)
	}
	t.transferCount++
	t.transfersBy[from]++
	return nil
}
