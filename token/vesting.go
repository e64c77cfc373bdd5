package token

import "github.com/holiman/uint256"

// Vesting schedule, in blocks. Claims unlock linearly over
// VestingDuration once VestingCliff blocks have passed after the
// configured vesting start height.
const (
	VestingCliff    = 720
	VestingDuration = 7776
)

// Grant tracks a beneficiary's vesting position.
type Grant struct {
	Total   *uint256.Int
	Claimed *uint256.Int
}

// Grant returns a copy of the beneficiary's vesting position, or nil if
// no grant exists.
func (t *Token) Grant(beneficiary Address) *Grant {
	g, ok := t.grants[beneficiary]
	if !ok {
		return nil
	}
	return &Grant{Total: g.Total.Clone(), Claimed: g.Claimed.Clone()}
}

// ScheduleVesting escrows amount from the authority into custody and
// increases the beneficiary's granted total. Grants accumulate across
// calls. Only permitted before the trajectory commit: all vesting is
// carved out before launch funds move, so no grant can be added after
// launch.
func (t *Token) ScheduleVesting(call Call, beneficiary Address, amount *uint256.Int) error {
	if call.Caller != t.cfg.Authority {
		return ErrUnauthorized
	}
	if t.committed {
		return ErrTrajectoryAlreadyCommitted
	}
	if beneficiary.IsNull() {
		return ErrInvalidRecipient
	}
	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}
	if err := t.move(t.cfg.Authority, t.cfg.Custody, amount); err != nil {
		return err
	}

	g, ok := t.grants[beneficiary]
	if !ok {
		g = &Grant{Total: new(uint256.Int), Claimed: new(uint256.Int)}
		t.grants[beneficiary] = g
	}
	g.Total.Add(g.Total, amount)

	t.emit(VestingScheduledEvent{
		Beneficiary:  beneficiary,
		Amount:       amount.Clone(),
		TotalGranted: g.Total.Clone(),
	})
	return nil
}

// ClaimableVested returns the amount beneficiary could claim at height:
// zero before the cliff, then a linear share of the granted total over
// the vest duration, less what has already been claimed. Non-decreasing
// in height for a fixed grant.
func (t *Token) ClaimableVested(beneficiary Address, height uint64) *uint256.Int {
	g, ok := t.grants[beneficiary]
	if !ok {
		return new(uint256.Int)
	}
	vested := vestedTotal(g.Total, t.cfg.VestStartHeight, height)
	if vested.Lt(g.Claimed) || vested.Eq(g.Claimed) {
		return new(uint256.Int)
	}
	return vested.Sub(vested, g.Claimed)
}

// vestedTotal computes the cumulative unlocked amount of total at height.
func vestedTotal(total *uint256.Int, start, height uint64) *uint256.Int {
	if height < start || height < start+VestingCliff {
		return new(uint256.Int)
	}
	elapsed := height - start - VestingCliff
	if elapsed >= VestingDuration {
		return total.Clone()
	}
	// floor(total * elapsed / duration); the 512-bit intermediate makes
	// overflow impossible since elapsed < duration.
	v, _ := new(uint256.Int).MulDivOverflow(total, uint256.NewInt(elapsed), uint256.NewInt(VestingDuration))
	return v
}

// ClaimVested transfers the caller's currently claimable amount from
// custody to the caller. A second call at the same height computes a
// zero delta and fails with ErrNothingToClaim.
func (t *Token) ClaimVested(call Call) error {
	start := t.cfg.VestStartHeight
	if call.Height < start {
		return ErrVestingNotStarted
	}
	if call.Height < start+VestingCliff {
		return ErrCliffNotReached
	}
	g, ok := t.grants[call.Caller]
	if !ok {
		return ErrNothingToClaim
	}
	delta := t.ClaimableVested(call.Caller, call.Height)
	if delta.IsZero() {
		return ErrNothingToClaim
	}
	if err := t.move(t.cfg.Custody, call.Caller, delta); err != nil {
		return err
	}
	g.Claimed.Add(g.Claimed, delta)

	t.emit(VestingClaimedEvent{
		Beneficiary:  call.Caller,
		Amount:       delta.Clone(),
		TotalClaimed: g.Claimed.Clone(),
	})
	return nil
}
