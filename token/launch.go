package token

import "github.com/holiman/uint256"

// Phase is the launch state machine position.
//
// The full variant set is kept for compatibility with external consumers
// that inspect phase values, but only PreIgnition and FuelAllocated are
// reachable: CommitTrajectory advances PreIgnition directly to
// FuelAllocated. TrajectoryLock and Live are permanently unreachable.
type Phase int

const (
	PreIgnition Phase = iota
	TrajectoryLock
	FuelAllocated
	Live
)

func (p Phase) String() string {
	switch p {
	case PreIgnition:
		return "PreIgnition"
	case TrajectoryLock:
		return "TrajectoryLock"
	case FuelAllocated:
		return "FuelAllocated"
	case Live:
		return "Live"
	default:
		return "Unknown"
	}
}

// Trajectory-commit split, in basis points of the authority's balance.
const (
	reserveBasisPoints  = 892
	treasuryBasisPoints = 108
	basisPointDenom     = 10000
)

// Phase returns the current launch phase.
func (t *Token) Phase() Phase { return t.phase }

// TrajectoryCommitted reports whether the one-time commit has happened.
func (t *Token) TrajectoryCommitted() bool { return t.committed }

// CommitTrajectory performs the one-time, irrevocable launch allocation:
// 8.92% of the authority's current balance moves to the liquidity
// reserve and 1.08% to the treasury. The committed flag is set before any
// funds move, so a re-entrant call cannot commit twice. Legs with a null
// target or zero amount are skipped.
func (t *Token) CommitTrajectory(call Call) error {
	if call.Caller != t.cfg.Authority {
		return ErrUnauthorized
	}
	if t.committed {
		return ErrTrajectoryAlreadyCommitted
	}

	base := t.balances[t.cfg.Authority]
	if base == nil || base.IsZero() {
		return ErrZeroAmount
	}

	denom := uint256.NewInt(basisPointDenom)
	toReserve, _ := new(uint256.Int).MulDivOverflow(base, uint256.NewInt(reserveBasisPoints), denom)
	toTreasury, _ := new(uint256.Int).MulDivOverflow(base, uint256.NewInt(treasuryBasisPoints), denom)

	total := new(uint256.Int).Add(toReserve, toTreasury)
	if base.Lt(total) {
		return ErrInvalidAllocation
	}

	t.committed = true

	if !t.cfg.LiquidityReserve.IsNull() && !toReserve.IsZero() {
		if err := t.move(t.cfg.Authority, t.cfg.LiquidityReserve, toReserve); err != nil {
			return err
		}
		t.emit(FuelAllocatedEvent{Reserve: t.cfg.LiquidityReserve, Amount: toReserve.Clone()})
	}
	if !t.cfg.Treasury.IsNull() && !toTreasury.IsZero() {
		if err := t.move(t.cfg.Authority, t.cfg.Treasury, toTreasury); err != nil {
			return err
		}
	}

	t.phase = FuelAllocated
	t.emit(TrajectoryCommittedEvent{
		Height:   call.Height,
		Reserve:  toReserve.Clone(),
		Treasury: toTreasury.Clone(),
	})
	return nil
}

// ExecuteIgnitionBurn moves amount from the authority to the burn target
// (DeadAddress when none is configured) and accumulates the running burn
// total. Repeatable without limit.
func (t *Token) ExecuteIgnitionBurn(call Call, amount *uint256.Int) error {
	if call.Caller != t.cfg.Authority {
		return ErrUnauthorized
	}
	if amount == nil || amount.IsZero() {
		return ErrZeroAmount
	}
	if err := t.move(t.cfg.Authority, t.burnTarget(), amount); err != nil {
		return err
	}
	t.totalBurned.Add(t.totalBurned, amount)
	t.emit(IgnitionBurnEvent{Amount: amount.Clone(), TotalBurned: t.totalBurned.Clone()})
	return nil
}
