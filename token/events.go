package token

import "github.com/holiman/uint256"

// Event is a notification record produced by a mutating operation.
// Records are ordered within the journal in emission order.
type Event interface {
	// Kind returns the stable type name used by the notification stream.
	Kind() string
}

// Event kind names as they appear on the notification stream.
const (
	KindTransfer            = "Transfer"
	KindApproval            = "Approval"
	KindTrajectoryCommitted = "TrajectoryCommitted"
	KindFuelAllocated       = "FuelAllocated"
	KindIgnitionBurn        = "IgnitionBurn"
	KindVestingScheduled    = "VestingScheduled"
	KindVestingClaimed      = "VestingClaimed"
	KindMissionLogged       = "MissionLogged"
)

// TransferEvent records a fund movement. A null From marks the
// construction-time mint.
type TransferEvent struct {
	From   Address      `json:"from"`
	To     Address      `json:"to"`
	Amount *uint256.Int `json:"amount"`
}

func (TransferEvent) Kind() string { return KindTransfer }

// ApprovalEvent records an allowance being set.
type ApprovalEvent struct {
	Owner   Address      `json:"owner"`
	Spender Address      `json:"spender"`
	Amount  *uint256.Int `json:"amount"`
}

func (ApprovalEvent) Kind() string { return KindApproval }

// TrajectoryCommittedEvent records the one-time launch allocation.
type TrajectoryCommittedEvent struct {
	Height   uint64       `json:"height"`
	Reserve  *uint256.Int `json:"reserve"`
	Treasury *uint256.Int `json:"treasury"`
}

func (TrajectoryCommittedEvent) Kind() string { return KindTrajectoryCommitted }

// FuelAllocatedEvent records the liquidity-reserve leg of the commit.
type FuelAllocatedEvent struct {
	Reserve Address      `json:"reserve"`
	Amount  *uint256.Int `json:"amount"`
}

func (FuelAllocatedEvent) Kind() string { return KindFuelAllocated }

// IgnitionBurnEvent records a burn and the running burn total.
type IgnitionBurnEvent struct {
	Amount      *uint256.Int `json:"amount"`
	TotalBurned *uint256.Int `json:"totalBurned"`
}

func (IgnitionBurnEvent) Kind() string { return KindIgnitionBurn }

// VestingScheduledEvent records a grant being created or increased.
type VestingScheduledEvent struct {
	Beneficiary  Address      `json:"beneficiary"`
	Amount       *uint256.Int `json:"amount"`
	TotalGranted *uint256.Int `json:"totalGranted"`
}

func (VestingScheduledEvent) Kind() string { return KindVestingScheduled }

// VestingClaimedEvent records a claim of vested funds.
type VestingClaimedEvent struct {
	Beneficiary  Address      `json:"beneficiary"`
	Amount       *uint256.Int `json:"amount"`
	TotalClaimed *uint256.Int `json:"totalClaimed"`
}

func (VestingClaimedEvent) Kind() string { return KindVestingClaimed }

// MissionLoggedEvent records a new mission log entry.
type MissionLoggedEvent struct {
	Index  int          `json:"index"`
	Height uint64       `json:"height"`
	Value  *uint256.Int `json:"value"`
	Tag    Tag          `json:"tag"`
}

func (MissionLoggedEvent) Kind() string { return KindMissionLogged }
