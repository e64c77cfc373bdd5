// Package token implements a fixed-supply token ledger with a one-time
// launch allocation, cliff-plus-linear vesting, and a bounded append-only
// mission log.
//
// All state lives in a single Token aggregate. The host environment is
// expected to serialize calls; the aggregate performs no internal locking.
// Caller identity and the current block height are passed explicitly on
// every gated operation via Call, so tests can inject arbitrary values.
//
// Every mutating operation validates completely before touching state and
// appends typed event records to an internal journal. Callers drain the
// journal after each successful operation and hand the records to a
// durable store (see the journal package).
package token

import (
	"fmt"

	"github.com/holiman/uint256"
)

// Token metadata. Fixed for the lifetime of the ledger.
const (
	TokenName     = "Orbit"
	TokenSymbol   = "ORBT"
	TokenDecimals = 18
)

// Address identifies an account on the ledger.
type Address string

// DeadAddress is the conventional unspendable burn destination, used when
// no burn target is configured.
const DeadAddress Address = "0x000000000000000000000000000000000000dEaD"

const zeroAddress Address = "0x0000000000000000000000000000000000000000"

// IsNull reports whether the address is the null address.
func (a Address) IsNull() bool {
	return a == "" || a == zeroAddress
}

// Unlimited returns the infinite-allowance sentinel (max uint256).
// An allowance equal to this value is never decremented by TransferFrom.
func Unlimited() *uint256.Int {
	return new(uint256.Int).SetAllOne()
}

// Call carries the ambient context of a single invocation: who is calling
// and the current block height. Both are supplied by the host environment
// and are never cached across calls.
type Call struct {
	Caller Address
	Height uint64
}

// Config holds the construction-time parameters. All fields are immutable
// for the lifetime of the ledger.
type Config struct {
	// SupplyCap is the total supply, minted to Authority at construction.
	SupplyCap *uint256.Int

	// Authority is the single privileged administrative caller.
	Authority Address

	// LiquidityReserve and Treasury receive the trajectory-commit split.
	LiquidityReserve Address
	Treasury         Address

	// BurnTarget receives ignition burns. DeadAddress when empty.
	BurnTarget Address

	// Custody holds vesting escrow.
	Custody Address

	// VestStartHeight is the launch-unlock height: vesting time starts
	// counting here.
	VestStartHeight uint64
}

func (c Config) validate() error {
	if c.SupplyCap == nil || c.SupplyCap.IsZero() {
		return fmt.Errorf("%w: supply cap must be positive", ErrInvalidConfig)
	}
	if c.Authority.IsNull() {
		return fmt.Errorf("%w: authority address is null", ErrInvalidConfig)
	}
	if c.Custody.IsNull() {
		return fmt.Errorf("%w: custody address is null", ErrInvalidConfig)
	}
	return nil
}

// Token is the ledger aggregate. Zero value is not usable; construct
// with New.
type Token struct {
	cfg Config

	balances   map[Address]*uint256.Int
	allowances map[Address]map[Address]*uint256.Int

	phase     Phase
	committed bool

	totalBurned   *uint256.Int
	transferCount uint64
	transfersBy   map[Address]uint64

	grants map[Address]*Grant
	log    []MissionEntry

	journal []Event
}

// New constructs a ledger from cfg, minting the entire supply cap to the
// authority. The mint is recorded as a Transfer from the null address.
func New(cfg Config) (*Token, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	t := &Token{
		cfg:         cfg,
		balances:    make(map[Address]*uint256.Int),
		allowances:  make(map[Address]map[Address]*uint256.Int),
		phase:       PreIgnition,
		totalBurned: new(uint256.Int),
		transfersBy: make(map[Address]uint64),
		grants:      make(map[Address]*Grant),
	}
	t.balances[cfg.Authority] = cfg.SupplyCap.Clone()
	t.emit(TransferEvent{From: "", To: cfg.Authority, Amount: cfg.SupplyCap.Clone()})
	return t, nil
}

// Config returns the construction-time parameters.
func (t *Token) Config() Config { return t.cfg }

// Name returns the token name.
func (t *Token) Name() string { return TokenName }

// Symbol returns the token symbol.
func (t *Token) Symbol() string { return TokenSymbol }

// Decimals returns the display decimal count.
func (t *Token) Decimals() uint8 { return TokenDecimals }

// TotalSupply returns the fixed supply cap.
func (t *Token) TotalSupply() *uint256.Int { return t.cfg.SupplyCap.Clone() }

// BalanceOf returns the balance of addr (zero for unknown addresses).
func (t *Token) BalanceOf(addr Address) *uint256.Int {
	if b, ok := t.balances[addr]; ok {
		return b.Clone()
	}
	return new(uint256.Int)
}

// Allowance returns the amount spender may move on behalf of owner.
func (t *Token) Allowance(owner, spender Address) *uint256.Int {
	if m, ok := t.allowances[owner]; ok {
		if a, ok := m[spender]; ok {
			return a.Clone()
		}
	}
	return new(uint256.Int)
}

// TotalBurned returns the accumulated ignition-burn total.
func (t *Token) TotalBurned() *uint256.Int { return t.totalBurned.Clone() }

// TransferCount returns the global count of fund-moving operations.
func (t *Token) TransferCount() uint64 { return t.transferCount }

// TransfersBy returns the number of fund movements sent by addr.
func (t *Token) TransfersBy(addr Address) uint64 { return t.transfersBy[addr] }

// LaunchUnlockHeight returns the configured launch-unlock height.
func (t *Token) LaunchUnlockHeight() uint64 { return t.cfg.VestStartHeight }

// IsLaunchUnlocked reports whether height has reached the unlock height.
func (t *Token) IsLaunchUnlocked(height uint64) bool {
	return height >= t.cfg.VestStartHeight
}

// burnTarget resolves the configured burn destination.
func (t *Token) burnTarget() Address {
	if t.cfg.BurnTarget.IsNull() {
		return DeadAddress
	}
	return t.cfg.BurnTarget
}

// emit appends an event record to the journal.
func (t *Token) emit(ev Event) {
	t.journal = append(t.journal, ev)
}

// DrainEvents returns the ordered event records accumulated since the
// last drain and clears the journal.
func (t *Token) DrainEvents() []Event {
	evs := t.journal
	t.journal = nil
	return evs
}
