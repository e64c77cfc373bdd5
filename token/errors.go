package token

import "errors"

var (
	// Construction errors
	ErrInvalidConfig = errors.New("token: invalid config")

	// Authorization errors
	ErrUnauthorized = errors.New("token: caller is not the authority")

	// Value errors
	ErrZeroAmount            = errors.New("token: amount must be positive")
	ErrInsufficientBalance   = errors.New("token: insufficient balance")
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")
	ErrAmountOverflow        = errors.New("token: balance arithmetic overflow")
	ErrInvalidAllocation     = errors.New("token: allocation exceeds its base")

	// Addressing errors
	ErrInvalidRecipient = errors.New("token: null recipient")

	// Phase and timing errors
	ErrTrajectoryAlreadyCommitted = errors.New("token: trajectory already committed")
	ErrVestingNotStarted          = errors.New("token: vesting has not started")
	ErrCliffNotReached            = errors.New("token: vesting cliff not reached")
	ErrNothingToClaim             = errors.New("token: nothing to claim")

	// Mission log errors
	ErrMissionLogFull   = errors.New("token: mission log at capacity")
	ErrIndexOutOfBounds = errors.New("token: mission log index out of bounds")
)
