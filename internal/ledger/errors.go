package ledger

import "errors"

// Operation errors. Every operation built on the ledger is all-or-nothing:
// any of these aborts the operation before state is committed.
var (
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	ErrDivisionByZero     = errors.New("division by zero")
	ErrAmountOutOfRange   = errors.New("amount out of range")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrNoYieldAvailable   = errors.New("no yield available")
	ErrSwapFailed         = errors.New("swap failed")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrOperationDisabled  = errors.New("operation disabled")
	ErrAlreadyInitialized = errors.New("already initialized")
	ErrNotInitialized     = errors.New("not initialized")
)
