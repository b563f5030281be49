package ledger

import "errors"

// Error kinds returned by the balance service and store. Callers branch with
// errors.Is; raw store diagnostics are never returned to callers.
var (
	ErrInvalidInput      = errors.New("invalid input")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrNotFound          = errors.New("balance not found")
	ErrServiceNotFound   = errors.New("service not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrOperationFailed   = errors.New("operation failed")
)
