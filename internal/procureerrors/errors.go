package procureerrors

import "errors"

// Lookup and authorization errors
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")
)

// Business-rule errors. None of these are retried by the core; they are
// caller violations, not transient faults.
var (
	ErrInvalidState = errors.New("operation not allowed in current state")
	ErrTenderClosed = errors.New("tender is not accepting bids")
	ErrTooEarly     = errors.New("sealed tender cannot be awarded before its closing date")
	ErrDuplicateBid = errors.New("vendor already has a bid on this tender")
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("tender already has bids")
)
