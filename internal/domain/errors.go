package domain

import "errors"

// Sentinel errors shared across services. Controllers map these to HTTP
// status codes; anything not listed here is treated as an internal error.
var (
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrInvalidInput = errors.New("invalid input")

	// Registration workflow rejections, each corresponding to one
	// precondition of the booking pipeline.
	ErrWindowClosed          = errors.New("registration window is closed")
	ErrMatchInactive         = errors.New("match is not open for registration")
	ErrDuplicateRegistration = errors.New("already registered for this match")
	ErrMatchFull             = errors.New("all seats for this match are taken")
	ErrNoSeatAvailable       = errors.New("no seat available")
	ErrAlreadyCanceled       = errors.New("registration is already canceled")

	// Wallet and payment failures.
	ErrInsufficientFunds = errors.New("insufficient wallet balance")
	ErrSignatureMismatch = errors.New("payment signature mismatch")
	ErrOrderAlreadyPaid  = errors.New("payment order already confirmed")

	// ErrContention is returned after a transactional workflow exhausted its
	// retries on store write conflicts. Callers should resubmit.
	ErrContention = errors.New("store contention, please retry")
)
