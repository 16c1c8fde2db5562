// Package service implements the rental order transaction engine: the
// session authenticator, the order placement coordinator and the
// tracking state machine.  Storage failures are caught here and
// translated into the sentinel errors below; raw driver errors never
// cross the handler boundary.
package service

import "errors"

// Authentication failures.  Unknown login and wrong password are
// deliberately indistinguishable so account existence is not leaked.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Order placement failures.
var (
	ErrInvalidQuantity = errors.New("units ordered must be positive")
	ErrUnknownGame     = errors.New("unknown game")
	ErrWriteFailed     = errors.New("order write failed")
	ErrIDCollision     = errors.New("order id allocation exhausted retries")
)

// Tracking update failures.
var (
	ErrTrackingNotFound  = errors.New("tracking record not found")
	ErrInvalidTransition = errors.New("invalid tracking status transition")
)
