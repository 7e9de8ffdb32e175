package services

import "errors"

// Policy errors returned as values across the service boundary. Callers
// pattern-match on these; infrastructure failures propagate separately.
var (
	// ErrUnauthorized: the actor lacks the admin role or belongs to a
	// different organization than the target. Never retried.
	ErrUnauthorized = errors.New("unauthorized: only organization admins can manage seats")

	// ErrSeatLimitExceeded: the capacity check or the atomic write-time
	// constraint rejected the activation. The remedy is purchasing more
	// seats, not retrying.
	ErrSeatLimitExceeded = errors.New("no available seats: purchase more seats to activate this user")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSeatNotActive      = errors.New("seat is not active for this user")
	ErrRateLimited        = errors.New("too many login attempts, try again later")
)
