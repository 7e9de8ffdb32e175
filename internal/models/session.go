package models

import (
	"time"

	"github.com/google/uuid"
)

// InvestorSession is one authenticated session record. Only the SHA-256
// hash of the session token is ever stored; the raw token never persists
// past the login call.
type InvestorSession struct {
	ID        uuid.UUID `json:"id" db:"id"`
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	TokenHash string    `json:"-" db:"token_hash"`
	IPAddress string    `json:"ip_address" db:"ip_address"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SessionResult is the outcome of registering a session. Flagged signals
// concurrent-session abuse for downstream review; it never blocks login.
type SessionResult struct {
	Success bool `json:"success"`
	Flagged bool `json:"flagged"`
}
