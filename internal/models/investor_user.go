package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

const (
	SeatActive   = "active"
	SeatInactive = "inactive"
)

// InvestorUser is a named seat-holder inside an investor organization.
// SeatStatus is toggled only by an org admin through the seat service.
type InvestorUser struct {
	ID               uuid.UUID  `json:"id" db:"id"`
	OrganizationID   uuid.UUID  `json:"organization_id" db:"organization_id"`
	Email            string     `json:"email" db:"email"`
	PasswordHash     string     `json:"-" db:"password_hash"` // Never serialize in JSON
	Role             string     `json:"role" db:"role"`
	SeatStatus       string     `json:"seat_status" db:"seat_status"`
	SessionTokenHash *string    `json:"-" db:"session_token_hash"`
	LastLoginAt      *time.Time `json:"last_login_at" db:"last_login_at"`
	CreatedAt        time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at" db:"updated_at"`
}

// IsAdmin reports whether the user can manage seats for its organization.
func (u *InvestorUser) IsAdmin() bool {
	return u.Role == RoleAdmin
}
