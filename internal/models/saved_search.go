package models

import (
	"time"

	"github.com/google/uuid"
)

// SavedSearch is an investor's stored filter set. When alerts are enabled
// the background matcher notifies the investor about new matching listings
// that are eligible for alert inclusion.
type SavedSearch struct {
	ID             uuid.UUID      `json:"id" db:"id"`
	InvestorUserID uuid.UUID      `json:"investor_user_id" db:"investor_user_id"`
	Label          string         `json:"label" db:"label"`
	Filters        StartupFilters `json:"filters" db:"filters"`
	AlertsEnabled  bool           `json:"alerts_enabled" db:"alerts_enabled"`
	CreatedAt      time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at" db:"updated_at"`
}

// Notification is an alert delivered to an investor when a saved search
// matches a listing.
type Notification struct {
	ID             uuid.UUID `json:"id" db:"id"`
	InvestorUserID uuid.UUID `json:"investor_user_id" db:"investor_user_id"`
	Title          string    `json:"title" db:"title"`
	Body           string    `json:"body" db:"body"`
	StartupID      uuid.UUID `json:"startup_id" db:"startup_id"`
	Read           bool      `json:"read" db:"read"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
