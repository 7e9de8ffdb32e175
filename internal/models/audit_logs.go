package models

import (
	"time"

	"github.com/google/uuid"
)

// JSONB is a free-form metadata payload stored as jsonb.
type JSONB map[string]interface{}

// AuditLog is an append-only record of privileged state changes.
// Entries are never mutated or deleted.
type AuditLog struct {
	ID        uuid.UUID `json:"id" db:"id"`
	ActorID   uuid.UUID `json:"actor_id" db:"actor_id"`
	Action    string    `json:"action" db:"action"`
	TargetID  uuid.UUID `json:"target_id" db:"target_id"`
	Metadata  JSONB     `json:"metadata" db:"metadata"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Action constants for audit logs
const (
	ActionSeatActivated            = "seat_activated"
	ActionSeatDeactivated          = "seat_deactivated"
	ActionTierChanged              = "tier_changed"
	ActionRevenueEdited            = "revenue_edited"
	ActionConcurrentSessionFlagged = "concurrent_session_flagged"
)

// AuditLogFilters represents filters for querying audit logs
type AuditLogFilters struct {
	ActorID   *uuid.UUID `json:"actor_id"`
	TargetID  *uuid.UUID `json:"target_id"`
	Action    *string    `json:"action"`
	StartDate *time.Time `json:"start_date"`
	EndDate   *time.Time `json:"end_date"`
	Limit     int        `json:"limit"`
	Offset    int        `json:"offset"`
}
