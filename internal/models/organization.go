package models

import (
	"time"

	"github.com/google/uuid"
)

// InvestorOrganization is the billing container for investor seats.
// PurchasedSeats is set by billing events and is the upper bound on the
// number of active seat-holders in the organization.
type InvestorOrganization struct {
	ID                   uuid.UUID `json:"id" db:"id"`
	Name                 string    `json:"name" db:"name"`
	StripeCustomerID     *string   `json:"stripe_customer_id" db:"stripe_customer_id"`
	StripeSubscriptionID *string   `json:"stripe_subscription_id" db:"stripe_subscription_id"`
	PurchasedSeats       int       `json:"purchased_seats" db:"purchased_seats"`
	CreatedAt            time.Time `json:"created_at" db:"created_at"`
	UpdatedAt            time.Time `json:"updated_at" db:"updated_at"`
}

// SeatUsage is the read-only seat aggregate for an organization.
// Available is purchased minus active and is deliberately not clamped:
// a negative value surfaces over-activation done outside this code path.
type SeatUsage struct {
	Purchased int             `json:"purchased"`
	Active    int             `json:"active"`
	Available int             `json:"available"`
	Users     []*InvestorUser `json:"users"`
}
