package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite is an investor's bookmark of a startup listing. The per-listing
// count feeds the investor-interest ranking component.
type Favorite struct {
	ID             uuid.UUID `json:"id" db:"id"`
	InvestorUserID uuid.UUID `json:"investor_user_id" db:"investor_user_id"`
	StartupID      uuid.UUID `json:"startup_id" db:"startup_id"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
