package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Funding stages form a fixed ordered set used by the ranking engine.
const (
	FundingPreSeed  = "Pre-seed"
	FundingSeed     = "Seed"
	FundingSeriesA  = "Series A"
	FundingSeriesBP = "Series B+"
)

// Pricing tiers ordered by feature richness.
const (
	TierCore  = "core"
	TierPlus  = "plus"
	TierUltra = "ultra"
)

type Startup struct {
	ID                       uuid.UUID  `json:"id" db:"id"`
	Name                     string     `json:"name" db:"name"`
	Tagline                  string     `json:"tagline" db:"tagline"`
	ShortDescription         *string    `json:"short_description" db:"short_description"`
	Category                 string     `json:"category" db:"category"`
	SecondaryCategories      []string   `json:"secondary_categories" db:"-"`
	City                     string     `json:"city" db:"city"`
	Country                  string     `json:"country" db:"country"`
	Lat                      float64    `json:"lat" db:"lat"`
	Lng                      float64    `json:"lng" db:"lng"`
	FoundedYear              int        `json:"founded_year" db:"founded_year"`
	TeamSize                 int        `json:"team_size" db:"team_size"`
	EmployeeCount            *int       `json:"employee_count" db:"employee_count"`
	FundingStage             string     `json:"funding_stage" db:"funding_stage"`
	PricingTier              string     `json:"pricing_tier" db:"pricing_tier"`
	TierStartedAt            *time.Time `json:"tier_started_at" db:"tier_started_at"`
	PitchDeckURL             *string    `json:"pitch_deck_url" db:"pitch_deck_url"`
	WebsiteURL               *string    `json:"website_url" db:"website_url"`
	RevenueLast12M           *float64   `json:"revenue_last_12m" db:"revenue_last_12m"`
	RevenueCAGR3Y            *float64   `json:"revenue_cagr_3y" db:"revenue_cagr_3y"`
	VerifiedFinancials       bool       `json:"verified_financials" db:"verified_financials"`
	GDPRCompliant            bool       `json:"gdpr_compliant" db:"gdpr_compliant"`
	ProfileCompletenessScore int        `json:"profile_completeness_score" db:"profile_completeness_score"`
	HeartCount               int        `json:"heart_count" db:"heart_count"`
	RankingScore             *float64   `json:"ranking_score,omitempty" db:"-"`
	CreatedAt                time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt                time.Time  `json:"updated_at" db:"updated_at"`
}

// ValidTier reports whether the given tier is one of core/plus/ultra.
func ValidTier(tier string) bool {
	return tier == TierCore || tier == TierPlus || tier == TierUltra
}

// Validate enforces the listing invariants: non-negative heart count,
// CAGR within [-100, 300], and tier_started_at present iff tier is ultra.
func (s *Startup) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if !ValidTier(s.PricingTier) {
		return fmt.Errorf("pricing_tier must be one of: core, plus, ultra")
	}
	if s.HeartCount < 0 {
		return fmt.Errorf("heart_count cannot be negative")
	}
	if s.RevenueCAGR3Y != nil && (*s.RevenueCAGR3Y < -100 || *s.RevenueCAGR3Y > 300) {
		return fmt.Errorf("revenue_cagr_3y must be between -100 and 300")
	}
	if s.PricingTier == TierUltra && s.TierStartedAt == nil {
		return fmt.Errorf("tier_started_at is required for ultra tier listings")
	}
	if s.PricingTier != TierUltra && s.TierStartedAt != nil {
		return fmt.Errorf("tier_started_at must be unset for non-ultra listings")
	}
	return nil
}

// StartupFilters represents search filters for listing discovery.
type StartupFilters struct {
	Categories   []string `json:"categories,omitempty"`
	City         *string  `json:"city,omitempty"`
	Country      *string  `json:"country,omitempty"`
	FundingStage *string  `json:"funding_stage,omitempty"`
	PricingTiers []string `json:"pricing_tiers,omitempty"`
	MinTeamSize  *int     `json:"min_team_size,omitempty"`
	MaxTeamSize  *int     `json:"max_team_size,omitempty"`
	MinRevenue   *float64 `json:"min_revenue,omitempty"`
	MaxRevenue   *float64 `json:"max_revenue,omitempty"`
	MinCAGR      *float64 `json:"min_cagr,omitempty"`
	MaxCAGR      *float64 `json:"max_cagr,omitempty"`
	Limit        int      `json:"limit"`
	Offset       int      `json:"offset"`
}
