package features

import (
	"fmt"
	"sort"

	"investmap/internal/models"
)

// Feature names gated by pricing tier.
const (
	VisibleOnMap     = "visible_on_map"
	Searchable       = "searchable"
	CanBeFavorited   = "can_be_favorited"
	AlertInclusion   = "alert_inclusion"
	SavedSearchMatch = "saved_search_match"
	FullFilter       = "full_filter"
	RankingBoost     = "ranking_boost"
	FeaturedBadge    = "featured_badge"
)

// featureTiers maps each feature to the tiers that include it.
var featureTiers = map[string][]string{
	// Available to all tiers
	VisibleOnMap:   {models.TierCore, models.TierPlus, models.TierUltra},
	Searchable:     {models.TierCore, models.TierPlus, models.TierUltra},
	CanBeFavorited: {models.TierCore, models.TierPlus, models.TierUltra},

	// Plus and above
	AlertInclusion:   {models.TierPlus, models.TierUltra},
	SavedSearchMatch: {models.TierPlus, models.TierUltra},
	FullFilter:       {models.TierPlus, models.TierUltra},

	// Ultra only
	RankingBoost:  {models.TierUltra},
	FeaturedBadge: {models.TierUltra},
}

// CanAccess reports whether a pricing tier includes a feature. Unknown
// features and unknown tiers are simply not granted.
func CanAccess(tier, feature string) bool {
	for _, t := range featureTiers[feature] {
		if t == tier {
			return true
		}
	}
	return false
}

// IsEligibleForAlerts reports whether a listing qualifies for saved-search
// notifications. Callers must skip ineligible listings before matching.
func IsEligibleForAlerts(s *models.Startup) bool {
	return CanAccess(s.PricingTier, AlertInclusion)
}

// HasRankingBoost reports whether a listing's tier includes the ranking
// boost.
func HasRankingBoost(s *models.Startup) bool {
	return CanAccess(s.PricingTier, RankingBoost)
}

// FeaturesForTier returns the sorted feature set a tier includes. Used for
// plan comparison displays.
func FeaturesForTier(tier string) []string {
	var out []string
	for feature, tiers := range featureTiers {
		for _, t := range tiers {
			if t == tier {
				out = append(out, feature)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// FeatureDeniedError is returned when a tier does not include a requested
// feature. It carries the feature and tier so callers can render an
// actionable upgrade message.
type FeatureDeniedError struct {
	Tier    string
	Feature string
}

func (e *FeatureDeniedError) Error() string {
	return fmt.Sprintf("feature '%s' is not available on the '%s' plan. Upgrade to access this feature.", e.Feature, e.Tier)
}

// RequireFeature fails with a FeatureDeniedError when the tier does not
// include the feature. Guards server-side actions before they execute.
func RequireFeature(tier, feature string) error {
	if !CanAccess(tier, feature) {
		return &FeatureDeniedError{Tier: tier, Feature: feature}
	}
	return nil
}
