package features

import (
	"testing"

	"investmap/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanAccess_TierLadder(t *testing.T) {
	// Baseline features are available on every tier.
	for _, tier := range []string{models.TierCore, models.TierPlus, models.TierUltra} {
		assert.True(t, CanAccess(tier, VisibleOnMap), tier)
		assert.True(t, CanAccess(tier, Searchable), tier)
		assert.True(t, CanAccess(tier, CanBeFavorited), tier)
	}

	// Plus-and-above features.
	assert.False(t, CanAccess(models.TierCore, AlertInclusion))
	assert.False(t, CanAccess(models.TierCore, SavedSearchMatch))
	assert.False(t, CanAccess(models.TierCore, FullFilter))
	assert.True(t, CanAccess(models.TierPlus, AlertInclusion))
	assert.True(t, CanAccess(models.TierUltra, FullFilter))

	// Ultra-only features.
	assert.False(t, CanAccess(models.TierCore, RankingBoost))
	assert.False(t, CanAccess(models.TierPlus, RankingBoost))
	assert.False(t, CanAccess(models.TierPlus, FeaturedBadge))
	assert.True(t, CanAccess(models.TierUltra, RankingBoost))
	assert.True(t, CanAccess(models.TierUltra, FeaturedBadge))
}

func TestCanAccess_UnknownInputs(t *testing.T) {
	assert.False(t, CanAccess(models.TierUltra, "teleportation"))
	assert.False(t, CanAccess("enterprise", VisibleOnMap))
	assert.False(t, CanAccess("", ""))
}

func TestFeaturesForTier(t *testing.T) {
	core := FeaturesForTier(models.TierCore)
	assert.ElementsMatch(t, []string{CanBeFavorited, Searchable, VisibleOnMap}, core)
	assert.IsIncreasing(t, core)

	ultra := FeaturesForTier(models.TierUltra)
	assert.Len(t, ultra, 8)

	assert.Empty(t, FeaturesForTier("enterprise"))
}

func TestIsEligibleForAlerts(t *testing.T) {
	assert.False(t, IsEligibleForAlerts(&models.Startup{PricingTier: models.TierCore}))
	assert.True(t, IsEligibleForAlerts(&models.Startup{PricingTier: models.TierPlus}))
	assert.True(t, IsEligibleForAlerts(&models.Startup{PricingTier: models.TierUltra}))
}

func TestHasRankingBoost(t *testing.T) {
	assert.False(t, HasRankingBoost(&models.Startup{PricingTier: models.TierPlus}))
	assert.True(t, HasRankingBoost(&models.Startup{PricingTier: models.TierUltra}))
}

func TestRequireFeature(t *testing.T) {
	assert.NoError(t, RequireFeature(models.TierUltra, FeaturedBadge))

	err := RequireFeature(models.TierCore, FullFilter)
	assert.Error(t, err)

	var denied *FeatureDeniedError
	assert.ErrorAs(t, err, &denied)
	assert.Equal(t, models.TierCore, denied.Tier)
	assert.Equal(t, FullFilter, denied.Feature)
	assert.Equal(t,
		"feature 'full_filter' is not available on the 'core' plan. Upgrade to access this feature.",
		err.Error())
}
