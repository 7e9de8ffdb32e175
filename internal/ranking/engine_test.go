package ranking

import (
	"math"
	"testing"
	"time"

	"investmap/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

// fullProfile returns a listing with every component weight at its
// maximum: brand new, Series B+, complete profile, 200 hearts.
func fullProfile(now time.Time) *models.Startup {
	return &models.Startup{
		ID:                       uuid.New(),
		Name:                     "Helios Robotics",
		FundingStage:             models.FundingSeriesBP,
		PricingTier:              models.TierPlus,
		ProfileCompletenessScore: 100,
		HeartCount:               200,
		PitchDeckURL:             strPtr("decks/helios.pdf"),
		WebsiteURL:               strPtr("https://helios.example"),
		RevenueLast12M:           floatPtr(1_500_000),
		CreatedAt:                now,
	}
}

func TestComputeRankingScore_Pure(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := fullProfile(now)
	s.CreatedAt = now.AddDate(0, -7, 0)

	first := ComputeRankingScore(s, now)
	second := ComputeRankingScore(s, now)
	assert.Equal(t, first, second)
}

func TestBaseScore_AllComponentsAtOne(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s := fullProfile(now)

	score := ComputeRankingScore(s, now)
	assert.Equal(t, 1.0, score.FundingStageWeight)
	assert.Equal(t, 1.0, score.RecencyWeight)
	assert.Equal(t, 1.0, score.ActivityWeight)
	assert.Equal(t, 1.0, score.InvestorInterestWeight)
	assert.Equal(t, 1.0, score.EngagementWeight)
	// The coefficients sum to 1.0, so all-ones components give exactly 1.0.
	assert.Equal(t, 1.0, score.BaseScore)
	assert.Equal(t, 1.0, score.TierMultiplier)
	assert.Equal(t, 1.0, score.FinalScore)
}

func TestUnknownFundingStageFallsBack(t *testing.T) {
	now := time.Now()
	s := fullProfile(now)
	s.FundingStage = "Bridge"

	score := ComputeRankingScore(s, now)
	assert.Equal(t, 0.5, score.FundingStageWeight)
}

func TestInvestorInterest_ZeroHearts(t *testing.T) {
	now := time.Now()
	s := fullProfile(now)
	s.HeartCount = 0

	score := ComputeRankingScore(s, now)
	assert.Equal(t, 0.0, score.InvestorInterestWeight)
}

func TestRecencyWeight_FloorsAtPointThree(t *testing.T) {
	now := time.Now()
	s := fullProfile(now)
	s.CreatedAt = now.AddDate(-100, 0, 0)

	score := ComputeRankingScore(s, now)
	assert.Equal(t, 0.3, score.RecencyWeight)
}

func TestTierMultiplier_CoreAndPlus(t *testing.T) {
	now := time.Now()

	core := fullProfile(now)
	core.PricingTier = models.TierCore
	assert.Equal(t, 0.9, ComputeRankingScore(core, now).TierMultiplier)

	plus := fullProfile(now)
	plus.PricingTier = models.TierPlus
	assert.Equal(t, 1.0, ComputeRankingScore(plus, now).TierMultiplier)
}

func TestTierMultiplier_UltraCapped(t *testing.T) {
	now := time.Now()
	s := fullProfile(now)
	s.PricingTier = models.TierUltra
	started := now.AddDate(0, -1000, 0)
	s.TierStartedAt = &started

	score := ComputeRankingScore(s, now)
	assert.Equal(t, 1.25, score.TierMultiplier)
}

func TestTierMultiplier_UltraWithoutStartDate(t *testing.T) {
	now := time.Now()
	s := fullProfile(now)
	s.PricingTier = models.TierUltra
	s.TierStartedAt = nil

	// Missing timestamp yields a neutral multiplier, never a boost.
	score := ComputeRankingScore(s, now)
	assert.Equal(t, 1.0, score.TierMultiplier)
}

func TestTierMultiplier_UltraGrowsMonthly(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s := fullProfile(now)
	s.PricingTier = models.TierUltra
	started := now.Add(-4 * 30 * 24 * time.Hour)
	s.TierStartedAt = &started

	score := ComputeRankingScore(s, now)
	assert.InDelta(t, 1.12, score.TierMultiplier, 1e-9)
}

func TestSeriesBPlusUltraBreakdown(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	started := now.Add(-10 * 30 * 24 * time.Hour)
	s := &models.Startup{
		ID:                       uuid.New(),
		Name:                     "Nordwind Energy",
		FundingStage:             models.FundingSeriesBP,
		PricingTier:              models.TierUltra,
		TierStartedAt:            &started,
		ProfileCompletenessScore: 100,
		HeartCount:               100,
		PitchDeckURL:             strPtr("decks/nordwind.pdf"),
		WebsiteURL:               strPtr("https://nordwind.example"),
		RevenueLast12M:           floatPtr(3_200_000),
		CreatedAt:                now,
	}

	score := ComputeRankingScore(s, now)
	assert.Equal(t, 1.0, score.FundingStageWeight)
	assert.Equal(t, 1.0, score.RecencyWeight)
	assert.Equal(t, 1.0, score.ActivityWeight)
	assert.Equal(t, 1.0, score.EngagementWeight)

	interest := math.Min(1.0, math.Log10(101)/2.3)
	assert.InDelta(t, interest, score.InvestorInterestWeight, 1e-4)

	base := 0.25 + 0.20 + 0.20 + interest*0.25 + 0.10
	assert.InDelta(t, base, score.BaseScore, 1e-4)
	assert.Equal(t, 1.25, score.TierMultiplier)
	assert.InDelta(t, base*1.25, score.FinalScore, 1e-3)
}

func TestRankStartups_SortedDescending(t *testing.T) {
	now := time.Now()

	weak := fullProfile(now)
	weak.PricingTier = models.TierCore
	weak.HeartCount = 0
	weak.ProfileCompletenessScore = 20
	weak.FundingStage = models.FundingPreSeed

	mid := fullProfile(now)
	mid.PricingTier = models.TierCore

	strong := fullProfile(now)

	ranked := RankStartups([]*models.Startup{weak, strong, mid}, now)
	assert.Len(t, ranked, 3)
	for i := 0; i < len(ranked)-1; i++ {
		assert.GreaterOrEqual(t, *ranked[i].RankingScore, *ranked[i+1].RankingScore)
	}
	assert.Equal(t, strong.ID, ranked[0].ID)
	assert.Equal(t, weak.ID, ranked[2].ID)
}

func TestRankStartups_TieBreaksByID(t *testing.T) {
	now := time.Now()

	a := fullProfile(now)
	b := fullProfile(now)
	a.ID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b.ID = uuid.MustParse("00000000-0000-0000-0000-000000000002")

	ranked := RankStartups([]*models.Startup{b, a}, now)
	assert.Equal(t, *ranked[0].RankingScore, *ranked[1].RankingScore)
	assert.Equal(t, a.ID, ranked[0].ID)
	assert.Equal(t, b.ID, ranked[1].ID)
}

func TestRankStartups_DoesNotMutateInput(t *testing.T) {
	now := time.Now()
	s := fullProfile(now)

	RankStartups([]*models.Startup{s}, now)
	assert.Nil(t, s.RankingScore)
}

func TestComputeProfileCompleteness(t *testing.T) {
	empty := &models.Startup{}
	assert.Equal(t, 0, ComputeProfileCompleteness(empty))

	full := fullProfile(time.Now())
	full.Tagline = "Industrial robots for greenhouses"
	full.ShortDescription = strPtr("Automation for EU agritech")
	full.Category = "Robotics"
	full.City = "Munich"
	full.Country = "Germany"
	full.FoundedYear = 2019
	full.TeamSize = 42
	full.GDPRCompliant = true
	full.RevenueCAGR3Y = floatPtr(85)
	full.SecondaryCategories = []string{"AgTech"}
	assert.Equal(t, 100, ComputeProfileCompleteness(full))

	partial := &models.Startup{Name: "Solo", Category: "Fintech", Country: "France"}
	got := ComputeProfileCompleteness(partial)
	assert.Equal(t, 20, got) // 3 of 15 fields
}
