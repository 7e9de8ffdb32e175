package ranking

import (
	"math"
	"sort"
	"time"

	"investmap/internal/models"
)

// Funding stage weights. Unknown or missing stages fall back to 0.5.
var fundingWeights = map[string]float64{
	models.FundingPreSeed:  0.60,
	models.FundingSeed:     0.75,
	models.FundingSeriesA:  0.88,
	models.FundingSeriesBP: 1.00,
}

const defaultFundingWeight = 0.5

// Base score coefficients. They sum to 1.0; changing them breaks score
// comparability across listings.
const (
	coeffFunding    = 0.25
	coeffRecency    = 0.20
	coeffActivity   = 0.20
	coeffInterest   = 0.25
	coeffEngagement = 0.10
)

// Ultra boost grows 3%/month from tier start, hard-capped at +25%.
const (
	ultraBoostPerMonth = 0.03
	ultraBoostCap      = 1.25
)

// Core tier listings stay visible, just slightly deprioritized.
const coreMultiplier = 0.9

// wholeMonths returns the number of whole 30-day months between from and
// now, never negative.
func wholeMonths(from, now time.Time) int {
	if !now.After(from) {
		return 0
	}
	return int(now.Sub(from).Hours() / (24 * 30))
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func fundingStageWeight(s *models.Startup) float64 {
	if w, ok := fundingWeights[s.FundingStage]; ok {
		return w
	}
	return defaultFundingWeight
}

// recencyWeight decays from 1.0 to the 0.3 floor over 24 months. Old but
// otherwise strong listings never fully vanish from ranking.
func recencyWeight(s *models.Startup, now time.Time) float64 {
	age := wholeMonths(s.CreatedAt, now)
	return math.Max(0.3, 1.0-float64(age)*0.03)
}

// activityWeight maps profile completeness onto [0.4, 1.0].
func activityWeight(s *models.Startup) float64 {
	completeness := float64(s.ProfileCompletenessScore) / 100
	return 0.4 + completeness*0.6
}

// investorInterestWeight is a log-scaled diminishing-returns curve:
// 1 heart ~0.2, 10 hearts ~0.46, 100 hearts ~0.66, asymptoting toward 1.0.
func investorInterestWeight(s *models.Startup) float64 {
	if s.HeartCount <= 0 {
		return 0
	}
	return math.Min(1.0, math.Log10(float64(s.HeartCount)+1)/2.3)
}

func engagementWeight(s *models.Startup) float64 {
	completeness := float64(s.ProfileCompletenessScore) / 100
	w := completeness * 0.65
	if s.PitchDeckURL != nil && *s.PitchDeckURL != "" {
		w += 0.15
	}
	if s.WebsiteURL != nil && *s.WebsiteURL != "" {
		w += 0.10
	}
	if s.RevenueLast12M != nil {
		w += 0.10
	}
	return math.Min(1.0, w)
}

// tierMultiplier applies the pricing-tier adjustment. An ultra listing
// without a tier start date gets no boost; the missing timestamp forces
// the multiplier to neutral rather than rewarding bad data.
func tierMultiplier(s *models.Startup, now time.Time) float64 {
	switch s.PricingTier {
	case models.TierCore:
		return coreMultiplier
	case models.TierUltra:
		if s.TierStartedAt == nil {
			return 1.0
		}
		months := wholeMonths(*s.TierStartedAt, now)
		return math.Min(1+float64(months)*ultraBoostPerMonth, ultraBoostCap)
	default:
		return 1.0
	}
}

// ComputeRankingScore computes the composite relevance score for one
// listing snapshot at the given instant. It is pure and total: missing
// optional fields degrade to documented defaults, never errors.
func ComputeRankingScore(s *models.Startup, now time.Time) models.RankingScore {
	fw := fundingStageWeight(s)
	rw := recencyWeight(s, now)
	aw := activityWeight(s)
	iiw := investorInterestWeight(s)
	ew := engagementWeight(s)

	base := fw*coeffFunding +
		rw*coeffRecency +
		aw*coeffActivity +
		iiw*coeffInterest +
		ew*coeffEngagement

	mult := tierMultiplier(s, now)

	return models.RankingScore{
		StartupID:              s.ID,
		FundingStageWeight:     round4(fw),
		RecencyWeight:          round4(rw),
		ActivityWeight:         round4(aw),
		InvestorInterestWeight: round4(iiw),
		EngagementWeight:       round4(ew),
		BaseScore:              round4(base),
		TierMultiplier:         round4(mult),
		FinalScore:             round4(base * mult),
	}
}

// RankStartups scores every listing at the given instant, attaches the
// final score, and returns a new slice sorted by score descending. Ties
// break by startup ID ascending so the order is deterministic.
func RankStartups(startups []*models.Startup, now time.Time) []*models.Startup {
	ranked := make([]*models.Startup, len(startups))
	for i, s := range startups {
		c := *s
		score := ComputeRankingScore(s, now).FinalScore
		c.RankingScore = &score
		ranked[i] = &c
	}
	sort.Slice(ranked, func(i, j int) bool {
		si, sj := *ranked[i].RankingScore, *ranked[j].RankingScore
		if si != sj {
			return si > sj
		}
		return ranked[i].ID.String() < ranked[j].ID.String()
	})
	return ranked
}
