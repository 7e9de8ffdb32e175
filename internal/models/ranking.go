package models

import "github.com/google/uuid"

// RankingScore is the derived relevance breakdown for one listing.
// It is recomputed on demand from a listing snapshot and a wall-clock
// instant; scores are only comparable when computed with the same "now".
type RankingScore struct {
	StartupID              uuid.UUID `json:"startup_id"`
	FundingStageWeight     float64   `json:"funding_stage_weight"`
	RecencyWeight          float64   `json:"recency_weight"`
	ActivityWeight         float64   `json:"activity_weight"`
	InvestorInterestWeight float64   `json:"investor_interest_weight"`
	EngagementWeight       float64   `json:"engagement_weight"`
	BaseScore              float64   `json:"base_score"`
	TierMultiplier         float64   `json:"tier_multiplier"`
	FinalScore             float64   `json:"final_score"`
}
