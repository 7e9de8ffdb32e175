package ranking

import "investmap/internal/models"

// ComputeProfileCompleteness scores how many profile fields are filled in,
// as a 0-100 integer. The field list is fixed; each filled field counts
// equally.
func ComputeProfileCompleteness(s *models.Startup) int {
	checks := []bool{
		s.Name != "",
		s.Tagline != "",
		s.ShortDescription != nil && *s.ShortDescription != "",
		s.Category != "",
		s.City != "",
		s.Country != "",
		s.FoundedYear != 0,
		s.TeamSize != 0,
		s.FundingStage != "",
		s.GDPRCompliant,
		s.PitchDeckURL != nil && *s.PitchDeckURL != "",
		s.WebsiteURL != nil && *s.WebsiteURL != "",
		s.RevenueLast12M != nil,
		s.RevenueCAGR3Y != nil,
		len(s.SecondaryCategories) > 0,
	}

	filled := 0
	for _, ok := range checks {
		if ok {
			filled++
		}
	}
	return int(float64(filled)/float64(len(checks))*100 + 0.5)
}
