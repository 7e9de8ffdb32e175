package services

import (
	"context"
	"fmt"

	"investmap/internal/features"
	"investmap/internal/models"
	"investmap/internal/repositories"
)

// AlertsService matches listings against saved searches and fans out
// notifications. Listings whose tier does not include alert_inclusion are
// skipped before any filter matching happens.
type AlertsService interface {
	MatchStartup(search *models.SavedSearch, startup *models.Startup) bool
	NotifyMatches(ctx context.Context, startups []*models.Startup) (int, error)
}

type alertsService struct {
	searchesRepo      repositories.SavedSearchesRepository
	notificationsRepo repositories.NotificationsRepository
}

func NewAlertsService(
	searchesRepo repositories.SavedSearchesRepository,
	notificationsRepo repositories.NotificationsRepository,
) AlertsService {
	return &alertsService{
		searchesRepo:      searchesRepo,
		notificationsRepo: notificationsRepo,
	}
}

// MatchStartup reports whether a listing satisfies a saved search's
// filters. Ineligible listings never match regardless of filters.
func (s *alertsService) MatchStartup(search *models.SavedSearch, startup *models.Startup) bool {
	if !features.IsEligibleForAlerts(startup) {
		return false
	}

	f := search.Filters
	if len(f.Categories) > 0 && !contains(f.Categories, startup.Category) {
		return false
	}
	if f.City != nil && *f.City != startup.City {
		return false
	}
	if f.Country != nil && *f.Country != startup.Country {
		return false
	}
	if f.FundingStage != nil && *f.FundingStage != startup.FundingStage {
		return false
	}
	if len(f.PricingTiers) > 0 && !contains(f.PricingTiers, startup.PricingTier) {
		return false
	}
	if f.MinTeamSize != nil && startup.TeamSize < *f.MinTeamSize {
		return false
	}
	if f.MaxTeamSize != nil && startup.TeamSize > *f.MaxTeamSize {
		return false
	}
	if f.MinRevenue != nil && (startup.RevenueLast12M == nil || *startup.RevenueLast12M < *f.MinRevenue) {
		return false
	}
	if f.MaxRevenue != nil && (startup.RevenueLast12M == nil || *startup.RevenueLast12M > *f.MaxRevenue) {
		return false
	}
	if f.MinCAGR != nil && (startup.RevenueCAGR3Y == nil || *startup.RevenueCAGR3Y < *f.MinCAGR) {
		return false
	}
	if f.MaxCAGR != nil && (startup.RevenueCAGR3Y == nil || *startup.RevenueCAGR3Y > *f.MaxCAGR) {
		return false
	}
	return true
}

// NotifyMatches runs every alert-enabled saved search against the given
// listings and creates a notification per new match. Returns the number
// of notifications created.
func (s *alertsService) NotifyMatches(ctx context.Context, startups []*models.Startup) (int, error) {
	searches, err := s.searchesRepo.ListAlertEnabled(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list alert-enabled searches: %w", err)
	}

	created := 0
	for _, search := range searches {
		for _, startup := range startups {
			if !s.MatchStartup(search, startup) {
				continue
			}

			exists, err := s.notificationsRepo.Exists(ctx, search.InvestorUserID, startup.ID)
			if err != nil {
				return created, fmt.Errorf("failed to check existing notification: %w", err)
			}
			if exists {
				continue
			}

			notification := &models.Notification{
				InvestorUserID: search.InvestorUserID,
				Title:          fmt.Sprintf("New match for \"%s\"", search.Label),
				Body:           fmt.Sprintf("%s (%s, %s) matches your saved search.", startup.Name, startup.City, startup.Country),
				StartupID:      startup.ID,
			}
			if err := s.notificationsRepo.Create(ctx, notification); err != nil {
				return created, fmt.Errorf("failed to create notification: %w", err)
			}
			created++
		}
	}
	return created, nil
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
