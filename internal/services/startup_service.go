package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"investmap/internal/caching"
	"investmap/internal/models"
	"investmap/internal/ranking"
	"investmap/internal/repositories"

	"github.com/google/uuid"
)

const rankingsCacheTTL = 5 * time.Minute

// StartupService owns the listing lifecycle: registration, profile
// updates (which recompute completeness), and ranked discovery.
type StartupService interface {
	Register(ctx context.Context, startup *models.Startup) error
	Get(ctx context.Context, id uuid.UUID) (*models.Startup, error)
	UpdateProfile(ctx context.Context, startup *models.Startup) error
	Search(ctx context.Context, filters *models.StartupFilters) ([]*models.Startup, error)

	// Ranked returns all listings ordered by ranking score at the given
	// instant. Serves from the cache when warm; scores in the cache are
	// only as fresh as the last refresh.
	Ranked(ctx context.Context, now time.Time) ([]*models.Startup, error)
	RefreshRankings(ctx context.Context, now time.Time) ([]*models.Startup, error)
	Score(ctx context.Context, id uuid.UUID, now time.Time) (*models.RankingScore, error)

	AttachDeck(ctx context.Context, id uuid.UUID, objectName string) error
}

type startupService struct {
	startupsRepo repositories.StartupsRepository
	cacheSvc     caching.CacheService
}

func NewStartupService(startupsRepo repositories.StartupsRepository, cacheSvc caching.CacheService) StartupService {
	return &startupService{startupsRepo: startupsRepo, cacheSvc: cacheSvc}
}

func (s *startupService) Register(ctx context.Context, startup *models.Startup) error {
	if startup.ID == uuid.Nil {
		startup.ID = uuid.New()
	}
	// New listings always start on core; paid tiers arrive via billing.
	startup.PricingTier = models.TierCore
	startup.TierStartedAt = nil
	startup.HeartCount = 0
	startup.ProfileCompletenessScore = ranking.ComputeProfileCompleteness(startup)

	if err := startup.Validate(); err != nil {
		return err
	}
	if err := s.startupsRepo.Create(ctx, startup); err != nil {
		return fmt.Errorf("failed to create startup: %w", err)
	}
	s.invalidateRankings(ctx)
	return nil
}

func (s *startupService) Get(ctx context.Context, id uuid.UUID) (*models.Startup, error) {
	cached, err := s.cacheSvc.GetStartup(ctx, id)
	if err != nil {
		log.Printf("Startup cache read failed for %s: %v", id, err)
	}
	if cached != nil {
		return cached, nil
	}

	startup, err := s.startupsRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cacheSvc.SetStartup(ctx, startup, rankingsCacheTTL); err != nil {
		log.Printf("Startup cache write failed for %s: %v", id, err)
	}
	return startup, nil
}

func (s *startupService) UpdateProfile(ctx context.Context, startup *models.Startup) error {
	current, err := s.startupsRepo.GetByID(ctx, startup.ID)
	if err != nil {
		return fmt.Errorf("failed to load startup: %w", err)
	}
	// Tier and heart count are not profile fields; they only change
	// through billing events and favorite toggles.
	startup.PricingTier = current.PricingTier
	startup.TierStartedAt = current.TierStartedAt
	startup.HeartCount = current.HeartCount
	startup.CreatedAt = current.CreatedAt
	startup.PitchDeckURL = current.PitchDeckURL
	startup.ProfileCompletenessScore = ranking.ComputeProfileCompleteness(startup)

	if err := startup.Validate(); err != nil {
		return err
	}
	if err := s.startupsRepo.Update(ctx, startup); err != nil {
		return fmt.Errorf("failed to update startup: %w", err)
	}

	if err := s.cacheSvc.DeleteStartup(ctx, startup.ID); err != nil {
		log.Printf("Failed to invalidate startup cache %s: %v", startup.ID, err)
	}
	s.invalidateRankings(ctx)
	return nil
}

func (s *startupService) Search(ctx context.Context, filters *models.StartupFilters) ([]*models.Startup, error) {
	return s.startupsRepo.Search(ctx, filters)
}

func (s *startupService) Ranked(ctx context.Context, now time.Time) ([]*models.Startup, error) {
	cached, err := s.cacheSvc.GetRankings(ctx)
	if err != nil {
		log.Printf("Rankings cache read failed: %v", err)
	}
	if cached != nil {
		return cached, nil
	}
	return s.RefreshRankings(ctx, now)
}

func (s *startupService) RefreshRankings(ctx context.Context, now time.Time) ([]*models.Startup, error) {
	startups, err := s.startupsRepo.List(ctx, 1000, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to list startups: %w", err)
	}

	ranked := ranking.RankStartups(startups, now)
	if err := s.cacheSvc.SetRankings(ctx, ranked, rankingsCacheTTL); err != nil {
		log.Printf("Rankings cache write failed: %v", err)
	}
	return ranked, nil
}

func (s *startupService) Score(ctx context.Context, id uuid.UUID, now time.Time) (*models.RankingScore, error) {
	startup, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	score := ranking.ComputeRankingScore(startup, now)
	return &score, nil
}

func (s *startupService) AttachDeck(ctx context.Context, id uuid.UUID, objectName string) error {
	if err := s.startupsRepo.SetPitchDeckURL(ctx, id, objectName); err != nil {
		return fmt.Errorf("failed to attach deck: %w", err)
	}
	if err := s.cacheSvc.DeleteStartup(ctx, id); err != nil {
		log.Printf("Failed to invalidate startup cache %s: %v", id, err)
	}
	return nil
}

func (s *startupService) invalidateRankings(ctx context.Context) {
	if err := s.cacheSvc.InvalidateRankings(ctx); err != nil {
		log.Printf("Failed to invalidate rankings cache: %v", err)
	}
}
