package services

import (
	"context"
	"fmt"
	"log"

	"investmap/internal/caching"
	"investmap/internal/features"
	"investmap/internal/models"
	"investmap/internal/repositories"

	"github.com/google/uuid"
)

// FavoritesService manages investor hearts. Toggle is the single
// authoritative operation; callers do optimistic UI on top of its result.
type FavoritesService interface {
	// ToggleFavorite flips the heart for one investor/startup pair and
	// returns the new state. Idempotent per current state.
	ToggleFavorite(ctx context.Context, investorUserID, startupID uuid.UUID) (favorited bool, err error)

	GetInvestorFavorites(ctx context.Context, investorUserID uuid.UUID) ([]uuid.UUID, error)
	GetHeartCount(ctx context.Context, startupID uuid.UUID) (int, error)
}

type favoritesService struct {
	favoritesRepo repositories.FavoritesRepository
	startupsRepo  repositories.StartupsRepository
	cacheSvc      caching.CacheService
}

func NewFavoritesService(
	favoritesRepo repositories.FavoritesRepository,
	startupsRepo repositories.StartupsRepository,
	cacheSvc caching.CacheService,
) FavoritesService {
	return &favoritesService{
		favoritesRepo: favoritesRepo,
		startupsRepo:  startupsRepo,
		cacheSvc:      cacheSvc,
	}
}

func (s *favoritesService) ToggleFavorite(ctx context.Context, investorUserID, startupID uuid.UUID) (bool, error) {
	startup, err := s.startupsRepo.GetByID(ctx, startupID)
	if err != nil {
		return false, fmt.Errorf("failed to load startup: %w", err)
	}
	if err := features.RequireFeature(startup.PricingTier, features.CanBeFavorited); err != nil {
		return false, err
	}

	existing, err := s.favoritesRepo.GetByUserAndStartup(ctx, investorUserID, startupID)
	if err != nil {
		return false, fmt.Errorf("failed to check existing favorite: %w", err)
	}

	var favorited bool
	if existing != nil {
		if err := s.favoritesRepo.Delete(ctx, existing.ID); err != nil {
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		favorited = false
	} else {
		favorite := &models.Favorite{
			ID:             uuid.New(),
			InvestorUserID: investorUserID,
			StartupID:      startupID,
		}
		if err := s.favoritesRepo.Create(ctx, favorite); err != nil {
			return false, fmt.Errorf("failed to add favorite: %w", err)
		}
		favorited = true
	}

	// Refresh the denormalized heart count feeding the ranking input.
	count, err := s.favoritesRepo.CountForStartup(ctx, startupID)
	if err != nil {
		return favorited, fmt.Errorf("failed to count hearts: %w", err)
	}
	if err := s.startupsRepo.SetHeartCount(ctx, startupID, count); err != nil {
		return favorited, fmt.Errorf("failed to update heart count: %w", err)
	}

	if err := s.cacheSvc.DeleteStartup(ctx, startupID); err != nil {
		log.Printf("Failed to invalidate startup cache %s: %v", startupID, err)
	}

	return favorited, nil
}

func (s *favoritesService) GetInvestorFavorites(ctx context.Context, investorUserID uuid.UUID) ([]uuid.UUID, error) {
	return s.favoritesRepo.ListStartupIDsForUser(ctx, investorUserID)
}

func (s *favoritesService) GetHeartCount(ctx context.Context, startupID uuid.UUID) (int, error) {
	return s.favoritesRepo.CountForStartup(ctx, startupID)
}
