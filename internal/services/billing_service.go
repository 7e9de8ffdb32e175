package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"investmap/internal/caching"
	"investmap/internal/models"
	"investmap/internal/repositories"

	"github.com/google/uuid"
)

// BillingService applies the state billing events leave behind. This core
// never calls out to the payment provider; it only reacts to verified
// webhook payloads.
type BillingService interface {
	// SetStartupTier changes a listing's pricing tier. Entering ultra
	// stamps tier_started_at; leaving ultra clears it, so the timestamp
	// is present iff the tier is ultra.
	SetStartupTier(ctx context.Context, startupID uuid.UUID, tier string, actorID uuid.UUID) error

	// SetPurchasedSeats updates the organization's seat quota. The quota
	// may drop below the current active count; seats are never force-
	// deactivated by billing, the anomaly surfaces in seat usage.
	SetPurchasedSeats(ctx context.Context, orgID uuid.UUID, seats int) error

	CancelOrganizationByCustomer(ctx context.Context, stripeCustomerID string) error
}

type billingService struct {
	startupsRepo repositories.StartupsRepository
	orgsRepo     repositories.OrganizationsRepository
	auditSvc     AuditService
	cacheSvc     caching.CacheService
}

func NewBillingService(
	startupsRepo repositories.StartupsRepository,
	orgsRepo repositories.OrganizationsRepository,
	auditSvc AuditService,
	cacheSvc caching.CacheService,
) BillingService {
	return &billingService{
		startupsRepo: startupsRepo,
		orgsRepo:     orgsRepo,
		auditSvc:     auditSvc,
		cacheSvc:     cacheSvc,
	}
}

func (s *billingService) SetStartupTier(ctx context.Context, startupID uuid.UUID, tier string, actorID uuid.UUID) error {
	if !models.ValidTier(tier) {
		return fmt.Errorf("invalid pricing tier %q", tier)
	}

	startup, err := s.startupsRepo.GetByID(ctx, startupID)
	if err != nil {
		return fmt.Errorf("failed to load startup: %w", err)
	}
	if startup.PricingTier == tier {
		return nil
	}

	var tierStartedAt *time.Time
	if tier == models.TierUltra {
		now := time.Now().UTC()
		tierStartedAt = &now
	}
	if err := s.startupsRepo.UpdateTier(ctx, startupID, tier, tierStartedAt); err != nil {
		return fmt.Errorf("failed to update tier: %w", err)
	}

	metadata := models.JSONB{"from": startup.PricingTier, "to": tier}
	if err := s.auditSvc.Record(ctx, actorID, models.ActionTierChanged, startupID, metadata); err != nil {
		log.Printf("Failed to write tier_changed audit entry for startup %s: %v", startupID, err)
	}

	if err := s.cacheSvc.DeleteStartup(ctx, startupID); err != nil {
		log.Printf("Failed to invalidate startup cache %s: %v", startupID, err)
	}
	if err := s.cacheSvc.InvalidateRankings(ctx); err != nil {
		log.Printf("Failed to invalidate rankings cache: %v", err)
	}
	return nil
}

func (s *billingService) SetPurchasedSeats(ctx context.Context, orgID uuid.UUID, seats int) error {
	if seats < 0 {
		return fmt.Errorf("purchased seats cannot be negative")
	}
	if err := s.orgsRepo.UpdatePurchasedSeats(ctx, orgID, seats); err != nil {
		return fmt.Errorf("failed to update purchased seats: %w", err)
	}
	return nil
}

func (s *billingService) CancelOrganizationByCustomer(ctx context.Context, stripeCustomerID string) error {
	org, err := s.orgsRepo.GetByStripeCustomerID(ctx, stripeCustomerID)
	if err != nil {
		return fmt.Errorf("failed to find organization for customer: %w", err)
	}
	return s.SetPurchasedSeats(ctx, org.ID, 0)
}
