package services

import (
	"context"
	"fmt"
	"log"

	"investmap/internal/models"
	"investmap/internal/repositories"

	"github.com/google/uuid"
)

// SeatService enforces the seat-license policy for investor organizations:
// active seats never exceed purchased seats, and only an admin of the same
// organization may toggle a seat.
type SeatService interface {
	HasAvailableSeat(ctx context.Context, orgID uuid.UUID) (bool, error)
	ActivateSeat(ctx context.Context, actorID, targetUserID, orgID uuid.UUID) error
	DeactivateSeat(ctx context.Context, actorID, targetUserID, orgID uuid.UUID) error
	GetSeatUsage(ctx context.Context, orgID uuid.UUID) (*models.SeatUsage, error)
}

type seatService struct {
	usersRepo repositories.InvestorUsersRepository
	orgsRepo  repositories.OrganizationsRepository
	auditSvc  AuditService
	sessions  SessionMonitor
}

func NewSeatService(
	usersRepo repositories.InvestorUsersRepository,
	orgsRepo repositories.OrganizationsRepository,
	auditSvc AuditService,
	sessions SessionMonitor,
) SeatService {
	return &seatService{
		usersRepo: usersRepo,
		orgsRepo:  orgsRepo,
		auditSvc:  auditSvc,
		sessions:  sessions,
	}
}

// HasAvailableSeat reports whether the organization has capacity for one
// more active seat. This read is a fast-fail for UX only; the binding
// check happens inside the activation UPDATE.
func (s *seatService) HasAvailableSeat(ctx context.Context, orgID uuid.UUID) (bool, error) {
	org, err := s.orgsRepo.GetByID(ctx, orgID)
	if err != nil {
		return false, fmt.Errorf("failed to load organization: %w", err)
	}
	active, err := s.usersRepo.CountActiveSeats(ctx, orgID)
	if err != nil {
		return false, fmt.Errorf("failed to count active seats: %w", err)
	}
	return active < org.PurchasedSeats, nil
}

// authorize verifies the actor is an admin of the given organization and
// that the target belongs to the same organization. Cross-tenant IDs are
// rejected before any mutation.
func (s *seatService) authorize(ctx context.Context, actorID, targetUserID, orgID uuid.UUID) (*models.InvestorUser, error) {
	actor, err := s.usersRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, ErrUnauthorized
	}
	if !actor.IsAdmin() || actor.OrganizationID != orgID {
		return nil, ErrUnauthorized
	}

	target, err := s.usersRepo.GetByID(ctx, targetUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load target user: %w", err)
	}
	if target.OrganizationID != orgID {
		return nil, ErrUnauthorized
	}
	return target, nil
}

func (s *seatService) ActivateSeat(ctx context.Context, actorID, targetUserID, orgID uuid.UUID) error {
	target, err := s.authorize(ctx, actorID, targetUserID, orgID)
	if err != nil {
		return err
	}
	if target.SeatStatus == models.SeatActive {
		return nil // already active, nothing to do
	}

	available, err := s.HasAvailableSeat(ctx, orgID)
	if err != nil {
		return err
	}
	if !available {
		return ErrSeatLimitExceeded
	}

	// The UPDATE re-validates capacity at write time. A concurrent
	// activation that won the race surfaces here as zero rows affected.
	activated, err := s.usersRepo.ActivateSeat(ctx, targetUserID, orgID)
	if err != nil {
		return fmt.Errorf("failed to activate seat: %w", err)
	}
	if !activated {
		return ErrSeatLimitExceeded
	}

	s.recordAudit(ctx, actorID, models.ActionSeatActivated, targetUserID, orgID)
	return nil
}

func (s *seatService) DeactivateSeat(ctx context.Context, actorID, targetUserID, orgID uuid.UUID) error {
	if _, err := s.authorize(ctx, actorID, targetUserID, orgID); err != nil {
		return err
	}

	// Clears the stored session token hash in the same statement:
	// deactivation immediately invalidates any live session.
	deactivated, err := s.usersRepo.DeactivateSeat(ctx, targetUserID, orgID)
	if err != nil {
		return fmt.Errorf("failed to deactivate seat: %w", err)
	}
	if !deactivated {
		return nil // already inactive, nothing to do
	}

	if err := s.sessions.InvalidateSession(ctx, targetUserID); err != nil {
		log.Printf("Failed to invalidate sessions for user %s: %v", targetUserID, err)
	}

	s.recordAudit(ctx, actorID, models.ActionSeatDeactivated, targetUserID, orgID)
	return nil
}

// GetSeatUsage returns the seat aggregate for display. Available is not
// clamped at zero: a negative value surfaces seats over-activated outside
// this code path.
func (s *seatService) GetSeatUsage(ctx context.Context, orgID uuid.UUID) (*models.SeatUsage, error) {
	org, err := s.orgsRepo.GetByID(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to load organization: %w", err)
	}
	users, err := s.usersRepo.ListByOrganization(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organization users: %w", err)
	}

	active := 0
	for _, u := range users {
		if u.SeatStatus == models.SeatActive {
			active++
		}
	}

	return &models.SeatUsage{
		Purchased: org.PurchasedSeats,
		Active:    active,
		Available: org.PurchasedSeats - active,
		Users:     users,
	}, nil
}

// recordAudit appends the audit entry after the state change committed.
// Audit writes are at-least-best-effort: a failed append is logged, the
// committed mutation stands.
func (s *seatService) recordAudit(ctx context.Context, actorID uuid.UUID, action string, targetID, orgID uuid.UUID) {
	metadata := models.JSONB{"organization_id": orgID.String()}
	if err := s.auditSvc.Record(ctx, actorID, action, targetID, metadata); err != nil {
		log.Printf("Failed to write audit entry %s for user %s: %v", action, targetID, err)
	}
}
