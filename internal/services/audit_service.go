package services

import (
	"context"
	"errors"

	"investmap/internal/models"
	"investmap/internal/repositories"

	"github.com/google/uuid"
)

type AuditService interface {
	// Record appends one audit entry for a privileged state change.
	Record(ctx context.Context, actorID uuid.UUID, action string, targetID uuid.UUID, metadata models.JSONB) error

	List(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AuditLog, error)
	GetTargetHistory(ctx context.Context, targetID uuid.UUID, limit, offset int) ([]*models.AuditLog, error)
}

type auditService struct {
	auditLogsRepo repositories.AuditLogsRepository
}

func NewAuditService(auditLogsRepo repositories.AuditLogsRepository) AuditService {
	return &auditService{auditLogsRepo: auditLogsRepo}
}

func (s *auditService) Record(ctx context.Context, actorID uuid.UUID, action string, targetID uuid.UUID, metadata models.JSONB) error {
	if action == "" {
		return errors.New("action is required")
	}

	entry := &models.AuditLog{
		ID:       uuid.New(),
		ActorID:  actorID,
		Action:   action,
		TargetID: targetID,
		Metadata: metadata,
	}
	return s.auditLogsRepo.Create(ctx, entry)
}

func (s *auditService) List(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AuditLog, error) {
	if filters == nil {
		filters = &models.AuditLogFilters{Limit: 50}
	}
	if filters.Limit <= 0 || filters.Limit > 1000 {
		filters.Limit = 50
	}
	return s.auditLogsRepo.List(ctx, filters)
}

func (s *auditService) GetTargetHistory(ctx context.Context, targetID uuid.UUID, limit, offset int) ([]*models.AuditLog, error) {
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.auditLogsRepo.GetByTarget(ctx, targetID, limit, offset)
}
