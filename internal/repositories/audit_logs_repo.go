package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"investmap/internal/models"

	"github.com/google/uuid"
)

type AuditLogsRepository interface {
	// Create appends a new audit log entry. Entries are never updated or
	// deleted.
	Create(ctx context.Context, entry *models.AuditLog) error

	List(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AuditLog, error)
	GetByTarget(ctx context.Context, targetID uuid.UUID, limit, offset int) ([]*models.AuditLog, error)
}

type auditLogsRepo struct {
	db Database
}

func NewAuditLogsRepo(db Database) AuditLogsRepository {
	return &auditLogsRepo{db: db}
}

func (r *auditLogsRepo) Create(ctx context.Context, entry *models.AuditLog) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	var metadataBytes []byte
	if entry.Metadata != nil {
		var err error
		metadataBytes, err = json.Marshal(entry.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata: %w", err)
		}
	}

	query := `
		INSERT INTO audit_logs (id, actor_id, action, target_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, entry.ID, entry.ActorID, entry.Action, entry.TargetID, metadataBytes, entry.CreatedAt)
	return err
}

func (r *auditLogsRepo) List(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AuditLog, error) {
	var conditions []string
	var args []interface{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.ActorID != nil {
		conditions = append(conditions, "actor_id = "+arg(*filters.ActorID))
	}
	if filters.TargetID != nil {
		conditions = append(conditions, "target_id = "+arg(*filters.TargetID))
	}
	if filters.Action != nil {
		conditions = append(conditions, "action = "+arg(*filters.Action))
	}
	if filters.StartDate != nil {
		conditions = append(conditions, "created_at >= "+arg(*filters.StartDate))
	}
	if filters.EndDate != nil {
		conditions = append(conditions, "created_at <= "+arg(*filters.EndDate))
	}

	query := `SELECT id, actor_id, action, target_id, metadata, created_at FROM audit_logs`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	limit := filters.Limit
	if limit <= 0 || limit > 1000 {
		limit = 50
	}
	offset := filters.Offset
	if offset < 0 {
		offset = 0
	}
	query += " ORDER BY created_at DESC LIMIT " + arg(limit) + " OFFSET " + arg(offset)

	return r.queryEntries(ctx, query, args...)
}

func (r *auditLogsRepo) GetByTarget(ctx context.Context, targetID uuid.UUID, limit, offset int) ([]*models.AuditLog, error) {
	query := `
		SELECT id, actor_id, action, target_id, metadata, created_at
		FROM audit_logs
		WHERE target_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	return r.queryEntries(ctx, query, targetID, limit, offset)
}

func (r *auditLogsRepo) queryEntries(ctx context.Context, query string, args ...interface{}) ([]*models.AuditLog, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.AuditLog
	for rows.Next() {
		entry := &models.AuditLog{}
		var metadataBytes []byte
		if err := rows.Scan(&entry.ID, &entry.ActorID, &entry.Action, &entry.TargetID, &metadataBytes, &entry.CreatedAt); err != nil {
			return nil, err
		}
		if len(metadataBytes) > 0 {
			if err := json.Unmarshal(metadataBytes, &entry.Metadata); err != nil {
				return nil, fmt.Errorf("failed to unmarshal metadata: %w", err)
			}
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
