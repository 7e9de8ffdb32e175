package repositories

import (
	"context"

	"investmap/internal/models"

	"github.com/google/uuid"
)

type SessionsRepository interface {
	Create(ctx context.Context, session *models.InvestorSession) error
	ListRecentActive(ctx context.Context, userID uuid.UUID, limit int) ([]*models.InvestorSession, error)
	DeactivateAllForUser(ctx context.Context, userID uuid.UUID) error
	DeleteInactiveOlderThan(ctx context.Context, days int) (int64, error)
}

type sessionsRepo struct {
	db Database
}

func NewSessionsRepo(db Database) SessionsRepository {
	return &sessionsRepo{db: db}
}

func (r *sessionsRepo) Create(ctx context.Context, session *models.InvestorSession) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	query := `
		INSERT INTO investor_sessions (id, user_id, token_hash, ip_address, active, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`
	_, err := r.db.Exec(ctx, query, session.ID, session.UserID, session.TokenHash, session.IPAddress, session.Active)
	return err
}

func (r *sessionsRepo) ListRecentActive(ctx context.Context, userID uuid.UUID, limit int) ([]*models.InvestorSession, error) {
	query := `
		SELECT id, user_id, token_hash, ip_address, active, created_at
		FROM investor_sessions
		WHERE user_id = $1 AND active = true
		ORDER BY created_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*models.InvestorSession
	for rows.Next() {
		s := &models.InvestorSession{}
		if err := rows.Scan(&s.ID, &s.UserID, &s.TokenHash, &s.IPAddress, &s.Active, &s.CreatedAt); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

func (r *sessionsRepo) DeactivateAllForUser(ctx context.Context, userID uuid.UUID) error {
	query := `UPDATE investor_sessions SET active = false WHERE user_id = $1 AND active = true`
	_, err := r.db.Exec(ctx, query, userID)
	return err
}

func (r *sessionsRepo) DeleteInactiveOlderThan(ctx context.Context, days int) (int64, error) {
	query := `DELETE FROM investor_sessions WHERE active = false AND created_at < NOW() - ($1 || ' days')::interval`
	tag, err := r.db.Exec(ctx, query, days)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
