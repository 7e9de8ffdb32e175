package repositories

import (
	"context"

	"investmap/internal/models"

	"github.com/google/uuid"
)

type NotificationsRepository interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListForUser(ctx context.Context, investorUserID uuid.UUID, limit, offset int) ([]*models.Notification, error)
	MarkRead(ctx context.Context, id, investorUserID uuid.UUID) error
	Exists(ctx context.Context, investorUserID, startupID uuid.UUID) (bool, error)
}

type notificationsRepo struct {
	db Database
}

func NewNotificationsRepo(db Database) NotificationsRepository {
	return &notificationsRepo{db: db}
}

func (r *notificationsRepo) Create(ctx context.Context, notification *models.Notification) error {
	if notification.ID == uuid.Nil {
		notification.ID = uuid.New()
	}
	query := `
		INSERT INTO notifications (id, investor_user_id, title, body, startup_id, read, created_at)
		VALUES ($1, $2, $3, $4, $5, false, NOW())
	`
	_, err := r.db.Exec(ctx, query, notification.ID, notification.InvestorUserID, notification.Title, notification.Body, notification.StartupID)
	return err
}

func (r *notificationsRepo) ListForUser(ctx context.Context, investorUserID uuid.UUID, limit, offset int) ([]*models.Notification, error) {
	query := `
		SELECT id, investor_user_id, title, body, startup_id, read, created_at
		FROM notifications
		WHERE investor_user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.db.Query(ctx, query, investorUserID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*models.Notification
	for rows.Next() {
		n := &models.Notification{}
		if err := rows.Scan(&n.ID, &n.InvestorUserID, &n.Title, &n.Body, &n.StartupID, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

func (r *notificationsRepo) MarkRead(ctx context.Context, id, investorUserID uuid.UUID) error {
	query := `UPDATE notifications SET read = true WHERE id = $1 AND investor_user_id = $2`
	_, err := r.db.Exec(ctx, query, id, investorUserID)
	return err
}

// Exists reports whether the user was already notified about the startup,
// so repeated matcher runs do not duplicate alerts.
func (r *notificationsRepo) Exists(ctx context.Context, investorUserID, startupID uuid.UUID) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM notifications WHERE investor_user_id = $1 AND startup_id = $2`
	err := r.db.QueryRow(ctx, query, investorUserID, startupID).Scan(&count)
	return count > 0, err
}
