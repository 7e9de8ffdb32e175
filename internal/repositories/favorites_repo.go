package repositories

import (
	"context"
	"errors"

	"investmap/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type FavoritesRepository interface {
	GetByUserAndStartup(ctx context.Context, investorUserID, startupID uuid.UUID) (*models.Favorite, error)
	Create(ctx context.Context, favorite *models.Favorite) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListStartupIDsForUser(ctx context.Context, investorUserID uuid.UUID) ([]uuid.UUID, error)
	CountForStartup(ctx context.Context, startupID uuid.UUID) (int, error)
}

type favoritesRepo struct {
	db Database
}

func NewFavoritesRepo(db Database) FavoritesRepository {
	return &favoritesRepo{db: db}
}

// GetByUserAndStartup returns nil without error when no favorite exists.
func (r *favoritesRepo) GetByUserAndStartup(ctx context.Context, investorUserID, startupID uuid.UUID) (*models.Favorite, error) {
	f := &models.Favorite{}
	query := `
		SELECT id, investor_user_id, startup_id, created_at
		FROM favorites
		WHERE investor_user_id = $1 AND startup_id = $2
	`
	err := r.db.QueryRow(ctx, query, investorUserID, startupID).Scan(&f.ID, &f.InvestorUserID, &f.StartupID, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

func (r *favoritesRepo) Create(ctx context.Context, favorite *models.Favorite) error {
	if favorite.ID == uuid.Nil {
		favorite.ID = uuid.New()
	}
	query := `
		INSERT INTO favorites (id, investor_user_id, startup_id, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (investor_user_id, startup_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, favorite.ID, favorite.InvestorUserID, favorite.StartupID)
	return err
}

func (r *favoritesRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM favorites WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	return err
}

func (r *favoritesRepo) ListStartupIDsForUser(ctx context.Context, investorUserID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT startup_id FROM favorites WHERE investor_user_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, investorUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *favoritesRepo) CountForStartup(ctx context.Context, startupID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM favorites WHERE startup_id = $1`
	err := r.db.QueryRow(ctx, query, startupID).Scan(&count)
	return count, err
}
