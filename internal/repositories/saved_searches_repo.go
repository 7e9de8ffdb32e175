package repositories

import (
	"context"
	"encoding/json"
	"fmt"

	"investmap/internal/models"

	"github.com/google/uuid"
)

type SavedSearchesRepository interface {
	Create(ctx context.Context, search *models.SavedSearch) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.SavedSearch, error)
	ListForUser(ctx context.Context, investorUserID uuid.UUID) ([]*models.SavedSearch, error)
	ListAlertEnabled(ctx context.Context) ([]*models.SavedSearch, error)
	Update(ctx context.Context, search *models.SavedSearch) error
	Delete(ctx context.Context, id, investorUserID uuid.UUID) error
}

type savedSearchesRepo struct {
	db Database
}

func NewSavedSearchesRepo(db Database) SavedSearchesRepository {
	return &savedSearchesRepo{db: db}
}

func (r *savedSearchesRepo) Create(ctx context.Context, search *models.SavedSearch) error {
	if search.ID == uuid.Nil {
		search.ID = uuid.New()
	}
	filtersBytes, err := json.Marshal(search.Filters)
	if err != nil {
		return fmt.Errorf("failed to marshal filters: %w", err)
	}
	query := `
		INSERT INTO saved_searches (id, investor_user_id, label, filters, alerts_enabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err = r.db.Exec(ctx, query, search.ID, search.InvestorUserID, search.Label, filtersBytes, search.AlertsEnabled)
	return err
}

func (r *savedSearchesRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.SavedSearch, error) {
	query := `
		SELECT id, investor_user_id, label, filters, alerts_enabled, created_at, updated_at
		FROM saved_searches
		WHERE id = $1
	`
	return r.scanOne(ctx, query, id)
}

func (r *savedSearchesRepo) ListForUser(ctx context.Context, investorUserID uuid.UUID) ([]*models.SavedSearch, error) {
	query := `
		SELECT id, investor_user_id, label, filters, alerts_enabled, created_at, updated_at
		FROM saved_searches
		WHERE investor_user_id = $1
		ORDER BY created_at DESC
	`
	return r.scanMany(ctx, query, investorUserID)
}

func (r *savedSearchesRepo) ListAlertEnabled(ctx context.Context) ([]*models.SavedSearch, error) {
	query := `
		SELECT id, investor_user_id, label, filters, alerts_enabled, created_at, updated_at
		FROM saved_searches
		WHERE alerts_enabled = true
	`
	return r.scanMany(ctx, query)
}

func (r *savedSearchesRepo) Update(ctx context.Context, search *models.SavedSearch) error {
	filtersBytes, err := json.Marshal(search.Filters)
	if err != nil {
		return fmt.Errorf("failed to marshal filters: %w", err)
	}
	query := `
		UPDATE saved_searches
		SET label = $1, filters = $2, alerts_enabled = $3, updated_at = NOW()
		WHERE id = $4 AND investor_user_id = $5
	`
	_, err = r.db.Exec(ctx, query, search.Label, filtersBytes, search.AlertsEnabled, search.ID, search.InvestorUserID)
	return err
}

func (r *savedSearchesRepo) Delete(ctx context.Context, id, investorUserID uuid.UUID) error {
	query := `DELETE FROM saved_searches WHERE id = $1 AND investor_user_id = $2`
	_, err := r.db.Exec(ctx, query, id, investorUserID)
	return err
}

func (r *savedSearchesRepo) scanOne(ctx context.Context, query string, args ...interface{}) (*models.SavedSearch, error) {
	s := &models.SavedSearch{}
	var filtersBytes []byte
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&s.ID, &s.InvestorUserID, &s.Label, &filtersBytes, &s.AlertsEnabled, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(filtersBytes) > 0 {
		if err := json.Unmarshal(filtersBytes, &s.Filters); err != nil {
			return nil, fmt.Errorf("failed to unmarshal filters: %w", err)
		}
	}
	return s, nil
}

func (r *savedSearchesRepo) scanMany(ctx context.Context, query string, args ...interface{}) ([]*models.SavedSearch, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var searches []*models.SavedSearch
	for rows.Next() {
		s := &models.SavedSearch{}
		var filtersBytes []byte
		if err := rows.Scan(&s.ID, &s.InvestorUserID, &s.Label, &filtersBytes, &s.AlertsEnabled, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if len(filtersBytes) > 0 {
			if err := json.Unmarshal(filtersBytes, &s.Filters); err != nil {
				return nil, fmt.Errorf("failed to unmarshal filters: %w", err)
			}
		}
		searches = append(searches, s)
	}
	return searches, rows.Err()
}
