package repositories

import (
	"context"

	"investmap/internal/models"

	"github.com/google/uuid"
)

type InvestorUsersRepository interface {
	Create(ctx context.Context, user *models.InvestorUser) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.InvestorUser, error)
	GetByEmail(ctx context.Context, email string) (*models.InvestorUser, error)
	ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*models.InvestorUser, error)
	CountActiveSeats(ctx context.Context, orgID uuid.UUID) (int, error)

	// ActivateSeat transitions the user to active only if the organization
	// still has capacity at write time. The capacity re-check runs inside
	// the UPDATE statement so two racing activations cannot both commit
	// past the purchased-seat limit. Returns false when the write was
	// rejected (no capacity, wrong organization, or unknown user).
	ActivateSeat(ctx context.Context, userID, orgID uuid.UUID) (bool, error)

	// DeactivateSeat sets seat_status to inactive and clears the stored
	// session token hash in the same statement, so deactivation always
	// invalidates any live session.
	DeactivateSeat(ctx context.Context, userID, orgID uuid.UUID) (bool, error)

	UpdateSessionToken(ctx context.Context, userID uuid.UUID, tokenHash *string) error
	RecordLogin(ctx context.Context, userID uuid.UUID, tokenHash string) error
}

type investorUsersRepo struct {
	db Database
}

func NewInvestorUsersRepo(db Database) InvestorUsersRepository {
	return &investorUsersRepo{db: db}
}

const investorUserColumns = `id, organization_id, email, password_hash, role, seat_status, session_token_hash, last_login_at, created_at, updated_at`

func scanInvestorUser(row interface{ Scan(dest ...interface{}) error }) (*models.InvestorUser, error) {
	u := &models.InvestorUser{}
	err := row.Scan(
		&u.ID, &u.OrganizationID, &u.Email, &u.PasswordHash, &u.Role,
		&u.SeatStatus, &u.SessionTokenHash, &u.LastLoginAt, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *investorUsersRepo) Create(ctx context.Context, user *models.InvestorUser) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	query := `
		INSERT INTO investor_users (id, organization_id, email, password_hash, role, seat_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, user.ID, user.OrganizationID, user.Email, user.PasswordHash, user.Role, user.SeatStatus)
	return err
}

func (r *investorUsersRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InvestorUser, error) {
	query := `SELECT ` + investorUserColumns + ` FROM investor_users WHERE id = $1`
	return scanInvestorUser(r.db.QueryRow(ctx, query, id))
}

func (r *investorUsersRepo) GetByEmail(ctx context.Context, email string) (*models.InvestorUser, error) {
	query := `SELECT ` + investorUserColumns + ` FROM investor_users WHERE email = $1`
	return scanInvestorUser(r.db.QueryRow(ctx, query, email))
}

func (r *investorUsersRepo) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*models.InvestorUser, error) {
	query := `SELECT ` + investorUserColumns + ` FROM investor_users WHERE organization_id = $1 ORDER BY created_at`
	rows, err := r.db.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*models.InvestorUser
	for rows.Next() {
		u, err := scanInvestorUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *investorUsersRepo) CountActiveSeats(ctx context.Context, orgID uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM investor_users WHERE organization_id = $1 AND seat_status = 'active'`
	err := r.db.QueryRow(ctx, query, orgID).Scan(&count)
	return count, err
}

func (r *investorUsersRepo) ActivateSeat(ctx context.Context, userID, orgID uuid.UUID) (bool, error) {
	// The seat-limit invariant is enforced here, not in the caller's
	// pre-check: the active count is re-validated inside the statement.
	query := `
		UPDATE investor_users
		SET seat_status = 'active', updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND seat_status <> 'active'
		  AND (SELECT COUNT(*) FROM investor_users WHERE organization_id = $2 AND seat_status = 'active')
		      < (SELECT purchased_seats FROM investor_organizations WHERE id = $2)
	`
	tag, err := r.db.Exec(ctx, query, userID, orgID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *investorUsersRepo) DeactivateSeat(ctx context.Context, userID, orgID uuid.UUID) (bool, error) {
	query := `
		UPDATE investor_users
		SET seat_status = 'inactive', session_token_hash = NULL, updated_at = NOW()
		WHERE id = $1 AND organization_id = $2
	`
	tag, err := r.db.Exec(ctx, query, userID, orgID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *investorUsersRepo) UpdateSessionToken(ctx context.Context, userID uuid.UUID, tokenHash *string) error {
	query := `UPDATE investor_users SET session_token_hash = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, tokenHash, userID)
	return err
}

func (r *investorUsersRepo) RecordLogin(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	query := `UPDATE investor_users SET session_token_hash = $1, last_login_at = NOW(), updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, tokenHash, userID)
	return err
}
