package repositories

import (
	"context"

	"investmap/internal/models"

	"github.com/google/uuid"
)

type OrganizationsRepository interface {
	Create(ctx context.Context, org *models.InvestorOrganization) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.InvestorOrganization, error)
	GetByStripeCustomerID(ctx context.Context, customerID string) (*models.InvestorOrganization, error)
	UpdatePurchasedSeats(ctx context.Context, id uuid.UUID, seats int) error
	SetStripeIDs(ctx context.Context, id uuid.UUID, customerID, subscriptionID string) error
}

type organizationsRepo struct {
	db Database
}

func NewOrganizationsRepo(db Database) OrganizationsRepository {
	return &organizationsRepo{db: db}
}

func (r *organizationsRepo) Create(ctx context.Context, org *models.InvestorOrganization) error {
	if org.ID == uuid.Nil {
		org.ID = uuid.New()
	}
	query := `
		INSERT INTO investor_organizations (id, name, stripe_customer_id, stripe_subscription_id, purchased_seats, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, org.ID, org.Name, org.StripeCustomerID, org.StripeSubscriptionID, org.PurchasedSeats)
	return err
}

func (r *organizationsRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.InvestorOrganization, error) {
	org := &models.InvestorOrganization{}
	query := `
		SELECT id, name, stripe_customer_id, stripe_subscription_id, purchased_seats, created_at, updated_at
		FROM investor_organizations
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&org.ID, &org.Name, &org.StripeCustomerID, &org.StripeSubscriptionID,
		&org.PurchasedSeats, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return org, nil
}

func (r *organizationsRepo) GetByStripeCustomerID(ctx context.Context, customerID string) (*models.InvestorOrganization, error) {
	org := &models.InvestorOrganization{}
	query := `
		SELECT id, name, stripe_customer_id, stripe_subscription_id, purchased_seats, created_at, updated_at
		FROM investor_organizations
		WHERE stripe_customer_id = $1
	`
	err := r.db.QueryRow(ctx, query, customerID).Scan(
		&org.ID, &org.Name, &org.StripeCustomerID, &org.StripeSubscriptionID,
		&org.PurchasedSeats, &org.CreatedAt, &org.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return org, nil
}

func (r *organizationsRepo) UpdatePurchasedSeats(ctx context.Context, id uuid.UUID, seats int) error {
	query := `UPDATE investor_organizations SET purchased_seats = $1, updated_at = NOW() WHERE id = $2`
	_, err := r.db.Exec(ctx, query, seats, id)
	return err
}

func (r *organizationsRepo) SetStripeIDs(ctx context.Context, id uuid.UUID, customerID, subscriptionID string) error {
	query := `UPDATE investor_organizations SET stripe_customer_id = $1, stripe_subscription_id = $2, updated_at = NOW() WHERE id = $3`
	_, err := r.db.Exec(ctx, query, customerID, subscriptionID, id)
	return err
}
