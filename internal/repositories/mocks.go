package repositories

import (
	"context"
	"time"

	"investmap/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Testify mocks for the repository interfaces, shared by service and job
// tests.

type MockInvestorUsersRepository struct {
	mock.Mock
}

func (m *MockInvestorUsersRepository) Create(ctx context.Context, user *models.InvestorUser) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockInvestorUsersRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.InvestorUser, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InvestorUser), args.Error(1)
}

func (m *MockInvestorUsersRepository) GetByEmail(ctx context.Context, email string) (*models.InvestorUser, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InvestorUser), args.Error(1)
}

func (m *MockInvestorUsersRepository) ListByOrganization(ctx context.Context, orgID uuid.UUID) ([]*models.InvestorUser, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InvestorUser), args.Error(1)
}

func (m *MockInvestorUsersRepository) CountActiveSeats(ctx context.Context, orgID uuid.UUID) (int, error) {
	args := m.Called(ctx, orgID)
	return args.Int(0), args.Error(1)
}

func (m *MockInvestorUsersRepository) ActivateSeat(ctx context.Context, userID, orgID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, orgID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvestorUsersRepository) DeactivateSeat(ctx context.Context, userID, orgID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID, orgID)
	return args.Bool(0), args.Error(1)
}

func (m *MockInvestorUsersRepository) UpdateSessionToken(ctx context.Context, userID uuid.UUID, tokenHash *string) error {
	args := m.Called(ctx, userID, tokenHash)
	return args.Error(0)
}

func (m *MockInvestorUsersRepository) RecordLogin(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	args := m.Called(ctx, userID, tokenHash)
	return args.Error(0)
}

type MockOrganizationsRepository struct {
	mock.Mock
}

func (m *MockOrganizationsRepository) Create(ctx context.Context, org *models.InvestorOrganization) error {
	args := m.Called(ctx, org)
	return args.Error(0)
}

func (m *MockOrganizationsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.InvestorOrganization, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InvestorOrganization), args.Error(1)
}

func (m *MockOrganizationsRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*models.InvestorOrganization, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.InvestorOrganization), args.Error(1)
}

func (m *MockOrganizationsRepository) UpdatePurchasedSeats(ctx context.Context, id uuid.UUID, seats int) error {
	args := m.Called(ctx, id, seats)
	return args.Error(0)
}

func (m *MockOrganizationsRepository) SetStripeIDs(ctx context.Context, id uuid.UUID, customerID, subscriptionID string) error {
	args := m.Called(ctx, id, customerID, subscriptionID)
	return args.Error(0)
}

type MockSessionsRepository struct {
	mock.Mock
}

func (m *MockSessionsRepository) Create(ctx context.Context, session *models.InvestorSession) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *MockSessionsRepository) ListRecentActive(ctx context.Context, userID uuid.UUID, limit int) ([]*models.InvestorSession, error) {
	args := m.Called(ctx, userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.InvestorSession), args.Error(1)
}

func (m *MockSessionsRepository) DeactivateAllForUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockSessionsRepository) DeleteInactiveOlderThan(ctx context.Context, days int) (int64, error) {
	args := m.Called(ctx, days)
	return args.Get(0).(int64), args.Error(1)
}

type MockAuditLogsRepository struct {
	mock.Mock
}

func (m *MockAuditLogsRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditLogsRepository) List(ctx context.Context, filters *models.AuditLogFilters) ([]*models.AuditLog, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

func (m *MockAuditLogsRepository) GetByTarget(ctx context.Context, targetID uuid.UUID, limit, offset int) ([]*models.AuditLog, error) {
	args := m.Called(ctx, targetID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.AuditLog), args.Error(1)
}

type MockStartupsRepository struct {
	mock.Mock
}

func (m *MockStartupsRepository) Create(ctx context.Context, startup *models.Startup) error {
	args := m.Called(ctx, startup)
	return args.Error(0)
}

func (m *MockStartupsRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Startup, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Startup), args.Error(1)
}

func (m *MockStartupsRepository) Update(ctx context.Context, startup *models.Startup) error {
	args := m.Called(ctx, startup)
	return args.Error(0)
}

func (m *MockStartupsRepository) List(ctx context.Context, limit, offset int) ([]*models.Startup, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Startup), args.Error(1)
}

func (m *MockStartupsRepository) Search(ctx context.Context, filters *models.StartupFilters) ([]*models.Startup, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Startup), args.Error(1)
}

func (m *MockStartupsRepository) UpdateTier(ctx context.Context, id uuid.UUID, tier string, tierStartedAt *time.Time) error {
	args := m.Called(ctx, id, tier, tierStartedAt)
	return args.Error(0)
}

func (m *MockStartupsRepository) SetPitchDeckURL(ctx context.Context, id uuid.UUID, url string) error {
	args := m.Called(ctx, id, url)
	return args.Error(0)
}

func (m *MockStartupsRepository) SetHeartCount(ctx context.Context, id uuid.UUID, count int) error {
	args := m.Called(ctx, id, count)
	return args.Error(0)
}

func (m *MockStartupsRepository) CreatedSince(ctx context.Context, since time.Time) ([]*models.Startup, error) {
	args := m.Called(ctx, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Startup), args.Error(1)
}

type MockFavoritesRepository struct {
	mock.Mock
}

func (m *MockFavoritesRepository) GetByUserAndStartup(ctx context.Context, investorUserID, startupID uuid.UUID) (*models.Favorite, error) {
	args := m.Called(ctx, investorUserID, startupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Favorite), args.Error(1)
}

func (m *MockFavoritesRepository) Create(ctx context.Context, favorite *models.Favorite) error {
	args := m.Called(ctx, favorite)
	return args.Error(0)
}

func (m *MockFavoritesRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFavoritesRepository) ListStartupIDsForUser(ctx context.Context, investorUserID uuid.UUID) ([]uuid.UUID, error) {
	args := m.Called(ctx, investorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockFavoritesRepository) CountForStartup(ctx context.Context, startupID uuid.UUID) (int, error) {
	args := m.Called(ctx, startupID)
	return args.Int(0), args.Error(1)
}

type MockSavedSearchesRepository struct {
	mock.Mock
}

func (m *MockSavedSearchesRepository) Create(ctx context.Context, search *models.SavedSearch) error {
	args := m.Called(ctx, search)
	return args.Error(0)
}

func (m *MockSavedSearchesRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.SavedSearch, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SavedSearch), args.Error(1)
}

func (m *MockSavedSearchesRepository) ListForUser(ctx context.Context, investorUserID uuid.UUID) ([]*models.SavedSearch, error) {
	args := m.Called(ctx, investorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SavedSearch), args.Error(1)
}

func (m *MockSavedSearchesRepository) ListAlertEnabled(ctx context.Context) ([]*models.SavedSearch, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.SavedSearch), args.Error(1)
}

func (m *MockSavedSearchesRepository) Update(ctx context.Context, search *models.SavedSearch) error {
	args := m.Called(ctx, search)
	return args.Error(0)
}

func (m *MockSavedSearchesRepository) Delete(ctx context.Context, id, investorUserID uuid.UUID) error {
	args := m.Called(ctx, id, investorUserID)
	return args.Error(0)
}

type MockNotificationsRepository struct {
	mock.Mock
}

func (m *MockNotificationsRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationsRepository) ListForUser(ctx context.Context, investorUserID uuid.UUID, limit, offset int) ([]*models.Notification, error) {
	args := m.Called(ctx, investorUserID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Notification), args.Error(1)
}

func (m *MockNotificationsRepository) MarkRead(ctx context.Context, id, investorUserID uuid.UUID) error {
	args := m.Called(ctx, id, investorUserID)
	return args.Error(0)
}

func (m *MockNotificationsRepository) Exists(ctx context.Context, investorUserID, startupID uuid.UUID) (bool, error) {
	args := m.Called(ctx, investorUserID, startupID)
	return args.Bool(0), args.Error(1)
}
