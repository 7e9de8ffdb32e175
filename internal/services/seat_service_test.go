package services

import (
	"context"
	"testing"

	"investmap/internal/models"
	"investmap/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockSessionMonitor stubs the session monitor for seat tests.
type MockSessionMonitor struct {
	mock.Mock
}

func (m *MockSessionMonitor) RegisterSession(ctx context.Context, userID uuid.UUID, token, ipAddress string) (*models.SessionResult, error) {
	args := m.Called(ctx, userID, token, ipAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SessionResult), args.Error(1)
}

func (m *MockSessionMonitor) ValidateSession(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	args := m.Called(ctx, userID, token)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionMonitor) InvalidateSession(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type SeatServiceTestSuite struct {
	suite.Suite
	usersRepo *repositories.MockInvestorUsersRepository
	orgsRepo  *repositories.MockOrganizationsRepository
	auditRepo *repositories.MockAuditLogsRepository
	sessions  *MockSessionMonitor
	service   SeatService
	ctx       context.Context
	orgID     uuid.UUID
	adminID   uuid.UUID
}

func (suite *SeatServiceTestSuite) SetupTest() {
	suite.usersRepo = &repositories.MockInvestorUsersRepository{}
	suite.orgsRepo = &repositories.MockOrganizationsRepository{}
	suite.auditRepo = &repositories.MockAuditLogsRepository{}
	suite.sessions = &MockSessionMonitor{}
	suite.service = NewSeatService(suite.usersRepo, suite.orgsRepo, NewAuditService(suite.auditRepo), suite.sessions)
	suite.ctx = context.Background()
	suite.orgID = uuid.New()
	suite.adminID = uuid.New()
}

func (suite *SeatServiceTestSuite) admin() *models.InvestorUser {
	return &models.InvestorUser{
		ID:             suite.adminID,
		OrganizationID: suite.orgID,
		Role:           models.RoleAdmin,
		SeatStatus:     models.SeatActive,
	}
}

func (suite *SeatServiceTestSuite) member(id uuid.UUID, seatStatus string) *models.InvestorUser {
	return &models.InvestorUser{
		ID:             id,
		OrganizationID: suite.orgID,
		Role:           models.RoleMember,
		SeatStatus:     seatStatus,
	}
}

func (suite *SeatServiceTestSuite) TestActivateSeat_Success() {
	targetID := uuid.New()
	suite.usersRepo.On("GetByID", suite.ctx, suite.adminID).Return(suite.admin(), nil)
	suite.usersRepo.On("GetByID", suite.ctx, targetID).Return(suite.member(targetID, models.SeatInactive), nil)
	suite.orgsRepo.On("GetByID", suite.ctx, suite.orgID).
		Return(&models.InvestorOrganization{ID: suite.orgID, PurchasedSeats: 2}, nil)
	suite.usersRepo.On("CountActiveSeats", suite.ctx, suite.orgID).Return(1, nil)
	suite.usersRepo.On("ActivateSeat", suite.ctx, targetID, suite.orgID).Return(true, nil)
	suite.auditRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.AuditLog")).Return(nil)

	err := suite.service.ActivateSeat(suite.ctx, suite.adminID, targetID, suite.orgID)

	assert.NoError(suite.T(), err)
	suite.usersRepo.AssertExpectations(suite.T())
	suite.auditRepo.AssertExpectations(suite.T())
}

func (suite *SeatServiceTestSuite) TestActivateSeat_NonAdminUnauthorized() {
	actorID := uuid.New()
	targetID := uuid.New()
	suite.usersRepo.On("GetByID", suite.ctx, actorID).Return(suite.member(actorID, models.SeatActive), nil)

	err := suite.service.ActivateSeat(suite.ctx, actorID, targetID, suite.orgID)

	assert.ErrorIs(suite.T(), err, ErrUnauthorized)
	// Zero mutations: the activation statement is never reached.
	suite.usersRepo.AssertNotCalled(suite.T(), "ActivateSeat", mock.Anything, mock.Anything, mock.Anything)
	suite.auditRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *SeatServiceTestSuite) TestActivateSeat_CrossOrgUnauthorized() {
	targetID := uuid.New()
	foreignAdmin := suite.admin()
	foreignAdmin.OrganizationID = uuid.New()
	suite.usersRepo.On("GetByID", suite.ctx, suite.adminID).Return(foreignAdmin, nil)

	err := suite.service.ActivateSeat(suite.ctx, suite.adminID, targetID, suite.orgID)

	assert.ErrorIs(suite.T(), err, ErrUnauthorized)
	suite.usersRepo.AssertNotCalled(suite.T(), "ActivateSeat", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SeatServiceTestSuite) TestActivateSeat_AtCapacity() {
	targetID := uuid.New()
	suite.usersRepo.On("GetByID", suite.ctx, suite.adminID).Return(suite.admin(), nil)
	suite.usersRepo.On("GetByID", suite.ctx, targetID).Return(suite.member(targetID, models.SeatInactive), nil)
	suite.orgsRepo.On("GetByID", suite.ctx, suite.orgID).
		Return(&models.InvestorOrganization{ID: suite.orgID, PurchasedSeats: 2}, nil)
	suite.usersRepo.On("CountActiveSeats", suite.ctx, suite.orgID).Return(2, nil)

	err := suite.service.ActivateSeat(suite.ctx, suite.adminID, targetID, suite.orgID)

	assert.ErrorIs(suite.T(), err, ErrSeatLimitExceeded)
	suite.usersRepo.AssertNotCalled(suite.T(), "ActivateSeat", mock.Anything, mock.Anything, mock.Anything)
	suite.auditRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *SeatServiceTestSuite) TestActivateSeat_RaceLostAtWrite() {
	// The pre-check sees capacity but a concurrent activation wins the
	// race; the conditional UPDATE affects zero rows.
	targetID := uuid.New()
	suite.usersRepo.On("GetByID", suite.ctx, suite.adminID).Return(suite.admin(), nil)
	suite.usersRepo.On("GetByID", suite.ctx, targetID).Return(suite.member(targetID, models.SeatInactive), nil)
	suite.orgsRepo.On("GetByID", suite.ctx, suite.orgID).
		Return(&models.InvestorOrganization{ID: suite.orgID, PurchasedSeats: 2}, nil)
	suite.usersRepo.On("CountActiveSeats", suite.ctx, suite.orgID).Return(1, nil)
	suite.usersRepo.On("ActivateSeat", suite.ctx, targetID, suite.orgID).Return(false, nil)

	err := suite.service.ActivateSeat(suite.ctx, suite.adminID, targetID, suite.orgID)

	assert.ErrorIs(suite.T(), err, ErrSeatLimitExceeded)
	suite.auditRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *SeatServiceTestSuite) TestActivateSeat_AlreadyActiveIsNoOp() {
	targetID := uuid.New()
	suite.usersRepo.On("GetByID", suite.ctx, suite.adminID).Return(suite.admin(), nil)
	suite.usersRepo.On("GetByID", suite.ctx, targetID).Return(suite.member(targetID, models.SeatActive), nil)

	err := suite.service.ActivateSeat(suite.ctx, suite.adminID, targetID, suite.orgID)

	assert.NoError(suite.T(), err)
	suite.usersRepo.AssertNotCalled(suite.T(), "ActivateSeat", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *SeatServiceTestSuite) TestActivateSeat_TwoSeatScenario() {
	// purchased_seats=2: A and B activate, C hits the limit.
	userA, userB, userC := uuid.New(), uuid.New(), uuid.New()

	suite.usersRepo.On("GetByID", suite.ctx, suite.adminID).Return(suite.admin(), nil)
	suite.orgsRepo.On("GetByID", suite.ctx, suite.orgID).
		Return(&models.InvestorOrganization{ID: suite.orgID, PurchasedSeats: 2}, nil)
	suite.auditRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.AuditLog")).Return(nil)

	suite.usersRepo.On("GetByID", suite.ctx, userA).Return(suite.member(userA, models.SeatInactive), nil)
	suite.usersRepo.On("CountActiveSeats", suite.ctx, suite.orgID).Return(0, nil).Once()
	suite.usersRepo.On("ActivateSeat", suite.ctx, userA, suite.orgID).Return(true, nil)
	assert.NoError(suite.T(), suite.service.ActivateSeat(suite.ctx, suite.adminID, userA, suite.orgID))

	suite.usersRepo.On("GetByID", suite.ctx, userB).Return(suite.member(userB, models.SeatInactive), nil)
	suite.usersRepo.On("CountActiveSeats", suite.ctx, suite.orgID).Return(1, nil).Once()
	suite.usersRepo.On("ActivateSeat", suite.ctx, userB, suite.orgID).Return(true, nil)
	assert.NoError(suite.T(), suite.service.ActivateSeat(suite.ctx, suite.adminID, userB, suite.orgID))

	suite.usersRepo.On("GetByID", suite.ctx, userC).Return(suite.member(userC, models.SeatInactive), nil)
	suite.usersRepo.On("CountActiveSeats", suite.ctx, suite.orgID).Return(2, nil).Once()
	err := suite.service.ActivateSeat(suite.ctx, suite.adminID, userC, suite.orgID)

	assert.ErrorIs(suite.T(), err, ErrSeatLimitExceeded)
	suite.usersRepo.AssertNotCalled(suite.T(), "ActivateSeat", suite.ctx, userC, suite.orgID)
}

func (suite *SeatServiceTestSuite) TestDeactivateSeat_InvalidatesSessions() {
	targetID := uuid.New()
	suite.usersRepo.On("GetByID", suite.ctx, suite.adminID).Return(suite.admin(), nil)
	suite.usersRepo.On("GetByID", suite.ctx, targetID).Return(suite.member(targetID, models.SeatActive), nil)
	suite.usersRepo.On("DeactivateSeat", suite.ctx, targetID, suite.orgID).Return(true, nil)
	suite.sessions.On("InvalidateSession", suite.ctx, targetID).Return(nil)
	suite.auditRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.AuditLog")).Return(nil)

	err := suite.service.DeactivateSeat(suite.ctx, suite.adminID, targetID, suite.orgID)

	assert.NoError(suite.T(), err)
	suite.sessions.AssertExpectations(suite.T())
	suite.auditRepo.AssertExpectations(suite.T())
}

func (suite *SeatServiceTestSuite) TestDeactivateSeat_AlreadyInactiveIsNoOp() {
	targetID := uuid.New()
	suite.usersRepo.On("GetByID", suite.ctx, suite.adminID).Return(suite.admin(), nil)
	suite.usersRepo.On("GetByID", suite.ctx, targetID).Return(suite.member(targetID, models.SeatInactive), nil)
	suite.usersRepo.On("DeactivateSeat", suite.ctx, targetID, suite.orgID).Return(false, nil)

	err := suite.service.DeactivateSeat(suite.ctx, suite.adminID, targetID, suite.orgID)

	assert.NoError(suite.T(), err)
	suite.sessions.AssertNotCalled(suite.T(), "InvalidateSession", mock.Anything, mock.Anything)
	suite.auditRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *SeatServiceTestSuite) TestHasAvailableSeat() {
	suite.orgsRepo.On("GetByID", suite.ctx, suite.orgID).
		Return(&models.InvestorOrganization{ID: suite.orgID, PurchasedSeats: 3}, nil)

	suite.usersRepo.On("CountActiveSeats", suite.ctx, suite.orgID).Return(2, nil).Once()
	available, err := suite.service.HasAvailableSeat(suite.ctx, suite.orgID)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), available)

	suite.usersRepo.On("CountActiveSeats", suite.ctx, suite.orgID).Return(3, nil).Once()
	available, err = suite.service.HasAvailableSeat(suite.ctx, suite.orgID)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), available)
}

func (suite *SeatServiceTestSuite) TestGetSeatUsage_NegativeAvailableSurfaces() {
	// Over-activation outside the guarded path is reported, not hidden.
	users := []*models.InvestorUser{
		suite.member(uuid.New(), models.SeatActive),
		suite.member(uuid.New(), models.SeatActive),
		suite.member(uuid.New(), models.SeatActive),
		suite.member(uuid.New(), models.SeatInactive),
	}
	suite.orgsRepo.On("GetByID", suite.ctx, suite.orgID).
		Return(&models.InvestorOrganization{ID: suite.orgID, PurchasedSeats: 2}, nil)
	suite.usersRepo.On("ListByOrganization", suite.ctx, suite.orgID).Return(users, nil)

	usage, err := suite.service.GetSeatUsage(suite.ctx, suite.orgID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, usage.Purchased)
	assert.Equal(suite.T(), 3, usage.Active)
	assert.Equal(suite.T(), -1, usage.Available)
}

func TestSeatServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SeatServiceTestSuite))
}
