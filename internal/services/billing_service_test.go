package services

import (
	"context"
	"testing"
	"time"

	"investmap/internal/caching"
	"investmap/internal/models"
	"investmap/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BillingServiceTestSuite struct {
	suite.Suite
	startupsRepo *repositories.MockStartupsRepository
	orgsRepo     *repositories.MockOrganizationsRepository
	auditRepo    *repositories.MockAuditLogsRepository
	cacheSvc     *caching.MockCacheService
	service      BillingService
	ctx          context.Context
	actorID      uuid.UUID
}

func (suite *BillingServiceTestSuite) SetupTest() {
	suite.startupsRepo = &repositories.MockStartupsRepository{}
	suite.orgsRepo = &repositories.MockOrganizationsRepository{}
	suite.auditRepo = &repositories.MockAuditLogsRepository{}
	suite.cacheSvc = &caching.MockCacheService{}
	suite.service = NewBillingService(suite.startupsRepo, suite.orgsRepo, NewAuditService(suite.auditRepo), suite.cacheSvc)
	suite.ctx = context.Background()
	suite.actorID = uuid.New()
}

func (suite *BillingServiceTestSuite) expectCacheInvalidation(startupID uuid.UUID) {
	suite.cacheSvc.On("DeleteStartup", suite.ctx, startupID).Return(nil)
	suite.cacheSvc.On("InvalidateRankings", suite.ctx).Return(nil)
}

func (suite *BillingServiceTestSuite) TestSetStartupTier_EnteringUltraStampsStart() {
	startupID := uuid.New()
	suite.startupsRepo.On("GetByID", suite.ctx, startupID).
		Return(&models.Startup{ID: startupID, PricingTier: models.TierPlus}, nil)
	suite.startupsRepo.On("UpdateTier", suite.ctx, startupID, models.TierUltra,
		mock.MatchedBy(func(ts *time.Time) bool { return ts != nil })).Return(nil)
	suite.auditRepo.On("Create", suite.ctx, mock.MatchedBy(func(entry *models.AuditLog) bool {
		return entry.Action == models.ActionTierChanged &&
			entry.Metadata["from"] == models.TierPlus &&
			entry.Metadata["to"] == models.TierUltra
	})).Return(nil)
	suite.expectCacheInvalidation(startupID)

	err := suite.service.SetStartupTier(suite.ctx, startupID, models.TierUltra, suite.actorID)

	assert.NoError(suite.T(), err)
	suite.startupsRepo.AssertExpectations(suite.T())
	suite.auditRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestSetStartupTier_LeavingUltraClearsStart() {
	startupID := uuid.New()
	started := time.Now().AddDate(0, -3, 0)
	suite.startupsRepo.On("GetByID", suite.ctx, startupID).
		Return(&models.Startup{ID: startupID, PricingTier: models.TierUltra, TierStartedAt: &started}, nil)
	suite.startupsRepo.On("UpdateTier", suite.ctx, startupID, models.TierPlus, (*time.Time)(nil)).Return(nil)
	suite.auditRepo.On("Create", suite.ctx, mock.AnythingOfType("*models.AuditLog")).Return(nil)
	suite.expectCacheInvalidation(startupID)

	err := suite.service.SetStartupTier(suite.ctx, startupID, models.TierPlus, suite.actorID)

	assert.NoError(suite.T(), err)
	suite.startupsRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestSetStartupTier_SameTierIsNoOp() {
	startupID := uuid.New()
	suite.startupsRepo.On("GetByID", suite.ctx, startupID).
		Return(&models.Startup{ID: startupID, PricingTier: models.TierPlus}, nil)

	err := suite.service.SetStartupTier(suite.ctx, startupID, models.TierPlus, suite.actorID)

	assert.NoError(suite.T(), err)
	suite.startupsRepo.AssertNotCalled(suite.T(), "UpdateTier", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.auditRepo.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *BillingServiceTestSuite) TestSetStartupTier_InvalidTier() {
	err := suite.service.SetStartupTier(suite.ctx, uuid.New(), "enterprise", suite.actorID)
	assert.Error(suite.T(), err)
	suite.startupsRepo.AssertNotCalled(suite.T(), "GetByID", mock.Anything, mock.Anything)
}

func (suite *BillingServiceTestSuite) TestSetPurchasedSeats() {
	orgID := uuid.New()
	suite.orgsRepo.On("UpdatePurchasedSeats", suite.ctx, orgID, 5).Return(nil)

	assert.NoError(suite.T(), suite.service.SetPurchasedSeats(suite.ctx, orgID, 5))
	assert.Error(suite.T(), suite.service.SetPurchasedSeats(suite.ctx, orgID, -1))
	suite.orgsRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestCancelOrganizationByCustomer() {
	orgID := uuid.New()
	suite.orgsRepo.On("GetByStripeCustomerID", suite.ctx, "cus_123").
		Return(&models.InvestorOrganization{ID: orgID, PurchasedSeats: 4}, nil)
	suite.orgsRepo.On("UpdatePurchasedSeats", suite.ctx, orgID, 0).Return(nil)

	err := suite.service.CancelOrganizationByCustomer(suite.ctx, "cus_123")

	assert.NoError(suite.T(), err)
	suite.orgsRepo.AssertExpectations(suite.T())
}

func TestBillingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BillingServiceTestSuite))
}
