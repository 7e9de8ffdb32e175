package jobs

import (
	"context"
	"testing"
	"time"

	"investmap/internal/models"
	"investmap/internal/repositories"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockAlertsService struct {
	mock.Mock
}

func (m *mockAlertsService) MatchStartup(search *models.SavedSearch, startup *models.Startup) bool {
	args := m.Called(search, startup)
	return args.Bool(0)
}

func (m *mockAlertsService) NotifyMatches(ctx context.Context, startups []*models.Startup) (int, error) {
	args := m.Called(ctx, startups)
	return args.Int(0), args.Error(1)
}

func TestAlertMatchJob_NotifiesRecentListings(t *testing.T) {
	startupsRepo := &repositories.MockStartupsRepository{}
	alertsSvc := &mockAlertsService{}
	job := NewAlertMatchJob(startupsRepo, alertsSvc, 24*time.Hour)
	ctx := context.Background()

	recent := []*models.Startup{{ID: uuid.New(), PricingTier: models.TierPlus}}
	startupsRepo.On("CreatedSince", ctx, mock.AnythingOfType("time.Time")).Return(recent, nil)
	alertsSvc.On("NotifyMatches", ctx, recent).Return(2, nil)

	err := job.Run(ctx)

	assert.NoError(t, err)
	alertsSvc.AssertExpectations(t)
}

func TestAlertMatchJob_NoRecentListings(t *testing.T) {
	startupsRepo := &repositories.MockStartupsRepository{}
	alertsSvc := &mockAlertsService{}
	job := NewAlertMatchJob(startupsRepo, alertsSvc, time.Hour)
	ctx := context.Background()

	startupsRepo.On("CreatedSince", ctx, mock.AnythingOfType("time.Time")).
		Return([]*models.Startup{}, nil)

	err := job.Run(ctx)

	assert.NoError(t, err)
	alertsSvc.AssertNotCalled(t, "NotifyMatches", mock.Anything, mock.Anything)
}

func TestAlertMatchJob_PropagatesLoadError(t *testing.T) {
	startupsRepo := &repositories.MockStartupsRepository{}
	alertsSvc := &mockAlertsService{}
	job := NewAlertMatchJob(startupsRepo, alertsSvc, time.Hour)
	ctx := context.Background()

	startupsRepo.On("CreatedSince", ctx, mock.AnythingOfType("time.Time")).
		Return(nil, assert.AnError)

	err := job.Run(ctx)

	assert.Error(t, err)
}
