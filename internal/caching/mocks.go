package caching

import (
	"context"
	"time"

	"investmap/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockCacheService is the testify mock used by service tests.
type MockCacheService struct {
	mock.Mock
}

func (m *MockCacheService) GetStartup(ctx context.Context, startupID uuid.UUID) (*models.Startup, error) {
	args := m.Called(ctx, startupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Startup), args.Error(1)
}

func (m *MockCacheService) SetStartup(ctx context.Context, startup *models.Startup, ttl time.Duration) error {
	args := m.Called(ctx, startup, ttl)
	return args.Error(0)
}

func (m *MockCacheService) DeleteStartup(ctx context.Context, startupID uuid.UUID) error {
	args := m.Called(ctx, startupID)
	return args.Error(0)
}

func (m *MockCacheService) GetRankings(ctx context.Context) ([]*models.Startup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Startup), args.Error(1)
}

func (m *MockCacheService) SetRankings(ctx context.Context, ranked []*models.Startup, ttl time.Duration) error {
	args := m.Called(ctx, ranked, ttl)
	return args.Error(0)
}

func (m *MockCacheService) InvalidateRankings(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCacheService) SetSession(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenHash, userID, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetSession(ctx context.Context, tokenHash string) (string, error) {
	args := m.Called(ctx, tokenHash)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) DeleteSession(ctx context.Context, tokenHash string) error {
	args := m.Called(ctx, tokenHash)
	return args.Error(0)
}

func (m *MockCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockCacheService) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	args := m.Called(ctx, key, window)
	return args.Error(0)
}

func (m *MockCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	args := m.Called(ctx, key, value, ttl)
	return args.Error(0)
}

func (m *MockCacheService) GetString(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheService) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
