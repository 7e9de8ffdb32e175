package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"investmap/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Startup snapshot caching
	GetStartup(ctx context.Context, startupID uuid.UUID) (*models.Startup, error)
	SetStartup(ctx context.Context, startup *models.Startup, ttl time.Duration) error
	DeleteStartup(ctx context.Context, startupID uuid.UUID) error

	// Ranked-list caching. Scores are time-dependent, so entries carry a
	// short TTL and are refreshed by the background job.
	GetRankings(ctx context.Context) ([]*models.Startup, error)
	SetRankings(ctx context.Context, ranked []*models.Startup, ttl time.Duration) error
	InvalidateRankings(ctx context.Context) error

	// Session mirror
	SetSession(ctx context.Context, tokenHash, userID string, ttl time.Duration) error
	GetSession(ctx context.Context, tokenHash string) (string, error)
	DeleteSession(ctx context.Context, tokenHash string) error

	// Login rate limiting
	IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
	IncrementRateLimit(ctx context.Context, key string, window time.Duration) error

	// Generic string operations
	SetString(ctx context.Context, key string, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	parsedAddr := addr
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		if hostPort := strings.TrimPrefix(strings.TrimPrefix(addr, "redis://"), "rediss://"); hostPort != addr {
			parsedAddr = hostPort
		}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	if pingErr := client.Ping(context.Background()).Err(); pingErr != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", pingErr, parsedAddr)
	}

	return &redisCacheService{client: client}
}

func startupKey(startupID uuid.UUID) string {
	return fmt.Sprintf("investmap:startup:%s", startupID.String())
}

const rankingsKey = "investmap:rankings"

func (r *redisCacheService) GetStartup(ctx context.Context, startupID uuid.UUID) (*models.Startup, error) {
	data, err := r.client.Get(ctx, startupKey(startupID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var startup models.Startup
	if err := json.Unmarshal(data, &startup); err != nil {
		return nil, err
	}
	return &startup, nil
}

func (r *redisCacheService) SetStartup(ctx context.Context, startup *models.Startup, ttl time.Duration) error {
	data, err := json.Marshal(startup)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, startupKey(startup.ID), data, ttl).Err()
}

func (r *redisCacheService) DeleteStartup(ctx context.Context, startupID uuid.UUID) error {
	return r.client.Del(ctx, startupKey(startupID)).Err()
}

func (r *redisCacheService) GetRankings(ctx context.Context) ([]*models.Startup, error) {
	data, err := r.client.Get(ctx, rankingsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var ranked []*models.Startup
	if err := json.Unmarshal(data, &ranked); err != nil {
		return nil, err
	}
	return ranked, nil
}

func (r *redisCacheService) SetRankings(ctx context.Context, ranked []*models.Startup, ttl time.Duration) error {
	data, err := json.Marshal(ranked)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, rankingsKey, data, ttl).Err()
}

func (r *redisCacheService) InvalidateRankings(ctx context.Context) error {
	return r.client.Del(ctx, rankingsKey).Err()
}

func (r *redisCacheService) SetSession(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	key := fmt.Sprintf("investmap:session:%s", tokenHash)
	return r.client.Set(ctx, key, userID, ttl).Err()
}

func (r *redisCacheService) GetSession(ctx context.Context, tokenHash string) (string, error) {
	key := fmt.Sprintf("investmap:session:%s", tokenHash)
	userID, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return userID, err
}

func (r *redisCacheService) DeleteSession(ctx context.Context, tokenHash string) error {
	key := fmt.Sprintf("investmap:session:%s", tokenHash)
	return r.client.Del(ctx, key).Err()
}

func (r *redisCacheService) IsRateLimited(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	fullKey := fmt.Sprintf("investmap:ratelimit:%s", key)
	count, err := r.client.Get(ctx, fullKey).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return count >= limit, nil
}

func (r *redisCacheService) IncrementRateLimit(ctx context.Context, key string, window time.Duration) error {
	fullKey := fmt.Sprintf("investmap:ratelimit:%s", key)
	pipe := r.client.TxPipeline()
	pipe.Incr(ctx, fullKey)
	pipe.Expire(ctx, fullKey, window)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *redisCacheService) SetString(ctx context.Context, key string, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
