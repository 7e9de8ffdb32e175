package services

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"investmap/internal/caching"
	"investmap/internal/models"
	"investmap/internal/repositories"

	"github.com/google/uuid"
)

// Number of recent active sessions inspected for concurrent-IP abuse.
const sessionLookback = 5

// Distinct-IP sessions at or above this count flag the login for review.
const concurrentIPThreshold = 2

const sessionTTL = 24 * time.Hour

// SessionMonitor detects concurrent-session abuse and manages the
// single-active-session policy. Flagging never blocks a login; it is a
// signal for human review, not a lockout.
type SessionMonitor interface {
	RegisterSession(ctx context.Context, userID uuid.UUID, token, ipAddress string) (*models.SessionResult, error)
	ValidateSession(ctx context.Context, userID uuid.UUID, token string) (bool, error)
	InvalidateSession(ctx context.Context, userID uuid.UUID) error
}

type sessionMonitor struct {
	usersRepo    repositories.InvestorUsersRepository
	sessionsRepo repositories.SessionsRepository
	auditSvc     AuditService
	cacheSvc     caching.CacheService
}

func NewSessionMonitor(
	usersRepo repositories.InvestorUsersRepository,
	sessionsRepo repositories.SessionsRepository,
	auditSvc AuditService,
	cacheSvc caching.CacheService,
) SessionMonitor {
	return &sessionMonitor{
		usersRepo:    usersRepo,
		sessionsRepo: sessionsRepo,
		auditSvc:     auditSvc,
		cacheSvc:     cacheSvc,
	}
}

// HashSessionToken computes the stable one-way hash stored in place of the
// raw token. Raw tokens are never persisted.
func HashSessionToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func (m *sessionMonitor) RegisterSession(ctx context.Context, userID uuid.UUID, token, ipAddress string) (*models.SessionResult, error) {
	tokenHash := HashSessionToken(token)

	recent, err := m.sessionsRepo.ListRecentActive(ctx, userID, sessionLookback)
	if err != nil {
		return nil, fmt.Errorf("failed to load recent sessions: %w", err)
	}

	otherIPCount := 0
	for _, s := range recent {
		if s.IPAddress != ipAddress {
			otherIPCount++
		}
	}

	if otherIPCount >= concurrentIPThreshold {
		metadata := models.JSONB{
			"ip_address":       ipAddress,
			"concurrent_count": otherIPCount,
		}
		if err := m.auditSvc.Record(ctx, userID, models.ActionConcurrentSessionFlagged, userID, metadata); err != nil {
			log.Printf("Failed to write concurrent-session audit entry for user %s: %v", userID, err)
		}
		return &models.SessionResult{Success: true, Flagged: true}, nil
	}

	// Single-active-session policy: prior sessions give way to the new one.
	if err := m.sessionsRepo.DeactivateAllForUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to invalidate prior sessions: %w", err)
	}

	session := &models.InvestorSession{
		ID:        uuid.New(),
		UserID:    userID,
		TokenHash: tokenHash,
		IPAddress: ipAddress,
		Active:    true,
	}
	if err := m.sessionsRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := m.usersRepo.RecordLogin(ctx, userID, tokenHash); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	if err := m.cacheSvc.SetSession(ctx, tokenHash, userID.String(), sessionTTL); err != nil {
		log.Printf("Failed to mirror session to cache for user %s: %v", userID, err)
	}

	return &models.SessionResult{Success: true, Flagged: false}, nil
}

// ValidateSession requires both an active seat and a matching token hash.
// A valid token on a deactivated seat does not authenticate.
func (m *sessionMonitor) ValidateSession(ctx context.Context, userID uuid.UUID, token string) (bool, error) {
	user, err := m.usersRepo.GetByID(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to load user: %w", err)
	}
	if user.SeatStatus != models.SeatActive {
		return false, nil
	}
	if user.SessionTokenHash == nil {
		return false, nil
	}

	tokenHash := HashSessionToken(token)
	match := subtle.ConstantTimeCompare([]byte(*user.SessionTokenHash), []byte(tokenHash)) == 1
	return match, nil
}

func (m *sessionMonitor) InvalidateSession(ctx context.Context, userID uuid.UUID) error {
	user, err := m.usersRepo.GetByID(ctx, userID)
	if err == nil && user.SessionTokenHash != nil {
		if cacheErr := m.cacheSvc.DeleteSession(ctx, *user.SessionTokenHash); cacheErr != nil {
			log.Printf("Failed to drop cached session for user %s: %v", userID, cacheErr)
		}
	}

	if err := m.sessionsRepo.DeactivateAllForUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to deactivate sessions: %w", err)
	}
	if err := m.usersRepo.UpdateSessionToken(ctx, userID, nil); err != nil {
		return fmt.Errorf("failed to clear session token: %w", err)
	}
	return nil
}
