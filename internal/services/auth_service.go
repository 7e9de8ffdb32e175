package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"investmap/internal/caching"
	"investmap/internal/models"
	"investmap/internal/repositories"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	loginRateLimit  = 10
	loginRateWindow = 15 * time.Minute
	tokenTTL        = 24 * time.Hour
)

// LoginResult carries the issued token plus the session-monitor outcome.
// Flagged logins still succeed; the flag is for downstream review.
type LoginResult struct {
	Token   string              `json:"token"`
	User    *models.InvestorUser `json:"user"`
	Flagged bool                `json:"flagged"`
}

type AuthService interface {
	Login(ctx context.Context, email, password, ipAddress string) (*LoginResult, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	Signup(ctx context.Context, orgName, email, password string, seats int) (*models.InvestorUser, error)
}

type authService struct {
	usersRepo repositories.InvestorUsersRepository
	orgsRepo  repositories.OrganizationsRepository
	sessions  SessionMonitor
	cacheSvc  caching.CacheService
	jwtSecret []byte
}

func NewAuthService(
	usersRepo repositories.InvestorUsersRepository,
	orgsRepo repositories.OrganizationsRepository,
	sessions SessionMonitor,
	cacheSvc caching.CacheService,
	jwtSecret string,
) AuthService {
	return &authService{
		usersRepo: usersRepo,
		orgsRepo:  orgsRepo,
		sessions:  sessions,
		cacheSvc:  cacheSvc,
		jwtSecret: []byte(jwtSecret),
	}
}

// Login authenticates the user, issues a JWT, and registers the session
// with the concurrent-session monitor. The raw token is handed to the
// caller once and only its hash is stored.
func (s *authService) Login(ctx context.Context, email, password, ipAddress string) (*LoginResult, error) {
	rateKey := fmt.Sprintf("login:%s", ipAddress)
	limited, err := s.cacheSvc.IsRateLimited(ctx, rateKey, loginRateLimit, loginRateWindow)
	if err != nil {
		log.Printf("Rate limit check failed for %s: %v", ipAddress, err)
	}
	if limited {
		return nil, ErrRateLimited
	}
	if err := s.cacheSvc.IncrementRateLimit(ctx, rateKey, loginRateWindow); err != nil {
		log.Printf("Rate limit increment failed for %s: %v", ipAddress, err)
	}

	user, err := s.usersRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if user.SeatStatus != models.SeatActive {
		return nil, ErrSeatNotActive
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	result, err := s.sessions.RegisterSession(ctx, user.ID, token, ipAddress)
	if err != nil {
		return nil, fmt.Errorf("failed to register session: %w", err)
	}

	return &LoginResult{Token: token, User: user, Flagged: result.Flagged}, nil
}

func (s *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.sessions.InvalidateSession(ctx, userID)
}

// Signup creates an organization with zero purchased seats and its first
// user as an inactive admin. Seats arrive via billing; activation goes
// through the seat service.
func (s *authService) Signup(ctx context.Context, orgName, email, password string, seats int) (*models.InvestorUser, error) {
	if orgName == "" || email == "" {
		return nil, fmt.Errorf("organization name and email are required")
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	org := &models.InvestorOrganization{
		ID:             uuid.New(),
		Name:           orgName,
		PurchasedSeats: seats,
	}
	if err := s.orgsRepo.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	user := &models.InvestorUser{
		ID:             uuid.New(),
		OrganizationID: org.ID,
		Email:          email,
		PasswordHash:   string(hash),
		Role:           models.RoleAdmin,
		SeatStatus:     models.SeatInactive,
	}
	if err := s.usersRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *authService) issueToken(user *models.InvestorUser) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    "investmap",
		Subject:   user.ID.String(),
		Audience:  jwt.ClaimStrings{"investmap-api"},
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
