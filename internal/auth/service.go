package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/usss-rp/portal/internal/metrics"
	"github.com/usss-rp/portal/internal/models"
	"github.com/usss-rp/portal/pkg/logger"
)

// Login attempt results for metrics.
const (
	loginResultSuccess = "success"
	loginResultFailure = "failure"
)

const defaultRankID = 1

// UserStore is the subset of user storage the auth service needs.
type UserStore interface {
	Create(user *models.User) error
	GetByID(id string) (*models.User, error)
	GetByStaticID(staticID string) (*models.User, error)
}

// LoginInput carries login credentials.
type LoginInput struct {
	StaticID string `json:"staticId" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterInput carries a new member registration.
type RegisterInput struct {
	StaticID string `json:"staticId" binding:"required"`
	Nickname string `json:"nickname" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Session is an issued token together with its user.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Service implements login, registration, and logout.
type Service struct {
	users    UserStore
	issuer   *TokenIssuer
	denylist *Denylist
	log      *logger.Logger
}

// NewService creates a new auth service.
func NewService(users UserStore, issuer *TokenIssuer, denylist *Denylist, log *logger.Logger) *Service {
	return &Service{
		users:    users,
		issuer:   issuer,
		denylist: denylist,
		log:      log,
	}
}

// Login checks credentials and issues a session token. Bad credentials
// come back as a validation error without revealing which part failed.
func (s *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	user, err := s.users.GetByStaticID(input.StaticID)
	if err != nil {
		metrics.RecordLoginAttempt(loginResultFailure)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", models.ErrValidation)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !CheckPassword(user.Password, input.Password) {
		metrics.RecordLoginAttempt(loginResultFailure)
		s.log.Warn().Str("static_id", input.StaticID).Msg("Login rejected")
		return nil, fmt.Errorf("%w: invalid credentials", models.ErrValidation)
	}

	token, err := s.issuer.Issue(user.ID, user.StaticID, user.Nickname, user.Role)
	if err != nil {
		return nil, err
	}

	metrics.RecordLoginAttempt(loginResultSuccess)
	s.log.Info().Str("user_id", user.ID).Str("static_id", user.StaticID).Msg("User logged in")

	return &Session{Token: token, User: user}, nil
}

// Register creates a new member with the default rank and role and logs
// them in.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	staticID := strings.TrimSpace(input.StaticID)
	nickname := strings.TrimSpace(input.Nickname)
	if staticID == "" || nickname == "" {
		return nil, fmt.Errorf("%w: static id and nickname are required", models.ErrValidation)
	}
	if len(input.Password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", models.ErrValidation)
	}

	if _, err := s.users.GetByStaticID(staticID); err == nil {
		return nil, fmt.Errorf("%w: static id %s is already registered", models.ErrValidation, staticID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check static id: %w", err)
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       uuid.NewString(),
		StaticID: staticID,
		Nickname: nickname,
		Password: hash,
		Role:     models.RoleUser,
		RankID:   defaultRankID,
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issuer.Issue(user.ID, user.StaticID, user.Nickname, user.Role)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Str("static_id", user.StaticID).Msg("User registered")

	return &Session{Token: token, User: user}, nil
}

// Logout revokes the presented token until its natural expiry.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := s.issuer.Validate(token)
	if err != nil {
		// An invalid or expired token is already logged out.
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.denylist.Revoke(ctx, token, ttl); err != nil {
		return err
	}
	s.log.Info().Str("user_id", claims.Subject).Msg("User logged out")
	return nil
}
