package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/digimonhq/digimon-service/internal/domain"
	"github.com/digimonhq/digimon-service/internal/repository"
	"github.com/digimonhq/digimon-service/internal/utils"
)

// ErrInvalidCredentials is returned for every authentication failure, whether
// the identifier is unknown or the password does not verify. Callers cannot
// tell the two apart.
var ErrInvalidCredentials = errors.New("invalid username or password")

// authService implements AuthService interface
type authService struct {
	userRepo   repository.UserRepository
	jwtManager *utils.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtManager *utils.JWTManager) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtManager: jwtManager,
	}
}

// Authenticate resolves the identifier against usernames first and emails
// second, verifies the password against the stored hash and, on success,
// records the login instant and mints a token pair. The persisted last-login
// timestamp and the token's issued_at are the same value. A failed attempt
// writes nothing.
func (s *authService) Authenticate(ctx context.Context, identifier, password string) (*domain.Token, error) {
	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	// microsecond precision, the finest timestamptz can hold, so the
	// persisted value reads back equal to the token's issued_at
	now := time.Now().Truncate(time.Microsecond)
	if err := s.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLoginAt = &now

	return s.issueToken(user.ID, now)
}

// Refresh exchanges a valid refresh token for a new pair. Verification is
// stateless; only the subject lookup touches the store, and last-login is
// left untouched.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*domain.Token, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	return s.issueToken(user.ID, time.Now())
}

// ValidateToken validates an access token
func (s *authService) ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error) {
	claims, err := s.jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	return claims, nil
}

// findByIdentifier does the two-phase lookup: username first, email second,
// first match wins.
func (s *authService) findByIdentifier(ctx context.Context, identifier string) (*domain.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, utils.SanitizeUsername(identifier))
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return s.userRepo.GetByEmail(ctx, utils.SanitizeEmail(identifier))
}

func (s *authService) issueToken(userID string, issuedAt time.Time) (*domain.Token, error) {
	accessToken, err := s.jwtManager.IssueAccessToken(userID, issuedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to issue access token: %w", err)
	}

	refreshToken, err := s.jwtManager.IssueRefreshToken(userID, issuedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	expiry := s.jwtManager.AccessTokenExpiry()

	return &domain.Token{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    domain.TokenType,
		Scope:        "",
		ExpiresIn:    int(expiry.Minutes()),
		ExpiresAt:    issuedAt.Add(expiry),
		IssuedAt:     issuedAt,
		UserID:       userID,
	}, nil
}
