package service

import (
	"context"

	"github.com/digimonhq/digimon-service/internal/domain"
	"github.com/digimonhq/digimon-service/internal/dto"
)

// AuthService defines methods for credential authentication and token issuance
type AuthService interface {
	Authenticate(ctx context.Context, identifier, password string) (*domain.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.Token, error)
	ValidateToken(ctx context.Context, token string) (*domain.TokenClaims, error)
}

// UserService defines methods for account management
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	GetUser(ctx context.Context, userID string) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error
}
