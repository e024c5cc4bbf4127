package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/digimonhq/digimon-service/internal/domain"
	"github.com/digimonhq/digimon-service/internal/dto"
	"github.com/digimonhq/digimon-service/internal/repository"
	"github.com/digimonhq/digimon-service/internal/utils"
)

// Validation and conflict errors surfaced to handlers.
var (
	ErrUsernameTaken  = errors.New("username already exists")
	ErrEmailTaken     = errors.New("email already exists")
	ErrInvalidProfile = errors.New("invalid profile data")
)

// userService implements UserService interface
type userService struct {
	userRepo   repository.UserRepository
	bcryptCost int
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, bcryptCost int) UserService {
	return &userService{
		userRepo:   userRepo,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new account. Username and email are both unique; a clash
// on either surfaces as a conflict.
func (s *userService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	username := utils.SanitizeUsername(req.Username)
	email := utils.SanitizeEmail(req.Email)

	if !utils.ValidateUsername(username) {
		return nil, fmt.Errorf("%w: username must be 3-32 characters of letters, digits, underscore, dot or hyphen", ErrInvalidProfile)
	}

	if !utils.ValidateEmail(email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrInvalidProfile)
	}

	if !utils.ValidatePassword(req.Password) {
		return nil, fmt.Errorf("%w: password must be at least 8 characters long and contain uppercase, lowercase, and number", ErrInvalidProfile)
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: passwordHash,
		IsActive:     true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return toUserResponse(user), nil
}

// GetUser gets user information
func (s *userService) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return toUserResponse(user), nil
}

// UpdateUser applies a typed profile update. Only the fields present in the
// request are written.
func (s *userService) UpdateUser(ctx context.Context, userID string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Email != nil {
		email := utils.SanitizeEmail(*req.Email)
		if !utils.ValidateEmail(email) {
			return nil, fmt.Errorf("%w: invalid email format", ErrInvalidProfile)
		}
		user.Email = email
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user.UpdatedAt = time.Now()
	return toUserResponse(user), nil
}

// ChangePassword verifies the current password and stores a new salted hash.
// The plaintext is never logged or persisted.
func (s *userService) ChangePassword(ctx context.Context, userID string, req *dto.ChangePasswordRequest) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !utils.CheckPasswordHash(req.CurrentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	if !utils.ValidatePassword(req.NewPassword) {
		return fmt.Errorf("%w: password must be at least 8 characters long and contain uppercase, lowercase, and number", ErrInvalidProfile)
	}

	passwordHash, err := utils.HashPassword(req.NewPassword, s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, passwordHash); err != nil {
		return fmt.Errorf("failed to store password: %w", err)
	}

	return nil
}

func toUserResponse(user *domain.User) *dto.UserResponse {
	response := &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}

	if user.LastLoginAt != nil {
		lastLogin := user.LastLoginAt.Format(time.RFC3339)
		response.LastLoginAt = &lastLogin
	}

	return response
}
