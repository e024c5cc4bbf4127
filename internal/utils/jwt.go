package utils

import (
	"fmt"
	"time"

	"github.com/digimonhq/digimon-service/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// JWTManager issues and verifies HS256-signed tokens. Verification is purely
// signature-based; no server-side state is consulted.
type JWTManager struct {
	secret             []byte
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

// NewJWTManager creates a new JWT manager
func NewJWTManager(secret string, accessTokenExpiry, refreshTokenExpiry time.Duration) *JWTManager {
	return &JWTManager{
		secret:             []byte(secret),
		accessTokenExpiry:  accessTokenExpiry,
		refreshTokenExpiry: refreshTokenExpiry,
	}
}

// IssueAccessToken signs an access token for the subject. The caller supplies
// the issue instant so it can be kept identical to other timestamps recorded
// for the same event.
func (j *JWTManager) IssueAccessToken(userID string, issuedAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"iat":  issuedAt.Unix(),
		"exp":  issuedAt.Add(j.accessTokenExpiry).Unix(),
		"type": "access",
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}

	return tokenString, nil
}

// IssueRefreshToken signs a refresh token for the subject.
func (j *JWTManager) IssueRefreshToken(userID string, issuedAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"iat":  issuedAt.Unix(),
		"exp":  issuedAt.Add(j.refreshTokenExpiry).Unix(),
		"type": "refresh",
		"jti":  uuid.New().String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return tokenString, nil
}

// ValidateAccessToken verifies an access token and returns its claims.
func (j *JWTManager) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	claims, err := j.parse(tokenString, "access")
	if err != nil {
		return nil, err
	}

	userID, ok := claims["sub"].(string)
	if !ok {
		return nil, fmt.Errorf("invalid sub in token")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid exp in token")
	}

	iat, ok := claims["iat"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid iat in token")
	}

	tokenClaims := &domain.TokenClaims{
		UserID: userID,
		Exp:    int64(exp),
		Iat:    int64(iat),
	}

	if tokenClaims.IsExpired() {
		return nil, fmt.Errorf("token is expired")
	}

	return tokenClaims, nil
}

// ValidateRefreshToken verifies a refresh token and returns the subject user ID.
func (j *JWTManager) ValidateRefreshToken(tokenString string) (string, error) {
	claims, err := j.parse(tokenString, "refresh")
	if err != nil {
		return "", err
	}

	userID, ok := claims["sub"].(string)
	if !ok {
		return "", fmt.Errorf("invalid sub in token")
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return "", fmt.Errorf("invalid exp in token")
	}

	if time.Now().Unix() > int64(exp) {
		return "", fmt.Errorf("token is expired")
	}

	return userID, nil
}

func (j *JWTManager) parse(tokenString, wantType string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}

	if claims["type"] != wantType {
		return nil, fmt.Errorf("invalid token type")
	}

	return claims, nil
}

// AccessTokenExpiry returns the configured access token lifetime.
func (j *JWTManager) AccessTokenExpiry() time.Duration {
	return j.accessTokenExpiry
}
