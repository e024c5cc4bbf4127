package domain

import "time"

// TokenType is the bearer scheme label carried by every issued token pair.
const TokenType = "Bearer"

// TokenClaims represents the claims carried by a signed access token.
type TokenClaims struct {
	UserID string `json:"user_id"`
	Exp    int64  `json:"exp"`
	Iat    int64  `json:"iat"`
}

// Token is the artifact returned on successful authentication. It is never
// persisted: both strings are independently verifiable by signature alone.
// Invariant: ExpiresAt == IssuedAt + ExpiresIn minutes, and IssuedAt equals
// the last-login timestamp written for the subject user.
type Token struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type"`
	Scope        string    `json:"scope"`
	ExpiresIn    int       `json:"expires_in"` // minutes
	ExpiresAt    time.Time `json:"expires_at"`
	IssuedAt     time.Time `json:"issued_at"`
	UserID       string    `json:"user_id"`
}

// IsExpired checks if the token is expired
func (tc TokenClaims) IsExpired() bool {
	return time.Now().Unix() > tc.Exp
}
