package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-that-is-at-least-32-characters-long"

func newTestManager() *JWTManager {
	return NewJWTManager(testSecret, 30*time.Minute, 7*24*time.Hour)
}

func TestIssueAndValidateAccessToken(t *testing.T) {
	m := newTestManager()
	issuedAt := time.Now()

	token, err := m.IssueAccessToken("user-1", issuedAt)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)

	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, issuedAt.Unix(), claims.Iat)
	assert.Equal(t, issuedAt.Add(30*time.Minute).Unix(), claims.Exp)
}

func TestIssueAndValidateRefreshToken(t *testing.T) {
	m := newTestManager()

	token, err := m.IssueRefreshToken("user-1", time.Now())
	require.NoError(t, err)

	userID, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestValidateAccessTokenRejectsRefreshToken(t *testing.T) {
	m := newTestManager()

	refresh, err := m.IssueRefreshToken("user-1", time.Now())
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)
}

func TestValidateRefreshTokenRejectsAccessToken(t *testing.T) {
	m := newTestManager()

	access, err := m.IssueAccessToken("user-1", time.Now())
	require.NoError(t, err)

	_, err = m.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestValidateAccessTokenExpired(t *testing.T) {
	m := newTestManager()

	token, err := m.IssueAccessToken("user-1", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessTokenWrongSecret(t *testing.T) {
	m := newTestManager()
	other := NewJWTManager("another-secret-key-that-is-also-32-characters!!", 30*time.Minute, 7*24*time.Hour)

	token, err := m.IssueAccessToken("user-1", time.Now())
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestValidateAccessTokenGarbage(t *testing.T) {
	m := newTestManager()

	_, err := m.ValidateAccessToken("not.a.token")
	assert.Error(t, err)
}
