package acceptance

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/digimonhq/digimon-service/internal/dto"
)

func (s *Suite) TestToken_ByUsername() {
	user := s.register("alice", "alice@example.com", "Password123")

	token, resp := s.login("alice", "Password123")
	s.Equal(http.StatusOK, resp.StatusCode)

	s.NotEmpty(token.AccessToken)
	s.NotEmpty(token.RefreshToken)
	s.Equal("Bearer", token.TokenType)
	s.Equal(user.ID, token.UserID)
	s.Equal(30, token.ExpiresIn)
	s.True(token.IssuedAt.Add(30*time.Minute).Equal(token.ExpiresAt))
}

func (s *Suite) TestToken_ByEmail() {
	user := s.register("bob", "bob@example.com", "Password123")

	token, resp := s.login("bob@example.com", "Password123")
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal(user.ID, token.UserID)
	s.NotEmpty(token.AccessToken)
}

func (s *Suite) TestToken_FormEncoded() {
	s.register("carol", "carol@example.com", "Password123")

	form := url.Values{}
	form.Set("username", "carol")
	form.Set("password", "Password123")

	resp, err := http.Post(
		s.BaseURL+"/token",
		"application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()),
	)
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusOK, resp.StatusCode)

	var token tokenResponse
	s.Require().NoError(json.NewDecoder(resp.Body).Decode(&token))
	s.Equal("Bearer", token.TokenType)
}

func (s *Suite) TestToken_RecordsLastLogin() {
	user := s.register("dave", "dave@example.com", "Password123")

	token, resp := s.login("dave", "Password123")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	var lastLogin time.Time
	err := s.Postgres.DB.QueryRow(
		"SELECT last_login_at FROM users WHERE id = $1", user.ID,
	).Scan(&lastLogin)
	s.Require().NoError(err)

	s.True(lastLogin.Equal(token.IssuedAt), "last_login_at must match issued_at")
}

func (s *Suite) TestToken_WrongPassword() {
	s.register("erin", "erin@example.com", "Password123")

	_, resp := s.login("erin", "WrongPassword1")
	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	var lastLogin *time.Time
	err := s.Postgres.DB.QueryRow(
		"SELECT last_login_at FROM users WHERE username = $1", "erin",
	).Scan(&lastLogin)
	s.Require().NoError(err)
	s.Nil(lastLogin, "failed login must not touch last_login_at")
}

func (s *Suite) TestToken_FailuresIndistinguishable() {
	s.register("frank", "frank@example.com", "Password123")

	wrongPassBody := s.loginRawBody("frank", "WrongPassword1")
	unknownUserBody := s.loginRawBody("nobody", "WrongPassword1")

	s.Equal(wrongPassBody, unknownUserBody,
		"wrong password and unknown user must produce identical responses")
}

func (s *Suite) loginRawBody(identifier, password string) string {
	body, _ := json.Marshal(dto.LoginRequest{
		Identifier: identifier,
		Password:   password,
	})

	resp, err := http.Post(s.BaseURL+"/token", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	return string(raw)
}

func (s *Suite) TestToken_MissingFields() {
	body, _ := json.Marshal(map[string]string{"username": "alice"})

	resp, err := http.Post(s.BaseURL+"/token", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestRefresh_Success() {
	user := s.register("grace", "grace@example.com", "Password123")
	token, resp := s.login("grace", "Password123")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	body, _ := json.Marshal(dto.RefreshRequest{RefreshToken: token.RefreshToken})
	refreshResp, err := http.Post(s.BaseURL+"/token/refresh", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer refreshResp.Body.Close()

	s.Equal(http.StatusOK, refreshResp.StatusCode)

	var refreshed tokenResponse
	s.Require().NoError(json.NewDecoder(refreshResp.Body).Decode(&refreshed))
	s.NotEmpty(refreshed.AccessToken)
	s.Equal("Bearer", refreshed.TokenType)
	s.Equal(user.ID, refreshed.UserID)
}

func (s *Suite) TestRefresh_RejectsAccessToken() {
	s.register("heidi", "heidi@example.com", "Password123")
	token, resp := s.login("heidi", "Password123")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	body, _ := json.Marshal(dto.RefreshRequest{RefreshToken: token.AccessToken})
	refreshResp, err := http.Post(s.BaseURL+"/token/refresh", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer refreshResp.Body.Close()

	s.Equal(http.StatusUnauthorized, refreshResp.StatusCode)
}

func (s *Suite) TestRefresh_GarbageToken() {
	body, _ := json.Marshal(dto.RefreshRequest{RefreshToken: "not-a-token"})
	resp, err := http.Post(s.BaseURL+"/token/refresh", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
