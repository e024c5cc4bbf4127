package acceptance

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/digimonhq/digimon-service/internal/dto"
)

func (s *Suite) TestRegister_Success() {
	user := s.register("newuser", "newuser@example.com", "Password123")

	s.NotEmpty(user.ID)
	s.Equal("newuser", user.Username)
	s.Equal("newuser@example.com", user.Email)
	s.NotEmpty(user.CreatedAt)
	s.Nil(user.LastLoginAt)
}

func (s *Suite) TestRegister_DuplicateUsername() {
	s.register("dupuser", "first@example.com", "Password123")

	body, _ := json.Marshal(dto.RegisterRequest{
		Username: "dupuser",
		Email:    "second@example.com",
		Password: "Password123",
	})
	resp, err := http.Post(s.BaseURL+"/users/create", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *Suite) TestRegister_DuplicateEmail() {
	s.register("emailuser", "shared@example.com", "Password123")

	body, _ := json.Marshal(dto.RegisterRequest{
		Username: "otheruser",
		Email:    "shared@example.com",
		Password: "Password123",
	})
	resp, err := http.Post(s.BaseURL+"/users/create", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusConflict, resp.StatusCode)
}

func (s *Suite) TestRegister_InvalidEmail() {
	body, _ := json.Marshal(dto.RegisterRequest{
		Username: "someuser",
		Email:    "not-an-email",
		Password: "Password123",
	})
	resp, err := http.Post(s.BaseURL+"/users/create", "application/json", bytes.NewBuffer(body))
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *Suite) TestGetMe() {
	user := s.register("meuser", "meuser@example.com", "Password123")
	token, resp := s.login("meuser", "Password123")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	meResp := s.authedRequest("GET", "/users/me", token.AccessToken, nil)
	defer meResp.Body.Close()

	s.Equal(http.StatusOK, meResp.StatusCode)

	var me dto.UserResponse
	s.Require().NoError(json.NewDecoder(meResp.Body).Decode(&me))
	s.Equal(user.ID, me.ID)
	s.Equal("meuser", me.Username)
	s.NotNil(me.LastLoginAt)
}

func (s *Suite) TestGetMe_NoToken() {
	resp, err := http.Get(s.BaseURL + "/users/me")
	s.Require().NoError(err)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestGetMe_InvalidToken() {
	resp := s.authedRequest("GET", "/users/me", "invalid-token", nil)
	defer resp.Body.Close()

	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}

func (s *Suite) TestUpdateUser() {
	user := s.register("upduser", "upduser@example.com", "Password123")
	token, resp := s.login("upduser", "Password123")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	first := "Agu"
	last := "Mon"
	body, _ := json.Marshal(dto.UpdateUserRequest{FirstName: &first, LastName: &last})

	updResp := s.authedRequest("PUT", "/users/"+user.ID+"/update", token.AccessToken, body)
	defer updResp.Body.Close()

	s.Equal(http.StatusOK, updResp.StatusCode)

	var updated dto.UserResponse
	s.Require().NoError(json.NewDecoder(updResp.Body).Decode(&updated))
	s.Equal("Agu", updated.FirstName)
	s.Equal("Mon", updated.LastName)
}

func (s *Suite) TestUpdateUser_OtherUserForbidden() {
	other := s.register("victim", "victim@example.com", "Password123")
	s.register("attacker", "attacker@example.com", "Password123")
	token, resp := s.login("attacker", "Password123")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	first := "Hax"
	body, _ := json.Marshal(dto.UpdateUserRequest{FirstName: &first})

	updResp := s.authedRequest("PUT", "/users/"+other.ID+"/update", token.AccessToken, body)
	defer updResp.Body.Close()

	s.Equal(http.StatusForbidden, updResp.StatusCode)
}

func (s *Suite) TestChangePassword() {
	user := s.register("pwuser", "pwuser@example.com", "OldPassword1")
	token, resp := s.login("pwuser", "OldPassword1")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	body, _ := json.Marshal(dto.ChangePasswordRequest{
		CurrentPassword: "OldPassword1",
		NewPassword:     "NewPassword1",
	})
	chResp := s.authedRequest("PUT", "/users/"+user.ID+"/change_password", token.AccessToken, body)
	defer chResp.Body.Close()

	s.Equal(http.StatusOK, chResp.StatusCode)

	_, oldResp := s.login("pwuser", "OldPassword1")
	s.Equal(http.StatusUnauthorized, oldResp.StatusCode)

	_, newResp := s.login("pwuser", "NewPassword1")
	s.Equal(http.StatusOK, newResp.StatusCode)
}

func (s *Suite) TestChangePassword_WrongCurrent() {
	user := s.register("pwuser2", "pwuser2@example.com", "Password123")
	token, resp := s.login("pwuser2", "Password123")
	s.Require().Equal(http.StatusOK, resp.StatusCode)

	body, _ := json.Marshal(dto.ChangePasswordRequest{
		CurrentPassword: "WrongPassword1",
		NewPassword:     "NewPassword1",
	})
	chResp := s.authedRequest("PUT", "/users/"+user.ID+"/change_password", token.AccessToken, body)
	defer chResp.Body.Close()

	s.Equal(http.StatusUnauthorized, chResp.StatusCode)
}
