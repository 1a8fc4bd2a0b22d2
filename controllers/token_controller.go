package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/HadarPadael/facyBook-Server/models"
	"github.com/HadarPadael/facyBook-Server/services"
	"github.com/HadarPadael/facyBook-Server/utils"
)

// TokenController handles login: credentials in, bearer token out.
type TokenController struct {
	Users  *services.UserService
	Tokens *services.TokenService
}

// NewTokenController creates a new instance of TokenController
func NewTokenController(users *services.UserService, tokens *services.TokenService) *TokenController {
	return &TokenController{Users: users, Tokens: tokens}
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ProcessLogin handles POST /api/tokens. Bad username and bad password both
// answer 404 so the response does not reveal which half was wrong.
func (c *TokenController) ProcessLogin(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	user, err := c.Users.GetUserByUsername(r.Context(), payload.Username)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			respondError(w, http.StatusNotFound, "Invalid credentials")
			return
		}
		respondServiceError(w, err)
		return
	}
	if !utils.CheckPassword(payload.Password, user.Password) {
		respondError(w, http.StatusNotFound, "Invalid credentials")
		return
	}

	token, err := c.Tokens.Issue(r.Context(), user.Nickname)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loginResponse{Token: token, User: user})
}
