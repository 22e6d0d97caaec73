package api

import (
	"net/http"

	"github.com/garnizeh/skillswap/internal/payload"
	"github.com/garnizeh/skillswap/internal/service"
)

type AuthHandler struct {
	accounts *service.Accounts
	schemas  *payload.Registry
}

// NewAuthHandler creates a new AuthHandler with required dependencies.
func NewAuthHandler(accounts *service.Accounts, schemas *payload.Registry) *AuthHandler {
	return &AuthHandler{accounts: accounts, schemas: schemas}
}

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Success bool `json:"success"`
	*service.AuthResult
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeBody(r, h.schemas, payload.Signup, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.accounts.Signup(r.Context(), service.SignupInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, authResponse{Success: true, AuthResult: res}, http.StatusOK)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, h.schemas, payload.Login, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.accounts.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, authResponse{Success: true, AuthResult: res}, http.StatusOK)
}

// Logout only acknowledges; tokens are stateless and the client discards them.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{"success": true, "message": "logged out"}, http.StatusOK)
}
