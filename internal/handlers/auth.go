package handlers

import (
	"encoding/json"
	"net/http"

	"carmarket/internal/middleware"
	"carmarket/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles account and session HTTP requests
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// RegisterRequest is the body of POST /api/v1/users.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginRequest is the body of POST /api/v1/sessions.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SessionResponse carries the signed-in identity and its token.
type SessionResponse struct {
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Register handles POST /api/v1/users
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := Validate.Struct(req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, token, err := h.authService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to register user")
		respondServiceError(w, err)
		return
	}

	log.Info().Str("uid", sess.UID).Msg("User registered")

	respondJSON(w, http.StatusCreated, SessionResponse{
		UID:   sess.UID,
		Name:  sess.Name,
		Email: sess.Email,
		Token: token,
	})
}

// Login handles POST /api/v1/sessions
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := Validate.Struct(req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	sess, token, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, SessionResponse{
		UID:   sess.UID,
		Name:  sess.Name,
		Email: sess.Email,
		Token: token,
	})
}

// Logout handles DELETE /api/v1/sessions
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token, ok := middleware.BearerToken(r)
	if !ok {
		respondError(w, "Authorization header required", http.StatusUnauthorized)
		return
	}

	claims, err := h.authService.Claims(token)
	if err != nil {
		respondError(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	if err := h.authService.Logout(r.Context(), claims); err != nil {
		log.Error().Err(err).Str("uid", claims.UID).Msg("Failed to revoke session")
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
