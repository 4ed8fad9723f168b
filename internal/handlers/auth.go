// internal/handlers/auth.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ammerola/roadie-bag/internal/auth"
	"github.com/ammerola/roadie-bag/internal/core/ports"
)

// AuthHandler handles account and session requests
type AuthHandler struct {
	service ports.AuthService
	logger  *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service ports.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With(slog.String("handler", "auth")),
	}
}

// SignupRequest is the body of POST /api/v1/auth/signup
type SignupRequest struct {
	Username             string `json:"username"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// LoginRequest is the body of POST /api/v1/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondMessage(ctx, w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.service.Signup(ctx, req.Username, req.Password, req.PasswordConfirmation)
	if err != nil {
		respondError(ctx, w, h.logger, err)
		return
	}

	respondJSON(ctx, w, h.logger, http.StatusCreated, user)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondMessage(ctx, w, h.logger, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.service.Login(ctx, req.Username, req.Password)
	if err != nil {
		respondError(ctx, w, h.logger, err)
		return
	}

	respondJSON(ctx, w, h.logger, http.StatusOK, session)
}

// Logout handles POST /api/v1/auth/logout; it succeeds without a session too
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if token := auth.TokenFromContext(ctx); token != "" {
		if err := h.service.Logout(ctx, token); err != nil {
			respondError(ctx, w, h.logger, err)
			return
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	respondJSON(ctx, w, h.logger, http.StatusOK, auth.UserFromContext(ctx))
}
