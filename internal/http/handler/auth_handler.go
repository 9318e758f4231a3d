package handler

import (
	"net/http"

	"github.com/taxdesk/backoffice-api/internal/auth"
	"github.com/taxdesk/backoffice-api/internal/domain"
	"github.com/taxdesk/backoffice-api/internal/service"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Login godoc
// @Summary Authenticate a staff member
// @Description Exchanges email and password for a bearer token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body domain.LoginRequest true "Login credentials"
// @Success 200 {object} domain.LoginResponse
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	resp, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Me godoc
// @Summary Get the signed-in staff account
// @Tags Auth
// @Produce json
// @Success 200 {object} domain.Staff
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "no session")
		return
	}
	staff, err := h.authService.Me(r.Context(), userCtx.UserID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, staff)
}

// UpdateMe godoc
// @Summary Update the signed-in staff account
// @Description Edits the caller's own contact details. Role and status are
// @Description only editable by admins through the staff endpoints.
// @Tags Auth
// @Accept json
// @Produce json
// @Param profile body domain.ProfileUpdateRequest true "Profile fields"
// @Success 200 {object} domain.Staff
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Failure 409 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/me [put]
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "no session")
		return
	}
	var req domain.ProfileUpdateRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	staff, err := h.authService.UpdateProfile(r.Context(), userCtx.UserID, &req)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, staff)
}

// ChangePassword godoc
// @Summary Change the signed-in staff member's password
// @Tags Auth
// @Accept json
// @Produce json
// @Param passwords body domain.PasswordChangeRequest true "Current and new password"
// @Success 204 "password changed"
// @Failure 400 {object} domain.APIError
// @Failure 401 {object} domain.APIError
// @Security BearerAuth
// @Router /auth/me/password [put]
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userCtx, ok := auth.FromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "no session")
		return
	}
	var req domain.PasswordChangeRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	if err := h.authService.ChangePassword(r.Context(), userCtx.UserID, &req); err != nil {
		handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
