package api

import (
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/crypto/bcrypt"

	"vote-ledger/internal/platform/apperr"
)

const adminTokenTTL = 12 * time.Hour

type adminLoginRequest struct {
	Password string `json:"password"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// @Summary     Admin login
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request  body      adminLoginRequest  true  "Admin password"
// @Success     200      {object}  tokenResponse
// @Failure     400      {object}  map[string]string  "invalid body"
// @Failure     401      {object}  map[string]string  "invalid credentials"
// @Router      /api/v1/auth/admin [post]
func (h *Handler) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req adminLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	if err := bcrypt.CompareHashAndPassword(h.adminPasswordHash, []byte(req.Password)); err != nil {
		errorResponse(w, apperr.Unauthorized("invalid_credentials", "invalid credentials", nil))
		return
	}

	token, expires, err := h.jwtMgr.Issue(roleAdmin, roleAdmin, adminTokenTTL)
	if err != nil {
		errorResponse(w, apperr.Internal("internal_error", "could not issue token", err))
		return
	}

	slogLogger.Info("admin token issued", "expires_at", expires)
	writeJSON(w, http.StatusOK, tokenResponse{Token: token, ExpiresAt: expires})
}
