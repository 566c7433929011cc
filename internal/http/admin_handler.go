package api

import (
	"encoding/json"
	"net/http"

	"vote-ledger/internal/domain/admin"
	"vote-ledger/internal/platform/apperr"
)

type addCandidateRequest struct {
	Name string `json:"name"`
}

// @Summary     Add a candidate
// @Tags        admin
// @Security    BearerAuth
// @Accept      json
// @Produce     json
// @Param       request  body      addCandidateRequest  true  "Candidate"
// @Success     201      {object}  candidate.Candidate
// @Failure     400      {object}  map[string]string  "blank name"
// @Failure     401      {object}  map[string]string  "unauthorized"
// @Failure     403      {object}  map[string]string  "forbidden"
// @Failure     409      {object}  map[string]string  "retries exhausted"
// @Failure     503      {object}  map[string]string  "store unavailable"
// @Router      /api/v1/candidates [post]
func (h *Handler) handleAddCandidate(w http.ResponseWriter, r *http.Request) {
	var req addCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	c, err := h.admin.AddCandidate(r.Context(), req.Name)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, c)
}

// @Summary     Reset all votes and candidates
// @Description Destructive. A vote racing the reset is rejected rather than applied to the empty ledger.
// @Tags        admin
// @Security    BearerAuth
// @Produce     json
// @Success     200  {object}  admin.Tally
// @Failure     401  {object}  map[string]string  "unauthorized"
// @Failure     403  {object}  map[string]string  "forbidden"
// @Failure     503  {object}  map[string]string  "store unavailable"
// @Router      /api/v1/reset [post]
func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	snap, err := h.admin.ResetAll(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}

	slogLogger.Info("ledger reset requested", "subject", subjectFromCtx(r), "version", snap.Version)
	writeJSON(w, http.StatusOK, admin.TallyOf(snap))
}
