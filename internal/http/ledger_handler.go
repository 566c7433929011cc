package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"vote-ledger/internal/domain/admin"
	"vote-ledger/internal/platform/apperr"
)

type castVoteRequest struct {
	VoterID     string `json:"voterId"`
	CandidateID string `json:"candidateId"`
}

type voterStatusResponse struct {
	VoterID  string `json:"voterId"`
	HasVoted bool   `json:"hasVoted"`
}

// @Summary     Cast a vote
// @Tags        votes
// @Accept      json
// @Produce     json
// @Param       request  body      castVoteRequest  true  "Vote payload"
// @Success     201      {object}  admin.Tally
// @Failure     400      {object}  map[string]string  "invalid body or blank ids"
// @Failure     404      {object}  map[string]string  "candidate not found"
// @Failure     409      {object}  map[string]string  "already voted or retries exhausted"
// @Failure     429      {object}  map[string]string  "rate limited"
// @Failure     503      {object}  map[string]string  "store unavailable"
// @Router      /api/v1/votes [post]
func (h *Handler) handleCastVote(w http.ResponseWriter, r *http.Request) {
	var req castVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, apperr.BadRequest("invalid_input", "invalid body", err))
		return
	}

	snap, err := h.ledger.CastVote(r.Context(), req.VoterID, req.CandidateID)
	if err != nil {
		errorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, admin.TallyOf(snap))
}

// @Summary     Current tally
// @Tags        votes
// @Produce     json
// @Success     200  {object}  admin.Tally
// @Failure     503  {object}  map[string]string  "store unavailable"
// @Router      /api/v1/tally [get]
func (h *Handler) handleTally(w http.ResponseWriter, r *http.Request) {
	tally, err := h.admin.CurrentTally(r.Context())
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tally)
}

// @Summary     Has a voter voted
// @Tags        votes
// @Produce     json
// @Param       voterID  path      string  true  "Voter ID"
// @Success     200      {object}  voterStatusResponse
// @Failure     400      {object}  map[string]string  "blank voter id"
// @Failure     503      {object}  map[string]string  "store unavailable"
// @Router      /api/v1/voters/{voterID} [get]
func (h *Handler) handleVoterStatus(w http.ResponseWriter, r *http.Request) {
	voterID := chi.URLParam(r, "voterID")

	voted, err := h.ledger.HasVoted(r.Context(), voterID)
	if err != nil {
		errorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, voterStatusResponse{VoterID: voterID, HasVoted: voted})
}

// @Summary     Live tally stream
// @Description Server-sent events; one "tally" event per new ledger version seen by the poller.
// @Tags        votes
// @Produce     text/event-stream
// @Success     200
// @Router      /api/v1/tally/stream [get]
func (h *Handler) handleTallyStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok || h.poller == nil {
		errorResponse(w, apperr.Internal("stream_unsupported", "streaming not supported", nil))
		return
	}

	updates, cancel := h.poller.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case snap, open := <-updates:
			if !open {
				return
			}
			data, err := json.Marshal(admin.TallyOf(snap))
			if err != nil {
				return
			}
			if _, err := fmt.Fprintf(w, "event: tally\nid: %d\ndata: %s\n\n", snap.Version, data); err != nil {
				return
			}
			flusher.Flush()
		}
	}
}
