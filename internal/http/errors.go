package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"vote-ledger/internal/domain/ledger"
	"vote-ledger/internal/platform/apperr"
)

func errorResponse(w http.ResponseWriter, err error) {
	appErr := mapError(err)
	if appErr.Retryable() && w.Header().Get("Retry-After") == "" {
		w.Header().Set("Retry-After", "1")
	}
	if appErr.StatusCode() >= http.StatusInternalServerError && appErr.Err != nil {
		slogLogger.Error("request failed", "code", appErr.Code, "err", appErr.Err)
	}
	writeJSON(w, appErr.StatusCode(), map[string]string{
		"error":   appErr.Code,
		"message": appErr.Message,
	})
}

func mapError(err error) *apperr.AppError {
	if err == nil {
		return apperr.Internal("internal_error", "internal server error", nil)
	}

	switch {
	case errors.Is(err, ledger.ErrValidation):
		return apperr.BadRequest("validation_error", validationMessage(err), err)
	case errors.Is(err, ledger.ErrNotFound):
		return apperr.NotFound("candidate_not_found", "candidate not found, refresh the candidate list", err)
	case errors.Is(err, ledger.ErrAlreadyVoted):
		return apperr.Conflict("already_voted", "voter has already cast a vote", err)
	case errors.Is(err, ledger.ErrConflict):
		return apperr.Conflict("conflict", "ledger is busy, try again", err)
	case errors.Is(err, ledger.ErrStoreUnavailable):
		return apperr.Unavailable("store_unavailable", "store unavailable, try again", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apperr.Unavailable("timeout", "request timed out, try again", err)
	default:
		return apperr.FromError(err)
	}
}

// validationMessage strips the sentinel prefix so clients see only the
// offending field, e.g. "voter id is required".
func validationMessage(err error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, ledger.ErrValidation.Error()+": "); ok && rest != "" {
		return rest
	}
	return msg
}
