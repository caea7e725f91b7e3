package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"tourneyslots/internal/delivery/http/helpers"
	"tourneyslots/internal/domain"
)

// writeDomainError maps a service error onto the response envelope. Business
// rule rejections are 400 with a distinguishing error code; the status codes
// stay coarse and the code field carries the reason. Unmapped errors are
// logged and surfaced as 500.
func writeDomainError(logger *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "forbidden")
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrWindowClosed):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeWindowClosed, "registration window is closed")
	case errors.Is(err, domain.ErrMatchInactive):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeMatchInactive, "match is not active")
	case errors.Is(err, domain.ErrDuplicateRegistration):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeDuplicate, "already registered for this match")
	case errors.Is(err, domain.ErrMatchFull), errors.Is(err, domain.ErrNoSeatAvailable):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeMatchFull, "match is full")
	case errors.Is(err, domain.ErrInsufficientFunds):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeInsufficientFunds, "insufficient wallet balance")
	case errors.Is(err, domain.ErrAlreadyCanceled):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeAlreadyCanceled, "registration is already canceled")
	case errors.Is(err, domain.ErrSignatureMismatch):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeSignatureMismatch, "payment signature verification failed")
	case errors.Is(err, domain.ErrOrderAlreadyPaid):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeOrderAlreadyPaid, "payment order is already confirmed")
	case errors.Is(err, domain.ErrContention):
		// Retryable: the store could not serialize the attempt, not a caller mistake.
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeContention, "too many concurrent attempts, try again")
	default:
		logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}
