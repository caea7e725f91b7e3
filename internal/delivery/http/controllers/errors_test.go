package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourneyslots/internal/delivery/http/helpers"
	"tourneyslots/internal/domain"
)

func TestWriteDomainError(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid input", domain.ErrInvalidInput, http.StatusBadRequest, helpers.ErrCodeBadRequest},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, helpers.ErrCodeForbidden},
		{"not found", domain.ErrNotFound, http.StatusNotFound, helpers.ErrCodeNotFound},
		{"window closed", domain.ErrWindowClosed, http.StatusBadRequest, helpers.ErrCodeWindowClosed},
		{"match inactive", domain.ErrMatchInactive, http.StatusBadRequest, helpers.ErrCodeMatchInactive},
		{"duplicate registration", domain.ErrDuplicateRegistration, http.StatusBadRequest, helpers.ErrCodeDuplicate},
		{"match full", domain.ErrMatchFull, http.StatusBadRequest, helpers.ErrCodeMatchFull},
		{"no seat available", domain.ErrNoSeatAvailable, http.StatusBadRequest, helpers.ErrCodeMatchFull},
		{"insufficient funds", domain.ErrInsufficientFunds, http.StatusBadRequest, helpers.ErrCodeInsufficientFunds},
		{"already canceled", domain.ErrAlreadyCanceled, http.StatusBadRequest, helpers.ErrCodeAlreadyCanceled},
		{"signature mismatch", domain.ErrSignatureMismatch, http.StatusBadRequest, helpers.ErrCodeSignatureMismatch},
		{"order already paid", domain.ErrOrderAlreadyPaid, http.StatusBadRequest, helpers.ErrCodeOrderAlreadyPaid},
		{"contention", domain.ErrContention, http.StatusInternalServerError, helpers.ErrCodeContention},
		{"unmapped", errors.New("boom"), http.StatusInternalServerError, helpers.ErrCodeInternalError},
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/registrations", nil)

			writeDomainError(logger, rec, req, tc.err)

			assert.Equal(t, tc.wantStatus, rec.Code)
			var resp helpers.APIResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.wantCode, resp.Error.Code)
			assert.Nil(t, resp.Data)
		})
	}

	t.Run("wrapped errors still map", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/registrations", nil)

		writeDomainError(logger, rec, req, fmt.Errorf("register: %w", domain.ErrWindowClosed))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
