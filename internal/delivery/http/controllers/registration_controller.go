package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"tourneyslots/internal/delivery/http/helpers"
	"tourneyslots/internal/delivery/http/middleware"
	"tourneyslots/internal/domain"
)

type RegistrationController struct {
	Logger  *slog.Logger
	Service domain.RegistrationService
}

func NewRegistrationController(logger *slog.Logger, svc domain.RegistrationService) *RegistrationController {
	return &RegistrationController{
		Logger:  logger,
		Service: svc,
	}
}

// RegisterRequestBody is the request body for POST /api/registrations.
type RegisterRequestBody struct {
	MatchID      string            `json:"match_id"`
	Email        string            `json:"email"`
	LeaderIGN    string            `json:"leader_ign"`
	LeaderGameID string            `json:"leader_game_id"`
	Teammates    []domain.Teammate `json:"teammates"`
	ClientTime   string            `json:"client_time"`
}

// Validate implements Validator.
func (b RegisterRequestBody) Validate() []string {
	var errs []string
	if b.MatchID == "" {
		errs = append(errs, "match_id is required")
	}
	if b.Email == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(b.LeaderIGN) == "" {
		errs = append(errs, "leader_ign is required")
	}
	if strings.TrimSpace(b.LeaderGameID) == "" {
		errs = append(errs, "leader_game_id is required")
	}
	return errs
}

// RegisterSuccessResponse is the success response envelope for POST /api/registrations (201).
type RegisterSuccessResponse struct {
	Data  *domain.Registration `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// Register godoc
// @Summary Register for a match
// @Description Books the lowest free seat in the match slot for the authenticated user. Fails if the registration window has closed, the match is inactive or full, the user already holds a registered entry, or the wallet cannot cover the entry fee.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RegisterRequestBody true "Registration details"
// @Success 201 {object} controllers.RegisterSuccessResponse "data contains the registration with the assigned seat"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request | window_closed | match_inactive | duplicate_registration | match_full | insufficient_funds"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error | contention"
// @Router /api/registrations [post]
func (c *RegistrationController) Register(w http.ResponseWriter, r *http.Request) {
	var body RegisterRequestBody
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	reg, err := c.Service.Register(r.Context(), &domain.RegisterRequest{
		UserID:       userID,
		Email:        body.Email,
		MatchID:      body.MatchID,
		LeaderIGN:    body.LeaderIGN,
		LeaderGameID: body.LeaderGameID,
		Teammates:    body.Teammates,
		ClientTime:   body.ClientTime,
	})
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, reg)
}

// ListMyRegistrationsSuccessResponse is the success response envelope for GET /api/registrations (200).
type ListMyRegistrationsSuccessResponse struct {
	Data  []*domain.RegistrationView `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// ListMyRegistrations godoc
// @Summary List my registrations
// @Description Returns the authenticated user's registrations across all statuses, each with 12-hour match time and a completion flag derived from the time policy.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListMyRegistrationsSuccessResponse "data is an array of registrations"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/registrations [get]
func (c *RegistrationController) ListMyRegistrations(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	regs, err := c.Service.ListMyRegistrations(r.Context(), userID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	if regs == nil {
		regs = []*domain.RegistrationView{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

// ListMatchParticipantsSuccessResponse is the success response envelope for GET /api/matches/{matchID}/participants (200).
type ListMatchParticipantsSuccessResponse struct {
	Data  []*domain.MatchParticipant `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// ListMatchParticipants godoc
// @Summary List participants of a match
// @Description Returns public player details and seat numbers for every registered entry of the match. No contact or room data is included.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param matchID path string true "Match slot ID"
// @Success 200 {object} controllers.ListMatchParticipantsSuccessResponse "data is an array of participants"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/matches/{matchID}/participants [get]
func (c *RegistrationController) ListMatchParticipants(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("matchID")
	if matchID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing matchID")
		return
	}
	participants, err := c.Service.ListMatchParticipants(r.Context(), matchID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, participants)
}

// StatusResponse is the data payload for mutation endpoints that return only a status string.
type StatusResponse struct {
	Status string `json:"status"`
}

// StatusSuccessResponse is the success response envelope for status-only endpoints (200).
type StatusSuccessResponse struct {
	Data  StatusResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Cancel godoc
// @Summary Cancel a registration
// @Description Cancels the registration, releases its seat, clears room credentials, and refunds the entry fee to the wallet. The owner or an admin may cancel.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: already_canceled"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/registrations/{registrationID}/cancel [post]
func (c *RegistrationController) Cancel(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if registrationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing registrationID")
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Cancel(r.Context(), actorID, registrationID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "canceled"})
}

// Delete godoc
// @Summary Delete a registration
// @Description Permanently removes the registration. A still-registered entry also releases its seat; no refund is issued. The owner or an admin may delete.
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/registrations/{registrationID} [delete]
func (c *RegistrationController) Delete(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if registrationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing registrationID")
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.Delete(r.Context(), actorID, registrationID); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// UpdateAutoCleanupRequest is the request body for PATCH /api/registrations/{registrationID}/auto-cleanup.
type UpdateAutoCleanupRequest struct {
	AutoCleanup *bool `json:"auto_cleanup"`
}

// Validate implements Validator.
func (u UpdateAutoCleanupRequest) Validate() []string {
	if u.AutoCleanup == nil {
		return []string{"auto_cleanup is required"}
	}
	return nil
}

// UpdateAutoCleanup godoc
// @Summary Update auto-cleanup preference
// @Description Sets whether the registration is deleted (true) or archived as completed (false) by the daily reset once its match has finished. Only the registration owner may change this.
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID"
// @Param body body UpdateAutoCleanupRequest true "Auto-cleanup flag"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/registrations/{registrationID}/auto-cleanup [patch]
func (c *RegistrationController) UpdateAutoCleanup(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if registrationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing registrationID")
		return
	}
	var body UpdateAutoCleanupRequest
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Service.UpdateAutoCleanup(r.Context(), actorID, registrationID, *body.AutoCleanup); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "updated"})
}
