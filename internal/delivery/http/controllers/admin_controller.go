package controllers

import (
	"log/slog"
	"net/http"

	"tourneyslots/internal/delivery/http/helpers"
	"tourneyslots/internal/delivery/http/middleware"
	"tourneyslots/internal/domain"
)

// AdminController groups the admin mutations. Authorization is enforced in the
// services via the Authorizer, so a non-admin token gets 403 from any handler.
type AdminController struct {
	Logger       *slog.Logger
	Slots        domain.MatchSlotService
	Registration domain.RegistrationService
	Content      domain.ContentService
}

func NewAdminController(
	logger *slog.Logger,
	slots domain.MatchSlotService,
	registration domain.RegistrationService,
	content domain.ContentService,
) *AdminController {
	return &AdminController{
		Logger:       logger,
		Slots:        slots,
		Registration: registration,
		Content:      content,
	}
}

// ManageMatchSlotRequest is the request body for POST /api/admin/match-slots.
type ManageMatchSlotRequest struct {
	Action    domain.ContentAction `json:"action"`
	ID        string               `json:"id"`
	MatchType string               `json:"match_type"`
	TimeOfDay string               `json:"time_of_day"`
	Capacity  int                  `json:"capacity"`
	EntryFee  int64                `json:"entry_fee"`
	Active    *bool                `json:"active"`
}

// Validate implements Validator.
func (m ManageMatchSlotRequest) Validate() []string {
	var errs []string
	switch m.Action {
	case domain.ContentActionAdd:
	case domain.ContentActionUpdate, domain.ContentActionDelete:
		if m.ID == "" {
			errs = append(errs, "id is required for update and delete")
		}
	default:
		errs = append(errs, "action must be add, update, or delete")
	}
	return errs
}

// ManageMatchSlotSuccessResponse is the success response envelope for POST /api/admin/match-slots (200).
type ManageMatchSlotSuccessResponse struct {
	Data  *domain.MatchSlot `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ManageMatchSlot godoc
// @Summary Add, update, or delete a match slot
// @Description Applies the given action to the match slot configuration and rebuilds the seat cache. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ManageMatchSlotRequest true "Action and slot fields"
// @Success 200 {object} controllers.ManageMatchSlotSuccessResponse "data contains the slot (nil after delete)"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/match-slots [post]
func (c *AdminController) ManageMatchSlot(w http.ResponseWriter, r *http.Request) {
	var body ManageMatchSlotRequest
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	active := true
	if body.Active != nil {
		active = *body.Active
	}
	slot := &domain.MatchSlot{
		ID:        body.ID,
		MatchType: body.MatchType,
		TimeOfDay: body.TimeOfDay,
		Capacity:  body.Capacity,
		EntryFee:  body.EntryFee,
		Active:    active,
	}

	var err error
	switch body.Action {
	case domain.ContentActionAdd:
		slot, err = c.Slots.CreateSlot(r.Context(), actorID, slot)
	case domain.ContentActionUpdate:
		slot, err = c.Slots.UpdateSlot(r.Context(), actorID, slot)
	case domain.ContentActionDelete:
		slot = nil
		err = c.Slots.DeleteSlot(r.Context(), actorID, body.ID)
	}
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slot)
}

// ManageScheduleItemRequest is the request body for POST /api/admin/schedule-items.
type ManageScheduleItemRequest struct {
	Action    domain.ContentAction `json:"action"`
	ID        string               `json:"id"`
	Title     string               `json:"title"`
	TimeOfDay string               `json:"time_of_day"`
	Order     int                  `json:"order"`
}

// Validate implements Validator.
func (m ManageScheduleItemRequest) Validate() []string {
	switch m.Action {
	case domain.ContentActionAdd, domain.ContentActionUpdate, domain.ContentActionDelete:
		return nil
	default:
		return []string{"action must be add, update, or delete"}
	}
}

// ManageScheduleItemSuccessResponse is the success response envelope for POST /api/admin/schedule-items (200).
type ManageScheduleItemSuccessResponse struct {
	Data  *domain.ScheduleItem `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ManageScheduleItem godoc
// @Summary Add, update, or delete a schedule item
// @Description Applies the given action to the public schedule board. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ManageScheduleItemRequest true "Action and item fields"
// @Success 200 {object} controllers.ManageScheduleItemSuccessResponse "data contains the item (nil after delete)"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/schedule-items [post]
func (c *AdminController) ManageScheduleItem(w http.ResponseWriter, r *http.Request) {
	var body ManageScheduleItemRequest
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	item, err := c.Content.ManageScheduleItem(r.Context(), actorID, body.Action, &domain.ScheduleItem{
		ID:        body.ID,
		Title:     body.Title,
		TimeOfDay: body.TimeOfDay,
		Order:     body.Order,
	})
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, item)
}

// ManagePrizeItemRequest is the request body for POST /api/admin/prize-items.
type ManagePrizeItemRequest struct {
	Action domain.ContentAction `json:"action"`
	ID     string               `json:"id"`
	Label  string               `json:"label"`
	Amount string               `json:"amount"`
	Order  int                  `json:"order"`
}

// Validate implements Validator.
func (m ManagePrizeItemRequest) Validate() []string {
	switch m.Action {
	case domain.ContentActionAdd, domain.ContentActionUpdate, domain.ContentActionDelete:
		return nil
	default:
		return []string{"action must be add, update, or delete"}
	}
}

// ManagePrizeItemSuccessResponse is the success response envelope for POST /api/admin/prize-items (200).
type ManagePrizeItemSuccessResponse struct {
	Data  *domain.PrizeItem `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ManagePrizeItem godoc
// @Summary Add, update, or delete a prize item
// @Description Applies the given action to the public prize board. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body ManagePrizeItemRequest true "Action and item fields"
// @Success 200 {object} controllers.ManagePrizeItemSuccessResponse "data contains the item (nil after delete)"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/prize-items [post]
func (c *AdminController) ManagePrizeItem(w http.ResponseWriter, r *http.Request) {
	var body ManagePrizeItemRequest
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	item, err := c.Content.ManagePrizeItem(r.Context(), actorID, body.Action, &domain.PrizeItem{
		ID:     body.ID,
		Label:  body.Label,
		Amount: body.Amount,
		Order:  body.Order,
	})
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, item)
}

// UpdateSiteContentRequest is the request body for POST /api/admin/content.
// Sections maps section names to content; only the given keys are changed.
type UpdateSiteContentRequest struct {
	Sections domain.SiteContent `json:"sections"`
}

// Validate implements Validator.
func (u UpdateSiteContentRequest) Validate() []string {
	if len(u.Sections) == 0 {
		return []string{"sections is required"}
	}
	return nil
}

// UpdateSiteContent godoc
// @Summary Update site content
// @Description Upserts the given site content sections, leaving others untouched. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body UpdateSiteContentRequest true "Sections to upsert"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/content [post]
func (c *AdminController) UpdateSiteContent(w http.ResponseWriter, r *http.Request) {
	var body UpdateSiteContentRequest
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Content.UpdateSiteContent(r.Context(), actorID, body.Sections); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "updated"})
}

// SetRoomDetailsRequest is the request body for POST /api/admin/room-details.
// Exactly one of registration_id (single) or match_id (bulk) must be set.
type SetRoomDetailsRequest struct {
	RegistrationID string `json:"registration_id"`
	MatchID        string `json:"match_id"`
	RoomCode       string `json:"room_code"`
	RoomPassword   string `json:"room_password"`
}

// Validate implements Validator.
func (s SetRoomDetailsRequest) Validate() []string {
	var errs []string
	if s.RegistrationID == "" && s.MatchID == "" {
		errs = append(errs, "registration_id or match_id is required")
	}
	if s.RegistrationID != "" && s.MatchID != "" {
		errs = append(errs, "registration_id and match_id are mutually exclusive")
	}
	if s.RoomCode == "" {
		errs = append(errs, "room_code is required")
	}
	return errs
}

// SetRoomDetailsResponse is the data payload for POST /api/admin/room-details (200).
type SetRoomDetailsResponse struct {
	Updated int `json:"updated"`
}

// SetRoomDetailsSuccessResponse is the success response envelope for POST /api/admin/room-details (200).
type SetRoomDetailsSuccessResponse struct {
	Data  SetRoomDetailsResponse `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// SetRoomDetails godoc
// @Summary Set room credentials
// @Description Sets the room code and password either on one registration (registration_id) or on every registered entry of a match (match_id). Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SetRoomDetailsRequest true "Target and room credentials"
// @Success 200 {object} controllers.SetRoomDetailsSuccessResponse "data contains the updated row count"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/room-details [post]
func (c *AdminController) SetRoomDetails(w http.ResponseWriter, r *http.Request) {
	var body SetRoomDetailsRequest
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}

	if body.RegistrationID != "" {
		if err := c.Registration.SetRoomDetails(r.Context(), actorID, body.RegistrationID, body.RoomCode, body.RoomPassword); err != nil {
			writeDomainError(c.Logger, w, r, err)
			return
		}
		helpers.WriteJSONSuccess(w, http.StatusOK, SetRoomDetailsResponse{Updated: 1})
		return
	}

	updated, err := c.Registration.SetRoomDetailsByMatch(r.Context(), actorID, body.MatchID, body.RoomCode, body.RoomPassword)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SetRoomDetailsResponse{Updated: updated})
}

// ListAllRegistrationsSuccessResponse is the success response envelope for GET /api/admin/registrations (200).
type ListAllRegistrationsSuccessResponse struct {
	Data  []*domain.RegistrationView `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// ListAllRegistrations godoc
// @Summary List all registrations
// @Description Returns every registration across all users and statuses. Admin only.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.ListAllRegistrationsSuccessResponse "data is an array of registrations"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/registrations [get]
func (c *AdminController) ListAllRegistrations(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	regs, err := c.Registration.ListAllRegistrations(r.Context(), actorID)
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	if regs == nil {
		regs = []*domain.RegistrationView{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, regs)
}

// OverrideStatusRequest is the request body for POST /api/admin/registrations/{registrationID}/status.
type OverrideStatusRequest struct {
	Status domain.RegistrationStatus `json:"status"`
}

// Validate implements Validator.
func (o OverrideStatusRequest) Validate() []string {
	switch o.Status {
	case domain.StatusCanceled, domain.StatusCompleted:
		return nil
	default:
		return []string{"status must be canceled or completed"}
	}
}

// OverrideStatus godoc
// @Summary Override a registration's status
// @Description Forces the registration into the given status. Canceling releases the seat and refunds the entry fee. Admin only.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param registrationID path string true "Registration ID"
// @Param body body OverrideStatusRequest true "Target status"
// @Success 200 {object} controllers.StatusSuccessResponse "data contains status"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request | already_canceled"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/admin/registrations/{registrationID}/status [post]
func (c *AdminController) OverrideStatus(w http.ResponseWriter, r *http.Request) {
	registrationID := r.PathValue("registrationID")
	if registrationID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing registrationID")
		return
	}
	var body OverrideStatusRequest
	if !helpers.DecodeAndValidate(w, r, &body) {
		return
	}
	actorID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	if err := c.Registration.OverrideStatus(r.Context(), actorID, registrationID, body.Status); err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "updated"})
}
