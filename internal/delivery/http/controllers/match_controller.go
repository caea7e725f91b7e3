package controllers

import (
	"log/slog"
	"net/http"

	"tourneyslots/internal/delivery/http/helpers"
	"tourneyslots/internal/domain"
)

type MatchController struct {
	Logger  *slog.Logger
	Service domain.MatchSlotService
}

func NewMatchController(logger *slog.Logger, svc domain.MatchSlotService) *MatchController {
	return &MatchController{
		Logger:  logger,
		Service: svc,
	}
}

// ListOpenSlotsSuccessResponse is the success response envelope for GET /api/match-slots (200).
type ListOpenSlotsSuccessResponse struct {
	Data  []*domain.OpenMatchSlot `json:"data"`
	Error *helpers.APIError       `json:"error"`
}

// ListOpenSlots godoc
// @Summary List open match slots
// @Description Returns active match slots whose registration window is still open, with current seat occupancy, 12-hour display time, and the countdown target in epoch milliseconds. Public.
// @Tags matches
// @Produce json
// @Success 200 {object} controllers.ListOpenSlotsSuccessResponse "data is an array of open match slots"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/match-slots [get]
func (c *MatchController) ListOpenSlots(w http.ResponseWriter, r *http.Request) {
	slots, err := c.Service.ListOpenSlots(r.Context())
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	if slots == nil {
		slots = []*domain.OpenMatchSlot{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, slots)
}
