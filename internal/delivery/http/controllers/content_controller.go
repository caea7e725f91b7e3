package controllers

import (
	"log/slog"
	"net/http"

	"tourneyslots/internal/delivery/http/helpers"
	"tourneyslots/internal/domain"
)

type ContentController struct {
	Logger  *slog.Logger
	Service domain.ContentService
}

func NewContentController(logger *slog.Logger, svc domain.ContentService) *ContentController {
	return &ContentController{
		Logger:  logger,
		Service: svc,
	}
}

// ListScheduleItemsSuccessResponse is the success response envelope for GET /api/schedule-items (200).
type ListScheduleItemsSuccessResponse struct {
	Data  []*domain.ScheduleItem `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// ListScheduleItems godoc
// @Summary List schedule items
// @Description Returns the public daily schedule board, ordered. Public.
// @Tags content
// @Produce json
// @Success 200 {object} controllers.ListScheduleItemsSuccessResponse "data is an array of schedule items"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/schedule-items [get]
func (c *ContentController) ListScheduleItems(w http.ResponseWriter, r *http.Request) {
	items, err := c.Service.ListScheduleItems(r.Context())
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// ListPrizeItemsSuccessResponse is the success response envelope for GET /api/prize-items (200).
type ListPrizeItemsSuccessResponse struct {
	Data  []*domain.PrizeItem `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// ListPrizeItems godoc
// @Summary List prize items
// @Description Returns the public prize distribution board, ordered. Public.
// @Tags content
// @Produce json
// @Success 200 {object} controllers.ListPrizeItemsSuccessResponse "data is an array of prize items"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/prize-items [get]
func (c *ContentController) ListPrizeItems(w http.ResponseWriter, r *http.Request) {
	items, err := c.Service.ListPrizeItems(r.Context())
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, items)
}

// SiteContentSuccessResponse is the success response envelope for GET /api/content (200).
type SiteContentSuccessResponse struct {
	Data  domain.SiteContent `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// GetSiteContent godoc
// @Summary Get site content
// @Description Returns free-form website content sections (rules, contact info) keyed by section name. Public.
// @Tags content
// @Produce json
// @Success 200 {object} controllers.SiteContentSuccessResponse "data maps section names to content"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /api/content [get]
func (c *ContentController) GetSiteContent(w http.ResponseWriter, r *http.Request) {
	content, err := c.Service.GetSiteContent(r.Context())
	if err != nil {
		writeDomainError(c.Logger, w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, content)
}
