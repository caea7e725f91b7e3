package domain

import "context"

// ScheduleItem is one entry of the public daily schedule board.
// swagger:model ScheduleItem
type ScheduleItem struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	TimeOfDay string `json:"time_of_day"`
	Order     int    `json:"order"`
}

// PrizeItem is one entry of the public prize distribution board.
// swagger:model PrizeItem
type PrizeItem struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Amount string `json:"amount"`
	Order  int    `json:"order"`
}

// SiteContent is free-form website content (rules, contact info) keyed by
// section name. Values are opaque to the backend.
type SiteContent map[string]string

// ContentRepository stores the static content collections. These are plain
// document writes with no invariants beyond existence.
type ContentRepository interface {
	ListScheduleItems(ctx context.Context) ([]*ScheduleItem, error)
	CreateScheduleItem(ctx context.Context, item *ScheduleItem) error
	UpdateScheduleItem(ctx context.Context, item *ScheduleItem) error
	DeleteScheduleItem(ctx context.Context, id string) error

	ListPrizeItems(ctx context.Context) ([]*PrizeItem, error)
	CreatePrizeItem(ctx context.Context, item *PrizeItem) error
	UpdatePrizeItem(ctx context.Context, item *PrizeItem) error
	DeletePrizeItem(ctx context.Context, id string) error

	GetSiteContent(ctx context.Context) (SiteContent, error)
	// MergeSiteContent upserts the given keys, leaving others untouched.
	MergeSiteContent(ctx context.Context, content SiteContent) error
}

// ContentAction is the admin mutation verb for content collections.
type ContentAction string

const (
	ContentActionAdd    ContentAction = "add"
	ContentActionUpdate ContentAction = "update"
	ContentActionDelete ContentAction = "delete"
)

// ContentService exposes public reads and admin mutations of static content.
type ContentService interface {
	ListScheduleItems(ctx context.Context) ([]*ScheduleItem, error)
	ManageScheduleItem(ctx context.Context, actorID string, action ContentAction, item *ScheduleItem) (*ScheduleItem, error)
	ListPrizeItems(ctx context.Context) ([]*PrizeItem, error)
	ManagePrizeItem(ctx context.Context, actorID string, action ContentAction, item *PrizeItem) (*PrizeItem, error)
	GetSiteContent(ctx context.Context) (SiteContent, error)
	UpdateSiteContent(ctx context.Context, actorID string, content SiteContent) error
}
