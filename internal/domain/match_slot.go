package domain

import (
	"context"
	"time"
)

// MatchSlot is the configuration for one recurring daily match: a fixed
// time-of-day, a seat capacity, and an optional entry fee in minor units.
// swagger:model MatchSlot
type MatchSlot struct {
	ID        string `json:"id"`
	MatchType string `json:"match_type"`
	// TimeOfDay is the scheduled local time in "HH:MM" (24-hour) form.
	// The match recurs every day at this time; there is no date component.
	TimeOfDay string    `json:"time_of_day"`
	Capacity  int       `json:"capacity"`
	EntryFee  int64     `json:"entry_fee"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewMatchSlot returns a new MatchSlot. ID is typically set by the repository on create.
func NewMatchSlot(matchType, timeOfDay string, capacity int, entryFee int64, active bool, createdAt, updatedAt time.Time) *MatchSlot {
	return &MatchSlot{
		MatchType: matchType,
		TimeOfDay: timeOfDay,
		Capacity:  capacity,
		EntryFee:  entryFee,
		Active:    active,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// OpenMatchSlot is a MatchSlot decorated with the derived fields the public
// listing needs: current occupancy and the countdown target for the next
// occurrence.
// swagger:model OpenMatchSlot
type OpenMatchSlot struct {
	*MatchSlot
	TimeOfDay12h     string `json:"time_of_day_12h"`
	OccupiedSeats    int    `json:"occupied_seats"`
	TargetTimeMillis int64  `json:"target_time_millis"`
}

// MatchSlotRepository defines the interface for match slot storage.
type MatchSlotRepository interface {
	Create(ctx context.Context, slot *MatchSlot) error
	GetByID(ctx context.Context, id string) (*MatchSlot, error)
	ListAll(ctx context.Context) ([]*MatchSlot, error)
	ListActive(ctx context.Context) ([]*MatchSlot, error)
	Update(ctx context.Context, slot *MatchSlot) error
	Delete(ctx context.Context, id string) error
}

// MatchSlotService covers the public slot listing and the admin slot CRUD.
// Admin mutations trigger a full slot cache rebuild.
type MatchSlotService interface {
	ListOpenSlots(ctx context.Context) ([]*OpenMatchSlot, error)
	CreateSlot(ctx context.Context, actorID string, slot *MatchSlot) (*MatchSlot, error)
	UpdateSlot(ctx context.Context, actorID string, slot *MatchSlot) (*MatchSlot, error)
	DeleteSlot(ctx context.Context, actorID, slotID string) error
}
