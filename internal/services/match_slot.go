package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"tourneyslots/internal/domain"
	"tourneyslots/internal/matchtime"
	"tourneyslots/internal/slotcache"
)

type matchSlotService struct {
	slotRepo       domain.MatchSlotRepository
	cache          *slotcache.Cache
	sync           *SlotSync
	authorizer     domain.Authorizer
	logger         *slog.Logger
	now            func() time.Time
	contextTimeout time.Duration
}

func NewMatchSlotService(
	slotRepo domain.MatchSlotRepository,
	cache *slotcache.Cache,
	sync *SlotSync,
	authorizer domain.Authorizer,
	logger *slog.Logger,
	loc *time.Location,
	timeout time.Duration,
) domain.MatchSlotService {
	return &matchSlotService{
		slotRepo:       slotRepo,
		cache:          cache,
		sync:           sync,
		authorizer:     authorizer,
		logger:         logger,
		now:            func() time.Time { return time.Now().In(loc) },
		contextTimeout: timeout,
	}
}

// ListOpenSlots returns the active slots whose registration window is still
// open, with live occupancy and the countdown target for the next occurrence.
func (s *matchSlotService) ListOpenSlots(ctx context.Context) ([]*domain.OpenMatchSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	slots, err := s.slotRepo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active match slots: %w", err)
	}

	now := s.now()
	open := make([]*domain.OpenMatchSlot, 0, len(slots))
	for _, slot := range slots {
		if !matchtime.IsRegistrationOpen(slot.TimeOfDay, now) {
			continue
		}
		open = append(open, &domain.OpenMatchSlot{
			MatchSlot:        slot,
			TimeOfDay12h:     matchtime.Format12Hour(slot.TimeOfDay),
			OccupiedSeats:    s.cache.OccupiedCount(slot.ID),
			TargetTimeMillis: matchtime.TargetMillis(slot.TimeOfDay, now),
		})
	}
	sort.Slice(open, func(i, j int) bool {
		return open[i].TimeOfDay < open[j].TimeOfDay
	})
	return open, nil
}

func (s *matchSlotService) CreateSlot(ctx context.Context, actorID string, slot *domain.MatchSlot) (*domain.MatchSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !s.authorizer.IsAdmin(actorID) {
		return nil, domain.ErrForbidden
	}
	if err := s.validateSlot(slot); err != nil {
		return nil, err
	}
	slot.CreatedAt = s.now()
	slot.UpdatedAt = slot.CreatedAt
	if err := s.slotRepo.Create(ctx, slot); err != nil {
		return nil, fmt.Errorf("create match slot: %w", err)
	}
	s.rebuild(ctx)
	return slot, nil
}

func (s *matchSlotService) UpdateSlot(ctx context.Context, actorID string, slot *domain.MatchSlot) (*domain.MatchSlot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !s.authorizer.IsAdmin(actorID) {
		return nil, domain.ErrForbidden
	}
	if slot.ID == "" {
		return nil, fmt.Errorf("%w: slot id is required", domain.ErrInvalidInput)
	}
	if err := s.validateSlot(slot); err != nil {
		return nil, err
	}
	slot.UpdatedAt = s.now()
	if err := s.slotRepo.Update(ctx, slot); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update match slot: %w", err)
	}
	s.rebuild(ctx)
	return slot, nil
}

func (s *matchSlotService) DeleteSlot(ctx context.Context, actorID, slotID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !s.authorizer.IsAdmin(actorID) {
		return domain.ErrForbidden
	}
	if slotID == "" {
		return fmt.Errorf("%w: slot id is required", domain.ErrInvalidInput)
	}
	if err := s.slotRepo.Delete(ctx, slotID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete match slot: %w", err)
	}
	s.rebuild(ctx)
	return nil
}

func (s *matchSlotService) validateSlot(slot *domain.MatchSlot) error {
	if slot.MatchType == "" {
		return fmt.Errorf("%w: match type is required", domain.ErrInvalidInput)
	}
	if _, _, err := matchtime.ParseTimeOfDay(slot.TimeOfDay); err != nil {
		return fmt.Errorf("%w: time of day must be HH:MM", domain.ErrInvalidInput)
	}
	if slot.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive", domain.ErrInvalidInput)
	}
	if slot.EntryFee < 0 {
		return fmt.Errorf("%w: entry fee cannot be negative", domain.ErrInvalidInput)
	}
	return nil
}

// rebuild refreshes the cache after a slot mutation. The store already holds
// the change, so a rebuild failure degrades occupancy numbers, not bookings.
func (s *matchSlotService) rebuild(ctx context.Context) {
	if err := s.sync.Rebuild(ctx); err != nil {
		s.logger.Error("slot cache rebuild after admin change failed", "err", err)
	}
}
