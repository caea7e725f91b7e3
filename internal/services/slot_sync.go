package services

import (
	"context"
	"fmt"

	"tourneyslots/internal/domain"
	"tourneyslots/internal/slotcache"
)

// SlotSync reconciles the in-memory slot cache from the persisted stores.
// It is the single rebuild path shared by startup, admin slot changes, and
// the daily reset.
type SlotSync struct {
	slotRepo domain.MatchSlotRepository
	regRepo  domain.RegistrationRepository
	cache    *slotcache.Cache
}

func NewSlotSync(slotRepo domain.MatchSlotRepository, regRepo domain.RegistrationRepository, cache *slotcache.Cache) *SlotSync {
	return &SlotSync{
		slotRepo: slotRepo,
		regRepo:  regRepo,
		cache:    cache,
	}
}

// Rebuild loads every active match slot and every registered registration and
// replaces the cache contents. Safe to call at any time.
func (s *SlotSync) Rebuild(ctx context.Context) error {
	slots, err := s.slotRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("list active match slots: %w", err)
	}
	regs, err := s.regRepo.ListRegistered(ctx)
	if err != nil {
		return fmt.Errorf("list registered registrations: %w", err)
	}
	s.cache.Rebuild(slots, regs)
	return nil
}
