// Package slotcache keeps the in-memory per-match seat occupancy used to
// answer "which seat is next" without a store round trip. The cache is derived
// state: the registration store stays authoritative, and Rebuild reconciles
// the cache from it at startup, after admin slot changes, and after the daily
// reset.
package slotcache

import (
	"log/slog"
	"sync"

	"tourneyslots/internal/domain"
)

type entry struct {
	capacity int
	occupied map[int]struct{}
}

// Cache is a synchronized map from match ID to capacity and occupied seats.
// All mutations take the cache lock; NextAvailableSeat+Book as a single step
// is provided by Allocate.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*entry
	logger  *slog.Logger
}

// New returns an empty cache. Call Rebuild before serving traffic.
func New(logger *slog.Logger) *Cache {
	return &Cache{
		entries: make(map[string]*entry),
		logger:  logger,
	}
}

// Rebuild replaces the whole cache with fresh entries for the given active
// slots and inserts the seat of every registered registration whose match is
// known. Registrations referencing unknown matches or seats outside
// [1, capacity] are skipped with a warning. Idempotent; safe to call at any
// time (last write wins).
func (c *Cache) Rebuild(slots []*domain.MatchSlot, regs []*domain.Registration) {
	fresh := make(map[string]*entry, len(slots))
	for _, slot := range slots {
		fresh[slot.ID] = &entry{
			capacity: slot.Capacity,
			occupied: make(map[int]struct{}),
		}
	}
	for _, reg := range regs {
		e, ok := fresh[reg.MatchID]
		if !ok {
			c.logger.Warn("skipping registration for unknown match during cache rebuild",
				"registration_id", reg.ID, "match_id", reg.MatchID)
			continue
		}
		if reg.SeatNumber < 1 || reg.SeatNumber > e.capacity {
			c.logger.Warn("skipping registration with seat outside capacity during cache rebuild",
				"registration_id", reg.ID, "match_id", reg.MatchID, "seat", reg.SeatNumber, "capacity", e.capacity)
			continue
		}
		e.occupied[reg.SeatNumber] = struct{}{}
	}

	c.mu.Lock()
	c.entries = fresh
	c.mu.Unlock()
	c.logger.Info("slot cache rebuilt", "matches", len(fresh))
}

// NextAvailableSeat returns the lowest unoccupied seat in [1, capacity].
// ok is false when the match is unknown or full.
func (c *Cache) NextAvailableSeat(matchID string) (seat int, ok bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, found := c.entries[matchID]
	if !found {
		return 0, false
	}
	return nextFree(e)
}

// Allocate finds the lowest free seat and books it under a single lock, so two
// concurrent callers can never be handed the same seat.
func (c *Cache) Allocate(matchID string) (seat int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, found := c.entries[matchID]
	if !found {
		return 0, false
	}
	seat, ok = nextFree(e)
	if ok {
		e.occupied[seat] = struct{}{}
	}
	return seat, ok
}

func nextFree(e *entry) (int, bool) {
	for seat := 1; seat <= e.capacity; seat++ {
		if _, taken := e.occupied[seat]; !taken {
			return seat, true
		}
	}
	return 0, false
}

// Book marks the seat occupied. Booking an already-booked seat is a no-op
// success; the only failure is an unknown match ID.
func (c *Cache) Book(matchID string, seat int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, found := c.entries[matchID]
	if !found {
		return false
	}
	e.occupied[seat] = struct{}{}
	return true
}

// Release frees the seat. No-op if the match is unknown or the seat is free.
func (c *Cache) Release(matchID string, seat int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, found := c.entries[matchID]; found {
		delete(e.occupied, seat)
	}
}

// ClearOccupied empties every match's occupied set while keeping the entries.
// Used by the daily reset before the store-driven rebuild.
func (c *Cache) ClearOccupied() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, e := range c.entries {
		e.occupied = make(map[int]struct{})
	}
}

// OccupiedCount returns the number of occupied seats for the match, zero for
// unknown matches.
func (c *Cache) OccupiedCount(matchID string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, found := c.entries[matchID]; found {
		return len(e.occupied)
	}
	return 0
}

// Capacity returns the cached capacity of the match.
func (c *Cache) Capacity(matchID string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if e, found := c.entries[matchID]; found {
		return e.capacity, true
	}
	return 0, false
}
