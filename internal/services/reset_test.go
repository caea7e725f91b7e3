package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourneyslots/internal/domain"
	"tourneyslots/internal/slotcache"
)

func TestResetRun(t *testing.T) {
	morning := &domain.MatchSlot{ID: "morning", MatchType: "Solo", TimeOfDay: "08:00", Capacity: 4, Active: true}
	evening := &domain.MatchSlot{ID: "evening", MatchType: "Squad", TimeOfDay: "20:00", Capacity: 4, Active: true}
	slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{
		"morning": morning,
		"evening": evening,
	}}

	regRepo := newMockRegistrationRepository()
	// completed over an hour ago, auto-cleanup on: deleted
	regRepo.regs["reg-1"] = &domain.Registration{
		ID: "reg-1", UserID: "user-1", MatchID: "morning", MatchTime: "08:00",
		SeatNumber: 1, Status: domain.StatusRegistered, AutoCleanup: true,
	}
	// completed, auto-cleanup off: archived as completed
	regRepo.regs["reg-2"] = &domain.Registration{
		ID: "reg-2", UserID: "user-2", MatchID: "morning", MatchTime: "08:00",
		SeatNumber: 2, Status: domain.StatusRegistered, AutoCleanup: false,
	}
	// tonight's match has not happened yet: untouched
	regRepo.regs["reg-3"] = &domain.Registration{
		ID: "reg-3", UserID: "user-3", MatchID: "evening", MatchTime: "20:00",
		SeatNumber: 1, Status: domain.StatusRegistered, AutoCleanup: true,
	}

	cache := slotcache.New(testLogger())
	sync := NewSlotSync(slotRepo, regRepo, cache)
	require.NoError(t, sync.Rebuild(context.Background()))

	svc := NewResetService(regRepo, cache, sync, testLogger(), time.UTC)
	svc.now = fixedClock // 10:00, both 08:00 entries completed at 09:00

	require.NoError(t, svc.Run(context.Background()))

	assert.Equal(t, []string{"reg-1"}, regRepo.deleted)
	assert.Equal(t, []string{"reg-2"}, regRepo.completed)
	assert.Equal(t, domain.StatusRegistered, regRepo.regs["reg-3"].Status)

	// only the evening seat survives the rebuild
	assert.Equal(t, 0, cache.OccupiedCount("morning"))
	assert.Equal(t, 1, cache.OccupiedCount("evening"))
}

func TestResetRunClearsSeatMapFirst(t *testing.T) {
	slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{
		"morning": {ID: "morning", MatchType: "Solo", TimeOfDay: "08:00", Capacity: 4, Active: true},
	}}
	regRepo := newMockRegistrationRepository()

	cache := slotcache.New(testLogger())
	sync := NewSlotSync(slotRepo, regRepo, cache)
	require.NoError(t, sync.Rebuild(context.Background()))
	require.True(t, cache.Book("morning", 1))

	svc := NewResetService(regRepo, cache, sync, testLogger(), time.UTC)
	svc.now = fixedClock
	regRepo.listErr = errors.New("store unavailable")

	// The seat map is wiped before the store pass, so even an aborted run
	// starts the day empty.
	require.Error(t, svc.Run(context.Background()))
	assert.Equal(t, 0, cache.OccupiedCount("morning"))
}

func TestResetRunIdempotent(t *testing.T) {
	slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{
		"morning": {ID: "morning", MatchType: "Solo", TimeOfDay: "08:00", Capacity: 4, Active: true},
	}}
	regRepo := newMockRegistrationRepository()
	regRepo.regs["reg-1"] = &domain.Registration{
		ID: "reg-1", UserID: "user-1", MatchID: "morning", MatchTime: "08:00",
		SeatNumber: 1, Status: domain.StatusRegistered, AutoCleanup: true,
	}

	cache := slotcache.New(testLogger())
	sync := NewSlotSync(slotRepo, regRepo, cache)
	svc := NewResetService(regRepo, cache, sync, testLogger(), time.UTC)
	svc.now = fixedClock

	require.NoError(t, svc.Run(context.Background()))
	require.NoError(t, svc.Run(context.Background()))
	assert.Equal(t, []string{"reg-1"}, regRepo.deleted)
}
