package slotcache

import (
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"tourneyslots/internal/domain"
)

func newTestCache() *Cache {
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func slot(id string, capacity int) *domain.MatchSlot {
	return &domain.MatchSlot{ID: id, Capacity: capacity, Active: true}
}

func reg(id, matchID string, seat int) *domain.Registration {
	return &domain.Registration{ID: id, MatchID: matchID, SeatNumber: seat, Status: domain.StatusRegistered}
}

func TestRebuildAndNextAvailableSeat(t *testing.T) {
	c := newTestCache()
	c.Rebuild(
		[]*domain.MatchSlot{slot("m1", 4), slot("m2", 2)},
		[]*domain.Registration{
			reg("r1", "m1", 1),
			reg("r2", "m1", 3),
			reg("r3", "m-unknown", 1), // unknown match, skipped
			reg("r4", "m2", 9),        // seat beyond capacity, skipped
		},
	)

	seat, ok := c.NextAvailableSeat("m1")
	require.True(t, ok)
	require.Equal(t, 2, seat)

	seat, ok = c.NextAvailableSeat("m2")
	require.True(t, ok)
	require.Equal(t, 1, seat)
	require.Zero(t, c.OccupiedCount("m2"))

	_, ok = c.NextAvailableSeat("m-unknown")
	require.False(t, ok)
}

func TestRebuildIsLastWriteWins(t *testing.T) {
	c := newTestCache()
	c.Rebuild([]*domain.MatchSlot{slot("m1", 2)}, []*domain.Registration{reg("r1", "m1", 1)})
	require.Equal(t, 1, c.OccupiedCount("m1"))

	// Rebuilding from a store where the registration no longer exists must
	// yield the same cache as if it never existed.
	c.Rebuild([]*domain.MatchSlot{slot("m1", 2)}, nil)
	require.Zero(t, c.OccupiedCount("m1"))
	seat, ok := c.NextAvailableSeat("m1")
	require.True(t, ok)
	require.Equal(t, 1, seat)
}

func TestBookIdempotentAndUnknownMatch(t *testing.T) {
	c := newTestCache()
	c.Rebuild([]*domain.MatchSlot{slot("m1", 2)}, nil)

	require.True(t, c.Book("m1", 1))
	require.True(t, c.Book("m1", 1)) // double-book is a no-op success
	require.Equal(t, 1, c.OccupiedCount("m1"))

	require.False(t, c.Book("nope", 1))
}

func TestReleaseFreesLowestSeatForReuse(t *testing.T) {
	c := newTestCache()
	c.Rebuild([]*domain.MatchSlot{slot("m1", 3)}, []*domain.Registration{
		reg("r1", "m1", 1), reg("r2", "m1", 2),
	})

	c.Release("m1", 1)
	seat, ok := c.NextAvailableSeat("m1")
	require.True(t, ok)
	require.Equal(t, 1, seat)

	// Releasing a free seat or an unknown match is a no-op.
	c.Release("m1", 1)
	c.Release("nope", 1)
	require.Equal(t, 1, c.OccupiedCount("m1"))
}

func TestAllocateFillsToCapacityExactlyOnce(t *testing.T) {
	c := newTestCache()
	c.Rebuild([]*domain.MatchSlot{slot("m1", 2)}, nil)

	var mu sync.Mutex
	seats := make(map[int]int)
	var full int

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seat, ok := c.Allocate("m1")
			mu.Lock()
			defer mu.Unlock()
			if ok {
				seats[seat]++
			} else {
				full++
			}
		}()
	}
	wg.Wait()

	// Two winners with distinct seats {1,2}, one loser.
	require.Equal(t, 1, full)
	require.Len(t, seats, 2)
	require.Equal(t, 1, seats[1])
	require.Equal(t, 1, seats[2])

	_, ok := c.NextAvailableSeat("m1")
	require.False(t, ok)
}

func TestClearOccupied(t *testing.T) {
	c := newTestCache()
	c.Rebuild([]*domain.MatchSlot{slot("m1", 2)}, []*domain.Registration{reg("r1", "m1", 2)})

	c.ClearOccupied()
	require.Zero(t, c.OccupiedCount("m1"))
	capGot, ok := c.Capacity("m1")
	require.True(t, ok)
	require.Equal(t, 2, capGot)
}
