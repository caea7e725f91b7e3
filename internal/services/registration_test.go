package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tourneyslots/internal/domain"
	"tourneyslots/internal/slotcache"
)

type mockMatchSlotRepository struct {
	slots     map[string]*domain.MatchSlot
	err       error
	created   []*domain.MatchSlot
	updated   []*domain.MatchSlot
	deletedID string
}

func (m *mockMatchSlotRepository) Create(ctx context.Context, slot *domain.MatchSlot) error {
	if m.err != nil {
		return m.err
	}
	slot.ID = "slot-" + strconv.Itoa(len(m.created)+1)
	m.created = append(m.created, slot)
	return nil
}

func (m *mockMatchSlotRepository) GetByID(ctx context.Context, id string) (*domain.MatchSlot, error) {
	if m.err != nil {
		return nil, m.err
	}
	slot, ok := m.slots[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return slot, nil
}

func (m *mockMatchSlotRepository) ListAll(ctx context.Context) ([]*domain.MatchSlot, error) {
	return m.ListActive(ctx)
}

func (m *mockMatchSlotRepository) ListActive(ctx context.Context) ([]*domain.MatchSlot, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []*domain.MatchSlot
	for _, slot := range m.slots {
		if slot.Active {
			out = append(out, slot)
		}
	}
	return out, nil
}

func (m *mockMatchSlotRepository) Update(ctx context.Context, slot *domain.MatchSlot) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.slots[slot.ID]; !ok {
		return domain.ErrNotFound
	}
	m.updated = append(m.updated, slot)
	m.slots[slot.ID] = slot
	return nil
}

func (m *mockMatchSlotRepository) Delete(ctx context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.slots[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.slots, id)
	m.deletedID = id
	return nil
}

type mockRegistrationRepository struct {
	mu          sync.Mutex
	regs        map[string]*domain.Registration
	registerErr error
	listErr     error
	nextSeat    int
	canceled    []string
	deleted     []string
	completed   []string
	cleanup     map[string]bool
}

func newMockRegistrationRepository() *mockRegistrationRepository {
	return &mockRegistrationRepository{
		regs:    map[string]*domain.Registration{},
		cleanup: map[string]bool{},
	}
}

func (m *mockRegistrationRepository) Register(ctx context.Context, reg *domain.Registration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.registerErr != nil {
		return m.registerErr
	}
	m.nextSeat++
	reg.ID = "reg-" + strconv.Itoa(m.nextSeat)
	reg.SeatNumber = m.nextSeat
	reg.Status = domain.StatusRegistered
	m.regs[reg.ID] = reg
	return nil
}

func (m *mockRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.regs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return reg, nil
}

func (m *mockRegistrationRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Registration
	for _, reg := range m.regs {
		if reg.UserID == userID {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (m *mockRegistrationRepository) ListAll(ctx context.Context) ([]*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Registration
	for _, reg := range m.regs {
		out = append(out, reg)
	}
	return out, nil
}

func (m *mockRegistrationRepository) ListRegistered(ctx context.Context) ([]*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []*domain.Registration
	for _, reg := range m.regs {
		if reg.Status == domain.StatusRegistered {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (m *mockRegistrationRepository) ListRegisteredByMatchID(ctx context.Context, matchID string) ([]*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Registration
	for _, reg := range m.regs {
		if reg.MatchID == matchID && reg.Status == domain.StatusRegistered {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (m *mockRegistrationRepository) Cancel(ctx context.Context, id string) (*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.regs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if reg.Status == domain.StatusCanceled {
		return nil, domain.ErrAlreadyCanceled
	}
	prev := *reg
	reg.Status = domain.StatusCanceled
	reg.RoomCode = ""
	reg.RoomPassword = ""
	m.canceled = append(m.canceled, id)
	return &prev, nil
}

func (m *mockRegistrationRepository) Delete(ctx context.Context, id string) (*domain.Registration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.regs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	delete(m.regs, id)
	m.deleted = append(m.deleted, id)
	return reg, nil
}

func (m *mockRegistrationRepository) UpdateStatus(ctx context.Context, id string, status domain.RegistrationStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.regs[id]
	if !ok {
		return domain.ErrNotFound
	}
	reg.Status = status
	return nil
}

func (m *mockRegistrationRepository) MarkCompleted(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.regs[id]
	if !ok {
		return domain.ErrNotFound
	}
	reg.Status = domain.StatusCompleted
	m.completed = append(m.completed, id)
	return nil
}

func (m *mockRegistrationRepository) UpdateAutoCleanup(ctx context.Context, id string, autoCleanup bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.regs[id]; !ok {
		return domain.ErrNotFound
	}
	m.cleanup[id] = autoCleanup
	return nil
}

func (m *mockRegistrationRepository) SetRoomDetails(ctx context.Context, id, roomCode, roomPassword string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	reg, ok := m.regs[id]
	if !ok {
		return domain.ErrNotFound
	}
	reg.RoomCode = roomCode
	reg.RoomPassword = roomPassword
	return nil
}

func (m *mockRegistrationRepository) SetRoomDetailsByMatch(ctx context.Context, matchID, roomCode, roomPassword string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	count := 0
	for _, reg := range m.regs {
		if reg.MatchID == matchID && reg.Status == domain.StatusRegistered {
			reg.RoomCode = roomCode
			reg.RoomPassword = roomPassword
			count++
		}
	}
	return count, nil
}

type mockAuthorizer struct {
	admins map[string]bool
}

func (m *mockAuthorizer) IsAdmin(userID string) bool { return m.admins[userID] }

type mockNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (m *mockNotifier) Notify(ctx context.Context, message string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, message)
	return nil
}

type mockMailer struct {
	mu   sync.Mutex
	sent []string
}

func (m *mockMailer) Send(to, subject, html, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, to)
	return nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fixedClock returns 10:00 local on a fixed date, well before a 20:00 match.
func fixedClock() time.Time {
	return time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)
}

func newTestRegistrationService(t *testing.T, regRepo *mockRegistrationRepository, slotRepo *mockMatchSlotRepository, cache *slotcache.Cache) *registrationService {
	t.Helper()
	svc := NewRegistrationService(
		regRepo, slotRepo, cache,
		&mockAuthorizer{admins: map[string]bool{"admin-1": true}},
		nil, nil,
		testLogger(), time.UTC, 2*time.Second,
	)
	impl, ok := svc.(*registrationService)
	require.True(t, ok)
	impl.now = fixedClock
	return impl
}

func TestRegister(t *testing.T) {
	slot := &domain.MatchSlot{
		ID:        "slot-1",
		MatchType: "Squad",
		TimeOfDay: "20:00",
		Capacity:  2,
		EntryFee:  5000,
		Active:    true,
	}

	validReq := func() *domain.RegisterRequest {
		return &domain.RegisterRequest{
			UserID:       "user-1",
			Email:        "user1@example.com",
			MatchID:      "slot-1",
			LeaderIGN:    "Shadow",
			LeaderGameID: "123456",
		}
	}

	t.Run("assigns seat and denormalizes slot fields", func(t *testing.T) {
		regRepo := newMockRegistrationRepository()
		slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{"slot-1": slot}}
		cache := slotcache.New(testLogger())
		cache.Rebuild([]*domain.MatchSlot{slot}, nil)
		svc := newTestRegistrationService(t, regRepo, slotRepo, cache)

		reg, err := svc.Register(context.Background(), validReq())
		require.NoError(t, err)
		require.NotEmpty(t, reg.ID)
		assert.Equal(t, 1, reg.SeatNumber)
		assert.Equal(t, "Squad", reg.MatchType)
		assert.Equal(t, "20:00", reg.MatchTime)
		assert.Equal(t, int64(5000), reg.EntryFee)
		assert.True(t, reg.AutoCleanup)

		assert.Equal(t, 1, cache.OccupiedCount("slot-1"))
	})

	t.Run("missing fields", func(t *testing.T) {
		regRepo := newMockRegistrationRepository()
		slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{"slot-1": slot}}
		svc := newTestRegistrationService(t, regRepo, slotRepo, slotcache.New(testLogger()))

		req := validReq()
		req.LeaderIGN = "  "
		_, err := svc.Register(context.Background(), req)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("unknown match", func(t *testing.T) {
		regRepo := newMockRegistrationRepository()
		slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{}}
		svc := newTestRegistrationService(t, regRepo, slotRepo, slotcache.New(testLogger()))

		_, err := svc.Register(context.Background(), validReq())
		require.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("inactive match", func(t *testing.T) {
		inactive := *slot
		inactive.Active = false
		regRepo := newMockRegistrationRepository()
		slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{"slot-1": &inactive}}
		svc := newTestRegistrationService(t, regRepo, slotRepo, slotcache.New(testLogger()))

		_, err := svc.Register(context.Background(), validReq())
		require.ErrorIs(t, err, domain.ErrMatchInactive)
	})

	t.Run("window closed", func(t *testing.T) {
		regRepo := newMockRegistrationRepository()
		slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{"slot-1": slot}}
		svc := newTestRegistrationService(t, regRepo, slotRepo, slotcache.New(testLogger()))
		// ten minutes before match time, inside the 20 minute close window
		svc.now = func() time.Time {
			return time.Date(2025, 6, 15, 19, 50, 0, 0, time.UTC)
		}

		_, err := svc.Register(context.Background(), validReq())
		require.ErrorIs(t, err, domain.ErrWindowClosed)
	})

	t.Run("cache reports full before hitting the store", func(t *testing.T) {
		regRepo := newMockRegistrationRepository()
		slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{"slot-1": slot}}
		cache := slotcache.New(testLogger())
		cache.Rebuild([]*domain.MatchSlot{slot}, nil)
		cache.Book("slot-1", 1)
		cache.Book("slot-1", 2)
		svc := newTestRegistrationService(t, regRepo, slotRepo, cache)

		_, err := svc.Register(context.Background(), validReq())
		require.ErrorIs(t, err, domain.ErrMatchFull)
		assert.Empty(t, regRepo.regs)
	})

	t.Run("store rejections pass through", func(t *testing.T) {
		for _, storeErr := range []error{
			domain.ErrDuplicateRegistration,
			domain.ErrMatchFull,
			domain.ErrInsufficientFunds,
			domain.ErrContention,
		} {
			regRepo := newMockRegistrationRepository()
			regRepo.registerErr = storeErr
			slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{"slot-1": slot}}
			svc := newTestRegistrationService(t, regRepo, slotRepo, slotcache.New(testLogger()))

			_, err := svc.Register(context.Background(), validReq())
			require.ErrorIs(t, err, storeErr)
		}
	})

	t.Run("unexpected store error is wrapped", func(t *testing.T) {
		regRepo := newMockRegistrationRepository()
		regRepo.registerErr = errors.New("connection reset")
		slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{"slot-1": slot}}
		svc := newTestRegistrationService(t, regRepo, slotRepo, slotcache.New(testLogger()))

		_, err := svc.Register(context.Background(), validReq())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "persist registration")
	})
}

func TestCancel(t *testing.T) {
	slot := &domain.MatchSlot{ID: "slot-1", MatchType: "Squad", TimeOfDay: "20:00", Capacity: 4, Active: true}

	seed := func(t *testing.T) (*mockRegistrationRepository, *slotcache.Cache, *registrationService) {
		t.Helper()
		regRepo := newMockRegistrationRepository()
		slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{"slot-1": slot}}
		cache := slotcache.New(testLogger())
		cache.Rebuild([]*domain.MatchSlot{slot}, nil)
		svc := newTestRegistrationService(t, regRepo, slotRepo, cache)

		_, err := svc.Register(context.Background(), &domain.RegisterRequest{
			UserID: "user-1", Email: "u@example.com", MatchID: "slot-1",
			LeaderIGN: "Shadow", LeaderGameID: "123",
		})
		require.NoError(t, err)
		return regRepo, cache, svc
	}

	t.Run("owner cancels, seat released", func(t *testing.T) {
		regRepo, cache, svc := seed(t)
		err := svc.Cancel(context.Background(), "user-1", "reg-1")
		require.NoError(t, err)
		assert.Equal(t, []string{"reg-1"}, regRepo.canceled)
		occupied := cache.OccupiedCount("slot-1")
		assert.Equal(t, 0, occupied)
	})

	t.Run("admin cancels someone else's registration", func(t *testing.T) {
		_, _, svc := seed(t)
		err := svc.Cancel(context.Background(), "admin-1", "reg-1")
		require.NoError(t, err)
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		regRepo, _, svc := seed(t)
		err := svc.Cancel(context.Background(), "user-2", "reg-1")
		require.ErrorIs(t, err, domain.ErrForbidden)
		assert.Empty(t, regRepo.canceled)
	})

	t.Run("double cancel", func(t *testing.T) {
		_, _, svc := seed(t)
		require.NoError(t, svc.Cancel(context.Background(), "user-1", "reg-1"))
		err := svc.Cancel(context.Background(), "user-1", "reg-1")
		require.ErrorIs(t, err, domain.ErrAlreadyCanceled)
	})

	t.Run("unknown registration", func(t *testing.T) {
		_, _, svc := seed(t)
		err := svc.Cancel(context.Background(), "user-1", "reg-404")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestDelete(t *testing.T) {
	slot := &domain.MatchSlot{ID: "slot-1", MatchType: "Solo", TimeOfDay: "21:00", Capacity: 4, Active: true}

	t.Run("deleting a registered entry releases the seat", func(t *testing.T) {
		regRepo := newMockRegistrationRepository()
		slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{"slot-1": slot}}
		cache := slotcache.New(testLogger())
		cache.Rebuild([]*domain.MatchSlot{slot}, nil)
		svc := newTestRegistrationService(t, regRepo, slotRepo, cache)

		_, err := svc.Register(context.Background(), &domain.RegisterRequest{
			UserID: "user-1", Email: "u@example.com", MatchID: "slot-1",
			LeaderIGN: "Shadow", LeaderGameID: "123",
		})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(context.Background(), "user-1", "reg-1"))
		occupied := cache.OccupiedCount("slot-1")
		assert.Equal(t, 0, occupied)
		assert.Empty(t, regRepo.regs)
	})

	t.Run("deleting a canceled entry does not release again", func(t *testing.T) {
		regRepo := newMockRegistrationRepository()
		slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{"slot-1": slot}}
		cache := slotcache.New(testLogger())
		cache.Rebuild([]*domain.MatchSlot{slot}, nil)
		svc := newTestRegistrationService(t, regRepo, slotRepo, cache)

		for _, user := range []string{"user-1", "user-2"} {
			_, err := svc.Register(context.Background(), &domain.RegisterRequest{
				UserID: user, Email: user + "@example.com", MatchID: "slot-1",
				LeaderIGN: "x", LeaderGameID: "1",
			})
			require.NoError(t, err)
		}
		// user-1 cancels; the released seat 1 is taken by a rebuild elsewhere.
		require.NoError(t, svc.Cancel(context.Background(), "user-1", "reg-1"))
		cache.Book("slot-1", 1)

		require.NoError(t, svc.Delete(context.Background(), "user-1", "reg-1"))
		occupied := cache.OccupiedCount("slot-1")
		assert.Equal(t, 2, occupied, "seat 1 must stay booked for its new holder")
	})
}

func TestUpdateAutoCleanup(t *testing.T) {
	slot := &domain.MatchSlot{ID: "slot-1", MatchType: "Duo", TimeOfDay: "18:30", Capacity: 2, Active: true}
	regRepo := newMockRegistrationRepository()
	slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{"slot-1": slot}}
	svc := newTestRegistrationService(t, regRepo, slotRepo, slotcache.New(testLogger()))

	_, err := svc.Register(context.Background(), &domain.RegisterRequest{
		UserID: "user-1", Email: "u@example.com", MatchID: "slot-1",
		LeaderIGN: "x", LeaderGameID: "1",
	})
	require.NoError(t, err)

	t.Run("owner can flip the flag", func(t *testing.T) {
		require.NoError(t, svc.UpdateAutoCleanup(context.Background(), "user-1", "reg-1", false))
		assert.False(t, regRepo.cleanup["reg-1"])
	})

	t.Run("admin is not the owner", func(t *testing.T) {
		err := svc.UpdateAutoCleanup(context.Background(), "admin-1", "reg-1", true)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestOverrideStatus(t *testing.T) {
	slot := &domain.MatchSlot{ID: "slot-1", MatchType: "Squad", TimeOfDay: "20:00", Capacity: 2, Active: true}

	seed := func(t *testing.T) (*mockRegistrationRepository, *slotcache.Cache, *registrationService) {
		t.Helper()
		regRepo := newMockRegistrationRepository()
		slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{"slot-1": slot}}
		cache := slotcache.New(testLogger())
		cache.Rebuild([]*domain.MatchSlot{slot}, nil)
		svc := newTestRegistrationService(t, regRepo, slotRepo, cache)
		_, err := svc.Register(context.Background(), &domain.RegisterRequest{
			UserID: "user-1", Email: "u@example.com", MatchID: "slot-1",
			LeaderIGN: "x", LeaderGameID: "1",
		})
		require.NoError(t, err)
		return regRepo, cache, svc
	}

	t.Run("non-admin forbidden", func(t *testing.T) {
		_, _, svc := seed(t)
		err := svc.OverrideStatus(context.Background(), "user-1", "reg-1", domain.StatusCanceled)
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin cancel releases seat", func(t *testing.T) {
		regRepo, cache, svc := seed(t)
		require.NoError(t, svc.OverrideStatus(context.Background(), "admin-1", "reg-1", domain.StatusCanceled))
		assert.Equal(t, []string{"reg-1"}, regRepo.canceled)
		occupied := cache.OccupiedCount("slot-1")
		assert.Equal(t, 0, occupied)
	})

	t.Run("admin complete keeps seat", func(t *testing.T) {
		regRepo, cache, svc := seed(t)
		require.NoError(t, svc.OverrideStatus(context.Background(), "admin-1", "reg-1", domain.StatusCompleted))
		assert.Equal(t, []string{"reg-1"}, regRepo.completed)
		occupied := cache.OccupiedCount("slot-1")
		assert.Equal(t, 1, occupied)
	})

	t.Run("registered is not a valid override target", func(t *testing.T) {
		_, _, svc := seed(t)
		err := svc.OverrideStatus(context.Background(), "admin-1", "reg-1", domain.StatusRegistered)
		require.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestSetRoomDetails(t *testing.T) {
	slot := &domain.MatchSlot{ID: "slot-1", MatchType: "Squad", TimeOfDay: "20:00", Capacity: 4, Active: true}
	regRepo := newMockRegistrationRepository()
	slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{"slot-1": slot}}
	svc := newTestRegistrationService(t, regRepo, slotRepo, slotcache.New(testLogger()))

	for _, user := range []string{"user-1", "user-2"} {
		_, err := svc.Register(context.Background(), &domain.RegisterRequest{
			UserID: user, Email: user + "@example.com", MatchID: "slot-1",
			LeaderIGN: "x", LeaderGameID: "1",
		})
		require.NoError(t, err)
	}

	t.Run("non-admin forbidden", func(t *testing.T) {
		err := svc.SetRoomDetails(context.Background(), "user-1", "reg-1", "ROOM", "pass")
		require.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("single registration", func(t *testing.T) {
		require.NoError(t, svc.SetRoomDetails(context.Background(), "admin-1", "reg-1", "ROOM1", "pw"))
		assert.Equal(t, "ROOM1", regRepo.regs["reg-1"].RoomCode)
		assert.Empty(t, regRepo.regs["reg-2"].RoomCode)
	})

	t.Run("bulk by match", func(t *testing.T) {
		updated, err := svc.SetRoomDetailsByMatch(context.Background(), "admin-1", "slot-1", "ROOM2", "pw2")
		require.NoError(t, err)
		assert.Equal(t, 2, updated)
		assert.Equal(t, "ROOM2", regRepo.regs["reg-2"].RoomCode)
	})
}

func TestListMatchParticipants(t *testing.T) {
	slot := &domain.MatchSlot{ID: "slot-1", MatchType: "Squad", TimeOfDay: "20:00", Capacity: 4, Active: true}
	regRepo := newMockRegistrationRepository()
	slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{"slot-1": slot}}
	svc := newTestRegistrationService(t, regRepo, slotRepo, slotcache.New(testLogger()))

	_, err := svc.Register(context.Background(), &domain.RegisterRequest{
		UserID: "user-1", Email: "secret@example.com", MatchID: "slot-1",
		LeaderIGN: "Shadow", LeaderGameID: "123",
		Teammates: []domain.Teammate{{IGN: "Mate", GameID: "456"}},
	})
	require.NoError(t, err)

	participants, err := svc.ListMatchParticipants(context.Background(), "slot-1")
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, "Shadow", participants[0].LeaderIGN)
	assert.Equal(t, 1, participants[0].SeatNumber)
	require.Len(t, participants[0].Teammates, 1)
}

func TestListMyRegistrationsViews(t *testing.T) {
	slot := &domain.MatchSlot{ID: "slot-1", MatchType: "Squad", TimeOfDay: "08:00", Capacity: 4, Active: true}
	regRepo := newMockRegistrationRepository()
	slotRepo := &mockMatchSlotRepository{slots: map[string]*domain.MatchSlot{"slot-1": slot}}
	svc := newTestRegistrationService(t, regRepo, slotRepo, slotcache.New(testLogger()))

	regRepo.regs["reg-1"] = &domain.Registration{
		ID: "reg-1", UserID: "user-1", MatchID: "slot-1",
		MatchTime: "08:00", Status: domain.StatusRegistered,
	}

	// 10:00 is more than an hour past the 08:00 occurrence
	views, err := svc.ListMyRegistrations(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "08:00 AM", views[0].MatchTime12h)
	assert.True(t, views[0].IsCompleted)
}
