package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"tourneyslots/internal/domain"
	"tourneyslots/internal/matchtime"
	"tourneyslots/internal/slotcache"
)

const notifyTimeout = 10 * time.Second

type registrationService struct {
	regRepo        domain.RegistrationRepository
	slotRepo       domain.MatchSlotRepository
	cache          *slotcache.Cache
	authorizer     domain.Authorizer
	notifier       domain.Notifier
	mailer         domain.Mailer
	logger         *slog.Logger
	now            func() time.Time
	contextTimeout time.Duration
}

// NewRegistrationService creates the registration workflow service. loc is the
// tournament's local timezone used for all window and completion checks.
func NewRegistrationService(
	regRepo domain.RegistrationRepository,
	slotRepo domain.MatchSlotRepository,
	cache *slotcache.Cache,
	authorizer domain.Authorizer,
	notifier domain.Notifier,
	mailer domain.Mailer,
	logger *slog.Logger,
	loc *time.Location,
	timeout time.Duration,
) domain.RegistrationService {
	return &registrationService{
		regRepo:        regRepo,
		slotRepo:       slotRepo,
		cache:          cache,
		authorizer:     authorizer,
		notifier:       notifier,
		mailer:         mailer,
		logger:         logger,
		now:            func() time.Time { return time.Now().In(loc) },
		contextTimeout: timeout,
	}
}

func (s *registrationService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.Registration, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if req.UserID == "" || req.Email == "" || req.MatchID == "" ||
		strings.TrimSpace(req.LeaderIGN) == "" || strings.TrimSpace(req.LeaderGameID) == "" {
		return nil, fmt.Errorf("%w: missing required registration fields", domain.ErrInvalidInput)
	}

	slot, err := s.slotRepo.GetByID(ctx, req.MatchID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get match slot: %w", err)
	}
	if !slot.Active {
		return nil, domain.ErrMatchInactive
	}
	if !matchtime.IsRegistrationOpen(slot.TimeOfDay, s.now()) {
		return nil, domain.ErrWindowClosed
	}

	// Fast fail from the cache. Advisory only: the repository re-verifies
	// capacity against the store inside the registration transaction.
	if _, ok := s.cache.Capacity(req.MatchID); ok {
		if _, free := s.cache.NextAvailableSeat(req.MatchID); !free {
			return nil, domain.ErrMatchFull
		}
	}

	reg := &domain.Registration{
		UserID:       req.UserID,
		Email:        req.Email,
		MatchID:      slot.ID,
		MatchType:    slot.MatchType,
		MatchTime:    slot.TimeOfDay,
		LeaderIGN:    strings.TrimSpace(req.LeaderIGN),
		LeaderGameID: strings.TrimSpace(req.LeaderGameID),
		Teammates:    req.Teammates,
		EntryFee:     slot.EntryFee,
		AutoCleanup:  true,
		ClientTime:   req.ClientTime,
		CreatedAt:    s.now(),
	}
	if err := s.regRepo.Register(ctx, reg); err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound),
			errors.Is(err, domain.ErrMatchInactive),
			errors.Is(err, domain.ErrDuplicateRegistration),
			errors.Is(err, domain.ErrMatchFull),
			errors.Is(err, domain.ErrNoSeatAvailable),
			errors.Is(err, domain.ErrInsufficientFunds),
			errors.Is(err, domain.ErrContention):
			return nil, err
		}
		return nil, fmt.Errorf("persist registration: %w", err)
	}

	if !s.cache.Book(reg.MatchID, reg.SeatNumber) {
		// Unknown match in the cache means it is stale (e.g. slot added since
		// the last rebuild). The store already holds the truth.
		s.logger.Warn("cache does not know match after successful registration",
			"match_id", reg.MatchID, "seat", reg.SeatNumber)
	}

	s.notifyAsync(fmt.Sprintf(
		"*New Tournament Registration!*\n*User:* `%s`\n*Match:* `%s` (%s at %s)\n*Seat:* `%d`\n*Registration:* `%s`",
		reg.UserID, reg.MatchID, reg.MatchType, reg.MatchTime, reg.SeatNumber, reg.ID))
	s.mailAsync(reg.Email,
		fmt.Sprintf("Seat %d confirmed for %s", reg.SeatNumber, reg.MatchType),
		fmt.Sprintf("You are registered for %s at %s. Your seat number is %d.",
			reg.MatchType, matchtime.Format12Hour(reg.MatchTime), reg.SeatNumber))

	return reg, nil
}

func (s *registrationService) ListMyRegistrations(ctx context.Context, userID string) ([]*domain.RegistrationView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	regs, err := s.regRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	return s.toViews(regs), nil
}

func (s *registrationService) toViews(regs []*domain.Registration) []*domain.RegistrationView {
	now := s.now()
	views := make([]*domain.RegistrationView, 0, len(regs))
	for _, reg := range regs {
		views = append(views, &domain.RegistrationView{
			Registration: reg,
			MatchTime12h: matchtime.Format12Hour(reg.MatchTime),
			IsCompleted:  matchtime.IsCompleted(reg.MatchTime, now),
		})
	}
	return views
}

func (s *registrationService) ListMatchParticipants(ctx context.Context, matchID string) ([]*domain.MatchParticipant, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if matchID == "" {
		return nil, fmt.Errorf("%w: match id is required", domain.ErrInvalidInput)
	}
	regs, err := s.regRepo.ListRegisteredByMatchID(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("list match registrations: %w", err)
	}
	participants := make([]*domain.MatchParticipant, 0, len(regs))
	for _, reg := range regs {
		teammates := reg.Teammates
		if teammates == nil {
			teammates = []domain.Teammate{}
		}
		participants = append(participants, &domain.MatchParticipant{
			LeaderIGN:    reg.LeaderIGN,
			LeaderGameID: reg.LeaderGameID,
			SeatNumber:   reg.SeatNumber,
			Teammates:    teammates,
		})
	}
	return participants, nil
}

// canModify reports whether the actor owns the registration or is an admin.
func (s *registrationService) canModify(actorID string, reg *domain.Registration) bool {
	return actorID != "" && (actorID == reg.UserID || s.authorizer.IsAdmin(actorID))
}

func (s *registrationService) Cancel(ctx context.Context, actorID, registrationID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get registration: %w", err)
	}
	if !s.canModify(actorID, reg) {
		return domain.ErrForbidden
	}

	prev, err := s.regRepo.Cancel(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyCanceled) || errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("cancel registration: %w", err)
	}
	if prev.Status == domain.StatusRegistered {
		s.cache.Release(prev.MatchID, prev.SeatNumber)
	}

	s.notifyAsync(fmt.Sprintf(
		"*Registration Canceled*\n*User:* `%s`\n*Match:* `%s` (%s)\n*Seat released:* `%d`",
		prev.UserID, prev.MatchID, prev.MatchType, prev.SeatNumber))
	s.mailAsync(prev.Email,
		fmt.Sprintf("Registration canceled for %s", prev.MatchType),
		fmt.Sprintf("Your registration for %s at %s was canceled and seat %d was released.",
			prev.MatchType, matchtime.Format12Hour(prev.MatchTime), prev.SeatNumber))
	return nil
}

func (s *registrationService) Delete(ctx context.Context, actorID, registrationID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get registration: %w", err)
	}
	if !s.canModify(actorID, reg) {
		return domain.ErrForbidden
	}

	prev, err := s.regRepo.Delete(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete registration: %w", err)
	}
	// A canceled registration already gave its seat back; releasing again
	// would free somebody else's seat.
	if prev.Status == domain.StatusRegistered {
		s.cache.Release(prev.MatchID, prev.SeatNumber)
	}

	s.notifyAsync(fmt.Sprintf(
		"*Registration Deleted*\n*User:* `%s`\n*Match:* `%s` (%s)\n*Seat:* `%d`",
		prev.UserID, prev.MatchID, prev.MatchType, prev.SeatNumber))
	return nil
}

func (s *registrationService) UpdateAutoCleanup(ctx context.Context, actorID, registrationID string, autoCleanup bool) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	reg, err := s.regRepo.GetByID(ctx, registrationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get registration: %w", err)
	}
	if actorID == "" || actorID != reg.UserID {
		return domain.ErrForbidden
	}
	if err := s.regRepo.UpdateAutoCleanup(ctx, registrationID, autoCleanup); err != nil {
		return fmt.Errorf("update auto-cleanup preference: %w", err)
	}
	return nil
}

func (s *registrationService) ListAllRegistrations(ctx context.Context, actorID string) ([]*domain.RegistrationView, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !s.authorizer.IsAdmin(actorID) {
		return nil, domain.ErrForbidden
	}
	regs, err := s.regRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all registrations: %w", err)
	}
	return s.toViews(regs), nil
}

func (s *registrationService) OverrideStatus(ctx context.Context, actorID, registrationID string, status domain.RegistrationStatus) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !s.authorizer.IsAdmin(actorID) {
		return domain.ErrForbidden
	}

	switch status {
	case domain.StatusCanceled:
		prev, err := s.regRepo.Cancel(ctx, registrationID)
		if err != nil {
			if errors.Is(err, domain.ErrAlreadyCanceled) || errors.Is(err, domain.ErrNotFound) {
				return err
			}
			return fmt.Errorf("cancel registration: %w", err)
		}
		if prev.Status == domain.StatusRegistered {
			s.cache.Release(prev.MatchID, prev.SeatNumber)
		}
		return nil
	case domain.StatusCompleted:
		if err := s.regRepo.MarkCompleted(ctx, registrationID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return domain.ErrNotFound
			}
			return fmt.Errorf("mark registration completed: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: unsupported status override %q", domain.ErrInvalidInput, status)
	}
}

func (s *registrationService) SetRoomDetails(ctx context.Context, actorID, registrationID, roomCode, roomPassword string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !s.authorizer.IsAdmin(actorID) {
		return domain.ErrForbidden
	}
	if registrationID == "" {
		return fmt.Errorf("%w: registration id is required", domain.ErrInvalidInput)
	}
	if err := s.regRepo.SetRoomDetails(ctx, registrationID, roomCode, roomPassword); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("set room details: %w", err)
	}
	return nil
}

func (s *registrationService) SetRoomDetailsByMatch(ctx context.Context, actorID, matchID, roomCode, roomPassword string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if !s.authorizer.IsAdmin(actorID) {
		return 0, domain.ErrForbidden
	}
	if matchID == "" {
		return 0, fmt.Errorf("%w: match id is required", domain.ErrInvalidInput)
	}
	updated, err := s.regRepo.SetRoomDetailsByMatch(ctx, matchID, roomCode, roomPassword)
	if err != nil {
		return 0, fmt.Errorf("set room details by match: %w", err)
	}
	return updated, nil
}

// notifyAsync posts to the ops channel after the primary operation committed.
// Failures are logged and never surfaced.
func (s *registrationService) notifyAsync(message string) {
	if s.notifier == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := s.notifier.Notify(ctx, message); err != nil {
			s.logger.Warn("notifier failed", "err", err)
		}
	}()
}

func (s *registrationService) mailAsync(to, subject, text string) {
	if s.mailer == nil || to == "" {
		return
	}
	go func() {
		if err := s.mailer.Send(to, subject, "", text); err != nil {
			s.logger.Warn("confirmation email failed", "to", to, "err", err)
		}
	}()
}
