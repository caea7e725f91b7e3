package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"tourneyslots/internal/domain"
	"tourneyslots/internal/matchtime"
	"tourneyslots/internal/slotcache"
)

// ResetService clears yesterday's state shortly after midnight so every match
// starts the new day with an empty seat map. Registrations whose match has
// completed are deleted or archived according to each user's auto-cleanup
// preference.
type ResetService struct {
	regRepo   domain.RegistrationRepository
	cache     *slotcache.Cache
	sync      *SlotSync
	logger    *slog.Logger
	loc       *time.Location
	now       func() time.Time
	scheduler gocron.Scheduler
}

func NewResetService(
	regRepo domain.RegistrationRepository,
	cache *slotcache.Cache,
	sync *SlotSync,
	logger *slog.Logger,
	loc *time.Location,
) *ResetService {
	return &ResetService{
		regRepo: regRepo,
		cache:   cache,
		sync:    sync,
		logger:  logger,
		loc:     loc,
		now:     func() time.Time { return time.Now().In(loc) },
	}
}

// Run performs one reset pass. It is safe to run at any time of day; it only
// touches registrations whose match occurrence has actually completed.
func (s *ResetService) Run(ctx context.Context) error {
	now := s.now()
	s.logger.Info("daily reset pass starting", "local_time", now.Format(time.RFC3339))

	// Start the day from an empty seat map. The rebuild at the end
	// repopulates seats for matches that are still live.
	s.cache.ClearOccupied()

	regs, err := s.regRepo.ListRegistered(ctx)
	if err != nil {
		return fmt.Errorf("list registered registrations: %w", err)
	}

	var deleted, archived int
	for _, reg := range regs {
		if !matchtime.IsCompleted(reg.MatchTime, now) {
			continue
		}
		if reg.AutoCleanup {
			if _, err := s.regRepo.Delete(ctx, reg.ID); err != nil {
				s.logger.Error("reset delete failed", "registration_id", reg.ID, "err", err)
				continue
			}
			deleted++
		} else {
			if err := s.regRepo.MarkCompleted(ctx, reg.ID); err != nil {
				s.logger.Error("reset archive failed", "registration_id", reg.ID, "err", err)
				continue
			}
			archived++
		}
	}

	// Rebuild rather than patching the cache entry by entry. The pass above
	// changed the store; the rebuild folds everything back in one step.
	if err := s.sync.Rebuild(ctx); err != nil {
		return fmt.Errorf("rebuild slot cache: %w", err)
	}

	s.logger.Info("daily reset pass finished", "deleted", deleted, "archived", archived)
	return nil
}

// Start schedules the daily reset at 00:01 local time and returns immediately.
func (s *ResetService) Start() error {
	sched, err := gocron.NewScheduler(gocron.WithLocation(s.loc))
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}
	_, err = sched.NewJob(
		gocron.DailyJob(1, gocron.NewAtTimes(gocron.NewAtTime(0, 1, 0))),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()
			if err := s.Run(ctx); err != nil {
				s.logger.Error("scheduled daily reset failed", "err", err)
			}
		}),
	)
	if err != nil {
		return fmt.Errorf("schedule daily reset: %w", err)
	}
	sched.Start()
	s.scheduler = sched
	return nil
}

// Stop shuts the scheduler down, waiting for a running pass to finish.
func (s *ResetService) Stop() error {
	if s.scheduler == nil {
		return nil
	}
	return s.scheduler.Shutdown()
}
