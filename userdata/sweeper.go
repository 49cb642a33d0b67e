package userdata

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
	"github.com/reelrent/reelrent/database"
	"github.com/samber/lo"
)

// SweepStore is the store surface the sweeper needs: the user list, the
// per-user records and the catalog rented flags.
type SweepStore interface {
	Records
	AllUsers(ctx context.Context) ([]database.User, error)
	SetRentedFlags(ctx context.Context, kind database.MediaType, ids []int) error
}

// Sweeper periodically reconciles the isRented flags on the catalog rows
// with the per-user rental ledgers, so the flags track rental expiry even
// though expiry itself is never stored.
type Sweeper struct {
	store  SweepStore
	scopes *Scopes
	sched  gocron.Scheduler
}

// NewSweeper creates a sweeper running every interval. The job is a
// singleton: a run that overlaps the next tick is rescheduled, not doubled.
func NewSweeper(store SweepStore, interval time.Duration) (*Sweeper, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	s := &Sweeper{store: store, scopes: NewScopes(store), sched: sched}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			if err := s.Sweep(context.Background()); err != nil {
				log.Error("rental sweep failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sweep job: %w", err)
	}

	return s, nil
}

// Start starts the background schedule.
func (s *Sweeper) Start() {
	log.Info("starting rental sweeper")
	s.sched.Start()
}

// Stop shuts the scheduler down.
func (s *Sweeper) Stop() error {
	return s.sched.Shutdown()
}

// Sweep walks every user's rental ledger, collects the content ids with an
// active rental and writes the reconciled flag sets to the catalog.
func (s *Sweeper) Sweep(ctx context.Context) error {
	users, err := s.store.AllUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	activeMovies := make(map[int]struct{})
	activeShows := make(map[int]struct{})

	for _, user := range users {
		scope := s.scopes.Scope(user.ID)
		active, err := scope.Rentals.Active(ctx)
		if err != nil {
			return fmt.Errorf("failed to load rentals for user %s: %w", user.ID, err)
		}
		for _, rental := range active {
			if rental.Kind == database.MediaTypeTV {
				activeShows[rental.ContentID] = struct{}{}
			} else {
				activeMovies[rental.ContentID] = struct{}{}
			}
		}
	}

	if err := s.store.SetRentedFlags(ctx, database.MediaTypeMovie, lo.Keys(activeMovies)); err != nil {
		return fmt.Errorf("failed to reconcile movie rented flags: %w", err)
	}
	if err := s.store.SetRentedFlags(ctx, database.MediaTypeTV, lo.Keys(activeShows)); err != nil {
		return fmt.Errorf("failed to reconcile tv show rented flags: %w", err)
	}

	log.Debug("rental sweep completed",
		"users", len(users),
		"activeMovies", len(activeMovies),
		"activeShows", len(activeShows),
	)
	return nil
}
