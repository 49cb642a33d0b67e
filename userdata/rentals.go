package userdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/reelrent/reelrent/database"
	"github.com/samber/lo"
)

// RentalWindow is how long a rental stays active. The window is fixed: it is
// computed once at creation and never per item.
const RentalWindow = 48 * time.Hour

// Rental is one rental record. A content id may appear in multiple records
// over time; repeat rentals append new rows rather than updating old ones.
type Rental struct {
	ID         string             `json:"id"`
	ContentID  int                `json:"contentId"`
	Title      string             `json:"title"`
	PosterPath string             `json:"posterPath"`
	Kind       database.MediaType `json:"kind"`
	PriceCents int64              `json:"priceCents"`
	RentedAt   time.Time          `json:"rentedAt"`
	ExpiresAt  time.Time          `json:"expiresAt"`
	Snapshot   json.RawMessage    `json:"snapshot,omitempty"`
}

// ActiveAt reports whether the rental is still active at the given instant.
// Active and expired are pure functions of time, never stored flags.
func (r Rental) ActiveAt(now time.Time) bool {
	return now.Before(r.ExpiresAt)
}

// RentalLedger manages one user's rental records.
type RentalLedger struct {
	col *collection[Rental]
	now func() time.Time
}

// Add appends a new rental with ExpiresAt = now + RentalWindow and returns it.
// snapshot, when non-nil, is stored verbatim alongside the record.
func (l *RentalLedger) Add(ctx context.Context, ref ContentRef, priceCents int64, snapshot any) (*Rental, error) {
	now := l.now()
	rental := Rental{
		ID:         uuid.NewString(),
		ContentID:  ref.ID,
		Title:      ref.Title,
		PosterPath: ref.PosterPath,
		Kind:       ref.Kind,
		PriceCents: priceCents,
		RentedAt:   now,
		ExpiresAt:  now.Add(RentalWindow),
	}
	if snapshot != nil {
		raw, err := json.Marshal(snapshot)
		if err != nil {
			return nil, fmt.Errorf("failed to encode rental snapshot: %w", err)
		}
		rental.Snapshot = raw
	}

	err := l.col.update(ctx, func(items []Rental) []Rental {
		return append(items, rental)
	})
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

// Remove deletes the rental record with the given id.
func (l *RentalLedger) Remove(ctx context.Context, id string) error {
	return l.col.update(ctx, func(items []Rental) []Rental {
		return lo.Filter(items, func(r Rental, _ int) bool {
			return r.ID != id
		})
	})
}

// All returns every rental record, active or not.
func (l *RentalLedger) All(ctx context.Context) ([]Rental, error) {
	return l.col.load(ctx)
}

// IsCurrentlyRented reports whether any rental for the content id is still
// active.
func (l *RentalLedger) IsCurrentlyRented(ctx context.Context, contentID int) (bool, error) {
	items, err := l.col.load(ctx)
	if err != nil {
		return false, err
	}
	now := l.now()
	return lo.SomeBy(items, func(r Rental) bool {
		return r.ContentID == contentID && r.ActiveAt(now)
	}), nil
}

// ActiveFor returns the active rental for a content id, or nil when none is
// active.
func (l *RentalLedger) ActiveFor(ctx context.Context, contentID int) (*Rental, error) {
	items, err := l.col.load(ctx)
	if err != nil {
		return nil, err
	}
	now := l.now()
	rental, found := lo.Find(items, func(r Rental) bool {
		return r.ContentID == contentID && r.ActiveAt(now)
	})
	if !found {
		return nil, nil
	}
	return &rental, nil
}

// Active returns the rentals whose window has not elapsed yet, evaluated at
// call time.
func (l *RentalLedger) Active(ctx context.Context) ([]Rental, error) {
	active, _, err := l.partition(ctx)
	return active, err
}

// Expired returns the rentals whose window has elapsed, evaluated at call
// time.
func (l *RentalLedger) Expired(ctx context.Context) ([]Rental, error) {
	_, expired, err := l.partition(ctx)
	return expired, err
}

// partition splits all rentals into active and expired against a single
// instant, so the two slices always form a clean partition.
func (l *RentalLedger) partition(ctx context.Context) (active, expired []Rental, err error) {
	items, err := l.col.load(ctx)
	if err != nil {
		return nil, nil, err
	}
	now := l.now()
	active, expired = lo.FilterReject(items, func(r Rental, _ int) bool {
		return r.ActiveAt(now)
	})
	return active, expired, nil
}

// Clear drops all rental records for this user.
func (l *RentalLedger) Clear(ctx context.Context) error {
	return l.col.clear(ctx)
}
