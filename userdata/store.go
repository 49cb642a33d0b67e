// Package userdata implements the per-user ledgers: rentals, cart, watch
// history and the legacy favorites list. Each collection is a JSON array
// stored under a key namespaced by the user id. A per-key mutex, shared by
// every scope handed out for the same store, serializes load/mutate/persist,
// so two concurrent writes to the same list can never drop each other's
// update.
package userdata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/reelrent/reelrent/database"
)

// Records is the key/value surface the ledgers persist through.
type Records interface {
	GetRecord(ctx context.Context, key string) ([]byte, error)
	PutRecord(ctx context.Context, key string, value []byte) error
	DeleteRecord(ctx context.Context, key string) error
}

// ContentRef identifies a catalog item for ledger writes.
type ContentRef struct {
	ID         int                `json:"id"`
	Title      string             `json:"title"`
	PosterPath string             `json:"posterPath"`
	Kind       database.MediaType `json:"kind"`
}

// MovieRef builds a ContentRef from a catalog movie.
func MovieRef(m database.Movie) ContentRef {
	return ContentRef{ID: m.ID, Title: m.Title, PosterPath: m.PosterPath, Kind: database.MediaTypeMovie}
}

// ShowRef builds a ContentRef from a catalog TV show.
func ShowRef(s database.TVShow) ContentRef {
	return ContentRef{ID: s.ID, Title: s.Name, PosterPath: s.PosterPath, Kind: database.MediaTypeTV}
}

// Scopes hands out per-user Scope handles over one records store. Every
// scope drawn from the same Scopes shares its lock table, so concurrent
// writers to the same collection serialize even when each built its own
// handle. One Scopes per store; a scope built elsewhere locks nothing in
// common with it.
type Scopes struct {
	records Records
	locks   sync.Map // collection key -> *sync.Mutex
}

// NewScopes creates the scope registry for a records store.
func NewScopes(records Records) *Scopes {
	return &Scopes{records: records}
}

// Scope builds the ledgers for one user.
func (s *Scopes) Scope(userID string) *Scope {
	return &Scope{
		userID: userID,
		Rentals: &RentalLedger{
			col: newCollection[Rental](s, userID, "rentals"),
			now: time.Now,
		},
		Cart: &CartLedger{
			col: newCollection[CartLine](s, userID, "cart"),
		},
		History: &HistoryLedger{
			col: newCollection[HistoryEntry](s, userID, "history"),
			now: time.Now,
		},
		Favorites: &FavoritesLedger{
			col: newCollection[Favorite](s, userID, "favorites"),
			now: time.Now,
		},
	}
}

func (s *Scopes) lock(key string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(key, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// Scope binds the ledgers to one authenticated user. Handles are cheap and
// throwaway; the shared state lives in the Scopes they came from.
type Scope struct {
	userID string

	Rentals   *RentalLedger
	Cart      *CartLedger
	History   *HistoryLedger
	Favorites *FavoritesLedger
}

// UserID returns the id of the user this scope belongs to.
func (s *Scope) UserID() string { return s.userID }

// collection is a locked accessor for one JSON-array record.
type collection[T any] struct {
	key     string
	records Records
	mu      *sync.Mutex
}

func newCollection[T any](scopes *Scopes, userID, name string) *collection[T] {
	key := fmt.Sprintf("%s_%s", name, userID)
	return &collection[T]{
		key:     key,
		records: scopes.records,
		mu:      scopes.lock(key),
	}
}

// load reads the collection. A missing record is an empty collection.
func (c *collection[T]) load(ctx context.Context) ([]T, error) {
	raw, err := c.records.GetRecord(ctx, c.key)
	if errors.Is(err, database.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", c.key, err)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", c.key, err)
	}
	return items, nil
}

// update runs fn over the current items and persists the result, all under
// the collection lock.
func (c *collection[T]) update(ctx context.Context, fn func([]T) []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(fn(items))
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	return c.records.PutRecord(ctx, c.key, raw)
}

// clear drops the whole collection record.
func (c *collection[T]) clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.records.DeleteRecord(ctx, c.key)
}
