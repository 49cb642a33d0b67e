package userdata

import (
	"context"
	"time"

	"github.com/reelrent/reelrent/database"
	"github.com/samber/lo"
)

// Favorite is one entry in the per-user favorites list. This list predates
// the favorite flag on the catalog rows and is kept as the per-user record;
// identity is (contentId, kind) since movies and shows share ids.
type Favorite struct {
	ContentID  int                `json:"contentId"`
	Title      string             `json:"title"`
	PosterPath string             `json:"posterPath"`
	Kind       database.MediaType `json:"kind"`
	AddedAt    time.Time          `json:"addedAt"`
}

// FavoritesLedger manages one user's favorites list.
type FavoritesLedger struct {
	col *collection[Favorite]
	now func() time.Time
}

// Add puts an item on the favorites list. Adding an item that is already
// present is a no-op.
func (l *FavoritesLedger) Add(ctx context.Context, ref ContentRef) error {
	return l.col.update(ctx, func(items []Favorite) []Favorite {
		exists := lo.ContainsBy(items, func(f Favorite) bool {
			return f.ContentID == ref.ID && f.Kind == ref.Kind
		})
		if exists {
			return items
		}
		return append(items, Favorite{
			ContentID:  ref.ID,
			Title:      ref.Title,
			PosterPath: ref.PosterPath,
			Kind:       ref.Kind,
			AddedAt:    l.now(),
		})
	})
}

// Remove takes an item off the favorites list.
func (l *FavoritesLedger) Remove(ctx context.Context, contentID int, kind database.MediaType) error {
	return l.col.update(ctx, func(items []Favorite) []Favorite {
		return lo.Filter(items, func(f Favorite, _ int) bool {
			return f.ContentID != contentID || f.Kind != kind
		})
	})
}

// Contains reports whether an item is on the favorites list.
func (l *FavoritesLedger) Contains(ctx context.Context, contentID int, kind database.MediaType) (bool, error) {
	items, err := l.col.load(ctx)
	if err != nil {
		return false, err
	}
	return lo.ContainsBy(items, func(f Favorite) bool {
		return f.ContentID == contentID && f.Kind == kind
	}), nil
}

// List returns the favorites in insertion order.
func (l *FavoritesLedger) List(ctx context.Context) ([]Favorite, error) {
	return l.col.load(ctx)
}

// Clear drops the favorites list.
func (l *FavoritesLedger) Clear(ctx context.Context) error {
	return l.col.clear(ctx)
}
