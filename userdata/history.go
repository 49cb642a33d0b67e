package userdata

import (
	"context"
	"time"

	"github.com/reelrent/reelrent/database"
	"github.com/samber/lo"
)

// Stock runtimes, in minutes. The mock catalog has no per-title runtime data.
const (
	movieDurationMinutes   = 120
	episodeDurationMinutes = 45
)

// HistoryEntry records one watched title. At most one entry exists per
// content id; rewatching moves the entry to the front with a fresh timestamp
// instead of accumulating duration.
type HistoryEntry struct {
	ContentID       int                `json:"contentId"`
	Title           string             `json:"title"`
	PosterPath      string             `json:"posterPath"`
	Kind            database.MediaType `json:"kind"`
	WatchedAt       time.Time          `json:"watchedAt"`
	DurationMinutes int                `json:"durationMinutes"`
}

// HistoryLedger manages one user's watch history.
type HistoryLedger struct {
	col *collection[HistoryEntry]
	now func() time.Time
}

// Add records a watch. An existing entry for the same content id is replaced
// and the new entry goes to the front.
func (l *HistoryLedger) Add(ctx context.Context, ref ContentRef) (*HistoryEntry, error) {
	duration := movieDurationMinutes
	if ref.Kind == database.MediaTypeTV {
		duration = episodeDurationMinutes
	}
	entry := HistoryEntry{
		ContentID:       ref.ID,
		Title:           ref.Title,
		PosterPath:      ref.PosterPath,
		Kind:            ref.Kind,
		WatchedAt:       l.now(),
		DurationMinutes: duration,
	}

	err := l.col.update(ctx, func(items []HistoryEntry) []HistoryEntry {
		kept := lo.Filter(items, func(e HistoryEntry, _ int) bool {
			return e.ContentID != ref.ID
		})
		return append([]HistoryEntry{entry}, kept...)
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Remove deletes the entry for a content id.
func (l *HistoryLedger) Remove(ctx context.Context, contentID int) error {
	return l.col.update(ctx, func(items []HistoryEntry) []HistoryEntry {
		return lo.Filter(items, func(e HistoryEntry, _ int) bool {
			return e.ContentID != contentID
		})
	})
}

// Entries returns the history, most recent first.
func (l *HistoryLedger) Entries(ctx context.Context) ([]HistoryEntry, error) {
	return l.col.load(ctx)
}

// WatchedMinutes sums the recorded durations.
func (l *HistoryLedger) WatchedMinutes(ctx context.Context) (int, error) {
	items, err := l.col.load(ctx)
	if err != nil {
		return 0, err
	}
	return lo.SumBy(items, func(e HistoryEntry) int {
		return e.DurationMinutes
	}), nil
}

// MoviesWatched counts the movie entries.
func (l *HistoryLedger) MoviesWatched(ctx context.Context) (int, error) {
	return l.countKind(ctx, database.MediaTypeMovie)
}

// SeriesWatched counts the TV show entries.
func (l *HistoryLedger) SeriesWatched(ctx context.Context) (int, error) {
	return l.countKind(ctx, database.MediaTypeTV)
}

func (l *HistoryLedger) countKind(ctx context.Context, kind database.MediaType) (int, error) {
	items, err := l.col.load(ctx)
	if err != nil {
		return 0, err
	}
	return lo.CountBy(items, func(e HistoryEntry) bool {
		return e.Kind == kind
	}), nil
}

// Clear drops the whole history.
func (l *HistoryLedger) Clear(ctx context.Context) error {
	return l.col.clear(ctx)
}
