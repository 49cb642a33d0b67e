package userdata

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/reelrent/reelrent/database"
	"github.com/samber/lo"
)

// LineType distinguishes rental lines from purchase lines.
type LineType string

const (
	// LineTypeRent is a time-boxed rental line.
	LineTypeRent LineType = "rent"
	// LineTypeBuy is a permanent purchase line.
	LineTypeBuy LineType = "buy"
)

// CartLine is one pending-purchase line item. Prices are integer cents.
type CartLine struct {
	ID         string             `json:"id"`
	ContentID  int                `json:"contentId"`
	Title      string             `json:"title"`
	PosterPath string             `json:"posterPath"`
	PriceCents int64              `json:"priceCents"`
	LineType   LineType           `json:"lineType"`
	Kind       database.MediaType `json:"kind"`
	Snapshot   json.RawMessage    `json:"snapshot,omitempty"`
}

// CartLedger manages one user's cart.
type CartLedger struct {
	col *collection[CartLine]
}

// Add puts a line into the cart. At most one line exists per
// (contentId, lineType) pair: adding a duplicate replaces the existing line
// in place, last write wins on price and snapshot. The line id is always
// regenerated.
func (l *CartLedger) Add(ctx context.Context, line CartLine) (*CartLine, error) {
	if line.LineType != LineTypeRent && line.LineType != LineTypeBuy {
		return nil, fmt.Errorf("invalid cart line type %q", line.LineType)
	}
	line.ID = uuid.NewString()

	err := l.col.update(ctx, func(items []CartLine) []CartLine {
		idx := slices.IndexFunc(items, func(existing CartLine) bool {
			return existing.ContentID == line.ContentID && existing.LineType == line.LineType
		})
		if idx >= 0 {
			items[idx] = line
			return items
		}
		return append(items, line)
	})
	if err != nil {
		return nil, err
	}
	return &line, nil
}

// Remove deletes the line with the given id.
func (l *CartLedger) Remove(ctx context.Context, id string) error {
	return l.col.update(ctx, func(items []CartLine) []CartLine {
		return lo.Filter(items, func(line CartLine, _ int) bool {
			return line.ID != id
		})
	})
}

// Lines returns all cart lines.
func (l *CartLedger) Lines(ctx context.Context) ([]CartLine, error) {
	return l.col.load(ctx)
}

// TotalCents sums the line prices.
func (l *CartLedger) TotalCents(ctx context.Context) (int64, error) {
	items, err := l.col.load(ctx)
	if err != nil {
		return 0, err
	}
	return lo.SumBy(items, func(line CartLine) int64 {
		return line.PriceCents
	}), nil
}

// Clear empties the cart, e.g. after checkout.
func (l *CartLedger) Clear(ctx context.Context) error {
	return l.col.clear(ctx)
}
