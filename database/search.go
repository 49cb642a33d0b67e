package database

import (
	"context"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// searchResultCap limits results per media kind. There is no pagination;
// browsing clients get at most this many rows per kind.
const searchResultCap = 50

// SearchFilters narrows a catalog search. Zero values mean "don't filter".
type SearchFilters struct {
	// Query matches case-insensitively as a substring of title/name or overview.
	Query string `json:"query,omitempty"`
	// GenreID matches items whose genre id list contains the id.
	GenreID int `json:"genreId,omitempty"`
	// MinRating filters by vote average.
	MinRating float64 `json:"minRating,omitempty"`
	// Year matches the release/first-air year.
	Year int `json:"year,omitempty"`
	// Kind restricts the search to one media kind; empty searches both.
	Kind MediaType `json:"kind,omitempty"`
}

// SearchResult holds the matches for both media kinds.
type SearchResult struct {
	Movies []Movie  `json:"movies"`
	Shows  []TVShow `json:"tvShows"`
	Total  int      `json:"total"`
}

// SearchContent searches movies and TV shows with the given filters.
// A non-empty query is recorded into the search-history log as a side effect;
// a failure to record is logged but never fails the search.
func (c *Client) SearchContent(ctx context.Context, filters SearchFilters) (*SearchResult, error) {
	var result SearchResult

	if filters.Kind == "" || filters.Kind == MediaTypeMovie {
		tx := c.applySearchFilters(
			c.db.WithContext(ctx).Model(&Movie{}),
			filters, "title", "release_date",
		)
		if err := tx.Find(&result.Movies).Error; err != nil {
			log.Error("failed to search movies", "error", err)
			return nil, err
		}
	}

	if filters.Kind == "" || filters.Kind == MediaTypeTV {
		tx := c.applySearchFilters(
			c.db.WithContext(ctx).Model(&TVShow{}),
			filters, "name", "first_air_date",
		)
		if err := tx.Find(&result.Shows).Error; err != nil {
			log.Error("failed to search tv shows", "error", err)
			return nil, err
		}
	}

	result.Total = len(result.Movies) + len(result.Shows)

	if query := strings.TrimSpace(filters.Query); query != "" {
		if err := c.RecordSearch(ctx, query); err != nil {
			log.Warn("failed to record search query", "query", query, "error", err)
		}
	}

	return &result, nil
}

func (c *Client) applySearchFilters(tx *gorm.DB, filters SearchFilters, titleColumn, dateColumn string) *gorm.DB {
	if query := strings.TrimSpace(filters.Query); query != "" {
		pattern := "%" + strings.ToLower(query) + "%"
		tx = tx.Where("LOWER("+titleColumn+") LIKE ? OR LOWER(overview) LIKE ?", pattern, pattern)
	}
	if filters.GenreID != 0 {
		// genre_ids is a JSON array like [28,12]. Comma-wrapping both sides
		// keeps genre 28 from matching a list that only holds 128 or 280.
		pattern := "%," + strconv.Itoa(filters.GenreID) + ",%"
		tx = tx.Where("',' || TRIM(genre_ids, '[]') || ',' LIKE ?", pattern)
	}
	if filters.MinRating > 0 {
		tx = tx.Where("vote_average >= ?", filters.MinRating)
	}
	if filters.Year != 0 {
		tx = tx.Where(dateColumn+" LIKE ?", strconv.Itoa(filters.Year)+"%")
	}
	return tx.Order("popularity DESC, vote_average DESC").Limit(searchResultCap)
}
