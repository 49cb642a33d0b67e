package database

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
)

const (
	// maxStoredSearches caps the search_history table; older rows are evicted.
	maxStoredSearches = 50
	// defaultRecentSearches is the read-side cap on distinct queries.
	defaultRecentSearches = 10
)

// RecordSearch appends a trimmed query to the search-history log and evicts
// everything but the newest maxStoredSearches rows. Empty queries are ignored.
func (c *Client) RecordSearch(ctx context.Context, query string) error {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	entry := SearchEntry{Query: query, SearchedAt: time.Now()}
	if err := c.db.WithContext(ctx).Create(&entry).Error; err != nil {
		log.Error("failed to record search query", "error", err)
		return err
	}

	err := c.db.WithContext(ctx).Exec(
		`DELETE FROM search_history WHERE id NOT IN (
			SELECT id FROM search_history ORDER BY searched_at DESC, id DESC LIMIT ?
		)`, maxStoredSearches).Error
	if err != nil {
		log.Error("failed to trim search history", "error", err)
	}
	return err
}

// RecentSearches returns distinct queries, most recent first, capped at limit
// (default 10 when limit <= 0).
func (c *Client) RecentSearches(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		limit = defaultRecentSearches
	}

	var entries []SearchEntry
	result := c.db.WithContext(ctx).
		Order("searched_at DESC, id DESC").
		Find(&entries)
	if result.Error != nil {
		log.Error("failed to get search history", "error", result.Error)
		return nil, result.Error
	}

	queries := lo.Uniq(lo.Map(entries, func(e SearchEntry, _ int) string {
		return e.Query
	}))
	if len(queries) > limit {
		queries = queries[:limit]
	}
	return queries, nil
}

// ClearSearchHistory deletes the whole search-history log.
func (c *Client) ClearSearchHistory(ctx context.Context) error {
	err := c.db.WithContext(ctx).Exec(`DELETE FROM search_history`).Error
	if err != nil {
		log.Error("failed to clear search history", "error", err)
	}
	return err
}
