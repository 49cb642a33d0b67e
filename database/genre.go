package database

import (
	"context"

	"github.com/charmbracelet/log"
	"gorm.io/gorm/clause"
)

// UpsertGenres inserts genres, ignoring ids that already exist. Genre rows are
// reference data and never updated after the first write.
func (c *Client) UpsertGenres(ctx context.Context, genres []Genre) error {
	if len(genres) == 0 {
		return nil
	}
	result := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&genres)
	if result.Error != nil {
		log.Error("failed to upsert genres", "error", result.Error)
	}
	return result.Error
}

// Genres returns all genres ordered by name.
func (c *Client) Genres(ctx context.Context) ([]Genre, error) {
	var genres []Genre
	result := c.db.WithContext(ctx).Order("name").Find(&genres)
	if result.Error != nil {
		log.Error("failed to get genres", "error", result.Error)
		return nil, result.Error
	}
	return genres, nil
}
