package database

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var showUpsertColumns = []string{
	"name", "overview", "poster_path", "backdrop_path", "first_air_date",
	"vote_average", "vote_count", "genre_ids", "adult", "original_language",
	"original_name", "popularity", "origin_country", "updated_at",
}

// UpsertShows inserts or updates catalog TV shows by id, preserving the user
// flags on existing rows.
func (c *Client) UpsertShows(ctx context.Context, shows []TVShow) error {
	if len(shows) == 0 {
		return nil
	}
	result := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(showUpsertColumns),
	}).Create(&shows)
	if result.Error != nil {
		log.Error("failed to upsert tv shows", "error", result.Error)
	}
	return result.Error
}

// GetShow returns the TV show with the given id, or ErrNotFound.
func (c *Client) GetShow(ctx context.Context, id int) (*TVShow, error) {
	var show TVShow
	if err := c.db.WithContext(ctx).First(&show, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get tv show", "id", id, "error", err)
		return nil, err
	}
	return &show, nil
}

// PopularShows returns up to limit TV shows ordered by popularity,
// ties broken by vote average.
func (c *Client) PopularShows(ctx context.Context, limit int) ([]TVShow, error) {
	var shows []TVShow
	result := c.db.WithContext(ctx).
		Order("popularity DESC, vote_average DESC").
		Limit(limit).
		Find(&shows)
	if result.Error != nil {
		log.Error("failed to get popular tv shows", "error", result.Error)
		return nil, result.Error
	}
	return shows, nil
}

// ToggleShowFavorite flips the favorite flag on a TV show and returns the new
// state.
func (c *Client) ToggleShowFavorite(ctx context.Context, id int) (bool, error) {
	show, err := c.GetShow(ctx, id)
	if err != nil {
		return false, err
	}

	newState := !show.IsFavorite
	err = c.db.WithContext(ctx).Model(&TVShow{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_favorite": newState, "updated_at": time.Now()}).Error
	if err != nil {
		log.Error("failed to toggle tv show favorite", "id", id, "error", err)
		return false, err
	}
	return newState, nil
}

// FavoriteShows returns all favorited TV shows, most recently touched first.
func (c *Client) FavoriteShows(ctx context.Context) ([]TVShow, error) {
	var shows []TVShow
	result := c.db.WithContext(ctx).
		Where("is_favorite = ?", true).
		Order("updated_at DESC").
		Find(&shows)
	if result.Error != nil {
		log.Error("failed to get favorite tv shows", "error", result.Error)
		return nil, result.Error
	}
	return shows, nil
}

// SetShowWatched sets the watched flag on a TV show.
func (c *Client) SetShowWatched(ctx context.Context, id int, watched bool) error {
	result := c.db.WithContext(ctx).Model(&TVShow{}).
		Where("id = ?", id).
		Update("is_watched", watched)
	if result.Error != nil {
		log.Error("failed to set tv show watched flag", "id", id, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
