package database

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// catalog columns updated on conflict. The user flags (is_favorite,
// is_watched, is_rented) are deliberately absent so a re-seed or catalog
// refresh never resets them.
var movieUpsertColumns = []string{
	"title", "overview", "poster_path", "backdrop_path", "release_date",
	"vote_average", "vote_count", "genre_ids", "adult", "original_language",
	"original_title", "popularity", "video", "updated_at",
}

// UpsertMovies inserts or updates catalog movies by id.
// Rows are written in one batch; there is no atomicity guarantee across
// separate Upsert calls.
func (c *Client) UpsertMovies(ctx context.Context, movies []Movie) error {
	if len(movies) == 0 {
		return nil
	}
	result := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(movieUpsertColumns),
	}).Create(&movies)
	if result.Error != nil {
		log.Error("failed to upsert movies", "error", result.Error)
	}
	return result.Error
}

// GetMovie returns the movie with the given id, or ErrNotFound.
func (c *Client) GetMovie(ctx context.Context, id int) (*Movie, error) {
	var movie Movie
	if err := c.db.WithContext(ctx).First(&movie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get movie", "id", id, "error", err)
		return nil, err
	}
	return &movie, nil
}

// PopularMovies returns up to limit movies ordered by popularity,
// ties broken by vote average.
func (c *Client) PopularMovies(ctx context.Context, limit int) ([]Movie, error) {
	var movies []Movie
	result := c.db.WithContext(ctx).
		Order("popularity DESC, vote_average DESC").
		Limit(limit).
		Find(&movies)
	if result.Error != nil {
		log.Error("failed to get popular movies", "error", result.Error)
		return nil, result.Error
	}
	return movies, nil
}

// ToggleMovieFavorite flips the favorite flag on a movie and returns the new
// state. Toggling twice restores the original state.
func (c *Client) ToggleMovieFavorite(ctx context.Context, id int) (bool, error) {
	movie, err := c.GetMovie(ctx, id)
	if err != nil {
		return false, err
	}

	newState := !movie.IsFavorite
	err = c.db.WithContext(ctx).Model(&Movie{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_favorite": newState, "updated_at": time.Now()}).Error
	if err != nil {
		log.Error("failed to toggle movie favorite", "id", id, "error", err)
		return false, err
	}
	return newState, nil
}

// FavoriteMovies returns all favorited movies, most recently touched first.
func (c *Client) FavoriteMovies(ctx context.Context) ([]Movie, error) {
	var movies []Movie
	result := c.db.WithContext(ctx).
		Where("is_favorite = ?", true).
		Order("updated_at DESC").
		Find(&movies)
	if result.Error != nil {
		log.Error("failed to get favorite movies", "error", result.Error)
		return nil, result.Error
	}
	return movies, nil
}

// SetMovieWatched sets the watched flag on a movie.
func (c *Client) SetMovieWatched(ctx context.Context, id int, watched bool) error {
	result := c.db.WithContext(ctx).Model(&Movie{}).
		Where("id = ?", id).
		Update("is_watched", watched)
	if result.Error != nil {
		log.Error("failed to set movie watched flag", "id", id, "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRentedFlags reconciles the rented flag for one media kind: ids are the
// content ids with at least one active rental, everything else is cleared.
// UpdateColumn is used so reconciliation doesn't churn updated_at and thereby
// reshuffle the favorites ordering.
func (c *Client) SetRentedFlags(ctx context.Context, kind MediaType, ids []int) error {
	var model any = &Movie{}
	if kind == MediaTypeTV {
		model = &TVShow{}
	}

	if len(ids) == 0 {
		err := c.db.WithContext(ctx).Model(model).
			Where("is_rented = ?", true).
			UpdateColumn("is_rented", false).Error
		if err != nil {
			log.Error("failed to clear rented flags", "kind", kind, "error", err)
		}
		return err
	}

	err := c.db.WithContext(ctx).Model(model).
		Where("id IN ? AND is_rented = ?", ids, false).
		UpdateColumn("is_rented", true).Error
	if err != nil {
		log.Error("failed to set rented flags", "kind", kind, "error", err)
		return err
	}

	err = c.db.WithContext(ctx).Model(model).
		Where("id NOT IN ? AND is_rented = ?", ids, true).
		UpdateColumn("is_rented", false).Error
	if err != nil {
		log.Error("failed to clear stale rented flags", "kind", kind, "error", err)
	}
	return err
}
