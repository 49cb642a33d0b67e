// Package catalog is the browsing facade over the embedded store. It layers
// a short-lived memory cache over the catalog reads and falls back to the
// built-in data when the store cannot serve a read, so browsing degrades
// instead of failing. Writes never fall back.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/reelrent/reelrent/database"
)

const defaultPopularLimit = 20

// Catalog serves the browsing surface.
type Catalog struct {
	store database.Store

	movieCache *prefixedCache[[]database.Movie]
	showCache  *prefixedCache[[]database.TVShow]
	genreCache *prefixedCache[[]database.Genre]
}

// New creates a catalog over the given store. Cached reads expire after ttl.
func New(store database.Store, ttl time.Duration) *Catalog {
	backing := newMemoryCache(ttl)
	return &Catalog{
		store:      store,
		movieCache: newPrefixedCache[[]database.Movie](backing, "movies:", ttl),
		showCache:  newPrefixedCache[[]database.TVShow](backing, "shows:", ttl),
		genreCache: newPrefixedCache[[]database.Genre](backing, "genres:", ttl),
	}
}

// Initialize seeds the store with the built-in catalog when it is empty.
// A store that already holds movies is left untouched, so repeated startups
// never clobber the interaction flags on existing rows.
func (c *Catalog) Initialize(ctx context.Context) error {
	stats, err := c.store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("failed to inspect store: %w", err)
	}
	if stats.Movies > 0 || stats.Shows > 0 {
		log.Debug("catalog already seeded", "movies", stats.Movies, "shows", stats.Shows)
		return nil
	}

	log.Info("seeding catalog")
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return c.store.UpsertMovies(gctx, seedMovies())
	})
	g.Go(func() error {
		return c.store.UpsertShows(gctx, seedShows())
	})
	g.Go(func() error {
		return c.store.UpsertGenres(gctx, seedGenres())
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}
	return nil
}

// PopularMovies returns the catalog movies ordered by popularity.
func (c *Catalog) PopularMovies(ctx context.Context) ([]database.Movie, error) {
	if cached, err := c.movieCache.get(ctx, "popular"); err == nil {
		return cached, nil
	}

	movies, err := c.store.PopularMovies(ctx, defaultPopularLimit)
	if err != nil {
		log.Warn("store unavailable, serving built-in movies", "error", err)
		return fallbackMovies(), nil
	}
	if err := c.movieCache.set(ctx, "popular", movies); err != nil {
		log.Warn("failed to cache popular movies", "error", err)
	}
	return movies, nil
}

// PopularShows returns the catalog TV shows ordered by popularity.
func (c *Catalog) PopularShows(ctx context.Context) ([]database.TVShow, error) {
	if cached, err := c.showCache.get(ctx, "popular"); err == nil {
		return cached, nil
	}

	shows, err := c.store.PopularShows(ctx, defaultPopularLimit)
	if err != nil {
		log.Warn("store unavailable, serving built-in shows", "error", err)
		return fallbackShows(), nil
	}
	if err := c.showCache.set(ctx, "popular", shows); err != nil {
		log.Warn("failed to cache popular shows", "error", err)
	}
	return shows, nil
}

// MovieDetails returns a single movie. A missing id is database.ErrNotFound;
// the built-in data only steps in when the store itself fails.
func (c *Catalog) MovieDetails(ctx context.Context, id int) (*database.Movie, error) {
	movie, err := c.store.GetMovie(ctx, id)
	if err == nil {
		return movie, nil
	}
	if errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	log.Warn("store unavailable, serving built-in movie", "id", id, "error", err)
	seeded, found := lo.Find(seedMovies(), func(m database.Movie) bool { return m.ID == id })
	if !found {
		return nil, database.ErrNotFound
	}
	return &seeded, nil
}

// ShowDetails returns a single TV show, with the same fallback rules as
// MovieDetails.
func (c *Catalog) ShowDetails(ctx context.Context, id int) (*database.TVShow, error) {
	show, err := c.store.GetShow(ctx, id)
	if err == nil {
		return show, nil
	}
	if errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	log.Warn("store unavailable, serving built-in show", "id", id, "error", err)
	seeded, found := lo.Find(seedShows(), func(s database.TVShow) bool { return s.ID == id })
	if !found {
		return nil, database.ErrNotFound
	}
	return &seeded, nil
}

// Genres returns the genre reference data.
func (c *Catalog) Genres(ctx context.Context) ([]database.Genre, error) {
	if cached, err := c.genreCache.get(ctx, "all"); err == nil {
		return cached, nil
	}

	genres, err := c.store.Genres(ctx)
	if err != nil {
		log.Warn("store unavailable, serving built-in genres", "error", err)
		return seedGenres(), nil
	}
	if err := c.genreCache.set(ctx, "all", genres); err != nil {
		log.Warn("failed to cache genres", "error", err)
	}
	return genres, nil
}

// Search runs a catalog search. On store failure the query is matched against
// the built-in data by title and overview, which mirrors the store's own
// text matching; structured filters require the store.
func (c *Catalog) Search(ctx context.Context, filters database.SearchFilters) (*database.SearchResult, error) {
	result, err := c.store.SearchContent(ctx, filters)
	if err == nil {
		return result, nil
	}

	log.Warn("store unavailable, searching built-in data", "query", filters.Query, "error", err)
	return fallbackSearch(filters), nil
}

// ToggleFavorite flips the favorite flag on a catalog row and returns the new
// value.
func (c *Catalog) ToggleFavorite(ctx context.Context, kind database.MediaType, id int) (bool, error) {
	var (
		favorite bool
		err      error
	)
	switch kind {
	case database.MediaTypeTV:
		favorite, err = c.store.ToggleShowFavorite(ctx, id)
	default:
		favorite, err = c.store.ToggleMovieFavorite(ctx, id)
	}
	if err != nil {
		return false, err
	}
	c.invalidateLists(ctx)
	return favorite, nil
}

// SetWatched sets the watched flag on a catalog row.
func (c *Catalog) SetWatched(ctx context.Context, kind database.MediaType, id int, watched bool) error {
	var err error
	switch kind {
	case database.MediaTypeTV:
		err = c.store.SetShowWatched(ctx, id, watched)
	default:
		err = c.store.SetMovieWatched(ctx, id, watched)
	}
	if err != nil {
		return err
	}
	c.invalidateLists(ctx)
	return nil
}

// Favorites holds the flagged rows of both kinds.
type Favorites struct {
	Movies []database.Movie  `json:"movies"`
	Shows  []database.TVShow `json:"shows"`
}

// Favorites returns all catalog rows with the favorite flag set.
func (c *Catalog) Favorites(ctx context.Context) (*Favorites, error) {
	movies, err := c.store.FavoriteMovies(ctx)
	if err != nil {
		return nil, err
	}
	shows, err := c.store.FavoriteShows(ctx)
	if err != nil {
		return nil, err
	}
	return &Favorites{Movies: movies, Shows: shows}, nil
}

// RecentSearches returns the most recent distinct queries.
func (c *Catalog) RecentSearches(ctx context.Context, limit int) ([]string, error) {
	return c.store.RecentSearches(ctx, limit)
}

// ClearSearchHistory drops the search log.
func (c *Catalog) ClearSearchHistory(ctx context.Context) error {
	return c.store.ClearSearchHistory(ctx)
}

// Stats returns catalog row counts.
func (c *Catalog) Stats(ctx context.Context) (*database.Stats, error) {
	return c.store.Stats(ctx)
}

func (c *Catalog) invalidateLists(ctx context.Context) {
	if err := c.movieCache.delete(ctx, "popular"); err != nil {
		log.Debug("failed to invalidate movie cache", "error", err)
	}
	if err := c.showCache.delete(ctx, "popular"); err != nil {
		log.Debug("failed to invalidate show cache", "error", err)
	}
}

func fallbackMovies() []database.Movie {
	movies := seedMovies()
	sort.SliceStable(movies, func(i, j int) bool {
		return movies[i].Popularity > movies[j].Popularity
	})
	return movies
}

func fallbackShows() []database.TVShow {
	shows := seedShows()
	sort.SliceStable(shows, func(i, j int) bool {
		return shows[i].Popularity > shows[j].Popularity
	})
	return shows
}

func fallbackSearch(filters database.SearchFilters) *database.SearchResult {
	query := strings.ToLower(strings.TrimSpace(filters.Query))
	matches := func(title, overview string) bool {
		if query == "" {
			return true
		}
		return strings.Contains(strings.ToLower(title), query) ||
			strings.Contains(strings.ToLower(overview), query)
	}

	result := &database.SearchResult{}
	if filters.Kind != database.MediaTypeTV {
		result.Movies = lo.Filter(fallbackMovies(), func(m database.Movie, _ int) bool {
			return matches(m.Title, m.Overview)
		})
	}
	if filters.Kind != database.MediaTypeMovie {
		result.Shows = lo.Filter(fallbackShows(), func(s database.TVShow, _ int) bool {
			return matches(s.Name, s.Overview)
		})
	}
	result.Total = len(result.Movies) + len(result.Shows)
	return result
}
