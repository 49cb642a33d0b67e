package catalog

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelrent/reelrent/database"
)

func newTestCatalog(t *testing.T) (*Catalog, *database.Client) {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return New(db, time.Minute), db
}

func TestCatalog_Initialize(t *testing.T) {
	cat, db := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, cat.Initialize(ctx))

	stats, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), stats.Movies)
	assert.Equal(t, int64(3), stats.Shows)
	assert.Equal(t, int64(19), stats.Genres)
}

func TestCatalog_InitializeIsIdempotent(t *testing.T) {
	cat, db := newTestCatalog(t)
	ctx := context.Background()

	require.NoError(t, cat.Initialize(ctx))

	// Flags set between startups must survive the second Initialize.
	_, err := db.ToggleMovieFavorite(ctx, 1)
	require.NoError(t, err)

	require.NoError(t, cat.Initialize(ctx))

	movie, err := db.GetMovie(ctx, 1)
	require.NoError(t, err)
	assert.True(t, movie.IsFavorite)
}

func TestCatalog_PopularMovies(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()
	require.NoError(t, cat.Initialize(ctx))

	movies, err := cat.PopularMovies(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 6)
	assert.Equal(t, "Spider-Man: Sem Volta para Casa", movies[0].Title)
	assert.Equal(t, "Duna: Parte Dois", movies[1].Title)
}

func TestCatalog_MovieDetails(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()
	require.NoError(t, cat.Initialize(ctx))

	movie, err := cat.MovieDetails(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Duna: Parte Dois", movie.Title)

	_, err = cat.MovieDetails(ctx, 404)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestCatalog_ToggleFavoriteInvalidatesCache(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()
	require.NoError(t, cat.Initialize(ctx))

	// Warm the cache.
	_, err := cat.PopularMovies(ctx)
	require.NoError(t, err)

	favorite, err := cat.ToggleFavorite(ctx, database.MediaTypeMovie, 3)
	require.NoError(t, err)
	assert.True(t, favorite)

	movies, err := cat.PopularMovies(ctx)
	require.NoError(t, err)
	assert.True(t, movies[0].IsFavorite)
}

func TestCatalog_Favorites(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()
	require.NoError(t, cat.Initialize(ctx))

	_, err := cat.ToggleFavorite(ctx, database.MediaTypeMovie, 1)
	require.NoError(t, err)
	_, err = cat.ToggleFavorite(ctx, database.MediaTypeTV, 2)
	require.NoError(t, err)

	favorites, err := cat.Favorites(ctx)
	require.NoError(t, err)
	assert.Len(t, favorites.Movies, 1)
	assert.Len(t, favorites.Shows, 1)
}

func TestCatalog_SearchRecordsHistory(t *testing.T) {
	cat, _ := newTestCatalog(t)
	ctx := context.Background()
	require.NoError(t, cat.Initialize(ctx))

	result, err := cat.Search(ctx, database.SearchFilters{Query: "duna"})
	require.NoError(t, err)
	require.Len(t, result.Movies, 1)

	queries, err := cat.RecentSearches(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"duna"}, queries)

	require.NoError(t, cat.ClearSearchHistory(ctx))
	queries, err = cat.RecentSearches(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, queries)
}

// failingStore errors on every read, to exercise the built-in fallbacks.
type failingStore struct {
	database.Store
}

var errStoreDown = errors.New("store down")

func (failingStore) PopularMovies(context.Context, int) ([]database.Movie, error) {
	return nil, errStoreDown
}

func (failingStore) PopularShows(context.Context, int) ([]database.TVShow, error) {
	return nil, errStoreDown
}

func (failingStore) GetMovie(context.Context, int) (*database.Movie, error) {
	return nil, errStoreDown
}

func (failingStore) GetShow(context.Context, int) (*database.TVShow, error) {
	return nil, errStoreDown
}

func (failingStore) Genres(context.Context) ([]database.Genre, error) {
	return nil, errStoreDown
}

func (failingStore) SearchContent(context.Context, database.SearchFilters) (*database.SearchResult, error) {
	return nil, errStoreDown
}

func TestCatalog_FallbackWhenStoreDown(t *testing.T) {
	cat := New(failingStore{}, time.Minute)
	ctx := context.Background()

	t.Run("popular movies", func(t *testing.T) {
		movies, err := cat.PopularMovies(ctx)
		require.NoError(t, err)
		require.Len(t, movies, 6)
		assert.Equal(t, "Spider-Man: Sem Volta para Casa", movies[0].Title)
	})

	t.Run("popular shows", func(t *testing.T) {
		shows, err := cat.PopularShows(ctx)
		require.NoError(t, err)
		require.Len(t, shows, 3)
		assert.Equal(t, "Stranger Things", shows[0].Name)
	})

	t.Run("movie details", func(t *testing.T) {
		movie, err := cat.MovieDetails(ctx, 5)
		require.NoError(t, err)
		assert.Equal(t, "Oppenheimer", movie.Title)

		_, err = cat.MovieDetails(ctx, 404)
		assert.ErrorIs(t, err, database.ErrNotFound)
	})

	t.Run("genres", func(t *testing.T) {
		genres, err := cat.Genres(ctx)
		require.NoError(t, err)
		assert.Len(t, genres, 19)
	})

	t.Run("search", func(t *testing.T) {
		result, err := cat.Search(ctx, database.SearchFilters{Query: "BARBIE"})
		require.NoError(t, err)
		require.Len(t, result.Movies, 1)
		assert.Equal(t, "Barbie", result.Movies[0].Title)
		assert.Equal(t, 1, result.Total)
	})

	t.Run("search by kind", func(t *testing.T) {
		result, err := cat.Search(ctx, database.SearchFilters{Kind: database.MediaTypeTV})
		require.NoError(t, err)
		assert.Empty(t, result.Movies)
		assert.Len(t, result.Shows, 3)
	})
}
