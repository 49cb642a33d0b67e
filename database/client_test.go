package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	client, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func testMovies() []Movie {
	return []Movie{
		{
			ID:          1,
			Title:       "Duna: Parte Dois",
			Overview:    "Paul Atreides se une a Chani e aos Fremen.",
			VoteAverage: 8.2,
			Popularity:  8956.7,
			GenreIDs:    IntList{28, 12, 878},
			ReleaseDate: "2024-03-01",
		},
		{
			ID:          2,
			Title:       "Oppenheimer",
			Overview:    "A história do físico americano J. Robert Oppenheimer.",
			VoteAverage: 8.1,
			Popularity:  3456.7,
			GenreIDs:    IntList{18, 36},
			ReleaseDate: "2023-07-21",
		},
		{
			ID:          3,
			Title:       "Barbie",
			Overview:    "Barbie e Ken no mundo da Barbie Land.",
			VoteAverage: 6.9,
			Popularity:  4567.8,
			GenreIDs:    IntList{35, 12, 14},
			ReleaseDate: "2023-07-21",
		},
	}
}

func TestClient_UpsertMoviesPreservesFlags(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.UpsertMovies(ctx, testMovies()))

	favorite, err := client.ToggleMovieFavorite(ctx, 1)
	require.NoError(t, err)
	assert.True(t, favorite)
	require.NoError(t, client.SetMovieWatched(ctx, 1, true))

	// Re-seeding the same catalog must not reset the user flags.
	updated := testMovies()
	updated[0].Overview = "refreshed overview"
	require.NoError(t, client.UpsertMovies(ctx, updated))

	movie, err := client.GetMovie(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "refreshed overview", movie.Overview)
	assert.True(t, movie.IsFavorite)
	assert.True(t, movie.IsWatched)
}

func TestClient_ToggleMovieFavorite(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.UpsertMovies(ctx, testMovies()))

	favorite, err := client.ToggleMovieFavorite(ctx, 2)
	require.NoError(t, err)
	assert.True(t, favorite)

	favorite, err = client.ToggleMovieFavorite(ctx, 2)
	require.NoError(t, err)
	assert.False(t, favorite)

	movie, err := client.GetMovie(ctx, 2)
	require.NoError(t, err)
	assert.False(t, movie.IsFavorite)

	_, err = client.ToggleMovieFavorite(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_FavoriteMovies(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.UpsertMovies(ctx, testMovies()))

	_, err := client.ToggleMovieFavorite(ctx, 1)
	require.NoError(t, err)
	_, err = client.ToggleMovieFavorite(ctx, 3)
	require.NoError(t, err)

	favorites, err := client.FavoriteMovies(ctx)
	require.NoError(t, err)
	require.Len(t, favorites, 2)
	for _, movie := range favorites {
		assert.True(t, movie.IsFavorite)
	}
}

func TestClient_PopularMoviesOrdering(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.UpsertMovies(ctx, testMovies()))

	movies, err := client.PopularMovies(ctx, 10)
	require.NoError(t, err)
	require.Len(t, movies, 3)
	assert.Equal(t, 1, movies[0].ID) // popularity 8956.7
	assert.Equal(t, 3, movies[1].ID) // popularity 4567.8
	assert.Equal(t, 2, movies[2].ID) // popularity 3456.7

	movies, err = client.PopularMovies(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, movies, 2)
}

func TestClient_GetMovieNotFound(t *testing.T) {
	client := newTestClient(t)

	_, err := client.GetMovie(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_SearchContent(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.UpsertMovies(ctx, testMovies()))
	require.NoError(t, client.UpsertShows(ctx, []TVShow{
		{ID: 1, Name: "Stranger Things", Overview: "Forças sobrenaturais e uma menina.", Popularity: 8765.4, VoteAverage: 8.7, GenreIDs: IntList{18, 14, 27}, FirstAirDate: "2016-07-15"},
	}))

	t.Run("case insensitive title match", func(t *testing.T) {
		result, err := client.SearchContent(ctx, SearchFilters{Query: "DUNA"})
		require.NoError(t, err)
		require.Len(t, result.Movies, 1)
		assert.Equal(t, 1, result.Movies[0].ID)
		assert.Equal(t, 1, result.Total)
	})

	t.Run("overview match", func(t *testing.T) {
		result, err := client.SearchContent(ctx, SearchFilters{Query: "físico"})
		require.NoError(t, err)
		require.Len(t, result.Movies, 1)
		assert.Equal(t, 2, result.Movies[0].ID)
	})

	t.Run("kind filter", func(t *testing.T) {
		result, err := client.SearchContent(ctx, SearchFilters{Kind: MediaTypeTV})
		require.NoError(t, err)
		assert.Empty(t, result.Movies)
		assert.Len(t, result.Shows, 1)
	})

	t.Run("genre filter", func(t *testing.T) {
		result, err := client.SearchContent(ctx, SearchFilters{GenreID: 18})
		require.NoError(t, err)
		require.Len(t, result.Movies, 1)
		assert.Equal(t, 2, result.Movies[0].ID)
		assert.Len(t, result.Shows, 1)
	})

	t.Run("genre filter matches whole ids only", func(t *testing.T) {
		require.NoError(t, client.UpsertMovies(ctx, []Movie{
			{ID: 4, Title: "Décimo Segundo", GenreIDs: IntList{128}, ReleaseDate: "2022-01-01"},
			{ID: 5, Title: "Duodécimo", GenreIDs: IntList{12}, ReleaseDate: "2022-01-01"},
		}))

		result, err := client.SearchContent(ctx, SearchFilters{GenreID: 12, Kind: MediaTypeMovie})
		require.NoError(t, err)
		ids := lo.Map(result.Movies, func(m Movie, _ int) int { return m.ID })
		// Genre 128 must not satisfy a filter for genre 12.
		assert.NotContains(t, ids, 4)
		assert.Contains(t, ids, 5)
		assert.Contains(t, ids, 1) // {28,12,878}
	})

	t.Run("min rating filter", func(t *testing.T) {
		result, err := client.SearchContent(ctx, SearchFilters{MinRating: 8.0, Kind: MediaTypeMovie})
		require.NoError(t, err)
		assert.Len(t, result.Movies, 2)
	})

	t.Run("year filter", func(t *testing.T) {
		result, err := client.SearchContent(ctx, SearchFilters{Year: 2023, Kind: MediaTypeMovie})
		require.NoError(t, err)
		assert.Len(t, result.Movies, 2)
	})

	t.Run("results ordered by popularity", func(t *testing.T) {
		result, err := client.SearchContent(ctx, SearchFilters{Year: 2023, Kind: MediaTypeMovie})
		require.NoError(t, err)
		require.Len(t, result.Movies, 2)
		assert.Equal(t, 3, result.Movies[0].ID)
		assert.Equal(t, 2, result.Movies[1].ID)
	})
}

func TestClient_SearchRecordsHistory(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.UpsertMovies(ctx, testMovies()))

	_, err := client.SearchContent(ctx, SearchFilters{Query: "  duna  "})
	require.NoError(t, err)
	_, err = client.SearchContent(ctx, SearchFilters{Query: "   "})
	require.NoError(t, err)

	queries, err := client.RecentSearches(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"duna"}, queries)
}

func TestClient_RecentSearchesDedup(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	for _, query := range []string{"alpha", "beta", "alpha", "gamma"} {
		require.NoError(t, client.RecordSearch(ctx, query))
	}

	queries, err := client.RecentSearches(ctx, 10)
	require.NoError(t, err)
	// Most recent first, duplicates collapsed onto their latest occurrence.
	assert.Equal(t, []string{"gamma", "alpha", "beta"}, queries)
}

func TestClient_SearchHistoryCap(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		require.NoError(t, client.RecordSearch(ctx, "query-"+string(rune('a'+i%26))+"-"+string(rune('0'+i/26))))
	}

	var count int64
	require.NoError(t, client.db.Model(&SearchEntry{}).Count(&count).Error)
	assert.LessOrEqual(t, count, int64(maxStoredSearches))

	queries, err := client.RecentSearches(ctx, defaultRecentSearches)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(queries), defaultRecentSearches)
}

func TestClient_ClearSearchHistory(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.RecordSearch(ctx, "duna"))
	require.NoError(t, client.ClearSearchHistory(ctx))

	queries, err := client.RecentSearches(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, queries)
}

func TestClient_Users(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	user, err := client.CreateUser(ctx, "Maria Silva", "maria@example.com", "$2a$10$hash")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := client.CreateUser(ctx, "Other", "maria@example.com", "$2a$10$other")
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("lookup by email", func(t *testing.T) {
		found, err := client.GetUserByEmail(ctx, "maria@example.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, found.ID)

		_, err = client.GetUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update profile", func(t *testing.T) {
		require.NoError(t, client.UpdateUserProfile(ctx, user.ID, "Maria S.", "maria.s@example.com"))

		updated, err := client.GetUserByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Maria S.", updated.Name)
		assert.Equal(t, "maria.s@example.com", updated.Email)

		err = client.UpdateUserProfile(ctx, "missing-id", "X", "x@example.com")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("update to taken email", func(t *testing.T) {
		other, err := client.CreateUser(ctx, "João", "joao@example.com", "$2a$10$hash")
		require.NoError(t, err)

		err = client.UpdateUserProfile(ctx, other.ID, "João", "maria.s@example.com")
		assert.ErrorIs(t, err, ErrDuplicateEmail)
	})

	t.Run("all users", func(t *testing.T) {
		users, err := client.AllUsers(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 2)
	})
}

func TestClient_Records(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	_, err := client.GetRecord(ctx, "rentals_u1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, client.PutRecord(ctx, "rentals_u1", []byte(`[{"id":"r1"}]`)))

	value, err := client.GetRecord(ctx, "rentals_u1")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"r1"}]`, string(value))

	// Overwrite in place.
	require.NoError(t, client.PutRecord(ctx, "rentals_u1", []byte(`[]`)))
	value, err = client.GetRecord(ctx, "rentals_u1")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(value))

	require.NoError(t, client.DeleteRecord(ctx, "rentals_u1"))
	_, err = client.GetRecord(ctx, "rentals_u1")
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing record is a no-op.
	require.NoError(t, client.DeleteRecord(ctx, "rentals_u1"))
}

func TestClient_SetRentedFlags(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, client.UpsertMovies(ctx, testMovies()))

	require.NoError(t, client.SetRentedFlags(ctx, MediaTypeMovie, []int{1, 3}))

	movie, err := client.GetMovie(ctx, 1)
	require.NoError(t, err)
	assert.True(t, movie.IsRented)
	movie, err = client.GetMovie(ctx, 2)
	require.NoError(t, err)
	assert.False(t, movie.IsRented)

	// Shrinking the active set clears the flag on the rest.
	require.NoError(t, client.SetRentedFlags(ctx, MediaTypeMovie, []int{3}))
	movie, err = client.GetMovie(ctx, 1)
	require.NoError(t, err)
	assert.False(t, movie.IsRented)
	movie, err = client.GetMovie(ctx, 3)
	require.NoError(t, err)
	assert.True(t, movie.IsRented)

	// An empty set clears everything.
	require.NoError(t, client.SetRentedFlags(ctx, MediaTypeMovie, nil))
	movie, err = client.GetMovie(ctx, 3)
	require.NoError(t, err)
	assert.False(t, movie.IsRented)
}

func TestClient_Genres(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	genres := []Genre{
		{ID: 28, Name: "Ação"},
		{ID: 18, Name: "Drama"},
	}
	require.NoError(t, client.UpsertGenres(ctx, genres))
	// Seeding twice must not fail or duplicate.
	require.NoError(t, client.UpsertGenres(ctx, genres))

	got, err := client.Genres(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ação", got[0].Name) // ordered by name
}

func TestClient_Stats(t *testing.T) {
	client := newTestClient(t)
	ctx := context.Background()

	stats, err := client.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Movies)

	require.NoError(t, client.UpsertMovies(ctx, testMovies()))
	require.NoError(t, client.UpsertGenres(ctx, []Genre{{ID: 18, Name: "Drama"}}))

	stats, err = client.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Movies)
	assert.Equal(t, int64(0), stats.Shows)
	assert.Equal(t, int64(1), stats.Genres)
}
