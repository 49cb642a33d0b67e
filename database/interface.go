package database

import "context"

// Store defines the full surface of the embedded store.
type Store interface {
	// Catalog
	UpsertMovies(ctx context.Context, movies []Movie) error
	UpsertShows(ctx context.Context, shows []TVShow) error
	UpsertGenres(ctx context.Context, genres []Genre) error
	GetMovie(ctx context.Context, id int) (*Movie, error)
	GetShow(ctx context.Context, id int) (*TVShow, error)
	PopularMovies(ctx context.Context, limit int) ([]Movie, error)
	PopularShows(ctx context.Context, limit int) ([]TVShow, error)
	Genres(ctx context.Context) ([]Genre, error)
	SearchContent(ctx context.Context, filters SearchFilters) (*SearchResult, error)
	Stats(ctx context.Context) (*Stats, error)

	// Interaction flags
	ToggleMovieFavorite(ctx context.Context, id int) (bool, error)
	ToggleShowFavorite(ctx context.Context, id int) (bool, error)
	FavoriteMovies(ctx context.Context) ([]Movie, error)
	FavoriteShows(ctx context.Context) ([]TVShow, error)
	SetMovieWatched(ctx context.Context, id int, watched bool) error
	SetShowWatched(ctx context.Context, id int, watched bool) error
	SetRentedFlags(ctx context.Context, kind MediaType, ids []int) error

	// Search history
	RecordSearch(ctx context.Context, query string) error
	RecentSearches(ctx context.Context, limit int) ([]string, error)
	ClearSearchHistory(ctx context.Context) error

	// Users
	CreateUser(ctx context.Context, name, email, passwordHash string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
	UpdateUserProfile(ctx context.Context, id, name, email string) error
	AllUsers(ctx context.Context) ([]User, error)

	// Per-user key/value records
	GetRecord(ctx context.Context, key string) ([]byte, error)
	PutRecord(ctx context.Context, key string, value []byte) error
	DeleteRecord(ctx context.Context, key string) error

	// Utility
	Close() error
}
