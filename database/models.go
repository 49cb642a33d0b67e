package database

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// MediaType represents the type of media, either movie or TV show.
type MediaType string

const (
	// MediaTypeMovie represents movies.
	MediaTypeMovie MediaType = "movie"
	// MediaTypeTV represents TV shows.
	MediaTypeTV MediaType = "tv"
)

// IntList is a list of integers stored as a JSON-encoded TEXT column.
type IntList []int

// Value implements driver.Valuer.
func (l IntList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *IntList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for IntList", value)
	}
}

// StringList is a list of strings stored as a JSON-encoded TEXT column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value any) error {
	switch v := value.(type) {
	case nil:
		*l = nil
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
}

// Movie represents a movie row in the catalog.
// The ID is the catalog's own identifier, not a locally generated key.
// IsFavorite, IsWatched and IsRented are user-derived flags attached to the
// catalog row; upserts must never reset them.
type Movie struct {
	ID               int       `gorm:"primaryKey" json:"id"`
	Title            string    `gorm:"not null;index" json:"title"`
	Overview         string    `json:"overview"`
	PosterPath       string    `json:"poster_path"`
	BackdropPath     string    `json:"backdrop_path"`
	ReleaseDate      string    `json:"release_date"`
	VoteAverage      float64   `gorm:"index" json:"vote_average"`
	VoteCount        int       `json:"vote_count"`
	GenreIDs         IntList   `gorm:"type:text;index" json:"genre_ids"`
	Adult            bool      `json:"adult"`
	OriginalLanguage string    `json:"original_language"`
	OriginalTitle    string    `json:"original_title"`
	Popularity       float64   `gorm:"index" json:"popularity"`
	Video            bool      `json:"video"`
	IsFavorite       bool      `gorm:"default:false" json:"isFavorite"`
	IsWatched        bool      `gorm:"default:false" json:"isWatched"`
	IsRented         bool      `gorm:"default:false" json:"isRented"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// TableName overrides the gorm table name.
func (Movie) TableName() string { return "movies" }

// TVShow represents a TV show row in the catalog.
// Movies and TV shows have separate id namespaces: movie id=1 and show id=1
// are distinct entities.
type TVShow struct {
	ID               int        `gorm:"primaryKey" json:"id"`
	Name             string     `gorm:"not null;index" json:"name"`
	Overview         string     `json:"overview"`
	PosterPath       string     `json:"poster_path"`
	BackdropPath     string     `json:"backdrop_path"`
	FirstAirDate     string     `json:"first_air_date"`
	VoteAverage      float64    `gorm:"index" json:"vote_average"`
	VoteCount        int        `json:"vote_count"`
	GenreIDs         IntList    `gorm:"type:text;index" json:"genre_ids"`
	Adult            bool       `json:"adult"`
	OriginalLanguage string     `json:"original_language"`
	OriginalName     string     `json:"original_name"`
	Popularity       float64    `gorm:"index" json:"popularity"`
	OriginCountry    StringList `gorm:"type:text" json:"origin_country"`
	IsFavorite       bool       `gorm:"default:false" json:"isFavorite"`
	IsWatched        bool       `gorm:"default:false" json:"isWatched"`
	IsRented         bool       `gorm:"default:false" json:"isRented"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
}

// TableName overrides the gorm table name.
func (TVShow) TableName() string { return "tv_shows" }

// Genre is reference data, never mutated after seeding.
type Genre struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName overrides the gorm table name.
func (Genre) TableName() string { return "genres" }

// SearchEntry is one raw query recorded in the search-history log.
type SearchEntry struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Query      string    `gorm:"not null" json:"query"`
	SearchedAt time.Time `gorm:"index" json:"searchedAt"`
}

// TableName overrides the gorm table name.
func (SearchEntry) TableName() string { return "search_history" }

// User represents a registered account. The password is stored as a bcrypt
// hash, never in plaintext.
type User struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName overrides the gorm table name.
func (User) TableName() string { return "users" }

// UserRecord is a per-user namespaced key/value blob, used for the
// list-valued collections (cart, rentals, history, favorites) that live
// outside the relational tables.
type UserRecord struct {
	Key       string    `gorm:"primaryKey" json:"key"`
	Value     []byte    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the gorm table name.
func (UserRecord) TableName() string { return "user_records" }
