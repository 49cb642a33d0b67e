// Package database implements the embedded relational store backing the
// rental application: the movie/TV catalog with user-derived flags, genres,
// the search-history log, user accounts and the per-user key/value records.
package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ Store = (*Client)(nil) // Ensure Client implements Store

// Client wraps the gorm.DB instance.
type Client struct {
	db *gorm.DB
}

// New creates a new database connection and performs migrations.
// Calling it against an existing database is a no-op for the schema.
func New(dbpath string) (*Client, error) {
	db, err := gorm.Open(sqlite.Open(dbpath), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := db.AutoMigrate(
		&Movie{},
		&TVShow{},
		&Genre{},
		&SearchEntry{},
		&User{},
		&UserRecord{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Client{db: db}, nil
}

// Close closes the underlying database connection.
func (c *Client) Close() error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Stats holds catalog row counts.
type Stats struct {
	Movies int64 `json:"moviesCount"`
	Shows  int64 `json:"tvShowsCount"`
	Genres int64 `json:"genresCount"`
}

// Stats returns the catalog row counts.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	var stats Stats
	if err := c.db.WithContext(ctx).Model(&Movie{}).Count(&stats.Movies).Error; err != nil {
		return nil, err
	}
	if err := c.db.WithContext(ctx).Model(&TVShow{}).Count(&stats.Shows).Error; err != nil {
		return nil, err
	}
	if err := c.db.WithContext(ctx).Model(&Genre{}).Count(&stats.Genres).Error; err != nil {
		return nil, err
	}
	return &stats, nil
}

// isDuplicate reports whether err is a unique constraint violation.
// The string check covers sqlite drivers that don't translate the error.
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
