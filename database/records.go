package database

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetRecord returns the raw value stored under key, or ErrNotFound.
func (c *Client) GetRecord(ctx context.Context, key string) ([]byte, error) {
	var record UserRecord
	if err := c.db.WithContext(ctx).Where("key = ?", key).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get record", "key", key, "error", err)
		return nil, err
	}
	return record.Value, nil
}

// PutRecord stores value under key, replacing any existing value.
func (c *Client) PutRecord(ctx context.Context, key string, value []byte) error {
	record := UserRecord{Key: key, Value: value, UpdatedAt: time.Now()}
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		log.Error("failed to put record", "key", key, "error", err)
	}
	return err
}

// DeleteRecord removes the value stored under key. Deleting a missing key is
// a no-op.
func (c *Client) DeleteRecord(ctx context.Context, key string) error {
	err := c.db.WithContext(ctx).Where("key = ?", key).Delete(&UserRecord{}).Error
	if err != nil {
		log.Error("failed to delete record", "key", key, "error", err)
	}
	return err
}
