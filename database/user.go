package database

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateUser creates a new account with a generated id. The email is unique;
// a conflict returns ErrDuplicateEmail and leaves the existing row untouched.
func (c *Client) CreateUser(ctx context.Context, name, email, passwordHash string) (*User, error) {
	user := User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := c.db.WithContext(ctx).Create(&user).Error; err != nil {
		if isDuplicate(err) {
			return nil, ErrDuplicateEmail
		}
		log.Error("failed to create user", "error", err)
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail returns the user with the given email, or ErrNotFound.
func (c *Client) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get user by email", "error", err)
		return nil, err
	}
	return &user, nil
}

// GetUserByID returns the user with the given id, or ErrNotFound.
func (c *Client) GetUserByID(ctx context.Context, id string) (*User, error) {
	var user User
	if err := c.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		log.Error("failed to get user by id", "error", err)
		return nil, err
	}
	return &user, nil
}

// UpdateUserProfile updates name and email of an existing account.
func (c *Client) UpdateUserProfile(ctx context.Context, id, name, email string) error {
	result := c.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", id).
		Updates(map[string]any{"name": name, "email": email, "updated_at": time.Now()})
	if result.Error != nil {
		if isDuplicate(result.Error) {
			return ErrDuplicateEmail
		}
		log.Error("failed to update user profile", "error", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AllUsers returns every registered account. Used by the rental sweeper to
// walk all per-user ledgers.
func (c *Client) AllUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.db.WithContext(ctx).Find(&users).Error; err != nil {
		log.Error("failed to get all users", "error", err)
		return nil, err
	}
	return users, nil
}
