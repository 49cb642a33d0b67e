// Package auth manages accounts and the persisted session. Passwords are
// stored as bcrypt hashes; logging in with an unknown email fails instead of
// creating an account on the fly.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/reelrent/reelrent/database"
	"github.com/reelrent/reelrent/userdata"
)

const (
	sessionKey        = "session_current"
	minPasswordLength = 6
)

var (
	// ErrInvalidCredentials is returned for an unknown email or a wrong
	// password. Callers cannot tell the two apart.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotLoggedIn is returned when no session is active.
	ErrNotLoggedIn = errors.New("not logged in")
	// ErrEmailTaken is returned when registering or renaming to an email
	// that already has an account.
	ErrEmailTaken = errors.New("email already registered")
)

// Store is the store surface the auth service needs.
type Store interface {
	userdata.Records
	CreateUser(ctx context.Context, name, email, passwordHash string) (*database.User, error)
	GetUserByEmail(ctx context.Context, email string) (*database.User, error)
	GetUserByID(ctx context.Context, id string) (*database.User, error)
	UpdateUserProfile(ctx context.Context, id, name, email string) error
}

// Service handles registration, login and the current session.
type Service struct {
	store  Store
	scopes *userdata.Scopes
}

// New creates an auth service over the given store.
func New(store Store) *Service {
	return &Service{store: store, scopes: userdata.NewScopes(store)}
}

type session struct {
	UserID string `json:"userId"`
}

// Register creates an account, hashes the password and logs the new user in.
func (s *Service) Register(ctx context.Context, name, email, password string) (*database.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return nil, errors.New("name must not be empty")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, name, email, string(hash))
	if err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	if err := s.persistSession(ctx, user.ID); err != nil {
		return nil, err
	}
	log.Info("user registered", "email", email)
	return user, nil
}

// Login verifies the credentials and persists the session. Unknown emails
// fail the same way wrong passwords do.
func (s *Service) Login(ctx context.Context, email, password string) (*database.User, error) {
	email = normalizeEmail(email)

	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := s.persistSession(ctx, user.ID); err != nil {
		return nil, err
	}
	log.Info("user logged in", "email", email)
	return user, nil
}

// Logout drops the persisted session. Logging out without a session is a
// no-op.
func (s *Service) Logout(ctx context.Context) error {
	return s.store.DeleteRecord(ctx, sessionKey)
}

// CurrentUser resolves the persisted session to its account. A session whose
// account no longer exists is dropped.
func (s *Service) CurrentUser(ctx context.Context) (*database.User, error) {
	raw, err := s.store.GetRecord(ctx, sessionKey)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	var sess session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}

	user, err := s.store.GetUserByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			if derr := s.store.DeleteRecord(ctx, sessionKey); derr != nil {
				log.Warn("failed to drop stale session", "error", derr)
			}
			return nil, ErrNotLoggedIn
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfile changes the name and email of an account.
func (s *Service) UpdateProfile(ctx context.Context, id, name, email string) (*database.User, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" {
		return nil, errors.New("name must not be empty")
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}

	if err := s.store.UpdateUserProfile(ctx, id, name, email); err != nil {
		if errors.Is(err, database.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.store.GetUserByID(ctx, id)
}

// Scope returns the per-user data scope for an account. All scopes come from
// one shared registry, so two concurrent callers mutating the same user's
// ledger serialize against each other.
func (s *Service) Scope(userID string) *userdata.Scope {
	return s.scopes.Scope(userID)
}

func (s *Service) persistSession(ctx context.Context, userID string) error {
	raw, err := json.Marshal(session{UserID: userID})
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.store.PutRecord(ctx, sessionKey, raw); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateEmail(email string) error {
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("invalid email address")
	}
	return nil
}
