package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/reelrent/reelrent/database"
	"github.com/reelrent/reelrent/userdata"
)

func newTestService(t *testing.T) (*Service, *database.Client) {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return New(db), db
}

func TestService_Register(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Maria Silva", "Maria@Example.com", "secret123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "maria@example.com", user.Email)

	stored, err := db.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))

	// Registration logs the user in.
	current, err := svc.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, user.ID, current.ID)
}

func TestService_RegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		userName string
		email    string
		password string
	}{
		{name: "empty name", userName: "  ", email: "a@example.com", password: "secret123"},
		{name: "invalid email", userName: "Maria", email: "not-an-email", password: "secret123"},
		{name: "short password", userName: "Maria", email: "a@example.com", password: "abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tt.userName, tt.email, tt.password)
			assert.Error(t, err)
		})
	}
}

func TestService_RegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Maria", "maria@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "maria@example.com", "secret456")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Login(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Maria", "maria@example.com", "secret123")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx))

	t.Run("valid credentials", func(t *testing.T) {
		got, err := svc.Login(ctx, "MARIA@example.com", "secret123")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)

		current, err := svc.CurrentUser(ctx)
		require.NoError(t, err)
		assert.Equal(t, user.ID, current.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "maria@example.com", "wrong-password")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email fails without creating an account", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)

		_, err = db.GetUserByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestService_Logout(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Maria", "maria@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	_, err = svc.CurrentUser(ctx)
	assert.ErrorIs(t, err, ErrNotLoggedIn)

	// Logging out twice is a no-op.
	require.NoError(t, svc.Logout(ctx))
}

func TestService_UpdateProfile(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Maria", "maria@example.com", "secret123")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, "Maria S.", "maria.s@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Maria S.", updated.Name)
	assert.Equal(t, "maria.s@example.com", updated.Email)

	t.Run("email taken", func(t *testing.T) {
		require.NoError(t, svc.Logout(ctx))
		other, err := svc.Register(ctx, "João", "joao@example.com", "secret123")
		require.NoError(t, err)

		_, err = svc.UpdateProfile(ctx, other.ID, "João", "maria.s@example.com")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, "missing-id", "X", "x@example.com")
		assert.ErrorIs(t, err, database.ErrNotFound)
	})
}

func TestService_Scope(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "Maria", "maria@example.com", "secret123")
	require.NoError(t, err)

	scope := svc.Scope(user.ID)
	ref := userdata.ContentRef{ID: 1, Title: "Duna: Parte Dois", Kind: database.MediaTypeMovie}
	require.NoError(t, scope.Favorites.Add(ctx, ref))

	favorites, err := scope.Favorites.List(ctx)
	require.NoError(t, err)
	assert.Len(t, favorites, 1)
}
