package userdata

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelrent/reelrent/database"
)

type sweepStoreStub struct {
	*memRecords
	users []database.User
	flags map[database.MediaType][]int
}

func newSweepStoreStub(users ...database.User) *sweepStoreStub {
	return &sweepStoreStub{
		memRecords: newMemRecords(),
		users:      users,
		flags:      make(map[database.MediaType][]int),
	}
}

func (s *sweepStoreStub) AllUsers(_ context.Context) ([]database.User, error) {
	return s.users, nil
}

func (s *sweepStoreStub) SetRentedFlags(_ context.Context, kind database.MediaType, ids []int) error {
	sort.Ints(ids)
	s.flags[kind] = ids
	return nil
}

func TestSweeper_Sweep(t *testing.T) {
	store := newSweepStoreStub(
		database.User{ID: "alice"},
		database.User{ID: "bob"},
	)
	ctx := context.Background()

	alice := NewScopes(store).Scope("alice")
	_, err := alice.Rentals.Add(ctx, testRef(1), 999, nil)
	require.NoError(t, err)
	showRef := testRef(7)
	showRef.Kind = database.MediaTypeTV
	_, err = alice.Rentals.Add(ctx, showRef, 999, nil)
	require.NoError(t, err)

	bob := NewScopes(store).Scope("bob")
	// An already expired rental must not set any flag.
	bob.Rentals.now = func() time.Time { return time.Now().Add(-72 * time.Hour) }
	_, err = bob.Rentals.Add(ctx, testRef(2), 999, nil)
	require.NoError(t, err)
	bob.Rentals.now = time.Now
	_, err = bob.Rentals.Add(ctx, testRef(3), 999, nil)
	require.NoError(t, err)

	sweeper, err := NewSweeper(store, time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sweeper.Stop()
	})

	require.NoError(t, sweeper.Sweep(ctx))

	assert.Equal(t, []int{1, 3}, store.flags[database.MediaTypeMovie])
	assert.Equal(t, []int{7}, store.flags[database.MediaTypeTV])
}

func TestSweeper_SweepNoUsers(t *testing.T) {
	store := newSweepStoreStub()

	sweeper, err := NewSweeper(store, time.Hour)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = sweeper.Stop()
	})

	require.NoError(t, sweeper.Sweep(context.Background()))
	assert.Empty(t, store.flags[database.MediaTypeMovie])
	assert.Empty(t, store.flags[database.MediaTypeTV])
}
