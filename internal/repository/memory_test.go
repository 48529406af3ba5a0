package repository

import (
	"context"
	"testing"

	"github.com/Domenick1991/skyflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUsers_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()

	u := &domain.User{Email: "alice@x.io", PasswordHash: "h"}
	require.NoError(t, users.Create(ctx, u))
	assert.Equal(t, int64(1), u.ID)

	byEmail, err := users.FindByEmail(ctx, "alice@x.io")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byID, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.io", byID.Email)

	exists, err := users.ExistsByEmail(ctx, "alice@x.io")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = users.ExistsByEmail(ctx, "ALICE@x.io")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryUsers_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()

	require.NoError(t, users.Create(ctx, &domain.User{Email: "a@x.io", PasswordHash: "h"}))
	err := users.Create(ctx, &domain.User{Email: "a@x.io", PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestMemoryUsers_Update(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()

	a := &domain.User{Email: "a@x.io", PasswordHash: "h"}
	b := &domain.User{Email: "b@x.io", PasswordHash: "h"}
	require.NoError(t, users.Create(ctx, a))
	require.NoError(t, users.Create(ctx, b))

	a.FirstName = "Alice"
	require.NoError(t, users.Update(ctx, a))
	got, err := users.FindByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.FirstName)

	a.Email = "b@x.io"
	assert.ErrorIs(t, users.Update(ctx, a), ErrDuplicate)

	assert.ErrorIs(t, users.Update(ctx, &domain.User{ID: 99}), ErrNotFound)
}

func TestMemoryUsers_NotFound(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryStore().Users()

	_, err := users.FindByID(ctx, 1)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = users.FindByEmail(ctx, "ghost@x.io")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryReservations_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	owner := &domain.User{Email: "a@x.io", PasswordHash: "h"}
	require.NoError(t, store.Users().Create(ctx, owner))

	reservations := store.Reservations()
	first := &domain.Reservation{UserID: owner.ID, DepartureAirport: "WAW", ArrivalAirport: "LHR"}
	second := &domain.Reservation{UserID: owner.ID, DepartureAirport: "LHR", ArrivalAirport: "WAW"}
	require.NoError(t, reservations.Create(ctx, first))
	require.NoError(t, reservations.Create(ctx, second))

	list, err := reservations.ListByUser(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, first.ID, list[0].ID)
	assert.Equal(t, second.ID, list[1].ID)

	require.NoError(t, reservations.Delete(ctx, first.ID))
	_, err = reservations.FindByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, reservations.Delete(ctx, first.ID), ErrNotFound)
}

func TestMemoryReservations_RequiresExistingUser(t *testing.T) {
	err := NewMemoryStore().Reservations().Create(context.Background(), &domain.Reservation{UserID: 42})
	assert.ErrorIs(t, err, ErrReferenceMissing)
}
