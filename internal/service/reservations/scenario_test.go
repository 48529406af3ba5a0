package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/skyflow/internal/auth"
	"github.com/Domenick1991/skyflow/internal/domain"
	"github.com/Domenick1991/skyflow/internal/repository"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenario_BookAndCancel(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	tokens := auth.NewTokenService("secret", time.Hour)
	logger, _ := test.NewNullLogger()
	service := NewReservationService(store.Reservations(), auth.NewExtractor(tokens, store.Users()), WithLogger(logger))

	aliceUser := &domain.User{Email: "alice@x.io", PasswordHash: "h"}
	bobUser := &domain.User{Email: "bob@x.io", PasswordHash: "h"}
	require.NoError(t, store.Users().Create(ctx, aliceUser))
	require.NoError(t, store.Users().Create(ctx, bobUser))

	as := func(email string) auth.CallerContext {
		tok, err := tokens.Issue(email)
		require.NoError(t, err)
		return auth.WithAuthorization("Bearer " + tok)
	}

	resp, err := service.BookFlight(ctx, bookInput(), as("alice@x.io"))
	require.NoError(t, err)
	assert.Equal(t, "Successfully booked flight", resp.Message)

	booked, err := service.List(ctx, as("alice@x.io"))
	require.NoError(t, err)
	require.Len(t, booked, 1)
	r := booked[0]
	assert.Equal(t, aliceUser.ID, r.UserID)
	assert.Equal(t, "12A", r.SeatNumber)

	_, err = service.CancelFlight(ctx, CancelInput{ReservationID: r.ID}, as("bob@x.io"))
	assert.Equal(t, domain.KindInvalidBusinessArgument, domain.KindOf(err))
	assert.Equal(t, "You were not booked for this flight", domain.MessageOf(err))

	_, err = store.Reservations().FindByID(ctx, r.ID)
	require.NoError(t, err, "reservation must survive a foreign cancel")

	resp, err = service.CancelFlight(ctx, CancelInput{ReservationID: r.ID}, as("alice@x.io"))
	require.NoError(t, err)
	assert.Equal(t, "Successfully canceled flight", resp.Message)

	_, err = service.CancelFlight(ctx, CancelInput{ReservationID: r.ID}, as("alice@x.io"))
	assert.Equal(t, "This reservation does not exist", domain.MessageOf(err))

	_, err = service.BookFlight(ctx, bookInput(), as("ghost@x.io"))
	assert.Equal(t, domain.KindForbidden, domain.KindOf(err))
	assert.Equal(t, "You need to be logged in", domain.MessageOf(err))
}

func TestScenario_ArrivalBeforeDepartureAccepted(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemoryStore()
	tokens := auth.NewTokenService("secret", time.Hour)
	logger, _ := test.NewNullLogger()
	service := NewReservationService(store.Reservations(), auth.NewExtractor(tokens, store.Users()), WithLogger(logger))
	require.NoError(t, store.Users().Create(ctx, &domain.User{Email: "alice@x.io", PasswordHash: "h"}))
	tok, err := tokens.Issue("alice@x.io")
	require.NoError(t, err)

	input := bookInput()
	input.ArrivalDate = input.DepartureDate.AddDate(0, 0, -1)

	_, err = service.BookFlight(ctx, input, auth.WithAuthorization("Bearer "+tok))
	assert.NoError(t, err)
}
