package api

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"booking_service/internal/app"
	"booking_service/internal/facade"
	"booking_service/internal/lib/fixturetest"
	"booking_service/internal/lib/logger/handlers/slogdiscard"
	"booking_service/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*Client, *fixturetest.Env) {
	t.Helper()

	env := fixturetest.New(t)
	srv := httptest.NewServer(app.NewRouter(slogdiscard.NewDiscardLogger(), app.Deps{
		Facade:    env.Facade,
		Auth:      env.Auth,
		Booking:   env.Booking,
		AppSecret: fixturetest.Secret,
	}))
	t.Cleanup(srv.Close)

	return New(srv.URL, 5*time.Second), env
}

func TestClient_FacadeOverHTTP(t *testing.T) {
	c, env := newClient(t)
	ctx := context.Background()

	f := facade.New(slogdiscard.NewDiscardLogger(), c, nil)

	snap, err := f.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, snap.Hotels, 6)
	assert.Len(t, snap.Restaurants, 6)
	assert.Len(t, snap.Reviews, 5)

	require.NoError(t, f.AddHotelBooking(ctx, models.HotelBooking{
		ID: "booking-c1", UserID: fixturetest.UserID, HotelID: "hotel-3",
		CheckInDate: "2024-04-01", CheckOutDate: "2024-04-04", NumberOfRooms: 1, TotalPrice: 447,
		Status: models.StatusConfirmed,
	}))

	mine, err := f.HotelBookings(ctx, fixturetest.UserID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "booking-c1", mine[0].ID)

	changed, err := f.CancelHotelBooking(ctx, "booking-c1")
	require.NoError(t, err)
	assert.True(t, changed)

	server, err := env.Facade.HotelBookings(ctx, fixturetest.UserID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, server[0].Status)

	assert.ErrorIs(t, f.AddUser(ctx, models.User{Email: "x@example.com"}), ErrUserCreate)
}

func TestClient_Auth(t *testing.T) {
	c, _ := newClient(t)
	ctx := context.Background()

	_, err := c.Login(ctx, fixturetest.UserEmail, "wrong-password")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = c.Me(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	res, err := c.Login(ctx, fixturetest.UserEmail, fixturetest.UserPassword)
	require.NoError(t, err)
	assert.Equal(t, fixturetest.UserID, res.User.ID)
	assert.Equal(t, res.Token, c.Token())

	require.NoError(t, c.UpdateUser(ctx, models.User{Name: "Johnny"}))

	me, err := c.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Johnny", me.Name)

	_, err = c.AdminStats(ctx)
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, err = c.Register(ctx, "Dup", fixturetest.UserEmail, "secret12")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestClient_Quote(t *testing.T) {
	c, _ := newClient(t)

	total, err := c.Quote(context.Background(), "hotel-2", 2)
	require.NoError(t, err)
	assert.Equal(t, 1494.0, total)

	_, err = c.Quote(context.Background(), "hotel-404", 1)
	assert.ErrorIs(t, err, ErrNotFound)
}
