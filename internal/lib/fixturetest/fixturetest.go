// Package fixturetest builds a seeded in-memory backend for handler and client tests.
// It is imported only from _test.go files.
package fixturetest

import (
	"testing"
	"time"

	"booking_service/internal/facade"
	"booking_service/internal/lib/logger/handlers/slogdiscard"
	"booking_service/internal/services/auth"
	"booking_service/internal/services/booking"
	"booking_service/internal/storage/memory"
	"booking_service/internal/storage/seed"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	Secret = "test-secret"

	UserEmail     = "john@example.com"
	UserPassword  = "password123"
	UserID        = "user-1"
	AdminEmail    = "admin@example.com"
	AdminPassword = "admin12345"
	AdminID       = "admin-1"
)

type Env struct {
	Repo    *memory.Repo
	Facade  *facade.Facade
	Auth    *auth.Auth
	Booking *booking.BookingService
}

func New(t testing.TB) *Env {
	t.Helper()

	data, err := seed.Load(bcrypt.MinCost)
	require.NoError(t, err)

	repo := memory.New()
	repo.Seed(data.Hotels, data.Restaurants, data.Users, data.Reviews)

	log := slogdiscard.NewDiscardLogger()
	f := facade.New(log, repo, nil)

	return &Env{
		Repo:    repo,
		Facade:  f,
		Auth:    auth.New(log, f, repo, Secret, time.Hour).WithHashCost(bcrypt.MinCost),
		Booking: booking.NewBookingService(log, f, nil),
	}
}

// Token logs the given account in and returns its bearer token.
func (e *Env) Token(t testing.TB, email, password string) string {
	t.Helper()

	_, token, err := e.Auth.Login(t.Context(), email, password)
	require.NoError(t, err)

	return token
}
