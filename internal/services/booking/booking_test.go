package booking

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"booking_service/internal/facade"
	"booking_service/internal/lib/logger/handlers/slogdiscard"
	"booking_service/internal/models"
	"booking_service/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	mu     sync.Mutex
	events []models.BookingEvent
	err    error
}

func (n *recordingNotifier) Publish(_ context.Context, event models.BookingEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.events = append(n.events, event)
	return n.err
}

func newService(t *testing.T, n Notifier) (*BookingService, *facade.Facade) {
	t.Helper()

	log := slogdiscard.NewDiscardLogger()
	f := facade.New(log, memory.New(), nil)

	s := NewBookingService(log, f, n)
	s.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }

	return s, f
}

func TestBookHotel_Defaults(t *testing.T) {
	n := &recordingNotifier{}
	s, f := newService(t, n)
	ctx := context.Background()

	got, err := s.BookHotel(ctx, models.HotelBooking{
		UserID: "user-1", HotelID: "hotel-1",
		CheckInDate: "2024-03-15", CheckOutDate: "2024-03-18",
		NumberOfRooms: 1, TotalPrice: 897,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got.ID, "booking-"))
	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC), got.CreatedAt)

	stored, err := f.HotelBookings(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, got, stored[0])

	require.Len(t, n.events, 1)
	assert.Equal(t, models.EventBookingCreated, n.events[0].Event)
	assert.Equal(t, "hotel-1", n.events[0].TargetID)
}

func TestBookRestaurant_KeepsProvidedFields(t *testing.T) {
	s, _ := newService(t, nil)

	created := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	got, err := s.BookRestaurant(context.Background(), models.RestaurantBooking{
		ID: "booking-7", UserID: "user-1", RestaurantID: "rest-1",
		Date: "2024-03-15", Time: "19:00", NumberOfPeople: 2,
		Status: models.StatusPending, CreatedAt: created,
	})
	require.NoError(t, err)

	assert.Equal(t, "booking-7", got.ID)
	assert.Equal(t, models.StatusPending, got.Status)
	assert.Equal(t, created, got.CreatedAt)
}

func TestCancel_PublishesOnlyOnChange(t *testing.T) {
	n := &recordingNotifier{}
	s, f := newService(t, n)
	ctx := context.Background()

	b, err := s.BookRestaurant(ctx, models.RestaurantBooking{
		UserID: "user-1", RestaurantID: "rest-1", Date: "2024-03-15", Time: "19:00", NumberOfPeople: 2,
	})
	require.NoError(t, err)

	require.NoError(t, s.Cancel(ctx, models.BookingRestaurant, b.ID))
	require.NoError(t, s.Cancel(ctx, models.BookingRestaurant, b.ID))
	require.NoError(t, s.Cancel(ctx, models.BookingRestaurant, "booking-404"))

	require.Len(t, n.events, 2)
	assert.Equal(t, models.EventBookingCancelled, n.events[1].Event)

	stored, err := f.RestaurantBookings(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, stored[0].Status)
}

func TestCancel_UnknownType(t *testing.T) {
	s, _ := newService(t, nil)

	err := s.Cancel(context.Background(), models.BookingType("spa"), "booking-1")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestPublishFailureDoesNotFailBooking(t *testing.T) {
	n := &recordingNotifier{err: errors.New("channel closed")}
	s, _ := newService(t, n)

	_, err := s.BookHotel(context.Background(), models.HotelBooking{
		UserID: "user-1", HotelID: "hotel-1", CheckInDate: "a", CheckOutDate: "b", NumberOfRooms: 1,
	})
	assert.NoError(t, err)
	assert.Len(t, n.events, 1)
}

func TestReview_Defaults(t *testing.T) {
	s, f := newService(t, nil)
	ctx := context.Background()

	r, err := s.Review(ctx, models.Review{UserID: "user-1", HotelID: "hotel-1", Rating: 5, Comment: "Great"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(r.ID, "review-"))
	assert.False(t, r.CreatedAt.IsZero())

	reviews, err := f.Reviews(ctx, models.BookingHotel, "hotel-1")
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}
