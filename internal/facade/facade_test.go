package facade

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"booking_service/internal/lib/logger/handlers/slogdiscard"
	"booking_service/internal/models"
	"booking_service/internal/storage"
	"booking_service/internal/storage/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore counts reads that reach the underlying repository.
type countingStore struct {
	*memory.Repo
	hotelReads atomic.Int32
	failNext   atomic.Bool
}

func (s *countingStore) Hotels(ctx context.Context) ([]models.Hotel, error) {
	s.hotelReads.Add(1)
	if s.failNext.CompareAndSwap(true, false) {
		return nil, errors.New("connection reset")
	}

	return s.Repo.Hotels(ctx)
}

func newStore() *countingStore {
	repo := memory.New()
	repo.Seed(
		[]models.Hotel{{ID: "hotel-1", Name: "Grand Plaza Hotel", PricePerNight: 299}},
		[]models.Restaurant{{ID: "rest-1", Name: "La Bella Italia", Cuisine: "Italian"}},
		[]models.User{{ID: "user-1", Email: "john@example.com", Name: "John Doe"}},
		[]models.Review{
			{ID: "review-1", UserID: "user-1", HotelID: "hotel-1", Rating: 5},
			{ID: "review-2", UserID: "user-1", RestaurantID: "rest-1", Rating: 4},
		},
	)

	return &countingStore{Repo: repo}
}

func TestFacade_SnapshotIsCached(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	f := New(slogdiscard.NewDiscardLogger(), store, nil)

	for i := 0; i < 3; i++ {
		hotels, err := f.Hotels(ctx)
		require.NoError(t, err)
		assert.Len(t, hotels, 1)
	}

	assert.EqualValues(t, 1, store.hotelReads.Load())
}

func TestFacade_WriteInvalidates(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	f := New(slogdiscard.NewDiscardLogger(), store, nil)

	bookings, err := f.HotelBookings(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, bookings)

	require.NoError(t, f.AddHotelBooking(ctx, models.HotelBooking{
		ID:      "booking-1",
		UserID:  "user-1",
		HotelID: "hotel-1",
		Status:  models.StatusConfirmed,
	}))

	bookings, err = f.HotelBookings(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, models.StatusConfirmed, bookings[0].Status)
	assert.EqualValues(t, 2, store.hotelReads.Load())

	changed, err := f.CancelHotelBooking(ctx, "booking-1")
	require.NoError(t, err)
	assert.True(t, changed)

	bookings, err = f.HotelBookings(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, bookings[0].Status)

	other, err := f.HotelBookings(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestFacade_FailedLoadIsNotCached(t *testing.T) {
	ctx := context.Background()
	store := newStore()
	store.failNext.Store(true)
	f := New(slogdiscard.NewDiscardLogger(), store, nil)

	_, err := f.Snapshot(ctx)
	require.Error(t, err)

	hotels, err := f.Hotels(ctx)
	require.NoError(t, err)
	assert.Len(t, hotels, 1)
}

func TestFacade_Lookups(t *testing.T) {
	ctx := context.Background()
	f := New(slogdiscard.NewDiscardLogger(), newStore(), nil)

	h, err := f.Hotel(ctx, "hotel-1")
	require.NoError(t, err)
	assert.Equal(t, "Grand Plaza Hotel", h.Name)

	_, err = f.Hotel(ctx, "hotel-404")
	assert.ErrorIs(t, err, storage.ErrHotelNotFound)

	_, err = f.Restaurant(ctx, "rest-404")
	assert.ErrorIs(t, err, storage.ErrRestaurantNotFound)

	u, err := f.User(ctx, "JOHN@example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", u.ID)

	reviews, err := f.Reviews(ctx, models.BookingHotel, "hotel-1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "review-1", reviews[0].ID)

	reviews, err = f.Reviews(ctx, models.BookingRestaurant, "rest-1")
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "review-2", reviews[0].ID)
}

func TestFacade_AddUserDuplicate(t *testing.T) {
	ctx := context.Background()
	f := New(slogdiscard.NewDiscardLogger(), newStore(), nil)

	err := f.AddUser(ctx, models.User{ID: "user-9", Email: "john@example.com"})
	assert.ErrorIs(t, err, storage.ErrUserExists)
}

// gatedCache holds the first Set open until release is closed.
type gatedCache struct {
	*MemoryCache
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (c *gatedCache) Set(ctx context.Context, snap *models.Snapshot) error {
	c.once.Do(func() {
		close(c.entered)
		<-c.release
	})

	return c.MemoryCache.Set(ctx, snap)
}

func TestFacade_WriteDuringCacheSetIsVisible(t *testing.T) {
	ctx := context.Background()
	cache := &gatedCache{
		MemoryCache: NewMemoryCache(),
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
	store := newStore()
	f := New(slogdiscard.NewDiscardLogger(), store, cache)

	loaded := make(chan error, 1)
	go func() {
		_, err := f.Snapshot(ctx)
		loaded <- err
	}()
	<-cache.entered

	written := make(chan error, 1)
	go func() {
		written <- f.AddHotelBooking(ctx, models.HotelBooking{ID: "booking-1", UserID: "user-1", HotelID: "hotel-1"})
	}()

	// the booking reaches the repository while the stale snapshot is still being cached
	require.Eventually(t, func() bool {
		b, err := store.Bookings(ctx)
		return err == nil && len(b.HotelBookings) == 1
	}, time.Second, time.Millisecond)

	close(cache.release)
	require.NoError(t, <-loaded)
	require.NoError(t, <-written)

	bookings, err := f.HotelBookings(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, bookings, 1)
	assert.Equal(t, "booking-1", bookings[0].ID)
}
