package facade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/models"
	"booking_service/internal/storage"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

type Source interface {
	Hotels(ctx context.Context) ([]models.Hotel, error)
	Restaurants(ctx context.Context) ([]models.Restaurant, error)
	Users(ctx context.Context) ([]models.User, error)
	Bookings(ctx context.Context) (models.Bookings, error)
	Reviews(ctx context.Context) ([]models.Review, error)
}

type Writer interface {
	SaveUser(ctx context.Context, user models.User) error
	UpdateUser(ctx context.Context, user models.User) error
	SaveHotelBooking(ctx context.Context, booking models.HotelBooking) error
	SaveRestaurantBooking(ctx context.Context, booking models.RestaurantBooking) error
	CancelBooking(ctx context.Context, kind models.BookingType, id string) (bool, error)
	SaveReview(ctx context.Context, review models.Review) error
}

type Store interface {
	Source
	Writer
}

type Cache interface {
	Get(ctx context.Context) (*models.Snapshot, error)
	Set(ctx context.Context, snap *models.Snapshot) error
	Invalidate(ctx context.Context) error
}

// Facade serves reads from one cached snapshot of every collection and drops
// that snapshot on every write, so the next read after a write is fresh.
type Facade struct {
	log   *slog.Logger
	store Store
	cache Cache

	loads      singleflight.Group
	generation atomic.Uint64

	// cacheMu orders a snapshot store against invalidations
	cacheMu sync.Mutex
}

func New(log *slog.Logger, store Store, cache Cache) *Facade {
	if cache == nil {
		cache = NewMemoryCache()
	}

	return &Facade{
		log:   log,
		store: store,
		cache: cache,
	}
}

// Snapshot returns the cached snapshot, loading it with five parallel fetches on a miss.
func (f *Facade) Snapshot(ctx context.Context) (*models.Snapshot, error) {
	const op = "facade.Snapshot"

	snap, err := f.cache.Get(ctx)
	if err == nil {
		return snap, nil
	}
	if !errors.Is(err, storage.ErrCacheMiss) {
		f.log.Warn("snapshot cache read failed", slog.String("op", op), sl.Err(err))
	}

	v, err, _ := f.loads.Do("snapshot", func() (any, error) {
		gen := f.generation.Load()

		snap, err := f.load(ctx)
		if err != nil {
			return nil, err
		}

		f.cacheSnapshot(ctx, op, gen, snap)

		return snap, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return v.(*models.Snapshot), nil
}

func (f *Facade) load(ctx context.Context) (*models.Snapshot, error) {
	var (
		snap     models.Snapshot
		bookings models.Bookings
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.Hotels, err = f.store.Hotels(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Restaurants, err = f.store.Restaurants(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Users, err = f.store.Users(gctx)
		return err
	})
	g.Go(func() (err error) {
		bookings, err = f.store.Bookings(gctx)
		return err
	})
	g.Go(func() (err error) {
		snap.Reviews, err = f.store.Reviews(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	snap.HotelBookings = bookings.HotelBookings
	snap.RestaurantBookings = bookings.RestaurantBookings

	return &snap, nil
}

// cacheSnapshot caches snap unless a write landed since gen was read. Invalidate waits
// for an in-flight Set, so a snapshot missing a write never outlives it.
func (f *Facade) cacheSnapshot(ctx context.Context, op string, gen uint64, snap *models.Snapshot) {
	f.cacheMu.Lock()
	defer f.cacheMu.Unlock()

	if f.generation.Load() != gen {
		return
	}

	if err := f.cache.Set(ctx, snap); err != nil {
		f.log.Warn("snapshot cache write failed", slog.String("op", op), sl.Err(err))
	}
}

// Invalidate drops the cached snapshot.
func (f *Facade) Invalidate(ctx context.Context) {
	f.cacheMu.Lock()
	defer f.cacheMu.Unlock()

	f.generation.Add(1)
	f.loads.Forget("snapshot")

	if err := f.cache.Invalidate(ctx); err != nil {
		f.log.Error("failed to invalidate snapshot cache", sl.Err(err))
	}
}

func (f *Facade) Hotels(ctx context.Context) ([]models.Hotel, error) {
	snap, err := f.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return snap.Hotels, nil
}

func (f *Facade) Hotel(ctx context.Context, id string) (models.Hotel, error) {
	const op = "facade.Hotel"

	snap, err := f.Snapshot(ctx)
	if err != nil {
		return models.Hotel{}, err
	}

	for _, h := range snap.Hotels {
		if h.ID == id {
			return h, nil
		}
	}

	return models.Hotel{}, fmt.Errorf("%s: %w", op, storage.ErrHotelNotFound)
}

func (f *Facade) Restaurants(ctx context.Context) ([]models.Restaurant, error) {
	snap, err := f.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return snap.Restaurants, nil
}

func (f *Facade) Restaurant(ctx context.Context, id string) (models.Restaurant, error) {
	const op = "facade.Restaurant"

	snap, err := f.Snapshot(ctx)
	if err != nil {
		return models.Restaurant{}, err
	}

	for _, r := range snap.Restaurants {
		if r.ID == id {
			return r, nil
		}
	}

	return models.Restaurant{}, fmt.Errorf("%s: %w", op, storage.ErrRestaurantNotFound)
}

func (f *Facade) Users(ctx context.Context) ([]models.User, error) {
	snap, err := f.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return snap.Users, nil
}

func (f *Facade) User(ctx context.Context, email string) (models.User, error) {
	const op = "facade.User"

	snap, err := f.Snapshot(ctx)
	if err != nil {
		return models.User{}, err
	}

	for _, u := range snap.Users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}

	return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
}

func (f *Facade) UserByID(ctx context.Context, id string) (models.User, error) {
	const op = "facade.UserByID"

	snap, err := f.Snapshot(ctx)
	if err != nil {
		return models.User{}, err
	}

	for _, u := range snap.Users {
		if u.ID == id {
			return u, nil
		}
	}

	return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
}

// HotelBookings returns the hotel bookings of one user.
func (f *Facade) HotelBookings(ctx context.Context, userID string) ([]models.HotelBooking, error) {
	snap, err := f.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return filter(snap.HotelBookings, func(b models.HotelBooking) bool { return b.UserID == userID }), nil
}

// RestaurantBookings returns the restaurant bookings of one user.
func (f *Facade) RestaurantBookings(ctx context.Context, userID string) ([]models.RestaurantBooking, error) {
	snap, err := f.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return filter(snap.RestaurantBookings, func(b models.RestaurantBooking) bool { return b.UserID == userID }), nil
}

func (f *Facade) AllBookings(ctx context.Context) (models.Bookings, error) {
	snap, err := f.Snapshot(ctx)
	if err != nil {
		return models.Bookings{}, err
	}

	return models.Bookings{
		HotelBookings:      snap.HotelBookings,
		RestaurantBookings: snap.RestaurantBookings,
	}, nil
}

// Reviews returns the reviews of a hotel or a restaurant.
func (f *Facade) Reviews(ctx context.Context, kind models.BookingType, id string) ([]models.Review, error) {
	snap, err := f.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	if kind == models.BookingHotel {
		return filter(snap.Reviews, func(r models.Review) bool { return r.HotelID == id }), nil
	}

	return filter(snap.Reviews, func(r models.Review) bool { return r.RestaurantID == id }), nil
}

func (f *Facade) AllReviews(ctx context.Context) ([]models.Review, error) {
	snap, err := f.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	return snap.Reviews, nil
}

func (f *Facade) AddUser(ctx context.Context, user models.User) error {
	const op = "facade.AddUser"

	if err := f.store.SaveUser(ctx, user); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	f.Invalidate(ctx)

	return nil
}

func (f *Facade) UpdateUser(ctx context.Context, user models.User) error {
	const op = "facade.UpdateUser"

	if err := f.store.UpdateUser(ctx, user); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	f.Invalidate(ctx)

	return nil
}

func (f *Facade) AddHotelBooking(ctx context.Context, booking models.HotelBooking) error {
	const op = "facade.AddHotelBooking"

	if err := f.store.SaveHotelBooking(ctx, booking); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	f.Invalidate(ctx)

	return nil
}

func (f *Facade) AddRestaurantBooking(ctx context.Context, booking models.RestaurantBooking) error {
	const op = "facade.AddRestaurantBooking"

	if err := f.store.SaveRestaurantBooking(ctx, booking); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	f.Invalidate(ctx)

	return nil
}

func (f *Facade) CancelHotelBooking(ctx context.Context, id string) (bool, error) {
	return f.cancel(ctx, models.BookingHotel, id)
}

func (f *Facade) CancelRestaurantBooking(ctx context.Context, id string) (bool, error) {
	return f.cancel(ctx, models.BookingRestaurant, id)
}

func (f *Facade) cancel(ctx context.Context, kind models.BookingType, id string) (bool, error) {
	const op = "facade.cancel"

	changed, err := f.store.CancelBooking(ctx, kind, id)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	f.Invalidate(ctx)

	return changed, nil
}

func (f *Facade) AddReview(ctx context.Context, review models.Review) error {
	const op = "facade.AddReview"

	if err := f.store.SaveReview(ctx, review); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	f.Invalidate(ctx)

	return nil
}

func filter[T any](in []T, keep func(T) bool) []T {
	out := make([]T, 0, len(in))
	for _, v := range in {
		if keep(v) {
			out = append(out, v)
		}
	}

	return out
}
