package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"booking_service/internal/models"
	"booking_service/internal/storage"
)

// Repo keeps every collection in process memory. Contents are lost on restart.
type Repo struct {
	mu                 sync.RWMutex
	users              []models.User
	hotels             []models.Hotel
	restaurants        []models.Restaurant
	hotelBookings      []models.HotelBooking
	restaurantBookings []models.RestaurantBooking
	reviews            []models.Review
}

func New() *Repo {
	return &Repo{}
}

// Seed replaces the static catalog and appends the given users and reviews.
func (r *Repo) Seed(
	hotels []models.Hotel,
	restaurants []models.Restaurant,
	users []models.User,
	reviews []models.Review,
) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hotels = slices.Clone(hotels)
	r.restaurants = slices.Clone(restaurants)
	r.users = append(r.users, users...)
	r.reviews = append(r.reviews, reviews...)
}

func (r *Repo) Users(_ context.Context) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return clone(r.users), nil
}

func (r *Repo) User(_ context.Context, email string) (models.User, error) {
	const op = "storage.memory.User"

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}

	return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
}

func (r *Repo) UserByID(_ context.Context, id string) (models.User, error) {
	const op = "storage.memory.UserByID"

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}

	return models.User{}, fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
}

func (r *Repo) SaveUser(_ context.Context, user models.User) error {
	const op = "storage.memory.SaveUser"

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("%s: %w", op, storage.ErrUserExists)
		}
	}

	if slices.ContainsFunc(r.users, func(u models.User) bool { return u.ID == user.ID }) {
		return fmt.Errorf("%s: %w", op, storage.ErrUserIDExists)
	}

	r.users = append(r.users, user)

	return nil
}

// UpdateUser rewrites the profile fields of an existing user.
func (r *Repo) UpdateUser(_ context.Context, user models.User) error {
	const op = "storage.memory.UpdateUser"

	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.IndexFunc(r.users, func(u models.User) bool { return u.ID == user.ID })
	if idx < 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrUserNotFound)
	}

	users := slices.Clone(r.users)
	users[idx].Name = user.Name
	users[idx].Phone = user.Phone
	r.users = users

	return nil
}

func (r *Repo) Hotels(_ context.Context) ([]models.Hotel, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return clone(r.hotels), nil
}

func (r *Repo) Restaurants(_ context.Context) ([]models.Restaurant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return clone(r.restaurants), nil
}

func (r *Repo) Bookings(_ context.Context) (models.Bookings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return models.Bookings{
		HotelBookings:      clone(r.hotelBookings),
		RestaurantBookings: clone(r.restaurantBookings),
	}, nil
}

func (r *Repo) SaveHotelBooking(_ context.Context, booking models.HotelBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.hotelBookings = append(r.hotelBookings, booking)

	return nil
}

func (r *Repo) SaveRestaurantBooking(_ context.Context, booking models.RestaurantBooking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.restaurantBookings = append(r.restaurantBookings, booking)

	return nil
}

// CancelBooking marks the booking with the given id as cancelled. The collection
// is replaced by a copy with that one record rewritten. An unknown id is not an
// error; changed reports whether a status actually flipped.
func (r *Repo) CancelBooking(_ context.Context, kind models.BookingType, id string) (bool, error) {
	const op = "storage.memory.CancelBooking"

	r.mu.Lock()
	defer r.mu.Unlock()

	switch kind {
	case models.BookingHotel:
		next, changed := cancelled(r.hotelBookings, id,
			func(b models.HotelBooking) string { return b.ID },
			func(b models.HotelBooking) models.HotelBooking {
				b.Status = models.StatusCancelled
				return b
			},
			func(b models.HotelBooking) bool { return b.Status == models.StatusCancelled },
		)
		r.hotelBookings = next
		return changed, nil
	case models.BookingRestaurant:
		next, changed := cancelled(r.restaurantBookings, id,
			func(b models.RestaurantBooking) string { return b.ID },
			func(b models.RestaurantBooking) models.RestaurantBooking {
				b.Status = models.StatusCancelled
				return b
			},
			func(b models.RestaurantBooking) bool { return b.Status == models.StatusCancelled },
		)
		r.restaurantBookings = next
		return changed, nil
	default:
		return false, fmt.Errorf("%s: %w", op, storage.ErrUnknownBookingType)
	}
}

func cancelled[T any](
	in []T,
	id string,
	idOf func(T) string,
	cancel func(T) T,
	isCancelled func(T) bool,
) ([]T, bool) {
	out := make([]T, len(in))
	changed := false

	for i, b := range in {
		if idOf(b) == id {
			if !isCancelled(b) {
				changed = true
			}
			b = cancel(b)
		}
		out[i] = b
	}

	return out, changed
}

func (r *Repo) Reviews(_ context.Context) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return clone(r.reviews), nil
}

// clone copies in and never returns nil, so empty collections encode as [].
func clone[T any](in []T) []T {
	return append(make([]T, 0, len(in)), in...)
}

func (r *Repo) SaveReview(_ context.Context, review models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.reviews = append(r.reviews, review)

	return nil
}
