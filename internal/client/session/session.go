// Package session holds the client's signed-in user and the bookings and
// reviews it knows about, persisted as one JSON blob between runs.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/models"
)

// Key is the storage key of the persisted state.
const Key = "app-store"

var ErrNotSignedIn = errors.New("not signed in")

type State struct {
	CurrentUser        *models.User               `json:"currentUser"`
	Token              string                     `json:"token,omitempty"`
	HotelBookings      []models.HotelBooking      `json:"hotelBookings"`
	RestaurantBookings []models.RestaurantBooking `json:"restaurantBookings"`
	Reviews            []models.Review            `json:"reviews"`
}

// Backend is the write-through and re-sync target, normally a *facade.Facade.
type Backend interface {
	AddHotelBooking(ctx context.Context, booking models.HotelBooking) error
	AddRestaurantBooking(ctx context.Context, booking models.RestaurantBooking) error
	CancelHotelBooking(ctx context.Context, id string) (bool, error)
	CancelRestaurantBooking(ctx context.Context, id string) (bool, error)
	AddReview(ctx context.Context, review models.Review) error
	HotelBookings(ctx context.Context, userID string) ([]models.HotelBooking, error)
	RestaurantBookings(ctx context.Context, userID string) ([]models.RestaurantBooking, error)
	AllReviews(ctx context.Context) ([]models.Review, error)
}

type Store struct {
	log     *slog.Logger
	storage Storage
	backend Backend

	mu    sync.Mutex
	state State
}

// New rehydrates the store. A corrupt blob is discarded and the store starts empty.
func New(log *slog.Logger, storage Storage, backend Backend) (*Store, error) {
	const op = "session.New"

	s := &Store{
		log:     log,
		storage: storage,
		backend: backend,
	}

	raw, err := storage.Get(Key)
	switch {
	case errors.Is(err, ErrNotFound):
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := json.Unmarshal(raw, &s.state); err != nil {
		log.Warn("discarding unreadable session state", slog.String("op", op), sl.Err(err))
		s.state = State{}
	}

	return s, nil
}

// State returns a copy of the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{
		Token:              s.state.Token,
		HotelBookings:      slices.Clone(s.state.HotelBookings),
		RestaurantBookings: slices.Clone(s.state.RestaurantBookings),
		Reviews:            slices.Clone(s.state.Reviews),
	}
	if s.state.CurrentUser != nil {
		u := *s.state.CurrentUser
		st.CurrentUser = &u
	}

	return st
}

func (s *Store) CurrentUser() (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.CurrentUser == nil {
		return models.User{}, false
	}

	return *s.state.CurrentUser, true
}

func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Token
}

// SetCurrentUser signs the user in. Bookings of a previous user are dropped.
func (s *Store) SetCurrentUser(user models.User, token string) error {
	return s.update(func(st *State) {
		if st.CurrentUser == nil || st.CurrentUser.ID != user.ID {
			st.HotelBookings = nil
			st.RestaurantBookings = nil
		}
		st.CurrentUser = &user
		st.Token = token
	})
}

func (s *Store) Logout() error {
	return s.update(func(st *State) {
		st.CurrentUser = nil
		st.Token = ""
		st.HotelBookings = nil
		st.RestaurantBookings = nil
	})
}

func (s *Store) AddHotelBooking(ctx context.Context, b models.HotelBooking) error {
	const op = "session.AddHotelBooking"

	if err := s.backend.AddHotelBooking(ctx, b); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return s.update(func(st *State) {
		st.HotelBookings = append(st.HotelBookings, b)
	})
}

func (s *Store) AddRestaurantBooking(ctx context.Context, b models.RestaurantBooking) error {
	const op = "session.AddRestaurantBooking"

	if err := s.backend.AddRestaurantBooking(ctx, b); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return s.update(func(st *State) {
		st.RestaurantBookings = append(st.RestaurantBookings, b)
	})
}

func (s *Store) CancelHotelBooking(ctx context.Context, id string) error {
	const op = "session.CancelHotelBooking"

	if _, err := s.backend.CancelHotelBooking(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return s.update(func(st *State) {
		for i := range st.HotelBookings {
			if st.HotelBookings[i].ID == id {
				st.HotelBookings[i].Status = models.StatusCancelled
			}
		}
	})
}

func (s *Store) CancelRestaurantBooking(ctx context.Context, id string) error {
	const op = "session.CancelRestaurantBooking"

	if _, err := s.backend.CancelRestaurantBooking(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return s.update(func(st *State) {
		for i := range st.RestaurantBookings {
			if st.RestaurantBookings[i].ID == id {
				st.RestaurantBookings[i].Status = models.StatusCancelled
			}
		}
	})
}

func (s *Store) AddReview(ctx context.Context, r models.Review) error {
	const op = "session.AddReview"

	if err := s.backend.AddReview(ctx, r); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return s.update(func(st *State) {
		st.Reviews = append(st.Reviews, r)
	})
}

// Sync replaces the local bookings and reviews with what the server holds.
func (s *Store) Sync(ctx context.Context) error {
	const op = "session.Sync"

	reviews, err := s.backend.AllReviews(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	user, signedIn := s.CurrentUser()

	var (
		hotel      []models.HotelBooking
		restaurant []models.RestaurantBooking
	)

	if signedIn {
		hotel, err = s.backend.HotelBookings(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}

		restaurant, err = s.backend.RestaurantBookings(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	return s.update(func(st *State) {
		// пользователь мог смениться, пока шёл запрос
		switch {
		case !signedIn && st.CurrentUser == nil:
			st.HotelBookings = nil
			st.RestaurantBookings = nil
		case signedIn && st.CurrentUser != nil && st.CurrentUser.ID == user.ID:
			st.HotelBookings = hotel
			st.RestaurantBookings = restaurant
		}
		st.Reviews = reviews
	})
}

func (s *Store) ReviewsForHotel(hotelID string) []models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Review
	for _, r := range s.state.Reviews {
		if r.HotelID == hotelID {
			out = append(out, r)
		}
	}

	return out
}

func (s *Store) ReviewsForRestaurant(restaurantID string) []models.Review {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Review
	for _, r := range s.state.Reviews {
		if r.RestaurantID == restaurantID {
			out = append(out, r)
		}
	}

	return out
}

// update applies fn and persists the result. The in-memory state changes
// even when persisting fails.
func (s *Store) update(fn func(st *State)) error {
	const op = "session.update"

	s.mu.Lock()
	defer s.mu.Unlock()

	fn(&s.state)

	raw, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.storage.Set(Key, raw); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
