package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/models"

	"github.com/google/uuid"
)

var ErrUnknownType = errors.New("unknown booking type")

type Store interface {
	AddHotelBooking(ctx context.Context, booking models.HotelBooking) error
	AddRestaurantBooking(ctx context.Context, booking models.RestaurantBooking) error
	CancelHotelBooking(ctx context.Context, id string) (bool, error)
	CancelRestaurantBooking(ctx context.Context, id string) (bool, error)
	AddReview(ctx context.Context, review models.Review) error
}

type Notifier interface {
	Publish(ctx context.Context, event models.BookingEvent) error
}

type BookingService struct {
	log      *slog.Logger
	store    Store
	notifier Notifier
	now      func() time.Time
}

// NewBookingService wires the service. A nil notifier disables events.
func NewBookingService(log *slog.Logger, store Store, notifier Notifier) *BookingService {
	return &BookingService{
		log:      log,
		store:    store,
		notifier: notifier,
		now:      time.Now,
	}
}

// BookHotel fills id, status and createdAt when absent and stores the booking.
func (s *BookingService) BookHotel(ctx context.Context, booking models.HotelBooking) (models.HotelBooking, error) {
	const op = "booking.BookHotel"

	if booking.ID == "" {
		booking.ID = newBookingID()
	}
	if booking.Status == "" {
		booking.Status = models.StatusConfirmed
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = s.now().UTC()
	}

	if err := s.store.AddHotelBooking(ctx, booking); err != nil {
		return models.HotelBooking{}, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, models.BookingEvent{
		Event:      models.EventBookingCreated,
		Type:       models.BookingHotel,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		TargetID:   booking.HotelID,
		Summary:    fmt.Sprintf("%s to %s, %d room(s), total %.2f", booking.CheckInDate, booking.CheckOutDate, booking.NumberOfRooms, booking.TotalPrice),
		OccurredAt: booking.CreatedAt,
	})

	return booking, nil
}

func (s *BookingService) BookRestaurant(ctx context.Context, booking models.RestaurantBooking) (models.RestaurantBooking, error) {
	const op = "booking.BookRestaurant"

	if booking.ID == "" {
		booking.ID = newBookingID()
	}
	if booking.Status == "" {
		booking.Status = models.StatusConfirmed
	}
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = s.now().UTC()
	}

	if err := s.store.AddRestaurantBooking(ctx, booking); err != nil {
		return models.RestaurantBooking{}, fmt.Errorf("%s: %w", op, err)
	}

	s.publish(ctx, models.BookingEvent{
		Event:      models.EventBookingCreated,
		Type:       models.BookingRestaurant,
		BookingID:  booking.ID,
		UserID:     booking.UserID,
		TargetID:   booking.RestaurantID,
		Summary:    fmt.Sprintf("%s %s, %d guest(s)", booking.Date, booking.Time, booking.NumberOfPeople),
		OccurredAt: booking.CreatedAt,
	})

	return booking, nil
}

// Cancel marks the booking cancelled. Unknown ids and repeated cancels succeed silently
// and only an actual status change emits an event.
func (s *BookingService) Cancel(ctx context.Context, kind models.BookingType, id string) error {
	const op = "booking.Cancel"

	var (
		changed bool
		err     error
	)

	switch kind {
	case models.BookingHotel:
		changed, err = s.store.CancelHotelBooking(ctx, id)
	case models.BookingRestaurant:
		changed, err = s.store.CancelRestaurantBooking(ctx, id)
	default:
		return fmt.Errorf("%s: %w", op, ErrUnknownType)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if changed {
		s.publish(ctx, models.BookingEvent{
			Event:      models.EventBookingCancelled,
			Type:       kind,
			BookingID:  id,
			OccurredAt: s.now().UTC(),
		})
	}

	return nil
}

// Review fills id and createdAt when absent and stores the review.
func (s *BookingService) Review(ctx context.Context, review models.Review) (models.Review, error) {
	const op = "booking.Review"

	if review.ID == "" {
		review.ID = "review-" + uuid.NewString()
	}
	if review.CreatedAt.IsZero() {
		review.CreatedAt = s.now().UTC()
	}

	if err := s.store.AddReview(ctx, review); err != nil {
		return models.Review{}, fmt.Errorf("%s: %w", op, err)
	}

	return review, nil
}

func (s *BookingService) publish(ctx context.Context, event models.BookingEvent) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.Publish(ctx, event); err != nil {
		s.log.Error("failed to publish booking event",
			slog.String("event", event.Event),
			slog.String("booking_id", event.BookingID),
			sl.Err(err),
		)
	}
}

func newBookingID() string {
	return "booking-" + uuid.NewString()
}
