package getbookings

import (
	"context"
	"log/slog"
	"net/http"

	resp "booking_service/internal/lib/api/response"
	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type BookingsProvider interface {
	AllBookings(ctx context.Context) (models.Bookings, error)
	HotelBookings(ctx context.Context, userID string) ([]models.HotelBooking, error)
	RestaurantBookings(ctx context.Context, userID string) ([]models.RestaurantBooking, error)
}

// New lists both booking collections, narrowed to one user when ?userId= is set.
func New(log *slog.Logger, provider BookingsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.get-bookings.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		userID := r.URL.Query().Get("userId")

		bookings, err := ForUser(r.Context(), provider, userID)
		if err != nil {
			log.Error("failed to get bookings", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to fetch bookings"))

			return
		}

		log.Debug("bookings fetched",
			slog.Int("hotel", len(bookings.HotelBookings)),
			slog.Int("restaurant", len(bookings.RestaurantBookings)),
		)

		render.JSON(w, r, bookings)
	}
}

// ForUser returns every booking when userID is empty.
func ForUser(ctx context.Context, provider BookingsProvider, userID string) (models.Bookings, error) {
	if userID == "" {
		return provider.AllBookings(ctx)
	}

	hotel, err := provider.HotelBookings(ctx, userID)
	if err != nil {
		return models.Bookings{}, err
	}

	restaurant, err := provider.RestaurantBookings(ctx, userID)
	if err != nil {
		return models.Bookings{}, err
	}

	return models.Bookings{
		HotelBookings:      hotel,
		RestaurantBookings: restaurant,
	}, nil
}
