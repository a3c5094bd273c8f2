package adminstats

import (
	"context"
	"log/slog"
	"net/http"

	resp "booking_service/internal/lib/api/response"
	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/models"
	"booking_service/internal/services/views"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*models.Snapshot, error)
}

type Response struct {
	Stats              views.AdminStats           `json:"stats"`
	HotelBookings      []models.HotelBooking      `json:"hotelBookings"`
	RestaurantBookings []models.RestaurantBooking `json:"restaurantBookings"`
}

// New serves the admin dashboard. Access is restricted by jwt.AdminOnly on the route.
func New(log *slog.Logger, provider SnapshotProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin-stats.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		snap, err := provider.Snapshot(r.Context())
		if err != nil {
			log.Error("failed to load snapshot", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to load statistics"))

			return
		}

		render.JSON(w, r, Response{
			Stats:              views.Stats(snap),
			HotelBookings:      snap.HotelBookings,
			RestaurantBookings: snap.RestaurantBookings,
		})
	}
}
