package mybookings

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	getbookings "booking_service/internal/http-server/handlers/get_bookings"
	resp "booking_service/internal/lib/api/response"
	"booking_service/internal/lib/jwt"
	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/models"
	"booking_service/internal/services/views"
	"booking_service/internal/storage"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type DashboardProvider interface {
	getbookings.BookingsProvider
	UserByID(ctx context.Context, id string) (models.User, error)
}

// New serves the signed-in user's dashboard: profile plus both booking lists.
func New(log *slog.Logger, provider DashboardProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.my-bookings.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		userID, ok := jwt.UserID(r.Context())
		if !ok {
			log.Error("unauthorized: no userID in context")

			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, resp.Error("Unauthorized"))

			return
		}

		user, err := provider.UserByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, storage.ErrUserNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("User not found"))

				return
			}

			log.Error("failed to get user", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to fetch bookings"))

			return
		}

		bookings, err := getbookings.ForUser(r.Context(), provider, userID)
		if err != nil {
			log.Error("failed to get bookings", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to fetch bookings"))

			return
		}

		render.JSON(w, r, views.Dashboard{
			User:               user,
			HotelBookings:      bookings.HotelBookings,
			RestaurantBookings: bookings.RestaurantBookings,
		})
	}
}
