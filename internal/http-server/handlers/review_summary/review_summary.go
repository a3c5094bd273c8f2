package reviewsummary

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

type ReviewsProvider interface {
	Reviews(ctx context.Context, kind models.BookingType, id string) ([]models.Review, error)
}

// New returns the rounded average and count for ?hotelId= or ?restaurantId=.
func New(log *slog.Logger, provider ReviewsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.review-summary.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		hotelID := r.URL.Query().Get("hotelId")
		restaurantID := r.URL.Query().Get("restaurantId")

		if (hotelID == "") == (restaurantID == "") {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Exactly one of hotelId or restaurantId is required"))

			return
		}

		kind, id := models.BookingHotel, hotelID
		if restaurantID != "" {
			kind, id = models.BookingRestaurant, restaurantID
		}

		reviews, err := provider.Reviews(r.Context(), kind, id)
		if err != nil {
			log.Error("failed to get reviews", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to fetch reviews"))

			return
		}

		render.JSON(w, r, views.Summary(reviews))
	}
}
