package getreviews

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

type ReviewsProvider interface {
	AllReviews(ctx context.Context) ([]models.Review, error)
	Reviews(ctx context.Context, kind models.BookingType, id string) ([]models.Review, error)
}

// New lists reviews, filtered by ?hotelId= or ?restaurantId= when present.
func New(log *slog.Logger, provider ReviewsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.get-reviews.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		reviews, err := Select(r.Context(), provider, r.URL.Query().Get("hotelId"), r.URL.Query().Get("restaurantId"))
		if err != nil {
			log.Error("failed to get reviews", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to fetch reviews"))

			return
		}

		render.JSON(w, r, reviews)
	}
}

func Select(ctx context.Context, provider ReviewsProvider, hotelID, restaurantID string) ([]models.Review, error) {
	switch {
	case hotelID != "":
		return provider.Reviews(ctx, models.BookingHotel, hotelID)
	case restaurantID != "":
		return provider.Reviews(ctx, models.BookingRestaurant, restaurantID)
	default:
		return provider.AllReviews(ctx)
	}
}
