package getrestaurants

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	resp "booking_service/internal/lib/api/response"
	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/models"
	"booking_service/internal/storage"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

type RestaurantProvider interface {
	Restaurants(ctx context.Context) ([]models.Restaurant, error)
	Restaurant(ctx context.Context, id string) (models.Restaurant, error)
}

func New(log *slog.Logger, provider RestaurantProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.get-restaurants.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		restaurants, err := provider.Restaurants(r.Context())
		if err != nil {
			log.Error("failed to get restaurants", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to fetch restaurants"))

			return
		}

		render.JSON(w, r, restaurants)
	}
}

func ByID(log *slog.Logger, provider RestaurantProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.get-restaurants.ByID"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		restaurant, err := provider.Restaurant(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrRestaurantNotFound) {
				log.Info("restaurant not found", slog.String("restaurant_id", id))

				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("Restaurant not found"))

				return
			}

			log.Error("failed to get restaurant", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to fetch restaurant"))

			return
		}

		render.JSON(w, r, restaurant)
	}
}
