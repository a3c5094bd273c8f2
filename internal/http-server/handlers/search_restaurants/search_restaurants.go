package searchrestaurants

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

type RestaurantsProvider interface {
	Restaurants(ctx context.Context) ([]models.Restaurant, error)
}

// New filters restaurants by ?search= on the name and an exact ?cuisine=.
func New(log *slog.Logger, provider RestaurantsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.search-restaurants.New"

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

		q := r.URL.Query()

		render.JSON(w, r, views.FilterRestaurants(restaurants, q.Get("search"), q.Get("cuisine")))
	}
}

func Cuisines(log *slog.Logger, provider RestaurantsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.search-restaurants.Cuisines"

		restaurants, err := provider.Restaurants(r.Context())
		if err != nil {
			log.Error("failed to get restaurants",
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				sl.Err(err),
			)

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to fetch restaurants"))

			return
		}

		render.JSON(w, r, views.Cuisines(restaurants))
	}
}
