package gethotels

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

type HotelProvider interface {
	Hotels(ctx context.Context) ([]models.Hotel, error)
	Hotel(ctx context.Context, id string) (models.Hotel, error)
}

func New(log *slog.Logger, provider HotelProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.get-hotels.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		hotels, err := provider.Hotels(r.Context())
		if err != nil {
			log.Error("failed to get hotels", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to fetch hotels"))

			return
		}

		render.JSON(w, r, hotels)
	}
}

func ByID(log *slog.Logger, provider HotelProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.get-hotels.ByID"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id := chi.URLParam(r, "id")

		hotel, err := provider.Hotel(r.Context(), id)
		if err != nil {
			if errors.Is(err, storage.ErrHotelNotFound) {
				log.Info("hotel not found", slog.String("hotel_id", id))

				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("Hotel not found"))

				return
			}

			log.Error("failed to get hotel", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to fetch hotel"))

			return
		}

		render.JSON(w, r, hotel)
	}
}
