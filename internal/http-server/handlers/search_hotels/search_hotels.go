package searchhotels

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	resp "booking_service/internal/lib/api/response"
	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/models"
	"booking_service/internal/services/views"
	"booking_service/internal/storage"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

type Request struct {
	Search string `validate:"max=100"`
	Price  string `validate:"omitempty,oneof=all budget mid luxury"`
}

type HotelProvider interface {
	Hotels(ctx context.Context) ([]models.Hotel, error)
	Hotel(ctx context.Context, id string) (models.Hotel, error)
}

// New serves the hotel listing page: ?search= on the name and ?price= tier.
func New(log *slog.Logger, provider HotelProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.search-hotels.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		req := Request{
			Search: r.URL.Query().Get("search"),
			Price:  r.URL.Query().Get("price"),
		}

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		hotels, err := provider.Hotels(r.Context())
		if err != nil {
			log.Error("failed to get hotels", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to fetch hotels"))

			return
		}

		render.JSON(w, r, views.FilterHotels(hotels, req.Search, req.Price))
	}
}

type Quote struct {
	HotelID       string  `json:"hotelId"`
	PricePerNight float64 `json:"pricePerNight"`
	Rooms         int     `json:"rooms"`
	Nights        int     `json:"nights"`
	Total         float64 `json:"total"`
}

// NewQuote prices a stay at /api/hotels/{id}/quote?rooms=N.
func NewQuote(log *slog.Logger, provider HotelProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.search-hotels.NewQuote"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		rooms := 1
		if raw := r.URL.Query().Get("rooms"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, resp.Error("Field rooms is out of range"))

				return
			}
			rooms = n
		}

		hotel, err := provider.Hotel(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, storage.ErrHotelNotFound) {
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, resp.Error("Hotel not found"))

				return
			}

			log.Error("failed to get hotel", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to fetch hotel"))

			return
		}

		render.JSON(w, r, Quote{
			HotelID:       hotel.ID,
			PricePerNight: hotel.PricePerNight,
			Rooms:         rooms,
			Nights:        views.DefaultNights,
			Total:         views.HotelTotal(hotel.PricePerNight, rooms),
		})
	}
}
