package savebooking

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	resp "booking_service/internal/lib/api/response"
	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/models"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

type Request struct {
	Type    models.BookingType `json:"type" validate:"required,oneof=hotel restaurant"`
	Booking json.RawMessage    `json:"booking" validate:"required"`
}

type BookingService interface {
	BookHotel(ctx context.Context, booking models.HotelBooking) (models.HotelBooking, error)
	BookRestaurant(ctx context.Context, booking models.RestaurantBooking) (models.RestaurantBooking, error)
}

func New(log *slog.Logger, bookingService BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.save-booking.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to add booking"))

			return
		}

		validate := validator.New()

		if err := validate.Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		var (
			created any
			err     error
		)

		switch req.Type {
		case models.BookingHotel:
			var b models.HotelBooking
			if err := decodeBooking(validate, req.Booking, &b); err != nil {
				log.Error("invalid hotel booking", sl.Err(err))
				badBooking(w, r, err)
				return
			}
			created, err = bookingService.BookHotel(r.Context(), b)
		case models.BookingRestaurant:
			var b models.RestaurantBooking
			if err := decodeBooking(validate, req.Booking, &b); err != nil {
				log.Error("invalid restaurant booking", sl.Err(err))
				badBooking(w, r, err)
				return
			}
			created, err = bookingService.BookRestaurant(r.Context(), b)
		}
		if err != nil {
			log.Error("failed to add booking", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to add booking"))

			return
		}

		log.Info("booking added", slog.String("type", string(req.Type)))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, created)
	}
}

func decodeBooking(validate *validator.Validate, raw json.RawMessage, dst any) error {
	if err := json.Unmarshal(raw, dst); err != nil {
		return err
	}

	return validate.Struct(dst)
}

func badBooking(w http.ResponseWriter, r *http.Request, err error) {
	render.Status(r, http.StatusBadRequest)

	if validateErr, ok := err.(validator.ValidationErrors); ok {
		render.JSON(w, r, resp.ValidationError(validateErr))
		return
	}

	render.JSON(w, r, resp.Error("Failed to add booking"))
}
