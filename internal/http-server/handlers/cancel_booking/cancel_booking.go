package cancelbooking

import (
	"context"
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
	Type      models.BookingType `json:"type" validate:"required,oneof=hotel restaurant"`
	BookingID string             `json:"bookingId"`
}

type BookingCanceller interface {
	Cancel(ctx context.Context, kind models.BookingType, id string) error
}

// New marks a booking cancelled. Unknown ids are acknowledged like known ones.
func New(log *slog.Logger, canceller BookingCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.cancel-booking.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to cancel booking"))

			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		if err := canceller.Cancel(r.Context(), req.Type, req.BookingID); err != nil {
			log.Error("failed to cancel booking", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to cancel booking"))

			return
		}

		log.Info("booking cancelled", slog.String("booking_id", req.BookingID))

		render.JSON(w, r, resp.Success{Success: true})
	}
}
