package savereview

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

type ReviewSaver interface {
	Review(ctx context.Context, review models.Review) (models.Review, error)
}

func New(log *slog.Logger, saver ReviewSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.save-review.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req models.Review
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to add review"))

			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		// ровно одна цель: отель или ресторан
		if (req.HotelID == "") == (req.RestaurantID == "") {
			log.Warn("review must target exactly one place")

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Review must reference either a hotel or a restaurant"))

			return
		}

		review, err := saver.Review(r.Context(), req)
		if err != nil {
			log.Error("failed to add review", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to add review"))

			return
		}

		log.Info("review added", slog.String("review_id", review.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, review)
	}
}
