package saveuser

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	resp "booking_service/internal/lib/api/response"
	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/models"
	"booking_service/internal/services/auth"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

type Request struct {
	ID        string    `json:"id"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"password" validate:"required"`
	Name      string    `json:"name" validate:"required"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	IsAdmin   bool      `json:"isAdmin"`
}

type UserCreator interface {
	NewUser(name, email, password, phone string, isAdmin bool) (models.User, error)
	Save(ctx context.Context, user models.User) error
	SaveNew(ctx context.Context, user models.User) (models.User, error)
}

func New(log *slog.Logger, creator UserCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.save-user.New"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("failed to decode request body", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.Error("Failed to create user"))

			return
		}

		if err := validator.New().Struct(req); err != nil {
			validateErr := err.(validator.ValidationErrors)

			log.Error("invalid request", sl.Err(err))

			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, resp.ValidationError(validateErr))

			return
		}

		user, err := creator.NewUser(req.Name, req.Email, req.Password, req.Phone, req.IsAdmin)
		if err != nil {
			log.Error("failed to prepare user", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to create user"))

			return
		}

		if !req.CreatedAt.IsZero() {
			user.CreatedAt = req.CreatedAt
		}

		if req.ID != "" {
			user.ID = req.ID
			err = creator.Save(r.Context(), user)
		} else {
			user, err = creator.SaveNew(r.Context(), user)
		}
		if err != nil {
			if errors.Is(err, auth.ErrUserExists) {
				log.Warn("user already exists")

				render.Status(r, http.StatusConflict)
				render.JSON(w, r, resp.Error("User already exists"))

				return
			}

			log.Error("failed to save user", sl.Err(err))

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to create user"))

			return
		}

		log.Info("user created", slog.String("uid", user.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, user)
	}
}
