package app

import (
	"context"
	"log/slog"
	"net/http"

	"booking_service/internal/facade"
	adminstats "booking_service/internal/http-server/handlers/admin_stats"
	cancelbooking "booking_service/internal/http-server/handlers/cancel_booking"
	"booking_service/internal/http-server/handlers/featured"
	getbookings "booking_service/internal/http-server/handlers/get_bookings"
	gethotels "booking_service/internal/http-server/handlers/get_hotels"
	getrestaurants "booking_service/internal/http-server/handlers/get_restaurants"
	getreviews "booking_service/internal/http-server/handlers/get_reviews"
	getusers "booking_service/internal/http-server/handlers/get_users"
	"booking_service/internal/http-server/handlers/login"
	mybookings "booking_service/internal/http-server/handlers/my_bookings"
	"booking_service/internal/http-server/handlers/profile"
	"booking_service/internal/http-server/handlers/register"
	reviewsummary "booking_service/internal/http-server/handlers/review_summary"
	savebooking "booking_service/internal/http-server/handlers/save_booking"
	savereview "booking_service/internal/http-server/handlers/save_review"
	saveuser "booking_service/internal/http-server/handlers/save_user"
	searchhotels "booking_service/internal/http-server/handlers/search_hotels"
	searchrestaurants "booking_service/internal/http-server/handlers/search_restaurants"
	"booking_service/internal/lib/jwt"
	"booking_service/internal/lib/logger/sl"
	"booking_service/internal/services/auth"
	"booking_service/internal/services/booking"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

type Deps struct {
	Facade    *facade.Facade
	Auth      *auth.Auth
	Booking   *booking.BookingService
	AppSecret string
}

// NewRouter mounts every HTTP route of the booking service.
func NewRouter(log *slog.Logger, d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// * Resource endpoints
	r.Route("/api/data", func(r chi.Router) {
		r.Get("/users", getusers.New(log, d.Facade))
		r.Post("/users", saveuser.New(log, d.Auth))

		r.Get("/hotels", gethotels.New(log, d.Facade))
		r.Get("/hotels/{id}", gethotels.ByID(log, d.Facade))
		r.Get("/restaurants", getrestaurants.New(log, d.Facade))
		r.Get("/restaurants/{id}", getrestaurants.ByID(log, d.Facade))

		r.Get("/bookings", getbookings.New(log, d.Facade))
		r.Post("/bookings", savebooking.New(log, d.Booking))
		r.Delete("/bookings", cancelbooking.New(log, d.Booking))

		r.Get("/reviews", getreviews.New(log, d.Facade))
		r.Post("/reviews", savereview.New(log, d.Booking))
	})

	// * Auth
	r.Post("/api/auth/login", login.New(log, d.Auth))
	r.Post("/api/auth/register", register.New(log, d.Auth))

	// * Views
	r.Get("/api/hotels", searchhotels.New(log, d.Facade))
	r.Get("/api/hotels/{id}/quote", searchhotels.NewQuote(log, d.Facade))
	r.Get("/api/restaurants", searchrestaurants.New(log, d.Facade))
	r.Get("/api/restaurants/cuisines", searchrestaurants.Cuisines(log, d.Facade))
	r.Get("/api/featured", featured.New(log, d.Facade))
	r.Get("/api/reviews/summary", reviewsummary.New(log, d.Facade))

	r.Group(func(r chi.Router) {
		r.Use(jwt.AuthMiddleware(d.AppSecret))

		r.Get("/api/me", profile.Get(log, d.Auth))
		r.Patch("/api/me", profile.Update(log, d.Auth))
		r.Get("/api/me/bookings", mybookings.New(log, d.Facade))

		r.With(jwt.AdminOnly).Get("/api/admin/stats", adminstats.New(log, d.Facade))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}

// Warm loads the façade snapshot so the first request does not pay for it.
func Warm(ctx context.Context, log *slog.Logger, f *facade.Facade) {
	if _, err := f.Snapshot(ctx); err != nil {
		log.Warn("failed to warm snapshot", sl.Err(err))
	}
}
