package featured

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

type SnapshotProvider interface {
	Snapshot(ctx context.Context) (*models.Snapshot, error)
}

func New(log *slog.Logger, provider SnapshotProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.featured.New"

		snap, err := provider.Snapshot(r.Context())
		if err != nil {
			log.Error("failed to load snapshot",
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				sl.Err(err),
			)

			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, resp.Error("Failed to fetch listings"))

			return
		}

		render.JSON(w, r, views.FeaturedOf(snap.Hotels, snap.Restaurants))
	}
}
