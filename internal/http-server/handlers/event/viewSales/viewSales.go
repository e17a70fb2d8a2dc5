package viewSales

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"ticketgate/internal/http-server/middleware/mwauth"
	"ticketgate/internal/lib/api/response"
	"ticketgate/internal/lib/logger/sl"
	"ticketgate/internal/storage"
)

type SalesResponse struct {
	response.Response
	Sales []storage.EventSales `json:"sales"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=SalesProvider
type SalesProvider interface {
	SalesByOrganizer(ctx context.Context, organizerID string) ([]storage.EventSales, error)
}

// New reports ticket counts and revenue per event created by the caller.
func New(log *slog.Logger, sales SalesProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.viewSales.New"

		log := log.With(slog.String("op", op))

		claims, ok := mwauth.ClaimsFromContext(r.Context())
		if !ok {
			log.Error("no claims in request context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authorization token is missing or invalid"))
			return
		}

		report, err := sales.SalesByOrganizer(r.Context(), claims.UserID)
		if err != nil {
			log.Error("failed to get sales report", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get sales report"))
			return
		}

		log.Info("sales report built",
			slog.String("organizer_id", claims.UserID),
			slog.Int("events", len(report)),
		)

		render.JSON(w, r, SalesResponse{
			Response: response.OK(),
			Sales:    report,
		})
	}
}
