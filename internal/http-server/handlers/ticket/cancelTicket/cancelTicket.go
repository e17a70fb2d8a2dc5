package cancelTicket

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"ticketgate/internal/http-server/middleware/mwauth"
	"ticketgate/internal/lib/api/response"
	"ticketgate/internal/lib/logger/sl"
	"ticketgate/internal/storage"
)

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketCanceller
type TicketCanceller interface {
	CancelTicket(ctx context.Context, eventID, userID string) error
}

// New cancels the caller's confirmed ticket and frees the seat.
func New(log *slog.Logger, tickets TicketCanceller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ticket.cancelTicket.New"

		log := log.With(slog.String("op", op))

		claims, ok := mwauth.ClaimsFromContext(r.Context())
		if !ok {
			log.Error("no claims in request context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authorization token is missing or invalid"))
			return
		}

		eventID := chi.URLParam(r, "id")
		if eventID == "" {
			log.Error("event id is missing in request path")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id is required"))
			return
		}

		err := tickets.CancelTicket(r.Context(), eventID, claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrEventNotFound):
				log.Info("event not found", slog.String("event_id", eventID))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, storage.ErrNotRegistered):
				log.Info("no active registration",
					slog.String("event_id", eventID),
					slog.String("user_id", claims.UserID),
				)
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("you have no active ticket for this event"))
			default:
				log.Error("failed to cancel ticket", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to cancel ticket"))
			}
			return
		}

		log.Info("ticket cancelled",
			slog.String("event_id", eventID),
			slog.String("user_id", claims.UserID),
		)

		render.JSON(w, r, response.OK())
	}
}
