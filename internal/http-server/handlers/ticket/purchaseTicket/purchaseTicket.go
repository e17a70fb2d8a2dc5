package purchaseTicket

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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketPurchaser
type TicketPurchaser interface {
	PurchaseTicket(ctx context.Context, eventID, userID string) error
}

// New confirms a ticket for the caller. The storage layer guarantees the
// sold counter never passes capacity, so a full event answers 409 even
// under concurrent purchases.
func New(log *slog.Logger, tickets TicketPurchaser) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ticket.purchaseTicket.New"

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

		err := tickets.PurchaseTicket(r.Context(), eventID, claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrEventNotFound):
				log.Info("event not found", slog.String("event_id", eventID))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, storage.ErrSoldOut):
				log.Info("event sold out", slog.String("event_id", eventID))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("event is sold out"))
			case errors.Is(err, storage.ErrAlreadyRegistered):
				log.Info("user already registered",
					slog.String("event_id", eventID),
					slog.String("user_id", claims.UserID),
				)
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("you already hold a ticket for this event"))
			default:
				log.Error("failed to purchase ticket", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to purchase ticket"))
			}
			return
		}

		log.Info("ticket purchased",
			slog.String("event_id", eventID),
			slog.String("user_id", claims.UserID),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.OK())
	}
}
