package myTickets

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

type TicketsResponse struct {
	response.Response
	Tickets []storage.TicketView `json:"tickets"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=TicketLister
type TicketLister interface {
	TicketsByUser(ctx context.Context, userID string) ([]storage.TicketView, error)
}

// New lists the caller's confirmed tickets.
func New(log *slog.Logger, tickets TicketLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.ticket.myTickets.New"

		log := log.With(slog.String("op", op))

		claims, ok := mwauth.ClaimsFromContext(r.Context())
		if !ok {
			log.Error("no claims in request context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authorization token is missing or invalid"))
			return
		}

		list, err := tickets.TicketsByUser(r.Context(), claims.UserID)
		if err != nil {
			log.Error("failed to get tickets", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get tickets"))
			return
		}

		log.Info("tickets retrieved",
			slog.String("user_id", claims.UserID),
			slog.Int("count", len(list)),
		)

		render.JSON(w, r, TicketsResponse{
			Response: response.OK(),
			Tickets:  list,
		})
	}
}
