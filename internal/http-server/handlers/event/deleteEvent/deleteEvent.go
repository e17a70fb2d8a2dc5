package deleteEvent

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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventDeleter
type EventDeleter interface {
	DeleteEvent(ctx context.Context, eventID, requesterID string) error
}

// New deletes an event. Only the creator may do this; co-organizers get
// their delegation on the event released as part of the removal.
func New(log *slog.Logger, events EventDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.deleteEvent.New"

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

		err := events.DeleteEvent(r.Context(), eventID, claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrEventNotFound):
				log.Info("event not found", slog.String("event_id", eventID))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, storage.ErrNotEventManager):
				log.Info("requester is not the event creator",
					slog.String("event_id", eventID),
					slog.String("user_id", claims.UserID),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("only the event creator can delete it"))
			default:
				log.Error("failed to delete event", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to delete event"))
			}
			return
		}

		log.Info("event deleted", slog.String("event_id", eventID))

		render.JSON(w, r, response.OK())
	}
}
