package removeCoOrganizer

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

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=CoOrganizerRemover
type CoOrganizerRemover interface {
	RemoveCoOrganizer(ctx context.Context, eventID, requesterID, targetID string) error
}

// New revokes a user's co-organizer standing on one event. The target
// keeps the CoOrganizer role while they still co-organize other events.
func New(log *slog.Logger, delegations CoOrganizerRemover) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.coorganizer.removeCoOrganizer.New"

		log := log.With(slog.String("op", op))

		claims, ok := mwauth.ClaimsFromContext(r.Context())
		if !ok {
			log.Error("no claims in request context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authorization token is missing or invalid"))
			return
		}

		eventID := chi.URLParam(r, "id")
		targetID := chi.URLParam(r, "userID")
		if eventID == "" || targetID == "" {
			log.Error("event id or user id is missing in request path")
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("event id and user id are required"))
			return
		}

		err := delegations.RemoveCoOrganizer(r.Context(), eventID, claims.UserID, targetID)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrEventNotFound):
				log.Info("event not found", slog.String("event_id", eventID))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, storage.ErrUserNotFound):
				log.Info("target user not found", slog.String("target_id", targetID))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("user not found"))
			case errors.Is(err, storage.ErrNotEventManager):
				log.Info("requester is not an event manager",
					slog.String("event_id", eventID),
					slog.String("user_id", claims.UserID),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("you do not manage this event"))
			case errors.Is(err, storage.ErrNotCoOrganizer):
				log.Info("target does not co-organize this event",
					slog.String("event_id", eventID),
					slog.String("target_id", targetID),
				)
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("user does not co-organize this event"))
			default:
				log.Error("failed to remove co-organizer", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to remove co-organizer"))
			}
			return
		}

		log.Info("co-organizer removed",
			slog.String("event_id", eventID),
			slog.String("target_id", targetID),
		)

		render.JSON(w, r, response.OK())
	}
}
