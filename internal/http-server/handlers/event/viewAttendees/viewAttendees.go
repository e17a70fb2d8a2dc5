package viewAttendees

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

type AttendeesResponse struct {
	response.Response
	Attendees []storage.AttendeeView `json:"attendees"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=AttendeeLister
type AttendeeLister interface {
	AttendeesByEvent(ctx context.Context, eventID, requesterID string) ([]storage.AttendeeView, error)
}

// New lists confirmed attendees of an event. The requester must be the
// creator or a co-organizer of that specific event.
func New(log *slog.Logger, attendees AttendeeLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.viewAttendees.New"

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

		list, err := attendees.AttendeesByEvent(r.Context(), eventID, claims.UserID)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrEventNotFound):
				log.Info("event not found", slog.String("event_id", eventID))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, storage.ErrNotEventManager):
				log.Info("requester is not an event manager",
					slog.String("event_id", eventID),
					slog.String("user_id", claims.UserID),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("you do not manage this event"))
			default:
				log.Error("failed to get attendees", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to get attendees"))
			}
			return
		}

		log.Info("attendees retrieved",
			slog.String("event_id", eventID),
			slog.Int("count", len(list)),
		)

		render.JSON(w, r, AttendeesResponse{
			Response:  response.OK(),
			Attendees: list,
		})
	}
}
