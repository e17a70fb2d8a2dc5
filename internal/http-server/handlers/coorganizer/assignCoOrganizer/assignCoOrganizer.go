package assignCoOrganizer

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"ticketgate/internal/http-server/middleware/mwauth"
	"ticketgate/internal/lib/api/response"
	"ticketgate/internal/lib/logger/sl"
	"ticketgate/internal/storage"
)

type AssignRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=CoOrganizerAssigner
type CoOrganizerAssigner interface {
	AssignCoOrganizer(ctx context.Context, eventID, requesterID, targetID string) error
}

// New grants a user co-organizer standing on one event. The storage layer
// checks that the requester manages the event and promotes the target's
// role if they were a plain attendee.
func New(log *slog.Logger, delegations CoOrganizerAssigner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.coorganizer.assignCoOrganizer.New"

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

		var req AssignRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		err = delegations.AssignCoOrganizer(r.Context(), eventID, claims.UserID, req.UserID)
		if err != nil {
			switch {
			case errors.Is(err, storage.ErrEventNotFound):
				log.Info("event not found", slog.String("event_id", eventID))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("event not found"))
			case errors.Is(err, storage.ErrUserNotFound):
				log.Info("target user not found", slog.String("target_id", req.UserID))
				render.Status(r, http.StatusNotFound)
				render.JSON(w, r, response.Error("user not found"))
			case errors.Is(err, storage.ErrNotEventManager):
				log.Info("requester is not an event manager",
					slog.String("event_id", eventID),
					slog.String("user_id", claims.UserID),
				)
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("you do not manage this event"))
			case errors.Is(err, storage.ErrAlreadyCoOrganizer):
				log.Info("target is already a co-organizer",
					slog.String("event_id", eventID),
					slog.String("target_id", req.UserID),
				)
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("user already co-organizes this event"))
			default:
				log.Error("failed to assign co-organizer", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to assign co-organizer"))
			}
			return
		}

		log.Info("co-organizer assigned",
			slog.String("event_id", eventID),
			slog.String("target_id", req.UserID),
		)

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, response.OK())
	}
}
