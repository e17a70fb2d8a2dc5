package updateEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"ticketgate/internal/http-server/middleware/mwauth"
	"ticketgate/internal/lib/api/response"
	"ticketgate/internal/lib/logger/sl"
	"ticketgate/internal/models"
	"ticketgate/internal/storage"
)

// UpdateRequest is a partial update; absent fields keep their values.
type UpdateRequest struct {
	Name        *string    `json:"name,omitempty" validate:"omitempty,min=5,max=100"`
	Description *string    `json:"description,omitempty" validate:"omitempty,max=500"`
	Date        *time.Time `json:"date,omitempty"`
	Price       *float64   `json:"price,omitempty" validate:"omitempty,gte=0"`
	Capacity    *int       `json:"capacity,omitempty" validate:"omitempty,gte=1"`
}

type EventResponse struct {
	response.Response
	Event *models.Event `json:"event"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventUpdater
type EventUpdater interface {
	UpdateEvent(ctx context.Context, eventID, requesterID string, upd storage.EventUpdate) (*models.Event, error)
}

func New(log *slog.Logger, events EventUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.updateEvent.New"

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

		var req UpdateRequest

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

		event, err := events.UpdateEvent(r.Context(), eventID, claims.UserID, storage.EventUpdate{
			Name:        req.Name,
			Description: req.Description,
			Date:        req.Date,
			Price:       req.Price,
			Capacity:    req.Capacity,
		})
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
			case errors.Is(err, storage.ErrCapacityTooLow):
				log.Info("capacity below tickets sold", slog.String("event_id", eventID))
				render.Status(r, http.StatusConflict)
				render.JSON(w, r, response.Error("capacity cannot drop below tickets already sold"))
			default:
				log.Error("failed to update event", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("failed to update event"))
			}
			return
		}

		log.Info("event updated", slog.String("event_id", event.ID))

		render.JSON(w, r, EventResponse{
			Response: response.OK(),
			Event:    event,
		})
	}
}
