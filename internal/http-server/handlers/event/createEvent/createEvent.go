package createEvent

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"ticketgate/internal/http-server/middleware/mwauth"
	"ticketgate/internal/lib/api/response"
	"ticketgate/internal/lib/logger/sl"
	"ticketgate/internal/models"
)

type EventRequest struct {
	Name        string    `json:"name" validate:"required,min=5,max=100"`
	Description string    `json:"description,omitempty" validate:"omitempty,max=500"`
	Date        time.Time `json:"date" validate:"required"`
	Price       float64   `json:"price" validate:"gte=0"`
	Capacity    int       `json:"capacity" validate:"required,gte=1"`
}

type EventResponse struct {
	response.Response
	Event *models.Event `json:"event"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventCreator
type EventCreator interface {
	CreateEvent(ctx context.Context, ev models.Event) (*models.Event, error)
}

func New(log *slog.Logger, events EventCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.createEvent.New"

		log := log.With(slog.String("op", op))

		claims, ok := mwauth.ClaimsFromContext(r.Context())
		if !ok {
			log.Error("no claims in request context")
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authorization token is missing or invalid"))
			return
		}

		var req EventRequest

		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			log.Error("failed to decode request body", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("failed to decode request"))
			return
		}

		log.Info("request body decoded", slog.Any("request", req))

		if err = validator.New().Struct(req); err != nil {
			var validateErr validator.ValidationErrors
			if errors.As(err, &validateErr) {
				log.Error("invalid request", sl.Err(err))
				render.Status(r, http.StatusBadRequest)
				render.JSON(w, r, response.ValidationError(validateErr))
				return
			}
		}

		event, err := events.CreateEvent(r.Context(), models.Event{
			Name:        req.Name,
			Description: req.Description,
			Date:        req.Date,
			Price:       req.Price,
			Capacity:    req.Capacity,
			CreatedBy:   claims.UserID,
		})
		if err != nil {
			log.Error("failed to create event", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create event"))
			return
		}

		log.Info("event created", slog.String("event_id", event.ID))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, EventResponse{
			Response: response.OK(),
			Event:    event,
		})
	}
}
