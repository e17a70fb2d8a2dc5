package browseEvents

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"ticketgate/internal/http-server/middleware/mwauth"
	"ticketgate/internal/lib/api/response"
	"ticketgate/internal/lib/logger/sl"
	"ticketgate/internal/models"
)

type ListingsResponse struct {
	response.Response
	Events []models.EventListing `json:"events"`
}

type EventsResponse struct {
	response.Response
	Events []models.Event `json:"events"`
}

//go:generate go run github.com/vektra/mockery/v2@v2.51.1 --name=EventsLister
type EventsLister interface {
	AllEvents(ctx context.Context) ([]models.Event, error)
}

// New lists events. Guests and attendees see the reduced listing; event
// managers get the full record. This is a projection choice, both views
// read the same data.
func New(log *slog.Logger, events EventsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.event.browseEvents.New"

		log := log.With(slog.String("op", op))

		all, err := events.AllEvents(r.Context())
		if err != nil {
			log.Error("failed to get events", sl.Err(err))
			render.Status(r, http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to get events"))
			return
		}

		log.Info("events retrieved", slog.Int("count", len(all)))

		role := models.RoleGuest
		if claims, ok := mwauth.ClaimsFromContext(r.Context()); ok {
			role = claims.Role
		}

		if role == models.RoleOrganizer || role == models.RoleCoOrganizer {
			render.JSON(w, r, EventsResponse{
				Response: response.OK(),
				Events:   all,
			})
			return
		}

		listings := make([]models.EventListing, 0, len(all))
		for i := range all {
			listings = append(listings, all[i].Listing())
		}

		render.JSON(w, r, ListingsResponse{
			Response: response.OK(),
			Events:   listings,
		})
	}
}
