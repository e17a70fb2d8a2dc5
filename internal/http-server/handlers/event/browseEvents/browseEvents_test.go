package browseEvents

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ticketgate/internal/auth/token"
	"ticketgate/internal/http-server/handlers/event/browseEvents/mocks"
	"ticketgate/internal/http-server/middleware/mwauth"
	"ticketgate/internal/lib/logger/handlers/slogdiscard"
	"ticketgate/internal/models"
	"ticketgate/internal/storage/memory"
)

func sampleEvents() []models.Event {
	return []models.Event{
		{
			ID:          "e-1",
			Name:        "Go Conference",
			Description: "Two days of talks",
			Date:        time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
			Price:       120,
			Capacity:    300,
			TicketsSold: 42,
			CreatedBy:   "u-org",
		},
		{
			ID:       "e-2",
			Name:     "Community Meetup",
			Date:     time.Date(2026, 11, 5, 18, 0, 0, 0, time.UTC),
			Price:    0,
			Capacity: 50,
		},
	}
}

func TestBrowseEventsProjection(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	manager := token.NewManager("test-secret", time.Hour)
	auth := mwauth.New(logger, manager, memory.New())

	testCases := []struct {
		name     string
		role     models.Role
		withAuth bool
		full     bool
	}{
		{name: "Guest gets listing", withAuth: false, full: false},
		{name: "Attendee gets listing", role: models.RoleAttendee, withAuth: true, full: false},
		{name: "Organizer gets full view", role: models.RoleOrganizer, withAuth: true, full: true},
		{name: "CoOrganizer gets full view", role: models.RoleCoOrganizer, withAuth: true, full: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			lister := mocks.NewEventsLister(t)
			lister.On("AllEvents", mock.Anything).Return(sampleEvents(), nil)

			handler := auth.Optional(New(logger, lister))

			req := httptest.NewRequest(http.MethodGet, "/events", nil)
			if tc.withAuth {
				raw, err := manager.Issue("u-1", "alice", tc.role)
				require.NoError(t, err)
				req.Header.Set("Authorization", "Bearer "+raw)
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)

			if tc.full {
				var resp EventsResponse
				require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
				require.Len(t, resp.Events, 2)
				assert.Equal(t, 300, resp.Events[0].Capacity)
				assert.Equal(t, 42, resp.Events[0].TicketsSold)
				return
			}

			var resp ListingsResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			require.Len(t, resp.Events, 2)
			assert.Equal(t, "Go Conference", resp.Events[0].Name)
			assert.Equal(t, float64(120), resp.Events[0].Price)

			// the reduced listing must not leak inventory counters
			var raw []map[string]any
			var envelope struct {
				Events json.RawMessage `json:"events"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &envelope))
			require.NoError(t, json.Unmarshal(envelope.Events, &raw))
			assert.NotContains(t, raw[0], "capacity")
			assert.NotContains(t, raw[0], "tickets_sold")
		})
	}
}

func TestBrowseEventsStorageError(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	manager := token.NewManager("test-secret", time.Hour)
	auth := mwauth.New(logger, manager, memory.New())

	lister := mocks.NewEventsLister(t)
	lister.On("AllEvents", mock.Anything).Return(nil, errors.New("database down"))

	handler := auth.Optional(New(logger, lister))

	req := httptest.NewRequest(http.MethodGet, "/events", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
