package viewAttendees

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ticketgate/internal/auth/token"
	"ticketgate/internal/http-server/handlers/event/viewAttendees/mocks"
	"ticketgate/internal/http-server/middleware/mwauth"
	"ticketgate/internal/lib/logger/handlers/slogdiscard"
	"ticketgate/internal/models"
	"ticketgate/internal/storage"
	"ticketgate/internal/storage/memory"
)

func TestViewAttendeesHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	manager := token.NewManager("test-secret", time.Hour)
	auth := mwauth.New(logger, manager, memory.New())

	raw, err := manager.Issue("u-org", "organizer", models.RoleOrganizer)
	require.NoError(t, err)

	confirmed := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name           string
		mockSetup      func(m *mocks.AttendeeLister)
		expectedStatus int
	}{
		{
			name: "Success",
			mockSetup: func(m *mocks.AttendeeLister) {
				m.On("AttendeesByEvent", mock.Anything, "e-1", "u-org").
					Return([]storage.AttendeeView{
						{UserID: "u-1", Username: "alice", ConfirmedAt: confirmed},
					}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Event not found",
			mockSetup: func(m *mocks.AttendeeLister) {
				m.On("AttendeesByEvent", mock.Anything, "e-1", "u-org").
					Return(nil, storage.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Not an event manager",
			mockSetup: func(m *mocks.AttendeeLister) {
				m.On("AttendeesByEvent", mock.Anything, "e-1", "u-org").
					Return(nil, storage.ErrNotEventManager)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "Storage failure",
			mockSetup: func(m *mocks.AttendeeLister) {
				m.On("AttendeesByEvent", mock.Anything, "e-1", "u-org").
					Return(nil, errors.New("database down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			lister := mocks.NewAttendeeLister(t)
			tc.mockSetup(lister)

			router := chi.NewRouter()
			router.Get("/events/{id}/attendees", auth.Require(New(logger, lister)).ServeHTTP)

			req := httptest.NewRequest(http.MethodGet, "/events/e-1/attendees", nil)
			req.Header.Set("Authorization", "Bearer "+raw)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}
