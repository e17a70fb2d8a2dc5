package createEvent

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ticketgate/internal/auth/token"
	"ticketgate/internal/http-server/handlers/event/createEvent/mocks"
	"ticketgate/internal/http-server/middleware/mwauth"
	"ticketgate/internal/lib/logger/handlers/slogdiscard"
	"ticketgate/internal/models"
	"ticketgate/internal/storage/memory"
)

func TestCreateEventHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	manager := token.NewManager("test-secret", time.Hour)
	auth := mwauth.New(logger, manager, memory.New())

	organizerToken, err := manager.Issue("org-1", "olivia", models.RoleOrganizer)
	require.NoError(t, err)

	testCases := []struct {
		name           string
		header         string
		requestBody    string
		mockSetup      func(m *mocks.EventCreator)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Success",
			header:      "Bearer " + organizerToken,
			requestBody: `{"name": "Go Conference", "description": "talks", "date": "2026-10-01T10:00:00Z", "price": 50, "capacity": 100}`,
			mockSetup: func(m *mocks.EventCreator) {
				m.On("CreateEvent", mock.Anything, mock.MatchedBy(func(ev models.Event) bool {
					return ev.Name == "Go Conference" && ev.Capacity == 100 && ev.CreatedBy == "org-1"
				})).Return(&models.Event{ID: "ev-1", Name: "Go Conference", Capacity: 100, CreatedBy: "org-1"}, nil)
			},
			expectedStatus: http.StatusCreated,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"OK"`)
				assert.Contains(t, body, `"id":"ev-1"`)
			},
		},
		{
			name:        "Free event allowed",
			header:      "Bearer " + organizerToken,
			requestBody: `{"name": "Community Meetup", "date": "2026-10-01T10:00:00Z", "price": 0, "capacity": 30}`,
			mockSetup: func(m *mocks.EventCreator) {
				m.On("CreateEvent", mock.Anything, mock.AnythingOfType("models.Event")).
					Return(&models.Event{ID: "ev-2"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "No token",
			header:         "",
			requestBody:    `{"name": "Go Conference", "date": "2026-10-01T10:00:00Z", "price": 50, "capacity": 100}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid JSON",
			header:         "Bearer " + organizerToken,
			requestBody:    `not json`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Name too short",
			header:         "Bearer " + organizerToken,
			requestBody:    `{"name": "Go", "date": "2026-10-01T10:00:00Z", "price": 50, "capacity": 100}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "Name")
			},
		},
		{
			name:           "Zero capacity",
			header:         "Bearer " + organizerToken,
			requestBody:    `{"name": "Go Conference", "date": "2026-10-01T10:00:00Z", "price": 50, "capacity": 0}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Negative price",
			header:         "Bearer " + organizerToken,
			requestBody:    `{"name": "Go Conference", "date": "2026-10-01T10:00:00Z", "price": -5, "capacity": 100}`,
			mockSetup:      func(m *mocks.EventCreator) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Storage error",
			header:      "Bearer " + organizerToken,
			requestBody: `{"name": "Go Conference", "date": "2026-10-01T10:00:00Z", "price": 50, "capacity": 100}`,
			mockSetup: func(m *mocks.EventCreator) {
				m.On("CreateEvent", mock.Anything, mock.AnythingOfType("models.Event")).
					Return(nil, errors.New("database down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			creator := mocks.NewEventCreator(t)
			tc.mockSetup(creator)

			handler := auth.Require(New(logger, creator))

			req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString(tc.requestBody))
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}
