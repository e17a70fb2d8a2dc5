package assignCoOrganizer

import (
	"bytes"
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
	"ticketgate/internal/http-server/handlers/coorganizer/assignCoOrganizer/mocks"
	"ticketgate/internal/http-server/middleware/mwauth"
	"ticketgate/internal/lib/logger/handlers/slogdiscard"
	"ticketgate/internal/models"
	"ticketgate/internal/storage"
	"ticketgate/internal/storage/memory"
)

func TestAssignCoOrganizerHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	manager := token.NewManager("test-secret", time.Hour)
	auth := mwauth.New(logger, manager, memory.New())

	raw, err := manager.Issue("u-org", "organizer", models.RoleOrganizer)
	require.NoError(t, err)

	testCases := []struct {
		name           string
		body           string
		mockSetup      func(m *mocks.CoOrganizerAssigner)
		expectedStatus int
	}{
		{
			name: "Success",
			body: `{"user_id": "u-2"}`,
			mockSetup: func(m *mocks.CoOrganizerAssigner) {
				m.On("AssignCoOrganizer", mock.Anything, "e-1", "u-org", "u-2").Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing user id",
			body:           `{}`,
			mockSetup:      func(m *mocks.CoOrganizerAssigner) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "Event not found",
			body: `{"user_id": "u-2"}`,
			mockSetup: func(m *mocks.CoOrganizerAssigner) {
				m.On("AssignCoOrganizer", mock.Anything, "e-1", "u-org", "u-2").
					Return(storage.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Target user not found",
			body: `{"user_id": "u-ghost"}`,
			mockSetup: func(m *mocks.CoOrganizerAssigner) {
				m.On("AssignCoOrganizer", mock.Anything, "e-1", "u-org", "u-ghost").
					Return(storage.ErrUserNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Not the creator",
			body: `{"user_id": "u-2"}`,
			mockSetup: func(m *mocks.CoOrganizerAssigner) {
				m.On("AssignCoOrganizer", mock.Anything, "e-1", "u-org", "u-2").
					Return(storage.ErrNotEventManager)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "Already a co-organizer",
			body: `{"user_id": "u-2"}`,
			mockSetup: func(m *mocks.CoOrganizerAssigner) {
				m.On("AssignCoOrganizer", mock.Anything, "e-1", "u-org", "u-2").
					Return(storage.ErrAlreadyCoOrganizer)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Storage failure",
			body: `{"user_id": "u-2"}`,
			mockSetup: func(m *mocks.CoOrganizerAssigner) {
				m.On("AssignCoOrganizer", mock.Anything, "e-1", "u-org", "u-2").
					Return(errors.New("database down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assigner := mocks.NewCoOrganizerAssigner(t)
			tc.mockSetup(assigner)

			router := chi.NewRouter()
			router.Post("/events/{id}/coorganizers", auth.Require(New(logger, assigner)).ServeHTTP)

			req := httptest.NewRequest(http.MethodPost, "/events/e-1/coorganizers", bytes.NewBufferString(tc.body))
			req.Header.Set("Authorization", "Bearer "+raw)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}
