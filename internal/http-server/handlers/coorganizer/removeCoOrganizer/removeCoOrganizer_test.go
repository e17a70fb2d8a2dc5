package removeCoOrganizer

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
	"ticketgate/internal/http-server/handlers/coorganizer/removeCoOrganizer/mocks"
	"ticketgate/internal/http-server/middleware/mwauth"
	"ticketgate/internal/lib/logger/handlers/slogdiscard"
	"ticketgate/internal/models"
	"ticketgate/internal/storage"
	"ticketgate/internal/storage/memory"
)

func TestRemoveCoOrganizerHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	manager := token.NewManager("test-secret", time.Hour)
	auth := mwauth.New(logger, manager, memory.New())

	raw, err := manager.Issue("u-org", "organizer", models.RoleOrganizer)
	require.NoError(t, err)

	testCases := []struct {
		name           string
		mockSetup      func(m *mocks.CoOrganizerRemover)
		expectedStatus int
	}{
		{
			name: "Success",
			mockSetup: func(m *mocks.CoOrganizerRemover) {
				m.On("RemoveCoOrganizer", mock.Anything, "e-1", "u-org", "u-2").Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Event not found",
			mockSetup: func(m *mocks.CoOrganizerRemover) {
				m.On("RemoveCoOrganizer", mock.Anything, "e-1", "u-org", "u-2").
					Return(storage.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name: "Not the creator",
			mockSetup: func(m *mocks.CoOrganizerRemover) {
				m.On("RemoveCoOrganizer", mock.Anything, "e-1", "u-org", "u-2").
					Return(storage.ErrNotEventManager)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "Not a co-organizer",
			mockSetup: func(m *mocks.CoOrganizerRemover) {
				m.On("RemoveCoOrganizer", mock.Anything, "e-1", "u-org", "u-2").
					Return(storage.ErrNotCoOrganizer)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "Storage failure",
			mockSetup: func(m *mocks.CoOrganizerRemover) {
				m.On("RemoveCoOrganizer", mock.Anything, "e-1", "u-org", "u-2").
					Return(errors.New("database down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			remover := mocks.NewCoOrganizerRemover(t)
			tc.mockSetup(remover)

			router := chi.NewRouter()
			router.Delete("/events/{id}/coorganizers/{userID}",
				auth.Require(New(logger, remover)).ServeHTTP)

			req := httptest.NewRequest(http.MethodDelete, "/events/e-1/coorganizers/u-2", nil)
			req.Header.Set("Authorization", "Bearer "+raw)

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}
