package purchaseTicket

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
	"ticketgate/internal/http-server/handlers/ticket/purchaseTicket/mocks"
	"ticketgate/internal/http-server/middleware/mwauth"
	"ticketgate/internal/lib/logger/handlers/slogdiscard"
	"ticketgate/internal/models"
	"ticketgate/internal/storage"
	"ticketgate/internal/storage/memory"
)

func TestPurchaseTicketHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	manager := token.NewManager("test-secret", time.Hour)
	auth := mwauth.New(logger, manager, memory.New())

	raw, err := manager.Issue("u-1", "alice", models.RoleAttendee)
	require.NoError(t, err)

	testCases := []struct {
		name           string
		header         string
		mockSetup      func(m *mocks.TicketPurchaser)
		expectedStatus int
	}{
		{
			name:   "Success",
			header: "Bearer " + raw,
			mockSetup: func(m *mocks.TicketPurchaser) {
				m.On("PurchaseTicket", mock.Anything, "e-1", "u-1").Return(nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "No token",
			header:         "",
			mockSetup:      func(m *mocks.TicketPurchaser) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "Event not found",
			header: "Bearer " + raw,
			mockSetup: func(m *mocks.TicketPurchaser) {
				m.On("PurchaseTicket", mock.Anything, "e-1", "u-1").
					Return(storage.ErrEventNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:   "Sold out",
			header: "Bearer " + raw,
			mockSetup: func(m *mocks.TicketPurchaser) {
				m.On("PurchaseTicket", mock.Anything, "e-1", "u-1").
					Return(storage.ErrSoldOut)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "Already registered",
			header: "Bearer " + raw,
			mockSetup: func(m *mocks.TicketPurchaser) {
				m.On("PurchaseTicket", mock.Anything, "e-1", "u-1").
					Return(storage.ErrAlreadyRegistered)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "Storage failure",
			header: "Bearer " + raw,
			mockSetup: func(m *mocks.TicketPurchaser) {
				m.On("PurchaseTicket", mock.Anything, "e-1", "u-1").
					Return(errors.New("database down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			purchaser := mocks.NewTicketPurchaser(t)
			tc.mockSetup(purchaser)

			router := chi.NewRouter()
			router.Post("/events/{id}/tickets", auth.Require(New(logger, purchaser)).ServeHTTP)

			req := httptest.NewRequest(http.MethodPost, "/events/e-1/tickets", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}

			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)
		})
	}
}
