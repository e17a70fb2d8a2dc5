package viewSales

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
	"ticketgate/internal/http-server/handlers/event/viewSales/mocks"
	"ticketgate/internal/http-server/middleware/mwauth"
	"ticketgate/internal/lib/logger/handlers/slogdiscard"
	"ticketgate/internal/models"
	"ticketgate/internal/storage"
	"ticketgate/internal/storage/memory"
)

func TestViewSalesHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	manager := token.NewManager("test-secret", time.Hour)
	auth := mwauth.New(logger, manager, memory.New())

	raw, err := manager.Issue("u-org", "organizer", models.RoleOrganizer)
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		t.Parallel()

		provider := mocks.NewSalesProvider(t)
		provider.On("SalesByOrganizer", mock.Anything, "u-org").Return([]storage.EventSales{
			{EventID: "e-1", Name: "Go Conference", TicketsSold: 42, Revenue: 5040},
			{EventID: "e-2", Name: "Community Meetup", TicketsSold: 10, Revenue: 0},
		}, nil)

		handler := auth.Require(New(logger, provider))

		req := httptest.NewRequest(http.MethodGet, "/events/sales", nil)
		req.Header.Set("Authorization", "Bearer "+raw)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp SalesResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		require.Len(t, resp.Sales, 2)
		assert.Equal(t, float64(5040), resp.Sales[0].Revenue)
		assert.Equal(t, 10, resp.Sales[1].TicketsSold)
	})

	t.Run("No token", func(t *testing.T) {
		t.Parallel()

		provider := mocks.NewSalesProvider(t)
		handler := auth.Require(New(logger, provider))

		req := httptest.NewRequest(http.MethodGet, "/events/sales", nil)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("Storage failure", func(t *testing.T) {
		t.Parallel()

		provider := mocks.NewSalesProvider(t)
		provider.On("SalesByOrganizer", mock.Anything, "u-org").
			Return(nil, errors.New("database down"))

		handler := auth.Require(New(logger, provider))

		req := httptest.NewRequest(http.MethodGet, "/events/sales", nil)
		req.Header.Set("Authorization", "Bearer "+raw)

		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}
