package signup

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"ticketgate/internal/auth/password"
	"ticketgate/internal/http-server/handlers/auth/signup/mocks"
	"ticketgate/internal/lib/logger/handlers/slogdiscard"
	"ticketgate/internal/models"
	"ticketgate/internal/storage"
)

func TestSignupHandler(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	hasher := password.NewHasher(bcrypt.MinCost)

	testCases := []struct {
		name           string
		requestBody    string
		mockSetup      func(m *mocks.UserRegistrar)
		expectedStatus int
		checkBody      func(t *testing.T, body string)
	}{
		{
			name:        "Success with default role",
			requestBody: `{"username": "alice123", "password": "sup3r-secret"}`,
			mockSetup: func(m *mocks.UserRegistrar) {
				m.On("CreateUser", mock.Anything, "alice123", mock.AnythingOfType("string"), models.RoleAttendee).
					Return(&models.User{ID: "u-1", Username: "alice123", Role: models.RoleAttendee}, nil)
			},
			expectedStatus: http.StatusCreated,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"status":"OK"`)
				assert.Contains(t, body, `"user_id":"u-1"`)
				assert.Contains(t, body, `"role":"Attendee"`)
			},
		},
		{
			name:        "Success as organizer",
			requestBody: `{"username": "olivia-org", "password": "sup3r-secret", "role": "Organizer"}`,
			mockSetup: func(m *mocks.UserRegistrar) {
				m.On("CreateUser", mock.Anything, "olivia-org", mock.AnythingOfType("string"), models.RoleOrganizer).
					Return(&models.User{ID: "u-2", Username: "olivia-org", Role: models.RoleOrganizer}, nil)
			},
			expectedStatus: http.StatusCreated,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, `"role":"Organizer"`)
			},
		},
		{
			name:           "Invalid JSON",
			requestBody:    `not json`,
			mockSetup:      func(m *mocks.UserRegistrar) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Username too short",
			requestBody:    `{"username": "abc", "password": "sup3r-secret"}`,
			mockSetup:      func(m *mocks.UserRegistrar) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "Username")
			},
		},
		{
			name:           "Missing password",
			requestBody:    `{"username": "alice123"}`,
			mockSetup:      func(m *mocks.UserRegistrar) {},
			expectedStatus: http.StatusBadRequest,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "Password")
			},
		},
		{
			name:           "Role cannot be CoOrganizer",
			requestBody:    `{"username": "alice123", "password": "sup3r-secret", "role": "CoOrganizer"}`,
			mockSetup:      func(m *mocks.UserRegistrar) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:        "Username taken",
			requestBody: `{"username": "alice123", "password": "sup3r-secret"}`,
			mockSetup: func(m *mocks.UserRegistrar) {
				m.On("CreateUser", mock.Anything, "alice123", mock.AnythingOfType("string"), models.RoleAttendee).
					Return(nil, storage.ErrUserExists)
			},
			expectedStatus: http.StatusConflict,
			checkBody: func(t *testing.T, body string) {
				assert.Contains(t, body, "username already exists")
			},
		},
		{
			name:        "Storage error",
			requestBody: `{"username": "alice123", "password": "sup3r-secret"}`,
			mockSetup: func(m *mocks.UserRegistrar) {
				m.On("CreateUser", mock.Anything, "alice123", mock.AnythingOfType("string"), models.RoleAttendee).
					Return(nil, errors.New("database down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			registrar := mocks.NewUserRegistrar(t)
			tc.mockSetup(registrar)

			handler := New(logger, registrar, hasher)

			req, err := http.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString(tc.requestBody))
			require.NoError(t, err)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			assert.Equal(t, tc.expectedStatus, rr.Code)

			if tc.checkBody != nil {
				tc.checkBody(t, rr.Body.String())
			}
		})
	}
}

func TestSignupHashesPassword(t *testing.T) {
	t.Parallel()

	logger := slogdiscard.NewDiscardLogger()
	hasher := password.NewHasher(bcrypt.MinCost)

	registrar := mocks.NewUserRegistrar(t)
	registrar.On("CreateUser", mock.Anything, "alice123", mock.MatchedBy(func(hash string) bool {
		return hash != "plain-secret" && password.Verify("plain-secret", hash)
	}), models.RoleAttendee).Return(&models.User{ID: "u-1", Role: models.RoleAttendee}, nil)

	handler := New(logger, registrar, hasher)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup",
		bytes.NewBufferString(`{"username": "alice123", "password": "plain-secret"}`))
	rr := httptest.NewRecorder()

	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
}
