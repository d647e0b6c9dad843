package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockValidator is a mock implementation of TokenValidator
type mockValidator struct {
	userID int
	role   int
	err    error
}

func (m *mockValidator) ValidateAccessToken(token string) (int, int, error) {
	if m.err != nil {
		return 0, 0, m.err
	}
	return m.userID, m.role, nil
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		validator      *mockValidator
		requiredRole   int
		header         string
		cookie         string
		expectedStatus int
		expectedUserID int
	}{
		{
			name:           "bearer token",
			validator:      &mockValidator{userID: 7, role: RoleTeacher},
			requiredRole:   RoleTeacher,
			header:         "Bearer token",
			expectedStatus: http.StatusOK,
			expectedUserID: 7,
		},
		{
			name:           "cookie token",
			validator:      &mockValidator{userID: 8, role: RoleStudent},
			requiredRole:   RoleStudent,
			cookie:         "token",
			expectedStatus: http.StatusOK,
			expectedUserID: 8,
		},
		{
			name:           "missing token",
			validator:      &mockValidator{},
			requiredRole:   RoleStudent,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong scheme",
			validator:      &mockValidator{userID: 1, role: RoleAdmin},
			requiredRole:   RoleStudent,
			header:         "Basic abc",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "invalid token",
			validator:      &mockValidator{err: errors.New("expired")},
			requiredRole:   RoleStudent,
			header:         "Bearer token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "insufficient role",
			validator:      &mockValidator{userID: 3, role: RoleStudent},
			requiredRole:   RoleAdmin,
			header:         "Bearer token",
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUserID int
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUserID, _ = GetUserID(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "access_token", Value: tt.cookie})
			}
			rec := httptest.NewRecorder()

			RoleMiddleware(tt.validator, tt.requiredRole)(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Equal(t, tt.expectedUserID, gotUserID)
		})
	}
}

func TestOptionalAuthMiddleware(t *testing.T) {
	var authenticated bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, authenticated = GetUserID(r.Context())
	})

	t.Run("anonymous", func(t *testing.T) {
		OptionalAuthMiddleware(&mockValidator{})(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		assert.False(t, authenticated)
	})

	t.Run("invalid token stays anonymous", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer bad")
		OptionalAuthMiddleware(&mockValidator{err: errors.New("bad")})(next).ServeHTTP(httptest.NewRecorder(), req)
		assert.False(t, authenticated)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good")
		OptionalAuthMiddleware(&mockValidator{userID: 2, role: RoleStudent})(next).ServeHTTP(httptest.NewRecorder(), req)
		assert.True(t, authenticated)
	})
}

func TestAPIKeyMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name           string
		configured     string
		provided       string
		expectedStatus int
	}{
		{name: "valid key", configured: "k", provided: "k", expectedStatus: http.StatusOK},
		{name: "wrong key", configured: "k", provided: "x", expectedStatus: http.StatusUnauthorized},
		{name: "missing key", configured: "k", expectedStatus: http.StatusUnauthorized},
		{name: "disabled", configured: "", provided: "", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.provided != "" {
				req.Header.Set("X-API-Key", tt.provided)
			}
			rec := httptest.NewRecorder()
			APIKeyMiddleware(tt.configured)(next).ServeHTTP(rec, req)
			assert.Equal(t, tt.expectedStatus, rec.Code)
		})
	}
}
