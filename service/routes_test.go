package service

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/mbaillet/chocolaterie/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRequestValidator struct {
	validate *validator.Validate
}

func (v *testRequestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

func setupTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	s, cleanup, err := storage.NewTestStorage()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	config, err := LoadConfig()
	require.NoError(t, err)

	e := echo.New()
	e.Validator = &testRequestValidator{validate: validator.New()}

	svc := New(s, config)
	svc.RegisterRoutes(e)

	return e
}

func TestPublicRoutes(t *testing.T) {
	e := setupTestEcho(t)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
	}{
		{"Health check", "GET", "/health", http.StatusOK},
		{"Product listing", "GET", "/api/products", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code,
				"Route %s %s should return %d, got %d",
				tt.method, tt.path, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthProtectedRoutes(t *testing.T) {
	e := setupTestEcho(t)

	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"Profile", "GET", "/api/profile"},
		{"Order history", "GET", "/api/orders"},
		{"Order detail", "GET", "/api/orders/some-id"},
		{"Attach SIRET", "POST", "/api/profile/siret"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code,
				"Route %s %s should require authentication", tt.method, tt.path)
		})
	}
}

func TestGuestProfileThroughServiceWiring(t *testing.T) {
	e := setupTestEcho(t)

	body := strings.NewReader(`{"email":"claire@example.com","firstName":"Claire"}`)
	req := httptest.NewRequest("POST", "/api/auth/guest", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, true, resp["isNew"])
}

func TestUnknownRouteIs404(t *testing.T) {
	e := setupTestEcho(t)

	req := httptest.NewRequest("GET", "/api/nope", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
