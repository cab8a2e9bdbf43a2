package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/mbaillet/chocolaterie/internal/auth"
	"github.com/mbaillet/chocolaterie/storage"
	"github.com/mbaillet/chocolaterie/storage/db"
	"github.com/oklog/ulid/v2"
)

type testValidator struct {
	validate *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// NewTestContext creates a new Echo context for testing
func NewTestContext(method, path string, body interface{}) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = &testValidator{validate: validator.New()}

	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)

	return c, rec
}

// SetTestProfile sets an authenticated profile in the Echo context
func SetTestProfile(c echo.Context, profile *db.Profile) {
	c.Set(auth.ProfileKey, profile)
	c.Set(auth.IsAuthenticatedKey, true)
}

// CreateTestProfile creates a guest profile in the database
func CreateTestProfile(queries *db.Queries, email string) (*db.Profile, error) {
	profile, err := queries.CreateProfile(context.Background(), db.CreateProfileParams{
		ID:      ulid.Make().String(),
		Email:   email,
		IsGuest: true,
	})
	return &profile, err
}

// NewTestStorage creates a Storage backed by an in-memory database
func NewTestStorage() (*storage.Storage, func()) {
	s, cleanup, err := storage.NewTestStorage()
	if err != nil {
		panic("failed to create test database: " + err.Error())
	}
	return s, cleanup
}

// AssertJSONResponse checks if the response is valid JSON and returns the parsed body
func AssertJSONResponse(rec *httptest.ResponseRecorder) (map[string]interface{}, error) {
	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body, nil
}

// CreateTestOrder inserts a minimal order row for ownership and merge tests
func CreateTestOrder(queries *db.Queries, email string, profileID sql.NullString) (db.Order, error) {
	return queries.CreateOrder(context.Background(), db.CreateOrderParams{
		ID:            ulid.Make().String(),
		ProfileID:     profileID,
		OrderNumber:   "CB-" + ulid.Make().String()[16:],
		CustomerEmail: email,
		Status:        "confirmed",
		SubtotalCents: 4500,
		ShippingCents: 1000,
		TotalCents:    5500,
	})
}
