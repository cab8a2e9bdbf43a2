package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/mbaillet/chocolaterie/storage/db"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
)

func TestGetProfile_Found(t *testing.T) {
	e := echo.New()
	c := e.NewContext(nil, nil)

	testProfile := &db.Profile{
		ID:    ulid.Make().String(),
		Email: "claire@example.com",
	}
	c.Set(ProfileKey, testProfile)

	profile, ok := GetProfile(c)

	assert.True(t, ok)
	assert.NotNil(t, profile)
	assert.Equal(t, testProfile.ID, profile.ID)
}

func TestGetProfile_NotFound(t *testing.T) {
	e := echo.New()
	c := e.NewContext(nil, nil)

	profile, ok := GetProfile(c)

	assert.False(t, ok)
	assert.Nil(t, profile)
}

func TestGetProfile_WrongType(t *testing.T) {
	e := echo.New()
	c := e.NewContext(nil, nil)

	c.Set(ProfileKey, "not a profile")

	_, ok := GetProfile(c)
	assert.False(t, ok)
}

func TestIsAuthenticated(t *testing.T) {
	e := echo.New()
	c := e.NewContext(nil, nil)

	assert.False(t, IsAuthenticated(c))

	c.Set(IsAuthenticatedKey, true)
	assert.True(t, IsAuthenticated(c))
}

func TestExtractSessionToken(t *testing.T) {
	tests := []struct {
		name   string
		cookie string
		bearer string
		want   string
	}{
		{name: "no credentials", want: ""},
		{name: "session cookie", cookie: "sess_abc", want: "sess_abc"},
		{name: "bearer header", bearer: "Bearer tok_xyz", want: "tok_xyz"},
		{name: "cookie wins over header", cookie: "sess_abc", bearer: "Bearer tok_xyz", want: "sess_abc"},
		{name: "raw header without scheme", bearer: "tok_xyz", want: "tok_xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "__session", Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", tt.bearer)
			}

			assert.Equal(t, tt.want, extractSessionToken(req))
		})
	}
}

func TestRequireAuth(t *testing.T) {
	e := echo.New()

	handler := RequireAuth()(func(c echo.Context) error {
		return c.NoContent(200)
	})

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler(c)
	httpErr, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, 401, httpErr.Code)

	c = e.NewContext(req, rec)
	c.Set(IsAuthenticatedKey, true)
	assert.NoError(t, handler(c))
}
