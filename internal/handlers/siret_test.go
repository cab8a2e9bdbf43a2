package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/mbaillet/chocolaterie/internal/siret"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRegistry struct {
	establishment *siret.Establishment
	err           error
	calls         int
}

func (f *fakeRegistry) Lookup(ctx context.Context, id string) (*siret.Establishment, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.establishment, nil
}

func validEstablishment() *siret.Establishment {
	return &siret.Establishment{
		Siret:     "55210055400013",
		LegalUnit: siret.LegalUnit{Denomination: "CHOCOLATERIE BAILLET"},
	}
}

func TestHandleValidate_MalformedSiretFailsBeforeRegistry(t *testing.T) {
	s, cleanup := NewTestStorage()
	defer cleanup()

	registry := &fakeRegistry{establishment: validEstablishment()}
	handler := NewSiretHandler(siret.NewValidator(registry), s)

	c, rec := NewTestContext(http.MethodPost, "/api/siret/validate", map[string]interface{}{"siret": "1234"})
	require.NoError(t, handler.HandleValidate(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, registry.calls)
}

func TestHandleValidate_KnownSiret(t *testing.T) {
	s, cleanup := NewTestStorage()
	defer cleanup()

	handler := NewSiretHandler(siret.NewValidator(&fakeRegistry{establishment: validEstablishment()}), s)

	c, rec := NewTestContext(http.MethodPost, "/api/siret/validate", map[string]interface{}{"siret": "552 100 554 00013"})
	require.NoError(t, handler.HandleValidate(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, true, body["valid"])
	assert.Equal(t, "55210055400013", body["siret"])
	assert.Equal(t, "CHOCOLATERIE BAILLET", body["raisonSociale"])
}

func TestHandleValidate_UnknownSiretIs200Invalid(t *testing.T) {
	s, cleanup := NewTestStorage()
	defer cleanup()

	handler := NewSiretHandler(siret.NewValidator(&fakeRegistry{err: siret.ErrNotFound}), s)

	c, rec := NewTestContext(http.MethodPost, "/api/siret/validate", map[string]interface{}{"siret": "55210055400013"})
	require.NoError(t, handler.HandleValidate(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, false, body["valid"])
	assert.NotEmpty(t, body["error"])
}

func TestHandleValidate_MissingCredentialIs503(t *testing.T) {
	s, cleanup := NewTestStorage()
	defer cleanup()

	handler := NewSiretHandler(siret.NewValidator(&fakeRegistry{err: siret.ErrNotConfigured}), s)

	c, rec := NewTestContext(http.MethodPost, "/api/siret/validate", map[string]interface{}{"siret": "55210055400013"})
	require.NoError(t, handler.HandleValidate(c))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandleAttachSiret_GrantsProAccess(t *testing.T) {
	s, cleanup := NewTestStorage()
	defer cleanup()

	profile, err := CreateTestProfile(s.Queries, "pro@example.com")
	require.NoError(t, err)

	handler := NewSiretHandler(siret.NewValidator(&fakeRegistry{establishment: validEstablishment()}), s)

	c, rec := NewTestContext(http.MethodPost, "/api/profile/siret", map[string]interface{}{"siret": "55210055400013"})
	SetTestProfile(c, profile)
	require.NoError(t, handler.HandleAttachSiret(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)

	resp := body["profile"].(map[string]interface{})
	assert.Equal(t, true, resp["isPro"])
	assert.Equal(t, "55210055400013", resp["siret"])
	assert.Equal(t, "CHOCOLATERIE BAILLET", resp["company"], "company falls back to the registry name")

	updated, err := s.Queries.GetProfile(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.True(t, updated.IsPro)
}

func TestHandleAttachSiret_RejectsUnknownSiret(t *testing.T) {
	s, cleanup := NewTestStorage()
	defer cleanup()

	profile, err := CreateTestProfile(s.Queries, "pro@example.com")
	require.NoError(t, err)

	handler := NewSiretHandler(siret.NewValidator(&fakeRegistry{err: siret.ErrNotFound}), s)

	c, rec := NewTestContext(http.MethodPost, "/api/profile/siret", map[string]interface{}{"siret": "55210055400013"})
	SetTestProfile(c, profile)
	require.NoError(t, handler.HandleAttachSiret(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	updated, err := s.Queries.GetProfile(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.False(t, updated.IsPro, "an invalid SIRET must not flip the profile to pro")
}

func TestHandleAttachSiret_RequiresAuth(t *testing.T) {
	s, cleanup := NewTestStorage()
	defer cleanup()

	handler := NewSiretHandler(siret.NewValidator(&fakeRegistry{establishment: validEstablishment()}), s)

	c, rec := NewTestContext(http.MethodPost, "/api/profile/siret", map[string]interface{}{"siret": "55210055400013"})
	require.NoError(t, handler.HandleAttachSiret(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
