package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleListOrders_MergesProfileAndEmailOrders(t *testing.T) {
	s, cleanup := NewTestStorage()
	defer cleanup()

	profile, err := CreateTestProfile(s.Queries, "claire@example.com")
	require.NoError(t, err)

	// One order already re-parented, one still keyed only by email, and
	// one belonging to someone else entirely.
	owned, err := CreateTestOrder(s.Queries, "claire@example.com", toNullString(profile.ID))
	require.NoError(t, err)
	unclaimed, err := CreateTestOrder(s.Queries, "claire@example.com", toNullString(""))
	require.NoError(t, err)
	_, err = CreateTestOrder(s.Queries, "marc@example.com", toNullString(""))
	require.NoError(t, err)

	handler := NewOrdersHandler(s)

	c, rec := NewTestContext(http.MethodGet, "/api/orders", nil)
	SetTestProfile(c, profile)
	require.NoError(t, handler.HandleListOrders(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)

	orders := body["orders"].([]interface{})
	require.Len(t, orders, 2)

	ids := map[string]bool{}
	for _, o := range orders {
		ids[o.(map[string]interface{})["id"].(string)] = true
	}
	assert.True(t, ids[owned.ID])
	assert.True(t, ids[unclaimed.ID])
}

func TestHandleListOrders_DeduplicatesOverlap(t *testing.T) {
	s, cleanup := NewTestStorage()
	defer cleanup()

	profile, err := CreateTestProfile(s.Queries, "claire@example.com")
	require.NoError(t, err)

	// An order both owned by the profile and carrying its email shows up
	// in both lookups and must appear exactly once.
	_, err = CreateTestOrder(s.Queries, "claire@example.com", toNullString(profile.ID))
	require.NoError(t, err)

	handler := NewOrdersHandler(s)

	c, rec := NewTestContext(http.MethodGet, "/api/orders", nil)
	SetTestProfile(c, profile)
	require.NoError(t, handler.HandleListOrders(c))

	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Len(t, body["orders"].([]interface{}), 1)
}

func TestHandleListOrders_RequiresAuth(t *testing.T) {
	s, cleanup := NewTestStorage()
	defer cleanup()

	handler := NewOrdersHandler(s)

	c, rec := NewTestContext(http.MethodGet, "/api/orders", nil)
	require.NoError(t, handler.HandleListOrders(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleGetOrder_ReturnsItems(t *testing.T) {
	s, cleanup := NewTestStorage()
	defer cleanup()

	profile, err := CreateTestProfile(s.Queries, "claire@example.com")
	require.NoError(t, err)
	order, err := CreateTestOrder(s.Queries, "claire@example.com", toNullString(profile.ID))
	require.NoError(t, err)

	handler := NewOrdersHandler(s)

	c, rec := NewTestContext(http.MethodGet, "/api/orders/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues(order.ID)
	SetTestProfile(c, profile)
	require.NoError(t, handler.HandleGetOrder(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	body, err := AssertJSONResponse(rec)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNumber, body["order"].(map[string]interface{})["orderNumber"])
}

func TestHandleGetOrder_DeniesOtherProfiles(t *testing.T) {
	s, cleanup := NewTestStorage()
	defer cleanup()

	owner, err := CreateTestProfile(s.Queries, "claire@example.com")
	require.NoError(t, err)
	intruder, err := CreateTestProfile(s.Queries, "marc@example.com")
	require.NoError(t, err)
	order, err := CreateTestOrder(s.Queries, "claire@example.com", toNullString(owner.ID))
	require.NoError(t, err)

	handler := NewOrdersHandler(s)

	c, rec := NewTestContext(http.MethodGet, "/api/orders/:id", nil)
	c.SetParamNames("id")
	c.SetParamValues(order.ID)
	SetTestProfile(c, intruder)
	require.NoError(t, handler.HandleGetOrder(c))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
