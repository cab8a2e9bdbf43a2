package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/mbaillet/chocolaterie/internal/email"
	"github.com/mbaillet/chocolaterie/internal/identity"
	"github.com/mbaillet/chocolaterie/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v80"
)

func newTestSyncer(t *testing.T) (*Syncer, *storage.Storage) {
	t.Helper()
	s, cleanup, err := storage.NewTestStorage()
	require.NoError(t, err)
	t.Cleanup(cleanup)

	// Unconfigured email service: sends are skipped silently
	emailService := email.NewService(email.Config{})
	return NewSyncer(s, identity.NewResolver(s), emailService, "sk_test_fake"), s
}

func paidSession(id string) *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		ID:            id,
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{
			Email: "Claire@Example.com",
			Name:  "Claire Moreau",
			Address: &stripe.Address{
				Line1:      "12 rue du Cacao",
				City:       "Lille",
				PostalCode: "59000",
				Country:    "FR",
			},
		},
		AmountSubtotal: 3500,
		AmountTotal:    4500,
		TotalDetails: &stripe.CheckoutSessionTotalDetails{
			AmountShipping: 1000,
		},
		LineItems: &stripe.LineItemList{
			Data: []*stripe.LineItem{
				{
					Description: "Ballotin Assortiment 500g",
					Quantity:    1,
					AmountTotal: 3500,
					Price: &stripe.Price{
						UnitAmount: 3500,
						Product:    &stripe.Product{ID: "prod_ballotin500"},
					},
				},
			},
		},
	}
}

func TestMaterializeOrder_CreatesOrderWithItems(t *testing.T) {
	syncer, s := newTestSyncer(t)
	ctx := context.Background()

	result, err := syncer.MaterializeOrder(ctx, paidSession("cs_test_abc"))
	require.NoError(t, err)
	assert.True(t, result.Created)
	assert.NotEmpty(t, result.OrderID)
	assert.Regexp(t, `^CB-[0-9A-F]{8}$`, result.OrderNumber)

	order, err := s.Queries.GetOrder(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "claire@example.com", order.CustomerEmail)
	assert.Equal(t, int64(3500), order.SubtotalCents)
	assert.Equal(t, int64(1000), order.ShippingCents)
	assert.Equal(t, int64(4500), order.TotalCents)
	assert.Equal(t, "confirmed", order.Status)
	assert.Equal(t, "cs_test_abc", order.StripeSessionID.String)
	assert.Equal(t, "Lille", order.ShippingCity.String, "shipping falls back to the billing address")

	items, err := s.Queries.GetOrderItems(ctx, result.OrderID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ballotin Assortiment 500g", items[0].ProductName)
	assert.Equal(t, int64(3500), items[0].UnitPriceCents)
}

func TestMaterializeOrder_IsIdempotent(t *testing.T) {
	syncer, s := newTestSyncer(t)
	ctx := context.Background()

	first, err := syncer.MaterializeOrder(ctx, paidSession("cs_test_abc"))
	require.NoError(t, err)
	require.True(t, first.Created)

	// Success-page sync races the webhook; the second call must return
	// the same order without inserting another row.
	second, err := syncer.MaterializeOrder(ctx, paidSession("cs_test_abc"))
	require.NoError(t, err)
	assert.False(t, second.Created)
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, first.OrderNumber, second.OrderNumber)

	orders, err := s.Queries.ListOrdersByEmail(ctx, "claire@example.com")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestMaterializeOrder_BindsOrderToGuestProfile(t *testing.T) {
	syncer, s := newTestSyncer(t)
	ctx := context.Background()

	result, err := syncer.MaterializeOrder(ctx, paidSession("cs_test_abc"))
	require.NoError(t, err)

	profile, err := s.Queries.GetProfileByEmail(ctx, "claire@example.com")
	require.NoError(t, err)
	assert.True(t, profile.IsGuest)

	order, err := s.Queries.GetOrder(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, order.ProfileID.String)
}

func TestMaterializeOrder_RejectsUnpaidSession(t *testing.T) {
	syncer, _ := newTestSyncer(t)

	session := paidSession("cs_test_abc")
	session.PaymentStatus = stripe.CheckoutSessionPaymentStatusUnpaid

	_, err := syncer.MaterializeOrder(context.Background(), session)
	assert.ErrorIs(t, err, ErrNotPaid)
}

func TestMaterializeOrder_RejectsMissingCustomerEmail(t *testing.T) {
	syncer, _ := newTestSyncer(t)

	session := paidSession("cs_test_abc")
	session.CustomerDetails.Email = ""

	_, err := syncer.MaterializeOrder(context.Background(), session)
	assert.ErrorIs(t, err, ErrNoCustomer)

	session.CustomerDetails = nil
	_, err = syncer.MaterializeOrder(context.Background(), session)
	assert.ErrorIs(t, err, ErrNoCustomer)
}

func TestSyncOrder_RequiresSessionID(t *testing.T) {
	syncer, _ := newTestSyncer(t)

	_, err := syncer.SyncOrder(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrMissingSessionID)
}

func TestMaterializeOrder_RefetchesWebhookSessionForLineItems(t *testing.T) {
	syncer, s := newTestSyncer(t)
	ctx := context.Background()

	// Webhook payloads carry the session without expanded line_items
	webhookSession := paidSession("cs_test_hook")
	webhookSession.LineItems = nil

	fetches := 0
	syncer.getSession = func(sessionID string) (*stripe.CheckoutSession, error) {
		fetches++
		assert.Equal(t, "cs_test_hook", sessionID)
		return paidSession(sessionID), nil
	}

	result, err := syncer.MaterializeOrder(ctx, webhookSession)
	require.NoError(t, err)
	require.True(t, result.Created)
	assert.Equal(t, 1, fetches)

	items, err := s.Queries.GetOrderItems(ctx, result.OrderID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ballotin Assortiment 500g", items[0].ProductName)
}

func TestMaterializeOrder_RefetchFailureStillCreatesOrder(t *testing.T) {
	syncer, s := newTestSyncer(t)
	ctx := context.Background()

	webhookSession := paidSession("cs_test_hook")
	webhookSession.LineItems = nil

	syncer.getSession = func(sessionID string) (*stripe.CheckoutSession, error) {
		return nil, errors.New("stripe unreachable")
	}

	// The order itself must not be lost to a transient fetch failure
	result, err := syncer.MaterializeOrder(ctx, webhookSession)
	require.NoError(t, err)
	assert.True(t, result.Created)

	items, err := s.Queries.GetOrderItems(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestMaterializeOrder_DoesNotRefetchExpandedSession(t *testing.T) {
	syncer, _ := newTestSyncer(t)

	syncer.getSession = func(sessionID string) (*stripe.CheckoutSession, error) {
		t.Fatal("a session with expanded line items must not be re-fetched")
		return nil, nil
	}

	_, err := syncer.MaterializeOrder(context.Background(), paidSession("cs_test_abc"))
	require.NoError(t, err)
}

func TestMaterializeOrder_UsesShippingDetailsWhenPresent(t *testing.T) {
	syncer, s := newTestSyncer(t)
	ctx := context.Background()

	session := paidSession("cs_test_ship")
	session.ShippingDetails = &stripe.ShippingDetails{
		Address: &stripe.Address{
			Line1:      "3 avenue des Fèves",
			City:       "Roubaix",
			PostalCode: "59100",
			Country:    "FR",
		},
	}

	result, err := syncer.MaterializeOrder(ctx, session)
	require.NoError(t, err)

	order, err := s.Queries.GetOrder(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, "Roubaix", order.ShippingCity.String)
	assert.Equal(t, "Lille", order.BillingCity.String)
}
