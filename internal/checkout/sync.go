// Package checkout materializes paid Stripe checkout sessions into orders.
// The session id is the idempotency key: syncing the same session twice
// returns the same order and never duplicates it.
package checkout

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mbaillet/chocolaterie/internal/email"
	"github.com/mbaillet/chocolaterie/internal/identity"
	"github.com/mbaillet/chocolaterie/storage"
	"github.com/mbaillet/chocolaterie/storage/db"
	"github.com/stripe/stripe-go/v80"
	checkoutsession "github.com/stripe/stripe-go/v80/checkout/session"
)

var (
	// ErrMissingSessionID is returned when no session id is supplied
	ErrMissingSessionID = errors.New("session_id is required")

	// ErrNotPaid is returned when the session's payment status is not paid
	ErrNotPaid = errors.New("checkout session is not paid")

	// ErrNoCustomer is returned when a paid session carries no customer email
	ErrNoCustomer = errors.New("checkout session has no customer email")
)

// SyncResult reports the materialized order for a checkout session
type SyncResult struct {
	OrderID     string `json:"orderId"`
	OrderNumber string `json:"orderNumber"`
	Created     bool   `json:"created"`
}

// Syncer turns paid checkout sessions into order rows
type Syncer struct {
	storage      *storage.Storage
	resolver     *identity.Resolver
	emailService *email.Service
	secretKey    string
	getSession   func(sessionID string) (*stripe.CheckoutSession, error)
}

func NewSyncer(storage *storage.Storage, resolver *identity.Resolver, emailService *email.Service, stripeSecretKey string) *Syncer {
	s := &Syncer{
		storage:      storage,
		resolver:     resolver,
		emailService: emailService,
		secretKey:    stripeSecretKey,
	}
	s.getSession = s.fetchSession
	return s
}

func (s *Syncer) fetchSession(sessionID string) (*stripe.CheckoutSession, error) {
	stripe.Key = s.secretKey
	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("line_items")
	params.AddExpand("line_items.data.price.product")
	return checkoutsession.Get(sessionID, params)
}

// SyncOrder fetches the session from Stripe and materializes it
func (s *Syncer) SyncOrder(ctx context.Context, sessionID string) (SyncResult, error) {
	if strings.TrimSpace(sessionID) == "" {
		return SyncResult{}, ErrMissingSessionID
	}

	session, err := s.getSession(sessionID)
	if err != nil {
		return SyncResult{}, fmt.Errorf("failed to retrieve checkout session: %w", err)
	}

	return s.MaterializeOrder(ctx, session)
}

// MaterializeOrder idempotently creates the order for a paid session.
// The webhook path calls this directly with the already-parsed session.
func (s *Syncer) MaterializeOrder(ctx context.Context, session *stripe.CheckoutSession) (SyncResult, error) {
	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		return SyncResult{}, ErrNotPaid
	}
	if session.CustomerDetails == nil || session.CustomerDetails.Email == "" {
		return SyncResult{}, ErrNoCustomer
	}

	customerEmail := identity.NormalizeEmail(session.CustomerDetails.Email)

	// Fast path: webhook or success page already materialized this session
	if existing, err := s.storage.Queries.GetOrderByStripeSessionID(ctx, toNullString(session.ID)); err == nil {
		return SyncResult{OrderID: existing.ID, OrderNumber: existing.OrderNumber, Created: false}, nil
	} else if err != sql.ErrNoRows {
		return SyncResult{}, fmt.Errorf("failed to query order: %w", err)
	}

	// Webhook payloads carry the session without expanded line_items;
	// re-fetch by id so the order gets its item rows
	if session.LineItems == nil || len(session.LineItems.Data) == 0 {
		full, err := s.getSession(session.ID)
		if err != nil {
			slog.Warn("failed to re-fetch session for line items", "error", err, "session_id", session.ID)
		} else {
			session = full
		}
	}

	// Guest checkouts get a profile keyed by email so a later sign-up can
	// claim the order
	profile, _, err := s.resolver.ResolveGuestProfile(ctx, customerEmail, identity.Fields{
		Phone: session.CustomerDetails.Phone,
	})
	if err != nil {
		return SyncResult{}, fmt.Errorf("failed to resolve checkout profile: %w", err)
	}

	order, err := s.createOrder(ctx, session, profile, customerEmail)
	if err != nil {
		// A concurrent sync may have won the race on the unique session id;
		// fall back to the existing row
		if existing, lookupErr := s.storage.Queries.GetOrderByStripeSessionID(ctx, toNullString(session.ID)); lookupErr == nil {
			return SyncResult{OrderID: existing.ID, OrderNumber: existing.OrderNumber, Created: false}, nil
		}
		return SyncResult{}, err
	}

	s.sendConfirmation(session, order)

	slog.Info("order created from checkout session",
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"session_id", session.ID,
		"total_cents", order.TotalCents)

	return SyncResult{OrderID: order.ID, OrderNumber: order.OrderNumber, Created: true}, nil
}

func (s *Syncer) createOrder(ctx context.Context, session *stripe.CheckoutSession, profile db.Profile, customerEmail string) (db.Order, error) {
	billing := session.CustomerDetails.Address
	var shippingAddr *stripe.Address
	if session.ShippingDetails != nil {
		shippingAddr = session.ShippingDetails.Address
	}
	if shippingAddr == nil {
		shippingAddr = billing
	}

	taxCents := int64(0)
	shippingCents := int64(0)
	if session.TotalDetails != nil {
		taxCents = session.TotalDetails.AmountTax
		shippingCents = session.TotalDetails.AmountShipping
	}

	var paymentIntentID string
	if session.PaymentIntent != nil {
		paymentIntentID = session.PaymentIntent.ID
	}

	tx, err := s.storage.DB().BeginTx(ctx, nil)
	if err != nil {
		return db.Order{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := s.storage.Queries.WithTx(tx)

	order, err := q.CreateOrder(ctx, db.CreateOrderParams{
		ID:                    uuid.New().String(),
		ProfileID:             toNullString(profile.ID),
		OrderNumber:           newOrderNumber(),
		CustomerEmail:         customerEmail,
		CustomerName:          toNullString(session.CustomerDetails.Name),
		CustomerPhone:         toNullString(session.CustomerDetails.Phone),
		Status:                "confirmed",
		BillingAddressLine1:   addressField(billing, func(a *stripe.Address) string { return a.Line1 }),
		BillingAddressLine2:   addressField(billing, func(a *stripe.Address) string { return a.Line2 }),
		BillingCity:           addressField(billing, func(a *stripe.Address) string { return a.City }),
		BillingPostalCode:     addressField(billing, func(a *stripe.Address) string { return a.PostalCode }),
		BillingCountry:        addressField(billing, func(a *stripe.Address) string { return a.Country }),
		ShippingAddressLine1:  addressField(shippingAddr, func(a *stripe.Address) string { return a.Line1 }),
		ShippingAddressLine2:  addressField(shippingAddr, func(a *stripe.Address) string { return a.Line2 }),
		ShippingCity:          addressField(shippingAddr, func(a *stripe.Address) string { return a.City }),
		ShippingPostalCode:    addressField(shippingAddr, func(a *stripe.Address) string { return a.PostalCode }),
		ShippingCountry:       addressField(shippingAddr, func(a *stripe.Address) string { return a.Country }),
		SubtotalCents:         session.AmountSubtotal,
		ShippingCents:         shippingCents,
		TaxCents:              taxCents,
		TotalCents:            session.AmountTotal,
		StripeSessionID:       toNullString(session.ID),
		StripePaymentIntentID: toNullString(paymentIntentID),
	})
	if err != nil {
		return db.Order{}, fmt.Errorf("failed to create order: %w", err)
	}

	if session.LineItems != nil {
		for _, item := range session.LineItems.Data {
			var productID string
			unitPriceCents := int64(0)
			if item.Price != nil {
				unitPriceCents = item.Price.UnitAmount
				if item.Price.Product != nil {
					productID = item.Price.Product.ID
				}
			}

			if _, err := q.CreateOrderItem(ctx, db.CreateOrderItemParams{
				ID:             uuid.New().String(),
				OrderID:        order.ID,
				ProductID:      toNullString(productID),
				ProductName:    item.Description,
				Quantity:       item.Quantity,
				UnitPriceCents: unitPriceCents,
				TotalCents:     item.AmountTotal,
			}); err != nil {
				return db.Order{}, fmt.Errorf("failed to create order item: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return db.Order{}, fmt.Errorf("failed to commit order: %w", err)
	}

	return order, nil
}

func (s *Syncer) sendConfirmation(session *stripe.CheckoutSession, order db.Order) {
	data := &email.OrderData{
		OrderNumber:   order.OrderNumber,
		CustomerName:  session.CustomerDetails.Name,
		CustomerEmail: order.CustomerEmail,
		SubtotalCents: order.SubtotalCents,
		ShippingCents: order.ShippingCents,
		TotalCents:    order.TotalCents,
	}
	if session.LineItems != nil {
		for _, item := range session.LineItems.Data {
			data.Items = append(data.Items, email.OrderItem{
				ProductName: item.Description,
				Quantity:    item.Quantity,
				TotalCents:  item.AmountTotal,
			})
		}
	}

	if err := s.emailService.SendOrderConfirmation(data); err != nil {
		// Confirmation failure must not fail the sync
		slog.Error("failed to send order confirmation", "error", err, "order_id", order.ID)
	}
}

func newOrderNumber() string {
	return "CB-" + strings.ToUpper(uuid.New().String()[:8])
}

func addressField(addr *stripe.Address, get func(*stripe.Address) string) sql.NullString {
	if addr == nil {
		return sql.NullString{}
	}
	return toNullString(get(addr))
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
