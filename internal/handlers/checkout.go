package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mbaillet/chocolaterie/internal/auth"
	"github.com/mbaillet/chocolaterie/internal/checkout"
	"github.com/mbaillet/chocolaterie/internal/shipping"
	"github.com/mbaillet/chocolaterie/storage"
	stripego "github.com/stripe/stripe-go/v80"
	checkoutsession "github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/webhook"
)

type CheckoutHandler struct {
	storage       *storage.Storage
	syncer        *checkout.Syncer
	stripeKey     string
	webhookSecret string
	baseURL       string
}

func NewCheckoutHandler(storage *storage.Storage, syncer *checkout.Syncer, stripeKey, webhookSecret, baseURL string) *CheckoutHandler {
	return &CheckoutHandler{
		storage:       storage,
		syncer:        syncer,
		stripeKey:     stripeKey,
		webhookSecret: webhookSecret,
		baseURL:       baseURL,
	}
}

type SyncOrderRequest struct {
	SessionID string `json:"session_id"`
}

// HandleSyncOrder materializes the order for a paid checkout session.
// Safe to call repeatedly: the second call returns the same order with
// created=false.
func (h *CheckoutHandler) HandleSyncOrder(c echo.Context) error {
	var req SyncOrderRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	result, err := h.syncer.SyncOrder(c.Request().Context(), req.SessionID)
	switch {
	case err == checkout.ErrMissingSessionID:
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case err == checkout.ErrNotPaid:
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case err != nil:
		slog.Error("failed to sync order", "error", err, "session_id", req.SessionID)
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":     true,
		"orderId":     result.OrderID,
		"orderNumber": result.OrderNumber,
		"created":     result.Created,
	})
}

// HandleGetSession returns a trimmed view of a checkout session for the
// success page
func (h *CheckoutHandler) HandleGetSession(c echo.Context) error {
	sessionID := c.QueryParam("session_id")
	if sessionID == "" {
		return errorJSON(c, http.StatusBadRequest, "Missing session_id")
	}

	stripego.Key = h.stripeKey
	params := &stripego.CheckoutSessionParams{}
	params.AddExpand("line_items")
	session, err := checkoutsession.Get(sessionID, params)
	if err != nil {
		slog.Error("failed to retrieve stripe session", "error", err, "session_id", sessionID)
		return errorJSON(c, http.StatusInternalServerError, "Failed to retrieve checkout session")
	}

	var customerEmail string
	if session.CustomerDetails != nil {
		customerEmail = session.CustomerDetails.Email
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"session": map[string]interface{}{
			"id":             session.ID,
			"payment_status": session.PaymentStatus,
			"amount_total":   session.AmountTotal,
			"currency":       session.Currency,
			"customer_email": customerEmail,
		},
	})
}

type CreateSessionItem struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int64  `json:"quantity" validate:"required,min=1"`
}

type CreateSessionRequest struct {
	Items []CreateSessionItem `json:"items" validate:"required,min=1,dive"`
	Email string              `json:"email" validate:"omitempty,email"`
}

// HandleCreateSession builds a Stripe Checkout Session from the cart.
// Prices are read server-side; authenticated pro profiles get the pro
// price list. The shipping fee is attached as a fixed-amount rate.
func (h *CheckoutHandler) HandleCreateSession(c echo.Context) error {
	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "At least one item with a positive quantity is required")
	}

	ctx := c.Request().Context()

	isPro := false
	customerEmail := req.Email
	if profile, ok := auth.GetProfile(c); ok {
		isPro = profile.IsPro
		if customerEmail == "" {
			customerEmail = profile.Email
		}
	}

	var lineItems []*stripego.CheckoutSessionLineItemParams
	var subtotalCents, weightGrams int64
	for _, item := range req.Items {
		product, err := h.storage.Queries.GetProduct(ctx, item.ProductID)
		if err != nil {
			return errorJSON(c, http.StatusBadRequest, fmt.Sprintf("Unknown product %s", item.ProductID))
		}

		unitPrice := product.PriceCents
		if isPro && product.ProPriceCents.Valid {
			unitPrice = product.ProPriceCents.Int64
		}
		subtotalCents += unitPrice * item.Quantity
		if product.WeightGrams.Valid {
			weightGrams += product.WeightGrams.Int64 * item.Quantity
		}

		lineItems = append(lineItems, &stripego.CheckoutSessionLineItemParams{
			Quantity: stripego.Int64(item.Quantity),
			PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripego.String("eur"),
				UnitAmount: stripego.Int64(unitPrice),
				ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
					Name:     stripego.String(product.Name),
					Metadata: map[string]string{"product_id": product.ID},
				},
			},
		})
	}

	shippingCents := shipping.Cost(subtotalCents, weightGrams)

	stripego.Key = h.stripeKey
	params := &stripego.CheckoutSessionParams{
		Mode:       stripego.String(string(stripego.CheckoutSessionModePayment)),
		SuccessURL: stripego.String(h.baseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripego.String(h.baseURL + "/panier"),
		LineItems:  lineItems,
		ShippingOptions: []*stripego.CheckoutSessionShippingOptionParams{
			{
				ShippingRateData: &stripego.CheckoutSessionShippingOptionShippingRateDataParams{
					DisplayName: stripego.String("Colissimo"),
					Type:        stripego.String("fixed_amount"),
					FixedAmount: &stripego.CheckoutSessionShippingOptionShippingRateDataFixedAmountParams{
						Amount:   stripego.Int64(shippingCents),
						Currency: stripego.String("eur"),
					},
				},
			},
		},
	}
	if customerEmail != "" {
		params.CustomerEmail = stripego.String(customerEmail)
	}

	session, err := checkoutsession.New(params)
	if err != nil {
		slog.Error("failed to create checkout session", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to create checkout session")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"id":      session.ID,
		"url":     session.URL,
	})
}

// HandleWebhook processes Stripe webhook events. Order creation runs
// through the same idempotent materialization as the sync endpoint, so a
// webhook and a success-page sync racing each other cannot duplicate an
// order.
func (h *CheckoutHandler) HandleWebhook(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Request body too large")
	}

	signatureHeader := c.Request().Header.Get("Stripe-Signature")

	// Allow webhook processing without signature verification if the
	// webhook secret is not configured (development)
	var event stripego.Event
	if h.webhookSecret != "" {
		event, err = webhook.ConstructEvent(payload, signatureHeader, h.webhookSecret)
		if err != nil {
			slog.Error("webhook signature verification failed", "error", err)
			return errorJSON(c, http.StatusBadRequest, "Invalid signature")
		}
	} else {
		if err := json.Unmarshal(payload, &event); err != nil {
			return errorJSON(c, http.StatusBadRequest, "Error parsing webhook JSON")
		}
	}

	switch event.Type {
	case "checkout.session.completed":
		var session stripego.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			slog.Error("error parsing checkout session", "error", err)
			return errorJSON(c, http.StatusBadRequest, "Error parsing webhook JSON")
		}

		if _, err := h.syncer.MaterializeOrder(c.Request().Context(), &session); err != nil {
			// Log and acknowledge; Stripe retries on its own schedule
			slog.Error("error handling checkout completed", "error", err, "session_id", session.ID)
		}

	case "payment_intent.payment_failed":
		var paymentIntent stripego.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &paymentIntent); err != nil {
			return errorJSON(c, http.StatusBadRequest, "Error parsing webhook JSON")
		}
		slog.Warn("payment intent failed", "payment_intent_id", paymentIntent.ID)

	default:
		slog.Debug("unhandled webhook event type", "type", event.Type)
	}

	return c.NoContent(http.StatusOK)
}
