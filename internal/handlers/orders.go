package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"sort"

	"github.com/labstack/echo/v4"
	"github.com/mbaillet/chocolaterie/internal/auth"
	"github.com/mbaillet/chocolaterie/storage"
	"github.com/mbaillet/chocolaterie/storage/db"
	"golang.org/x/sync/errgroup"
)

type OrdersHandler struct {
	storage *storage.Storage
}

func NewOrdersHandler(storage *storage.Storage) *OrdersHandler {
	return &OrdersHandler{storage: storage}
}

// OrderResponse is the JSON shape of an order summary
type OrderResponse struct {
	ID            string `json:"id"`
	OrderNumber   string `json:"orderNumber"`
	Status        string `json:"status"`
	CustomerEmail string `json:"customerEmail"`
	SubtotalCents int64  `json:"subtotalCents"`
	ShippingCents int64  `json:"shippingCents"`
	TotalCents    int64  `json:"totalCents"`
	CreatedAt     string `json:"createdAt,omitempty"`
}

func newOrderResponse(o db.Order) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Status:        o.Status,
		CustomerEmail: o.CustomerEmail,
		SubtotalCents: o.SubtotalCents,
		ShippingCents: o.ShippingCents,
		TotalCents:    o.TotalCents,
	}
	if o.CreatedAt.Valid {
		resp.CreatedAt = o.CreatedAt.Time.UTC().Format("2006-01-02T15:04:05Z")
	}
	return resp
}

// HandleListOrders returns the authenticated profile's orders. Orders
// re-parented to the profile and orders still keyed only by its email are
// fetched concurrently, merged and deduplicated by id.
func (h *OrdersHandler) HandleListOrders(c echo.Context) error {
	profile, ok := auth.GetProfile(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "Authentication required")
	}

	var byProfile, byEmail []db.Order

	g, ctx := errgroup.WithContext(c.Request().Context())
	g.Go(func() error {
		var err error
		byProfile, err = h.storage.Queries.ListOrdersByProfile(ctx, sql.NullString{String: profile.ID, Valid: true})
		return err
	})
	g.Go(func() error {
		var err error
		byEmail, err = h.storage.Queries.ListOrdersByEmail(ctx, profile.Email)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("failed to fetch orders", "error", err, "profile_id", profile.ID)
		return errorJSON(c, http.StatusInternalServerError, "Failed to fetch orders")
	}

	seen := make(map[string]bool, len(byProfile)+len(byEmail))
	merged := make([]db.Order, 0, len(byProfile)+len(byEmail))
	for _, order := range append(byProfile, byEmail...) {
		if seen[order.ID] {
			continue
		}
		seen[order.ID] = true
		merged = append(merged, order)
	}

	sort.Slice(merged, func(i, j int) bool {
		return merged[i].CreatedAt.Time.After(merged[j].CreatedAt.Time)
	})

	orders := make([]OrderResponse, 0, len(merged))
	for _, order := range merged {
		orders = append(orders, newOrderResponse(order))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"orders":  orders,
	})
}

// HandleGetOrder returns one order with its line items, restricted to the
// owning profile
func (h *OrdersHandler) HandleGetOrder(c echo.Context) error {
	profile, ok := auth.GetProfile(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "Authentication required")
	}

	ctx := c.Request().Context()
	orderID := c.Param("id")

	order, err := h.storage.Queries.GetOrder(ctx, orderID)
	if err != nil {
		return errorJSON(c, http.StatusNotFound, "Order not found")
	}

	ownsByProfile := order.ProfileID.Valid && order.ProfileID.String == profile.ID
	ownsByEmail := order.CustomerEmail == profile.Email
	if !ownsByProfile && !ownsByEmail {
		slog.Warn("profile attempted to access order it does not own", "profile_id", profile.ID, "order_id", orderID)
		return errorJSON(c, http.StatusForbidden, "Access denied")
	}

	items, err := h.storage.Queries.GetOrderItems(ctx, orderID)
	if err != nil {
		slog.Error("failed to fetch order items", "error", err, "order_id", orderID)
		items = []db.OrderItem{}
	}

	itemList := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		itemList = append(itemList, map[string]interface{}{
			"productId":      item.ProductID.String,
			"productName":    item.ProductName,
			"quantity":       item.Quantity,
			"unitPriceCents": item.UnitPriceCents,
			"totalCents":     item.TotalCents,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"order":   newOrderResponse(order),
		"items":   itemList,
	})
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
