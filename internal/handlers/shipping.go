package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mbaillet/chocolaterie/internal/shipping"
)

type ShippingHandler struct{}

func NewShippingHandler() *ShippingHandler {
	return &ShippingHandler{}
}

type ShippingQuoteRequest struct {
	SubtotalCents int64 `json:"subtotal_cents" validate:"min=0"`
	WeightGrams   int64 `json:"weight_grams"`
}

// HandleQuote returns the shipping fee for a cart subtotal
func (h *ShippingHandler) HandleQuote(c echo.Context) error {
	var req ShippingQuoteRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "subtotal_cents must not be negative")
	}

	fee := shipping.Cost(req.SubtotalCents, req.WeightGrams)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"shipping_cents":                fee,
		"free":                          fee == 0,
		"free_shipping_threshold_cents": shipping.FreeShippingThresholdCents,
	})
}
