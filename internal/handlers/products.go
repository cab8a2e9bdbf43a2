package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mbaillet/chocolaterie/internal/auth"
	"github.com/mbaillet/chocolaterie/storage"
)

type ProductsHandler struct {
	storage *storage.Storage
}

func NewProductsHandler(storage *storage.Storage) *ProductsHandler {
	return &ProductsHandler{storage: storage}
}

// ProductResponse is one row of the price table. ProPriceCents is only
// populated for authenticated pro profiles.
type ProductResponse struct {
	ID            string `json:"id"`
	Slug          string `json:"slug"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Category      string `json:"category,omitempty"`
	PriceCents    int64  `json:"priceCents"`
	ProPriceCents int64  `json:"proPriceCents,omitempty"`
	WeightGrams   int64  `json:"weightGrams,omitempty"`
	ImageURL      string `json:"imageUrl,omitempty"`
}

// HandleListProducts returns the active price table
func (h *ProductsHandler) HandleListProducts(c echo.Context) error {
	products, err := h.storage.Queries.ListActiveProducts(c.Request().Context())
	if err != nil {
		slog.Error("failed to fetch products", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "Failed to load products")
	}

	isPro := false
	if profile, ok := auth.GetProfile(c); ok {
		isPro = profile.IsPro
	}

	list := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		resp := ProductResponse{
			ID:          p.ID,
			Slug:        p.Slug,
			Name:        p.Name,
			Description: p.Description.String,
			Category:    p.Category.String,
			PriceCents:  p.PriceCents,
			ImageURL:    p.ImageUrl.String,
		}
		if p.WeightGrams.Valid {
			resp.WeightGrams = p.WeightGrams.Int64
		}
		if isPro && p.ProPriceCents.Valid {
			resp.ProPriceCents = p.ProPriceCents.Int64
		}
		list = append(list, resp)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"products": list,
		"proRates": isPro,
	})
}
