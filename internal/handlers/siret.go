package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mbaillet/chocolaterie/internal/auth"
	"github.com/mbaillet/chocolaterie/internal/siret"
	"github.com/mbaillet/chocolaterie/storage"
	"github.com/mbaillet/chocolaterie/storage/db"
)

// SiretHandler validates SIRET numbers and attaches them to profiles to
// unlock the pro price list
type SiretHandler struct {
	validator *siret.Validator
	storage   *storage.Storage
}

func NewSiretHandler(validator *siret.Validator, storage *storage.Storage) *SiretHandler {
	return &SiretHandler{
		validator: validator,
		storage:   storage,
	}
}

type ValidateSiretRequest struct {
	Siret string `json:"siret"`
}

// HandleValidate checks a SIRET against the Sirene registry. Malformed
// input fails with 400 before any outbound call; a well-formed id that the
// registry rejects answers 200 with valid=false.
func (h *SiretHandler) HandleValidate(c echo.Context) error {
	var req ValidateSiretRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	result, err := h.validator.Validate(c.Request().Context(), req.Siret)
	switch {
	case err == siret.ErrInvalidFormat:
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case err == siret.ErrNotConfigured:
		slog.Error("SIRET validation unavailable", "error", err)
		return errorJSON(c, http.StatusServiceUnavailable, "SIRET validation is not configured")
	case err != nil:
		slog.Error("SIRET validation failed", "error", err)
		return errorJSON(c, http.StatusInternalServerError, "SIRET validation failed")
	}

	return c.JSON(http.StatusOK, result)
}

type AttachSiretRequest struct {
	Siret   string `json:"siret"`
	Company string `json:"company"`
}

// HandleAttachSiret binds a registry-validated SIRET to the authenticated
// profile and flips it to pro
func (h *SiretHandler) HandleAttachSiret(c echo.Context) error {
	profile, ok := auth.GetProfile(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "Authentication required")
	}

	var req AttachSiretRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}

	result, err := h.validator.Validate(c.Request().Context(), req.Siret)
	switch {
	case err == siret.ErrInvalidFormat:
		return errorJSON(c, http.StatusBadRequest, err.Error())
	case err == siret.ErrNotConfigured:
		return errorJSON(c, http.StatusServiceUnavailable, "SIRET validation is not configured")
	case err != nil:
		return errorJSON(c, http.StatusInternalServerError, "SIRET validation failed")
	}
	if !result.Valid {
		return errorJSON(c, http.StatusBadRequest, result.Error)
	}

	company := req.Company
	if company == "" {
		company = result.RaisonSociale
	}

	updated, err := h.storage.Queries.SetProfileSiret(c.Request().Context(), db.SetProfileSiretParams{
		Siret:   toNullString(result.Siret),
		Company: company,
		ID:      profile.ID,
	})
	if err != nil {
		slog.Error("failed to attach SIRET to profile", "error", err, "profile_id", profile.ID)
		return errorJSON(c, http.StatusInternalServerError, "Failed to update profile")
	}

	slog.Info("pro access granted", "profile_id", updated.ID, "siret", result.Siret)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":       true,
		"profile":       NewProfileResponse(updated),
		"raisonSociale": result.RaisonSociale,
	})
}
