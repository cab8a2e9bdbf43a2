package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/mbaillet/chocolaterie/internal/auth"
	"github.com/mbaillet/chocolaterie/internal/identity"
	"github.com/mbaillet/chocolaterie/storage/db"
)

// AuthHandler serves guest checkout profiles plus sign-up/sign-in against
// the external auth provider, reconciling guest history on both paths.
type AuthHandler struct {
	provider   identity.Provider
	resolver   *identity.Resolver
	reconciler *identity.Reconciler
}

func NewAuthHandler(provider identity.Provider, resolver *identity.Resolver, reconciler *identity.Reconciler) *AuthHandler {
	return &AuthHandler{
		provider:   provider,
		resolver:   resolver,
		reconciler: reconciler,
	}
}

// ProfileResponse is the JSON shape of a profile
type ProfileResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Siret     string `json:"siret,omitempty"`
	IsPro     bool   `json:"isPro"`
	IsGuest   bool   `json:"isGuest"`
}

func NewProfileResponse(p db.Profile) ProfileResponse {
	return ProfileResponse{
		ID:        p.ID,
		UserID:    p.UserID.String,
		Email:     p.Email,
		FirstName: p.FirstName.String,
		LastName:  p.LastName.String,
		Phone:     p.Phone.String,
		Company:   p.Company.String,
		Siret:     p.Siret.String,
		IsPro:     p.IsPro,
		IsGuest:   p.IsGuest,
	}
}

type GuestProfileRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
	Company   string `json:"company"`
}

// HandleGuestProfile finds or creates the guest profile for a checkout email
func (h *AuthHandler) HandleGuestProfile(c echo.Context) error {
	var req GuestProfileRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "A valid email is required")
	}

	profile, isNew, err := h.resolver.ResolveGuestProfile(c.Request().Context(), req.Email, identity.Fields{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Company:   req.Company,
	})
	if err == identity.ErrEmailRequired {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}
	if err != nil {
		slog.Error("failed to resolve guest profile", "error", err, "email", req.Email)
		return errorJSON(c, http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": NewProfileResponse(profile),
		"isNew":   isNew,
	})
}

type SignUpRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// HandleSignUp creates an account at the provider, then converts any guest
// profile for the email and claims its orders
func (h *AuthHandler) HandleSignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Email and a password of at least 8 characters are required")
	}

	ctx := c.Request().Context()
	email := identity.NormalizeEmail(req.Email)

	account, session, err := h.provider.SignUp(ctx, identity.SignUpParams{
		Email:     email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		// Provider rejections (duplicate account, weak password) are
		// surfaced verbatim; no store mutation has happened yet
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	result, err := h.reconciler.Reconcile(ctx, email, account.ID, identity.Fields{
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		slog.Error("reconciliation failed after sign-up", "error", err, "email", email, "user_id", account.ID)
		return errorJSON(c, http.StatusInternalServerError, "Account created but profile setup failed")
	}

	slog.Info("account created", "user_id", account.ID, "profile_id", result.Profile.ID, "reparented_orders", result.Reparented)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":          true,
		"user":             account,
		"session":          session,
		"profile":          NewProfileResponse(result.Profile),
		"reparentedOrders": result.Reparented,
	})
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleSignIn authenticates against the provider and runs the same
// reconciliation as sign-up, which also backfills profiles for accounts
// created before a guest checkout happened
func (h *AuthHandler) HandleSignIn(c echo.Context) error {
	var req SignInRequest
	if err := c.Bind(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return errorJSON(c, http.StatusBadRequest, "Email and password are required")
	}

	ctx := c.Request().Context()
	email := identity.NormalizeEmail(req.Email)

	account, session, err := h.provider.SignIn(ctx, email, req.Password)
	if err != nil {
		return errorJSON(c, http.StatusUnauthorized, err.Error())
	}

	result, err := h.reconciler.Reconcile(ctx, email, account.ID, identity.Fields{
		FirstName: account.FirstName,
		LastName:  account.LastName,
	})
	if err != nil {
		slog.Error("reconciliation failed after sign-in", "error", err, "email", email, "user_id", account.ID)
		return errorJSON(c, http.StatusInternalServerError, "Profile lookup failed")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    account,
		"session": session,
		"profile": NewProfileResponse(result.Profile),
	})
}

// HandleGetProfile returns the authenticated profile
func (h *AuthHandler) HandleGetProfile(c echo.Context) error {
	profile, ok := auth.GetProfile(c)
	if !ok {
		return errorJSON(c, http.StatusUnauthorized, "Authentication required")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": NewProfileResponse(*profile),
	})
}

func errorJSON(c echo.Context, status int, message string) error {
	return c.JSON(status, map[string]string{"error": message})
}
