package service

import (
	"github.com/labstack/echo/v4"
	"github.com/mbaillet/chocolaterie/internal/auth"
	"github.com/mbaillet/chocolaterie/internal/checkout"
	"github.com/mbaillet/chocolaterie/internal/email"
	"github.com/mbaillet/chocolaterie/internal/handlers"
	"github.com/mbaillet/chocolaterie/internal/identity"
	"github.com/mbaillet/chocolaterie/internal/siret"
	"github.com/mbaillet/chocolaterie/storage"
)

type Service struct {
	storage         *storage.Storage
	config          *Config
	authHandler     *handlers.AuthHandler
	checkoutHandler *handlers.CheckoutHandler
	siretHandler    *handlers.SiretHandler
	ordersHandler   *handlers.OrdersHandler
	productsHandler *handlers.ProductsHandler
	shippingHandler *handlers.ShippingHandler
}

func New(storage *storage.Storage, config *Config) *Service {
	resolver := identity.NewResolver(storage)
	reconciler := identity.NewReconciler(storage)
	provider := identity.NewClerkProvider(config.Clerk.SecretKey)

	emailService := email.NewService(email.Config{
		Host:     config.Email.Host,
		Port:     config.Email.Port,
		Username: config.Email.Login,
		Password: config.Email.Key,
		From:     config.Email.From,
	})

	syncer := checkout.NewSyncer(storage, resolver, emailService, config.Stripe.SecretKey)

	sireneClient := siret.NewSireneClient(config.Sirene.APIToken)
	siretValidator := siret.NewValidator(sireneClient)

	return &Service{
		storage:         storage,
		config:          config,
		authHandler:     handlers.NewAuthHandler(provider, resolver, reconciler),
		checkoutHandler: handlers.NewCheckoutHandler(storage, syncer, config.Stripe.SecretKey, config.Stripe.WebhookSecret, config.BaseURL),
		siretHandler:    handlers.NewSiretHandler(siretValidator, storage),
		ordersHandler:   handlers.NewOrdersHandler(storage),
		productsHandler: handlers.NewProductsHandler(storage),
		shippingHandler: handlers.NewShippingHandler(),
	}
}

func (s *Service) RegisterRoutes(e *echo.Echo) {
	// Stripe webhook signature verification needs the raw body, so it is
	// registered before any body-consuming middleware.
	e.POST("/api/stripe/webhook", s.checkoutHandler.HandleWebhook)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// All API routes get optional auth: the middleware loads the profile
	// into context when a valid Clerk session is present and continues
	// anonymously otherwise.
	api := e.Group("/api", auth.ClerkAuthMiddleware(s.storage))

	api.POST("/auth/guest", s.authHandler.HandleGuestProfile)
	api.POST("/auth/signup", s.authHandler.HandleSignUp)
	api.POST("/auth/signin", s.authHandler.HandleSignIn)

	api.GET("/products", s.productsHandler.HandleListProducts)
	api.POST("/shipping/quote", s.shippingHandler.HandleQuote)
	api.POST("/siret/validate", s.siretHandler.HandleValidate)

	api.POST("/checkout/create-session", s.checkoutHandler.HandleCreateSession)
	api.POST("/checkout/sync", s.checkoutHandler.HandleSyncOrder)
	api.GET("/checkout/session", s.checkoutHandler.HandleGetSession)

	// Routes below require a signed-in user.
	authed := api.Group("", auth.RequireAuth())
	authed.GET("/profile", s.authHandler.HandleGetProfile)
	authed.POST("/profile/siret", s.siretHandler.HandleAttachSiret)
	authed.GET("/orders", s.ordersHandler.HandleListOrders)
	authed.GET("/orders/:id", s.ordersHandler.HandleGetOrder)
}
