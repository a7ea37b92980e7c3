// Package http wires the storefront's public and back-office HTTP API.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/23sarmiento78/BOLUSHOP/pkg/health"
	"github.com/23sarmiento78/BOLUSHOP/pkg/middleware"

	"github.com/23sarmiento78/BOLUSHOP/internal/service"
)

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Catalog  *service.CatalogService
	Checkout *service.CheckoutService
	Orders   *service.OrderService
	Settings *service.SettingsService

	Health        *health.Handler
	AdminUser     string
	AdminPassword string
	WebhookSecret string
	MaxUploadMB   int64
	UploadsDir    string
	SecureCookies bool
	Logger        *slog.Logger
}

// NewRouter creates a chi router with all storefront routes registered.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	logger := deps.Logger

	// Global middleware
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("bolushop"))

	// Health check and metrics endpoints
	r.Get("/health/live", deps.Health.LivenessHandler())
	r.Get("/health/ready", deps.Health.ReadinessHandler())
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	productHandler := NewProductHandler(deps.Catalog, logger)
	checkoutHandler := NewCheckoutHandler(deps.Checkout, logger)
	orderHandler := NewOrderHandler(deps.Orders, logger)
	webhookHandler := NewWebhookHandler(deps.Orders, deps.WebhookSecret, logger)
	authHandler := NewAuthHandler(deps.AdminUser, deps.AdminPassword, deps.SecureCookies, logger)
	adminProductHandler := NewAdminProductHandler(deps.Catalog, deps.MaxUploadMB, logger)
	settingsHandler := NewSettingsHandler(deps.Settings, logger)
	uploadHandler := NewUploadHandler(deps.UploadsDir, deps.MaxUploadMB, logger)

	// Uploaded product images are served straight off disk.
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadsDir))))

	// Public storefront API
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Get("/products", productHandler.ListProducts)
			r.Get("/products/{idOrSlug}", productHandler.GetProduct)
			r.Get("/categories", productHandler.ListCategories)

			r.Post("/checkout", checkoutHandler.Checkout)
			r.Get("/orders/{id}", orderHandler.GetOrder)

			r.Post("/admin/login", authHandler.Login)
			r.Post("/admin/logout", authHandler.Logout)
		})

		// Gateway webhook: content type varies by sender, no JSON guard.
		r.Post("/webhooks/mercadopago", webhookHandler.HandleNotification)

		// Back-office API, behind the admin session cookie.
		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuth(authHandler.SessionToken()))

			r.Post("/products/import", adminProductHandler.ImportProducts)
			r.Post("/uploads", uploadHandler.UploadImage)

			r.Group(func(r chi.Router) {
				r.Use(ContentTypeJSON)

				r.Post("/products", adminProductHandler.CreateProduct)
				r.Put("/products/{id}", adminProductHandler.UpdateProduct)
				r.Delete("/products/{id}", adminProductHandler.DeleteProduct)
				r.Delete("/products", adminProductHandler.DeleteAllProducts)
				r.Post("/products/batch-delete", adminProductHandler.DeleteManyProducts)

				r.Get("/orders", orderHandler.ListOrders)
				r.Patch("/orders/{id}", orderHandler.UpdateOrderStatus)
				r.Post("/orders/{id}/cancel", orderHandler.CancelOrder)

				r.Get("/settings", settingsHandler.GetSettings)
				r.Put("/settings", settingsHandler.UpdateSettings)
			})
		})
	})

	return r
}
