package handler

import (
	"net/http"

	"emeraldscents-be/internal/middleware"
	"emeraldscents-be/internal/payment/webhook"

	"github.com/go-chi/chi/v5"
)

type Handlers struct {
	Auth       *AuthHandler
	Product    *ProductHandler
	Category   *CategoryHandler
	Shipping   *ShippingHandler
	Order      *OrderHandler
	Cart       *CartHandler
	Review     *ReviewHandler
	Address    *AddressHandler
	Admin      *AdminHandler
	Newsletter *NewsletterHandler
	Contact    *ContactHandler
	Webhook    *webhook.Handler
}

// NewRouter mounts the whole API surface. Public routes allow anonymous
// browsing; /api/admin is reachable only with the ADMIN role.
func NewRouter(h Handlers) http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		// Provider callback, authenticated by signature, not by JWT.
		r.Post("/payment-webhook", h.Webhook.PaymentWebhookHandler)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", h.Auth.Signup)
			r.Post("/login", h.Auth.Login)
			r.Post("/logout", h.Auth.Logout)
			r.With(middleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		r.Get("/products", h.Product.List)
		r.Get("/products/{id}", h.Product.Get)
		r.Get("/products/{id}/reviews", h.Review.ListForProduct)
		r.With(middleware.RequireAuth).Post("/products/{id}/reviews", h.Review.Create)

		r.Get("/categories", h.Category.List)
		r.Get("/shipping-zones", h.Shipping.List)
		r.Get("/shipping-rates", h.Shipping.Quote)

		// Anonymous tracking; lives beside the session-scoped order
		// routes, so those are registered flat rather than mounted.
		r.Get("/orders/track", h.Order.Track)

		r.Post("/newsletter", h.Newsletter.Subscribe)
		r.Post("/contact", h.Contact.Submit)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", h.Cart.Get)
				r.Post("/", h.Cart.Add)
				r.Put("/{productId}", h.Cart.UpdateQuantity)
				r.Delete("/{productId}", h.Cart.Remove)
				r.Delete("/", h.Cart.Clear)
			})

			r.Route("/addresses", func(r chi.Router) {
				r.Get("/", h.Address.List)
				r.Post("/", h.Address.Create)
			})

			r.Post("/orders", h.Order.Create)
			r.Get("/orders", h.Order.ListMine)
			r.Get("/orders/{id}", h.Order.Get)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Get("/dashboard", h.Admin.Dashboard)
			r.Get("/customers", h.Admin.Customers)

			r.Get("/products", h.Product.AdminList)
			r.Post("/products", h.Product.Create)
			r.Put("/products/{id}", h.Product.Update)
			r.Delete("/products/{id}", h.Product.Delete)

			r.Post("/categories", h.Category.Create)
			r.Put("/categories/{id}", h.Category.Update)
			r.Delete("/categories/{id}", h.Category.Delete)

			r.Get("/shipping-zones", h.Shipping.List)
			r.Post("/shipping-zones", h.Shipping.Create)
			r.Put("/shipping-zones/{id}", h.Shipping.Update)
			r.Delete("/shipping-zones/{id}", h.Shipping.Delete)

			r.Get("/orders", h.Order.AdminList)
			r.Put("/orders/{id}/status", h.Order.UpdateStatus)

			r.Get("/reviews/pending", h.Review.ListPending)
			r.Put("/reviews/{id}/approve", h.Review.Approve)
			r.Delete("/reviews/{id}", h.Review.Delete)
		})
	})

	return r
}
