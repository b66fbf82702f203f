package main

import (
	"net/http"

	"emeraldscents-be/internal/address"
	"emeraldscents-be/internal/admin"
	"emeraldscents-be/internal/cart"
	"emeraldscents-be/internal/category"
	"emeraldscents-be/internal/config"
	"emeraldscents-be/internal/contact"
	"emeraldscents-be/internal/db"
	"emeraldscents-be/internal/handler"
	"emeraldscents-be/internal/logger"
	"emeraldscents-be/internal/middleware"
	"emeraldscents-be/internal/newsletter"
	"emeraldscents-be/internal/notification"
	"emeraldscents-be/internal/order"
	"emeraldscents-be/internal/payment"
	"emeraldscents-be/internal/payment/webhook"
	"emeraldscents-be/internal/pricing"
	"emeraldscents-be/internal/product"
	"emeraldscents-be/internal/review"
	"emeraldscents-be/internal/shipping"
	"emeraldscents-be/internal/user"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	mailer := notification.NewHTTPMailer(cfg.MailAPIKey, cfg.MailBaseURL, cfg.MailSender)
	gateway := payment.NewPaystackGateway(cfg.PaystackSecretKey)

	categoryRepo := category.NewRepository(database)
	addressRepo := address.NewRepository(database)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo, mailer)

	adminRepo := admin.NewRepository(database, userRepo, productRepo)

	shippingRepo := shipping.NewRepository(database)
	shippingSvc := shipping.NewService(shippingRepo, cfg.DefaultShippingFee)

	calc := pricing.NewCalculator(shippingSvc, cfg.FreeShippingThreshold)

	cartRepo := cart.NewRepository(database)
	cartSvc := cart.NewService(cartRepo, productRepo)

	reviewRepo := review.NewRepository(database)
	reviewSvc := review.NewService(reviewRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, addressRepo, calc, gateway, mailer, cfg.AllowBackorder)

	newsletterRepo := newsletter.NewRepository(database)
	newsletterSvc := newsletter.NewService(newsletterRepo, mailer)

	contactSvc := contact.NewService(mailer, cfg.AdminEmail)

	payRepo := payment.NewRepository(database)
	webhookHandler := webhook.NewWebhookHandler(orderSvc, gateway, payRepo)

	router := handler.NewRouter(handler.Handlers{
		Auth:       handler.NewAuthHandler(userSvc, cfg.AppEnv == "production"),
		Product:    handler.NewProductHandler(productSvc),
		Category:   handler.NewCategoryHandler(categoryRepo),
		Shipping:   handler.NewShippingHandler(shippingSvc),
		Order:      handler.NewOrderHandler(orderSvc),
		Cart:       handler.NewCartHandler(cartSvc),
		Review:     handler.NewReviewHandler(reviewSvc),
		Address:    handler.NewAddressHandler(addressRepo),
		Admin:      handler.NewAdminHandler(adminRepo),
		Newsletter: handler.NewNewsletterHandler(newsletterSvc),
		Contact:    handler.NewContactHandler(contactSvc),
		Webhook:    webhookHandler,
	})

	srv := logger.RequestIDMiddleware(
		logger.LoggingMiddleware(
			middleware.RateLimitMiddleware(
				middleware.AuthMiddleware(router),
			),
		),
	)

	logger.L().Info("server listening", zap.String("port", cfg.AppPort))
	if err := http.ListenAndServe(":"+cfg.AppPort, srv); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
