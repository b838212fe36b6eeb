package main

import (
	"github.com/gin-gonic/gin"

	"github.com/Amanisai/Emart/internal/shared/middleware"
	"github.com/Amanisai/Emart/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(c.Config.App.CORSOrigin),
	)

	api := router.Group("/api")
	{
		// Health check
		api.GET("/health", healthCheckHandler(c))

		setupAuthRoutes(api, c)
		setupProductRoutes(api, c)
		setupOrderRoutes(api, c)
		setupPaymentRoutes(api, c)
	}

	return router
}

// ========================================
// AUTH ROUTES
// ========================================
func setupAuthRoutes(api *gin.RouterGroup, c *container.Container) {
	auth := api.Group("/auth")
	{
		auth.POST("/signup", c.UserHandler.Signup)
		auth.POST("/login", c.UserHandler.Login)
		auth.POST("/admin-login", c.UserHandler.AdminLogin)
		auth.GET("/me", middleware.AuthMiddleware(c.JWTManager), c.UserHandler.Me)

		adminOnly := auth.Group("/users")
		adminOnly.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
		{
			adminOnly.GET("", c.UserHandler.ListUsers)
			adminOnly.PATCH("/:id/role", c.UserHandler.UpdateRole)
		}
	}
}

// ========================================
// PRODUCT ROUTES
// ========================================
func setupProductRoutes(api *gin.RouterGroup, c *container.Container) {
	products := api.Group("/products")
	{
		products.GET("", c.ProductHandler.List)
		products.GET("/:key", c.ProductHandler.Get)

		admin := products.Group("")
		admin.Use(middleware.AuthMiddleware(c.JWTManager), middleware.AdminMiddleware())
		{
			admin.POST("", c.ProductHandler.Create)
			admin.PUT("/:key", c.ProductHandler.Update)
			admin.DELETE("/:key", c.ProductHandler.Delete)
		}
	}
}

// ========================================
// ORDER ROUTES
// ========================================
func setupOrderRoutes(api *gin.RouterGroup, c *container.Container) {
	orders := api.Group("/orders")
	orders.Use(middleware.AuthMiddleware(c.JWTManager))
	{
		orders.POST("", c.OrderHandler.Create)
		orders.GET("", c.OrderHandler.List)
		orders.GET("/admin", middleware.AdminMiddleware(), c.OrderHandler.ListAll)
		orders.GET("/:id", c.OrderHandler.Get)
	}
}

// ========================================
// PAYMENT ROUTES
// ========================================
func setupPaymentRoutes(api *gin.RouterGroup, c *container.Container) {
	stripe := api.Group("/payments/stripe")
	{
		// Webhook is authenticated by its signature, not a bearer token
		stripe.POST("/webhook", c.PaymentHandler.Webhook)

		authed := stripe.Group("")
		authed.Use(middleware.AuthMiddleware(c.JWTManager))
		{
			authed.POST("/checkout-session", c.PaymentHandler.CreateCheckoutSession)
			authed.POST("/verify", c.PaymentHandler.VerifySession)
		}
	}
}
