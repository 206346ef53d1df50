package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/QuaKeyz/reselling-store/controllers"
	"github.com/QuaKeyz/reselling-store/middleware"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth        *controllers.AuthController
	Products    *controllers.ProductController
	Checkout    *controllers.CheckoutController
	Orders      *controllers.OrderController
	Webhook     *controllers.WebhookController
	Credentials middleware.TokenValidator
	LoginLimit  *middleware.RateLimiter
}

// RegisterRoutes wires the public storefront, the payment callback, and the
// admin surface.
func RegisterRoutes(r *gin.Engine, h Handlers) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	// Public storefront
	r.GET("/products", h.Products.GetProducts)
	r.GET("/products/:id", h.Products.GetProductByID)
	r.POST("/checkout", h.Checkout.Checkout)

	// Stripe webhook (signature-authenticated, no bearer token)
	r.POST("/payment-callback", h.Webhook.PaymentCallback)

	// Admin
	r.POST("/admin/login", middleware.RateLimit(h.LoginLimit), h.Auth.Login)

	admin := r.Group("/admin")
	admin.Use(middleware.AdminAuth(h.Credentials))
	admin.GET("/orders", h.Orders.GetAllOrders)
	admin.GET("/orders/:id", h.Orders.GetOrderByID)
	admin.POST("/products", h.Products.CreateProduct)
	admin.PUT("/products/:id", h.Products.UpdateProduct)
	admin.DELETE("/products/:id", h.Products.DeleteProduct)
}
