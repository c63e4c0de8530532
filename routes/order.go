package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	ordercontroller "github.com/shopora/storefront-api/controllers/order"
	"github.com/shopora/storefront-api/middleware"
	"github.com/shopora/storefront-api/models"
)

// SetupOrderRoutes registers all "/api/orders/*" endpoints.
func SetupOrderRoutes(api *gin.RouterGroup, db *gorm.DB) {
	orders := api.Group("/orders")
	orders.Use(middleware.Authenticate(db))
	{
		orders.POST("", ordercontroller.PlaceOrderHandler(db))
		orders.GET("", ordercontroller.ListOrders(db))
		orders.GET("/:id", ordercontroller.GetOrder(db))
		orders.PUT("/:id/cancel", ordercontroller.CancelOrder(db))

		// Status management is admin/merchant territory; merchants are
		// further restricted to orders containing their own products.
		orders.PUT("/:id/status",
			middleware.RequireRoles(models.RoleAdmin, models.RoleMerchant),
			ordercontroller.UpdateOrderStatus(db))
		orders.PUT("/:id/payment-status",
			middleware.RequireRoles(models.RoleAdmin),
			ordercontroller.UpdatePaymentStatus(db))
	}
}
