package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	admincontroller "github.com/shopora/storefront-api/controllers/admin"
	ordercontroller "github.com/shopora/storefront-api/controllers/order"
	productcontroller "github.com/shopora/storefront-api/controllers/product"
	usercontroller "github.com/shopora/storefront-api/controllers/user"
	"github.com/shopora/storefront-api/middleware"
	"github.com/shopora/storefront-api/models"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints. Admin role only.
func SetupAdminRoutes(api *gin.RouterGroup, db *gorm.DB) {
	admin := api.Group("/admin")
	admin.Use(middleware.Authenticate(db), middleware.RequireRoles(models.RoleAdmin))
	{
		admin.GET("/stats", admincontroller.GetStats(db))
		admin.GET("/users", usercontroller.GetAllUsers(db))
		admin.GET("/products/export", productcontroller.ExportProductsToExcel(db))

		// Live order feed for the dashboard
		admin.GET("/orders/ws", ordercontroller.OrderWebSocketHandler)
	}
}
