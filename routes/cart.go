package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartcontroller "github.com/shopora/storefront-api/controllers/cart"
	"github.com/shopora/storefront-api/middleware"
)

// SetupCartRoutes registers all "/api/cart/*" endpoints. Requires a bearer token.
func SetupCartRoutes(api *gin.RouterGroup, db *gorm.DB) {
	cart := api.Group("/cart")
	cart.Use(middleware.Authenticate(db))
	{
		cart.GET("", cartcontroller.GetCart(db))
		cart.POST("", cartcontroller.AddCartItem(db))
		cart.POST("/merge", cartcontroller.MergeCart(db))
		cart.PUT("/items/:itemId", cartcontroller.UpdateCartItem(db))
		cart.DELETE("/items/:itemId", cartcontroller.RemoveCartItem(db))
		cart.DELETE("", cartcontroller.ClearCart(db))
	}
}
