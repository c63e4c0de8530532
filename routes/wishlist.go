package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	wishlistcontroller "github.com/shopora/storefront-api/controllers/wishlist"
	"github.com/shopora/storefront-api/middleware"
)

// SetupWishlistRoutes registers all "/api/wishlist/*" endpoints. Requires a bearer token.
func SetupWishlistRoutes(api *gin.RouterGroup, db *gorm.DB) {
	wishlist := api.Group("/wishlist")
	wishlist.Use(middleware.Authenticate(db))
	{
		wishlist.GET("", wishlistcontroller.GetWishlist(db))
		wishlist.POST("", wishlistcontroller.AddWishlistItem(db))
		wishlist.DELETE("/:productId", wishlistcontroller.RemoveWishlistItem(db))
	}
}
