package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/shopora/storefront-api/controllers/product"
	reviewcontroller "github.com/shopora/storefront-api/controllers/review"
	"github.com/shopora/storefront-api/middleware"
	"github.com/shopora/storefront-api/models"
)

// SetupProductRoutes registers catalog browsing (public) and product
// management (admin/merchant) endpoints.
func SetupProductRoutes(api *gin.RouterGroup, db *gorm.DB) {
	products := api.Group("/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/:id", productcontroller.GetProductByID(db))
		products.GET("/:id/reviews", reviewcontroller.GetProductReviews(db))
	}

	// Writes require admin or merchant role; merchants only touch their own.
	manage := api.Group("/products")
	manage.Use(middleware.Authenticate(db), middleware.RequireRoles(models.RoleAdmin, models.RoleMerchant))
	{
		manage.POST("", productcontroller.CreateProduct(db))
		manage.PUT("/:id", productcontroller.UpdateProduct(db))
		manage.DELETE("/:id", productcontroller.DeleteProduct(db))
	}

	api.GET("/categories", productcontroller.GetAllCategories(db))

	categories := api.Group("/categories")
	categories.Use(middleware.Authenticate(db), middleware.RequireRoles(models.RoleAdmin))
	{
		categories.POST("", productcontroller.CreateCategory(db))
	}

	// Review mutations need a signed-in user.
	reviews := api.Group("")
	reviews.Use(middleware.Authenticate(db))
	{
		reviews.POST("/products/:id/reviews", reviewcontroller.CreateReview(db))
		reviews.PUT("/reviews/:id", reviewcontroller.UpdateReview(db))
		reviews.DELETE("/reviews/:id", reviewcontroller.DeleteReview(db))
	}
}
