package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry point that wires every route group under /api.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")

	// Public auth + profile
	SetupAuthRoutes(api, db)

	// Catalog (public reads, role-gated writes)
	SetupProductRoutes(api, db)

	// Cart, orders, reviews, wishlist (JWT-protected)
	SetupCartRoutes(api, db)
	SetupOrderRoutes(api, db)
	SetupWishlistRoutes(api, db)

	// Admin dashboards
	SetupAdminRoutes(api, db)
}
