package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/storefront-api/auth"
	usercontroller "github.com/shopora/storefront-api/controllers/user"
	"github.com/shopora/storefront-api/middleware"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, db *gorm.DB) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", auth.Register(db))
		authGroup.POST("/login", auth.Login(db))

		profile := authGroup.Group("/profile")
		profile.Use(middleware.Authenticate(db))
		{
			profile.GET("", usercontroller.GetProfile(db))
			profile.PUT("", usercontroller.UpdateProfile(db))
		}
	}
}
