package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/storefront-api/auth"
	"github.com/shopora/storefront-api/models"
	"github.com/shopora/storefront-api/utils"
)

// Context keys set by Authenticate.
const (
	ContextUser   = "user"
	ContextUserID = "user_id"
)

// Authenticate verifies the bearer token and loads the referenced user. A
// valid token whose user has since been deleted is still rejected.
func Authenticate(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.Error(c, http.StatusUnauthorized, "Authorization header is missing")
			c.Abort()
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		userID, err := auth.ParseToken(tokenString)
		if err != nil {
			utils.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			utils.Error(c, http.StatusUnauthorized, "User no longer exists")
			c.Abort()
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextUserID, user.ID)
		c.Next()
	}
}

// RequireRoles gates a route on the caller's role. Must run after Authenticate.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.Error(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}
		utils.Error(c, http.StatusForbidden, "Insufficient permissions")
		c.Abort()
	}
}

// CurrentUser returns the authenticated user attached by Authenticate.
func CurrentUser(c *gin.Context) (models.User, bool) {
	val, exists := c.Get(ContextUser)
	if !exists {
		return models.User{}, false
	}
	user, ok := val.(models.User)
	return user, ok
}
