package usercontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/storefront-api/middleware"
	"github.com/shopora/storefront-api/models"
	"github.com/shopora/storefront-api/utils"
)

type UpdateProfileInput struct {
	Name    *string         `json:"name"`
	Phone   *string         `json:"phone"`
	Avatar  *string         `json:"avatar"`
	Address *models.Address `json:"address"`
}

// GET /api/auth/profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)
		utils.OK(c, http.StatusOK, caller)
	}
}

// PUT /api/auth/profile
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)

		var input UpdateProfileInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.ValidationError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Phone != nil {
			updates["phone"] = *input.Phone
		}
		if input.Avatar != nil {
			updates["avatar"] = *input.Avatar
		}
		if input.Address != nil {
			updates["street"] = input.Address.Street
			updates["city"] = input.Address.City
			updates["state"] = input.Address.State
			updates["postal_code"] = input.Address.PostalCode
			updates["country"] = input.Address.Country
		}

		if len(updates) > 0 {
			if err := db.Model(&caller).Updates(updates).Error; err != nil {
				utils.Error(c, http.StatusInternalServerError, "Failed to update profile")
				return
			}
		}

		var user models.User
		if err := db.First(&user, caller.ID).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to reload profile")
			return
		}
		utils.OK(c, http.StatusOK, user)
	}
}

// GET /api/admin/users
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var users []models.User
		if err := db.
			Select("id", "email", "name", "role", "phone", "avatar", "created_at").
			Order("created_at desc").
			Find(&users).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to fetch users")
			return
		}
		utils.OK(c, http.StatusOK, users)
	}
}
