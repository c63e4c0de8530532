package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/shopora/storefront-api/models"
	"github.com/shopora/storefront-api/utils"
)

type RegisterInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authPayload struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// POST /api/auth/register
func Register(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.ValidationError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}

		role := models.RoleUser
		if input.Role != "" {
			if !models.ValidRole(input.Role) || models.Role(input.Role) == models.RoleAdmin {
				utils.Error(c, http.StatusBadRequest, "Invalid role")
				return
			}
			role = models.Role(input.Role)
		}

		var existing models.User
		err := db.Where("email = ?", input.Email).First(&existing).Error
		if err == nil {
			utils.Error(c, http.StatusBadRequest, "Email already registered")
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusInternalServerError, "Failed to check email")
			return
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to hash password")
			return
		}

		user := models.User{
			Name:     input.Name,
			Email:    input.Email,
			Password: string(hashed),
			Role:     role,
			Phone:    input.Phone,
		}
		if err := db.Create(&user).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to create user")
			return
		}

		token, err := IssueToken(user)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to issue token")
			return
		}
		utils.OK(c, http.StatusCreated, authPayload{Token: token, User: user})
	}
}

// POST /api/auth/login
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.ValidationError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}

		var user models.User
		if err := db.Where("email = ?", input.Email).First(&user).Error; err != nil {
			utils.Error(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
			utils.Error(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}

		token, err := IssueToken(user)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to issue token")
			return
		}
		utils.OK(c, http.StatusOK, authPayload{Token: token, User: user})
	}
}
