package wishlistcontroller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/storefront-api/middleware"
	"github.com/shopora/storefront-api/models"
	"github.com/shopora/storefront-api/utils"
)

type WishlistItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
}

func getOrCreateWishlist(db *gorm.DB, userID uint) (models.Wishlist, error) {
	var wishlist models.Wishlist
	err := db.Where("user_id = ?", userID).First(&wishlist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		wishlist = models.Wishlist{UserID: userID}
		err = db.Create(&wishlist).Error
	}
	return wishlist, err
}

func respondWithWishlist(c *gin.Context, db *gorm.DB, wishlistID uint, status int) {
	var items []models.WishlistItem
	if err := db.Preload("Product").
		Where("wishlist_id = ?", wishlistID).
		Order("added_at DESC").
		Find(&items).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch wishlist")
		return
	}
	utils.OK(c, status, items)
}

// GET /api/wishlist
func GetWishlist(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)
		wishlist, err := getOrCreateWishlist(db, caller.ID)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to fetch wishlist")
			return
		}
		respondWithWishlist(c, db, wishlist.ID, http.StatusOK)
	}
}

// POST /api/wishlist — adding an already-wished product is a no-op.
func AddWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)

		var input WishlistItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.ValidationError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}

		var product models.Product
		if err := db.First(&product, input.ProductID).Error; err != nil {
			utils.Error(c, http.StatusNotFound, "Product not found")
			return
		}

		wishlist, err := getOrCreateWishlist(db, caller.ID)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to fetch wishlist")
			return
		}

		var existing models.WishlistItem
		err = db.Where("wishlist_id = ? AND product_id = ?", wishlist.ID, input.ProductID).First(&existing).Error
		if err == nil {
			respondWithWishlist(c, db, wishlist.ID, http.StatusOK)
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusInternalServerError, "Failed to check wishlist")
			return
		}

		item := models.WishlistItem{
			WishlistID: wishlist.ID,
			ProductID:  input.ProductID,
			AddedAt:    time.Now(),
		}
		if err := db.Create(&item).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to add to wishlist")
			return
		}
		respondWithWishlist(c, db, wishlist.ID, http.StatusCreated)
	}
}

// DELETE /api/wishlist/:productId
func RemoveWishlistItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)

		var wishlist models.Wishlist
		if err := db.Where("user_id = ?", caller.ID).First(&wishlist).Error; err != nil {
			utils.Error(c, http.StatusNotFound, "Wishlist not found")
			return
		}

		result := db.Where("wishlist_id = ? AND product_id = ?", wishlist.ID, c.Param("productId")).
			Delete(&models.WishlistItem{})
		if result.Error != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to remove item")
			return
		}
		if result.RowsAffected == 0 {
			utils.Error(c, http.StatusNotFound, "Wishlist item not found")
			return
		}

		respondWithWishlist(c, db, wishlist.ID, http.StatusOK)
	}
}
