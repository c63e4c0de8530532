package reviewcontroller

import (
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/storefront-api/middleware"
	"github.com/shopora/storefront-api/models"
	"github.com/shopora/storefront-api/utils"
)

type ReviewInput struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// recomputeProductRating refreshes the parent product's derived rating (mean
// rounded to 1 decimal) and review count. Runs inside the same transaction as
// the review write.
func recomputeProductRating(tx *gorm.DB, productID uint) error {
	var count int64
	if err := tx.Model(&models.Review{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return err
	}

	rating := 0.0
	if count > 0 {
		var avg float64
		if err := tx.Model(&models.Review{}).
			Where("product_id = ?", productID).
			Select("AVG(rating)").Scan(&avg).Error; err != nil {
			return err
		}
		rating = math.Round(avg*10) / 10
	}

	return tx.Model(&models.Product{}).Where("id = ?", productID).
		Updates(map[string]interface{}{"rating": rating, "review_count": count}).Error
}

// GET /api/products/:id/reviews
func GetProductReviews(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var reviews []models.Review
		if err := db.Preload("User").
			Where("product_id = ?", c.Param("id")).
			Order("created_at DESC").
			Find(&reviews).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to fetch reviews")
			return
		}
		utils.OK(c, http.StatusOK, reviews)
	}
}

// POST /api/products/:id/reviews — one review per (product, user) pair.
func CreateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.ValidationError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
			utils.Error(c, http.StatusNotFound, "Product not found")
			return
		}

		var existing models.Review
		err := db.Where("product_id = ? AND user_id = ?", product.ID, caller.ID).First(&existing).Error
		if err == nil {
			utils.Error(c, http.StatusBadRequest, "You have already reviewed this product")
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusInternalServerError, "Failed to check existing review")
			return
		}

		review := models.Review{
			ProductID: product.ID,
			UserID:    caller.ID,
			Rating:    input.Rating,
			Comment:   input.Comment,
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&review).Error; err != nil {
				return err
			}
			return recomputeProductRating(tx, product.ID)
		})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to create review")
			return
		}

		utils.OK(c, http.StatusCreated, review)
	}
}

// PUT /api/reviews/:id — author only.
func UpdateReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)

		var input ReviewInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.ValidationError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}

		var review models.Review
		if err := db.First(&review, "id = ?", c.Param("id")).Error; err != nil {
			utils.Error(c, http.StatusNotFound, "Review not found")
			return
		}
		if review.UserID != caller.ID {
			utils.Error(c, http.StatusForbidden, "Not your review")
			return
		}

		review.Rating = input.Rating
		review.Comment = input.Comment
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&review).Error; err != nil {
				return err
			}
			return recomputeProductRating(tx, review.ProductID)
		})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to update review")
			return
		}

		utils.OK(c, http.StatusOK, review)
	}
}

// DELETE /api/reviews/:id — author or admin.
func DeleteReview(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)

		var review models.Review
		if err := db.First(&review, "id = ?", c.Param("id")).Error; err != nil {
			utils.Error(c, http.StatusNotFound, "Review not found")
			return
		}
		if review.UserID != caller.ID && caller.Role != models.RoleAdmin {
			utils.Error(c, http.StatusForbidden, "Not your review")
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Delete(&review).Error; err != nil {
				return err
			}
			return recomputeProductRating(tx, review.ProductID)
		})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to delete review")
			return
		}

		utils.Message(c, http.StatusOK, "Review deleted")
	}
}
