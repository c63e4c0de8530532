package cartcontroller

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

type MergeCartInput struct {
	Items []CartItemInput `json:"items" binding:"required"`
}

// MergeCart reconciles a guest cart kept in the client's local storage into
// the server cart after sign-in. Merge contract: quantities for the same
// (product, variant) line are summed, then capped at live stock. Lines whose
// product no longer exists are dropped silently.
//
// POST /api/cart/merge
func MergeCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)

		var input MergeCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.ValidationError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}

		cart, err := getOrCreateCart(db, caller.ID)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			for _, guest := range input.Items {
				if guest.Quantity < 1 {
					continue
				}

				var product models.Product
				if err := tx.Preload("Variants").First(&product, guest.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						continue // stale local line
					}
					return err
				}
				stock, err := availableStock(product, guest.VariantID)
				if err != nil || stock == 0 {
					continue
				}

				var lines []models.CartItem
				if err := tx.Where("cart_id = ? AND product_id = ?", cart.ID, guest.ProductID).Find(&lines).Error; err != nil {
					return err
				}

				merged := false
				for _, line := range lines {
					if !line.SameLine(guest.ProductID, guest.VariantID) {
						continue
					}
					line.Quantity = min(line.Quantity+guest.Quantity, stock)
					line.AddedAt = time.Now()
					if err := tx.Save(&line).Error; err != nil {
						return err
					}
					merged = true
					break
				}
				if merged {
					continue
				}

				newItem := models.CartItem{
					CartID:    cart.ID,
					ProductID: guest.ProductID,
					VariantID: guest.VariantID,
					Quantity:  min(guest.Quantity, stock),
					AddedAt:   time.Now(),
				}
				if err := tx.Create(&newItem).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to merge cart")
			return
		}

		respondWithCart(c, db, cart.ID, http.StatusOK)
	}
}
