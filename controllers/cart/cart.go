package cartcontroller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/storefront-api/middleware"
	"github.com/shopora/storefront-api/models"
	"github.com/shopora/storefront-api/pricing"
	"github.com/shopora/storefront-api/utils"
)

type CartItemInput struct {
	ProductID uint  `json:"product_id" binding:"required"`
	VariantID *uint `json:"variant_id"`
	Quantity  int   `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity"`
}

// cartPayload is what every cart endpoint responds with: the lines plus the
// recomputed totals. Totals are never persisted.
type cartPayload struct {
	ID     uint              `json:"id"`
	Items  []models.CartItem `json:"items"`
	Totals pricing.Totals    `json:"totals"`
}

// getOrCreateCart returns the caller's cart, creating an empty one on first use.
func getOrCreateCart(db *gorm.DB, userID uint) (models.Cart, error) {
	var cart models.Cart
	err := db.Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{UserID: userID}
		err = db.Create(&cart).Error
	}
	return cart, err
}

// respondWithCart reloads the cart lines with products and replies with the
// derived totals.
func respondWithCart(c *gin.Context, db *gorm.DB, cartID uint, status int) {
	var items []models.CartItem
	if err := db.Preload("Product").Preload("Variant").
		Where("cart_id = ?", cartID).
		Order("added_at ASC").
		Find(&items).Error; err != nil {
		utils.Error(c, http.StatusInternalServerError, "Failed to fetch cart")
		return
	}
	utils.OK(c, status, cartPayload{ID: cartID, Items: items, Totals: pricing.CartTotals(items)})
}

// availableStock picks the variant's stock when a variant is selected,
// otherwise the product's.
func availableStock(product models.Product, variantID *uint) (int, error) {
	if variantID == nil {
		return product.Stock, nil
	}
	for _, v := range product.Variants {
		if v.ID == *variantID {
			return v.Stock, nil
		}
	}
	return 0, errors.New("variant does not belong to product")
}

// GET /api/cart
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)
		cart, err := getOrCreateCart(db, caller.ID)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}
		respondWithCart(c, db, cart.ID, http.StatusOK)
	}
}

// POST /api/cart — adds a line, merging into an existing (product, variant)
// line instead of appending a duplicate.
func AddCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.ValidationError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}

		var product models.Product
		if err := db.Preload("Variants").First(&product, input.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.Error(c, http.StatusNotFound, "Product not found")
			} else {
				utils.Error(c, http.StatusInternalServerError, "Failed to validate product")
			}
			return
		}

		stock, err := availableStock(product, input.VariantID)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		cart, err := getOrCreateCart(db, caller.ID)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}

		var items []models.CartItem
		if err := db.Where("cart_id = ? AND product_id = ?", cart.ID, input.ProductID).Find(&items).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to fetch cart items")
			return
		}

		for _, item := range items {
			if !item.SameLine(input.ProductID, input.VariantID) {
				continue
			}
			// Merge into the existing line.
			merged := item.Quantity + input.Quantity
			if merged > stock {
				utils.Error(c, http.StatusBadRequest, "Insufficient stock for "+product.Name)
				return
			}
			item.Quantity = merged
			item.AddedAt = time.Now()
			if err := db.Save(&item).Error; err != nil {
				utils.Error(c, http.StatusInternalServerError, "Failed to update cart item")
				return
			}
			respondWithCart(c, db, cart.ID, http.StatusOK)
			return
		}

		if input.Quantity > stock {
			utils.Error(c, http.StatusBadRequest, "Insufficient stock for "+product.Name)
			return
		}

		newItem := models.CartItem{
			CartID:    cart.ID,
			ProductID: input.ProductID,
			VariantID: input.VariantID,
			Quantity:  input.Quantity,
			AddedAt:   time.Now(),
		}
		if err := db.Create(&newItem).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to add item to cart")
			return
		}
		respondWithCart(c, db, cart.ID, http.StatusCreated)
	}
}

// PUT /api/cart/items/:itemId — sets a line's quantity; zero or less removes it.
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.ValidationError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}

		cart, item, ok := loadCartLine(c, db, caller.ID)
		if !ok {
			return
		}

		if input.Quantity <= 0 {
			if err := db.Delete(&item).Error; err != nil {
				utils.Error(c, http.StatusInternalServerError, "Failed to remove cart item")
				return
			}
			respondWithCart(c, db, cart.ID, http.StatusOK)
			return
		}

		var product models.Product
		if err := db.Preload("Variants").First(&product, item.ProductID).Error; err != nil {
			utils.Error(c, http.StatusNotFound, "Product not found")
			return
		}
		stock, err := availableStock(product, item.VariantID)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		if input.Quantity > stock {
			utils.Error(c, http.StatusBadRequest, "Insufficient stock for "+product.Name)
			return
		}

		item.Quantity = input.Quantity
		if err := db.Save(&item).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to update cart item")
			return
		}
		respondWithCart(c, db, cart.ID, http.StatusOK)
	}
}

// DELETE /api/cart/items/:itemId
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)

		cart, item, ok := loadCartLine(c, db, caller.ID)
		if !ok {
			return
		}
		if err := db.Delete(&item).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to remove cart item")
			return
		}
		respondWithCart(c, db, cart.ID, http.StatusOK)
	}
}

// DELETE /api/cart
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)

		cart, err := getOrCreateCart(db, caller.ID)
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to fetch cart")
			return
		}
		if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to clear cart")
			return
		}
		respondWithCart(c, db, cart.ID, http.StatusOK)
	}
}

// loadCartLine resolves the :itemId param against the caller's cart. Line IDs
// are numeric end-to-end; there is no string-scan fallback.
func loadCartLine(c *gin.Context, db *gorm.DB, userID uint) (models.Cart, models.CartItem, bool) {
	var cart models.Cart
	if err := db.Where("user_id = ?", userID).First(&cart).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Cart not found")
		return cart, models.CartItem{}, false
	}

	var item models.CartItem
	if err := db.Where("cart_id = ? AND id = ?", cart.ID, c.Param("itemId")).First(&item).Error; err != nil {
		utils.Error(c, http.StatusNotFound, "Cart item not found")
		return cart, models.CartItem{}, false
	}
	return cart, item, true
}
