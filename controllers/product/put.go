package productcontroller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/storefront-api/middleware"
	"github.com/shopora/storefront-api/models"
	"github.com/shopora/storefront-api/utils"
)

// UpdateProduct applies a partial multipart update. Merchants may only touch
// their own products; the slug is never changed after insert.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := loadOwnedProduct(c, db)
		if !ok {
			return
		}

		if name := c.PostForm("name"); name != "" {
			product.Name = name
		}
		if desc := c.PostForm("description"); desc != "" {
			product.Description = desc
		}
		if priceStr := c.PostForm("price"); priceStr != "" {
			price := utils.FloatQuery(priceStr, -1)
			if price < 0 {
				utils.Error(c, http.StatusBadRequest, "Invalid price")
				return
			}
			product.Price = price
		}
		if origStr := c.PostForm("original_price"); origStr != "" {
			product.OriginalPrice = utils.FloatQuery(origStr, 0)
		}
		if brand := c.PostForm("brand"); brand != "" {
			product.Brand = brand
		}
		if stockStr := c.PostForm("stock"); stockStr != "" {
			stock := utils.IntQuery(stockStr, -1)
			if stock < 0 {
				utils.Error(c, http.StatusBadRequest, "Invalid stock")
				return
			}
			product.Stock = stock
		}
		if v := c.PostForm("is_featured"); v != "" {
			product.IsFeatured = v == "true"
		}
		if v := c.PostForm("is_new"); v != "" {
			product.IsNew = v == "true"
		}
		if tags := c.PostForm("tags"); tags != "" {
			product.Tags = nil
			for _, tag := range strings.Split(tags, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					product.Tags = append(product.Tags, tag)
				}
			}
		}
		if categoryName := c.PostForm("category"); categoryName != "" {
			category, err := findOrCreateCategory(db, categoryName)
			if err != nil {
				utils.Error(c, http.StatusInternalServerError, "Failed to resolve category")
				return
			}
			product.CategoryID = &category.ID
		}

		// New uploads replace the existing image set.
		urls, err := saveUploadedImages(c, "products")
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to save images")
			return
		}
		if len(urls) > 0 {
			product.Images = urls
		}

		product.RecomputeDiscount()

		if err := db.Save(&product).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to update product")
			return
		}

		utils.OK(c, http.StatusOK, product)
	}
}

// loadOwnedProduct fetches the product from the :id param and enforces
// merchant ownership. Writes the error response itself on failure.
func loadOwnedProduct(c *gin.Context, db *gorm.DB) (models.Product, bool) {
	caller, _ := middleware.CurrentUser(c)

	var product models.Product
	if err := db.Preload("Variants").First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(c, http.StatusNotFound, "Product not found")
		} else {
			utils.Error(c, http.StatusInternalServerError, "Failed to retrieve product")
		}
		return models.Product{}, false
	}

	if caller.Role == models.RoleMerchant {
		if product.MerchantID == nil || *product.MerchantID != caller.ID {
			utils.Error(c, http.StatusForbidden, "You do not own this product")
			return models.Product{}, false
		}
	}
	return product, true
}
