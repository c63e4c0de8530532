package productcontroller

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/storefront-api/middleware"
	"github.com/shopora/storefront-api/models"
	"github.com/shopora/storefront-api/utils"
)

type variantInput struct {
	Name          string  `json:"name" binding:"required"`
	Type          string  `json:"type" binding:"required"`
	Value         string  `json:"value"`
	PriceModifier float64 `json:"price_modifier"`
	Stock         int     `json:"stock"`
}

// CreateProduct creates a product from a multipart form with image uploads.
// Merchants own what they create; admins may create unowned products.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)

		name := c.PostForm("name")
		priceStr := c.PostForm("price")
		if name == "" || priceStr == "" {
			utils.Error(c, http.StatusBadRequest, "name and price are required")
			return
		}
		price := utils.FloatQuery(priceStr, -1)
		if price < 0 {
			utils.Error(c, http.StatusBadRequest, "Invalid price")
			return
		}

		product := models.Product{
			Name:          name,
			Slug:          utils.UniqueSlug(name), // assigned pre-insert
			Description:   c.PostForm("description"),
			Price:         price,
			OriginalPrice: utils.FloatQuery(c.PostForm("original_price"), 0),
			Brand:         c.PostForm("brand"),
			Stock:         utils.IntQuery(c.PostForm("stock"), 0),
			IsFeatured:    c.PostForm("is_featured") == "true",
			IsNew:         c.PostForm("is_new") == "true",
		}
		product.RecomputeDiscount()

		if tags := c.PostForm("tags"); tags != "" {
			for _, tag := range strings.Split(tags, ",") {
				if tag = strings.TrimSpace(tag); tag != "" {
					product.Tags = append(product.Tags, tag)
				}
			}
		}

		if variantsJSON := c.PostForm("variants"); variantsJSON != "" {
			var inputs []variantInput
			if err := json.Unmarshal([]byte(variantsJSON), &inputs); err != nil {
				utils.Error(c, http.StatusBadRequest, "Invalid variants format")
				return
			}
			for _, v := range inputs {
				if !models.ValidVariantType(v.Type) {
					utils.Error(c, http.StatusBadRequest, "Invalid variant type: "+v.Type)
					return
				}
				product.Variants = append(product.Variants, models.ProductVariant{
					Name:          v.Name,
					Type:          models.VariantType(v.Type),
					Value:         v.Value,
					PriceModifier: v.PriceModifier,
					Stock:         v.Stock,
				})
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

		if caller.Role == models.RoleMerchant {
			merchantID := caller.ID
			product.MerchantID = &merchantID
		}

		urls, err := saveUploadedImages(c, "products")
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to save images")
			return
		}
		product.Images = urls

		if err := db.Create(&product).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to create product")
			return
		}

		utils.OK(c, http.StatusCreated, product)
	}
}

// findOrCreateCategory resolves a category by name, creating it on first use.
func findOrCreateCategory(db *gorm.DB, name string) (models.Category, error) {
	var category models.Category
	err := db.Where("LOWER(name) = ?", strings.ToLower(name)).First(&category).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		category = models.Category{Name: name, Slug: utils.Slugify(name)}
		err = db.Create(&category).Error
	}
	return category, err
}
