package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/storefront-api/models"
	"github.com/shopora/storefront-api/utils"
)

const (
	defaultPageSize = 12
	maxPageSize     = 100
)

// GetProducts lists the catalog with filtering, sorting and pagination.
// Malformed numeric params fall back to their defaults.
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := utils.IntQuery(c.Query("page"), 1)
		if page < 1 {
			page = 1
		}
		limit := utils.IntQuery(c.Query("limit"), defaultPageSize)
		if limit < 1 {
			limit = defaultPageSize
		}
		if limit > maxPageSize {
			limit = maxPageSize
		}

		query := db.Model(&models.Product{}).
			Preload("Category").
			Preload("Variants")

		// Free-text filters are case-insensitive substring matches.
		if search := c.Query("search"); search != "" {
			like := "%" + strings.ToLower(search) + "%"
			query = query.Where(
				"LOWER(name) LIKE ? OR LOWER(description) LIKE ? OR LOWER(brand) LIKE ?",
				like, like, like,
			)
		}
		if category := c.Query("category"); category != "" {
			like := "%" + strings.ToLower(category) + "%"
			query = query.Joins("JOIN categories ON categories.id = products.category_id").
				Where("LOWER(categories.name) LIKE ?", like)
		}
		if brand := c.Query("brand"); brand != "" {
			query = query.Where("LOWER(brand) LIKE ?", "%"+strings.ToLower(brand)+"%")
		}

		if minPrice := utils.FloatQuery(c.Query("min_price"), 0); minPrice > 0 {
			query = query.Where("price >= ?", minPrice)
		}
		if maxPrice := utils.FloatQuery(c.Query("max_price"), 0); maxPrice > 0 {
			query = query.Where("price <= ?", maxPrice)
		}
		if rating := utils.FloatQuery(c.Query("rating"), 0); rating > 0 {
			query = query.Where("rating >= ?", rating)
		}
		if c.Query("in_stock") == "true" {
			query = query.Where("stock > 0")
		}
		if c.Query("featured") == "true" {
			query = query.Where("is_featured = ?", true)
		}

		switch c.DefaultQuery("sort", "newest") {
		case "price-asc":
			query = query.Order("price ASC")
		case "price-desc":
			query = query.Order("price DESC")
		case "rating":
			query = query.Order("rating DESC")
		case "popular":
			query = query.Order("review_count DESC, rating DESC")
		default: // newest
			query = query.Order("created_at DESC")
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to count products")
			return
		}

		var products []models.Product
		if err := query.Limit(limit).Offset((page - 1) * limit).Find(&products).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to fetch products")
			return
		}

		utils.Paginated(c, http.StatusOK, products, utils.NewPagination(page, limit, total))
	}
}
