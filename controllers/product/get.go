package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/storefront-api/models"
	"github.com/shopora/storefront-api/utils"
)

// GetProductByID returns a single product looked up by numeric ID or by slug.
// URL param: /products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idParam := c.Param("id")

		query := db.Preload("Category").Preload("Variants")

		var product models.Product
		var err error
		if id, convErr := strconv.ParseUint(idParam, 10, 64); convErr == nil {
			err = query.First(&product, uint(id)).Error
		} else {
			err = query.Where("slug = ?", idParam).First(&product).Error
		}
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.Error(c, http.StatusNotFound, "Product not found")
			} else {
				utils.Error(c, http.StatusInternalServerError, "Failed to retrieve product")
			}
			return
		}

		utils.OK(c, http.StatusOK, product)
	}
}
