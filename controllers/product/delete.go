package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/storefront-api/utils"
)

// DeleteProduct soft-deletes a product. Reviews and order snapshots keep
// their product references; dangling lookups resolve to not-found.
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, ok := loadOwnedProduct(c, db)
		if !ok {
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to delete product")
			return
		}

		utils.Message(c, http.StatusOK, "Product deleted")
	}
}
