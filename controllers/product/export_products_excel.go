package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/shopora/storefront-api/models"
	"github.com/shopora/storefront-api/utils"
)

// ExportProductsToExcel streams the full catalog as an .xlsx download.
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Category").Find(&products).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to fetch products")
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to create Excel sheet")
			return
		}

		// Header row
		headers := []string{
			"ID", "Name", "Slug", "Brand", "Category",
			"Price", "OriginalPrice", "Discount", "Stock",
			"Rating", "ReviewCount", "Featured", "Tags", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Slug)
			row.AddCell().SetValue(p.Brand)
			if p.Category != nil {
				row.AddCell().SetValue(p.Category.Name)
			} else {
				row.AddCell().SetValue("")
			}
			row.AddCell().SetValue(p.Price)
			row.AddCell().SetValue(p.OriginalPrice)
			row.AddCell().SetValue(p.Discount)
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.Rating)
			row.AddCell().SetValue(p.ReviewCount)
			row.AddCell().SetValue(p.IsFeatured)
			row.AddCell().SetValue(strings.Join(p.Tags, ","))
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to write Excel file")
			return
		}
	}
}
