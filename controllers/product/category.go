package productcontroller

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/storefront-api/models"
	"github.com/shopora/storefront-api/utils"
)

// defaultCategories seed an empty store at boot.
var defaultCategories = []string{
	"Electronics", "Clothing", "Home & Garden", "Sports", "Books", "Toys",
}

// SeedCategories inserts the default categories when the table is empty.
func SeedCategories(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Category{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	for _, name := range defaultCategories {
		category := models.Category{Name: name, Slug: utils.Slugify(name)}
		if err := db.Create(&category).Error; err != nil {
			return err
		}
	}
	return nil
}

// GetAllCategories lists categories with their derived product counts.
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name ASC").Find(&categories).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to fetch categories")
			return
		}

		for i := range categories {
			if err := db.Model(&models.Product{}).
				Where("category_id = ?", categories[i].ID).
				Count(&categories[i].ProductCount).Error; err != nil {
				utils.Error(c, http.StatusInternalServerError, "Failed to count products")
				return
			}
		}

		utils.OK(c, http.StatusOK, categories)
	}
}

// CreateCategory adds a category with an optional image upload.
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		if name == "" {
			utils.Error(c, http.StatusBadRequest, "name is required")
			return
		}

		var imageURL string
		if file, err := c.FormFile("image"); err == nil {
			saveDir := filepath.Join(uploadRoot(), "categories")
			if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
				utils.Error(c, http.StatusInternalServerError, "Failed to create upload folder")
				return
			}
			ext := filepath.Ext(file.Filename)
			base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
			base = strings.ReplaceAll(base, " ", "_")
			filename := fmt.Sprintf("%d_%s%s", time.Now().UnixNano(), base, ext)
			if err := c.SaveUploadedFile(file, filepath.Join(saveDir, filename)); err != nil {
				utils.Error(c, http.StatusInternalServerError, "Failed to save image")
				return
			}
			imageURL = fmt.Sprintf("/uploads/categories/%s", filename)
		}

		category := models.Category{
			Name:  name,
			Slug:  utils.Slugify(name),
			Image: imageURL,
		}
		if err := db.Create(&category).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to create category")
			return
		}

		utils.OK(c, http.StatusCreated, category)
	}
}
