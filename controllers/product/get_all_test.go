package productcontroller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shopora/storefront-api/models"
	"github.com/shopora/storefront-api/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Category{}, &models.Product{}, &models.ProductVariant{},
	))
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	electronics := models.Category{Name: "Electronics", Slug: "electronics"}
	clothing := models.Category{Name: "Clothing", Slug: "clothing"}
	require.NoError(t, db.Create(&electronics).Error)
	require.NoError(t, db.Create(&clothing).Error)

	products := []models.Product{
		{Name: "Wireless Headphones", Slug: "wireless-headphones-1", Price: 89.99, Brand: "Soundry", CategoryID: &electronics.ID, Stock: 10, Rating: 4.5, ReviewCount: 12, IsFeatured: true},
		{Name: "USB-C Cable", Slug: "usb-c-cable-1", Price: 9.99, Brand: "Soundry", CategoryID: &electronics.ID, Stock: 0, Rating: 3.0, ReviewCount: 2},
		{Name: "Denim Jacket", Slug: "denim-jacket-1", Price: 59.99, Brand: "Northloom", CategoryID: &clothing.ID, Stock: 5, Rating: 4.9, ReviewCount: 30},
		{Name: "Wool Socks", Slug: "wool-socks-1", Price: 7.99, Brand: "Northloom", CategoryID: &clothing.ID, Stock: 50, Rating: 4.0, ReviewCount: 7},
	}
	for i := range products {
		require.NoError(t, db.Create(&products[i]).Error)
	}
}

func listProducts(t *testing.T, db *gorm.DB, query string) ([]models.Product, *utils.Pagination) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/products"+query, nil)

	GetProducts(db)(c)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var envelope struct {
		Success    bool              `json:"success"`
		Data       []models.Product  `json:"data"`
		Pagination *utils.Pagination `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	return envelope.Data, envelope.Pagination
}

func names(products []models.Product) []string {
	var out []string
	for _, p := range products {
		out = append(out, p.Name)
	}
	return out
}

func TestListAllWithPagination(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	products, pagination := listProducts(t, db, "?page=1&limit=3")
	assert.Len(t, products, 3)
	require.NotNil(t, pagination)
	assert.Equal(t, int64(4), pagination.Total)
	assert.Equal(t, 2, pagination.TotalPages)

	products, _ = listProducts(t, db, "?page=2&limit=3")
	assert.Len(t, products, 1)
}

func TestFilterByCategorySubstring(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	products, _ := listProducts(t, db, "?category=cloth")
	assert.ElementsMatch(t, []string{"Denim Jacket", "Wool Socks"}, names(products))
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	products, _ := listProducts(t, db, "?search=WIRELESS")
	require.Len(t, products, 1)
	assert.Equal(t, "Wireless Headphones", products[0].Name)
}

func TestPriceRangeAndStockFilters(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	products, _ := listProducts(t, db, "?min_price=50&max_price=100")
	assert.ElementsMatch(t, []string{"Wireless Headphones", "Denim Jacket"}, names(products))

	products, _ = listProducts(t, db, "?brand=soundry&in_stock=true")
	assert.ElementsMatch(t, []string{"Wireless Headphones"}, names(products))

	products, _ = listProducts(t, db, "?featured=true")
	assert.ElementsMatch(t, []string{"Wireless Headphones"}, names(products))

	products, _ = listProducts(t, db, "?rating=4.1")
	assert.ElementsMatch(t, []string{"Wireless Headphones", "Denim Jacket"}, names(products))
}

func TestSortOrders(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	products, _ := listProducts(t, db, "?sort=price-asc")
	assert.Equal(t, "Wool Socks", products[0].Name)

	products, _ = listProducts(t, db, "?sort=price-desc")
	assert.Equal(t, "Wireless Headphones", products[0].Name)

	products, _ = listProducts(t, db, "?sort=popular")
	assert.Equal(t, "Denim Jacket", products[0].Name)
}

func TestMalformedNumericParamsSilentlyCoerced(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	// Junk page/limit/min_price fall back to defaults instead of erroring.
	products, pagination := listProducts(t, db, "?page=banana&limit=-3&min_price=cheap")
	assert.Len(t, products, 4)
	assert.Equal(t, 1, pagination.Page)
}

func TestGetProductByIDOrSlug(t *testing.T) {
	db := setupTestDB(t)
	seedCatalog(t, db)

	var product models.Product
	require.NoError(t, db.First(&product).Error)

	for _, key := range []string{fmt.Sprint(product.ID), product.Slug} {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/api/products/"+key, nil)
		c.Params = gin.Params{{Key: "id", Value: key}}

		GetProductByID(db)(c)
		assert.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/products/no-such-slug", nil)
	c.Params = gin.Params{{Key: "id", Value: "no-such-slug"}}
	GetProductByID(db)(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSeedCategoriesIsIdempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, SeedCategories(db))
	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(len(defaultCategories)), count)

	// A second boot does not duplicate the defaults.
	require.NoError(t, SeedCategories(db))
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	assert.Equal(t, int64(len(defaultCategories)), count)
}
