package reviewcontroller

import (
	"bytes"
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

	"github.com/shopora/storefront-api/middleware"
	"github.com/shopora/storefront-api/models"
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
		&models.Review{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, role models.Role) models.User {
	t.Helper()
	user := models.User{Name: "Reviewer", Email: uuid.NewString() + "@example.com", Password: "hashed", Role: role}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedProduct(t *testing.T, db *gorm.DB) models.Product {
	t.Helper()
	product := models.Product{Name: "Gadget", Slug: "gadget-" + uuid.NewString(), Price: 10}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func invoke(t *testing.T, handler gin.HandlerFunc, user models.User, body interface{}, params gin.Params) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	c.Request = httptest.NewRequest(http.MethodPost, "/", &buf)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	c.Set(middleware.ContextUser, user)
	c.Set(middleware.ContextUserID, user.ID)

	handler(c)
	return w
}

func productRating(t *testing.T, db *gorm.DB, id uint) (float64, int) {
	t.Helper()
	var product models.Product
	require.NoError(t, db.First(&product, id).Error)
	return product.Rating, product.ReviewCount
}

func TestCreateReviewRecomputesRating(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db)
	alice := seedUser(t, db, models.RoleUser)
	bob := seedUser(t, db, models.RoleUser)
	params := gin.Params{{Key: "id", Value: fmt.Sprint(product.ID)}}

	w := invoke(t, CreateReview(db), alice, ReviewInput{Rating: 4, Comment: "solid"}, params)
	require.Equal(t, http.StatusCreated, w.Code)

	rating, count := productRating(t, db, product.ID)
	assert.Equal(t, 4.0, rating)
	assert.Equal(t, 1, count)

	w = invoke(t, CreateReview(db), bob, ReviewInput{Rating: 5}, params)
	require.Equal(t, http.StatusCreated, w.Code)

	rating, count = productRating(t, db, product.ID)
	assert.Equal(t, 4.5, rating) // mean rounded to 1 decimal
	assert.Equal(t, 2, count)
}

func TestDuplicateReviewRejected(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db)
	alice := seedUser(t, db, models.RoleUser)
	params := gin.Params{{Key: "id", Value: fmt.Sprint(product.ID)}}

	w := invoke(t, CreateReview(db), alice, ReviewInput{Rating: 4}, params)
	require.Equal(t, http.StatusCreated, w.Code)

	w = invoke(t, CreateReview(db), alice, ReviewInput{Rating: 2}, params)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var reviews int64
	require.NoError(t, db.Model(&models.Review{}).Count(&reviews).Error)
	assert.Equal(t, int64(1), reviews)
}

func TestDeleteOnlyReviewResetsRating(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db)
	alice := seedUser(t, db, models.RoleUser)

	w := invoke(t, CreateReview(db), alice, ReviewInput{Rating: 3},
		gin.Params{{Key: "id", Value: fmt.Sprint(product.ID)}})
	require.Equal(t, http.StatusCreated, w.Code)

	var review models.Review
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&review).Error)

	w = invoke(t, DeleteReview(db), alice, nil, gin.Params{{Key: "id", Value: fmt.Sprint(review.ID)}})
	require.Equal(t, http.StatusOK, w.Code)

	rating, count := productRating(t, db, product.ID)
	assert.Equal(t, 0.0, rating)
	assert.Equal(t, 0, count)
}

func TestUpdateReviewRecomputesAndChecksAuthor(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db)
	alice := seedUser(t, db, models.RoleUser)
	mallory := seedUser(t, db, models.RoleUser)

	w := invoke(t, CreateReview(db), alice, ReviewInput{Rating: 2},
		gin.Params{{Key: "id", Value: fmt.Sprint(product.ID)}})
	require.Equal(t, http.StatusCreated, w.Code)

	var review models.Review
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&review).Error)
	params := gin.Params{{Key: "id", Value: fmt.Sprint(review.ID)}}

	w = invoke(t, UpdateReview(db), mallory, ReviewInput{Rating: 5}, params)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = invoke(t, UpdateReview(db), alice, ReviewInput{Rating: 5}, params)
	require.Equal(t, http.StatusOK, w.Code)

	rating, _ := productRating(t, db, product.ID)
	assert.Equal(t, 5.0, rating)
}

func TestAdminMayDeleteAnyReview(t *testing.T) {
	db := setupTestDB(t)
	product := seedProduct(t, db)
	alice := seedUser(t, db, models.RoleUser)
	admin := seedUser(t, db, models.RoleAdmin)

	w := invoke(t, CreateReview(db), alice, ReviewInput{Rating: 1},
		gin.Params{{Key: "id", Value: fmt.Sprint(product.ID)}})
	require.Equal(t, http.StatusCreated, w.Code)

	var review models.Review
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&review).Error)

	w = invoke(t, DeleteReview(db), admin, nil, gin.Params{{Key: "id", Value: fmt.Sprint(review.ID)}})
	assert.Equal(t, http.StatusOK, w.Code)
}
