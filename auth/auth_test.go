package auth

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
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func postJSON(t *testing.T, handler gin.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	c.Request = httptest.NewRequest(http.MethodPost, "/", &buf)
	c.Request.Header.Set("Content-Type", "application/json")

	handler(c)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)

	w := postJSON(t, Register(db), RegisterInput{
		Name:     "Alice",
		Email:    "alice@example.com",
		Password: "hunter22",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope struct {
		Success bool `json:"success"`
		Data    struct {
			Token string      `json:"token"`
			User  models.User `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.NotEmpty(t, envelope.Data.Token)
	assert.Equal(t, models.RoleUser, envelope.Data.User.Role)

	// The stored password is hashed, never the plaintext.
	var stored models.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&stored).Error)
	assert.NotEqual(t, "hunter22", stored.Password)

	w = postJSON(t, Login(db), LoginInput{Email: "alice@example.com", Password: "hunter22"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, Login(db), LoginInput{Email: "alice@example.com", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)

	input := RegisterInput{Name: "Alice", Email: "alice@example.com", Password: "hunter22"}
	w := postJSON(t, Register(db), input)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, Register(db), input)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var users int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	assert.Equal(t, int64(1), users, "no duplicate user row may be created")
}

func TestRegisterMerchantRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)

	w := postJSON(t, Register(db), RegisterInput{
		Name: "Mary", Email: "mary@example.com", Password: "hunter22", Role: "merchant",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var stored models.User
	require.NoError(t, db.Where("email = ?", "mary@example.com").First(&stored).Error)
	assert.Equal(t, models.RoleMerchant, stored.Role)
}

func TestRegisterAdminRoleRejected(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	db := setupTestDB(t)

	w := postJSON(t, Register(db), RegisterInput{
		Name: "Eve", Email: "eve@example.com", Password: "hunter22", Role: "admin",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	db := setupTestDB(t)

	w := postJSON(t, Register(db), RegisterInput{Name: "NoMail", Password: "hunter22"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(t, Register(db), RegisterInput{Name: "Short", Email: "s@example.com", Password: "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
