package admincontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/shopora/storefront-api/models"
	"github.com/shopora/storefront-api/utils"
)

const lowStockThreshold = 5

type storeStats struct {
	Users         int64   `json:"users"`
	Products      int64   `json:"products"`
	Orders        int64   `json:"orders"`
	Reviews       int64   `json:"reviews"`
	PendingOrders int64   `json:"pending_orders"`
	LowStock      int64   `json:"low_stock_products"`
	Revenue       float64 `json:"revenue"` // paid orders only
}

// GET /api/admin/stats
func GetStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var stats storeStats

		counts := []struct {
			model interface{}
			dest  *int64
		}{
			{&models.User{}, &stats.Users},
			{&models.Product{}, &stats.Products},
			{&models.Order{}, &stats.Orders},
			{&models.Review{}, &stats.Reviews},
		}
		for _, c2 := range counts {
			if err := db.Model(c2.model).Count(c2.dest).Error; err != nil {
				utils.Error(c, http.StatusInternalServerError, "Failed to compute stats")
				return
			}
		}

		if err := db.Model(&models.Order{}).
			Where("status = ?", models.OrderStatusPending).
			Count(&stats.PendingOrders).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to compute stats")
			return
		}
		if err := db.Model(&models.Product{}).
			Where("stock < ?", lowStockThreshold).
			Count(&stats.LowStock).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to compute stats")
			return
		}
		if err := db.Model(&models.Order{}).
			Where("payment_status = ?", models.PaymentStatusPaid).
			Select("COALESCE(SUM(total), 0)").
			Scan(&stats.Revenue).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to compute stats")
			return
		}

		utils.OK(c, http.StatusOK, stats)
	}
}
