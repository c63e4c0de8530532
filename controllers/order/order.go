package ordercontroller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopora/storefront-api/middleware"
	"github.com/shopora/storefront-api/models"
	"github.com/shopora/storefront-api/pricing"
	"github.com/shopora/storefront-api/utils"
)

// -------- Request Structs --------

type PlaceOrderInput struct {
	ShippingAddress models.Address  `json:"shipping_address" binding:"required"`
	BillingAddress  *models.Address `json:"billing_address"`
	PaymentMethod   string          `json:"payment_method" binding:"required"` // e.g. "card", "cod"
}

type UpdateStatusInput struct {
	Status         string `json:"status" binding:"required"`
	TrackingNumber string `json:"tracking_number"`
}

type UpdatePaymentStatusInput struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

var errInsufficientStock = errors.New("insufficient stock")

// generateOrderNumber yields e.g. 20250908130500-9f1b2c… — sortable and unique.
func generateOrderNumber() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()[:8]
}

// PlaceOrder snapshots the caller's cart into an order. The whole sequence —
// stock decrement, order insert, cart clear — runs in one transaction, and
// each decrement is conditional (stock >= qty), so a failing line rolls back
// every earlier one and oversell between concurrent checkouts cannot happen.
func PlaceOrder(db *gorm.DB, userID uint, input PlaceOrderInput) (models.Order, error) {
	var cart models.Cart
	if err := db.Preload("Items.Product.Variants").Preload("Items.Variant").
		Where("user_id = ?", userID).First(&cart).Error; err != nil {
		return models.Order{}, errors.New("cart is empty")
	}
	if len(cart.Items) == 0 {
		return models.Order{}, errors.New("cart is empty")
	}

	billing := input.ShippingAddress
	if input.BillingAddress != nil {
		billing = *input.BillingAddress
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var orderItems []models.OrderItem

		for _, item := range cart.Items {
			if item.Product == nil {
				return fmt.Errorf("product %d no longer exists", item.ProductID)
			}

			// Conditional decrement; zero rows affected means the live stock
			// check failed and the transaction rolls back.
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return fmt.Errorf("%w for %s", errInsufficientStock, item.Product.Name)
			}

			snapshot := models.OrderItem{
				ProductID:   item.ProductID,
				ProductName: item.Product.Name,
				UnitPrice:   pricing.UnitPrice(item.Product, item.Variant),
				Quantity:    item.Quantity,
			}
			if len(item.Product.Images) > 0 {
				snapshot.ProductImage = item.Product.Images[0]
			}
			if item.Variant != nil {
				snapshot.VariantID = item.VariantID
				snapshot.VariantName = item.Variant.Name
				snapshot.VariantValue = item.Variant.Value
			}
			orderItems = append(orderItems, snapshot)
		}

		totals := pricing.OrderTotals(orderItems, 0)
		estimated := time.Now().Add(7 * 24 * time.Hour)

		order = models.Order{
			OrderNumber:       generateOrderNumber(),
			UserID:            userID,
			Items:             orderItems,
			ShippingAddress:   input.ShippingAddress,
			BillingAddress:    billing,
			PaymentMethod:     input.PaymentMethod,
			PaymentStatus:     models.PaymentStatusPending,
			Status:            models.OrderStatusPending,
			Subtotal:          totals.Subtotal,
			Discount:          totals.Discount,
			Shipping:          totals.Shipping,
			Tax:               totals.Tax,
			Total:             totals.Total,
			EstimatedDelivery: &estimated,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Checkout empties the cart.
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	return order, err
}

// restoreStock adds each item's quantity back, exactly reversing the
// decrement applied at creation.
func restoreStock(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		if err := tx.Model(&models.Product{}).
			Where("id = ?", item.ProductID).
			UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
			return err
		}
	}
	return nil
}

// -------- Handlers --------

// POST /api/orders
func PlaceOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)

		var input PlaceOrderInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.ValidationError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}

		order, err := PlaceOrder(db, caller.ID, input)
		if err != nil {
			utils.Error(c, http.StatusBadRequest, err.Error())
			return
		}

		broadcastOrderEvent("order.created", order)
		utils.OK(c, http.StatusCreated, order)
	}
}

// GET /api/orders — role-scoped listing: users see their own orders,
// merchants see orders containing their products, admins see everything.
func ListOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)

		page := utils.IntQuery(c.Query("page"), 1)
		if page < 1 {
			page = 1
		}
		limit := utils.IntQuery(c.Query("limit"), 20)
		if limit < 1 || limit > 100 {
			limit = 20
		}

		query := db.Model(&models.Order{}).
			Preload("Items.Product").
			Order("created_at DESC")

		switch caller.Role {
		case models.RoleAdmin:
			query = query.Preload("User")
		case models.RoleMerchant:
			sub := db.Model(&models.OrderItem{}).
				Select("order_items.order_id").
				Joins("JOIN products ON products.id = order_items.product_id").
				Where("products.merchant_id = ?", caller.ID)
			query = query.Where("orders.id IN (?)", sub)
		default:
			query = query.Where("user_id = ?", caller.ID)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to count orders")
			return
		}

		var orders []models.Order
		if err := query.Limit(limit).Offset((page - 1) * limit).Find(&orders).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to fetch orders")
			return
		}

		utils.Paginated(c, http.StatusOK, orders, utils.NewPagination(page, limit, total))
	}
}

// GET /api/orders/:id — by numeric ID or order number.
func GetOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)

		order, ok := loadOrder(c, db)
		if !ok {
			return
		}

		switch caller.Role {
		case models.RoleAdmin:
		case models.RoleMerchant:
			if order.UserID != caller.ID && !order.ContainsMerchantProduct(caller.ID) {
				utils.Error(c, http.StatusForbidden, "Not your order")
				return
			}
		default:
			if order.UserID != caller.ID {
				utils.Error(c, http.StatusForbidden, "Not your order")
				return
			}
		}

		utils.OK(c, http.StatusOK, order)
	}
}

// PUT /api/orders/:id/cancel — self-service cancellation, pending orders only.
func CancelOrder(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)

		order, ok := loadOrder(c, db)
		if !ok {
			return
		}
		if order.UserID != caller.ID && caller.Role != models.RoleAdmin {
			utils.Error(c, http.StatusForbidden, "Not your order")
			return
		}
		if order.Status != models.OrderStatusPending {
			utils.Error(c, http.StatusBadRequest, "Only pending orders can be cancelled")
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := restoreStock(tx, order.Items); err != nil {
				return err
			}
			return tx.Model(&order).Update("status", models.OrderStatusCancelled).Error
		})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to cancel order")
			return
		}

		order.Status = models.OrderStatusCancelled
		broadcastOrderEvent("order.cancelled", order)
		utils.OK(c, http.StatusOK, order)
	}
}

// PUT /api/orders/:id/status — admin or owning merchant; transitions are
// restricted to the adjacency table in models. Entering cancelled restores
// stock.
func UpdateOrderStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, _ := middleware.CurrentUser(c)

		var input UpdateStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.ValidationError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}
		if !models.ValidOrderStatus(input.Status) {
			utils.Error(c, http.StatusBadRequest, "Invalid order status")
			return
		}
		newStatus := models.OrderStatus(input.Status)

		order, ok := loadOrder(c, db)
		if !ok {
			return
		}

		if caller.Role == models.RoleMerchant && !order.ContainsMerchantProduct(caller.ID) {
			utils.Error(c, http.StatusForbidden, "Order contains none of your products")
			return
		}

		if !models.CanTransition(order.Status, newStatus) {
			utils.Error(c, http.StatusBadRequest,
				fmt.Sprintf("Cannot change status from %s to %s", order.Status, newStatus))
			return
		}

		updates := map[string]interface{}{"status": newStatus}
		if input.TrackingNumber != "" {
			updates["tracking_number"] = input.TrackingNumber
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if newStatus == models.OrderStatusCancelled {
				if err := restoreStock(tx, order.Items); err != nil {
					return err
				}
			}
			return tx.Model(&order).Updates(updates).Error
		})
		if err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to update order status")
			return
		}

		order.Status = newStatus
		if input.TrackingNumber != "" {
			order.TrackingNumber = input.TrackingNumber
		}
		broadcastOrderEvent("order.status", order)
		utils.OK(c, http.StatusOK, order)
	}
}

// PUT /api/orders/:id/payment-status — admin only.
func UpdatePaymentStatus(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdatePaymentStatusInput
		if err := c.ShouldBindJSON(&input); err != nil {
			utils.ValidationError(c, http.StatusBadRequest, "Invalid input", err.Error())
			return
		}
		if !models.ValidPaymentStatus(input.PaymentStatus) {
			utils.Error(c, http.StatusBadRequest, "Invalid payment status")
			return
		}

		order, ok := loadOrder(c, db)
		if !ok {
			return
		}
		if err := db.Model(&order).Update("payment_status", models.PaymentStatus(input.PaymentStatus)).Error; err != nil {
			utils.Error(c, http.StatusInternalServerError, "Failed to update payment status")
			return
		}

		order.PaymentStatus = models.PaymentStatus(input.PaymentStatus)
		utils.OK(c, http.StatusOK, order)
	}
}

// loadOrder resolves :id as numeric ID or order number, with items and
// products preloaded for authorization scans. Writes the 404 itself.
func loadOrder(c *gin.Context, db *gorm.DB) (models.Order, bool) {
	idParam := c.Param("id")

	query := db.Preload("Items.Product").Preload("User")

	var order models.Order
	var err error
	if id, convErr := strconv.ParseUint(idParam, 10, 64); convErr == nil {
		err = query.First(&order, uint(id)).Error
	} else {
		err = query.Where("order_number = ?", idParam).First(&order).Error
	}
	if err != nil {
		utils.Error(c, http.StatusNotFound, "Order not found")
		return models.Order{}, false
	}
	return order, true
}
