package orderControllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wellkart/pharmacy-api/models"
	"github.com/wellkart/pharmacy-api/notifications"
)

// -------- Request Structs --------

type SubmitOrderItemProduct struct {
	ID    uint            `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type SubmitOrderItem struct {
	Product  SubmitOrderItemProduct `json:"product"`
	Quantity int                    `json:"quantity"`
}

type SubmitOrderRequest struct {
	Email         string            `json:"email"`
	FirstName     string            `json:"firstName"`
	LastName      string            `json:"lastName"`
	Address       string            `json:"address"`
	City          string            `json:"city"`
	PostalCode    string            `json:"postalCode"`
	Country       string            `json:"country"`
	Phone         string            `json:"phone"`
	PaymentMethod string            `json:"paymentMethod"`
	Notes         string            `json:"notes"`
	Items         []SubmitOrderItem `json:"items"`
	Total         decimal.Decimal   `json:"total"`
	Currency      string            `json:"currency"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required"`
}

// ValidationError reports a checkout request that cannot become an order.
// No writes happen when one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// -------- Helpers --------

// Map string to OrderStatus
func mapOrderStatus(status string) (models.OrderStatus, error) {
	switch strings.ToLower(status) {
	case string(models.OrderStatusPending):
		return models.OrderStatusPending, nil
	case string(models.OrderStatusProcessing):
		return models.OrderStatusProcessing, nil
	case string(models.OrderStatusShipped):
		return models.OrderStatusShipped, nil
	case string(models.OrderStatusCompleted):
		return models.OrderStatusCompleted, nil
	case string(models.OrderStatusCancelled):
		return models.OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

// Map string to PaymentStatus
func mapPaymentStatus(status string) (models.PaymentStatus, error) {
	switch strings.ToLower(status) {
	case string(models.PaymentStatusPending):
		return models.PaymentStatusPending, nil
	case string(models.PaymentStatusPaid):
		return models.PaymentStatusPaid, nil
	case string(models.PaymentStatusFailed):
		return models.PaymentStatusFailed, nil
	case string(models.PaymentStatusRefunded):
		return models.PaymentStatusRefunded, nil
	default:
		return "", errors.New("invalid payment status")
	}
}

// Generate unique order reference
func generateOrderRef() string {
	// Example: 20250908130500-<uuid4>
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

func validateSubmitOrder(req SubmitOrderRequest) error {
	required := []struct{ field, value string }{
		{"email", req.Email},
		{"firstName", req.FirstName},
		{"lastName", req.LastName},
		{"address", req.Address},
		{"city", req.City},
		{"postalCode", req.PostalCode},
		{"country", req.Country},
		{"paymentMethod", req.PaymentMethod},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ValidationError{Field: r.field, Message: "missing required field: " + r.field}
		}
	}
	if len(req.Items) == 0 {
		return &ValidationError{Field: "items", Message: "cart is empty"}
	}
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return &ValidationError{Field: "items", Message: "item quantity must be at least 1"}
		}
	}
	return nil
}

// -------- Core Logic --------

// SubmitOrder turns a validated checkout request into a durable order.
// The header and all items are committed in a single transaction; on any
// failure nothing is persisted. Item prices come from the submitted cart
// lines, frozen at add-to-cart time, and are never re-fetched from the
// catalog.
func SubmitOrder(db *gorm.DB, req SubmitOrderRequest) (*models.Order, error) {
	if err := validateSubmitOrder(req); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	var orderItems []models.OrderItem
	computed := decimal.Zero
	for _, item := range req.Items {
		lineTotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
		computed = computed.Add(lineTotal)
		orderItems = append(orderItems, models.OrderItem{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Price:       item.Product.Price,
			Quantity:    item.Quantity,
			Total:       lineTotal,
		})
	}

	// The client's total wins when supplied; otherwise recompute.
	total := computed
	if req.Total.IsPositive() {
		total = req.Total
	}

	// No separate billing form exists; billing mirrors shipping.
	address := models.Address{
		Street:     req.Address,
		City:       req.City,
		PostalCode: req.PostalCode,
		Country:    req.Country,
	}

	order := models.Order{
		OrderRef:        generateOrderRef(),
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		Items:           orderItems,
		TotalAmount:     total,
		Currency:        currency,
		ShippingAddress: address,
		BillingAddress:  address,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
		CreatedAt:       time.Now(),
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&order).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// -------- Handlers --------

// Place order (checkout)
func PlaceOrderHandler(db *gorm.DB, mailer *notifications.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SubmitOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		order, err := SubmitOrder(db, req)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process order, please try again"})
			return
		}

		// Post-commit side effects run detached; the shopper's response
		// never waits on them.
		if mailer != nil {
			go mailer.NotifyOrderPlaced(*order)
		}
		broadcastNewOrder(*order)

		c.JSON(http.StatusCreated, order)
	}
}

func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// Get single order by numeric id or order_ref
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("orderID")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}

		var order models.Order
		query := db.Preload("Items")
		if strings.ContainsAny(id, "-abcdefghijklmnopqrstuvwxyz") {
			query = query.Where("order_ref = ?", id)
		} else {
			query = query.Where("id = ?", id)
		}
		if err := query.First(&order).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// Update order status
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		res := db.Model(&models.Order{}).Where("id = ?", orderID).
			Update("status", newStatus)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order status"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully"})
	}
}

// Update payment status
func UpdatePaymentStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		var req UpdatePaymentStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		newStatus, err := mapPaymentStatus(req.PaymentStatus)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		res := db.Model(&models.Order{}).Where("id = ?", orderID).
			Update("payment_status", newStatus)
		if res.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update payment status"})
			return
		}
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment status updated successfully"})
	}
}

// Delete order
func DeleteOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")
		if orderID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "orderID is required"})
			return
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("order_id = ?", orderID).
				Delete(&models.OrderItem{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id = ?", orderID).
				Delete(&models.Order{}).Error; err != nil {
				return err
			}
			return nil
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
