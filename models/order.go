package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentStatus string

const (
	// Order statuses (typical e-commerce flow)
	OrderStatusPending    OrderStatus = "pending"    // Order placed, awaiting processing
	OrderStatusProcessing OrderStatus = "processing" // Being prepared by the pharmacy
	OrderStatusShipped    OrderStatus = "shipped"    // Out for delivery
	OrderStatusCompleted  OrderStatus = "completed"  // Customer received the order
	OrderStatusCancelled  OrderStatus = "cancelled"  // Cancelled before shipping

	// Payment statuses
	PaymentStatusPending  PaymentStatus = "pending"  // Payment not completed yet
	PaymentStatusPaid     PaymentStatus = "paid"     // Payment completed successfully
	PaymentStatusFailed   PaymentStatus = "failed"   // Payment attempt failed
	PaymentStatusRefunded PaymentStatus = "refunded" // Money returned to customer
)

type Order struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderRef        string          `gorm:"uniqueIndex;not null" json:"order_ref"`
	Email           string          `gorm:"not null" json:"email"`
	FirstName       string          `json:"first_name"`
	LastName        string          `json:"last_name"`
	Phone           string          `json:"phone"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(12,2)" json:"total_amount"`
	Currency        string          `gorm:"type:VARCHAR(3);default:'USD'" json:"currency"`
	ShippingAddress Address         `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	BillingAddress  Address         `gorm:"embedded;embeddedPrefix:billing_" json:"billing_address"`
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentStatus   PaymentStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaymentMethod   string          `json:"payment_method"` // e.g. "card", "cod"
	Notes           string          `json:"notes"`
	CreatedAt       time.Time       `json:"created_at"`
}

// Address is embedded twice on Order (shipping and billing prefixes).
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// OrderItem freezes the unit price at purchase time; later catalog price
// changes never touch these rows.
type OrderItem struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	OrderID     uint            `gorm:"index" json:"order_id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"product_name"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2)" json:"price"`
	Quantity    int             `json:"quantity"`
	Total       decimal.Decimal `gorm:"type:numeric(12,2)" json:"total"`
}
