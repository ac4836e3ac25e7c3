package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID                   uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                 string          `gorm:"not null" json:"name"`
	Slug                 string          `gorm:"uniqueIndex" json:"slug"`
	SKU                  string          `gorm:"uniqueIndex" json:"sku"`
	Description          string          `json:"description"`
	Price                decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"` // Current sale price
	RegularPrice         decimal.Decimal `gorm:"type:numeric(12,2)" json:"regular_price"`
	Currency             string          `gorm:"type:VARCHAR(3);default:'USD'" json:"currency"`
	BrandID              *uint           `json:"brand_id"`
	Brand                *Brand          `json:"brand,omitempty"`
	Categories           []Category      `gorm:"many2many:product_categories;" json:"categories,omitempty"`
	Stock                int             `json:"stock"`
	RequiresPrescription bool            `json:"requires_prescription"`
	Active               bool            `gorm:"default:true" json:"active"`
	Image                string          `json:"image"`
	CreatedAt            time.Time       `json:"created_at"`
	UpdatedAt            time.Time       `json:"updated_at"`
	DeletedAt            gorm.DeletedAt  `gorm:"index" json:"-"`
}
