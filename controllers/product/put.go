package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wellkart/pharmacy-api/models"
)

type UpdateProductInput struct {
	Name                 *string          `json:"name"`
	Slug                 *string          `json:"slug"`
	SKU                  *string          `json:"sku"`
	Description          *string          `json:"description"`
	Price                *decimal.Decimal `json:"price"`
	RegularPrice         *decimal.Decimal `json:"regular_price"`
	Currency             *string          `json:"currency"`
	BrandID              *uint            `json:"brand_id"`
	CategoryIDs          []uint           `json:"category_ids"`
	Stock                *int             `json:"stock"`
	RequiresPrescription *bool            `json:"requires_prescription"`
	Active               *bool            `json:"active"`
	Image                *string          `json:"image"`
}

// UpdateProduct updates an existing product by ID. Only supplied fields
// change.
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param("id")
		id, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.Preload("Categories").First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != nil {
			product.Name = *input.Name
		}
		if input.Slug != nil {
			product.Slug = *input.Slug
		}
		if input.SKU != nil {
			product.SKU = *input.SKU
		}
		if input.Description != nil {
			product.Description = *input.Description
		}
		if input.Price != nil {
			if input.Price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"error": "price cannot be negative"})
				return
			}
			product.Price = *input.Price
		}
		if input.RegularPrice != nil {
			product.RegularPrice = *input.RegularPrice
		}
		if input.Currency != nil {
			product.Currency = *input.Currency
		}
		if input.BrandID != nil {
			var brand models.Brand
			if err := db.First(&brand, *input.BrandID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Brand does not exist"})
				return
			}
			product.BrandID = input.BrandID
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}
		if input.RequiresPrescription != nil {
			product.RequiresPrescription = *input.RequiresPrescription
		}
		if input.Active != nil {
			product.Active = *input.Active
		}
		if input.Image != nil {
			product.Image = *input.Image
		}

		// Replace categories if provided
		if len(input.CategoryIDs) > 0 {
			if err := db.Model(&product).Association("Categories").Clear(); err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update categories"})
				return
			}
			var categories []models.Category
			if err := db.Where("id IN ?", input.CategoryIDs).Find(&categories).Error; err == nil {
				product.Categories = categories
			}
		}

		if err := db.Save(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}

		c.JSON(http.StatusOK, product)
	}
}
