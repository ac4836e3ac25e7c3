package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wellkart/pharmacy-api/models"
)

type CreateProductInput struct {
	Name                 string          `json:"name" binding:"required"`
	Slug                 string          `json:"slug" binding:"required"`
	SKU                  string          `json:"sku"`
	Description          string          `json:"description"`
	Price                decimal.Decimal `json:"price" binding:"required"`
	RegularPrice         decimal.Decimal `json:"regular_price"`
	Currency             string          `json:"currency"`
	BrandID              *uint           `json:"brand_id"`
	CategoryIDs          []uint          `json:"category_ids"`
	Stock                int             `json:"stock"`
	RequiresPrescription bool            `json:"requires_prescription"`
	Image                string          `json:"image"`
}

// CreateProduct creates a new product with its brand and categories.
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CreateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "price cannot be negative"})
			return
		}

		if input.BrandID != nil {
			var brand models.Brand
			if err := db.First(&brand, *input.BrandID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Brand does not exist"})
				return
			}
		}

		var categories []models.Category
		if len(input.CategoryIDs) > 0 {
			if err := db.Where("id IN ?", input.CategoryIDs).Find(&categories).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
				return
			}
		}

		currency := input.Currency
		if currency == "" {
			currency = "USD"
		}

		newProduct := models.Product{
			Name:                 input.Name,
			Slug:                 input.Slug,
			SKU:                  input.SKU,
			Description:          input.Description,
			Price:                input.Price,
			RegularPrice:         input.RegularPrice,
			Currency:             currency,
			BrandID:              input.BrandID,
			Categories:           categories,
			Stock:                input.Stock,
			RequiresPrescription: input.RequiresPrescription,
			Active:               true,
			Image:                input.Image,
		}

		if err := db.Create(&newProduct).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}

		c.JSON(http.StatusCreated, newProduct)
	}
}
