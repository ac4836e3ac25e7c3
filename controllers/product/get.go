package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wellkart/pharmacy-api/models"
)

// GetProductByID returns a single product with its brand and categories.
// URL param: /products/:id (numeric id or slug)
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		idParam := c.Param("id")
		if idParam == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Product ID is required"})
			return
		}

		query := db.Preload("Brand").Preload("Categories")
		if id, err := strconv.Atoi(idParam); err == nil {
			query = query.Where("id = ?", id)
		} else {
			query = query.Where("slug = ?", idParam)
		}

		var product models.Product
		if err := query.First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
