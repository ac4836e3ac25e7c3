package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wellkart/pharmacy-api/models"
)

type BrandInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
}

func CreateBrand(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input BrandInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.Name == "" || input.Slug == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name and slug are required"})
			return
		}

		brand := models.Brand{
			Name:        input.Name,
			Slug:        input.Slug,
			Description: input.Description,
			Logo:        input.Logo,
		}

		if err := db.Create(&brand).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create brand"})
			return
		}

		c.JSON(http.StatusCreated, brand)
	}
}

func GetAllBrands(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var brands []models.Brand
		if err := db.Find(&brands).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brands"})
			return
		}
		c.JSON(http.StatusOK, brands)
	}
}

func GetBrandByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var brand models.Brand
		if err := db.Preload("Products").First(&brand, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
			return
		}

		c.JSON(http.StatusOK, brand)
	}
}

func UpdateBrand(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var brand models.Brand
		if err := db.First(&brand, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
			return
		}

		var input BrandInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		if input.Name != "" {
			brand.Name = input.Name
		}
		if input.Slug != "" {
			brand.Slug = input.Slug
		}
		if input.Description != "" {
			brand.Description = input.Description
		}
		if input.Logo != "" {
			brand.Logo = input.Logo
		}

		if err := db.Save(&brand).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update brand"})
			return
		}

		c.JSON(http.StatusOK, brand)
	}
}

func DeleteBrand(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var brand models.Brand
		if err := db.Preload("Products").First(&brand, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
			return
		}
		if len(brand.Products) > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "Brand still has products"})
			return
		}

		if err := db.Delete(&brand).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete brand"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Brand deleted successfully"})
	}
}
