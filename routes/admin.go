package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	productcontroller "github.com/wellkart/pharmacy-api/controllers/product"
	"github.com/wellkart/pharmacy-api/middleware"
)

// SetupAdminRoutes registers all “/admin/*” catalog endpoints. Requires
// API‐Key middleware.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		// ─────────── Product Management ───────────
		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.POST("", productcontroller.CreateProduct(db))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(db))
			productAdmin.GET("", productcontroller.GetProducts(db))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(db))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(db))
		}

		// ─────────── Category Management ───────────
		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.POST("", productcontroller.CreateCategory(db))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(db))
			categoryAdmin.GET("", productcontroller.GetAllCategories(db))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(db))
		}

		// ─────────── Brand Management ───────────
		brandAdmin := adminGroup.Group("/brands")
		{
			brandAdmin.POST("", productcontroller.CreateBrand(db))
			brandAdmin.PUT("/:id", productcontroller.UpdateBrand(db))
			brandAdmin.GET("", productcontroller.GetAllBrands(db))
			brandAdmin.DELETE("/:id", productcontroller.DeleteBrand(db))
		}
	}
}
