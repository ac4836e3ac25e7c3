package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/wellkart/pharmacy-api/controllers/cart"
	productcontroller "github.com/wellkart/pharmacy-api/controllers/product"
)

// SetupStorefrontRoutes registers the public catalog and cart endpoints.
func SetupStorefrontRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	// ──────────────── Browse Catalog ────────────────
	r.GET("/products", productcontroller.GetProducts(db))
	r.GET("/products/:id", productcontroller.GetProductByID(db))
	r.GET("/categories", productcontroller.GetAllCategoriesWithProducts(db))
	r.GET("/categories/:id", productcontroller.GetCategoryByID(db))
	r.GET("/brands", productcontroller.GetAllBrands(db))
	r.GET("/brands/:id", productcontroller.GetBrandByID(db))

	// ──────────────── Shopping Cart ────────────────
	cartGroup := r.Group("/cart")
	{
		cartGroup.GET("", cartControllers.GetCart(deps.CartStore, deps.Emitter))
		cartGroup.POST("/items", cartControllers.AddCartItem(db, deps.CartStore, deps.Emitter))
		cartGroup.PUT("/items/:product_id", cartControllers.UpdateCartItemQuantity(deps.CartStore, deps.Emitter))
		cartGroup.DELETE("/items/:product_id", cartControllers.DeleteCartItem(deps.CartStore, deps.Emitter))
		cartGroup.DELETE("", cartControllers.ClearCart(deps.CartStore, deps.Emitter))
		cartGroup.POST("/begin-checkout", cartControllers.BeginCheckout(deps.CartStore, deps.Emitter))
	}
}
