package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wellkart/pharmacy-api/cart"
	"github.com/wellkart/pharmacy-api/notifications"
)

// Deps carries the non-database collaborators handlers need.
type Deps struct {
	CartStore cart.Store
	Emitter   cart.Emitter
	Mailer    *notifications.Mailer
}

// SetupRoutes is the single entry‐point that wires up storefront, cart,
// order, and admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, deps Deps) {
	// Public storefront routes (no middleware)
	SetupStorefrontRoutes(r, db, deps)

	// Order routes (public checkout + admin management)
	SetupOrderRoutes(r, db, deps)

	// Admin routes (API‐Key‐protected)
	SetupAdminRoutes(r, db)
}
