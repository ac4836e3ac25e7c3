package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/wellkart/pharmacy-api/cart"
	"github.com/wellkart/pharmacy-api/models"
)

type CartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateQuantityInput struct {
	Quantity int `json:"quantity"`
}

// loadManager builds a per-request manager bound to the shopper's cart id.
// Every request starts its own manager; the store is the durable state.
func loadManager(c *gin.Context, store cart.Store, emitter cart.Emitter) (*cart.Manager, bool) {
	cartID := c.Query("cart_id")
	if cartID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart_id is required"})
		return nil, false
	}
	m := cart.NewManager(store, cartID, emitter)
	m.Start(c.Request.Context())
	return m, true
}

// POST /cart/items
func AddCartItem(db *gorm.DB, store cart.Store, emitter cart.Emitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, ok := loadManager(c, store, emitter)
		if !ok {
			return
		}

		var input CartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		// Fetch product from DB and snapshot it onto the line
		var product models.Product
		if err := db.Preload("Brand").First(&product, "id = ?", input.ProductID).Error; err != nil {
			status := http.StatusInternalServerError
			errMsg := "Failed to validate product"
			if errors.Is(err, gorm.ErrRecordNotFound) {
				status = http.StatusBadRequest
				errMsg = "Product does not exist"
			}
			c.JSON(status, gin.H{"error": errMsg})
			return
		}

		ref := cart.ProductRef{
			ID:       product.ID,
			Name:     product.Name,
			Price:    product.Price,
			Currency: product.Currency,
			InStock:  product.Stock > 0,
		}
		if product.Brand != nil {
			ref.Brand = product.Brand.Name
		}

		m.AddItem(ref, input.Quantity)
		c.JSON(http.StatusCreated, m.Snapshot())
	}
}

// PUT /cart/items/:product_id
func UpdateCartItemQuantity(store cart.Store, emitter cart.Emitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, ok := loadManager(c, store, emitter)
		if !ok {
			return
		}

		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		var input UpdateQuantityInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		m.UpdateQuantity(uint(productID), input.Quantity)
		c.JSON(http.StatusOK, m.Snapshot())
	}
}

// DELETE /cart/items/:product_id
func DeleteCartItem(store cart.Store, emitter cart.Emitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, ok := loadManager(c, store, emitter)
		if !ok {
			return
		}

		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}

		before := m.Snapshot().ItemCount
		m.RemoveItem(uint(productID))
		after := m.Snapshot()
		if after.ItemCount == before {
			c.JSON(http.StatusNotFound, gin.H{"error": "Cart item not found"})
			return
		}
		c.JSON(http.StatusOK, after)
	}
}

// DELETE /cart
func ClearCart(store cart.Store, emitter cart.Emitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, ok := loadManager(c, store, emitter)
		if !ok {
			return
		}
		m.Clear()
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /cart
func GetCart(store cart.Store, emitter cart.Emitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, ok := loadManager(c, store, emitter)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, m.Snapshot())
	}
}

// POST /cart/begin-checkout
func BeginCheckout(store cart.Store, emitter cart.Emitter) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, ok := loadManager(c, store, emitter)
		if !ok {
			return
		}
		m.TrackCheckoutInitiation()
		c.JSON(http.StatusOK, m.Snapshot())
	}
}
