package cartControllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wellkart/pharmacy-api/cart"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func newCartRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()
	db, mock := newMockDB(t)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	store := cart.NewRedisStore(client, 0)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/cart", GetCart(store, nil))
	r.POST("/cart/items", AddCartItem(db, store, nil))
	r.PUT("/cart/items/:product_id", UpdateCartItemQuantity(store, nil))
	r.DELETE("/cart/items/:product_id", DeleteCartItem(store, nil))
	r.DELETE("/cart", ClearCart(store, nil))

	return r, mock, mr
}

func productRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "slug", "sku", "price", "currency", "stock", "active",
	}).AddRow(1, "Vitamin C 500mg", "vitamin-c-500", "VITC-500", "9.50", "USD", 12, true)
}

func addItem(t *testing.T, r *gin.Engine, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items?cart_id=shopper-1", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAddCartItem_SnapshotsProductAndPersists(t *testing.T) {
	r, mock, mr := newCartRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnRows(productRow())

	w := addItem(t, r, `{"product_id":1,"quantity":2}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var snap cart.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, "Vitamin C 500mg", snap.Lines[0].Product.Name)
	assert.Equal(t, 2, snap.Lines[0].Quantity)
	assert.Equal(t, "19", snap.Total.String())

	assert.True(t, mr.Exists("cart:shopper-1"), "cart persisted under the shopper key")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAddCartItem_UnknownProductIs400(t *testing.T) {
	r, mock, _ := newCartRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnError(gorm.ErrRecordNotFound)

	w := addItem(t, r, `{"product_id":999,"quantity":1}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Product does not exist")
}

func TestAddCartItem_MissingCartIDIs400(t *testing.T) {
	r, _, _ := newCartRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cart/items", bytes.NewReader([]byte(`{"product_id":1,"quantity":1}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cart_id is required")
}

func TestCartLifecycleAcrossRequests(t *testing.T) {
	r, mock, _ := newCartRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnRows(productRow())
	require.Equal(t, http.StatusCreated, addItem(t, r, `{"product_id":1,"quantity":2}`).Code)

	// A later request reconstructs the cart from the store.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart?cart_id=shopper-1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var snap cart.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 2, snap.ItemCount)

	// Updating the quantity to zero removes the line.
	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/cart/items/1?cart_id=shopper-1", bytes.NewReader([]byte(`{"quantity":0}`)))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Empty(t, snap.Lines)
}

func TestDeleteCartItem_AbsentIs404(t *testing.T) {
	r, _, _ := newCartRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/cart/items/5?cart_id=shopper-2", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearCart(t *testing.T) {
	r, mock, _ := newCartRouter(t)

	mock.ExpectQuery(`SELECT \* FROM "products"`).WillReturnRows(productRow())
	require.Equal(t, http.StatusCreated, addItem(t, r, `{"product_id":1,"quantity":3}`).Code)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/cart?cart_id=shopper-1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/cart?cart_id=shopper-1", nil))
	var snap cart.Snapshot
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Empty(t, snap.Lines)
	assert.Equal(t, 0, snap.ItemCount)
}
