package orderControllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wellkart/pharmacy-api/models"
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

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func validRequest() SubmitOrderRequest {
	return SubmitOrderRequest{
		Email:         "jane@example.com",
		FirstName:     "Jane",
		LastName:      "Doe",
		Address:       "12 High Street",
		City:          "Norwich",
		PostalCode:    "NR1 1AA",
		Country:       "GB",
		PaymentMethod: "card",
		Currency:      "USD",
		Items: []SubmitOrderItem{
			{Product: SubmitOrderItemProduct{ID: 1, Name: "Vitamin C", Price: price("10.00")}, Quantity: 2},
			{Product: SubmitOrderItemProduct{ID: 2, Name: "Zinc", Price: price("5.00")}, Quantity: 1},
			{Product: SubmitOrderItemProduct{ID: 3, Name: "Lip Balm", Price: price("2.00")}, Quantity: 3},
		},
	}
}

func TestSubmitOrder_CommitsHeaderAndItems(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).AddRow(3))
	mock.ExpectCommit()

	order, err := SubmitOrder(db, validRequest())
	require.NoError(t, err)
	require.NotNil(t, order)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.NotEmpty(t, order.OrderRef)
	assert.True(t, order.TotalAmount.Equal(price("31.00")), "total = %s", order.TotalAmount)

	require.Len(t, order.Items, 3)
	assert.True(t, order.Items[0].Total.Equal(price("20.00")))
	assert.True(t, order.Items[1].Total.Equal(price("5.00")))
	assert.True(t, order.Items[2].Total.Equal(price("6.00")))

	// Billing mirrors shipping
	assert.Equal(t, order.ShippingAddress, order.BillingAddress)

	// Strict expectations double as proof that item prices were taken from
	// the submitted lines, never re-fetched from the catalog.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitOrder_RollsBackWhenItemInsertFails(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	order, err := SubmitOrder(db, validRequest())
	require.Error(t, err)
	assert.Nil(t, order)

	var verr *ValidationError
	assert.False(t, errors.As(err, &verr), "storage failures are not validation errors")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitOrder_EmptyItemsShortCircuits(t *testing.T) {
	db, mock := newMockDB(t)

	req := validRequest()
	req.Items = nil

	order, err := SubmitOrder(db, req)
	assert.Nil(t, order)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items", verr.Field)

	// Zero storage writes
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitOrder_MissingEmailShortCircuits(t *testing.T) {
	db, mock := newMockDB(t)

	req := validRequest()
	req.Email = ""

	order, err := SubmitOrder(db, req)
	assert.Nil(t, order)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "email", verr.Field)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitOrder_SuppliedTotalOverrides(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).AddRow(3))
	mock.ExpectCommit()

	req := validRequest()
	req.Total = price("29.50") // e.g. a discount applied upstream

	order, err := SubmitOrder(db, req)
	require.NoError(t, err)
	assert.True(t, order.TotalAmount.Equal(price("29.50")))

	// Line items keep their frozen unit prices regardless of the override.
	assert.True(t, order.Items[0].Price.Equal(price("10.00")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitOrder_OrderJSONUsesStringMoney(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).AddRow(3))
	mock.ExpectCommit()

	order, err := SubmitOrder(db, validRequest())
	require.NoError(t, err)

	data, err := json.Marshal(order)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"total_amount":"31"`)
}

// -------- Handler --------

func placeOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/orders/place", PlaceOrderHandler(db, nil))
	return r
}

func TestPlaceOrderHandler_ValidationFailureIs400(t *testing.T) {
	db, mock := newMockDB(t)
	r := placeOrderRouter(db)

	req := validRequest()
	req.Items = nil
	body, _ := json.Marshal(req)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders/place", bytes.NewReader(body)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cart is empty")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderHandler_MalformedBodyIs400(t *testing.T) {
	db, _ := newMockDB(t)
	r := placeOrderRouter(db)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders/place", bytes.NewReader([]byte("{nope"))))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderHandler_StorageFailureIs500(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnError(errors.New("db down"))
	mock.ExpectRollback()

	r := placeOrderRouter(db)
	body, _ := json.Marshal(validRequest())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders/place", bytes.NewReader(body)))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to process order, please try again")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPlaceOrderHandler_SuccessIs201(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "orders"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectQuery(`INSERT INTO "order_items"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1).AddRow(2).AddRow(3))
	mock.ExpectCommit()

	r := placeOrderRouter(db)
	body, _ := json.Marshal(validRequest())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/orders/place", bytes.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)

	var got models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, uint(42), got.ID)
	assert.Len(t, got.Items, 3)
	require.NoError(t, mock.ExpectationsWereMet())
}

func adminOrderRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.PUT("/admin/orders/:orderID/status", UpdateOrderStatusHandler(db))
	r.PUT("/admin/orders/:orderID/payment-status", UpdatePaymentStatusHandler(db))
	return r
}

func TestUpdateOrderStatusHandler_UnknownOrderIs404(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	r := adminOrderRouter(db)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/admin/orders/999/status",
		bytes.NewReader([]byte(`{"status":"shipped"}`))))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "order not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateOrderStatusHandler_ExistingOrderIs200(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	r := adminOrderRouter(db)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/admin/orders/42/status",
		bytes.NewReader([]byte(`{"status":"shipped"}`))))

	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePaymentStatusHandler_UnknownOrderIs404(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "orders" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	r := adminOrderRouter(db)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/admin/orders/999/payment-status",
		bytes.NewReader([]byte(`{"payment_status":"paid"}`))))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "order not found")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMapOrderStatus(t *testing.T) {
	got, err := mapOrderStatus("Shipped")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, got)

	_, err = mapOrderStatus("teleported")
	assert.Error(t, err)
}

func TestMapPaymentStatus(t *testing.T) {
	got, err := mapPaymentStatus("REFUNDED")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, got)

	_, err = mapPaymentStatus("iou")
	assert.Error(t, err)
}
