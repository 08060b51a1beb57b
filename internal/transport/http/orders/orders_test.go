package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/corray333/ecommerce-api/internal/service/models/order"
	"github.com/corray333/ecommerce-api/internal/service/models/orderitem"
	"github.com/corray333/ecommerce-api/internal/service/services/ordersvc"
	"github.com/corray333/ecommerce-api/pkg/http/middleware/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubService implements the service interface for handler tests.
type stubService struct {
	placeOrderID  int64
	placeOrderErr error
	summaries     []order.Summary
	getSummary    order.Summary
	getErr        error

	gotUserID int64
	gotItems  []orderitem.OrderItem
}

func (s *stubService) PlaceOrder(_ context.Context, userID int64, items []orderitem.OrderItem) (int64, error) {
	s.gotUserID = userID
	s.gotItems = items

	return s.placeOrderID, s.placeOrderErr
}

func (s *stubService) ListOrders(_ context.Context, userID int64) ([]order.Summary, error) {
	s.gotUserID = userID

	return s.summaries, nil
}

func (s *stubService) GetOrder(_ context.Context, userID, _ int64) (order.Summary, error) {
	s.gotUserID = userID

	return s.getSummary, s.getErr
}

func placeOrder(t *testing.T, svc *stubService, body string, authenticated bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/orders/create/", strings.NewReader(body))
	if authenticated {
		req = req.WithContext(auth.WithUserID(req.Context(), 7))
	}
	w := httptest.NewRecorder()

	PlaceOrder(w, req, svc)

	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))

	return body
}

func TestPlaceOrder_Created(t *testing.T) {
	svc := &stubService{placeOrderID: 12}

	w := placeOrder(t, svc, `{"items":[{"product_id":1,"quantity":2}]}`, true)

	assert.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Order placed successfully", body["message"])
	assert.Equal(t, float64(12), body["order_id"])
	assert.Equal(t, int64(7), svc.gotUserID)
	require.Len(t, svc.gotItems, 1)
	assert.Equal(t, int64(1), svc.gotItems[0].ProductID)
	assert.Equal(t, 2, svc.gotItems[0].Quantity)
}

func TestPlaceOrder_Unauthorized(t *testing.T) {
	w := placeOrder(t, &stubService{}, `{"items":[{"product_id":1,"quantity":1}]}`, false)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPlaceOrder_InvalidBody(t *testing.T) {
	w := placeOrder(t, &stubService{}, `not json`, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrder_ValidationRejectsBadItems(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no items", `{"items":[]}`},
		{"zero quantity", `{"items":[{"product_id":1,"quantity":0}]}`},
		{"negative product id", `{"items":[{"product_id":-1,"quantity":1}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &stubService{}

			w := placeOrder(t, svc, tt.body, true)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, svc.gotItems)
		})
	}
}

func TestPlaceOrder_ProductNotFound(t *testing.T) {
	svc := &stubService{placeOrderErr: &ordersvc.ProductNotFoundError{ProductID: 42}}

	w := placeOrder(t, svc, `{"items":[{"product_id":42,"quantity":1}]}`, true)

	assert.Equal(t, http.StatusNotFound, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(42), body["product_id"])
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	svc := &stubService{placeOrderErr: &ordersvc.InsufficientStockError{
		ProductID: 1,
		Available: 3,
		Requested: 5,
	}}

	w := placeOrder(t, svc, `{"items":[{"product_id":1,"quantity":5}]}`, true)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(1), body["product_id"])
	assert.Equal(t, float64(3), body["available"])
	assert.Equal(t, float64(5), body["requested"])
}

func TestPlaceOrder_InternalError(t *testing.T) {
	svc := &stubService{placeOrderErr: ordersvc.ErrTransactionFailure}

	w := placeOrder(t, svc, `{"items":[{"product_id":1,"quantity":1}]}`, true)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetOrder_NotFound(t *testing.T) {
	svc := &stubService{getErr: ordersvc.ErrOrderNotFound}

	router := chi.NewRouter()
	router.Get("/orders/{order_id}/", func(w http.ResponseWriter, r *http.Request) {
		GetOrder(w, r, svc)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/99/", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 7))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetOrder_InvalidID(t *testing.T) {
	svc := &stubService{}

	router := chi.NewRouter()
	router.Get("/orders/{order_id}/", func(w http.ResponseWriter, r *http.Request) {
		GetOrder(w, r, svc)
	})

	req := httptest.NewRequest(http.MethodGet, "/orders/abc/", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 7))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListOrders_UsesContextUser(t *testing.T) {
	svc := &stubService{summaries: []order.Summary{{OrderID: 1, Status: order.StatusCompleted}}}

	req := httptest.NewRequest(http.MethodGet, "/orders/list/", nil)
	req = req.WithContext(auth.WithUserID(req.Context(), 7))
	w := httptest.NewRecorder()

	ListOrders(w, req, svc)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), svc.gotUserID)

	var got []order.Summary
	require.NoError(t, json.NewDecoder(w.Body).Decode(&got))
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].OrderID)
}
