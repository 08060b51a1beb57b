package ordersvc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/corray333/ecommerce-api/internal/service/models/order"
	"github.com/corray333/ecommerce-api/internal/service/models/orderitem"
	"github.com/corray333/ecommerce-api/internal/service/models/product"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(uow *mockUnitOfWork) *OrderService {
	return MustNewOrderService(
		WithUnitOfWorkFactory(func() unitOfWork { return uow }),
	)
}

func seedProduct(uow *mockUnitOfWork, id int64, name string, price string, stock int) {
	uow.productRepo.products[id] = &product.Product{
		ID:            id,
		Name:          name,
		Price:         decimal.RequireFromString(price),
		StockQuantity: stock,
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	uow := newMockUnitOfWork()
	seedProduct(uow, 1, "Keyboard", "49.90", 10)
	seedProduct(uow, 2, "Mouse", "19.90", 5)
	svc := newTestService(uow)

	orderID, err := svc.PlaceOrder(context.Background(), 7, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 1},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), orderID)
	assert.True(t, uow.committed)
	assert.False(t, uow.rolledBack)

	assert.Equal(t, 8, uow.productRepo.products[1].StockQuantity)
	assert.Equal(t, 4, uow.productRepo.products[2].StockQuantity)

	require.Len(t, uow.orderItemRepo.items, 2)
	assert.Equal(t, "49.9", uow.orderItemRepo.items[0].PriceAtOrder.String())
	assert.Equal(t, "Keyboard", uow.orderItemRepo.items[0].ProductName)
	assert.Equal(t, order.StatusCompleted, uow.orderRepo.orders[0].Status)
}

func TestPlaceOrder_WritesOutboxEvent(t *testing.T) {
	uow := newMockUnitOfWork()
	seedProduct(uow, 1, "Keyboard", "49.90", 10)
	svc := newTestService(uow)

	orderID, err := svc.PlaceOrder(context.Background(), 7, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 2},
	})

	require.NoError(t, err)
	require.Len(t, uow.outboxRepo.messages, 1)

	msg := uow.outboxRepo.messages[0]
	assert.Equal(t, "order.placed", msg.RoutingKey)
	assert.Equal(t, "application/json", msg.ContentType)

	var event struct {
		OrderID    int64  `json:"order_id"`
		UserID     int64  `json:"user_id"`
		TotalPrice string `json:"total_price"`
	}
	require.NoError(t, json.Unmarshal(msg.Payload, &event))
	assert.Equal(t, orderID, event.OrderID)
	assert.Equal(t, int64(7), event.UserID)
	assert.Equal(t, "99.80", event.TotalPrice)
}

func TestPlaceOrder_EmptyOrder(t *testing.T) {
	svc := newTestService(newMockUnitOfWork())

	_, err := svc.PlaceOrder(context.Background(), 7, nil)

	assert.ErrorIs(t, err, ErrEmptyOrder)
}

func TestPlaceOrder_InvalidItem(t *testing.T) {
	svc := newTestService(newMockUnitOfWork())

	_, err := svc.PlaceOrder(context.Background(), 7, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 0},
	})
	assert.ErrorIs(t, err, ErrInvalidItem)

	_, err = svc.PlaceOrder(context.Background(), 7, []orderitem.OrderItem{
		{ProductID: -1, Quantity: 1},
	})
	assert.ErrorIs(t, err, ErrInvalidItem)
}

func TestPlaceOrder_ProductNotFound(t *testing.T) {
	uow := newMockUnitOfWork()
	seedProduct(uow, 1, "Keyboard", "49.90", 10)
	svc := newTestService(uow)

	_, err := svc.PlaceOrder(context.Background(), 7, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 1},
		{ProductID: 42, Quantity: 1},
	})

	var notFound *ProductNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, int64(42), notFound.ProductID)
	assert.True(t, uow.rolledBack)
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	uow := newMockUnitOfWork()
	seedProduct(uow, 1, "Keyboard", "49.90", 3)
	svc := newTestService(uow)

	_, err := svc.PlaceOrder(context.Background(), 7, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 5},
	})

	var noStock *InsufficientStockError
	require.ErrorAs(t, err, &noStock)
	assert.Equal(t, int64(1), noStock.ProductID)
	assert.Equal(t, 3, noStock.Available)
	assert.Equal(t, 5, noStock.Requested)
}

func TestPlaceOrder_RollbackLeavesNoPartialState(t *testing.T) {
	uow := newMockUnitOfWork()
	seedProduct(uow, 1, "Keyboard", "49.90", 10)
	seedProduct(uow, 2, "Mouse", "19.90", 1)
	svc := newTestService(uow)

	// The second item fails on stock after the first already decremented.
	_, err := svc.PlaceOrder(context.Background(), 7, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 2},
		{ProductID: 2, Quantity: 3},
	})

	require.Error(t, err)
	assert.True(t, uow.rolledBack)
	assert.False(t, uow.committed)
	assert.Equal(t, 10, uow.productRepo.products[1].StockQuantity)
	assert.Equal(t, 1, uow.productRepo.products[2].StockQuantity)
	assert.Empty(t, uow.orderRepo.orders)
	assert.Empty(t, uow.orderItemRepo.items)
}

func TestPlaceOrder_StoreFailureWrapsTransactionFailure(t *testing.T) {
	uow := newMockUnitOfWork()
	seedProduct(uow, 1, "Keyboard", "49.90", 10)
	uow.orderRepo.insertErr = errors.New("connection reset")
	svc := newTestService(uow)

	_, err := svc.PlaceOrder(context.Background(), 7, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 1},
	})

	assert.ErrorIs(t, err, ErrTransactionFailure)
	assert.True(t, uow.rolledBack)
}

func TestPlaceOrder_PriceSnapshotSurvivesPriceChange(t *testing.T) {
	uow := newMockUnitOfWork()
	seedProduct(uow, 1, "Keyboard", "49.90", 10)
	svc := newTestService(uow)

	orderID, err := svc.PlaceOrder(context.Background(), 7, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 2},
	})
	require.NoError(t, err)

	uow.productRepo.products[1].Price = decimal.RequireFromString("99.90")

	summary, err := svc.GetOrder(context.Background(), 7, orderID)
	require.NoError(t, err)
	assert.Equal(t, "99.8", summary.TotalPrice.String())
}

func TestGetOrder_OwnershipIsolation(t *testing.T) {
	uow := newMockUnitOfWork()
	seedProduct(uow, 1, "Keyboard", "49.90", 10)
	svc := newTestService(uow)

	orderID, err := svc.PlaceOrder(context.Background(), 7, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 1},
	})
	require.NoError(t, err)

	_, err = svc.GetOrder(context.Background(), 8, orderID)
	assert.ErrorIs(t, err, ErrOrderNotFound)

	summary, err := svc.GetOrder(context.Background(), 7, orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, summary.OrderID)
}

func TestGetOrder_NotFound(t *testing.T) {
	svc := newTestService(newMockUnitOfWork())

	_, err := svc.GetOrder(context.Background(), 7, 99)

	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestListOrders(t *testing.T) {
	uow := newMockUnitOfWork()
	seedProduct(uow, 1, "Keyboard", "49.90", 10)
	seedProduct(uow, 2, "Mouse", "19.90", 10)
	svc := newTestService(uow)

	_, err := svc.PlaceOrder(context.Background(), 7, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 1},
	})
	require.NoError(t, err)

	_, err = svc.PlaceOrder(context.Background(), 7, []orderitem.OrderItem{
		{ProductID: 2, Quantity: 2},
	})
	require.NoError(t, err)

	_, err = svc.PlaceOrder(context.Background(), 8, []orderitem.OrderItem{
		{ProductID: 1, Quantity: 1},
	})
	require.NoError(t, err)

	summaries, err := svc.ListOrders(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "49.9", summaries[0].TotalPrice.String())
	assert.Equal(t, "39.8", summaries[1].TotalPrice.String())
	require.Len(t, summaries[1].Items, 1)
	assert.Equal(t, "Mouse", summaries[1].Items[0].ProductName)
	assert.Equal(t, 2, summaries[1].Items[0].Quantity)
}

func TestListOrders_Empty(t *testing.T) {
	svc := newTestService(newMockUnitOfWork())

	summaries, err := svc.ListOrders(context.Background(), 7)

	require.NoError(t, err)
	assert.Empty(t, summaries)
}
