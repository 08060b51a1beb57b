package ordersvc

import (
	"context"
	"errors"
	"time"

	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/ecommerce-api/internal/service/models/order"
	"github.com/corray333/ecommerce-api/internal/service/models/orderitem"
	"github.com/corray333/ecommerce-api/internal/service/models/outbox"
	"github.com/corray333/ecommerce-api/internal/service/models/product"
)

// mockProductRepo implements iproductrepo.IProductRepository over an
// in-memory product map.
type mockProductRepo struct {
	products  map[int64]*product.Product
	lockedIDs []int64
}

func (m *mockProductRepo) Insert(_ context.Context, p product.Product) (product.Product, error) {
	return p, nil
}

func (m *mockProductRepo) GetByID(_ context.Context, id int64) (*product.Product, error) {
	p, ok := m.products[id]
	if !ok {
		return nil, iproductrepo.ErrNotFound
	}
	cp := *p

	return &cp, nil
}

func (m *mockProductRepo) GetForUpdate(ctx context.Context, id int64) (*product.Product, error) {
	p, err := m.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	m.lockedIDs = append(m.lockedIDs, id)

	return p, nil
}

func (m *mockProductRepo) Query(_ context.Context, _ *product.QueryProductsModel) ([]product.Product, error) {
	return nil, nil
}

func (m *mockProductRepo) Update(_ context.Context, p product.Product) (product.Product, error) {
	return p, nil
}

func (m *mockProductRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

func (m *mockProductRepo) DecrementStock(_ context.Context, id int64, quantity int) error {
	p, ok := m.products[id]
	if !ok || p.StockQuantity < quantity {
		return iproductrepo.ErrInsufficientStock
	}
	p.StockQuantity -= quantity

	return nil
}

// mockOrderRepo implements iorderrepo.IOrderRepository.
type mockOrderRepo struct {
	orders    []order.Order
	nextID    int64
	insertErr error
}

func (m *mockOrderRepo) Insert(_ context.Context, o order.Order) (order.Order, error) {
	if m.insertErr != nil {
		return order.Order{}, m.insertErr
	}
	m.nextID++
	o.ID = m.nextID
	m.orders = append(m.orders, o)

	return o, nil
}

func (m *mockOrderRepo) Query(_ context.Context, filter *order.QueryOrdersModel) ([]order.Order, error) {
	var result []order.Order
	for _, o := range m.orders {
		if len(filter.Ids) > 0 && !containsID(filter.Ids, o.ID) {
			continue
		}
		if len(filter.UserIds) > 0 && !containsID(filter.UserIds, o.UserID) {
			continue
		}
		o.OrderItems = nil
		result = append(result, o)
	}

	return result, nil
}

// mockOrderItemRepo implements iorderitemrepo.IOrderItemRepository.
type mockOrderItemRepo struct {
	items  []orderitem.OrderItem
	nextID int64
}

func (m *mockOrderItemRepo) BulkInsert(
	_ context.Context,
	items []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	for i := range items {
		m.nextID++
		items[i].ID = m.nextID
	}
	m.items = append(m.items, items...)

	return items, nil
}

func (m *mockOrderItemRepo) Query(
	_ context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	var result []orderitem.OrderItem
	for _, item := range m.items {
		if len(filter.OrderIds) > 0 && !containsID(filter.OrderIds, item.OrderID) {
			continue
		}
		result = append(result, item)
	}

	return result, nil
}

// mockOutboxRepo implements ioutboxrepo.IOutboxRepository.
type mockOutboxRepo struct {
	messages []outbox.Message
}

func (m *mockOutboxRepo) Insert(_ context.Context, msg outbox.Message) error {
	m.messages = append(m.messages, msg)

	return nil
}

func (m *mockOutboxRepo) GetPendingMessages(_ context.Context, _ int) ([]outbox.Message, error) {
	return m.messages, nil
}

func (m *mockOutboxRepo) Delete(_ context.Context, _ int64) error {
	return nil
}

func (m *mockOutboxRepo) UpdateRetry(
	_ context.Context,
	_ int64,
	_ int,
	_ string,
	_ time.Time,
) error {
	return nil
}

// mockUnitOfWork implements unitOfWork without a real transaction. On
// rollback it restores the state captured at Begin, mirroring what the
// database would do.
type mockUnitOfWork struct {
	orderRepo     *mockOrderRepo
	orderItemRepo *mockOrderItemRepo
	productRepo   *mockProductRepo
	outboxRepo    *mockOutboxRepo

	began      bool
	committed  bool
	rolledBack bool

	ordersAtBegin []order.Order
	itemsAtBegin  []orderitem.OrderItem
	stockAtBegin  map[int64]int
}

func newMockUnitOfWork() *mockUnitOfWork {
	return &mockUnitOfWork{
		orderRepo:     &mockOrderRepo{},
		orderItemRepo: &mockOrderItemRepo{},
		productRepo:   &mockProductRepo{products: map[int64]*product.Product{}},
		outboxRepo:    &mockOutboxRepo{},
	}
}

func (m *mockUnitOfWork) Begin(_ context.Context) error {
	if m.began && !m.committed && !m.rolledBack {
		return errors.New("transaction already started")
	}
	m.began = true
	m.committed = false
	m.rolledBack = false
	m.ordersAtBegin = append([]order.Order(nil), m.orderRepo.orders...)
	m.itemsAtBegin = append([]orderitem.OrderItem(nil), m.orderItemRepo.items...)
	m.stockAtBegin = map[int64]int{}
	for id, p := range m.productRepo.products {
		m.stockAtBegin[id] = p.StockQuantity
	}

	return nil
}

func (m *mockUnitOfWork) Commit(_ context.Context) error {
	m.committed = true

	return nil
}

func (m *mockUnitOfWork) Rollback(_ context.Context) error {
	if m.committed || m.rolledBack {
		return nil
	}
	m.rolledBack = true
	m.orderRepo.orders = m.ordersAtBegin
	m.orderItemRepo.items = m.itemsAtBegin
	for id, stock := range m.stockAtBegin {
		m.productRepo.products[id].StockQuantity = stock
	}

	return nil
}

func (m *mockUnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return m.orderRepo
}

func (m *mockUnitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return m.orderItemRepo
}

func (m *mockUnitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return m.productRepo
}

func (m *mockUnitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return m.outboxRepo
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}

	return false
}
