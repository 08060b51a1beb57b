package ordersvc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/ecommerce-api/internal/dal/postgres"
	"github.com/corray333/ecommerce-api/internal/dal/uow"
	"github.com/corray333/ecommerce-api/internal/service/models/order"
	"github.com/corray333/ecommerce-api/internal/service/models/orderitem"
	"github.com/corray333/ecommerce-api/internal/service/models/outbox"
	"github.com/spf13/viper"
)

const (
	orderPlacedRoutingKey = "order.placed"
	outboxMaxRetries      = 5
)

// OrderService is a service for placing and reading orders.
type OrderService struct {
	log      *slog.Logger
	pgClient *postgres.Client
	newUOW   func() unitOfWork
	exchange string
}

type unitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() iorderrepo.IOrderRepository
	OrderItemRepository() iorderitemrepo.IOrderItemRepository
	ProductRepository() iproductrepo.IProductRepository
	OutboxRepository() ioutboxrepo.IOutboxRepository
}

// option is a function that configures the OrderService.
type option func(*OrderService)

// MustNewOrderService creates a new OrderService.
func MustNewOrderService(opts ...option) *OrderService {
	s := &OrderService{
		log:      slog.Default(),
		exchange: viper.GetString("rabbitmq.orders.exchange"),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.newUOW == nil {
		if s.pgClient == nil {
			panic("ordersvc: postgres client is required")
		}
		s.newUOW = func() unitOfWork {
			return uow.NewUnitOfWork(s.pgClient.Pool())
		}
	}

	return s
}

// WithPostgresClient sets the Postgres client for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithPostgresClient(pgClient *postgres.Client) option {
	return func(s *OrderService) {
		s.pgClient = pgClient
	}
}

// WithLogger sets the logger for the OrderService.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithLogger(log *slog.Logger) option {
	return func(s *OrderService) {
		s.log = log
	}
}

// WithUnitOfWorkFactory overrides how the service obtains a unit of work.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithUnitOfWorkFactory(factory func() unitOfWork) option {
	return func(s *OrderService) {
		s.newUOW = factory
	}
}

type orderPlacedEvent struct {
	OrderID    int64     `json:"order_id"`
	UserID     int64     `json:"user_id"`
	TotalPrice string    `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

// PlaceOrder creates an order for the user from the requested items. The
// whole operation runs in one transaction: every product row is locked
// before its stock is checked and decremented, so concurrent orders for
// the same product serialize and stock can never go negative. Each item
// captures the product price at the moment of ordering.
func (s *OrderService) PlaceOrder(
	ctx context.Context,
	userID int64,
	items []orderitem.OrderItem,
) (createdID int64, err error) {
	if len(items) == 0 {
		return 0, ErrEmptyOrder
	}
	for _, item := range items {
		if item.ProductID <= 0 {
			return 0, fmt.Errorf("%w: product id must be positive", ErrInvalidItem)
		}
		if item.Quantity <= 0 {
			return 0, fmt.Errorf("%w: quantity must be positive", ErrInvalidItem)
		}
	}

	// Lock products in a stable order to avoid deadlocks between
	// concurrent orders touching the same products.
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	now := time.Now()
	work := s.newUOW()

	if err := work.Begin(ctx); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTransactionFailure, err)
	}
	defer func() {
		if rbErr := work.Rollback(ctx); rbErr != nil {
			s.log.Error("failed to rollback order transaction", "error", rbErr)
		}
	}()

	o, err := work.OrderRepository().Insert(ctx, order.Order{
		UserID:    userID,
		Status:    order.StatusCompleted,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTransactionFailure, err)
	}

	for i := range items {
		p, err := work.ProductRepository().GetForUpdate(ctx, items[i].ProductID)
		if err != nil {
			if errors.Is(err, iproductrepo.ErrNotFound) {
				return 0, &ProductNotFoundError{ProductID: items[i].ProductID}
			}

			return 0, fmt.Errorf("%w: %w", ErrTransactionFailure, err)
		}

		if p.StockQuantity < items[i].Quantity {
			return 0, &InsufficientStockError{
				ProductID: p.ID,
				Available: p.StockQuantity,
				Requested: items[i].Quantity,
			}
		}

		err = work.ProductRepository().DecrementStock(ctx, p.ID, items[i].Quantity)
		if err != nil {
			if errors.Is(err, iproductrepo.ErrInsufficientStock) {
				return 0, &InsufficientStockError{
					ProductID: p.ID,
					Available: p.StockQuantity,
					Requested: items[i].Quantity,
				}
			}

			return 0, fmt.Errorf("%w: %w", ErrTransactionFailure, err)
		}

		items[i].OrderID = o.ID
		items[i].ProductName = p.Name
		items[i].PriceAtOrder = p.Price
		items[i].CreatedAt = now
	}

	items, err = work.OrderItemRepository().BulkInsert(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTransactionFailure, err)
	}
	o.OrderItems = items

	payload, err := json.Marshal(orderPlacedEvent{
		OrderID:    o.ID,
		UserID:     o.UserID,
		TotalPrice: o.TotalPrice().StringFixed(2),
		CreatedAt:  o.CreatedAt,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTransactionFailure, err)
	}

	err = work.OutboxRepository().Insert(ctx, outbox.Message{
		ExchangeName: s.exchange,
		RoutingKey:   orderPlacedRoutingKey,
		Payload:      payload,
		ContentType:  "application/json",
		MaxRetries:   outboxMaxRetries,
		CreatedAt:    now,
		UpdatedAt:    now,
		NextRetryAt:  now,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTransactionFailure, err)
	}

	if err := work.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrTransactionFailure, err)
	}

	s.log.Info("order placed",
		"order_id", o.ID,
		"user_id", o.UserID,
		"items", len(o.OrderItems),
	)

	return o.ID, nil
}

// ListOrders retrieves all orders of the user, each with its items and
// computed total.
func (s *OrderService) ListOrders(ctx context.Context, userID int64) ([]order.Summary, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{
		UserIds: []int64{userID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}

	if len(orders) == 0 {
		return []order.Summary{}, nil
	}

	if err := s.attachItems(ctx, work, orders); err != nil {
		return nil, err
	}

	summaries := make([]order.Summary, 0, len(orders))
	for _, o := range orders {
		summaries = append(summaries, order.SummaryFromOrder(o))
	}

	return summaries, nil
}

// GetOrder retrieves one order of the user. Orders of other users are
// indistinguishable from missing ones.
func (s *OrderService) GetOrder(ctx context.Context, userID, orderID int64) (order.Summary, error) {
	work := s.newUOW()

	orders, err := work.OrderRepository().Query(ctx, &order.QueryOrdersModel{
		Ids:     []int64{orderID},
		UserIds: []int64{userID},
	})
	if err != nil {
		return order.Summary{}, fmt.Errorf("failed to query order: %w", err)
	}

	if len(orders) == 0 {
		return order.Summary{}, ErrOrderNotFound
	}

	if err := s.attachItems(ctx, work, orders); err != nil {
		return order.Summary{}, err
	}

	return order.SummaryFromOrder(orders[0]), nil
}

func (s *OrderService) attachItems(ctx context.Context, work unitOfWork, orders []order.Order) error {
	query := &orderitem.QueryOrderItemsModel{}
	for _, o := range orders {
		query.OrderIds = append(query.OrderIds, o.ID)
	}

	items, err := work.OrderItemRepository().Query(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to query order items: %w", err)
	}

	for i := range orders {
		for _, item := range items {
			if item.OrderID == orders[i].ID {
				orders[i].OrderItems = append(orders[i].OrderItems, item)
			}
		}
	}

	return nil
}
