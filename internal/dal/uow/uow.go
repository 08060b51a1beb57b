package uow

import (
	"context"
	"errors"
	"fmt"

	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iorderitemrepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iorderrepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/ioutboxrepo"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/ecommerce-api/internal/dal/postgres"
	orderrepo "github.com/corray333/ecommerce-api/internal/dal/repositories/order/postgres"
	orderitemrepo "github.com/corray333/ecommerce-api/internal/dal/repositories/orderitem/postgres"
	outboxrepo "github.com/corray333/ecommerce-api/internal/dal/repositories/outbox/postgres"
	productrepo "github.com/corray333/ecommerce-api/internal/dal/repositories/product/postgres"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UnitOfWork bundles the repositories that take part in order placement
// and lets the service run them inside a single database transaction.
// Outside a transaction the repositories run on the pool directly.
type UnitOfWork struct {
	pool *pgxpool.Pool
	tx   pgx.Tx

	orderRepository     iorderrepo.IOrderRepository
	orderItemRepository iorderitemrepo.IOrderItemRepository
	productRepository   iproductrepo.IProductRepository
	outboxRepository    ioutboxrepo.IOutboxRepository
}

// NewUnitOfWork creates a unit of work bound to the connection pool.
func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	uow := &UnitOfWork{pool: pool}
	uow.bind(pool)

	return uow
}

func (u *UnitOfWork) bind(conn postgres.GenericConn) {
	u.orderRepository = orderrepo.NewPostgresOrderRepository(conn)
	u.orderItemRepository = orderitemrepo.NewPostgresOrderItemRepository(conn)
	u.productRepository = productrepo.NewPostgresProductRepository(conn)
	u.outboxRepository = outboxrepo.NewPostgresOutboxRepository(conn)
}

// Begin starts a transaction and rebinds all repositories to it.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.bind(tx)

	return nil
}

// Commit commits the transaction and rebinds repositories to the pool.
func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	u.tx = nil
	u.bind(u.pool)

	return nil
}

// Rollback aborts the transaction. Safe to defer after Begin: rolling
// back a committed transaction is a no-op.
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}

	err := u.tx.Rollback(ctx)
	u.tx = nil
	u.bind(u.pool)

	if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}

	return nil
}

// OrderRepository returns the order repository bound to the current
// transaction, or to the pool when no transaction is active.
func (u *UnitOfWork) OrderRepository() iorderrepo.IOrderRepository {
	return u.orderRepository
}

// OrderItemRepository returns the order item repository.
func (u *UnitOfWork) OrderItemRepository() iorderitemrepo.IOrderItemRepository {
	return u.orderItemRepository
}

// ProductRepository returns the product repository.
func (u *UnitOfWork) ProductRepository() iproductrepo.IProductRepository {
	return u.productRepository
}

// OutboxRepository returns the outbox repository.
func (u *UnitOfWork) OutboxRepository() ioutboxrepo.IOutboxRepository {
	return u.outboxRepository
}
