package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/ecommerce-api/internal/dal/postgres"
	"github.com/corray333/ecommerce-api/internal/service/models/orderitem"
	"github.com/shopspring/decimal"
)

// OrderItemDal represents the order item data access layer model.
type OrderItemDal struct {
	Id           int64           `db:"id"`
	OrderId      int64           `db:"order_id"`
	ProductId    int64           `db:"product_id"`
	ProductName  string          `db:"product_name"`
	Quantity     int             `db:"quantity"`
	PriceAtOrder decimal.Decimal `db:"price_at_order"`
	CreatedAt    time.Time       `db:"created_at"`
}

// ToModel converts OrderItemDal to the service layer OrderItem model.
func (oi *OrderItemDal) ToModel() *orderitem.OrderItem {
	return &orderitem.OrderItem{
		ID:           oi.Id,
		OrderID:      oi.OrderId,
		ProductID:    oi.ProductId,
		ProductName:  oi.ProductName,
		Quantity:     oi.Quantity,
		PriceAtOrder: oi.PriceAtOrder,
		CreatedAt:    oi.CreatedAt,
	}
}

// PostgresOrderItemRepository represents a Postgres order item repository.
type PostgresOrderItemRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderItemRepository creates a new Postgres order item repository.
func NewPostgresOrderItemRepository(conn postgres.GenericConn) *PostgresOrderItemRepository {
	return &PostgresOrderItemRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// BulkInsert inserts order items and returns them with generated ids.
func (r *PostgresOrderItemRepository) BulkInsert(
	ctx context.Context,
	orderItems []orderitem.OrderItem,
) ([]orderitem.OrderItem, error) {
	if len(orderItems) == 0 {
		return []orderitem.OrderItem{}, nil
	}

	builder := r.sb.Insert("order_items").
		Columns("order_id", "product_id", "quantity", "price_at_order", "created_at")

	for _, item := range orderItems {
		builder = builder.Values(
			item.OrderID,
			item.ProductID,
			item.Quantity,
			item.PriceAtOrder,
			item.CreatedAt,
		)
	}

	query, args, err := builder.Suffix("RETURNING id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build insert query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to bulk insert order items: %w", err)
	}
	defer rows.Close()

	result := make([]orderitem.OrderItem, 0, len(orderItems))
	i := 0
	for rows.Next() {
		item := orderItems[i]
		if err := rows.Scan(&item.ID); err != nil {
			return nil, fmt.Errorf("failed to scan order item id: %w", err)
		}
		result = append(result, item)
		i++
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Query retrieves order items based on filter criteria. The product
// name is joined from the catalog for read projections.
func (r *PostgresOrderItemRepository) Query(
	ctx context.Context,
	filter *orderitem.QueryOrderItemsModel,
) ([]orderitem.OrderItem, error) {
	builder := r.sb.
		Select(
			"oi.id",
			"oi.order_id",
			"oi.product_id",
			"p.name AS product_name",
			"oi.quantity",
			"oi.price_at_order",
			"oi.created_at",
		).
		From("order_items oi").
		Join("products p ON p.id = oi.product_id").
		OrderBy("oi.id ASC")

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"oi.id": filter.Ids})
	}

	if len(filter.OrderIds) > 0 {
		builder = builder.Where(sq.Eq{"oi.order_id": filter.OrderIds})
	}

	if len(filter.ProductIds) > 0 {
		builder = builder.Where(sq.Eq{"oi.product_id": filter.ProductIds})
	}

	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}

	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var result []orderitem.OrderItem
	for rows.Next() {
		var dal OrderItemDal
		err := rows.Scan(
			&dal.Id,
			&dal.OrderId,
			&dal.ProductId,
			&dal.ProductName,
			&dal.Quantity,
			&dal.PriceAtOrder,
			&dal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
