package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/ecommerce-api/internal/dal/postgres"
	"github.com/corray333/ecommerce-api/internal/service/models/order"
	"github.com/corray333/ecommerce-api/internal/service/models/orderitem"
)

// OrderDal represents the order data access layer model.
type OrderDal struct {
	Id        int64     `db:"id"`
	UserId    int64     `db:"user_id"`
	Status    string    `db:"status"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ToModel converts OrderDal to the service layer Order model.
func (o *OrderDal) ToModel() (*order.Order, error) {
	status, err := order.ParseStatus(o.Status)
	if err != nil {
		return nil, err
	}

	return &order.Order{
		ID:         o.Id,
		UserID:     o.UserId,
		Status:     status,
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
		OrderItems: []orderitem.OrderItem{}, // populated separately
	}, nil
}

// PostgresOrderRepository represents a Postgres order repository.
type PostgresOrderRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresOrderRepository creates a new Postgres order repository.
func NewPostgresOrderRepository(conn postgres.GenericConn) *PostgresOrderRepository {
	return &PostgresOrderRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert creates an order record and returns it with the generated id.
func (r *PostgresOrderRepository) Insert(ctx context.Context, o order.Order) (order.Order, error) {
	query, args, err := r.sb.Insert("orders").
		Columns("user_id", "status", "created_at", "updated_at").
		Values(o.UserID, o.Status, o.CreatedAt, o.UpdatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return order.Order{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&o.ID); err != nil {
		return order.Order{}, fmt.Errorf("failed to insert order: %w", err)
	}

	return o, nil
}

// Query retrieves orders based on filter criteria.
func (r *PostgresOrderRepository) Query(
	ctx context.Context,
	filter *order.QueryOrdersModel,
) ([]order.Order, error) {
	builder := r.sb.
		Select("id", "user_id", "status", "created_at", "updated_at").
		From("orders").
		OrderBy("id ASC")

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"id": filter.Ids})
	}

	if len(filter.UserIds) > 0 {
		builder = builder.Where(sq.Eq{"user_id": filter.UserIds})
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
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var result []order.Order
	for rows.Next() {
		var dal OrderDal
		err := rows.Scan(
			&dal.Id,
			&dal.UserId,
			&dal.Status,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		model, err := dal.ToModel()
		if err != nil {
			return nil, fmt.Errorf("failed to convert order dal to model: %w", err)
		}
		result = append(result, *model)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
