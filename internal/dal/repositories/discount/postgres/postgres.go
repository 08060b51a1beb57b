package postgresrepo

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/idiscountrepo"
	"github.com/corray333/ecommerce-api/internal/dal/postgres"
	"github.com/corray333/ecommerce-api/internal/service/models/discount"
	"github.com/shopspring/decimal"
)

// DiscountDal represents the discount data access layer model.
type DiscountDal struct {
	Id                 int64           `db:"id"`
	ProductId          int64           `db:"product_id"`
	DiscountPercentage decimal.Decimal `db:"discount_percentage"`
	StartDate          time.Time       `db:"start_date"`
	EndDate            time.Time       `db:"end_date"`
}

// ToModel converts DiscountDal to the service layer Discount model.
func (d *DiscountDal) ToModel() *discount.Discount {
	return &discount.Discount{
		ID:                 d.Id,
		ProductID:          d.ProductId,
		DiscountPercentage: d.DiscountPercentage,
		StartDate:          d.StartDate,
		EndDate:            d.EndDate,
	}
}

// PostgresDiscountRepository represents a Postgres discount repository.
type PostgresDiscountRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresDiscountRepository creates a new Postgres discount repository.
func NewPostgresDiscountRepository(conn postgres.GenericConn) *PostgresDiscountRepository {
	return &PostgresDiscountRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert creates a discount and returns it with the generated id.
func (r *PostgresDiscountRepository) Insert(
	ctx context.Context,
	d discount.Discount,
) (discount.Discount, error) {
	query, args, err := r.sb.Insert("discounts").
		Columns("product_id", "discount_percentage", "start_date", "end_date").
		Values(d.ProductID, d.DiscountPercentage, d.StartDate, d.EndDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return discount.Discount{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&d.ID); err != nil {
		return discount.Discount{}, fmt.Errorf("failed to insert discount: %w", err)
	}

	return d, nil
}

// List retrieves all discounts.
func (r *PostgresDiscountRepository) List(ctx context.Context) ([]discount.Discount, error) {
	query, args, err := r.selectBuilder().
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	return r.queryDiscounts(ctx, query, args)
}

// Update overwrites the mutable columns of a discount.
func (r *PostgresDiscountRepository) Update(
	ctx context.Context,
	d discount.Discount,
) (discount.Discount, error) {
	query, args, err := r.sb.Update("discounts").
		Set("product_id", d.ProductID).
		Set("discount_percentage", d.DiscountPercentage).
		Set("start_date", d.StartDate).
		Set("end_date", d.EndDate).
		Where(sq.Eq{"id": d.ID}).
		ToSql()
	if err != nil {
		return discount.Discount{}, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return discount.Discount{}, fmt.Errorf("failed to update discount: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return discount.Discount{}, idiscountrepo.ErrNotFound
	}

	return d, nil
}

// Delete removes a discount.
func (r *PostgresDiscountRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("discounts").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete discount: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return idiscountrepo.ErrNotFound
	}

	return nil
}

// ActiveForProducts returns the active discount per product at the
// given moment. When several overlap, the earliest-starting one wins.
func (r *PostgresDiscountRepository) ActiveForProducts(
	ctx context.Context,
	productIDs []int64,
	now time.Time,
) (map[int64]discount.Discount, error) {
	if len(productIDs) == 0 {
		return map[int64]discount.Discount{}, nil
	}

	query, args, err := r.selectBuilder().
		Where(sq.Eq{"product_id": productIDs}).
		Where(sq.LtOrEq{"start_date": now}).
		Where(sq.GtOrEq{"end_date": now}).
		OrderBy("start_date ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	discounts, err := r.queryDiscounts(ctx, query, args)
	if err != nil {
		return nil, err
	}

	result := make(map[int64]discount.Discount, len(discounts))
	for _, d := range discounts {
		if _, ok := result[d.ProductID]; !ok {
			result[d.ProductID] = d
		}
	}

	return result, nil
}

func (r *PostgresDiscountRepository) selectBuilder() sq.SelectBuilder {
	return r.sb.
		Select("id", "product_id", "discount_percentage", "start_date", "end_date").
		From("discounts")
}

func (r *PostgresDiscountRepository) queryDiscounts(
	ctx context.Context,
	query string,
	args []interface{},
) ([]discount.Discount, error) {
	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query discounts: %w", err)
	}
	defer rows.Close()

	var result []discount.Discount
	for rows.Next() {
		var dal DiscountDal
		err := rows.Scan(
			&dal.Id,
			&dal.ProductId,
			&dal.DiscountPercentage,
			&dal.StartDate,
			&dal.EndDate,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan discount: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
