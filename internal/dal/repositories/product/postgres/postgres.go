package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iproductrepo"
	"github.com/corray333/ecommerce-api/internal/dal/postgres"
	"github.com/corray333/ecommerce-api/internal/service/models/product"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
)

// ProductDal represents the product data access layer model.
type ProductDal struct {
	Id            int64           `db:"id"`
	Name          string          `db:"name"`
	Description   string          `db:"description"`
	Price         decimal.Decimal `db:"price"`
	CategoryId    int64           `db:"category_id"`
	CategoryName  string          `db:"category_name"`
	StockQuantity int             `db:"stock_quantity"`
	ImageUrl      string          `db:"image_url"`
	CreatedBy     int64           `db:"created_by"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

// ToModel converts ProductDal to the service layer Product model.
func (p *ProductDal) ToModel() *product.Product {
	return &product.Product{
		ID:            p.Id,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		CategoryID:    p.CategoryId,
		CategoryName:  p.CategoryName,
		StockQuantity: p.StockQuantity,
		ImageURL:      p.ImageUrl,
		CreatedBy:     p.CreatedBy,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// PostgresProductRepository represents a Postgres product repository.
type PostgresProductRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresProductRepository creates a new Postgres product repository.
func NewPostgresProductRepository(conn postgres.GenericConn) *PostgresProductRepository {
	return &PostgresProductRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert creates a product and returns it with the generated id.
func (r *PostgresProductRepository) Insert(
	ctx context.Context,
	p product.Product,
) (product.Product, error) {
	query, args, err := r.sb.Insert("products").
		Columns(
			"name",
			"description",
			"price",
			"category_id",
			"stock_quantity",
			"image_url",
			"created_by",
			"created_at",
			"updated_at",
		).
		Values(
			p.Name,
			p.Description,
			p.Price,
			p.CategoryID,
			p.StockQuantity,
			p.ImageURL,
			p.CreatedBy,
			p.CreatedAt,
			p.UpdatedAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&p.ID); err != nil {
		if pgErrCode(err) == "23505" {
			return product.Product{}, iproductrepo.ErrNameTaken
		}

		return product.Product{}, fmt.Errorf("failed to insert product: %w", err)
	}

	return p, nil
}

// GetByID retrieves one product with its category name.
func (r *PostgresProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	return r.getOne(ctx, id, false)
}

// GetForUpdate retrieves one product and locks its row until the
// enclosing transaction commits or rolls back.
func (r *PostgresProductRepository) GetForUpdate(ctx context.Context, id int64) (*product.Product, error) {
	return r.getOne(ctx, id, true)
}

func (r *PostgresProductRepository) getOne(
	ctx context.Context,
	id int64,
	forUpdate bool,
) (*product.Product, error) {
	builder := r.sb.
		Select(
			"id",
			"name",
			"description",
			"price",
			"category_id",
			"stock_quantity",
			"image_url",
			"created_by",
			"created_at",
			"updated_at",
		).
		From("products").
		Where(sq.Eq{"id": id})

	if forUpdate {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal ProductDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.Name,
		&dal.Description,
		&dal.Price,
		&dal.CategoryId,
		&dal.StockQuantity,
		&dal.ImageUrl,
		&dal.CreatedBy,
		&dal.CreatedAt,
		&dal.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, iproductrepo.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return dal.ToModel(), nil
}

// Query retrieves products based on filter criteria.
func (r *PostgresProductRepository) Query(
	ctx context.Context,
	filter *product.QueryProductsModel,
) ([]product.Product, error) {
	builder := r.sb.
		Select(
			"p.id",
			"p.name",
			"p.description",
			"p.price",
			"p.category_id",
			"c.name AS category_name",
			"p.stock_quantity",
			"p.image_url",
			"p.created_by",
			"p.created_at",
			"p.updated_at",
		).
		From("products p").
		Join("categories c ON c.id = p.category_id")

	if len(filter.Ids) > 0 {
		builder = builder.Where(sq.Eq{"p.id": filter.Ids})
	}

	if filter.PriceMin != nil {
		builder = builder.Where(sq.GtOrEq{"p.price": *filter.PriceMin})
	}

	if filter.PriceMax != nil {
		builder = builder.Where(sq.LtOrEq{"p.price": *filter.PriceMax})
	}

	if filter.StockMin != nil {
		builder = builder.Where(sq.GtOrEq{"p.stock_quantity": *filter.StockMin})
	}

	if filter.StockMax != nil {
		builder = builder.Where(sq.LtOrEq{"p.stock_quantity": *filter.StockMax})
	}

	if filter.Category != "" {
		builder = builder.Where(sq.ILike{"c.name": "%" + filter.Category + "%"})
	}

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"p.name": pattern},
			sq.ILike{"c.name": pattern},
		})
	}

	builder = builder.OrderBy(orderByColumn(filter.OrderBy))

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
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		var dal ProductDal
		err := rows.Scan(
			&dal.Id,
			&dal.Name,
			&dal.Description,
			&dal.Price,
			&dal.CategoryId,
			&dal.CategoryName,
			&dal.StockQuantity,
			&dal.ImageUrl,
			&dal.CreatedBy,
			&dal.CreatedAt,
			&dal.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Update overwrites the mutable columns of a product.
func (r *PostgresProductRepository) Update(
	ctx context.Context,
	p product.Product,
) (product.Product, error) {
	query, args, err := r.sb.Update("products").
		Set("name", p.Name).
		Set("description", p.Description).
		Set("price", p.Price).
		Set("category_id", p.CategoryID).
		Set("stock_quantity", p.StockQuantity).
		Set("image_url", p.ImageURL).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return product.Product{}, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		if pgErrCode(err) == "23505" {
			return product.Product{}, iproductrepo.ErrNameTaken
		}

		return product.Product{}, fmt.Errorf("failed to update product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return product.Product{}, iproductrepo.ErrNotFound
	}

	return p, nil
}

// Delete removes a product. Deletion is blocked while order items
// reference the product.
func (r *PostgresProductRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("products").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		if pgErrCode(err) == "23503" {
			return iproductrepo.ErrReferenced
		}

		return fmt.Errorf("failed to delete product: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return iproductrepo.ErrNotFound
	}

	return nil
}

// DecrementStock subtracts quantity from the product's stock. The WHERE
// guard keeps stock_quantity from ever going negative even if callers
// race past the service-level check.
func (r *PostgresProductRepository) DecrementStock(
	ctx context.Context,
	id int64,
	quantity int,
) error {
	query, args, err := r.sb.Update("products").
		Set("stock_quantity", sq.Expr("stock_quantity - ?", quantity)).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"id": id}).
		Where(sq.Expr("stock_quantity >= ?", quantity)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return iproductrepo.ErrInsufficientStock
	}

	return nil
}

func orderByColumn(orderBy string) string {
	switch orderBy {
	case product.OrderByPrice:
		return "p.price ASC"
	case product.OrderByName:
		return "p.name ASC"
	case product.OrderByStock:
		return "p.stock_quantity ASC"
	default:
		return "p.created_at ASC"
	}
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
