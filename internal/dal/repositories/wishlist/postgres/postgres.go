package postgresrepo

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iwishlistrepo"
	"github.com/corray333/ecommerce-api/internal/dal/postgres"
	"github.com/corray333/ecommerce-api/internal/service/models/product"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// PostgresWishlistRepository represents a Postgres wishlist repository.
type PostgresWishlistRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresWishlistRepository creates a new Postgres wishlist repository.
func NewPostgresWishlistRepository(conn postgres.GenericConn) *PostgresWishlistRepository {
	return &PostgresWishlistRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// GetOrCreate returns the id of the user's wishlist, creating an empty
// one on first use.
func (r *PostgresWishlistRepository) GetOrCreate(ctx context.Context, userID int64) (int64, error) {
	query, args, err := r.sb.
		Select("id").
		From("wishlists").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build select query: %w", err)
	}

	var id int64
	err = r.conn.QueryRow(ctx, query, args...).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("failed to get wishlist: %w", err)
	}

	query, args, err = r.sb.Insert("wishlists").
		Columns("user_id").
		Values(userID).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to create wishlist: %w", err)
	}

	return id, nil
}

// Products retrieves the products saved in a wishlist.
func (r *PostgresWishlistRepository) Products(
	ctx context.Context,
	wishlistID int64,
) ([]product.Product, error) {
	query, args, err := r.sb.
		Select("p.id", "p.name", "p.price", "p.description").
		From("wishlist_products wp").
		Join("products p ON p.id = wp.product_id").
		Where(sq.Eq{"wp.wishlist_id": wishlistID}).
		OrderBy("p.name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query wishlist products: %w", err)
	}
	defer rows.Close()

	var result []product.Product
	for rows.Next() {
		var (
			p     product.Product
			price decimal.Decimal
		)
		if err := rows.Scan(&p.ID, &p.Name, &price, &p.Description); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist product: %w", err)
		}
		p.Price = price
		result = append(result, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Has reports whether the product is already in the wishlist.
func (r *PostgresWishlistRepository) Has(ctx context.Context, wishlistID, productID int64) (bool, error) {
	query, args, err := r.sb.
		Select("1").
		From("wishlist_products").
		Where(sq.Eq{"wishlist_id": wishlistID, "product_id": productID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build select query: %w", err)
	}

	var one int
	err = r.conn.QueryRow(ctx, query, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check wishlist product: %w", err)
	}

	return true, nil
}

// AddProduct saves a product into a wishlist. Adding twice is a no-op.
func (r *PostgresWishlistRepository) AddProduct(ctx context.Context, wishlistID, productID int64) error {
	query, args, err := r.sb.Insert("wishlist_products").
		Columns("wishlist_id", "product_id").
		Values(wishlistID, productID).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	if _, err := r.conn.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to add product to wishlist: %w", err)
	}

	return nil
}

// RemoveProduct drops a product from a wishlist.
func (r *PostgresWishlistRepository) RemoveProduct(ctx context.Context, wishlistID, productID int64) error {
	query, args, err := r.sb.Delete("wishlist_products").
		Where(sq.Eq{"wishlist_id": wishlistID, "product_id": productID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to remove product from wishlist: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return iwishlistrepo.ErrProductNotInWishlist
	}

	return nil
}
