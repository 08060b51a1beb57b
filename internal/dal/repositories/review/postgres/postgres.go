package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/ireviewrepo"
	"github.com/corray333/ecommerce-api/internal/dal/postgres"
	"github.com/corray333/ecommerce-api/internal/service/models/review"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ReviewDal represents the review data access layer model.
type ReviewDal struct {
	Id        int64     `db:"id"`
	ProductId int64     `db:"product_id"`
	UserId    int64     `db:"user_id"`
	Rating    int       `db:"rating"`
	Comment   string    `db:"comment"`
	CreatedAt time.Time `db:"created_at"`
}

// ToModel converts ReviewDal to the service layer Review model.
func (rv *ReviewDal) ToModel() *review.Review {
	return &review.Review{
		ID:        rv.Id,
		ProductID: rv.ProductId,
		UserID:    rv.UserId,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}
}

// PostgresReviewRepository represents a Postgres review repository.
type PostgresReviewRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresReviewRepository creates a new Postgres review repository.
func NewPostgresReviewRepository(conn postgres.GenericConn) *PostgresReviewRepository {
	return &PostgresReviewRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert creates a review. The unique (product_id, user_id) constraint
// enforces one review per user per product.
func (r *PostgresReviewRepository) Insert(ctx context.Context, rv review.Review) (review.Review, error) {
	query, args, err := r.sb.Insert("reviews").
		Columns("product_id", "user_id", "rating", "comment", "created_at").
		Values(rv.ProductID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return review.Review{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&rv.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return review.Review{}, ireviewrepo.ErrDuplicate
		}

		return review.Review{}, fmt.Errorf("failed to insert review: %w", err)
	}

	return rv, nil
}

// ListByProduct retrieves all reviews of a product.
func (r *PostgresReviewRepository) ListByProduct(
	ctx context.Context,
	productID int64,
) ([]review.Review, error) {
	query, args, err := r.sb.
		Select("id", "product_id", "user_id", "rating", "comment", "created_at").
		From("reviews").
		Where(sq.Eq{"product_id": productID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	var result []review.Review
	for rows.Next() {
		var dal ReviewDal
		err := rows.Scan(
			&dal.Id,
			&dal.ProductId,
			&dal.UserId,
			&dal.Rating,
			&dal.Comment,
			&dal.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// GetOwned looks a review up scoped to its author and product, so a
// user can only touch their own reviews.
func (r *PostgresReviewRepository) GetOwned(
	ctx context.Context,
	id, userID, productID int64,
) (*review.Review, error) {
	query, args, err := r.sb.
		Select("id", "product_id", "user_id", "rating", "comment", "created_at").
		From("reviews").
		Where(sq.Eq{"id": id, "user_id": userID, "product_id": productID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal ReviewDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.ProductId,
		&dal.UserId,
		&dal.Rating,
		&dal.Comment,
		&dal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ireviewrepo.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get review: %w", err)
	}

	return dal.ToModel(), nil
}

// Update overwrites the rating and comment of a review.
func (r *PostgresReviewRepository) Update(ctx context.Context, rv review.Review) (review.Review, error) {
	query, args, err := r.sb.Update("reviews").
		Set("rating", rv.Rating).
		Set("comment", rv.Comment).
		Where(sq.Eq{"id": rv.ID}).
		ToSql()
	if err != nil {
		return review.Review{}, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return review.Review{}, fmt.Errorf("failed to update review: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return review.Review{}, ireviewrepo.ErrNotFound
	}

	return rv, nil
}

// Delete removes a review.
func (r *PostgresReviewRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("reviews").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return ireviewrepo.ErrNotFound
	}

	return nil
}
