package postgresrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/icategoryrepo"
	"github.com/corray333/ecommerce-api/internal/dal/postgres"
	"github.com/corray333/ecommerce-api/internal/service/models/category"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// CategoryDal represents the category data access layer model.
type CategoryDal struct {
	Id          int64          `db:"id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
}

// ToModel converts CategoryDal to the service layer Category model.
func (c *CategoryDal) ToModel() *category.Category {
	return &category.Category{
		ID:          c.Id,
		Name:        c.Name,
		Description: c.Description.String,
	}
}

// PostgresCategoryRepository represents a Postgres category repository.
type PostgresCategoryRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresCategoryRepository creates a new Postgres category repository.
func NewPostgresCategoryRepository(conn postgres.GenericConn) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert creates a category and returns it with the generated id.
func (r *PostgresCategoryRepository) Insert(
	ctx context.Context,
	c category.Category,
) (category.Category, error) {
	query, args, err := r.sb.Insert("categories").
		Columns("name", "description").
		Values(c.Name, c.Description).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return category.Category{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&c.ID); err != nil {
		if pgErrCode(err) == "23505" {
			return category.Category{}, icategoryrepo.ErrNameTaken
		}

		return category.Category{}, fmt.Errorf("failed to insert category: %w", err)
	}

	return c, nil
}

// GetByID retrieves one category.
func (r *PostgresCategoryRepository) GetByID(ctx context.Context, id int64) (*category.Category, error) {
	query, args, err := r.sb.
		Select("id", "name", "description").
		From("categories").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal CategoryDal
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&dal.Id, &dal.Name, &dal.Description); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, icategoryrepo.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return dal.ToModel(), nil
}

// List retrieves all categories.
func (r *PostgresCategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	query, args, err := r.sb.
		Select("id", "name", "description").
		From("categories").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var result []category.Category
	for rows.Next() {
		var dal CategoryDal
		if err := rows.Scan(&dal.Id, &dal.Name, &dal.Description); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Update overwrites a category's name and description.
func (r *PostgresCategoryRepository) Update(
	ctx context.Context,
	c category.Category,
) (category.Category, error) {
	query, args, err := r.sb.Update("categories").
		Set("name", c.Name).
		Set("description", c.Description).
		Where(sq.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return category.Category{}, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		if pgErrCode(err) == "23505" {
			return category.Category{}, icategoryrepo.ErrNameTaken
		}

		return category.Category{}, fmt.Errorf("failed to update category: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return category.Category{}, icategoryrepo.ErrNotFound
	}

	return c, nil
}

// Delete removes a category. Fails while products reference it.
func (r *PostgresCategoryRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("categories").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return icategoryrepo.ErrNotFound
	}

	return nil
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
