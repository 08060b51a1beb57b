package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iuserrepo"
	"github.com/corray333/ecommerce-api/internal/dal/postgres"
	"github.com/corray333/ecommerce-api/internal/service/models/user"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// UserDal represents the user data access layer model.
type UserDal struct {
	Id           int64     `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
}

// ToModel converts UserDal to the service layer User model.
func (u *UserDal) ToModel() *user.User {
	return &user.User{
		ID:           u.Id,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		IsActive:     u.IsActive,
		CreatedAt:    u.CreatedAt,
	}
}

// PostgresUserRepository represents a Postgres user repository.
type PostgresUserRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresUserRepository creates a new Postgres user repository.
func NewPostgresUserRepository(conn postgres.GenericConn) *PostgresUserRepository {
	return &PostgresUserRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert creates a user and returns it with the generated id.
func (r *PostgresUserRepository) Insert(ctx context.Context, u user.User) (user.User, error) {
	query, args, err := r.sb.Insert("users").
		Columns("email", "password_hash", "is_active", "created_at").
		Values(u.Email, u.PasswordHash, u.IsActive, u.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&u.ID); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, iuserrepo.ErrEmailTaken
		}

		return user.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return u, nil
}

// GetByEmail retrieves one user by email.
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, sq.Eq{"email": email})
}

// GetByID retrieves one user by id.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *PostgresUserRepository) getOne(ctx context.Context, where sq.Eq) (*user.User, error) {
	query, args, err := r.sb.
		Select("id", "email", "password_hash", "is_active", "created_at").
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal UserDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.Email,
		&dal.PasswordHash,
		&dal.IsActive,
		&dal.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, iuserrepo.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return dal.ToModel(), nil
}
