package postgresrepo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/corray333/ecommerce-api/internal/dal/interfaces/iprofilerepo"
	"github.com/corray333/ecommerce-api/internal/dal/postgres"
	"github.com/corray333/ecommerce-api/internal/service/models/profile"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ProfileDal represents the profile data access layer model.
type ProfileDal struct {
	Id        int64          `db:"id"`
	UserId    int64          `db:"user_id"`
	FirstName string         `db:"first_name"`
	LastName  string         `db:"last_name"`
	Username  string         `db:"username"`
	Picture   sql.NullString `db:"picture"`
	Address   string         `db:"address"`
	Country   string         `db:"country"`
}

// ToModel converts ProfileDal to the service layer Profile model.
func (p *ProfileDal) ToModel() *profile.Profile {
	return &profile.Profile{
		ID:        p.Id,
		UserID:    p.UserId,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Username:  p.Username,
		Picture:   p.Picture.String,
		Address:   p.Address,
		Country:   p.Country,
	}
}

// PostgresProfileRepository represents a Postgres profile repository.
type PostgresProfileRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresProfileRepository creates a new Postgres profile repository.
func NewPostgresProfileRepository(conn postgres.GenericConn) *PostgresProfileRepository {
	return &PostgresProfileRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Insert creates a profile and returns it with the generated id.
func (r *PostgresProfileRepository) Insert(
	ctx context.Context,
	p profile.Profile,
) (profile.Profile, error) {
	query, args, err := r.sb.Insert("profiles").
		Columns("user_id", "first_name", "last_name", "username", "picture", "address", "country").
		Values(p.UserID, p.FirstName, p.LastName, p.Username, p.Picture, p.Address, p.Country).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return profile.Profile{}, fmt.Errorf("failed to build insert query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, query, args...).Scan(&p.ID); err != nil {
		if pgErrCode(err) == "23505" {
			return profile.Profile{}, iprofilerepo.ErrUsernameTaken
		}

		return profile.Profile{}, fmt.Errorf("failed to insert profile: %w", err)
	}

	return p, nil
}

// GetByID retrieves one profile.
func (r *PostgresProfileRepository) GetByID(ctx context.Context, id int64) (*profile.Profile, error) {
	query, args, err := r.selectBuilder().
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	var dal ProfileDal
	err = r.conn.QueryRow(ctx, query, args...).Scan(
		&dal.Id,
		&dal.UserId,
		&dal.FirstName,
		&dal.LastName,
		&dal.Username,
		&dal.Picture,
		&dal.Address,
		&dal.Country,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, iprofilerepo.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return dal.ToModel(), nil
}

// List retrieves all profiles.
func (r *PostgresProfileRepository) List(ctx context.Context) ([]profile.Profile, error) {
	query, args, err := r.selectBuilder().
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query profiles: %w", err)
	}
	defer rows.Close()

	var result []profile.Profile
	for rows.Next() {
		var dal ProfileDal
		err := rows.Scan(
			&dal.Id,
			&dal.UserId,
			&dal.FirstName,
			&dal.LastName,
			&dal.Username,
			&dal.Picture,
			&dal.Address,
			&dal.Country,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		result = append(result, *dal.ToModel())
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}

// Update overwrites the mutable columns of a profile.
func (r *PostgresProfileRepository) Update(
	ctx context.Context,
	p profile.Profile,
) (profile.Profile, error) {
	query, args, err := r.sb.Update("profiles").
		Set("first_name", p.FirstName).
		Set("last_name", p.LastName).
		Set("username", p.Username).
		Set("picture", p.Picture).
		Set("address", p.Address).
		Set("country", p.Country).
		Where(sq.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return profile.Profile{}, fmt.Errorf("failed to build update query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		if pgErrCode(err) == "23505" {
			return profile.Profile{}, iprofilerepo.ErrUsernameTaken
		}

		return profile.Profile{}, fmt.Errorf("failed to update profile: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return profile.Profile{}, iprofilerepo.ErrNotFound
	}

	return p, nil
}

// Delete removes a profile.
func (r *PostgresProfileRepository) Delete(ctx context.Context, id int64) error {
	query, args, err := r.sb.Delete("profiles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	tag, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return iprofilerepo.ErrNotFound
	}

	return nil
}

func (r *PostgresProfileRepository) selectBuilder() sq.SelectBuilder {
	return r.sb.
		Select("id", "user_id", "first_name", "last_name", "username", "picture", "address", "country").
		From("profiles")
}

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
