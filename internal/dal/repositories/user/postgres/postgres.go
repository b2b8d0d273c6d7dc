package postgresrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/manfeltor/dadsproject/internal/dal/postgres"
	"github.com/manfeltor/dadsproject/internal/service/models/user"
)

// UserDal represents user data access layer model.
type UserDal struct {
	Id           int64     `db:"id"`
	Username     string    `db:"username"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	PhoneNumber  string    `db:"phone_number"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

// ToModel converts UserDal to the service layer User model.
func (u *UserDal) ToModel() (*user.User, error) {
	role, err := user.ParseRole(u.Role)
	if err != nil {
		return nil, err
	}

	return &user.User{
		ID:           u.Id,
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		PhoneNumber:  u.PhoneNumber,
		Role:         role,
		CreatedAt:    u.CreatedAt,
	}, nil
}

// PostgresUserRepository is the Postgres user repository.
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

// Insert creates a new user and returns it with its generated id.
func (r *PostgresUserRepository) Insert(ctx context.Context, u user.User) (user.User, error) {
	sql, args, err := r.sb.
		Insert("users").
		Columns("username", "email", "password_hash", "phone_number", "role", "created_at").
		Values(u.Username, u.Email, u.PasswordHash, u.PhoneNumber, u.Role.String(), u.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return user.User{}, fmt.Errorf("failed to build insert user query: %w", err)
	}

	if err := r.conn.QueryRow(ctx, sql, args...).Scan(&u.ID); err != nil {
		return user.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return u, nil
}

// GetByUsername fetches a user by username. A missing user yields a nil
// user and nil error.
func (r *PostgresUserRepository) GetByUsername(
	ctx context.Context,
	username string,
) (*user.User, error) {
	return r.getOne(ctx, sq.Eq{"username": username})
}

// GetByID fetches a user by id. A missing user yields a nil user and nil
// error.
func (r *PostgresUserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getOne(ctx, sq.Eq{"id": id})
}

func (r *PostgresUserRepository) getOne(
	ctx context.Context,
	where sq.Eq,
) (*user.User, error) {
	sql, args, err := r.sb.
		Select("id", "username", "email", "password_hash", "phone_number", "role", "created_at").
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	var dal UserDal
	err = r.conn.QueryRow(ctx, sql, args...).Scan(
		&dal.Id,
		&dal.Username,
		&dal.Email,
		&dal.PasswordHash,
		&dal.PhoneNumber,
		&dal.Role,
		&dal.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return dal.ToModel()
}
