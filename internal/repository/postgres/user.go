package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/abriand/user-registry-server/internal/model"
)

// uniqueViolation is the Postgres error code raised when an insert
// breaks a unique constraint.
const uniqueViolation = "23505"

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT id, firstname, lastname, email, date_birth, postal_code, city, created_at
			  FROM users ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		var user model.User
		if err := rows.Scan(
			&user.ID, &user.Firstname, &user.Lastname, &user.Email,
			&user.DateBirth.Time, &user.PostalCode, &user.City, &user.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read user rows: %w", err)
	}

	return users, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	var user model.User
	query := `SELECT id, firstname, lastname, email, date_birth, postal_code, city, created_at
			  FROM users WHERE email = $1`

	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID, &user.Firstname, &user.Lastname, &user.Email,
		&user.DateBirth.Time, &user.PostalCode, &user.City, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (model.User, error) {
	var user model.User
	query := `SELECT id, firstname, lastname, email, date_birth, postal_code, city, created_at
			  FROM users WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID, &user.Firstname, &user.Lastname, &user.Email,
		&user.DateBirth.Time, &user.PostalCode, &user.City, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	query := `INSERT INTO users (firstname, lastname, email, date_birth, postal_code, city)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id, firstname, lastname, email, date_birth, postal_code, city, created_at`

	var savedUser model.User
	err := r.db.QueryRow(ctx, query,
		user.Firstname, user.Lastname, user.Email,
		user.DateBirth.Time, user.PostalCode, user.City,
	).Scan(
		&savedUser.ID, &savedUser.Firstname, &savedUser.Lastname, &savedUser.Email,
		&savedUser.DateBirth.Time, &savedUser.PostalCode, &savedUser.City, &savedUser.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return model.User{}, model.ErrEmailTaken
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return savedUser, nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM users WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	// Zero affected rows means the id never existed or a concurrent
	// request already removed it.
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}
