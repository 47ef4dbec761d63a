package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mcamac38/stock-trader-simulator/internal/models"
	"github.com/mcamac38/stock-trader-simulator/internal/storage"
)

// CreateUser inserts a new user row. Uniqueness violations on username or
// email are surfaced as the matching storage conflict error.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	const query = `
	INSERT INTO users (username, email, full_name, password_hash, role, cash_balance)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING id, username, email, full_name, role, cash_balance, password_hash, created_at;
	`
	row := s.pool.QueryRow(ctx, query,
		user.Username, user.Email, user.FullName, user.PasswordHash, user.Role, user.CashBalance)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			switch pgErr.ConstraintName {
			case "users_email_key":
				return models.User{}, storage.ErrEmailTaken
			default:
				return models.User{}, storage.ErrUsernameTaken
			}
		}
		return models.User{}, err
	}
	return created, nil
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	const query = `
	SELECT id, username, email, full_name, role, cash_balance, password_hash, created_at
	FROM users
	WHERE username = $1;
	`
	row := s.pool.QueryRow(ctx, query, username)
	return scanUser(row)
}

func scanUser(row pgx.Row) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.FullName,
		&user.Role, &user.CashBalance, &user.PasswordHash, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
