package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/mcamac38/stock-trader-simulator/internal/models"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates a record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyExists indicates a uniqueness conflict.
	ErrAlreadyExists = errors.New("record already exists")

	// ErrUsernameTaken and ErrEmailTaken narrow ErrAlreadyExists to the
	// colliding column. Both satisfy errors.Is(err, ErrAlreadyExists).
	ErrUsernameTaken = conflictError{"username already exists"}
	ErrEmailTaken    = conflictError{"email already exists"}

	// ErrInvalidAmount rejects non-positive deposit/withdraw amounts.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInsufficientFunds indicates a withdrawal would overdraw the account.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

type conflictError struct{ msg string }

func (e conflictError) Error() string { return e.msg }

func (e conflictError) Is(target error) bool { return target == ErrAlreadyExists }

// UserStore captures user persistence and cash-balance operations.
type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)

	// Deposit atomically increments the user's balance and returns the
	// post-increment value. Amount must be positive.
	Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)

	// Withdraw atomically decrements the balance only if it stays
	// non-negative, returning the post-decrement value. The guard and the
	// decrement are one storage operation; there is no window where two
	// concurrent withdrawals can both pass the check.
	Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
}

// StockStore captures persistence for the ticker registry.
type StockStore interface {
	UpsertStock(ctx context.Context, stock models.Stock) (models.Stock, error)
	ListListedStocks(ctx context.Context, limit int) ([]models.TickerSummary, error)
	GetStock(ctx context.Context, ticker string) (models.Stock, error)
}
