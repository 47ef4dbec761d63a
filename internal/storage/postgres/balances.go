package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/mcamac38/stock-trader-simulator/internal/storage"
)

// GetBalance returns the current cash balance for a user.
func (s *Store) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	const query = `SELECT cash_balance FROM users WHERE id = $1;`

	var balance decimal.Decimal
	if err := s.pool.QueryRow(ctx, query, userID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, storage.ErrNotFound
		}
		return decimal.Zero, err
	}
	return balance, nil
}

// Deposit adds to cash_balance in a single UPDATE and returns the new balance.
func (s *Store) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, storage.ErrInvalidAmount
	}

	const query = `
	UPDATE users
	   SET cash_balance = cash_balance + $1
	 WHERE id = $2
	RETURNING cash_balance;
	`
	var balance decimal.Decimal
	if err := s.pool.QueryRow(ctx, query, amount, userID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, storage.ErrNotFound
		}
		return decimal.Zero, err
	}
	return balance, nil
}

// Withdraw subtracts from cash_balance and returns the new balance. The
// sufficient-funds guard lives in the UPDATE itself, so concurrent
// withdrawals serialize at the row and can never overdraw the account.
func (s *Store) Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, storage.ErrInvalidAmount
	}

	const query = `
	UPDATE users
	   SET cash_balance = cash_balance - $1
	 WHERE id = $2
	   AND cash_balance >= $1
	RETURNING cash_balance;
	`
	var balance decimal.Decimal
	err := s.pool.QueryRow(ctx, query, amount, userID).Scan(&balance)
	if err == nil {
		return balance, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return decimal.Zero, err
	}

	// Zero rows means either an unknown user or not enough funds; probe
	// existence to tell them apart.
	var exists bool
	probeErr := s.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE id = $1);`, userID).Scan(&exists)
	if probeErr != nil {
		return decimal.Zero, probeErr
	}
	if !exists {
		return decimal.Zero, storage.ErrNotFound
	}
	return decimal.Zero, storage.ErrInsufficientFunds
}
