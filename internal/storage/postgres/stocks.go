package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/mcamac38/stock-trader-simulator/internal/models"
	"github.com/mcamac38/stock-trader-simulator/internal/storage"
)

// UpsertStock inserts a stock or, on a ticker conflict, replaces company
// name, price, listing flag, and creator unconditionally. Volume and sector
// keep their stored values when the new ones are null.
func (s *Store) UpsertStock(ctx context.Context, stock models.Stock) (models.Stock, error) {
	const query = `
	INSERT INTO stocks (ticker, company_name, current_price, volume, sector, is_listed, created_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (ticker) DO UPDATE
	  SET company_name = EXCLUDED.company_name,
	      current_price = EXCLUDED.current_price,
	      volume = COALESCE(EXCLUDED.volume, stocks.volume),
	      sector = COALESCE(EXCLUDED.sector, stocks.sector),
	      is_listed = EXCLUDED.is_listed,
	      created_by = EXCLUDED.created_by
	RETURNING ticker, company_name, current_price, volume, sector, is_listed, created_by, created_at;
	`
	row := s.pool.QueryRow(ctx, query,
		stock.Ticker, stock.CompanyName, stock.CurrentPrice,
		stock.Volume, stock.Sector, stock.IsListed, stock.CreatedBy)
	return scanStock(row)
}

// ListListedStocks returns listed tickers ascending by symbol, capped at limit.
func (s *Store) ListListedStocks(ctx context.Context, limit int) ([]models.TickerSummary, error) {
	const query = `
	SELECT ticker, company_name, current_price
	FROM stocks
	WHERE is_listed = TRUE
	ORDER BY ticker ASC
	LIMIT $1;
	`
	rows, err := s.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.TickerSummary, 0)
	for rows.Next() {
		var t models.TickerSummary
		if err := rows.Scan(&t.Ticker, &t.CompanyName, &t.CurrentPrice); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// GetStock fetches a single stock by its (already uppercased) ticker.
func (s *Store) GetStock(ctx context.Context, ticker string) (models.Stock, error) {
	const query = `
	SELECT ticker, company_name, current_price, volume, sector, is_listed, created_by, created_at
	FROM stocks
	WHERE ticker = $1;
	`
	row := s.pool.QueryRow(ctx, query, ticker)
	return scanStock(row)
}

func scanStock(row pgx.Row) (models.Stock, error) {
	var st models.Stock
	err := row.Scan(&st.Ticker, &st.CompanyName, &st.CurrentPrice,
		&st.Volume, &st.Sector, &st.IsListed, &st.CreatedBy, &st.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Stock{}, storage.ErrNotFound
		}
		return models.Stock{}, err
	}
	return st, nil
}
