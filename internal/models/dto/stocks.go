package dto

import "github.com/shopspring/decimal"

// UpsertStockRequest creates or replaces a stock. Volume and sector are
// optional; when omitted on conflict the existing values are kept.
type UpsertStockRequest struct {
	Ticker       string          `json:"ticker"`
	CompanyName  string          `json:"company_name"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Volume       *int64          `json:"volume"`
	Sector       *string         `json:"sector"`
	IsListed     *bool           `json:"is_listed"`
}
