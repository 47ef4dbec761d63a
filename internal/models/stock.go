package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock is a tradable instrument keyed by its uppercase ticker.
type Stock struct {
	Ticker       string          `json:"ticker"`
	CompanyName  string          `json:"company_name"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	Volume       *int64          `json:"volume"`
	Sector       *string         `json:"sector"`
	IsListed     bool            `json:"is_listed"`
	CreatedBy    int64           `json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
}

// TickerSummary is the trimmed row returned by the public market listing.
type TickerSummary struct {
	Ticker       string          `json:"ticker"`
	CompanyName  string          `json:"company_name"`
	CurrentPrice decimal.Decimal `json:"current_price"`
}
