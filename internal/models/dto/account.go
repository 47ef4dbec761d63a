package dto

import "github.com/shopspring/decimal"

// AccountResponse is the authenticated account summary.
type AccountResponse struct {
	Username    string          `json:"username"`
	FullName    string          `json:"full_name"`
	Email       string          `json:"email"`
	Role        string          `json:"role"`
	CashBalance decimal.Decimal `json:"cash_balance"`
}

type CashRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type CashResponse struct {
	OK         bool            `json:"ok"`
	NewBalance decimal.Decimal `json:"new_balance"`
}
