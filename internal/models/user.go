package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User captures application-facing fields for an authenticated identity.
type User struct {
	ID           int64           `json:"id"`
	Username     string          `json:"username"`
	Email        string          `json:"email"`
	FullName     string          `json:"full_name"`
	Role         string          `json:"role"`
	CashBalance  decimal.Decimal `json:"cash_balance"`
	PasswordHash string          `json:"-"`
	CreatedAt    time.Time       `json:"created_at"`
}

// IsAdmin reports whether the user may call admin-only endpoints.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
