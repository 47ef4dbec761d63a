package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mcamac38/stock-trader-simulator/internal/http/respond"
	"github.com/mcamac38/stock-trader-simulator/internal/middleware"
	"github.com/mcamac38/stock-trader-simulator/internal/models/dto"
	"github.com/mcamac38/stock-trader-simulator/internal/storage"
)

type cashOp func(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)

// AccountHandler serves the authenticated account summary and cash movements.
type AccountHandler struct {
	store storage.UserStore
}

// NewAccountHandler constructs the handler.
func NewAccountHandler(store storage.UserStore) *AccountHandler {
	return &AccountHandler{store: store}
}

// Register attaches the protected routes behind the auth middleware.
func (h *AccountHandler) Register(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	mux.Handle("GET /account", protect(http.HandlerFunc(h.handleAccount)))
	mux.Handle("POST /cash/deposit", protect(http.HandlerFunc(h.handleDeposit)))
	mux.Handle("POST /cash/withdraw", protect(http.HandlerFunc(h.handleWithdraw)))
}

func (h *AccountHandler) handleAccount(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Detail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	// Re-read the balance so the summary reflects movements made after the
	// session was resolved.
	balance, err := h.store.GetBalance(r.Context(), user.ID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			log.Printf("account: get balance for user %d: %v", user.ID, err)
			respond.Detail(w, http.StatusInternalServerError, "failed to fetch balance")
			return
		}
		balance = decimal.Zero
	}

	respond.JSON(w, http.StatusOK, dto.AccountResponse{
		Username:    user.Username,
		FullName:    user.FullName,
		Email:       user.Email,
		Role:        user.Role,
		CashBalance: balance,
	})
}

func (h *AccountHandler) handleDeposit(w http.ResponseWriter, r *http.Request) {
	h.handleCashMove(w, r, h.store.Deposit)
}

func (h *AccountHandler) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	h.handleCashMove(w, r, h.store.Withdraw)
}

// handleCashMove is the shared body of deposit and withdraw: decode amount,
// run the atomic storage operation, map its errors.
func (h *AccountHandler) handleCashMove(w http.ResponseWriter, r *http.Request, op cashOp) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Detail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req dto.CashRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}
	if !req.Amount.IsPositive() {
		respond.Detail(w, http.StatusBadRequest, "Amount must be > 0")
		return
	}

	newBalance, err := op(r.Context(), user.ID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrInvalidAmount):
			respond.Detail(w, http.StatusBadRequest, "Amount must be > 0")
		case errors.Is(err, storage.ErrInsufficientFunds):
			respond.Detail(w, http.StatusBadRequest, "Insufficient funds")
		case errors.Is(err, storage.ErrNotFound):
			respond.Detail(w, http.StatusNotFound, "User not found")
		default:
			log.Printf("cash move for user %d: %v", user.ID, err)
			respond.Detail(w, http.StatusInternalServerError, "cash operation failed")
		}
		return
	}

	respond.JSON(w, http.StatusOK, dto.CashResponse{OK: true, NewBalance: newBalance})
}
