package handlers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/mcamac38/stock-trader-simulator/internal/http/respond"
)

// Pinger is anything that can confirm storage connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves the index, liveness, and database probes.
type HealthHandler struct {
	startedAt time.Time
	db        Pinger
}

// NewHealthHandler creates the probe handler.
func NewHealthHandler(startedAt time.Time, db Pinger) *HealthHandler {
	return &HealthHandler{startedAt: startedAt, db: db}
}

// Register wires the handler into a ServeMux.
func (h *HealthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.handleIndex)
	mux.HandleFunc("GET /health", h.handleHealth)
	mux.HandleFunc("GET /dbcheck", h.handleDBCheck)
}

func (h *HealthHandler) handleIndex(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"message": "Stock Trader API is running",
		"endpoints": []string{
			"/health", "/dbcheck", "/auth/register", "/auth/login",
			"/account", "/cash/deposit", "/cash/withdraw",
			"/admin/stocks", "/market/tickers",
		},
	})
}

func (h *HealthHandler) handleHealth(w http.ResponseWriter, r *http.Request) {
	host, _ := os.Hostname()
	respond.JSON(w, http.StatusOK, map[string]string{
		"status": "ok",
		"host":   host,
		"uptime": time.Since(h.startedAt).Truncate(time.Second).String(),
	})
}

func (h *HealthHandler) handleDBCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		respond.JSON(w, http.StatusInternalServerError, map[string]any{
			"ok":    false,
			"error": err.Error(),
		})
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"ok": true, "result": 1})
}
