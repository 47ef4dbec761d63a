package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/mcamac38/stock-trader-simulator/internal/cache"
	"github.com/mcamac38/stock-trader-simulator/internal/http/respond"
	"github.com/mcamac38/stock-trader-simulator/internal/middleware"
	"github.com/mcamac38/stock-trader-simulator/internal/models"
	"github.com/mcamac38/stock-trader-simulator/internal/models/dto"
	"github.com/mcamac38/stock-trader-simulator/internal/storage"
)

const tickerListLimit = 500

// StockHandler owns the admin stock registry and the public market endpoints.
type StockHandler struct {
	store   storage.StockStore
	tickers *cache.TickerCache
}

// NewStockHandler constructs the handler. tickers may be nil (no caching).
func NewStockHandler(store storage.StockStore, tickers *cache.TickerCache) *StockHandler {
	return &StockHandler{store: store, tickers: tickers}
}

// Register attaches the market routes; the admin route goes behind protect.
func (h *StockHandler) Register(mux *http.ServeMux, protect func(http.Handler) http.Handler) {
	mux.Handle("POST /admin/stocks", protect(http.HandlerFunc(h.handleUpsert)))
	mux.HandleFunc("GET /market/tickers", h.handleList)
	mux.HandleFunc("GET /market/tickers/{ticker}", h.handleGet)
}

func (h *StockHandler) handleUpsert(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		respond.Detail(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	if !user.IsAdmin() {
		respond.Detail(w, http.StatusForbidden, "Forbidden")
		return
	}

	var req dto.UpsertStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Detail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	ticker := strings.ToUpper(strings.TrimSpace(req.Ticker))
	companyName := strings.TrimSpace(req.CompanyName)
	if ticker == "" || companyName == "" || !req.CurrentPrice.IsPositive() {
		respond.Detail(w, http.StatusBadRequest, "Ticker, company name, and positive current price required")
		return
	}

	// Omitted is_listed defaults to true, matching the column default.
	isListed := true
	if req.IsListed != nil {
		isListed = *req.IsListed
	}
	sector := req.Sector
	if sector != nil && strings.TrimSpace(*sector) == "" {
		sector = nil
	}

	stock, err := h.store.UpsertStock(r.Context(), models.Stock{
		Ticker:       ticker,
		CompanyName:  companyName,
		CurrentPrice: req.CurrentPrice,
		Volume:       req.Volume,
		Sector:       sector,
		IsListed:     isListed,
		CreatedBy:    user.ID,
	})
	if err != nil {
		log.Printf("upsert stock %s: %v", ticker, err)
		respond.Detail(w, http.StatusInternalServerError, "failed to save stock")
		return
	}

	if err := h.tickers.Invalidate(r.Context()); err != nil {
		log.Printf("invalidate ticker cache: %v", err)
	}
	respond.JSON(w, http.StatusCreated, stock)
}

func (h *StockHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if cached, err := h.tickers.Get(r.Context()); err != nil {
		log.Printf("ticker cache read: %v", err)
	} else if cached != nil {
		respond.JSON(w, http.StatusOK, cached)
		return
	}

	list, err := h.store.ListListedStocks(r.Context(), tickerListLimit)
	if err != nil {
		log.Printf("list tickers: %v", err)
		respond.Detail(w, http.StatusInternalServerError, "failed to list tickers")
		return
	}

	if err := h.tickers.Set(r.Context(), list); err != nil {
		log.Printf("ticker cache write: %v", err)
	}
	respond.JSON(w, http.StatusOK, list)
}

func (h *StockHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	ticker := strings.ToUpper(strings.TrimSpace(r.PathValue("ticker")))
	if ticker == "" {
		respond.Detail(w, http.StatusBadRequest, "ticker required")
		return
	}

	stock, err := h.store.GetStock(r.Context(), ticker)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Detail(w, http.StatusNotFound, "Not found")
			return
		}
		log.Printf("get ticker %s: %v", ticker, err)
		respond.Detail(w, http.StatusInternalServerError, "failed to fetch ticker")
		return
	}
	respond.JSON(w, http.StatusOK, stock)
}
