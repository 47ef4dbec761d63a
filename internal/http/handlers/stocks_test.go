package handlers

import (
	"net/http"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/mcamac38/stock-trader-simulator/internal/models"
)

func TestAdminStocksForbiddenForNonAdmin(t *testing.T) {
	api := newTestAPI(t, apiOptions{})
	token := api.register(t, "Bob Builder", "bob", "bob@example.com", "Secr3t!")

	status, raw := api.do(t, http.MethodPost, "/admin/stocks", token, map[string]any{
		"ticker": "ACME", "company_name": "Acme Corp", "current_price": 10.5,
	})
	if status != http.StatusForbidden {
		t.Fatalf("non-admin upsert: status = %d, body %s", status, raw)
	}
	if detail(t, raw) != "Forbidden" {
		t.Errorf("detail = %q", detail(t, raw))
	}

	status, _ = api.do(t, http.MethodPost, "/admin/stocks", "", map[string]any{
		"ticker": "ACME", "company_name": "Acme Corp", "current_price": 10.5,
	})
	if status != http.StatusUnauthorized {
		t.Errorf("anonymous upsert: status = %d", status)
	}
}

func TestAdminStocksValidation(t *testing.T) {
	api := newTestAPI(t, apiOptions{})
	admin := api.registerAdmin(t, "root")

	cases := []map[string]any{
		{"company_name": "Acme Corp", "current_price": 10.5},                      // no ticker
		{"ticker": "ACME", "current_price": 10.5},                                 // no company
		{"ticker": "ACME", "company_name": "Acme Corp"},                           // no price
		{"ticker": "ACME", "company_name": "Acme Corp", "current_price": 0},       // zero price
		{"ticker": "ACME", "company_name": "Acme Corp", "current_price": -3.1},    // negative price
		{"ticker": "   ", "company_name": "Acme Corp", "current_price": 10.5},     // blank ticker
	}
	for _, body := range cases {
		status, raw := api.do(t, http.MethodPost, "/admin/stocks", admin, body)
		if status != http.StatusBadRequest {
			t.Errorf("body %v: status = %d, response %s", body, status, raw)
		}
	}
}

func TestStockUpsertAndMarket(t *testing.T) {
	api := newTestAPI(t, apiOptions{})
	admin := api.registerAdmin(t, "root")

	// Lowercase ticker is normalized on create.
	status, raw := api.do(t, http.MethodPost, "/admin/stocks", admin, map[string]any{
		"ticker": "acme", "company_name": "Acme Corp", "current_price": 10.5,
		"volume": 1000, "sector": "Explosives",
	})
	if status != http.StatusCreated {
		t.Fatalf("create stock: status = %d, body %s", status, raw)
	}
	created := decodeAs[models.Stock](t, raw)
	if created.Ticker != "ACME" {
		t.Errorf("ticker = %q, want ACME", created.Ticker)
	}
	if !created.CurrentPrice.Equal(decimal.RequireFromString("10.5")) {
		t.Errorf("price = %v, want 10.5", created.CurrentPrice)
	}
	if created.Volume == nil || *created.Volume != 1000 {
		t.Errorf("volume = %v, want 1000", created.Volume)
	}
	if !created.IsListed {
		t.Error("is_listed did not default to true")
	}

	// Upsert with a new price and no volume/sector keeps the stored ones.
	status, raw = api.do(t, http.MethodPost, "/admin/stocks", admin, map[string]any{
		"ticker": "ACME", "company_name": "Acme Corporation", "current_price": 12.25,
	})
	if status != http.StatusCreated {
		t.Fatalf("upsert stock: status = %d, body %s", status, raw)
	}
	updated := decodeAs[models.Stock](t, raw)
	if updated.CompanyName != "Acme Corporation" {
		t.Errorf("company_name = %q", updated.CompanyName)
	}
	if !updated.CurrentPrice.Equal(decimal.RequireFromString("12.25")) {
		t.Errorf("price after upsert = %v, want 12.25", updated.CurrentPrice)
	}
	if updated.Volume == nil || *updated.Volume != 1000 {
		t.Errorf("volume after partial upsert = %v, want kept 1000", updated.Volume)
	}
	if updated.Sector == nil || *updated.Sector != "Explosives" {
		t.Errorf("sector after partial upsert = %v, want kept Explosives", updated.Sector)
	}

	// Public listing reflects the updated price.
	status, raw = api.do(t, http.MethodGet, "/market/tickers", "", nil)
	if status != http.StatusOK {
		t.Fatalf("list tickers: status = %d", status)
	}
	list := decodeAs[[]models.TickerSummary](t, raw)
	if len(list) != 1 || list[0].Ticker != "ACME" {
		t.Fatalf("listing = %s", raw)
	}
	if !list[0].CurrentPrice.Equal(decimal.RequireFromString("12.25")) {
		t.Errorf("listed price = %v, want 12.25", list[0].CurrentPrice)
	}
}

func TestMarketListOrderAndDelisting(t *testing.T) {
	api := newTestAPI(t, apiOptions{})
	admin := api.registerAdmin(t, "root")

	for _, stock := range []map[string]any{
		{"ticker": "ZZZZ", "company_name": "Zulu Inc", "current_price": 5},
		{"ticker": "AAPL", "company_name": "Apple", "current_price": 190},
		{"ticker": "MSFT", "company_name": "Microsoft", "current_price": 410},
		{"ticker": "GONE", "company_name": "Delisted Co", "current_price": 1, "is_listed": false},
	} {
		if status, raw := api.do(t, http.MethodPost, "/admin/stocks", admin, stock); status != http.StatusCreated {
			t.Fatalf("seed %v: status = %d, body %s", stock["ticker"], status, raw)
		}
	}

	_, raw := api.do(t, http.MethodGet, "/market/tickers", "", nil)
	list := decodeAs[[]models.TickerSummary](t, raw)

	want := []string{"AAPL", "MSFT", "ZZZZ"}
	if len(list) != len(want) {
		t.Fatalf("listing = %s, want tickers %v", raw, want)
	}
	for i, ticker := range want {
		if list[i].Ticker != ticker {
			t.Errorf("listing[%d] = %q, want %q", i, list[i].Ticker, ticker)
		}
	}
}

func TestGetTicker(t *testing.T) {
	api := newTestAPI(t, apiOptions{})
	admin := api.registerAdmin(t, "root")

	api.do(t, http.MethodPost, "/admin/stocks", admin, map[string]any{
		"ticker": "ACME", "company_name": "Acme Corp", "current_price": 10.5,
	})

	// Lookup is case-insensitive via normalization.
	status, raw := api.do(t, http.MethodGet, "/market/tickers/acme", "", nil)
	if status != http.StatusOK {
		t.Fatalf("get ticker: status = %d, body %s", status, raw)
	}
	stock := decodeAs[models.Stock](t, raw)
	if stock.Ticker != "ACME" || stock.CompanyName != "Acme Corp" {
		t.Errorf("stock = %s", raw)
	}

	status, raw = api.do(t, http.MethodGet, "/market/tickers/NOPE", "", nil)
	if status != http.StatusNotFound {
		t.Errorf("unknown ticker: status = %d", status)
	}
	if detail(t, raw) != "Not found" {
		t.Errorf("unknown ticker detail = %q", detail(t, raw))
	}
}
