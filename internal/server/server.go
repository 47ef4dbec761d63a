package server

import (
	"context"
	"net/http"
	"time"

	"github.com/mcamac38/stock-trader-simulator/internal/auth"
	"github.com/mcamac38/stock-trader-simulator/internal/cache"
	"github.com/mcamac38/stock-trader-simulator/internal/config"
	"github.com/mcamac38/stock-trader-simulator/internal/http/handlers"
	"github.com/mcamac38/stock-trader-simulator/internal/middleware"
	"github.com/mcamac38/stock-trader-simulator/internal/storage"
)

// Store is the combined persistence surface the server needs.
type Store interface {
	storage.UserStore
	storage.StockStore
	handlers.Pinger
}

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store Store, tickers *cache.TickerCache) *Server {
	mux := http.NewServeMux()

	tokenManager := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL())
	resolver := auth.NewSessionResolver(tokenManager, store, cfg.LegacyTokenFallback)
	protect := func(next http.Handler) http.Handler {
		return middleware.RequireUser(resolver, next)
	}

	handlers.NewHealthHandler(time.Now(), store).Register(mux)
	handlers.NewAuthHandler(store, tokenManager, cfg.InitialBalance()).Register(mux)
	handlers.NewAccountHandler(store).Register(mux, protect)
	handlers.NewStockHandler(store, tickers).Register(mux, protect)

	handler := middleware.CORS(cfg.CORSOrigins(), middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
