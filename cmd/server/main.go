package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/mcamac38/stock-trader-simulator/internal/cache"
	"github.com/mcamac38/stock-trader-simulator/internal/config"
	"github.com/mcamac38/stock-trader-simulator/internal/server"
	"github.com/mcamac38/stock-trader-simulator/internal/storage/postgres"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	store, err := postgres.New(ctx, cfg.DSN())
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	defer store.Close()

	tickers := newTickerCache(ctx, cfg)

	srv := server.New(cfg, store, tickers)

	go func() {
		log.Printf("stock trader backend listening on %s", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("http server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		log.Printf("graceful shutdown error: %v", err)
	}
}

// newTickerCache connects Redis when configured; nil disables caching.
func newTickerCache(ctx context.Context, cfg config.Config) *cache.TickerCache {
	if cfg.Redis.Addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Printf("redis unavailable, ticker cache disabled: %v", err)
		_ = rdb.Close()
		return nil
	}
	return cache.NewTickerCache(rdb, cfg.Redis.TickerCacheTTL())
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
