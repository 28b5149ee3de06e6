package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/minhvo/go-ev-store/internal/cache"
	"github.com/minhvo/go-ev-store/internal/config"
	"github.com/minhvo/go-ev-store/internal/database"
	"github.com/minhvo/go-ev-store/internal/httpapi"
)

func main() {
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		slog.Error("connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("connected to database")

	store := cache.NewNoop()
	if cfg.Redis.Addr != "" {
		store = cache.NewRedisCache(cfg.Redis.Addr, "ev-store")
		slog.Info("vehicle cache enabled", "addr", cfg.Redis.Addr)
	}

	server := httpapi.NewServer(cfg, db, store)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      server.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	slog.Info("server starting", "port", cfg.Server.Port)
	if err := httpServer.ListenAndServe(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}
