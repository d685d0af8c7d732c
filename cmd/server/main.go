package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/HFQ252/Shelflife/internal/config"
	"github.com/HFQ252/Shelflife/internal/db"
	"github.com/HFQ252/Shelflife/internal/logger"
	"github.com/HFQ252/Shelflife/internal/server"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	migrateOnlyFlag = flag.Bool("migrate-only", false, "Run DB migrations and exit")
	seedFlag        = flag.Bool("seed", false, "Seed the demo catalog on startup")
)

func main() {
	flag.Parse()
	_ = godotenv.Load()
	cfg := config.Load()

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger init: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	dbConn, err := db.Connect(cfg)
	if err != nil {
		zlog.Fatal("database init", zap.Error(err))
	}
	if *migrateOnlyFlag {
		zlog.Info("migrations completed; exiting as requested")
		return
	}
	if *seedFlag {
		added := db.SeedDemo(dbConn)
		zlog.Info("demo catalog seeded", zap.Int("added", added))
	}

	zlog.Info("starting server",
		zap.String("env", cfg.Env),
		zap.String("port", cfg.Port),
		zap.String("dsn", db.MaskDSN(cfg.DatabaseDSN)))

	handler := server.New(dbConn, cfg.Env, zlog)
	srv := &http.Server{Addr: ":" + cfg.Port, Handler: handler}

	go func() {
		zlog.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zlog.Error("error during shutdown", zap.Error(err))
	}
	if sqlDB, err := dbConn.DB(); err == nil {
		_ = sqlDB.Close()
	}
	zlog.Info("server gracefully stopped")
}
