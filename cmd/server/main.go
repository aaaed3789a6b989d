package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"gasline/internal/checkout"
	"gasline/internal/config"
	"gasline/internal/infrastructure/logger"
	"gasline/internal/infrastructure/mysql"
	"gasline/internal/server"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	db, err := mysql.NewConnection(cfg.Database)
	if err != nil {
		zapLogger.Fatal("connecting to database", zap.Error(err))
	}
	defer db.Close()
	zapLogger.Info("database connected")

	checkoutCtrl, provisioner := checkout.NewModule(db, cfg, zapLogger)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	go provisioner.Run(workerCtx)

	router := server.NewRouter(checkoutCtrl)
	srv := server.New(cfg.Server, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}
	stopWorker()

	zapLogger.Info("server stopped gracefully")
}
