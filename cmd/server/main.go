package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/actuallystonmai/catalog-service/internal/app"
	"github.com/actuallystonmai/catalog-service/internal/config"
	"github.com/actuallystonmai/catalog-service/internal/handler"
	"github.com/actuallystonmai/catalog-service/internal/logging"
	"github.com/actuallystonmai/catalog-service/internal/metrics"
	"github.com/actuallystonmai/catalog-service/internal/router"
	"github.com/actuallystonmai/catalog-service/seeds"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config %v", err)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.Debug)
	if err != nil {
		log.Fatalf("failed to build logger %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ------------ Metrics ---------------
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// ------------ Search + Cache ---------------
	a, err := app.New(ctx, cfg, logger, m)
	if err != nil {
		logger.Fatal("failed to connect backends", zap.Error(err))
	}
	defer a.Close()
	logger.Info("backends ready",
		zap.String("search", cfg.SearchBackend),
		zap.String("cache", cfg.CacheBackend),
	)

	// ------------ Setup Seed Data ---------------
	if cfg.SeedOnStart {
		if err := seeds.Check(ctx, a.Search, logger); err != nil {
			logger.Fatal("failed to check seed", zap.Error(err))
		}
	}

	// ---------------- Server --------------------
	h := handler.NewHandler(a.Catalog, logger)
	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: router.Setup(h, router.Options{
			Logger:    logger,
			Debug:     cfg.Debug,
			SecretKey: cfg.SecretKey,
			Checks:    a.Checks(),
			Metrics:   promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("server running", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}
