package main

import (
	"context"
	"fmt"
	"log"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"order-status/cmd/orderstatus/config"
	"order-status/internal/orderstatus"
	"order-status/internal/orderstatus/data/database"
	"order-status/internal/orderstatus/data/dbrepository"
	"order-status/internal/orderstatus/export"
	"order-status/internal/orderstatus/legacygateway"
	"order-status/internal/orderstatus/metrics"
	"order-status/internal/orderstatus/service"
	"order-status/pkg/logging"
	"order-status/pkg/pgxstorage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := logging.NewZapLogger(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	rootCtx, cancelCtx := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
		syscall.SIGABRT,
	)
	defer cancelCtx()

	dbFactory := database.NewPgxDatabaseFactory(cfg.DB)
	storage, err := pgxstorage.New(rootCtx, dbFactory, pgxstorage.Config{
		RetryAttemptDelays: []time.Duration{time.Second, 3 * time.Second, 5 * time.Second},
	})
	if err != nil {
		logger.ErrorCtx(rootCtx, "failed to connect to database", zap.Error(err))
		return
	}
	defer storage.Close()

	registry := metrics.NewRegistry()
	repository := dbrepository.New(storage, cfg.Supplier, logger)
	gateway := legacygateway.New(cfg.Gateway, logger, registry)
	sink := export.NewXLSXSink(cfg.ExportDir, logger)
	resolver := service.NewResolver(cfg.Resolver, repository, gateway, sink, registry, logger)

	server := orderstatus.NewServer(cfg.Server, resolver, registry, logger)

	logger.InfoCtx(rootCtx, "starting server",
		zap.String("address", cfg.Server.ServerAddress),
		zap.String("legacyEndpoint", cfg.Gateway.Endpoint),
		zap.Int("enrichWorkers", cfg.Resolver.EnrichWorkers),
	)
	if err := run(rootCtx, cfg, server, logger); err != nil {
		logger.ErrorCtx(rootCtx, "Server shutdown with error", zap.Error(err))
	} else {
		logger.InfoCtx(rootCtx, "Server shutdown gracefully")
	}
}

func run(rootCtx context.Context, cfg *config.Config, server *orderstatus.Server, logger *logging.ZapLogger) error {
	g, ctx := errgroup.WithContext(rootCtx)

	context.AfterFunc(ctx, func() {
		ctx, cancelCtx := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancelCtx()

		<-ctx.Done()
		log.Fatal("failed to gracefully shutdown the server")
	})

	g.Go(func() error {
		if err := server.Run(); err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		defer logger.InfoCtx(ctx, "Shutting down server")
		<-ctx.Done()
		if err := server.Shutdown(); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("goroutine error occured: %w", err)
	}

	return nil
}
