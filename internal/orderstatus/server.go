package orderstatus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"order-status/internal/orderstatus/handlers"
	"order-status/internal/orderstatus/middleware"
	"order-status/pkg/logging"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
}

type Service interface {
	handlers.KeyResolvingService
	handlers.OrdersListingService
	handlers.OrdersExportService
}

type MetricsRegistry interface {
	middleware.RequestObserver
	Handler() http.Handler
}

type Server struct {
	logger     *logging.ZapLogger
	httpServer *http.Server
	cfg        Config
}

func NewServer(
	cfg Config,
	service Service,
	metrics MetricsRegistry,
	logger *logging.ZapLogger,
) *Server {
	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           createMux(service, metrics, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: srv,
	}
}

func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server ListenAndServe failed: %w", err)
	}
	return nil
}

func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}

func createMux(
	service Service,
	metrics MetricsRegistry,
	logger *logging.ZapLogger,
) *chi.Mux {
	jobOrderStatusHandler := handlers.NewJobOrderStatusHandler(service, logger)
	ordersGettingHandler := handlers.NewOrdersGettingHandler(service, logger)
	ordersExportHandler := handlers.NewOrdersExportHandler(service, logger)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.NewLoggerContext().CreateHandler)
	router.Use(middleware.NewMetrics(metrics).CreateHandler)
	router.Use(middleware.NewPanicRecover(logger).CreateHandler)

	router.Route("/api/log", func(router chi.Router) {
		router.Post("/joborderstatus", jobOrderStatusHandler.ServeHTTP)
		router.Post("/getjoborder", ordersGettingHandler.ServeHTTP)
		router.Post("/getjoborder/export", ordersExportHandler.ServeHTTP)
	})
	router.Handle("/metrics", metrics.Handler())
	router.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return router
}
