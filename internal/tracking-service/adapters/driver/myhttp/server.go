package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"bus-track/internal/config"
	"bus-track/internal/metrics"
	"bus-track/internal/mylogger"
	"bus-track/internal/tracking-service/adapters/driven/bm"
	"bus-track/internal/tracking-service/adapters/driven/consume"
	"bus-track/internal/tracking-service/adapters/driven/db"
	"bus-track/internal/tracking-service/adapters/driven/notify"
	"bus-track/internal/tracking-service/adapters/driver/myhttp/handlers"
	"bus-track/internal/tracking-service/adapters/driver/myhttp/middleware"
	"bus-track/internal/tracking-service/core/ports/driven"
	"bus-track/internal/tracking-service/core/services"
)

const WaitTime = 10

type Server struct {
	mux       *http.ServeMux
	cfg       *config.Config
	srv       *http.Server
	mylog     mylogger.Logger
	db        *db.DB
	broker    driven.IFixBroker
	collector *metrics.Collector
	ctx       context.Context
	appCtx    context.Context
	mu        sync.Mutex
}

func NewServer(ctx, appCtx context.Context, mylog mylogger.Logger, cfg *config.Config, collector *metrics.Collector) *Server {
	return &Server{
		ctx:       ctx,
		appCtx:    appCtx,
		cfg:       cfg,
		mylog:     mylog,
		collector: collector,
		mux:       http.NewServeMux(),
	}
}

// Run connects the database and broker, wires handlers and starts listening.
// It returns when the server stops.
func (s *Server) Run() error {
	mylog := s.mylog.Action("tracking_server_started")

	database, err := db.New(s.ctx, s.cfg.DB, mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = database
	mylog.Info("Successful database connection")

	broker, err := bm.New(s.appCtx, *s.cfg.RabbitMq, mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}
	s.broker = broker
	mylog.Info("Successful rabbitmq connection")

	if err := s.Configure(); err != nil {
		return fmt.Errorf("failed to configure server: %w", err)
	}

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.TrackingServicePort),
		Handler: s.mux,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.TrackingServicePort)
	mylog.Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Info("Shutting down tracking HTTP server...")

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.broker != nil {
		if err := s.broker.Close(); err != nil {
			s.mylog.Error("Failed to close rabbitmq connection", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.mylog.Error("Failed to close database", err)
			return fmt.Errorf("db close: %w", err)
		}
		s.mylog.Info("Database closed")
	}

	s.mylog.Info("Tracking HTTP server shut down gracefully")
	return nil
}

func (s *Server) startHTTPServer() error {
	errCh := make(chan error, 1)

	go func() {
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		} else {
			errCh <- nil
		}
	}()

	select {
	case <-s.ctx.Done():
		return nil
	case err := <-errCh:
		return err
	}
}

// Configure wires repositories, the tracking service and the fix consumers.
func (s *Server) Configure() error {
	trackRepo := db.NewTrackRepo(s.db)
	notifier := notify.New(s.broker)

	trackingService := services.NewTrackingService(s.mylog, trackRepo, notifier, s.collector, s.cfg.Search.MaxRoutePoints)

	fixHandler := handlers.NewFixHandler(trackingService, s.mylog)

	authMiddleware := middleware.NewAuthMiddleware(s.cfg.App.PublicJwtSecret)
	wsHandler := handlers.NewWebSocketHandler(trackingService, authMiddleware, s.mylog)

	consumer := consume.NewConsumer(s.appCtx, s.broker, trackingService, s.mylog)
	if err := consumer.SubscribeForFixes(); err != nil {
		return fmt.Errorf("failed to subscribe for fixes: %w", err)
	}

	s.mux.Handle("POST /buses/{device_id}/location",
		authMiddleware.RequireRole("DEVICE", http.HandlerFunc(fixHandler.RecordFix)))
	s.mux.Handle("PUT /buses/{device_id}",
		authMiddleware.RequireRole("ADMIN", http.HandlerFunc(fixHandler.UpsertProfile)))
	s.mux.HandleFunc("GET /ws/buses/{device_id}", wsHandler.HandleBusWebsocket)

	return nil
}
