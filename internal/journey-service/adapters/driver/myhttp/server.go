package myhttp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"bus-track/internal/config"
	"bus-track/internal/journey-service/adapters/driven/cache"
	"bus-track/internal/journey-service/adapters/driven/db"
	"bus-track/internal/journey-service/adapters/driven/geocode"
	"bus-track/internal/journey-service/adapters/driver/myhttp/handle"
	"bus-track/internal/journey-service/adapters/driver/myhttp/middleware"
	"bus-track/internal/journey-service/core/services"
	"bus-track/internal/metrics"
	"bus-track/internal/mylogger"
)

const WaitTime = 10

type Server struct {
	mux       *http.ServeMux
	cfg       *config.Config
	srv       *http.Server
	mylog     mylogger.Logger
	db        *db.DataBase
	cache     *cache.Cache
	collector *metrics.Collector
	ctx       context.Context
	appCtx    context.Context
	mu        sync.Mutex
	stopCh    chan struct{}
}

func NewServer(ctx, appCtx context.Context, mylog mylogger.Logger, cfg *config.Config, collector *metrics.Collector) *Server {
	return &Server{
		ctx:       ctx,
		appCtx:    appCtx,
		cfg:       cfg,
		mylog:     mylog,
		collector: collector,
		mux:       http.NewServeMux(),
		stopCh:    make(chan struct{}),
	}
}

// Run initializes routes and starts listening. It returns when the server stops.
func (s *Server) Run() error {
	mylog := s.mylog.Action("journey_server_started")

	database, err := db.ConnectDB(s.ctx, s.cfg.DB, mylog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = database
	mylog.Info("Successful database connection")

	s.cache = cache.New()
	s.cache.StartCleanup(s.cfg.Search.CacheTTL, s.stopCh)

	s.Configure()

	s.mu.Lock()
	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%v", s.cfg.Srv.JourneyServicePort),
		Handler: s.mux,
	}
	s.mu.Unlock()

	mylog = mylog.WithGroup("details").With("port", s.cfg.Srv.JourneyServicePort)
	mylog.Info("server is running")
	return s.startHTTPServer()
}

// Stop provides a programmatic shutdown. Accepts a context for timeout control.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mylog.Info("Shutting down journey HTTP server...")
	close(s.stopCh)

	if s.srv != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, WaitTime*time.Second)
		defer cancel()

		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.mylog.Error("Failed to shut down HTTP server gracefully", err)
			return fmt.Errorf("http server shutdown: %w", err)
		}
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.mylog.Error("Failed to close database", err)
			return fmt.Errorf("db close: %w", err)
		}
		s.mylog.Info("Database closed")
	}

	s.mylog.Info("Journey HTTP server shut down gracefully")
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

// Configure sets up the HTTP handlers for journey search, fares and the
// fleet overview.
func (s *Server) Configure() {
	// Repositories
	trackRepo := db.NewTrackRepo(s.db)
	profileRepo := db.NewProfileRepo(s.db)
	overviewRepo := db.NewOverviewRepo(s.db)

	geocoder := geocode.NewClient(s.cfg.Geocoder)

	// services
	journeyService := services.NewJourneyService(
		s.mylog,
		s.cfg.Search,
		s.cfg.Geocoder,
		trackRepo,
		profileRepo,
		s.cache,
		geocoder,
		s.collector,
	)
	overviewService := services.NewOverviewService(s.mylog, overviewRepo, s.cache)

	// handlers
	journeyHandler := handle.NewJourneyHandler(journeyService, s.mylog)
	overviewHandler := handle.NewOverviewHandler(overviewService, s.mylog)

	authMiddleware := middleware.NewAuthMiddleware(s.cfg.App.PublicJwtSecret)

	// Register routes
	s.mux.Handle("GET /routes/search", journeyHandler.FindJourney())
	s.mux.Handle("GET /buses/{device_id}/fare", journeyHandler.CalculateFare())
	s.mux.Handle("GET /admin/overview", authMiddleware.RequireRole("ADMIN", overviewHandler.GetOverview()))
}
