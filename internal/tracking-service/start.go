package trackingservice

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"bus-track/internal/config"
	"bus-track/internal/metrics"
	"bus-track/internal/mylogger"
	"bus-track/internal/tracking-service/adapters/driver/myhttp"
)

func Run(ctx context.Context, l mylogger.Logger, cfg *config.Config, collector *metrics.Collector) error {
	shutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	server := myhttp.NewServer(shutdown, ctx, l, cfg, collector)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Run()
	}()

	select {
	case <-shutdown.Done():
		l.Info("Gracefully shutting down tracking service...")
		return server.Stop(context.Background())
	case err := <-errCh:
		return err
	}
}
