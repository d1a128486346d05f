package main

import (
	"context"
	"fmt"
	"os"

	"bus-track/internal/config"
	journeyservice "bus-track/internal/journey-service"
	"bus-track/internal/metrics"
	"bus-track/internal/mylogger"
	trackingservice "bus-track/internal/tracking-service"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: app <journey-service|tracking-service|all>")
		os.Exit(1)
	}

	cfg, err := config.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	l, err := mylogger.New(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}

	collector := metrics.NewCollector()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Srv.MetricsAddr != "" {
		go func() {
			if err := collector.Serve(ctx, cfg.Srv.MetricsAddr); err != nil {
				l.Error("metrics listener stopped", err)
			}
		}()
	}

	switch os.Args[1] {
	case "journey-service":
		err = journeyservice.Run(ctx, l, cfg, collector)
	case "tracking-service":
		err = trackingservice.Run(ctx, l, cfg, collector)
	case "all":
		errCh := make(chan error, 2)
		go func() { errCh <- journeyservice.Run(ctx, l, cfg, collector) }()
		go func() { errCh <- trackingservice.Run(ctx, l, cfg, collector) }()
		err = <-errCh
	default:
		fmt.Fprintf(os.Stderr, "unknown service %q\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		l.Error("service exited with error", err)
		os.Exit(1)
	}
}
