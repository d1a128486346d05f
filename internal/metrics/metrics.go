package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector bundles the prometheus instruments both services report into.
type Collector struct {
	reg *prometheus.Registry

	Searches       *prometheus.CounterVec // outcome label: direct|multi_hop|not_found|error
	SearchDuration prometheus.Histogram

	CacheHits   prometheus.Counter
	CacheMisses prometheus.Counter

	GeocodeFailures prometheus.Counter

	FixesIngested *prometheus.CounterVec // source label: http|ws|amqp
	FixErrors     prometheus.Counter

	QueuedStatesPeak prometheus.Histogram
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bustrack_searches_total",
			Help: "Journey searches by outcome.",
		}, []string{"outcome"}),
		SearchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bustrack_search_duration_seconds",
			Help:    "Duration of a full journey search including assembly.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15),
		}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bustrack_cache_hits_total",
			Help: "Journey cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bustrack_cache_misses_total",
			Help: "Journey cache misses.",
		}),
		GeocodeFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bustrack_geocode_failures_total",
			Help: "Reverse geocoding calls that fell back to the placeholder.",
		}),
		FixesIngested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "bustrack_fixes_ingested_total",
			Help: "Position fixes recorded, by ingest source.",
		}, []string{"source"}),
		FixErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bustrack_fix_errors_total",
			Help: "Position fixes rejected or failed to persist.",
		}),
		QueuedStatesPeak: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "bustrack_search_states_enqueued",
			Help:    "States enqueued per multi-hop search.",
			Buckets: prometheus.ExponentialBuckets(8, 2, 12),
		}),
	}

	reg.MustRegister(
		c.Searches,
		c.SearchDuration,
		c.CacheHits,
		c.CacheMisses,
		c.GeocodeFailures,
		c.FixesIngested,
		c.FixErrors,
		c.QueuedStatesPeak,
	)

	return c
}

// Serve exposes /metrics on addr until ctx is cancelled. Empty addr disables
// the listener.
func (c *Collector) Serve(ctx context.Context, addr string) error {
	if addr == "" {
		<-ctx.Done()
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux}
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}
