// Package metrics exposes simulation timings and body state to Prometheus.
package metrics

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "orrery"

// Collector holds the simulation's metrics on a registry of its own, so any
// number of simulations can live in one process.
type Collector struct {
	registry *prometheus.Registry

	ticksTotal     prometheus.Counter
	tickDuration   prometheus.Histogram
	systemDuration *prometheus.HistogramVec
	bodyTheta      *prometheus.GaugeVec
	bodyRotation   *prometheus.GaugeVec
	bodyPosition   *prometheus.GaugeVec
	cameraDistance *prometheus.GaugeVec
}

func NewCollector() *Collector {
	buckets := prometheus.ExponentialBuckets(1e-6, 4, 10)

	c := &Collector{
		registry: prometheus.NewRegistry(),
		ticksTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "ticks_total",
				Help:      "Total number of simulation ticks",
			},
		),
		tickDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tick_duration_seconds",
				Help:      "Time spent executing a whole tick",
				Buckets:   buckets,
			},
		),
		systemDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "system_duration_seconds",
				Help:      "Time spent executing one system",
				Buckets:   buckets,
			},
			[]string{"system"},
		),
		bodyTheta: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "body_theta_radians",
				Help:      "Current orbital angle of a body",
			},
			[]string{"body"},
		),
		bodyRotation: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "body_rotation_radians",
				Help:      "Current self rotation of a body",
			},
			[]string{"body"},
		),
		bodyPosition: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "body_position",
				Help:      "Current position of a body in scene units",
			},
			[]string{"body", "axis"},
		),
		cameraDistance: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "camera_target_distance",
				Help:      "Distance from a camera to the point it looks at",
			},
			[]string{"camera"},
		),
	}

	c.registry.MustRegister(
		c.ticksTotal,
		c.tickDuration,
		c.systemDuration,
		c.bodyTheta,
		c.bodyRotation,
		c.bodyPosition,
		c.cameraDistance,
	)
	return c
}

// ObserveSystem records one system execution.
func (c *Collector) ObserveSystem(name string, d time.Duration) {
	c.systemDuration.WithLabelValues(name).Observe(d.Seconds())
}

// ObserveTick records one completed tick.
func (c *Collector) ObserveTick(tick uint64, d time.Duration) {
	c.ticksTotal.Inc()
	c.tickDuration.Observe(d.Seconds())
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (c *Collector) Serve(ctx context.Context, addr string, logger *log.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Printf("serving metrics on http://%s/metrics", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
