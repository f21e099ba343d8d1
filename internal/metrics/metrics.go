// Package metrics builds the OTEL meter provider and serves the prometheus scrape endpoint.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.10.0"
)

// MetricProvider is a meter provider that can be flushed on exit.
type MetricProvider interface {
	Meter(name string, options ...metric.MeterOption) metric.Meter
	Shutdown(ctx context.Context) error
}

func readers(ctx context.Context, cfg Config) ([]sdkmetric.Reader, error) {
	out := make([]sdkmetric.Reader, 0, len(cfg.Provider))
	for _, p := range cfg.Provider {
		switch p.Provider {
		case PrometheusProvider:
			exp, err := prometheus.New()
			if err != nil {
				return nil, fmt.Errorf("prometheus exporter: %w", err)
			}
			out = append(out, exp)
		case OtelCollector:
			opts := []otlpmetricgrpc.Option{
				otlpmetricgrpc.WithEndpointURL(p.Endpoint),
				otlpmetricgrpc.WithHeaders(p.Headers),
			}
			if p.Insecure {
				opts = append(opts, otlpmetricgrpc.WithInsecure())
			}
			exp, err := otlpmetricgrpc.New(ctx, opts...)
			if err != nil {
				return nil, fmt.Errorf("otlp metric exporter: %w", err)
			}
			out = append(out, sdkmetric.NewPeriodicReader(exp))
		default:
			return nil, fmt.Errorf("unknown metric provider %q", p.Provider)
		}
	}
	return out, nil
}

// NewMetricProvider builds a meter provider and installs it globally.
func NewMetricProvider(ctx context.Context, options ...OptionFn) (MetricProvider, error) {
	var cfg Config
	for _, opt := range options {
		cfg = opt(cfg)
	}
	if len(cfg.Provider) == 0 {
		cfg.Provider = append(cfg.Provider, NewPrometheusConfig())
	}

	rs, err := readers(ctx, cfg)
	if err != nil {
		return nil, err
	}

	opts := make([]sdkmetric.Option, 0, len(rs)+1)
	for _, r := range rs {
		opts = append(opts, sdkmetric.WithReader(r))
	}
	opts = append(opts, sdkmetric.WithResource(
		resource.NewSchemaless(semconv.ServiceNameKey.String(cfg.ServiceName)),
	))

	mp := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// ServePrometheus exposes /metrics on port until ctx is cancelled.
func ServePrometheus(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
