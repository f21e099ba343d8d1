package httpclient

import (
	"context"
	"maps"
	"net"
	"net/http"
	"net/http/httptrace"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/httptrace/otelhttptrace"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	defaultDialKeepAlive   = 10 * time.Second
	defaultRequestTimeout  = 10 * time.Second
	defaultMaxConnsPerHost = 5
	defaultIdleConnTimeout = 2 * time.Minute

	meterName              = "instrumented_http_client"
	metricRequestCounter   = "http_client_requests_total"
	metricRequestDurations = "http_client_request_duration_ms"
)

// Client builds requests against a single upstream.
type Client interface {
	NewRequest() Request
	NewRequestWithOptions(opts ...RequestOption) Request
}

// InstrumentedClient wraps http.Client with OTEL transport, a request counter
// and a latency histogram.
type InstrumentedClient struct {
	client       *http.Client
	requests     metric.Int64Counter
	durations    metric.Float64Histogram
	opts         clientOptions
	providerAttr attribute.KeyValue
}

// NewInstrumentedClient creates a client from options.
func NewInstrumentedClient(opts ...ClientOption) (*InstrumentedClient, error) {
	o := clientOptions{providerName: "default", requestTimeout: defaultRequestTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	base := o.transport
	if base == nil {
		base = &http.Transport{
			DialContext:     (&net.Dialer{KeepAlive: defaultDialKeepAlive}).DialContext,
			MaxConnsPerHost: defaultMaxConnsPerHost,
			IdleConnTimeout: defaultIdleConnTimeout,
		}
	}

	httpClient := &http.Client{
		Timeout: o.requestTimeout,
		Transport: otelhttp.NewTransport(base,
			otelhttp.WithClientTrace(func(ctx context.Context) *httptrace.ClientTrace {
				return otelhttptrace.NewClientTrace(ctx)
			}),
		),
	}

	mp := o.meterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	requests, err := meter.Int64Counter(metricRequestCounter,
		metric.WithDescription("Total number of HTTP requests"))
	if err != nil {
		return nil, err
	}
	durations, err := meter.Float64Histogram(metricRequestDurations,
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	if o.tracer == nil {
		o.tracer = otel.Tracer(meterName)
	}

	return &InstrumentedClient{
		client:       httpClient,
		requests:     requests,
		durations:    durations,
		opts:         o,
		providerAttr: attribute.String("provider", o.providerName),
	}, nil
}

// NewRequest creates a request builder.
func (c *InstrumentedClient) NewRequest() Request {
	return c.NewRequestWithOptions()
}

// NewRequestWithOptions creates a request builder with per-request options.
func (c *InstrumentedClient) NewRequestWithOptions(opts ...RequestOption) Request {
	var ro requestOptions
	for _, opt := range opts {
		opt(&ro)
	}
	headers := make(map[string]string, len(c.opts.headers))
	maps.Copy(headers, c.opts.headers)

	return &requestBuilder{
		c:       c,
		headers: headers,
		opts:    ro,
	}
}
