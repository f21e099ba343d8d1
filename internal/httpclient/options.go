// Package httpclient provides an HTTP client with OTEL tracing and request metrics.
package httpclient

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// TraceOption selects which payloads are attached to the request span.
type TraceOption string

const (
	TraceRequest  TraceOption = "request"
	TraceResponse TraceOption = "response"
)

type clientOptions struct {
	transport      http.RoundTripper
	meterProvider  metric.MeterProvider
	tracer         trace.Tracer
	providerName   string
	baseURL        string
	headers        map[string]string
	requestTimeout time.Duration
	logRequest     bool
	logResponse    bool
}

// ClientOption configures the client.
type ClientOption func(*clientOptions)

// WithProviderName tags every metric and span with the upstream's name.
func WithProviderName(name string) ClientOption {
	return func(o *clientOptions) { o.providerName = name }
}

// WithBaseURL prefixes relative request paths.
func WithBaseURL(url string) ClientOption {
	return func(o *clientOptions) { o.baseURL = url }
}

// WithRequestTimeout bounds a whole request including body read.
func WithRequestTimeout(timeout time.Duration) ClientOption {
	return func(o *clientOptions) { o.requestTimeout = timeout }
}

// WithHeaders sets headers sent on every request.
func WithHeaders(headers map[string]string) ClientOption {
	return func(o *clientOptions) { o.headers = headers }
}

// WithTransport replaces the base transport. OTEL wrapping is still applied.
func WithTransport(rt http.RoundTripper) ClientOption {
	return func(o *clientOptions) { o.transport = rt }
}

// WithMeterProvider overrides the global meter provider.
func WithMeterProvider(mp metric.MeterProvider) ClientOption {
	return func(o *clientOptions) { o.meterProvider = mp }
}

// WithTraceOptions sets the tracer and enables body capture on spans.
func WithTraceOptions(tracer trace.Tracer, opts ...TraceOption) ClientOption {
	return func(o *clientOptions) {
		o.tracer = tracer
		for _, opt := range opts {
			switch opt {
			case TraceRequest:
				o.logRequest = true
			case TraceResponse:
				o.logResponse = true
			}
		}
	}
}

type requestOptions struct {
	errorHandler ResponseErrorHandler
	labels       []Label
}

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

// ResponseErrorHandler turns a completed response into an error, or nil.
type ResponseErrorHandler func(statusCode int, body []byte) error

// WithResponseErrorHandler installs a per-request error classifier.
func WithResponseErrorHandler(handler ResponseErrorHandler) RequestOption {
	return func(o *requestOptions) { o.errorHandler = handler }
}

// Label is an extra metric attribute.
type Label struct {
	Key   string
	Value string
}

// NewLabel creates a label.
func NewLabel(key, value string) Label {
	return Label{Key: key, Value: value}
}

// WithLabels attaches labels to the request's metrics.
func WithLabels(labels ...Label) RequestOption {
	return func(o *requestOptions) { o.labels = append(o.labels, labels...) }
}
