package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Request builds and executes one HTTP call.
type Request interface {
	Get(ctx context.Context, path string) (*Response, error)
	Post(ctx context.Context, path string) (*Response, error)

	SetBody(body any) Request
	SetHeader(key, value string) Request
	SetQueryParam(key, value string) Request
	SetResult(result any) Request
}

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	body       []byte
}

// Body returns the raw response body.
func (r *Response) Body() []byte { return r.body }

// IsError reports a 4xx or 5xx status.
func (r *Response) IsError() bool { return r.StatusCode >= 400 }

type requestBuilder struct {
	c       *InstrumentedClient
	headers map[string]string
	query   url.Values
	body    any
	result  any
	opts    requestOptions
}

func (r *requestBuilder) Get(ctx context.Context, path string) (*Response, error) {
	return r.execute(ctx, http.MethodGet, path)
}

func (r *requestBuilder) Post(ctx context.Context, path string) (*Response, error) {
	return r.execute(ctx, http.MethodPost, path)
}

// SetBody sets the payload. Values other than []byte, string and io.Reader are JSON encoded.
func (r *requestBuilder) SetBody(body any) Request {
	r.body = body
	return r
}

func (r *requestBuilder) SetHeader(key, value string) Request {
	r.headers[key] = value
	return r
}

func (r *requestBuilder) SetQueryParam(key, value string) Request {
	if r.query == nil {
		r.query = url.Values{}
	}
	r.query.Set(key, value)
	return r
}

// SetResult sets the value a 2xx JSON body is decoded into.
func (r *requestBuilder) SetResult(result any) Request {
	r.result = result
	return r
}

func (r *requestBuilder) resolve(path string) string {
	full := path
	if base := r.c.opts.baseURL; base != "" && !strings.HasPrefix(path, "http") {
		full = strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
	}
	if len(r.query) > 0 {
		sep := "?"
		if strings.Contains(full, "?") {
			sep = "&"
		}
		full += sep + r.query.Encode()
	}
	return full
}

func (r *requestBuilder) encodeBody() (io.Reader, []byte, error) {
	switch b := r.body.(type) {
	case nil:
		return nil, nil, nil
	case []byte:
		return bytes.NewReader(b), b, nil
	case string:
		return strings.NewReader(b), []byte(b), nil
	case io.Reader:
		return b, nil, nil
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal body: %w", err)
		}
		if _, ok := r.headers["Content-Type"]; !ok {
			r.headers["Content-Type"] = "application/json"
		}
		return bytes.NewReader(raw), raw, nil
	}
}

func (r *requestBuilder) execute(ctx context.Context, method, path string) (*Response, error) {
	start := time.Now()
	fullURL := r.resolve(path)

	ctx, span := r.c.opts.tracer.Start(ctx, "http.request",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("http.url", fullURL),
			r.c.providerAttr,
		),
	)
	defer span.End()

	bodyReader, raw, err := r.encodeBody()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "encode body")
		return nil, err
	}
	if r.c.opts.logRequest && raw != nil {
		span.AddEvent("request.body", trace.WithAttributes(attribute.String("http.request_body", string(raw))))
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bodyReader)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "build request")
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range r.headers {
		req.Header.Set(k, v)
	}

	resp, err := r.c.client.Do(req)
	if err != nil {
		r.recordTransportError(ctx, span, err, start)
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		r.recordTransportError(ctx, span, err, start)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))
	if r.c.opts.logResponse {
		span.AddEvent("response.body", trace.WithAttributes(attribute.String("http.response_body", string(body))))
	}

	out := &Response{StatusCode: resp.StatusCode, Header: resp.Header, body: body}

	if h := r.opts.errorHandler; h != nil {
		if herr := h(resp.StatusCode, body); herr != nil {
			span.SetStatus(codes.Error, herr.Error())
			r.record(ctx, false, resp.StatusCode, start)
			return out, herr
		}
	}

	if r.result != nil && !out.IsError() && len(body) > 0 {
		if err := json.Unmarshal(body, r.result); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "decode body")
			r.record(ctx, false, resp.StatusCode, start)
			return out, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	r.record(ctx, !out.IsError(), resp.StatusCode, start)
	return out, nil
}

func (r *requestBuilder) recordTransportError(ctx context.Context, span trace.Span, err error, start time.Time) {
	span.RecordError(err)
	if errors.Is(err, context.Canceled) {
		span.SetAttributes(attribute.Bool("context.cancelled", true))
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		span.SetAttributes(attribute.Bool("request.timeout", true))
	}
	span.SetStatus(codes.Error, err.Error())
	r.record(ctx, false, 0, start)
}

func (r *requestBuilder) record(ctx context.Context, success bool, status int, start time.Time) {
	attrs := make([]attribute.KeyValue, 0, len(r.opts.labels)+3)
	attrs = append(attrs, r.c.providerAttr, attribute.Bool("success", success), attribute.Int("status", status))
	for _, l := range r.opts.labels {
		attrs = append(attrs, attribute.String(l.Key, l.Value))
	}
	set := metric.WithAttributes(attrs...)
	r.c.requests.Add(ctx, 1, set)
	r.c.durations.Record(ctx, float64(time.Since(start).Microseconds())/1000, set)
}
