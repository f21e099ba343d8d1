// Package remote calls the adversarial engine over HTTP.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	tradeApp "github.com/fd1az/cap-alpha/business/trade/app"
	"github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/apperror"
	"github.com/fd1az/cap-alpha/internal/circuitbreaker"
	"github.com/fd1az/cap-alpha/internal/httpclient"
	"github.com/fd1az/cap-alpha/internal/logger"
	"github.com/fd1az/cap-alpha/internal/ratelimit"
)

const instrumentationName = "github.com/fd1az/cap-alpha/business/evaluation/infra/remote"

const (
	evaluatePath = "/api/trade/evaluate"
	counterPath  = "/api/trade/counter"
	vegasPath    = "/api/analyze/vegas"
	healthPath   = "/"

	defaultTimeout = 10 * time.Second
)

// Config holds the remote evaluator settings.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerMinute int
	BreakerFailures   uint32
	BreakerTimeout    time.Duration
}

// Evaluator implements the trade evaluator port against the engine HTTP API.
// Each endpoint has its own breaker so a failing vegas model does not stop
// grading. Failures never surface as errors: evaluate degrades to review and
// the others to nil.
type Evaluator struct {
	client  httpclient.Client
	limiter *ratelimit.Limiter
	log     logger.LoggerInterface

	evaluate *circuitbreaker.CircuitBreaker[domain.Evaluation]
	counter  *circuitbreaker.CircuitBreaker[*domain.Asset]
	vegas    *circuitbreaker.CircuitBreaker[map[string]domain.WinImpact]

	fallbacks   metric.Int64Counter
	transitions metric.Int64Counter
}

var (
	_ tradeApp.TradeEvaluator = (*Evaluator)(nil)
	_ tradeApp.Pinger         = (*Evaluator)(nil)
)

// NewEvaluator creates a remote evaluator.
func NewEvaluator(cfg Config, log logger.LoggerInterface) (*Evaluator, error) {
	if cfg.BaseURL == "" {
		return nil, apperror.New(apperror.CodeConfigurationError, apperror.WithContext("engine base url"))
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	client, err := httpclient.NewInstrumentedClient(
		httpclient.WithProviderName("adversarial-engine"),
		httpclient.WithBaseURL(cfg.BaseURL),
		httpclient.WithRequestTimeout(timeout),
		httpclient.WithTraceOptions(otel.Tracer(instrumentationName), httpclient.TraceRequest, httpclient.TraceResponse),
		httpclient.WithHeaders(map[string]string{"Accept": "application/json"}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	fallbacks, err := otel.Meter(instrumentationName).Int64Counter(
		"evaluator_fallbacks_total",
		metric.WithDescription("Evaluator calls answered with a fallback"),
	)
	if err != nil {
		return nil, err
	}
	transitions, err := otel.Meter(instrumentationName).Int64Counter(
		"evaluator_breaker_transitions_total",
		metric.WithDescription("Evaluator circuit breaker state changes, by breaker and target state"),
	)
	if err != nil {
		return nil, err
	}

	breaker := func(endpoint string) circuitbreaker.Config {
		bc := circuitbreaker.DefaultConfig("engine." + endpoint)
		if cfg.BreakerFailures > 0 {
			bc.FailureThreshold = cfg.BreakerFailures
		}
		if cfg.BreakerTimeout > 0 {
			bc.Timeout = cfg.BreakerTimeout
		}
		bc.OnStateChange = func(name string, from, to gobreaker.State) {
			log.Warn(context.Background(), "evaluator breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			transitions.Add(context.Background(), 1, metric.WithAttributes(
				attribute.String("breaker", name),
				attribute.String("state", to.String()),
			))
		}
		return bc
	}

	return &Evaluator{
		client:      client,
		limiter:     ratelimit.New(cfg.RequestsPerMinute),
		log:         log,
		evaluate:    circuitbreaker.New[domain.Evaluation](breaker("evaluate")),
		counter:     circuitbreaker.New[*domain.Asset](breaker("counter")),
		vegas:       circuitbreaker.New[map[string]domain.WinImpact](breaker("vegas")),
		fallbacks:   fallbacks,
		transitions: transitions,
	}, nil
}

// Evaluate grades p. Any failure yields a review evaluation.
func (e *Evaluator) Evaluate(ctx context.Context, p domain.Proposal) domain.Evaluation {
	ev, err := e.evaluate.Execute(func() (domain.Evaluation, error) {
		var out domain.Evaluation
		if err := e.post(ctx, "evaluate", evaluatePath, p, &out); err != nil {
			return domain.Evaluation{}, err
		}
		switch out.Status {
		case domain.StatusAccepted, domain.StatusRejected, domain.StatusReview:
			return out, nil
		}
		return domain.Evaluation{}, apperror.New(apperror.CodeEvaluatorAPIError,
			apperror.WithContext(fmt.Sprintf("unknown status %q", out.Status)))
	})
	if err != nil {
		e.fallback(ctx, "evaluate", err)
		return domain.ReviewEvaluation("")
	}
	return ev
}

// Counter asks the engine for a compensating asset.
func (e *Evaluator) Counter(ctx context.Context, p domain.Proposal) *domain.Asset {
	asset, err := e.counter.Execute(func() (*domain.Asset, error) {
		var out *domain.Asset
		if err := e.post(ctx, "counter", counterPath, p, &out); err != nil {
			return nil, err
		}
		if out == nil || out.ID == "" {
			return nil, nil
		}
		return out, nil
	})
	if err != nil {
		e.fallback(ctx, "counter", err)
		return nil
	}
	return asset
}

// VegasImpact fetches projected win changes per team.
func (e *Evaluator) VegasImpact(ctx context.Context, p domain.Proposal) map[string]domain.WinImpact {
	wins, err := e.vegas.Execute(func() (map[string]domain.WinImpact, error) {
		var out map[string]domain.WinImpact
		if err := e.post(ctx, "vegas", vegasPath, p, &out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		e.fallback(ctx, "vegas", err)
		return nil
	}
	if len(wins) == 0 {
		return nil
	}
	return wins
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

// Ping checks the engine root endpoint.
func (e *Evaluator) Ping(ctx context.Context) error {
	var out healthResponse
	_, err := e.client.NewRequestWithOptions(
		httpclient.WithLabels(httpclient.NewLabel("endpoint", "health")),
		httpclient.WithResponseErrorHandler(engineErrorHandler),
	).SetResult(&out).Get(ctx, healthPath)
	if err != nil {
		return apperror.New(apperror.CodeEvaluatorConnectionFailed, apperror.WithCause(err))
	}
	if out.Status != "ok" {
		return apperror.New(apperror.CodeServiceUnavailable, apperror.WithContext("engine status "+out.Status))
	}
	return nil
}

func (e *Evaluator) post(ctx context.Context, endpoint, path string, body, result any) error {
	if err := e.limiter.Wait(ctx); err != nil {
		return err
	}
	_, err := e.client.NewRequestWithOptions(
		httpclient.WithLabels(httpclient.NewLabel("endpoint", endpoint)),
		httpclient.WithResponseErrorHandler(engineErrorHandler),
	).SetBody(body).SetResult(result).Post(ctx, path)
	if err != nil {
		if apperror.IsAppError(err) {
			return err
		}
		return apperror.New(apperror.CodeEvaluatorConnectionFailed, apperror.WithCause(err), apperror.WithContext(endpoint))
	}
	return nil
}

func (e *Evaluator) fallback(ctx context.Context, endpoint string, err error) {
	e.fallbacks.Add(ctx, 1, metric.WithAttributes(
		attribute.String("endpoint", endpoint),
		attribute.String("code", string(apperror.GetCode(err))),
	))
	e.log.Warn(ctx, "evaluator call failed, using fallback", "endpoint", endpoint, "error", err)
}

// engineError is the FastAPI-style error body.
type engineError struct {
	Detail any `json:"detail"`
}

func engineErrorHandler(statusCode int, body []byte) error {
	if statusCode < 400 {
		return nil
	}
	detail := string(body)
	var apiErr engineError
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Detail != nil {
		detail = fmt.Sprint(apiErr.Detail)
	}
	return apperror.New(apperror.CodeEvaluatorAPIError,
		apperror.WithContext(fmt.Sprintf("HTTP %d: %s", statusCode, detail)))
}
