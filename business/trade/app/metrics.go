package app

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/fd1az/cap-alpha/business/trade/domain"
)

const meterName = "github.com/fd1az/cap-alpha/business/trade"

type orchestratorMetrics struct {
	simulations    metric.Int64Counter
	staleDiscards  metric.Int64Counter
	counterOffers  metric.Int64Counter
	simulationTime metric.Float64Histogram
	score          metric.Float64Histogram
}

func newOrchestratorMetrics() (*orchestratorMetrics, error) {
	meter := otel.Meter(meterName)
	m := &orchestratorMetrics{}
	var err error

	if m.simulations, err = meter.Int64Counter("trade_simulations_total",
		metric.WithDescription("Simulate calls by evaluator status")); err != nil {
		return nil, err
	}
	if m.staleDiscards, err = meter.Int64Counter("trade_simulations_stale_total",
		metric.WithDescription("Evaluator responses discarded because the staged trade changed")); err != nil {
		return nil, err
	}
	if m.counterOffers, err = meter.Int64Counter("trade_counter_offers_total",
		metric.WithDescription("Counter-offers held as pending, by source")); err != nil {
		return nil, err
	}
	if m.simulationTime, err = meter.Float64Histogram("trade_simulation_duration_ms",
		metric.WithDescription("Wall time of a simulate call"), metric.WithUnit("ms")); err != nil {
		return nil, err
	}
	if m.score, err = meter.Float64Histogram("trade_simulation_score",
		metric.WithDescription("Local heuristic score")); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *orchestratorMetrics) recordSimulation(ctx context.Context, status domain.Status, score, ms float64) {
	attrs := metric.WithAttributes(attribute.String("status", string(status)))
	m.simulations.Add(ctx, 1, attrs)
	m.simulationTime.Record(ctx, ms, attrs)
	m.score.Record(ctx, score)
}

func (m *orchestratorMetrics) recordCounter(ctx context.Context, source string) {
	m.counterOffers.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}
