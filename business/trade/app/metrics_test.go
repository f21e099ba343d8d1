package app

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestOrchestratorMetrics_CounterSource(t *testing.T) {
	prev := otel.GetMeterProvider()
	reader := sdkmetric.NewManualReader()
	otel.SetMeterProvider(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
	defer otel.SetMeterProvider(prev)

	m, err := newOrchestratorMetrics()
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	m.recordCounter(ctx, "remote")
	m.recordCounter(ctx, "local")
	m.recordCounter(ctx, "local")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		t.Fatal(err)
	}

	got := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, md := range sm.Metrics {
			if md.Name != "trade_counter_offers_total" {
				continue
			}
			sum, ok := md.Data.(metricdata.Sum[int64])
			if !ok {
				t.Fatalf("data = %T", md.Data)
			}
			for _, dp := range sum.DataPoints {
				v, _ := dp.Attributes.Value("source")
				got[v.AsString()] += dp.Value
			}
		}
	}
	if got["remote"] != 1 || got["local"] != 2 {
		t.Errorf("counter offers by source = %v", got)
	}
}
