package app

import (
	"slices"

	"github.com/fd1az/cap-alpha/business/trade/domain"
)

// CounterGenerator proposes an asset that compensates an under-paid side.
type CounterGenerator struct {
	params Params
}

// NewCounterGenerator creates a generator.
func NewCounterGenerator(params Params) *CounterGenerator {
	return &CounterGenerator{params: params}
}

// ProposeCounter returns the positive-surplus asset from pool whose surplus is
// closest to the losing side's deficit, or nil when the deficit is under the
// tolerance or no candidate exists. Ties keep pool order.
func (g *CounterGenerator) ProposeCounter(losing domain.TeamCapImpact, pool []domain.Asset) *domain.Asset {
	deficit := losing.Deficit()
	if deficit.LessThan(g.params.CounterTolerance) {
		return nil
	}

	candidates := make([]domain.Asset, 0, len(pool))
	for _, a := range pool {
		if a.SurplusDecimal().IsPositive() {
			candidates = append(candidates, a)
		}
	}
	if len(candidates) == 0 {
		return nil
	}

	slices.SortStableFunc(candidates, func(x, y domain.Asset) int {
		dx := x.SurplusDecimal().Sub(deficit).Abs()
		dy := y.SurplusDecimal().Sub(deficit).Abs()
		return dx.Cmp(dy)
	})

	best := candidates[0]
	return &best
}
