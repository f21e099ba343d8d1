// Package local runs the adversarial engine in-process.
package local

import (
	"context"

	evalApp "github.com/fd1az/cap-alpha/business/evaluation/app"
	tradeApp "github.com/fd1az/cap-alpha/business/trade/app"
	"github.com/fd1az/cap-alpha/business/trade/domain"
)

// Evaluator implements the trade evaluator port without a network hop.
type Evaluator struct {
	engine *evalApp.Engine
	wins   *evalApp.WinModel
}

var _ tradeApp.TradeEvaluator = (*Evaluator)(nil)

// NewEvaluator creates an in-process evaluator.
func NewEvaluator(engine *evalApp.Engine, wins *evalApp.WinModel) *Evaluator {
	return &Evaluator{engine: engine, wins: wins}
}

func (e *Evaluator) Evaluate(_ context.Context, p domain.Proposal) domain.Evaluation {
	return e.engine.Evaluate(p)
}

func (e *Evaluator) Counter(_ context.Context, p domain.Proposal) *domain.Asset {
	a := e.engine.Counter(p)
	return &a
}

func (e *Evaluator) VegasImpact(_ context.Context, p domain.Proposal) map[string]domain.WinImpact {
	return e.wins.Impact(p)
}
