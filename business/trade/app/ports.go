package app

import (
	"context"
	"time"

	"github.com/fd1az/cap-alpha/business/trade/domain"
)

// TradeEvaluator is the adversarial evaluation capability. Implementations
// never return errors: failures become a review Evaluation or nil.
type TradeEvaluator interface {
	// Evaluate grades a proposal. On failure it returns domain.ReviewEvaluation.
	Evaluate(ctx context.Context, p domain.Proposal) domain.Evaluation
	// Counter proposes a compensating asset, or nil.
	Counter(ctx context.Context, p domain.Proposal) *domain.Asset
	// VegasImpact projects win totals per team, or nil.
	VegasImpact(ctx context.Context, p domain.Proposal) map[string]domain.WinImpact
}

// RosterSource provides teams and their tradeable assets.
type RosterSource interface {
	Teams(ctx context.Context) ([]string, error)
	TradeableAssets(ctx context.Context, team string) ([]domain.Asset, error)
	Search(ctx context.Context, query string) ([]domain.Asset, error)
}

// ScenarioSource lists trade intelligence scenarios, best first.
type ScenarioSource interface {
	Scenarios(ctx context.Context) ([]domain.Scenario, error)
}

// Reporter renders orchestrator output.
type Reporter interface {
	Start(ctx context.Context) error
	ReportState(s Snapshot)
	ReportResult(r *domain.SimulationResult)
	UpdateEvaluatorStatus(name string, connected bool, latency time.Duration)
	Stop() error
}
