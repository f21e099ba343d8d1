// Package app contains the adversarial evaluation engine: the rule-based
// trade reviewer, the win probability model and the trade partner finder.
package app

import (
	"github.com/fd1az/cap-alpha/business/trade/domain"
)

// Verdict reasons.
const (
	ReasonEmpty    = "Empty trade proposal."
	ReasonLopsided = "Lopsided asset count. The GM demands balance."
	ReasonFair     = "Fair exchange of assets."
)

// maxAssetCountGap is the largest side-size difference the GM accepts.
const maxAssetCountGap = 2

// Engine reviews trade proposals the way an opposing front office would.
type Engine struct{}

// NewEngine creates an engine.
func NewEngine() *Engine { return &Engine{} }

// Evaluate grades p. One-sided proposals fail outright and lopsided asset
// counts are rejected.
func (e *Engine) Evaluate(p domain.Proposal) domain.Evaluation {
	if len(p.TeamAAssets) == 0 || len(p.TeamBAssets) == 0 {
		return domain.Evaluation{Grade: string(domain.GradeF), Reason: ReasonEmpty, Status: domain.StatusRejected}
	}

	gap := len(p.TeamAAssets) - len(p.TeamBAssets)
	if gap > maxAssetCountGap || gap < -maxAssetCountGap {
		return domain.Evaluation{Grade: string(domain.GradeD), Reason: ReasonLopsided, Status: domain.StatusRejected}
	}

	return domain.Evaluation{
		Grade:  string(domain.GradeB),
		Reason: ReasonFair,
		Status: domain.StatusAccepted,
		Analysis: &domain.Analysis{
			FinancialImpact: "neutral",
			RosterImpact:    "neutral",
		},
	}
}

// Counter asks for a second round pick on behalf of team B.
func (e *Engine) Counter(p domain.Proposal) domain.Asset {
	return domain.Asset{
		ID:           "draft_pick_2026_2nd",
		Name:         "2026 2nd Round Pick",
		Kind:         domain.KindDraftPick,
		Team:         p.TeamB,
		Position:     "PICK",
		CapHit:       0,
		SurplusValue: 5.0,
		RiskScore:    0.1,
	}
}
