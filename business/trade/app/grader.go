package app

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/fd1az/cap-alpha/business/trade/domain"
)

// Grader produces the local heuristic grade for a trade.
type Grader struct {
	params Params
}

// NewGrader creates a grader.
func NewGrader(params Params) *Grader {
	return &Grader{params: params}
}

// Score is 70, plus 5 for each side that gains cap space, plus the surplus
// value acquired by both sides, clamped to [40, 99]. Large surplus swings
// clamp every big trade to the ceiling; the raw addition is intentional.
func (g *Grader) Score(a, b domain.TeamCapImpact) decimal.Decimal {
	score := g.params.BaseScore
	if a.NetCapChange.IsPositive() {
		score = score.Add(g.params.CapEfficiencyBonus)
	}
	if b.NetCapChange.IsPositive() {
		score = score.Add(g.params.CapEfficiencyBonus)
	}
	score = score.Add(a.AcquiredSurplus()).Add(b.AcquiredSurplus())

	if score.LessThan(g.params.MinScore) {
		return g.params.MinScore
	}
	if score.GreaterThan(g.params.MaxScore) {
		return g.params.MaxScore
	}
	return score
}

// Grade builds a local simulation result from two impacts.
func (g *Grader) Grade(a, b domain.TeamCapImpact) domain.SimulationResult {
	score := g.Score(a, b).InexactFloat64()
	return domain.SimulationResult{
		Success: true,
		Status:  domain.StatusAccepted,
		Grade:   domain.GradeForScore(score),
		Summary: Narrative(a, b),
		Impacts: map[string]domain.TeamCapImpact{
			a.Team: a,
			b.Team: b,
		},
		Score: score,
	}
}

// Narrative reports each side's rounded net cap change and the side that
// acquires more surplus value. Ties go to B.
func Narrative(a, b domain.TeamCapImpact) string {
	winner := b.Team
	if a.AcquiredSurplus().GreaterThan(b.AcquiredSurplus()) {
		winner = a.Team
	}
	return fmt.Sprintf("The %s clear %sM in space. The %s acquire talent with a net impact of %sM. %s wins the value exchange.",
		a.Team, roundHalfUp(a.NetCapChange), b.Team, roundHalfUp(b.NetCapChange), winner)
}

// roundHalfUp rounds toward +Inf on .5, so -2.5 becomes -2.
func roundHalfUp(d decimal.Decimal) string {
	return d.Add(decimal.RequireFromString("0.5")).Floor().String()
}
