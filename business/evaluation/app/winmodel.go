package app

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/fd1az/cap-alpha/business/trade/domain"
)

const (
	baselineWins    = 8.5
	maxWins         = 17.0
	surplusPerWin   = 50.0
	minVegasSpread  = 0.5
	confidenceZ     = 1.96
	oddsPctPerWin   = 15.0
	defaultPosition = 1.0
)

var positionWeights = map[string]float64{
	"QB":   10,
	"EDGE": 3, "DE": 3,
	"OT": 3, "LT": 3, "RT": 3,
	"WR": 2, "CB": 2,
	"DT": 1.5, "S": 1.5,
}

// PositionWeight is the win leverage of a position.
func PositionWeight(position string) float64 {
	if w, ok := positionWeights[position]; ok {
		return w
	}
	return defaultPosition
}

// packageImpact is the projected contribution of a set of assets.
type packageImpact struct {
	wins     float64
	variance float64
}

// WinModel projects how a trade moves each team's win total.
type WinModel struct{}

// NewWinModel creates a model.
func NewWinModel() *WinModel { return &WinModel{} }

// Impact returns the win impact for both teams of p, keyed by team code.
func (m *WinModel) Impact(p domain.Proposal) map[string]domain.WinImpact {
	aOut := analyzePackage(p.TeamAAssets)
	bOut := analyzePackage(p.TeamBAssets)

	return map[string]domain.WinImpact{
		p.TeamA: formatImpact(bOut.wins-aOut.wins, math.Hypot(bOut.variance, aOut.variance)),
		p.TeamB: formatImpact(aOut.wins-bOut.wins, math.Hypot(aOut.variance, bOut.variance)),
	}
}

// analyzePackage weights each player's surplus by position. Draft picks do not move the win total.
func analyzePackage(assets []domain.Asset) packageImpact {
	var weighted, variance float64
	for _, a := range assets {
		if a.Kind != domain.KindPlayer {
			continue
		}
		w := a.SurplusValue * PositionWeight(a.Position)
		weighted += w
		variance += a.RiskScore * math.Abs(w)
	}
	return packageImpact{
		wins:     weighted / surplusPerWin,
		variance: variance / surplusPerWin,
	}
}

func formatImpact(delta, variance float64) domain.WinImpact {
	total := math.Max(0, math.Min(maxWins, baselineWins+delta))
	spread := math.Max(minVegasSpread, confidenceZ*variance)

	return domain.WinImpact{
		DeltaWins:          round(delta, 2),
		NewWinTotal:        round(total, 1),
		VegasVariance:      round(spread, 1),
		Ceiling:            round(total+spread, 1),
		Floor:              round(total-spread, 1),
		SuperBowlOddsDelta: oddsShift(delta),
	}
}

func oddsShift(delta float64) string {
	if delta == 0 {
		return "0%"
	}
	pct := decimal.NewFromFloat(delta * oddsPctPerWin).Round(1)
	if pct.IsPositive() {
		return "+" + pct.StringFixed(1) + "%"
	}
	return pct.StringFixed(1) + "%"
}

func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
