// Package domain contains the read models of the roster context.
package domain

import (
	"cmp"
	"slices"

	"github.com/shopspring/decimal"

	tradedomain "github.com/fd1az/cap-alpha/business/trade/domain"
)

// HighRisk is the risk score above which a contract counts toward risk cap.
const HighRisk = 0.7

// CapSummary is one team's cap position, in millions.
type CapSummary struct {
	Team     string  `json:"team"`
	TotalCap float64 `json:"total_cap"`
	RiskCap  float64 `json:"risk_cap"`
	CapSpace float64 `json:"cap_space"`
	Players  int     `json:"players"`
}

// Summarize groups assets by team against leagueCap. Draft picks count
// toward neither cap nor player count. Teams come back sorted by code.
func Summarize(assets []tradedomain.Asset, leagueCap float64) []CapSummary {
	type acc struct {
		total, risk decimal.Decimal
		players     int
	}
	byTeam := make(map[string]*acc)
	for _, a := range assets {
		t, ok := byTeam[a.Team]
		if !ok {
			t = &acc{total: decimal.Zero, risk: decimal.Zero}
			byTeam[a.Team] = t
		}
		if a.IsPick() {
			continue
		}
		t.players++
		t.total = t.total.Add(a.CapHitDecimal())
		if a.RiskScore > HighRisk {
			t.risk = t.risk.Add(a.CapHitDecimal())
		}
	}

	limit := decimal.NewFromFloat(leagueCap)
	out := make([]CapSummary, 0, len(byTeam))
	for team, t := range byTeam {
		out = append(out, CapSummary{
			Team:     team,
			TotalCap: t.total.InexactFloat64(),
			RiskCap:  t.risk.InexactFloat64(),
			CapSpace: limit.Sub(t.total).InexactFloat64(),
			Players:  t.players,
		})
	}
	slices.SortFunc(out, func(a, b CapSummary) int { return cmp.Compare(a.Team, b.Team) })
	return out
}
