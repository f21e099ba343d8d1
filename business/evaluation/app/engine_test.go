package app

import (
	"testing"

	"github.com/fd1az/cap-alpha/business/trade/domain"
)

func assets(team string, n int) []domain.Asset {
	out := make([]domain.Asset, n)
	for i := range out {
		out[i] = domain.Asset{ID: team + string(rune('a'+i)), Team: team, Kind: domain.KindPlayer}
	}
	return out
}

func TestEngine_Evaluate(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name   string
		a, b   int
		grade  string
		status domain.Status
		reason string
	}{
		{"empty A", 0, 1, "F", domain.StatusRejected, ReasonEmpty},
		{"empty B", 2, 0, "F", domain.StatusRejected, ReasonEmpty},
		{"gap of two", 3, 1, "B", domain.StatusAccepted, ReasonFair},
		{"gap of three", 4, 1, "D", domain.StatusRejected, ReasonLopsided},
		{"gap of three reversed", 1, 4, "D", domain.StatusRejected, ReasonLopsided},
		{"one for one", 1, 1, "B", domain.StatusAccepted, ReasonFair},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Evaluate(domain.Proposal{TeamA: "KC", TeamB: "MIN", TeamAAssets: assets("KC", tt.a), TeamBAssets: assets("MIN", tt.b)})
			if got.Grade != tt.grade || got.Status != tt.status || got.Reason != tt.reason {
				t.Errorf("got %+v", got)
			}
			if tt.status == domain.StatusAccepted && (got.Analysis == nil || got.Analysis.FinancialImpact != "neutral") {
				t.Errorf("accepted verdict should carry analysis: %+v", got.Analysis)
			}
		})
	}
}

func TestEngine_Counter(t *testing.T) {
	got := NewEngine().Counter(domain.Proposal{TeamA: "KC", TeamB: "MIN"})
	if got.ID != "draft_pick_2026_2nd" || got.Team != "MIN" || !got.IsPick() || got.SurplusValue != 5 || got.RiskScore != 0.1 {
		t.Errorf("counter = %+v", got)
	}
}
