package app

import (
	"math"
	"testing"

	"github.com/fd1az/cap-alpha/business/trade/domain"
)

func player(team, position string, surplus, risk float64) domain.Asset {
	return domain.Asset{ID: team + position, Team: team, Kind: domain.KindPlayer, Position: position, SurplusValue: surplus, RiskScore: risk}
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestWinModel_Impact(t *testing.T) {
	m := NewWinModel()
	got := m.Impact(domain.Proposal{
		TeamA:       "KC",
		TeamB:       "MIN",
		TeamAAssets: []domain.Asset{player("KC", "QB", 30, 0.5)},
		TeamBAssets: []domain.Asset{player("MIN", "WR", 10, 0.2)},
	})

	kc, minn := got["KC"], got["MIN"]
	checks := []struct {
		name      string
		got, want float64
	}{
		{"KC delta", kc.DeltaWins, -5.6},
		{"KC total", kc.NewWinTotal, 2.9},
		{"KC variance", kc.VegasVariance, 5.9},
		{"KC ceiling", kc.Ceiling, 8.8},
		{"KC floor", kc.Floor, -3.0},
		{"MIN delta", minn.DeltaWins, 5.6},
		{"MIN total", minn.NewWinTotal, 14.1},
		{"MIN ceiling", minn.Ceiling, 20.0},
		{"MIN floor", minn.Floor, 8.2},
	}
	for _, c := range checks {
		if !near(c.got, c.want) {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.want)
		}
	}
	if kc.SuperBowlOddsDelta != "-84.0%" || minn.SuperBowlOddsDelta != "+84.0%" {
		t.Errorf("odds = %s / %s", kc.SuperBowlOddsDelta, minn.SuperBowlOddsDelta)
	}
}

func TestWinModel_PicksAreIgnored(t *testing.T) {
	pick := domain.Asset{ID: "p", Kind: domain.KindDraftPick, SurplusValue: 40, RiskScore: 1}
	got := NewWinModel().Impact(domain.Proposal{TeamA: "KC", TeamB: "MIN", TeamAAssets: []domain.Asset{pick}})

	kc := got["KC"]
	if kc.DeltaWins != 0 || kc.NewWinTotal != 8.5 || kc.VegasVariance != 0.5 || kc.SuperBowlOddsDelta != "0%" {
		t.Errorf("impact = %+v", kc)
	}
	if !near(kc.Ceiling, 9.0) || !near(kc.Floor, 8.0) {
		t.Errorf("band = %v..%v", kc.Floor, kc.Ceiling)
	}
}

func TestWinModel_Clamp(t *testing.T) {
	got := NewWinModel().Impact(domain.Proposal{
		TeamA:       "KC",
		TeamB:       "MIN",
		TeamBAssets: []domain.Asset{player("MIN", "QB", 100, 0)},
	})
	if got["KC"].NewWinTotal != 17 || got["MIN"].NewWinTotal != 0 {
		t.Errorf("totals = %v / %v", got["KC"].NewWinTotal, got["MIN"].NewWinTotal)
	}
	if got["KC"].DeltaWins != 20 {
		t.Errorf("delta should not be clamped: %v", got["KC"].DeltaWins)
	}
}

func TestPositionWeight(t *testing.T) {
	for pos, want := range map[string]float64{"QB": 10, "LT": 3, "CB": 2, "S": 1.5, "LB": 1, "": 1} {
		if got := PositionWeight(pos); got != want {
			t.Errorf("PositionWeight(%q) = %v, want %v", pos, got, want)
		}
	}
}
