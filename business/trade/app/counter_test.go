package app

import (
	"testing"

	"github.com/fd1az/cap-alpha/business/trade/domain"
)

func TestCounterGenerator_ProposeCounter(t *testing.T) {
	gen := NewCounterGenerator(DefaultParams())

	losing := func(lost, gained float64) domain.TeamCapImpact {
		return domain.TeamCapImpact{
			Team:           "NYJ",
			AssetsLost:     []domain.Asset{asset("lost", "NYJ", 10, 0, lost)},
			AssetsAcquired: []domain.Asset{asset("gained", "KC", 1, 0, gained)},
		}
	}
	pool := []domain.Asset{
		asset("kc_big", "KC", 30, 0, 20),
		asset("kc_mid", "KC", 8, 0, 7),
		asset("kc_small", "KC", 2, 0, 3),
		asset("kc_neg", "KC", 25, 0, -4),
		asset("kc_zero", "KC", 1, 0, 0),
	}

	tests := []struct {
		name   string
		impact domain.TeamCapImpact
		pool   []domain.Asset
		wantID string
	}{
		{"deficit below tolerance", losing(6, 2), pool, ""},
		{"losing side is ahead", losing(1, 9), pool, ""},
		{"deficit exactly at tolerance", losing(7, 2), pool, "kc_mid"},
		{"closest to deficit", losing(20, 2), pool, "kc_big"},
		{"between candidates", losing(14, 2), pool, "kc_mid"},
		{"empty pool", losing(20, 0), nil, ""},
		{"only non-positive candidates", losing(20, 0), pool[3:], ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gen.ProposeCounter(tt.impact, tt.pool)
			switch {
			case tt.wantID == "" && got != nil:
				t.Errorf("expected no counter, got %s", got.ID)
			case tt.wantID != "" && (got == nil || got.ID != tt.wantID):
				t.Errorf("got %v, want %s", got, tt.wantID)
			}
		})
	}
}

func TestCounterGenerator_TieKeepsPoolOrder(t *testing.T) {
	gen := NewCounterGenerator(DefaultParams())
	losing := domain.TeamCapImpact{AssetsLost: []domain.Asset{asset("lost", "NYJ", 1, 0, 10)}}
	pool := []domain.Asset{asset("low", "KC", 1, 0, 8), asset("high", "KC", 1, 0, 12)}

	if got := gen.ProposeCounter(losing, pool); got == nil || got.ID != "low" {
		t.Errorf("got %v, want low", got)
	}
}

func TestCounterGenerator_DoesNotMutatePool(t *testing.T) {
	gen := NewCounterGenerator(DefaultParams())
	losing := domain.TeamCapImpact{AssetsLost: []domain.Asset{asset("lost", "NYJ", 1, 0, 10)}}
	pool := []domain.Asset{asset("far", "KC", 1, 0, 30), asset("near", "KC", 1, 0, 9)}

	got := gen.ProposeCounter(losing, pool)
	if got == nil || got.ID != "near" {
		t.Fatalf("got %v", got)
	}
	got.Name = "changed"
	if pool[0].ID != "far" || pool[1].Name != "near" {
		t.Errorf("pool mutated: %+v", pool)
	}
}
