package app

import (
	"context"
	"errors"
	"testing"

	"github.com/fd1az/cap-alpha/business/trade/domain"
)

func TestScenarioResolver_Resolve(t *testing.T) {
	roster := &fakeRoster{assets: map[string][]domain.Asset{
		"DAL": {{ID: "dal_cb", Name: "Trevon Diggs", Kind: domain.KindPlayer, Team: "DAL", CapHit: 19.4}},
	}}
	r := NewScenarioResolver(roster)

	t.Run("roster player", func(t *testing.T) {
		load, err := r.Resolve(context.Background(), domain.Scenario{Buyer: "SF", Seller: "DAL", Player: "trevon diggs", Cap: 1})
		if err != nil {
			t.Fatal(err)
		}
		if load.TeamA != "DAL" || load.TeamB != "SF" {
			t.Errorf("teams = %s/%s", load.TeamA, load.TeamB)
		}
		if len(load.AssetsA) != 1 || load.AssetsA[0].ID != "dal_cb" || load.AssetsA[0].CapHit != 19.4 {
			t.Errorf("assets A = %+v", load.AssetsA)
		}
		if len(load.AssetsB) != 0 {
			t.Errorf("buyer should start empty: %+v", load.AssetsB)
		}
	})

	t.Run("synthetic player", func(t *testing.T) {
		load, err := r.Resolve(context.Background(), domain.Scenario{Buyer: "SF", Seller: "DAL", Player: "Micah Parsons Jr.", Cap: 24.5})
		if err != nil {
			t.Fatal(err)
		}
		got := load.AssetsA[0]
		if got.ID != "scenario_dal_micah_parsons_jr_" || got.Team != "DAL" || got.Position != "UNK" || got.CapHit != 24.5 {
			t.Errorf("synthetic = %+v", got)
		}
	})

	t.Run("roster error", func(t *testing.T) {
		bad := NewScenarioResolver(&fakeRoster{err: errors.New("boom")})
		if _, err := bad.Resolve(context.Background(), domain.Scenario{Buyer: "SF", Seller: "DAL"}); err == nil {
			t.Fatal("expected error")
		}
	})

	t.Run("no roster", func(t *testing.T) {
		load, err := NewScenarioResolver(nil).Resolve(context.Background(), domain.Scenario{Buyer: "SF", Seller: "DAL", Player: "X"})
		if err != nil || len(load.AssetsA) != 1 || load.AssetsA[0].Kind != domain.KindPlayer {
			t.Fatalf("load = %+v err = %v", load, err)
		}
	})
}

func TestScenarioResolver_LoadsIntoOrchestrator(t *testing.T) {
	roster := &fakeRoster{assets: map[string][]domain.Asset{"DAL": nil}}
	load, err := NewScenarioResolver(roster).Resolve(context.Background(),
		domain.Scenario{Buyer: "SF", Seller: "DAL", Player: "Someone", Cap: 10})
	if err != nil {
		t.Fatal(err)
	}

	o := newTestOrchestrator(t, accepted(), roster, false)
	if err := o.LoadScenario(load); err != nil {
		t.Fatal(err)
	}
	snap := o.Snapshot()
	assertDecimal(t, "DAL cleared", snap.Impacts[domain.SideA].CapCleared, "10")
	assertDecimal(t, "SF acquired", snap.Impacts[domain.SideB].AcquiredSalary, "8")
}
