package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/logger"
)

type recordingReporter struct {
	mu      sync.Mutex
	states  []Snapshot
	results []*domain.SimulationResult
	status  map[string]bool
}

func (r *recordingReporter) Start(context.Context) error { return nil }
func (r *recordingReporter) Stop() error                 { return nil }

func (r *recordingReporter) ReportState(s Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states = append(r.states, s)
}

func (r *recordingReporter) ReportResult(res *domain.SimulationResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

func (r *recordingReporter) UpdateEvaluatorStatus(name string, connected bool, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status == nil {
		r.status = map[string]bool{}
	}
	r.status[name] = connected
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func newTestDesk(t *testing.T, ev TradeEvaluator, roster *fakeRoster, pinger Pinger) (*Desk, *recordingReporter) {
	t.Helper()
	rep := &recordingReporter{}
	desk := NewDesk(DeskDeps{
		Orchestrator: newTestOrchestrator(t, ev, roster, true),
		Roster:       roster,
		Searcher:     NewSearcher(roster, 0, logger.NewDiscard()),
		Resolver:     NewScenarioResolver(roster),
		Reporter:     rep,
		Pinger:       pinger,
	}, logger.NewDiscard())
	return desk, rep
}

func TestDesk_PublishesOnlyEffectiveChanges(t *testing.T) {
	roster := &fakeRoster{assets: map[string][]domain.Asset{"KC": {asset("kc_star", "KC", 20, 10, 8)}, "MIN": nil}}
	desk, rep := newTestDesk(t, accepted(), roster, nil)

	desk.SelectTeam(domain.SideA, "KC")
	desk.SelectTeam(domain.SideB, "KC") // rejected
	desk.SelectTeam(domain.SideB, "MIN")
	desk.AddAsset(domain.SideA, roster.assets["KC"][0])
	desk.AddAsset(domain.SideA, roster.assets["KC"][0]) // duplicate

	if len(rep.states) != 3 {
		t.Fatalf("published %d states, want 3", len(rep.states))
	}
	last := rep.states[len(rep.states)-1]
	assertDecimal(t, "live net", last.Impacts[domain.SideA].NetCapChange, "10")
}

func TestDesk_SimulateReportsResult(t *testing.T) {
	roster := &fakeRoster{assets: map[string][]domain.Asset{"KC": nil, "MIN": nil}}
	desk, rep := newTestDesk(t, accepted(), roster, nil)
	desk.SelectTeam(domain.SideA, "KC")
	desk.SelectTeam(domain.SideB, "MIN")

	res, err := desk.Simulate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rep.results) != 1 || rep.results[0] != res {
		t.Errorf("results = %v", rep.results)
	}
	if last := rep.states[len(rep.states)-1]; last.Result == nil || last.Result.ID != res.ID {
		t.Error("state after simulate should carry the result")
	}
}

func TestDesk_SimulateWithoutTeams(t *testing.T) {
	desk, rep := newTestDesk(t, accepted(), &fakeRoster{}, nil)
	if _, err := desk.Simulate(context.Background()); !errors.Is(err, ErrTeamsNotSelected) {
		t.Fatalf("err = %v", err)
	}
	if len(rep.results) != 0 {
		t.Error("nothing should be reported")
	}
}

func TestDesk_LoadScenario(t *testing.T) {
	roster := &fakeRoster{assets: map[string][]domain.Asset{
		"DAL": {{ID: "dal_qb", Name: "Dak Prescott", Kind: domain.KindPlayer, Team: "DAL", CapHit: 55}},
	}}
	desk, rep := newTestDesk(t, accepted(), roster, nil)

	if err := desk.LoadScenario(context.Background(), domain.Scenario{Buyer: "LV", Seller: "DAL", Player: "Dak Prescott"}); err != nil {
		t.Fatal(err)
	}
	snap := desk.Snapshot()
	if snap.Teams != [2]string{"DAL", "LV"} || snap.Assets[domain.SideA][0].ID != "dal_qb" {
		t.Errorf("snapshot = %+v", snap)
	}
	if len(rep.states) != 1 {
		t.Errorf("states = %d", len(rep.states))
	}

	if err := desk.LoadScenario(context.Background(), domain.Scenario{Buyer: "DAL", Seller: "DAL"}); err == nil {
		t.Error("same-team scenario should fail")
	}
}

func TestDesk_CheckEvaluator(t *testing.T) {
	desk, rep := newTestDesk(t, accepted(), &fakeRoster{}, pingerFunc(func(context.Context) error {
		return errors.New("refused")
	}))
	desk.CheckEvaluator(context.Background(), "engine")
	if connected, ok := rep.status["engine"]; !ok || connected {
		t.Errorf("status = %v", rep.status)
	}

	local, rep := newTestDesk(t, accepted(), &fakeRoster{}, nil)
	local.CheckEvaluator(context.Background(), "local")
	if !rep.status["local"] {
		t.Error("an evaluator without ping is always reachable")
	}
}

type scenarioList []domain.Scenario

func (s scenarioList) Scenarios(context.Context) ([]domain.Scenario, error) { return s, nil }

func TestDesk_Scenarios(t *testing.T) {
	desk, _ := newTestDesk(t, accepted(), &fakeRoster{}, nil)
	if got, err := desk.Scenarios(context.Background()); err != nil || got != nil {
		t.Errorf("no intel source = %v, %v", got, err)
	}

	desk.intel = scenarioList{{Buyer: "KC", Seller: "MIN", Player: "Justin Jefferson"}}
	got, err := desk.Scenarios(context.Background())
	if err != nil || len(got) != 1 || got[0].Player != "Justin Jefferson" {
		t.Errorf("scenarios = %v, %v", got, err)
	}
}
