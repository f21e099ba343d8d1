package app

import (
	"context"
	"errors"
	"time"

	"github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/logger"
)

// Pinger is implemented by evaluators that can report reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Desk is the trade machine surface used by the terminal clients. It forwards
// to the orchestrator and pushes every resulting state to the reporter.
type Desk struct {
	orch     *Orchestrator
	roster   RosterSource
	searcher *Searcher
	resolver *ScenarioResolver
	reporter Reporter
	pinger   Pinger
	intel    ScenarioSource
	log      logger.LoggerInterface
}

// DeskDeps groups the collaborators of a Desk.
type DeskDeps struct {
	Orchestrator *Orchestrator
	Roster       RosterSource
	Searcher     *Searcher
	Resolver     *ScenarioResolver
	Reporter     Reporter
	// Pinger and Intel are optional.
	Pinger Pinger
	Intel  ScenarioSource
}

// NewDesk creates a desk.
func NewDesk(deps DeskDeps, log logger.LoggerInterface) *Desk {
	return &Desk{
		orch:     deps.Orchestrator,
		roster:   deps.Roster,
		searcher: deps.Searcher,
		resolver: deps.Resolver,
		reporter: deps.Reporter,
		pinger:   deps.Pinger,
		intel:    deps.Intel,
		log:      log,
	}
}

func (d *Desk) publish() {
	d.reporter.ReportState(d.orch.Snapshot())
}

// Snapshot returns the current staged trade.
func (d *Desk) Snapshot() Snapshot { return d.orch.Snapshot() }

// Teams lists the teams available for selection.
func (d *Desk) Teams(ctx context.Context) ([]string, error) {
	return d.roster.Teams(ctx)
}

// Roster lists a team's tradeable assets.
func (d *Desk) Roster(ctx context.Context, team string) ([]domain.Asset, error) {
	return d.roster.TradeableAssets(ctx, team)
}

// Scenarios lists the current trade ideas, best first. Without an intel
// source the list is empty.
func (d *Desk) Scenarios(ctx context.Context) ([]domain.Scenario, error) {
	if d.intel == nil {
		return nil, nil
	}
	return d.intel.Scenarios(ctx)
}

// Search runs a debounced roster search.
func (d *Desk) Search(ctx context.Context, query string, deliver func(SearchResult)) {
	d.searcher.Search(ctx, query, deliver)
}

// LatestSearch is the sequence number of the newest search.
func (d *Desk) LatestSearch() uint64 { return d.searcher.Latest() }

func (d *Desk) SelectTeam(side domain.Side, team string) bool {
	ok := d.orch.SelectTeam(side, team)
	if ok {
		d.publish()
	}
	return ok
}

func (d *Desk) AddAsset(side domain.Side, asset domain.Asset) bool {
	ok := d.orch.AddAsset(side, asset)
	if ok {
		d.publish()
	}
	return ok
}

func (d *Desk) RemoveAsset(side domain.Side, id string) bool {
	ok := d.orch.RemoveAsset(side, id)
	if ok {
		d.publish()
	}
	return ok
}

func (d *Desk) ToggleRestructure(side domain.Side, id string) bool {
	ok := d.orch.ToggleRestructure(side, id)
	if ok {
		d.publish()
	}
	return ok
}

func (d *Desk) SetPostJune1(on bool) {
	d.orch.SetPostJune1(on)
	d.publish()
}

// Simulate evaluates the staged trade and reports the result. A stale
// simulation is not reported; the newer one will be.
func (d *Desk) Simulate(ctx context.Context) (*domain.SimulationResult, error) {
	res, err := d.orch.Simulate(ctx)
	if err != nil {
		if !errors.Is(err, ErrStaleSimulation) {
			d.log.Warn(ctx, "simulation failed", "error", err)
		}
		return nil, err
	}
	d.reporter.ReportResult(res)
	d.publish()
	return res, nil
}

// AcceptCounter stages the pending counter-offer.
func (d *Desk) AcceptCounter() (bool, error) {
	ok, err := d.orch.AcceptCounter()
	if ok {
		d.publish()
	}
	return ok, err
}

func (d *Desk) DeclineCounter() {
	d.orch.DeclineCounter()
	d.publish()
}

// LoadScenario resolves s against the roster and replaces the staged trade.
func (d *Desk) LoadScenario(ctx context.Context, s domain.Scenario) error {
	load, err := d.resolver.Resolve(ctx, s)
	if err != nil {
		return err
	}
	if err := d.orch.LoadScenario(load); err != nil {
		return err
	}
	d.log.Info(ctx, "scenario loaded", "seller", s.Seller, "buyer", s.Buyer, "player", s.Player)
	d.publish()
	return nil
}

func (d *Desk) Reset() {
	d.orch.Reset()
	d.publish()
}

// CheckEvaluator pings the evaluator and reports its reachability.
func (d *Desk) CheckEvaluator(ctx context.Context, name string) {
	if d.pinger == nil {
		d.reporter.UpdateEvaluatorStatus(name, true, 0)
		return
	}
	start := time.Now()
	err := d.pinger.Ping(ctx)
	d.reporter.UpdateEvaluatorStatus(name, err == nil, time.Since(start))
}
