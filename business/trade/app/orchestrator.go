package app

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/apm"
	"github.com/fd1az/cap-alpha/internal/apperror"
	"github.com/fd1az/cap-alpha/internal/logger"
)

// Sentinels for errors.Is. Returned errors are fresh AppErrors with the same code.
var (
	ErrStaleSimulation  = apperror.New(apperror.CodeStaleSimulation)
	ErrNoPendingCounter = apperror.New(apperror.CodeNoPendingCounter)
	ErrTeamsNotSelected = apperror.New(apperror.CodeTeamsNotSelected)
)

// Phase is the orchestrator state.
type Phase string

const (
	PhaseIdle      Phase = "idle"
	PhaseStaging   Phase = "staging"
	PhaseSimulated Phase = "simulated"
)

// Snapshot is a read-only copy of the staged trade.
type Snapshot struct {
	Phase          Phase
	Version        uint64
	Teams          [2]string
	Assets         [2][]domain.Asset
	Impacts        [2]domain.TeamCapImpact // live, recomputed from the staged sets
	PostJune1      bool
	Result         *domain.SimulationResult
	PendingCounter *domain.Asset
}

// Team returns the team selected for side.
func (s Snapshot) Team(side domain.Side) string { return s.Teams[side] }

// OrchestratorConfig configures an Orchestrator.
type OrchestratorConfig struct {
	Params Params
	// LocalCounterFallback runs the local generator against the roster when
	// the evaluator rejects a trade without offering a counter.
	LocalCounterFallback bool
}

type stagedTrade struct {
	teams     [2]string
	assets    [2][]domain.Asset
	postJune1 bool
	result    *domain.SimulationResult
	pending   *domain.Asset
}

// Orchestrator owns the staged trade. Every mutation bumps version; a
// simulation only lands if the version it started from is still current.
type Orchestrator struct {
	calc      *CapCalculator
	grader    *Grader
	counter   *CounterGenerator
	evaluator TradeEvaluator
	roster    RosterSource
	cfg       OrchestratorConfig
	log       logger.LoggerInterface
	tracer    apm.Tracer
	metrics   *orchestratorMetrics

	mu      sync.Mutex
	state   stagedTrade
	version uint64
}

// NewOrchestrator creates an orchestrator. roster may be nil, which disables
// the local counter fallback.
func NewOrchestrator(evaluator TradeEvaluator, roster RosterSource, cfg OrchestratorConfig, log logger.LoggerInterface) (*Orchestrator, error) {
	m, err := newOrchestratorMetrics()
	if err != nil {
		return nil, err
	}
	return &Orchestrator{
		calc:      NewCapCalculator(cfg.Params),
		grader:    NewGrader(cfg.Params),
		counter:   NewCounterGenerator(cfg.Params),
		evaluator: evaluator,
		roster:    roster,
		cfg:       cfg,
		log:       log,
		tracer:    apm.NewTracer(meterName),
		metrics:   m,
	}, nil
}

// Calculator exposes the calculator used for live impacts.
func (o *Orchestrator) Calculator() *CapCalculator { return o.calc }

// invalidate drops derived state. Callers hold mu.
func (o *Orchestrator) invalidate() {
	o.state.result = nil
	o.state.pending = nil
	o.version++
}

// SelectTeam sets the team for side and clears that side's staged assets and
// all derived state. Selecting the team already chosen for the other side is
// rejected.
func (o *Orchestrator) SelectTeam(side domain.Side, team string) bool {
	if !side.Valid() {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	if team != "" && o.state.teams[side.Other()] == team {
		return false
	}
	o.state.teams[side] = team
	o.state.assets[side] = nil
	o.invalidate()
	return true
}

// AddAsset stages asset on side. It is a no-op returning false when the asset
// belongs to another team or is already staged on that side.
func (o *Orchestrator) AddAsset(side domain.Side, asset domain.Asset) bool {
	if !side.Valid() {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	team := o.state.teams[side]
	if team == "" || asset.Team != team || domain.ContainsAsset(o.state.assets[side], asset.ID) {
		return false
	}
	o.state.assets[side] = append(o.state.assets[side], asset)
	o.invalidate()
	return true
}

// RemoveAsset unstages id from side.
func (o *Orchestrator) RemoveAsset(side domain.Side, id string) bool {
	if !side.Valid() {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	i := domain.IndexOfAsset(o.state.assets[side], id)
	if i < 0 {
		return false
	}
	o.state.assets[side] = slices.Delete(slices.Clone(o.state.assets[side]), i, i+1)
	o.invalidate()
	return true
}

// ToggleRestructure flips the restructure flag of a staged player. The
// current result is kept; the change shows on the next simulate.
func (o *Orchestrator) ToggleRestructure(side domain.Side, id string) bool {
	if !side.Valid() {
		return false
	}
	o.mu.Lock()
	defer o.mu.Unlock()

	i := domain.IndexOfAsset(o.state.assets[side], id)
	if i < 0 || o.state.assets[side][i].IsPick() {
		return false
	}
	assets := slices.Clone(o.state.assets[side])
	assets[i].IsRestructured = !assets[i].IsRestructured
	o.state.assets[side] = assets
	o.version++
	return true
}

// SetPostJune1 sets the post-June-1 designation. A change invalidates the result.
func (o *Orchestrator) SetPostJune1(on bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state.postJune1 == on {
		return
	}
	o.state.postJune1 = on
	o.state.result = nil
	o.version++
}

// LoadScenario atomically replaces both teams and staged sets. Assets whose
// team does not match their side are rejected and nothing changes.
func (o *Orchestrator) LoadScenario(load domain.ScenarioLoad) error {
	if load.TeamA == "" || load.TeamB == "" || load.TeamA == load.TeamB {
		return apperror.Validation(apperror.CodeInvalidProposal, "scenario teams")
	}
	assetsA, err := dedupeForTeam(load.TeamA, load.AssetsA)
	if err != nil {
		return err
	}
	assetsB, err := dedupeForTeam(load.TeamB, load.AssetsB)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = stagedTrade{
		teams:  [2]string{load.TeamA, load.TeamB},
		assets: [2][]domain.Asset{assetsA, assetsB},
	}
	o.version++
	return nil
}

func dedupeForTeam(team string, assets []domain.Asset) ([]domain.Asset, error) {
	out := make([]domain.Asset, 0, len(assets))
	for _, a := range assets {
		if a.Team != team {
			return nil, apperror.Validation(apperror.CodeInvalidProposal, a.ID+" is not owned by "+team)
		}
		if !domain.ContainsAsset(out, a.ID) {
			out = append(out, a)
		}
	}
	return out, nil
}

// Reset returns to the idle state.
func (o *Orchestrator) Reset() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = stagedTrade{}
	o.version++
}

// Snapshot returns a copy of the current state with live impacts.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	st := o.state
	version := o.version
	o.mu.Unlock()

	snap := Snapshot{
		Version:        version,
		Teams:          st.teams,
		Assets:         [2][]domain.Asset{slices.Clone(st.assets[0]), slices.Clone(st.assets[1])},
		PostJune1:      st.postJune1,
		Result:         st.result.Clone(),
	}
	if st.pending != nil {
		pending := *st.pending
		snap.PendingCounter = &pending
	}
	snap.Impacts[domain.SideA] = o.calc.ComputeImpact(st.teams[0], st.assets[1], st.assets[0], st.postJune1)
	snap.Impacts[domain.SideB] = o.calc.ComputeImpact(st.teams[1], st.assets[0], st.assets[1], st.postJune1)

	switch {
	case st.result != nil:
		snap.Phase = PhaseSimulated
	case st.teams[0] != "" || st.teams[1] != "":
		snap.Phase = PhaseStaging
	default:
		snap.Phase = PhaseIdle
	}
	return snap
}

// Simulate evaluates the staged trade. The evaluator is called without the
// lock held; if the staged trade changes meanwhile the response is discarded
// and an ErrStaleSimulation coded error is returned.
func (o *Orchestrator) Simulate(ctx context.Context) (*domain.SimulationResult, error) {
	start := time.Now()
	ctx, span := o.tracer.StartSpanFromContext(ctx, "trade.simulate")
	defer span.End()

	o.mu.Lock()
	if o.state.teams[0] == "" || o.state.teams[1] == "" {
		o.mu.Unlock()
		return nil, apperror.New(apperror.CodeTeamsNotSelected)
	}
	o.version++
	version := o.version
	st := stagedTrade{
		teams:     o.state.teams,
		assets:    [2][]domain.Asset{slices.Clone(o.state.assets[0]), slices.Clone(o.state.assets[1])},
		postJune1: o.state.postJune1,
	}
	o.mu.Unlock()

	span.SetAttributes(
		attribute.String("team_a", st.teams[0]),
		attribute.String("team_b", st.teams[1]),
		attribute.Int64("version", int64(version)),
	)

	impactA := o.calc.ComputeImpact(st.teams[0], st.assets[1], st.assets[0], st.postJune1)
	impactB := o.calc.ComputeImpact(st.teams[1], st.assets[0], st.assets[1], st.postJune1)
	proposal := domain.Proposal{
		TeamA:       st.teams[0],
		TeamB:       st.teams[1],
		TeamAAssets: st.assets[0],
		TeamBAssets: st.assets[1],
		Config:      domain.ProposalConfig{PostJune1: st.postJune1},
	}

	evaluation := o.evaluator.Evaluate(ctx, proposal)
	wins := o.evaluator.VegasImpact(ctx, proposal)

	var pending *domain.Asset
	source := ""
	if evaluation.Status == domain.StatusRejected {
		pending, source = o.evaluator.Counter(ctx, proposal), "remote"
		if pending == nil && o.cfg.LocalCounterFallback {
			pending, source = o.localCounter(ctx, st, impactA, impactB), "local"
		}
	}

	result := o.merge(impactA, impactB, evaluation, wins)

	o.mu.Lock()
	if o.version != version {
		o.mu.Unlock()
		o.metrics.staleDiscards.Add(ctx, 1)
		o.log.Debug(ctx, "discarding stale simulation", "version", version)
		err := apperror.New(apperror.CodeStaleSimulation)
		span.NoticeError(err)
		return nil, err
	}
	o.state.result = result
	o.state.pending = pending
	o.mu.Unlock()

	if pending != nil {
		o.metrics.recordCounter(ctx, source)
		span.AddEvent("counter_offer")
		o.log.Info(ctx, "counter-offer pending", "asset", pending.ID, "team", pending.Team, "source", source)
	}
	o.metrics.recordSimulation(ctx, result.Status, result.Score, float64(time.Since(start).Milliseconds()))
	o.log.Info(ctx, "trade simulated",
		"id", result.ID, "grade", result.Grade, "status", result.Status, "score", result.Score)
	return result.Clone(), nil
}

// merge combines the local heuristic with the evaluator's verdict. Cap numbers
// and score are always local. When the evaluator answered, its grade and
// reason win; on review the local grade and narrative stand.
func (o *Orchestrator) merge(a, b domain.TeamCapImpact, ev domain.Evaluation, wins map[string]domain.WinImpact) *domain.SimulationResult {
	result := o.grader.Grade(a, b)
	result.ID = uuid.NewString()
	result.CreatedAt = time.Now()
	result.Status = ev.Status
	result.Success = ev.Status == domain.StatusAccepted
	result.Reason = ev.Reason
	result.Analysis = ev.Analysis
	result.WinImpacts = wins

	if ev.Status != domain.StatusReview {
		if g, ok := domain.ParseGrade(ev.Grade); ok {
			result.Grade = g
		}
		if ev.Reason != "" {
			result.Summary = ev.Reason
		}
	}
	return &result
}

func (o *Orchestrator) localCounter(ctx context.Context, st stagedTrade, a, b domain.TeamCapImpact) *domain.Asset {
	if o.roster == nil {
		return nil
	}
	losing, winSide := a, domain.SideB
	if b.Deficit().GreaterThan(a.Deficit()) {
		losing, winSide = b, domain.SideA
	}
	if losing.Deficit().LessThan(o.cfg.Params.CounterTolerance) {
		return nil
	}

	pool, err := o.roster.TradeableAssets(ctx, st.teams[winSide])
	if err != nil {
		o.log.Warn(ctx, "counter pool unavailable", "team", st.teams[winSide], "error", err)
		return nil
	}
	pool = slices.DeleteFunc(slices.Clone(pool), func(x domain.Asset) bool {
		return domain.ContainsAsset(st.assets[winSide], x.ID)
	})
	return o.counter.ProposeCounter(losing, pool)
}

// AcceptCounter stages the pending counter-offer on the side whose team owns
// it, which is the set it is not already on. It returns false, keeping the
// offer pending, when the asset belongs to neither team or is already staged.
func (o *Orchestrator) AcceptCounter() (bool, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	asset := o.state.pending
	if asset == nil {
		return false, apperror.New(apperror.CodeNoPendingCounter)
	}

	for _, side := range []domain.Side{domain.SideA, domain.SideB} {
		if o.state.teams[side] == asset.Team && !domain.ContainsAsset(o.state.assets[side], asset.ID) {
			o.state.assets[side] = append(slices.Clone(o.state.assets[side]), *asset)
			o.invalidate()
			return true, nil
		}
	}
	return false, nil
}

// DeclineCounter drops the pending counter-offer.
func (o *Orchestrator) DeclineCounter() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state.pending = nil
}
