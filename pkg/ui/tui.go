package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/fd1az/cap-alpha/business/trade/app"
	"github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/pkg/ui/components"
)

// ConnectionInfo holds connection state and latency.
type ConnectionInfo struct {
	Connected bool
	Latency   time.Duration
	LastSeen  time.Time
}

// StartupStep represents a step in the startup process.
type StartupStep struct {
	Name   string
	Status string // "pending", "connecting", "connected", "done", "failed", "skipped"
}

// Phase represents the current UI phase.
type Phase string

const (
	PhaseWelcome   Phase = "welcome"   // Initial welcome screen
	PhaseStartup   Phase = "startup"   // Loading/connecting
	PhaseDashboard Phase = "dashboard" // Trade machine
)

// WelcomeDuration is how long the welcome screen shows before auto-advancing.
const WelcomeDuration = 2 * time.Second

// ErrorEntry represents an error with timestamp.
type ErrorEntry struct {
	Message   string
	Timestamp time.Time
}

// pane is the focused dashboard area.
type pane int

const (
	paneRosterA pane = iota
	paneRosterB
	paneStagedA
	paneStagedB
	paneSearch
	paneIntel
	paneCount
)

func (p pane) side() (domain.Side, bool) {
	switch p {
	case paneRosterA, paneStagedA:
		return domain.SideA, true
	case paneRosterB, paneStagedB:
		return domain.SideB, true
	}
	return 0, false
}

var stepOrder = []string{"config", "roster", "engine", "intel"}

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	ctx  context.Context
	ctrl Controller
	keys KeyMap
	help help.Model

	// Components
	rosters [2]*components.AssetListComponent
	staged  [2]*components.AssetListComponent
	results *components.AssetListComponent
	impact  *components.ImpactComponent
	verdict *components.VerdictComponent
	intel   *components.ScenariosComponent
	status  *components.StatusComponent
	search  textinput.Model

	// Phase state
	phase        Phase
	welcomeStart time.Time

	// State
	quitting   bool
	width      int
	height     int
	focus      pane
	typing     bool
	simulating bool
	teams      []string
	teamIdx    [2]int
	rosterOf   [2][]domain.Asset
	found      []domain.Asset
	scenarios  []domain.Scenario
	snap       app.Snapshot
	lastUpdate time.Time
	errors     []ErrorEntry // Persistent error panel (last 3)
	logs       []string     // Recent log messages

	// Startup state
	startupSteps map[string]*StartupStep
	startupTime  time.Time
}

// New creates a new TUI model. ctx bounds every desk call.
func New(ctx context.Context) Model {
	now := time.Now()

	search := textinput.New()
	search.Placeholder = "player, position or team"
	search.Prompt = "/ "
	search.CharLimit = 40

	return Model{
		ctx:  ctx,
		keys: DefaultKeyMap(),
		help: help.New(),
		rosters: [2]*components.AssetListComponent{
			components.NewAssetListComponent("TEAM A", "Select a team with [ ]", 10),
			components.NewAssetListComponent("TEAM B", "Select a team with [ ]", 10),
		},
		staged: [2]*components.AssetListComponent{
			components.NewAssetListComponent("A SENDS", "Nothing staged", 6),
			components.NewAssetListComponent("B SENDS", "Nothing staged", 6),
		},
		results:      components.NewAssetListComponent("SEARCH", "Press / to search", 6),
		impact:       components.NewImpactComponent(),
		verdict:      components.NewVerdictComponent(),
		intel:        components.NewScenariosComponent(5),
		status:       components.NewStatusComponent(),
		search:       search,
		phase:        PhaseWelcome,
		welcomeStart: now,
		teamIdx:      [2]int{-1, -1},
		logs:         make([]string, 0, 10),
		errors:       make([]ErrorEntry, 0, 3),
		startupSteps: map[string]*StartupStep{
			"config": {Name: "Loading configuration", Status: "pending"},
			"roster": {Name: "Loading rosters", Status: "pending"},
			"engine": {Name: "Connecting to Adversarial Engine", Status: "pending"},
			"intel":  {Name: "Subscribing to trade intel", Status: "pending"},
		},
		startupTime: now,
	}
}

// Init initializes the TUI model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// tickCmd returns a command that sends a tick every 100ms for smooth animations.
func tickCmd() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg{}
	})
}

func (m *Model) beginStartup() {
	m.phase = PhaseStartup
	m.startupTime = time.Now()
	// Not Send(): it would block inside Update.
	if OnStartModules != nil {
		go OnStartModules()
	}
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case TickMsg:
		if m.phase == PhaseWelcome && time.Since(m.welcomeStart) >= WelcomeDuration {
			m.beginStartup()
		}
		return m, tickCmd()

	case StartupMsg:
		if step, ok := m.startupSteps[msg.Step]; ok {
			step.Status = msg.Status
		}
		if msg.Message != "" {
			m.logs = addLog(m.logs, "info", msg.Message)
		}

	case ReadyMsg:
		m.ctrl = msg.Controller
		m.phase = PhaseDashboard
		m.snap = m.ctrl.Snapshot()
		m.syncSnapshot()
		return m, tea.Batch(loadTeamsCmd(m.ctx, m.ctrl), loadScenariosCmd(m.ctx, m.ctrl))

	case TeamsMsg:
		m.teams = msg.Teams
		for side := range m.teamIdx {
			m.teamIdx[side] = indexOf(m.teams, m.snap.Teams[side])
		}

	case RosterMsg:
		// Drop rosters for a team the side no longer has.
		if m.snap.Teams[msg.Side] != "" && m.snap.Teams[msg.Side] != msg.Team {
			return m, nil
		}
		m.rosterOf[msg.Side] = msg.Assets
		m.rosters[msg.Side].SetTitle(msg.Team + " ROSTER")
		m.syncRosters()

	case StateMsg:
		if msg.Snapshot.Version < m.snap.Version {
			return m, nil
		}
		m.snap = msg.Snapshot
		m.lastUpdate = time.Now()
		m.syncSnapshot()

	case ResultMsg:
		m.simulating = false
		m.verdict.SetBusy(false)
		if msg.Result == nil {
			break
		}
		if m.ctrl != nil {
			if snap := m.ctrl.Snapshot(); snap.Version >= m.snap.Version {
				m.snap = snap
				m.lastUpdate = time.Now()
			}
		}
		// a mutation after the simulate returned invalidates its result
		if m.snap.Result == nil || m.snap.Result.ID != msg.Result.ID {
			m.syncSnapshot()
			m.logs = addLog(m.logs, "info", "trade changed after simulation; result discarded")
			break
		}
		m.syncSnapshot()
		m.logs = addLog(m.logs, "info", fmt.Sprintf("simulated: %s %s", msg.Result.Grade, msg.Result.Status))

	case simulationFailedMsg:
		m.simulating = false
		m.verdict.SetBusy(false)
		return m.Update(ErrorMsg{Error: msg.err})

	case simulationStaleMsg:
		m.simulating = false
		m.verdict.SetBusy(false)
		m.logs = addLog(m.logs, "info", "trade changed during simulation; simulate again")

	case SearchResultsMsg:
		res := msg.Result
		if m.ctrl != nil && res.Seq < m.ctrl.LatestSearch() {
			return m, nil
		}
		if res.Err != nil {
			return m.Update(ErrorMsg{Error: fmt.Errorf("search %q: %w", res.Query, res.Err)})
		}
		m.found = res.Assets
		m.results.SetTitle(fmt.Sprintf("SEARCH %q (%d)", res.Query, len(res.Assets)))
		m.results.Update(assetRows(m.found, nil))

	case ScenariosMsg:
		m.scenarios = msg.Scenarios
		m.intel.Update(scenarioRows(msg.Scenarios))

	case ConnectionStatusMsg:
		m.status.Update(components.ConnectionStatus{
			Name:       msg.Name,
			Connected:  msg.Connected,
			Latency:    msg.Latency,
			LastUpdate: time.Now(),
		})
		if step, ok := m.startupSteps["engine"]; ok && step.Status != "done" {
			step.Status = "connecting"
			if msg.Connected {
				step.Status = "connected"
			}
		}

	case ErrorMsg:
		if msg.Error == nil {
			return m, nil
		}
		m.logs = addLog(m.logs, "error", msg.Error.Error())
		m.errors = append(m.errors, ErrorEntry{
			Message:   msg.Error.Error(),
			Timestamp: time.Now(),
		})
		if len(m.errors) > 3 {
			m.errors = m.errors[len(m.errors)-3:]
		}

	case LogMsg:
		m.logs = addLog(m.logs, msg.Level, msg.Message)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Quit
	}

	if m.typing {
		return m.handleSearchKey(msg)
	}

	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	// During welcome phase, any other key skips to startup
	if m.phase == PhaseWelcome {
		m.beginStartup()
		return m, tickCmd()
	}
	if m.phase != PhaseDashboard || m.ctrl == nil {
		return m, nil
	}

	var cmd tea.Cmd
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.NextPane):
		m.focus = (m.focus + 1) % paneCount
	case key.Matches(msg, m.keys.PrevPane):
		m.focus = (m.focus + paneCount - 1) % paneCount
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PrevTeam):
		cmd = m.cycleTeam(-1)
	case key.Matches(msg, m.keys.NextTeam):
		cmd = m.cycleTeam(1)
	case key.Matches(msg, m.keys.Select):
		cmd = m.selectFocused()
	case key.Matches(msg, m.keys.Remove):
		cmd = m.unstageFocused()
	case key.Matches(msg, m.keys.Restructure):
		cmd = m.toggleRestructure()
	case key.Matches(msg, m.keys.PostJune1):
		cmd = postJune1Cmd(m.ctrl, !m.snap.PostJune1)
	case key.Matches(msg, m.keys.Simulate):
		if !m.simulating {
			m.simulating = true
			m.verdict.SetBusy(true)
			cmd = simulateCmd(m.ctx, m.ctrl)
		}
	case key.Matches(msg, m.keys.Accept):
		if m.snap.PendingCounter != nil {
			cmd = acceptCounterCmd(m.ctrl)
		}
	case key.Matches(msg, m.keys.Decline):
		if m.snap.PendingCounter != nil {
			cmd = declineCounterCmd(m.ctrl)
		}
	case key.Matches(msg, m.keys.Search):
		m.focus = paneSearch
		m.typing = true
		cmd = m.search.Focus()
	case key.Matches(msg, m.keys.Reset):
		m.teamIdx = [2]int{-1, -1}
		m.rosterOf = [2][]domain.Asset{}
		m.syncRosters()
		m.verdict.Update(nil)
		cmd = resetCmd(m.ctrl)
	case key.Matches(msg, m.keys.ClearErrors):
		m.errors = make([]ErrorEntry, 0, 3)
	}
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc, tea.KeyEnter:
		m.typing = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}
	return m, tea.Batch(cmd, searchCmd(m.ctx, m.ctrl, m.search.Value()))
}

func (m *Model) moveCursor(delta int) {
	var up, down func()
	switch m.focus {
	case paneRosterA, paneRosterB:
		side, _ := m.focus.side()
		up, down = m.rosters[side].Up, m.rosters[side].Down
	case paneStagedA, paneStagedB:
		side, _ := m.focus.side()
		up, down = m.staged[side].Up, m.staged[side].Down
	case paneSearch:
		up, down = m.results.Up, m.results.Down
	case paneIntel:
		up, down = m.intel.Up, m.intel.Down
	default:
		return
	}
	if delta < 0 {
		up()
	} else {
		down()
	}
}

// cycleTeam moves the focused side to the previous or next team, skipping
// the team held by the other side.
func (m *Model) cycleTeam(delta int) tea.Cmd {
	side, ok := m.focus.side()
	if !ok || len(m.teams) == 0 {
		return nil
	}
	other := m.snap.Teams[side.Other()]
	idx := m.teamIdx[side]
	if idx < 0 && delta < 0 {
		idx = 0
	}
	for range m.teams {
		idx = (idx + delta + len(m.teams)) % len(m.teams)
		if m.teams[idx] != other {
			break
		}
	}
	if m.teams[idx] == other || idx == m.teamIdx[side] {
		return nil
	}
	m.teamIdx[side] = idx
	m.rosterOf[side] = nil
	m.syncRosters()
	return selectTeamCmd(m.ctx, m.ctrl, side, m.teams[idx])
}

func (m *Model) selectFocused() tea.Cmd {
	switch m.focus {
	case paneRosterA, paneRosterB:
		side, _ := m.focus.side()
		a, ok := m.assetAt(m.rosters[side], m.rosterOf[side])
		if !ok {
			return nil
		}
		return mutateCmd(m.ctrl, a.Name+" is already staged", func() bool { return m.ctrl.AddAsset(side, a) })
	case paneStagedA, paneStagedB:
		return m.unstageFocused()
	case paneSearch:
		a, ok := m.assetAt(m.results, m.found)
		if !ok {
			return nil
		}
		for _, side := range []domain.Side{domain.SideA, domain.SideB} {
			if m.snap.Teams[side] == a.Team {
				return mutateCmd(m.ctrl, a.Name+" is already staged", func() bool { return m.ctrl.AddAsset(side, a) })
			}
		}
		m.logs = addLog(m.logs, "warn", fmt.Sprintf("%s plays for %s, which is not in this trade", a.Name, a.Team))
	case paneIntel:
		idx, ok := m.intel.Selected()
		if !ok || idx >= len(m.scenarios) {
			return nil
		}
		s := m.scenarios[idx]
		m.teamIdx = [2]int{indexOf(m.teams, s.Seller), indexOf(m.teams, s.Buyer)}
		return loadScenarioCmd(m.ctx, m.ctrl, s)
	}
	return nil
}

func (m *Model) unstageFocused() tea.Cmd {
	if m.focus != paneStagedA && m.focus != paneStagedB {
		return nil
	}
	side, _ := m.focus.side()
	a, ok := m.assetAt(m.staged[side], m.snap.Assets[side])
	if !ok {
		return nil
	}
	return mutateCmd(m.ctrl, a.Name+" is not staged", func() bool { return m.ctrl.RemoveAsset(side, a.ID) })
}

func (m *Model) toggleRestructure() tea.Cmd {
	if m.focus != paneStagedA && m.focus != paneStagedB {
		return nil
	}
	side, _ := m.focus.side()
	a, ok := m.assetAt(m.staged[side], m.snap.Assets[side])
	if !ok {
		return nil
	}
	return mutateCmd(m.ctrl, a.Name+" cannot be restructured", func() bool { return m.ctrl.ToggleRestructure(side, a.ID) })
}

// assetAt maps a list cursor back to its asset by id.
func (m *Model) assetAt(list *components.AssetListComponent, assets []domain.Asset) (domain.Asset, bool) {
	row, ok := list.Selected()
	if !ok {
		return domain.Asset{}, false
	}
	i := domain.IndexOfAsset(assets, row.ID)
	if i < 0 {
		return domain.Asset{}, false
	}
	return assets[i], true
}

func (m *Model) syncSnapshot() {
	for side := range m.staged {
		m.staged[side].Update(assetRows(m.snap.Assets[side], nil))
	}
	m.syncRosters()

	if m.snap.Teams[domain.SideA] == "" || m.snap.Teams[domain.SideB] == "" {
		m.impact.Update(nil, m.snap.PostJune1)
	} else {
		rows := make([]components.ImpactRow, 0, 2)
		for _, im := range m.snap.Impacts {
			rows = append(rows, components.ImpactRow{
				Team:     im.Team,
				Cleared:  im.CapCleared,
				Dead:     im.DeadMoneyAcceleration,
				Acquired: im.AcquiredSalary,
				Net:      im.NetCapChange,
			})
		}
		m.impact.Update(rows, m.snap.PostJune1)
	}

	if m.snap.Result == nil {
		if !m.simulating {
			m.verdict.Update(nil)
		}
	} else {
		m.verdict.Update(verdictFor(m.snap.Result))
	}

	counter := ""
	if c := m.snap.PendingCounter; c != nil {
		counter = fmt.Sprintf("%s requests %s (%s, $%.1fM)", otherTeam(m.snap, c.Team), c.Name, c.Team, c.CapHit)
	}
	m.verdict.SetCounter(counter)
}

func (m *Model) syncRosters() {
	for side := range m.rosters {
		if m.snap.Teams[side] == "" {
			m.rosterOf[side] = nil
			m.rosters[side].SetTitle("TEAM " + domain.Side(side).String())
		}
		m.rosters[side].Update(assetRows(m.rosterOf[side], m.snap.Assets[side]))
	}
}

func otherTeam(s app.Snapshot, team string) string {
	if s.Teams[domain.SideA] == team {
		return s.Teams[domain.SideB]
	}
	return s.Teams[domain.SideA]
}

func assetRows(assets, staged []domain.Asset) []components.AssetRow {
	rows := make([]components.AssetRow, 0, len(assets))
	for _, a := range assets {
		rows = append(rows, components.AssetRow{
			ID:           a.ID,
			Name:         a.Name,
			Team:         a.Team,
			Position:     a.Position,
			CapHit:       a.CapHit,
			DeadCap:      a.DeadCap,
			Surplus:      a.SurplusValue,
			Risk:         a.RiskScore,
			Pick:         a.IsPick(),
			Restructured: a.IsRestructured,
			Staged:       domain.ContainsAsset(staged, a.ID),
		})
	}
	return rows
}

func scenarioRows(scenarios []domain.Scenario) []components.ScenarioRow {
	rows := make([]components.ScenarioRow, 0, len(scenarios))
	for _, s := range scenarios {
		rows = append(rows, components.ScenarioRow{
			Buyer:     s.Buyer,
			Seller:    s.Seller,
			Player:    s.Player,
			Cost:      s.Cost,
			Score:     s.Score,
			Rationale: s.Rationale,
		})
	}
	return rows
}

func verdictFor(r *domain.SimulationResult) *components.Verdict {
	v := &components.Verdict{
		Grade:      string(r.Grade),
		GradeStyle: GradeStyle(string(r.Grade)),
		Status:     string(r.Status),
		Summary:    r.Summary,
		Reason:     r.Reason,
		Score:      r.Score,
		Degraded:   r.Degraded(),
	}
	if r.Analysis != nil {
		v.Financial = r.Analysis.FinancialImpact
		v.Roster = r.Analysis.RosterImpact
	}
	for team, w := range r.WinImpacts {
		v.Wins = append(v.Wins, components.WinRow{
			Team:      team,
			Delta:     w.DeltaWins,
			NewTotal:  w.NewWinTotal,
			OddsDelta: w.SuperBowlOddsDelta,
		})
	}
	return v
}

func indexOf(teams []string, team string) int {
	for i, t := range teams {
		if t == team {
			return i
		}
	}
	return -1
}

// addLog adds a log message and returns the updated slice (keeps last 5).
func addLog(logs []string, level, message string) []string {
	timestamp := time.Now().Format("15:04:05")
	logLine := fmt.Sprintf("[%s] %s: %s", timestamp, level, message)
	logs = append(logs, logLine)
	if len(logs) > 5 {
		logs = logs[len(logs)-5:]
	}
	return logs
}

// Program holds the Bubble Tea program instance for external access.
var Program *tea.Program

// OnStartModules is called when the welcome screen completes and modules should start.
// This is set by main.go to signal when to begin loading modules.
var OnStartModules func()

// Run starts the Bubble Tea program.
func Run(ctx context.Context) error {
	Program = tea.NewProgram(New(ctx), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := Program.Run()
	return err
}

// Send sends a message to the running program.
func Send(msg tea.Msg) {
	if Program != nil {
		Program.Send(msg)
	}
	// Call OnStartModules callback when StartModulesMsg is sent
	if _, ok := msg.(StartModulesMsg); ok && OnStartModules != nil {
		OnStartModules()
	}
}

// Quit stops the running program.
func Quit() {
	if Program != nil {
		Program.Quit()
	}
}
