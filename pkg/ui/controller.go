package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fd1az/cap-alpha/business/trade/app"
	"github.com/fd1az/cap-alpha/business/trade/domain"
)

// Controller is the trade desk as seen by the TUI.
type Controller interface {
	Snapshot() app.Snapshot
	Teams(ctx context.Context) ([]string, error)
	Roster(ctx context.Context, team string) ([]domain.Asset, error)
	Scenarios(ctx context.Context) ([]domain.Scenario, error)
	Search(ctx context.Context, query string, deliver func(app.SearchResult))
	LatestSearch() uint64
	SelectTeam(side domain.Side, team string) bool
	AddAsset(side domain.Side, asset domain.Asset) bool
	RemoveAsset(side domain.Side, id string) bool
	ToggleRestructure(side domain.Side, id string) bool
	SetPostJune1(on bool)
	Simulate(ctx context.Context) (*domain.SimulationResult, error)
	AcceptCounter() (bool, error)
	DeclineCounter()
	LoadScenario(ctx context.Context, s domain.Scenario) error
	Reset()
}

var _ Controller = (*app.Desk)(nil)

// Desk calls run as commands so the desk can report back through Send
// without blocking the update loop.

func loadTeamsCmd(ctx context.Context, c Controller) tea.Cmd {
	return func() tea.Msg {
		teams, err := c.Teams(ctx)
		if err != nil {
			return ErrorMsg{Error: fmt.Errorf("load teams: %w", err)}
		}
		return TeamsMsg{Teams: teams}
	}
}

func loadScenariosCmd(ctx context.Context, c Controller) tea.Cmd {
	return func() tea.Msg {
		scenarios, err := c.Scenarios(ctx)
		if err != nil {
			return ErrorMsg{Error: fmt.Errorf("load scenarios: %w", err)}
		}
		return ScenariosMsg{Scenarios: scenarios}
	}
}

func loadRosterCmd(ctx context.Context, c Controller, side domain.Side, team string) tea.Cmd {
	return func() tea.Msg {
		assets, err := c.Roster(ctx, team)
		if err != nil {
			return ErrorMsg{Error: fmt.Errorf("load %s roster: %w", team, err)}
		}
		return RosterMsg{Side: side, Team: team, Assets: assets}
	}
}

func selectTeamCmd(ctx context.Context, c Controller, side domain.Side, team string) tea.Cmd {
	return func() tea.Msg {
		if !c.SelectTeam(side, team) {
			return LogMsg{Level: "warn", Message: fmt.Sprintf("%s cannot be selected for side %s", team, side)}
		}
		snap := c.Snapshot()
		return tea.BatchMsg{
			func() tea.Msg { return StateMsg{Snapshot: snap} },
			loadRosterCmd(ctx, c, side, team),
		}
	}
}

func mutateCmd(c Controller, rejected string, fn func() bool) tea.Cmd {
	return func() tea.Msg {
		if !fn() {
			return LogMsg{Level: "warn", Message: rejected}
		}
		return StateMsg{Snapshot: c.Snapshot()}
	}
}

func postJune1Cmd(c Controller, on bool) tea.Cmd {
	return func() tea.Msg {
		c.SetPostJune1(on)
		return StateMsg{Snapshot: c.Snapshot()}
	}
}

func simulateCmd(ctx context.Context, c Controller) tea.Cmd {
	return func() tea.Msg {
		res, err := c.Simulate(ctx)
		if err != nil {
			if errors.Is(err, app.ErrStaleSimulation) {
				return simulationStaleMsg{}
			}
			return simulationFailedMsg{err: fmt.Errorf("simulate: %w", err)}
		}
		return ResultMsg{Result: res}
	}
}

func acceptCounterCmd(c Controller) tea.Cmd {
	return func() tea.Msg {
		ok, err := c.AcceptCounter()
		if err != nil {
			return ErrorMsg{Error: fmt.Errorf("accept counter: %w", err)}
		}
		if !ok {
			return LogMsg{Level: "warn", Message: "counter-offer could not be staged"}
		}
		return StateMsg{Snapshot: c.Snapshot()}
	}
}

func declineCounterCmd(c Controller) tea.Cmd {
	return func() tea.Msg {
		c.DeclineCounter()
		return StateMsg{Snapshot: c.Snapshot()}
	}
}

func loadScenarioCmd(ctx context.Context, c Controller, s domain.Scenario) tea.Cmd {
	return func() tea.Msg {
		if err := c.LoadScenario(ctx, s); err != nil {
			return ErrorMsg{Error: fmt.Errorf("load scenario: %w", err)}
		}
		snap := c.Snapshot()
		return tea.BatchMsg{
			func() tea.Msg { return StateMsg{Snapshot: snap} },
			loadRosterCmd(ctx, c, domain.SideA, snap.Teams[domain.SideA]),
			loadRosterCmd(ctx, c, domain.SideB, snap.Teams[domain.SideB]),
		}
	}
}

func resetCmd(c Controller) tea.Cmd {
	return func() tea.Msg {
		c.Reset()
		return StateMsg{Snapshot: c.Snapshot()}
	}
}

func searchCmd(ctx context.Context, c Controller, query string) tea.Cmd {
	return func() tea.Msg {
		c.Search(ctx, query, func(res app.SearchResult) {
			Send(SearchResultsMsg{Result: res})
		})
		return nil
	}
}

// simulationStaleMsg means a newer change superseded the simulation.
type simulationStaleMsg struct{}

type simulationFailedMsg struct {
	err error
}
