package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tradeApp "github.com/fd1az/cap-alpha/business/trade/app"
	"github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/logger"
)

// cliJob is one non-interactive trade run.
type cliJob struct {
	Scenario      int
	TeamA         string
	TeamB         string
	GiveA         string
	GiveB         string
	Restructure   string
	PostJune1     bool
	AcceptCounter bool
}

// cliDesk is the part of the trade desk the CLI drives.
type cliDesk interface {
	Snapshot() tradeApp.Snapshot
	Roster(ctx context.Context, team string) ([]domain.Asset, error)
	Scenarios(ctx context.Context) ([]domain.Scenario, error)
	SelectTeam(side domain.Side, team string) bool
	AddAsset(side domain.Side, asset domain.Asset) bool
	ToggleRestructure(side domain.Side, id string) bool
	SetPostJune1(on bool)
	Simulate(ctx context.Context) (*domain.SimulationResult, error)
	AcceptCounter() (bool, error)
	LoadScenario(ctx context.Context, s domain.Scenario) error
}

var errNothingToRun = errors.New("nothing to run: pass -scenario N or -team-a and -team-b")

func runCLI(ctx context.Context, desk cliDesk, job cliJob, log logger.LoggerInterface) error {
	switch {
	case job.Scenario > 0:
		if err := stageScenario(ctx, desk, job.Scenario); err != nil {
			return err
		}
	case job.TeamA != "" && job.TeamB != "":
		if err := stageTeams(ctx, desk, job); err != nil {
			return err
		}
	default:
		return errNothingToRun
	}

	for _, id := range splitIDs(job.Restructure) {
		snap := desk.Snapshot()
		side, ok := stagedSide(snap, id)
		if !ok || !desk.ToggleRestructure(side, id) {
			return fmt.Errorf("cannot restructure %q: not a staged player", id)
		}
	}
	if job.PostJune1 {
		desk.SetPostJune1(true)
	}

	snap := desk.Snapshot()
	log.Info(ctx, "simulating trade",
		"team_a", snap.Teams[domain.SideA], "assets_a", len(snap.Assets[domain.SideA]),
		"team_b", snap.Teams[domain.SideB], "assets_b", len(snap.Assets[domain.SideB]),
		"post_june_1", snap.PostJune1,
	)
	if _, err := desk.Simulate(ctx); err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	if !job.AcceptCounter || desk.Snapshot().PendingCounter == nil {
		return nil
	}
	ok, err := desk.AcceptCounter()
	if err != nil {
		return fmt.Errorf("accept counter: %w", err)
	}
	if !ok {
		log.Warn(ctx, "counter-offer could not be staged")
		return nil
	}
	if _, err := desk.Simulate(ctx); err != nil {
		return fmt.Errorf("simulate with counter: %w", err)
	}
	return nil
}

func stageScenario(ctx context.Context, desk cliDesk, n int) error {
	scenarios, err := desk.Scenarios(ctx)
	if err != nil {
		return fmt.Errorf("load scenarios: %w", err)
	}
	if n > len(scenarios) {
		return fmt.Errorf("scenario %d out of range: %d available", n, len(scenarios))
	}
	if err := desk.LoadScenario(ctx, scenarios[n-1]); err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	return nil
}

func stageTeams(ctx context.Context, desk cliDesk, job cliJob) error {
	teams := [2]string{strings.ToUpper(job.TeamA), strings.ToUpper(job.TeamB)}
	gives := [2]string{job.GiveA, job.GiveB}

	for _, side := range []domain.Side{domain.SideA, domain.SideB} {
		if !desk.SelectTeam(side, teams[side]) {
			return fmt.Errorf("cannot select %s for side %s", teams[side], side)
		}
	}

	for _, side := range []domain.Side{domain.SideA, domain.SideB} {
		roster, err := desk.Roster(ctx, teams[side])
		if err != nil {
			return fmt.Errorf("load %s roster: %w", teams[side], err)
		}
		if len(roster) == 0 {
			return fmt.Errorf("unknown team %s", teams[side])
		}

		ids := splitIDs(gives[side])
		if len(ids) == 0 {
			// without ids each side sends its largest contract
			if top, ok := topPlayer(roster); ok {
				ids = []string{top.ID}
			}
		}
		for _, id := range ids {
			i := domain.IndexOfAsset(roster, id)
			if i < 0 {
				return fmt.Errorf("%s has no tradeable asset %q", teams[side], id)
			}
			desk.AddAsset(side, roster[i])
		}
	}
	return nil
}

// topPlayer returns the player with the largest cap hit. Rosters are sorted
// by cap hit, so it is the first non-pick.
func topPlayer(roster []domain.Asset) (domain.Asset, bool) {
	for _, a := range roster {
		if !a.IsPick() {
			return a, true
		}
	}
	return domain.Asset{}, false
}

func stagedSide(s tradeApp.Snapshot, id string) (domain.Side, bool) {
	for _, side := range []domain.Side{domain.SideA, domain.SideB} {
		if domain.ContainsAsset(s.Assets[side], id) {
			return side, true
		}
	}
	return 0, false
}

func splitIDs(s string) []string {
	var out []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}
