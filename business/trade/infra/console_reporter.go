// Package infra contains the reporters that render trade machine output.
package infra

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/fd1az/cap-alpha/business/trade/app"
	"github.com/fd1az/cap-alpha/business/trade/domain"
)

const rule = "================================================================================"
const thinRule = "--------------------------------------------------------------------------------"

// ConsoleReporter implements app.Reporter for CLI output.
type ConsoleReporter struct {
	out         io.Writer
	lastCounter string
}

var _ app.Reporter = (*ConsoleReporter)(nil)

// NewConsoleReporter writes to out, or stdout when out is nil.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleReporter{out: out}
}

func (r *ConsoleReporter) Start(ctx context.Context) error {
	fmt.Fprintln(r.out, "Cap Alpha Trade Machine")
	fmt.Fprintln(r.out, "=======================")
	return nil
}

// ReportState prints a pending counter-offer once. Staging changes are not printed.
func (r *ConsoleReporter) ReportState(s app.Snapshot) {
	if s.PendingCounter == nil {
		r.lastCounter = ""
		return
	}
	key := fmt.Sprintf("%d/%s", s.Version, s.PendingCounter.ID)
	if key == r.lastCounter {
		return
	}
	r.lastCounter = key

	c := s.PendingCounter
	fmt.Fprintln(r.out, "COUNTER-OFFER")
	fmt.Fprintf(r.out, "  %s (%s, %s) cap $%.1fM surplus %+.1f\n", c.Name, c.Team, c.Position, c.CapHit, c.SurplusValue)
	fmt.Fprintln(r.out, rule)
}

// ReportResult prints a simulation report.
func (r *ConsoleReporter) ReportResult(res *domain.SimulationResult) {
	if res == nil {
		return
	}
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, rule)
	fmt.Fprintln(r.out, "TRADE SIMULATION")
	fmt.Fprintln(r.out, rule)
	fmt.Fprintf(r.out, "Grade:          %s (%.1f)\n", res.Grade, res.Score)
	fmt.Fprintf(r.out, "Status:         %s\n", res.Status)
	if res.Degraded() {
		fmt.Fprintf(r.out, "Engine:         %s\n", res.Reason)
	}
	fmt.Fprintf(r.out, "Summary:        %s\n", res.Summary)

	teams := make([]string, 0, len(res.Impacts))
	for team := range res.Impacts {
		teams = append(teams, team)
	}
	slices.Sort(teams)

	fmt.Fprintln(r.out, thinRule)
	fmt.Fprintln(r.out, "CAP IMPACT")
	for _, team := range teams {
		imp := res.Impacts[team]
		fmt.Fprintf(r.out, "  %-4s cleared $%sM  dead $%sM  acquired $%sM  net %sM\n",
			team,
			imp.CapCleared.StringFixed(1),
			imp.DeadMoneyAcceleration.StringFixed(1),
			imp.AcquiredSalary.StringFixed(1),
			signed(imp.NetCapChange.StringFixed(1)))
	}

	if len(res.WinImpacts) > 0 {
		fmt.Fprintln(r.out, thinRule)
		fmt.Fprintln(r.out, "VEGAS")
		for _, team := range teams {
			w, ok := res.WinImpacts[team]
			if !ok {
				continue
			}
			fmt.Fprintf(r.out, "  %-4s %+.2f wins -> %.1f (%.1f-%.1f)  SB odds %s\n",
				team, w.DeltaWins, w.NewWinTotal, w.Floor, w.Ceiling, w.SuperBowlOddsDelta)
		}
	}
	if res.Analysis != nil {
		fmt.Fprintln(r.out, thinRule)
		fmt.Fprintf(r.out, "Financial:      %s\n", res.Analysis.FinancialImpact)
		fmt.Fprintf(r.out, "Roster:         %s\n", res.Analysis.RosterImpact)
	}
	fmt.Fprintln(r.out, rule)
}

func signed(s string) string {
	if len(s) > 0 && s[0] != '-' {
		return "+" + s
	}
	return s
}

func (r *ConsoleReporter) UpdateEvaluatorStatus(name string, connected bool, latency time.Duration) {
	status := "unreachable"
	if connected {
		status = fmt.Sprintf("reachable (%s)", latency.Round(time.Millisecond))
	}
	fmt.Fprintf(r.out, "[%s] %s: %s\n", time.Now().Format("15:04:05"), name, status)
}

func (r *ConsoleReporter) Stop() error {
	fmt.Fprintln(r.out, "")
	fmt.Fprintln(r.out, "Trade Machine Stopped")
	return nil
}
