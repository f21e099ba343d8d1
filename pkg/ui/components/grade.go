package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// WinRow is one team's projected win change.
type WinRow struct {
	Team      string
	Delta     float64
	NewTotal  float64
	OddsDelta string
}

// Verdict holds a simulation outcome for display.
type Verdict struct {
	Grade      string
	GradeStyle lipgloss.Style
	Status     string
	Summary    string
	Reason     string
	Score      float64
	Degraded   bool
	Financial  string
	Roster     string
	Wins       []WinRow
}

// VerdictComponent renders the latest simulation outcome and any pending counter.
type VerdictComponent struct {
	verdict *Verdict
	counter string
	busy    bool
}

// NewVerdictComponent creates a new verdict component.
func NewVerdictComponent() *VerdictComponent {
	return &VerdictComponent{}
}

// Update sets the verdict. nil clears it.
func (v *VerdictComponent) Update(verdict *Verdict) {
	if verdict != nil {
		sort.Slice(verdict.Wins, func(i, j int) bool { return verdict.Wins[i].Team < verdict.Wins[j].Team })
	}
	v.verdict = verdict
}

// SetCounter sets the pending counter-offer description. Empty clears it.
func (v *VerdictComponent) SetCounter(desc string) {
	v.counter = desc
}

// SetBusy marks a simulation as in flight.
func (v *VerdictComponent) SetBusy(busy bool) {
	v.busy = busy
}

// View renders the verdict component.
func (v *VerdictComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	positiveStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	negativeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

	var b strings.Builder
	b.WriteString(headerStyle.Render("VERDICT"))
	b.WriteString("\n")

	if v.busy {
		b.WriteString(warnStyle.Render("Simulating..."))
		b.WriteString("\n")
	}

	if v.verdict == nil {
		if !v.busy {
			b.WriteString(dimStyle.Render("Stage assets and press s to simulate"))
		}
		return strings.TrimRight(b.String(), "\n")
	}

	r := v.verdict
	fmt.Fprintf(&b, "%s %s  score %.0f\n", r.GradeStyle.Render(r.Grade), strings.ToUpper(r.Status), r.Score)
	b.WriteString(r.Summary)
	b.WriteString("\n")
	if r.Reason != "" {
		b.WriteString(dimStyle.Render(r.Reason))
		b.WriteString("\n")
	}
	if r.Degraded {
		b.WriteString(warnStyle.Render("Engine unreachable, local grade only"))
		b.WriteString("\n")
	}
	if r.Financial != "" {
		fmt.Fprintf(&b, "Financial: %s\n", r.Financial)
	}
	if r.Roster != "" {
		fmt.Fprintf(&b, "Roster: %s\n", r.Roster)
	}

	for _, w := range r.Wins {
		style := positiveStyle
		if w.Delta < 0 {
			style = negativeStyle
		}
		fmt.Fprintf(&b, "%-4s %s wins → %.1f  SB %s\n",
			w.Team, style.Render(fmt.Sprintf("%+.1f", w.Delta)), w.NewTotal, w.OddsDelta)
	}

	if v.counter != "" {
		b.WriteString(warnStyle.Render("Counter: " + v.counter + "  [y] accept  [n] decline"))
	}

	return strings.TrimRight(b.String(), "\n")
}
