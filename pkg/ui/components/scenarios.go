package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ScenarioRow is one trade idea.
type ScenarioRow struct {
	Buyer     string
	Seller    string
	Player    string
	Cost      string
	Score     float64
	Rationale string
}

// ScenariosComponent renders the intelligence feed with a cursor.
type ScenariosComponent struct {
	rows    []ScenarioRow
	cursor  int
	maxRows int
}

// NewScenariosComponent creates a new scenarios component.
func NewScenariosComponent(maxRows int) *ScenariosComponent {
	return &ScenariosComponent{
		rows:    make([]ScenarioRow, 0),
		maxRows: max(maxRows, 1),
	}
}

// Update replaces the rows. The feed is a full snapshot each time.
func (s *ScenariosComponent) Update(rows []ScenarioRow) {
	s.rows = rows
	if s.cursor >= len(rows) {
		s.cursor = max(len(rows)-1, 0)
	}
}

// Up moves the cursor up.
func (s *ScenariosComponent) Up() {
	if s.cursor > 0 {
		s.cursor--
	}
}

// Down moves the cursor down.
func (s *ScenariosComponent) Down() {
	if s.cursor < min(len(s.rows), s.maxRows)-1 {
		s.cursor++
	}
}

// Selected returns the index of the scenario under the cursor.
func (s *ScenariosComponent) Selected() (int, bool) {
	if len(s.rows) == 0 {
		return 0, false
	}
	return s.cursor, true
}

// View renders the scenarios component.
func (s *ScenariosComponent) View(focused bool) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7C3AED"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	result := headerStyle.Render("TRADE INTEL") + "\n"
	if len(s.rows) == 0 {
		return result + dimStyle.Render("No scenarios yet...")
	}

	lines := make([]string, 0, s.maxRows)
	for i, row := range s.rows {
		if i >= s.maxRows {
			break
		}
		line := fmt.Sprintf("%3.0f  %s → %s  %s (%s)", row.Score, row.Seller, row.Buyer, row.Player, row.Cost)
		if focused && i == s.cursor {
			line = cursorStyle.Render(line)
		}
		lines = append(lines, line)
	}
	result += strings.Join(lines, "\n")

	if focused {
		if _, ok := s.Selected(); ok && s.rows[s.cursor].Rationale != "" {
			result += "\n" + dimStyle.Render(truncate(s.rows[s.cursor].Rationale, 70))
		}
	}
	return result
}
