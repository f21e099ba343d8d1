package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

// ImpactRow is one team's cap position.
type ImpactRow struct {
	Team     string
	Cleared  decimal.Decimal
	Dead     decimal.Decimal
	Acquired decimal.Decimal
	Net      decimal.Decimal
}

// ImpactComponent renders the live cap impact table.
type ImpactComponent struct {
	rows      []ImpactRow
	postJune1 bool
}

// NewImpactComponent creates a new impact component.
func NewImpactComponent() *ImpactComponent {
	return &ImpactComponent{rows: make([]ImpactRow, 0)}
}

// Update replaces the rows.
func (c *ImpactComponent) Update(rows []ImpactRow, postJune1 bool) {
	c.rows = rows
	c.postJune1 = postJune1
}

// View renders the impact table.
func (c *ImpactComponent) View() string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	positiveStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	negativeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))

	title := "CAP IMPACT"
	if c.postJune1 {
		title += " (post-June-1)"
	}
	result := headerStyle.Render(title) + "\n"

	if len(c.rows) == 0 {
		return result + dimStyle.Render("Select two teams to begin")
	}

	result += fmt.Sprintf("  %-5s %10s %10s %10s %10s\n", "Team", "Cleared", "Dead", "Acquired", "Net")
	result += dimStyle.Render("  "+strings.Repeat("─", 49)) + "\n"

	for i, row := range c.rows {
		netStyle := positiveStyle
		if row.Net.IsNegative() {
			netStyle = negativeStyle
		}
		result += fmt.Sprintf("  %-5s %10s %10s %10s %s",
			row.Team,
			money(row.Cleared),
			money(row.Dead),
			money(row.Acquired),
			netStyle.Render(fmt.Sprintf("%10s", signed(row.Net))),
		)
		if i < len(c.rows)-1 {
			result += "\n"
		}
	}

	return result
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(1) + "M"
}

func signed(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(1) + "M"
	}
	return "+$" + d.StringFixed(1) + "M"
}
