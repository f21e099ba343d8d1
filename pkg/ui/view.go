package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/fd1az/cap-alpha/business/trade/domain"
)

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return "\n  Goodbye!\n\n"
	}

	switch m.phase {
	case PhaseWelcome:
		return m.renderWelcomeScreen()
	case PhaseStartup:
		return m.renderStartupScreen()
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render(" 🏈 Cap Alpha Trade Machine "))
	b.WriteString("\n\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	// Team columns: roster above staged
	cols := make([]string, 0, 2)
	for side := range m.rosters {
		col := lipgloss.JoinVertical(lipgloss.Left,
			m.box(paneRosterA+pane(side), m.rosters[side].View(m.focus == paneRosterA+pane(side))),
			m.box(paneStagedA+pane(side), m.staged[side].View(m.focus == paneStagedA+pane(side))),
		)
		cols = append(cols, col)
	}

	// Right column: search, impact, verdict, intel
	var searchView strings.Builder
	searchView.WriteString(m.search.View())
	searchView.WriteString("\n")
	searchView.WriteString(m.results.View(m.focus == paneSearch && !m.typing))

	right := lipgloss.JoinVertical(lipgloss.Left,
		m.box(paneSearch, searchView.String()),
		BoxStyle.Width(m.colWidth()).Render(m.impact.View()),
		BoxStyle.Width(m.colWidth()).Render(m.verdict.View()),
		m.box(paneIntel, m.intel.View(m.focus == paneIntel)),
	)

	if m.width > 120 {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols[0], cols[1], right))
	} else {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cols[0], cols[1]))
		b.WriteString("\n")
		b.WriteString(right)
	}
	b.WriteString("\n\n")

	// Persistent error panel (show last 3 errors)
	if len(m.errors) > 0 {
		errorStyle := lipgloss.NewStyle().Foreground(ColorDanger)
		errorHeader := lipgloss.NewStyle().Bold(true).Foreground(ColorDanger)
		mutedError := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF"))

		b.WriteString(errorHeader.Render("ERRORS"))
		b.WriteString(mutedError.Render(" (e: clear)"))
		b.WriteString("\n")
		for _, err := range m.errors {
			ago := time.Since(err.Timestamp).Round(time.Second)
			b.WriteString(errorStyle.Render(fmt.Sprintf("  • %s ", err.Message)))
			b.WriteString(mutedError.Render(fmt.Sprintf("(%s ago)", ago)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(m.logs) > 0 {
		b.WriteString(MutedValue.Render(m.logs[len(m.logs)-1]))
		b.WriteString("\n")
	}

	b.WriteString(HelpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m Model) colWidth() int {
	if m.width > 120 {
		return m.width/3 - 4
	}
	if m.width > 0 {
		return m.width/2 - 4
	}
	return 48
}

func (m Model) box(p pane, content string) string {
	style := BoxStyle
	if m.focus == p {
		style = FocusedBoxStyle
	}
	return style.Width(m.colWidth()).Render(content)
}

// renderWelcomeScreen renders the animated welcome screen.
func (m Model) renderWelcomeScreen() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED"))

	goldStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#F59E0B"))

	mutedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#6B7280"))

	greenStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#10B981"))

	// Animated dots based on time
	elapsed := time.Since(m.welcomeStart)
	dotCount := int(elapsed.Milliseconds()/300) % 4
	dots := strings.Repeat(".", dotCount)

	var sb strings.Builder

	sb.WriteString("\n\n\n\n")

	logo := `
    ██████╗ █████╗ ██████╗      █████╗ ██╗     ██████╗ ██╗  ██╗ █████╗
   ██╔════╝██╔══██╗██╔══██╗    ██╔══██╗██║     ██╔══██╗██║  ██║██╔══██╗
   ██║     ███████║██████╔╝    ███████║██║     ██████╔╝███████║███████║
   ██║     ██╔══██║██╔═══╝     ██╔══██║██║     ██╔═══╝ ██╔══██║██╔══██║
   ╚██████╗██║  ██║██║         ██║  ██║███████╗██║     ██║  ██║██║  ██║
    ╚═════╝╚═╝  ╚═╝╚═╝         ╚═╝  ╚═╝╚══════╝╚═╝     ╚═╝  ╚═╝╚═╝  ╚═╝
`
	sb.WriteString(titleStyle.Render(logo))
	sb.WriteString("\n")

	sb.WriteString(mutedStyle.Render("                  T R A D E   M A C H I N E"))
	sb.WriteString("\n\n\n")

	sb.WriteString(goldStyle.Render("              🏈  Every dollar of cap is a weapon  🏈"))
	sb.WriteString("\n\n\n")

	sb.WriteString(greenStyle.Render(fmt.Sprintf("                      Initializing%s", dots)))
	sb.WriteString("\n\n")

	sb.WriteString(mutedStyle.Render("                Press any key to skip, or wait..."))
	sb.WriteString("\n")

	return sb.String()
}

// renderStartupScreen renders the loading/startup screen.
func (m Model) renderStartupScreen() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#7C3AED")).
		MarginBottom(1)

	headerStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF"))

	mutedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	successStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	connectingStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	failedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))

	var sb strings.Builder

	sb.WriteString("\n\n")
	sb.WriteString(titleStyle.Render("  🏈 Cap Alpha Trade Machine"))
	sb.WriteString("\n\n")
	sb.WriteString(headerStyle.Render("  Starting up..."))
	sb.WriteString("\n\n")

	for _, key := range stepOrder {
		step, ok := m.startupSteps[key]
		if !ok {
			continue
		}

		var icon, statusText string
		var style lipgloss.Style

		switch step.Status {
		case "connected", "done":
			icon = "✓"
			statusText = "Ready"
			style = successStyle
		case "connecting":
			spinners := []string{"◐", "◓", "◑", "◒"}
			idx := int(time.Since(m.startupTime).Milliseconds()/200) % len(spinners)
			icon = spinners[idx]
			statusText = "Connecting..."
			style = connectingStyle
		case "skipped":
			icon = "–"
			statusText = "Skipped"
			style = mutedStyle
		case "failed":
			icon = "✗"
			statusText = "Failed"
			style = failedStyle
		default:
			icon = "○"
			statusText = "Pending"
			style = mutedStyle
		}

		sb.WriteString(fmt.Sprintf("  %s %s %s\n",
			style.Render(icon),
			mutedStyle.Render(step.Name),
			style.Render(statusText),
		))
	}

	sb.WriteString("\n")
	elapsed := time.Since(m.startupTime).Round(time.Second)
	sb.WriteString(mutedStyle.Render(fmt.Sprintf("  Elapsed: %s", elapsed)))
	sb.WriteString("\n")

	if len(m.logs) > 0 {
		sb.WriteString("\n")
		for _, l := range m.logs {
			sb.WriteString(mutedStyle.Render("  " + l))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func (m Model) renderStatusBar() string {
	var parts []string

	teams := fmt.Sprintf("%s ⇄ %s", orDash(m.snap.Teams[domain.SideA]), orDash(m.snap.Teams[domain.SideB]))
	parts = append(parts, teams)

	if m.snap.PostJune1 {
		parts = append(parts, PositiveValue.Render("Post-June-1"))
	} else {
		parts = append(parts, MutedValue.Render("Pre-June-1"))
	}

	parts = append(parts, fmt.Sprintf("Phase: %s", m.snap.Phase))

	if m.simulating {
		spinners := []string{"⟳", "◐", "◓", "◑", "◒"}
		idx := int(time.Now().UnixMilli()/100) % len(spinners)
		parts = append(parts, StatusReconnecting.Render(spinners[idx]+" Simulating"))
	}

	parts = append(parts, m.status.View())

	if !m.lastUpdate.IsZero() {
		ago := time.Since(m.lastUpdate).Round(time.Second)
		parts = append(parts, MutedValue.Render(fmt.Sprintf("Updated: %s ago", ago)))
	}

	return strings.Join(parts, "  │  ")
}

func orDash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
