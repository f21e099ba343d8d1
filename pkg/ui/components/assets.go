package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// AssetRow represents an asset in a roster or staged list.
type AssetRow struct {
	ID           string
	Name         string
	Team         string
	Position     string
	CapHit       float64
	DeadCap      float64
	Surplus      float64
	Risk         float64
	Pick         bool
	Restructured bool
	Staged       bool
}

// AssetListComponent renders a scrollable asset list with a cursor.
type AssetListComponent struct {
	title   string
	empty   string
	rows    []AssetRow
	cursor  int
	offset  int
	maxRows int
}

// NewAssetListComponent creates a list showing at most maxRows rows at a time.
func NewAssetListComponent(title, empty string, maxRows int) *AssetListComponent {
	return &AssetListComponent{
		title:   title,
		empty:   empty,
		rows:    make([]AssetRow, 0),
		maxRows: max(maxRows, 1),
	}
}

// SetTitle changes the header.
func (l *AssetListComponent) SetTitle(title string) {
	l.title = title
}

// Update replaces the rows, keeping the cursor in range.
func (l *AssetListComponent) Update(rows []AssetRow) {
	l.rows = rows
	if l.cursor >= len(rows) {
		l.cursor = max(len(rows)-1, 0)
	}
	l.clampOffset()
}

// Len returns the number of rows.
func (l *AssetListComponent) Len() int {
	return len(l.rows)
}

// Up moves the cursor up.
func (l *AssetListComponent) Up() {
	if l.cursor > 0 {
		l.cursor--
	}
	l.clampOffset()
}

// Down moves the cursor down.
func (l *AssetListComponent) Down() {
	if l.cursor < len(l.rows)-1 {
		l.cursor++
	}
	l.clampOffset()
}

// Selected returns the row under the cursor.
func (l *AssetListComponent) Selected() (AssetRow, bool) {
	if len(l.rows) == 0 {
		return AssetRow{}, false
	}
	return l.rows[l.cursor], true
}

func (l *AssetListComponent) clampOffset() {
	if l.cursor < l.offset {
		l.offset = l.cursor
	}
	if l.cursor >= l.offset+l.maxRows {
		l.offset = l.cursor - l.maxRows + 1
	}
	if l.offset > max(len(l.rows)-l.maxRows, 0) {
		l.offset = max(len(l.rows)-l.maxRows, 0)
	}
}

// View renders the list. The cursor is only drawn when focused.
func (l *AssetListComponent) View(focused bool) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	cursorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#7C3AED"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	riskStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
	stagedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))

	var b strings.Builder
	b.WriteString(headerStyle.Render(l.title))
	b.WriteString("\n")

	if len(l.rows) == 0 {
		b.WriteString(dimStyle.Render(l.empty))
		return b.String()
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("  %-22s %-4s %7s %6s", "Name", "Pos", "Cap", "Risk")))
	b.WriteString("\n")

	end := min(l.offset+l.maxRows, len(l.rows))
	for i := l.offset; i < end; i++ {
		row := l.rows[i]
		marker := " "
		switch {
		case row.Staged:
			marker = stagedStyle.Render("+")
		case row.Restructured:
			marker = stagedStyle.Render("R")
		}

		risk := fmt.Sprintf("%6.2f", row.Risk)
		if row.Pick {
			risk = fmt.Sprintf("%6s", "pick")
		} else if row.Risk > 0.7 {
			risk = riskStyle.Render(risk)
		}

		line := fmt.Sprintf("%s %-22s %-4s %7s %s",
			marker,
			truncate(row.Name, 22),
			row.Position,
			fmt.Sprintf("$%.1fM", row.CapHit),
			risk,
		)
		if focused && i == l.cursor {
			line = cursorStyle.Render(line)
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	if len(l.rows) > l.maxRows {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %d-%d of %d", l.offset+1, end, len(l.rows))))
	}

	return b.String()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
