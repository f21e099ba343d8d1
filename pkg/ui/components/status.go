// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ConnectionStatus represents an upstream's status.
type ConnectionStatus struct {
	Name       string
	Connected  bool
	Latency    time.Duration
	LastUpdate time.Time
}

// StatusComponent renders connection status.
type StatusComponent struct {
	connections []ConnectionStatus
}

// NewStatusComponent creates a new status component.
func NewStatusComponent() *StatusComponent {
	return &StatusComponent{
		connections: make([]ConnectionStatus, 0),
	}
}

// Update updates a connection's status.
func (s *StatusComponent) Update(status ConnectionStatus) {
	for i, conn := range s.connections {
		if conn.Name == status.Name {
			s.connections[i] = status
			return
		}
	}
	s.connections = append(s.connections, status)
}

// Get returns the last status reported for name.
func (s *StatusComponent) Get(name string) (ConnectionStatus, bool) {
	for _, conn := range s.connections {
		if conn.Name == name {
			return conn, true
		}
	}
	return ConnectionStatus{}, false
}

// View renders the status component on one line.
func (s *StatusComponent) View() string {
	if len(s.connections) == 0 {
		return "No connections"
	}

	parts := make([]string, 0, len(s.connections))
	for _, conn := range s.connections {
		status := "●"
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
		if !conn.Connected {
			status = "○"
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
		}

		part := fmt.Sprintf("%s %s", style.Render(status), conn.Name)
		if conn.Connected && conn.Latency > 0 {
			part += fmt.Sprintf(" (%s)", conn.Latency.Round(time.Millisecond))
		}
		parts = append(parts, part)
	}

	return strings.Join(parts, "  ")
}
