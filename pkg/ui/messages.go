package ui

import (
	"time"

	"github.com/fd1az/cap-alpha/business/trade/app"
	"github.com/fd1az/cap-alpha/business/trade/domain"
)

// Message types for TUI updates

// StateMsg carries the staged trade after every effective change.
type StateMsg struct {
	Snapshot app.Snapshot
}

// ResultMsg is sent when a simulation completes.
type ResultMsg struct {
	Result *domain.SimulationResult
}

// ConnectionStatusMsg is sent when an upstream's reachability changes.
type ConnectionStatusMsg struct {
	Name      string
	Connected bool
	Latency   time.Duration
}

// ReadyMsg hands the started trade desk to the TUI.
type ReadyMsg struct {
	Controller Controller
}

// TeamsMsg lists the selectable teams.
type TeamsMsg struct {
	Teams []string
}

// RosterMsg carries one side's tradeable assets.
type RosterMsg struct {
	Side   domain.Side
	Team   string
	Assets []domain.Asset
}

// SearchResultsMsg carries one debounced search lookup.
type SearchResultsMsg struct {
	Result app.SearchResult
}

// ScenariosMsg carries the latest trade intelligence.
type ScenariosMsg struct {
	Scenarios []domain.Scenario
}

// ErrorMsg is sent when an error occurs.
type ErrorMsg struct {
	Error error
}

// TickMsg is sent periodically for UI updates.
type TickMsg struct{}

// StartModulesMsg signals that modules should start loading.
type StartModulesMsg struct{}

// LogMsg is sent to display a log message in the UI.
type LogMsg struct {
	Level   string // "info", "warn", "error"
	Message string
}

// StartupMsg is sent during application startup to show progress.
type StartupMsg struct {
	Step    string // "config", "roster", "engine", "intel"
	Status  string // "connecting", "connected", "done", "failed", "skipped"
	Message string
}
