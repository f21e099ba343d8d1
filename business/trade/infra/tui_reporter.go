package infra

import (
	"context"
	"time"

	"github.com/fd1az/cap-alpha/business/trade/app"
	"github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/pkg/ui"
)

// TUIReporter implements app.Reporter by forwarding to the Bubble Tea program.
type TUIReporter struct {
	send func(msg any)
}

var _ app.Reporter = (*TUIReporter)(nil)

// NewTUIReporter sends through ui.Send.
func NewTUIReporter() *TUIReporter {
	return &TUIReporter{send: func(msg any) { ui.Send(msg) }}
}

// Start is a no-op; the program is run by main.
func (r *TUIReporter) Start(ctx context.Context) error {
	return nil
}

func (r *TUIReporter) ReportState(s app.Snapshot) {
	r.send(ui.StateMsg{Snapshot: s})
}

func (r *TUIReporter) ReportResult(res *domain.SimulationResult) {
	r.send(ui.ResultMsg{Result: res})
}

func (r *TUIReporter) UpdateEvaluatorStatus(name string, connected bool, latency time.Duration) {
	r.send(ui.ConnectionStatusMsg{
		Name:      name,
		Connected: connected,
		Latency:   latency,
	})
}

// Stop quits the program.
func (r *TUIReporter) Stop() error {
	ui.Quit()
	return nil
}
