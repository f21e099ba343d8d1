// Package di contains dependency injection tokens for the trade context.
package di

import (
	"github.com/fd1az/cap-alpha/business/trade/app"
	"github.com/fd1az/cap-alpha/internal/di"
)

// Tokens provided by the trade module.
var (
	Orchestrator = di.NewToken[*app.Orchestrator]("trade.Orchestrator")
	Desk         = di.NewToken[*app.Desk]("trade.Desk")
	Reporter     = di.NewToken[app.Reporter]("trade.Reporter")
)

// Tokens the trade module consumes. The evaluation and roster modules
// register them.
var (
	Evaluator = di.NewToken[app.TradeEvaluator]("trade.Evaluator")
	Roster    = di.NewToken[app.RosterSource]("trade.RosterSource")
	// EvaluatorPinger is optional.
	EvaluatorPinger = di.NewToken[app.Pinger]("trade.EvaluatorPinger")
)
