// Package trade implements the trade staging bounded context.
package trade

import (
	"context"

	"github.com/fd1az/cap-alpha/business/intel"
	"github.com/fd1az/cap-alpha/business/trade/app"
	tradeDI "github.com/fd1az/cap-alpha/business/trade/di"
	"github.com/fd1az/cap-alpha/business/trade/infra"
	"github.com/fd1az/cap-alpha/internal/config"
	"github.com/fd1az/cap-alpha/internal/di"
	"github.com/fd1az/cap-alpha/internal/logger"
	"github.com/fd1az/cap-alpha/internal/monolith"
)

// Module wires the orchestrator, desk and reporter.
type Module struct{}

var _ monolith.Module = Module{}

func (Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, tradeDI.Reporter, func(sr di.ServiceRegistry) app.Reporter {
		cfg := sr.Get("config").(*config.Config)
		if cfg.App.TUIMode {
			return infra.NewTUIReporter()
		}
		return infra.NewConsoleReporter(nil)
	})

	di.RegisterToken(c, tradeDI.Orchestrator, func(sr di.ServiceRegistry) *app.Orchestrator {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		o, err := app.NewOrchestrator(
			di.GetToken(sr, tradeDI.Evaluator),
			di.GetToken(sr, tradeDI.Roster),
			app.OrchestratorConfig{
				Params:               app.ParamsFromConfig(cfg.Trade),
				LocalCounterFallback: cfg.Trade.LocalCounterFallback,
			},
			log,
		)
		if err != nil {
			panic(err)
		}
		return o
	})

	di.RegisterToken(c, tradeDI.Desk, func(sr di.ServiceRegistry) *app.Desk {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		roster := di.GetToken(sr, tradeDI.Roster)

		deps := app.DeskDeps{
			Orchestrator: di.GetToken(sr, tradeDI.Orchestrator),
			Roster:       roster,
			Searcher:     app.NewSearcher(roster, cfg.Trade.SearchDebounce, log),
			Resolver:     app.NewScenarioResolver(roster),
			Reporter:     di.GetToken(sr, tradeDI.Reporter),
		}
		if sr.Has(tradeDI.EvaluatorPinger.Name()) {
			deps.Pinger = di.GetToken(sr, tradeDI.EvaluatorPinger)
		}
		if sr.Has(intel.FeedToken.Name()) {
			deps.Intel = di.GetToken(sr, intel.FeedToken)
		}
		return app.NewDesk(deps, log)
	})
	return nil
}

// Startup starts the reporter and stops it on close.
func (Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	reporter := di.GetToken(mono.Services(), tradeDI.Reporter)
	if err := reporter.Start(ctx); err != nil {
		return err
	}
	mono.OnClose(reporter.Stop)
	return nil
}
