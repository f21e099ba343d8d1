// Package evaluation implements the adversarial evaluation bounded context:
// the client side evaluator used by the trade machine and the engine server.
package evaluation

import (
	"context"
	"fmt"
	"time"

	evalApp "github.com/fd1az/cap-alpha/business/evaluation/app"
	evalDI "github.com/fd1az/cap-alpha/business/evaluation/di"
	"github.com/fd1az/cap-alpha/business/evaluation/infra/httpapi"
	"github.com/fd1az/cap-alpha/business/evaluation/infra/local"
	"github.com/fd1az/cap-alpha/business/evaluation/infra/remote"
	"github.com/fd1az/cap-alpha/business/intel"
	rosterDI "github.com/fd1az/cap-alpha/business/roster/di"
	tradeApp "github.com/fd1az/cap-alpha/business/trade/app"
	tradeDI "github.com/fd1az/cap-alpha/business/trade/di"
	"github.com/fd1az/cap-alpha/internal/config"
	"github.com/fd1az/cap-alpha/internal/di"
	"github.com/fd1az/cap-alpha/internal/logger"
	"github.com/fd1az/cap-alpha/internal/monolith"
)

const shutdownTimeout = 5 * time.Second

// Module provides the trade evaluator: the remote engine, or the in-process
// engine when engine.mode is local.
type Module struct{}

var _ monolith.Module = Module{}

func (Module) RegisterServices(c di.Container) error {
	registerEngine(c)

	cfg := c.Get("config").(*config.Config)
	if cfg.Engine.Mode == config.EvaluatorLocal {
		di.RegisterToken(c, tradeDI.Evaluator, func(sr di.ServiceRegistry) tradeApp.TradeEvaluator {
			return local.NewEvaluator(di.GetToken(sr, evalDI.Engine), di.GetToken(sr, evalDI.WinModel))
		})
		return nil
	}

	di.RegisterToken(c, tradeDI.Evaluator, func(sr di.ServiceRegistry) tradeApp.TradeEvaluator {
		log := sr.Get("logger").(logger.LoggerInterface)
		ev, err := remote.NewEvaluator(remote.Config{
			BaseURL:           cfg.Engine.BaseURL,
			Timeout:           cfg.Engine.Timeout,
			RequestsPerMinute: cfg.Engine.RequestsPerMinute,
			BreakerFailures:   cfg.Engine.BreakerFailures,
			BreakerTimeout:    cfg.Engine.BreakerTimeout,
		}, log)
		if err != nil {
			panic("failed to create remote evaluator: " + err.Error())
		}
		return ev
	})
	di.RegisterToken(c, tradeDI.EvaluatorPinger, func(sr di.ServiceRegistry) tradeApp.Pinger {
		return di.GetToken(sr, tradeDI.Evaluator).(tradeApp.Pinger)
	})
	return nil
}

func (Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	mono.Logger().Info(ctx, "evaluation module started", "mode", mono.Config().Engine.Mode)
	return nil
}

// ServerModule runs the engine HTTP API. It needs the roster and intel modules.
type ServerModule struct{}

var _ monolith.Module = ServerModule{}

func (ServerModule) RegisterServices(c di.Container) error {
	registerEngine(c)

	di.RegisterToken(c, evalDI.Partners, func(sr di.ServiceRegistry) *evalApp.PartnerFinder {
		return evalApp.NewPartnerFinder(di.GetToken(sr, rosterDI.Service))
	})

	di.RegisterToken(c, evalDI.Server, func(sr di.ServiceRegistry) *httpapi.Server {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		var feed intel.Feed
		if sr.Has(intel.FeedToken.Name()) {
			feed = di.GetToken(sr, intel.FeedToken)
		}
		return httpapi.NewServer(httpapi.Config{
			Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
			ReadTimeout:    cfg.Server.ReadTimeout,
			WriteTimeout:   cfg.Server.WriteTimeout,
			IntelInterval:  cfg.Server.IntelInterval,
			RequestsPerSec: cfg.Server.RequestsPerSec,
		},
			di.GetToken(sr, evalDI.Engine),
			di.GetToken(sr, evalDI.WinModel),
			di.GetToken(sr, evalDI.Partners),
			feed,
			log,
		)
	})
	return nil
}

// Startup starts listening and shuts the server down on close.
func (ServerModule) Startup(ctx context.Context, mono monolith.Monolith) error {
	srv := di.GetToken(mono.Services(), evalDI.Server)
	if err := srv.Start(ctx); err != nil {
		return err
	}
	mono.OnClose(func() error {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return nil
}

func registerEngine(c di.Container) {
	if c.Has(evalDI.Engine.Name()) {
		return
	}
	di.RegisterToken(c, evalDI.Engine, func(di.ServiceRegistry) *evalApp.Engine { return evalApp.NewEngine() })
	di.RegisterToken(c, evalDI.WinModel, func(di.ServiceRegistry) *evalApp.WinModel { return evalApp.NewWinModel() })
}
