// Package roster implements the roster bounded context: teams, tradeable
// assets and cap summaries from a seed file or PostgreSQL.
package roster

import (
	"context"
	"time"

	"github.com/fd1az/cap-alpha/business/roster/app"
	rosterDI "github.com/fd1az/cap-alpha/business/roster/di"
	"github.com/fd1az/cap-alpha/business/roster/infra/memory"
	"github.com/fd1az/cap-alpha/business/roster/infra/postgres"
	"github.com/fd1az/cap-alpha/business/roster/infra/seed"
	tradeApp "github.com/fd1az/cap-alpha/business/trade/app"
	tradeDI "github.com/fd1az/cap-alpha/business/trade/di"
	"github.com/fd1az/cap-alpha/internal/config"
	"github.com/fd1az/cap-alpha/internal/di"
	"github.com/fd1az/cap-alpha/internal/logger"
	"github.com/fd1az/cap-alpha/internal/monolith"
)

const connectTimeout = 10 * time.Second

// Module wires the roster store and service.
type Module struct{}

var _ monolith.Module = Module{}

func (Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, rosterDI.Store, func(sr di.ServiceRegistry) app.Store {
		cfg := sr.Get("config").(*config.Config)

		if cfg.Roster.Source == config.RosterPostgres {
			ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			defer cancel()
			pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN)
			if err != nil {
				panic("failed to connect roster database: " + err.Error())
			}
			return postgres.NewStore(pool)
		}

		assets, err := seed.LoadRoster(cfg.Roster.SeedPath)
		if err != nil {
			panic("failed to load roster seed: " + err.Error())
		}
		store, err := memory.NewStore(assets)
		if err != nil {
			panic("failed to build roster store: " + err.Error())
		}
		return store
	})

	di.RegisterToken(c, rosterDI.Service, func(sr di.ServiceRegistry) *app.Service {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)
		return app.NewService(di.GetToken(sr, rosterDI.Store), cfg.Roster.CacheTTL, cfg.Roster.LeagueCap, log)
	})

	// the trade context reads rosters through its own port
	di.RegisterToken(c, tradeDI.Roster, func(sr di.ServiceRegistry) tradeApp.RosterSource {
		return di.GetToken(sr, rosterDI.Service)
	})
	return nil
}

// Startup migrates and seeds an empty database when the postgres source is used.
func (Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	cfg := mono.Config()
	log := mono.Logger()

	store := di.GetToken(mono.Services(), rosterDI.Store)
	pg, ok := store.(*postgres.Store)
	if !ok {
		log.Info(ctx, "roster module started", "source", config.RosterSeed)
		return nil
	}
	mono.OnClose(func() error {
		pg.Close()
		return nil
	})

	if cfg.Postgres.RunMigrations {
		if err := pg.Migrate(ctx); err != nil {
			return err
		}
	}

	n, err := pg.Count(ctx)
	if err != nil {
		return err
	}
	if n == 0 {
		assets, err := seed.LoadRoster(cfg.Roster.SeedPath)
		if err != nil {
			return err
		}
		if err := pg.Upsert(ctx, assets); err != nil {
			return err
		}
		log.Info(ctx, "roster database seeded", "assets", len(assets))
	}

	log.Info(ctx, "roster module started", "source", config.RosterPostgres, "existing_assets", n)
	return nil
}
