package intel

import (
	"context"

	"github.com/fd1az/cap-alpha/business/roster/infra/seed"
	"github.com/fd1az/cap-alpha/internal/config"
	"github.com/fd1az/cap-alpha/internal/di"
	"github.com/fd1az/cap-alpha/internal/logger"
	"github.com/fd1az/cap-alpha/internal/monolith"
)

// FeedToken resolves the scenario feed: the live stream when intel is
// enabled, otherwise the scenarios file.
var FeedToken = di.NewToken[Feed]("intel.Feed")

// Module wires the scenario feed.
type Module struct{}

var _ monolith.Module = Module{}

func (Module) RegisterServices(c di.Container) error {
	di.RegisterToken(c, FeedToken, func(sr di.ServiceRegistry) Feed {
		cfg := sr.Get("config").(*config.Config)
		log := sr.Get("logger").(logger.LoggerInterface)

		if cfg.Intel.Enabled {
			feed, err := NewStreamFeed(cfg.Intel.StreamURL, log)
			if err != nil {
				panic("failed to create intel stream: " + err.Error())
			}
			return feed
		}

		feed, err := LoadFile(cfg.Roster.ScenariosPath, seed.Scenarios())
		if err != nil {
			panic("failed to load scenarios: " + err.Error())
		}
		return feed
	})
	return nil
}

// Startup connects the stream, if any. A failed connect is logged, not fatal:
// the client keeps working without intel.
func (Module) Startup(ctx context.Context, mono monolith.Monolith) error {
	log := mono.Logger()

	stream, ok := di.GetToken(mono.Services(), FeedToken).(*StreamFeed)
	if !ok {
		log.Info(ctx, "intel module started", "source", "file")
		return nil
	}
	mono.OnClose(stream.Close)
	if err := stream.Start(ctx); err != nil {
		log.Warn(ctx, "intel stream unavailable", "url", mono.Config().Intel.StreamURL, "error", err)
		return nil
	}
	log.Info(ctx, "intel module started", "source", "stream")
	return nil
}
