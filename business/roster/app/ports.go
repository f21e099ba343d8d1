// Package app contains the roster service.
package app

import (
	"context"

	tradedomain "github.com/fd1az/cap-alpha/business/trade/domain"
)

// Store is a roster backend.
type Store interface {
	// Teams returns distinct team codes in ascending order.
	Teams(ctx context.Context) ([]string, error)
	// AssetsByTeam returns a team's assets, highest cap hit first.
	AssetsByTeam(ctx context.Context, team string) ([]tradedomain.Asset, error)
	// Search matches name, position or team, case-insensitively.
	Search(ctx context.Context, query string, limit int) ([]tradedomain.Asset, error)
	// All returns every asset.
	All(ctx context.Context) ([]tradedomain.Asset, error)
	Ping(ctx context.Context) error
}
