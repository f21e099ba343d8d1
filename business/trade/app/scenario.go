package app

import (
	"context"
	"strings"

	"github.com/fd1az/cap-alpha/business/trade/domain"
)

// ScenarioResolver turns an intelligence scenario into a staged trade: the
// seller is side A and gives up the named player, the buyer is side B.
type ScenarioResolver struct {
	roster RosterSource
}

// NewScenarioResolver creates a resolver. roster may be nil, in which case
// the player is always synthesized from the scenario.
func NewScenarioResolver(roster RosterSource) *ScenarioResolver {
	return &ScenarioResolver{roster: roster}
}

// Resolve finds the player on the seller's roster by name. When the roster
// does not list the player, a player asset is built from the scenario's cap figure.
func (r *ScenarioResolver) Resolve(ctx context.Context, s domain.Scenario) (domain.ScenarioLoad, error) {
	load := domain.ScenarioLoad{TeamA: s.Seller, TeamB: s.Buyer}

	if r.roster != nil {
		assets, err := r.roster.TradeableAssets(ctx, s.Seller)
		if err != nil {
			return domain.ScenarioLoad{}, err
		}
		for _, a := range assets {
			if strings.EqualFold(a.Name, s.Player) {
				load.AssetsA = []domain.Asset{a}
				return load, nil
			}
		}
	}

	load.AssetsA = []domain.Asset{SyntheticPlayer(s)}
	return load, nil
}

// SyntheticPlayer builds a player asset for a scenario whose player is not on the roster.
func SyntheticPlayer(s domain.Scenario) domain.Asset {
	return domain.Asset{
		ID:       "scenario_" + strings.ToLower(s.Seller) + "_" + slug(s.Player),
		Name:     s.Player,
		Kind:     domain.KindPlayer,
		Team:     s.Seller,
		Position: "UNK",
		CapHit:   s.Cap,
	}
}

func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '.':
			b.WriteByte('_')
		}
	}
	return b.String()
}
