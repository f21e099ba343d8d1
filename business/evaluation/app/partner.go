package app

import (
	"context"
	"fmt"
	"slices"

	"github.com/fd1az/cap-alpha/internal/apperror"
)

// TeamFinance is a team's cap position and its spend at one position, in millions.
type TeamFinance struct {
	Team          string
	CapSpace      float64
	PositionSpend float64
}

// FinanceSource reports team finances for a position.
type FinanceSource interface {
	TeamFinances(ctx context.Context, position string) ([]TeamFinance, error)
}

// Partner is a ranked trade destination.
type Partner struct {
	Team   string `json:"team"`
	Score  int    `json:"score"`
	Reason string `json:"reason"`
}

const (
	needWeight  = 0.6
	spaceWeight = 0.4
)

// PartnerFinder ranks the teams that can absorb a player's cap hit.
type PartnerFinder struct {
	finances FinanceSource
}

// NewPartnerFinder creates a finder.
func NewPartnerFinder(finances FinanceSource) *PartnerFinder {
	return &PartnerFinder{finances: finances}
}

// FindBuyers returns teams with room for capHit, best fit first. Fit blends
// positional need (low spend at position) with cap space, both normalized
// against the league maximum.
func (f *PartnerFinder) FindBuyers(ctx context.Context, position string, capHit float64) ([]Partner, error) {
	if capHit < 0 {
		return nil, apperror.Validation(apperror.CodeInvalidCapHit, fmt.Sprintf("%.2f", capHit))
	}

	teams, err := f.finances.TeamFinances(ctx, position)
	if err != nil {
		return nil, err
	}
	if len(teams) == 0 {
		return []Partner{}, nil
	}

	var maxSpend, maxSpace float64
	for _, t := range teams {
		maxSpend = max(maxSpend, t.PositionSpend)
		maxSpace = max(maxSpace, t.CapSpace)
	}

	type scored struct {
		TeamFinance
		need, fit float64
	}
	qualified := make([]scored, 0, len(teams))
	for _, t := range teams {
		if t.CapSpace < capHit || t.CapSpace <= 0 {
			continue
		}
		need := 100.0
		if maxSpend > 0 {
			need = 100 - t.PositionSpend/maxSpend*100
		}
		space := t.CapSpace / maxSpace * 100
		qualified = append(qualified, scored{
			TeamFinance: t,
			need:        need,
			fit:         need*needWeight + space*spaceWeight,
		})
	}

	slices.SortStableFunc(qualified, func(a, b scored) int {
		switch {
		case a.fit > b.fit:
			return -1
		case a.fit < b.fit:
			return 1
		}
		return 0
	})

	out := make([]Partner, 0, len(qualified))
	for _, q := range qualified {
		out = append(out, Partner{
			Team:   q.Team,
			Score:  int(q.fit),
			Reason: fmt.Sprintf("Cap Space: $%.1fM | Need: %d/100", q.CapSpace, int(q.need)),
		})
	}
	return out, nil
}
