package app

import (
	"github.com/shopspring/decimal"

	"github.com/fd1az/cap-alpha/business/trade/domain"
)

// CapCalculator computes a team's cap impact from a proposed in/out split.
type CapCalculator struct {
	params Params
}

// NewCapCalculator creates a calculator.
func NewCapCalculator(params Params) *CapCalculator {
	return &CapCalculator{params: params}
}

// ComputeImpact is pure and never fails. Negative inputs flow through the sums unchanged.
func (c *CapCalculator) ComputeImpact(team string, incoming, outgoing []domain.Asset, postJune1 bool) domain.TeamCapImpact {
	cleared := decimal.Zero
	dead := decimal.Zero
	for _, a := range outgoing {
		cleared = cleared.Add(a.CapHitDecimal())
		dead = dead.Add(a.DeadCapDecimal())
	}
	if postJune1 {
		dead = dead.Mul(c.params.PostJune1DeadFactor)
	}

	acquired := decimal.Zero
	for _, a := range incoming {
		acquired = acquired.Add(c.AcquisitionCharge(a))
	}

	return domain.TeamCapImpact{
		Team:                  team,
		CapCleared:            cleared,
		DeadMoneyAcceleration: dead,
		AcquiredSalary:        acquired,
		NetCapChange:          cleared.Sub(dead).Sub(acquired),
		AssetsAcquired:        cloneAssets(incoming),
		AssetsLost:            cloneAssets(outgoing),
	}
}

// AcquisitionCharge is the cap charge the acquiring team takes on for a.
func (c *CapCalculator) AcquisitionCharge(a domain.Asset) decimal.Decimal {
	charge := a.CapHitDecimal().Mul(c.params.AcquisitionDiscount)
	if a.IsRestructured && charge.GreaterThan(c.params.RestructureThreshold) {
		prorated := charge.Sub(c.params.RestructureFloor).Div(c.params.RestructureYears)
		charge = c.params.RestructureFloor.Add(prorated)
	}
	return charge
}

func cloneAssets(in []domain.Asset) []domain.Asset {
	out := make([]domain.Asset, len(in))
	copy(out, in)
	return out
}
