package domain

import "github.com/shopspring/decimal"

// TeamCapImpact is one team's derived cap position for a staged trade.
// NetCapChange always equals CapCleared - DeadMoneyAcceleration - AcquiredSalary.
type TeamCapImpact struct {
	Team                  string          `json:"team"`
	CapCleared            decimal.Decimal `json:"cap_cleared"`
	DeadMoneyAcceleration decimal.Decimal `json:"dead_money_acceleration"`
	AcquiredSalary        decimal.Decimal `json:"acquired_salary"`
	NetCapChange          decimal.Decimal `json:"net_cap_change"`
	AssetsAcquired        []Asset         `json:"assets_acquired"`
	AssetsLost            []Asset         `json:"assets_lost"`
}

// AcquiredSurplus is the surplus value the team takes on.
func (i TeamCapImpact) AcquiredSurplus() decimal.Decimal {
	return SumSurplus(i.AssetsAcquired)
}

// LostSurplus is the surplus value the team gives up.
func (i TeamCapImpact) LostSurplus() decimal.Decimal {
	return SumSurplus(i.AssetsLost)
}

// Deficit is how much more surplus the team gives up than it receives.
func (i TeamCapImpact) Deficit() decimal.Decimal {
	return i.LostSurplus().Sub(i.AcquiredSurplus())
}
