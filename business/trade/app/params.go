// Package app contains the trade engine: calculator, grader, counter-offer
// generator and the staging orchestrator.
package app

import (
	"github.com/shopspring/decimal"

	"github.com/fd1az/cap-alpha/internal/config"
)

// Params are the heuristic constants of the trade engine.
type Params struct {
	AcquisitionDiscount  decimal.Decimal // share of an incoming cap hit the acquirer absorbs
	PostJune1DeadFactor  decimal.Decimal
	RestructureThreshold decimal.Decimal // restructure only applies above this charge
	RestructureFloor     decimal.Decimal // minimum salary kept after a restructure
	RestructureYears     decimal.Decimal
	CounterTolerance     decimal.Decimal
	BaseScore            decimal.Decimal
	CapEfficiencyBonus   decimal.Decimal
	MinScore             decimal.Decimal
	MaxScore             decimal.Decimal
}

// DefaultParams returns the stock heuristic.
func DefaultParams() Params {
	return Params{
		AcquisitionDiscount:  decimal.RequireFromString("0.8"),
		PostJune1DeadFactor:  decimal.RequireFromString("0.5"),
		RestructureThreshold: decimal.RequireFromString("1.2"),
		RestructureFloor:     decimal.NewFromInt(1),
		RestructureYears:     decimal.NewFromInt(5),
		CounterTolerance:     decimal.NewFromInt(5),
		BaseScore:            decimal.NewFromInt(70),
		CapEfficiencyBonus:   decimal.NewFromInt(5),
		MinScore:             decimal.NewFromInt(40),
		MaxScore:             decimal.NewFromInt(99),
	}
}

// ParamsFromConfig overrides the defaults with configured values.
func ParamsFromConfig(cfg config.TradeConfig) Params {
	p := DefaultParams()
	p.AcquisitionDiscount = cfg.AcquisitionDiscountDecimal()
	p.CounterTolerance = cfg.CounterToleranceDecimal()
	if cfg.PostJune1DeadFactor > 0 {
		p.PostJune1DeadFactor = decimal.NewFromFloat(cfg.PostJune1DeadFactor)
	}
	if cfg.RestructureThreshold > 0 {
		p.RestructureThreshold = decimal.NewFromFloat(cfg.RestructureThreshold)
	}
	if cfg.RestructureFloor > 0 {
		p.RestructureFloor = decimal.NewFromFloat(cfg.RestructureFloor)
	}
	if cfg.RestructureYears > 0 {
		p.RestructureYears = decimal.NewFromInt(cfg.RestructureYears)
	}
	return p
}
