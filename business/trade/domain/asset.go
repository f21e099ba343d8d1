// Package domain contains the core types of the trade context.
package domain

import (
	"github.com/shopspring/decimal"
)

// AssetKind distinguishes players from draft picks.
type AssetKind string

const (
	KindPlayer    AssetKind = "player"
	KindDraftPick AssetKind = "draft_pick"
)

// Asset is a tradeable unit. Money fields are in millions.
type Asset struct {
	ID             string    `json:"id" yaml:"id"`
	Name           string    `json:"name" yaml:"name"`
	Kind           AssetKind `json:"type" yaml:"type"`
	Team           string    `json:"team" yaml:"team"`
	Position       string    `json:"position" yaml:"position"`
	CapHit         float64   `json:"cap_hit_millions" yaml:"cap_hit_millions"`
	DeadCap        float64   `json:"dead_cap_millions" yaml:"dead_cap_millions"`
	RiskScore      float64   `json:"risk_score" yaml:"risk_score"`
	SurplusValue   float64   `json:"surplus_value" yaml:"surplus_value"`
	IsRestructured bool      `json:"isRestructured,omitempty" yaml:"is_restructured,omitempty"`
}

// IsPick reports whether the asset is a draft pick.
func (a Asset) IsPick() bool {
	return a.Kind == KindDraftPick
}

func (a Asset) CapHitDecimal() decimal.Decimal  { return decimal.NewFromFloat(a.CapHit) }
func (a Asset) DeadCapDecimal() decimal.Decimal { return decimal.NewFromFloat(a.DeadCap) }
func (a Asset) SurplusDecimal() decimal.Decimal { return decimal.NewFromFloat(a.SurplusValue) }

// SumSurplus adds the surplus value of assets.
func SumSurplus(assets []Asset) decimal.Decimal {
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(a.SurplusDecimal())
	}
	return total
}

// ContainsAsset reports whether assets holds an asset with id.
func ContainsAsset(assets []Asset, id string) bool {
	return IndexOfAsset(assets, id) >= 0
}

// IndexOfAsset returns the position of id in assets, or -1.
func IndexOfAsset(assets []Asset, id string) int {
	for i := range assets {
		if assets[i].ID == id {
			return i
		}
	}
	return -1
}
