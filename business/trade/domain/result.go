package domain

import (
	"maps"
	"slices"
	"time"
)

// SimulationResult is the outcome of one simulate call.
type SimulationResult struct {
	ID         string                   `json:"id"`
	Success    bool                     `json:"success"`
	Status     Status                   `json:"status"`
	Grade      Grade                    `json:"grade"`
	Summary    string                   `json:"summary"`
	Reason     string                   `json:"reason,omitempty"`
	Analysis   *Analysis                `json:"analysis,omitempty"`
	Impacts    map[string]TeamCapImpact `json:"impacts"`
	Score      float64                  `json:"score"`
	WinImpacts map[string]WinImpact     `json:"win_impacts,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
}

// Degraded reports whether the result was produced without the evaluation service.
func (r *SimulationResult) Degraded() bool {
	return r.Status == StatusReview
}

// Clone returns a deep copy of r. A nil result clones to nil.
func (r *SimulationResult) Clone() *SimulationResult {
	if r == nil {
		return nil
	}
	out := *r
	if r.Analysis != nil {
		a := *r.Analysis
		out.Analysis = &a
	}
	out.Impacts = maps.Clone(r.Impacts)
	out.WinImpacts = maps.Clone(r.WinImpacts)
	for team, im := range out.Impacts {
		im.AssetsAcquired = slices.Clone(im.AssetsAcquired)
		im.AssetsLost = slices.Clone(im.AssetsLost)
		out.Impacts[team] = im
	}
	return &out
}
