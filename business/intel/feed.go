// Package intel provides trade intelligence scenarios from a file or a live stream.
package intel

import (
	"cmp"
	"context"
	"os"
	"slices"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/apperror"
)

// MessageTypeScenarios is the only message type on the intel stream.
const MessageTypeScenarios = "scenarios"

// Message is one intel stream frame.
type Message struct {
	Type      string            `json:"type"`
	Scenarios []domain.Scenario `json:"scenarios"`
	SentAt    time.Time         `json:"sent_at"`
}

// Feed lists the current scenarios, best first.
type Feed interface {
	Scenarios(ctx context.Context) ([]domain.Scenario, error)
}

type scenarioFile struct {
	Scenarios []domain.Scenario `yaml:"scenarios"`
}

// ParseScenarios decodes a scenarios YAML document. A missing score is
// filled with the combined gain of both sides. The result is sorted by score.
func ParseScenarios(data []byte) ([]domain.Scenario, error) {
	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, apperror.New(apperror.CodeSeedLoadFailed, apperror.WithCause(err), apperror.WithContext("scenarios"))
	}
	for i := range f.Scenarios {
		s := &f.Scenarios[i]
		if s.Buyer == "" || s.Seller == "" || s.Player == "" {
			return nil, apperror.Validation(apperror.CodeSeedLoadFailed, "scenario "+s.Player+" is incomplete")
		}
		if s.Score == 0 {
			s.Score = s.BuyerGain + s.SellerGain
		}
	}
	SortByScore(f.Scenarios)
	return f.Scenarios, nil
}

// SortByScore orders scenarios best first; ties keep their order.
func SortByScore(scenarios []domain.Scenario) {
	slices.SortStableFunc(scenarios, func(a, b domain.Scenario) int {
		return cmp.Compare(b.Score, a.Score)
	})
}

// ForTeam keeps the scenarios that involve team. An empty team keeps all.
func ForTeam(scenarios []domain.Scenario, team string) []domain.Scenario {
	if team == "" {
		return scenarios
	}
	out := make([]domain.Scenario, 0, len(scenarios))
	for _, s := range scenarios {
		if s.Involves(team) {
			out = append(out, s)
		}
	}
	return out
}

// StaticFeed serves a fixed list.
type StaticFeed struct {
	mu        sync.RWMutex
	scenarios []domain.Scenario
}

// NewStaticFeed creates a feed over scenarios.
func NewStaticFeed(scenarios []domain.Scenario) *StaticFeed {
	return &StaticFeed{scenarios: scenarios}
}

// LoadFile reads a scenarios YAML file. An empty path loads fallback instead.
func LoadFile(path string, fallback []byte) (*StaticFeed, error) {
	data := fallback
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, apperror.New(apperror.CodeSeedLoadFailed, apperror.WithCause(err), apperror.WithContext(path))
		}
		data = raw
	}
	scenarios, err := ParseScenarios(data)
	if err != nil {
		return nil, err
	}
	return NewStaticFeed(scenarios), nil
}

func (f *StaticFeed) Scenarios(context.Context) ([]domain.Scenario, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.scenarios), nil
}

// Replace swaps the served list.
func (f *StaticFeed) Replace(scenarios []domain.Scenario) {
	SortByScore(scenarios)
	f.mu.Lock()
	f.scenarios = scenarios
	f.mu.Unlock()
}
