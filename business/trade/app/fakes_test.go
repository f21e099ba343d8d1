package app

import (
	"context"
	"strings"
	"sync"

	"github.com/fd1az/cap-alpha/business/trade/domain"
)

type fakeEvaluator struct {
	mu          sync.Mutex
	evaluation  domain.Evaluation
	counter     *domain.Asset
	wins        map[string]domain.WinImpact
	onEvaluate  func()
	evaluations int
	counters    int
	proposals   []domain.Proposal
}

func (f *fakeEvaluator) Evaluate(_ context.Context, p domain.Proposal) domain.Evaluation {
	f.mu.Lock()
	f.evaluations++
	f.proposals = append(f.proposals, p)
	hook := f.onEvaluate
	ev := f.evaluation
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	return ev
}

func (f *fakeEvaluator) Counter(context.Context, domain.Proposal) *domain.Asset {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters++
	return f.counter
}

func (f *fakeEvaluator) VegasImpact(context.Context, domain.Proposal) map[string]domain.WinImpact {
	return f.wins
}

type fakeRoster struct {
	assets map[string][]domain.Asset
	err    error
}

func (f *fakeRoster) Teams(context.Context) ([]string, error) {
	out := make([]string, 0, len(f.assets))
	for team := range f.assets {
		out = append(out, team)
	}
	return out, f.err
}

func (f *fakeRoster) TradeableAssets(_ context.Context, team string) ([]domain.Asset, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.assets[team], nil
}

func (f *fakeRoster) Search(_ context.Context, q string) ([]domain.Asset, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []domain.Asset
	q = strings.ToLower(q)
	for _, assets := range f.assets {
		for _, a := range assets {
			if strings.Contains(strings.ToLower(a.Name), q) {
				out = append(out, a)
			}
		}
	}
	return out, nil
}
