// Package memory is an in-process roster store.
package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/fd1az/cap-alpha/business/roster/app"
	tradedomain "github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/apperror"
)

// Store keeps assets in a map keyed by id.
type Store struct {
	mu    sync.RWMutex
	data  map[string]tradedomain.Asset
	order []string // insertion order, for stable output
}

var _ app.Store = (*Store)(nil)

// NewStore creates a store holding assets.
func NewStore(assets []tradedomain.Asset) (*Store, error) {
	s := &Store{data: make(map[string]tradedomain.Asset, len(assets))}
	for _, a := range assets {
		if err := s.Insert(context.Background(), a); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Insert adds an asset. The id must be unique and the team set.
func (s *Store) Insert(_ context.Context, a tradedomain.Asset) error {
	if a.ID == "" {
		return apperror.Validation(apperror.CodeRequiredField, "asset id")
	}
	if a.Team == "" {
		return apperror.Validation(apperror.CodeRequiredField, "team for "+a.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[a.ID]; exists {
		return apperror.Validation(apperror.CodeDuplicateAsset, a.ID)
	}
	s.data[a.ID] = a
	s.order = append(s.order, a.ID)
	return nil
}

// Get returns one asset.
func (s *Store) Get(_ context.Context, id string) (tradedomain.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.data[id]
	if !ok {
		return tradedomain.Asset{}, apperror.NotFound(apperror.CodeAssetNotFound, id)
	}
	return a, nil
}

func (s *Store) Teams(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]struct{})
	teams := make([]string, 0)
	for _, a := range s.data {
		if _, ok := seen[a.Team]; ok {
			continue
		}
		seen[a.Team] = struct{}{}
		teams = append(teams, a.Team)
	}
	slices.Sort(teams)
	return teams, nil
}

func (s *Store) AssetsByTeam(_ context.Context, team string) ([]tradedomain.Asset, error) {
	return s.filter(func(a tradedomain.Asset) bool { return a.Team == team }, 0), nil
}

func (s *Store) Search(_ context.Context, query string, limit int) ([]tradedomain.Asset, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []tradedomain.Asset{}, nil
	}
	return s.filter(func(a tradedomain.Asset) bool {
		return strings.Contains(strings.ToLower(a.Name), q) ||
			strings.EqualFold(a.Position, q) ||
			strings.EqualFold(a.Team, q)
	}, limit), nil
}

func (s *Store) All(_ context.Context) ([]tradedomain.Asset, error) {
	return s.filter(func(tradedomain.Asset) bool { return true }, 0), nil
}

func (s *Store) Ping(context.Context) error { return nil }

// filter returns matches by cap hit descending, insertion order on ties.
func (s *Store) filter(keep func(tradedomain.Asset) bool, limit int) []tradedomain.Asset {
	s.mu.RLock()
	out := make([]tradedomain.Asset, 0)
	for _, id := range s.order {
		if a := s.data[id]; keep(a) {
			out = append(out, a)
		}
	}
	s.mu.RUnlock()

	slices.SortStableFunc(out, func(a, b tradedomain.Asset) int {
		return cmp.Compare(b.CapHit, a.CapHit)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
