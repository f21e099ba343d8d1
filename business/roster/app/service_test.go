package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tradedomain "github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/logger"
)

type countingStore struct {
	assets []tradedomain.Asset
	calls  map[string]int
	err    error
}

func newCountingStore(assets ...tradedomain.Asset) *countingStore {
	return &countingStore{assets: assets, calls: make(map[string]int)}
}

func (s *countingStore) Teams(context.Context) ([]string, error) {
	s.calls["teams"]++
	if s.err != nil {
		return nil, s.err
	}
	seen := map[string]bool{}
	var out []string
	for _, a := range s.assets {
		if !seen[a.Team] {
			seen[a.Team] = true
			out = append(out, a.Team)
		}
	}
	return out, nil
}

func (s *countingStore) AssetsByTeam(_ context.Context, team string) ([]tradedomain.Asset, error) {
	s.calls["team"]++
	var out []tradedomain.Asset
	for _, a := range s.assets {
		if a.Team == team {
			out = append(out, a)
		}
	}
	return out, s.err
}

func (s *countingStore) Search(_ context.Context, q string, limit int) ([]tradedomain.Asset, error) {
	s.calls["search:"+q]++
	return s.assets[:1], s.err
}

func (s *countingStore) All(context.Context) ([]tradedomain.Asset, error) {
	s.calls["all"]++
	return s.assets, s.err
}

func (s *countingStore) Ping(context.Context) error { return s.err }

func league() []tradedomain.Asset {
	return []tradedomain.Asset{
		{ID: "buf_qb", Team: "BUF", Kind: tradedomain.KindPlayer, Position: "QB", CapHit: 55},
		{ID: "buf_wr", Team: "BUF", Kind: tradedomain.KindPlayer, Position: "WR", CapHit: 20, RiskScore: 0.9},
		{ID: "chi_wr", Team: "CHI", Kind: tradedomain.KindPlayer, Position: "WR", CapHit: 5},
		{ID: "chi_pick", Team: "CHI", Kind: tradedomain.KindDraftPick, Position: "PICK"},
	}
}

func TestService_CachesTeamsAndAssets(t *testing.T) {
	store := newCountingStore(league()...)
	svc := NewService(store, time.Minute, 255.4, logger.NewDiscard())
	ctx := context.Background()

	for range 3 {
		_, err := svc.Teams(ctx)
		require.NoError(t, err)
		_, err = svc.TradeableAssets(ctx, "BUF")
		require.NoError(t, err)
	}
	assert.Equal(t, 1, store.calls["teams"])
	assert.Equal(t, 1, store.calls["team"])

	svc.Invalidate()
	_, _ = svc.Teams(ctx)
	assert.Equal(t, 2, store.calls["teams"])
}

func TestService_SearchNormalizesQuery(t *testing.T) {
	store := newCountingStore(league()...)
	svc := NewService(store, time.Minute, 255.4, logger.NewDiscard())
	ctx := context.Background()

	_, err := svc.Search(ctx, "Allen ")
	require.NoError(t, err)
	_, err = svc.Search(ctx, "allen")
	require.NoError(t, err)
	assert.Equal(t, 1, store.calls["search:allen"])

	hits, err := svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.Nil(t, hits)
}

func TestService_ErrorsAreNotCached(t *testing.T) {
	store := newCountingStore(league()...)
	store.err = errors.New("db down")
	svc := NewService(store, time.Minute, 255.4, logger.NewDiscard())

	_, err := svc.Teams(context.Background())
	require.Error(t, err)

	store.err = nil
	teams, err := svc.Teams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"BUF", "CHI"}, teams)
}

func TestService_CapSummary(t *testing.T) {
	svc := NewService(newCountingStore(league()...), time.Minute, 100, logger.NewDiscard())

	sums, err := svc.CapSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, sums, 2)
	assert.Equal(t, "BUF", sums[0].Team)
	assert.Equal(t, 75.0, sums[0].TotalCap)
	assert.Equal(t, 20.0, sums[0].RiskCap)
	assert.Equal(t, 25.0, sums[0].CapSpace)
	assert.Equal(t, 95.0, sums[1].CapSpace)
}

func TestService_TeamFinances(t *testing.T) {
	svc := NewService(newCountingStore(league()...), time.Minute, 100, logger.NewDiscard())

	fin, err := svc.TeamFinances(context.Background(), "wr")
	require.NoError(t, err)
	require.Len(t, fin, 2)
	assert.Equal(t, "BUF", fin[0].Team)
	assert.Equal(t, 20.0, fin[0].PositionSpend)
	assert.Equal(t, "CHI", fin[1].Team)
	assert.Equal(t, 5.0, fin[1].PositionSpend)
	assert.Equal(t, 95.0, fin[1].CapSpace)
}
