package app

import (
	"context"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"

	evalapp "github.com/fd1az/cap-alpha/business/evaluation/app"
	"github.com/fd1az/cap-alpha/business/roster/domain"
	tradeapp "github.com/fd1az/cap-alpha/business/trade/app"
	tradedomain "github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/logger"
)

// SearchLimit caps the number of search hits.
const SearchLimit = 25

const (
	keyTeams   = "teams"
	keyAll     = "all"
	keyTeam    = "team:"
	keySearch  = "search:"
	defaultTTL = 5 * time.Minute
)

// Service answers roster queries from a Store through a TTL cache.
type Service struct {
	store     Store
	cache     *gocache.Cache
	ttl       time.Duration
	leagueCap float64
	log       logger.LoggerInterface
}

var (
	_ tradeapp.RosterSource = (*Service)(nil)
	_ evalapp.FinanceSource = (*Service)(nil)
)

// NewService creates a roster service. A non-positive ttl uses five minutes.
func NewService(store Store, ttl time.Duration, leagueCap float64, log logger.LoggerInterface) *Service {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Service{
		store:     store,
		cache:     gocache.New(ttl, ttl*2),
		ttl:       ttl,
		leagueCap: leagueCap,
		log:       log,
	}
}

// Teams returns the sorted team codes.
func (s *Service) Teams(ctx context.Context) ([]string, error) {
	if v, ok := s.cache.Get(keyTeams); ok {
		return v.([]string), nil
	}
	teams, err := s.store.Teams(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(keyTeams, teams, s.ttl)
	return teams, nil
}

// TradeableAssets returns a team's assets by cap hit descending. An unknown
// team has no assets.
func (s *Service) TradeableAssets(ctx context.Context, team string) ([]tradedomain.Asset, error) {
	key := keyTeam + team
	if v, ok := s.cache.Get(key); ok {
		return v.([]tradedomain.Asset), nil
	}
	assets, err := s.store.AssetsByTeam(ctx, team)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, assets, s.ttl)
	return assets, nil
}

// Search looks up assets by name, position or team. A blank query matches nothing.
func (s *Service) Search(ctx context.Context, query string) ([]tradedomain.Asset, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}
	key := keySearch + q
	if v, ok := s.cache.Get(key); ok {
		return v.([]tradedomain.Asset), nil
	}
	hits, err := s.store.Search(ctx, q, SearchLimit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, hits, s.ttl)
	return hits, nil
}

// CapSummary reports every team's cap position.
func (s *Service) CapSummary(ctx context.Context) ([]domain.CapSummary, error) {
	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return domain.Summarize(all, s.leagueCap), nil
}

// TeamFinances reports cap space and spend at position for every team.
func (s *Service) TeamFinances(ctx context.Context, position string) ([]evalapp.TeamFinance, error) {
	all, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	spend := make(map[string]decimal.Decimal)
	for _, a := range all {
		if !a.IsPick() && strings.EqualFold(a.Position, position) {
			spend[a.Team] = spend[a.Team].Add(a.CapHitDecimal())
		}
	}

	summaries := domain.Summarize(all, s.leagueCap)
	out := make([]evalapp.TeamFinance, 0, len(summaries))
	for _, sum := range summaries {
		out = append(out, evalapp.TeamFinance{
			Team:          sum.Team,
			CapSpace:      sum.CapSpace,
			PositionSpend: spend[sum.Team].InexactFloat64(),
		})
	}
	return out, nil
}

// Ping checks the backing store.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// Invalidate drops every cached answer.
func (s *Service) Invalidate() {
	s.cache.Flush()
	s.log.Debug(context.Background(), "roster cache flushed")
}

func (s *Service) all(ctx context.Context) ([]tradedomain.Asset, error) {
	if v, ok := s.cache.Get(keyAll); ok {
		return v.([]tradedomain.Asset), nil
	}
	all, err := s.store.All(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.Set(keyAll, all, s.ttl)
	return all, nil
}
