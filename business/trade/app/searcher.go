package app

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/debounce"
	"github.com/fd1az/cap-alpha/internal/logger"
)

// SearchResult is delivered once per debounced lookup.
type SearchResult struct {
	Seq    uint64
	Query  string
	Assets []domain.Asset
	Err    error
}

// Searcher debounces roster lookups. Only the last query typed within the
// debounce window is looked up; a lookup already in flight still delivers,
// and callers compare Seq against Latest to drop superseded results.
type Searcher struct {
	roster    RosterSource
	debouncer *debounce.Debouncer
	log       logger.LoggerInterface
	seq       atomic.Uint64
}

// NewSearcher creates a searcher with the given debounce delay.
func NewSearcher(roster RosterSource, delay time.Duration, log logger.LoggerInterface) *Searcher {
	return &Searcher{
		roster:    roster,
		debouncer: debounce.New(delay),
		log:       log,
	}
}

// Search schedules a lookup for query. deliver runs on a timer goroutine.
func (s *Searcher) Search(ctx context.Context, query string, deliver func(SearchResult)) {
	seq := s.seq.Add(1)
	query = strings.TrimSpace(query)

	s.debouncer.Trigger(func() {
		res := SearchResult{Seq: seq, Query: query}
		if query != "" {
			res.Assets, res.Err = s.roster.Search(ctx, query)
			if res.Err != nil {
				s.log.Warn(ctx, "roster search failed", "query", query, "error", res.Err)
			}
		}
		deliver(res)
	})
}

// Latest is the sequence number of the most recent Search call.
func (s *Searcher) Latest() uint64 {
	return s.seq.Load()
}

// Cancel drops a pending lookup.
func (s *Searcher) Cancel() {
	s.debouncer.Cancel()
}
