package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/logger"
)

func TestSearcher_DebouncesToLastQuery(t *testing.T) {
	roster := &fakeRoster{assets: map[string][]domain.Asset{
		"KC":  {{ID: "kc_qb", Name: "Patrick Mahomes", Team: "KC"}},
		"MIN": {{ID: "min_wr", Name: "Justin Jefferson", Team: "MIN"}},
	}}
	s := NewSearcher(roster, 20*time.Millisecond, logger.NewDiscard())

	results := make(chan SearchResult, 4)
	deliver := func(r SearchResult) { results <- r }
	for _, q := range []string{"j", "ju", "justin"} {
		s.Search(context.Background(), q, deliver)
	}

	select {
	case r := <-results:
		if r.Query != "justin" || r.Seq != s.Latest() {
			t.Errorf("got query %q seq %d, latest %d", r.Query, r.Seq, s.Latest())
		}
		if len(r.Assets) != 1 || r.Assets[0].ID != "min_wr" {
			t.Errorf("assets = %+v", r.Assets)
		}
	case <-time.After(time.Second):
		t.Fatal("no result delivered")
	}

	select {
	case r := <-results:
		t.Errorf("superseded query delivered: %q", r.Query)
	case <-time.After(60 * time.Millisecond):
	}
}

func TestSearcher_EmptyQuerySkipsRoster(t *testing.T) {
	s := NewSearcher(&fakeRoster{err: errors.New("should not be called")}, 0, logger.NewDiscard())

	var got SearchResult
	s.Search(context.Background(), "   ", func(r SearchResult) { got = r })
	if got.Err != nil || got.Assets != nil || got.Seq != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestSearcher_ErrorDelivered(t *testing.T) {
	s := NewSearcher(&fakeRoster{err: errors.New("db down")}, 0, logger.NewDiscard())

	var got SearchResult
	s.Search(context.Background(), "mahomes", func(r SearchResult) { got = r })
	if got.Err == nil {
		t.Error("expected error")
	}
}

func TestSearcher_Cancel(t *testing.T) {
	s := NewSearcher(&fakeRoster{}, 20*time.Millisecond, logger.NewDiscard())

	called := make(chan struct{}, 1)
	s.Search(context.Background(), "x", func(SearchResult) { called <- struct{}{} })
	s.Cancel()

	select {
	case <-called:
		t.Error("cancelled search delivered")
	case <-time.After(60 * time.Millisecond):
	}
}
