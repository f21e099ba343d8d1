package app

import (
	"context"
	"errors"
	"testing"

	"github.com/fd1az/cap-alpha/internal/apperror"
)

type staticFinances struct {
	teams    []TeamFinance
	err      error
	position string
}

func (s *staticFinances) TeamFinances(_ context.Context, position string) ([]TeamFinance, error) {
	s.position = position
	return s.teams, s.err
}

func TestPartnerFinder_FindBuyers(t *testing.T) {
	src := &staticFinances{teams: []TeamFinance{
		{Team: "BUF", CapSpace: 20, PositionSpend: 40},
		{Team: "CHI", CapSpace: 50, PositionSpend: 10},
		{Team: "NYJ", CapSpace: 5, PositionSpend: 0},
		{Team: "NO", CapSpace: -3, PositionSpend: 0},
	}}
	got, err := NewPartnerFinder(src).FindBuyers(context.Background(), "WR", 10)
	if err != nil {
		t.Fatal(err)
	}
	if src.position != "WR" {
		t.Errorf("position = %q", src.position)
	}
	if len(got) != 2 {
		t.Fatalf("partners = %+v", got)
	}
	if got[0].Team != "CHI" || got[0].Score != 85 || got[0].Reason != "Cap Space: $50.0M | Need: 75/100" {
		t.Errorf("first = %+v", got[0])
	}
	if got[1].Team != "BUF" || got[1].Score != 16 || got[1].Reason != "Cap Space: $20.0M | Need: 0/100" {
		t.Errorf("second = %+v", got[1])
	}
}

func TestPartnerFinder_Edges(t *testing.T) {
	f := NewPartnerFinder(&staticFinances{})
	if _, err := f.FindBuyers(context.Background(), "QB", -1); apperror.GetCode(err) != apperror.CodeInvalidCapHit {
		t.Errorf("negative cap hit err = %v", err)
	}
	if got, err := f.FindBuyers(context.Background(), "QB", 1); err != nil || len(got) != 0 {
		t.Errorf("empty league = %v, %v", got, err)
	}

	noSpend := NewPartnerFinder(&staticFinances{teams: []TeamFinance{{Team: "KC", CapSpace: 10}}})
	got, err := noSpend.FindBuyers(context.Background(), "K", 0)
	if err != nil || len(got) != 1 || got[0].Score != 100 {
		t.Errorf("zero league spend = %+v, %v", got, err)
	}

	boom := errors.New("db down")
	if _, err := NewPartnerFinder(&staticFinances{err: boom}).FindBuyers(context.Background(), "QB", 1); !errors.Is(err, boom) {
		t.Errorf("err = %v", err)
	}
}
