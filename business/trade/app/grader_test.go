package app

import (
	"strings"
	"testing"

	"github.com/fd1az/cap-alpha/business/trade/domain"
)

func impact(team string, net string, acquired ...domain.Asset) domain.TeamCapImpact {
	return domain.TeamCapImpact{Team: team, NetCapChange: dec(net), AssetsAcquired: acquired}
}

func TestGrader_Score(t *testing.T) {
	g := NewGrader(DefaultParams())

	tests := []struct {
		name  string
		a, b  domain.TeamCapImpact
		want  string
		grade domain.Grade
	}{
		{
			name:  "one side gains space and combined surplus of five",
			a:     impact("KC", "3", asset("x", "MIN", 1, 0, 2)),
			b:     impact("MIN", "-1", asset("y", "KC", 1, 0, 3)),
			want:  "80",
			grade: domain.GradeBMinus,
		},
		{
			name:  "both sides gain space",
			a:     impact("KC", "3", asset("x", "MIN", 1, 0, 2)),
			b:     impact("MIN", "1", asset("y", "KC", 1, 0, 3)),
			want:  "85",
			grade: domain.GradeB,
		},
		{
			name:  "baseline",
			a:     impact("KC", "0"),
			b:     impact("MIN", "-4"),
			want:  "70",
			grade: domain.GradeC,
		},
		{
			name:  "clamped to ceiling",
			a:     impact("KC", "10", asset("x", "MIN", 1, 0, 60)),
			b:     impact("MIN", "-10"),
			want:  "99",
			grade: domain.GradeAPlus,
		},
		{
			name:  "clamped to floor",
			a:     impact("KC", "-1", asset("x", "MIN", 1, 0, -50)),
			b:     impact("MIN", "-1"),
			want:  "40",
			grade: domain.GradeF,
		},
		{
			name:  "fractional surplus",
			a:     impact("KC", "1", asset("x", "MIN", 1, 0, 2.5)),
			b:     impact("MIN", "-1"),
			want:  "77.5",
			grade: domain.GradeCPlus,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, "score", g.Score(tt.a, tt.b), tt.want)
			res := g.Grade(tt.a, tt.b)
			if res.Grade != tt.grade {
				t.Errorf("grade = %s, want %s", res.Grade, tt.grade)
			}
			if len(res.Impacts) != 2 {
				t.Errorf("impacts = %d entries", len(res.Impacts))
			}
		})
	}
}

func TestNarrative(t *testing.T) {
	a := impact("KC", "14.5", asset("x", "MIN", 1, 0, 9))
	b := impact("MIN", "-16.5", asset("y", "KC", 1, 0, 8))

	got := Narrative(a, b)
	want := "The KC clear 15M in space. The MIN acquire talent with a net impact of -16M. KC wins the value exchange."
	if got != want {
		t.Errorf("Narrative =\n%q\nwant\n%q", got, want)
	}
}

func TestNarrative_TieGoesToB(t *testing.T) {
	got := Narrative(impact("KC", "0"), impact("MIN", "0"))
	if !strings.HasSuffix(got, "MIN wins the value exchange.") {
		t.Errorf("Narrative = %q", got)
	}
}
