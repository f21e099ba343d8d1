package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tradedomain "github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/apperror"
)

func fixture() []tradedomain.Asset {
	return []tradedomain.Asset{
		{ID: "kc_kelce", Name: "Travis Kelce", Kind: tradedomain.KindPlayer, Team: "KC", Position: "TE", CapHit: 17.3},
		{ID: "kc_jones", Name: "Chris Jones", Kind: tradedomain.KindPlayer, Team: "KC", Position: "DT", CapHit: 28.3},
		{ID: "min_jefferson", Name: "Justin Jefferson", Kind: tradedomain.KindPlayer, Team: "MIN", Position: "WR", CapHit: 31},
		{ID: "buf_allen", Name: "Josh Allen", Kind: tradedomain.KindPlayer, Team: "BUF", Position: "QB", CapHit: 30.4},
		{ID: "kc_2026_1st", Name: "2026 1st Round Pick", Kind: tradedomain.KindDraftPick, Team: "KC", Position: "PICK"},
	}
}

func TestStore_Teams(t *testing.T) {
	s, err := NewStore(fixture())
	require.NoError(t, err)

	teams, err := s.Teams(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"BUF", "KC", "MIN"}, teams)
}

func TestStore_AssetsByTeam_SortedByCapHit(t *testing.T) {
	s, err := NewStore(fixture())
	require.NoError(t, err)

	assets, err := s.AssetsByTeam(context.Background(), "KC")
	require.NoError(t, err)
	require.Len(t, assets, 3)
	assert.Equal(t, "kc_jones", assets[0].ID)
	assert.Equal(t, "kc_kelce", assets[1].ID)
	assert.Equal(t, "kc_2026_1st", assets[2].ID)
}

func TestStore_AssetsByTeam_Unknown(t *testing.T) {
	s, err := NewStore(fixture())
	require.NoError(t, err)

	assets, err := s.AssetsByTeam(context.Background(), "LV")
	require.NoError(t, err)
	assert.Empty(t, assets)
}

func TestStore_Search(t *testing.T) {
	s, err := NewStore(fixture())
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"name substring", "JOSH", 0, []string{"buf_allen"}},
		{"position exact", "wr", 0, []string{"min_jefferson"}},
		{"team exact", "kc", 0, []string{"kc_jones", "kc_kelce", "kc_2026_1st"}},
		{"limit", "kc", 1, []string{"kc_jones"}},
		{"blank", "  ", 0, nil},
		{"no match", "zzz", 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := s.Search(ctx, tt.query, tt.limit)
			require.NoError(t, err)
			var ids []string
			for _, h := range hits {
				ids = append(ids, h.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestStore_InsertDuplicate(t *testing.T) {
	s, err := NewStore(fixture())
	require.NoError(t, err)

	err = s.Insert(context.Background(), tradedomain.Asset{ID: "kc_kelce", Team: "KC"})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeDuplicateAsset, apperror.GetCode(err))
}

func TestNewStore_RejectsInvalid(t *testing.T) {
	_, err := NewStore([]tradedomain.Asset{{ID: "x"}})
	assert.Equal(t, apperror.CodeRequiredField, apperror.GetCode(err))

	_, err = NewStore([]tradedomain.Asset{{Team: "KC"}})
	assert.Equal(t, apperror.CodeRequiredField, apperror.GetCode(err))
}

func TestStore_Get(t *testing.T) {
	s, err := NewStore(fixture())
	require.NoError(t, err)

	a, err := s.Get(context.Background(), "buf_allen")
	require.NoError(t, err)
	assert.Equal(t, "Josh Allen", a.Name)

	_, err = s.Get(context.Background(), "nope")
	assert.Equal(t, apperror.CodeAssetNotFound, apperror.GetCode(err))
}
