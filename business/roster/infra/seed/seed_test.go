package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	tradedomain "github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/apperror"
)

func TestLoadRoster_Embedded(t *testing.T) {
	assets, err := LoadRoster("")
	require.NoError(t, err)
	require.NotEmpty(t, assets)

	ids := make(map[string]bool, len(assets))
	for _, a := range assets {
		assert.False(t, ids[a.ID], "duplicate id %s", a.ID)
		ids[a.ID] = true
		assert.NotEmpty(t, a.Team)
		assert.GreaterOrEqual(t, a.RiskScore, 0.0)
		assert.LessOrEqual(t, a.RiskScore, 1.0)
	}
	assert.True(t, ids["kc_mahomes"])
}

func TestParseRoster_DefaultsKind(t *testing.T) {
	assets, err := ParseRoster([]byte(`
assets:
  - id: x
    name: X
    team: KC
    cap_hit_millions: 2.5
`))
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, tradedomain.KindPlayer, assets[0].Kind)
	assert.Equal(t, 2.5, assets[0].CapHit)
}

func TestParseRoster_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"malformed", "assets: [::"},
		{"missing team", "assets:\n  - id: x\n"},
		{"missing id", "assets:\n  - team: KC\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRoster([]byte(tt.doc))
			assert.Equal(t, apperror.CodeSeedLoadFailed, apperror.GetCode(err))
		})
	}
}

func TestLoadRoster_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assets:\n  - {id: a, team: LV, name: A}\n"), 0o600))

	assets, err := LoadRoster(path)
	require.NoError(t, err)
	assert.Equal(t, "LV", assets[0].Team)

	_, err = LoadRoster(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, apperror.CodeSeedLoadFailed, apperror.GetCode(err))
}

func TestScenarios_Embedded(t *testing.T) {
	var doc struct {
		Scenarios []tradedomain.Scenario `yaml:"scenarios"`
	}
	require.NoError(t, yaml.Unmarshal(Scenarios(), &doc))
	require.NotEmpty(t, doc.Scenarios)

	roster, err := LoadRoster("")
	require.NoError(t, err)
	for _, s := range doc.Scenarios {
		assert.NotEqual(t, s.Buyer, s.Seller)
		found := false
		for _, a := range roster {
			if a.Team == s.Seller && a.Name == s.Player {
				found = true
			}
		}
		assert.True(t, found, "%s is not on the %s roster", s.Player, s.Seller)
	}
}
