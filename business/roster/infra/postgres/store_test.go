package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	tradedomain "github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/apperror"
)

// setupTestDB starts a PostgreSQL container and applies the migrations.
func setupTestDB(t *testing.T) (*Pool, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("postgres integration test skipped in -short mode")
	}

	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:15-alpine",
		tcpostgres.WithDatabase("capalpha"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")

	require.NoError(t, Migrate(ctx, pool))
	// second run must be a no-op
	require.NoError(t, Migrate(ctx, pool))

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
	return pool, cleanup
}

func seedAssets() []tradedomain.Asset {
	return []tradedomain.Asset{
		{ID: "kc_mahomes", Name: "Patrick Mahomes", Kind: tradedomain.KindPlayer, Team: "KC", Position: "QB", CapHit: 37.6, DeadCap: 96.6, RiskScore: 0.15, SurplusValue: 12},
		{ID: "kc_kelce", Name: "Travis Kelce", Kind: tradedomain.KindPlayer, Team: "KC", Position: "TE", CapHit: 17.3, DeadCap: 7.8, RiskScore: 0.78, SurplusValue: -3, IsRestructured: true},
		{ID: "kc_2026_1st", Name: "KC 2026 1st Round Pick", Kind: tradedomain.KindDraftPick, Team: "KC", Position: "PICK", SurplusValue: 8},
		{ID: "min_jefferson", Name: "Justin Jefferson", Team: "MIN", Position: "WR", CapHit: 31},
		{ID: "min_under_score", Name: "Pat_Test", Team: "MIN", Position: "WR", CapHit: 1},
	}
}

func TestStore_UpsertAndQuery(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewStore(pool)
	ctx := context.Background()

	require.NoError(t, store.Upsert(ctx, seedAssets()))

	n, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	teams, err := store.Teams(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"KC", "MIN"}, teams)

	kc, err := store.AssetsByTeam(ctx, "KC")
	require.NoError(t, err)
	require.Len(t, kc, 3)
	assert.Equal(t, "kc_mahomes", kc[0].ID)
	assert.Equal(t, "kc_2026_1st", kc[2].ID)
	assert.True(t, kc[1].IsRestructured)
	assert.Equal(t, tradedomain.KindDraftPick, kc[2].Kind)

	jj, err := store.Get(ctx, "min_jefferson")
	require.NoError(t, err)
	assert.Equal(t, tradedomain.KindPlayer, jj.Kind, "empty kind defaults to player")

	all, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestStore_Search(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewStore(pool)
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, seedAssets()))

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"name", "mahomes", 10, []string{"kc_mahomes"}},
		{"position", "WR", 10, []string{"min_jefferson", "min_under_score"}},
		{"team with limit", "kc", 2, []string{"kc_mahomes", "kc_kelce"}},
		{"underscore is literal", "pat_", 10, []string{"min_under_score"}},
		{"blank", " ", 10, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hits, err := store.Search(ctx, tt.query, tt.limit)
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
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewStore(pool)
	ctx := context.Background()

	a := seedAssets()[0]
	require.NoError(t, store.Insert(ctx, a))

	err := store.Insert(ctx, a)
	require.Error(t, err)
	assert.Equal(t, apperror.CodeDuplicateAsset, apperror.GetCode(err))
}

func TestStore_GetNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := NewStore(pool).Get(context.Background(), "missing")
	assert.Equal(t, apperror.CodeAssetNotFound, apperror.GetCode(err))
}

func TestStore_UpsertReplaces(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewStore(pool)
	ctx := context.Background()

	a := seedAssets()[0]
	require.NoError(t, store.Upsert(ctx, []tradedomain.Asset{a}))
	a.CapHit = 45
	require.NoError(t, store.Upsert(ctx, []tradedomain.Asset{a}))

	got, err := store.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, 45.0, got.CapHit)
}
