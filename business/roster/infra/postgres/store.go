package postgres

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/fd1az/cap-alpha/business/roster/app"
	tradedomain "github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/apperror"
)

const assetColumns = `id, name, kind, team, position, cap_hit, dead_cap, risk_score, surplus_value, is_restructured`

// Store implements app.Store on the roster_assets table.
type Store struct {
	pool *Pool
}

var _ app.Store = (*Store)(nil)

// NewStore creates a store.
func NewStore(pool *Pool) *Store {
	return &Store{pool: pool}
}

// Insert adds one asset. An existing id is a DuplicateAsset error.
func (s *Store) Insert(ctx context.Context, a tradedomain.Asset) error {
	query := `INSERT INTO roster_assets (` + assetColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := s.pool.Exec(ctx, query, assetArgs(a)...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperror.Validation(apperror.CodeDuplicateAsset, a.ID)
		}
		return unavailable("insert asset", err)
	}
	return nil
}

// Upsert writes assets in one batch, replacing rows with the same id.
func (s *Store) Upsert(ctx context.Context, assets []tradedomain.Asset) error {
	query := `
		INSERT INTO roster_assets (` + assetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			kind = EXCLUDED.kind,
			team = EXCLUDED.team,
			position = EXCLUDED.position,
			cap_hit = EXCLUDED.cap_hit,
			dead_cap = EXCLUDED.dead_cap,
			risk_score = EXCLUDED.risk_score,
			surplus_value = EXCLUDED.surplus_value,
			is_restructured = EXCLUDED.is_restructured,
			updated_at = NOW()
	`

	batch := &pgx.Batch{}
	for _, a := range assets {
		batch.Queue(query, assetArgs(a)...)
	}
	if err := s.pool.SendBatch(ctx, batch).Close(); err != nil {
		return unavailable("upsert assets", err)
	}
	return nil
}

// Count returns the number of stored assets.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM roster_assets`).Scan(&n); err != nil {
		return 0, unavailable("count assets", err)
	}
	return n, nil
}

// Get returns one asset by id.
func (s *Store) Get(ctx context.Context, id string) (tradedomain.Asset, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+assetColumns+` FROM roster_assets WHERE id = $1`, id)
	a, err := scanAsset(row)
	if err != nil {
		if isNotFoundError(err) {
			return tradedomain.Asset{}, apperror.NotFound(apperror.CodeAssetNotFound, id)
		}
		return tradedomain.Asset{}, unavailable("get asset", err)
	}
	return a, nil
}

func (s *Store) Teams(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT DISTINCT team FROM roster_assets ORDER BY team`)
	if err != nil {
		return nil, unavailable("list teams", err)
	}
	teams, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, unavailable("scan teams", err)
	}
	return teams, nil
}

func (s *Store) AssetsByTeam(ctx context.Context, team string) ([]tradedomain.Asset, error) {
	query := `SELECT ` + assetColumns + ` FROM roster_assets WHERE team = $1 ORDER BY cap_hit DESC, id`
	return s.list(ctx, "assets by team", query, team)
}

func (s *Store) Search(ctx context.Context, query string, limit int) ([]tradedomain.Asset, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []tradedomain.Asset{}, nil
	}
	if limit <= 0 {
		limit = 100
	}
	sql := `
		SELECT ` + assetColumns + `
		FROM roster_assets
		WHERE LOWER(name) LIKE '%' || $1 || '%' OR LOWER(position) = $2 OR LOWER(team) = $2
		ORDER BY cap_hit DESC, id
		LIMIT $3
	`
	return s.list(ctx, "search assets", sql, escapeLike(q), q, limit)
}

func (s *Store) All(ctx context.Context) ([]tradedomain.Asset, error) {
	return s.list(ctx, "list assets", `SELECT `+assetColumns+` FROM roster_assets ORDER BY team, cap_hit DESC, id`)
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return unavailable("ping", err)
	}
	return nil
}

func (s *Store) list(ctx context.Context, op, query string, args ...any) ([]tradedomain.Asset, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, unavailable(op, err)
	}
	defer rows.Close()

	out := make([]tradedomain.Asset, 0)
	for rows.Next() {
		a, err := scanAsset(rows)
		if err != nil {
			return nil, unavailable(op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(op, err)
	}
	return out, nil
}

func scanAsset(row pgx.Row) (tradedomain.Asset, error) {
	var a tradedomain.Asset
	var kind string
	err := row.Scan(&a.ID, &a.Name, &kind, &a.Team, &a.Position,
		&a.CapHit, &a.DeadCap, &a.RiskScore, &a.SurplusValue, &a.IsRestructured)
	a.Kind = tradedomain.AssetKind(kind)
	return a, err
}

func assetArgs(a tradedomain.Asset) []any {
	kind := a.Kind
	if kind == "" {
		kind = tradedomain.KindPlayer
	}
	return []any{a.ID, a.Name, string(kind), a.Team, a.Position,
		a.CapHit, a.DeadCap, a.RiskScore, a.SurplusValue, a.IsRestructured}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func unavailable(op string, err error) error {
	return apperror.New(apperror.CodeRosterUnavailable, apperror.WithContext(op), apperror.WithCause(err))
}

// Migrate applies the schema migrations.
func (s *Store) Migrate(ctx context.Context) error {
	return Migrate(ctx, s.pool)
}

// Close releases the pool.
func (s *Store) Close() {
	s.pool.Close()
}
