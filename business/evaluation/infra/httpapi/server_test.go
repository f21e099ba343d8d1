package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	evalApp "github.com/fd1az/cap-alpha/business/evaluation/app"
	"github.com/fd1az/cap-alpha/business/intel"
	"github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/logger"
)

type finances []evalApp.TeamFinance

func (f finances) TeamFinances(context.Context, string) ([]evalApp.TeamFinance, error) {
	return f, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	feed := intel.NewStaticFeed([]domain.Scenario{
		{Buyer: "KC", Seller: "MIN", Player: "Justin Jefferson", Cap: 31, Score: 8.5},
	})
	partners := evalApp.NewPartnerFinder(finances{
		{Team: "BUF", CapSpace: 20, PositionSpend: 40},
		{Team: "CHI", CapSpace: 50, PositionSpend: 10},
	})
	s := NewServer(Config{IntelInterval: time.Hour}, evalApp.NewEngine(), evalApp.NewWinModel(), partners, feed, logger.NewDiscard())
	srv := httptest.NewServer(s.Handler())
	t.Cleanup(srv.Close)
	return srv
}

func player(id, team, pos string, surplus float64) domain.Asset {
	return domain.Asset{ID: id, Name: id, Kind: domain.KindPlayer, Team: team, Position: pos, SurplusValue: surplus, RiskScore: 0.2}
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	resp, err := http.Post(url, "application/json", &buf)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestRoot(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, map[string]string{"status": "ok", "service": "adversarial-engine", "version": "0.1.0"}, body)
}

func TestEvaluate(t *testing.T) {
	srv := newTestServer(t)
	one := []domain.Asset{player("a1", "KC", "WR", 1)}
	four := []domain.Asset{
		player("b1", "MIN", "WR", 1), player("b2", "MIN", "CB", 1),
		player("b3", "MIN", "S", 1), player("b4", "MIN", "DT", 1),
	}

	tests := []struct {
		name     string
		a, b     []domain.Asset
		grade    string
		status   domain.Status
		reason   string
		analysis bool
	}{
		{"empty side", one, nil, "F", domain.StatusRejected, "Empty trade proposal.", false},
		{"lopsided", one, four, "D", domain.StatusRejected, "Lopsided asset count. The GM demands balance.", false},
		{"fair", one, four[:3], "B", domain.StatusAccepted, "Fair exchange of assets.", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postJSON(t, srv.URL+"/api/trade/evaluate", domain.Proposal{
				TeamA: "KC", TeamB: "MIN", TeamAAssets: tt.a, TeamBAssets: tt.b,
			})
			require.Equal(t, http.StatusOK, resp.StatusCode)

			var ev domain.Evaluation
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&ev))
			assert.Equal(t, tt.grade, ev.Grade)
			assert.Equal(t, tt.status, ev.Status)
			assert.Equal(t, tt.reason, ev.Reason)
			if tt.analysis {
				require.NotNil(t, ev.Analysis)
				assert.Equal(t, "neutral", ev.Analysis.FinancialImpact)
			} else {
				assert.Nil(t, ev.Analysis)
			}
		})
	}
}

func TestEvaluate_BadRequests(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
		code string
	}{
		{"malformed", `{"team_a":`, "INVALID_PROPOSAL"},
		{"missing team_a", `{"team_b":"MIN"}`, "REQUIRED_FIELD"},
		{"missing team_b", `{"team_a":"KC"}`, "REQUIRED_FIELD"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := http.Post(srv.URL+"/api/trade/evaluate", "application/json", strings.NewReader(tt.body))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			var body struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.code, body.Error.Code)
		})
	}
}

func TestEvaluate_WrongMethod(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/trade/evaluate")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestCounter(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/trade/counter", domain.Proposal{TeamA: "KC", TeamB: "MIN"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var a domain.Asset
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&a))
	assert.Equal(t, "draft_pick_2026_2nd", a.ID)
	assert.Equal(t, "2026 2nd Round Pick", a.Name)
	assert.Equal(t, domain.KindDraftPick, a.Kind)
	assert.Equal(t, "MIN", a.Team)
	assert.Equal(t, 5.0, a.SurplusValue)
	assert.Equal(t, 0.1, a.RiskScore)
}

func TestVegas(t *testing.T) {
	srv := newTestServer(t)

	resp := postJSON(t, srv.URL+"/api/analyze/vegas", domain.Proposal{
		TeamA:       "KC",
		TeamB:       "MIN",
		TeamAAssets: []domain.Asset{player("qb", "KC", "QB", 30)},
		TeamBAssets: []domain.Asset{player("wr", "MIN", "WR", 10)},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out map[string]domain.WinImpact
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Contains(t, out, "KC")
	require.Contains(t, out, "MIN")
	assert.Less(t, out["KC"].DeltaWins, 0.0)
	assert.Greater(t, out["MIN"].DeltaWins, 0.0)
}

func TestFindPartner(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/trade/find_partner/min_jefferson?cap_hit=10&position=WR")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body partnersResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "min_jefferson", body.Player)
	require.Len(t, body.TopPartners, 2)
	assert.Equal(t, "CHI", body.TopPartners[0].Team)
	assert.Equal(t, 85, body.TopPartners[0].Score)
}

func TestFindPartner_BadQuery(t *testing.T) {
	srv := newTestServer(t)

	for _, q := range []string{"", "?cap_hit=abc", "?cap_hit=-5"} {
		t.Run(q, func(t *testing.T) {
			resp, err := http.Get(srv.URL + "/api/trade/find_partner/x" + q)
			require.NoError(t, err)
			defer resp.Body.Close()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestIntelStream(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/intel", nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	var msg intel.Message
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	assert.Equal(t, intel.MessageTypeScenarios, msg.Type)
	require.Len(t, msg.Scenarios, 1)
	assert.Equal(t, "Justin Jefferson", msg.Scenarios[0].Player)
	assert.False(t, msg.SentAt.IsZero())

	require.NoError(t, conn.Close(websocket.StatusNormalClosure, ""))
}

func TestRateLimit(t *testing.T) {
	s := NewServer(Config{RequestsPerSec: 0.001}, evalApp.NewEngine(), evalApp.NewWinModel(),
		evalApp.NewPartnerFinder(finances{}), nil, logger.NewDiscard())
	srv := httptest.NewServer(s.Handler())
	defer srv.Close()

	first, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	first.Body.Close()
	second, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	second.Body.Close()

	assert.Equal(t, http.StatusOK, first.StatusCode)
	assert.Equal(t, http.StatusTooManyRequests, second.StatusCode)
}
