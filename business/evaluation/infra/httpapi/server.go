// Package httpapi serves the adversarial engine over HTTP and streams trade
// intelligence over a websocket.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	evalApp "github.com/fd1az/cap-alpha/business/evaluation/app"
	"github.com/fd1az/cap-alpha/business/intel"
	"github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/apperror"
	"github.com/fd1az/cap-alpha/internal/logger"
	"github.com/fd1az/cap-alpha/internal/ratelimit"
)

// Service identity reported by GET /.
const (
	ServiceName    = "adversarial-engine"
	ServiceVersion = "0.1.0"
)

const (
	maxBodyBytes     = 1 << 20
	defaultPosition  = "QB"
	requestIDHeader  = "X-Request-ID"
	defaultIntelTick = 30 * time.Second
)

// Config tunes the server.
type Config struct {
	Addr          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IntelInterval time.Duration
	// RequestsPerSec limits inbound requests. Zero disables limiting.
	RequestsPerSec float64
}

// Server is the engine HTTP API.
type Server struct {
	cfg      Config
	engine   *evalApp.Engine
	wins     *evalApp.WinModel
	partners *evalApp.PartnerFinder
	feed     intel.Feed
	log      logger.LoggerInterface

	handler    http.Handler
	httpServer *http.Server
}

// NewServer builds the router. feed may be nil, in which case the intel
// stream sends empty scenario lists.
func NewServer(cfg Config, engine *evalApp.Engine, wins *evalApp.WinModel, partners *evalApp.PartnerFinder, feed intel.Feed, log logger.LoggerInterface) *Server {
	if cfg.IntelInterval <= 0 {
		cfg.IntelInterval = defaultIntelTick
	}
	s := &Server{
		cfg:      cfg,
		engine:   engine,
		wins:     wins,
		partners: partners,
		feed:     feed,
		log:      log,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /api/trade/evaluate", s.handleEvaluate)
	mux.HandleFunc("POST /api/trade/counter", s.handleCounter)
	mux.HandleFunc("POST /api/analyze/vegas", s.handleVegas)
	mux.HandleFunc("GET /api/trade/find_partner/{player_id}", s.handleFindPartner)
	mux.HandleFunc("GET /ws/intel", s.handleIntel)

	limiter := ratelimit.NewPerSecond(cfg.RequestsPerSec, int(cfg.RequestsPerSec)*2)
	s.handler = otelhttp.NewHandler(requestID(limiter.Middleware(mux)), ServiceName)

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.handler }

// Start listens and serves in the background.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return apperror.New(apperror.CodeConfigurationError, apperror.WithCause(err), apperror.WithContext(s.httpServer.Addr))
	}
	s.log.Info(ctx, "engine server listening", "addr", ln.Addr().String())
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error(context.Background(), "engine server stopped", "error", err)
		}
	}()
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": ServiceName,
		"version": ServiceVersion,
	})
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	p, err := decodeProposal(w, r)
	if err != nil {
		apperror.WriteJSON(w, err)
		return
	}
	s.log.Info(r.Context(), "evaluating trade", "team_a", p.TeamA, "team_b", p.TeamB,
		"assets_a", len(p.TeamAAssets), "assets_b", len(p.TeamBAssets))
	writeJSON(w, http.StatusOK, s.engine.Evaluate(p))
}

func (s *Server) handleCounter(w http.ResponseWriter, r *http.Request) {
	p, err := decodeProposal(w, r)
	if err != nil {
		apperror.WriteJSON(w, err)
		return
	}
	s.log.Info(r.Context(), "generating counter offer", "team_a", p.TeamA, "team_b", p.TeamB)
	writeJSON(w, http.StatusOK, s.engine.Counter(p))
}

func (s *Server) handleVegas(w http.ResponseWriter, r *http.Request) {
	p, err := decodeProposal(w, r)
	if err != nil {
		apperror.WriteJSON(w, err)
		return
	}
	s.log.Info(r.Context(), "analyzing vegas impact", "team_a", p.TeamA, "team_b", p.TeamB)
	writeJSON(w, http.StatusOK, s.wins.Impact(p))
}

type partnersResponse struct {
	Player      string            `json:"player"`
	TopPartners []evalApp.Partner `json:"top_partners"`
}

func (s *Server) handleFindPartner(w http.ResponseWriter, r *http.Request) {
	playerID := r.PathValue("player_id")
	q := r.URL.Query()

	raw := q.Get("cap_hit")
	if raw == "" {
		apperror.WriteJSON(w, apperror.Validation(apperror.CodeRequiredField, "cap_hit"))
		return
	}
	capHit, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		apperror.WriteJSON(w, apperror.New(apperror.CodeInvalidFormat, apperror.WithContext("cap_hit"), apperror.WithCause(err)))
		return
	}
	position := q.Get("position")
	if position == "" {
		position = defaultPosition
	}

	s.log.Info(r.Context(), "finding trade partners", "player", playerID, "position", position, "cap_hit", capHit)
	partners, err := s.partners.FindBuyers(r.Context(), position, capHit)
	if err != nil {
		apperror.WriteJSON(w, err)
		return
	}
	writeJSON(w, http.StatusOK, partnersResponse{Player: playerID, TopPartners: partners})
}

// handleIntel pushes the scenario list on connect and then every interval
// until the client goes away.
func (s *Server) handleIntel(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		s.log.Warn(r.Context(), "intel websocket accept failed", "error", err)
		return
	}
	defer conn.CloseNow()

	// inbound frames are ignored; CloseRead cancels ctx when the peer closes
	ctx := conn.CloseRead(r.Context())

	ticker := time.NewTicker(s.cfg.IntelInterval)
	defer ticker.Stop()

	for {
		if err := s.pushIntel(ctx, conn); err != nil {
			if ctx.Err() == nil {
				s.log.Warn(ctx, "intel push failed", "error", err)
			}
			return
		}
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case <-ticker.C:
		}
	}
}

func (s *Server) pushIntel(ctx context.Context, conn *websocket.Conn) error {
	scenarios := []domain.Scenario{}
	if s.feed != nil {
		got, err := s.feed.Scenarios(ctx)
		if err != nil {
			return err
		}
		scenarios = got
	}
	writeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return wsjson.Write(writeCtx, conn, intel.Message{
		Type:      intel.MessageTypeScenarios,
		Scenarios: scenarios,
		SentAt:    time.Now().UTC(),
	})
}

func decodeProposal(w http.ResponseWriter, r *http.Request) (domain.Proposal, error) {
	var p domain.Proposal
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&p); err != nil {
		return p, apperror.New(apperror.CodeInvalidProposal, apperror.WithCause(err), apperror.WithContext("malformed body"))
	}
	if p.TeamA == "" {
		return p, apperror.Validation(apperror.CodeRequiredField, "team_a")
	}
	if p.TeamB == "" {
		return p, apperror.Validation(apperror.CodeRequiredField, "team_b")
	}
	return p, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestID tags every request and response with an id.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}
