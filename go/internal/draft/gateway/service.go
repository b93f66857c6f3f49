// Package gateway exposes the draft room over HTTP and a websocket event feed.
package gateway

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/mockdraft/go/internal/board"
	"github.com/mcdev12/mockdraft/go/internal/draft"
	"github.com/mcdev12/mockdraft/go/internal/draft/events"
	"github.com/mcdev12/mockdraft/go/internal/draft/outbox"
	"github.com/mcdev12/mockdraft/go/internal/draft/trade"
	"github.com/mcdev12/mockdraft/go/internal/prospects"
)

// Service serves one draft room and one big board
type Service struct {
	session     *draft.Session
	board       *board.Board
	prospects   *prospects.App
	connections *ConnectionManager
	publisher   events.Publisher
	health      outbox.HealthChecker

	tradeMu     sync.Mutex
	negotiation *trade.Negotiation
}

// Deps are the collaborators a Service routes requests to
type Deps struct {
	Session     *draft.Session
	Board       *board.Board
	Prospects   *prospects.App
	Connections *ConnectionManager
	// Publisher receives board events; usually the same fanout the session publishes to
	Publisher events.Publisher
	Health    outbox.HealthChecker
}

func NewService(d Deps) *Service {
	if d.Connections == nil {
		d.Connections = NewConnectionManager(DefaultConnectionConfig())
	}
	if d.Publisher == nil {
		d.Publisher = d.Connections
	}
	if d.Health == nil {
		d.Health = outbox.DisabledHealthChecker{}
	}
	return &Service{
		session:     d.Session,
		board:       d.Board,
		prospects:   d.Prospects,
		connections: d.Connections,
		publisher:   d.Publisher,
		health:      d.Health,
	}
}

// Start runs the websocket broadcaster until ctx is cancelled
func (s *Service) Start(ctx context.Context) {
	s.connections.Start(ctx)
}

// Routes builds the HTTP router
func (s *Service) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", s.handleHealth)
	r.Get("/ws/draft", s.handleDraftConnection)

	r.Route("/api", func(r chi.Router) {
		r.Get("/players", s.handleListPlayers)
		r.Get("/players/{slug}", s.handleGetPlayer)

		r.Route("/session", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Post("/start", s.handleStart)
			r.Post("/picks", s.handleSelectPlayer)
			r.Post("/undo", s.handleUndo)
			r.Post("/reset", s.handleReset)
			r.Post("/trades", s.handleConfirmTrade)
		})

		r.Route("/ledger", func(r chi.Router) {
			r.Get("/rounds/{round}", s.handleRound)
			r.Get("/teams/{team}", s.handleTeam)
			r.Get("/results", s.handleResults)
		})

		r.Route("/trade", func(r chi.Router) {
			r.Get("/", s.handleGetTrade)
			r.Post("/open", s.handleOpenTrade)
			r.Post("/partner", s.handleTradePartner)
			r.Post("/year", s.handleTradeYear)
			r.Post("/toggle", s.handleTradeToggle)
			r.Post("/confirm", s.handleTradeConfirm)
			r.Post("/cancel", s.handleTradeCancel)
		})

		r.Route("/board", func(r chi.Router) {
			r.Get("/", s.handleGetBoard)
			r.Post("/size", s.handleBoardSize)
			r.Post("/add", s.handleBoardAdd)
			r.Post("/remove", s.handleBoardRemove)
			r.Post("/back", s.handleBoardBack)
			r.Post("/reset", s.handleBoardReset)
			r.Get("/export.png", s.handleBoardExport)
		})
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request handled")
	})
}

type healthResponse struct {
	Status      string              `json:"status"`
	Phase       string              `json:"phase"`
	Connections int                 `json:"connections"`
	Outbox      outbox.HealthStatus `json:"outbox"`
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:      "ok",
		Phase:       string(s.session.Phase()),
		Connections: s.connections.Count(),
		Outbox:      s.health.Check(r.Context()),
	}
	code := http.StatusOK
	if !resp.Outbox.Healthy {
		resp.Status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

func (s *Service) handleDraftConnection(w http.ResponseWriter, r *http.Request) {
	if err := s.connections.UpgradeConnection(w, r); err != nil {
		// the upgrader has already written the error response
		log.Error().Err(err).Msg("failed to upgrade WebSocket connection")
	}
}
