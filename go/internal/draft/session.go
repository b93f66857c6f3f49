package draft

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/mockdraft/go/internal/draft/events"
	"github.com/mcdev12/mockdraft/go/internal/draft/ledger"
	"github.com/mcdev12/mockdraft/go/internal/draft/persistence"
	"github.com/mcdev12/mockdraft/go/internal/draft/pool"
	"github.com/mcdev12/mockdraft/go/internal/draft/trade"
	"github.com/mcdev12/mockdraft/go/internal/models"
)

// DefaultRecapDelay is how long a finished draft stays on the draft screen
// before moving to the recap
const DefaultRecapDelay = 800 * time.Millisecond

// DefaultRoundOptions are the round limits a draft can be started with
var DefaultRoundOptions = []int{1, 2, 3, 7}

// Config holds the tunable parts of a session
type Config struct {
	RecapDelay   time.Duration
	RoundOptions []int
	Ledger       ledger.Options
}

// DefaultConfig returns the simulator defaults
func DefaultConfig() Config {
	return Config{
		RecapDelay:   DefaultRecapDelay,
		RoundOptions: slices.Clone(DefaultRoundOptions),
		Ledger:       ledger.DefaultOptions(),
	}
}

// selection is one undo history entry
type selection struct {
	drafted []models.Player
	pool    []models.Player
}

// Session is the draft state machine: SETUP -> ACTIVE -> RECAP, back to SETUP on reset.
// All operations serialize on one mutex. Operations whose preconditions fail return
// false and leave the state untouched.
type Session struct {
	mu        sync.Mutex
	id        string
	cfg       Config
	clock     clockwork.Clock
	bridge    persistence.Bridge
	publisher events.Publisher

	phase   models.Phase
	rounds  int
	players []models.Player // as fetched, in rank order
	pool    []models.Player
	drafted []models.Player
	history []selection

	original *ledger.Ledger
	ledger   *ledger.Ledger

	recap *pendingRecap
}

// NewSession creates an empty session in SETUP. Call Seed before use.
func NewSession(cfg Config, clock clockwork.Clock, bridge persistence.Bridge, publisher events.Publisher) *Session {
	if cfg.RecapDelay < 0 {
		cfg.RecapDelay = 0
	}
	if len(cfg.RoundOptions) == 0 {
		cfg.RoundOptions = slices.Clone(DefaultRoundOptions)
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if publisher == nil {
		publisher = events.Discard{}
	}
	if bridge == nil {
		bridge = persistence.NewMemoryStore()
	}

	empty, _ := ledger.New(nil, cfg.Ledger.Season)
	return &Session{
		id:        uuid.New().String(),
		cfg:       cfg,
		clock:     clock,
		bridge:    bridge,
		publisher: publisher,
		phase:     models.PhaseSetup,
		rounds:    cfg.RoundOptions[0],
		original:  empty,
		ledger:    empty,
	}
}

// ID returns the session id carried by every event
func (s *Session) ID() string {
	return s.id
}

// Now reads the session clock
func (s *Session) Now() time.Time {
	return s.clock.Now()
}

// RoundOptions returns the allowed round limits
func (s *Session) RoundOptions() []int {
	return slices.Clone(s.cfg.RoundOptions)
}

// Seed installs freshly fetched players and draft order, then restores a saved
// session if the bridge holds a valid one. A ledger build failure leaves the
// ledger empty and is returned.
func (s *Session) Seed(ctx context.Context, players []models.Player, order []models.DraftSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelRecap()
	s.players = slices.Clone(players)

	var buildErr error
	l, err := ledger.Build(order, s.cfg.Ledger)
	if err != nil {
		log.Error().Err(err).Int("slots", len(order)).Msg("failed to build pick ledger")
		buildErr = err
		l, _ = ledger.New(nil, s.cfg.Ledger.Season)
	}
	s.original = l
	s.resetLocked()

	s.restore(ctx)

	log.Info().
		Str("session_id", s.id).
		Str("phase", string(s.phase)).
		Int("players", len(s.players)).
		Int("slots", s.ledger.Len()).
		Int("drafted", len(s.drafted)).
		Msg("draft session seeded")
	return buildErr
}

// Start moves SETUP to ACTIVE with the chosen round limit
func (s *Session) Start(ctx context.Context, rounds int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.PhaseSetup || !slices.Contains(s.cfg.RoundOptions, rounds) {
		return false
	}
	total := s.ledger.TotalPicks(rounds)
	if total == 0 {
		log.Warn().Int("rounds", rounds).Msg("cannot start draft without a draft order")
		return false
	}

	s.rounds = rounds
	s.phase = models.PhaseActive
	s.persist(ctx)
	s.publish(ctx, events.TypeDraftStarted, events.DraftStartedPayload{
		Rounds:     rounds,
		TotalPicks: total,
		StartedAt:  s.clock.Now(),
	})

	log.Info().Str("session_id", s.id).Int("rounds", rounds).Int("total_picks", total).Msg("draft started")
	return true
}

// SelectPlayer drafts a player from the pool into the slot on the clock
func (s *Session) SelectPlayer(ctx context.Context, playerID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.PhaseActive {
		return false
	}
	total := s.ledger.TotalPicks(s.rounds)
	if len(s.drafted) >= total {
		return false
	}
	player, ok := pool.Find(s.pool, playerID)
	if !ok {
		return false
	}
	slot, _ := s.ledger.OnTheClock(len(s.drafted), s.rounds)

	s.history = append(s.history, selection{
		drafted: slices.Clone(s.drafted),
		pool:    slices.Clone(s.pool),
	})
	s.drafted = append(slices.Clone(s.drafted), player)
	s.pool = pool.Remove(s.pool, playerID)

	if len(s.drafted) == total {
		s.scheduleRecap()
	}

	s.persist(ctx)
	s.publish(ctx, events.TypePlayerSelected, events.PlayerSelectedPayload{
		PlayerID:    player.ID,
		PlayerName:  player.Name,
		Position:    player.Position,
		TeamName:    slot.CurrentTeamName,
		Round:       slot.Round,
		Pick:        slot.PickNumber,
		OverallPick: len(s.drafted),
		SlotNumber:  slot.SlotNumber,
	})

	log.Debug().
		Str("session_id", s.id).
		Int64("player_id", player.ID).
		Str("team", slot.CurrentTeamName).
		Int("overall_pick", len(s.drafted)).
		Msg("player selected")
	return true
}

// Undo restores the state from before the most recent selection
func (s *Session) Undo(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.PhaseActive || len(s.history) == 0 {
		return false
	}

	last := s.history[len(s.history)-1]
	s.history = s.history[:len(s.history)-1]

	var undone models.Player
	if len(s.drafted) > 0 {
		undone = s.drafted[len(s.drafted)-1]
	}
	s.drafted = last.drafted
	s.pool = last.pool

	if len(s.drafted) < s.ledger.TotalPicks(s.rounds) {
		s.cancelRecap()
	}

	s.persist(ctx)
	s.publish(ctx, events.TypeSelectionUndone, events.SelectionUndonePayload{
		PlayerID:    undone.ID,
		PlayerName:  undone.Name,
		OverallPick: len(s.drafted) + 1,
	})
	return true
}

// ConfirmTrade reassigns outbound slots to partner and inbound slots to the
// team on the clock in one step. Trades are not part of the undo history.
func (s *Session) ConfirmTrade(ctx context.Context, outbound, inbound []int, partner string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.PhaseActive {
		return false
	}
	onClock, ok := s.ledger.OnTheClock(len(s.drafted), s.rounds)
	if !ok {
		return false
	}

	t := ledger.Trade{
		From:     onClock.CurrentTeamName,
		To:       partner,
		Outbound: slices.Clone(outbound),
		Inbound:  slices.Clone(inbound),
	}
	next, err := s.ledger.ApplyTrade(t, len(s.drafted))
	if err != nil {
		log.Debug().Err(err).Str("team", t.From).Str("partner", partner).Msg("trade rejected")
		return false
	}
	s.ledger = next

	s.persist(ctx)
	s.publish(ctx, events.TypeTradeConfirmed, events.TradeConfirmedPayload{
		Team:     t.From,
		Partner:  partner,
		Outbound: t.Outbound,
		Inbound:  t.Inbound,
	})

	log.Info().
		Str("session_id", s.id).
		Str("team", t.From).
		Str("partner", partner).
		Ints("outbound", t.Outbound).
		Ints("inbound", t.Inbound).
		Msg("trade confirmed")
	return true
}

// Reset discards the draft, restores the fetched pool and ledger, and clears
// the saved session
func (s *Session) Reset(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetLocked()
	if err := s.bridge.Clear(ctx); err != nil {
		log.Error().Err(err).Str("session_id", s.id).Msg("failed to clear saved session")
	}
	s.publish(ctx, events.TypeDraftReset, events.DraftResetPayload{ResetAt: s.clock.Now()})
	log.Info().Str("session_id", s.id).Msg("draft reset")
}

// resetLocked returns to SETUP with the original pool and ledger. The round
// limit is kept for the next start.
func (s *Session) resetLocked() {
	s.cancelRecap()
	s.phase = models.PhaseSetup
	s.drafted = nil
	s.history = nil
	s.pool = slices.Clone(s.players)
	s.ledger = s.original
}

// TradeBoard returns what the trade negotiator opens with. It reports false
// when no team is on the clock.
func (s *Session) TradeBoard() (trade.Board, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != models.PhaseActive {
		return trade.Board{}, false
	}
	onClock, ok := s.ledger.OnTheClock(len(s.drafted), s.rounds)
	if !ok {
		return trade.Board{}, false
	}
	return trade.Board{
		Team:   onClock.CurrentTeamName,
		Season: s.ledger.Season(),
		Years:  s.ledger.Years(),
		Assets: s.ledger.TradeableAssets(len(s.drafted)),
	}, true
}

// snapshot captures the durable part of the session
func (s *Session) snapshot() persistence.Snapshot {
	return persistence.Snapshot{
		Drafted:   slices.Clone(s.drafted),
		Phase:     s.phase,
		MaxRounds: s.rounds,
		Order:     s.ledger.Slots(),
	}
}

// persist mirrors the session out while a draft is in progress.
// Failures are logged; the in-memory session stays authoritative.
func (s *Session) persist(ctx context.Context) {
	if s.phase == models.PhaseSetup {
		return
	}
	if err := s.bridge.Save(ctx, s.snapshot()); err != nil {
		log.Error().Err(err).Str("session_id", s.id).Msg("failed to save session")
	}
}

func (s *Session) publish(ctx context.Context, eventType events.Type, payload any) {
	e, err := events.New(s.id, eventType, payload, s.clock.Now())
	if err != nil {
		log.Error().Err(err).Str("event_type", string(eventType)).Msg("failed to build event")
		return
	}
	if err := s.publisher.Publish(ctx, e); err != nil && !errors.Is(err, context.Canceled) {
		log.Warn().Err(err).Str("event_type", string(eventType)).Msg("failed to publish event")
	}
}
