package draft

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/mockdraft/go/internal/draft/ledger"
	"github.com/mcdev12/mockdraft/go/internal/draft/persistence"
	"github.com/mcdev12/mockdraft/go/internal/draft/pool"
	"github.com/mcdev12/mockdraft/go/internal/models"
)

var (
	errSetupSnapshot   = errors.New("saved session is in setup")
	errRoundLimit      = errors.New("saved round limit not allowed")
	errTooManyDrafted  = errors.New("more drafted players than picks")
	errDuplicatePlayer = errors.New("player drafted twice")
	errNoPicks         = errors.New("saved draft order has no picks")
)

// restore loads a saved session over the freshly seeded state. Anything that
// cannot be trusted leaves the session fresh in SETUP. Caller holds s.mu.
func (s *Session) restore(ctx context.Context) {
	snap, err := s.bridge.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Str("session_id", s.id).Msg("ignoring unreadable saved session")
		return
	}
	if snap == nil {
		return
	}

	l, err := s.validate(snap)
	if err != nil {
		if !errors.Is(err, errSetupSnapshot) {
			log.Warn().Err(err).Str("session_id", s.id).Msg("ignoring invalid saved session")
		}
		return
	}

	s.phase = snap.Phase
	s.rounds = snap.MaxRounds
	s.ledger = l
	s.drafted = slices.Clone(snap.Drafted)
	s.pool = pool.Without(s.players, pool.IDsOf(s.drafted))
	s.history = nil

	if s.phase == models.PhaseActive && len(s.drafted) == l.TotalPicks(s.rounds) {
		s.scheduleRecap()
	}

	log.Info().
		Str("session_id", s.id).
		Str("phase", string(s.phase)).
		Int("rounds", s.rounds).
		Int("drafted", len(s.drafted)).
		Msg("restored saved session")
}

func (s *Session) validate(snap *persistence.Snapshot) (*ledger.Ledger, error) {
	switch snap.Phase {
	case models.PhaseActive, models.PhaseRecap:
	case models.PhaseSetup:
		return nil, errSetupSnapshot
	default:
		return nil, fmt.Errorf("phase %q: %w", snap.Phase, persistence.ErrCorruptSnapshot)
	}
	if !slices.Contains(s.cfg.RoundOptions, snap.MaxRounds) {
		return nil, fmt.Errorf("%d: %w", snap.MaxRounds, errRoundLimit)
	}

	l, err := ledger.New(snap.Order, s.original.Season())
	if err != nil {
		return nil, fmt.Errorf("failed to rebuild ledger: %w", err)
	}
	total := l.TotalPicks(snap.MaxRounds)
	if total == 0 {
		return nil, fmt.Errorf("round limit %d: %w", snap.MaxRounds, errNoPicks)
	}
	if len(snap.Drafted) > total {
		return nil, fmt.Errorf("%d drafted, %d picks: %w", len(snap.Drafted), total, errTooManyDrafted)
	}

	seen := make(pool.IDSet, len(snap.Drafted))
	for _, p := range snap.Drafted {
		if seen.Has(p.ID) {
			return nil, fmt.Errorf("player %d: %w", p.ID, errDuplicatePlayer)
		}
		seen[p.ID] = struct{}{}
	}
	return l, nil
}
