package draft

import (
	"context"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/mockdraft/go/internal/draft/events"
	"github.com/mcdev12/mockdraft/go/internal/models"
)

// pendingRecap is the one-shot ACTIVE -> RECAP transition waiting on its delay
type pendingRecap struct {
	timer clockwork.Timer
	done  chan struct{}
}

// scheduleRecap arms the recap timer, replacing any pending one.
// Caller holds s.mu.
func (s *Session) scheduleRecap() {
	s.cancelRecap()

	p := &pendingRecap{
		timer: s.clock.NewTimer(s.cfg.RecapDelay),
		done:  make(chan struct{}),
	}
	s.recap = p

	go func() {
		select {
		case <-p.timer.Chan():
			s.completeRecap(p)
		case <-p.done:
			stopAndDrainTimer(p.timer)
		}
	}()

	log.Debug().Str("session_id", s.id).Dur("delay", s.cfg.RecapDelay).Msg("scheduled recap")
}

// cancelRecap stops a pending recap transition. Caller holds s.mu.
func (s *Session) cancelRecap() {
	if s.recap == nil {
		return
	}
	close(s.recap.done)
	s.recap = nil
	log.Debug().Str("session_id", s.id).Msg("cancelled pending recap")
}

// completeRecap runs when the delay elapses. The draft must still be complete,
// and p must still be the pending transition, for the phase to change.
func (s *Session) completeRecap(p *pendingRecap) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.recap != p {
		return
	}
	s.recap = nil

	total := s.ledger.TotalPicks(s.rounds)
	if s.phase != models.PhaseActive || len(s.drafted) != total {
		return
	}

	ctx := context.Background()
	s.phase = models.PhaseRecap
	s.persist(ctx)
	s.publish(ctx, events.TypeDraftCompleted, events.DraftCompletedPayload{
		CompletedAt: s.clock.Now(),
		TotalPicks:  total,
		Rounds:      s.rounds,
	})

	log.Info().Str("session_id", s.id).Int("total_picks", total).Msg("draft complete")
}

// stopAndDrainTimer stops a timer and drains its channel if it already fired
func stopAndDrainTimer(timer clockwork.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.Chan():
		default:
		}
	}
}
