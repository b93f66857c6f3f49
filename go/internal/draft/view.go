package draft

import (
	"slices"

	"github.com/mcdev12/mockdraft/go/internal/draft/pool"
	"github.com/mcdev12/mockdraft/go/internal/models"
)

// View is everything the draft screens render
type View struct {
	SessionID    string            `json:"session_id"`
	Phase        models.Phase      `json:"phase"`
	Rounds       int               `json:"rounds"`
	RoundOptions []int             `json:"round_options"`
	TotalPicks   int               `json:"total_picks"`
	PicksMade    int               `json:"picks_made"`
	OnTheClock   *models.DraftSlot `json:"on_the_clock,omitempty"`
	Drafted      []models.Player   `json:"drafted"`
	Available    int               `json:"available"`
	CanUndo      bool              `json:"can_undo"`
	RecapPending bool              `json:"recap_pending"`
	Teams        []models.Team     `json:"teams"`
	Positions    []string          `json:"positions"`
}

// View renders the current session state
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		SessionID:    s.id,
		Phase:        s.phase,
		Rounds:       s.rounds,
		RoundOptions: slices.Clone(s.cfg.RoundOptions),
		TotalPicks:   s.ledger.TotalPicks(s.rounds),
		PicksMade:    len(s.drafted),
		Drafted:      slices.Clone(s.drafted),
		Available:    len(s.pool),
		CanUndo:      s.phase == models.PhaseActive && len(s.history) > 0,
		RecapPending: s.recap != nil,
		Teams:        s.ledger.Teams(),
		Positions:    slices.Clone(pool.Positions),
	}
	if v.Drafted == nil {
		v.Drafted = []models.Player{}
	}
	if s.phase == models.PhaseActive {
		if slot, ok := s.ledger.OnTheClock(len(s.drafted), s.rounds); ok {
			v.OnTheClock = &slot
		}
	}
	return v
}

// Phase returns the current phase
func (s *Session) Phase() models.Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Available returns the pool filtered by name search and position
func (s *Session) Available(search, position string) []models.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pool.Available(s.pool, nil, search, position)
}

// Drafted returns the drafted sequence in pick order
func (s *Session) Drafted() []models.Player {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.drafted)
}

// Player looks up any fetched player, drafted or not
func (s *Session) Player(id int64) (models.Player, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pool.Find(s.players, id)
}

// Slots returns the full ledger including synthetic future slots
func (s *Session) Slots() []models.DraftSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Slots()
}

// RoundSlots returns the results for one round tab
func (s *Session) RoundSlots(round int) []models.DraftResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.DraftResult
	for _, r := range s.ledger.Results(s.drafted, s.rounds) {
		if r.Slot.Round == round {
			out = append(out, r)
		}
	}
	return out
}

// TeamPicks returns the team dashboard: picks the team owns in this draft
func (s *Session) TeamPicks(team string) []models.DraftResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.TeamPicks(team, s.drafted, s.rounds)
}

// OwnedBy returns the slots team currently owns in year, future years included
func (s *Session) OwnedBy(team string, year int) []models.DraftSlot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.OwnedBy(team, year)
}

// Results pairs every slot in this draft with its pick
func (s *Session) Results() []models.DraftResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Results(s.drafted, s.rounds)
}
