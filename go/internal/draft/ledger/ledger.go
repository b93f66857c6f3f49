// Package ledger holds the ordered table of draft slots and who owns each one.
package ledger

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

var (
	// ErrDuplicateSlot is returned when two slots share a slot number
	ErrDuplicateSlot = errors.New("duplicate slot number")
	// ErrTooManyTeams is returned when synthetic numbering cannot fit every team
	ErrTooManyTeams = errors.New("too many teams for synthetic slot numbering")
	// ErrMissingOwner is returned for a slot with no owning team
	ErrMissingOwner = errors.New("slot has no owning team")
)

const (
	// MaxRounds is the number of rounds in a full draft
	MaxRounds = 7

	// DefaultSeason is the season the real draft order belongs to
	DefaultSeason = 2025
	// DefaultFutureYears is how many seasons of synthetic picks are generated
	DefaultFutureYears = 2
)

// Options controls how a ledger is built from the real draft order
type Options struct {
	Season      int
	FutureYears int
	Rounds      int
}

// DefaultOptions returns the options used by the simulator
func DefaultOptions() Options {
	return Options{
		Season:      DefaultSeason,
		FutureYears: DefaultFutureYears,
		Rounds:      MaxRounds,
	}
}

// Ledger is an immutable, ordered set of draft slots.
// Current-season slots come first, in pick order, followed by synthetic future slots.
type Ledger struct {
	slots  []models.DraftSlot
	season int
	index  map[int]int // slot number -> position in slots
}

// Build normalizes the real draft order and appends synthetic future-year slots.
func Build(order []models.DraftSlot, opts Options) (*Ledger, error) {
	if opts.Season == 0 {
		opts.Season = DefaultSeason
	}
	if opts.Rounds <= 0 {
		opts.Rounds = MaxRounds
	}

	realSlots := normalize(order, opts.Season)
	future, err := synthesizeFutureSlots(realSlots, opts)
	if err != nil {
		return nil, err
	}

	return New(append(realSlots, future...), opts.Season)
}

// New wraps already-built slots, e.g. a restored snapshot, and checks that every
// slot number is unique and every slot has an owner.
func New(slots []models.DraftSlot, season int) (*Ledger, error) {
	l := &Ledger{
		slots:  make([]models.DraftSlot, len(slots)),
		season: season,
		index:  make(map[int]int, len(slots)),
	}
	for i, s := range slots {
		if s.CurrentTeamName == "" {
			return nil, fmt.Errorf("slot %d: %w", s.SlotNumber, ErrMissingOwner)
		}
		if _, exists := l.index[s.SlotNumber]; exists {
			return nil, fmt.Errorf("slot %d: %w", s.SlotNumber, ErrDuplicateSlot)
		}
		if s.Year == 0 {
			s.Year = season
		}
		l.index[s.SlotNumber] = i
		l.slots[i] = s.Clone()
	}
	return l, nil
}

// normalize fills in fields the draft order source may leave blank
func normalize(order []models.DraftSlot, season int) []models.DraftSlot {
	teamsPerRound := countTeams(order)
	out := make([]models.DraftSlot, 0, len(order))
	for i, s := range order {
		s = s.Clone()
		if s.TeamName == "" {
			s.TeamName = s.CurrentTeamName
		}
		if s.CurrentTeamName == "" {
			s.CurrentTeamName = s.TeamName
		}
		if s.OriginalTeamName == "" {
			s.OriginalTeamName = s.TeamName
		}
		if s.TeamAbbr == "" {
			s.TeamAbbr = abbreviate(s.TeamName)
		}
		if s.Year == 0 {
			s.Year = season
		}
		if s.Round == 0 && teamsPerRound > 0 {
			s.Round = i/teamsPerRound + 1
		}
		if s.PickNumber == 0 && teamsPerRound > 0 {
			s.PickNumber = i%teamsPerRound + 1
		}
		if s.Needs == nil {
			s.Needs = []string{}
		}
		out = append(out, s)
	}
	return out
}

func countTeams(order []models.DraftSlot) int {
	seen := make(map[string]struct{})
	for _, s := range order {
		name := s.OriginalTeamName
		if name == "" {
			name = s.TeamName
		}
		seen[name] = struct{}{}
	}
	return len(seen)
}

func abbreviate(team string) string {
	r := []rune(strings.ToUpper(team))
	if len(r) > 3 {
		r = r[:3]
	}
	return string(r)
}

// Season returns the current season
func (l *Ledger) Season() int {
	return l.season
}

// Len returns the number of slots, synthetic ones included
func (l *Ledger) Len() int {
	return len(l.slots)
}

// Slots returns a copy of every slot in ledger order
func (l *Ledger) Slots() []models.DraftSlot {
	out := make([]models.DraftSlot, len(l.slots))
	for i, s := range l.slots {
		out[i] = s.Clone()
	}
	return out
}

// Slot looks up a slot by its slot number
func (l *Ledger) Slot(slotNumber int) (models.DraftSlot, bool) {
	i, ok := l.index[slotNumber]
	if !ok {
		return models.DraftSlot{}, false
	}
	return l.slots[i].Clone(), true
}

// Years returns every year that has slots, ascending
func (l *Ledger) Years() []int {
	var years []int
	for _, s := range l.slots {
		if !slices.Contains(years, s.Year) {
			years = append(years, s.Year)
		}
	}
	slices.Sort(years)
	return years
}

// IsCurrentSeason reports whether s belongs to this season's draft
func (l *Ledger) IsCurrentSeason(s models.DraftSlot) bool {
	return s.Year == 0 || s.Year == l.season
}

// CurrentSeason returns the current-season slots with round <= limit, in pick order.
// A limit <= 0 means every round.
func (l *Ledger) CurrentSeason(limit int) []models.DraftSlot {
	var out []models.DraftSlot
	for _, s := range l.slots {
		if !l.IsCurrentSeason(s) {
			continue
		}
		if limit > 0 && s.Round > limit {
			continue
		}
		out = append(out, s.Clone())
	}
	return out
}

// TotalPicks is the number of selections a draft with this round limit makes
func (l *Ledger) TotalPicks(limit int) int {
	n := 0
	for _, s := range l.slots {
		if l.IsCurrentSeason(s) && (limit <= 0 || s.Round <= limit) {
			n++
		}
	}
	return n
}

// OnTheClock returns the slot that makes the next selection after drafted picks.
// It reports false when the draft is complete.
func (l *Ledger) OnTheClock(drafted, limit int) (models.DraftSlot, bool) {
	current := l.CurrentSeason(limit)
	if drafted < 0 || drafted >= len(current) {
		return models.DraftSlot{}, false
	}
	return current[drafted], true
}

// IndexOf returns the position of slotNumber within the current-season slots of
// this round limit, or -1. Position i is the slot the i-th drafted player went to.
func (l *Ledger) IndexOf(slotNumber, limit int) int {
	for i, s := range l.CurrentSeason(limit) {
		if s.SlotNumber == slotNumber {
			return i
		}
	}
	return -1
}

// IsConsumed reports whether the slot has already been used to make a selection
func (l *Ledger) IsConsumed(slotNumber, drafted int) bool {
	i := l.IndexOf(slotNumber, 0)
	return i >= 0 && i < drafted
}

// TradeableAssets returns every slot that can still change hands:
// unused current-season slots and all future-year slots.
func (l *Ledger) TradeableAssets(drafted int) []models.DraftSlot {
	var out []models.DraftSlot
	used := 0
	for _, s := range l.slots {
		if l.IsCurrentSeason(s) {
			used++
			if used <= drafted {
				continue
			}
		}
		out = append(out, s.Clone())
	}
	return out
}

// OwnedBy returns the slots team currently owns in year
func (l *Ledger) OwnedBy(team string, year int) []models.DraftSlot {
	var out []models.DraftSlot
	for _, s := range l.slots {
		if s.CurrentTeamName == team && s.Year == year {
			out = append(out, s.Clone())
		}
	}
	return out
}
