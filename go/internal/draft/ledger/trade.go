package ledger

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyTrade      = errors.New("trade names no slots")
	ErrNoPartner       = errors.New("trade partner is required")
	ErrSamePartner     = errors.New("cannot trade with the team on the clock")
	ErrUnknownTeam     = errors.New("team owns no slots")
	ErrUnknownSlot     = errors.New("slot not in ledger")
	ErrSlotConsumed    = errors.New("slot already used")
	ErrSlotNotOwned    = errors.New("slot not owned by trading team")
	ErrSlotOnBothSides = errors.New("slot named on both sides of trade")
)

// Trade moves Outbound slots from From to To and Inbound slots from To to From.
type Trade struct {
	From     string // team on the clock
	To       string // partner team
	Outbound []int  // slot numbers From gives away
	Inbound  []int  // slot numbers From receives
}

// Validate checks a trade against the ledger given how many picks have been made
func (l *Ledger) Validate(t Trade, drafted int) error {
	if len(t.Outbound) == 0 && len(t.Inbound) == 0 {
		return ErrEmptyTrade
	}
	if t.To == "" {
		return ErrNoPartner
	}
	if t.To == t.From {
		return ErrSamePartner
	}
	if !l.HasTeam(t.From) {
		return fmt.Errorf("%s: %w", t.From, ErrUnknownTeam)
	}
	if !l.HasTeam(t.To) {
		return fmt.Errorf("%s: %w", t.To, ErrUnknownTeam)
	}

	seen := make(map[int]bool)
	check := func(slotNumber int, owner string) error {
		if seen[slotNumber] {
			return fmt.Errorf("slot %d: %w", slotNumber, ErrSlotOnBothSides)
		}
		seen[slotNumber] = true

		s, ok := l.Slot(slotNumber)
		if !ok {
			return fmt.Errorf("slot %d: %w", slotNumber, ErrUnknownSlot)
		}
		if l.IsCurrentSeason(s) && l.IsConsumed(slotNumber, drafted) {
			return fmt.Errorf("slot %d: %w", slotNumber, ErrSlotConsumed)
		}
		if s.CurrentTeamName != owner {
			return fmt.Errorf("slot %d owned by %s: %w", slotNumber, s.CurrentTeamName, ErrSlotNotOwned)
		}
		return nil
	}

	for _, n := range t.Outbound {
		if err := check(n, t.From); err != nil {
			return err
		}
	}
	for _, n := range t.Inbound {
		if err := check(n, t.To); err != nil {
			return err
		}
	}
	return nil
}

// ApplyTrade validates t and returns a new ledger with ownership reassigned.
// Needs of both teams are read before any slot changes hands, and l itself is untouched.
func (l *Ledger) ApplyTrade(t Trade, drafted int) (*Ledger, error) {
	if err := l.Validate(t, drafted); err != nil {
		return nil, err
	}

	fromNeeds := l.NeedsOf(t.From)
	toNeeds := l.NeedsOf(t.To)

	outbound := make(map[int]bool, len(t.Outbound))
	for _, n := range t.Outbound {
		outbound[n] = true
	}
	inbound := make(map[int]bool, len(t.Inbound))
	for _, n := range t.Inbound {
		inbound[n] = true
	}

	slots := l.Slots()
	for i := range slots {
		switch {
		case outbound[slots[i].SlotNumber]:
			slots[i].CurrentTeamName = t.To
			slots[i].Needs = append([]string{}, toNeeds...)
		case inbound[slots[i].SlotNumber]:
			slots[i].CurrentTeamName = t.From
			slots[i].Needs = append([]string{}, fromNeeds...)
		}
	}
	return New(slots, l.season)
}
