package models

import "slices"

// DraftSlot represents a single pick in the ledger.
// Real slots come from the draft order; synthetic slots are future-year trade assets.
type DraftSlot struct {
	ID               int64    `json:"id"`
	PickNumber       int      `json:"pick_number"` // pick number within the round
	SlotNumber       int      `json:"slot_number"` // unique across the whole ledger
	Round            int      `json:"round"`
	Year             int      `json:"year,omitempty"` // 0 from the source means current season
	TeamName         string   `json:"team_name"`
	TeamAbbr         string   `json:"team_abbr"`
	TeamLogoURL      string   `json:"team_logo_url,omitempty"`
	OriginalTeamName string   `json:"original_team_name"` // owner at season start, never reassigned
	CurrentTeamName  string   `json:"current_team_name"`  // owner now, reassigned by trades
	Needs            []string `json:"needs"`
}

// HasNeed reports whether position is one of the owner's needs
func (s DraftSlot) HasNeed(position string) bool {
	return slices.Contains(s.Needs, position)
}

// Clone returns a copy that shares no slice memory with s
func (s DraftSlot) Clone() DraftSlot {
	s.Needs = slices.Clone(s.Needs)
	return s
}
