package models

// Phase defines where a draft session is in its flow.
type Phase string

const (
	PhaseSetup  Phase = "SETUP"
	PhaseActive Phase = "ACTIVE"
	PhaseRecap  Phase = "RECAP"
)

// Storage values for phases. Saved sessions use these names for the game_state key.
const (
	storedPhaseSetup  = "START"
	storedPhaseActive = "DRAFT"
	storedPhaseRecap  = "RESULTS"
)

// Valid reports whether p is a known phase
func (p Phase) Valid() bool {
	switch p {
	case PhaseSetup, PhaseActive, PhaseRecap:
		return true
	}
	return false
}

// StoredValue returns the persisted game_state value for p
func (p Phase) StoredValue() string {
	switch p {
	case PhaseActive:
		return storedPhaseActive
	case PhaseRecap:
		return storedPhaseRecap
	default:
		return storedPhaseSetup
	}
}

// PhaseFromStored parses a persisted game_state value.
// Both the stored names and the Phase names are accepted.
func PhaseFromStored(v string) (Phase, bool) {
	switch v {
	case storedPhaseSetup, string(PhaseSetup):
		return PhaseSetup, true
	case storedPhaseActive, string(PhaseActive):
		return PhaseActive, true
	case storedPhaseRecap, string(PhaseRecap):
		return PhaseRecap, true
	}
	return "", false
}

// DraftResult pairs a current-season slot with the player taken there
type DraftResult struct {
	Slot   DraftSlot `json:"slot"`
	Player *Player   `json:"player,omitempty"` // nil until the pick is made
}
