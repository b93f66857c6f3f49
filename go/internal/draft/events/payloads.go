package events

import (
	"time"
)

// Event payload types shared between the session, the gateway and the outbox

// DraftStartedPayload is the payload for a DraftStarted event
type DraftStartedPayload struct {
	Rounds     int       `json:"rounds"`
	TotalPicks int       `json:"total_picks"`
	StartedAt  time.Time `json:"started_at"`
}

// PlayerSelectedPayload is the payload for a PlayerSelected event
type PlayerSelectedPayload struct {
	PlayerID    int64  `json:"player_id"`
	PlayerName  string `json:"player_name"`
	Position    string `json:"position"`
	TeamName    string `json:"team_name"`
	Round       int    `json:"round"`
	Pick        int    `json:"pick"`
	OverallPick int    `json:"overall_pick"`
	SlotNumber  int    `json:"slot_number"`
}

// SelectionUndonePayload is the payload for a SelectionUndone event
type SelectionUndonePayload struct {
	PlayerID    int64  `json:"player_id"`
	PlayerName  string `json:"player_name"`
	OverallPick int    `json:"overall_pick"`
}

// TradeConfirmedPayload is the payload for a TradeConfirmed event
type TradeConfirmedPayload struct {
	Team     string `json:"team"`
	Partner  string `json:"partner"`
	Outbound []int  `json:"outbound"`
	Inbound  []int  `json:"inbound"`
}

// DraftCompletedPayload is the payload for a DraftCompleted event
type DraftCompletedPayload struct {
	CompletedAt time.Time `json:"completed_at"`
	TotalPicks  int       `json:"total_picks"`
	Rounds      int       `json:"rounds"`
}

// DraftResetPayload is the payload for a DraftReset event
type DraftResetPayload struct {
	ResetAt time.Time `json:"reset_at"`
}

// BoardCompletedPayload is the payload for a BoardCompleted event
type BoardCompletedPayload struct {
	Title     string  `json:"title"`
	Size      int     `json:"size"`
	PlayerIDs []int64 `json:"player_ids"`
}
