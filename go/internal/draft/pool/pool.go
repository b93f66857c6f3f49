// Package pool derives the list of prospects still available to draft.
package pool

import (
	"strings"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

// PositionAll disables the position filter
const PositionAll = "ALL"

// Positions are the filter chips offered on the draft and board screens, in display order
var Positions = []string{PositionAll, "QB", "RB", "WR", "TE", "OT", "IOL", "EDGE", "DL", "LB", "CB", "S", "K", "P", "LS"}

// IDSet is a set of player ids
type IDSet map[int64]struct{}

// IDsOf collects the ids of players
func IDsOf(players []models.Player) IDSet {
	ids := make(IDSet, len(players))
	for _, p := range players {
		ids[p.ID] = struct{}{}
	}
	return ids
}

// Has reports whether id is in the set
func (s IDSet) Has(id int64) bool {
	_, ok := s[id]
	return ok
}

// Available filters all down to the players that are not drafted, whose name contains
// search (case-insensitive) and whose position matches. Order is preserved.
func Available(all []models.Player, drafted IDSet, search, position string) []models.Player {
	needle := strings.ToLower(search)
	out := make([]models.Player, 0, len(all))
	for _, p := range all {
		if drafted.Has(p.ID) {
			continue
		}
		if !Matches(p, needle, position) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Matches applies the search and position filters to a single player.
// search must already be lower-cased.
func Matches(p models.Player, search, position string) bool {
	if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
		return false
	}
	return position == "" || position == PositionAll || p.Position == position
}

// Without returns players minus the given ids, preserving order
func Without(players []models.Player, ids IDSet) []models.Player {
	return Available(players, ids, "", PositionAll)
}

// Remove returns a new slice without the player with id
func Remove(players []models.Player, id int64) []models.Player {
	out := make([]models.Player, 0, len(players))
	for _, p := range players {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

// Find returns the player with id
func Find(players []models.Player, id int64) (models.Player, bool) {
	for _, p := range players {
		if p.ID == id {
			return p, true
		}
	}
	return models.Player{}, false
}

// ValidPosition reports whether position is one of the filter chips
func ValidPosition(position string) bool {
	for _, p := range Positions {
		if p == position {
			return true
		}
	}
	return false
}
