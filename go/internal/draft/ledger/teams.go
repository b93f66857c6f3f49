package ledger

import (
	"github.com/mcdev12/mockdraft/go/internal/models"
)

// Teams returns every team that owns at least one slot, in first-seen order,
// with its display data resolved through TeamLogo and NeedsOf.
func (l *Ledger) Teams() []models.Team {
	teams := distinctOwners(l.slots)
	for i := range teams {
		teams[i].LogoURL = l.TeamLogo(teams[i].Name)
		teams[i].Needs = l.NeedsOf(teams[i].Name)
	}
	return teams
}

// HasTeam reports whether team owns any slot
func (l *Ledger) HasTeam(team string) bool {
	for _, s := range l.slots {
		if s.CurrentTeamName == team {
			return true
		}
	}
	return false
}

// TeamLogo resolves the logo for a team name by scanning for a slot it owns.
// A slot the team has held since season start wins over one acquired by trade,
// since acquired slots still carry the previous owner's logo.
func (l *Ledger) TeamLogo(team string) string {
	fallback := ""
	for _, s := range l.slots {
		if s.CurrentTeamName != team {
			continue
		}
		if s.OriginalTeamName == team && s.TeamLogoURL != "" {
			return s.TeamLogoURL
		}
		if fallback == "" {
			fallback = s.TeamLogoURL
		}
	}
	return fallback
}

// NeedsOf returns the needs carried by the first slot team owns
func (l *Ledger) NeedsOf(team string) []string {
	for _, s := range l.slots {
		if s.CurrentTeamName == team {
			return append([]string{}, s.Needs...)
		}
	}
	return []string{}
}

// Results pairs each current-season slot within limit with the player drafted there.
// Slots past the end of drafted have no player yet.
func (l *Ledger) Results(drafted []models.Player, limit int) []models.DraftResult {
	current := l.CurrentSeason(limit)
	out := make([]models.DraftResult, 0, len(current))
	for i, s := range current {
		r := models.DraftResult{Slot: s}
		if i < len(drafted) {
			p := drafted[i]
			r.Player = &p
		}
		out = append(out, r)
	}
	return out
}

// TeamPicks returns the current-season results for the slots team owns now
func (l *Ledger) TeamPicks(team string, drafted []models.Player, limit int) []models.DraftResult {
	var out []models.DraftResult
	for _, r := range l.Results(drafted, limit) {
		if r.Slot.CurrentTeamName == team {
			out = append(out, r)
		}
	}
	return out
}
