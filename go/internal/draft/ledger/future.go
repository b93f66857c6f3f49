package ledger

import (
	"fmt"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

const (
	// Synthetic slot numbers live far above any real slot number:
	// futureSlotBase + year*1000 + round*100 + teamIndex
	futureSlotBase  = 1_000_000
	futureYearSpan  = 1_000
	futureRoundSpan = 100
)

// FutureSlotNumber computes the slot number of a synthetic pick.
// Distinct (year, round, teamIndex) triples never share a number while teamIndex < 100.
func FutureSlotNumber(year, round, teamIndex int) int {
	return futureSlotBase + year*futureYearSpan + round*futureRoundSpan + teamIndex
}

// synthesizeFutureSlots generates one pick per team for every round of every future season.
// Team identity, logo, abbreviation and needs are copied from the team's first real slot.
func synthesizeFutureSlots(realSlots []models.DraftSlot, opts Options) ([]models.DraftSlot, error) {
	teams := distinctOwners(realSlots)
	if len(teams) >= futureRoundSpan {
		return nil, fmt.Errorf("%d teams: %w", len(teams), ErrTooManyTeams)
	}

	picks := make([]models.DraftSlot, 0, opts.FutureYears*opts.Rounds*len(teams))
	for y := 1; y <= opts.FutureYears; y++ {
		year := opts.Season + y
		for round := 1; round <= opts.Rounds; round++ {
			for idx, team := range teams {
				picks = append(picks, models.DraftSlot{
					ID:               int64(FutureSlotNumber(year, round, idx)),
					SlotNumber:       FutureSlotNumber(year, round, idx),
					PickNumber:       idx + 1,
					Round:            round,
					Year:             year,
					TeamName:         team.Name,
					TeamAbbr:         team.Abbr,
					TeamLogoURL:      team.LogoURL,
					OriginalTeamName: team.Name,
					CurrentTeamName:  team.Name,
					Needs:            append([]string{}, team.Needs...),
				})
			}
		}
	}
	return picks, nil
}

// distinctOwners returns each current owner once, in first-seen order
func distinctOwners(slots []models.DraftSlot) []models.Team {
	seen := make(map[string]bool)
	var teams []models.Team
	for _, s := range slots {
		if seen[s.CurrentTeamName] {
			continue
		}
		seen[s.CurrentTeamName] = true

		abbr := s.TeamAbbr
		if s.OriginalTeamName != s.CurrentTeamName {
			// The slot was acquired by trade, so its abbreviation belongs to someone else
			abbr = abbreviate(s.CurrentTeamName)
		}
		teams = append(teams, models.Team{
			Name:    s.CurrentTeamName,
			Abbr:    abbr,
			LogoURL: s.TeamLogoURL,
			Needs:   append([]string{}, s.Needs...),
		})
	}
	return teams
}
