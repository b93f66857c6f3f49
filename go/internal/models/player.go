package models

import "fmt"

// Player represents a draftable prospect
type Player struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Position       string  `json:"position"` // 'QB', 'EDGE', 'IOL', etc.
	College        string  `json:"college"`
	CollegeLogoURL string  `json:"college_logo_url,omitempty"`
	HeadshotURL    string  `json:"headshot_url,omitempty"`
	Height         string  `json:"ht,omitempty"`  // '6'' 3"'
	Weight         string  `json:"wt,omitempty"`  // '210'
	Class          string  `json:"cls,omitempty"` // 'JR', 'SR', ...
	Rank           *int    `json:"rank,omitempty"`
	Stars          *int    `json:"hs_stars,omitempty"` // Optional - recruiting star rating
	Hometown       *string `json:"hometown,omitempty"`

	// Scouting content
	Slug          string `json:"slug,omitempty"`
	Bio           string `json:"bio,omitempty"`
	ProComparison string `json:"pro_comp,omitempty"`
	Status        string `json:"status,omitempty"` // 'active' players make up the live pool
}

const (
	PlayerStatusActive = "active"

	bioPlaceholder        = "Scouting report processing... We are currently evaluating game tape and athletic testing for this prospect."
	comparisonPlaceholder = "TBD"
)

// StarCount returns the star rating, 0 when the player has none
func (p Player) StarCount() int {
	if p.Stars == nil || *p.Stars < 0 {
		return 0
	}
	return *p.Stars
}

// RankLabel renders the rank badge shown on a profile
func (p Player) RankLabel() string {
	if p.Rank == nil {
		return "Unranked"
	}
	return fmt.Sprintf("Rank #%d", *p.Rank)
}

// BioOrPlaceholder returns the scouting bio or the pending-report placeholder
func (p Player) BioOrPlaceholder() string {
	if p.Bio == "" {
		return bioPlaceholder
	}
	return p.Bio
}

// ProComparisonOrPlaceholder returns the pro comparison or "TBD"
func (p Player) ProComparisonOrPlaceholder() string {
	if p.ProComparison == "" {
		return comparisonPlaceholder
	}
	return p.ProComparison
}
