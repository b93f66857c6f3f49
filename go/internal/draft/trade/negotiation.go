// Package trade holds the transient two-sided pick selection that becomes a
// single trade instruction against the draft session.
package trade

import (
	"context"
	"slices"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

// Side identifies which team a toggled slot belongs to
type Side string

const (
	SideUser    Side = "user"
	SidePartner Side = "partner"
)

// Board is what the negotiator is opened with: the team on the clock and
// every slot that can still change hands.
type Board struct {
	Team   string             `json:"team"`
	Season int                `json:"season"`
	Years  []int              `json:"years"`
	Assets []models.DraftSlot `json:"assets"`
}

// Committer applies a confirmed trade
type Committer interface {
	ConfirmTrade(ctx context.Context, outbound, inbound []int, partner string) bool
}

// Negotiation is the open trade proposal. It is never persisted.
type Negotiation struct {
	mu       sync.Mutex
	board    Board
	partner  string
	year     int
	outbound []int
	inbound  []int
	closed   bool
}

// View is the rendered state of a negotiation
type View struct {
	Team          string             `json:"team"`
	Partner       string             `json:"partner"`
	Partners      []string           `json:"partners"`
	Year          int                `json:"year"`
	Years         []int              `json:"years"`
	UserAssets    []models.DraftSlot `json:"user_assets"`
	PartnerAssets []models.DraftSlot `json:"partner_assets"`
	Outbound      []int              `json:"outbound"`
	Inbound       []int              `json:"inbound"`
	CanConfirm    bool               `json:"can_confirm"`
	Closed        bool               `json:"closed"`
}

// Open starts a negotiation on the current-season tab
func Open(b Board) *Negotiation {
	return &Negotiation{
		board:    b,
		year:     b.Season,
		outbound: []int{},
		inbound:  []int{},
	}
}

// Partners returns every other team that owns a tradeable slot, sorted
func (n *Negotiation) Partners() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.partners()
}

func (n *Negotiation) partners() []string {
	var teams []string
	for _, s := range n.board.Assets {
		if s.CurrentTeamName != n.board.Team && !slices.Contains(teams, s.CurrentTeamName) {
			teams = append(teams, s.CurrentTeamName)
		}
	}
	slices.Sort(teams)
	return teams
}

// SetPartner picks the team on the other side. Inbound selections belong to
// the previous partner, so they are cleared.
func (n *Negotiation) SetPartner(team string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed || !slices.Contains(n.partners(), team) {
		return false
	}
	n.partner = team
	n.inbound = []int{}
	return true
}

// SetYear switches the asset-year tab. Selections on other tabs are kept.
func (n *Negotiation) SetYear(year int) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed || !slices.Contains(n.board.Years, year) {
		return false
	}
	n.year = year
	return true
}

// Toggle adds or removes a slot from one side. Only slots shown on that side's
// current tab can be toggled.
func (n *Negotiation) Toggle(slotNumber int, side Side) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.closed {
		return false
	}

	var owner string
	var selected *[]int
	switch side {
	case SideUser:
		owner, selected = n.board.Team, &n.outbound
	case SidePartner:
		if n.partner == "" {
			return false
		}
		owner, selected = n.partner, &n.inbound
	default:
		return false
	}

	visible := slices.ContainsFunc(n.visible(owner), func(s models.DraftSlot) bool {
		return s.SlotNumber == slotNumber
	})
	if !visible {
		return false
	}

	if i := slices.Index(*selected, slotNumber); i >= 0 {
		*selected = slices.Delete(*selected, i, i+1)
	} else {
		*selected = append(*selected, slotNumber)
	}
	return true
}

func (n *Negotiation) visible(team string) []models.DraftSlot {
	var out []models.DraftSlot
	if team == "" {
		return out
	}
	for _, s := range n.board.Assets {
		year := s.Year
		if year == 0 {
			year = n.board.Season
		}
		if s.CurrentTeamName == team && year == n.year {
			out = append(out, s)
		}
	}
	return out
}

// CanConfirm reports whether confirm would submit anything
func (n *Negotiation) CanConfirm() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.canConfirm()
}

func (n *Negotiation) canConfirm() bool {
	return !n.closed && n.partner != "" && (len(n.outbound) > 0 || len(n.inbound) > 0)
}

// Confirm submits the proposal exactly once and closes the negotiation
func (n *Negotiation) Confirm(ctx context.Context, c Committer) bool {
	n.mu.Lock()
	if !n.canConfirm() {
		n.mu.Unlock()
		return false
	}
	outbound := slices.Clone(n.outbound)
	inbound := slices.Clone(n.inbound)
	partner := n.partner
	n.closed = true
	n.mu.Unlock()

	applied := c.ConfirmTrade(ctx, outbound, inbound, partner)
	log.Info().
		Str("team", n.board.Team).
		Str("partner", partner).
		Ints("outbound", outbound).
		Ints("inbound", inbound).
		Bool("applied", applied).
		Msg("trade submitted")
	return applied
}

// Cancel discards the proposal
func (n *Negotiation) Cancel() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closed = true
	n.outbound = []int{}
	n.inbound = []int{}
}

// Closed reports whether the negotiation was confirmed or cancelled
func (n *Negotiation) Closed() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.closed
}

func (n *Negotiation) View() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return View{
		Team:          n.board.Team,
		Partner:       n.partner,
		Partners:      n.partners(),
		Year:          n.year,
		Years:         slices.Clone(n.board.Years),
		UserAssets:    n.visible(n.board.Team),
		PartnerAssets: n.visible(n.partner),
		Outbound:      slices.Clone(n.outbound),
		Inbound:       slices.Clone(n.inbound),
		CanConfirm:    n.canConfirm(),
		Closed:        n.closed,
	}
}
