package trade

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

type committerStub struct {
	calls    int
	outbound []int
	inbound  []int
	partner  string
}

func (c *committerStub) ConfirmTrade(_ context.Context, outbound, inbound []int, partner string) bool {
	c.calls++
	c.outbound, c.inbound, c.partner = outbound, inbound, partner
	return true
}

func slot(n int, team string, year int) models.DraftSlot {
	return models.DraftSlot{SlotNumber: n, Round: 1, Year: year, CurrentTeamName: team, OriginalTeamName: team}
}

func testBoard() Board {
	return Board{
		Team:   "Titans",
		Season: 2025,
		Years:  []int{2025, 2026, 2027},
		Assets: []models.DraftSlot{
			slot(1, "Titans", 2025),
			slot(2, "Giants", 2025),
			slot(3, "Browns", 2025),
			slot(33, "Titans", 2025),
			slot(1_002_026_100, "Titans", 2026),
			slot(1_002_026_101, "Giants", 2026),
			slot(1_002_026_102, "Browns", 2026),
		},
	}
}

func TestPartners_SortedWithoutUser(t *testing.T) {
	n := Open(testBoard())
	assert.Equal(t, []string{"Browns", "Giants"}, n.Partners())
	assert.False(t, n.SetPartner("Titans"))
	assert.False(t, n.SetPartner("Jets"))
}

func TestToggle_OnlyVisibleAssets(t *testing.T) {
	n := Open(testBoard())

	assert.True(t, n.Toggle(1, SideUser))
	assert.False(t, n.Toggle(2, SideUser), "Giants slot is not on the user side")
	assert.False(t, n.Toggle(2, SidePartner), "no partner chosen yet")
	assert.False(t, n.Toggle(1_002_026_100, SideUser), "future slot hidden on the 2025 tab")

	require.True(t, n.SetYear(2026))
	assert.True(t, n.Toggle(1_002_026_100, SideUser))
	assert.False(t, n.SetYear(2030))

	v := n.View()
	assert.Equal(t, []int{1, 1_002_026_100}, v.Outbound)
	assert.Equal(t, 2026, v.Year)

	// toggling again removes it
	assert.True(t, n.Toggle(1_002_026_100, SideUser))
	assert.Equal(t, []int{1}, n.View().Outbound)
}

func TestSetPartner_ClearsInbound(t *testing.T) {
	n := Open(testBoard())
	require.True(t, n.SetPartner("Giants"))
	require.True(t, n.Toggle(2, SidePartner))
	assert.Equal(t, []int{2}, n.View().Inbound)
	assert.True(t, n.CanConfirm())

	require.True(t, n.SetPartner("Browns"))
	assert.Empty(t, n.View().Inbound)
	assert.False(t, n.CanConfirm())
	assert.False(t, n.Toggle(2, SidePartner))
	assert.True(t, n.Toggle(3, SidePartner))
}

func TestConfirm_CallsCommitterOnce(t *testing.T) {
	n := Open(testBoard())
	c := &committerStub{}

	assert.False(t, n.Confirm(context.Background(), c), "nothing selected")
	assert.Equal(t, 0, c.calls)

	require.True(t, n.SetPartner("Giants"))
	require.True(t, n.Toggle(33, SideUser))
	require.True(t, n.Toggle(2, SidePartner))

	assert.True(t, n.Confirm(context.Background(), c))
	assert.False(t, n.Confirm(context.Background(), c))
	assert.Equal(t, 1, c.calls)
	assert.Equal(t, []int{33}, c.outbound)
	assert.Equal(t, []int{2}, c.inbound)
	assert.Equal(t, "Giants", c.partner)
	assert.True(t, n.Closed())
	assert.False(t, n.Toggle(1, SideUser))
}

func TestCancel_DiscardsProposal(t *testing.T) {
	n := Open(testBoard())
	c := &committerStub{}
	require.True(t, n.SetPartner("Browns"))
	require.True(t, n.Toggle(1, SideUser))

	n.Cancel()
	assert.False(t, n.Confirm(context.Background(), c))
	assert.Equal(t, 0, c.calls)
	assert.Empty(t, n.View().Outbound)
}
