package board

import (
	"bytes"
	"fmt"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

func testPlayers(n int) []models.Player {
	positions := []string{"QB", "EDGE", "WR", "CB"}
	players := make([]models.Player, n)
	for i := range players {
		players[i] = models.Player{
			ID:       int64(i + 1),
			Name:     fmt.Sprintf("Player %d", i+1),
			Position: positions[i%len(positions)],
			College:  "Georgia",
		}
	}
	return players
}

func TestBoard_Flow(t *testing.T) {
	b := New(testPlayers(20), nil)
	assert.Equal(t, ModeStart, b.View().Mode)
	assert.False(t, b.Add(1), "no adds before a size is chosen")
	assert.False(t, b.SelectSize(12))

	require.True(t, b.SelectSize(10))
	assert.Equal(t, ModeCreator, b.View().Mode)

	for id := int64(1); id <= 9; id++ {
		require.True(t, b.Add(id))
	}
	assert.False(t, b.Add(3), "never ranked twice")
	assert.False(t, b.Add(999))
	assert.Equal(t, ModeCreator, b.View().Mode)
	assert.InDelta(t, 0.9, b.View().Progress, 1e-9)

	require.True(t, b.Add(15))
	v := b.View()
	assert.Equal(t, ModeResults, v.Mode, "filling the board shows results")
	assert.Len(t, v.Ranked, 10)
	assert.False(t, b.Add(16), "board is full")

	require.True(t, b.BackToEditor())
	require.True(t, b.Remove(2))
	assert.Equal(t, int64(3), b.View().Ranked[1].ID, "players below move up")
	assert.False(t, b.Remove(2))
	require.True(t, b.Add(16))
	assert.Equal(t, ModeResults, b.View().Mode)
}

func TestBoard_AvailableExcludesRanked(t *testing.T) {
	b := New(testPlayers(8), nil)
	require.True(t, b.SelectSize(10))
	require.True(t, b.Add(1))
	require.True(t, b.Add(5))

	qbs := b.Available("", "QB")
	require.Len(t, qbs, 0, "both QBs are ranked")

	all := b.Available("player", "ALL")
	assert.Len(t, all, 6)
}

func TestBoard_ResetSizeKeepsRanking(t *testing.T) {
	b := New(testPlayers(40), nil)
	require.True(t, b.SelectSize(25))
	for id := int64(1); id <= 12; id++ {
		require.True(t, b.Add(id))
	}

	b.ResetSize()
	assert.Equal(t, ModeStart, b.View().Mode)

	require.True(t, b.SelectSize(10))
	v := b.View()
	assert.Len(t, v.Ranked, 10)
	assert.Equal(t, ModeResults, v.Mode)
}

func TestCells_PadsEmptySpots(t *testing.T) {
	b := New(testPlayers(5), nil)
	require.True(t, b.SelectSize(10))
	require.True(t, b.Add(4))

	cells := b.Cells()
	require.Len(t, cells, 10)
	assert.Equal(t, int64(4), cells[0].ID)
	assert.Nil(t, cells[1])
}

func TestRenderPNG(t *testing.T) {
	for _, size := range []int{10, 100} {
		b := New(testPlayers(120), nil)
		require.True(t, b.SelectSize(size))
		require.True(t, b.Add(1))
		require.True(t, b.Add(2))

		var buf bytes.Buffer
		require.NoError(t, RenderPNG(&buf, b))

		img, err := png.Decode(&buf)
		require.NoError(t, err)
		cols := columns(size)
		assert.Equal(t, margin*2+cols*cellWidth+(cols-1)*cellGap, img.Bounds().Dx())
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "2026-prospect-rankings.png", FileName())
}
