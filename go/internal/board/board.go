// Package board is the big board creator: rank N prospects from the pool and
// export the result as an image.
package board

import (
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/mcdev12/mockdraft/go/internal/draft/pool"
	"github.com/mcdev12/mockdraft/go/internal/models"
)

// Mode is the screen the creator is on
type Mode string

const (
	ModeStart   Mode = "start"
	ModeCreator Mode = "creator"
	ModeResults Mode = "results"
)

// Title is the fixed board name
const Title = "2026 PROSPECT RANKINGS"

// DefaultSize is the board size before one is chosen
const DefaultSize = 50

// Sizes are the board sizes offered on the start screen
var Sizes = []int{10, 25, 50, 75, 100, 300}

// Board holds one user's ranking in progress
type Board struct {
	mu      sync.Mutex
	sizes   []int
	players []models.Player
	ranked  []models.Player
	size    int
	mode    Mode
}

// View is the rendered board state
type View struct {
	Title    string          `json:"title"`
	Mode     Mode            `json:"mode"`
	Size     int             `json:"size"`
	Sizes    []int           `json:"sizes"`
	Ranked   []models.Player `json:"ranked"`
	Progress float64         `json:"progress"`
	FileName string          `json:"file_name"`
}

// New creates a board over players. An empty sizes list uses Sizes.
func New(players []models.Player, sizes []int) *Board {
	if len(sizes) == 0 {
		sizes = Sizes
	}
	return &Board{
		sizes:   slices.Clone(sizes),
		players: slices.Clone(players),
		ranked:  []models.Player{},
		size:    DefaultSize,
		mode:    ModeStart,
	}
}

// SelectSize picks a board size and opens the creator. A smaller size trims
// the existing ranking.
func (b *Board) SelectSize(size int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !slices.Contains(b.sizes, size) {
		return false
	}
	b.size = size
	if len(b.ranked) > size {
		b.ranked = b.ranked[:size]
	}
	b.mode = ModeCreator
	b.checkComplete()
	return true
}

// Add ranks a player in the next spot. Reaching the board size moves to results.
func (b *Board) Add(playerID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.mode != ModeCreator || len(b.ranked) >= b.size {
		return false
	}
	if _, ranked := pool.Find(b.ranked, playerID); ranked {
		return false
	}
	p, ok := pool.Find(b.players, playerID)
	if !ok {
		return false
	}
	b.ranked = append(b.ranked, p)
	b.checkComplete()
	return true
}

// Remove takes a player off the ranking; everyone below moves up
func (b *Board) Remove(playerID int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := pool.Find(b.ranked, playerID); !ok {
		return false
	}
	b.ranked = pool.Remove(b.ranked, playerID)
	return true
}

func (b *Board) checkComplete() {
	if b.mode == ModeCreator && len(b.ranked) >= b.size {
		b.mode = ModeResults
	}
}

// BackToEditor returns from results to the creator
func (b *Board) BackToEditor() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.mode != ModeResults {
		return false
	}
	b.mode = ModeCreator
	return true
}

// ResetSize returns to the size picker, keeping the ranking
func (b *Board) ResetSize() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mode = ModeStart
}

// Available returns unranked players matching search and position
func (b *Board) Available(search, position string) []models.Player {
	b.mu.Lock()
	defer b.mu.Unlock()
	return pool.Available(b.players, pool.IDsOf(b.ranked), search, position)
}

// Complete reports whether every spot is filled
func (b *Board) Complete() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.ranked) >= b.size
}

// Cells returns one entry per board spot; unfilled spots are nil
func (b *Board) Cells() []*models.Player {
	b.mu.Lock()
	defer b.mu.Unlock()
	cells := make([]*models.Player, b.size)
	for i := range cells {
		if i < len(b.ranked) {
			p := b.ranked[i]
			cells[i] = &p
		}
	}
	return cells
}

func (b *Board) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return View{
		Title:    Title,
		Mode:     b.mode,
		Size:     b.size,
		Sizes:    slices.Clone(b.sizes),
		Ranked:   slices.Clone(b.ranked),
		Progress: float64(len(b.ranked)) / float64(b.size),
		FileName: FileName(),
	}
}

var whitespace = regexp.MustCompile(`\s+`)

// FileName is the download name of the exported image
func FileName() string {
	return whitespace.ReplaceAllString(strings.ToLower(Title), "-") + ".png"
}
