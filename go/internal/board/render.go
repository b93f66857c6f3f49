package board

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mcdev12/mockdraft/go/internal/models"
)

const (
	cellWidth   = 240
	cellHeight  = 44
	cellGap     = 6
	margin      = 24
	headerSpace = 48
	lineHeight  = 16
	maxChars    = (cellWidth - 16) / 7 // basicfont glyphs are 7px wide
)

var (
	background = color.RGBA{R: 15, G: 23, B: 42, A: 255}
	cellFill   = color.RGBA{R: 30, G: 41, B: 59, A: 255}
	emptyFill  = color.RGBA{R: 22, G: 30, B: 46, A: 255}
	titleColor = color.RGBA{R: 59, G: 130, B: 246, A: 255}
	textColor  = color.White
	mutedColor = color.RGBA{R: 148, G: 163, B: 184, A: 255}
)

// columns mirrors the on-screen grid: five wide for small boards, six for large
func columns(size int) int {
	if size <= 50 {
		return 5
	}
	return 6
}

// RenderPNG draws the board as a ranked grid and encodes it to w
func RenderPNG(w io.Writer, b *Board) error {
	cells := b.Cells()
	cols := columns(len(cells))
	rows := (len(cells) + cols - 1) / cols

	width := margin*2 + cols*cellWidth + (cols-1)*cellGap
	height := margin*2 + headerSpace + rows*cellHeight + max(rows-1, 0)*cellGap
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	drawText(img, margin, margin+lineHeight, Title, titleColor)
	filled := 0
	for _, c := range cells {
		if c != nil {
			filled++
		}
	}
	drawText(img, margin, margin+lineHeight*2, fmt.Sprintf("%d / %d PROSPECTS RANKED", filled, len(cells)), mutedColor)

	for i, p := range cells {
		x := margin + (i%cols)*(cellWidth+cellGap)
		y := margin + headerSpace + (i/cols)*(cellHeight+cellGap)
		drawCell(img, image.Rect(x, y, x+cellWidth, y+cellHeight), i+1, p)
	}

	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("failed to encode board image: %w", err)
	}
	return nil
}

func drawCell(img *image.RGBA, r image.Rectangle, rank int, p *models.Player) {
	fill := cellFill
	if p == nil {
		fill = emptyFill
	}
	draw.Draw(img, r, &image.Uniform{C: fill}, image.Point{}, draw.Src)

	name, detail := "---", ""
	if p != nil {
		name = strings.ToUpper(p.Name)
		detail = strings.ToUpper(strings.TrimSpace(p.Position + " " + p.College))
	}
	drawText(img, r.Min.X+8, r.Min.Y+lineHeight, truncate(fmt.Sprintf("%d. %s", rank, name)), textColor)
	if detail != "" {
		drawText(img, r.Min.X+8, r.Min.Y+lineHeight*2+4, truncate(detail), mutedColor)
	}
}

func drawText(img *image.RGBA, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxChars {
		return s
	}
	return string(r[:maxChars-3]) + "..."
}
