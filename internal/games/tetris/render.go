package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris/engine"
)

const (
	blockRune = '█'
	ghostRune = '░'
	emptyRune = '·'

	panelGap   = 2  // columns between the board frame and the side panel
	panelWidth = 16 // HUD text width
)

// layout is the screen geometry of one frame.
type layout struct {
	cellW, gap int
	frame      core.Rect // board including its border
	panelX     int
	requiredW  int
	requiredH  int
	screenW    int
	screenH    int
}

func (g *Game) layout(dst *core.Screen) layout {
	f := g.session.Field()
	cw := max(g.cfg.Render.CellWidth, 1)
	gap := max(g.cfg.Render.Gap, 0)

	boardW := f.Width()*cw + (f.Width()-1)*gap
	frameW := boardW + 2
	frameH := f.Height() + 2

	l := layout{
		cellW:     cw,
		gap:       gap,
		requiredW: frameW + panelGap + panelWidth,
		requiredH: frameH,
		screenW:   dst.Width(),
		screenH:   dst.Height(),
	}
	x := max((l.screenW-l.requiredW)/2, 0)
	y := max((l.screenH-frameH)/2, 0)
	l.frame = core.NewRect(x, y, frameW, frameH)
	l.panelX = l.frame.Right() + panelGap
	return l
}

func (l layout) tooSmall() bool {
	return !core.NewRect(0, 0, l.screenW, l.screenH).Fits(l.requiredW, l.requiredH)
}

// cellX returns the screen column of a board column's first rune.
func (l layout) cellX(col int) int {
	return l.frame.X + 1 + col*(l.cellW+l.gap)
}

// cellY returns the screen row of a visible board row.
func (l layout) cellY(row int) int {
	return l.frame.Y + 1 + row
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}

	l := g.layout(dst)
	if l.tooSmall() {
		g.renderTooSmall(dst, l)
		return
	}

	g.renderBoard(dst, l)
	if !g.session.GameOver() {
		if g.cfg.Render.Ghost {
			g.renderGhost(dst, l)
		}
		g.renderPiece(dst, l, g.session.Active(), blockRune, core.ColorDefault)
	}
	g.renderPanel(dst, l)

	switch {
	case g.session.GameOver():
		g.renderOverlay(dst, l, "GAME OVER", fmt.Sprintf("Score %d", g.session.Score()), "R to restart")
	case g.session.Paused():
		g.renderOverlay(dst, l, "PAUSED", "P to resume")
	}
}

func (g *Game) renderTooSmall(dst *core.Screen, l layout) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, "Window too small", core.ColorYellow)
	dst.DrawTextCentered(y, fmt.Sprintf("Need %dx%d, have %dx%d", l.requiredW, l.requiredH, l.screenW, l.screenH), core.ColorGray)
}

// fillCell paints one board cell, cellW runes wide.
func fillCell(dst *core.Screen, l layout, row, col int, r rune, c core.Color) {
	x := l.cellX(col)
	for i := 0; i < l.cellW; i++ {
		dst.SetColor(x+i, l.cellY(row), r, c)
	}
}

func (g *Game) renderBoard(dst *core.Screen, l layout) {
	dst.DrawBox(l.frame, core.ColorGray)

	f := g.session.Field()
	for row := 0; row < f.Height(); row++ {
		for col := 0; col < f.Width(); col++ {
			k := f.At(row, col)
			if k == engine.Empty {
				dst.SetColor(l.cellX(col), l.cellY(row), emptyRune, core.ColorGray)
				continue
			}
			fillCell(dst, l, row, col, blockRune, k.Color())
		}
	}
}

func (g *Game) renderGhost(dst *core.Screen, l layout) {
	p := g.session.Active()
	p.Row = g.session.GhostRow()
	g.renderPiece(dst, l, p, ghostRune, core.ColorGray)
}

// renderPiece draws the visible cells of p. A zero color uses the piece's own.
func (g *Game) renderPiece(dst *core.Screen, l layout, p engine.Piece, r rune, c core.Color) {
	if c == core.ColorDefault {
		c = p.Kind.Color()
	}
	p.Matrix.Each(func(mr, mc int) {
		row, col := p.Row+mr, p.Col+mc
		if row < 0 || row >= g.session.Field().Height() {
			return
		}
		fillCell(dst, l, row, col, r, c)
	})
}

func (g *Game) renderPanel(dst *core.Screen, l layout) {
	s := g.session
	x, y := l.panelX, l.frame.Y

	dst.DrawTextColor(x, y, "TETRIS", core.ColorBrightCyan)
	dst.DrawTextColor(x, y+2, fmt.Sprintf("Score  %d", s.Score()), core.ColorBrightWhite)
	dst.DrawText(x, y+3, fmt.Sprintf("Lines  %d", s.Lines()))
	dst.DrawText(x, y+4, fmt.Sprintf("Speed  %d", s.Speed()))
	dst.DrawText(x, y+5, fmt.Sprintf("Pieces %d", s.Pieces()))

	dst.DrawTextColor(x, y+7, "Next", core.ColorGray)
	next := engine.Shape(s.Next())
	next.Each(func(r, c int) {
		for i := 0; i < l.cellW; i++ {
			dst.SetColor(x+c*l.cellW+i, y+8+r, blockRune, s.Next().Color())
		}
	})

	mode, color := "manual", core.ColorDefault
	if g.autoplay {
		mode, color = "autoplay", core.ColorBrightGreen
	}
	dst.DrawTextColor(x, y+13, "Mode   "+mode, color)
}

// renderOverlay draws a framed message centered on the board.
func (g *Game) renderOverlay(dst *core.Screen, l layout, lines ...string) {
	width := 0
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}
	box := core.NewRect(0, 0, width+4, len(lines)+2)
	box.X = l.frame.X + (l.frame.W-box.W)/2
	box.Y = l.frame.Y + (l.frame.H-box.H)/2

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	for i, line := range lines {
		pad := (box.W - 2 - len([]rune(line))) / 2
		dst.DrawTextColor(box.X+1+pad, box.Y+1+i, line, core.ColorBrightWhite)
	}
}
