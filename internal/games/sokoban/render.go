package sokoban

import (
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-sokoban/internal/core"
	engine "github.com/vovakirdan/tui-sokoban/internal/games/sokoban/core"
)

const (
	cellWidth    = 2 // Each grid cell is two characters wide
	hudHeight    = 3 // Title and stats above the board
	footerHeight = 2 // Controls below the board
)

// frameIndex picks the animation frame from elapsed time: four frames a second.
func frameIndex(elapsed int64) int {
	return int((elapsed % 1000) / 250)
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	b := g.engine.Bounds()
	boardW := int(b.Width) * cellWidth
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight

	g.renderHUD(dst)
	g.renderBoard(dst, boardX, boardY)
	g.renderFooter(dst, boardY+int(b.Height)+1)

	if g.engine.Gameplay().State == engine.StateWon {
		g.renderWon(dst, boardX, boardY, boardW, int(b.Height))
	}
}

// renderTooSmall shows a "window too small" message.
func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorYellow)
	dst.DrawTextCentered(y+1, "Please resize terminal", core.ColorDefault)
}

// renderHUD draws the level name, state and move count.
func (g *Game) renderHUD(dst *core.Screen) {
	lvl := g.Level()
	gp := g.engine.Gameplay()

	title := fmt.Sprintf("%s  %d/%d", lvl.Title(), g.index+1, len(g.levels))
	dst.DrawTextCentered(0, title, core.ColorBrightYellow)

	covered, total := g.engine.Coverage()
	stats := fmt.Sprintf("%s   Moves: %d   Boxes: %d/%d", gp.State, gp.MovesCount, covered, total)
	color := core.ColorWhite
	if gp.State == engine.StateWon {
		color = core.ColorBrightGreen
	}
	dst.DrawTextCentered(1, stats, color)
}

// renderBoard draws sprites in z order so objects cover floors and spots.
func (g *Game) renderBoard(dst *core.Screen, ox, oy int) {
	frame := frameIndex(g.clock().Sub(g.started).Milliseconds())

	for _, s := range g.engine.Sprites() {
		idx := 0
		if s.Renderable.Kind() == engine.RenderAnimated {
			idx = frame
		}
		path := s.Renderable.Path(idx)

		tile, ok := g.theme.lookup(path)
		if !ok && !g.missing[path] {
			g.missing[path] = true
			g.logger.Warn("no tile for asset", "path", path)
		}

		x := ox + int(s.Position.X)*cellWidth
		y := oy + int(s.Position.Y)
		dst.DrawTextColor(x, y, padGlyph(tile.Glyph), tile.Color)
	}
}

// padGlyph fits a glyph to exactly one cell width.
func padGlyph(s string) string {
	n := utf8.RuneCountInString(s)
	switch {
	case n == cellWidth:
		return s
	case n > cellWidth:
		return string([]rune(s)[:cellWidth])
	default:
		for ; n < cellWidth; n++ {
			s += " "
		}
		return s
	}
}

// renderFooter draws the control hints.
func (g *Game) renderFooter(dst *core.Screen, y int) {
	dst.DrawTextCentered(y, "arrows/wasd move  r restart  n/p level  m mute  esc menu  q quit", core.ColorGray)
}

// renderWon draws the level-complete banner over the board.
func (g *Game) renderWon(dst *core.Screen, boardX, boardY, boardW, boardH int) {
	msg := "Level complete! n: next level"
	if g.State().Finished {
		msg = "Pack complete! r: replay"
	}

	w := utf8.RuneCountInString(msg) + 4
	area := core.NewRect(boardX, boardY, boardW, boardH)
	box := area.Centered(w, 3)
	if box.X < 0 {
		box.X = 0
	}
	dst.DrawRect(box, core.Cell{Rune: ' '})
	dst.DrawBox(box, core.ColorBrightGreen)
	dst.DrawTextColor(box.X+2, box.Y+1, msg, core.ColorBrightGreen)
}
