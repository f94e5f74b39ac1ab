package match3

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/puzzlebit/internal/core"
	"github.com/vovakirdan/puzzlebit/internal/games/match3/engine"
	"github.com/vovakirdan/puzzlebit/internal/games/match3/levels"
)

const (
	tileWidth  = 4 // Two glyph columns plus a marker on each side
	hudHeight  = 3
	footerRows = 2
	minWidth   = 60
)

// layout maps board cells to screen positions.
type layout struct {
	x0, y0     int // Screen position of the top-left tile
	rows, cols int
}

// tiles is the screen area covered by tiles, markers included.
func (l layout) tiles() core.Rect {
	return core.NewRect(l.x0, l.y0, l.cols*tileWidth, l.rows)
}

// cellAt returns the board cell under screen position (x, y).
func (l layout) cellAt(x, y int) (engine.Cell, bool) {
	if !l.tiles().Contains(x, y) {
		return engine.Cell{}, false
	}
	return engine.At(y-l.y0, (x-l.x0)/tileWidth), true
}

// origin returns the screen position of the left marker of cell c.
func (l layout) origin(c engine.Cell) (int, int) {
	return l.x0 + c.Col*tileWidth, l.y0 + c.Row
}

// boardRect is the tile area plus its frame.
func (l layout) boardRect() core.Rect {
	return l.tiles().Grow(1)
}

// Resize adapts the layout to a new terminal size without restarting.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.updateLayout()
}

func (g *Game) updateLayout() {
	if g.session == nil || !g.session.Started() {
		return
	}
	snap := g.session.Snapshot()
	boardW := snap.Cols * tileWidth
	g.layout = layout{
		x0:   (g.screenW - boardW) / 2,
		y0:   hudHeight + 1,
		rows: snap.Rows,
		cols: snap.Cols,
	}
	needW := max(boardW+2, minWidth)
	needH := g.layout.y0 + snap.Rows + 1 + footerRows
	g.tooSmall = g.screenW < needW || g.screenH < needH
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.session.Snapshot()
	g.renderHUD(dst, snap)
	g.renderBoard(dst, snap)
	g.renderFooter(dst)
	g.renderOverlays(dst, snap)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCenteredColor(y+1, "Please resize terminal", core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen, snap engine.Snapshot) {
	title := "PuzzleBit - Endless"
	if !g.level.IsEndless() {
		title = fmt.Sprintf("PuzzleBit - Level %d/%d - %s", g.level.Number, g.catalog.Count(), g.level.Name)
	}
	dst.DrawTextCenteredColor(0, title, core.ColorBrightWhite)

	score := fmt.Sprintf("Score %d", snap.Stats.Score)
	if g.level.TargetScore > 0 {
		score = fmt.Sprintf("Score %d/%d", snap.Stats.Score, g.level.TargetScore)
	}

	clock := levels.FormatTime(snap.Stats.ElapsedSeconds)
	clockColor := core.ColorWhite
	if g.level.Timed() {
		left := levels.Remaining(g.level, snap.Stats.ElapsedSeconds)
		clock = levels.FormatTime(left) + " left"
		if left <= 30 {
			clockColor = core.ColorRed
		}
	}

	hints := "Hints: unlimited"
	if left := g.level.HintsLeft(g.hintsUsed); left >= 0 {
		hints = fmt.Sprintf("Hints: %d", left)
	}

	info := fmt.Sprintf("%s   Moves %d   ", score, snap.Stats.Moves)
	line := info + clock + "   " + hints
	x := (g.screenW - utf8.RuneCountInString(line)) / 2
	dst.DrawText(x, 1, info)
	x += utf8.RuneCountInString(info)
	dst.DrawTextColor(x, 1, clock, clockColor)
	dst.DrawText(x+utf8.RuneCountInString(clock)+3, 1, hints)

	if g.level.TargetScore > 0 {
		g.renderProgressBar(dst, snap.Stats.Score)
	}
}

// renderProgressBar draws score progress toward the target above the board.
func (g *Game) renderProgressBar(dst *core.Screen, score int) {
	w := g.layout.cols * tileWidth
	filled := min(score*w/g.level.TargetScore, w)
	for i := range w {
		if i < filled {
			dst.SetColor(g.layout.x0+i, 2, '█', core.ColorGreen)
		} else {
			dst.SetColor(g.layout.x0+i, 2, '░', core.ColorGray)
		}
	}
}

func (g *Game) renderBoard(dst *core.Screen, snap engine.Snapshot) {
	dst.DrawBox(g.layout.boardRect(), core.ColorGray)

	flashing := make(map[engine.Cell]bool, len(g.flash))
	for _, c := range g.flash {
		flashing[c] = true
	}

	for r := range snap.Rows {
		for c := range snap.Cols {
			cell := engine.At(r, c)
			x, y := g.layout.origin(cell)

			if flashing[cell] {
				dst.DrawTextColor(x+1, y, "▒▒", core.ColorBrightWhite)
			} else {
				color := core.TileColor(snap.ColorAt(r, c))
				dst.SetColor(x+1, y, '█', color)
				dst.SetColor(x+2, y, '█', color)
			}

			left, right, mc := g.markers(cell, snap.Selection)
			if left != 0 {
				dst.SetColor(x, y, left, mc)
				dst.SetColor(x+3, y, right, mc)
			}
		}
	}
}

// markers returns the bracket runes drawn around a tile, or zero runes for
// none. Cursor wins over selection, selection over hint.
func (g *Game) markers(c engine.Cell, sel *engine.Cell) (rune, rune, core.Color) {
	selected := sel != nil && *sel == c
	switch {
	case c == g.cursor && selected:
		return '[', ']', core.ColorYellow
	case c == g.cursor:
		return '[', ']', core.ColorBrightWhite
	case selected:
		return '>', '<', core.ColorYellow
	case g.hint != nil && (g.hint.A == c || g.hint.B == c):
		return '*', '*', core.ColorMagenta
	}
	return 0, 0, core.ColorDefault
}

func (g *Game) renderFooter(dst *core.Screen) {
	y := g.layout.y0 + g.layout.rows + 1
	if g.status != "" {
		dst.DrawTextCenteredColor(y, g.status, core.ColorYellow)
	}
	dst.DrawTextCenteredColor(y+1, g.Controls(), core.ColorGray)
}

func (g *Game) renderOverlays(dst *core.Screen, snap engine.Snapshot) {
	switch {
	case g.paused:
		g.drawOverlay(dst, "PAUSED", "Press P to resume")
	case g.won:
		g.drawOverlay(dst, "CAMPAIGN COMPLETE!",
			starLine(g.stars),
			fmt.Sprintf("Final score %d", snap.Stats.Score),
			"R: replay  Esc: menu")
	case g.cleared:
		lines := []string{"LEVEL CLEARED!", starLine(g.stars)}
		if g.perfect {
			lines = append(lines, "Perfect!")
		}
		lines = append(lines,
			fmt.Sprintf("Score %d in %d moves", snap.Stats.Score, snap.Stats.Moves),
			"N: next level  R: replay  Esc: menu")
		g.drawOverlay(dst, lines...)
	case g.timeUp:
		g.drawOverlay(dst, "TIME UP",
			fmt.Sprintf("Score %d/%d", snap.Stats.Score, g.level.TargetScore),
			"R: retry  Esc: menu")
	case g.noMoves:
		g.drawOverlay(dst, "NO MOVES LEFT",
			fmt.Sprintf("Score %d", snap.Stats.Score),
			"R: retry  Esc: menu")
	}
}

func starLine(stars int) string {
	stars = core.Clamp(stars, 0, levels.MaxStars)
	return strings.Repeat("★", stars) + strings.Repeat("☆", levels.MaxStars-stars)
}

// drawOverlay draws a boxed message centered on the board.
func (g *Game) drawOverlay(dst *core.Screen, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	board := g.layout.boardRect()
	box := board.Centered(maxLen+4, len(lines)+2)

	dst.Fill(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorBrightWhite)
	for i, line := range lines {
		dst.DrawTextCenteredIn(box, box.Y+1+i, line, core.ColorDefault)
	}
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows: move  Space: pick  H: hint  P: pause  R: restart"
}
