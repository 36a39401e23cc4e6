package snake

import "github.com/vovakirdan/grid-snake/internal/core"

// Board glyphs.
const (
	glyphHead  = 'O'
	glyphBody  = 'o'
	glyphFood  = '*'
	glyphEmpty = '·'
)

// RenderBoard draws the engine's grid with its top-left cell at (x, y).
// Occupancy comes from the cell buffer so the picture is exactly what the
// engine reports.
func RenderBoard(dst *core.Screen, e *Engine, x, y int) {
	if e == nil {
		return
	}

	grid := e.Grid()
	for idx, v := range e.Cells() {
		p := grid.Position(idx)
		if v == 1 {
			dst.SetColored(x+p.Col, y+p.Row, glyphBody, core.ColorGreen)
		} else {
			dst.SetColored(x+p.Col, y+p.Row, glyphEmpty, core.ColorGray)
		}
	}

	if food, ok := e.Food(); ok && !e.Occupied(food) {
		dst.SetColored(x+food.Col, y+food.Row, glyphFood, core.ColorBrightRed)
	}

	head := e.Head()
	headColor := core.ColorBrightGreen
	if e.GameOver() {
		headColor = core.ColorBrightYellow
	}
	dst.SetColored(x+head.Col, y+head.Row, glyphHead, headColor)
}

// RenderText returns the board as plain text, one line per row.
func RenderText(e *Engine) string {
	s := core.NewScreen(e.Width(), e.Height())
	RenderBoard(s, e, 0, 0)
	return s.String()
}

// renderOverlay draws a centered two-line message box.
func renderOverlay(dst *core.Screen, line1, line2 string) {
	width := core.Max(len([]rune(line1)), len([]rune(line2))) + 4
	box := core.CenteredRect(dst.Width(), dst.Height(), width, 5)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box, core.ColorWhite)
	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
