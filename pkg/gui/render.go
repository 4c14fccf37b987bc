package gui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/termtris/pkg/mino"
)

const (
	// blockWidth is the number of terminal columns used by one matrix cell
	blockWidth = 2
	sideMargin = 2
	// sideWidth is the room the side panel needs to the right of the matrix
	sideWidth = 12

	// gameOverFade is how far block colors are blended toward gray once
	// the game is over
	gameOverFade = 0.6
)

// drawText places text at the specified coordinates with the provided style
func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range []rune(text) {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawRune places a rune at the specified coordinates with the provided style
func drawRune(s tcell.Screen, x, y int, style tcell.Style, r rune) {
	s.SetContent(x, y, r, nil, style)
}

// DefStyle is the default style for tcell rendering
var DefStyle = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)

// drawBlock draws one matrix cell. Cells are two columns wide to make them
// square, the glyph goes in the first column.
func drawBlock(s tcell.Screen, x, y int, b mino.Block, t Theme) {
	style := DefStyle.Foreground(t.Block(b))
	drawRune(s, x*blockWidth, y, style, b.Rune())
	drawRune(s, x*blockWidth+1, y, DefStyle, ' ')
}

// drawMatrix draws the locked blocks and then the live piece over them.
// Piece cells that fall outside the screen are dropped by tcell.
func drawMatrix(s tcell.Screen, m *mino.Matrix, p *mino.Piece, t Theme) {
	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			drawBlock(s, x, y, m.M[y][x], t)
		}
	}

	if p == nil {
		return
	}

	for _, pt := range p.Points() {
		c := pt.Add(p.Point)
		drawBlock(s, c.X, c.Y, p.Solid, t)
	}
}

// hasSidePanel reports whether there is room right of the matrix for the
// score and nickname
func hasSidePanel(w int, cols int) bool {
	return blockWidth*w+sideWidth < cols
}

// drawStatus draws the score, next to the matrix when there is room and
// over its top left corner otherwise
func drawStatus(s tcell.Screen, w int, score int, nick string, gameOver bool, t Theme) {
	cols, _ := s.Size()

	scoreText := fmt.Sprintf("Score: %d", score)
	scoreStyle := DefStyle.Foreground(t.Score)
	gameOverStyle := DefStyle.Foreground(t.GameOver).Bold(true)

	if !hasSidePanel(w, cols) {
		drawText(s, 0, 0, scoreStyle, scoreText)
		if gameOver {
			drawText(s, 0, 1, gameOverStyle, "Game Over")
		}
		return
	}

	col := blockWidth*w + sideMargin
	drawText(s, col, 0, scoreStyle, scoreText)
	if nick != "" {
		drawText(s, col, 1, DefStyle.Foreground(t.Nick), nick)
	}
	if gameOver {
		drawText(s, col, 3, gameOverStyle, "Game Over")
	}
}

// Screen renders a game directly onto a tcell screen
type Screen struct {
	S     tcell.Screen
	Theme Theme
	Nick  string
}

func NewScreen(s tcell.Screen, t Theme, nick string) *Screen {
	return &Screen{S: s, Theme: t, Nick: nick}
}

func (s *Screen) Size() (int, int) {
	return s.S.Size()
}

// Render redraws the whole frame
func (s *Screen) Render(m *mino.Matrix, p *mino.Piece, score int) {
	s.S.Clear()
	drawMatrix(s.S, m, p, s.Theme)
	drawStatus(s.S, m.W, score, s.Nick, false, s.Theme)
	s.S.Show()
}

// RenderGameOver draws the final board with faded blocks
func (s *Screen) RenderGameOver(m *mino.Matrix, score int) {
	s.S.Clear()
	drawMatrix(s.S, m, nil, s.Theme.Faded(gameOverFade))
	drawStatus(s.S, m.W, score, s.Nick, true, s.Theme)
	s.S.Show()
}

// Close restores the terminal
func (s *Screen) Close() {
	s.S.Fini()
}
