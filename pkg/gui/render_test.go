package gui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/termtris/pkg/mino"
)

func newSimScreen(t *testing.T, cols, rows int) tcell.SimulationScreen {
	t.Helper()

	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	s.SetSize(cols, rows)
	t.Cleanup(s.Fini)

	return s
}

// readText returns the runes drawn on row y from column x onwards
func readText(s tcell.SimulationScreen, x, y, n int) string {
	cells, w, _ := s.GetContents()

	var out []rune
	for i := x; i < x+n; i++ {
		c := cells[y*w+i]
		if len(c.Runes) == 0 {
			out = append(out, ' ')
			continue
		}
		out = append(out, c.Runes[0])
	}
	return string(out)
}

func TestScreenRender(t *testing.T) {
	s := newSimScreen(t, 40, 11)
	scr := NewScreen(s, ThemeBasic, "sleepy-gopher")

	cols, rows := scr.Size()
	assert.Equal(t, 40, cols)
	assert.Equal(t, 11, rows)

	m := mino.NewMatrix(10, 10)
	require.True(t, m.SetBlock(0, 9, mino.BlockBlue))
	p := mino.NewPiece(mino.MustParseShape(mino.ShapeT), mino.BlockCyan, mino.Point{X: 4, Y: 0})

	scr.Render(m, p, 7)

	assert.Equal(t, ". . . . # # # . . . ", readText(s, 0, 0, 20))
	assert.Equal(t, ". . . . . # . . . . ", readText(s, 0, 1, 20))
	assert.Equal(t, "# . . . . . . . . . ", readText(s, 0, 9, 20))

	assert.Equal(t, "Score: 7", readText(s, 22, 0, 8))
	assert.Equal(t, "sleepy-gopher", readText(s, 22, 1, 13))
}

func TestScreenRenderNarrow(t *testing.T) {
	s := newSimScreen(t, 25, 6)
	scr := NewScreen(s, ThemeBasic, "nick")

	m := mino.NewMatrix(10, 5)
	scr.Render(m, nil, 120)

	assert.Equal(t, "Score: 120", readText(s, 0, 0, 10))
	assert.Equal(t, "     ", readText(s, 20, 1, 5), "no side panel")
}

func TestScreenRenderPieceOffScreen(t *testing.T) {
	s := newSimScreen(t, 18, 5)
	scr := NewScreen(s, ThemeBasic, "")

	m := mino.NewMatrix(9, 4)
	p := mino.NewPiece(mino.MustParseShape(mino.ShapeLine), mino.BlockGreen, mino.Point{X: 7, Y: 3})

	assert.NotPanics(t, func() {
		scr.Render(m, p, 0)
	})
	assert.Equal(t, "# ", readText(s, 16, 3, 2))
}

func TestScreenRenderGameOver(t *testing.T) {
	s := newSimScreen(t, 40, 11)
	scr := NewScreen(s, ThemeBasic, "")

	m := mino.NewMatrix(10, 10)
	require.True(t, m.SetBlock(3, 9, mino.BlockYellow))

	scr.RenderGameOver(m, 40)

	assert.Equal(t, "Score: 40", readText(s, 22, 0, 9))
	assert.Equal(t, "Game Over", readText(s, 22, 3, 9))
	assert.Equal(t, "#", readText(s, 6, 9, 1))
}
