package gui

import (
	"bytes"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/qnkhuat/termtris/pkg/event"
	"github.com/qnkhuat/termtris/pkg/game"
	"github.com/qnkhuat/termtris/pkg/mino"
)

// colorTag returns the tview dynamic color tag for c
func colorTag(c tcell.Color) string {
	if c.Hex() < 0 {
		return "[-]"
	}
	return fmt.Sprintf("[#%06x]", c.Hex())
}

// renderMatrix writes the matrix with the piece overlaid as tview text.
// Piece cells outside the matrix are dropped.
func renderMatrix(buf *bytes.Buffer, m *mino.Matrix, p *mino.Piece, t Theme) {
	rows := make([][]mino.Block, m.H)
	for y := range rows {
		rows[y] = make([]mino.Block, m.W)
		copy(rows[y], m.M[y])
	}

	if p != nil {
		for _, pt := range p.Points() {
			c := pt.Add(p.Point)
			if c.X < 0 || c.X >= m.W || c.Y < 0 || c.Y >= m.H {
				continue
			}
			rows[c.Y][c.X] = p.Solid
		}
	}

	for y, row := range rows {
		if y > 0 {
			buf.WriteByte('\n')
		}
		for _, b := range row {
			buf.WriteString(colorTag(t.Block(b)))
			buf.WriteRune(b.Rune())
			buf.WriteByte(' ')
		}
		buf.WriteString("[-]")
	}
}

// View renders a game with tview widgets: the matrix on the left and the
// score on the right, or on a status line below when the terminal is narrow
type View struct {
	App     *tview.Application
	Theme   Theme
	Nick    string
	Timeout time.Duration

	mtx    *tview.TextView
	side   *tview.TextView
	screen tcell.Screen
	keys   chan event.Key
	quit   func()

	renderBuffer bytes.Buffer
}

func newTextView() *tview.TextView {
	tv := tview.NewTextView().
		SetScrollable(false).
		SetTextAlign(tview.AlignLeft).
		SetWrap(false).
		SetWordWrap(false)

	tv.SetDynamicColors(true)

	return tv
}

// NewView initializes screen, hands it to tview and lays out the widgets.
// The layout is sized once, as the matrix is.
func NewView(screen tcell.Screen, t Theme, nick string, timeout time.Duration, quit func()) (*View, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	screen.SetStyle(DefStyle)

	v := &View{
		App:     tview.NewApplication(),
		Theme:   t,
		Nick:    nick,
		Timeout: timeout,
		mtx:     newTextView(),
		side:    newTextView(),
		screen:  screen,
		keys:    make(chan event.Key, KeyQueueSize),
		quit:    quit,
	}

	v.App.SetScreen(screen)

	cols, rows := screen.Size()
	w, h := game.BoardSize(cols, rows)

	grid := tview.NewGrid().SetBorders(false)
	if hasSidePanel(w, cols) {
		grid.SetRows(-1).
			SetColumns(blockWidth*w+sideMargin, -1).
			AddItem(v.mtx, 0, 0, 1, 1, 0, 0, false).
			AddItem(v.side, 0, 1, 1, 1, 0, 0, false)
	} else {
		grid.SetRows(h, 1).
			SetColumns(-1).
			AddItem(v.mtx, 0, 0, 1, 1, 0, 0, false).
			AddItem(v.side, 1, 0, 1, 1, 0, 0, false)
	}

	v.App.SetInputCapture(v.handleKeypress)
	v.App.SetRoot(grid, true)

	return v, nil
}

func (v *View) handleKeypress(ev *tcell.EventKey) *tcell.EventKey {
	if isQuit(ev) {
		if v.quit != nil {
			v.quit()
		}
		return nil
	}

	select {
	case v.keys <- keyFor(ev):
	default:
		// Queue full, drop the key
	}

	return nil
}

// Run starts the tview event loop and blocks until Stop is called
func (v *View) Run() error {
	return v.App.Run()
}

// Stop ends the event loop and restores the terminal
func (v *View) Stop() {
	v.App.Stop()
}

// Close is Stop, so View and Screen can be shut down alike
func (v *View) Close() {
	v.Stop()
}

func (v *View) Size() (int, int) {
	return v.screen.Size()
}

func (v *View) status(score int, gameOver bool) string {
	s := fmt.Sprintf("%sScore: %d[-]", colorTag(v.Theme.Score), score)
	if v.Nick != "" {
		s += fmt.Sprintf("\n%s%s[-]", colorTag(v.Theme.Nick), tview.Escape(v.Nick))
	}
	if gameOver {
		s += fmt.Sprintf("\n\n%sGame Over[-]", colorTag(v.Theme.GameOver))
	}
	return s
}

func (v *View) draw(m *mino.Matrix, p *mino.Piece, score int, t Theme, gameOver bool) {
	v.renderBuffer.Reset()
	renderMatrix(&v.renderBuffer, m, p, t)

	text := v.renderBuffer.String()
	status := v.status(score, gameOver)

	v.App.QueueUpdateDraw(func() {
		v.mtx.SetText(text)
		v.side.SetText(status)
	})
}

func (v *View) Render(m *mino.Matrix, p *mino.Piece, score int) {
	v.draw(m, p, score, v.Theme, false)
}

func (v *View) RenderGameOver(m *mino.Matrix, score int) {
	v.draw(m, nil, score, v.Theme.Faded(gameOverFade), true)
}

// PollKey waits at most Timeout for a key press
func (v *View) PollKey() (event.Key, bool) {
	t := time.NewTimer(v.Timeout)
	defer t.Stop()

	select {
	case k := <-v.keys:
		return k, true
	case <-t.C:
		return event.KeyOther, false
	}
}
