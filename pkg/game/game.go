package game

import (
	"fmt"

	"github.com/qnkhuat/termtris/pkg/event"
	"github.com/qnkhuat/termtris/pkg/mino"
)

const (
	PointsPerLock = 10
	PointsPerLine = 10
)

type State int

const (
	StateSpawning State = iota
	StateFalling
	StateLocking
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateSpawning:
		return "Spawning"
	case StateFalling:
		return "Falling"
	case StateLocking:
		return "Locking"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// Game is the whole state of one game. It is owned by a single goroutine and
// only changes inside Tick.
type Game struct {
	Matrix *mino.Matrix
	P      *mino.Piece
	Score  int
	State  State

	LinesCleared int
	PiecesLocked int

	bag *mino.Randomizer
}

// Step describes what a single tick did.
type Step struct {
	Action   event.GameAction
	Rotated  bool
	Moved    bool
	Landed   bool
	Cleared  int
	Points   int
	GameOver bool
}

// NewGame creates an empty w x h matrix and spawns the first piece. The game
// is over immediately when even the first piece does not fit.
func NewGame(w int, h int, bag *mino.Randomizer) *Game {
	g := &Game{
		Matrix: mino.NewMatrix(w, h),
		bag:    bag,
	}

	g.spawn()

	return g
}

func (g *Game) GameOver() bool {
	return g.State == StateGameOver
}

func (g *Game) String() string {
	return fmt.Sprintf("%s score=%d piece=%s", g.State, g.Score, g.P)
}

// Tick advances the game by one step for the given action.
func (g *Game) Tick(action event.GameAction) Step {
	step := Step{Action: action}
	if g.GameOver() {
		step.GameOver = true
		return step
	}

	p := g.P

	if action == event.ActionRotate {
		rotated := p.Rotate()
		if g.Matrix.CanAddAt(rotated, p.Point) {
			p.Shape = rotated
			step.Rotated = true
		}
	}

	loc := p.Point
	switch action {
	case event.ActionMoveLeft:
		loc.X--
	case event.ActionMoveRight:
		loc.X++
	case event.ActionMoveDown, event.ActionNone:
		loc.Y++
	}

	if g.Matrix.CanAddAt(p.Shape, loc) {
		step.Moved = loc != p.Point
		p.SetLocation(loc.X, loc.Y)
		return step
	}

	// A blocked sideways move leaves the piece where it is. Only a blocked
	// downward move lands it.
	if !action.Falling() {
		return step
	}

	step.Landed = true
	step.Cleared, step.Points = g.lock()

	g.spawn()
	step.GameOver = g.GameOver()

	return step
}

func (g *Game) lock() (cleared int, points int) {
	g.State = StateLocking

	g.Matrix.Add(g.P.Shape, g.P.Solid, g.P.Point)
	g.PiecesLocked++

	cleared = g.Matrix.ClearFilled()
	g.LinesCleared += cleared

	points = PointsPerLock + cleared*PointsPerLine
	g.Score += points

	return cleared, points
}

func (g *Game) spawn() {
	g.State = StateSpawning

	s, b := g.bag.Take()

	x := g.Matrix.W/2 - s.Width()/2
	if x < 0 {
		x = 0
	}

	g.P = mino.NewPiece(s, b, mino.Point{X: x, Y: 0})

	if !g.Matrix.CanAddAt(g.P.Shape, g.P.Point) {
		g.State = StateGameOver
		return
	}

	g.State = StateFalling
}
