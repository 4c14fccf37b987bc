package game

import (
	"context"
	"errors"
	"io/ioutil"

	"github.com/sirupsen/logrus"

	"github.com/qnkhuat/termtris/pkg/event"
	"github.com/qnkhuat/termtris/pkg/mino"
)

const MaxWidth = 10

var ErrScreenTooSmall = errors.New("screen too small to fit a matrix")

// InputSource supplies at most one key per call. PollKey must return within
// one tick interval, reporting false when no key arrived.
type InputSource interface {
	PollKey() (event.Key, bool)
}

// Renderer draws the game. Cells outside the visible surface are dropped
// silently. p is nil once the game is over.
type Renderer interface {
	Size() (cols int, rows int)
	Render(m *mino.Matrix, p *mino.Piece, score int)
}

// GameOverRenderer is implemented by renderers that draw a final frame once
// the game has ended.
type GameOverRenderer interface {
	RenderGameOver(m *mino.Matrix, score int)
}

type Options struct {
	Seed int64
	Log  logrus.FieldLogger
}

// BoardSize derives matrix dimensions from the display: two terminal
// columns per cell up to MaxWidth cells, and one row kept for the status
// line.
func BoardSize(cols int, rows int) (w int, h int) {
	w = cols / 2
	if w > MaxWidth {
		w = MaxWidth
	}

	return w, rows - 1
}

// Run plays one game until it is over or ctx is cancelled. The matrix is
// sized once from out and keeps that size for the whole game.
func Run(ctx context.Context, in InputSource, out Renderer, opts Options) (*Game, error) {
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(ioutil.Discard)
		log = l
	}

	w, h := BoardSize(out.Size())
	if w < 1 || h < 1 {
		return nil, ErrScreenTooSmall
	}

	g := NewGame(w, h, mino.NewRandomizer(opts.Seed))
	log.WithFields(logrus.Fields{"width": w, "height": h, "seed": opts.Seed}).Info("game started")

	out.Render(g.Matrix, g.P, g.Score)

	for !g.GameOver() {
		if err := ctx.Err(); err != nil {
			log.WithField("score", g.Score).Info("game cancelled")
			return g, err
		}

		key, ok := in.PollKey()

		// Quitting while waiting for a key must not cost another tick
		if err := ctx.Err(); err != nil {
			log.WithField("score", g.Score).Info("game cancelled")
			return g, err
		}

		action := event.ActionNone
		if ok {
			action = key.Action()
		}

		step := g.Tick(action)
		if step.Landed {
			log.WithFields(logrus.Fields{
				"cleared": step.Cleared,
				"points":  step.Points,
				"score":   g.Score,
			}).Debug("piece locked")
		}

		if g.GameOver() {
			break
		}

		out.Render(g.Matrix, g.P, g.Score)
	}

	if r, ok := out.(GameOverRenderer); ok {
		r.RenderGameOver(g.Matrix, g.Score)
	} else {
		out.Render(g.Matrix, nil, g.Score)
	}

	log.WithFields(logrus.Fields{
		"score":  g.Score,
		"lines":  g.LinesCleared,
		"pieces": g.PiecesLocked,
	}).Info("game over")

	return g, nil
}
