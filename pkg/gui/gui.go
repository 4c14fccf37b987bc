package gui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/qnkhuat/termtris/pkg/game"
)

// Names of the available user interfaces
const (
	UIScreen = "screen"
	UITview  = "tview"
)

// Frontend is a terminal user interface able to host a game
type Frontend interface {
	game.InputSource
	game.Renderer
	game.GameOverRenderer
	Close()
}

// Terminal draws straight onto a tcell screen and reads its keyboard
type Terminal struct {
	*Screen
	*Keyboard
}

// Close stops reading keys and restores the terminal
func (t *Terminal) Close() {
	t.Keyboard.Close()
	t.Screen.Close()
}

type Options struct {
	UI    string
	Theme Theme
	Nick  string
	// Tick bounds how long PollKey waits for a key
	Tick time.Duration
	// Quit is called when the player asks to leave
	Quit func()
	Log  logrus.FieldLogger
}

// Open starts the user interface named by opts.UI on an uninitialized
// screen
func Open(s tcell.Screen, opts Options) (Frontend, error) {
	switch opts.UI {
	case UIScreen, "":
		if err := s.Init(); err != nil {
			return nil, fmt.Errorf("init screen: %w", err)
		}
		s.SetStyle(DefStyle)
		s.HideCursor()
		s.Clear()

		return &Terminal{
			Screen:   NewScreen(s, opts.Theme, opts.Nick),
			Keyboard: NewKeyboard(s, opts.Tick, opts.Quit),
		}, nil
	case UITview:
		v, err := NewView(s, opts.Theme, opts.Nick, opts.Tick, opts.Quit)
		if err != nil {
			return nil, err
		}
		go func() {
			if err := v.Run(); err != nil && opts.Log != nil {
				opts.Log.WithError(err).Error("tview stopped")
			}
		}()

		return v, nil
	}

	return nil, fmt.Errorf("unknown ui %q", opts.UI)
}
