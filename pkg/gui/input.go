package gui

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/qnkhuat/termtris/pkg/event"
)

const KeyQueueSize = 10

type keybinding struct {
	k   tcell.Key
	key event.Key
}

var keybindings = []keybinding{
	{k: tcell.KeyUp, key: event.KeyUp},
	{k: tcell.KeyDown, key: event.KeyDown},
	{k: tcell.KeyLeft, key: event.KeyLeft},
	{k: tcell.KeyRight, key: event.KeyRight},
}

// keyFor translates a terminal key press, anything unbound is KeyOther
func keyFor(ev *tcell.EventKey) event.Key {
	for _, bind := range keybindings {
		if bind.k == ev.Key() {
			return bind.key
		}
	}

	return event.KeyOther
}

// isQuit reports whether the key press asks to leave the game
func isQuit(ev *tcell.EventKey) bool {
	return ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC
}

// Keyboard reads keys from a tcell screen. A goroutine pumps screen events
// into a queue so PollKey can give up once the tick interval has passed.
type Keyboard struct {
	Timeout time.Duration

	s      tcell.Screen
	events chan tcell.Event
	quit   func()

	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
}

// NewKeyboard starts reading events from s. quit is called when the player
// presses Escape or Ctrl-C.
func NewKeyboard(s tcell.Screen, timeout time.Duration, quit func()) *Keyboard {
	k := &Keyboard{
		Timeout: timeout,
		s:       s,
		events:  make(chan tcell.Event, KeyQueueSize),
		quit:    quit,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	go k.handleEvents()

	return k
}

func (k *Keyboard) handleEvents() {
	defer close(k.stopped)

	for {
		ev := k.s.PollEvent()
		if ev == nil {
			// Screen finalized
			close(k.events)
			return
		}

		select {
		case k.events <- ev:
		case <-k.done:
			return
		}
	}
}

// Close stops the event pump, even when nobody is polling any more
func (k *Keyboard) Close() {
	k.once.Do(func() {
		close(k.done)
	})
}

// PollKey waits at most Timeout for a key press. Resize events resync the
// screen and the wait goes on.
func (k *Keyboard) PollKey() (event.Key, bool) {
	t := time.NewTimer(k.Timeout)
	defer t.Stop()

	events := k.events
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}

			switch ev := ev.(type) {
			case *tcell.EventKey:
				if isQuit(ev) {
					if k.quit != nil {
						k.quit()
					}
					return event.KeyOther, false
				}
				return keyFor(ev), true
			case *tcell.EventResize:
				k.s.Sync()
			}
		case <-t.C:
			return event.KeyOther, false
		}
	}
}
