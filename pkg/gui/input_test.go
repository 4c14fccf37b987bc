package gui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnkhuat/termtris/pkg/event"
)

func TestKeyFor(t *testing.T) {
	tests := []struct {
		ev  *tcell.EventKey
		key event.Key
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), event.KeyUp},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), event.KeyDown},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), event.KeyLeft},
		{tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone), event.KeyRight},
		{tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), event.KeyOther},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), event.KeyOther},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.key, keyFor(tt.ev), tt.ev.Name())
	}
}

func TestKeyboardPollKey(t *testing.T) {
	s := newSimScreen(t, 20, 10)
	k := NewKeyboard(s, time.Second, nil)

	s.InjectKey(tcell.KeyLeft, 0, tcell.ModNone)
	key, ok := k.PollKey()
	assert.True(t, ok)
	assert.Equal(t, event.KeyLeft, key)

	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	key, ok = k.PollKey()
	assert.True(t, ok)
	assert.Equal(t, event.KeyOther, key)
}

func TestKeyboardPollKeyTimeout(t *testing.T) {
	s := newSimScreen(t, 20, 10)
	k := NewKeyboard(s, 20*time.Millisecond, nil)

	start := time.Now()
	_, ok := k.PollKey()
	assert.False(t, ok)
	assert.GreaterOrEqual(t, int64(time.Since(start)), int64(20*time.Millisecond))
}

func TestKeyboardResizeKeepsWaiting(t *testing.T) {
	s := newSimScreen(t, 20, 10)
	k := NewKeyboard(s, 50*time.Millisecond, nil)

	assert.NoError(t, s.PostEvent(tcell.NewEventResize(30, 12)))
	_, ok := k.PollKey()
	assert.False(t, ok, "a resize is not a key")
}

func TestKeyboardQuit(t *testing.T) {
	for _, quitKey := range []tcell.Key{tcell.KeyEscape, tcell.KeyCtrlC} {
		s := newSimScreen(t, 20, 10)

		var quits int
		k := NewKeyboard(s, time.Second, func() { quits++ })

		s.InjectKey(quitKey, 0, tcell.ModNone)
		_, ok := k.PollKey()
		assert.False(t, ok)
		assert.Equal(t, 1, quits)
	}
}

func TestKeyboardCloseUnblocksPump(t *testing.T) {
	s := newSimScreen(t, 20, 10)
	k := NewKeyboard(s, time.Second, nil)

	// Nobody polls: the queue fills up and the pump blocks on the next key
	for i := 0; i < KeyQueueSize+3; i++ {
		s.PostEventWait(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	}
	require.Eventually(t, func() bool {
		return len(k.events) == KeyQueueSize
	}, time.Second, time.Millisecond)

	k.Close()
	k.Close()

	select {
	case <-k.stopped:
	case <-time.After(time.Second):
		t.Fatal("event pump still blocked after Close")
	}
}
