package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyAction(t *testing.T) {
	tests := []struct {
		key    Key
		action GameAction
	}{
		{KeyUp, ActionRotate},
		{KeyDown, ActionMoveDown},
		{KeyLeft, ActionMoveLeft},
		{KeyRight, ActionMoveRight},
		{KeyOther, ActionNone},
		{Key(42), ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			assert.Equal(t, tt.action, tt.key.Action())
		})
	}
}

func TestActionFalling(t *testing.T) {
	assert.True(t, ActionNone.Falling())
	assert.True(t, ActionMoveDown.Falling())
	assert.False(t, ActionMoveLeft.Falling())
	assert.False(t, ActionMoveRight.Falling())
	assert.False(t, ActionRotate.Falling())
}
