package event

// Key is a key code reported by an input source. Frontends translate their
// native key events into these.
type Key int

const (
	KeyOther Key = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
)

func (k Key) String() string {
	switch k {
	case KeyUp:
		return "Up"
	case KeyDown:
		return "Down"
	case KeyLeft:
		return "Left"
	case KeyRight:
		return "Right"
	default:
		return "Other"
	}
}

// Action maps a key to the intent it stands for. Unrecognized keys mean no
// intent, and gravity applies.
func (k Key) Action() GameAction {
	switch k {
	case KeyUp:
		return ActionRotate
	case KeyDown:
		return ActionMoveDown
	case KeyLeft:
		return ActionMoveLeft
	case KeyRight:
		return ActionMoveRight
	default:
		return ActionNone
	}
}
