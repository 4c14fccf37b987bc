package event

// GameAction is what the player asked for during a tick.
type GameAction int

const (
	ActionNone GameAction = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveDown
	ActionRotate
)

func (a GameAction) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionMoveDown:
		return "MoveDown"
	case ActionRotate:
		return "Rotate"
	default:
		return "Unknown"
	}
}

// Falling reports whether the action attempts to move the piece down, either
// by the player or by gravity.
func (a GameAction) Falling() bool {
	return a == ActionNone || a == ActionMoveDown
}
