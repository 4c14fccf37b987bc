package mino

// Block is the content of a matrix cell: BlockNone when empty, otherwise the
// color identity of the piece that locked there. The color never affects
// game rules.
type Block int

const (
	BlockNone Block = iota
	BlockWhite
	BlockYellow
	BlockCyan
	BlockMagenta
	BlockBlue
	BlockGreen
)

// BlockColors is the number of color identities a piece can spawn with.
const BlockColors = int(BlockGreen)

func (b Block) String() string {
	switch b {
	case BlockNone:
		return "None"
	case BlockWhite:
		return "White"
	case BlockYellow:
		return "Yellow"
	case BlockCyan:
		return "Cyan"
	case BlockMagenta:
		return "Magenta"
	case BlockBlue:
		return "Blue"
	case BlockGreen:
		return "Green"
	default:
		return "Unknown"
	}
}

func (b Block) Rune() rune {
	if b == BlockNone {
		return '.'
	}

	return '#'
}
