package mino

import (
	"strings"
)

// Matrix is the playfield. M[y][x] holds the block locked at row y, column
// x. Width and height are fixed once the matrix is created.
type Matrix struct {
	W int // Width
	H int // Height

	M [][]Block
}

func NewMatrix(w int, h int) *Matrix {
	m := &Matrix{W: w, H: h, M: make([][]Block, h)}
	for y := range m.M {
		m.M[y] = make([]Block, w)
	}

	return m
}

// CanAddAt reports whether every set cell of s, placed with its top-left
// corner at loc, lands inside the matrix on an empty cell. It stops at the
// first violation.
//
// Rows are only bounded from below: nothing in the game ever moves a piece
// upwards, so loc.Y is never negative.
func (m *Matrix) CanAddAt(s Shape, loc Point) bool {
	var x, y int
	for i, row := range s {
		for j, set := range row {
			if !set {
				continue
			}

			x = loc.X + j
			y = loc.Y + i

			if y >= m.H || x >= m.W || x < 0 || m.M[y][x] != BlockNone {
				return false
			}
		}
	}

	return true
}

// Add writes b into every cell covered by s at loc. Callers validate the
// placement with CanAddAt first.
func (m *Matrix) Add(s Shape, b Block, loc Point) {
	for i, row := range s {
		for j, set := range row {
			if set {
				m.M[loc.Y+i][loc.X+j] = b
			}
		}
	}
}

func (m *Matrix) Empty(loc Point) bool {
	return m.M[loc.Y][loc.X] == BlockNone
}

func (m *Matrix) LineFilled(y int) bool {
	for x := 0; x < m.W; x++ {
		if m.Empty(Point{x, y}) {
			return false
		}
	}

	return true
}

// ClearFilled removes every filled row and inserts the same number of empty
// rows at the top. Surviving rows keep their order. It returns the number of
// rows removed.
func (m *Matrix) ClearFilled() int {
	kept := make([][]Block, 0, m.H)
	for y := 0; y < m.H; y++ {
		if !m.LineFilled(y) {
			kept = append(kept, m.M[y])
		}
	}

	cleared := m.H - len(kept)
	if cleared == 0 {
		return 0
	}

	newM := make([][]Block, 0, m.H)
	for i := 0; i < cleared; i++ {
		newM = append(newM, make([]Block, m.W))
	}
	m.M = append(newM, kept...)

	return cleared
}

func (m *Matrix) Block(x int, y int) Block {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return BlockNone
	}

	return m.M[y][x]
}

// SetBlock places a single block. It refuses cells that are out of bounds or
// already occupied.
func (m *Matrix) SetBlock(x int, y int, block Block) bool {
	if x < 0 || x >= m.W || y < 0 || y >= m.H {
		return false
	} else if m.M[y][x] != BlockNone {
		return false
	}

	m.M[y][x] = block
	return true
}

func (m *Matrix) Clear() {
	for y := range m.M {
		for x := range m.M[y] {
			m.M[y][x] = BlockNone
		}
	}
}

// Render returns the matrix as text, one line per row, with p drawn over
// the locked blocks when it is not nil.
func (m *Matrix) Render(p *Piece) string {
	var b strings.Builder

	for y := 0; y < m.H; y++ {
		for x := 0; x < m.W; x++ {
			if p != nil && p.HasPoint(Point{x, y}) {
				b.WriteRune(p.Solid.Rune())
				continue
			}

			b.WriteRune(m.M[y][x].Rune())
		}

		if y < m.H-1 {
			b.WriteRune('\n')
		}
	}

	return b.String()
}
