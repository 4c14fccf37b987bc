package mino

import (
	"errors"
	"fmt"
	"strings"
)

// Shape is a rectangular occupancy mask indexed as Shape[row][col]. A shape
// carries no position.
type Shape [][]bool

const (
	ShapeT      = "XXX\n.X."
	ShapeSquare = "XX\nXX"
	ShapeLine   = "XXXX"
	ShapeZ      = ".XX\nXX."
	ShapeS      = "XX.\n.XX"
)

var catalog = [...]string{ShapeT, ShapeSquare, ShapeLine, ShapeZ, ShapeS}

// Catalog returns the playable shapes. Every call parses a fresh copy.
func Catalog() []Shape {
	shapes := make([]Shape, len(catalog))
	for i, s := range catalog {
		shapes[i] = MustParseShape(s)
	}

	return shapes
}

// ParseShape reads a mask written as rows separated by newlines, with X for
// a set cell and . for an empty one.
func ParseShape(s string) (Shape, error) {
	if s == "" {
		return nil, errors.New("empty shape")
	}

	rows := strings.Split(s, "\n")
	shape := make(Shape, len(rows))
	for i, row := range rows {
		if len(row) == 0 {
			return nil, fmt.Errorf("row %d is empty", i)
		} else if len(row) != len(rows[0]) {
			return nil, fmt.Errorf("row %d has width %d, expected %d", i, len(row), len(rows[0]))
		}

		shape[i] = make([]bool, len(row))
		for j, c := range row {
			switch c {
			case 'X':
				shape[i][j] = true
			case '.':
			default:
				return nil, fmt.Errorf("unexpected %q at row %d column %d", c, i, j)
			}
		}
	}

	return shape, nil
}

func MustParseShape(s string) Shape {
	shape, err := ParseShape(s)
	if err != nil {
		panic(fmt.Sprintf("failed to parse shape %q: %s", s, err))
	}

	return shape
}

func (s Shape) Height() int { return len(s) }

func (s Shape) Width() int {
	if len(s) == 0 {
		return 0
	}

	return len(s[0])
}

// Rotate returns the mask turned 90 degrees clockwise. An R x C mask becomes
// C x R with rotated[j][R-1-i] = s[i][j].
func (s Shape) Rotate() Shape {
	rows, cols := s.Height(), s.Width()

	rotated := make(Shape, cols)
	for j := range rotated {
		rotated[j] = make([]bool, rows)
	}

	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			rotated[j][rows-1-i] = s[i][j]
		}
	}

	return rotated
}

// Points returns the set cells of the mask relative to its top-left corner.
func (s Shape) Points() []Point {
	var points []Point
	for i, row := range s {
		for j, set := range row {
			if set {
				points = append(points, Point{j, i})
			}
		}
	}

	return points
}

func (s Shape) Equal(other Shape) bool {
	if s.Height() != other.Height() || s.Width() != other.Width() {
		return false
	}

	for i := range s {
		for j := range s[i] {
			if s[i][j] != other[i][j] {
				return false
			}
		}
	}

	return true
}

func (s Shape) String() string {
	var b strings.Builder
	for i, row := range s {
		if i > 0 {
			b.WriteRune('\n')
		}

		for _, set := range row {
			if set {
				b.WriteRune('X')
			} else {
				b.WriteRune('.')
			}
		}
	}

	return b.String()
}
