package mino

import (
	"fmt"
)

// Piece is the falling piece: a shape placed with its top-left corner at
// Point, drawn in Solid.
type Piece struct {
	Point
	Shape
	Solid Block
}

func NewPiece(s Shape, b Block, loc Point) *Piece {
	return &Piece{Shape: s, Solid: b, Point: loc}
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s@%s", p.Solid, p.Point)
}

// Rotate returns the shape the piece would have after one clockwise turn.
// The piece itself is left untouched.
func (p *Piece) Rotate() Shape {
	return p.Shape.Rotate()
}

func (p *Piece) SetLocation(x int, y int) {
	p.X = x
	p.Y = y
}

// HasPoint reports whether the piece covers the matrix cell at loc.
func (p *Piece) HasPoint(loc Point) bool {
	y, x := loc.Y-p.Y, loc.X-p.X
	if y < 0 || y >= p.Height() || x < 0 || x >= p.Width() {
		return false
	}

	return p.Shape[y][x]
}
