package mino

import (
	"math/rand"
)

// Randomizer picks the shape and color of each new piece. Shapes are drawn
// with replacement from the catalog, so any shape may repeat.
type Randomizer struct {
	Seed   int64
	Shapes []Shape

	rand *rand.Rand
}

func NewRandomizer(seed int64) *Randomizer {
	return &Randomizer{
		Seed:   seed,
		Shapes: Catalog(),
		rand:   rand.New(rand.NewSource(seed)),
	}
}

// Take returns a copy of a random catalog shape and a random color identity.
// Both come from the same stream: shape first, then color.
func (r *Randomizer) Take() (Shape, Block) {
	s := r.Shapes[r.rand.Intn(len(r.Shapes))]

	shape := make(Shape, len(s))
	for i := range s {
		shape[i] = append([]bool(nil), s[i]...)
	}

	return shape, Block(r.rand.Intn(BlockColors) + 1)
}
