package systems

import "github.com/pthm-cable/burrow/components"

// LatticeCoord addresses one entry of the pheromone lattice.
// Even rows hold horizontal links, odd rows hold vertical links.
type LatticeCoord struct {
	X, Y int
}

// Lattice maps between pairs of adjacent tunnel cells and the
// W x 2H pheromone lattice built over a W x H cell grid.
//
// Vertical link (x,y)-(x,y+1) lives at (x, 2y+1).
// Horizontal link (x-1,y)-(x,y) lives at (x, 2y), so column 0 of an
// even row is never a link.
type Lattice struct {
	W, H int // Cell grid dimensions
}

// NewLattice creates the mapper for a w x h cell grid.
func NewLattice(w, h int) Lattice {
	return Lattice{W: w, H: h}
}

// Width returns the lattice width.
func (l Lattice) Width() int { return l.W }

// Height returns the lattice height (twice the cell grid height).
func (l Lattice) Height() int { return 2 * l.H }

// Size returns the number of lattice entries.
func (l Lattice) Size() int { return l.W * 2 * l.H }

// Contains reports whether c lies inside the cell grid.
func (l Lattice) Contains(c components.Cell) bool {
	return c.X >= 0 && c.X < l.W && c.Y >= 0 && c.Y < l.H
}

// Index returns the lattice coordinate of the link between a and b.
// ok is false unless both cells are in the grid and are axis-aligned neighbours.
// The result does not depend on argument order.
func (l Lattice) Index(a, b components.Cell) (LatticeCoord, bool) {
	if !l.Contains(a) || !l.Contains(b) {
		return LatticeCoord{}, false
	}
	switch {
	case a.X == b.X && (a.Y-b.Y == 1 || b.Y-a.Y == 1):
		return LatticeCoord{X: a.X, Y: a.Y + b.Y}, true
	case a.Y == b.Y && (a.X-b.X == 1 || b.X-a.X == 1):
		return LatticeCoord{X: max(a.X, b.X), Y: 2 * a.Y}, true
	default:
		return LatticeCoord{}, false
	}
}

// Link returns the two cells joined by the lattice entry at lc.
// ok is false for coordinates outside the lattice and for entries that
// do not correspond to a link inside the grid.
func (l Lattice) Link(lc LatticeCoord) (a, b components.Cell, ok bool) {
	if lc.X < 0 || lc.X >= l.W || lc.Y < 0 || lc.Y >= 2*l.H {
		return a, b, false
	}
	y := lc.Y / 2
	if lc.Y%2 == 0 {
		if lc.X == 0 {
			return a, b, false
		}
		return components.Cell{X: lc.X - 1, Y: y}, components.Cell{X: lc.X, Y: y}, true
	}
	if y+1 >= l.H {
		return a, b, false
	}
	return components.Cell{X: lc.X, Y: y}, components.Cell{X: lc.X, Y: y + 1}, true
}

// Offset returns the flat row-major index of lc.
func (l Lattice) Offset(lc LatticeCoord) int {
	return lc.Y*l.W + lc.X
}
