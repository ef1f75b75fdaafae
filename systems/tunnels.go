package systems

import "github.com/pthm-cable/burrow/components"

// TunnelMap records which cells have been dug.
type TunnelMap struct {
	W, H int
	dug  []bool
	n    int
}

// NewTunnelMap creates an undug w x h grid.
func NewTunnelMap(w, h int) *TunnelMap {
	return &TunnelMap{W: w, H: h, dug: make([]bool, w*h)}
}

// IsDug reports whether c is dug. Cells outside the grid are solid.
func (tm *TunnelMap) IsDug(c components.Cell) bool {
	if c.X < 0 || c.X >= tm.W || c.Y < 0 || c.Y >= tm.H {
		return false
	}
	return tm.dug[c.Y*tm.W+c.X]
}

// Dig marks c as dug. Returns true only if c was undug and inside the grid.
func (tm *TunnelMap) Dig(c components.Cell) bool {
	if c.X < 0 || c.X >= tm.W || c.Y < 0 || c.Y >= tm.H {
		return false
	}
	i := c.Y*tm.W + c.X
	if tm.dug[i] {
		return false
	}
	tm.dug[i] = true
	tm.n++
	return true
}

// Count returns the number of dug cells.
func (tm *TunnelMap) Count() int { return tm.n }

// Values returns a copy of the grid in row-major order.
func (tm *TunnelMap) Values() []bool {
	out := make([]bool, len(tm.dug))
	copy(out, tm.dug)
	return out
}
