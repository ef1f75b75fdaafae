// Package components defines ECS components for the simulation.
package components

// Position is a fine-grained world coordinate.
// Several fine positions share one tunnel cell; see Cell.
type Position struct {
	X, Y int
}

// Cell returns the tunnel cell containing p for the given fine-units-per-cell scale.
func (p Position) Cell(scale int) Cell {
	return Cell{X: p.X / scale, Y: p.Y / scale}
}

// Manhattan returns the fine-unit Manhattan distance between two positions.
func (p Position) Manhattan(o Position) int {
	return abs(p.X-o.X) + abs(p.Y-o.Y)
}

// Cell addresses one square of the tunnel grid.
type Cell struct {
	X, Y int
}

// Fine returns the fine position of the cell's origin.
func (c Cell) Fine(scale int) Position {
	return Position{X: c.X * scale, Y: c.Y * scale}
}

// Manhattan returns the cell-unit Manhattan distance between two cells.
func (c Cell) Manhattan(o Cell) int {
	return abs(c.X-o.X) + abs(c.Y-o.Y)
}

// TripStats accumulates per-ant counters across the whole run.
type TripStats struct {
	Trips        int32 // Completed returns to the nest
	Deliveries   int32 // Returns that dropped food
	CellsDug     int32
	Backtracks   int32
	Abandoned    int32 // Trips cut short by an exhausted backtrack stack
	LongestTrail int32 // Longest path (in positions) at the moment food was delivered
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
