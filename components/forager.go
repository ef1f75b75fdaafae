package components

// ForagerState is the ant's behavioural state, derived from its flags.
type ForagerState uint8

const (
	StateExploring         ForagerState = iota // Searching for food, digging freely
	StateReturningWithFood                     // Walking home along tunnels with food
	StateReturningEmpty                        // Soil load full, backtracking home
)

func (s ForagerState) String() string {
	switch s {
	case StateExploring:
		return "exploring"
	case StateReturningWithFood:
		return "returning_with_food"
	case StateReturningEmpty:
		return "returning_empty"
	default:
		return "unknown"
	}
}

// Forager holds one ant's navigation memory.
// The fine position is kept in a separate Position component.
type Forager struct {
	Nest         Position   // Anchor the ant resets to
	Path         []Position // Backtrack stack, top is the most recent position
	Visited      VisitedSet
	Returning    bool
	CarryingFood bool
	SoilCarried  int
	Heading      float64 // Radians, only used for the bootstrap step
}

// NewForager creates an ant anchored at nest on a width x height cell grid.
func NewForager(nest Position, heading float64, width, height int) Forager {
	return Forager{
		Nest:    nest,
		Path:    make([]Position, 0, 64),
		Visited: NewVisitedSet(width, height),
		Heading: heading,
	}
}

// State derives the behavioural state from the flags.
func (f *Forager) State() ForagerState {
	switch {
	case f.CarryingFood:
		return StateReturningWithFood
	case f.Returning:
		return StateReturningEmpty
	default:
		return StateExploring
	}
}

// Push records a position on the backtrack stack.
func (f *Forager) Push(p Position) {
	f.Path = append(f.Path, p)
}

// Pop removes and returns the top of the backtrack stack.
func (f *Forager) Pop() (Position, bool) {
	n := len(f.Path)
	if n == 0 {
		return Position{}, false
	}
	p := f.Path[n-1]
	f.Path = f.Path[:n-1]
	return p, true
}

// ResetTrip clears the backtrack stack and the visited set together.
func (f *Forager) ResetTrip() {
	f.Path = f.Path[:0]
	f.Visited.Reset()
}

// ReturnHome puts the ant back at its nest anchor with a fresh trip.
func (f *Forager) ReturnHome(pos *Position) {
	*pos = f.Nest
	f.Returning = false
	f.CarryingFood = false
	f.SoilCarried = 0
	f.ResetTrip()
}

// VisitedSet is a per-ant boolean grid over tunnel cells.
// Cells are stamped with the current epoch; Reset starts a new epoch
// so clearing never touches the grid.
type VisitedSet struct {
	width, height int
	epoch         uint32
	stamps        []uint32
}

// NewVisitedSet allocates an empty set for a width x height grid.
func NewVisitedSet(width, height int) VisitedSet {
	return VisitedSet{
		width:  width,
		height: height,
		epoch:  1,
		stamps: make([]uint32, width*height),
	}
}

// Mark records c as visited. Out-of-grid cells are ignored.
func (v *VisitedSet) Mark(c Cell) {
	if i, ok := v.index(c); ok {
		v.stamps[i] = v.epoch
	}
}

// Has reports whether c was visited since the last Reset.
// Out-of-grid cells are never visited.
func (v *VisitedSet) Has(c Cell) bool {
	i, ok := v.index(c)
	return ok && v.stamps[i] == v.epoch
}

// Reset forgets every visited cell.
func (v *VisitedSet) Reset() {
	v.epoch++
	if v.epoch == 0 {
		clear(v.stamps)
		v.epoch = 1
	}
}

func (v *VisitedSet) index(c Cell) (int, bool) {
	if c.X < 0 || c.X >= v.width || c.Y < 0 || c.Y >= v.height {
		return 0, false
	}
	return c.Y*v.width + c.X, true
}
