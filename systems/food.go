package systems

import "github.com/pthm-cable/burrow/components"

// FoodSource is a pile of food at a fine position.
type FoodSource struct {
	Position components.Position
	Amount   int
}

// FoodSources is the ordered set of active food sources.
// Order is insertion order and decides which source an ant finds first.
type FoodSources struct {
	sources []FoodSource
}

// NewFoodSources creates an empty set.
func NewFoodSources() *FoodSources {
	return &FoodSources{sources: make([]FoodSource, 0, 8)}
}

// Add appends a source.
func (fs *FoodSources) Add(pos components.Position, amount int) {
	fs.sources = append(fs.sources, FoodSource{Position: pos, Amount: amount})
}

// Prune removes depleted sources, keeping the order of the rest.
// Returns the number removed.
func (fs *FoodSources) Prune() int {
	kept := fs.sources[:0]
	for _, s := range fs.sources {
		if s.Amount > 0 {
			kept = append(kept, s)
		}
	}
	removed := len(fs.sources) - len(kept)
	clear(fs.sources[len(kept):])
	fs.sources = kept
	return removed
}

// Find returns the first source with food left whose cell lies within
// rangeCells (Manhattan) of cell, or nil. The pointer is valid until the
// next Add or Prune.
func (fs *FoodSources) Find(cell components.Cell, rangeCells, scale int) *FoodSource {
	for i := range fs.sources {
		s := &fs.sources[i]
		if s.Amount > 0 && s.Position.Cell(scale).Manhattan(cell) <= rangeCells {
			return s
		}
	}
	return nil
}

// Len returns the number of sources, depleted ones included until pruned.
func (fs *FoodSources) Len() int { return len(fs.sources) }

// Remaining returns the total food left across all sources.
func (fs *FoodSources) Remaining() int {
	total := 0
	for _, s := range fs.sources {
		total += s.Amount
	}
	return total
}

// All returns a copy of the sources in order.
func (fs *FoodSources) All() []FoodSource {
	out := make([]FoodSource, len(fs.sources))
	copy(out, fs.sources)
	return out
}
