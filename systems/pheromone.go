package systems

import (
	"github.com/pthm-cable/burrow/components"
	"github.com/pthm-cable/burrow/config"
)

// PheromoneParams holds the bounds and decay rates of a pheromone field.
type PheromoneParams struct {
	Min, Max float64
	FastRate float64 // Multiplier for entries above Max/2
	SlowRate float64 // Multiplier for entries above Min
}

// PheromoneParamsFromConfig extracts field parameters from the config.
func PheromoneParamsFromConfig(cfg *config.Config) PheromoneParams {
	return PheromoneParams{
		Min:      cfg.Pheromone.Min,
		Max:      cfg.Pheromone.Max,
		FastRate: cfg.Pheromone.EvaporationFast,
		SlowRate: cfg.Pheromone.EvaporationSlow,
	}
}

// PheromoneField is a bounded scalar per tunnel link.
// Every entry stays within [Min, Max] after any operation.
type PheromoneField struct {
	lattice Lattice
	params  PheromoneParams
	values  []float64
}

// NewPheromoneField creates a field over the lattice with every entry at Min.
func NewPheromoneField(l Lattice, p PheromoneParams) *PheromoneField {
	pf := &PheromoneField{
		lattice: l,
		params:  p,
		values:  make([]float64, l.Size()),
	}
	for i := range pf.values {
		pf.values[i] = p.Min
	}
	return pf
}

// Params returns the field's bounds and rates.
func (pf *PheromoneField) Params() PheromoneParams { return pf.params }

// Lattice returns the coordinate mapper the field is laid out on.
func (pf *PheromoneField) Lattice() Lattice { return pf.lattice }

// Evaporate applies one tick of decay to every entry.
// Strong trails fade quickly, weak trails slowly, and nothing drops below Min.
func (pf *PheromoneField) Evaporate() {
	lo, hi := pf.params.Min, pf.params.Max
	half := hi / 2
	fast, slow := pf.params.FastRate, pf.params.SlowRate
	for i, v := range pf.values {
		switch {
		case v > half:
			v *= fast
		case v > lo:
			v *= slow
		default:
			v = lo
		}
		if v < lo {
			v = lo
		}
		pf.values[i] = v
	}
}

// Deposit adds amount to the link between a and b, clamped to the field bounds.
// Returns false without changing anything when a and b are not linked.
func (pf *PheromoneField) Deposit(a, b components.Cell, amount float64) bool {
	lc, ok := pf.lattice.Index(a, b)
	if !ok {
		return false
	}
	i := pf.lattice.Offset(lc)
	pf.values[i] = pf.clamp(pf.values[i] + amount)
	return true
}

// Read returns the pheromone on the link between a and b.
func (pf *PheromoneField) Read(a, b components.Cell) (float64, bool) {
	lc, ok := pf.lattice.Index(a, b)
	if !ok {
		return 0, false
	}
	return pf.values[pf.lattice.Offset(lc)], true
}

// At returns the raw lattice entry at lc, or Min outside the lattice.
func (pf *PheromoneField) At(lc LatticeCoord) float64 {
	if lc.X < 0 || lc.X >= pf.lattice.Width() || lc.Y < 0 || lc.Y >= pf.lattice.Height() {
		return pf.params.Min
	}
	return pf.values[pf.lattice.Offset(lc)]
}

// Values returns a copy of the lattice in row-major order.
func (pf *PheromoneField) Values() []float64 {
	out := make([]float64, len(pf.values))
	copy(out, pf.values)
	return out
}

// View returns the live lattice slice. Callers must not modify it.
func (pf *PheromoneField) View() []float64 { return pf.values }

func (pf *PheromoneField) clamp(v float64) float64 {
	if v < pf.params.Min {
		return pf.params.Min
	}
	if v > pf.params.Max {
		return pf.params.Max
	}
	return v
}
