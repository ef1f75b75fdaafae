package systems

import "math"

// Uniform is a source of uniform samples in [0, 1).
// *math/rand.Rand satisfies it; tests script their own.
type Uniform interface {
	Float64() float64
}

// Desirability scores a move from its link pheromone and terrain heuristic.
func Desirability(pheromone, heuristic, pheromoneExp, heuristicExp float64) float64 {
	return math.Pow(pheromone, pheromoneExp) * math.Pow(heuristic, heuristicExp)
}

// Roulette picks an index with probability proportional to its weight
// using one sample from u.
//
// ok is false when the weights do not form a distribution (empty, all
// zero, negative, or non-finite sum); u is not consumed in that case.
// If rounding leaves the cumulative sum short of the sample, the last
// index is returned.
func Roulette(weights []float64, u Uniform) (int, bool) {
	total := 0.0
	for _, w := range weights {
		if w < 0 || math.IsNaN(w) {
			return 0, false
		}
		total += w
	}
	if len(weights) == 0 || total <= 0 || math.IsInf(total, 0) {
		return 0, false
	}

	sample := u.Float64()
	cumulative := 0.0
	for i, w := range weights {
		cumulative += w / total
		if cumulative >= sample {
			return i, true
		}
	}
	return len(weights) - 1, true
}
