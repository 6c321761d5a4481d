package cutting

import "math"

// Tolerances used throughout the engine.
const (
	// accountingEqualityTolerance is the strict floating-point equality
	// tolerance used for exact accounting checks (e.g. pattern.used vs
	// usable length, DFS demand exhaustion).
	accountingEqualityTolerance = 1e-9
	// accountingPrecisionThreshold is the looser tolerance applied to
	// emitted Cut-level accounting (used+remaining vs stockLength).
	accountingPrecisionThreshold = 0.01
	// lengthResolution is the resolution at which two input lengths are
	// considered "the same demanded length" for map-keying purposes.
	lengthResolution = 1e-6
)

func float64Bits(f float64) uint64 { return math.Float64bits(f) }

// lengthFromKey recovers the canonical length value a lengthKey was derived
// from. Safe because lengthKey always stores the bit pattern of a value that
// has already passed through roundToTolerance.
func lengthFromKey(k uint64) float64 { return math.Float64frombits(k) }

// roundToTolerance snaps a length to the nearest multiple of lengthResolution
// so that lengths which differ only by floating point noise collapse to the
// same demand-map key.
func roundToTolerance(length float64) float64 {
	return math.Round(length/lengthResolution) * lengthResolution
}

func isFinitePositive(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

func isFiniteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) < tol
}

func approxLTE(a, b, tol float64) bool {
	return a <= b+tol
}

// buildDemandMap groups items by length into a length -> total quantity map.
func buildDemandMap(items []Item) demandMap {
	d := make(demandMap, len(items))
	for _, it := range items {
		d[lengthKey(it.Length)] += it.Quantity
	}
	return d
}

// demandTotal sums all counts in a demand map.
func demandTotal(d demandMap) int {
	total := 0
	for _, c := range d {
		total += c
	}
	return total
}

// cloneDemand returns an independent copy of a demand map.
func cloneDemand(d demandMap) demandMap {
	out := make(demandMap, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
