package cutting

import "math"

// lowerBound returns a provably non-negative lower bound on the number of
// stock bars needed to satisfy demand, computed as
// ceil(sum(length*count) / maxStockLength).
func lowerBound(demand demandMap, stockSet []float64) int {
	if len(stockSet) == 0 {
		return 0
	}
	maxStock := 0.0
	for _, s := range stockSet {
		if s > maxStock {
			maxStock = s
		}
	}
	if maxStock <= 0 {
		return 0
	}

	total := 0.0
	for k, c := range demand {
		if c <= 0 {
			continue
		}
		total += lengthFromKey(k) * float64(c)
	}
	if total <= 0 {
		return 0
	}
	return int(math.Ceil(total / maxStock))
}

// canSatisfyDemand reports whether every demanded length fits on at least
// one stock length once safety margins are subtracted. A false
// result is surfaced by callers as an INFEASIBLE error.
func canSatisfyDemand(demand demandMap, stockSet []float64, constraints Constraints) bool {
	for k, c := range demand {
		if c <= 0 {
			continue
		}
		length := lengthFromKey(k)
		fits := false
		for _, s := range stockSet {
			if maxPiecesOnBar(length, s, constraints.KerfWidth, constraints.StartSafety, constraints.EndSafety) >= 1 {
				fits = true
				break
			}
		}
		if !fits {
			return false
		}
	}
	return true
}
