package cutting

import (
	"context"
	"strconv"
	"time"
)

// patternUse is one (pattern, count) pair in a solution, in the order the
// solver discovered it.
type patternUse struct {
	Pattern Pattern
	Count   int
}

// dfsSolution is a complete decomposition of demand into exactly S bars.
type dfsSolution struct {
	Uses       []patternUse
	TotalWaste float64
}

// dfsSolver runs the exact DFS + memoization search for one fixed stock
// budget S.
type dfsSolver struct {
	patterns      []Pattern
	progressEvery int
	// failedStates memoizes (demand key, exact remaining budget) pairs whose
	// subtree produced no new best solution (infeasible ones, and feasible
	// ones that did not lower the best waste so far); they are not searched
	// again. An exact-cover partition into R parts is not monotonic in R, so
	// the budget is part of the memo key, not a bound.
	failedStates map[string]bool
	iterations   int
	best         *dfsSolution
	bestWaste    float64
}

// solveDFS searches for a combination of pattern uses summing exactly to
// demand at exactly budget bars. It returns the best (lowest-waste) complete
// solution discovered before timeout/ctx cancellation, or a signal error
// (errNoFeasibleDecomposition or errTimeout) if none was found.
func solveDFS(ctx context.Context, patterns []Pattern, demand demandMap, budget int, timeout time.Duration, progressEvery int) (*dfsSolution, error) {
	if progressEvery <= 0 {
		progressEvery = 10000
	}
	s := &dfsSolver{
		patterns:      patterns,
		progressEvery: progressEvery,
		failedStates:  make(map[string]bool),
	}

	deadline := time.Now().Add(timeout)
	var timedOut bool

	var recurse func(d demandMap, remaining int, uses []patternUse, wasteAcc float64) bool
	recurse = func(d demandMap, remaining int, uses []patternUse, wasteAcc float64) bool {
		s.iterations++
		if s.iterations%s.progressEvery == 0 {
			select {
			case <-ctx.Done():
				timedOut = true
				return true
			default:
			}
			if timeout > 0 && time.Now().After(deadline) {
				timedOut = true
				return true
			}
		}

		if demandTotal(d) == 0 {
			if remaining == 0 {
				if s.best == nil || wasteAcc < s.bestWaste {
					solved := make([]patternUse, len(uses))
					copy(solved, uses)
					s.best = &dfsSolution{Uses: solved, TotalWaste: wasteAcc}
					s.bestWaste = wasteAcc
				}
			}
			return false
		}
		if remaining <= 0 {
			return false
		}

		key := canonicalDemandKey(d) + "@" + strconv.Itoa(remaining)
		if s.failedStates[key] {
			return false
		}

		foundHere := false
		bestBefore := s.best
		for _, p := range s.patterns {
			if !patternFitsDemand(p, d) {
				continue
			}
			next := cloneDemand(d)
			for k, c := range p.Items {
				next[k] -= c
			}
			uses = append(uses, patternUse{Pattern: p, Count: 1})
			stop := recurse(next, remaining-1, uses, wasteAcc+p.Waste)
			uses = uses[:len(uses)-1]
			if stop {
				return true
			}
		}
		foundHere = s.best != nil && s.best != bestBefore

		if !foundHere && s.best == bestBefore {
			s.failedStates[key] = true
		}
		return false
	}

	recurse(cloneDemand(demand), budget, nil, 0)

	if s.best != nil {
		return s.best, nil
	}
	if timedOut {
		return nil, errTimeout
	}
	return nil, errNoFeasibleDecomposition
}

// patternFitsDemand reports whether every item in p.Items is <= the
// remaining demand for that length.
func patternFitsDemand(p Pattern, demand demandMap) bool {
	for k, c := range p.Items {
		if demand[k] < c {
			return false
		}
	}
	return true
}

// lexicographicSearch is the Pattern-Exact driver: tries
// S = lowerBound(demand, stockSet) .. +searchRange, running solveDFS with a
// per-S timeout, returning the first success.
func lexicographicSearch(ctx context.Context, patterns []Pattern, demand demandMap, stockSet []float64, searchRange int, perBudgetTimeout time.Duration, progressEvery int) (*dfsSolution, error) {
	start := lowerBound(demand, stockSet)
	if searchRange <= 0 {
		searchRange = 10
	}

	var lastErr error = errNoFeasibleDecomposition
	for budget := start; budget <= start+searchRange; budget++ {
		sol, err := solveDFS(ctx, patterns, demand, budget, perBudgetTimeout, progressEvery)
		if err == nil {
			return sol, nil
		}
		lastErr = err
		select {
		case <-ctx.Done():
			return nil, errTimeout
		default:
		}
	}
	return nil, lastErr
}
