package cutting

import "sort"

// patternGenOptions configures pattern enumeration.
type patternGenOptions struct {
	Kerf                            float64
	StartSafety                     float64
	EndSafety                       float64
	MaxPatterns                     int
	MinUtilization                  float64
	DominanceFilter                 bool
	DominanceFilterMinUniqueLengths int
}

// lengthCount is one distinct demanded length and its available count,
// sorted descending by length before enumeration.
type lengthCount struct {
	key    uint64
	length float64
	count  int
}

// generatePatterns enumerates feasible, non-empty patterns for one stock
// length given a demand map, via depth-first enumeration over distinct item
// lengths with a dynamically computed per-level maximum. Returns (patterns, signal) where signal is errNoPatterns if
// nothing fit.
func generatePatterns(stockLength float64, demand demandMap, opts patternGenOptions) ([]Pattern, error) {
	if err := validateGeometryInputs(stockLength, opts.Kerf, opts.StartSafety, opts.EndSafety); err != nil {
		return nil, err
	}
	usable := stockLength - opts.StartSafety - opts.EndSafety
	if usable <= 0 {
		return nil, errNoPatterns
	}

	lengths := make([]lengthCount, 0, len(demand))
	for k, c := range demand {
		if c <= 0 {
			continue
		}
		lengths = append(lengths, lengthCount{key: k, length: lengthFromKey(k), count: c})
	}
	sort.Slice(lengths, func(i, j int) bool { return lengths[i].length > lengths[j].length })

	maxPatterns := opts.MaxPatterns
	if maxPatterns <= 0 {
		maxPatterns = 50
	}

	var out []Pattern
	current := make(map[uint64]int, len(lengths))

	var recurse func(i int, usedSoFar float64, countSoFar int) bool // returns true to stop (cap hit)
	recurse = func(i int, usedSoFar float64, countSoFar int) bool {
		if len(out) >= maxPatterns {
			return true
		}
		if i >= len(lengths) {
			if countSoFar >= 1 {
				items := make(map[uint64]int, len(current))
				for k, c := range current {
					if c > 0 {
						items[k] = c
					}
				}
				if len(items) > 0 {
					p := newPattern(stockLength, items, opts.Kerf, opts.StartSafety, opts.EndSafety)
					if p.Used <= usable+accountingEqualityTolerance {
						if opts.MinUtilization <= 0 || p.Utilization >= opts.MinUtilization {
							out = append(out, p)
						}
					}
				}
			}
			return len(out) >= maxPatterns
		}

		lc := lengths[i]
		remainingFree := usable - usedSoFar
		// Dynamic per-level bound: min(remaining demand, what
		// fits in the remaining free usable space).
		dynMax := lc.count
		spaceMax := int((remainingFree + opts.Kerf) / (lc.length + opts.Kerf))
		if spaceMax < dynMax {
			dynMax = spaceMax
		}
		if dynMax < 0 {
			dynMax = 0
		}

		for c := dynMax; c >= 0; c-- {
			current[lc.key] = c
			addedLen := lc.length * float64(c)
			addedKerf := kerfPortionFor(countSoFar, c, opts.Kerf)
			stop := recurse(i+1, usedSoFar+addedLen+addedKerf, countSoFar+c)
			delete(current, lc.key)
			if stop {
				return true
			}
		}
		return len(out) >= maxPatterns
	}

	recurse(0, 0, 0)

	if len(out) == 0 {
		return nil, errNoPatterns
	}

	if opts.DominanceFilter && len(lengths) >= opts.DominanceFilterMinUniqueLengths {
		out = filterDominated(out)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Utilization > out[j].Utilization })

	return out, nil
}

// kerfPortionFor returns the kerf length consumed by adding c pieces of one
// length after countSoFar pieces already exist: one gap per piece added,
// plus the gap between the prior group and this one if both are non-empty.
func kerfPortionFor(countSoFar, c int, kerf float64) float64 {
	if c <= 0 {
		return 0
	}
	gaps := c - 1
	if countSoFar > 0 {
		gaps++
	}
	if gaps < 0 {
		gaps = 0
	}
	return float64(gaps) * kerf
}

// filterDominated removes patterns dominated by another pattern of the same
// stock length.
func filterDominated(patterns []Pattern) []Pattern {
	keep := make([]bool, len(patterns))
	for i := range keep {
		keep[i] = true
	}
	for i := range patterns {
		if !keep[i] {
			continue
		}
		for j := range patterns {
			if i == j || !keep[j] {
				continue
			}
			if patterns[j].dominates(patterns[i]) {
				keep[i] = false
				break
			}
		}
	}
	out := make([]Pattern, 0, len(patterns))
	for i, p := range patterns {
		if keep[i] {
			out = append(out, p)
		}
	}
	return out
}

// estimatePatternComplexity returns the 2^uniqueLengths * totalDemand
// heuristic used to decide whether pattern generation is worth attempting
// at all.
func estimatePatternComplexity(demand demandMap) int64 {
	unique := 0
	total := 0
	for _, c := range demand {
		if c > 0 {
			unique++
			total += c
		}
	}
	if unique > 62 {
		return int64(1) << 62 // saturate rather than overflow
	}
	return (int64(1) << uint(unique)) * int64(total)
}
