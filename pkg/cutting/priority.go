package cutting

import (
	"container/heap"
	"context"
	"time"
)

// priorityState is one node in the best-first search over pattern usage.
type priorityState struct {
	produced   demandMap
	bars       int
	waste      float64
	picks      []int // indices into the pattern slice, in application order
	priority   float64
	stateKey   string
	bestBars   int
	bestWaste  float64
	index      int // heap bookkeeping
}

// priorityOpenSet is a container/heap min-heap ordered by priorityState.priority.
type priorityOpenSet []*priorityState

func (s priorityOpenSet) Len() int            { return len(s) }
func (s priorityOpenSet) Less(i, j int) bool  { return s[i].priority < s[j].priority }
func (s priorityOpenSet) Swap(i, j int) {
	s[i], s[j] = s[j], s[i]
	s[i].index = i
	s[j].index = j
}
func (s *priorityOpenSet) Push(x interface{}) {
	st := x.(*priorityState)
	st.index = len(*s)
	*s = append(*s, st)
}
func (s *priorityOpenSet) Pop() interface{} {
	old := *s
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*s = old[:n-1]
	return item
}

// priorityResult is a successful exact (within tolerance) demand cover found
// by priority search.
type priorityResult struct {
	Picks []int
	Bars  int
	Waste float64
}

// priorityStateKey caps counts at 999 and hashes the sorted (length,count)
// pairs, for use as the dominance-pruning key.
func priorityStateKey(produced demandMap) string {
	capped := make(demandMap, len(produced))
	for k, c := range produced {
		if c > 999 {
			c = 999
		}
		capped[k] = c
	}
	return canonicalDemandKey(capped)
}

// bestPatternDensity returns the maximum piece count across all patterns,
// used as the heuristic's per-bar rate.
func bestPatternDensity(patterns []Pattern) int {
	best := 1
	for _, p := range patterns {
		if n := p.TotalCount(); n > best {
			best = n
		}
	}
	return best
}

func shortageOf(demand, produced demandMap) int {
	total := 0
	for k, want := range demand {
		have := produced[k]
		if want > have {
			total += want - have
		}
	}
	return total
}

func demandSatisfied(demand, produced demandMap, tolerance int) bool {
	for k, want := range demand {
		have := produced[k]
		if tolerance == 0 {
			if have != want {
				return false
			}
		} else {
			if have < want || have > want+tolerance {
				return false
			}
		}
	}
	// also guard against producing lengths not in demand at all
	for k, have := range produced {
		if _, ok := demand[k]; !ok && have > 0 {
			return false
		}
	}
	return true
}

// solvePriority runs a best-first search over the pattern set, seeking a
// decomposition satisfying demand within overProductionTolerance.
func solvePriority(ctx context.Context, patterns []Pattern, demand demandMap, maxStates int, timeout time.Duration, resortEvery int, wasteNormalization float64, overProductionTolerance int) (*priorityResult, error) {
	if maxStates <= 0 {
		maxStates = 5000
	}
	if resortEvery <= 0 {
		resortEvery = 10
	}
	if wasteNormalization <= 0 {
		wasteNormalization = 1
	}
	density := bestPatternDensity(patterns)

	start := &priorityState{produced: demandMap{}, bars: 0, waste: 0}
	start.priority = computePriority(demand, start.produced, start.bars, start.waste, density, wasteNormalization)
	start.stateKey = priorityStateKey(start.produced)

	open := &priorityOpenSet{start}
	heap.Init(open)

	visited := map[string]*priorityState{}
	visited[start.stateKey] = start

	deadline := time.Now().Add(timeout)
	statesExplored := 0
	sinceResort := 0

	for open.Len() > 0 {
		statesExplored++
		if statesExplored > maxStates {
			return nil, errNoFeasibleDecomposition
		}
		if timeout > 0 && time.Now().After(deadline) {
			return nil, errTimeout
		}
		select {
		case <-ctx.Done():
			return nil, errTimeout
		default:
		}

		cur := heap.Pop(open).(*priorityState)

		if demandSatisfied(demand, cur.produced, overProductionTolerance) {
			return &priorityResult{Picks: cur.picks, Bars: cur.bars, Waste: cur.waste}, nil
		}

		for i, p := range patterns {
			nextProduced := cloneDemand(cur.produced)
			for k, c := range p.Items {
				nextProduced[k] += c
			}
			key := priorityStateKey(nextProduced)
			nextBars := cur.bars + 1
			nextWaste := cur.waste + p.Waste

			if prior, ok := visited[key]; ok {
				if !(nextBars < prior.bestBars || (nextBars == prior.bestBars && nextWaste < prior.bestWaste)) {
					continue
				}
			}

			nextPicks := make([]int, len(cur.picks)+1)
			copy(nextPicks, cur.picks)
			nextPicks[len(cur.picks)] = i

			st := &priorityState{
				produced:  nextProduced,
				bars:      nextBars,
				waste:     nextWaste,
				picks:     nextPicks,
				stateKey:  key,
				bestBars:  nextBars,
				bestWaste: nextWaste,
			}
			st.priority = computePriority(demand, nextProduced, nextBars, nextWaste, density, wasteNormalization)
			visited[key] = st
			heap.Push(open, st)
		}

		sinceResort++
		if sinceResort >= resortEvery {
			heap.Init(open)
			sinceResort = 0
		}
	}

	return nil, errNoFeasibleDecomposition
}

// computePriority scores a search node: lower is explored first.
func computePriority(demand, produced demandMap, bars int, waste float64, density int, wasteNormalization float64) float64 {
	shortage := shortageOf(demand, produced)
	h := 0
	if shortage > 0 {
		h = (shortage + density - 1) / density
	}
	return 1000*float64(shortage) + 1000*(waste/wasteNormalization) + float64(bars) + float64(h)
}
