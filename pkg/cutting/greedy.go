package cutting

import "sort"

// greedySegment is one placed item occurrence inside a greedy bin, kept in
// insertion (left-to-right) order.
type greedySegment struct {
	length      float64
	profile     string
	workOrderID string
}

// greedyBin is an in-progress Cut being built by FFD/BFD: a stock length
// with the segments placed on it so far, tracked in millimetres across a
// mixed set of available stock lengths.
type greedyBin struct {
	stockLength float64
	segments    []greedySegment
}

func (b *greedyBin) count() int { return len(b.segments) }

func (b *greedyBin) usedLength(kerf, startSafety, endSafety float64) float64 {
	sum := 0.0
	for _, s := range b.segments {
		sum += s.length
	}
	return usedLength(len(b.segments), sum, kerf, startSafety, endSafety)
}

func (b *greedyBin) remaining(kerf, startSafety, endSafety float64) float64 {
	return b.stockLength - b.usedLength(kerf, startSafety, endSafety)
}

// capacityFor returns how many more pieces of itemLength fit in the bin's
// remaining space, accounting for the leading kerf gap already owed to
// whatever is placed so far.
func (b *greedyBin) capacityFor(itemLength, kerf, startSafety, endSafety float64) int {
	if itemLength <= 0 {
		return 0
	}
	remaining := b.remaining(kerf, startSafety, endSafety)
	lead := kerfNeeded(b.count(), kerf)
	avail := remaining - lead
	if avail <= 0 {
		return 0
	}
	n := int((avail + kerf) / (itemLength + kerf))
	if n < 0 {
		return 0
	}
	return n
}

func (b *greedyBin) place(length float64, count int, profile, workOrderID string) {
	for i := 0; i < count; i++ {
		b.segments = append(b.segments, greedySegment{length: length, profile: profile, workOrderID: workOrderID})
	}
}

// pendingGroup tracks the remaining demand of one input Item (its length,
// profile and work order) across the greedy main loop. Items with equal
// fields are not merged.
type pendingGroup struct {
	length      float64
	profile     string
	workOrderID string
	remaining   int
}

// expandPendingGroups makes one pending group per item, sorted by length descending for the main loop.
func expandPendingGroups(items []Item) []*pendingGroup {
	groups := make([]*pendingGroup, 0, len(items))
	for _, it := range items {
		length := it.Length
		if length < 1 {
			length = 1
		}
		qty := it.Quantity
		if qty < 1 {
			qty = 1
		}
		groups = append(groups, &pendingGroup{
			length:      length,
			profile:     it.Profile,
			workOrderID: it.WorkOrderID,
			remaining:   qty,
		})
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].length > groups[j].length })
	return groups
}

// groupOccupancy computes per-stock-length average occupancy ratio, used by
// FFD's "least-occupied group" new-bin rule.
func groupOccupancy(bins []*greedyBin, kerf, startSafety, endSafety float64) map[float64]float64 {
	sums := map[float64]float64{}
	counts := map[float64]int{}
	for _, b := range bins {
		util := 0.0
		if b.stockLength > 0 {
			util = b.usedLength(kerf, startSafety, endSafety) / b.stockLength
		}
		sums[b.stockLength] += util
		counts[b.stockLength]++
	}
	out := map[float64]float64{}
	for s, sum := range sums {
		out[s] = sum / float64(counts[s])
	}
	return out
}

// chooseNewBinStockLength implements new-cut rule: if all
// groups have equal occupancy, use selectBestStockLengthForItem; otherwise
// pick the least-occupied group's stock length.
func chooseNewBinStockLength(length float64, bins []*greedyBin, stockSet []float64, kerf, startSafety, endSafety float64) float64 {
	occ := groupOccupancy(bins, kerf, startSafety, endSafety)
	if len(occ) == 0 {
		return selectBestStockLengthForItem(length, stockSet, kerf, startSafety, endSafety)
	}

	allEqual := true
	var first float64
	firstSet := false
	for _, s := range stockSet {
		v, ok := occ[s]
		if !ok {
			v = 0
		}
		if !firstSet {
			first = v
			firstSet = true
			continue
		}
		if !approxEqual(v, first, 1e-9) {
			allEqual = false
			break
		}
	}
	if allEqual {
		return selectBestStockLengthForItem(length, stockSet, kerf, startSafety, endSafety)
	}

	leastOccupied := stockSet[0]
	bestOcc := occ[leastOccupied]
	for _, s := range stockSet {
		v := occ[s]
		if v < bestOcc {
			bestOcc = v
			leastOccupied = s
		}
	}
	return leastOccupied
}

// fillRemainingSpace is the opportunistic space-filling pass: after a bin is
// finalized, scan the still-pending groups smallest first and stuff in
// whatever still fits, shrinking their remaining count.
func fillRemainingSpace(bin *greedyBin, pending []*pendingGroup, skip *pendingGroup, kerf, startSafety, endSafety float64) {
	ordered := make([]*pendingGroup, 0, len(pending))
	for _, g := range pending {
		if g == skip || g.remaining <= 0 {
			continue
		}
		ordered = append(ordered, g)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].length < ordered[j].length })

	for _, g := range ordered {
		if g.remaining <= 0 {
			continue
		}
		n := bin.capacityFor(g.length, kerf, startSafety, endSafety)
		if n <= 0 {
			continue
		}
		if n > g.remaining {
			n = g.remaining
		}
		bin.place(g.length, n, g.profile, g.workOrderID)
		g.remaining -= n
	}
}
