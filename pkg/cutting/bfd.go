package cutting

// solveBFD places items best-fit-decreasing: scan every open bin, track the
// minimum adjusted waste, and break ties with a look-ahead
// future-opportunity score before opening a new bin.
func solveBFD(items []Item, stockSet []float64, c Constraints, cfg Config) []*greedyBin {
	groups := expandPendingGroups(items)
	var bins []*greedyBin

	fragmentPenalty := cfg.FragmentPenaltyFactor
	if fragmentPenalty <= 0 {
		fragmentPenalty = 0.8
	}
	lookAhead := cfg.LookAheadDepth
	if lookAhead <= 0 {
		lookAhead = 3
	}

	for gi, g := range groups {
		for g.remaining > 0 {
			bestIdx := -1
			bestAdjWaste := 0.0
			bestFuture := -1.0

			for i, b := range bins {
				n := b.capacityFor(g.length, c.KerfWidth, c.StartSafety, c.EndSafety)
				if n <= 0 {
					continue
				}
				lead := kerfNeeded(b.count(), c.KerfWidth)
				w := b.remaining(c.KerfWidth, c.StartSafety, c.EndSafety) - lead - g.length

				adjWaste := w
				if w > 0 && w < c.MinScrapLength {
					adjWaste = w / fragmentPenalty
				}

				future := futureOpportunityScore(groups, gi, lookAhead, w, c.KerfWidth)

				switch {
				case bestIdx == -1:
					bestIdx, bestAdjWaste, bestFuture = i, adjWaste, future
				case adjWaste < bestAdjWaste-0.01:
					bestIdx, bestAdjWaste, bestFuture = i, adjWaste, future
				case adjWaste <= bestAdjWaste+0.01 && future > bestFuture:
					bestIdx, bestAdjWaste, bestFuture = i, adjWaste, future
				}
			}

			if bestIdx >= 0 {
				b := bins[bestIdx]
				n := b.capacityFor(g.length, c.KerfWidth, c.StartSafety, c.EndSafety)
				if n > g.remaining {
					n = g.remaining
				}
				b.place(g.length, n, g.profile, g.workOrderID)
				g.remaining -= n
				continue
			}

			stockLength := selectBestStockLengthForItem(g.length, stockSet, c.KerfWidth, c.StartSafety, c.EndSafety)
			b := &greedyBin{stockLength: stockLength}
			n := b.capacityFor(g.length, c.KerfWidth, c.StartSafety, c.EndSafety)
			if n <= 0 {
				n = 1
			}
			if n > g.remaining {
				n = g.remaining
			}
			b.place(g.length, n, g.profile, g.workOrderID)
			g.remaining -= n
			bins = append(bins, b)

			fillRemainingSpace(b, groups, g, c.KerfWidth, c.StartSafety, c.EndSafety)
		}
	}

	return bins
}

// futureOpportunityScore is the fraction of the next lookAhead pending
// groups (by processing order) whose length + kerf would still fit in a
// waste pocket of size w.
func futureOpportunityScore(groups []*pendingGroup, from int, lookAhead int, w float64, kerf float64) float64 {
	if w <= 0 {
		return 0
	}
	n := 0
	fits := 0
	for i := from + 1; i < len(groups) && n < lookAhead; i++ {
		if groups[i].remaining <= 0 {
			continue
		}
		n++
		if groups[i].length+kerf <= w {
			fits++
		}
	}
	if n == 0 {
		return 0
	}
	return float64(fits) / float64(n)
}
