package cutting

// solveFFD places items first-fit-decreasing: scan existing bins (all stock
// lengths) in insertion order, placing in the first that fits; open a new
// bin via chooseNewBinStockLength if none does.
func solveFFD(items []Item, stockSet []float64, c Constraints) []*greedyBin {
	groups := expandPendingGroups(items)
	var bins []*greedyBin

	for _, g := range groups {
		for g.remaining > 0 {
			placed := false
			for _, b := range bins {
				n := b.capacityFor(g.length, c.KerfWidth, c.StartSafety, c.EndSafety)
				if n <= 0 {
					continue
				}
				if n > g.remaining {
					n = g.remaining
				}
				b.place(g.length, n, g.profile, g.workOrderID)
				g.remaining -= n
				placed = true
				break
			}
			if placed {
				continue
			}

			stockLength := chooseNewBinStockLength(g.length, bins, stockSet, c.KerfWidth, c.StartSafety, c.EndSafety)
			b := &greedyBin{stockLength: stockLength}
			n := b.capacityFor(g.length, c.KerfWidth, c.StartSafety, c.EndSafety)
			if n <= 0 {
				n = 1 // a single item must always fit on the largest usable stock (feasibility already checked upstream)
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
