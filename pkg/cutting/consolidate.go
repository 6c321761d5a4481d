package cutting

// consolidate is the iterative bin-emptying improvement pass: repeatedly
// look for a Cut whose every segment can be redistributed into the other
// Cuts without exceeding their stock length, and if found, empty and drop
// that Cut.
func consolidate(cuts []Cut, c Constraints, maxIterations int) []Cut {
	if maxIterations <= 0 || len(cuts) < 2 {
		return cuts
	}

	current := make([]Cut, len(cuts))
	copy(current, cuts)

	for iter := 0; iter < maxIterations; iter++ {
		improved := false

		for i := range current {
			segs := current[i].Segments
			if len(segs) == 0 {
				continue
			}

			virtualCount := make([]int, len(current))
			virtualSum := make([]float64, len(current))
			for k, cut := range current {
				virtualCount[k] = len(cut.Segments)
				for _, s := range cut.Segments {
					virtualSum[k] += s.Length
				}
			}

			placements := make([]int, len(segs))
			canRedistribute := true
			for j, seg := range segs {
				placed := false
				for k := range current {
					if k == i {
						continue
					}
					newUsed := usedLength(virtualCount[k]+1, virtualSum[k]+seg.Length, c.KerfWidth, c.StartSafety, c.EndSafety)
					if newUsed <= current[k].StockLength+accountingPrecisionThreshold {
						virtualCount[k]++
						virtualSum[k] += seg.Length
						placements[j] = k
						placed = true
						break
					}
				}
				if !placed {
					canRedistribute = false
					break
				}
			}

			if !canRedistribute {
				continue
			}

			additions := make(map[int][]Segment, len(current))
			for j, seg := range segs {
				k := placements[j]
				additions[k] = append(additions[k], Segment{Length: seg.Length, Profile: seg.Profile, WorkOrderID: seg.WorkOrderID})
			}
			for k, add := range additions {
				merged := append(stripPositions(current[k].Segments), add...)
				current[k] = materializeCut(current[k].StockLength, merged, c)
			}

			current = append(current[:i], current[i+1:]...)
			improved = true
			break
		}

		if !improved {
			break
		}
	}

	return current
}

func stripPositions(segs []Segment) []Segment {
	out := make([]Segment, len(segs))
	for i, s := range segs {
		out[i] = Segment{Length: s.Length, Profile: s.Profile, WorkOrderID: s.WorkOrderID}
	}
	return out
}
