package cutting

import "sort"

// materializeGreedyBins converts greedy-solver bins into Cuts,
// preserving each bin's insertion-ordered segments.
func materializeGreedyBins(bins []*greedyBin, c Constraints) []Cut {
	cuts := make([]Cut, 0, len(bins))
	for _, b := range bins {
		segs := make([]Segment, len(b.segments))
		for i, s := range b.segments {
			segs[i] = Segment{Length: s.length, Profile: s.profile, WorkOrderID: s.workOrderID}
		}
		cuts = append(cuts, materializeCut(b.stockLength, segs, c))
	}
	return cuts
}

// materializeFromPatternUses converts a pattern-usage solution into Cuts
//: for each (pattern, count) pair emit `count` Cuts, each
// carrying one Segment per item occurrence in pattern.Items, longest
// lengths first for determinism.
func materializeFromPatternUses(uses []patternUse, c Constraints) []Cut {
	var cuts []Cut
	for _, u := range uses {
		keys := make([]uint64, 0, len(u.Pattern.Items))
		for k := range u.Pattern.Items {
			keys = append(keys, k)
		}
		sort.Slice(keys, func(i, j int) bool { return lengthFromKey(keys[i]) > lengthFromKey(keys[j]) })

		var segs []Segment
		for _, k := range keys {
			length := lengthFromKey(k)
			for n := 0; n < u.Pattern.Items[k]; n++ {
				segs = append(segs, Segment{Length: length})
			}
		}

		for i := 0; i < u.Count; i++ {
			cloned := make([]Segment, len(segs))
			copy(cloned, segs)
			cuts = append(cuts, materializeCut(u.Pattern.StockLength, cloned, c))
		}
	}
	return cuts
}

// materializeCut assigns sequential positions starting at startSafety
// and computes every derived accounting field on the Cut.
func materializeCut(stockLength float64, segs []Segment, c Constraints) Cut {
	pos := c.StartSafety
	for i := range segs {
		segs[i].SeqIndex = i
		segs[i].Position = pos
		pos += segs[i].Length
		if i < len(segs)-1 {
			pos += c.KerfWidth
		}
	}

	n := len(segs)
	sumLengths := 0.0
	for _, s := range segs {
		sumLengths += s.Length
	}
	used := usedLength(n, sumLengths, c.KerfWidth, c.StartSafety, c.EndSafety)
	remaining := stockLength - used
	kerfLoss := 0.0
	if n >= 1 {
		kerfLoss = float64(n-1) * c.KerfWidth
	}

	cut := Cut{
		StockLength:     stockLength,
		Segments:        segs,
		SegmentCount:    n,
		UsedLength:      used,
		RemainingLength: remaining,
		KerfLoss:        kerfLoss,
		SafetyMargin:    c.StartSafety + c.EndSafety,
		WasteCategory:   classifyWaste(remaining),
		IsReclaimable:   isReclaimable(remaining, c.MinScrapLength),
		PlanLabel:       fingerprintPattern(stockLength, segmentsToItemCounts(segs)),
	}
	return cut
}

func segmentsToItemCounts(segs []Segment) map[uint64]int {
	m := make(map[uint64]int, len(segs))
	for _, s := range segs {
		m[lengthKey(s.Length)]++
	}
	return m
}

// validateDemandCoverage checks produced quantities against demand:
// shortage is fatal, overproduction within tolerance is tolerated silently,
// and overproduction beyond tolerance is also tolerated here (it is a
// warning, not a failure) but reported back so callers can log it.
func validateDemandCoverage(cuts []Cut, demand demandMap, tolerance int) (overproduced map[uint64]int, err error) {
	produced := demandMap{}
	for _, c := range cuts {
		for _, s := range c.Segments {
			produced[lengthKey(s.Length)]++
		}
	}

	overproduced = map[uint64]int{}
	for k, want := range demand {
		have := produced[k]
		if have < want {
			return nil, wrapError(KindDemandShortage, nil, "demand shortage for length %.4f: wanted %d, produced %d", lengthFromKey(k), want, have)
		}
		if have > want {
			over := have - want
			if tolerance <= 0 || over > tolerance {
				overproduced[k] = over
			}
		}
	}
	for k, have := range produced {
		if _, ok := demand[k]; !ok && have > 0 {
			return nil, wrapError(KindDemandShortage, nil, "produced undemanded length %.4f x%d", lengthFromKey(k), have)
		}
	}
	return overproduced, nil
}

// checkCutInvariants runs the accounting and placement consistency checks
// against one materialized Cut. A violation is an internal programmer
// error (wrapped as KindInvariantViolation), never a user-facing
// validation failure.
func checkCutInvariants(c Cut, constraints Constraints, tol float64) error {
	// 1: segment count matches len(Segments).
	if c.SegmentCount != len(c.Segments) {
		return newError(KindInvariantViolation, "segment count %d does not match %d placed segments", c.SegmentCount, len(c.Segments))
	}

	// 2: used + remaining == stock length within tolerance.
	if !validateAccounting(c.UsedLength, c.RemainingLength, c.StockLength, tol) {
		return newError(KindInvariantViolation, "accounting mismatch: used=%.6f remaining=%.6f stock=%.6f", c.UsedLength, c.RemainingLength, c.StockLength)
	}

	// 3: no segment extends past the usable region.
	usable := c.StockLength - constraints.EndSafety
	for _, s := range c.Segments {
		if s.EndPosition() > usable+tol {
			return newError(KindInvariantViolation, "segment at position %.4f (end %.4f) exceeds usable length %.4f", s.Position, s.EndPosition(), usable)
		}
	}

	// 4: first segment starts at startSafety, symmetric end-safety enforced
	//: the last segment must end at or before stockLength -
	// endSafety.
	if len(c.Segments) > 0 {
		if !approxEqual(c.Segments[0].Position, constraints.StartSafety, tol) {
			return newError(KindInvariantViolation, "first segment position %.4f does not match start safety %.4f", c.Segments[0].Position, constraints.StartSafety)
		}
		last := c.Segments[len(c.Segments)-1]
		if last.EndPosition() > c.StockLength-constraints.EndSafety+tol {
			return newError(KindInvariantViolation, "last segment end %.4f violates end safety margin", last.EndPosition())
		}
	}

	// 5: segments are in left-to-right order with at least one kerf gap
	// between adjacent pieces.
	for i := 1; i < len(c.Segments); i++ {
		prevEnd := c.Segments[i-1].EndPosition()
		if !approxLTE(prevEnd+constraints.KerfWidth, c.Segments[i].Position, tol) {
			return newError(KindInvariantViolation, "segment %d at position %.4f violates kerf spacing after segment %d ending %.4f", i, c.Segments[i].Position, i-1, prevEnd)
		}
	}

	// 6: reclaimability flag matches the minScrapLength threshold.
	if c.IsReclaimable != isReclaimable(c.RemainingLength, constraints.MinScrapLength) {
		return newError(KindInvariantViolation, "isReclaimable flag inconsistent with remaining length %.4f", c.RemainingLength)
	}

	return nil
}
