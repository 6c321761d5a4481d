package cutting

// Category thresholds in mm: R<50 MINIMAL, R<100 SMALL,
// R<200 MEDIUM, R<500 LARGE, else EXCESSIVE.
const (
	wasteMinimalThreshold = 50.0
	wasteSmallThreshold   = 100.0
	wasteMediumThreshold  = 200.0
	wasteLargeThreshold   = 500.0
)

// classifyWaste buckets a remaining length into a WasteCategory.
func classifyWaste(remaining float64) WasteCategory {
	switch {
	case remaining < wasteMinimalThreshold:
		return WasteMinimal
	case remaining < wasteSmallThreshold:
		return WasteSmall
	case remaining < wasteMediumThreshold:
		return WasteMedium
	case remaining < wasteLargeThreshold:
		return WasteLarge
	default:
		return WasteExcessive
	}
}

// isReclaimable reports whether a remainder clears the minimum reclaimable
// scrap threshold.
func isReclaimable(remaining, minScrapLength float64) bool {
	return remaining >= minScrapLength
}

// WasteAnalysis is the detailed waste breakdown emitted alongside
// OptimizationResult.WasteDistribution.
type WasteAnalysis struct {
	Distribution       WasteDistribution
	TotalWaste         float64
	AverageWastePerCut float64
	ExcessiveCutIndices []int
}

// analyzeWaste computes category counts, reclaimability, and totals across a
// Cut set, plus the indices of cuts whose waste exceeds excessivePercentage
// of their own stock length.
func analyzeWaste(cuts []Cut, minScrapLength float64, excessivePercentage float64) WasteAnalysis {
	var dist WasteDistribution
	var total float64
	var excessiveIdx []int

	for i, c := range cuts {
		cat := classifyWaste(c.RemainingLength)
		switch cat {
		case WasteMinimal:
			dist.MinimalCount++
		case WasteSmall:
			dist.SmallCount++
		case WasteMedium:
			dist.MediumCount++
		case WasteLarge:
			dist.LargeCount++
		default:
			dist.ExcessiveCount++
		}
		if isReclaimable(c.RemainingLength, minScrapLength) {
			dist.ReclaimableCount++
		}
		total += c.RemainingLength

		if excessivePercentage > 0 && c.StockLength > 0 {
			if c.RemainingLength/c.StockLength*100 > excessivePercentage {
				excessiveIdx = append(excessiveIdx, i)
			}
		}
	}

	avg := 0.0
	if len(cuts) > 0 {
		avg = total / float64(len(cuts))
	}
	dist.AverageWaste = avg

	return WasteAnalysis{
		Distribution:        dist,
		TotalWaste:          total,
		AverageWastePerCut:  avg,
		ExcessiveCutIndices: excessiveIdx,
	}
}
