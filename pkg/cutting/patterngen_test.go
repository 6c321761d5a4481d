package cutting

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratePatternsBasicFit(t *testing.T) {
	demand := demandMap{
		lengthKey(918): 6,
	}
	opts := patternGenOptions{
		Kerf:            3,
		StartSafety:     100,
		EndSafety:       100,
		MaxPatterns:     50,
		MinUtilization:  0,
		DominanceFilter: true,
	}

	patterns, err := generatePatterns(6000, demand, opts)
	require.NoError(t, err)
	require.NotEmpty(t, patterns)

	best := patterns[0]
	require.Equal(t, 6, best.TotalCount())
	require.InDelta(t, 6000.0, best.StockLength, accountingEqualityTolerance)
}

func TestGeneratePatternsNoFitReturnsSignal(t *testing.T) {
	demand := demandMap{
		lengthKey(5000): 1,
	}
	opts := patternGenOptions{Kerf: 3, StartSafety: 100, EndSafety: 100, MaxPatterns: 10}

	_, err := generatePatterns(3400, demand, opts)
	require.ErrorIs(t, err, errNoPatterns)
}

func TestGeneratePatternsRespectsMaxPatternsCap(t *testing.T) {
	demand := demandMap{
		lengthKey(100): 20,
		lengthKey(150): 20,
		lengthKey(200): 20,
	}
	opts := patternGenOptions{Kerf: 2, StartSafety: 10, EndSafety: 10, MaxPatterns: 5}

	patterns, err := generatePatterns(2000, demand, opts)
	require.NoError(t, err)
	require.LessOrEqual(t, len(patterns), 5)
}

func TestGeneratePatternsDominanceFilterRemovesDominated(t *testing.T) {
	demand := demandMap{
		lengthKey(500): 4,
	}
	optsFiltered := patternGenOptions{
		Kerf: 2, StartSafety: 0, EndSafety: 0, MaxPatterns: 50,
		DominanceFilter: true, DominanceFilterMinUniqueLengths: 0,
	}
	filtered, err := generatePatterns(2100, demand, optsFiltered)
	require.NoError(t, err)

	optsUnfiltered := optsFiltered
	optsUnfiltered.DominanceFilter = false
	unfiltered, err := generatePatterns(2100, demand, optsUnfiltered)
	require.NoError(t, err)

	require.LessOrEqual(t, len(filtered), len(unfiltered))
}

func TestEstimatePatternComplexityGrowsWithUniqueLengths(t *testing.T) {
	small := demandMap{lengthKey(100): 5}
	large := demandMap{lengthKey(100): 5, lengthKey(200): 5, lengthKey(300): 5}

	require.Less(t, estimatePatternComplexity(small), estimatePatternComplexity(large))
}
