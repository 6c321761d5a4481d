package cutting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSolveDFSFindsExactDecomposition(t *testing.T) {
	demand := demandMap{lengthKey(1000): 4}
	patterns, err := generatePatterns(6000, demand, patternGenOptions{
		Kerf: 2, StartSafety: 0, EndSafety: 0, MaxPatterns: 50, DominanceFilter: true,
	})
	require.NoError(t, err)

	budget := lowerBound(demand, []float64{6000})
	sol, err := solveDFS(context.Background(), patterns, demand, budget, time.Second, 1000)
	require.NoError(t, err)
	require.NotNil(t, sol)

	produced := demandMap{}
	for _, u := range sol.Uses {
		for k, c := range u.Pattern.Items {
			produced[k] += c * u.Count
		}
	}
	require.Equal(t, demand[lengthKey(1000)], produced[lengthKey(1000)])
}

func TestSolveDFSReturnsSignalWhenInfeasibleAtBudget(t *testing.T) {
	demand := demandMap{lengthKey(1000): 4}
	patterns, err := generatePatterns(6000, demand, patternGenOptions{
		Kerf: 2, StartSafety: 0, EndSafety: 0, MaxPatterns: 50,
	})
	require.NoError(t, err)

	// Demand needs at least 1 bar; asking for 0 bars must fail.
	_, err = solveDFS(context.Background(), patterns, demand, 0, time.Second, 1000)
	require.Error(t, err)
}

func TestLexicographicSearchFindsMinimalBudget(t *testing.T) {
	demand := demandMap{lengthKey(918): 6}
	stockSet := []float64{3400, 6000}
	patterns, err := generatePatterns(6000, demand, patternGenOptions{
		Kerf: 3, StartSafety: 100, EndSafety: 100, MaxPatterns: 50, DominanceFilter: true,
	})
	require.NoError(t, err)

	sol, err := lexicographicSearch(context.Background(), patterns, demand, stockSet, 10, time.Second, 1000)
	require.NoError(t, err)
	require.NotNil(t, sol)

	bars := 0
	for _, u := range sol.Uses {
		bars += u.Count
	}
	require.Equal(t, 1, bars)
}
