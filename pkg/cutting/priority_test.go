package cutting

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSolvePriorityFindsExactCover(t *testing.T) {
	demand := demandMap{lengthKey(1000): 4}
	patterns, err := generatePatterns(6000, demand, patternGenOptions{
		Kerf: 2, MaxPatterns: 50, DominanceFilter: true,
	})
	require.NoError(t, err)

	res, err := solvePriority(context.Background(), patterns, demand, 5000, time.Second, 10, 600, 0)
	require.NoError(t, err)
	require.NotNil(t, res)

	produced := demandMap{}
	for _, idx := range res.Picks {
		for k, c := range patterns[idx].Items {
			produced[k] += c
		}
	}
	require.Equal(t, demand[lengthKey(1000)], produced[lengthKey(1000)])
}

func TestSolvePriorityRespectsOverProductionTolerance(t *testing.T) {
	demand := demandMap{lengthKey(1000): 3}
	patterns, err := generatePatterns(6000, demand, patternGenOptions{
		Kerf: 2, MaxPatterns: 50,
	})
	require.NoError(t, err)

	res, err := solvePriority(context.Background(), patterns, demand, 5000, time.Second, 10, 600, 2)
	require.NoError(t, err)
	require.NotNil(t, res)

	produced := 0
	for _, idx := range res.Picks {
		produced += patterns[idx].Items[lengthKey(1000)]
	}
	require.GreaterOrEqual(t, produced, 3)
	require.LessOrEqual(t, produced, 3+2)
}

func TestDemandSatisfiedStrictVsTolerant(t *testing.T) {
	demand := demandMap{lengthKey(500): 2}
	produced := demandMap{lengthKey(500): 3}

	require.False(t, demandSatisfied(demand, produced, 0))
	require.True(t, demandSatisfied(demand, produced, 1))
}

func TestShortageOfComputesUnmetDemand(t *testing.T) {
	demand := demandMap{lengthKey(500): 5}
	produced := demandMap{lengthKey(500): 2}
	require.Equal(t, 3, shortageOf(demand, produced))
}
