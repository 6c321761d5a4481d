package cutting

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLowerBoundCeilsOnLargestStock(t *testing.T) {
	demand := demandMap{lengthKey(918): 6}
	lb := lowerBound(demand, []float64{3400, 6000})
	require.Equal(t, 1, lb) // 918*6 = 5508 <= 6000
}

func TestLowerBoundMultipleBars(t *testing.T) {
	demand := demandMap{lengthKey(3000): 5}
	lb := lowerBound(demand, []float64{6000})
	require.Equal(t, 3, lb) // 15000 / 6000 = 2.5 -> 3
}

func TestCanSatisfyDemandDetectsInfeasibleLength(t *testing.T) {
	demand := demandMap{lengthKey(6500): 1}
	c := Constraints{KerfWidth: 3, StartSafety: 100, EndSafety: 100}
	ok := canSatisfyDemand(demand, []float64{3400, 6000}, c)
	require.False(t, ok)
}

func TestCanSatisfyDemandAllFit(t *testing.T) {
	demand := demandMap{lengthKey(918): 6, lengthKey(500): 2}
	c := Constraints{KerfWidth: 3, StartSafety: 100, EndSafety: 100}
	ok := canSatisfyDemand(demand, []float64{3400, 6000}, c)
	require.True(t, ok)
}
