package cutting

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSolveFFDCoversAllDemand(t *testing.T) {
	items := []Item{
		{Length: 918, Quantity: 6},
		{Length: 500, Quantity: 3},
	}
	c := Constraints{KerfWidth: 3, StartSafety: 100, EndSafety: 100}
	bins := solveFFD(items, []float64{3400, 6000}, c)
	require.NotEmpty(t, bins)

	produced := map[float64]int{}
	for _, b := range bins {
		for _, s := range b.segments {
			produced[s.length]++
		}
	}
	require.Equal(t, 6, produced[918])
	require.Equal(t, 3, produced[500])
}

func TestSolveBFDCoversAllDemand(t *testing.T) {
	items := []Item{
		{Length: 1950, Quantity: 1},
		{Length: 40, Quantity: 1},
	}
	c := Constraints{KerfWidth: 3, MinScrapLength: 50}
	bins := solveBFD(items, []float64{2000}, c, DefaultConfig())
	require.Len(t, bins, 1)
	require.Len(t, bins[0].segments, 2)
}

func TestSolveBFDFragmentToleratedWhenFeasibilityRequires(t *testing.T) {
	// A fragment below MinScrapLength must still be accepted when it's the
	// only way both items fit on one bar.
	items := []Item{
		{Length: 1950, Quantity: 1},
		{Length: 40, Quantity: 1},
	}
	c := Constraints{KerfWidth: 0, MinScrapLength: 50}
	bins := solveBFD(items, []float64{2000}, c, DefaultConfig())
	require.Len(t, bins, 1)

	used := bins[0].usedLength(c.KerfWidth, c.StartSafety, c.EndSafety)
	remaining := bins[0].stockLength - used
	require.InDelta(t, 10, remaining, 0.001)
}

func TestSolveFFDSingleItemOpensNewBinPerGroup(t *testing.T) {
	items := []Item{{Length: 3000, Quantity: 1}}
	c := Constraints{KerfWidth: 2}
	bins := solveFFD(items, []float64{3400, 6000}, c)
	require.Len(t, bins, 1)
}
