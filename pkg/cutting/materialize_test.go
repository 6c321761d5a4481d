package cutting

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMaterializeCutAssignsSequentialPositions(t *testing.T) {
	c := Constraints{KerfWidth: 3, StartSafety: 100, EndSafety: 100}
	segs := []Segment{{Length: 918}, {Length: 918}}
	cut := materializeCut(6000, segs, c)

	require.Len(t, cut.Segments, 2)
	require.InDelta(t, 100, cut.Segments[0].Position, 1e-9)
	require.InDelta(t, 100+918+3, cut.Segments[1].Position, 1e-9)
	require.InDelta(t, 3, cut.KerfLoss, 1e-9)
	require.NoError(t, checkCutInvariants(cut, c, accountingPrecisionThreshold))
}

func TestValidateDemandCoverageDetectsShortage(t *testing.T) {
	demand := demandMap{lengthKey(500): 3}
	cuts := []Cut{{Segments: []Segment{{Length: 500}, {Length: 500}}}}

	_, err := validateDemandCoverage(cuts, demand, 2)
	require.Error(t, err)
	var cuttingErr *Error
	require.ErrorAs(t, err, &cuttingErr)
	require.Equal(t, KindDemandShortage, cuttingErr.Kind)
}

func TestValidateDemandCoverageAllowsToleratedOverproduction(t *testing.T) {
	demand := demandMap{lengthKey(500): 2}
	cuts := []Cut{{Segments: []Segment{{Length: 500}, {Length: 500}, {Length: 500}}}}

	over, err := validateDemandCoverage(cuts, demand, 2)
	require.NoError(t, err)
	require.Empty(t, over)
}

func TestValidateDemandCoverageFlagsExcessOverproduction(t *testing.T) {
	demand := demandMap{lengthKey(500): 2}
	segs := make([]Segment, 10)
	for i := range segs {
		segs[i] = Segment{Length: 500}
	}
	cuts := []Cut{{Segments: segs}}

	over, err := validateDemandCoverage(cuts, demand, 2)
	require.NoError(t, err)
	require.NotEmpty(t, over)
}

func TestMaterializeFromPatternUsesProducesExpectedSegmentCount(t *testing.T) {
	p := newPattern(6000, map[uint64]int{lengthKey(918): 6}, 3, 100, 100)
	uses := []patternUse{{Pattern: p, Count: 2}}
	c := Constraints{KerfWidth: 3, StartSafety: 100, EndSafety: 100}

	cuts := materializeFromPatternUses(uses, c)
	require.Len(t, cuts, 2)
	for _, cut := range cuts {
		require.Len(t, cut.Segments, 6)
		require.NoError(t, checkCutInvariants(cut, c, accountingPrecisionThreshold))
	}
}
