package cutting

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConsolidateMergesUnderfilledCutIntoOthers(t *testing.T) {
	c := Constraints{MinScrapLength: 50}

	cuts := []Cut{
		materializeCut(3000, []Segment{{Length: 1000}, {Length: 1000}}, c),
		materializeCut(3000, []Segment{{Length: 1000}}, c),
	}

	out := consolidate(cuts, c, 10)
	require.Len(t, out, 1)
	require.Len(t, out[0].Segments, 3)
}

func TestConsolidateNoOpWhenNothingFits(t *testing.T) {
	c := Constraints{MinScrapLength: 50}

	cuts := []Cut{
		materializeCut(1200, []Segment{{Length: 1000}}, c),
		materializeCut(1200, []Segment{{Length: 1000}}, c),
	}

	out := consolidate(cuts, c, 10)
	require.Len(t, out, 2)
}

func TestConsolidateNoOpBelowTwoCuts(t *testing.T) {
	c := Constraints{MinScrapLength: 50}
	cuts := []Cut{materializeCut(3000, []Segment{{Length: 1000}}, c)}

	out := consolidate(cuts, c, 10)
	require.Len(t, out, 1)
}

func TestConsolidatePreservesTotalSegmentCount(t *testing.T) {
	c := Constraints{MinScrapLength: 50}

	cuts := []Cut{
		materializeCut(3000, []Segment{{Length: 900}, {Length: 900}}, c),
		materializeCut(3000, []Segment{{Length: 900}}, c),
		materializeCut(3000, []Segment{{Length: 900}}, c),
	}

	before := 0
	for _, cut := range cuts {
		before += len(cut.Segments)
	}

	out := consolidate(cuts, c, 10)

	after := 0
	for _, cut := range out {
		after += len(cut.Segments)
	}
	require.Equal(t, before, after)
}
