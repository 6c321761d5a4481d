package cutting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPoolMergesSameLengthAcrossWorkOrders(t *testing.T) {
	items := []Item{
		{Length: 1000, Quantity: 3, Profile: "2x4", WorkOrderID: "WO-1"},
		{Length: 1000, Quantity: 2, Profile: "2x4", WorkOrderID: "WO-2"},
		{Length: 500, Quantity: 1, Profile: "2x4", WorkOrderID: "WO-1"},
	}

	pooled := pool(items)
	require.Len(t, pooled, 2)

	byLength := map[float64]int{}
	for _, it := range pooled {
		byLength[it.Length] = it.Quantity
		require.Empty(t, it.WorkOrderID)
	}
	require.Equal(t, 5, byLength[1000])
	require.Equal(t, 1, byLength[500])
}

func TestPoolKeepsDistinctProfilesSeparate(t *testing.T) {
	items := []Item{
		{Length: 1000, Quantity: 2, Profile: "2x4"},
		{Length: 1000, Quantity: 2, Profile: "2x6"},
	}
	pooled := pool(items)
	require.Len(t, pooled, 2)
}

func TestOptimizePoolingMergesWorkOrders(t *testing.T) {
	oc := OptimizationContext{
		Items: []Item{
			{Length: 1000, Quantity: 3, WorkOrderID: "WO-1"},
			{Length: 1000, Quantity: 3, WorkOrderID: "WO-2"},
		},
		StockLengths:       []float64{3000},
		Constraints:        Constraints{MinScrapLength: 50},
		AlgorithmSelection: AlgorithmPooling,
	}

	res, err := Optimize(context.Background(), oc, nil)
	require.NoError(t, err)
	require.Equal(t, AlgorithmPooling, res.Algorithm)
	require.Equal(t, 2, res.StockCount)

	byWorkOrder := map[string]int{}
	for _, c := range res.Cuts {
		for _, s := range c.Segments {
			require.NotEmpty(t, s.WorkOrderID)
			byWorkOrder[s.WorkOrderID]++
		}
	}
	require.Equal(t, 3, byWorkOrder["WO-1"])
	require.Equal(t, 3, byWorkOrder["WO-2"])
}

func TestSplitByWorkOrderAssignsFIFOPerLength(t *testing.T) {
	cuts := []Cut{
		{Segments: []Segment{{Length: 1000, Profile: "2x4"}, {Length: 1000, Profile: "2x4"}}},
		{Segments: []Segment{{Length: 1000, Profile: "2x4"}}},
	}
	items := []Item{
		{Length: 1000, Quantity: 2, Profile: "2x4", WorkOrderID: "WO-1"},
		{Length: 1000, Quantity: 1, Profile: "2x4", WorkOrderID: "WO-2"},
	}

	split := splitByWorkOrder(cuts, items)
	require.Equal(t, "WO-1", split[0].Segments[0].WorkOrderID)
	require.Equal(t, "WO-1", split[0].Segments[1].WorkOrderID)
	require.Equal(t, "WO-2", split[1].Segments[0].WorkOrderID)
}
