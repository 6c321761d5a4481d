package cutting

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOptimizeExactMultipleOfStockLengthNoWaste(t *testing.T) {
	oc := OptimizationContext{
		Items:        []Item{{Length: 1000, Quantity: 6}},
		StockLengths: []float64{3000},
		Constraints:  Constraints{MinScrapLength: 50},
	}
	res, err := Optimize(context.Background(), oc, nil)
	require.NoError(t, err)
	require.Equal(t, 2, res.StockCount)
	require.InDelta(t, 100, res.Efficiency, 0.001)
}

func TestOptimizeKerfAndSafetyMarginsShiftSegmentPositions(t *testing.T) {
	oc := OptimizationContext{
		Items:        []Item{{Length: 918, Quantity: 6}},
		StockLengths: []float64{3400, 6000},
		Constraints:  Constraints{KerfWidth: 3, StartSafety: 100, EndSafety: 100, MinScrapLength: 50},
	}
	res, err := Optimize(context.Background(), oc, nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.StockCount)
	require.Equal(t, 6000.0, res.Cuts[0].StockLength)

	expectedPositions := []float64{100, 1021, 1942, 2863, 3784, 4705}
	for i, seg := range res.Cuts[0].Segments {
		require.InDelta(t, expectedPositions[i], seg.Position, 0.001)
	}
}

func TestOptimizeUnreclaimableFragmentStillCountsAsFeasible(t *testing.T) {
	oc := OptimizationContext{
		Items:        []Item{{Length: 1950, Quantity: 1}, {Length: 40, Quantity: 1}},
		StockLengths: []float64{2000},
		Constraints:  Constraints{MinScrapLength: 50},
	}
	res, err := Optimize(context.Background(), oc, nil)
	require.NoError(t, err)
	require.Equal(t, 1, res.StockCount)
	require.InDelta(t, 10, res.Cuts[0].RemainingLength, 0.001)
	require.False(t, res.Cuts[0].IsReclaimable)
	require.Equal(t, WasteMinimal, res.Cuts[0].WasteCategory)
}

func TestOptimizeManyDistinctLengthsFallsBackToGreedy(t *testing.T) {
	items := make([]Item, 25)
	totalQty := 0
	for i := range items {
		length := float64(100 + i*37)
		qty := 3000/25
		items[i] = Item{Length: length, Quantity: qty}
		totalQty += qty
	}
	oc := OptimizationContext{
		Items:        items,
		StockLengths: []float64{6000},
		Constraints:  Constraints{MinScrapLength: 50},
	}
	res, err := Optimize(context.Background(), oc, nil)
	require.NoError(t, err)
	require.NotEmpty(t, res.Cuts)
	require.Equal(t, AlgorithmBFD, res.Algorithm)

	produced := 0
	for _, c := range res.Cuts {
		produced += c.SegmentCount
	}
	require.Equal(t, totalQty, produced)
}

func TestOptimizeEmptyItemsIsInvalidInput(t *testing.T) {
	oc := OptimizationContext{
		Items:        nil,
		StockLengths: []float64{1000},
	}
	_, err := Optimize(context.Background(), oc, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestOptimizeItemLongerThanAnyStockIsInfeasible(t *testing.T) {
	oc := OptimizationContext{
		Items:        []Item{{Length: 7000, Quantity: 1}},
		StockLengths: []float64{3400, 6000},
	}
	_, err := Optimize(context.Background(), oc, nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrInfeasible)
}

func TestOptimizeKerfZeroPacksAtLeastAsWellAsKerfPositive(t *testing.T) {
	items := []Item{{Length: 1000, Quantity: 6}}
	stocks := []float64{3000}

	ocZero := OptimizationContext{Items: items, StockLengths: stocks, Constraints: Constraints{KerfWidth: 0, MinScrapLength: 50}}
	ocPositive := OptimizationContext{Items: items, StockLengths: stocks, Constraints: Constraints{KerfWidth: 5, MinScrapLength: 50}}

	resZero, err := Optimize(context.Background(), ocZero, nil)
	require.NoError(t, err)
	resPositive, err := Optimize(context.Background(), ocPositive, nil)
	require.NoError(t, err)

	require.LessOrEqual(t, resZero.StockCount, resPositive.StockCount)
	require.LessOrEqual(t, resZero.TotalWaste, resPositive.TotalWaste+1e-6)
}

func TestOptimizeZeroOverProductionToleranceIsHonoredNotCoercedToDefault(t *testing.T) {
	oc := OptimizationContext{
		Items:              []Item{{Length: 1000, Quantity: 3}},
		StockLengths:       []float64{6000},
		Constraints:        Constraints{MinScrapLength: 50},
		AlgorithmSelection: AlgorithmPatternExact,
		Config:             Config{OverProductionTolerance: intPtr(0)},
	}
	res, err := Optimize(context.Background(), oc, nil)
	require.NoError(t, err)

	produced := 0
	for _, c := range res.Cuts {
		produced += c.SegmentCount
	}
	require.Equal(t, 3, produced)
}

func TestOptimizePoolingWithSharedProfile(t *testing.T) {
	oc := OptimizationContext{
		Items: []Item{
			{Length: 1000, Quantity: 3, Profile: "P1", WorkOrderID: "WO-A"},
			{Length: 1000, Quantity: 3, Profile: "P1", WorkOrderID: "WO-B"},
		},
		StockLengths:       []float64{3000},
		Constraints:        Constraints{MinScrapLength: 50},
		AlgorithmSelection: AlgorithmPooling,
	}
	res, err := Optimize(context.Background(), oc, nil)
	require.NoError(t, err)
	require.Equal(t, AlgorithmPooling, res.Algorithm)
	require.Equal(t, 2, res.StockCount)
}
