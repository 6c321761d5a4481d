package cutting

import "context"

// optimizePooling implements the Pooling algorithm: items carrying the same
// profile but different work orders are merged into one combined demand,
// a single AUTO optimization pass runs over the merged demand, and the
// resulting Cuts' segments are then split back out by WorkOrderID, so each
// Segment names the order it is attributed to even though the bars
// themselves were packed jointly. StockSummary and the other result totals
// are not broken down by work order.
func optimizePooling(ctx context.Context, oc OptimizationContext, logger Logger) (OptimizationResult, error) {
	pooled := pool(oc.Items)

	inner := oc
	inner.Items = pooled
	inner.AlgorithmSelection = AlgorithmAuto

	logger.Info("pooling: merged work orders", map[string]interface{}{
		"requestId": oc.RequestID, "originalItems": len(oc.Items), "pooledItems": len(pooled),
	})

	result, err := Optimize(ctx, inner, logger)
	if err != nil {
		return OptimizationResult{}, err
	}
	result.Algorithm = AlgorithmPooling
	result.Cuts = splitByWorkOrder(result.Cuts, oc.Items)
	return result, nil
}

// pool merges items sharing (length, profile) across work orders into a
// single Item with the combined quantity and no work order tag.
func pool(items []Item) []Item {
	type key struct {
		length  uint64
		profile string
	}
	totals := map[key]int{}
	order := make([]key, 0, len(items))
	for _, it := range items {
		k := key{length: lengthKey(it.Length), profile: it.Profile}
		if _, ok := totals[k]; !ok {
			order = append(order, k)
		}
		totals[k] += it.Quantity
	}

	out := make([]Item, 0, len(order))
	for _, k := range order {
		out = append(out, Item{
			Length:   lengthFromKey(k.length),
			Quantity: totals[k],
			Profile:  k.profile,
		})
	}
	return out
}

// splitByWorkOrder re-attributes WorkOrderID onto pooled Cuts' segments by
// consuming each original item's quantity, in input order, from a FIFO
// queue keyed by length alone: pattern-based materialization never carries
// Profile onto a Segment, so a (length, profile) key would silently stop
// matching whenever AUTO routes pooled demand through Pattern-Exact or the
// priority search instead of a greedy solver. Pooling's documented use case
// (several orders sharing one profile) makes a length-only key exact; the
// assignment is a bookkeeping split either way, not a guarantee that any
// single order's pieces land on the same bars as before pooling.
func splitByWorkOrder(cuts []Cut, items []Item) []Cut {
	queues := make(map[uint64][]string, len(items))
	for _, it := range items {
		k := lengthKey(it.Length)
		for i := 0; i < it.Quantity; i++ {
			queues[k] = append(queues[k], it.WorkOrderID)
		}
	}

	out := make([]Cut, len(cuts))
	for ci, c := range cuts {
		segs := make([]Segment, len(c.Segments))
		copy(segs, c.Segments)
		for si := range segs {
			k := lengthKey(segs[si].Length)
			q := queues[k]
			if len(q) == 0 {
				continue
			}
			segs[si].WorkOrderID = q[0]
			queues[k] = q[1:]
		}
		c.Segments = segs
		out[ci] = c
	}
	return out
}
