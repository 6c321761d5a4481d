package cutting

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Optimize is the engine's single synchronous entry point: given
// an OptimizationContext it returns a complete OptimizationResult or a
// fatal Error. Recoverable internal signals are absorbed here via the
// documented fallback chain and never escape this function.
func Optimize(ctx context.Context, oc OptimizationContext, logger Logger) (OptimizationResult, error) {
	if logger == nil {
		logger = NopLogger{}
	}
	cfg := oc.Config.normalize()
	start := time.Now()
	if !oc.StartTime.IsZero() {
		start = oc.StartTime
	}

	requestID := oc.RequestID
	if requestID == "" {
		requestID = uuid.NewString()
	}

	if err := validateContext(oc); err != nil {
		logger.Error("optimize: invalid input", map[string]interface{}{"requestId": requestID, "error": err.Error()})
		return OptimizationResult{}, err
	}

	demand := buildDemandMap(oc.Items)
	if !canSatisfyDemand(demand, oc.StockLengths, oc.Constraints) {
		return OptimizationResult{}, newError(KindInfeasible, "no stock length accommodates every demanded length after safety margins")
	}

	if oc.AlgorithmSelection == AlgorithmPooling {
		return optimizePooling(ctx, oc, logger)
	}

	algorithm, cuts, err := dispatch(ctx, oc, cfg, demand, logger, requestID)
	if err != nil {
		return OptimizationResult{}, err
	}

	if cfg.EnableConsolidationPass {
		cuts = consolidate(cuts, oc.Constraints, cfg.ConsolidationMaxIterations)
	}

	overproduced, err := validateDemandCoverage(cuts, demand, *cfg.OverProductionTolerance)
	if err != nil {
		logger.Error("optimize: demand coverage failed", map[string]interface{}{"requestId": requestID, "error": err.Error()})
		return OptimizationResult{}, err
	}
	if len(overproduced) > 0 {
		logger.Warn("optimize: overproduction beyond tolerance", map[string]interface{}{"requestId": requestID, "lengths": len(overproduced)})
	}

	tol := cfg.AccountingPrecisionThreshold
	for i := range cuts {
		if err := checkCutInvariants(cuts[i], oc.Constraints, tol); err != nil {
			logger.Error("optimize: invariant violation", map[string]interface{}{"requestId": requestID, "error": err.Error()})
			return OptimizationResult{}, err
		}
	}

	result := buildResult(cuts, algorithm, oc, cfg, start)
	logger.Info("optimize: complete", map[string]interface{}{
		"requestId": requestID, "algorithm": algorithm.String(),
		"stockCount": result.StockCount, "efficiency": result.Efficiency,
	})
	return result, nil
}

// validateContext enforces the documented domain checks on an
// OptimizationContext before any solver runs.
func validateContext(oc OptimizationContext) error {
	if len(oc.Items) == 0 {
		return newError(KindInvalidInput, "items must not be empty")
	}
	if len(oc.StockLengths) == 0 {
		return newError(KindInvalidInput, "stockLengths must not be empty")
	}
	c := oc.Constraints
	if !isFiniteNonNegative(c.KerfWidth) || !isFiniteNonNegative(c.StartSafety) ||
		!isFiniteNonNegative(c.EndSafety) || !isFiniteNonNegative(c.MinScrapLength) {
		return newError(KindInvalidInput, "constraints must be finite and non-negative")
	}

	haveUsableStock := false
	for _, s := range oc.StockLengths {
		if !isFinitePositive(s) {
			return newError(KindInvalidInput, "stock length %.4f must be finite and positive", s)
		}
		if c.usableLength(s) > 0 {
			haveUsableStock = true
		}
	}
	if !haveUsableStock {
		return newError(KindInvalidInput, "no stock length leaves positive usable length after safety margins")
	}

	maxUsable := 0.0
	for _, s := range oc.StockLengths {
		if u := c.usableLength(s); u > maxUsable {
			maxUsable = u
		}
	}
	for _, it := range oc.Items {
		if !isFinitePositive(it.Length) {
			return newError(KindInvalidInput, "item length %.4f must be finite and positive", it.Length)
		}
		if it.Quantity <= 0 {
			return newError(KindInvalidInput, "item quantity %d must be positive", it.Quantity)
		}
	}
	for _, it := range oc.Items {
		if it.Length > maxUsable {
			return newError(KindInfeasible, "item length %.4f exceeds the largest usable stock length %.4f", it.Length, maxUsable)
		}
	}
	return nil
}

// dispatch selects and runs a solver according to the adaptive strategy and
// fallback chain, returning the algorithm actually used (which may differ
// from the requested one after fallback).
func dispatch(ctx context.Context, oc OptimizationContext, cfg Config, demand demandMap, logger Logger, requestID string) (Algorithm, []Cut, error) {
	switch oc.AlgorithmSelection {
	case AlgorithmFFD:
		return AlgorithmFFD, materializeGreedyBins(solveFFD(oc.Items, oc.StockLengths, oc.Constraints), oc.Constraints), nil

	case AlgorithmPatternExact:
		cuts, err := runPatternExact(ctx, oc, cfg, demand, logger, requestID)
		if err == nil {
			return AlgorithmPatternExact, cuts, nil
		}
		logger.Warn("pattern-exact failed, falling back to BFD", map[string]interface{}{"requestId": requestID, "error": err.Error()})
		return AlgorithmBFD, materializeGreedyBins(solveBFD(oc.Items, oc.StockLengths, oc.Constraints, cfg), oc.Constraints), nil

	case AlgorithmBFD:
		return runAdaptiveBFD(ctx, oc, cfg, demand, logger, requestID)

	default: // AlgorithmAuto
		return runAdaptiveBFD(ctx, oc, cfg, demand, logger, requestID)
	}
}

// runAdaptiveBFD implements adaptive strategy: route to the
// pattern path when the problem is small enough, otherwise straight to
// greedy BFD, falling back to BFD on any pattern-path failure. Also applies
// the theoretical-minimum short-circuit.
func runAdaptiveBFD(ctx context.Context, oc OptimizationContext, cfg Config, demand demandMap, logger Logger, requestID string) (Algorithm, []Cut, error) {
	greedyBins := solveBFD(oc.Items, oc.StockLengths, oc.Constraints, cfg)
	lb := lowerBound(demand, oc.StockLengths)
	if len(greedyBins) <= lb {
		logger.Debug("greedy already at theoretical minimum, skipping pattern path", map[string]interface{}{"requestId": requestID, "bars": len(greedyBins)})
		return AlgorithmBFD, materializeGreedyBins(greedyBins, oc.Constraints), nil
	}

	unique, total := demandShape(demand)
	complexity := estimatePatternComplexity(demand)
	small := unique <= cfg.AdaptiveMaxUniqueLengths && total <= cfg.AdaptiveMaxDemand && complexity <= cfg.AdaptiveMaxPatterns

	if small {
		dpCfg := cfg
		dpCfg.MaxPatternsPerStock = cfg.MaxPatternsPerStockGreedy
		cuts, err := runPatternExact(ctx, oc, dpCfg, demand, logger, requestID)
		if err == nil && len(cuts) <= len(greedyBins) {
			return AlgorithmPatternExact, cuts, nil
		}
		if err != nil {
			logger.Debug("pattern path unavailable, using greedy BFD", map[string]interface{}{"requestId": requestID, "error": err.Error()})
		}
	}

	return AlgorithmBFD, materializeGreedyBins(greedyBins, oc.Constraints), nil
}

func demandShape(demand demandMap) (unique, total int) {
	for _, c := range demand {
		if c > 0 {
			unique++
			total += c
		}
	}
	return unique, total
}

// runPatternExact generates patterns across all stock lengths (largest
// first) and runs the lexicographic DFS driver; on DFS exhaustion it
// retries with the priority-search solver before giving up.
func runPatternExact(ctx context.Context, oc OptimizationContext, cfg Config, demand demandMap, logger Logger, requestID string) ([]Cut, error) {
	if estimatePatternComplexity(demand) > cfg.ComplexityPatternCountThreshold {
		return nil, errNoPatterns
	}
	patterns, err := collectPatterns(demand, oc.StockLengths, oc.Constraints, cfg)
	if err != nil {
		return nil, err
	}

	sol, err := lexicographicSearch(ctx, patterns, demand, oc.StockLengths, cfg.SearchRange, cfg.TimeoutPerStockCount, cfg.DFSProgressCheckEvery)
	if err == nil {
		return materializeFromPatternUses(sol.Uses, oc.Constraints), nil
	}
	logger.Debug("DFS exhausted search range, trying priority search", map[string]interface{}{"requestId": requestID, "error": err.Error()})

	res, perr := solvePriority(ctx, patterns, demand, cfg.PriorityMaxStates, cfg.PriorityTimeout, cfg.PriorityResortEvery,
		cfg.wasteNormalization(maxOf(oc.StockLengths)), *cfg.OverProductionTolerance)
	if perr != nil {
		return nil, perr
	}

	uses := make([]patternUse, len(res.Picks))
	for i, idx := range res.Picks {
		uses[i] = patternUse{Pattern: patterns[idx], Count: 1}
	}
	return materializeFromPatternUses(uses, oc.Constraints), nil
}

func collectPatterns(demand demandMap, stockLengths []float64, c Constraints, cfg Config) ([]Pattern, error) {
	sorted := make([]float64, len(stockLengths))
	copy(sorted, stockLengths)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	var all []Pattern
	var lastErr error = errNoPatterns
	for _, s := range sorted {
		patterns, err := generatePatterns(s, demand, patternGenOptions{
			Kerf: c.KerfWidth, StartSafety: c.StartSafety, EndSafety: c.EndSafety,
			MaxPatterns: cfg.MaxPatternsPerStock, MinUtilization: cfg.MinPatternUtilization,
			DominanceFilter: cfg.PatternDominanceFilter, DominanceFilterMinUniqueLengths: cfg.DominanceFilterMinUniqueLengths,
		})
		if err != nil {
			lastErr = err
			continue
		}
		all = append(all, patterns...)
	}
	if len(all) == 0 {
		return nil, lastErr
	}
	return all, nil
}

func maxOf(vals []float64) float64 {
	m := 0.0
	for _, v := range vals {
		if v > m {
			m = v
		}
	}
	return m
}

// buildResult aggregates Cuts into the final OptimizationResult.
func buildResult(cuts []Cut, algorithm Algorithm, oc OptimizationContext, cfg Config, start time.Time) OptimizationResult {
	var totalWaste, totalLength, totalKerf, totalSafety, totalStock float64
	totalSegments := 0
	for _, c := range cuts {
		totalWaste += c.RemainingLength
		totalKerf += c.KerfLoss
		totalSafety += c.SafetyMargin
		totalStock += c.StockLength
		totalSegments += c.SegmentCount
		for _, s := range c.Segments {
			totalLength += s.Length
		}
	}

	// Efficiency counts only payload length against stock length, excluding
	// kerf loss and safety reserve from the numerator
	// (usedLength - safetyMargin - kerfLoss == Σ segment.length).
	eff := efficiency(totalStock, totalStock-totalLength)
	excessivePct := oc.Constraints.MaxWastePercentage
	analysis := analyzeWaste(cuts, oc.Constraints.MinScrapLength, excessivePct)

	return OptimizationResult{
		Cuts:                  cuts,
		Algorithm:             algorithm,
		Efficiency:            eff,
		TotalWaste:            totalWaste,
		StockCount:            len(cuts),
		TotalSegments:         totalSegments,
		TotalLength:           totalLength,
		TotalKerfLoss:         totalKerf,
		TotalSafetyReserve:    totalSafety,
		ExecutionTimeMs:       float64(time.Since(start).Microseconds()) / 1000.0,
		WasteDistribution:     analysis.Distribution,
		DetailedWasteAnalysis: analysis,
		StockSummary:          buildStockSummary(cuts),
		Recommendations:       nil,
	}
}

func buildStockSummary(cuts []Cut) []StockLengthSummary {
	type agg struct {
		count    int
		patterns map[string]int
		waste    float64
		length   float64
	}
	aggs := map[float64]*agg{}
	order := []float64{}
	for _, c := range cuts {
		a, ok := aggs[c.StockLength]
		if !ok {
			a = &agg{patterns: map[string]int{}}
			aggs[c.StockLength] = a
			order = append(order, c.StockLength)
		}
		a.count++
		a.patterns[c.PlanLabel]++
		a.waste += c.RemainingLength
		for _, s := range c.Segments {
			a.length += s.Length
		}
	}
	sort.Float64s(order)

	out := make([]StockLengthSummary, 0, len(order))
	for _, s := range order {
		a := aggs[s]
		avg := 0.0
		if a.count > 0 {
			avg = a.waste / float64(a.count)
		}
		out = append(out, StockLengthSummary{
			StockLength: s,
			Count:       a.count,
			Patterns:    a.patterns,
			AvgWaste:    avg,
			TotalWaste:  a.waste,
			Efficiency:  efficiency(s*float64(a.count), s*float64(a.count)-a.length),
		})
	}
	return out
}
