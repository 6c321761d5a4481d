package cutting

import "time"

// Config collects every tunable knob the engine exposes, with documented
// defaults. The pkg/cutting core only ever sees this plain struct — viper
// and friends live in cmd/cutstock, keeping the engine importable as a
// library without a CLI/config-file dependency chain.
type Config struct {
	// FragmentPenaltyFactor scales waste on placements that would create a
	// fragment (0 < remaining < MinScrapLength) in BFD. Default 0.8
	// (fragment-creating placements are inflated by 1/0.8 = 1.25x).
	FragmentPenaltyFactor float64
	// LookAheadDepth is how many upcoming items BFD considers for its
	// future-opportunity tiebreaker. Default 3.
	LookAheadDepth int

	// MaxPatternsPerStock caps pattern generator output per stock length.
	// Default 50 for Pattern-Exact; the adaptive pattern path taken by
	// AUTO/BFD uses MaxPatternsPerStockGreedy instead (default 50000).
	MaxPatternsPerStock        int
	MaxPatternsPerStockGreedy  int
	// MinPatternUtilization floors per-pattern utilization during
	// generation. Default 0.30.
	MinPatternUtilization float64
	// PatternDominanceFilter turns on/off dominance filtering uniformly
	// across all callers.
	PatternDominanceFilter bool
	// DominanceFilterMinUniqueLengths: if the number of distinct item
	// lengths is below this, dominance filtering is skipped to preserve
	// pattern diversity. 0 (default) means always filter.
	DominanceFilterMinUniqueLengths int

	// SearchRange: Pattern-Exact tries S = lowerBound .. lowerBound+SearchRange.
	// Default 10.
	SearchRange int
	// TimeoutPerStockCount bounds each per-S DFS run. Default 60s.
	TimeoutPerStockCount time.Duration
	// DFSProgressCheckEvery is how many search nodes pass between timeout
	// checks. Default 10000.
	DFSProgressCheckEvery int

	// PriorityMaxStates caps how many states the priority search pops
	// before giving up; the open set itself is not size-capped. Default
	// 5000.
	PriorityMaxStates int
	// PriorityTimeout bounds priority search wall-clock time. Default 30s.
	PriorityTimeout time.Duration
	// PriorityResortEvery re-sorts the open set every N pops instead of
	// every pop, matching amortized-sort guidance. Default 10.
	PriorityResortEvery int
	// OverProductionTolerance unifies the search-time and materialization-
	// time overproduction tolerances, per length. Default 2. A caller that
	// wants exact-cover-only search (no overproduction tolerated at all)
	// must set this explicitly to 0 — nil means "unset, use the default,"
	// so a genuine zero is only honored when the pointer is non-nil.
	OverProductionTolerance *int
	// WasteNormalization: 0 means "derive from stock geometry"
	// (maxStockLength/10). A non-zero value overrides the derived default.
	WasteNormalization float64

	// ComplexityPatternCountThreshold triggers fallback from pattern
	// generation to purely greedy solvers when 2^uniqueLengths*totalDemand
	// exceeds it. Default 1_000_000.
	ComplexityPatternCountThreshold int64
	// AdaptiveMaxUniqueLengths / AdaptiveMaxDemand / AdaptiveMaxPatterns
	// are the thresholds AUTO/BFD use to decide whether to route through
	// the pattern-based DP+priority-search path. Defaults:
	// 15, 1000, 50000.
	AdaptiveMaxUniqueLengths int
	AdaptiveMaxDemand        int
	AdaptiveMaxPatterns      int64

	// AccountingPrecisionThreshold / AccountingEqualityTolerance mirror the
	// package-level tolerances (0 means "use default").
	// AccountingPrecisionThreshold is the tolerance Optimize applies to the
	// Cut invariant checks. AccountingEqualityTolerance is not read by the
	// solvers; they always use the package constant.
	AccountingPrecisionThreshold float64
	AccountingEqualityTolerance  float64

	// EnableConsolidationPass runs the iterative-improvement
	// bin-consolidation post-pass. Default true.
	EnableConsolidationPass bool
	// ConsolidationMaxIterations caps the consolidation pass. Default 3.
	ConsolidationMaxIterations int
}

// DefaultConfig returns a Config populated with every documented default,
// following the DefaultXxxOptions() constructor style used by
// Hola...solver.go's DefaultSolverOptions.
func DefaultConfig() Config {
	return Config{
		FragmentPenaltyFactor:           0.8,
		LookAheadDepth:                  3,
		MaxPatternsPerStock:             50,
		MaxPatternsPerStockGreedy:       50000,
		MinPatternUtilization:           0.30,
		PatternDominanceFilter:          true,
		DominanceFilterMinUniqueLengths: 0,
		SearchRange:                     10,
		TimeoutPerStockCount:            60 * time.Second,
		DFSProgressCheckEvery:           10000,
		PriorityMaxStates:               5000,
		PriorityTimeout:                 30 * time.Second,
		PriorityResortEvery:             10,
		OverProductionTolerance:         intPtr(2),
		WasteNormalization:              0,
		ComplexityPatternCountThreshold: 1_000_000,
		AdaptiveMaxUniqueLengths:        15,
		AdaptiveMaxDemand:               1000,
		AdaptiveMaxPatterns:             50000,
		AccountingPrecisionThreshold:    accountingPrecisionThreshold,
		AccountingEqualityTolerance:     accountingEqualityTolerance,
		EnableConsolidationPass:         true,
		ConsolidationMaxIterations:      3,
	}
}

// normalize fills any zero-valued field with its documented default,
// treating the zero Config as "use defaults" the way DefaultSolverOptions
// patterns let a nil/zero Options struct mean "apply defaults".
func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.FragmentPenaltyFactor == 0 {
		c.FragmentPenaltyFactor = d.FragmentPenaltyFactor
	}
	if c.LookAheadDepth == 0 {
		c.LookAheadDepth = d.LookAheadDepth
	}
	if c.MaxPatternsPerStock == 0 {
		c.MaxPatternsPerStock = d.MaxPatternsPerStock
	}
	if c.MaxPatternsPerStockGreedy == 0 {
		c.MaxPatternsPerStockGreedy = d.MaxPatternsPerStockGreedy
	}
	if c.MinPatternUtilization == 0 {
		c.MinPatternUtilization = d.MinPatternUtilization
	}
	if c.SearchRange == 0 {
		c.SearchRange = d.SearchRange
	}
	if c.TimeoutPerStockCount == 0 {
		c.TimeoutPerStockCount = d.TimeoutPerStockCount
	}
	if c.DFSProgressCheckEvery == 0 {
		c.DFSProgressCheckEvery = d.DFSProgressCheckEvery
	}
	if c.PriorityMaxStates == 0 {
		c.PriorityMaxStates = d.PriorityMaxStates
	}
	if c.PriorityTimeout == 0 {
		c.PriorityTimeout = d.PriorityTimeout
	}
	if c.PriorityResortEvery == 0 {
		c.PriorityResortEvery = d.PriorityResortEvery
	}
	if c.OverProductionTolerance == nil {
		c.OverProductionTolerance = d.OverProductionTolerance
	}
	if c.ComplexityPatternCountThreshold == 0 {
		c.ComplexityPatternCountThreshold = d.ComplexityPatternCountThreshold
	}
	if c.AdaptiveMaxUniqueLengths == 0 {
		c.AdaptiveMaxUniqueLengths = d.AdaptiveMaxUniqueLengths
	}
	if c.AdaptiveMaxDemand == 0 {
		c.AdaptiveMaxDemand = d.AdaptiveMaxDemand
	}
	if c.AdaptiveMaxPatterns == 0 {
		c.AdaptiveMaxPatterns = d.AdaptiveMaxPatterns
	}
	if c.AccountingPrecisionThreshold == 0 {
		c.AccountingPrecisionThreshold = d.AccountingPrecisionThreshold
	}
	if c.AccountingEqualityTolerance == 0 {
		c.AccountingEqualityTolerance = d.AccountingEqualityTolerance
	}
	if c.ConsolidationMaxIterations == 0 {
		c.ConsolidationMaxIterations = d.ConsolidationMaxIterations
	}
	// PatternDominanceFilter / EnableConsolidationPass default to true, but
	// false is a meaningful explicit value, so they are not zero-defaulted
	// here; DefaultConfig() already sets the true default for fresh callers
	// that start from it.
	return c
}

func intPtr(v int) *int { return &v }

// wasteNormalization resolves the priority-search waste scale: an explicit
// Config value wins, otherwise it derives from the largest available stock
// length.
func (c Config) wasteNormalization(maxStockLength float64) float64 {
	if c.WasteNormalization > 0 {
		return c.WasteNormalization
	}
	if maxStockLength <= 0 {
		return 10
	}
	return maxStockLength / 10
}
