package main

import (
	"time"

	"github.com/heavybullets8/cutstock/pkg/cutting"
)

// jobItem mirrors cutting.Item for TOML/JSON job files.
type jobItem struct {
	Length      float64 `mapstructure:"length" toml:"length"`
	Quantity    int     `mapstructure:"quantity" toml:"quantity"`
	Profile     string  `mapstructure:"profile" toml:"profile"`
	WorkOrderID string  `mapstructure:"workOrderId" toml:"workOrderId"`
}

// jobConstraints mirrors cutting.Constraints.
type jobConstraints struct {
	KerfWidth            float64 `mapstructure:"kerfWidth" toml:"kerfWidth"`
	StartSafety          float64 `mapstructure:"startSafety" toml:"startSafety"`
	EndSafety            float64 `mapstructure:"endSafety" toml:"endSafety"`
	MinScrapLength       float64 `mapstructure:"minScrapLength" toml:"minScrapLength"`
	MaxWastePercentage   float64 `mapstructure:"maxWastePercentage" toml:"maxWastePercentage"`
	MaxCutsPerStock      int     `mapstructure:"maxCutsPerStock" toml:"maxCutsPerStock"`
	AllowPartialStocks   bool    `mapstructure:"allowPartialStocks" toml:"allowPartialStocks"`
	PrioritizeSmallWaste bool    `mapstructure:"prioritizeSmallWaste" toml:"prioritizeSmallWaste"`
	ReclaimWasteOnly     bool    `mapstructure:"reclaimWasteOnly" toml:"reclaimWasteOnly"`
}

// knobConfig mirrors cutting.Config for TOML/env-sourced engine tuning,
// loaded via viper from the ~/.cutstock.toml knob file (distinct from the
// per-run job file). Kept as a cmd-local struct with mapstructure tags so
// pkg/cutting stays free of a viper dependency. Pointer fields distinguish
// "absent from the knob file" from an explicit false/0 the way
// cutting.Config.OverProductionTolerance already does.
type knobConfig struct {
	FragmentPenaltyFactor           float64       `mapstructure:"fragmentPenaltyFactor"`
	LookAheadDepth                  int           `mapstructure:"lookAheadDepth"`
	MaxPatternsPerStock             int           `mapstructure:"maxPatternsPerStock"`
	MaxPatternsPerStockGreedy       int           `mapstructure:"maxPatternsPerStockGreedy"`
	MinPatternUtilization           float64       `mapstructure:"minPatternUtilization"`
	PatternDominanceFilter          *bool         `mapstructure:"patternDominanceFilter"`
	DominanceFilterMinUniqueLengths int           `mapstructure:"dominanceFilterMinUniqueLengths"`
	SearchRange                     int           `mapstructure:"searchRange"`
	TimeoutPerStockCount            time.Duration `mapstructure:"timeoutPerStockCount"`
	DFSProgressCheckEvery           int           `mapstructure:"dfsProgressCheckEvery"`
	PriorityMaxStates               int           `mapstructure:"priorityMaxStates"`
	PriorityTimeout                 time.Duration `mapstructure:"priorityTimeout"`
	PriorityResortEvery             int           `mapstructure:"priorityResortEvery"`
	OverProductionTolerance         *int          `mapstructure:"overProductionTolerance"`
	WasteNormalization              float64       `mapstructure:"wasteNormalization"`
	ComplexityPatternCountThreshold int64         `mapstructure:"complexityPatternCountThreshold"`
	AdaptiveMaxUniqueLengths        int           `mapstructure:"adaptiveMaxUniqueLengths"`
	AdaptiveMaxDemand               int           `mapstructure:"adaptiveMaxDemand"`
	AdaptiveMaxPatterns             int64         `mapstructure:"adaptiveMaxPatterns"`
	AccountingPrecisionThreshold    float64       `mapstructure:"accountingPrecisionThreshold"`
	AccountingEqualityTolerance     float64       `mapstructure:"accountingEqualityTolerance"`
	EnableConsolidationPass         *bool         `mapstructure:"enableConsolidationPass"`
	ConsolidationMaxIterations      int           `mapstructure:"consolidationMaxIterations"`
}

// toConfig resolves knob overrides onto a cutting.Config, defaulting the
// two boolean knobs to their documented true default before applying an
// explicit override; every other field is left at the knob file's value
// (zero if absent) for Config.normalize() to backfill later.
func (k knobConfig) toConfig() cutting.Config {
	cfg := cutting.Config{
		FragmentPenaltyFactor:           k.FragmentPenaltyFactor,
		LookAheadDepth:                  k.LookAheadDepth,
		MaxPatternsPerStock:             k.MaxPatternsPerStock,
		MaxPatternsPerStockGreedy:       k.MaxPatternsPerStockGreedy,
		MinPatternUtilization:           k.MinPatternUtilization,
		DominanceFilterMinUniqueLengths: k.DominanceFilterMinUniqueLengths,
		SearchRange:                     k.SearchRange,
		TimeoutPerStockCount:            k.TimeoutPerStockCount,
		DFSProgressCheckEvery:           k.DFSProgressCheckEvery,
		PriorityMaxStates:               k.PriorityMaxStates,
		PriorityTimeout:                 k.PriorityTimeout,
		PriorityResortEvery:             k.PriorityResortEvery,
		OverProductionTolerance:         k.OverProductionTolerance,
		WasteNormalization:              k.WasteNormalization,
		ComplexityPatternCountThreshold: k.ComplexityPatternCountThreshold,
		AdaptiveMaxUniqueLengths:        k.AdaptiveMaxUniqueLengths,
		AdaptiveMaxDemand:               k.AdaptiveMaxDemand,
		AdaptiveMaxPatterns:             k.AdaptiveMaxPatterns,
		AccountingPrecisionThreshold:    k.AccountingPrecisionThreshold,
		AccountingEqualityTolerance:     k.AccountingEqualityTolerance,
		ConsolidationMaxIterations:      k.ConsolidationMaxIterations,
	}
	cfg.PatternDominanceFilter = true
	if k.PatternDominanceFilter != nil {
		cfg.PatternDominanceFilter = *k.PatternDominanceFilter
	}
	cfg.EnableConsolidationPass = true
	if k.EnableConsolidationPass != nil {
		cfg.EnableConsolidationPass = *k.EnableConsolidationPass
	}
	return cfg
}

// job is the on-disk shape of an optimize job file: a structured,
// scriptable input read from TOML or JSON instead of interactive prompts.
type job struct {
	RequestID    string          `mapstructure:"requestId" toml:"requestId"`
	Algorithm    string          `mapstructure:"algorithm" toml:"algorithm"`
	Items        []jobItem       `mapstructure:"items" toml:"items"`
	StockLengths []float64       `mapstructure:"stockLengths" toml:"stockLengths"`
	Constraints  jobConstraints  `mapstructure:"constraints" toml:"constraints"`
}

func (j job) toContext() cutting.OptimizationContext {
	items := make([]cutting.Item, len(j.Items))
	for i, it := range j.Items {
		items[i] = cutting.Item{
			Length:      it.Length,
			Quantity:    it.Quantity,
			Profile:     it.Profile,
			WorkOrderID: it.WorkOrderID,
		}
	}

	return cutting.OptimizationContext{
		RequestID:    j.RequestID,
		Items:        items,
		StockLengths: j.StockLengths,
		Constraints: cutting.Constraints{
			KerfWidth:            j.Constraints.KerfWidth,
			StartSafety:          j.Constraints.StartSafety,
			EndSafety:            j.Constraints.EndSafety,
			MinScrapLength:       j.Constraints.MinScrapLength,
			MaxWastePercentage:   j.Constraints.MaxWastePercentage,
			MaxCutsPerStock:      j.Constraints.MaxCutsPerStock,
			AllowPartialStocks:   j.Constraints.AllowPartialStocks,
			PrioritizeSmallWaste: j.Constraints.PrioritizeSmallWaste,
			ReclaimWasteOnly:     j.Constraints.ReclaimWasteOnly,
		},
		AlgorithmSelection: parseAlgorithm(j.Algorithm),
		StartTime:          time.Now(),
		Config:             currentConfig(),
	}
}

func parseAlgorithm(s string) cutting.Algorithm {
	switch s {
	case "FFD":
		return cutting.AlgorithmFFD
	case "BFD":
		return cutting.AlgorithmBFD
	case "PATTERN_EXACT":
		return cutting.AlgorithmPatternExact
	case "POOLING":
		return cutting.AlgorithmPooling
	default:
		return cutting.AlgorithmAuto
	}
}
