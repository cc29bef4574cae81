package scoring

// DefaultMetrics returns the full static metric registry with the given
// thresholds, in canonical order. There is no dynamic discovery: adding a
// metric means adding it here.
func DefaultMetrics(p Params) []Metric {
	return []Metric{
		&AccessibilityMetric{
			IdealLo:   p.AccessibilityIdealLo,
			IdealHi:   p.AccessibilityIdealHi,
			OverFloor: p.AccessibilityOverFloor,
		},
		&DeadEndMetric{Ceiling: p.DeadEndCeiling},
		&LoopRatioMetric{IdealRatio: p.LoopIdealRatio, Spread: p.LoopSpread},
		&DegreeVarianceMetric{Center: p.DegreeVarianceCenter, Spread: p.DegreeVarianceSpread},
		&DoorDistributionMetric{
			MeanLo:        p.DoorMeanLo,
			MeanHi:        p.DoorMeanHi,
			SpreadPenalty: p.DoorSpreadPenalty,
		},
		&PathDiversityMetric{
			Target:         p.PathDiversityTarget,
			Spread:         p.PathDiversitySpread,
			MaxLen:         p.PathMaxLen,
			BudgetPerPair:  p.PathBudgetPerPair,
			MaxPairSamples: p.PathMaxPairSamples,
			Seed:           p.PathSampleSeed,
		},
		&KeyPathMetric{IdealLo: p.KeyPathIdealLo, IdealHi: p.KeyPathIdealHi},
		&ElementDistributionMetric{
			DensityLo:      p.ElementDensityLo,
			DensityHi:      p.ElementDensityHi,
			MinSpreadRatio: p.ElementMinSpreadRatio,
			GuardMaxRatio:  p.ElementGuardMaxRatio,
		},
		&GeometricBalanceMetric{},
	}
}

// MetricKeys returns the canonical keys of all registered metrics.
func MetricKeys() []string {
	metrics := DefaultMetrics(DefaultParams())
	keys := make([]string, len(metrics))
	for i, m := range metrics {
		keys[i] = m.Key()
	}
	return keys
}
