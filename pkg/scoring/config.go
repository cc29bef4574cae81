package scoring

// Params holds every tunable threshold used by the metric evaluators.
// Passed explicitly into the engine; there is no module-level state.
type Params struct {
	// Accessibility: full credit for reachability in [IdealLo, IdealHi];
	// linear falloff below, capped penalty above (over-connectivity reduces
	// challenge).
	AccessibilityIdealLo   float64
	AccessibilityIdealHi   float64
	AccessibilityOverFloor float64

	// Dead ends: acceptable fraction of degree<=1 rooms before the score
	// starts dropping.
	DeadEndCeiling float64

	// Loop ratio: ideal independent-cycle count per room and curve spread.
	LoopIdealRatio float64
	LoopSpread     float64

	// Degree variance: target normalized variance band.
	DegreeVarianceCenter float64
	DegreeVarianceSpread float64

	// Door distribution: target mean doors-per-room band and the penalty
	// applied per unit of excess coefficient of variation.
	DoorMeanLo        float64
	DoorMeanHi        float64
	DoorSpreadPenalty float64

	// Path diversity: target average simple-path count, curve spread, and
	// the enumeration budgets that keep the metric bounded and reproducible.
	PathDiversityTarget float64
	PathDiversitySpread float64
	PathMaxLen          int
	PathBudgetPerPair   int
	PathMaxPairSamples  int
	PathSampleSeed      int64

	// Key path: target band for path length / diameter.
	KeyPathIdealLo float64
	KeyPathIdealHi float64

	// Element distribution: target elements-per-room density band and
	// normalized spread targets (fractions of the map diagonal).
	ElementDensityLo      float64
	ElementDensityHi      float64
	ElementMinSpreadRatio float64
	ElementGuardMaxRatio  float64
}

// DefaultParams returns the standard evaluator thresholds.
func DefaultParams() Params {
	return Params{
		AccessibilityIdealLo:   0.6,
		AccessibilityIdealHi:   0.95,
		AccessibilityOverFloor: 0.7,

		DeadEndCeiling: 0.3,

		LoopIdealRatio: 0.3,
		LoopSpread:     0.15,

		DegreeVarianceCenter: 0.3,
		DegreeVarianceSpread: 0.2,

		DoorMeanLo:        1.5,
		DoorMeanHi:        3.0,
		DoorSpreadPenalty: 0.2,

		PathDiversityTarget: 2.0,
		PathDiversitySpread: 1.25,
		PathMaxLen:          8,
		PathBudgetPerPair:   64,
		PathMaxPairSamples:  40,
		PathSampleSeed:      1,

		KeyPathIdealLo: 0.6,
		KeyPathIdealHi: 1.0,

		ElementDensityLo:      0.25,
		ElementDensityHi:      1.5,
		ElementMinSpreadRatio: 0.2,
		ElementGuardMaxRatio:  0.5,
	}
}
