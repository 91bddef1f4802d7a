package fault

// Thresholds is the single configuration table for every detector unit.
// Lifting the constants out of the detector bodies keeps the
// deviation→severity mappings sweepable in tests and tunable in one place.
//
// The *Span fields are the deviation widths over which severity ramps from 0
// to 100 past the matching threshold.
type Thresholds struct {
	// Setup
	StanceDriverMin float64 // minimum ankle/hip span ratio for a driver
	StanceIronMax   float64 // maximum ratio for an iron
	StanceSpan      float64
	PostureMin      float64 // degrees of forward spine tilt
	PostureMax      float64
	PostureSpan     float64
	KneeStraightMin float64 // knee angle above which the setup is too tall
	KneeCrouchMax   float64 // knee angle below which the setup is crouched
	KneeSpan        float64

	// Backswing
	SwayMax           float64 // lateral hip drift, normalized image units
	SwaySpan          float64
	ReversePivotShift float64 // target-ward hip shift at the top
	ReversePivotSpan  float64
	ArmBentMin        float64 // lead elbow angle below which the arm is bent
	ArmBentSpan       float64
	ArmImplausible    float64 // elbow angles below this are tracking noise
	OverswingMax      float64 // shoulder turn beyond this is an overswing
	OverswingSpan     float64
	ShoulderTurnMin   float64
	ShoulderTurnSpan  float64
	HipTurnMin        float64
	HipTurnSpan       float64

	// Downswing
	SlideMax       float64 // target-ward hip drift past address
	SlideSpan      float64
	CastHingeMax   float64 // wrist angle above this early in the downswing
	CastHingeSpan  float64
	SpineDeltaMax  float64 // allowed address→top spine angle change
	SpineDeltaSpan float64

	// Impact
	ExtensionMax        float64 // impact/address torso-length ratio
	ExtensionSpan       float64
	SpineLossAtImpact   float64 // degrees the spine may straighten by impact
	ChickenWingMin      float64 // lead elbow angle at impact
	ChickenWingSpan     float64
	OcclusionVisibility float64 // lead-elbow visibility proxy threshold (DTL)
	HeadMoveMax         float64 // normalized head displacement
	HeadMoveSpan        float64
	HeadMoveImplausible float64 // fraction of body height; beyond is nonsense
	HangBackOffset      float64 // trail-ward hip offset at impact
	HangBackSpan        float64

	// Follow-through
	FollowThroughSpan float64 // shortfall span for hands-below-shoulder
	FinishWobbleMax   float64 // ankle-center drift during the finish
	FinishWobbleSpan  float64

	// Tempo
	TempoMin             float64
	TempoMax             float64
	TempoLowSpan         float64
	TempoHighSpan        float64
	BackswingMinDuration float64 // seconds
	BackswingSpan        float64
}

// DefaultThresholds returns the production threshold table.
func DefaultThresholds() Thresholds {
	return Thresholds{
		StanceDriverMin: 1.70,
		StanceIronMax:   1.60,
		StanceSpan:      0.50,
		PostureMin:      25,
		PostureMax:      45,
		PostureSpan:     15,
		KneeStraightMin: 172,
		KneeCrouchMax:   150,
		KneeSpan:        15,

		SwayMax:           0.08,
		SwaySpan:          0.10,
		ReversePivotShift: 0.03,
		ReversePivotSpan:  0.06,
		ArmBentMin:        150,
		ArmBentSpan:       40,
		ArmImplausible:    90,
		OverswingMax:      115,
		OverswingSpan:     25,
		ShoulderTurnMin:   70,
		ShoulderTurnSpan:  40,
		HipTurnMin:        30,
		HipTurnSpan:       20,

		SlideMax:       0.06,
		SlideSpan:      0.08,
		CastHingeMax:   150,
		CastHingeSpan:  30,
		SpineDeltaMax:  8,
		SpineDeltaSpan: 12,

		ExtensionMax:        1.12,
		ExtensionSpan:       0.15,
		SpineLossAtImpact:   10,
		ChickenWingMin:      140,
		ChickenWingSpan:     35,
		OcclusionVisibility: 0.5,
		HeadMoveMax:         0.10,
		HeadMoveSpan:        0.12,
		HeadMoveImplausible: 0.6,
		HangBackOffset:      0.04,
		HangBackSpan:        0.08,

		FollowThroughSpan: 0.30,
		FinishWobbleMax:   0.04,
		FinishWobbleSpan:  0.06,

		TempoMin:             2.2,
		TempoMax:             4.0,
		TempoLowSpan:         1.0,
		TempoHighSpan:        1.5,
		BackswingMinDuration: 0.55,
		BackswingSpan:        0.35,
	}
}
