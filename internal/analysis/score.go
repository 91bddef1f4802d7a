package analysis

import (
	"github.com/rohanv/swingsight/internal/geom"
	"github.com/rohanv/swingsight/internal/swing"
)

// Metric keys shared by the weight and band tables.
const (
	metricShoulderTurn    = "shoulder_turn"
	metricHipTurn         = "hip_turn"
	metricXFactor         = "x_factor"
	metricSpineAngle      = "spine_angle"
	metricLeadArm         = "lead_arm_extension"
	metricKneeFlex        = "knee_flex"
	metricTempo           = "tempo_ratio"
	metricHipSway         = "hip_sway"
	metricHeadStability   = "head_stability"
	metricImpactExtension = "impact_extension"
)

// scoringMetricOrder fixes the order the weighted terms are summed in.
// Float addition is not associative, so summing in map order would make the
// base score differ across runs on identical input.
var scoringMetricOrder = []string{
	metricShoulderTurn,
	metricHipTurn,
	metricXFactor,
	metricSpineAngle,
	metricLeadArm,
	metricKneeFlex,
	metricTempo,
	metricHipSway,
	metricHeadStability,
	metricImpactExtension,
}

// Band is a scoring range: full marks inside the ideal band, linear falloff
// to zero at the absolute bounds, evaluated independently on each side.
type Band struct {
	IdealMin, IdealMax float64
	AbsMin, AbsMax     float64
}

// Score maps a value to [0, 100] against the band.
func (b Band) Score(v float64) float64 {
	switch {
	case v >= b.IdealMin && v <= b.IdealMax:
		return 100
	case v < b.IdealMin:
		if b.IdealMin == b.AbsMin {
			return 0
		}
		return geom.Clamp(100*(v-b.AbsMin)/(b.IdealMin-b.AbsMin), 0, 100)
	default:
		if b.AbsMax == b.IdealMax {
			return 0
		}
		return geom.Clamp(100*(b.AbsMax-v)/(b.AbsMax-b.IdealMax), 0, 100)
	}
}

// scoringWeights selects the per-metric weight vector for a camera angle.
// Down-the-line zeroes every rotation term and redistributes the mass onto
// spine, arm and tempo; face-on adds the three metrics only it can measure.
func scoringWeights(angle swing.CameraAngle) map[string]float64 {
	switch angle {
	case swing.DownTheLine:
		return map[string]float64{
			metricSpineAngle: 0.25,
			metricLeadArm:    0.25,
			metricKneeFlex:   0.15,
			metricTempo:      0.35,
		}
	case swing.FaceOn:
		return map[string]float64{
			metricShoulderTurn:    0.14,
			metricHipTurn:         0.10,
			metricXFactor:         0.12,
			metricSpineAngle:      0.08,
			metricLeadArm:         0.12,
			metricKneeFlex:        0.08,
			metricTempo:           0.12,
			metricHipSway:         0.08,
			metricHeadStability:   0.08,
			metricImpactExtension: 0.08,
		}
	default:
		return map[string]float64{
			metricShoulderTurn: 0.16,
			metricHipTurn:      0.12,
			metricXFactor:      0.14,
			metricSpineAngle:   0.14,
			metricLeadArm:      0.16,
			metricKneeFlex:     0.10,
			metricTempo:        0.18,
		}
	}
}

// scoringBands returns the ideal/absolute bands for a camera angle, with
// club-specific overrides applied when a confident club type is known. A
// driver swing is longer and wider than an iron swing, so its rotation bands
// sit higher.
func scoringBands(angle swing.CameraAngle, club swing.ClubType) map[string]Band {
	bands := map[string]Band{
		metricShoulderTurn:    {IdealMin: 80, IdealMax: 100, AbsMin: 40, AbsMax: 140},
		metricHipTurn:         {IdealMin: 35, IdealMax: 55, AbsMin: 10, AbsMax: 90},
		metricXFactor:         {IdealMin: 35, IdealMax: 50, AbsMin: 10, AbsMax: 80},
		metricSpineAngle:      {IdealMin: 25, IdealMax: 40, AbsMin: 5, AbsMax: 60},
		metricLeadArm:         {IdealMin: 165, IdealMax: 180, AbsMin: 120, AbsMax: 180},
		metricKneeFlex:        {IdealMin: 155, IdealMax: 170, AbsMin: 120, AbsMax: 180},
		metricTempo:           {IdealMin: 2.7, IdealMax: 3.3, AbsMin: 1.5, AbsMax: 5.0},
		metricHipSway:         {IdealMin: 0, IdealMax: 0.05, AbsMin: 0, AbsMax: 0.15},
		metricHeadStability:   {IdealMin: 0, IdealMax: 0.05, AbsMin: 0, AbsMax: 0.15},
		metricImpactExtension: {IdealMin: 0.95, IdealMax: 1.10, AbsMin: 0.80, AbsMax: 1.30},
	}

	// Face-on never sees forward bend, only lateral tilt, so the spine band
	// shifts toward upright.
	if angle == swing.FaceOn {
		bands[metricSpineAngle] = Band{IdealMin: 0, IdealMax: 15, AbsMin: 0, AbsMax: 40}
	}

	switch club {
	case swing.Driver:
		bands[metricShoulderTurn] = Band{IdealMin: 85, IdealMax: 110, AbsMin: 45, AbsMax: 145}
		bands[metricXFactor] = Band{IdealMin: 40, IdealMax: 55, AbsMin: 15, AbsMax: 85}
		bands[metricKneeFlex] = Band{IdealMin: 160, IdealMax: 175, AbsMin: 125, AbsMax: 180}
	case swing.Iron:
		bands[metricShoulderTurn] = Band{IdealMin: 75, IdealMax: 95, AbsMin: 35, AbsMax: 135}
	}
	return bands
}

// ComputeBaseScore maps the aggregated metrics into the 0-100 base quality
// score. Metrics that could not be measured from this camera angle are
// skipped and the remaining weights renormalized, so an unmeasurable signal
// neither rewards nor punishes.
func ComputeBaseScore(m swing.SwingMetrics, tempo swing.TempoMetrics, camera swing.CameraAngleResult, club swing.ClubTypeResult, clubOverridden bool) float64 {
	clubForBands := swing.UnknownClub
	if clubOverridden || (club.ClubType != swing.UnknownClub && club.Confidence >= clubConfidenceMin) {
		clubForBands = club.ClubType
	}

	weights := scoringWeights(camera.Angle)
	bands := scoringBands(camera.Angle, clubForBands)

	value := func(key string) (float64, bool) {
		switch key {
		case metricShoulderTurn:
			return m.MaxShoulderRotation, true
		case metricHipTurn:
			return m.MaxHipRotation, true
		case metricXFactor:
			return m.MaxXFactor, true
		case metricSpineAngle:
			return m.AddressSpineAngle, true
		case metricLeadArm:
			return m.TopLeadArmExtension, true
		case metricKneeFlex:
			return m.AddressKneeFlex, true
		case metricTempo:
			return tempo.TempoRatio, tempo.DownswingDuration > 0
		case metricHipSway:
			if m.HipSway == nil {
				return 0, false
			}
			return *m.HipSway, true
		case metricHeadStability:
			if m.HeadStability == nil {
				return 0, false
			}
			return *m.HeadStability, true
		case metricImpactExtension:
			if m.ImpactExtension == nil {
				return 0, false
			}
			return *m.ImpactExtension, true
		default:
			return 0, false
		}
	}

	var total, used float64
	for _, key := range scoringMetricOrder {
		w, weighted := weights[key]
		if !weighted {
			continue
		}
		v, ok := value(key)
		if !ok {
			continue
		}
		total += w * bands[key].Score(v)
		used += w
	}
	if used == 0 {
		return 0
	}
	return geom.Clamp(total/used, 0, 100)
}
