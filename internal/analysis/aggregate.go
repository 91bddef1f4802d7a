package analysis

import (
	"math"

	"github.com/rohanv/swingsight/internal/geom"
	"github.com/rohanv/swingsight/internal/pose"
	"github.com/rohanv/swingsight/internal/stats"
	"github.com/rohanv/swingsight/internal/swing"
)

// impactMedianRadius is the half-width of the window around the impact
// anchor over which the impact spine angle is taken as a median, guarding
// against single-frame pose outliers.
const impactMedianRadius = 2

// AggregateMetrics reduces the per-frame metrics into one SwingMetrics
// record, gated by phase boundaries and camera angle. Rotation is modelled
// differently per angle: face-on uses apparent width narrowing, down-the-line
// reports exactly 0 (unreliable, not estimated), and oblique uses the signed
// depth-angle drift from the address baseline.
func AggregateMetrics(frames []pose.Frame, phaseFrames []swing.PhaseFrame, angle swing.CameraAngle, handed swing.Handedness) swing.SwingMetrics {
	var m swing.SwingMetrics
	if len(frames) == 0 || len(phaseFrames) == 0 {
		return m
	}

	addrLo, addrHi := phaseRange(phaseFrames, swing.PhaseAddress)
	topIdx, _ := phaseRange(phaseFrames, swing.PhaseTop)
	impactIdx, _ := phaseRange(phaseFrames, swing.PhaseImpact)
	if topIdx < 0 {
		topIdx = 0
	}
	if impactIdx < 0 {
		impactIdx = len(frames) - 1
	}

	switch angle {
	case swing.FaceOn:
		aggregateFaceOnRotation(&m, frames, addrLo, addrHi, impactIdx)
	case swing.DownTheLine:
		// Rotation is depth-dominated from behind; reporting a guess would be
		// worse than reporting nothing.
	case swing.Oblique:
		aggregateObliqueRotation(&m, phaseFrames, addrLo, addrHi, impactIdx)
	}

	// Spine angle: medians over the address segment and around impact,
	// a single sample at the top anchor.
	m.AddressSpineAngle = stats.Median(collect(phaseFrames, addrLo, addrHi, func(fm *swing.FrameMetrics) float64 { return fm.SpineAngle }))
	m.ImpactSpineAngle = stats.Median(collect(phaseFrames,
		impactIdx-impactMedianRadius, impactIdx+impactMedianRadius,
		func(fm *swing.FrameMetrics) float64 { return fm.SpineAngle }))
	m.TopSpineAngle = phaseFrames[topIdx].Metrics.SpineAngle

	lead := func(fm *swing.FrameMetrics) float64 {
		if handed == swing.LeftHanded {
			return fm.RightArmExtension
		}
		return fm.LeftArmExtension
	}
	m.TopLeadArmExtension = lead(&phaseFrames[topIdx].Metrics)
	m.ImpactLeadArmExtension = lead(&phaseFrames[impactIdx].Metrics)

	kneeAvg := func(fm *swing.FrameMetrics) float64 { return (fm.LeftKneeFlex + fm.RightKneeFlex) / 2 }
	m.AddressKneeFlex = stats.Median(collect(phaseFrames, addrLo, addrHi, kneeAvg))
	m.TopKneeFlex = kneeAvg(&phaseFrames[topIdx].Metrics)

	if angle == swing.FaceOn {
		aggregateFaceOnExclusives(&m, frames, addrLo, addrHi, impactIdx)
	}
	return m
}

// aggregateFaceOnRotation applies the width-narrowing model: as the torso
// turns away from a face-on camera its apparent width shrinks by the cosine
// of the turn. Measured only from address through impact, because the full
// finish rotation would inflate the maxima.
func aggregateFaceOnRotation(m *swing.SwingMetrics, frames []pose.Frame, addrLo, addrHi, impactIdx int) {
	addrShoulder := stats.Median(widths(frames, addrLo, addrHi, pose.LeftShoulder, pose.RightShoulder))
	addrHip := stats.Median(widths(frames, addrLo, addrHi, pose.LeftHip, pose.RightHip))

	end := impactIdx
	if end > len(frames)-1 {
		end = len(frames) - 1
	}
	for i := 0; i <= end; i++ {
		s := narrowingAngle(&frames[i], pose.LeftShoulder, pose.RightShoulder, addrShoulder)
		h := narrowingAngle(&frames[i], pose.LeftHip, pose.RightHip, addrHip)
		if s > m.MaxShoulderRotation {
			m.MaxShoulderRotation = s
		}
		if h > m.MaxHipRotation {
			m.MaxHipRotation = h
		}
		if x := math.Abs(s - h); x > m.MaxXFactor {
			m.MaxXFactor = x
		}
	}
}

func narrowingAngle(f *pose.Frame, li, ri int, addressWidth float64) float64 {
	if addressWidth < 1e-6 {
		return 0
	}
	l, r := f.Landmarks[li], f.Landmarks[ri]
	if !l.Visible() || !r.Visible() {
		return 0
	}
	w := math.Abs(l.X - r.X)
	return math.Acos(geom.Clamp(w/addressWidth, 0, 1)) * 180 / math.Pi
}

// aggregateObliqueRotation falls back to the depth-based per-frame rotation
// estimates, measured as the shortest-angle difference from the address
// baseline.
func aggregateObliqueRotation(m *swing.SwingMetrics, phaseFrames []swing.PhaseFrame, addrLo, addrHi, impactIdx int) {
	baseS := stats.Median(collect(phaseFrames, addrLo, addrHi, func(fm *swing.FrameMetrics) float64 { return fm.ShoulderRotation }))
	baseH := stats.Median(collect(phaseFrames, addrLo, addrHi, func(fm *swing.FrameMetrics) float64 { return fm.HipRotation }))

	end := impactIdx
	if end > len(phaseFrames)-1 {
		end = len(phaseFrames) - 1
	}
	for i := 0; i <= end; i++ {
		fm := &phaseFrames[i].Metrics
		s := math.Abs(geom.NormalizeAngle(fm.ShoulderRotation - baseS))
		h := math.Abs(geom.NormalizeAngle(fm.HipRotation - baseH))
		if s > m.MaxShoulderRotation {
			m.MaxShoulderRotation = s
		}
		if h > m.MaxHipRotation {
			m.MaxHipRotation = h
		}
		if x := math.Abs(s - h); x > m.MaxXFactor {
			m.MaxXFactor = x
		}
	}
}

// aggregateFaceOnExclusives fills the metrics only a face-on camera can see:
// lateral hip sway, head stability and the standing-up ratio at impact. From
// any other angle these stay nil so consumers can tell "not applicable" from
// "measured as zero".
func aggregateFaceOnExclusives(m *swing.SwingMetrics, frames []pose.Frame, addrLo, addrHi, impactIdx int) {
	if addrLo < 0 {
		addrLo, addrHi = 0, 0
	}
	baseHip := frames[addrLo].HipCenter()
	baseNose := frames[addrLo].Landmarks[pose.Nose]

	end := impactIdx
	if end > len(frames)-1 {
		end = len(frames) - 1
	}

	var sway, headMove float64
	for i := addrLo; i <= end; i++ {
		hip := frames[i].HipCenter()
		if hip.Visible() && baseHip.Visible() {
			if d := math.Abs(hip.X - baseHip.X); d > sway {
				sway = d
			}
		}
		nose := frames[i].Landmarks[pose.Nose]
		if nose.Visible() && baseNose.Visible() {
			if d := geom.Distance(point(nose), point(baseNose)); d > headMove {
				headMove = d
			}
		}
	}
	m.HipSway = &sway
	m.HeadStability = &headMove

	addrLen := torsoLength(&frames[addrLo])
	impactLen := torsoLength(&frames[end])
	if addrLen > 1e-6 && impactLen > 0 {
		ratio := impactLen / addrLen
		m.ImpactExtension = &ratio
	}
}

func torsoLength(f *pose.Frame) float64 {
	hip, shoulder := f.HipCenter(), f.ShoulderCenter()
	if !hip.Visible() || !shoulder.Visible() {
		return 0
	}
	return geom.Distance(point(hip), point(shoulder))
}

// widths returns the visible x-spans of a landmark pair over a frame range.
func widths(frames []pose.Frame, lo, hi, li, ri int) []float64 {
	if lo < 0 {
		lo, hi = 0, 0
	}
	if hi > len(frames)-1 {
		hi = len(frames) - 1
	}
	var out []float64
	for i := lo; i <= hi; i++ {
		l, r := frames[i].Landmarks[li], frames[i].Landmarks[ri]
		if !l.Visible() || !r.Visible() {
			continue
		}
		out = append(out, math.Abs(l.X-r.X))
	}
	return out
}

// collect gathers one metric over the inclusive frame range [lo, hi],
// clamped to the slice bounds.
func collect(phaseFrames []swing.PhaseFrame, lo, hi int, get func(*swing.FrameMetrics) float64) []float64 {
	if lo < 0 {
		lo = 0
	}
	if hi > len(phaseFrames)-1 {
		hi = len(phaseFrames) - 1
	}
	var out []float64
	for i := lo; i <= hi; i++ {
		out = append(out, get(&phaseFrames[i].Metrics))
	}
	return out
}

// phaseRange returns the first and last frame positions labelled with the
// given phase, or (-1, -1) when the phase is absent.
func phaseRange(phaseFrames []swing.PhaseFrame, phase swing.Phase) (lo, hi int) {
	lo, hi = -1, -1
	for i := range phaseFrames {
		if phaseFrames[i].Phase != phase {
			continue
		}
		if lo == -1 {
			lo = i
		}
		hi = i
	}
	return lo, hi
}

// ComputeTempo derives swing timing from the phase-labelled frames:
// backswing runs from the end of address to the first top frame, downswing
// from the last top frame to first contact.
func ComputeTempo(phaseFrames []swing.PhaseFrame) swing.TempoMetrics {
	var t swing.TempoMetrics
	if len(phaseFrames) == 0 {
		return t
	}

	_, addrHi := phaseRange(phaseFrames, swing.PhaseAddress)
	topLo, topHi := phaseRange(phaseFrames, swing.PhaseTop)
	impactLo, _ := phaseRange(phaseFrames, swing.PhaseImpact)

	if addrHi >= 0 && topLo > addrHi {
		t.BackswingDuration = phaseFrames[topLo].Timestamp - phaseFrames[addrHi].Timestamp
	}
	if topHi >= 0 && impactLo > topHi {
		t.DownswingDuration = phaseFrames[impactLo].Timestamp - phaseFrames[topHi].Timestamp
	}
	if t.DownswingDuration > 0 {
		t.TempoRatio = t.BackswingDuration / t.DownswingDuration
	}
	t.TotalSwingDuration = phaseFrames[len(phaseFrames)-1].Timestamp - phaseFrames[0].Timestamp
	t.Rating = TempoRating(t.TempoRatio)
	return t
}

// TempoRating buckets a tempo ratio against the classical 3:1 ideal.
func TempoRating(ratio float64) string {
	switch {
	case ratio >= 2.8 && ratio <= 3.2:
		return "excellent"
	case ratio >= 2.5 && ratio <= 3.5:
		return "good"
	case ratio >= 2.0 && ratio <= 4.0:
		return "fair"
	default:
		return "poor"
	}
}
