package analysis

import (
	"math"

	"github.com/rohanv/swingsight/internal/geom"
	"github.com/rohanv/swingsight/internal/pose"
	"github.com/rohanv/swingsight/internal/stats"
	"github.com/rohanv/swingsight/internal/swing"
)

// Phase segmentation constants.
const (
	smoothingWindow = 5

	// Impact search bounds as fractions of the recording, and the
	// deceleration refinement parameters after the velocity peak.
	impactSearchLo    = 0.30
	impactSearchHi    = 0.85
	decelSearchFrames = 12
	decelFraction     = 0.85
	heightCheckFrames = 10

	// Top anchor: agreement margin between the hand-height and
	// velocity-minimum estimates.
	topSearchLo    = 0.10
	topAgreeFrames = 3

	// Address end: velocity must exceed max(baselineFactor*baseline,
	// peakFraction*peak) for two consecutive frames; displacement fallback
	// and a minimum address length guard short or noisy starts.
	baselineFrames        = 5
	baselineFactor        = 1.5
	peakFraction          = 0.04
	displacementThreshold = 0.03
	minAddressFrames      = 3

	finishStartFraction = 0.85

	// Per-phase label confidences: anchors are trusted most, interior
	// frames are assigned purely by position.
	anchorConfidence    = 0.9
	addressConfidence   = 0.8
	interiorConfidence  = 0.7
	followConfidence    = 0.75
	finishConfidence    = 0.8
	handednessSampleMax = 5
)

// DetectHandedness decides the golfer's handedness by majority vote over the
// first frames: the lead (top-of-grip) hand sits higher at address, so a
// higher left hand means a right-handed golfer.
func DetectHandedness(frames []pose.Frame) swing.Handedness {
	n := len(frames)
	if n > handednessSampleMax {
		n = handednessSampleMax
	}
	leftHigher := 0
	voters := 0
	for i := 0; i < n; i++ {
		lw := frames[i].Landmarks[pose.LeftWrist]
		rw := frames[i].Landmarks[pose.RightWrist]
		if !lw.Visible() || !rw.Visible() {
			continue
		}
		voters++
		if lw.Y < rw.Y {
			leftHigher++
		}
	}
	if voters > 0 && leftHigher*2 < voters {
		return swing.LeftHanded
	}
	return swing.RightHanded
}

// phaseAnchors are the frame indices the retrospective labelling hangs off.
type phaseAnchors struct {
	addressEnd  int // last address frame
	top         int // top-of-backswing frame
	impact      int // ball-contact frame
	finishStart int // first finish frame
}

// SegmentPhases assigns one of the seven swing phases to every frame and
// consolidates the runs into segments. Labelling is retrospective: two
// anchor frames (impact, then top) are located by signal analysis on the
// smoothed lead-hand series, and every other frame is labelled by position
// relative to them.
func SegmentPhases(frames []pose.Frame, metrics []swing.FrameMetrics, handed swing.Handedness) ([]swing.PhaseFrame, []swing.PhaseSegment) {
	n := len(frames)
	if n == 0 {
		return nil, nil
	}

	leadIdx := pose.LeftWrist
	if handed == swing.LeftHanded {
		leadIdx = pose.RightWrist
	}

	ys := make([]float64, n)
	xs := make([]float64, n)
	vs := make([]float64, n)
	for i := 0; i < n; i++ {
		lm := frames[i].Landmarks[leadIdx]
		ys[i] = lm.Y
		xs[i] = lm.X
		if i > 0 {
			dt := frames[i].Timestamp - frames[i-1].Timestamp
			if dt <= 0 {
				dt = 1
			}
			prev := frames[i-1].Landmarks[leadIdx]
			vs[i] = geom.Distance(point(lm), point(prev)) / dt
		}
	}
	sy := stats.MovingAverage(ys, smoothingWindow)
	sv := stats.MovingAverage(vs, smoothingWindow)

	anchors := findAnchors(frames, xs, sy, sv)

	phaseFrames := make([]swing.PhaseFrame, n)
	for i := 0; i < n; i++ {
		phase, conf := labelFrame(i, anchors)
		phaseFrames[i] = swing.PhaseFrame{
			FrameIndex: frames[i].Index,
			Timestamp:  frames[i].Timestamp,
			Phase:      phase,
			Confidence: conf,
			Metrics:    metrics[i],
		}
	}

	return phaseFrames, Consolidate(phaseFrames)
}

func findAnchors(frames []pose.Frame, xs, sy, sv []float64) phaseAnchors {
	n := len(frames)

	impact, peak := findImpact(sy, sv)
	top := findTop(sy, sv, impact)
	addressEnd := findAddressEnd(xs, sy, sv, peak, top)

	// Keep the anchors in canonical order even on degenerate input so the
	// positional labelling stays monotone.
	if top <= addressEnd {
		top = addressEnd + 1
	}
	if top > n-1 {
		top = n - 1
	}
	if impact < top+2 {
		impact = top + 2
	}
	if impact > n-1 {
		impact = n - 1
	}

	finishStart := int(finishStartFraction * float64(n))
	if finishStart <= impact+1 {
		finishStart = impact + 2
	}

	return phaseAnchors{addressEnd: addressEnd, top: top, impact: impact, finishStart: finishStart}
}

// findImpact locates the ball-strike frame: the most robust velocity peak in
// the middle of the recording, refined by the deceleration after contact and
// cross-checked against the lowest hand position.
func findImpact(sy, sv []float64) (impact int, peak float64) {
	n := len(sv)
	lo := int(impactSearchLo * float64(n))
	hi := int(impactSearchHi * float64(n))
	if lo < 2 {
		lo = 2
	}
	if hi > n-1 {
		hi = n - 1
	}
	if hi <= lo {
		lo, hi = 0, n
	}

	// A robust peak is a local maximum wider than two samples on each side;
	// narrow spikes are usually tracking glitches.
	peakIdx := -1
	for i := lo; i < hi; i++ {
		if i < 2 || i > n-3 {
			continue
		}
		if sv[i] >= sv[i-1] && sv[i] >= sv[i-2] && sv[i] >= sv[i+1] && sv[i] >= sv[i+2] {
			if peakIdx == -1 || sv[i] > sv[peakIdx] {
				peakIdx = i
			}
		}
	}
	if peakIdx == -1 {
		peakIdx = stats.ArgMax(sv, lo, hi)
	}
	peak = sv[peakIdx]

	// The club decelerates sharply through the ball: walk forward to where
	// velocity drops below the deceleration fraction of the peak.
	impact = peakIdx
	for j := peakIdx + 1; j <= peakIdx+decelSearchFrames && j < n; j++ {
		if sv[j] < decelFraction*peak {
			impact = j
			break
		}
	}

	// Cross-check: contact happens at the bottom of the arc, where the hands
	// are lowest (maximum y). Prefer that frame when it sits shortly after
	// the velocity peak.
	hhHi := peakIdx + heightCheckFrames + 1
	if hhHi > n {
		hhHi = n
	}
	heightIdx := stats.ArgMax(sy, peakIdx, hhHi)
	if heightIdx > peakIdx && heightIdx-peakIdx <= heightCheckFrames {
		impact = heightIdx
	}
	return impact, peak
}

// findTop locates the top of the backswing: the highest lead-hand position
// before the downswing, cross-checked against the velocity minimum (the
// transition pause). When the two estimates agree they are averaged.
func findTop(sy, sv []float64, impact int) int {
	n := len(sy)
	lo := int(topSearchLo * float64(n))
	if lo < 1 {
		lo = 1
	}
	hi := impact - 3
	if hi <= lo {
		hi = lo + 1
	}
	if hi > n {
		hi = n
	}

	heightIdx := stats.ArgMin(sy, lo, hi)
	velIdx := stats.ArgMin(sv, lo, hi)
	if abs(heightIdx-velIdx) <= topAgreeFrames {
		return (heightIdx + velIdx) / 2
	}
	return heightIdx
}

// findAddressEnd locates the last still frame before the takeaway.
func findAddressEnd(xs, sy, sv []float64, peak float64, top int) int {
	n := len(sv)
	bn := baselineFrames
	if bn > n {
		bn = n
	}
	baseline := stats.Mean(sv[:bn])
	threshold := math.Max(baselineFactor*baseline, peakFraction*peak)

	limit := top
	if limit > n-1 {
		limit = n - 1
	}

	addressEnd := -1
	for i := 1; i < limit; i++ {
		if sv[i] > threshold && i+1 < n && sv[i+1] > threshold {
			addressEnd = i - 1
			break
		}
	}

	// Fallback: the takeaway has begun once the hands have drifted a fixed
	// distance from their starting point.
	if addressEnd < 0 {
		for i := 1; i < limit; i++ {
			dx := xs[i] - xs[0]
			dy := sy[i] - sy[0]
			if math.Sqrt(dx*dx+dy*dy) > displacementThreshold {
				addressEnd = i - 1
				break
			}
		}
	}

	if addressEnd < minAddressFrames-1 {
		addressEnd = minAddressFrames - 1
	}
	if addressEnd > limit-1 {
		addressEnd = limit - 1
	}
	if addressEnd < 0 {
		addressEnd = 0
	}
	return addressEnd
}

func labelFrame(i int, a phaseAnchors) (swing.Phase, float64) {
	switch {
	case i <= a.addressEnd:
		return swing.PhaseAddress, addressConfidence
	case i < a.top:
		return swing.PhaseBackswing, interiorConfidence
	case i == a.top || i == a.top+1:
		return swing.PhaseTop, anchorConfidence
	case i < a.impact:
		return swing.PhaseDownswing, interiorConfidence
	case i < a.impact+2:
		return swing.PhaseImpact, anchorConfidence
	case i < a.finishStart:
		return swing.PhaseFollowThrough, followConfidence
	default:
		return swing.PhaseFinish, finishConfidence
	}
}

// Consolidate merges consecutive same-phase frames into segments. The
// resulting segments are contiguous, non-overlapping, ordered, and cover
// every input frame exactly once.
func Consolidate(phaseFrames []swing.PhaseFrame) []swing.PhaseSegment {
	if len(phaseFrames) == 0 {
		return nil
	}

	var segments []swing.PhaseSegment
	start := 0
	for i := 1; i <= len(phaseFrames); i++ {
		if i < len(phaseFrames) && phaseFrames[i].Phase == phaseFrames[start].Phase {
			continue
		}
		first, last := phaseFrames[start], phaseFrames[i-1]
		segments = append(segments, swing.PhaseSegment{
			Phase:      first.Phase,
			StartFrame: first.FrameIndex,
			EndFrame:   last.FrameIndex,
			StartTime:  first.Timestamp,
			EndTime:    last.Timestamp,
			Duration:   last.Timestamp - first.Timestamp,
		})
		start = i
	}
	return segments
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
