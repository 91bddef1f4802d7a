package fault

import (
	"fmt"
	"math"

	"github.com/rohanv/swingsight/internal/pose"
	"github.com/rohanv/swingsight/internal/swing"
)

// IncompleteFollowThrough flags a swing that stops short: the hands never
// rise above shoulder level after impact. Hand height reads well from every
// camera angle.
func IncompleteFollowThrough(in *Input) swing.DetectorResult {
	const id = "incomplete_follow_through"

	ftLo, ftHi := in.phaseRange(swing.PhaseFollowThrough)
	finLo, finHi := in.phaseRange(swing.PhaseFinish)
	if ftLo < 0 && finLo < 0 {
		return notDetected(id, "no frames after impact")
	}
	lo, hi := ftLo, ftHi
	if lo < 0 {
		lo, hi = finLo, finHi
	} else if finLo >= 0 {
		hi = finHi
	}

	wrist := in.leadWristIndex()
	// Positive shortfall means the hands stayed below the shoulders; track the
	// best (smallest) value reached after impact. Image y grows downward.
	shortfall := math.Inf(1)
	for i := lo; i <= hi && i < len(in.PhaseFrames); i++ {
		fi := in.PhaseFrames[i].FrameIndex
		if fi < 0 || fi >= len(in.Frames) {
			continue
		}
		w := in.Frames[fi].Landmarks[wrist]
		ls := in.Frames[fi].Landmarks[pose.LeftShoulder]
		rs := in.Frames[fi].Landmarks[pose.RightShoulder]
		if !w.Visible() || !ls.Visible() || !rs.Visible() {
			continue
		}
		if d := w.Y - (ls.Y+rs.Y)/2; d < shortfall {
			shortfall = d
		}
	}
	if math.IsInf(shortfall, 1) {
		return notDetected(id, "wrist or shoulder landmarks unavailable after impact")
	}
	t := in.Thresholds

	conf := 0.85
	if in.Camera.Angle == swing.Oblique {
		conf = 0.75
	}
	res := swing.DetectorResult{
		MistakeID:  id,
		Confidence: conf,
		Message:    "hands finish high above the shoulders",
		Details:    map[string]float64{"hand_shortfall": shortfall},
	}
	if shortfall > 0 {
		res.Detected = true
		res.Severity = severityFrom(shortfall, t.FollowThroughSpan)
		res.Message = "swing stops short: hands never rise above shoulder level after impact"
		res.AffectedFrames = framesInPhase(in, swing.PhaseFollowThrough)
	}
	return res
}

// UnbalancedFinish flags the feet shuffling during the finish hold. A
// balanced finish keeps the ankle center planted; drift means a fall-away or
// a stumble. Foot separation collapses down the line, so the check needs a
// face-on or oblique view.
func UnbalancedFinish(in *Input) swing.DetectorResult {
	const id = "unbalanced_finish"

	if in.Camera.Angle == swing.DownTheLine {
		return notDetected(id, "foot placement is not measurable down the line")
	}
	finLo, finHi := in.phaseRange(swing.PhaseFinish)
	if finLo < 0 {
		return notDetected(id, "no finish frames")
	}

	base := math.NaN()
	var wobble float64
	var n int
	for i := finLo; i <= finHi && i < len(in.PhaseFrames); i++ {
		fi := in.PhaseFrames[i].FrameIndex
		if fi < 0 || fi >= len(in.Frames) {
			continue
		}
		la := in.Frames[fi].Landmarks[pose.LeftAnkle]
		ra := in.Frames[fi].Landmarks[pose.RightAnkle]
		if !la.Visible() || !ra.Visible() {
			continue
		}
		x := (la.X + ra.X) / 2
		if math.IsNaN(base) {
			base = x
		}
		if d := math.Abs(x - base); d > wobble {
			wobble = d
		}
		n++
	}
	if n < 2 {
		return notDetected(id, "not enough finish frames to judge balance")
	}
	t := in.Thresholds

	conf := 0.8
	if in.Camera.Angle == swing.Oblique {
		conf = 0.7
	}
	res := swing.DetectorResult{
		MistakeID:  id,
		Confidence: conf,
		Message:    "finish is held in balance",
		Details:    map[string]float64{"ankle_drift": wobble},
	}
	if wobble > t.FinishWobbleMax {
		res.Detected = true
		res.Severity = severityFrom(wobble-t.FinishWobbleMax, t.FinishWobbleSpan)
		res.Message = fmt.Sprintf("feet drift %.0f%% of frame width during the finish", wobble*100)
		res.AffectedFrames = framesInPhase(in, swing.PhaseFinish)
	}
	return res
}
