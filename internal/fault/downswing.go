package fault

import (
	"fmt"
	"math"

	"github.com/rohanv/swingsight/internal/swing"
)

// LateralSlide flags hips sliding toward the target during the downswing
// instead of rotating. The slide is the peak target-ward hip-center drift
// past the address position across the downswing and impact frames.
func LateralSlide(in *Input) swing.DetectorResult {
	const id = "lateral_slide"

	if in.Camera.Angle != swing.FaceOn {
		return notDetected(id, "lateral hip slide is only measurable face-on")
	}
	addrLo, addrHi := in.phaseRange(swing.PhaseAddress)
	downLo, downHi := in.phaseRange(swing.PhaseDownswing)
	if addrLo < 0 || downLo < 0 {
		return notDetected(id, "address or downswing phase missing")
	}
	if impLo, impHi := in.phaseRange(swing.PhaseImpact); impLo >= 0 {
		downHi = impHi
	}
	addrX, ok := averageHipCenterX(in, addrLo, addrHi)
	if !ok {
		return notDetected(id, "hip landmarks unavailable at address")
	}

	var slide float64
	var affected []int
	for i := downLo; i <= downHi && i < len(in.PhaseFrames); i++ {
		x, ok := averageHipCenterX(in, i, i)
		if !ok {
			continue
		}
		d := (x - addrX) * in.targetDirection()
		if d > slide {
			slide = d
		}
		if d > in.Thresholds.SlideMax {
			affected = append(affected, in.PhaseFrames[i].FrameIndex)
		}
	}
	t := in.Thresholds

	res := swing.DetectorResult{
		MistakeID:  id,
		Confidence: 0.85,
		Message:    "hips rotate through the downswing without sliding",
		Details:    map[string]float64{"max_slide": slide},
	}
	if slide > t.SlideMax {
		res.Detected = true
		res.Severity = severityFrom(slide-t.SlideMax, t.SlideSpan)
		res.Message = fmt.Sprintf("hips slide %.0f%% of frame width toward the target in the downswing", slide*100)
		res.AffectedFrames = affected
	}
	return res
}

// EarlyRelease flags the wrist angle being cast away in the first half of the
// downswing, before the hands reach hip height. Wrist geometry collapses
// down the line, so the check needs a face-on or oblique view.
func EarlyRelease(in *Input) swing.DetectorResult {
	const id = "early_release"

	if in.Camera.Angle == swing.DownTheLine {
		return notDetected(id, "wrist hinge is not measurable down the line")
	}
	downLo, downHi := in.phaseRange(swing.PhaseDownswing)
	if downLo < 0 {
		return notDetected(id, "no downswing frames")
	}
	// Only the first half of the downswing matters: by the second half the
	// wrists are supposed to release.
	half := downLo + (downHi-downLo)/2

	var worst float64
	var n int
	var affected []int
	for i := downLo; i <= half && i < len(in.PhaseFrames); i++ {
		m := in.PhaseFrames[i].Metrics
		hinge := m.LeftWristHinge
		if in.Handedness == swing.LeftHanded {
			hinge = m.RightWristHinge
		}
		if hinge <= 0 {
			continue
		}
		n++
		if hinge > worst {
			worst = hinge
		}
		if hinge > in.Thresholds.CastHingeMax {
			affected = append(affected, in.PhaseFrames[i].FrameIndex)
		}
	}
	if n == 0 {
		return notDetected(id, "wrist landmarks unavailable in the downswing")
	}
	t := in.Thresholds

	conf := 0.85
	if in.Camera.Angle == swing.Oblique {
		conf = 0.7
	}
	res := swing.DetectorResult{
		MistakeID:  id,
		Confidence: conf,
		Message:    "wrist angle is retained into the downswing",
		Details:    map[string]float64{"max_wrist_angle": worst},
	}
	if worst > t.CastHingeMax {
		res.Detected = true
		res.Severity = severityFrom(worst-t.CastHingeMax, t.CastHingeSpan)
		res.Message = fmt.Sprintf("wrists release early in the downswing (wrist angle %.0f° before hip height)", worst)
		res.AffectedFrames = affected
	}
	return res
}

// LossOfSpineAngle flags the forward spine tilt changing between address and
// the top, the precursor to standing up through the ball. Forward tilt is
// invisible face-on.
func LossOfSpineAngle(in *Input) swing.DetectorResult {
	const id = "loss_of_spine_angle"

	if in.Camera.Angle == swing.FaceOn {
		return notDetected(id, "forward spine tilt is not visible face-on")
	}
	addr := in.Metrics.AddressSpineAngle
	top := in.Metrics.TopSpineAngle
	if addr <= 0 || top <= 0 {
		return notDetected(id, "spine angle unavailable at address or top")
	}

	delta := math.Abs(top - addr)
	t := in.Thresholds

	conf := 0.85
	if in.Camera.Angle == swing.Oblique {
		conf = 0.6
	}
	res := swing.DetectorResult{
		MistakeID:  id,
		Confidence: conf,
		Message:    "spine angle is maintained through the backswing",
		Details:    map[string]float64{"address_spine": addr, "top_spine": top, "delta": delta},
	}
	if delta > t.SpineDeltaMax {
		res.Detected = true
		res.Severity = severityFrom(delta-t.SpineDeltaMax, t.SpineDeltaSpan)
		verb := "straightens"
		if top > addr {
			verb = "deepens"
		}
		res.Message = fmt.Sprintf("spine angle %s by %.0f° between address and the top", verb, delta)
		res.AffectedFrames = framesInPhase(in, swing.PhaseTop)
	}
	return res
}
