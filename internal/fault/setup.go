package fault

import (
	"fmt"
	"math"

	"github.com/rohanv/swingsight/internal/pose"
	"github.com/rohanv/swingsight/internal/swing"
)

// StanceWidth flags a stance that does not match the club being swung.
// Stance width is one of the signals the club-type classifier itself votes
// on, so running this check against an inferred club would be circular: it
// only fires when the user has explicitly overridden the club type.
func StanceWidth(in *Input) swing.DetectorResult {
	const id = "stance_width"

	if !in.ClubOverridden {
		return notDetected(id, "stance width informed the club classification; suppressed without an explicit club override")
	}
	if in.Camera.Angle == swing.DownTheLine {
		return notDetected(id, "stance width is not measurable from down the line")
	}
	addrLo, addrHi := in.phaseRange(swing.PhaseAddress)
	if addrLo < 0 {
		return notDetected(id, "no address frames available")
	}

	ratio, ok := averageStanceRatio(in.Frames, addrLo, addrHi)
	if !ok {
		return notDetected(id, "ankle or hip landmarks unavailable at address")
	}

	conf := 0.85
	if in.Camera.Angle == swing.Oblique {
		conf = 0.7
	}
	t := in.Thresholds

	res := swing.DetectorResult{
		MistakeID:  id,
		Confidence: conf,
		Message:    "stance width matches the club",
		Details:    map[string]float64{"stance_ratio": ratio},
	}
	switch in.Club.ClubType {
	case swing.Driver:
		if ratio < t.StanceDriverMin {
			res.Detected = true
			res.Severity = severityFrom(t.StanceDriverMin-ratio, t.StanceSpan)
			res.Message = fmt.Sprintf("stance is too narrow for a driver (ratio %.2f, want at least %.2f)", ratio, t.StanceDriverMin)
		}
	case swing.Iron:
		if ratio > t.StanceIronMax {
			res.Detected = true
			res.Severity = severityFrom(ratio-t.StanceIronMax, t.StanceSpan)
			res.Message = fmt.Sprintf("stance is too wide for an iron (ratio %.2f, want at most %.2f)", ratio, t.StanceIronMax)
		}
	default:
		return notDetected(id, "club type unknown")
	}
	return res
}

func averageStanceRatio(frames []pose.Frame, lo, hi int) (float64, bool) {
	var sum float64
	var n int
	for i := lo; i <= hi && i < len(frames); i++ {
		la, ra := frames[i].Landmarks[pose.LeftAnkle], frames[i].Landmarks[pose.RightAnkle]
		lh, rh := frames[i].Landmarks[pose.LeftHip], frames[i].Landmarks[pose.RightHip]
		if !la.Visible() || !ra.Visible() || !lh.Visible() || !rh.Visible() {
			continue
		}
		hipSpan := math.Abs(lh.X - rh.X)
		if hipSpan < 1e-6 {
			continue
		}
		sum += math.Abs(la.X-ra.X) / hipSpan
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// PoorPosture flags a spine tilt at address outside the athletic range.
// Face-on footage shows lateral tilt rather than forward bend, so the check
// only runs from behind or oblique.
func PoorPosture(in *Input) swing.DetectorResult {
	const id = "poor_posture"

	if in.Camera.Angle == swing.FaceOn {
		return notDetected(id, "forward spine tilt is not visible face-on")
	}
	spine := in.Metrics.AddressSpineAngle
	if spine <= 0 {
		return notDetected(id, "no spine angle signal at address")
	}

	conf := 0.85
	if in.Camera.Angle == swing.Oblique {
		conf = 0.7
	}
	t := in.Thresholds

	res := swing.DetectorResult{
		MistakeID:  id,
		Confidence: conf,
		Message:    "address posture is in the athletic range",
		Details:    map[string]float64{"spine_angle": spine},
	}
	switch {
	case spine < t.PostureMin:
		res.Detected = true
		res.Severity = severityFrom(t.PostureMin-spine, t.PostureSpan)
		res.Message = fmt.Sprintf("standing too tall at address (spine tilt %.0f°, want at least %.0f°)", spine, t.PostureMin)
	case spine > t.PostureMax:
		res.Detected = true
		res.Severity = severityFrom(spine-t.PostureMax, t.PostureSpan)
		res.Message = fmt.Sprintf("hunched over at address (spine tilt %.0f°, want at most %.0f°)", spine, t.PostureMax)
	}
	return res
}

// KneeFlexSetup flags locked or over-flexed knees at address. Knee geometry
// reads poorly face-on, where the shins point at the camera.
func KneeFlexSetup(in *Input) swing.DetectorResult {
	const id = "knee_flex_setup"

	if in.Camera.Angle == swing.FaceOn {
		return notDetected(id, "knee flex is unreliable face-on")
	}
	knee := in.Metrics.AddressKneeFlex
	if knee <= 0 {
		return notDetected(id, "no knee angle signal at address")
	}

	conf := 0.8
	if in.Camera.Angle == swing.Oblique {
		conf = 0.7
	}
	t := in.Thresholds

	res := swing.DetectorResult{
		MistakeID:  id,
		Confidence: conf,
		Message:    "knee flex at address is in range",
		Details:    map[string]float64{"knee_angle": knee},
	}
	switch {
	case knee > t.KneeStraightMin:
		res.Detected = true
		res.Severity = severityFrom(knee-t.KneeStraightMin, t.KneeSpan)
		res.Message = fmt.Sprintf("knees are locked at address (knee angle %.0f°)", knee)
	case knee < t.KneeCrouchMax:
		res.Detected = true
		res.Severity = severityFrom(t.KneeCrouchMax-knee, t.KneeSpan)
		res.Message = fmt.Sprintf("crouched at address (knee angle %.0f°)", knee)
	}
	return res
}
