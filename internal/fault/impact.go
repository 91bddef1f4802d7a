package fault

import (
	"fmt"

	"github.com/rohanv/swingsight/internal/pose"
	"github.com/rohanv/swingsight/internal/swing"
)

// EarlyExtension flags the pelvis thrusting toward the ball through impact.
// Face-on footage measures it as torso lengthening relative to address; down
// the line it shows up as the spine straightening by impact.
func EarlyExtension(in *Input) swing.DetectorResult {
	const id = "early_extension"
	t := in.Thresholds

	switch in.Camera.Angle {
	case swing.FaceOn:
		if in.Metrics.ImpactExtension == nil {
			return notDetected(id, "torso extension could not be measured")
		}
		ratio := *in.Metrics.ImpactExtension
		res := swing.DetectorResult{
			MistakeID:  id,
			Confidence: 0.85,
			Message:    "posture is maintained into impact",
			Details:    map[string]float64{"extension_ratio": ratio},
		}
		if ratio > t.ExtensionMax {
			res.Detected = true
			res.Severity = severityFrom(ratio-t.ExtensionMax, t.ExtensionSpan)
			res.Message = fmt.Sprintf("body extends to %.0f%% of its address length at impact (early extension)", ratio*100)
			res.AffectedFrames = framesInPhase(in, swing.PhaseImpact)
		}
		return res

	case swing.DownTheLine:
		addr := in.Metrics.AddressSpineAngle
		impact := in.Metrics.ImpactSpineAngle
		if addr <= 0 || impact <= 0 {
			return notDetected(id, "spine angle unavailable at address or impact")
		}
		loss := addr - impact
		res := swing.DetectorResult{
			MistakeID:  id,
			Confidence: 0.85,
			Message:    "spine angle is maintained into impact",
			Details:    map[string]float64{"address_spine": addr, "impact_spine": impact},
		}
		if loss > t.SpineLossAtImpact {
			res.Detected = true
			res.Severity = severityFrom(loss-t.SpineLossAtImpact, t.SpineDeltaSpan)
			res.Message = fmt.Sprintf("spine straightens by %.0f° at impact (early extension)", loss)
			res.AffectedFrames = framesInPhase(in, swing.PhaseImpact)
		}
		return res

	default:
		return notDetected(id, "early extension is not reliable from an oblique angle")
	}
}

// ChickenWing flags a lead elbow that breaks down and pulls in through
// impact. Face-on footage measures the elbow angle directly; down the line
// the elbow is usually behind the torso, so a drop in its tracking
// visibility at impact is used as a weak occlusion proxy.
func ChickenWing(in *Input) swing.DetectorResult {
	const id = "chicken_wing"
	t := in.Thresholds

	switch in.Camera.Angle {
	case swing.FaceOn, swing.Oblique:
		arm := in.Metrics.ImpactLeadArmExtension
		if arm <= 0 {
			return notDetected(id, "no lead arm signal at impact")
		}
		if arm < t.ArmImplausible {
			return notDetected(id, fmt.Sprintf("lead elbow angle %.0f° is implausible; treating as tracking noise", arm))
		}
		conf := 0.85
		if in.Camera.Angle == swing.Oblique {
			conf = 0.7
		}
		res := swing.DetectorResult{
			MistakeID:  id,
			Confidence: conf,
			Message:    "lead arm stays extended through impact",
			Details:    map[string]float64{"lead_arm_angle": arm},
		}
		if arm < t.ChickenWingMin {
			res.Detected = true
			res.Severity = severityFrom(t.ChickenWingMin-arm, t.ChickenWingSpan)
			res.Message = fmt.Sprintf("lead elbow bends to %.0f° through impact (chicken wing)", arm)
			res.AffectedFrames = framesInPhase(in, swing.PhaseImpact)
		}
		return res

	default:
		impLo, impHi := in.phaseRange(swing.PhaseImpact)
		if impLo < 0 {
			return notDetected(id, "no impact frames")
		}
		elbow := in.leadElbowIndex()
		var minVis = 1.0
		var n int
		for i := impLo; i <= impHi && i < len(in.PhaseFrames); i++ {
			fi := in.PhaseFrames[i].FrameIndex
			if fi < 0 || fi >= len(in.Frames) {
				continue
			}
			v := in.Frames[fi].Landmarks[elbow].Visibility
			if v < minVis {
				minVis = v
			}
			n++
		}
		if n == 0 {
			return notDetected(id, "no impact frames")
		}
		res := swing.DetectorResult{
			MistakeID:  id,
			Confidence: 0.6,
			Message:    "lead elbow stays trackable through impact",
			Details:    map[string]float64{"min_elbow_visibility": minVis},
		}
		if minVis < t.OcclusionVisibility {
			res.Detected = true
			res.Severity = severityFrom(t.OcclusionVisibility-minVis, t.OcclusionVisibility)
			res.Message = "lead elbow disappears behind the body at impact, a common chicken-wing signature"
			res.AffectedFrames = framesInPhase(in, swing.PhaseImpact)
		}
		return res
	}
}

// HeadMovement flags the head drifting off its address position during the
// swing. A displacement larger than most of the body height is tracker
// failure, not anatomy, and is abstained on.
func HeadMovement(in *Input) swing.DetectorResult {
	const id = "head_movement"

	if in.Camera.Angle != swing.FaceOn {
		return notDetected(id, "head stability is only measured face-on")
	}
	if in.Metrics.HeadStability == nil {
		return notDetected(id, "head position could not be tracked")
	}
	move := *in.Metrics.HeadStability
	t := in.Thresholds

	if h, ok := bodyHeight(in); ok && move > t.HeadMoveImplausible*h {
		return notDetected(id, "head displacement exceeds most of the body height; treating as tracking failure")
	}

	res := swing.DetectorResult{
		MistakeID:  id,
		Confidence: 0.85,
		Message:    "head stays steady over the ball",
		Details:    map[string]float64{"head_movement": move},
	}
	if move > t.HeadMoveMax {
		res.Detected = true
		res.Severity = severityFrom(move-t.HeadMoveMax, t.HeadMoveSpan)
		res.Message = fmt.Sprintf("head moves %.0f%% of frame height off the ball during the swing", move*100)
	}
	return res
}

// HangingBack flags the weight staying on the trail side at impact instead
// of shifting through toward the target.
func HangingBack(in *Input) swing.DetectorResult {
	const id = "hanging_back"

	if in.Camera.Angle != swing.FaceOn {
		return notDetected(id, "weight shift at impact is only measurable face-on")
	}
	addrLo, addrHi := in.phaseRange(swing.PhaseAddress)
	impLo, impHi := in.phaseRange(swing.PhaseImpact)
	if addrLo < 0 || impLo < 0 {
		return notDetected(id, "address or impact phase missing")
	}
	addrX, ok1 := averageHipCenterX(in, addrLo, addrHi)
	impX, ok2 := averageHipCenterX(in, impLo, impHi)
	if !ok1 || !ok2 {
		return notDetected(id, "hip landmarks unavailable at address or impact")
	}

	// Negative shift means the hips sit trail-side of address at impact.
	shift := (impX - addrX) * in.targetDirection()
	t := in.Thresholds

	res := swing.DetectorResult{
		MistakeID:  id,
		Confidence: 0.85,
		Message:    "weight moves through toward the target at impact",
		Details:    map[string]float64{"target_ward_shift": shift},
	}
	if shift < -t.HangBackOffset {
		res.Detected = true
		res.Severity = severityFrom(-shift-t.HangBackOffset, t.HangBackSpan)
		res.Message = fmt.Sprintf("weight hangs back on the trail side at impact (%.0f%% of frame width behind address)", -shift*100)
		res.AffectedFrames = framesInPhase(in, swing.PhaseImpact)
	}
	return res
}

// bodyHeight estimates the golfer's height in normalized image units from
// the first frame with a visible head and ankles.
func bodyHeight(in *Input) (float64, bool) {
	for i := range in.Frames {
		nose := in.Frames[i].Landmarks[pose.Nose]
		la := in.Frames[i].Landmarks[pose.LeftAnkle]
		ra := in.Frames[i].Landmarks[pose.RightAnkle]
		if !nose.Visible() || !la.Visible() || !ra.Visible() {
			continue
		}
		h := (la.Y+ra.Y)/2 - nose.Y
		if h > 0 {
			return h, true
		}
	}
	return 0, false
}
