package fault

import (
	"fmt"

	"github.com/rohanv/swingsight/internal/pose"
	"github.com/rohanv/swingsight/internal/swing"
)

// HipSway flags excessive lateral hip drift during the backswing. The drift
// is measured in the image plane, so only face-on footage can see it.
func HipSway(in *Input) swing.DetectorResult {
	const id = "hip_sway"

	if in.Camera.Angle != swing.FaceOn {
		return notDetected(id, "lateral hip sway is only measurable face-on")
	}
	if in.Metrics.HipSway == nil {
		return notDetected(id, "hip sway could not be measured")
	}
	sway := *in.Metrics.HipSway
	t := in.Thresholds

	res := swing.DetectorResult{
		MistakeID:  id,
		Confidence: 0.85,
		Message:    "hips stay centered during the backswing",
		Details:    map[string]float64{"hip_sway": sway},
	}
	if sway > t.SwayMax {
		res.Detected = true
		res.Severity = severityFrom(sway-t.SwayMax, t.SwaySpan)
		res.Message = fmt.Sprintf("hips sway %.0f%% of frame width off center during the backswing", sway*100)
		res.AffectedFrames = framesInPhase(in, swing.PhaseBackswing)
	}
	return res
}

// ReversePivot flags weight moving toward the target at the top of the
// backswing instead of loading onto the trail side. It compares the hip
// center at the top against its address position along the target direction.
func ReversePivot(in *Input) swing.DetectorResult {
	const id = "reverse_pivot"

	if in.Camera.Angle != swing.FaceOn {
		return notDetected(id, "weight shift is only measurable face-on")
	}
	addrLo, addrHi := in.phaseRange(swing.PhaseAddress)
	topLo, topHi := in.phaseRange(swing.PhaseTop)
	if addrLo < 0 || topLo < 0 {
		return notDetected(id, "address or top phase missing")
	}
	addrX, ok1 := averageHipCenterX(in, addrLo, addrHi)
	topX, ok2 := averageHipCenterX(in, topLo, topHi)
	if !ok1 || !ok2 {
		return notDetected(id, "hip landmarks unavailable at address or top")
	}

	// Positive shift means the hips moved toward the target.
	shift := (topX - addrX) * in.targetDirection()
	t := in.Thresholds

	res := swing.DetectorResult{
		MistakeID:  id,
		Confidence: 0.85,
		Message:    "weight loads onto the trail side at the top",
		Details:    map[string]float64{"target_ward_shift": shift},
	}
	if shift > t.ReversePivotShift {
		res.Detected = true
		res.Severity = severityFrom(shift-t.ReversePivotShift, t.ReversePivotSpan)
		res.Message = fmt.Sprintf("hips shift toward the target at the top of the backswing (reverse pivot, %.0f%% of frame width)", shift*100)
		res.AffectedFrames = framesInPhase(in, swing.PhaseTop)
	}
	return res
}

// BentLeadArm flags a collapsed lead arm at the top of the backswing. Elbow
// angles far below anything a golfer can produce while holding a club are
// treated as tracking noise and abstained on.
func BentLeadArm(in *Input) swing.DetectorResult {
	const id = "bent_lead_arm"

	arm := in.Metrics.TopLeadArmExtension
	if arm <= 0 {
		return notDetected(id, "no lead arm signal at the top")
	}
	t := in.Thresholds
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
		Message:    "lead arm stays extended at the top",
		Details:    map[string]float64{"lead_arm_angle": arm},
	}
	if arm < t.ArmBentMin {
		res.Detected = true
		res.Severity = severityFrom(t.ArmBentMin-arm, t.ArmBentSpan)
		res.Message = fmt.Sprintf("lead arm bends to %.0f° at the top (want at least %.0f°)", arm, t.ArmBentMin)
		res.AffectedFrames = framesInPhase(in, swing.PhaseTop)
	}
	return res
}

// Overswing flags shoulder rotation past the controllable range at the top.
func Overswing(in *Input) swing.DetectorResult {
	const id = "overswing"

	if in.Camera.Angle == swing.DownTheLine {
		return notDetected(id, "shoulder rotation is not measurable down the line")
	}
	turn := in.Metrics.MaxShoulderRotation
	if turn == 0 {
		return notDetected(id, "no shoulder rotation signal")
	}
	t := in.Thresholds

	conf := 0.85
	if in.Camera.Angle == swing.Oblique {
		conf = 0.7
	}
	res := swing.DetectorResult{
		MistakeID:  id,
		Confidence: conf,
		Message:    "backswing length is under control",
		Details:    map[string]float64{"shoulder_turn": turn},
	}
	if turn > t.OverswingMax {
		res.Detected = true
		res.Severity = severityFrom(turn-t.OverswingMax, t.OverswingSpan)
		res.Message = fmt.Sprintf("shoulders turn %.0f° at the top, past the controllable range", turn)
		res.AffectedFrames = framesInPhase(in, swing.PhaseTop)
	}
	return res
}

// LimitedShoulderTurn flags an incomplete shoulder turn at the top.
func LimitedShoulderTurn(in *Input) swing.DetectorResult {
	const id = "limited_shoulder_turn"

	if in.Camera.Angle == swing.DownTheLine {
		return notDetected(id, "shoulder rotation is not measurable down the line")
	}
	turn := in.Metrics.MaxShoulderRotation
	if turn == 0 {
		return notDetected(id, "no shoulder rotation signal")
	}
	t := in.Thresholds

	conf := 0.85
	if in.Camera.Angle == swing.Oblique {
		conf = 0.7
	}
	res := swing.DetectorResult{
		MistakeID:  id,
		Confidence: conf,
		Message:    "full shoulder turn at the top",
		Details:    map[string]float64{"shoulder_turn": turn},
	}
	if turn < t.ShoulderTurnMin {
		res.Detected = true
		res.Severity = severityFrom(t.ShoulderTurnMin-turn, t.ShoulderTurnSpan)
		res.Message = fmt.Sprintf("shoulders only turn %.0f° at the top (want at least %.0f°)", turn, t.ShoulderTurnMin)
		res.AffectedFrames = framesInPhase(in, swing.PhaseBackswing)
	}
	return res
}

// RestrictedHipTurn flags hips that fail to rotate with the backswing.
func RestrictedHipTurn(in *Input) swing.DetectorResult {
	const id = "restricted_hip_turn"

	if in.Camera.Angle == swing.DownTheLine {
		return notDetected(id, "hip rotation is not measurable down the line")
	}
	turn := in.Metrics.MaxHipRotation
	if turn == 0 {
		return notDetected(id, "no hip rotation signal")
	}
	t := in.Thresholds

	conf := 0.85
	if in.Camera.Angle == swing.Oblique {
		conf = 0.7
	}
	res := swing.DetectorResult{
		MistakeID:  id,
		Confidence: conf,
		Message:    "hips rotate freely with the backswing",
		Details:    map[string]float64{"hip_turn": turn},
	}
	if turn < t.HipTurnMin {
		res.Detected = true
		res.Severity = severityFrom(t.HipTurnMin-turn, t.HipTurnSpan)
		res.Message = fmt.Sprintf("hips only turn %.0f° (want at least %.0f°)", turn, t.HipTurnMin)
		res.AffectedFrames = framesInPhase(in, swing.PhaseBackswing)
	}
	return res
}

// averageHipCenterX averages the hip-center image x over [lo, hi].
func averageHipCenterX(in *Input, lo, hi int) (float64, bool) {
	var sum float64
	var n int
	for i := lo; i <= hi && i < len(in.PhaseFrames); i++ {
		fi := in.PhaseFrames[i].FrameIndex
		if fi < 0 || fi >= len(in.Frames) {
			continue
		}
		lh := in.Frames[fi].Landmarks[pose.LeftHip]
		rh := in.Frames[fi].Landmarks[pose.RightHip]
		if !lh.Visible() || !rh.Visible() {
			continue
		}
		sum += (lh.X + rh.X) / 2
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// framesInPhase collects the frame indices labelled with the phase.
func framesInPhase(in *Input, phase swing.Phase) []int {
	var out []int
	for i := range in.PhaseFrames {
		if in.PhaseFrames[i].Phase == phase {
			out = append(out, in.PhaseFrames[i].FrameIndex)
		}
	}
	return out
}
