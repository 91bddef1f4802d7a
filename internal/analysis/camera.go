package analysis

import (
	"math"

	"github.com/rohanv/swingsight/internal/pose"
	"github.com/rohanv/swingsight/internal/swing"
)

// Camera classification constants. The ratio compares the image-plane width
// of the shoulder/hip lines against their depth span: a camera square to the
// chest sees a wide, shallow line; a camera behind the golfer sees the
// opposite.
const (
	cameraSampleFrames = 10
	faceOnRatioMin     = 2.0
	dtlRatioMax        = 0.5
	ratioEpsilon       = 0.001

	// obliqueConfidence is fixed: an oblique read is never fully trusted.
	obliqueConfidence = 0.5
)

// frameRatio computes the width/depth ratio for one frame, averaging the
// shoulder and hip lines. ok is false when neither line is visible.
func frameRatio(f *pose.Frame) (ratio float64, ok bool) {
	var sum float64
	var n int

	pairs := [2][2]int{
		{pose.LeftShoulder, pose.RightShoulder},
		{pose.LeftHip, pose.RightHip},
	}
	for _, p := range pairs {
		l, r := f.Landmarks[p[0]], f.Landmarks[p[1]]
		if !l.Visible() || !r.Visible() {
			continue
		}
		dx := math.Abs(l.X - r.X)
		dz := math.Abs(l.Z - r.Z)
		sum += dx / (dz + ratioEpsilon)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

// classifyRatio applies the threshold logic to a ratio. Confidence grows
// linearly with the distance past the threshold and is capped at 1.
func classifyRatio(ratio float64) swing.CameraAngleResult {
	switch {
	case ratio > faceOnRatioMin:
		conf := 0.5 + (ratio-faceOnRatioMin)/4.0
		return swing.CameraAngleResult{Angle: swing.FaceOn, Confidence: math.Min(conf, 1), Ratio: ratio}
	case ratio < dtlRatioMax:
		conf := 0.5 + (dtlRatioMax-ratio)*2
		return swing.CameraAngleResult{Angle: swing.DownTheLine, Confidence: math.Min(conf, 1), Ratio: ratio}
	default:
		return swing.CameraAngleResult{Angle: swing.Oblique, Confidence: obliqueConfidence, Ratio: ratio}
	}
}

// ClassifyCameraFrame classifies a single frame. A frame with no usable
// landmarks returns the face-on/confidence-0 sentinel meaning "no signal".
func ClassifyCameraFrame(f *pose.Frame) swing.CameraAngleResult {
	ratio, ok := frameRatio(f)
	if !ok {
		return swing.CameraAngleResult{Angle: swing.FaceOn, Confidence: 0}
	}
	return classifyRatio(ratio)
}

// ClassifyCameraAngle classifies a full recording by sampling its first
// frames, discarding no-signal samples and averaging the surviving ratios
// before re-running the threshold logic. Averaging raw ratios damps
// single-frame landmark noise far better than voting per frame.
func ClassifyCameraAngle(frames []pose.Frame) swing.CameraAngleResult {
	n := len(frames)
	if n > cameraSampleFrames {
		n = cameraSampleFrames
	}

	var sum float64
	var valid int
	for i := 0; i < n; i++ {
		ratio, ok := frameRatio(&frames[i])
		if !ok {
			continue
		}
		sum += ratio
		valid++
	}
	if valid == 0 {
		return swing.CameraAngleResult{Angle: swing.FaceOn, Confidence: 0}
	}
	return classifyRatio(sum / float64(valid))
}
