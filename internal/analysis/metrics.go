// Package analysis implements the swing analysis engine: camera-angle and
// club-type classification, phase segmentation, metric aggregation, scoring
// and fault orchestration. Every stage is a pure function of its inputs;
// weak or missing signals degrade confidence instead of failing.
package analysis

import (
	"math"

	"github.com/golang/geo/r2"

	"github.com/rohanv/swingsight/internal/geom"
	"github.com/rohanv/swingsight/internal/pose"
	"github.com/rohanv/swingsight/internal/swing"
)

// fullExtension is the safe default for extension-style angles when the
// required landmarks are missing: a straight joint, not a measured value.
const fullExtension = 180.0

// point projects a landmark onto the image plane.
func point(lm pose.Landmark) r2.Point {
	return r2.Point{X: lm.X, Y: lm.Y}
}

// jointAngle returns the interior angle at mid for the chain a-mid-b, or the
// given default when any landmark failed the visibility threshold.
func jointAngle(mid, a, b pose.Landmark, def float64) float64 {
	if !mid.Visible() || !a.Visible() || !b.Visible() {
		return def
	}
	v := geom.AngleAt(point(mid), point(a), point(b))
	if v == 0 {
		return def
	}
	return v
}

// horizontalRotation estimates the rotation of the line l→r about the
// vertical axis, in degrees (-180, 180]. This is the one place depth is
// consulted; everywhere else z is discarded as unreliable.
func horizontalRotation(l, r pose.Landmark) float64 {
	dx := l.X - r.X
	dz := l.Z - r.Z
	if math.Abs(dx) < 1e-10 && math.Abs(dz) < 1e-10 {
		return 0
	}
	return geom.NormalizeAngle(math.Atan2(dz, dx) * 180 / math.Pi)
}

// CalculateFrameMetrics derives the flat per-frame metric record from one
// landmark frame. It never fails: missing landmarks produce the documented
// defaults and surface only as weaker downstream confidence.
func CalculateFrameMetrics(f *pose.Frame) swing.FrameMetrics {
	var m swing.FrameMetrics

	ls, rs := f.Landmarks[pose.LeftShoulder], f.Landmarks[pose.RightShoulder]
	lh, rh := f.Landmarks[pose.LeftHip], f.Landmarks[pose.RightHip]

	if ls.Visible() && rs.Visible() {
		m.ShoulderRotation = horizontalRotation(ls, rs)
	}
	if lh.Visible() && rh.Visible() {
		m.HipRotation = horizontalRotation(lh, rh)
	}
	m.XFactor = geom.NormalizeAngle(m.ShoulderRotation - m.HipRotation)

	hipC := f.HipCenter()
	shoulderC := f.ShoulderCenter()
	if hipC.Visible() && shoulderC.Visible() {
		m.SpineAngle = geom.VerticalTilt(point(hipC), point(shoulderC))
	}

	m.LeftArmExtension = jointAngle(
		f.Landmarks[pose.LeftElbow], f.Landmarks[pose.LeftShoulder], f.Landmarks[pose.LeftWrist], fullExtension)
	m.RightArmExtension = jointAngle(
		f.Landmarks[pose.RightElbow], f.Landmarks[pose.RightShoulder], f.Landmarks[pose.RightWrist], fullExtension)

	m.LeftKneeFlex = jointAngle(
		f.Landmarks[pose.LeftKnee], f.Landmarks[pose.LeftHip], f.Landmarks[pose.LeftAnkle], fullExtension)
	m.RightKneeFlex = jointAngle(
		f.Landmarks[pose.RightKnee], f.Landmarks[pose.RightHip], f.Landmarks[pose.RightAnkle], fullExtension)

	m.LeftWristHinge = jointAngle(
		f.Landmarks[pose.LeftWrist], f.Landmarks[pose.LeftElbow], f.Landmarks[pose.LeftIndex], fullExtension)
	m.RightWristHinge = jointAngle(
		f.Landmarks[pose.RightWrist], f.Landmarks[pose.RightElbow], f.Landmarks[pose.RightIndex], fullExtension)

	if hipC.Visible() {
		if lw := f.Landmarks[pose.LeftWrist]; lw.Visible() {
			m.LeftHandX = lw.X - hipC.X
			m.LeftHandY = lw.Y - hipC.Y
		}
		if rw := f.Landmarks[pose.RightWrist]; rw.Visible() {
			m.RightHandX = rw.X - hipC.X
			m.RightHandY = rw.Y - hipC.Y
		}
	}

	return m
}

// CalculateAllFrameMetrics maps CalculateFrameMetrics over a recording.
func CalculateAllFrameMetrics(frames []pose.Frame) []swing.FrameMetrics {
	out := make([]swing.FrameMetrics, len(frames))
	for i := range frames {
		out[i] = CalculateFrameMetrics(&frames[i])
	}
	return out
}
