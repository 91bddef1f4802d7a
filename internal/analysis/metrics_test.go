package analysis

import (
	"math"
	"testing"

	"github.com/rohanv/swingsight/internal/pose"
)

func TestCalculateFrameMetrics_EmptyFrameDefaults(t *testing.T) {
	var f pose.Frame // every landmark at visibility 0
	m := CalculateFrameMetrics(&f)

	if m.ShoulderRotation != 0 || m.HipRotation != 0 || m.XFactor != 0 {
		t.Errorf("rotations should default to 0, got shoulder=%v hip=%v x=%v",
			m.ShoulderRotation, m.HipRotation, m.XFactor)
	}
	if m.SpineAngle != 0 {
		t.Errorf("spine angle should default to 0, got %v", m.SpineAngle)
	}
	if m.LeftArmExtension != 180 || m.RightArmExtension != 180 {
		t.Errorf("arm extensions should default to 180, got %v/%v",
			m.LeftArmExtension, m.RightArmExtension)
	}
	if m.LeftKneeFlex != 180 || m.RightKneeFlex != 180 {
		t.Errorf("knee flexes should default to 180, got %v/%v",
			m.LeftKneeFlex, m.RightKneeFlex)
	}
	if m.LeftWristHinge != 180 || m.RightWristHinge != 180 {
		t.Errorf("wrist hinges should default to 180, got %v/%v",
			m.LeftWristHinge, m.RightWristHinge)
	}
}

func TestCalculateFrameMetrics_ShoulderRotation(t *testing.T) {
	var f pose.Frame
	// Shoulders square to the camera: pure x separation, no depth.
	f.Landmarks[pose.LeftShoulder] = pose.Landmark{X: 0.7, Y: 0.3, Visibility: 1}
	f.Landmarks[pose.RightShoulder] = pose.Landmark{X: 0.3, Y: 0.3, Visibility: 1}

	m := CalculateFrameMetrics(&f)
	if math.Abs(m.ShoulderRotation) > 1e-9 {
		t.Errorf("square shoulders should read 0 rotation, got %v", m.ShoulderRotation)
	}

	// Rotate the line 45 degrees into depth.
	f.Landmarks[pose.LeftShoulder] = pose.Landmark{X: 0.6, Y: 0.3, Z: 0.1, Visibility: 1}
	f.Landmarks[pose.RightShoulder] = pose.Landmark{X: 0.4, Y: 0.3, Z: -0.1, Visibility: 1}

	m = CalculateFrameMetrics(&f)
	if math.Abs(m.ShoulderRotation-45) > 1e-6 {
		t.Errorf("expected 45 degree rotation, got %v", m.ShoulderRotation)
	}
}

func TestCalculateFrameMetrics_SpineAngle(t *testing.T) {
	var f pose.Frame
	f.Landmarks[pose.LeftHip] = pose.Landmark{X: 0.45, Y: 0.6, Visibility: 1}
	f.Landmarks[pose.RightHip] = pose.Landmark{X: 0.55, Y: 0.6, Visibility: 1}
	// Shoulder center offset horizontally by the same amount as vertically:
	// a 45 degree lean.
	f.Landmarks[pose.LeftShoulder] = pose.Landmark{X: 0.65, Y: 0.4, Visibility: 1}
	f.Landmarks[pose.RightShoulder] = pose.Landmark{X: 0.75, Y: 0.4, Visibility: 1}

	m := CalculateFrameMetrics(&f)
	if math.Abs(m.SpineAngle-45) > 1e-6 {
		t.Errorf("expected 45 degree spine tilt, got %v", m.SpineAngle)
	}
}

func TestCalculateFrameMetrics_HandPositions(t *testing.T) {
	var f pose.Frame
	f.Landmarks[pose.LeftHip] = pose.Landmark{X: 0.45, Y: 0.6, Visibility: 1}
	f.Landmarks[pose.RightHip] = pose.Landmark{X: 0.55, Y: 0.6, Visibility: 1}
	f.Landmarks[pose.LeftWrist] = pose.Landmark{X: 0.40, Y: 0.75, Visibility: 1}

	m := CalculateFrameMetrics(&f)
	if math.Abs(m.LeftHandX-(-0.10)) > 1e-9 {
		t.Errorf("LeftHandX = %v, want -0.10", m.LeftHandX)
	}
	if math.Abs(m.LeftHandY-0.15) > 1e-9 {
		t.Errorf("LeftHandY = %v, want 0.15", m.LeftHandY)
	}
	// Invisible wrist leaves the relative position at zero.
	if m.RightHandX != 0 || m.RightHandY != 0 {
		t.Errorf("invisible wrist should leave zero position, got (%v, %v)",
			m.RightHandX, m.RightHandY)
	}
}

func TestCalculateAllFrameMetrics_Length(t *testing.T) {
	frames := pose.SyntheticSwing(pose.SyntheticSwingOpts{View: pose.ViewFaceOn})
	out := CalculateAllFrameMetrics(frames)
	if len(out) != len(frames) {
		t.Fatalf("metrics length = %d, want %d", len(out), len(frames))
	}
}
