package analysis

import (
	"reflect"
	"testing"

	"github.com/rohanv/swingsight/internal/fault"
	"github.com/rohanv/swingsight/internal/pose"
	"github.com/rohanv/swingsight/internal/swing"
)

func TestEngine_Analyze_EmptyInput(t *testing.T) {
	e := NewEngine()
	res := e.Analyze(nil, "video-1", Options{})

	if res.VideoID != "video-1" {
		t.Errorf("VideoID = %q, want video-1", res.VideoID)
	}
	if res.FrameCount != 0 {
		t.Errorf("FrameCount = %d, want 0", res.FrameCount)
	}
	if res.CameraAngle.Confidence != 0 {
		t.Errorf("camera confidence = %v, want 0 for empty input", res.CameraAngle.Confidence)
	}
	if res.Club.ClubType != swing.UnknownClub {
		t.Errorf("ClubType = %q, want unknown", res.Club.ClubType)
	}
	if len(res.PhaseFrames) != 0 || len(res.Segments) != 0 || len(res.Faults) != 0 {
		t.Error("empty input should produce no phases or faults")
	}
	if res.OverallScore != 0 {
		t.Errorf("OverallScore = %v, want 0", res.OverallScore)
	}
}

func TestEngine_Analyze_Deterministic(t *testing.T) {
	e := NewEngine()
	frames := pose.SyntheticSwing(pose.SyntheticSwingOpts{View: pose.ViewFaceOn})

	a := e.Analyze(frames, "video-1", Options{})
	b := e.Analyze(frames, "video-1", Options{})

	if !reflect.DeepEqual(a, b) {
		t.Error("identical input must produce identical results")
	}
}

func TestEngine_Analyze_FullSwing(t *testing.T) {
	e := NewEngine()
	frames := pose.SyntheticSwing(pose.SyntheticSwingOpts{View: pose.ViewFaceOn})

	res := e.Analyze(frames, "video-1", Options{})

	if res.FrameCount != len(frames) {
		t.Errorf("FrameCount = %d, want %d", res.FrameCount, len(frames))
	}
	if res.Handedness != swing.RightHanded {
		t.Errorf("Handedness = %q, want right", res.Handedness)
	}
	if res.CameraAngle.Angle != swing.FaceOn {
		t.Errorf("camera angle = %q, want face_on", res.CameraAngle.Angle)
	}
	if len(res.PhaseFrames) != len(frames) {
		t.Errorf("PhaseFrames = %d, want %d", len(res.PhaseFrames), len(frames))
	}
	if len(res.Segments) == 0 {
		t.Error("expected phase segments")
	}
	if res.BaseScore <= 0 || res.BaseScore > 100 {
		t.Errorf("BaseScore = %v, want in (0, 100]", res.BaseScore)
	}
	if res.OverallScore < 0 || res.OverallScore > res.BaseScore {
		t.Errorf("OverallScore = %v, want in [0, BaseScore=%v]", res.OverallScore, res.BaseScore)
	}
	if res.FaultPenalty < 0 || res.FaultPenalty > 25 {
		t.Errorf("FaultPenalty = %v, want in [0, 25]", res.FaultPenalty)
	}

	// Every surviving fault verdict must carry signal.
	for _, f := range res.Faults {
		if !f.Detected && f.Confidence == 0 {
			t.Errorf("abstention %q leaked into the result", f.MistakeID)
		}
	}
}

func TestEngine_Analyze_ClubOverride(t *testing.T) {
	e := NewEngine()
	frames := pose.SyntheticSwing(pose.SyntheticSwingOpts{View: pose.ViewFaceOn})

	plain := e.Analyze(frames, "video-1", Options{})
	overridden := e.Analyze(frames, "video-1", Options{ClubTypeOverride: swing.Driver})

	if plain.ClubTypeOverridden {
		t.Error("plain analysis should not be marked overridden")
	}
	if !overridden.ClubTypeOverridden {
		t.Error("override should be recorded")
	}
	if overridden.Club.ClubType != swing.Driver {
		t.Errorf("ClubType = %q, want driver", overridden.Club.ClubType)
	}
	if overridden.Club.Confidence != 1 {
		t.Errorf("override confidence = %v, want 1", overridden.Club.Confidence)
	}

	// Reverting the override must reproduce the original verdict exactly.
	reverted := e.Analyze(frames, "video-1", Options{})
	if !reflect.DeepEqual(plain, reverted) {
		t.Error("analysis after reverting an override must match the original")
	}
}

func TestEngine_Analyze_DownTheLineGating(t *testing.T) {
	e := NewEngine()
	frames := pose.SyntheticSwing(pose.SyntheticSwingOpts{View: pose.ViewDownTheLine})

	res := e.Analyze(frames, "video-1", Options{})

	if res.CameraAngle.Angle != swing.DownTheLine {
		t.Fatalf("camera angle = %q, want down_the_line", res.CameraAngle.Angle)
	}
	if res.Metrics.HipSway != nil {
		t.Error("HipSway must be nil down the line")
	}

	// Face-on-exclusive detectors must not reach the verdict list.
	faceOnOnly := map[string]bool{
		"hip_sway":      true,
		"reverse_pivot": true,
		"lateral_slide": true,
		"head_movement": true,
		"hanging_back":  true,
	}
	for _, f := range res.Faults {
		if faceOnOnly[f.MistakeID] {
			t.Errorf("detector %q should abstain down the line", f.MistakeID)
		}
	}
}

func TestEngine_WithDetectors(t *testing.T) {
	// An engine with an empty registry reports no faults and no penalty.
	e := NewEngine(WithDetectors(fault.NewRegistry()))
	frames := pose.SyntheticSwing(pose.SyntheticSwingOpts{View: pose.ViewFaceOn})

	res := e.Analyze(frames, "video-1", Options{})
	if len(res.Faults) != 0 {
		t.Errorf("expected no faults from an empty registry, got %d", len(res.Faults))
	}
	if res.FaultPenalty != 0 {
		t.Errorf("FaultPenalty = %v, want 0", res.FaultPenalty)
	}
	if !almostEqualF(res.OverallScore, res.BaseScore) {
		t.Errorf("OverallScore = %v, want BaseScore %v", res.OverallScore, res.BaseScore)
	}
}
