package fault

import (
	"strings"
	"testing"

	"github.com/rohanv/swingsight/internal/pose"
	"github.com/rohanv/swingsight/internal/swing"
)

// hipFrame builds a frame with visible hips centered at cx with a 0.08 span.
func hipFrame(cx float64) pose.Frame {
	var f pose.Frame
	f.Landmarks[pose.LeftHip] = pose.Landmark{X: cx + 0.04, Y: 0.52, Visibility: 1}
	f.Landmarks[pose.RightHip] = pose.Landmark{X: cx - 0.04, Y: 0.52, Visibility: 1}
	return f
}

// stanceFrame adds ankles to a hip frame so the ankle/hip span ratio is exact.
func stanceFrame(cx, ratio float64) pose.Frame {
	f := hipFrame(cx)
	half := ratio * 0.04
	f.Landmarks[pose.LeftAnkle] = pose.Landmark{X: cx + half, Y: 0.88, Visibility: 1}
	f.Landmarks[pose.RightAnkle] = pose.Landmark{X: cx - half, Y: 0.88, Visibility: 1}
	return f
}

func faceOnInput() *Input {
	return &Input{
		Handedness: swing.RightHanded,
		Camera:     swing.CameraAngleResult{Angle: swing.FaceOn, Confidence: 0.9},
		Thresholds: DefaultThresholds(),
	}
}

func assertAbstains(t *testing.T, res swing.DetectorResult) {
	t.Helper()
	if res.Detected {
		t.Errorf("%s: detected, want abstention", res.MistakeID)
	}
	if res.Confidence != 0 {
		t.Errorf("%s: confidence = %v, want 0", res.MistakeID, res.Confidence)
	}
	if res.Message == "" {
		t.Errorf("%s: abstention must state a reason", res.MistakeID)
	}
}

func TestPoorTempoRatio(t *testing.T) {
	t.Run("playable ratio", func(t *testing.T) {
		in := faceOnInput()
		in.Tempo = swing.TempoMetrics{BackswingDuration: 0.9, DownswingDuration: 0.3, TempoRatio: 3.0}

		res := PoorTempoRatio(in)
		if res.Detected {
			t.Errorf("ratio 3.0 detected: %s", res.Message)
		}
		if res.Confidence != 0.85 {
			t.Errorf("confidence = %v, want 0.85", res.Confidence)
		}
	})

	t.Run("rushed swing", func(t *testing.T) {
		in := faceOnInput()
		in.Tempo = swing.TempoMetrics{BackswingDuration: 0.4, DownswingDuration: 0.3, TempoRatio: 1.33}

		res := PoorTempoRatio(in)
		if !res.Detected {
			t.Fatal("ratio 1.33 should be detected")
		}
		// (2.2 - 1.33) / 1.0 * 100
		if want := 87.0; !almostEqual(res.Severity, want) {
			t.Errorf("severity = %v, want %v", res.Severity, want)
		}
	})

	t.Run("dragging backswing", func(t *testing.T) {
		in := faceOnInput()
		in.Tempo = swing.TempoMetrics{BackswingDuration: 1.9, DownswingDuration: 0.4, TempoRatio: 4.75}

		res := PoorTempoRatio(in)
		if !res.Detected {
			t.Fatal("ratio 4.75 should be detected")
		}
		// (4.75 - 4.0) / 1.5 * 100
		if want := 50.0; !almostEqual(res.Severity, want) {
			t.Errorf("severity = %v, want %v", res.Severity, want)
		}
	})

	t.Run("severity grows with the deviation", func(t *testing.T) {
		prev := -1.0
		for ratio := 2.1; ratio > 0.5; ratio -= 0.2 {
			in := faceOnInput()
			in.Tempo = swing.TempoMetrics{BackswingDuration: ratio, DownswingDuration: 1, TempoRatio: ratio}

			res := PoorTempoRatio(in)
			if !res.Detected {
				t.Fatalf("ratio %.1f should be detected", ratio)
			}
			if res.Severity < prev {
				t.Fatalf("severity dropped from %v to %v at ratio %.1f", prev, res.Severity, ratio)
			}
			if res.Severity > 100 {
				t.Fatalf("severity %v exceeds 100 at ratio %.1f", res.Severity, ratio)
			}
			prev = res.Severity
		}
		if !almostEqual(prev, 100) {
			t.Errorf("severity should saturate at 100, ended at %v", prev)
		}
	})

	t.Run("abstains without durations", func(t *testing.T) {
		in := faceOnInput()
		in.Tempo = swing.TempoMetrics{BackswingDuration: 0.9}
		assertAbstains(t, PoorTempoRatio(in))
	})
}

func TestShortBackswing(t *testing.T) {
	in := faceOnInput()
	in.Tempo = swing.TempoMetrics{BackswingDuration: 0.9}
	if res := ShortBackswing(in); res.Detected {
		t.Errorf("0.9s backswing detected: %s", res.Message)
	}

	in.Tempo.BackswingDuration = 0.2
	res := ShortBackswing(in)
	if !res.Detected {
		t.Fatal("0.2s backswing should be detected")
	}
	// (0.55 - 0.2) / 0.35 saturates.
	if !almostEqual(res.Severity, 100) {
		t.Errorf("severity = %v, want 100", res.Severity)
	}

	in.Tempo.BackswingDuration = 0
	assertAbstains(t, ShortBackswing(in))
}

func TestStanceWidth(t *testing.T) {
	build := func(ratio float64) *Input {
		in := faceOnInput()
		in.Frames = []pose.Frame{stanceFrame(0.5, ratio)}
		in.PhaseFrames = []swing.PhaseFrame{{FrameIndex: 0, Phase: swing.PhaseAddress}}
		return in
	}

	t.Run("suppressed without an override", func(t *testing.T) {
		in := build(1.2)
		in.Club = swing.ClubTypeResult{ClubType: swing.Driver, Confidence: 0.9}
		res := StanceWidth(in)
		assertAbstains(t, res)
		if !strings.Contains(res.Message, "override") {
			t.Errorf("abstention should explain the override requirement, got %q", res.Message)
		}
	})

	t.Run("narrow driver stance", func(t *testing.T) {
		in := build(1.2)
		in.Club = swing.ClubTypeResult{ClubType: swing.Driver, Confidence: 1}
		in.ClubOverridden = true

		res := StanceWidth(in)
		if !res.Detected {
			t.Fatal("ratio 1.2 should be too narrow for a driver")
		}
		// (1.70 - 1.2) / 0.50 saturates.
		if !almostEqual(res.Severity, 100) {
			t.Errorf("severity = %v, want 100", res.Severity)
		}
		if res.Confidence != 0.85 {
			t.Errorf("confidence = %v, want 0.85", res.Confidence)
		}
	})

	t.Run("wide iron stance", func(t *testing.T) {
		in := build(2.0)
		in.Club = swing.ClubTypeResult{ClubType: swing.Iron, Confidence: 1}
		in.ClubOverridden = true

		res := StanceWidth(in)
		if !res.Detected {
			t.Fatal("ratio 2.0 should be too wide for an iron")
		}
		// (2.0 - 1.60) / 0.50 * 100
		if want := 80.0; !almostEqual(res.Severity, want) {
			t.Errorf("severity = %v, want %v", res.Severity, want)
		}
	})

	t.Run("in-range driver stance", func(t *testing.T) {
		in := build(1.9)
		in.Club = swing.ClubTypeResult{ClubType: swing.Driver, Confidence: 1}
		in.ClubOverridden = true

		res := StanceWidth(in)
		if res.Detected {
			t.Errorf("ratio 1.9 detected: %s", res.Message)
		}
		if res.Confidence == 0 {
			t.Error("in-range verdict should carry confidence")
		}
	})

	t.Run("abstains down the line", func(t *testing.T) {
		in := build(1.2)
		in.Club = swing.ClubTypeResult{ClubType: swing.Driver, Confidence: 1}
		in.ClubOverridden = true
		in.Camera.Angle = swing.DownTheLine
		assertAbstains(t, StanceWidth(in))
	})

	t.Run("abstains for an unknown club", func(t *testing.T) {
		in := build(1.2)
		in.Club = swing.ClubTypeResult{ClubType: swing.UnknownClub}
		in.ClubOverridden = true
		assertAbstains(t, StanceWidth(in))
	})
}

func TestFaceOnOnlyDetectorsAbstainDownTheLine(t *testing.T) {
	in := faceOnInput()
	in.Camera.Angle = swing.DownTheLine
	sway := 0.2
	in.Metrics.HipSway = &sway

	for name, fn := range map[string]Func{
		"hip_sway":      HipSway,
		"reverse_pivot": ReversePivot,
		"lateral_slide": LateralSlide,
		"head_movement": HeadMovement,
		"hanging_back":  HangingBack,
	} {
		t.Run(name, func(t *testing.T) {
			assertAbstains(t, fn(in))
		})
	}
}

func TestHipSway(t *testing.T) {
	in := faceOnInput()

	assertAbstains(t, HipSway(in)) // no measurement

	sway := 0.03
	in.Metrics.HipSway = &sway
	if res := HipSway(in); res.Detected {
		t.Errorf("3%% sway detected: %s", res.Message)
	}

	sway = 0.13
	res := HipSway(in)
	if !res.Detected {
		t.Fatal("13% sway should be detected")
	}
	// (0.13 - 0.08) / 0.10 * 100
	if want := 50.0; !almostEqual(res.Severity, want) {
		t.Errorf("severity = %v, want %v", res.Severity, want)
	}
}

func TestReversePivot(t *testing.T) {
	// Right-handed face-on: the target is image-left, so a hip center that
	// drifts left by the top is a reverse pivot.
	in := faceOnInput()
	in.Frames = []pose.Frame{hipFrame(0.50), hipFrame(0.44)}
	in.PhaseFrames = []swing.PhaseFrame{
		{FrameIndex: 0, Phase: swing.PhaseAddress},
		{FrameIndex: 1, Phase: swing.PhaseTop},
	}

	res := ReversePivot(in)
	if !res.Detected {
		t.Fatal("0.06 target-ward shift should be detected")
	}
	// (0.06 - 0.03) / 0.06 * 100
	if want := 50.0; !almostEqual(res.Severity, want) {
		t.Errorf("severity = %v, want %v", res.Severity, want)
	}

	// Loading onto the trail side (image-right) is correct.
	in.Frames[1] = hipFrame(0.56)
	if res := ReversePivot(in); res.Detected {
		t.Errorf("trail-side load detected: %s", res.Message)
	}

	// A left-handed golfer loads the opposite way.
	in.Handedness = swing.LeftHanded
	if res := ReversePivot(in); !res.Detected {
		t.Error("image-right drift is target-ward for a left-hander")
	}
}

func TestBentLeadArm(t *testing.T) {
	in := faceOnInput()

	assertAbstains(t, BentLeadArm(in)) // no signal

	in.Metrics.TopLeadArmExtension = 60
	res := BentLeadArm(in)
	assertAbstains(t, res)
	if !strings.Contains(res.Message, "tracking noise") {
		t.Errorf("implausible angle should read as tracking noise, got %q", res.Message)
	}

	in.Metrics.TopLeadArmExtension = 130
	res = BentLeadArm(in)
	if !res.Detected {
		t.Fatal("130° lead arm should be detected")
	}
	// (150 - 130) / 40 * 100
	if want := 50.0; !almostEqual(res.Severity, want) {
		t.Errorf("severity = %v, want %v", res.Severity, want)
	}

	in.Metrics.TopLeadArmExtension = 172
	if res := BentLeadArm(in); res.Detected {
		t.Errorf("172° lead arm detected: %s", res.Message)
	}

	in.Camera.Angle = swing.Oblique
	if res := BentLeadArm(in); res.Confidence != 0.7 {
		t.Errorf("oblique confidence = %v, want 0.7", res.Confidence)
	}
}

func TestRegistry_RunDropsAbstentions(t *testing.T) {
	abstain := func(in *Input) swing.DetectorResult {
		return notDetected("abstainer", "not applicable")
	}
	detect := func(in *Input) swing.DetectorResult {
		return swing.DetectorResult{MistakeID: "detector", Detected: true, Severity: 50, Confidence: 0.9}
	}
	clean := func(in *Input) swing.DetectorResult {
		return swing.DetectorResult{MistakeID: "clean", Confidence: 0.85, Message: "all good"}
	}

	r := NewRegistry()
	r.Register(abstain)
	r.Register(detect)
	r.Register(clean)
	r.Register(nil) // ignored

	out := r.Run(faceOnInput())
	if len(out) != 2 {
		t.Fatalf("got %d results, want 2 (abstention dropped)", len(out))
	}
	if out[0].MistakeID != "detector" || out[1].MistakeID != "clean" {
		t.Errorf("results out of order: %s, %s", out[0].MistakeID, out[1].MistakeID)
	}
}

func TestDefault_RosterSize(t *testing.T) {
	if got := len(Default().units); got != 20 {
		t.Errorf("default roster has %d detectors, want 20", got)
	}
}

func TestPenalty(t *testing.T) {
	verdict := func(severity, conf float64) swing.DetectorResult {
		return swing.DetectorResult{Detected: true, Severity: severity, Confidence: conf}
	}

	tests := []struct {
		name    string
		results []swing.DetectorResult
		want    float64
	}{
		{"none", nil, 0},
		{"clean verdicts cost nothing", []swing.DetectorResult{{Confidence: 0.85}}, 0},
		{"severe", []swing.DetectorResult{verdict(80, 1)}, 5},
		{"moderate", []swing.DetectorResult{verdict(50, 1)}, 3},
		{"minor", []swing.DetectorResult{verdict(10, 1)}, 1},
		{"tier edges", []swing.DetectorResult{verdict(70, 1), verdict(40, 1), verdict(39.9, 1)}, 9},
		{"confidence weighted", []swing.DetectorResult{verdict(80, 0.5)}, 2.5},
		{"capped", []swing.DetectorResult{
			verdict(90, 1), verdict(90, 1), verdict(90, 1), verdict(90, 1),
			verdict(90, 1), verdict(90, 1), verdict(90, 1), verdict(90, 1),
		}, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Penalty(tt.results); !almostEqual(got, tt.want) {
				t.Errorf("Penalty = %v, want %v", got, tt.want)
			}
		})
	}
}

func almostEqual(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-9
}
