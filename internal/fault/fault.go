// Package fault implements the pluggable swing-fault detector framework: a
// registry of independent detector functions sharing one input/output
// contract, and the orchestration and score-penalty logic over their
// verdicts.
//
// Every detector is a pure function and is individually responsible for
// declaring itself inapplicable when its required camera angle, phase data
// or landmarks are missing or unreliable. An abstention is a result with
// Detected=false and Confidence=0 plus a human-readable reason; a detector
// must never guess outside its known-reliable domain.
package fault

import (
	"github.com/rohanv/swingsight/internal/geom"
	"github.com/rohanv/swingsight/internal/pose"
	"github.com/rohanv/swingsight/internal/swing"
)

// Input bundles everything a detector may consult. Detectors are
// order-insensitive and never mutate the bundle.
type Input struct {
	Frames         []pose.Frame
	PhaseFrames    []swing.PhaseFrame
	Segments       []swing.PhaseSegment
	Metrics        swing.SwingMetrics
	Tempo          swing.TempoMetrics
	Handedness     swing.Handedness
	Camera         swing.CameraAngleResult
	Club           swing.ClubTypeResult
	ClubOverridden bool
	Thresholds     Thresholds
}

// Func is the single detector capability: one input bundle in, one verdict
// out.
type Func func(in *Input) swing.DetectorResult

// Registry holds an ordered collection of detector units.
type Registry struct {
	units []Func
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a detector to the registry.
func (r *Registry) Register(fn Func) {
	if fn == nil {
		return
	}
	r.units = append(r.units, fn)
}

// Default returns a registry with the full detector roster, in category
// order: setup, backswing, downswing, impact, follow-through, tempo.
func Default() *Registry {
	r := NewRegistry()
	for _, fn := range []Func{
		StanceWidth,
		PoorPosture,
		KneeFlexSetup,
		HipSway,
		ReversePivot,
		BentLeadArm,
		Overswing,
		LimitedShoulderTurn,
		RestrictedHipTurn,
		LateralSlide,
		EarlyRelease,
		LossOfSpineAngle,
		EarlyExtension,
		ChickenWing,
		HeadMovement,
		HangingBack,
		IncompleteFollowThrough,
		UnbalancedFinish,
		PoorTempoRatio,
		ShortBackswing,
	} {
		r.Register(fn)
	}
	return r
}

// Run evaluates every registered detector and returns the verdicts that
// carry signal: detections, and confident non-detections. Abstentions with
// confidence 0 are dropped.
func (r *Registry) Run(in *Input) []swing.DetectorResult {
	var out []swing.DetectorResult
	for _, fn := range r.units {
		res := fn(in)
		if !res.Detected && res.Confidence == 0 {
			continue
		}
		out = append(out, res)
	}
	return out
}

// Penalty sums the score deduction over detected faults: a per-severity-tier
// base point value weighted by the detector's confidence, capped so faults
// can never erase more than a quarter of the score.
func Penalty(results []swing.DetectorResult) float64 {
	const maxPenalty = 25.0
	var total float64
	for _, r := range results {
		if !r.Detected {
			continue
		}
		var base float64
		switch {
		case r.Severity >= 70:
			base = 5
		case r.Severity >= 40:
			base = 3
		default:
			base = 1
		}
		total += base * r.Confidence
	}
	if total > maxPenalty {
		return maxPenalty
	}
	return total
}

// notDetected builds the standard abstention verdict.
func notDetected(id, reason string) swing.DetectorResult {
	return swing.DetectorResult{MistakeID: id, Message: reason}
}

// severityFrom maps a continuous deviation past a threshold onto [0, 100]:
// zero deviation scores 0 and a deviation of span (or more) saturates at 100.
func severityFrom(deviation, span float64) float64 {
	if span <= 0 {
		return 0
	}
	return geom.Clamp(deviation/span*100, 0, 100)
}

// phaseRange returns the first and last positions labelled with the phase,
// or (-1, -1) when absent.
func (in *Input) phaseRange(phase swing.Phase) (lo, hi int) {
	lo, hi = -1, -1
	for i := range in.PhaseFrames {
		if in.PhaseFrames[i].Phase != phase {
			continue
		}
		if lo == -1 {
			lo = i
		}
		hi = i
	}
	return lo, hi
}

// leadWristIndex returns the landmark index of the lead (target-side) wrist.
func (in *Input) leadWristIndex() int {
	if in.Handedness == swing.LeftHanded {
		return pose.RightWrist
	}
	return pose.LeftWrist
}

// leadElbowIndex returns the landmark index of the lead elbow.
func (in *Input) leadElbowIndex() int {
	if in.Handedness == swing.LeftHanded {
		return pose.RightElbow
	}
	return pose.LeftElbow
}

// targetDirection is the sign of the image-x direction toward the target: a
// right-handed golfer seen face-on swings toward image-left.
func (in *Input) targetDirection() float64 {
	if in.Handedness == swing.LeftHanded {
		return 1
	}
	return -1
}
