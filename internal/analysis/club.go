package analysis

import (
	"math"

	"github.com/rohanv/swingsight/internal/geom"
	"github.com/rohanv/swingsight/internal/pose"
	"github.com/rohanv/swingsight/internal/stats"
	"github.com/rohanv/swingsight/internal/swing"
)

// clubConfidenceMin is the floor below which a club classification collapses
// to unknown.
const clubConfidenceMin = 0.6

// clubSignalAverageFrames caps how many address frames feed the classifier.
// Raw signal values are averaged before voting; that is more stable than
// voting per frame and averaging the decisions.
const clubSignalAverageFrames = 5

// clubSignal is one weighted address-setup signal. Each signal is enabled
// only for the camera angles where its geometry is trustworthy, and votes
// driver when the averaged value passes driverFrom or iron when it passes
// ironFrom. Values between the two bounds are ambiguous: they contribute
// half their weight to the normalization denominator and nothing to the vote.
type clubSignal struct {
	name           string
	weight         float64
	driverFrom     float64
	ironFrom       float64
	higherIsDriver bool
	angles         map[swing.CameraAngle]bool
	measure        func(f *pose.Frame) (float64, bool)
}

func clubSignals() []clubSignal {
	return []clubSignal{
		{
			// Wider stance for a driver. Depth-free, so unusable only from
			// behind where the spans collapse.
			name: "stance_ratio", weight: 0.30,
			driverFrom: 1.8, ironFrom: 1.5, higherIsDriver: true,
			angles:  map[swing.CameraAngle]bool{swing.FaceOn: true, swing.Oblique: true},
			measure: measureStanceRatio,
		},
		{
			// Hands sit further from the body with a driver. Depth-dependent,
			// so only the oblique view sees it.
			name: "hand_distance", weight: 0.15,
			driverFrom: 0.95, ironFrom: 0.80, higherIsDriver: true,
			angles:  map[swing.CameraAngle]bool{swing.Oblique: true},
			measure: measureHandDistance,
		},
		{
			// More upright spine with a driver. Face-on shows lateral tilt,
			// not forward bend, so it is excluded there.
			name: "spine_angle", weight: 0.20,
			driverFrom: 28, ironFrom: 35, higherIsDriver: false,
			angles:  map[swing.CameraAngle]bool{swing.DownTheLine: true, swing.Oblique: true},
			measure: measureSpineAngle,
		},
		{
			// Hands hang higher (shallower drop) with a teed driver.
			name: "arm_drop_ratio", weight: 0.15,
			driverFrom: 0.72, ironFrom: 0.75, higherIsDriver: false,
			angles:  map[swing.CameraAngle]bool{swing.FaceOn: true, swing.Oblique: true},
			measure: measureArmDrop,
		},
		{
			// Straighter knees with a driver.
			name: "knee_flex", weight: 0.20,
			driverFrom: 168, ironFrom: 162, higherIsDriver: true,
			angles:  map[swing.CameraAngle]bool{swing.DownTheLine: true, swing.Oblique: true},
			measure: measureKneeFlex,
		},
	}
}

func measureStanceRatio(f *pose.Frame) (float64, bool) {
	la, ra := f.Landmarks[pose.LeftAnkle], f.Landmarks[pose.RightAnkle]
	lh, rh := f.Landmarks[pose.LeftHip], f.Landmarks[pose.RightHip]
	if !la.Visible() || !ra.Visible() || !lh.Visible() || !rh.Visible() {
		return 0, false
	}
	hipSpan := math.Abs(lh.X - rh.X)
	if hipSpan < 1e-6 {
		return 0, false
	}
	return math.Abs(la.X-ra.X) / hipSpan, true
}

func measureHandDistance(f *pose.Frame) (float64, bool) {
	lw, rw := f.Landmarks[pose.LeftWrist], f.Landmarks[pose.RightWrist]
	ls, rs := f.Landmarks[pose.LeftShoulder], f.Landmarks[pose.RightShoulder]
	hip := f.HipCenter()
	if !lw.Visible() || !rw.Visible() || !ls.Visible() || !rs.Visible() || !hip.Visible() {
		return 0, false
	}
	shoulderW := geom.Distance(point(ls), point(rs))
	if shoulderW < 1e-6 {
		return 0, false
	}
	handC := point(pose.Landmark{X: (lw.X + rw.X) / 2, Y: (lw.Y + rw.Y) / 2})
	return geom.Distance(handC, point(hip)) / shoulderW, true
}

func measureSpineAngle(f *pose.Frame) (float64, bool) {
	hip, shoulder := f.HipCenter(), f.ShoulderCenter()
	if !hip.Visible() || !shoulder.Visible() {
		return 0, false
	}
	return geom.VerticalTilt(point(hip), point(shoulder)), true
}

func measureArmDrop(f *pose.Frame) (float64, bool) {
	lw, rw := f.Landmarks[pose.LeftWrist], f.Landmarks[pose.RightWrist]
	shoulder := f.ShoulderCenter()
	la, ra := f.Landmarks[pose.LeftAnkle], f.Landmarks[pose.RightAnkle]
	if !lw.Visible() || !rw.Visible() || !shoulder.Visible() || !la.Visible() || !ra.Visible() {
		return 0, false
	}
	ankleY := (la.Y + ra.Y) / 2
	span := ankleY - shoulder.Y
	if span < 1e-6 {
		return 0, false
	}
	handY := (lw.Y + rw.Y) / 2
	return (handY - shoulder.Y) / span, true
}

func measureKneeFlex(f *pose.Frame) (float64, bool) {
	l := jointAngle(f.Landmarks[pose.LeftKnee], f.Landmarks[pose.LeftHip], f.Landmarks[pose.LeftAnkle], 0)
	r := jointAngle(f.Landmarks[pose.RightKnee], f.Landmarks[pose.RightHip], f.Landmarks[pose.RightAnkle], 0)
	switch {
	case l > 0 && r > 0:
		return (l + r) / 2, true
	case l > 0:
		return l, true
	case r > 0:
		return r, true
	default:
		return 0, false
	}
}

// ClassifyClubType decides driver vs iron from address-phase frames. Signal
// values are averaged over up to five frames, each enabled signal votes with
// its weight, and a vote magnitude below the confidence floor yields unknown.
func ClassifyClubType(addressFrames []pose.Frame, angle swing.CameraAngle) swing.ClubTypeResult {
	if len(addressFrames) > clubSignalAverageFrames {
		addressFrames = addressFrames[:clubSignalAverageFrames]
	}

	result := swing.ClubTypeResult{ClubType: swing.UnknownClub}
	if len(addressFrames) == 0 {
		return result
	}

	var vote, denom float64
	for _, sig := range clubSignals() {
		var samples []float64
		for i := range addressFrames {
			if v, ok := sig.measure(&addressFrames[i]); ok {
				samples = append(samples, v)
			}
		}
		if len(samples) == 0 {
			continue
		}
		value := stats.Mean(samples)
		recordClubSignal(&result.Signals, sig.name, value)

		if !sig.angles[angle] {
			continue
		}

		lo, hi := sig.ironFrom, sig.driverFrom
		driverHigh := sig.higherIsDriver
		if !driverHigh {
			lo, hi = sig.driverFrom, sig.ironFrom
		}
		switch {
		case value >= hi:
			if driverHigh {
				vote += sig.weight
			} else {
				vote -= sig.weight
			}
			denom += sig.weight
		case value <= lo:
			if driverHigh {
				vote -= sig.weight
			} else {
				vote += sig.weight
			}
			denom += sig.weight
		default:
			// Ambiguous middle band: no directional vote, half weight in the
			// denominator so ambiguity still dilutes confidence.
			denom += sig.weight / 2
		}
	}

	if denom == 0 {
		return result
	}

	result.Confidence = math.Abs(vote) / denom
	if result.Confidence < clubConfidenceMin {
		result.ClubType = swing.UnknownClub
		return result
	}
	if vote > 0 {
		result.ClubType = swing.Driver
	} else {
		result.ClubType = swing.Iron
	}
	return result
}

func recordClubSignal(s *swing.ClubSignals, name string, value float64) {
	switch name {
	case "stance_ratio":
		s.StanceRatio = value
	case "hand_distance":
		s.HandDistance = value
	case "spine_angle":
		s.SpineAngle = value
	case "arm_drop_ratio":
		s.ArmDropRatio = value
	case "knee_flex":
		s.KneeFlex = value
	}
}
