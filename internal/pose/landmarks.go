// Package pose provides body pose frame types and pose estimation interfaces
// for swing analysis.
package pose

import (
	"encoding/json"
	"fmt"
)

// Body landmark indices following the MediaPipe Pose convention.
// See: https://developers.google.com/mediapipe/solutions/vision/pose_landmarker
const (
	Nose           = 0
	LeftEyeInner   = 1
	LeftEye        = 2
	LeftEyeOuter   = 3
	RightEyeInner  = 4
	RightEye       = 5
	RightEyeOuter  = 6
	LeftEar        = 7
	RightEar       = 8
	MouthLeft      = 9
	MouthRight     = 10
	LeftShoulder   = 11
	RightShoulder  = 12
	LeftElbow      = 13
	RightElbow     = 14
	LeftWrist      = 15
	RightWrist     = 16
	LeftPinky      = 17
	RightPinky     = 18
	LeftIndex      = 19
	RightIndex     = 20
	LeftThumb      = 21
	RightThumb     = 22
	LeftHip        = 23
	RightHip       = 24
	LeftKnee       = 25
	RightKnee      = 26
	LeftAnkle      = 27
	RightAnkle     = 28
	LeftHeel       = 29
	RightHeel      = 30
	LeftFootIndex  = 31
	RightFootIndex = 32
	NumLandmarks   = 33
)

// MinVisibility is the visibility threshold below which a landmark is treated
// as missing. The upstream model reports missed detections with visibility 0.
const MinVisibility = 0.5

// Landmark is one tracked body point. Coordinates are normalized to the frame
// (x right, y down), z is a rough depth estimate relative to the hip center,
// and visibility is the model's 0-1 confidence that the point was seen.
type Landmark struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

// Visible reports whether the landmark passed the visibility threshold.
func (l Landmark) Visible() bool {
	return l.Visibility >= MinVisibility
}

// Frame is one timestamped set of body landmarks. An ordered, time-ascending
// slice of Frames is the engine's only input.
type Frame struct {
	Index     int
	Timestamp float64 // seconds from the start of the recording
	Landmarks [NumLandmarks]Landmark
}

// frameJSON is the wire shape for Frame: landmarks travel as 4-number tuples
// [x, y, z, visibility] to keep the serialized form compact.
type frameJSON struct {
	Index     int          `json:"index"`
	Timestamp float64      `json:"timestamp"`
	Landmarks [][4]float64 `json:"landmarks"`
}

// MarshalJSON implements json.Marshaler.
func (f Frame) MarshalJSON() ([]byte, error) {
	out := frameJSON{
		Index:     f.Index,
		Timestamp: f.Timestamp,
		Landmarks: make([][4]float64, NumLandmarks),
	}
	for i, lm := range f.Landmarks {
		out.Landmarks[i] = [4]float64{lm.X, lm.Y, lm.Z, lm.Visibility}
	}
	return json.Marshal(out)
}

// UnmarshalJSON implements json.Unmarshaler. A frame must carry exactly 33
// landmark tuples; missing detections are expressed as visibility 0, never by
// truncating the array.
func (f *Frame) UnmarshalJSON(data []byte) error {
	var in frameJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if len(in.Landmarks) != NumLandmarks {
		return fmt.Errorf("frame %d: expected %d landmarks, got %d", in.Index, NumLandmarks, len(in.Landmarks))
	}
	f.Index = in.Index
	f.Timestamp = in.Timestamp
	for i, t := range in.Landmarks {
		f.Landmarks[i] = Landmark{X: t[0], Y: t[1], Z: t[2], Visibility: t[3]}
	}
	return nil
}

// HipCenter returns the midpoint of the two hip landmarks.
func (f *Frame) HipCenter() Landmark {
	return midpoint(f.Landmarks[LeftHip], f.Landmarks[RightHip])
}

// ShoulderCenter returns the midpoint of the two shoulder landmarks.
func (f *Frame) ShoulderCenter() Landmark {
	return midpoint(f.Landmarks[LeftShoulder], f.Landmarks[RightShoulder])
}

func midpoint(a, b Landmark) Landmark {
	v := a.Visibility
	if b.Visibility < v {
		v = b.Visibility
	}
	return Landmark{
		X:          (a.X + b.X) / 2,
		Y:          (a.Y + b.Y) / 2,
		Z:          (a.Z + b.Z) / 2,
		Visibility: v,
	}
}
