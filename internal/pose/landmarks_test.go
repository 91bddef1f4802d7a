package pose

import (
	"encoding/json"
	"math"
	"testing"
)

func TestLandmark_Visible(t *testing.T) {
	if (Landmark{Visibility: 0.4}).Visible() {
		t.Error("landmark below MinVisibility should not be visible")
	}
	if !(Landmark{Visibility: 0.5}).Visible() {
		t.Error("landmark at MinVisibility should be visible")
	}
}

func TestFrame_JSONRoundTrip(t *testing.T) {
	f := Frame{Index: 7, Timestamp: 0.233}
	for i := range f.Landmarks {
		f.Landmarks[i] = Landmark{
			X:          float64(i) / 100,
			Y:          float64(i) / 50,
			Z:          -float64(i) / 200,
			Visibility: 0.9,
		}
	}

	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var got Frame
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if got.Index != f.Index {
		t.Errorf("Index = %d, want %d", got.Index, f.Index)
	}
	if got.Timestamp != f.Timestamp {
		t.Errorf("Timestamp = %v, want %v", got.Timestamp, f.Timestamp)
	}
	for i := range f.Landmarks {
		if math.Abs(got.Landmarks[i].X-f.Landmarks[i].X) > 1e-12 {
			t.Fatalf("landmark %d X = %v, want %v", i, got.Landmarks[i].X, f.Landmarks[i].X)
		}
		if got.Landmarks[i].Visibility != f.Landmarks[i].Visibility {
			t.Fatalf("landmark %d Visibility = %v, want %v", i, got.Landmarks[i].Visibility, f.Landmarks[i].Visibility)
		}
	}
}

func TestFrame_UnmarshalRejectsWrongLandmarkCount(t *testing.T) {
	data := []byte(`{"index":0,"timestamp":0,"landmarks":[[0.1,0.2,0.3,0.9]]}`)

	var f Frame
	if err := json.Unmarshal(data, &f); err == nil {
		t.Fatal("expected error for frame with 1 landmark")
	}
}

func TestFrame_Centers(t *testing.T) {
	var f Frame
	f.Landmarks[LeftHip] = Landmark{X: 0.4, Y: 0.6, Visibility: 1}
	f.Landmarks[RightHip] = Landmark{X: 0.6, Y: 0.6, Visibility: 1}
	f.Landmarks[LeftShoulder] = Landmark{X: 0.3, Y: 0.3, Visibility: 1}
	f.Landmarks[RightShoulder] = Landmark{X: 0.7, Y: 0.3, Visibility: 1}

	hip := f.HipCenter()
	if math.Abs(hip.X-0.5) > 1e-12 || math.Abs(hip.Y-0.6) > 1e-12 {
		t.Errorf("HipCenter = (%v, %v), want (0.5, 0.6)", hip.X, hip.Y)
	}

	shoulder := f.ShoulderCenter()
	if math.Abs(shoulder.X-0.5) > 1e-12 || math.Abs(shoulder.Y-0.3) > 1e-12 {
		t.Errorf("ShoulderCenter = (%v, %v), want (0.5, 0.3)", shoulder.X, shoulder.Y)
	}
}
