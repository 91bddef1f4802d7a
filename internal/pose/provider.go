package pose

import "gocv.io/x/gocv"

// Detection is the result of pose estimation on a single video frame.
type Detection struct {
	Landmarks [NumLandmarks]Landmark
	Score     float64 // overall pose presence confidence
}

// Provider defines the interface for pose estimation implementations.
// The engine itself never touches a Provider; providers exist so the CLI and
// server can turn raw video frames into the Frame sequences the engine
// consumes.
type Provider interface {
	// EstimatePose analyzes a video frame and returns the detected body
	// landmarks. Returns nil (and no error) when no person is detected.
	EstimatePose(frame *gocv.Mat) (*Detection, error)

	// Close releases any resources held by the provider.
	Close() error
}

// Config holds configuration options for pose estimation.
type Config struct {
	// MinConfidence is the minimum pose detection confidence (0.0-1.0).
	MinConfidence float64

	// MinTrackingConf is the minimum landmark tracking confidence (0.0-1.0).
	MinTrackingConf float64

	// ModelComplexity selects the MediaPipe Pose model variant (0, 1, or 2).
	ModelComplexity int

	// ScriptPath is an explicit path to the pose service script. Empty means
	// search the standard locations.
	ScriptPath string
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		MinConfidence:   0.5,
		MinTrackingConf: 0.5,
		ModelComplexity: 1,
	}
}
