package video

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockReader plays back pre-recorded frames for testing.
type MockReader struct {
	frames  []*gocv.Mat
	fps     float64
	index   int
	mu      sync.Mutex
	running bool
}

// NewMockReader creates a MockReader over the given frames.
func NewMockReader(frames []*gocv.Mat, fps float64) *MockReader {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &MockReader{frames: frames, fps: fps}
}

func (r *MockReader) Open() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = true
	r.index = 0
	return nil
}

func (r *MockReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
	return nil
}

func (r *MockReader) ReadFrame() (*gocv.Mat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return nil, ErrNotOpen
	}
	if r.index >= len(r.frames) {
		return nil, ErrEndOfVideo
	}

	// Clone the frame so the original isn't modified
	frame := r.frames[r.index].Clone()
	r.index++

	return &frame, nil
}

func (r *MockReader) FPS() float64 { return r.fps }

func (r *MockReader) IsOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
