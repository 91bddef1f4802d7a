package pose

import (
	"gocv.io/x/gocv"
)

// MockProvider is a test implementation of the Provider interface.
// It returns pre-configured detections in sequence, cycling when exhausted.
type MockProvider struct {
	detections []*Detection
	err        error
	calls      int
}

// NewMockProvider creates a new MockProvider instance.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// SetDetections sets the detections that will be returned by EstimatePose.
func (m *MockProvider) SetDetections(detections []*Detection) {
	m.detections = detections
	m.calls = 0
}

// SetError sets the error that will be returned by EstimatePose.
func (m *MockProvider) SetError(err error) {
	m.err = err
}

// EstimatePose returns the next pre-configured detection or error.
func (m *MockProvider) EstimatePose(frame *gocv.Mat) (*Detection, error) {
	if m.err != nil {
		return nil, m.err
	}
	if len(m.detections) == 0 {
		return nil, nil
	}
	d := m.detections[m.calls%len(m.detections)]
	m.calls++
	return d, nil
}

// Close is a no-op for the mock provider.
func (m *MockProvider) Close() error {
	return nil
}
