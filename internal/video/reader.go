// Package video provides swing video decoding using GoCV (OpenCV) and the
// extraction of pose landmark frames from decoded footage.
package video

import (
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"

	"github.com/rohanv/swingsight/internal/pose"
)

// DefaultFPS is assumed when the container reports no frame rate.
const DefaultFPS = 30.0

// ErrNotOpen is returned when trying to read from a reader that is not open.
var ErrNotOpen = errors.New("video is not open")

// ErrEndOfVideo is returned when all frames have been read.
var ErrEndOfVideo = errors.New("end of video")

// Reader defines the interface for video frame sources.
type Reader interface {
	Open() error
	Close() error
	ReadFrame() (*gocv.Mat, error)
	FPS() float64
	IsOpen() bool
}

// fileReader decodes a video file frame by frame using GoCV.
type fileReader struct {
	path    string
	capture *gocv.VideoCapture
	mu      sync.Mutex
	running bool
	fps     float64
}

// NewFileReader creates a Reader over the video file at path.
func NewFileReader(path string) Reader {
	return &fileReader{path: path}
}

// Open opens the video file for reading.
func (r *fileReader) Open() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return nil
	}

	capture, err := gocv.VideoCaptureFile(r.path)
	if err != nil {
		return fmt.Errorf("failed to open video %s: %w", r.path, err)
	}

	r.fps = capture.Get(gocv.VideoCaptureFPS)
	if r.fps <= 0 {
		r.fps = DefaultFPS
	}

	r.capture = capture
	r.running = true

	return nil
}

// Close closes the video file and releases resources.
func (r *fileReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running || r.capture == nil {
		r.running = false
		return nil
	}

	err := r.capture.Close()
	r.capture = nil
	r.running = false

	return err
}

// ReadFrame reads the next frame from the video.
// The caller is responsible for closing the returned Mat.
func (r *fileReader) ReadFrame() (*gocv.Mat, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running || r.capture == nil {
		return nil, ErrNotOpen
	}

	mat := gocv.NewMat()
	if ok := r.capture.Read(&mat); !ok {
		mat.Close()
		return nil, ErrEndOfVideo
	}

	if mat.Empty() {
		mat.Close()
		return nil, ErrEndOfVideo
	}

	return &mat, nil
}

// FPS returns the frame rate reported by the container.
func (r *fileReader) FPS() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.fps
}

// IsOpen returns true if the video is currently open.
func (r *fileReader) IsOpen() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.running
}

// ExtractPoses drives the pose provider over every frame of the reader and
// returns the landmark frames for analysis. Frames where no golfer was
// detected are skipped; the surviving frames keep their original indices and
// timestamps so phase durations stay true to the footage.
func ExtractPoses(r Reader, p pose.Provider) ([]pose.Frame, error) {
	if err := r.Open(); err != nil {
		return nil, err
	}
	defer r.Close()

	fps := r.FPS()
	if fps <= 0 {
		fps = DefaultFPS
	}

	var frames []pose.Frame
	for i := 0; ; i++ {
		mat, err := r.ReadFrame()
		if err != nil {
			if errors.Is(err, ErrEndOfVideo) {
				break
			}
			return nil, err
		}

		det, err := p.EstimatePose(mat)
		mat.Close()
		if err != nil {
			return nil, fmt.Errorf("pose estimation failed at frame %d: %w", i, err)
		}
		if det == nil {
			continue
		}

		frames = append(frames, pose.Frame{
			Index:     i,
			Timestamp: float64(i) / fps,
			Landmarks: det.Landmarks,
		})
	}

	return frames, nil
}
