package pose

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"gocv.io/x/gocv"
)

// MediaPipeProvider implements Provider using a Python MediaPipe Pose
// subprocess. Frames are sent as length-prefixed JPEG bytes on stdin; the
// service answers with one JSON line per frame.
type MediaPipeProvider struct {
	config    Config
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	mu        sync.Mutex
	started   bool
	lastUsed  time.Time
	idleTimer *time.Timer
}

// NewMediaPipeProvider creates a new MediaPipe pose provider.
// The Python process is started lazily on the first estimation.
func NewMediaPipeProvider(config Config) (*MediaPipeProvider, error) {
	p := &MediaPipeProvider{config: config}
	if p.scriptPath() == "" {
		return nil, fmt.Errorf("pose_service.py not found")
	}
	return p, nil
}

// scriptPath resolves the pose service script: an explicit configured path
// wins, otherwise the standard locations are searched.
func (p *MediaPipeProvider) scriptPath() string {
	if p.config.ScriptPath != "" {
		if _, err := os.Stat(p.config.ScriptPath); err != nil {
			return ""
		}
		return p.config.ScriptPath
	}
	return findPoseScript()
}

// EstimatePose analyzes a frame and returns the detected body landmarks.
func (p *MediaPipeProvider) EstimatePose(frame *gocv.Mat) (*Detection, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureStarted(); err != nil {
		return nil, err
	}

	// Encode frame as JPEG
	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()

	// Write length (4 bytes big-endian) + data
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))

	if _, err := p.stdin.Write(length); err != nil {
		return nil, fmt.Errorf("write length: %w", err)
	}
	if _, err := p.stdin.Write(data); err != nil {
		return nil, fmt.Errorf("write data: %w", err)
	}

	// Read JSON response
	line, err := p.stdout.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var response struct {
		Pose *jsonPose `json:"pose"`
	}
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	p.lastUsed = time.Now()
	p.resetIdleTimer()

	if response.Pose == nil {
		return nil, nil
	}
	return response.Pose.toDetection(), nil
}

// Close shuts down the Python process.
func (p *MediaPipeProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.shutdown()
}

func (p *MediaPipeProvider) ensureStarted() error {
	if p.started {
		return nil
	}

	scriptPath := p.scriptPath()
	if scriptPath == "" {
		return fmt.Errorf("pose_service.py not found")
	}

	// Use virtual environment Python if available
	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	p.cmd = exec.Command(pythonPath, poseServiceArgs(scriptPath, p.config)...)

	stdin, err := p.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}

	stdout, err := p.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}

	// Capture stderr for debugging
	p.cmd.Stderr = os.Stderr

	if err := p.cmd.Start(); err != nil {
		return fmt.Errorf("start pose service: %w", err)
	}

	p.stdin = stdin
	p.stdout = bufio.NewReader(stdout)
	p.started = true
	p.lastUsed = time.Now()

	return nil
}

func (p *MediaPipeProvider) shutdown() error {
	if !p.started {
		return nil
	}

	if p.idleTimer != nil {
		p.idleTimer.Stop()
		p.idleTimer = nil
	}

	if p.stdin != nil {
		p.stdin.Close()
	}

	err := p.cmd.Wait()
	p.started = false
	p.cmd = nil
	p.stdin = nil
	p.stdout = nil

	return err
}

func (p *MediaPipeProvider) resetIdleTimer() {
	if p.idleTimer != nil {
		p.idleTimer.Stop()
	}
	p.idleTimer = time.AfterFunc(30*time.Second, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.shutdown()
	})
}

// poseServiceArgs builds the subprocess command line, forwarding the model
// variant and both confidence thresholds.
func poseServiceArgs(scriptPath string, c Config) []string {
	return []string{
		scriptPath,
		fmt.Sprintf("--model-complexity=%d", c.ModelComplexity),
		fmt.Sprintf("--min-detection-confidence=%g", c.MinConfidence),
		fmt.Sprintf("--min-tracking-confidence=%g", c.MinTrackingConf),
	}
}

func findPoseScript() string {
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/pose_service.py",
		"../scripts/pose_service.py",
		filepath.Join(execDir, "scripts/pose_service.py"),
		filepath.Join(os.Getenv("HOME"), ".swingsight/scripts/pose_service.py"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

// findVenvPython looks for a Python interpreter in a virtual environment.
func findVenvPython() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".swingsight/venv/bin/python"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				return absPath
			}
			return path
		}
	}
	return ""
}

// jsonPose represents the JSON structure from the Python service.
type jsonPose struct {
	Points []jsonPoint `json:"points"`
	Score  float64     `json:"score"`
}

type jsonPoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

func (j jsonPose) toDetection() *Detection {
	d := &Detection{Score: j.Score}
	for i := 0; i < NumLandmarks && i < len(j.Points); i++ {
		d.Landmarks[i] = Landmark{
			X:          j.Points[i].X,
			Y:          j.Points[i].Y,
			Z:          j.Points[i].Z,
			Visibility: j.Points[i].Visibility,
		}
	}
	return d
}
