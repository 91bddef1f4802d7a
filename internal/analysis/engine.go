package analysis

import (
	"io"
	"log/slog"

	"github.com/rohanv/swingsight/internal/fault"
	"github.com/rohanv/swingsight/internal/pose"
	"github.com/rohanv/swingsight/internal/swing"
)

// Engine runs the full analysis pipeline over a sequence of landmark frames.
type Engine struct {
	log       *slog.Logger
	detectors *fault.Registry
	threshold fault.Thresholds
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. A nil logger disables logging.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithDetectors replaces the default fault-detector registry.
func WithDetectors(r *fault.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.detectors = r
		}
	}
}

// WithThresholds replaces the default detector threshold table.
func WithThresholds(t fault.Thresholds) Option {
	return func(e *Engine) {
		e.threshold = t
	}
}

// NewEngine creates an Engine with the full detector roster and default
// thresholds.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		detectors: fault.Default(),
		threshold: fault.DefaultThresholds(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Options carries per-analysis inputs.
type Options struct {
	// ClubTypeOverride, when not UnknownClub, replaces the inferred club type
	// for band selection and club-aware detectors.
	ClubTypeOverride swing.ClubType
}

// Analyze runs the pipeline over the frames and returns the complete result.
// Empty input yields a valid result with identity values rather than an
// error: no frames is a fact about the video, not a failure of the engine.
func (e *Engine) Analyze(frames []pose.Frame, videoID string, opts Options) *swing.AnalysisResult {
	res := &swing.AnalysisResult{
		VideoID:     videoID,
		FrameCount:  len(frames),
		Handedness:  swing.RightHanded,
		CameraAngle: swing.CameraAngleResult{Angle: swing.FaceOn},
		Club:        swing.ClubTypeResult{ClubType: swing.UnknownClub},
	}
	if len(frames) == 0 {
		e.log.Warn("analysis over empty frame sequence", "video_id", videoID)
		return res
	}

	res.Handedness = DetectHandedness(frames)
	metrics := CalculateAllFrameMetrics(frames)
	res.CameraAngle = ClassifyCameraAngle(frames)
	res.PhaseFrames, res.Segments = SegmentPhases(frames, metrics, res.Handedness)

	res.Club = e.classifyClub(frames, res.PhaseFrames, res.CameraAngle.Angle, opts.ClubTypeOverride)
	res.ClubTypeOverridden = opts.ClubTypeOverride != "" && opts.ClubTypeOverride != swing.UnknownClub

	res.Metrics = AggregateMetrics(frames, res.PhaseFrames, res.CameraAngle.Angle, res.Handedness)
	res.Tempo = ComputeTempo(res.PhaseFrames)
	res.BaseScore = ComputeBaseScore(res.Metrics, res.Tempo, res.CameraAngle, res.Club, res.ClubTypeOverridden)

	in := &fault.Input{
		Frames:         frames,
		PhaseFrames:    res.PhaseFrames,
		Segments:       res.Segments,
		Metrics:        res.Metrics,
		Tempo:          res.Tempo,
		Handedness:     res.Handedness,
		Camera:         res.CameraAngle,
		Club:           res.Club,
		ClubOverridden: res.ClubTypeOverridden,
		Thresholds:     e.threshold,
	}
	res.Faults = e.detectors.Run(in)
	res.FaultPenalty = fault.Penalty(res.Faults)
	res.OverallScore = clampScore(res.BaseScore - res.FaultPenalty)

	e.log.Info("analysis complete",
		"video_id", videoID,
		"frames", len(frames),
		"camera", res.CameraAngle.Angle,
		"club", res.Club.ClubType,
		"score", res.OverallScore,
		"faults", countDetected(res.Faults))
	return res
}

// classifyClub infers the club from the address frames, honoring an explicit
// override. An override is reported at full confidence: the user is the
// ground truth.
func (e *Engine) classifyClub(frames []pose.Frame, phaseFrames []swing.PhaseFrame, angle swing.CameraAngle, override swing.ClubType) swing.ClubTypeResult {
	address := addressFrames(frames, phaseFrames)
	inferred := ClassifyClubType(address, angle)
	if override == "" || override == swing.UnknownClub {
		return inferred
	}
	return swing.ClubTypeResult{
		ClubType:   override,
		Confidence: 1,
		Signals:    inferred.Signals,
	}
}

// addressFrames returns up to clubSignalAverageFrames frames labelled
// address, falling back to the first frame when the address phase is empty.
func addressFrames(frames []pose.Frame, phaseFrames []swing.PhaseFrame) []pose.Frame {
	var out []pose.Frame
	for i := range phaseFrames {
		if phaseFrames[i].Phase != swing.PhaseAddress {
			continue
		}
		fi := phaseFrames[i].FrameIndex
		if fi < 0 || fi >= len(frames) {
			continue
		}
		out = append(out, frames[fi])
		if len(out) == clubSignalAverageFrames {
			return out
		}
	}
	if len(out) == 0 && len(frames) > 0 {
		out = frames[:1]
	}
	return out
}

func clampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

func countDetected(results []swing.DetectorResult) int {
	var n int
	for i := range results {
		if results[i].Detected {
			n++
		}
	}
	return n
}
