package fault

import (
	"fmt"

	"github.com/rohanv/swingsight/internal/swing"
)

// PoorTempoRatio flags a backswing/downswing duration ratio outside the
// playable range. Tempo is pure timing, so the camera angle never matters,
// but the check abstains when the phase boundaries needed for the durations
// were not found.
func PoorTempoRatio(in *Input) swing.DetectorResult {
	const id = "poor_tempo_ratio"

	if in.Tempo.BackswingDuration <= 0 || in.Tempo.DownswingDuration <= 0 {
		return notDetected(id, "phase durations unavailable; cannot judge tempo")
	}
	ratio := in.Tempo.TempoRatio
	t := in.Thresholds

	res := swing.DetectorResult{
		MistakeID:  id,
		Confidence: 0.85,
		Message:    fmt.Sprintf("tempo ratio %.1f:1 is in the playable range", ratio),
		Details:    map[string]float64{"tempo_ratio": ratio},
	}
	switch {
	case ratio < t.TempoMin:
		res.Detected = true
		res.Severity = severityFrom(t.TempoMin-ratio, t.TempoLowSpan)
		res.Message = fmt.Sprintf("swing is rushed: tempo ratio %.1f:1 (want at least %.1f:1)", ratio, t.TempoMin)
	case ratio > t.TempoMax:
		res.Detected = true
		res.Severity = severityFrom(ratio-t.TempoMax, t.TempoHighSpan)
		res.Message = fmt.Sprintf("backswing drags: tempo ratio %.1f:1 (want at most %.1f:1)", ratio, t.TempoMax)
	}
	return res
}

// ShortBackswing flags a backswing over in the blink of an eye, a snatchy
// takeaway no tempo ratio can hide.
func ShortBackswing(in *Input) swing.DetectorResult {
	const id = "short_backswing"

	dur := in.Tempo.BackswingDuration
	if dur <= 0 {
		return notDetected(id, "backswing duration unavailable")
	}
	t := in.Thresholds

	res := swing.DetectorResult{
		MistakeID:  id,
		Confidence: 0.85,
		Message:    "backswing takes an unhurried amount of time",
		Details:    map[string]float64{"backswing_duration": dur},
	}
	if dur < t.BackswingMinDuration {
		res.Detected = true
		res.Severity = severityFrom(t.BackswingMinDuration-dur, t.BackswingSpan)
		res.Message = fmt.Sprintf("backswing takes only %.2fs, a snatched takeaway", dur)
		res.AffectedFrames = framesInPhase(in, swing.PhaseBackswing)
	}
	return res
}
