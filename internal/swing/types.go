// Package swing defines the shared domain types produced by the analysis
// engine: camera and club classifications, phase labels, per-frame and
// aggregate metrics, detector verdicts and the root analysis result.
package swing

// CameraAngle is the recording viewpoint relative to the target line. It is
// classified once per analysis and treated as ground truth by every
// downstream stage, because it decides which geometric signals can be
// trusted.
type CameraAngle string

const (
	FaceOn      CameraAngle = "face_on"
	DownTheLine CameraAngle = "down_the_line"
	Oblique     CameraAngle = "oblique"
)

// ClubType is the club category used to select scoring bands and detector
// thresholds.
type ClubType string

const (
	Driver      ClubType = "driver"
	Iron        ClubType = "iron"
	UnknownClub ClubType = "unknown"
)

// Handedness identifies which side leads the swing.
type Handedness string

const (
	RightHanded Handedness = "right"
	LeftHanded  Handedness = "left"
)

// Phase is one of the seven temporal swing phases.
type Phase string

const (
	PhaseAddress       Phase = "address"
	PhaseBackswing     Phase = "backswing"
	PhaseTop           Phase = "top"
	PhaseDownswing     Phase = "downswing"
	PhaseImpact        Phase = "impact"
	PhaseFollowThrough Phase = "follow_through"
	PhaseFinish        Phase = "finish"
)

// FrameMetrics is the flat record of joint angles and positions derived from
// one landmark frame. It is pure geometry: a missing landmark yields the
// documented safe default (0 for rotations, 180 for extensions), never an
// error.
type FrameMetrics struct {
	HipRotation       float64 `json:"hip_rotation"`
	ShoulderRotation  float64 `json:"shoulder_rotation"`
	XFactor           float64 `json:"x_factor"`
	SpineAngle        float64 `json:"spine_angle"`
	LeftArmExtension  float64 `json:"left_arm_extension"`
	RightArmExtension float64 `json:"right_arm_extension"`
	LeftKneeFlex      float64 `json:"left_knee_flex"`
	RightKneeFlex     float64 `json:"right_knee_flex"`
	LeftWristHinge    float64 `json:"left_wrist_hinge"`
	RightWristHinge   float64 `json:"right_wrist_hinge"`
	// Hand positions are relative to the hip center, positive x toward the
	// golfer's image-left, positive y down.
	LeftHandX  float64 `json:"left_hand_x"`
	LeftHandY  float64 `json:"left_hand_y"`
	RightHandX float64 `json:"right_hand_x"`
	RightHandY float64 `json:"right_hand_y"`
}

// PhaseFrame tags one frame's metrics with its phase label.
type PhaseFrame struct {
	FrameIndex int          `json:"frame_index"`
	Timestamp  float64      `json:"timestamp"`
	Phase      Phase        `json:"phase"`
	Confidence float64      `json:"confidence"`
	Metrics    FrameMetrics `json:"metrics"`
}

// PhaseSegment is a maximal contiguous run of frames sharing a phase label.
// For any analysis the segments are contiguous, non-overlapping, ordered and
// together cover every input frame exactly once.
type PhaseSegment struct {
	Phase      Phase   `json:"phase"`
	StartFrame int     `json:"start_frame"`
	EndFrame   int     `json:"end_frame"` // inclusive
	StartTime  float64 `json:"start_time"`
	EndTime    float64 `json:"end_time"`
	Duration   float64 `json:"duration"`
}

// CameraAngleResult is the one-shot camera classification for an analysis.
type CameraAngleResult struct {
	Angle      CameraAngle `json:"angle"`
	Confidence float64     `json:"confidence"`
	Ratio      float64     `json:"ratio"`
}

// ClubSignals carries the raw per-signal values behind a club classification,
// for diagnostics. Disabled or unmeasurable signals are zero.
type ClubSignals struct {
	StanceRatio  float64 `json:"stance_ratio"`
	HandDistance float64 `json:"hand_distance"`
	SpineAngle   float64 `json:"spine_angle"`
	ArmDropRatio float64 `json:"arm_drop_ratio"`
	KneeFlex     float64 `json:"knee_flex"`
}

// ClubTypeResult is the one-shot club classification for an analysis.
type ClubTypeResult struct {
	ClubType   ClubType    `json:"club_type"`
	Confidence float64     `json:"confidence"`
	Signals    ClubSignals `json:"signals"`
}

// SwingMetrics aggregates the per-frame metrics into one record, gated by
// phase boundaries and camera angle. The pointer fields are face-on
// exclusive: nil means "not measurable from this angle", which downstream
// consumers must keep distinct from a measured zero.
type SwingMetrics struct {
	MaxHipRotation         float64 `json:"max_hip_rotation"`
	MaxShoulderRotation    float64 `json:"max_shoulder_rotation"`
	MaxXFactor             float64 `json:"max_x_factor"`
	AddressSpineAngle      float64 `json:"address_spine_angle"`
	TopSpineAngle          float64 `json:"top_spine_angle"`
	ImpactSpineAngle       float64 `json:"impact_spine_angle"`
	TopLeadArmExtension    float64 `json:"top_lead_arm_extension"`
	ImpactLeadArmExtension float64 `json:"impact_lead_arm_extension"`
	AddressKneeFlex        float64 `json:"address_knee_flex"`
	TopKneeFlex            float64 `json:"top_knee_flex"`

	HipSway         *float64 `json:"hip_sway,omitempty"`
	HeadStability   *float64 `json:"head_stability,omitempty"`
	ImpactExtension *float64 `json:"impact_extension,omitempty"`
}

// TempoMetrics captures swing timing. TempoRatio is backswing over downswing
// duration, classically ideal near 3.0.
type TempoMetrics struct {
	BackswingDuration  float64 `json:"backswing_duration"`
	DownswingDuration  float64 `json:"downswing_duration"`
	TempoRatio         float64 `json:"tempo_ratio"`
	TotalSwingDuration float64 `json:"total_swing_duration"`
	Rating             string  `json:"rating"`
}

// DetectorResult is one fault detector's verdict for an analysis. A
// non-detection with confidence 0 is a valid abstention; the orchestrator
// filters those out before presentation.
type DetectorResult struct {
	MistakeID      string             `json:"mistake_id"`
	Detected       bool               `json:"detected"`
	Confidence     float64            `json:"confidence"`
	Severity       float64            `json:"severity"`
	Message        string             `json:"message"`
	Details        map[string]float64 `json:"details,omitempty"`
	AffectedFrames []int              `json:"affected_frames,omitempty"`
}

// AnalysisResult is the root output of one analysis run. It is immutable:
// re-analysis with a club override produces a new AnalysisResult rather than
// mutating an existing one.
type AnalysisResult struct {
	VideoID            string            `json:"video_id"`
	FrameCount         int               `json:"frame_count"`
	Handedness         Handedness        `json:"handedness"`
	CameraAngle        CameraAngleResult `json:"camera_angle"`
	Club               ClubTypeResult    `json:"club"`
	ClubTypeOverridden bool              `json:"club_type_overridden"`
	PhaseFrames        []PhaseFrame      `json:"phase_frames"`
	Segments           []PhaseSegment    `json:"segments"`
	Metrics            SwingMetrics      `json:"metrics"`
	Tempo              TempoMetrics      `json:"tempo"`
	BaseScore          float64           `json:"base_score"`
	FaultPenalty       float64           `json:"fault_penalty"`
	OverallScore       float64           `json:"overall_score"`
	Faults             []DetectorResult  `json:"faults"`
}
