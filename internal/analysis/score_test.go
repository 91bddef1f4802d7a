package analysis

import (
	"testing"

	"github.com/rohanv/swingsight/internal/swing"
)

func TestBand_Score(t *testing.T) {
	b := Band{IdealMin: 80, IdealMax: 100, AbsMin: 40, AbsMax: 140}

	tests := []struct {
		value float64
		want  float64
	}{
		{80, 100},  // ideal lower edge
		{100, 100}, // ideal upper edge
		{90, 100},  // inside ideal
		{60, 50},   // halfway down the low side
		{40, 0},    // absolute floor
		{30, 0},    // below the floor clamps
		{120, 50},  // halfway down the high side
		{140, 0},   // absolute ceiling
		{200, 0},   // above the ceiling clamps
	}
	for _, tt := range tests {
		if got := b.Score(tt.value); !almostEqualF(got, tt.want) {
			t.Errorf("Score(%v) = %v, want %v", tt.value, got, tt.want)
		}
	}
}

func TestBand_Score_DegenerateEdges(t *testing.T) {
	// Zero-width low side: any value below ideal scores 0 without dividing
	// by zero.
	b := Band{IdealMin: 0, IdealMax: 10, AbsMin: 0, AbsMax: 20}
	if got := b.Score(-1); got != 0 {
		t.Errorf("Score below collapsed low side = %v, want 0", got)
	}

	b = Band{IdealMin: 170, IdealMax: 180, AbsMin: 120, AbsMax: 180}
	if got := b.Score(181); got != 0 {
		t.Errorf("Score above collapsed high side = %v, want 0", got)
	}
}

func idealMetrics() (swing.SwingMetrics, swing.TempoMetrics) {
	sway, head, ext := 0.02, 0.02, 1.0
	m := swing.SwingMetrics{
		MaxShoulderRotation: 90,
		MaxHipRotation:      45,
		MaxXFactor:          42,
		AddressSpineAngle:   10, // face-on band is 0-15
		TopLeadArmExtension: 172,
		AddressKneeFlex:     162,
		HipSway:             &sway,
		HeadStability:       &head,
		ImpactExtension:     &ext,
	}
	tempo := swing.TempoMetrics{
		BackswingDuration: 0.9,
		DownswingDuration: 0.3,
		TempoRatio:        3.0,
	}
	return m, tempo
}

func TestComputeBaseScore_IdealSwingScoresFull(t *testing.T) {
	m, tempo := idealMetrics()
	camera := swing.CameraAngleResult{Angle: swing.FaceOn, Confidence: 0.9}
	club := swing.ClubTypeResult{ClubType: swing.UnknownClub}

	got := ComputeBaseScore(m, tempo, camera, club, false)
	if !almostEqualF(got, 100) {
		t.Errorf("ideal face-on swing score = %v, want 100", got)
	}
}

func TestComputeBaseScore_Bounds(t *testing.T) {
	// Everything far outside every band still clamps into [0, 100].
	m := swing.SwingMetrics{
		MaxShoulderRotation: 500,
		MaxHipRotation:      -200,
		AddressSpineAngle:   300,
		TopLeadArmExtension: 10,
		AddressKneeFlex:     10,
	}
	camera := swing.CameraAngleResult{Angle: swing.Oblique}
	club := swing.ClubTypeResult{ClubType: swing.UnknownClub}

	got := ComputeBaseScore(m, swing.TempoMetrics{}, camera, club, false)
	if got < 0 || got > 100 {
		t.Errorf("score %v outside [0, 100]", got)
	}
}

func TestComputeBaseScore_DownTheLineIgnoresRotation(t *testing.T) {
	m, tempo := idealMetrics()
	m.AddressSpineAngle = 32 // DTL band is 25-40
	camera := swing.CameraAngleResult{Angle: swing.DownTheLine}
	club := swing.ClubTypeResult{ClubType: swing.UnknownClub}

	base := ComputeBaseScore(m, tempo, camera, club, false)

	// Wildly wrong rotation values must not move the down-the-line score.
	m.MaxShoulderRotation = 0
	m.MaxHipRotation = 500
	m.MaxXFactor = -300
	again := ComputeBaseScore(m, tempo, camera, club, false)

	if !almostEqualF(base, again) {
		t.Errorf("DTL score moved from %v to %v on rotation change", base, again)
	}
}

func TestComputeBaseScore_MissingTempoRenormalizes(t *testing.T) {
	m, tempo := idealMetrics()
	camera := swing.CameraAngleResult{Angle: swing.FaceOn}
	club := swing.ClubTypeResult{ClubType: swing.UnknownClub}

	withTempo := ComputeBaseScore(m, tempo, camera, club, false)

	// No downswing means tempo is unmeasurable: the metric is skipped and
	// the rest renormalized, so an otherwise ideal swing stays at 100.
	noTempo := ComputeBaseScore(m, swing.TempoMetrics{TempoRatio: 3.0}, camera, club, false)

	if !almostEqualF(withTempo, noTempo) {
		t.Errorf("score with tempo %v vs without %v; renormalization should hold at the ideal", withTempo, noTempo)
	}
}

func TestComputeBaseScore_RepeatedCallsBitIdentical(t *testing.T) {
	// Values off every ideal band so each term contributes a distinct
	// non-round fraction; any order-dependence in the weighted sum shows up
	// as a last-bit difference.
	sway, head, ext := 0.062, 0.071, 1.13
	m := swing.SwingMetrics{
		MaxShoulderRotation: 104.3,
		MaxHipRotation:      58.2,
		MaxXFactor:          53.5,
		AddressSpineAngle:   18.3,
		TopLeadArmExtension: 158.4,
		AddressKneeFlex:     149.2,
		HipSway:             &sway,
		HeadStability:       &head,
		ImpactExtension:     &ext,
	}
	tempo := swing.TempoMetrics{BackswingDuration: 0.84, DownswingDuration: 0.34, TempoRatio: 2.47}
	camera := swing.CameraAngleResult{Angle: swing.FaceOn, Confidence: 0.9}
	club := swing.ClubTypeResult{ClubType: swing.UnknownClub}

	first := ComputeBaseScore(m, tempo, camera, club, false)
	for i := 1; i < 1000; i++ {
		if got := ComputeBaseScore(m, tempo, camera, club, false); got != first {
			t.Fatalf("call %d: score %v != first %v", i, got, first)
		}
	}
}

func TestComputeBaseScore_ClubBandsApplyOnlyWhenConfident(t *testing.T) {
	m, tempo := idealMetrics()
	m.MaxShoulderRotation = 108 // inside the driver band, outside the neutral ideal
	camera := swing.CameraAngleResult{Angle: swing.FaceOn}

	lowConf := swing.ClubTypeResult{ClubType: swing.Driver, Confidence: 0.3}
	highConf := swing.ClubTypeResult{ClubType: swing.Driver, Confidence: 0.9}

	withNeutral := ComputeBaseScore(m, tempo, camera, lowConf, false)
	withDriver := ComputeBaseScore(m, tempo, camera, highConf, false)

	if withDriver <= withNeutral {
		t.Errorf("driver bands should reward a 108 degree turn: neutral=%v driver=%v",
			withNeutral, withDriver)
	}
	if !almostEqualF(withDriver, 100) {
		t.Errorf("ideal driver swing = %v, want 100", withDriver)
	}

	// An explicit override applies the club bands regardless of confidence.
	withOverride := ComputeBaseScore(m, tempo, camera, lowConf, true)
	if !almostEqualF(withOverride, withDriver) {
		t.Errorf("override score %v should match confident score %v", withOverride, withDriver)
	}
}
