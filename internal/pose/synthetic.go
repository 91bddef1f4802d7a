package pose

import "math"

// SyntheticView selects the camera viewpoint for generated swings.
type SyntheticView int

const (
	// ViewFaceOn places the camera square to the golfer's chest.
	ViewFaceOn SyntheticView = iota
	// ViewDownTheLine places the camera behind the golfer along the target line.
	ViewDownTheLine
	// ViewOblique places the camera roughly 45 degrees off the target line.
	ViewOblique
)

// SyntheticSwingOpts configures generated swing recordings.
type SyntheticSwingOpts struct {
	View   SyntheticView
	Frames int     // total frame count (default 64)
	FPS    float64 // sampling rate (default 30)
	Driver bool    // wide driver stance and higher hands instead of an iron setup
}

// viewAzimuth is the projected angle of the body lines at address for each
// viewpoint, in radians. The synthetic body rotates about the vertical axis,
// so the image-plane width of a line with real width W at turn angle t is
// W*cos(azimuth+t) and its depth span is W*sin(azimuth+t).
func viewAzimuth(v SyntheticView) float64 {
	switch v {
	case ViewDownTheLine:
		return 87 * math.Pi / 180
	case ViewOblique:
		return 45 * math.Pi / 180
	default:
		return 3 * math.Pi / 180
	}
}

// viewLean is the horizontal offset of the upper body relative to the hips,
// modeling forward spine tilt as seen from each viewpoint. Face-on shows no
// forward tilt, only lateral.
func viewLean(v SyntheticView) float64 {
	switch v {
	case ViewDownTheLine:
		return 0.08
	case ViewOblique:
		return 0.05
	default:
		return 0
	}
}

// SyntheticSwing generates a deterministic full swing recording: address,
// backswing, top, downswing, impact, follow-through and finish, with a
// velocity peak just before impact and the hands at their lowest point at
// ball contact. All landmark positions are smooth functions of the frame
// fraction, so identical options always produce identical frames.
func SyntheticSwing(opts SyntheticSwingOpts) []Frame {
	n := opts.Frames
	if n <= 0 {
		n = 64
	}
	fps := opts.FPS
	if fps <= 0 {
		fps = 30
	}

	handAddr := [2]float64{0.50, 0.74}
	if opts.Driver {
		handAddr[1] = 0.70
	}

	frames := make([]Frame, n)
	for i := 0; i < n; i++ {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		hx, hy := handPosition(t, handAddr)
		turn := shoulderTurn(t)

		frames[i] = buildSwingFrame(opts, i, float64(i)/fps, hx, hy, turn)
	}
	return frames
}

// handPosition returns the lead-hand image position at swing fraction t.
func handPosition(t float64, addr [2]float64) (x, y float64) {
	top := [2]float64{0.62, 0.30}
	impact := [2]float64{0.49, addr[1] + 0.02}
	finish := [2]float64{0.35, 0.28}

	switch {
	case t < 0.15: // address: still over the ball
		return addr[0], addr[1]
	case t < 0.45: // backswing: smooth climb to the top
		u := (t - 0.15) / 0.30
		return ease(addr[0], top[0], u), ease(addr[1], top[1], u)
	case t < 0.47: // top: brief pause
		return top[0], top[1]
	case t < 0.62: // downswing: fast drop into the ball
		u := (t - 0.47) / 0.15
		return ease(top[0], impact[0], u), ease(top[1], impact[1], u)
	case t < 0.85: // follow-through: release up and around
		u := (t - 0.62) / 0.23
		return ease(impact[0], finish[0], u), ease(impact[1], finish[1], u)
	default: // finish: held high
		return finish[0], finish[1]
	}
}

// shoulderTurn returns the shoulder rotation away from address, in radians.
// Peaks at the top of the backswing, partially unwound again by impact.
func shoulderTurn(t float64) float64 {
	const maxTurn = 80 * math.Pi / 180
	const impactTurn = 20 * math.Pi / 180
	switch {
	case t < 0.15:
		return 0
	case t < 0.45:
		return ease(0, maxTurn, (t-0.15)/0.30)
	case t < 0.47:
		return maxTurn
	case t < 0.62:
		return ease(maxTurn, impactTurn, (t-0.47)/0.15)
	default:
		return ease(impactTurn, 0, math.Min((t-0.62)/0.23, 1))
	}
}

// ease interpolates from a to b with cosine easing, u in [0,1].
func ease(a, b, u float64) float64 {
	return a + (b-a)*(1-math.Cos(u*math.Pi))/2
}

func buildSwingFrame(opts SyntheticSwingOpts, index int, ts, handX, handY, turn float64) Frame {
	az := viewAzimuth(opts.View)
	lean := viewLean(opts.View)
	hipTurn := turn * 0.45

	const (
		cx        = 0.5
		shoulderW = 0.15 // half-span
		hipW      = 0.08
		shoulderY = 0.30
		hipY      = 0.52
		kneeY     = 0.70
		ankleY    = 0.88
	)
	stanceW := 0.10
	if opts.Driver {
		stanceW = 0.15
	}

	f := Frame{Index: index, Timestamp: ts}
	set := func(i int, x, y, z float64) {
		f.Landmarks[i] = Landmark{X: x, Y: y, Z: z, Visibility: 1}
	}

	// Shoulders and hips rotate about the vertical axis; feet stay planted.
	sdx, sdz := shoulderW*math.Cos(az+turn), shoulderW*math.Sin(az+turn)
	hdx, hdz := hipW*math.Cos(az+hipTurn), hipW*math.Sin(az+hipTurn)
	adx, adz := stanceW*math.Cos(az), stanceW*math.Sin(az)

	set(LeftShoulder, cx+lean+sdx, shoulderY, sdz)
	set(RightShoulder, cx+lean-sdx, shoulderY, -sdz)
	set(LeftHip, cx+hdx, hipY, hdz)
	set(RightHip, cx-hdx, hipY, -hdz)
	set(LeftKnee, cx+(hdx+adx)/2+0.01, kneeY, (hdz+adz)/2)
	set(RightKnee, cx-(hdx+adx)/2-0.01, kneeY, -(hdz+adz)/2)
	set(LeftAnkle, cx+adx, ankleY, adz)
	set(RightAnkle, cx-adx, ankleY, -adz)
	set(LeftHeel, cx+adx+0.01, ankleY+0.02, adz)
	set(RightHeel, cx-adx-0.01, ankleY+0.02, -adz)
	set(LeftFootIndex, cx+adx, ankleY+0.03, adz+0.02)
	set(RightFootIndex, cx-adx, ankleY+0.03, -adz-0.02)

	// Head sits above the shoulder center and stays put through the swing.
	set(Nose, cx+lean, 0.20, 0)
	set(LeftEyeInner, cx+lean+0.01, 0.19, 0)
	set(LeftEye, cx+lean+0.02, 0.19, 0)
	set(LeftEyeOuter, cx+lean+0.03, 0.19, 0)
	set(RightEyeInner, cx+lean-0.01, 0.19, 0)
	set(RightEye, cx+lean-0.02, 0.19, 0)
	set(RightEyeOuter, cx+lean-0.03, 0.19, 0)
	set(LeftEar, cx+lean+0.04, 0.20, 0)
	set(RightEar, cx+lean-0.04, 0.20, 0)
	set(MouthLeft, cx+lean+0.01, 0.22, 0)
	set(MouthRight, cx+lean-0.01, 0.22, 0)

	// Both hands ride the club: wrists straddle the hand position with the
	// lead (left) hand on top of the grip, elbows on the shoulder-wrist line
	// so the arms read as extended.
	set(LeftWrist, handX+0.01, handY-0.01, 0)
	set(RightWrist, handX-0.01, handY+0.01, 0)
	ls, rs := f.Landmarks[LeftShoulder], f.Landmarks[RightShoulder]
	set(LeftElbow, (ls.X+handX)/2+0.01, (ls.Y+handY)/2, 0)
	set(RightElbow, (rs.X+handX)/2-0.01, (rs.Y+handY)/2, 0)
	set(LeftPinky, handX+0.02, handY+0.02, 0)
	set(RightPinky, handX-0.02, handY+0.02, 0)
	set(LeftIndex, handX+0.01, handY+0.03, 0)
	set(RightIndex, handX-0.01, handY+0.03, 0)
	set(LeftThumb, handX+0.01, handY+0.01, 0)
	set(RightThumb, handX-0.01, handY+0.01, 0)

	return f
}
