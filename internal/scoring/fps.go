package scoring

import "math"

// FPSResult reports the outcome of a frame-rate sanity check.
type FPSResult int

const (
	// FPSUnknown means one or both frame rates were unavailable.
	FPSUnknown FPSResult = iota
	// FPSMatch means the frame rates agree within tolerance.
	FPSMatch
	// FPSMismatch means the candidate was authored for a different frame rate.
	FPSMismatch
)

// CheckFPS compares the video and candidate frame rates. Tolerance is a
// relative fraction (0.03 accepts 23.976 vs 24).
func CheckFPS(videoFPS, subtitleFPS, tolerance float64) FPSResult {
	if videoFPS <= 0 || subtitleFPS <= 0 {
		return FPSUnknown
	}
	if math.Abs(videoFPS-subtitleFPS)/videoFPS <= tolerance {
		return FPSMatch
	}
	return FPSMismatch
}

// DisqualifyWrongFPS zeroes the match set for a wrong-fps candidate when the
// skip setting is enabled. Returns true when the candidate was disqualified.
func DisqualifyWrongFPS(matches Set, result FPSResult, skip bool) bool {
	if result != FPSMismatch || !skip {
		return false
	}
	for tag := range matches {
		delete(matches, tag)
	}
	return true
}
