package dsp

import "math"

// SilenceThreshold is the peak magnitude at or below which Normalize leaves a
// buffer unscaled.
const SilenceThreshold = 1e-9

// Peak returns the largest absolute sample value in x, or 0 for an empty buffer.
func Peak(x []float64) float64 {
	mx := 0.0
	for _, v := range x {
		if a := math.Abs(v); a > mx {
			mx = a
		}
	}
	return mx
}

// Normalize scales x so its peak magnitude equals peak. Buffers whose peak is
// at or below SilenceThreshold are returned as an unscaled copy.
func Normalize(x []float64, peak float64) []float64 {
	out := make([]float64, len(x))
	mx := Peak(x)
	if mx <= SilenceThreshold {
		copy(out, x)
		return out
	}
	g := peak / mx
	for i, v := range x {
		out[i] = v * g
	}
	return out
}

// FadeSamples returns how many samples FadeEdges ramps at each end of an
// n-sample buffer: round(sampleRate·fadeMs/1000) clamped to [1, n/2].
func FadeSamples(n int, fadeMs float64, sampleRate int) int {
	fadeN := int(math.Round(float64(sampleRate) * fadeMs / 1000))
	return max(1, min(fadeN, n/2))
}

// FadeEdges applies a linear ramp-in and ramp-out to the ends of x. Buffers
// shorter than two samples have no edges to fade and are copied unchanged.
func FadeEdges(x []float64, fadeMs float64, sampleRate int) []float64 {
	n := len(x)
	out := make([]float64, n)
	copy(out, x)
	if n < 2 {
		return out
	}
	fadeN := FadeSamples(n, fadeMs, sampleRate)
	for i := 0; i < fadeN; i++ {
		w := float64(i) / float64(fadeN)
		out[i] *= w
		out[n-1-i] *= w
	}
	return out
}
