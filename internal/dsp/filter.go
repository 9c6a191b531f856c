package dsp

import "math"

// MinCutoffHz is the lowest cutoff the one-pole filters accept.
const MinCutoffHz = 1.0

// OnePoleAlpha converts a cutoff frequency into the smoothing coefficient of a
// one-pole low-pass running at sampleRate.
func OnePoleAlpha(cutoffHz float64, sampleRate int) float64 {
	cutoffHz = math.Max(MinCutoffHz, cutoffHz)
	return 1 - math.Exp(-2*math.Pi*cutoffHz/float64(sampleRate))
}

// Lowpass runs y[i] = y[i-1] + α(x[i]-y[i-1]) over x with y[-1] = 0.
func Lowpass(x []float64, cutoffHz float64, sampleRate int) []float64 {
	a := OnePoleAlpha(cutoffHz, sampleRate)
	out := make([]float64, len(x))
	y := 0.0
	for i, v := range x {
		y += a * (v - y)
		out[i] = y
	}
	return out
}

// Highpass returns x minus its Lowpass, so Highpass(x)+Lowpass(x) == x.
func Highpass(x []float64, cutoffHz float64, sampleRate int) []float64 {
	lp := Lowpass(x, cutoffHz, sampleRate)
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = v - lp[i]
	}
	return out
}

// Bandpass is Highpass at lowHz followed by Lowpass at highHz.
func Bandpass(x []float64, lowHz, highHz float64, sampleRate int) []float64 {
	return Lowpass(Highpass(x, lowHz, sampleRate), highHz, sampleRate)
}
