// Package dsp holds the deterministic building blocks the instruments are
// assembled from: easing, envelopes, chirps, one-pole filters and level
// stages. Every function is pure; buffer stages return new slices.
package dsp

import "math"

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Smoothstep clamps x to [0,1] and applies the cubic Hermite ease x²(3-2x).
func Smoothstep(x float64) float64 {
	x = Clamp(x, 0, 1)
	return x * x * (3 - 2*x)
}

// ExpEnvelope returns the amplitude at time t (seconds) of an envelope that
// rises with a smoothstep over attack seconds and decays exponentially with
// time constant decay. It is 0 for t <= 0. A non-positive attack saturates
// immediately; a non-positive decay silences everything after t = 0.
func ExpEnvelope(t, attack, decay float64) float64 {
	if t <= 0 {
		return 0
	}
	a := 1.0
	if attack > 0 {
		a = Smoothstep(t / attack)
	}
	d := 0.0
	if decay > 0 {
		d = math.Exp(-t / decay)
	}
	return a * d
}

// ChirpPhase returns the phase angle at time t of a sweep whose instantaneous
// frequency moves linearly from f0 to f1 over dur seconds. Using the integral
// keeps the waveform continuous across the sweep.
func ChirpPhase(t, f0, f1, dur float64) float64 {
	if dur <= 0 {
		return 0
	}
	k := (f1 - f0) / dur
	return 2 * math.Pi * (f0*t + 0.5*k*t*t)
}
