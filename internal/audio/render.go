package audio

import (
	"errors"
	"fmt"
	"math"
)

// DefaultSampleRate is the rate every shipped asset is rendered at.
const DefaultSampleRate = 44100

// MaxDurationMs bounds every duration and offset a renderer accepts.
const MaxDurationMs = 60_000

// ErrInvalidParameter reports a duration, rate or level that cannot produce a
// meaningful buffer.
var ErrInvalidParameter = errors.New("invalid parameter")

// WaveFunc returns the amplitude of a signal at time t seconds.
type WaveFunc func(t float64) float64

// Renderer turns wave functions into sample buffers at a fixed rate.
type Renderer struct {
	sampleRate int
}

// NewRenderer returns a renderer for the given sample rate.
func NewRenderer(sampleRate int) (*Renderer, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate %d: %w", sampleRate, ErrInvalidParameter)
	}
	return &Renderer{sampleRate: sampleRate}, nil
}

// SampleRate returns the rate in Hz.
func (r *Renderer) SampleRate() int {
	return r.sampleRate
}

// SampleCount returns round(sampleRate·durationMs/1000). Zero is allowed and
// yields zero; negative, non-finite and over-long durations are rejected.
func (r *Renderer) SampleCount(durationMs float64) (int, error) {
	if math.IsNaN(durationMs) || durationMs < 0 || durationMs > MaxDurationMs {
		return 0, fmt.Errorf("duration %vms: %w", durationMs, ErrInvalidParameter)
	}
	return int(math.Round(float64(r.sampleRate) * durationMs / 1000)), nil
}

// Seconds converts a sample count to seconds.
func (r *Renderer) Seconds(samples int) float64 {
	return float64(samples) / float64(r.sampleRate)
}

// Render samples fn at i/sampleRate for every sample of durationMs.
func (r *Renderer) Render(durationMs float64, fn WaveFunc) ([]float64, error) {
	count, err := r.SampleCount(durationMs)
	if err != nil {
		return nil, err
	}
	out := make([]float64, count)
	sr := float64(r.sampleRate)
	for i := range out {
		out[i] = fn(float64(i) / sr)
	}
	return out, nil
}

// Silence returns a zero buffer of durationMs.
func (r *Renderer) Silence(durationMs float64) ([]float64, error) {
	count, err := r.SampleCount(durationMs)
	if err != nil {
		return nil, err
	}
	return make([]float64, count), nil
}

// Delay returns buf preceded by offsetMs of silence.
func (r *Renderer) Delay(buf []float64, offsetMs float64) ([]float64, error) {
	lead, err := r.Silence(offsetMs)
	if err != nil {
		return nil, fmt.Errorf("offset: %w", err)
	}
	return append(lead, buf...), nil
}
