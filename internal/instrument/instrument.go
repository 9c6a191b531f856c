// Package instrument composes the dsp primitives into the four voices the UI
// sounds are built from.
//
// Every generator is a plain parameter struct. Render starts a fresh seeded
// stream, draws the per-call randomness (phases, jitter) once, renders the
// waveform sample by sample and applies the voice's fixed post-filter, so the
// output depends only on the struct's fields and the renderer's sample rate.
// The order of draws is part of the contract: changing it changes the sound.
package instrument

import (
	"fmt"
	"math"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/audio"
)

// Instrument kinds as they appear in catalogs.
const (
	KindGlassTick     = "glass_tick"
	KindThuck         = "thuck"
	KindAir           = "air"
	KindTiltCardHover = "tilt_card_hover"
)

// Generator renders one voice into a sample buffer.
type Generator interface {
	Kind() string
	Render(r *audio.Renderer) ([]float64, error)
}

type param struct {
	name  string
	value float64
}

func checkFinite(kind string, params ...param) error {
	for _, p := range params {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return fmt.Errorf("%s %s=%v: %w", kind, p.name, p.value, audio.ErrInvalidParameter)
		}
	}
	return nil
}

// renderVoice renders fn over durationMs, wrapping errors with the kind.
func renderVoice(r *audio.Renderer, kind string, durationMs float64, fn audio.WaveFunc) ([]float64, error) {
	buf, err := r.Render(durationMs, fn)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", kind, err)
	}
	return buf, nil
}
