package instrument

import (
	"math"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/audio"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/dsp"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/noise"
)

var glassRatios = [...]float64{1.0, 1.27, 1.73, 2.31, 2.88}

const (
	glassAttack          = 0.0012
	glassDecay           = 0.028
	glassTransientWindow = 0.012
	glassTransientAttack = 0.0005
	glassTransientDecay  = 0.006
	glassHighpassHz      = 650.0
)

// GlassTick is a short inharmonic click: five partials of BaseHz that glide
// by Tilt over the note, plus a noise transient, high-passed to stay glassy.
type GlassTick struct {
	Seed       noise.Seed
	DurationMs float64
	BaseHz     float64
	Amp        float64
	// Tilt is the relative frequency change reached at the end of the note.
	Tilt float64
}

// NewGlassTick returns a GlassTick with the stock parameters.
func NewGlassTick(seed noise.Seed) GlassTick {
	return GlassTick{Seed: seed, DurationMs: 75, BaseHz: 1650, Amp: 0.65}
}

func (GlassTick) Kind() string { return KindGlassTick }

func (g GlassTick) Render(r *audio.Renderer) ([]float64, error) {
	if err := checkFinite(KindGlassTick,
		param{"duration_ms", g.DurationMs},
		param{"base_hz", g.BaseHz},
		param{"amp", g.Amp},
		param{"tilt", g.Tilt},
	); err != nil {
		return nil, err
	}

	rng := g.Seed.Stream()
	var phases [len(glassRatios)]float64
	for i := range phases {
		phases[i] = rng.Random01() * 2 * math.Pi
	}
	dur := g.DurationMs / 1000

	buf, err := renderVoice(r, KindGlassTick, g.DurationMs, func(t float64) float64 {
		e := dsp.ExpEnvelope(t, glassAttack, glassDecay)
		sparkle := 0.0
		for i, ratio := range glassRatios {
			f := g.BaseHz * ratio * (1 + g.Tilt*(t/dur))
			sparkle += math.Sin(2*math.Pi*f*t + phases[i])
		}
		sparkle /= float64(len(glassRatios))

		transient := 0.0
		if t < glassTransientWindow {
			transient = rng.Uniform(-1, 1) * dsp.ExpEnvelope(t, glassTransientAttack, glassTransientDecay)
		}
		return g.Amp * (0.86*sparkle*e + 0.22*transient)
	})
	if err != nil {
		return nil, err
	}
	return dsp.Highpass(buf, glassHighpassHz, r.SampleRate()), nil
}
