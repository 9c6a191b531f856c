package instrument

import (
	"math"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/audio"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/dsp"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/noise"
)

const (
	airRise       = 0.22
	airDecay      = 0.17
	airChirpStart = 980.0
	airChirpEnd   = 620.0
	airLowCutHz   = 820.0
	airHighCutHz  = 9800.0
)

// Air is a breathy noise swell with a faint falling whistle. A negative
// Direction plays the envelope's time axis backwards.
type Air struct {
	Seed       noise.Seed
	DurationMs float64
	Amp        float64
	Direction  float64
}

// NewAir returns an Air with the stock parameters.
func NewAir(seed noise.Seed) Air {
	return Air{Seed: seed, DurationMs: 230, Amp: 0.55, Direction: 1}
}

func (Air) Kind() string { return KindAir }

func (a Air) Render(r *audio.Renderer) ([]float64, error) {
	if err := checkFinite(KindAir,
		param{"duration_ms", a.DurationMs},
		param{"amp", a.Amp},
		param{"direction", a.Direction},
	); err != nil {
		return nil, err
	}

	rng := a.Seed.Stream()
	dur := a.DurationMs / 1000

	buf, err := renderVoice(r, KindAir, a.DurationMs, func(t float64) float64 {
		u := t / dur
		if a.Direction < 0 {
			u = 1 - u
		}
		e := dsp.Smoothstep(math.Min(1, u/airRise)) * math.Exp(-t/airDecay)
		n := rng.Uniform(-1, 1)
		shimmer := math.Sin(dsp.ChirpPhase(t, airChirpStart, airChirpEnd, dur))
		return a.Amp * (0.7*n + 0.3*shimmer) * e
	})
	if err != nil {
		return nil, err
	}
	return dsp.Bandpass(buf, airLowCutHz, airHighCutHz, r.SampleRate()), nil
}
