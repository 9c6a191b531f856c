package instrument

import (
	"math"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/audio"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/dsp"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/noise"
)

var tiltRatios = [...]float64{1.0, 1.498, 2.01}

const (
	tiltBaseHz     = 452.0
	tiltBaseJitter = 10.0
	tiltLowCutHz   = 160.0
	tiltHighCutHz  = 7200.0
)

// TiltCardHover is the richer hover tone for the tilt cards: three detuned
// partials with a decaying pitch glide, a quiet sub swell and a two-band chirp
// shimmer over noise.
type TiltCardHover struct {
	Seed       noise.Seed
	DurationMs float64
	Amp        float64
}

// NewTiltCardHover returns a TiltCardHover with the stock parameters.
func NewTiltCardHover(seed noise.Seed) TiltCardHover {
	return TiltCardHover{Seed: seed, DurationMs: 185, Amp: 0.58}
}

func (TiltCardHover) Kind() string { return KindTiltCardHover }

func (h TiltCardHover) Render(r *audio.Renderer) ([]float64, error) {
	if err := checkFinite(KindTiltCardHover,
		param{"duration_ms", h.DurationMs},
		param{"amp", h.Amp},
	); err != nil {
		return nil, err
	}

	rng := h.Seed.Stream()
	base := tiltBaseHz + rng.Uniform(-tiltBaseJitter, tiltBaseJitter)
	var phases [len(tiltRatios)]float64
	for i := range phases {
		phases[i] = rng.Random01() * 2 * math.Pi
	}
	detunes := [len(tiltRatios)]float64{
		1,
		1 + rng.Uniform(-0.004, 0.004),
		1 + rng.Uniform(-0.003, 0.003),
	}
	dur := h.DurationMs / 1000

	buf, err := renderVoice(r, KindTiltCardHover, h.DurationMs, func(t float64) float64 {
		swell := dsp.ExpEnvelope(t, 0.0055, 0.13)
		bloom := dsp.Smoothstep(math.Min(1, t/0.045))
		microGlide := 1 + 0.015*math.Exp(-t/0.035)

		tone := 0.0
		for i, ratio := range tiltRatios {
			tone += math.Sin(2*math.Pi*base*ratio*detunes[i]*microGlide*t + phases[i])
		}
		tone /= float64(len(tiltRatios))

		grandeur := 0.24 * math.Sin(2*math.Pi*(base*0.75)*t+phases[0]*0.5)
		grandeur *= dsp.ExpEnvelope(t, 0.01, 0.16)

		shimmerEnv := dsp.ExpEnvelope(t, 0.0015, 0.07) * (0.55 + 0.45*bloom)
		tc := math.Min(t, dur)
		shimmer := 0.0
		shimmer += 0.6 * math.Sin(dsp.ChirpPhase(tc, 2100, 1650, dur))
		shimmer += 0.4 * math.Sin(dsp.ChirpPhase(tc, 2850, 2250, dur))
		shimmer += 0.28 * rng.Uniform(-1, 1)

		return h.Amp * (0.78*tone*swell + grandeur + 0.18*shimmer*shimmerEnv)
	})
	if err != nil {
		return nil, err
	}
	return dsp.Bandpass(buf, tiltLowCutHz, tiltHighCutHz, r.SampleRate()), nil
}
