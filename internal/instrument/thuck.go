package instrument

import (
	"math"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/audio"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/dsp"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/noise"
)

const (
	thuckAttack      = 0.0018
	thuckDecay       = 0.07
	thuckTickWindow  = 0.008
	thuckTickAttack  = 0.00035
	thuckTickDecay   = 0.0035
	thuckLowpassHz   = 5200.0
	thuckStartHz     = 265.0
	thuckStartJitter = 10.0
	thuckEndHz       = 165.0
	thuckEndJitter   = 8.0
	thuckSubHz       = 118.0
	thuckSubJitter   = 6.0
)

// Thuck is a soft percussive thud: a downward chirp over a sub sine with a
// short noise tick on the attack, low-passed to take the edge off.
type Thuck struct {
	Seed       noise.Seed
	DurationMs float64
	Amp        float64
}

// NewThuck returns a Thuck with the stock parameters.
func NewThuck(seed noise.Seed) Thuck {
	return Thuck{Seed: seed, DurationMs: 110, Amp: 0.9}
}

func (Thuck) Kind() string { return KindThuck }

// Envelope is the amplitude envelope applied to the body at time t.
func (Thuck) Envelope(t float64) float64 {
	return dsp.ExpEnvelope(t, thuckAttack, thuckDecay)
}

// AttackSeconds is the time at which Envelope peaks.
func (Thuck) AttackSeconds() float64 { return thuckAttack }

func (th Thuck) Render(r *audio.Renderer) ([]float64, error) {
	if err := checkFinite(KindThuck,
		param{"duration_ms", th.DurationMs},
		param{"amp", th.Amp},
	); err != nil {
		return nil, err
	}

	rng := th.Seed.Stream()
	f0 := thuckStartHz + rng.Uniform(-thuckStartJitter, thuckStartJitter)
	f1 := thuckEndHz + rng.Uniform(-thuckEndJitter, thuckEndJitter)
	sub := thuckSubHz + rng.Uniform(-thuckSubJitter, thuckSubJitter)
	dur := th.DurationMs / 1000

	buf, err := renderVoice(r, KindThuck, th.DurationMs, func(t float64) float64 {
		e := th.Envelope(t)
		ph := dsp.ChirpPhase(math.Min(t, dur), f0, f1, dur)
		body := 0.85 * math.Sin(ph)
		body += 0.42 * math.Sin(2*math.Pi*sub*t)

		tick := 0.0
		if t < thuckTickWindow {
			tick = rng.Uniform(-1, 1) * dsp.ExpEnvelope(t, thuckTickAttack, thuckTickDecay)
		}
		return th.Amp * (body*e + 0.22*tick)
	})
	if err != nil {
		return nil, err
	}
	return dsp.Lowpass(buf, thuckLowpassHz, r.SampleRate()), nil
}
