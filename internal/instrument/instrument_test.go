package instrument

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/audio"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/dsp"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/noise"
)

// Reference samples were produced by the script the shipped assets came from.
const refTolerance = 1e-9

func renderer(t *testing.T) *audio.Renderer {
	t.Helper()
	r, err := audio.NewRenderer(audio.DefaultSampleRate)
	require.NoError(t, err)
	return r
}

func hoverTick() GlassTick {
	return GlassTick{Seed: noise.Text("hover"), DurationMs: 55, BaseHz: 1750, Amp: 0.55, Tilt: -0.03}
}

func TestGlassTickHoverScenario(t *testing.T) {
	buf, err := hoverTick().Render(renderer(t))
	require.NoError(t, err)

	require.Len(t, buf, 2426)
	assert.Equal(t, 0.0, buf[0])
	assert.InDelta(t, 0.0004397977748875285, buf[1], refTolerance)
	assert.InDelta(t, 0.09221161125477477, buf[500], refTolerance)
	assert.InDelta(t, 0.005543878600808814, buf[2000], refTolerance)
}

func TestThuckDisableScenario(t *testing.T) {
	th := Thuck{Seed: noise.Text("disable"), DurationMs: 110, Amp: 0.62}
	buf, err := th.Render(renderer(t))
	require.NoError(t, err)

	require.Len(t, buf, 4851)
	assert.InDelta(t, -0.037003218462317786, buf[100], refTolerance)
	assert.InDelta(t, 0.3870544352180779, buf[2000], refTolerance)

	// Past the attack peak the body envelope never rises again.
	sr := float64(audio.DefaultSampleRate)
	start := int(math.Ceil(th.AttackSeconds() * sr))
	prev := th.Envelope(float64(start) / sr)
	for i := start + 1; i < len(buf); i++ {
		v := th.Envelope(float64(i) / sr)
		require.LessOrEqual(t, v, prev, "sample %d", i)
		prev = v
	}
	assert.InDelta(t, 1.0, th.Envelope(th.AttackSeconds())/math.Exp(-th.AttackSeconds()/thuckDecay), 1e-12)
}

func TestAirMatchesReference(t *testing.T) {
	r := renderer(t)

	rising, err := Air{Seed: noise.Text("term-open-air"), DurationMs: 210, Amp: 0.22, Direction: 1}.Render(r)
	require.NoError(t, err)
	require.Len(t, rising, 9261)
	assert.InDelta(t, -0.09316022482751338, rising[3000], refTolerance)

	falling, err := Air{Seed: noise.Text("term-close-air"), DurationMs: 180, Amp: 0.18, Direction: -1}.Render(r)
	require.NoError(t, err)
	require.Len(t, falling, 7938)
	assert.InDelta(t, -0.1043889408833666, falling[1000], refTolerance)
}

func TestAirDirectionShapesEnvelope(t *testing.T) {
	r := renderer(t)
	seed := noise.Text("route")
	up, err := Air{Seed: seed, DurationMs: 230, Amp: 0.55, Direction: 1}.Render(r)
	require.NoError(t, err)
	down, err := Air{Seed: seed, DurationMs: 230, Amp: 0.55, Direction: -1}.Render(r)
	require.NoError(t, err)

	// A rising sweep starts from silence; the reversed one starts open.
	head := 200
	assert.Less(t, dsp.Peak(up[:head]), dsp.Peak(down[:head]))
}

func TestTiltCardHoverMatchesReference(t *testing.T) {
	buf, err := TiltCardHover{Seed: noise.Text("tilt-card-hover"), DurationMs: 190, Amp: 0.6}.Render(renderer(t))
	require.NoError(t, err)
	require.Len(t, buf, 8379)
	assert.InDelta(t, 0.02965409733559299, buf[50], refTolerance)
	assert.InDelta(t, -0.003343213965784117, buf[4000], refTolerance)
}

func allGenerators() []Generator {
	return []Generator{
		hoverTick(),
		NewGlassTick(noise.Int(12)),
		NewThuck(noise.Text("tap")),
		NewAir(noise.Text("air")),
		NewTiltCardHover(noise.Text("tilt")),
	}
}

func TestGeneratorsAreDeterministic(t *testing.T) {
	r := renderer(t)
	for _, g := range allGenerators() {
		a, err := g.Render(r)
		require.NoError(t, err)
		b, err := g.Render(r)
		require.NoError(t, err)
		require.Equal(t, a, b, g.Kind())
		require.NotEmpty(t, a)
		assert.Equal(t, 0.0, a[0], "%s starts from silence", g.Kind())
	}

	// A reversed air sweep starts open, so only check it repeats.
	rev := Air{Seed: noise.Text("air"), DurationMs: 180, Amp: 0.2, Direction: -1}
	a, err := rev.Render(r)
	require.NoError(t, err)
	b, err := rev.Render(r)
	require.NoError(t, err)
	require.Equal(t, a, b)
	assert.NotEqual(t, 0.0, a[0])
}

func TestGeneratorsDependOnSeed(t *testing.T) {
	r := renderer(t)
	a, err := NewThuck(noise.Text("a")).Render(r)
	require.NoError(t, err)
	b, err := NewThuck(noise.Text("b")).Render(r)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestZeroDurationIsEmpty(t *testing.T) {
	r := renderer(t)
	gens := []Generator{
		GlassTick{Seed: noise.Text("x"), BaseHz: 1000, Amp: 1},
		Thuck{Seed: noise.Text("x"), Amp: 1},
		Air{Seed: noise.Text("x"), Amp: 1, Direction: 1},
		TiltCardHover{Seed: noise.Text("x"), Amp: 1},
	}
	for _, g := range gens {
		buf, err := g.Render(r)
		require.NoError(t, err, g.Kind())
		assert.Empty(t, buf, g.Kind())
	}
}

func TestInvalidParameters(t *testing.T) {
	r := renderer(t)
	gens := []Generator{
		GlassTick{Seed: noise.Text("x"), DurationMs: -5, BaseHz: 1000, Amp: 1},
		GlassTick{Seed: noise.Text("x"), DurationMs: 50, BaseHz: math.NaN(), Amp: 1},
		Thuck{Seed: noise.Text("x"), DurationMs: math.Inf(1), Amp: 1},
		Air{Seed: noise.Text("x"), DurationMs: 100, Amp: math.Inf(-1)},
		TiltCardHover{Seed: noise.Text("x"), DurationMs: -1, Amp: 1},
	}
	for _, g := range gens {
		_, err := g.Render(r)
		assert.ErrorIs(t, err, audio.ErrInvalidParameter, g.Kind())
	}
}

func TestPostFiltersRemoveDC(t *testing.T) {
	r := renderer(t)
	buf, err := NewGlassTick(noise.Text("dc")).Render(r)
	require.NoError(t, err)
	mean := 0.0
	for _, v := range buf {
		mean += v
	}
	mean /= float64(len(buf))
	assert.Less(t, math.Abs(mean), 0.01)
}

func TestStockParameters(t *testing.T) {
	g := NewGlassTick(noise.Text("s"))
	assert.Equal(t, 75.0, g.DurationMs)
	assert.Equal(t, 1650.0, g.BaseHz)
	assert.Equal(t, 0.65, g.Amp)
	assert.Equal(t, 0.0, g.Tilt)

	assert.Equal(t, Thuck{Seed: noise.Text("s"), DurationMs: 110, Amp: 0.9}, NewThuck(noise.Text("s")))
	assert.Equal(t, Air{Seed: noise.Text("s"), DurationMs: 230, Amp: 0.55, Direction: 1}, NewAir(noise.Text("s")))
	assert.Equal(t, TiltCardHover{Seed: noise.Text("s"), DurationMs: 185, Amp: 0.58}, NewTiltCardHover(noise.Text("s")))
}
