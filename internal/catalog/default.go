package catalog

import (
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/instrument"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/noise"
)

// DefaultOutputDir is where the web app loads its interface sounds from.
const DefaultOutputDir = "src/assets/sounds/v2"

func glass(seed string, durationMs, baseHz, amp, tilt float64) instrument.GlassTick {
	return instrument.GlassTick{Seed: noise.Text(seed), DurationMs: durationMs, BaseHz: baseHz, Amp: amp, Tilt: tilt}
}

func thuck(seed string, durationMs, amp float64) instrument.Thuck {
	return instrument.Thuck{Seed: noise.Text(seed), DurationMs: durationMs, Amp: amp}
}

func air(seed string, durationMs, amp, direction float64) instrument.Air {
	return instrument.Air{Seed: noise.Text(seed), DurationMs: durationMs, Amp: amp, Direction: direction}
}

func tilt(seed string, durationMs, amp float64) instrument.TiltCardHover {
	return instrument.TiltCardHover{Seed: noise.Text(seed), DurationMs: durationMs, Amp: amp}
}

func layers(gens ...instrument.Generator) []Layer {
	out := make([]Layer, len(gens))
	for i, g := range gens {
		out[i] = Layer{Generator: g}
	}
	return out
}

// Default returns the shipped interface sound set. Seeds are fixed so every
// run reproduces the same files.
func Default() *Catalog {
	return &Catalog{
		Assets: []Asset{
			{Name: "glass-hover-soft.wav", Layers: layers(
				glass("hover", 55, 1750, 0.55, -0.03),
			)},
			{Name: "tilt-card-hover-ps.wav", Layers: layers(
				tilt("tilt-card-hover", 190, 0.6),
				air("tilt-card-hover-air", 165, 0.12, 1),
			)},
			{Name: "glass-tap-soft.wav", Layers: layers(
				thuck("tap", 95, 0.72),
				glass("tap-glass", 65, 1900, 0.35, -0.02),
			)},
			{Name: "glass-tick-open.wav", Layers: layers(
				glass("open", 80, 1620, 0.66, 0.04),
			)},
			{Name: "glass-tick-close.wav", Layers: layers(
				glass("close", 80, 1580, 0.62, -0.05),
			)},
			{Name: "terminal-open-soft.wav", Layers: layers(
				thuck("term-open", 140, 0.78),
				air("term-open-air", 210, 0.22, 1),
			)},
			{Name: "terminal-close-soft.wav", Layers: layers(
				thuck("term-close", 125, 0.74),
				air("term-close-air", 180, 0.18, -1),
			)},
			{Name: "sound-enable-confirm.wav", Layers: []Layer{
				{Generator: glass("enable-a", 70, 1760, 0.55, 0.03)},
				{Generator: glass("enable-b", 85, 2140, 0.44, -0.01), OffsetMs: 30},
			}},
			{Name: "sound-disable-soft.wav", Layers: layers(
				thuck("disable", 110, 0.62),
			)},
			{Name: "route-open-air.wav", Layers: layers(
				air("route-open", 230, 0.55, 1),
			)},
			{Name: "route-back-air.wav", Layers: layers(
				air("route-back", 230, 0.55, -1),
			)},
		},
		Events: DefaultEvents(),
	}
}
