package audio

import "github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/dsp"

// MixPeak is the peak level Mix normalizes its result to.
const MixPeak = 0.9

// Sum adds tracks sample by sample. The result is as long as the longest
// track; shorter tracks contribute silence past their end.
func Sum(tracks ...[]float64) []float64 {
	n := 0
	for _, t := range tracks {
		n = max(n, len(t))
	}
	out := make([]float64, n)
	for _, t := range tracks {
		for i, v := range t {
			out[i] += v
		}
	}
	return out
}

// Mix sums tracks and normalizes the result to MixPeak. Mixing the output of
// a previous Mix renormalizes it, which changes the balance between earlier
// and later layers; use Sum to combine partial mixes without that step.
func Mix(tracks ...[]float64) []float64 {
	return dsp.Normalize(Sum(tracks...), MixPeak)
}
