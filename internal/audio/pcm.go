package audio

import (
	"math"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/dsp"
)

// FullScale is the int16 value a sample of 1.0 quantizes to.
const FullScale = math.MaxInt16

// QuantizeSample clamps x to [-1,1] and rounds x·32767 to the nearest int16,
// ties to even, which keeps the PCM bytes identical to the existing assets.
func QuantizeSample(x float64) int16 {
	return int16(math.RoundToEven(dsp.Clamp(x, -1, 1) * FullScale))
}

// Quantize converts float samples to signed 16-bit PCM.
func Quantize(samples []float64) []int16 {
	out := make([]int16, len(samples))
	for i, s := range samples {
		out[i] = QuantizeSample(s)
	}
	return out
}
