package wav

import (
	"errors"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"
)

// ErrNotWAV is returned by Decode for input that is not a RIFF/WAVE file.
var ErrNotWAV = errors.New("not a wav file")

// Clip is a decoded WAV file.
type Clip struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Samples    []int16
}

// Seconds returns the clip duration.
func (c *Clip) Seconds() float64 {
	if c.SampleRate == 0 || c.Channels == 0 {
		return 0
	}
	return float64(len(c.Samples)) / float64(c.Channels) / float64(c.SampleRate)
}

// Decode reads a 16-bit PCM WAV file.
func Decode(r io.ReadSeeker) (*Clip, error) {
	d := gowav.NewDecoder(r)
	if !d.IsValidFile() {
		return nil, ErrNotWAV
	}
	if d.BitDepth != BitDepth {
		return nil, fmt.Errorf("unsupported bit depth %d", d.BitDepth)
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("read pcm: %w", err)
	}
	samples := make([]int16, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = int16(v)
	}
	return &Clip{
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
		Samples:    samples,
	}, nil
}
