// Package wav persists rendered buffers as mono 16-bit PCM WAV files.
package wav

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/audio"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/dsp"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/metrics"
)

const (
	// BitDepth is the sample width of every file the sink writes.
	BitDepth = 16
	// NumChannels is fixed at mono.
	NumChannels = 1
	pcmFormat   = 1
	// HeaderSize is the length of the RIFF, fmt and data chunk headers.
	HeaderSize = 44
)

// Options controls the final stage applied to every asset before encoding.
type Options struct {
	SampleRate int
	FadeMs     float64
	Peak       float64
}

// DefaultOptions returns the settings the shipped assets use.
func DefaultOptions() Options {
	return Options{
		SampleRate: audio.DefaultSampleRate,
		FadeMs:     2.5,
		Peak:       0.92,
	}
}

// Sink fades, normalizes, quantizes and writes buffers. Writes to the same
// path are serialized; different paths are written concurrently.
type Sink struct {
	opts  Options
	locks sync.Map // path -> *sync.Mutex
}

// NewSink validates opts and returns a sink.
func NewSink(opts Options) (*Sink, error) {
	if opts.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate %d: %w", opts.SampleRate, audio.ErrInvalidParameter)
	}
	if math.IsNaN(opts.FadeMs) || math.IsInf(opts.FadeMs, 0) || opts.FadeMs < 0 {
		return nil, fmt.Errorf("fade %vms: %w", opts.FadeMs, audio.ErrInvalidParameter)
	}
	if math.IsNaN(opts.Peak) || opts.Peak <= 0 || opts.Peak > 1 {
		return nil, fmt.Errorf("peak %v: %w", opts.Peak, audio.ErrInvalidParameter)
	}
	return &Sink{opts: opts}, nil
}

// Options returns the sink's settings.
func (s *Sink) Options() Options {
	return s.opts
}

// Finalize applies the edge fade and peak normalization.
func (s *Sink) Finalize(samples []float64) []float64 {
	return dsp.Normalize(dsp.FadeEdges(samples, s.opts.FadeMs, s.opts.SampleRate), s.opts.Peak)
}

// PCM returns the 16-bit samples the sink would encode for samples.
func (s *Sink) PCM(samples []float64) []int16 {
	return audio.Quantize(s.Finalize(samples))
}

// Encode writes samples to w as a complete WAV container.
func (s *Sink) Encode(w io.WriteSeeker, samples []float64) error {
	pcm := s.PCM(samples)

	data := acquireInts(len(pcm))
	defer releaseInts(data)
	for i, v := range pcm {
		(*data)[i] = int(v)
	}

	enc := gowav.NewEncoder(w, s.opts.SampleRate, BitDepth, NumChannels, pcmFormat)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: NumChannels,
			SampleRate:  s.opts.SampleRate,
		},
		Data:           *data,
		SourceBitDepth: BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write pcm: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish wav: %w", err)
	}
	return nil
}

// EncodeBytes returns the WAV file for samples.
func (s *Sink) EncodeBytes(samples []float64) ([]byte, error) {
	f := &memFile{buf: make([]byte, 0, HeaderSize+2*len(samples))}
	if err := s.Encode(f, samples); err != nil {
		return nil, err
	}
	return f.Bytes(), nil
}

// Write creates the parent directory of path if needed and writes samples to
// it. Failures are returned as-is and nothing is retried; a partly written
// file is removed.
func (s *Sink) Write(path string, samples []float64) error {
	mu := s.lockFor(path)
	mu.Lock()
	defer mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	f, err := createFile(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.Encode(f, samples); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("close %s: %w", path, err)
	}

	metrics.BytesWrittenTotal.Add(float64(HeaderSize + 2*len(samples)))
	return nil
}

type outputFile interface {
	io.WriteSeeker
	io.Closer
}

// createFile is replaced in tests to simulate failing disks.
var createFile = func(path string) (outputFile, error) {
	return os.Create(path)
}

func (s *Sink) lockFor(path string) *sync.Mutex {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	mu, _ := s.locks.LoadOrStore(path, &sync.Mutex{})
	return mu.(*sync.Mutex)
}
