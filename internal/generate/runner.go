// Package generate renders a catalog and writes every asset to disk.
package generate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/audio"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/catalog"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/config"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/metrics"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/wav"
)

// Result describes one written asset.
type Result struct {
	Name    string
	Path    string
	Samples int
	Seconds float64
}

// Runner owns the renderer and sink for one sample rate and renders catalog
// assets through them.
type Runner struct {
	cfg      *config.Config
	catalog  *catalog.Catalog
	renderer *audio.Renderer
	sink     *wav.Sink
	logger   *zap.Logger
}

// New validates cfg and cat and builds the renderer and sink.
func New(cfg *config.Config, cat *catalog.Catalog, logger *zap.Logger) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	r, err := audio.NewRenderer(cfg.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}
	opts := wav.DefaultOptions()
	opts.SampleRate = cfg.SampleRate
	sink, err := wav.NewSink(opts)
	if err != nil {
		return nil, fmt.Errorf("create sink: %w", err)
	}
	return &Runner{
		cfg:      cfg,
		catalog:  cat,
		renderer: r,
		sink:     sink,
		logger:   logger,
	}, nil
}

// Catalog returns the catalog the runner renders.
func (rn *Runner) Catalog() *catalog.Catalog {
	return rn.catalog
}

// Sink returns the sink assets are finalized and encoded with.
func (rn *Runner) Sink() *wav.Sink {
	return rn.sink
}

// SampleRate returns the output sample rate.
func (rn *Runner) SampleRate() int {
	return rn.renderer.SampleRate()
}

// Render mixes one asset. The result has not been faded or normalized yet.
func (rn *Runner) Render(a catalog.Asset) ([]float64, error) {
	metrics.RendersInFlight.Inc()
	defer metrics.RendersInFlight.Dec()

	start := time.Now()
	samples, err := a.Render(rn.renderer)
	metrics.RenderDuration.WithLabelValues("synth").Observe(float64(time.Since(start).Microseconds()) / 1000)
	if err != nil {
		metrics.AssetsRenderedTotal.WithLabelValues("error").Inc()
		return nil, err
	}
	metrics.AssetsRenderedTotal.WithLabelValues("ok").Inc()
	return samples, nil
}

// Encode renders a and returns the finished WAV file.
func (rn *Runner) Encode(a catalog.Asset) ([]byte, error) {
	samples, err := rn.Render(a)
	if err != nil {
		return nil, err
	}
	return rn.sink.EncodeBytes(samples)
}

// Run renders every asset with at most cfg.Workers in flight, writes each one
// under cfg.OutputDir and finishes with the event manifest. The first failure
// stops assets that have not started yet and is returned.
func (rn *Runner) Run(ctx context.Context) ([]Result, error) {
	results := make([]Result, len(rn.catalog.Assets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rn.cfg.Workers)
	for i, a := range rn.catalog.Assets {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := rn.write(a)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Cancellation can land between the last Go call and Wait.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := rn.writeManifest(); err != nil {
		return nil, err
	}
	return results, nil
}

func (rn *Runner) write(a catalog.Asset) (Result, error) {
	logger := rn.logger.With(zap.String("asset", a.Name))

	samples, err := rn.Render(a)
	if err != nil {
		logger.Error("render failed", zap.Error(err))
		return Result{}, err
	}

	path := filepath.Join(rn.cfg.OutputDir, a.Name)
	start := time.Now()
	if err := rn.sink.Write(path, samples); err != nil {
		logger.Error("write failed", zap.String("path", path), zap.Error(err))
		return Result{}, err
	}
	metrics.RenderDuration.WithLabelValues("write").Observe(float64(time.Since(start).Microseconds()) / 1000)

	res := Result{
		Name:    a.Name,
		Path:    path,
		Samples: len(samples),
		Seconds: rn.renderer.Seconds(len(samples)),
	}
	logger.Info("wrote asset",
		zap.String("path", path),
		zap.Float64("seconds", res.Seconds),
		zap.Int("samples", res.Samples),
	)
	return res, nil
}

func (rn *Runner) writeManifest() error {
	path := filepath.Join(rn.cfg.OutputDir, catalog.ManifestFile)
	if err := os.MkdirAll(rn.cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := rn.catalog.WriteManifest(f, rn.SampleRate()); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	rn.logger.Info("wrote manifest", zap.String("path", path), zap.Int("events", len(rn.catalog.Events)))
	return nil
}

// Mismatch is an asset whose file on disk differs from a fresh render.
type Mismatch struct {
	Name   string
	Reason string
}

// Check renders every asset and compares it with the file already under
// cfg.OutputDir. It returns the assets that are missing or stale.
func (rn *Runner) Check(ctx context.Context) ([]Mismatch, error) {
	found := make([]*Mismatch, len(rn.catalog.Assets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(rn.cfg.Workers)
	for i, a := range rn.catalog.Assets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reason, err := rn.compare(a)
			if err != nil {
				return err
			}
			if reason != "" {
				found[i] = &Mismatch{Name: a.Name, Reason: reason}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Mismatch
	for _, m := range found {
		if m != nil {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (rn *Runner) compare(a catalog.Asset) (string, error) {
	path := filepath.Join(rn.cfg.OutputDir, a.Name)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return "missing", nil
	}
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	clip, err := wav.Decode(f)
	if err != nil {
		return fmt.Sprintf("unreadable: %v", err), nil
	}

	samples, err := rn.Render(a)
	if err != nil {
		return "", err
	}
	want := rn.sink.PCM(samples)

	switch {
	case clip.SampleRate != rn.SampleRate():
		return fmt.Sprintf("sample rate %d, want %d", clip.SampleRate, rn.SampleRate()), nil
	case clip.Channels != wav.NumChannels || clip.BitDepth != wav.BitDepth:
		return fmt.Sprintf("format %dch/%dbit, want %dch/%dbit", clip.Channels, clip.BitDepth, wav.NumChannels, wav.BitDepth), nil
	case len(clip.Samples) != len(want):
		return fmt.Sprintf("%d samples, want %d", len(clip.Samples), len(want)), nil
	case !slices.Equal(clip.Samples, want):
		return "sample data differs", nil
	}
	return "", nil
}
