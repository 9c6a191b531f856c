package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/instrument"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/noise"
)

type fileSpec struct {
	Assets []assetSpec `yaml:"assets"`
	Events []Event     `yaml:"events,omitempty"`
}

type assetSpec struct {
	Name   string      `yaml:"name"`
	Layers []layerSpec `yaml:"layers"`
}

// layerSpec leaves every numeric field optional; missing values fall back to
// the instrument's stock parameters.
type layerSpec struct {
	Instrument string    `yaml:"instrument"`
	Seed       yaml.Node `yaml:"seed"`
	DurationMs *float64  `yaml:"duration_ms,omitempty"`
	BaseHz     *float64  `yaml:"base_hz,omitempty"`
	Amp        *float64  `yaml:"amp,omitempty"`
	Tilt       *float64  `yaml:"tilt,omitempty"`
	Direction  *float64  `yaml:"direction,omitempty"`
	OffsetMs   float64   `yaml:"offset_ms,omitempty"`
}

// LoadFile reads a YAML catalog from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	c, err := LoadYAML(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadYAML decodes and validates a catalog. Unknown keys are rejected.
func LoadYAML(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var spec fileSpec
	if err := dec.Decode(&spec); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty document: %w", ErrInvalidCatalog)
		}
		return nil, fmt.Errorf("decode catalog: %v: %w", err, ErrInvalidCatalog)
	}

	c := &Catalog{Events: spec.Events}
	for _, as := range spec.Assets {
		a := Asset{Name: as.Name}
		for i, ls := range as.Layers {
			g, err := ls.generator()
			if err != nil {
				return nil, fmt.Errorf("asset %q layer %d: %w", as.Name, i, err)
			}
			a.Layers = append(a.Layers, Layer{Generator: g, OffsetMs: ls.OffsetMs})
		}
		c.Assets = append(c.Assets, a)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (ls layerSpec) generator() (instrument.Generator, error) {
	seed, err := parseSeed(&ls.Seed)
	if err != nil {
		return nil, err
	}
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	unused := func(names ...string) error {
		fields := map[string]*float64{"base_hz": ls.BaseHz, "tilt": ls.Tilt, "direction": ls.Direction}
		for _, n := range names {
			if fields[n] != nil {
				return fmt.Errorf("%s does not take %s: %w", ls.Instrument, n, ErrInvalidCatalog)
			}
		}
		return nil
	}

	switch ls.Instrument {
	case instrument.KindGlassTick:
		if err := unused("direction"); err != nil {
			return nil, err
		}
		g := instrument.NewGlassTick(seed)
		set(&g.DurationMs, ls.DurationMs)
		set(&g.BaseHz, ls.BaseHz)
		set(&g.Amp, ls.Amp)
		set(&g.Tilt, ls.Tilt)
		return g, nil
	case instrument.KindThuck:
		if err := unused("base_hz", "tilt", "direction"); err != nil {
			return nil, err
		}
		g := instrument.NewThuck(seed)
		set(&g.DurationMs, ls.DurationMs)
		set(&g.Amp, ls.Amp)
		return g, nil
	case instrument.KindAir:
		if err := unused("base_hz", "tilt"); err != nil {
			return nil, err
		}
		g := instrument.NewAir(seed)
		set(&g.DurationMs, ls.DurationMs)
		set(&g.Amp, ls.Amp)
		set(&g.Direction, ls.Direction)
		return g, nil
	case instrument.KindTiltCardHover:
		if err := unused("base_hz", "tilt", "direction"); err != nil {
			return nil, err
		}
		g := instrument.NewTiltCardHover(seed)
		set(&g.DurationMs, ls.DurationMs)
		set(&g.Amp, ls.Amp)
		return g, nil
	case "":
		return nil, fmt.Errorf("missing instrument: %w", ErrInvalidCatalog)
	default:
		return nil, fmt.Errorf("unknown instrument %q: %w", ls.Instrument, ErrInvalidCatalog)
	}
}

// parseSeed keeps the distinction between `seed: 7` and `seed: "7"`.
func parseSeed(n *yaml.Node) (noise.Seed, error) {
	if n.Kind == 0 {
		return noise.Seed{}, fmt.Errorf("missing seed: %w", ErrInvalidCatalog)
	}
	if n.Kind != yaml.ScalarNode {
		return noise.Seed{}, fmt.Errorf("line %d: seed must be a string or integer: %w", n.Line, ErrInvalidCatalog)
	}
	switch n.ShortTag() {
	case "!!int":
		v, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return noise.Seed{}, fmt.Errorf("line %d: seed %q: %v: %w", n.Line, n.Value, err, ErrInvalidCatalog)
		}
		return noise.Int(v), nil
	case "!!str":
		return noise.Text(n.Value), nil
	default:
		return noise.Seed{}, fmt.Errorf("line %d: seed must be a string or integer: %w", n.Line, ErrInvalidCatalog)
	}
}

// EncodeYAML renders the catalog in the format LoadYAML reads, with every
// parameter spelled out.
func (c *Catalog) EncodeYAML() ([]byte, error) {
	spec := fileSpec{Events: c.Events}
	for _, a := range c.Assets {
		as := assetSpec{Name: a.Name}
		for _, l := range a.Layers {
			ls, err := specFor(l)
			if err != nil {
				return nil, fmt.Errorf("asset %q: %w", a.Name, err)
			}
			as.Layers = append(as.Layers, ls)
		}
		spec.Assets = append(spec.Assets, as)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(spec); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode catalog: %w", err)
	}
	return buf.Bytes(), nil
}

func specFor(l Layer) (layerSpec, error) {
	ptr := func(v float64) *float64 { return &v }
	ls := layerSpec{Instrument: l.Generator.Kind(), OffsetMs: l.OffsetMs}

	var seed noise.Seed
	switch g := l.Generator.(type) {
	case instrument.GlassTick:
		seed = g.Seed
		ls.DurationMs, ls.BaseHz, ls.Amp, ls.Tilt = ptr(g.DurationMs), ptr(g.BaseHz), ptr(g.Amp), ptr(g.Tilt)
	case instrument.Thuck:
		seed = g.Seed
		ls.DurationMs, ls.Amp = ptr(g.DurationMs), ptr(g.Amp)
	case instrument.Air:
		seed = g.Seed
		ls.DurationMs, ls.Amp, ls.Direction = ptr(g.DurationMs), ptr(g.Amp), ptr(g.Direction)
	case instrument.TiltCardHover:
		seed = g.Seed
		ls.DurationMs, ls.Amp = ptr(g.DurationMs), ptr(g.Amp)
	default:
		return layerSpec{}, fmt.Errorf("cannot describe %T: %w", l.Generator, ErrInvalidCatalog)
	}

	ls.Seed = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: seed.String()}
	if seed.IsInt() {
		ls.Seed.Tag = "!!int"
	}
	return ls, nil
}
