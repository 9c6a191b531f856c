// Package catalog describes which assets exist and how each one is built
// from instrument layers.
package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/audio"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/instrument"
)

// ErrInvalidCatalog reports a catalog that cannot be rendered as written.
var ErrInvalidCatalog = errors.New("invalid catalog")

// ErrUnknownAsset is returned by Lookup for names not in the catalog.
var ErrUnknownAsset = errors.New("unknown asset")

// Layer is one generator call, optionally started OffsetMs into the asset.
type Layer struct {
	Generator instrument.Generator
	OffsetMs  float64
}

// Asset is a named output file and the layers mixed into it.
type Asset struct {
	Name   string
	Layers []Layer
}

// Render renders every layer, delays it by its offset and mixes the result.
// The final fade and normalization are left to the sink.
func (a Asset) Render(r *audio.Renderer) ([]float64, error) {
	tracks := make([][]float64, 0, len(a.Layers))
	for i, l := range a.Layers {
		buf, err := l.Generator.Render(r)
		if err != nil {
			return nil, fmt.Errorf("%s layer %d: %w", a.Name, i, err)
		}
		if l.OffsetMs != 0 {
			if buf, err = r.Delay(buf, l.OffsetMs); err != nil {
				return nil, fmt.Errorf("%s layer %d: %w", a.Name, i, err)
			}
		}
		tracks = append(tracks, buf)
	}
	return audio.Mix(tracks...), nil
}

// Catalog is the set of assets to generate plus the UI events that play them.
type Catalog struct {
	Assets []Asset
	Events []Event
}

// Lookup returns the asset with the given file name.
func (c *Catalog) Lookup(name string) (Asset, error) {
	for _, a := range c.Assets {
		if a.Name == name {
			return a, nil
		}
	}
	return Asset{}, fmt.Errorf("%q: %w", name, ErrUnknownAsset)
}

// Names returns the asset names in catalog order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Assets))
	for i, a := range c.Assets {
		names[i] = a.Name
	}
	return names
}

// Validate checks names, layers and event references.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Assets))
	for _, a := range c.Assets {
		if err := validateName(a.Name); err != nil {
			return err
		}
		if seen[a.Name] {
			return fmt.Errorf("duplicate asset %q: %w", a.Name, ErrInvalidCatalog)
		}
		seen[a.Name] = true
		if len(a.Layers) == 0 {
			return fmt.Errorf("asset %q has no layers: %w", a.Name, ErrInvalidCatalog)
		}
		for i, l := range a.Layers {
			if l.Generator == nil {
				return fmt.Errorf("asset %q layer %d has no instrument: %w", a.Name, i, ErrInvalidCatalog)
			}
			if !(l.OffsetMs >= 0 && l.OffsetMs <= audio.MaxDurationMs) {
				return fmt.Errorf("asset %q layer %d offset %vms: %w", a.Name, i, l.OffsetMs, ErrInvalidCatalog)
			}
		}
	}

	events := make(map[string]bool, len(c.Events))
	for _, e := range c.Events {
		if e.Name == "" {
			return fmt.Errorf("event without name: %w", ErrInvalidCatalog)
		}
		if events[e.Name] {
			return fmt.Errorf("duplicate event %q: %w", e.Name, ErrInvalidCatalog)
		}
		events[e.Name] = true
		if !seen[e.Asset] {
			return fmt.Errorf("event %q plays unknown asset %q: %w", e.Name, e.Asset, ErrInvalidCatalog)
		}
		if e.Volume < 0 || e.Volume > 1 || e.CooldownMs < 0 || e.PoolSize < 1 {
			return fmt.Errorf("event %q playback settings out of range: %w", e.Name, ErrInvalidCatalog)
		}
	}
	return nil
}

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("asset without name: %w", ErrInvalidCatalog)
	}
	if filepath.Base(name) != name || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return fmt.Errorf("asset name %q must be a plain file name: %w", name, ErrInvalidCatalog)
	}
	if !strings.EqualFold(filepath.Ext(name), ".wav") {
		return fmt.Errorf("asset name %q must end in .wav: %w", name, ErrInvalidCatalog)
	}
	return nil
}

// Kinds returns the sorted set of instrument kinds the catalog uses.
func (c *Catalog) Kinds() []string {
	set := map[string]bool{}
	for _, a := range c.Assets {
		for _, l := range a.Layers {
			set[l.Generator.Kind()] = true
		}
	}
	kinds := make([]string, 0, len(set))
	for k := range set {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}
