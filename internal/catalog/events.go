package catalog

import (
	"encoding/json"
	"fmt"
	"io"
)

// Event binds a UI interaction to the asset it plays and how the player
// throttles it.
type Event struct {
	Name       string  `json:"name" yaml:"name"`
	Asset      string  `json:"asset" yaml:"asset"`
	Volume     float64 `json:"volume" yaml:"volume"`
	CooldownMs int     `json:"cooldownMs" yaml:"cooldown_ms"`
	PoolSize   int     `json:"poolSize" yaml:"pool_size"`
}

// DefaultEvents returns the interaction map the web app ships with.
func DefaultEvents() []Event {
	return []Event{
		{Name: "ui.card.hover-enter", Asset: "glass-hover-soft.wav", Volume: 0.2, CooldownMs: 150, PoolSize: 4},
		{Name: "ui.card.click", Asset: "glass-tap-soft.wav", Volume: 0.34, CooldownMs: 50, PoolSize: 5},
		{Name: "ui.card.expand", Asset: "glass-tick-open.wav", Volume: 0.28, CooldownMs: 70, PoolSize: 4},
		{Name: "ui.card.collapse", Asset: "glass-tick-close.wav", Volume: 0.26, CooldownMs: 70, PoolSize: 4},
		{Name: "ui.header.control-click", Asset: "glass-tap-soft.wav", Volume: 0.24, CooldownMs: 70, PoolSize: 4},
		{Name: "ui.terminal.open", Asset: "terminal-open-soft.wav", Volume: 0.28, CooldownMs: 120, PoolSize: 4},
		{Name: "ui.terminal.close", Asset: "terminal-close-soft.wav", Volume: 0.25, CooldownMs: 100, PoolSize: 4},
		{Name: "ui.route.project-open", Asset: "route-open-air.wav", Volume: 0.17, CooldownMs: 180, PoolSize: 3},
		{Name: "ui.route.project-back", Asset: "route-back-air.wav", Volume: 0.15, CooldownMs: 180, PoolSize: 3},
		{Name: "ui.sound.enabled", Asset: "sound-enable-confirm.wav", Volume: 0.23, CooldownMs: 120, PoolSize: 3},
		{Name: "ui.sound.disabled", Asset: "sound-disable-soft.wav", Volume: 0.2, CooldownMs: 120, PoolSize: 3},
	}
}

// ManifestFile is the name of the event manifest written next to the assets.
const ManifestFile = "manifest.json"

// Manifest is the JSON document the web app reads to wire events to files.
type Manifest struct {
	SampleRate int      `json:"sampleRate"`
	Assets     []string `json:"assets"`
	Events     []Event  `json:"events"`
}

// Manifest describes the catalog for a given sample rate.
func (c *Catalog) Manifest(sampleRate int) Manifest {
	events := c.Events
	if events == nil {
		events = []Event{}
	}
	return Manifest{SampleRate: sampleRate, Assets: c.Names(), Events: events}
}

// WriteManifest writes the manifest as indented JSON.
func (c *Catalog) WriteManifest(w io.Writer, sampleRate int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c.Manifest(sampleRate)); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return nil
}
