package config

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"SOUNDFORGE_OUTPUT_DIR", "SOUNDFORGE_SAMPLE_RATE", "SOUNDFORGE_WORKERS",
		"SOUNDFORGE_LISTEN_ADDR", "SOUNDFORGE_CATALOG", "SOUNDFORGE_LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, &Config{
		OutputDir:  "src/assets/sounds/v2",
		SampleRate: 44100,
		Workers:    runtime.NumCPU(),
		ListenAddr: ":8088",
		LogLevel:   "info",
	}, cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SOUNDFORGE_OUTPUT_DIR", "/tmp/out")
	t.Setenv("SOUNDFORGE_SAMPLE_RATE", "48000")
	t.Setenv("SOUNDFORGE_WORKERS", "3")
	t.Setenv("SOUNDFORGE_LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("SOUNDFORGE_CATALOG", "sounds.yaml")
	t.Setenv("SOUNDFORGE_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, 48000, cfg.SampleRate)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
	assert.Equal(t, "sounds.yaml", cfg.CatalogPath)

	lvl, err := cfg.Level()
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)
}

func TestLoadRejectsBadNumbers(t *testing.T) {
	t.Setenv("SOUNDFORGE_SAMPLE_RATE", "fast")
	_, err := Load()
	assert.ErrorContains(t, err, "SOUNDFORGE_SAMPLE_RATE")
}

func TestValidate(t *testing.T) {
	good := Config{OutputDir: "out", SampleRate: 44100, Workers: 1, LogLevel: "warn"}
	require.NoError(t, good.Validate())

	for name, mutate := range map[string]func(*Config){
		"sample rate": func(c *Config) { c.SampleRate = 0 },
		"workers":     func(c *Config) { c.Workers = -2 },
		"output":      func(c *Config) { c.OutputDir = "" },
		"log level":   func(c *Config) { c.LogLevel = "loud" },
	} {
		c := good
		mutate(&c)
		assert.Error(t, c.Validate(), name)
	}
}
