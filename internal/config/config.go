// Package config reads soundforge settings from the environment. Command-line
// flags override these values in cmd/soundforge.
package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"

	"go.uber.org/zap/zapcore"

	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/audio"
	"github.com/RenatoCabral2022/WhatsWebService/soundforge/internal/catalog"
)

type Config struct {
	OutputDir   string
	SampleRate  int
	Workers     int
	ListenAddr  string
	CatalogPath string // empty means the built-in catalog
	LogLevel    string
}

func Load() (*Config, error) {
	cfg := &Config{
		OutputDir:   getEnv("SOUNDFORGE_OUTPUT_DIR", catalog.DefaultOutputDir),
		ListenAddr:  getEnv("SOUNDFORGE_LISTEN_ADDR", ":8088"),
		CatalogPath: getEnv("SOUNDFORGE_CATALOG", ""),
		LogLevel:    getEnv("SOUNDFORGE_LOG_LEVEL", "info"),
	}

	var err error
	if cfg.SampleRate, err = getEnvInt("SOUNDFORGE_SAMPLE_RATE", audio.DefaultSampleRate); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getEnvInt("SOUNDFORGE_WORKERS", runtime.NumCPU()); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no command can run with.
func (c *Config) Validate() error {
	if c.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", c.SampleRate)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory is empty")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (zapcore.Level, error) {
	lvl, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return lvl, fmt.Errorf("log level: %w", err)
	}
	return lvl, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", key, err)
	}
	return n, nil
}
